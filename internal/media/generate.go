package media

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// BuildManifest lists a slot folder and returns the files that match the
// slot's naming pattern and sniff as images, ordered by index. Links from
// an existing manifest are carried over.
func BuildManifest(fsys billy.Filesystem, spec SlotSpec) ([]ManifestEntry, error) {
	infos, err := fsys.ReadDir(spec.Folder)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", spec.Folder, err)
	}

	links := make(map[string]string)
	if data, err := util.ReadFile(fsys, spec.ManifestPath()); err == nil {
		if old, err := ParseManifest(spec, data); err == nil {
			for _, e := range old {
				links[e.File] = e.Link
			}
		}
	}

	var entries []ManifestEntry
	for _, info := range infos {
		name := info.Name()
		if !info.Mode().IsRegular() || !spec.Valid(name) {
			continue
		}
		image, err := isImage(fsys, spec.RelPath(name))
		if err != nil {
			return nil, err
		}
		if image {
			entries = append(entries, ManifestEntry{File: name, Link: links[name]})
		}
	}

	slices.SortFunc(entries, func(a, b ManifestEntry) int {
		if c := cmp.Compare(spec.index(a.File), spec.index(b.File)); c != 0 {
			return c
		}
		return cmp.Compare(a.File, b.File)
	})
	return entries, nil
}

// WriteManifest stores entries as the slot's manifest.json
func WriteManifest(fsys billy.Filesystem, spec SlotSpec, entries []ManifestEntry) error {
	if entries == nil {
		entries = []ManifestEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := fsys.MkdirAll(spec.Folder, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", spec.Folder, err)
	}
	return util.WriteFile(fsys, spec.ManifestPath(), append(data, '\n'), 0o644)
}

func isImage(fsys billy.Filesystem, rel string) (bool, error) {
	f, err := fsys.Open(rel)
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", rel, err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return false, fmt.Errorf("sniffing %s: %w", rel, err)
	}
	return strings.HasPrefix(mtype.String(), "image/"), nil
}

// index extracts the number between the prefix and the extension
func (s SlotSpec) index(name string) int {
	digits := strings.TrimPrefix(name, s.Prefix)
	if i := strings.IndexByte(digits, '.'); i >= 0 {
		digits = digits[:i]
	}
	n, _ := strconv.Atoi(digits)
	return n
}
