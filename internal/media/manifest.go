package media

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ManifestEntry is one accepted file from a slot manifest
type ManifestEntry struct {
	File string `json:"file"`
	Link string `json:"link,omitempty"`
}

type manifestObject struct {
	File string `json:"file"`
	Name string `json:"name"`
	Src  string `json:"src"`
	Link string `json:"link"`
	URL  string `json:"url"`
	Href string `json:"href"`
}

func (o manifestObject) entry() ManifestEntry {
	return ManifestEntry{
		File: firstNonEmpty(o.File, o.Name, o.Src),
		Link: firstNonEmpty(o.Link, o.URL, o.Href),
	}
}

// ParseManifest reads a slot manifest: an array of file names, an array of
// {file, link} objects, or a {file: link} map. Names failing the slot's
// pattern and repeated names are discarded. Map manifests come back sorted
// by name.
func ParseManifest(spec SlotSpec, data []byte) ([]ManifestEntry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty manifest")
	}

	var raw []ManifestEntry
	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decoding manifest array: %w", err)
		}
		for _, item := range items {
			var name string
			if err := json.Unmarshal(item, &name); err == nil {
				raw = append(raw, ManifestEntry{File: name})
				continue
			}
			var obj manifestObject
			if err := json.Unmarshal(item, &obj); err == nil {
				raw = append(raw, obj.entry())
			}
		}
	case '{':
		var links map[string]string
		if err := json.Unmarshal(data, &links); err != nil {
			return nil, fmt.Errorf("decoding manifest map: %w", err)
		}
		for name, link := range links {
			raw = append(raw, ManifestEntry{File: name, Link: link})
		}
		sort.Slice(raw, func(i, j int) bool { return raw[i].File < raw[j].File })
	default:
		return nil, errors.New("manifest must be an array or an object")
	}

	seen := make(map[string]struct{}, len(raw))
	entries := make([]ManifestEntry, 0, len(raw))
	for _, e := range raw {
		e.File = strings.TrimSpace(e.File)
		e.Link = strings.TrimSpace(e.Link)
		if !spec.Valid(e.File) {
			continue
		}
		if !safeLink(e.Link) {
			e.Link = ""
		}
		if _, dup := seen[e.File]; dup {
			continue
		}
		seen[e.File] = struct{}{}
		entries = append(entries, e)
	}
	return entries, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// safeLink accepts empty, site-relative and http(s) links
func safeLink(link string) bool {
	if link == "" || (strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//")) {
		return true
	}
	lower := strings.ToLower(link)
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}
