// Package media discovers ad images for the fixed page slots and rotates
// the image each slot displays.
package media

import (
	"fmt"
	"path"
	"regexp"
	"strconv"

	"sigandsys.dev/internal/models"
)

// Extensions are tried in this order when probing for an index
var Extensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

// SlotSpec describes where a slot's images live and how they must be named
type SlotSpec struct {
	Slot    models.Slot
	Folder  string
	Prefix  string
	pattern *regexp.Regexp
}

func newSpec(slot models.Slot, folder, prefix string) SlotSpec {
	return SlotSpec{
		Slot:    slot,
		Folder:  folder,
		Prefix:  prefix,
		pattern: regexp.MustCompile(`^` + prefix + `\d{1,2}\.(png|jpe?g|gif|webp)$`),
	}
}

var specs = map[models.Slot]SlotSpec{
	models.SlotBanner:  newSpec(models.SlotBanner, "Banner", "banner"),
	models.SlotSide:    newSpec(models.SlotSide, "Side", "side"),
	models.SlotOverlay: newSpec(models.SlotOverlay, "Popup", "popup"),
}

// SpecFor returns the spec of a known slot
func SpecFor(slot models.Slot) (SlotSpec, error) {
	spec, ok := specs[slot]
	if !ok {
		return SlotSpec{}, fmt.Errorf("unknown ad slot %q", slot)
	}
	return spec, nil
}

// Valid reports whether name is an acceptable file name for the slot
func (s SlotSpec) Valid(name string) bool {
	return s.pattern.MatchString(name)
}

// Candidates lists the file names probed for one index, in preference order
func (s SlotSpec) Candidates(index int) []string {
	out := make([]string, len(Extensions))
	for i, ext := range Extensions {
		out[i] = s.Prefix + strconv.Itoa(index) + "." + ext
	}
	return out
}

// RelPath is the file's path relative to the ads root
func (s SlotSpec) RelPath(file string) string {
	return path.Join(s.Folder, file)
}

// ManifestPath is the manifest's path relative to the ads root
func (s SlotSpec) ManifestPath() string {
	return path.Join(s.Folder, "manifest.json")
}
