package media

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"sigandsys.dev/internal/models"
)

// DefaultMaxProbe is the highest index probed when a slot has no manifest
const DefaultMaxProbe = 10

// MaxIndex is the largest index the slot naming patterns accept
const MaxIndex = 99

// Discoverer finds the ad images available for each slot
type Discoverer struct {
	fs        billy.Filesystem
	prober    Prober
	urlPrefix string
	maxProbe  int
	cache     *Cache[[]models.AdEntry]
	logger    zerolog.Logger
}

// NewDiscoverer creates a Discoverer. Manifests are read from fs, which is
// rooted at the ads directory; missing manifests fall back to prober.
func NewDiscoverer(fs billy.Filesystem, prober Prober, urlPrefix string, maxProbe int, cache *Cache[[]models.AdEntry], logger zerolog.Logger) *Discoverer {
	if maxProbe <= 0 {
		maxProbe = DefaultMaxProbe
	}
	maxProbe = min(maxProbe, MaxIndex)
	return &Discoverer{
		fs:        fs,
		prober:    prober,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		maxProbe:  maxProbe,
		cache:     cache,
		logger:    logger,
	}
}

// Discover returns the slot's entries from its manifest, or by probing
// when the manifest is absent or unreadable
func (d *Discoverer) Discover(ctx context.Context, slot models.Slot) ([]models.AdEntry, error) {
	spec, err := SpecFor(slot)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		if entries, ok := d.cache.Get(string(slot)); ok {
			return entries, nil
		}
	}

	found, source := d.fromManifest(spec)
	if found == nil {
		found = Probe(ctx, d.prober, spec, d.maxProbe)
		source = "probe"
	}

	entries := lo.Map(found, func(e ManifestEntry, _ int) models.AdEntry {
		return models.AdEntry{
			Slot: slot,
			File: e.File,
			Path: path.Join(d.urlPrefix, spec.RelPath(e.File)),
			Link: e.Link,
		}
	})
	if d.urlPrefix == "" {
		for i := range entries {
			entries[i].Path = "/" + entries[i].Path
		}
	}

	d.logger.Info().Str("slot", string(slot)).Str("source", source).Int("entries", len(entries)).Msg("ads discovered")

	if d.cache != nil && ctx.Err() == nil {
		d.cache.Set(string(slot), entries)
	}
	return entries, nil
}

// fromManifest returns nil when there is no usable manifest
func (d *Discoverer) fromManifest(spec SlotSpec) ([]ManifestEntry, string) {
	if d.fs == nil {
		return nil, ""
	}
	data, err := util.ReadFile(d.fs, spec.ManifestPath())
	if err != nil {
		if !os.IsNotExist(err) {
			d.logger.Warn().Err(err).Str("slot", string(spec.Slot)).Msg("reading ad manifest")
		}
		return nil, ""
	}

	entries, err := ParseManifest(spec, data)
	if err != nil {
		d.logger.Warn().Err(err).Str("slot", string(spec.Slot)).Msg("ignoring malformed ad manifest")
		return nil, ""
	}
	return entries, "manifest"
}
