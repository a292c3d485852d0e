package media

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"golang.org/x/sync/errgroup"
)

// DefaultProbeTimeout bounds a single existence check
const DefaultProbeTimeout = 1500 * time.Millisecond

// probeConcurrency bounds how many indices are checked at once
const probeConcurrency = 4

// Prober checks whether an ad file exists. rel is relative to the ads root.
type Prober interface {
	Exists(ctx context.Context, rel string) bool
}

// HTTPProber issues HEAD requests against a base URL
type HTTPProber struct {
	base    string
	client  *http.Client
	timeout time.Duration
}

// NewHTTPProber creates a prober for files under base
func NewHTTPProber(base string, client *http.Client, timeout time.Duration) *HTTPProber {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &HTTPProber{base: strings.TrimRight(base, "/"), client: client, timeout: timeout}
}

// Exists reports a 2xx answer within the timeout
func (p *HTTPProber) Exists(ctx context.Context, rel string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.base+"/"+rel, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// FSProber checks for regular files in a filesystem
type FSProber struct {
	fs billy.Filesystem
}

// NewFSProber creates a prober over fs
func NewFSProber(fs billy.Filesystem) *FSProber {
	return &FSProber{fs: fs}
}

// Exists reports whether rel is a regular file
func (p *FSProber) Exists(_ context.Context, rel string) bool {
	info, err := p.fs.Stat(rel)
	return err == nil && info.Mode().IsRegular()
}

// Probe checks indices 1..max for the slot, keeping the first extension
// found for each index. Results are ordered by index.
func Probe(ctx context.Context, prober Prober, spec SlotSpec, max int) []ManifestEntry {
	found := make([]string, max)

	var g errgroup.Group
	g.SetLimit(probeConcurrency)
	for i := 1; i <= max; i++ {
		g.Go(func() error {
			for _, name := range spec.Candidates(i) {
				if ctx.Err() != nil {
					return nil
				}
				if spec.Valid(name) && prober.Exists(ctx, spec.RelPath(name)) {
					found[i-1] = name
					return nil
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	var entries []ManifestEntry
	for _, name := range found {
		if name != "" {
			entries = append(entries, ManifestEntry{File: name})
		}
	}
	return entries
}
