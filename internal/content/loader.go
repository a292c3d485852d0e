// Package content loads article and tool documents from the content
// filesystem or over HTTP and keeps the current snapshot in memory.
package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of documents fetched at once
const DefaultConcurrency = 8

// maxDocumentSize caps a single remote document
const maxDocumentSize = 8 << 20

// Document is the raw body of one fetched location
type Document struct {
	Location string
	Data     []byte
}

// Result holds the documents that were fetched and the errors for those that were not
type Result struct {
	Documents []Document
	Errors    []error
}

// Loader fetches JSON documents from local paths or http(s) URLs
type Loader struct {
	fs          billy.Filesystem
	client      *http.Client
	timeout     time.Duration
	concurrency int
	logger      zerolog.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithHTTPClient sets the client used for remote locations
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithTimeout bounds each remote fetch
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.timeout = d }
}

// WithConcurrency sets how many documents are fetched in parallel
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithLogger sets the logger used to report skipped documents
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader reading local locations from fs
func NewLoader(fs billy.Filesystem, opts ...Option) *Loader {
	l := &Loader{
		fs:          fs,
		client:      http.DefaultClient,
		timeout:     10 * time.Second,
		concurrency: DefaultConcurrency,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FetchAll fetches every location concurrently. Failed locations are logged,
// reported in Result.Errors and left out of Result.Documents, which keeps
// the order of locations.
func (l *Loader) FetchAll(ctx context.Context, locations []string) Result {
	docs := make([]*Document, len(locations))
	errs := make([]error, len(locations))

	var g errgroup.Group
	g.SetLimit(l.concurrency)

	for i, loc := range locations {
		g.Go(func() error {
			data, err := l.Fetch(ctx, loc)
			if err != nil {
				errs[i] = err
				return nil
			}
			docs[i] = &Document{Location: loc, Data: data}
			return nil
		})
	}
	_ = g.Wait()

	var result Result
	for i := range locations {
		if errs[i] != nil {
			l.logger.Warn().Err(errs[i]).Str("location", locations[i]).Msg("skipping content document")
			result.Errors = append(result.Errors, errs[i])
			continue
		}
		result.Documents = append(result.Documents, *docs[i])
	}
	return result
}

// Fetch reads a single location
func (l *Loader) Fetch(ctx context.Context, location string) ([]byte, error) {
	if isRemote(location) {
		return l.fetchRemote(ctx, location)
	}
	data, err := util.ReadFile(l.fs, strings.TrimPrefix(location, "/"))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}
	return data, nil
}

func (l *Loader) fetchRemote(ctx context.Context, location string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", location, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", location, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}
	return data, nil
}

// ResolveIndex reads an index document listing content locations.
// Relative entries are resolved against the index's own location.
func (l *Loader) ResolveIndex(ctx context.Context, index string) ([]string, error) {
	data, err := l.Fetch(ctx, index)
	if err != nil {
		return nil, err
	}

	entries, skipped, err := Decode[string](data, "files")
	if err != nil {
		return nil, fmt.Errorf("parsing index %s: %w", index, err)
	}
	for _, e := range skipped {
		l.logger.Warn().Err(e).Str("index", index).Msg("skipping index entry")
	}

	locations := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		loc, err := resolve(index, entry)
		if err != nil {
			l.logger.Warn().Err(err).Str("index", index).Str("entry", entry).Msg("skipping index entry")
			continue
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

func resolve(base, ref string) (string, error) {
	if isRemote(ref) {
		return ref, nil
	}
	if isRemote(base) {
		b, err := url.Parse(base)
		if err != nil {
			return "", err
		}
		r, err := url.Parse(ref)
		if err != nil {
			return "", err
		}
		return b.ResolveReference(r).String(), nil
	}
	if strings.HasPrefix(ref, "/") {
		return path.Clean(ref), nil
	}
	return path.Join(path.Dir(base), ref), nil
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
