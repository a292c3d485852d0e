package content

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"sigandsys.dev/internal/apperr"
	"sigandsys.dev/internal/models"
)

// Sources lists where the store reads its documents from
type Sources struct {
	ArticleIndex string
	Articles     []string
	Tools        []string
}

// Store holds the current content snapshot
type Store struct {
	loader   *Loader
	sources  Sources
	interval time.Duration
	logger   zerolog.Logger

	mu       sync.RWMutex
	articles []models.Article
	tools    []models.Tool
	loadedAt time.Time
}

// NewStore creates a Store. Call Refresh or Run to populate it.
func NewStore(loader *Loader, sources Sources, interval time.Duration, logger zerolog.Logger) *Store {
	return &Store{
		loader:   loader,
		sources:  sources,
		interval: interval,
		logger:   logger,
	}
}

// Refresh reloads articles and tools and swaps in the new snapshot
func (s *Store) Refresh(ctx context.Context) {
	locations := s.articleLocations(ctx)

	var (
		articles []models.Article
		tools    []models.Tool
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		articles = s.loader.LoadArticles(ctx, locations)
	}()
	go func() {
		defer wg.Done()
		tools = s.loader.LoadTools(ctx, s.sources.Tools)
	}()
	wg.Wait()

	s.mu.Lock()
	s.articles = articles
	s.tools = tools
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.logger.Info().Int("articles", len(articles)).Int("tools", len(tools)).Msg("content refreshed")
}

func (s *Store) articleLocations(ctx context.Context) []string {
	var locations []string
	if s.sources.ArticleIndex != "" {
		indexed, err := s.loader.ResolveIndex(ctx, s.sources.ArticleIndex)
		if err != nil {
			s.logger.Debug().Err(err).Str("index", s.sources.ArticleIndex).Msg("article index unavailable")
		}
		locations = append(locations, indexed...)
	}
	for _, loc := range s.sources.Articles {
		if !slices.Contains(locations, loc) {
			locations = append(locations, loc)
		}
	}
	return locations
}

// Run refreshes on every tick until ctx is done
func (s *Store) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Articles returns the current article snapshot, newest first
func (s *Store) Articles() []models.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.articles
}

// Article returns a specific article by ID
func (s *Store) Article(id string) (*models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.articles {
		if s.articles[i].ID == id {
			a := s.articles[i]
			return &a, nil
		}
	}
	return nil, apperr.New(apperr.CodeNotFound, fmt.Sprintf("article not found: %s", id))
}

// Tools returns the current tool snapshot in document order
func (s *Store) Tools() []models.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tools
}

// LoadedAt reports when the snapshot was last replaced
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
