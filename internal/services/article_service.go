package services

import (
	"strings"

	"sigandsys.dev/internal/catalog"
	"sigandsys.dev/internal/models"
)

// ArticleSource provides the current article snapshot
type ArticleSource interface {
	Articles() []models.Article
	Article(id string) (*models.Article, error)
}

// ListParams are the query parameters of an article list request
type ListParams struct {
	Term  string
	Topic string
	Shown int
	Open  []string
}

// ArticleService handles article-related operations
type ArticleService struct {
	source ArticleSource
}

// NewArticleService creates a new ArticleService
func NewArticleService(source ArticleSource) *ArticleService {
	return &ArticleService{source: source}
}

// Page returns one page of articles for the JSON API
func (s *ArticleService) Page(p ListParams) models.ArticlePage {
	return catalog.Query(s.source.Articles(), p.Term, p.Topic, p.Shown)
}

// GetByID returns a specific article by ID
func (s *ArticleService) GetByID(id string) (*models.Article, error) {
	return s.source.Article(strings.TrimSpace(id))
}

// Topics returns tag counts over all articles
func (s *ArticleService) Topics() []models.TopicCount {
	return catalog.Topics(s.source.Articles())
}

// View replays the request parameters against a fresh View: topic or
// search first, then Shown revealed in whole pages, then the expanded items. It returns the snapshot and the number of items requested.
func (s *ArticleService) View(p ListParams) (catalog.Snapshot, int) {
	v := catalog.NewView(s.source.Articles())
	defer v.Close()

	shown := catalog.PageSize
	if catalog.TopicActive(p.Topic) {
		v.SetTopic(p.Topic)
	} else {
		if strings.TrimSpace(p.Term) != "" {
			v.SearchNow(p.Term)
		}
		shown = v.Reveal(p.Shown)
	}
	for _, id := range p.Open {
		if id = strings.TrimSpace(id); id != "" && !v.Snapshot().Expanded[id] {
			v.Toggle(id)
		}
	}
	return v.Snapshot(), shown
}
