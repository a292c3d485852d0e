package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"sigandsys.dev/internal/render"
	"sigandsys.dev/internal/services"
)

// ArticleHandler handles article-related endpoints
type ArticleHandler struct {
	articleService *services.ArticleService
	renderer       *render.Renderer
	logger         zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(as *services.ArticleService, renderer *render.Renderer, logger zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{articleService: as, renderer: renderer, logger: logger}
}

// List handles GET /api/articles
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.articleService.Page(listParams(r)))
}

// Get handles GET /api/articles/{id}
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	article, err := h.articleService.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Not Found", "Article not found")
		return
	}
	respondJSON(w, http.StatusOK, article)
}

// Topics handles GET /api/topics
func (h *ArticleHandler) Topics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.articleService.Topics())
}

// Fragment handles GET /articles
func (h *ArticleHandler) Fragment(w http.ResponseWriter, r *http.Request) {
	snap, shown := h.articleService.View(listParams(r))
	list := render.ArticleList{Snapshot: snap, BasePath: r.URL.Path, Shown: shown}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Articles(w, list); err != nil {
		h.logger.Error().Err(err).Msg("rendering articles")
	}
}

func listParams(r *http.Request) services.ListParams {
	q := r.URL.Query()
	shown, _ := strconv.Atoi(q.Get("shown"))
	return services.ListParams{
		Term:  q.Get("q"),
		Topic: q.Get("topic"),
		Shown: shown,
		Open:  q["open"],
	}
}
