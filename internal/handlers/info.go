package handlers

import (
	"net/http"
	"time"

	"sigandsys.dev/internal/config"
	"sigandsys.dev/internal/models"
)

// Endpoints is the route list advertised by GET /
var Endpoints = []string{
	"GET /health - Health check",
	"GET /api/articles - List articles (q, topic, shown)",
	"GET /api/articles/{id} - Get an article",
	"GET /api/topics - Article topics with counts",
	"GET /api/tools - List tools (category, q)",
	"GET /api/tools/updates - Recently updated tools",
	"GET /api/ads - Ad slot state",
	"POST /api/newsletter - Subscribe to the newsletter",
	"GET /api/theme - Current theme preference",
}

// InfoHandler serves service metadata and health
type InfoHandler struct {
	cfg *config.Config
	now func() time.Time
}

// NewInfoHandler creates a new InfoHandler
func NewInfoHandler(cfg *config.Config) *InfoHandler {
	return &InfoHandler{cfg: cfg, now: time.Now}
}

// Root handles GET /
func (h *InfoHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.ServiceInfo{
		Message:   "SigAndSys API",
		Version:   h.cfg.Version,
		Status:    "active",
		Endpoints: Endpoints,
	})
}

// Health handles GET /health
func (h *InfoHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.Health{
		Status:      "healthy",
		Timestamp:   h.now().UTC(),
		Environment: h.cfg.Environment,
	})
}
