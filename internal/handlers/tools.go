package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"sigandsys.dev/internal/models"
	"sigandsys.dev/internal/render"
	"sigandsys.dev/internal/services"
)

// ToolHandler handles tool-related endpoints
type ToolHandler struct {
	toolService *services.ToolService
	ads         AdService
	renderer    *render.Renderer
	logger      zerolog.Logger
}

// NewToolHandler creates a new ToolHandler
func NewToolHandler(ts *services.ToolService, ads AdService, renderer *render.Renderer, logger zerolog.Logger) *ToolHandler {
	return &ToolHandler{toolService: ts, ads: ads, renderer: renderer, logger: logger}
}

// List handles GET /api/tools
func (h *ToolHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	respondJSON(w, http.StatusOK, h.toolService.Filter(q.Get("category"), q.Get("q")))
}

// Updates handles GET /api/tools/updates
func (h *ToolHandler) Updates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.toolService.RecentUpdates())
}

// Fragment handles GET /tools, placing the current banner between cards
func (h *ToolHandler) Fragment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	grid := render.ToolGrid{Tools: h.toolService.Filter(q.Get("category"), q.Get("q"))}
	if h.ads != nil {
		grid.Banner = h.ads.Current(models.SlotBanner)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Tools(w, grid); err != nil {
		h.logger.Error().Err(err).Msg("rendering tools")
	}
}

// UpdatesFragment handles GET /tools/updates
func (h *ToolHandler) UpdatesFragment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Updates(w, h.toolService.RecentUpdates()); err != nil {
		h.logger.Error().Err(err).Msg("rendering updates")
	}
}
