package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"sigandsys.dev/internal/models"
)

// AdHandler exposes the ad rotation state
type AdHandler struct {
	ads AdService
}

// NewAdHandler creates a new AdHandler
func NewAdHandler(ads AdService) *AdHandler {
	return &AdHandler{ads: ads}
}

// List handles GET /api/ads
func (h *AdHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.ads.States())
}

// Get handles GET /api/ads/{slot}
func (h *AdHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.ads.State(models.Slot(chi.URLParam(r, "slot")))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// Dismiss handles POST /api/ads/overlay/dismiss
func (h *AdHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.ads.DismissOverlay()
	state, err := h.ads.State(models.SlotOverlay)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}
