package handlers

import (
	"encoding/json"
	"net/http"

	"sigandsys.dev/internal/apperr"
	"sigandsys.dev/internal/prefs"
)

// ThemeHandler reads and stores the theme preference
type ThemeHandler struct {
	prefs *prefs.Store
}

// NewThemeHandler creates a new ThemeHandler
func NewThemeHandler(p *prefs.Store) *ThemeHandler {
	return &ThemeHandler{prefs: p}
}

type themeBody struct {
	Theme prefs.Theme `json:"theme"`
}

// Get handles GET /api/theme
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, themeBody{Theme: h.prefs.Theme(r)})
}

// Set handles POST /api/theme. An empty theme toggles the current one.
func (h *ThemeHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req themeBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondAppError(w, apperr.Wrap(apperr.CodeInvalidInput, "Request body must be JSON", err))
		return
	}
	if req.Theme == "" {
		req.Theme = prefs.Toggle(h.prefs.Theme(r))
	}

	theme, err := h.prefs.SetTheme(w, string(req.Theme))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, themeBody{Theme: theme})
}
