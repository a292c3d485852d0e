package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"sigandsys.dev/internal/newsletter"
)

// maxSignupBody bounds the request body of a signup
const maxSignupBody = 4 << 10

// NewsletterHandler proxies signups upstream
type NewsletterHandler struct {
	subscriber Subscriber
	production bool
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(s Subscriber, production bool) *NewsletterHandler {
	return &NewsletterHandler{subscriber: s, production: production}
}

type signupRequest struct {
	Email string `json:"email"`
}

// Subscribe handles POST /api/newsletter
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed", "Use POST to subscribe")
		return
	}

	var req signupRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxSignupBody)).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, newsletter.Response{
			Error:   "Invalid request",
			Message: "Request body must be JSON with an email field",
		})
		return
	}

	status, body := newsletter.Outcome(h.subscriber.Subscribe(r.Context(), req.Email), h.production)
	respondJSON(w, status, body)
}
