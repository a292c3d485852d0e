package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"sigandsys.dev/internal/apperr"
	"sigandsys.dev/internal/config"
	"sigandsys.dev/internal/middleware"
	"sigandsys.dev/internal/models"
	"sigandsys.dev/internal/prefs"
	"sigandsys.dev/internal/render"
	"sigandsys.dev/internal/services"
)

// AdService is the ad rotation state the routes read and control
type AdService interface {
	States() []models.SlotState
	State(slot models.Slot) (models.SlotState, error)
	Current(slot models.Slot) *models.AdEntry
	DismissOverlay()
}

// Subscriber forwards newsletter signups
type Subscriber interface {
	Subscribe(ctx context.Context, email string) error
}

// Dependencies are the services behind the routes
type Dependencies struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Articles   *services.ArticleService
	Tools      *services.ToolService
	Ads        AdService
	Newsletter Subscriber
	Prefs      *prefs.Store
	Renderer   *render.Renderer
}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	// Initialize handlers
	infoHandler := NewInfoHandler(deps.Config)
	articleHandler := NewArticleHandler(deps.Articles, deps.Renderer, deps.Logger)
	toolHandler := NewToolHandler(deps.Tools, deps.Ads, deps.Renderer, deps.Logger)
	adHandler := NewAdHandler(deps.Ads)
	newsletterHandler := NewNewsletterHandler(deps.Newsletter, deps.Config.IsProduction())
	themeHandler := NewThemeHandler(deps.Prefs)

	r.Get("/", infoHandler.Root)
	r.Get("/health", infoHandler.Health)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Article endpoints
		r.Get("/articles", articleHandler.List)
		r.Get("/articles/{id}", articleHandler.Get)
		r.Get("/topics", articleHandler.Topics)

		// Tool endpoints
		r.Get("/tools", toolHandler.List)
		r.Get("/tools/updates", toolHandler.Updates)

		// Ad endpoints
		r.Get("/ads", adHandler.List)
		r.Get("/ads/{slot}", adHandler.Get)
		r.Post("/ads/overlay/dismiss", adHandler.Dismiss)

		// Newsletter accepts POST only; the handler answers 405 itself
		r.HandleFunc("/newsletter", newsletterHandler.Subscribe)

		r.Get("/theme", themeHandler.Get)
		r.Post("/theme", themeHandler.Set)
	})

	// HTML fragments
	r.Get("/articles", articleHandler.Fragment)
	r.Get("/tools", toolHandler.Fragment)
	r.Get("/tools/updates", toolHandler.UpdatesFragment)

	// Static files
	fileServer := http.FileServer(http.Dir(deps.Config.Content.Dir))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not Found", fmt.Sprintf("Endpoint %s not found", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed", fmt.Sprintf("%s is not supported on %s", r.Method, r.URL.Path))
	})

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("encoding JSON")
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, label, message string) {
	respondJSON(w, status, map[string]string{"error": label, "message": message})
}

// respondAppError maps a classified error to its status
func respondAppError(w http.ResponseWriter, err error) {
	status := statusFor(apperr.CodeOf(err))
	message := http.StatusText(status)
	var e *apperr.Error
	if errors.As(err, &e) {
		message = e.Message
	}
	respondError(w, status, http.StatusText(status), message)
}

func statusFor(code apperr.Code) int {
	switch code {
	case apperr.CodeInvalidInput:
		return http.StatusBadRequest
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeInvalidConfig, apperr.CodeUnauthorized, apperr.CodeForbidden:
		return http.StatusServiceUnavailable
	case apperr.CodeNetwork, apperr.CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
