package newsletter

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"sigandsys.dev/internal/apperr"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Upserter stores a contact upstream
type Upserter interface {
	Upsert(ctx context.Context, email string) error
}

// Service validates signups and forwards them upstream
type Service struct {
	upstream Upserter
	logger   zerolog.Logger
}

// NewService creates a Service
func NewService(upstream Upserter, logger zerolog.Logger) *Service {
	return &Service{upstream: upstream, logger: logger}
}

// ValidEmail reports whether email looks like local@domain.tld
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Subscribe validates email and forwards it. Invalid addresses never reach upstream.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.New(apperr.CodeInvalidInput, "Email is required")
	}
	if !ValidEmail(email) {
		return apperr.New(apperr.CodeInvalidInput, "Please provide a valid email address")
	}

	if err := s.upstream.Upsert(ctx, email); err != nil {
		s.logger.Error().Err(err).Str("code", string(apperr.CodeOf(err))).Msg("newsletter signup failed")
		return err
	}
	s.logger.Info().Str("domain", domainOf(email)).Msg("newsletter signup")
	return nil
}

// Response is the JSON body returned to the browser
type Response struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}

// Outcome maps a Subscribe result to an HTTP status and body. Credential
// problems all look like a temporary outage; only outside production does a
// missing key say so.
func Outcome(err error, production bool) (int, Response) {
	if err == nil {
		return http.StatusOK, Response{Success: true, Message: "Successfully subscribed!"}
	}

	switch apperr.CodeOf(err) {
	case apperr.CodeInvalidInput:
		return http.StatusBadRequest, Response{Error: "Invalid email", Message: messageOf(err)}
	case apperr.CodeInvalidConfig:
		msg := "Newsletter signup is temporarily unavailable. Please try again later."
		if !production {
			msg = "Newsletter service is not configured: set SENDGRID_API_KEY (for example in .dev.vars)."
		}
		return http.StatusServiceUnavailable, Response{Error: "Service unavailable", Message: msg}
	case apperr.CodeUnauthorized, apperr.CodeForbidden:
		return http.StatusServiceUnavailable, Response{
			Error:   "Service unavailable",
			Message: "Newsletter signup is temporarily unavailable. Please try again later.",
		}
	default:
		return http.StatusInternalServerError, Response{
			Error:   "Internal server error",
			Message: "Something went wrong. Please try again later.",
		}
	}
}

func messageOf(err error) string {
	var e *apperr.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
