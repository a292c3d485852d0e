// Package prefs persists visitor preferences in cookies.
package prefs

import (
	"fmt"
	"net/http"
	"time"

	"sigandsys.dev/internal/apperr"
)

// Theme is a color scheme
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// CookieName is the cookie holding the theme
const CookieName = "theme"

// CookieMaxAge keeps the preference for a year
const CookieMaxAge = 365 * 24 * time.Hour

// ParseTheme validates s as a theme
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case Light, Dark:
		return t, nil
	default:
		return "", apperr.New(apperr.CodeInvalidInput, fmt.Sprintf("theme must be light or dark, got %q", s))
	}
}

// Toggle returns the other theme
func Toggle(t Theme) Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Store reads and writes the theme cookie
type Store struct {
	fallback Theme
	secure   bool
}

// NewStore creates a Store. An invalid fallback becomes Light.
func NewStore(fallback string, secure bool) *Store {
	t, err := ParseTheme(fallback)
	if err != nil {
		t = Light
	}
	return &Store{fallback: t, secure: secure}
}

// Theme returns the visitor's theme, or the fallback when the cookie is missing or invalid
func (s *Store) Theme(r *http.Request) Theme {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return s.fallback
	}
	t, err := ParseTheme(c.Value)
	if err != nil {
		return s.fallback
	}
	return t
}

// SetTheme validates theme and writes it to the cookie
func (s *Store) SetTheme(w http.ResponseWriter, theme string) (Theme, error) {
	t, err := ParseTheme(theme)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(t),
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return t, nil
}
