package prefs

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigandsys.dev/internal/apperr"
)

func TestToggle(t *testing.T) {
	assert.Equal(t, Dark, Toggle(Light))
	assert.Equal(t, Light, Toggle(Dark))
}

func TestThemeFallback(t *testing.T) {
	s := NewStore("dark", false)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, Dark, s.Theme(r))

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "sepia"})
	assert.Equal(t, Dark, s.Theme(r), "invalid cookie falls back")

	assert.Equal(t, Light, NewStore("bogus", false).Theme(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestSetThemeRoundTrip(t *testing.T) {
	s := NewStore("light", true)
	w := httptest.NewRecorder()

	got, err := s.SetTheme(w, "dark")
	require.NoError(t, err)
	assert.Equal(t, Dark, got)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, 365*24*60*60, cookies[0].MaxAge)
	assert.True(t, cookies[0].Secure)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[0])
	assert.Equal(t, Dark, s.Theme(r))
}

func TestSetThemeRejectsUnknown(t *testing.T) {
	w := httptest.NewRecorder()
	_, err := NewStore("light", false).SetTheme(w, "purple")
	assert.Equal(t, apperr.CodeInvalidInput, apperr.CodeOf(err))
	assert.Empty(t, w.Result().Cookies())
}
