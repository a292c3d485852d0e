package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, newLogger("production", "debug").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, newLogger("development", "loud").GetLevel())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "server dev"))
}

func TestValidateKeyCommand(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v3/user/profile" {
			_, _ = w.Write([]byte(`{"email":"owner@example.com"}`))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer upstream.Close()

	t.Setenv("SIGANDSYS_MAIL_API_KEY", "SG.test")
	t.Setenv("SIGANDSYS_MAIL_HOST", upstream.URL)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"validate-key", "--config", t.TempDir() + "/absent.hcl"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "owner@example.com")
	assert.Contains(t, out.String(), "limited access")
}
