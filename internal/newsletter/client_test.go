package newsletter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigandsys.dev/internal/apperr"
)

type recorded struct {
	method string
	path   string
	auth   string
	body   upsertRequest
}

func upstream(t *testing.T, status int, body string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.body)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newClient(srv *httptest.Server, key string) *Client {
	return NewClient(ClientConfig{
		APIKey:        key,
		Host:          srv.URL,
		ListIDs:       []string{"list-1"},
		SourceFieldID: "e1_T",
		SourceValue:   "website",
		Timeout:       time.Second,
	}, srv.Client(), zerolog.Nop())
}

func TestUpsertSendsContact(t *testing.T) {
	srv, rec := upstream(t, http.StatusAccepted, `{"job_id":"abc"}`)

	err := newClient(srv, "SG.key").Upsert(context.Background(), "reader@example.com")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/v3/marketing/contacts", rec.path)
	assert.Equal(t, "Bearer SG.key", rec.auth)
	assert.Equal(t, []string{"list-1"}, rec.body.ListIDs)
	require.Len(t, rec.body.Contacts, 1)
	assert.Equal(t, "reader@example.com", rec.body.Contacts[0].Email)
	assert.Equal(t, map[string]string{"e1_T": "website"}, rec.body.Contacts[0].CustomFields)
}

func TestUpsertClassifiesStatus(t *testing.T) {
	tests := []struct {
		status int
		want   apperr.Code
	}{
		{http.StatusUnauthorized, apperr.CodeUnauthorized},
		{http.StatusForbidden, apperr.CodeForbidden},
		{http.StatusBadRequest, apperr.CodeUpstream},
		{http.StatusInternalServerError, apperr.CodeUpstream},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv, _ := upstream(t, tt.status, `{"errors":[{"message":"nope"}]}`)
			err := newClient(srv, "SG.key").Upsert(context.Background(), "a@b.co")
			assert.Equal(t, tt.want, apperr.CodeOf(err))
		})
	}
}

func TestUpsertWithoutKey(t *testing.T) {
	srv, rec := upstream(t, http.StatusAccepted, "")
	err := newClient(srv, "").Upsert(context.Background(), "a@b.co")
	assert.Equal(t, apperr.CodeInvalidConfig, apperr.CodeOf(err))
	assert.Empty(t, rec.method, "upstream never contacted")
}

func TestUpsertNetworkFailure(t *testing.T) {
	srv, _ := upstream(t, http.StatusAccepted, "")
	c := newClient(srv, "SG.key")
	srv.Close()

	err := c.Upsert(context.Background(), "a@b.co")
	assert.Equal(t, apperr.CodeNetwork, apperr.CodeOf(err))
}

func TestValidate(t *testing.T) {
	t.Run("valid key with marketing access", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v3/user/profile":
				_, _ = w.Write([]byte(`{"email":"owner@example.com","company":"SigAndSys"}`))
			case "/v3/marketing/contacts":
				_, _ = w.Write([]byte(`{"result":[]}`))
			}
		}))
		defer srv.Close()

		profile, err := newClient(srv, "SG.key").Validate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", profile.Email)
		assert.Equal(t, "SigAndSys", profile.Company)
		assert.True(t, profile.MarketingAccess)
	})

	t.Run("limited marketing access", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v3/marketing/contacts" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			_, _ = w.Write([]byte(`{"email":"owner@example.com"}`))
		}))
		defer srv.Close()

		profile, err := newClient(srv, "SG.key").Validate(context.Background())
		require.NoError(t, err)
		assert.False(t, profile.MarketingAccess)
	})

	t.Run("rejected key", func(t *testing.T) {
		srv, _ := upstream(t, http.StatusUnauthorized, `{}`)
		_, err := newClient(srv, "SG.bad").Validate(context.Background())
		assert.Equal(t, apperr.CodeUnauthorized, apperr.CodeOf(err))
	})

	t.Run("missing key", func(t *testing.T) {
		srv, _ := upstream(t, http.StatusOK, `{}`)
		_, err := newClient(srv, "").Validate(context.Background())
		assert.Equal(t, apperr.CodeInvalidConfig, apperr.CodeOf(err))
	})
}
