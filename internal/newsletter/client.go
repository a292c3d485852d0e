// Package newsletter forwards signups to SendGrid's Marketing Contacts API.
package newsletter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"

	"sigandsys.dev/internal/apperr"
)

const (
	// DefaultHost is SendGrid's API origin
	DefaultHost = "https://api.sendgrid.com"

	contactsEndpoint = "/v3/marketing/contacts"
	profileEndpoint  = "/v3/user/profile"
)

// ClientConfig holds the upstream settings
type ClientConfig struct {
	APIKey        string
	Host          string
	ListIDs       []string
	SourceFieldID string
	SourceValue   string
	Timeout       time.Duration
}

// Client talks to the contacts API
type Client struct {
	cfg    ClientConfig
	rest   *rest.Client
	logger zerolog.Logger
}

// NewClient creates a Client. httpClient may be nil.
func NewClient(cfg ClientConfig, httpClient *http.Client, logger zerolog.Logger) *Client {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	cfg.Host = strings.TrimRight(cfg.Host, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		cfg:    cfg,
		rest:   &rest.Client{HTTPClient: httpClient},
		logger: logger,
	}
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

type contact struct {
	Email        string            `json:"email"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
}

type upsertRequest struct {
	ListIDs  []string  `json:"list_ids,omitempty"`
	Contacts []contact `json:"contacts"`
}

// Upsert adds or updates one contact, tagged with the configured source
func (c *Client) Upsert(ctx context.Context, email string) error {
	if !c.Configured() {
		return apperr.New(apperr.CodeInvalidConfig, "SENDGRID_API_KEY is not set")
	}

	payload := upsertRequest{
		ListIDs:  c.cfg.ListIDs,
		Contacts: []contact{{Email: email}},
	}
	if c.cfg.SourceFieldID != "" && c.cfg.SourceValue != "" {
		payload.Contacts[0].CustomFields = map[string]string{c.cfg.SourceFieldID: c.cfg.SourceValue}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "encoding contact", err)
	}

	requestID := uuid.NewString()
	req := c.request(contactsEndpoint, rest.Put)
	req.Headers["X-Request-Id"] = requestID
	req.Body = body

	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Str("domain", domainOf(email)).
		Msg("contact upsert answered")

	return classify(resp)
}

// Profile is the account behind an API key
type Profile struct {
	Email           string `json:"email"`
	Company         string `json:"company"`
	MarketingAccess bool   `json:"-"`
}

// Validate checks the key against the user profile endpoint, then probes
// read access to marketing contacts
func (c *Client) Validate(ctx context.Context) (*Profile, error) {
	if !c.Configured() {
		return nil, apperr.New(apperr.CodeInvalidConfig, "SENDGRID_API_KEY is not set")
	}

	resp, err := c.send(ctx, c.request(profileEndpoint, rest.Get))
	if err != nil {
		return nil, err
	}
	if err := classify(resp); err != nil {
		return nil, err
	}

	var profile Profile
	if err := json.Unmarshal([]byte(resp.Body), &profile); err != nil {
		return nil, apperr.Wrap(apperr.CodeUpstream, "decoding profile", err)
	}

	resp, err = c.send(ctx, c.request(contactsEndpoint, rest.Get))
	if err != nil {
		return nil, err
	}
	profile.MarketingAccess = classify(resp) == nil
	return &profile, nil
}

func (c *Client) request(endpoint string, method rest.Method) rest.Request {
	req := sendgrid.GetRequest(c.cfg.APIKey, endpoint, c.cfg.Host)
	req.Method = method
	if req.Headers == nil {
		req.Headers = map[string]string{}
	}
	req.Headers["Content-Type"] = "application/json"
	return req
}

func (c *Client) send(ctx context.Context, req rest.Request) (*rest.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.rest.SendWithContext(ctx, req)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeNetwork, "contacting SendGrid", err)
	}
	return resp, nil
}

// classify turns an upstream status into nil or a coded error
func classify(resp *rest.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return apperr.New(apperr.CodeUnauthorized, "SendGrid rejected the API key")
	case resp.StatusCode == http.StatusForbidden:
		return apperr.New(apperr.CodeForbidden, "SendGrid API key lacks marketing permissions")
	default:
		return apperr.New(apperr.CodeUpstream, fmt.Sprintf("SendGrid answered %d: %s", resp.StatusCode, truncate(resp.Body, 200)))
	}
}

func domainOf(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
