package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable read by Load
const EnvPrefix = "SIGANDSYS"

// maxAdIndex is the largest index an ad file name can carry (two digits)
const maxAdIndex = 99

// DefaultFiles are the config files read when none are given
var DefaultFiles = []string{"./config.hcl", "./config.local.hcl"}

// DotEnvFiles hold local secrets in development, the same files the worker tooling uses
var DotEnvFiles = []string{".dev.vars", ".env"}

// Config holds all application configuration
type Config struct {
	Addr        string `hcl:"addr" env:"ADDR" default:":8080"`
	Environment string `hcl:"environment" env:"ENVIRONMENT" default:"development"`
	Version     string `hcl:"version" env:"VERSION" default:"1.0.0"`
	LogLevel    string `hcl:"log_level" env:"LOG_LEVEL" default:"info"`

	Content ContentConfig `hcl:"content" env:"CONTENT"`
	Ads     AdsConfig     `hcl:"ads" env:"ADS"`
	Mail    MailConfig    `hcl:"mail" env:"MAIL"`

	DefaultTheme string `hcl:"default_theme" env:"DEFAULT_THEME" default:"light"`
}

// ContentConfig describes where article and tool documents live
type ContentConfig struct {
	Dir             string        `hcl:"dir" env:"DIR" default:"static"`
	ArticleIndex    string        `hcl:"article_index" env:"ARTICLE_INDEX" default:"articles/index.json"`
	ArticleSources  []string      `hcl:"article_sources" env:"ARTICLE_SOURCES"`
	ToolSources     []string      `hcl:"tool_sources" env:"TOOL_SOURCES" default:"tools.json"`
	RefreshInterval time.Duration `hcl:"refresh_interval" env:"REFRESH_INTERVAL" default:"10m"`
	FetchTimeout    time.Duration `hcl:"fetch_timeout" env:"FETCH_TIMEOUT" default:"10s"`
}

// AdsConfig holds ad discovery and rotation settings
type AdsConfig struct {
	Dir              string        `hcl:"dir" env:"DIR" default:"static/Ads"`
	URLPrefix        string        `hcl:"url_prefix" env:"URL_PREFIX" default:"/static/Ads"`
	ProbeBaseURL     string        `hcl:"probe_base_url" env:"PROBE_BASE_URL"`
	ProbeTimeout     time.Duration `hcl:"probe_timeout" env:"PROBE_TIMEOUT" default:"1500ms"`
	MaxProbe         int           `hcl:"max_probe" env:"MAX_PROBE" default:"10"`
	DiscoveryTTL     time.Duration `hcl:"discovery_ttl" env:"DISCOVERY_TTL" default:"10m"`
	RotationInterval time.Duration `hcl:"rotation_interval" env:"ROTATION_INTERVAL" default:"8s"`
	OverlayDelay     time.Duration `hcl:"overlay_delay" env:"OVERLAY_DELAY" default:"30s"`
	OverlayInterval  time.Duration `hcl:"overlay_interval" env:"OVERLAY_INTERVAL" default:"3m"`
}

// MailConfig holds the newsletter upstream settings
type MailConfig struct {
	APIKey        string        `hcl:"api_key" env:"API_KEY"`
	Host          string        `hcl:"host" env:"HOST" default:"https://api.sendgrid.com"`
	ListIDs       []string      `hcl:"list_ids" env:"LIST_IDS"`
	SourceFieldID string        `hcl:"source_field_id" env:"SOURCE_FIELD_ID" default:"e1_T"`
	SourceValue   string        `hcl:"source_value" env:"SOURCE_VALUE" default:"website"`
	Timeout       time.Duration `hcl:"timeout" env:"TIMEOUT" default:"10s"`
}

// Load reads .dev.vars, then config files and environment, and validates the result.
// An empty files list reads DefaultFiles; missing files are ignored.
func Load(files ...string) (*Config, error) {
	for _, f := range DotEnvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
	}

	if len(files) == 0 {
		files = DefaultFiles
	}

	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: EnvPrefix,
		SkipFlags: true,
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyFallbacks(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyFallbacks honours the unprefixed variable names used by the worker deployment
func applyFallbacks(cfg *Config) {
	if cfg.Mail.APIKey == "" {
		cfg.Mail.APIKey = os.Getenv("SENDGRID_API_KEY")
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" && os.Getenv(EnvPrefix+"_ENVIRONMENT") == "" {
		cfg.Environment = v
	}
}

// IsProduction reports whether verbose error details must be hidden
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MailConfigured reports whether a SendGrid API key is available
func (c *Config) MailConfigured() bool {
	return c.Mail.APIKey != ""
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return errors.New("addr is required")
	}
	if cfg.Content.Dir == "" {
		return errors.New("content.dir is required")
	}
	if cfg.Content.RefreshInterval <= 0 {
		return fmt.Errorf("content.refresh_interval must be positive, got %s", cfg.Content.RefreshInterval)
	}
	if cfg.Ads.MaxProbe < 1 || cfg.Ads.MaxProbe > maxAdIndex {
		return fmt.Errorf("ads.max_probe must be between 1 and %d, got %d", maxAdIndex, cfg.Ads.MaxProbe)
	}
	if cfg.Ads.RotationInterval <= 0 || cfg.Ads.OverlayInterval <= 0 {
		return errors.New("ads rotation and overlay intervals must be positive")
	}
	switch cfg.DefaultTheme {
	case "light", "dark":
	default:
		return fmt.Errorf("default_theme must be light or dark, got %q", cfg.DefaultTheme)
	}
	return nil
}
