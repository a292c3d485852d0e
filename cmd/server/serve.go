package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sigandsys.dev/internal/config"
	"sigandsys.dev/internal/content"
	"sigandsys.dev/internal/handlers"
	"sigandsys.dev/internal/media"
	"sigandsys.dev/internal/models"
	"sigandsys.dev/internal/newsletter"
	"sigandsys.dev/internal/prefs"
	"sigandsys.dev/internal/render"
	"sigandsys.dev/internal/services"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	log.Logger = logger

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.Content.FetchTimeout}

	// Content
	loader := content.NewLoader(osfs.New(cfg.Content.Dir),
		content.WithHTTPClient(httpClient),
		content.WithTimeout(cfg.Content.FetchTimeout),
		content.WithLogger(logger.With().Str("component", "content").Logger()),
	)
	store := content.NewStore(loader, content.Sources{
		ArticleIndex: cfg.Content.ArticleIndex,
		Articles:     cfg.Content.ArticleSources,
		Tools:        cfg.Content.ToolSources,
	}, cfg.Content.RefreshInterval, logger.With().Str("component", "store").Logger())
	store.Refresh(ctx)

	// Ads
	ads := newAdService(cfg, logger.With().Str("component", "media").Logger())
	if err := ads.Start(ctx); err != nil {
		logger.Warn().Err(err).Msg("ad discovery failed; slots stay empty")
	}
	defer ads.Stop()

	// Newsletter
	mail := newsletter.NewClient(newsletter.ClientConfig{
		APIKey:        cfg.Mail.APIKey,
		Host:          cfg.Mail.Host,
		ListIDs:       cfg.Mail.ListIDs,
		SourceFieldID: cfg.Mail.SourceFieldID,
		SourceValue:   cfg.Mail.SourceValue,
		Timeout:       cfg.Mail.Timeout,
	}, nil, logger.With().Str("component", "newsletter").Logger())
	if !mail.Configured() {
		logger.Warn().Msg("SENDGRID_API_KEY is not set; newsletter signups will fail")
	}

	renderer, err := render.New()
	if err != nil {
		return err
	}

	router := handlers.SetupRoutes(handlers.Dependencies{
		Config:     cfg,
		Logger:     logger,
		Articles:   services.NewArticleService(store),
		Tools:      services.NewToolService(store),
		Ads:        ads,
		Newsletter: newsletter.NewService(mail, logger.With().Str("component", "newsletter").Logger()),
		Prefs:      prefs.NewStore(cfg.DefaultTheme, cfg.IsProduction()),
		Renderer:   renderer,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", cfg.Addr).Str("environment", cfg.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return ignoreCanceled(store.Run(gctx))
	})
	g.Go(func() error {
		return ignoreCanceled(rediscover(gctx, ads, cfg.Ads.DiscoveryTTL, logger))
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newAdService(cfg *config.Config, logger zerolog.Logger) *media.Service {
	adsFS := osfs.New(cfg.Ads.Dir)

	var prober media.Prober = media.NewFSProber(adsFS)
	if cfg.Ads.ProbeBaseURL != "" {
		prober = media.NewHTTPProber(cfg.Ads.ProbeBaseURL, nil, cfg.Ads.ProbeTimeout)
	}

	discoverer := media.NewDiscoverer(adsFS, prober, cfg.Ads.URLPrefix, cfg.Ads.MaxProbe,
		media.NewCache[[]models.AdEntry](cfg.Ads.DiscoveryTTL), logger)

	return media.NewService(discoverer, media.Settings{
		RotationInterval: cfg.Ads.RotationInterval,
		OverlayDelay:     cfg.Ads.OverlayDelay,
		OverlayInterval:  cfg.Ads.OverlayInterval,
	}, logger)
}

// rediscover checks for new ad images once the discovery cache has expired.
// Rotation restarts only when a slot's images changed.
func rediscover(ctx context.Context, ads *media.Service, ttl time.Duration, logger zerolog.Logger) error {
	if ttl <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(ttl + ttl/10)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			restarted, err := ads.Refresh(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("ad rediscovery failed")
				continue
			}
			if restarted {
				logger.Info().Msg("ad images changed; rotation restarted")
			}
		}
	}
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
