package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Belphemur/TorrentGrabber/internal/cache"
	"github.com/Belphemur/TorrentGrabber/internal/client"
	"github.com/Belphemur/TorrentGrabber/internal/config"
	"github.com/Belphemur/TorrentGrabber/internal/metrics"
	"github.com/Belphemur/TorrentGrabber/internal/models"
	"github.com/Belphemur/TorrentGrabber/internal/pipeline"
	"github.com/Belphemur/TorrentGrabber/internal/services"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// sentryBeforeSend is installed as the Sentry BeforeSend hook when set.
var sentryBeforeSend func(*sentry.Event, *sentry.EventHint) *sentry.Event

func main() {
	fs := pflag.NewFlagSet("grabber", pflag.ExitOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	config.SetConfig(cfg)

	if err := run(cfg); err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("Grabber stopped with an error")
		os.Exit(1)
	}
}

// run wires the components and crawls until the pipeline finishes or a signal arrives.
// Startup errors are reported to Sentry before run returns.
func run(cfg *config.Config) (err error) {
	logger := config.GetLogger()

	logger.Info().
		Str("listing_url", cfg.ListingURL).
		Str("output_dir", cfg.OutputDir).
		Str("resolution", cfg.Resolution).
		Str("proxy_connection_string", cfg.ProxyConnectionString).
		Str("cache_provider", cfg.Cache.Provider).
		Int("max_pages", cfg.MaxPages).
		Dur("run_interval", cfg.RunIntervalDuration()).
		Msg("Application started with configuration")

	reportError := func(error) {}
	if cfg.SentryDSN != "" {
		if initErr := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, BeforeSend: sentryBeforeSend}); initErr != nil {
			logger.Warn().Err(initErr).Msg("Failed to initialize Sentry, error reporting disabled")
		} else {
			reportError = func(err error) {
				sentry.CaptureException(err)
			}
			defer func() {
				if err != nil {
					reportError(err)
				}
				sentry.Flush(2 * time.Second)
			}()
		}
	}

	detailCache, err := newDetailCache(cfg, logger)
	if err != nil {
		return err
	}

	opts := []client.Option{}
	if detailCache != nil {
		opts = append(opts, client.WithDetailCache(detailCache))
	}
	c, err := client.NewClient(cfg, opts...)
	if err != nil {
		if detailCache != nil {
			_ = detailCache.Close()
		}
		return fmt.Errorf("create client: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close client")
		}
	}()

	downloader := services.NewTorrentDownloader(c.HTTPClient(), cfg.Timeout(), services.NewBarReporter(os.Stdout))

	// Start Prometheus metrics HTTP server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Metrics.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(c, downloader, pipeline.Options{
		ListingURL: cfg.ListingURL,
		OutputDir:  cfg.OutputDir,
		MovieDelay: cfg.MovieDelayDuration(),
		PageDelay:  cfg.PageDelayDuration(),
		MaxPages:   cfg.MaxPages,
	}, pipeline.WithErrorReporter(reportError))

	err = p.RunEvery(ctx, cfg.RunIntervalDuration(), func(summary *models.RunSummary, err error) {
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Int("pages", summary.Pages).Msg("Crawl failed")
		}
	})
	if errors.Is(err, context.Canceled) {
		logger.Info().Msg("Received shutdown signal, crawl interrupted")
		return nil
	}
	return err
}

// newDetailCache builds the configured detail cache, or returns nil when none is useful.
// A cache that cannot be reached is replaced by no cache.
func newDetailCache(cfg *config.Config, logger zerolog.Logger) (cache.DetailCache, error) {
	provider := cfg.DetailCacheProvider()
	if provider == "" {
		logger.Debug().Str("provider", cfg.Cache.Provider).Msg("Detail cache disabled")
		return nil, nil
	}

	detailCache, err := cache.New(provider, cache.ProviderConfig{
		Size:          cfg.Cache.Size,
		TTL:           cfg.CacheTTL(),
		Logger:        cache.NewZerologLogger(logger),
		RedisAddress:  cfg.Cache.Redis.Address,
		RedisPassword: cfg.Cache.Redis.Password,
		RedisDB:       cfg.Cache.Redis.DB,
		Group:         "details",
	})
	if err != nil {
		logger.Warn().Err(err).Str("provider", provider).Msg("Failed to create detail cache, continuing without it")
		return nil, nil
	}
	return detailCache, nil
}
