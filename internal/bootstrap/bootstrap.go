// Package bootstrap assembles the interview server: configuration, logging,
// backend selection for the TTS cache and rate limiter, the synthesis
// service, and the HTTP transport with graceful shutdown.
package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"interview-server-go/internal/domain/tts"
	"interview-server-go/internal/domain/tts/cache"
	"interview-server-go/internal/domain/tts/elevenlabs"
	"interview-server-go/internal/domain/tts/ratelimit"
	"interview-server-go/internal/platform/config"
	platformerrors "interview-server-go/internal/platform/errors"
	"interview-server-go/internal/platform/logging"
	"interview-server-go/internal/platform/observability"
	httptransport "interview-server-go/internal/transport/http"
)

const shutdownGrace = 10 * time.Second

// Run wires and serves the application until a termination signal arrives.
func Run(ctx context.Context) error {
	// A missing .env file is fine; the process environment still applies.
	_ = godotenv.Load()

	settings, err := config.Load()
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindConfig, "bootstrap:settings", "parse settings", err)
	}

	logger := logging.New(logging.Config{Level: settings.LogLevel})
	observability.Setup(observability.Config{Enabled: settings.MetricsEnabled}, logger)
	logger.Info().
		Str("app", settings.AppName).
		Str("version", settings.AppVersion).
		Str("addr", settings.ListenAddr).
		Msg("starting interview server")

	store := cache.Select(cache.Config{
		Driver: settings.CacheDriver,
		Redis:  &cache.RedisConfig{URL: settings.RedisURL},
		SQLite: &cache.SQLiteConfig{DSN: settings.CacheDSN},
	}, logger)
	defer store.Close()

	limiter := ratelimit.Select(ratelimit.Config{
		Window: time.Duration(settings.RateWindowSec) * time.Second,
		Max:    settings.RateMax,
		Redis:  &ratelimit.RedisConfig{URL: settings.RedisURL},
	}, logger)
	defer limiter.Close()

	synth := tts.NewElevenLabsSynthesizer(elevenlabs.NewClient())
	service := tts.NewService(
		tts.NewResolver(),
		store,
		limiter,
		synth,
		time.Duration(settings.CacheTTLSeconds)*time.Second,
		logger,
	)

	router := httptransport.Build(httptransport.Options{Settings: settings, Logger: logger})
	httptransport.NewTTSHandler(service, logger).RegisterRoutes(router)
	httptransport.NewHealthHandler(settings, store, limiter, logger).RegisterRoutes(router)

	server := &http.Server{
		Addr:    settings.ListenAddr,
		Handler: router.Engine,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(signalCtx)
	group.Go(func() error {
		logger.Info().Str("addr", settings.ListenAddr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return platformerrors.Wrap(platformerrors.KindTransport, "bootstrap:serve", "http server failed", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return platformerrors.Wrap(platformerrors.KindTransport, "bootstrap:shutdown", "http server shutdown failed", err)
		}
		logger.Info().Msg("http server stopped")
		return nil
	})

	return group.Wait()
}
