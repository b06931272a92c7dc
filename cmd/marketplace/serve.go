package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SwissDataScienceCenter/code-marketplace/internal/config"
	"github.com/SwissDataScienceCenter/code-marketplace/internal/db"
	"github.com/SwissDataScienceCenter/code-marketplace/internal/logging"
	"github.com/SwissDataScienceCenter/code-marketplace/internal/ratelimit"
	"github.com/SwissDataScienceCenter/code-marketplace/internal/server"
	"github.com/getsentry/sentry-go"
)

const shutdownTimeout time.Duration = 10 * time.Second

type ServeCmd struct {
	Host             string  `default:"" help:"Address to listen on, all interfaces when empty"`
	SentryDsn        string  `name:"sentry-dsn" env:"SENTRY_DSN" help:"Report errors to this sentry project"`
	SentrySampleRate float64 `name:"sentry-sample-rate" env:"SENTRY_SAMPLE_RATE" default:"0" help:"Share of requests traced by sentry"`
}

// rateLimitStore uses redis when it is configured and reachable, otherwise the limits are kept
// in memory. An unreachable redis is fatal in production.
func rateLimitStore(ctx context.Context, c config.Config) (ratelimit.Store, func(), error) {
	window := c.Security.RateLimiting.Window()
	if c.Redis.Configured() {
		client := db.NewRedisClient(c.Redis)
		err := db.Ping(ctx, client)
		if err == nil {
			slog.Info("rate limits are stored in redis", "address", c.Redis.Address())
			store := ratelimit.NewRedisStore(client, window, ratelimit.WithKeyPrefix(c.Redis.KeyPrefix))
			return store, func() { client.Close() }, nil
		}
		client.Close()
		if c.App.Environment == config.Production {
			return nil, nil, err
		}
		slog.Warn("redis is not reachable, rate limits are kept in memory", "error", err)
	}
	store := ratelimit.NewMemoryStore(window)
	if err := store.Start(); err != nil {
		return nil, nil, err
	}
	return store, store.Stop, nil
}

func (s *ServeCmd) Run(rc *runContext) error {
	ch := rc.configHandler()
	cfg, err := ch.Config()
	if err != nil {
		return err
	}
	logger, logCloser, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	slog.SetDefault(logger)
	slog.Info("loaded config", "files", ch.Files(), "environment", cfg.App.Environment)
	serverOptions := []server.ServerOption{
		server.WithConfig(cfg),
		server.WithVersion(version()),
		server.WithLogger(logger),
	}
	// Sentry
	if s.SentryDsn != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              s.SentryDsn,
			TracesSampleRate: s.SentrySampleRate,
			Environment:      string(cfg.App.Environment),
			Release:          version(),
		})
		if err != nil {
			slog.Error("sentry initialization failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			serverOptions = append(serverOptions, server.WithSentry())
		}
	}
	// Rate limiting
	store, stopStore, err := rateLimitStore(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("rate limiting initialization failed: %w", err)
	}
	defer stopStore()
	serverOptions = append(serverOptions, server.WithRateLimitStore(store))
	// The loaded configuration stays in use, changes only take effect after a restart
	ch.HandleChanges(func(updated config.Config, err error) {
		if err != nil {
			slog.Error("the changed configuration is not valid", "error", err)
			return
		}
		slog.Warn("the configuration changed, restart the server to apply it", "files", ch.Files())
	})
	ch.Watch()
	srv, err := server.NewServer(serverOptions...)
	if err != nil {
		return err
	}
	address := fmt.Sprintf("%s:%d", s.Host, cfg.App.Port)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start(address)
	}()
	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("the server failed: %w", err)
		}
		return nil
	case <-quit:
	}
	slog.Info("received signal to shut down the server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down the server gracefully failed: %w", err)
	}
	return nil
}
