package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/companysearch/internal/animation"
	"github.com/JonMunkholm/companysearch/internal/app"
	"github.com/JonMunkholm/companysearch/internal/config"
	"github.com/JonMunkholm/companysearch/internal/logging"
	"github.com/JonMunkholm/companysearch/internal/metrics"
	"github.com/JonMunkholm/companysearch/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := metrics.New()
	service, closeSource, err := app.NewService(ctx, cfg, collector)
	if err != nil {
		return err
	}
	defer closeSource()

	anim := animation.NewFetcher(cfg.Animation.URL, cfg.Animation.Timeout)
	if !anim.Enabled() {
		slog.Info("animation disabled, ANIMATION_URL is empty")
	}

	server := web.NewServer(cfg, service, anim, collector.Handler())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown on signal or when the listener fails
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
