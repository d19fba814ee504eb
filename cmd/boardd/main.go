// Command boardd runs the live METAR leaderboard orchestrator: it polls the
// scoring backend and the RainViewer frame index on independent schedules and
// serves the resulting board state over a read-only HTTP API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/metar-board/internal/adapter/backend"
	"github.com/couchcryptid/metar-board/internal/adapter/httpapi"
	"github.com/couchcryptid/metar-board/internal/adapter/rainviewer"
	"github.com/couchcryptid/metar-board/internal/board"
	"github.com/couchcryptid/metar-board/internal/config"
	"github.com/couchcryptid/metar-board/internal/observability"
	"github.com/couchcryptid/metar-board/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	state := store.New(cfg.RadarEnabled)
	fetcher := backend.NewClient(cfg.BackendBaseURL, cfg.RequestTimeout, metrics, logger)

	var radar board.FrameResolver
	if cfg.RadarEnabled {
		radar = rainviewer.NewClient(cfg.RequestTimeout, logger)
		metrics.RadarEnabled.Set(1)
		logger.Info("radar overlay enabled", "interval", cfg.RadarInterval)
	} else {
		logger.Info("radar overlay disabled")
	}

	b := board.New(board.Config{
		Request:        cfg.PollRequest(),
		PollInterval:   cfg.PollInterval,
		RequestTimeout: cfg.RequestTimeout,
		RadarEnabled:   cfg.RadarEnabled,
		RadarInterval:  cfg.RadarInterval,
		Tiles: rainviewer.TileParams{
			Size:    cfg.RadarSize,
			Color:   cfg.RadarColor,
			Options: cfg.RadarOptions,
		},
	}, fetcher, radar, state, logger, metrics)

	srv := httpapi.NewServer(cfg.HTTPAddr, state, cfg.Product, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if err := b.Start(); err != nil {
		logger.Error("board start error", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	b.Stop()

	logger.Info("shutdown complete")
}
