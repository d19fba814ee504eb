// Package board orchestrates one live leaderboard view: a poller for scored
// report snapshots and, optionally, a second poller for the radar tile
// template. The two schedules are independent — a stall or failure in one
// never delays or corrupts the other — and both emit into shared view state
// that the HTTP layer reads.
package board

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/metar-board/internal/adapter/rainviewer"
	"github.com/couchcryptid/metar-board/internal/domain"
	"github.com/couchcryptid/metar-board/internal/observability"
	"github.com/couchcryptid/metar-board/internal/poller"
	"github.com/couchcryptid/metar-board/internal/store"
)

// SnapshotFetcher fetches one normalized snapshot for a poll request.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, req domain.PollRequest) (domain.Snapshot, error)
}

// FrameResolver resolves the most recent radar frame.
type FrameResolver interface {
	LatestFrame(ctx context.Context) (domain.RadarFrame, error)
}

// Config holds the board's poll parameters and cadences.
type Config struct {
	Request        domain.PollRequest
	PollInterval   time.Duration
	RequestTimeout time.Duration

	RadarEnabled  bool
	RadarInterval time.Duration
	Tiles         rainviewer.TileParams
}

// Board owns the two pollers for one view lifetime.
type Board struct {
	cfg     Config
	fetcher SnapshotFetcher
	radar   FrameResolver
	state   *store.State
	logger  *slog.Logger
	metrics *observability.Metrics

	boardPoller *poller.Poller[domain.Snapshot]
	radarPoller *poller.Poller[string]
}

// New wires a board. The radar poller is only created when enabled; a nil
// radar resolver with RadarEnabled set is a programming error.
func New(cfg Config, fetcher SnapshotFetcher, radar FrameResolver, state *store.State, logger *slog.Logger, metrics *observability.Metrics) *Board {
	b := &Board{
		cfg:     cfg,
		fetcher: fetcher,
		radar:   radar,
		state:   state,
		logger:  logger,
		metrics: metrics,
	}

	b.boardPoller = poller.New(cfg.PollInterval, b.fetchBoard, b.applyBoard, b.boardError)
	if cfg.RadarEnabled {
		b.radarPoller = poller.New(cfg.RadarInterval, b.fetchRadar, b.applyRadar, b.radarError)
	}

	return b
}

// Start launches both pollers; each fetches once immediately.
func (b *Board) Start() error {
	if err := b.boardPoller.Start(); err != nil {
		return err
	}
	if b.radarPoller != nil {
		if err := b.radarPoller.Start(); err != nil {
			b.boardPoller.Stop()
			return err
		}
	}
	b.logger.Info("board started",
		"product", b.cfg.Request.Product,
		"poll_interval", b.cfg.PollInterval,
		"radar_enabled", b.cfg.RadarEnabled,
	)
	return nil
}

// Stop tears down both pollers together. Responses still in flight are
// discarded, never applied to state. Safe to call more than once.
func (b *Board) Stop() {
	b.boardPoller.Stop()
	if b.radarPoller != nil {
		b.radarPoller.Stop()
	}
}

func (b *Board) fetchBoard(ctx context.Context) (domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.RequestTimeout)
	defer cancel()

	snap, err := b.fetcher.FetchSnapshot(ctx, b.cfg.Request)
	if err != nil {
		return domain.Snapshot{}, err
	}

	if b.cfg.Request.Product == domain.ProductPIREP {
		snap.Rows = domain.FilterPireps(snap.Rows)
	}
	return snap, nil
}

func (b *Board) applyBoard(snap domain.Snapshot) {
	b.state.ApplySnapshot(snap)
	b.metrics.SnapshotRows.Set(float64(len(snap.Rows)))
	b.metrics.BoardReady.Set(1)
	b.logger.Debug("snapshot applied", "rows", len(snap.Rows))
}

func (b *Board) boardError(err error) {
	// The prior snapshot stays in place; the message rides alongside it.
	b.state.RecordBoardError(err.Error())
	b.logger.Warn("leaderboard poll failed", "product", b.cfg.Request.Product, "error", err)
}

func (b *Board) fetchRadar(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.RequestTimeout)
	defer cancel()

	frame, err := b.radar.LatestFrame(ctx)
	if err != nil {
		b.metrics.RadarRefreshes.WithLabelValues("error").Inc()
		return "", err
	}

	b.metrics.RadarRefreshes.WithLabelValues("success").Inc()
	return rainviewer.TileTemplate(frame, b.cfg.Tiles), nil
}

func (b *Board) applyRadar(template string) {
	b.state.ApplyRadar(template)
	b.logger.Debug("radar tile template refreshed", "template", template)
}

func (b *Board) radarError(err error) {
	b.state.RecordRadarError(err.Error())
	b.logger.Warn("radar refresh failed", "error", err)
}
