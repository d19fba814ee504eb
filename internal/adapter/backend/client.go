// Package backend talks to the leaderboard scoring backend. It owns request
// construction for the three report products and normalizes response bodies
// into domain snapshots.
package backend

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/metar-board/internal/domain"
	"github.com/couchcryptid/metar-board/internal/observability"
	"github.com/sony/gobreaker"
)

// Client fetches scored report snapshots from the leaderboard backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	backoff    backoffConfig
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a backend client. The circuit breaker opens after
// repeated consecutive failures so a dead backend is not hammered on every
// poll tick; the poll schedule itself keeps running and recovers once the
// breaker half-opens.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "leaderboard-backend",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			Timeout: 30 * time.Second,
		}),
		backoff: backoffConfig{
			maxRetries:      2,
			initialInterval: 200 * time.Millisecond,
			maxInterval:     2 * time.Second,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// FetchSnapshot builds the query for the requested product, performs the
// fetch, and returns the normalized snapshot.
func (c *Client) FetchSnapshot(ctx context.Context, req domain.PollRequest) (domain.Snapshot, error) {
	q, err := BuildQuery(req)
	if err != nil {
		return domain.Snapshot{}, err
	}

	start := time.Now()
	body, err := c.get(ctx, c.baseURL+q.Path+"?"+q.Values.Encode())
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.PollsTotal.WithLabelValues(string(req.Product), "error").Inc()
		return domain.Snapshot{}, err
	}

	snap, err := domain.NormalizeSnapshot(body)
	if err != nil {
		c.metrics.PollsTotal.WithLabelValues(string(req.Product), "error").Inc()
		return domain.Snapshot{}, err
	}

	c.metrics.PollsTotal.WithLabelValues(string(req.Product), "success").Inc()
	c.logger.Debug("snapshot fetched",
		"product", req.Product,
		"rows", len(snap.Rows),
		"generated_at_utc", snap.GeneratedAtUTC,
	)
	return snap, nil
}
