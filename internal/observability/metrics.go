package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// board's polling loops.
type Metrics struct {
	PollsTotal    *prometheus.CounterVec // labels: product, outcome={success,error}
	FetchDuration prometheus.Histogram
	SnapshotRows  prometheus.Gauge
	BoardReady    prometheus.Gauge

	// Radar metrics.
	RadarRefreshes *prometheus.CounterVec // labels: outcome={success,error}
	RadarEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all board metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		PollsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metar_board",
			Name:      "polls_total",
			Help:      "Leaderboard poll attempts by product and outcome.",
		}, []string{"product", "outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "metar_board",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of one backend snapshot fetch.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SnapshotRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "metar_board",
			Name:      "snapshot_rows",
			Help:      "Row count of the current snapshot.",
		}),
		BoardReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "metar_board",
			Name:      "ready",
			Help:      "1 once the first snapshot has been applied.",
		}),
		RadarRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metar_board",
			Name:      "radar_refreshes_total",
			Help:      "Radar frame-index refreshes by outcome.",
		}, []string{"outcome"}),
		RadarEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "metar_board",
			Name:      "radar_enabled",
			Help:      "1 when the radar overlay poller is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.PollsTotal,
		m.FetchDuration,
		m.SnapshotRows,
		m.BoardReady,
		m.RadarRefreshes,
		m.RadarEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		PollsTotal:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "metar_board", Name: "polls_total"}, []string{"product", "outcome"}),
		FetchDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "metar_board", Name: "fetch_duration_seconds"}),
		SnapshotRows:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "metar_board", Name: "snapshot_rows"}),
		BoardReady:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "metar_board", Name: "ready"}),
		RadarRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "metar_board", Name: "radar_refreshes_total"}, []string{"outcome"}),
		RadarEnabled:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "metar_board", Name: "radar_enabled"}),
	}
}
