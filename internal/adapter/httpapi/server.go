// Package httpapi exposes the board's view state to the presentation layer
// as a small read-only JSON API, alongside health, readiness, and metrics
// routes.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/metar-board/internal/domain"
	"github.com/couchcryptid/metar-board/internal/store"
)

// StateSource is the read side of the board state.
type StateSource interface {
	Board() store.BoardView
	Radar() store.RadarView
	ResolveStation(id string) (domain.Row, bool)
	CheckReadiness(ctx context.Context) error
}

// Server exposes board, station, radar, health, readiness, and metrics
// HTTP endpoints.
type Server struct {
	httpServer *http.Server
	state      StateSource
	product    domain.Product
	logger     *slog.Logger
}

// NewServer creates the API server for a board configured for one product.
func NewServer(addr string, state StateSource, product domain.Product, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		state:   state,
		product: product,
		logger:  logger,
	}

	mux.HandleFunc("GET /api/board", s.handleBoard)
	mux.HandleFunc("GET /api/station/{icao}", s.handleStation)
	mux.HandleFunc("GET /api/radar", s.handleRadar)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// boardResponse mirrors the backend's envelope so the presentation layer can
// consume either source interchangeably.
type boardResponse struct {
	Product        domain.Product `json:"product"`
	GeneratedAtUTC string         `json:"generated_at_utc,omitempty"`
	Count          int            `json:"count"`
	Rows           []domain.Row   `json:"rows"`
	Error          string         `json:"error,omitempty"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
}

func (s *Server) handleBoard(w http.ResponseWriter, _ *http.Request) {
	view := s.state.Board()

	rows := view.Snapshot.Rows
	if rows == nil {
		rows = []domain.Row{}
	}

	resp := boardResponse{
		Product:        s.product,
		GeneratedAtUTC: view.Snapshot.GeneratedAtUTC,
		Count:          len(rows),
		Rows:           rows,
		Error:          view.Err,
	}
	if !view.UpdatedAt.IsZero() {
		resp.UpdatedAt = &view.UpdatedAt
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStation(w http.ResponseWriter, r *http.Request) {
	icao := r.PathValue("icao")

	row, ok := s.state.ResolveStation(icao)
	if !ok {
		// A station absent from the current snapshot is a normal outcome,
		// not a failure; the body says so explicitly.
		writeJSON(w, http.StatusNotFound, map[string]any{
			"station": icao,
			"found":   false,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"station": row.Station,
		"found":   true,
		"row":     row,
	})
}

func (s *Server) handleRadar(w http.ResponseWriter, _ *http.Request) {
	view := s.state.Radar()

	resp := map[string]any{
		"enabled": view.Enabled,
	}
	if view.Template != "" {
		resp["template"] = view.Template
	}
	if view.Err != "" {
		resp["error"] = view.Err
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.state.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
