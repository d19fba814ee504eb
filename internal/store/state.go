// Package store holds the board's transient view state: the current
// snapshot, the current radar tile template, and the latest error message for
// each. State lives only for the lifetime of the service; nothing persists.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/couchcryptid/metar-board/internal/domain"
)

// BoardView is the leaderboard side of the state as one consistent read.
// Err carries the most recent poll failure; when it is set alongside rows,
// the rows are stale-but-present from an earlier successful poll.
type BoardView struct {
	Snapshot  domain.Snapshot
	Err       string
	UpdatedAt time.Time
}

// RadarView is the radar side of the state. Template is empty until the
// first successful frame resolution, or permanently when radar is disabled.
type RadarView struct {
	Enabled   bool
	Template  string
	Err       string
	UpdatedAt time.Time
}

// State is the concurrency-safe in-memory view state. The leaderboard and
// radar halves are written by independent pollers and never coupled: a
// failure recorded on one side leaves the other untouched.
type State struct {
	mu sync.RWMutex

	snapshot    domain.Snapshot
	hasSnapshot bool
	boardErr    string
	boardAt     time.Time

	radarEnabled  bool
	radarTemplate string
	radarErr      string
	radarAt       time.Time
}

// New creates empty state. radarEnabled only affects what RadarView reports;
// it does not gate any writes.
func New(radarEnabled bool) *State {
	return &State{radarEnabled: radarEnabled}
}

// ApplySnapshot replaces the current snapshot wholesale and clears any prior
// poll error.
func (s *State) ApplySnapshot(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = snap
	s.hasSnapshot = true
	s.boardErr = ""
	s.boardAt = clock.Now()
}

// RecordBoardError stores a poll failure message. The previous snapshot is
// kept: stale data is preferred to blanking the view.
func (s *State) RecordBoardError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.boardErr = msg
}

// Board returns the current leaderboard view.
func (s *State) Board() BoardView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return BoardView{
		Snapshot:  s.snapshot,
		Err:       s.boardErr,
		UpdatedAt: s.boardAt,
	}
}

// ApplyRadar replaces the current radar tile template and clears any prior
// radar error.
func (s *State) ApplyRadar(template string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.radarTemplate = template
	s.radarErr = ""
	s.radarAt = clock.Now()
}

// RecordRadarError stores a radar refresh failure. The previous template is
// kept and leaderboard state is unaffected.
func (s *State) RecordRadarError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.radarErr = msg
}

// Radar returns the current radar view.
func (s *State) Radar() RadarView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return RadarView{
		Enabled:   s.radarEnabled,
		Template:  s.radarTemplate,
		Err:       s.radarErr,
		UpdatedAt: s.radarAt,
	}
}

// ResolveStation looks up a station in the current snapshot.
func (s *State) ResolveStation(id string) (domain.Row, bool) {
	return domain.ResolveStation(s.Board().Snapshot, id)
}

// CheckReadiness returns nil once the first snapshot has been applied.
func (s *State) CheckReadiness(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasSnapshot {
		return errors.New("no snapshot applied yet")
	}
	return nil
}
