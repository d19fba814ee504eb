package domain_test

import (
	"testing"

	"github.com/couchcryptid/metar-board/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStation(t *testing.T) {
	snap := domain.Snapshot{Rows: []domain.Row{
		{Station: "kden", Text: "first"},
		{Station: "KJFK", Text: "second"},
	}}

	tests := []struct {
		name     string
		id       string
		wantText string
		found    bool
	}{
		{name: "case-insensitive match", id: "KDEN", wantText: "first", found: true},
		{name: "trailing whitespace trimmed", id: "kjfk ", wantText: "second", found: true},
		{name: "not present", id: "KXYZ", found: false},
		{name: "empty id", id: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok := domain.ResolveStation(snap, tt.id)
			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.wantText, row.Text)
			}
		})
	}
}

func TestResolveStation_FirstMatchWins(t *testing.T) {
	snap := domain.Snapshot{Rows: []domain.Row{
		{Station: "KDEN", Text: "first"},
		{Station: "kden", Text: "duplicate"},
	}}

	row, ok := domain.ResolveStation(snap, "kden")
	require.True(t, ok)
	assert.Equal(t, "first", row.Text)
}

func TestResolveStation_EmptySnapshot(t *testing.T) {
	_, ok := domain.ResolveStation(domain.Snapshot{}, "KDEN")
	assert.False(t, ok)
}
