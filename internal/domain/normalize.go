package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// rawSnapshot mirrors the backend response envelope. Rows may be absent
// entirely on some error paths upstream; that is treated as an empty set.
type rawSnapshot struct {
	Rows           []rawRow `json:"rows"`
	GeneratedAtUTC string   `json:"generated_at_utc"`
}

// rawRow spans both backend payload generations: "text" is current, "metar"
// is the legacy field name. Numeric fields decode as any so that non-numeric
// values can be rejected instead of coerced.
type rawRow struct {
	Station string `json:"station"`
	Lat     any    `json:"lat"`
	Lon     any    `json:"lon"`
	Score   any    `json:"score"`
	Text    string `json:"text"`
	Metar   string `json:"metar"`
}

// NormalizeSnapshot decodes a raw backend response body into a Snapshot.
// It never fails on a missing rows array, only on undecodable JSON.
func NormalizeSnapshot(body []byte) (Snapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(body, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	rows := make([]Row, 0, len(raw.Rows))
	for _, rr := range raw.Rows {
		rows = append(rows, normalizeRow(rr))
	}

	return Snapshot{Rows: rows, GeneratedAtUTC: raw.GeneratedAtUTC}, nil
}

func normalizeRow(rr rawRow) Row {
	row := Row{Station: rr.Station, Text: rr.Text}
	if row.Text == "" {
		row.Text = rr.Metar
	}

	row.Score = numericField(rr.Score)

	// A marker needs both coordinates; one malformed value invalidates the pair.
	lat := numericField(rr.Lat)
	lon := numericField(rr.Lon)
	if lat != nil && lon != nil {
		row.Lat = lat
		row.Lon = lon
	}

	return row
}

// numericField accepts only finite JSON numbers. Strings like "12.3" are
// treated as absent rather than coerced, so malformed input never places a
// marker at a nonsensical location.
func numericField(v any) *float64 {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
