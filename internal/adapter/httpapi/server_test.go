package httpapi_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/metar-board/internal/adapter/httpapi"
	"github.com/couchcryptid/metar-board/internal/domain"
	"github.com/couchcryptid/metar-board/internal/store"
)

func newTestServer(state *store.State) *httpapi.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpapi.NewServer(":0", state, domain.ProductMETAR, logger)
}

func do(t *testing.T, srv *httpapi.Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func f64(v float64) *float64 { return &v }

func TestBoardRoute(t *testing.T) {
	state := store.New(true)
	state.ApplySnapshot(domain.Snapshot{
		Rows: []domain.Row{
			{Station: "KDEN", Lat: f64(39.86), Lon: f64(-104.67), Text: "KDEN 231153Z"},
			{Station: "KJFK", Text: "KJFK 231151Z"},
		},
		GeneratedAtUTC: "2026-08-23T12:00:00Z",
	})

	rec := do(t, newTestServer(state), http.MethodGet, "/api/board")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Product        string       `json:"product"`
		GeneratedAtUTC string       `json:"generated_at_utc"`
		Count          int          `json:"count"`
		Rows           []domain.Row `json:"rows"`
		Error          string       `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "METAR", body.Product)
	assert.Equal(t, "2026-08-23T12:00:00Z", body.GeneratedAtUTC)
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Rows, 2)
	assert.Equal(t, "KDEN", body.Rows[0].Station)
	assert.True(t, body.Rows[0].HasMarker())
	assert.False(t, body.Rows[1].HasMarker())
	assert.Empty(t, body.Error)
}

func TestBoardRoute_EmptyStateServesEmptyRows(t *testing.T) {
	rec := do(t, newTestServer(store.New(true)), http.MethodGet, "/api/board")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rows":[]`)
}

func TestBoardRoute_SurfacesStaleDataWithError(t *testing.T) {
	state := store.New(true)
	state.ApplySnapshot(domain.Snapshot{Rows: []domain.Row{{Station: "KDEN", Text: "x"}}})
	state.RecordBoardError("upstream returned status 502")

	rec := do(t, newTestServer(state), http.MethodGet, "/api/board")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int    `json:"count"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count, "stale rows still served")
	assert.Contains(t, body.Error, "502")
}

func TestStationRoute_Found(t *testing.T) {
	state := store.New(true)
	state.ApplySnapshot(domain.Snapshot{Rows: []domain.Row{{Station: "KDEN", Text: "KDEN 231153Z"}}})

	rec := do(t, newTestServer(state), http.MethodGet, "/api/station/kden")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Station string     `json:"station"`
		Found   bool       `json:"found"`
		Row     domain.Row `json:"row"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Found)
	assert.Equal(t, "KDEN", body.Station)
	assert.Equal(t, "KDEN 231153Z", body.Row.Text)
}

func TestStationRoute_NotFound(t *testing.T) {
	rec := do(t, newTestServer(store.New(true)), http.MethodGet, "/api/station/KXYZ")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Station string `json:"station"`
		Found   bool   `json:"found"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Found)
	assert.Equal(t, "KXYZ", body.Station)
}

func TestRadarRoute(t *testing.T) {
	state := store.New(true)
	state.ApplyRadar("https://x/b/256/{z}/{x}/{y}/2/1_1.png")

	rec := do(t, newTestServer(state), http.MethodGet, "/api/radar")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Enabled  bool   `json:"enabled"`
		Template string `json:"template"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Enabled)
	assert.Equal(t, "https://x/b/256/{z}/{x}/{y}/2/1_1.png", body.Template)
}

func TestRadarRoute_Disabled(t *testing.T) {
	rec := do(t, newTestServer(store.New(false)), http.MethodGet, "/api/radar")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"enabled":false`)
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(store.New(true)), http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyz(t *testing.T) {
	state := store.New(true)
	srv := newTestServer(state)

	rec := do(t, srv, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	state.ApplySnapshot(domain.Snapshot{})
	rec = do(t, srv, http.MethodGet, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsRouteExists(t *testing.T) {
	rec := do(t, newTestServer(store.New(true)), http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
