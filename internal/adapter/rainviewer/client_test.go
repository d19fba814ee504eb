package rainviewer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/metar-board/internal/domain"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func frameServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/weather-maps.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestLatestFrame_TakesLastPastEntry(t *testing.T) {
	srv := frameServer(t, `{"host": "https://x", "radar": {"past": [{"path": "/a"}, {"path": "/b"}]}}`)
	defer srv.Close()

	frame, err := testClient(srv.URL).LatestFrame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RadarFrame{Host: "https://x", Path: "/b"}, frame)
}

func TestLatestFrame_MetadataErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing host", body: `{"radar": {"past": [{"path": "/a"}]}}`},
		{name: "empty past list", body: `{"host": "https://x", "radar": {"past": []}}`},
		{name: "missing radar section", body: `{"host": "https://x"}`},
		{name: "frame without path", body: `{"host": "https://x", "radar": {"past": [{}]}}`},
		{name: "not json", body: `<html>maintenance</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := frameServer(t, tt.body)
			defer srv.Close()

			_, err := testClient(srv.URL).LatestFrame(context.Background())
			require.Error(t, err)

			var metaErr *domain.RadarMetadataError
			assert.True(t, errors.As(err, &metaErr), "expected RadarMetadataError, got %v", err)
		})
	}
}

func TestLatestFrame_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).LatestFrame(context.Background())
	require.Error(t, err)

	var httpErr *domain.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.Status)
	assert.Equal(t, "upstream down", httpErr.Body)
}

func TestLatestFrame_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &Client{
		httpClient: &http.Client{Timeout: 50 * time.Millisecond},
		baseURL:    srv.URL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	_, err := c.LatestFrame(context.Background())
	require.Error(t, err)
}

func TestTileTemplate(t *testing.T) {
	frame := domain.RadarFrame{Host: "https://x", Path: "/b"}
	got := TileTemplate(frame, TileParams{Size: 256, Color: 2, Options: "1_1"})
	assert.Equal(t, "https://x/b/256/{z}/{x}/{y}/2/1_1.png", got)
}
