// Package rainviewer resolves the most recent weather-radar frame from the
// RainViewer public frame index and builds tile URL templates from it. The
// provider rotates its "latest frame" on its own cadence, so the frame is
// re-resolved on a schedule independent of the leaderboard poll.
package rainviewer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/metar-board/internal/domain"
)

const defaultBaseURL = "https://api.rainviewer.com"

// TileParams are the fixed rendering knobs substituted into the tile URL
// template. Zoom and tile coordinates stay as literal {z}/{x}/{y}
// placeholders for the map renderer to fill in per tile.
type TileParams struct {
	Size    int    // tile edge in pixels, 256 or 512
	Color   int    // provider color scheme index
	Options string // provider options segment, e.g. "1_1" (smoothing_snow)
}

// Client fetches the RainViewer frame index.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a RainViewer client.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
		logger:  logger,
	}
}

// LatestFrame fetches the provider's frame index and returns the
// chronologically last entry of the past-frames list. A missing host or an
// empty or malformed frame list fails with RadarMetadataError.
func (c *Client) LatestFrame(ctx context.Context) (domain.RadarFrame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/public/weather-maps.json", nil)
	if err != nil {
		return domain.RadarFrame{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RadarFrame{}, fmt.Errorf("fetch frame index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.RadarFrame{}, &domain.HTTPError{
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	var index frameIndex
	if err := json.NewDecoder(resp.Body).Decode(&index); err != nil {
		return domain.RadarFrame{}, &domain.RadarMetadataError{Reason: "undecodable frame index: " + err.Error()}
	}

	if index.Host == "" {
		return domain.RadarFrame{}, &domain.RadarMetadataError{Reason: "missing host"}
	}
	if len(index.Radar.Past) == 0 {
		return domain.RadarFrame{}, &domain.RadarMetadataError{Reason: "empty past frame list"}
	}

	latest := index.Radar.Past[len(index.Radar.Past)-1]
	if latest.Path == "" {
		return domain.RadarFrame{}, &domain.RadarMetadataError{Reason: "latest frame has no path"}
	}

	return domain.RadarFrame{Host: index.Host, Path: latest.Path}, nil
}

// TileTemplate builds the tile URL template for a frame, leaving {z}/{x}/{y}
// for the map-rendering collaborator to substitute per visible tile.
func TileTemplate(frame domain.RadarFrame, p TileParams) string {
	return fmt.Sprintf("%s%s/%d/{z}/{x}/{y}/%d/%s.png", frame.Host, frame.Path, p.Size, p.Color, p.Options)
}

// RainViewer frame index response types.

type frameIndex struct {
	Host  string `json:"host"`
	Radar struct {
		Past []frameEntry `json:"past"`
	} `json:"radar"`
}

type frameEntry struct {
	Path string `json:"path"`
}
