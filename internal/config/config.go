package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/metar-board/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	BackendBaseURL  string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Leaderboard poll parameters.
	Product domain.Product
	Top     int
	Hours   int // PIREP lookback window
	Conus   bool

	PollInterval   time.Duration
	RequestTimeout time.Duration

	// Radar overlay configuration.
	RadarEnabled  bool
	RadarInterval time.Duration
	RadarSize     int
	RadarColor    int
	RadarOptions  string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file is honoured when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	pollInterval, err := parseDurationEnv("POLL_INTERVAL", "60s")
	if err != nil {
		return nil, err
	}
	radarInterval, err := parseDurationEnv("RADAR_INTERVAL", "120s")
	if err != nil {
		return nil, err
	}
	requestTimeout, err := parseDurationEnv("REQUEST_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	radarEnabled := true
	if v := os.Getenv("RADAR_ENABLED"); v != "" {
		radarEnabled = v == "true"
	}

	cfg := &Config{
		BackendBaseURL:  sharedcfg.EnvOrDefault("BACKEND_BASE_URL", "http://localhost:8000"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		Product: domain.Product(sharedcfg.EnvOrDefault("BOARD_PRODUCT", "METAR")),
		Top:     parseIntEnv("BOARD_TOP", 25),
		Hours:   parseIntEnv("BOARD_HOURS", 12),
		Conus:   sharedcfg.EnvOrDefault("BOARD_CONUS", "true") == "true",

		PollInterval:   pollInterval,
		RequestTimeout: requestTimeout,

		RadarEnabled:  radarEnabled,
		RadarInterval: radarInterval,
		RadarSize:     parseIntEnv("RADAR_SIZE", 256),
		RadarColor:    parseIntEnv("RADAR_COLOR", 2),
		RadarOptions:  sharedcfg.EnvOrDefault("RADAR_OPTIONS", "1_1"),
	}

	if cfg.BackendBaseURL == "" {
		return nil, errors.New("BACKEND_BASE_URL is required")
	}
	switch cfg.Product {
	case domain.ProductMETAR, domain.ProductTAF, domain.ProductPIREP:
	default:
		return nil, fmt.Errorf("invalid BOARD_PRODUCT %q: must be METAR, TAF, or PIREP", cfg.Product)
	}
	if cfg.PollInterval <= 0 {
		return nil, errors.New("POLL_INTERVAL must be positive")
	}
	if cfg.RadarInterval <= 0 {
		return nil, errors.New("RADAR_INTERVAL must be positive")
	}

	return cfg, nil
}

// PollRequest assembles the poll parameters this instance is configured for.
func (c *Config) PollRequest() domain.PollRequest {
	return domain.PollRequest{
		Product: c.Product,
		Top:     c.Top,
		Hours:   c.Hours,
		Conus:   c.Conus,
	}
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	s := sharedcfg.EnvOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}
