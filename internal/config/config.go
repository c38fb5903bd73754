package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/bathing-water-aggregation/internal/water"
)

type AppConfig struct {
	Port string

	// HTTPTimeout bounds each outbound request.
	HTTPTimeout time.Duration

	// ExecutionTimeout bounds each top-level data call.
	ExecutionTimeout time.Duration

	CacheTTL      time.Duration
	RecencyWindow time.Duration

	// RefreshInterval warms the caches periodically; 0 disables it.
	RefreshInterval time.Duration

	Location *time.Location
	LogLevel slog.Level

	Sources Sources
}

// Sources holds the upstream endpoints and the fixed region tags of the
// non-registry feeds. Empty values fall back to the built-in defaults.
type Sources struct {
	RegistryURL   string       `yaml:"registry_url"`
	HydroURL      string       `yaml:"hydro_url"`
	HydroRegion   water.Region `yaml:"hydro_region"`
	TourismURL    string       `yaml:"tourism_url"`
	TourismRegion water.Region `yaml:"tourism_region"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "8s"); err != nil {
		return nil, err
	}
	if cfg.ExecutionTimeout, err = getenvDuration("EXECUTION_TIMEOUT", "9s"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "5h"); err != nil {
		return nil, err
	}
	if cfg.RecencyWindow, err = getenvDuration("RECENCY_WINDOW", "336h"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "0"); err != nil {
		return nil, err
	}

	tz := getenvDefault("TIMEZONE", "Europe/Vienna")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getenvDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if path := os.Getenv("SOURCES_FILE"); path != "" {
		src, err := LoadSources(path)
		if err != nil {
			return nil, err
		}
		cfg.Sources = src
	}

	return cfg, nil
}

// LoadSources reads upstream overrides from a YAML file.
func LoadSources(path string) (Sources, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Sources{}, fmt.Errorf("read SOURCES_FILE: %w", err)
	}

	var src Sources
	if err := yaml.Unmarshal(raw, &src); err != nil {
		return Sources{}, fmt.Errorf("parse SOURCES_FILE: %w", err)
	}

	for _, r := range []water.Region{src.HydroRegion, src.TourismRegion} {
		if r != "" && !r.Valid() {
			return Sources{}, fmt.Errorf("unknown region %q in SOURCES_FILE", r)
		}
	}
	return src, nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
