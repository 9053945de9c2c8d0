// Package config holds divistash configuration loaded from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all divistash configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Remote data sources
	API APIConfig `yaml:"api"`

	// Local cache
	Storage StorageConfig `yaml:"storage"`

	// Loot filter handling
	Filter FilterConfig `yaml:"filter"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the remote league and price endpoints.
type APIConfig struct {
	LeaguesURL string `yaml:"leagues_url"`
	PricesURL  string `yaml:"prices_url"`
	UserAgent  string `yaml:"user_agent"`
	Timeout    string `yaml:"timeout"`
}

// StorageConfig configures the SQLite cache.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	LeagueTTL    string `yaml:"league_ttl"`
}

// FilterConfig configures loot filter parsing.
type FilterConfig struct {
	Path     string `yaml:"path"`
	FilterID string `yaml:"filter_id"`

	// Chaos-value cutoffs for deriving rarity from prices.
	Thresholds ThresholdsConfig `yaml:"thresholds"`
}

// ThresholdsConfig holds the chaos cutoffs per rarity class.
type ThresholdsConfig struct {
	Top  float64 `yaml:"top"`
	High float64 `yaml:"high"`
	Mid  float64 `yaml:"mid"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "divistash",
		Version: "0.3.0",

		API: APIConfig{
			LeaguesURL: "https://api.pathofexile.com/leagues?type=main&compact=1",
			PricesURL:  "https://poe.ninja/api/data/itemoverview",
			UserAgent:  "divistash/0.3.0",
			Timeout:    "30s",
		},

		Storage: StorageConfig{
			DatabasePath: "data/divistash.db",
			LeagueTTL:    "24h",
		},

		Filter: FilterConfig{
			FilterID: "default",
			Thresholds: ThresholdsConfig{
				Top:  100,
				High: 10,
				Mid:  2,
			},
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults, not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets the environment win over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DIVISTASH_LEAGUES_URL"); v != "" {
		c.API.LeaguesURL = v
	}
	if v := os.Getenv("DIVISTASH_PRICES_URL"); v != "" {
		c.API.PricesURL = v
	}
	if v := os.Getenv("DIVISTASH_DB_PATH"); v != "" {
		c.Storage.DatabasePath = v
	}
	if v := os.Getenv("DIVISTASH_FILTER_PATH"); v != "" {
		c.Filter.Path = v
	}
	if v := os.Getenv("DIVISTASH_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// APITimeout parses the configured API timeout, defaulting to 30s.
func (c *Config) APITimeout() time.Duration {
	return parseDuration(c.API.Timeout, 30*time.Second)
}

// LeagueTTL parses the configured league cache TTL, defaulting to 24h.
func (c *Config) LeagueTTL() time.Duration {
	return parseDuration(c.Storage.LeagueTTL, 24*time.Hour)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
