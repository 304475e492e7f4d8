// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/futsal/internal/domain/allocation"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite roster file. Empty keeps the roster in memory.
	DBPath string `koanf:"db_path"`

	// MinPerTeam is the attendance threshold multiplier for generation.
	MinPerTeam int `koanf:"min_per_team"`

	// DefaultTeamCount, DefaultStrategy and DefaultMode seed new sessions.
	DefaultTeamCount int    `koanf:"default_team_count"`
	DefaultStrategy  string `koanf:"default_strategy"`
	DefaultMode      string `koanf:"default_mode"`

	// RandomSeed fixes the allocator's random source; 0 seeds from time.
	RandomSeed int64 `koanf:"random_seed"`

	// MetricsEnabled turns allocation and swap counters on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsRefreshInterval paces the background gauge updaters, e.g. "10s".
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		DBPath:           "",
		MinPerTeam:       4,
		DefaultTeamCount: 2,
		DefaultStrategy:  "tactical",
		DefaultMode:      "fair",
		RandomSeed:       0,

		MetricsEnabled:         true,
		MetricsRefreshInterval: 10 * time.Second,
	}
}

// Validate checks the loaded values for consistency.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.MinPerTeam < 1 {
		return fmt.Errorf("%w: min_per_team must be at least 1", ErrInvalidConfig)
	}
	if c.DefaultTeamCount != 2 && c.DefaultTeamCount != 3 {
		return fmt.Errorf("%w: default_team_count must be 2 or 3", ErrInvalidConfig)
	}
	if _, err := allocation.ParseStrategy(c.DefaultStrategy); err != nil {
		return fmt.Errorf("%w: default_strategy: %w", ErrInvalidConfig, err)
	}
	if _, err := allocation.ParseMode(c.DefaultMode); err != nil {
		return fmt.Errorf("%w: default_mode: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.MetricsRefreshInterval <= 0 {
		return fmt.Errorf("%w: metrics_refresh_interval must be positive", ErrInvalidConfig)
	}
	return nil
}
