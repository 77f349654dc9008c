package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Rows                int           `json:"rows"`
	Columns             int           `json:"columns"`
	Interval            time.Duration `json:"interval"`
	LiveProbability     float64       `json:"live_probability"`
	Seed                uint64        `json:"seed"`
	Workers             int           `json:"workers"`
	UseMemoryPool       bool          `json:"use_memory_pool"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	RefreshEvery        int           `json:"refresh_every"`
	MaxGenerations      int           `json:"max_generations"`
	Interactive         bool          `json:"interactive"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:                20,
		Columns:             20,
		Interval:            500 * time.Millisecond,
		LiveProbability:     0.3,
		Seed:                0, // 0 seeds from the clock
		Workers:             0, // 0 uses every CPU
		UseMemoryPool:       true,
		AutoRestart:         true,
		StagnationThreshold: 5,
		RefreshEvery:        200,
		MaxGenerations:      1000,
		Interactive:         false,
	}
}

// LoadConfig loads configuration from JSON file, on top of DefaultConfig
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks that the configuration can drive an engine and a clock
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Columns <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] grid must be at least 1x1, got %dx%d", c.Rows, c.Columns)
	case c.Interval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] interval must be positive, got %v", c.Interval)
	case !(c.LiveProbability >= 0 && c.LiveProbability <= 1):
		return errors.Wrapf(ErrInvalidConfig, "[Validate] live probability must be within [0, 1], got %v", c.LiveProbability)
	case c.StagnationThreshold < 0 || c.RefreshEvery < 0 || c.MaxGenerations < 0:
		return errors.Wrap(ErrInvalidConfig, "[Validate] thresholds must not be negative")
	}
	return nil
}
