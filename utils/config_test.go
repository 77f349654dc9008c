package utils

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("Expected default config to validate, got %v", err)
	}
	if c.Rows != 20 || c.Columns != 20 {
		t.Errorf("Expected 20x20 default, got %dx%d", c.Rows, c.Columns)
	}
	if c.LiveProbability != 0.3 {
		t.Errorf("Expected 0.3 default probability, got %v", c.LiveProbability)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{"rows": 8, "columns": 12, "interval": 100000000, "interactive": true}`)

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Rows != 8 || c.Columns != 12 {
		t.Errorf("Expected 8x12, got %dx%d", c.Rows, c.Columns)
	}
	if c.Interval != 100*time.Millisecond {
		t.Errorf("Expected 100ms, got %v", c.Interval)
	}
	if !c.Interactive {
		t.Error("Expected interactive mode from file")
	}
	if c.StagnationThreshold != DefaultConfig().StagnationThreshold {
		t.Error("Expected unset fields to keep defaults")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped os.ErrNotExist, got %v", err)
	}
	if c != DefaultConfig() {
		t.Error("Expected defaults returned alongside the error")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, `{"rows": `)); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rows", func(c *Config) { c.Rows = 0 }},
		{"negative columns", func(c *Config) { c.Columns = -3 }},
		{"zero interval", func(c *Config) { c.Interval = 0 }},
		{"probability above one", func(c *Config) { c.LiveProbability = 1.2 }},
		{"negative probability", func(c *Config) { c.LiveProbability = -0.5 }},
		{"negative threshold", func(c *Config) { c.StagnationThreshold = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestStatsUpdate(t *testing.T) {
	s := NewStats()
	s.Update(1, 100, 500*time.Millisecond)
	if s.GenerationsPerSecond != 2 {
		t.Errorf("Expected 2 gen/sec, got %f", s.GenerationsPerSecond)
	}
	if s.AveragePopulation != 100 {
		t.Errorf("Expected first sample to seed the average, got %f", s.AveragePopulation)
	}
	s.Update(2, 0, 0)
	if math.Abs(s.AveragePopulation-90) > 1e-9 {
		t.Errorf("Expected moving average 90, got %f", s.AveragePopulation)
	}
	if s.TotalGenerations != 2 {
		t.Errorf("Expected 2 generations, got %d", s.TotalGenerations)
	}
}
