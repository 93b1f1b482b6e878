// Package infra handles configuration loading for the dashboard
// service.
package infra

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openprocure/procdash/internal/fx"
)

// Config is the top-level configuration structure for procdash.
type Config struct {
	Server ServerConfig       `yaml:"server"`
	Rates  map[string]float64 `yaml:"rates"` // currency code -> EUR rate
	WWP    WWPConfig          `yaml:"wwp"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`          // default ":8080"
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default 30s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default 30s
	MaxUploadMB  int64         `yaml:"max_upload_mb"` // default 64
}

// WWPConfig carries the worldwide-price filter constants. They are
// configuration, not code, so the analysis team can retune thresholds
// without a release.
type WWPConfig struct {
	Sites            []string `yaml:"sites"`             // site allow-list
	CategoryPrefixes []string `yaml:"category_prefixes"` // literal, case-sensitive prefixes
	MinSpend         float64  `yaml:"min_spend"`         // EUR; rows must exceed this
	ExcludedRegion   string   `yaml:"excluded_region"`   // best-price region to reject
	MaxOpportunity   float64  `yaml:"max_opportunity"`   // negative = savings; rows must be <= this
	MinQtyProjection float64  `yaml:"min_qty_projection"`
}

// LoadConfig reads the YAML config at path, applying defaults first so
// a partial file only overrides what it names. An empty path returns
// the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	if cfg.Server.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("config: server.max_upload_mb must be positive")
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxUploadMB:  64,
		},
		Rates: fx.DefaultRates(),
		WWP: WWPConfig{
			Sites: []string{
				"IN Bangalore ITB",
				"IN Chennai",
				"IN Hyderabad",
				"IN Bangalore SEPFC",
			},
			CategoryPrefixes: []string{
				"A", "B", "C", "D", "H", "K", "G", "E", "P1", "P2", "M1", "M2",
			},
			MinSpend:         50000,
			ExcludedRegion:   "India / MEA",
			MaxOpportunity:   -5000,
			MinQtyProjection: 5,
		},
	}
}
