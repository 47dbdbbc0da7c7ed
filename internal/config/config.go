// Package config defines service configuration and its loading.
package config

import (
	"errors"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database file. Empty means a file under the
	// user's home directory.
	DBPath string `koanf:"db_path"`

	// StaticDir optionally serves a web UI from disk.
	StaticDir string `koanf:"static_dir"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MinPathLength rejects recognition attempts whose raw stroke is
	// shorter than this, in input units. Very short flicks match
	// nothing meaningful.
	MinPathLength float64 `koanf:"min_path_length"`

	// AngleWindowDeg bounds the rotation search, in degrees either side.
	AngleWindowDeg float64 `koanf:"angle_window_deg"`

	// AngleToleranceDeg stops the rotation search once the bracket is
	// this narrow, in degrees.
	AngleToleranceDeg float64 `koanf:"angle_tolerance_deg"`
}

// Default returns a Config populated with the documented defaults.
func Default() *Config {
	return &Config{
		Addr:              ":8080",
		LogLevel:          "info",
		MinPathLength:     100,
		AngleWindowDeg:    45,
		AngleToleranceDeg: 2,
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults (Default())
//  2. file (YAML) if UNISTROKE_CONFIG is set
//  3. env (prefix UNISTROKE_)
func Load() (*Config, error) {
	base := Default()

	k := koanf.New(".")

	if path := os.Getenv("UNISTROKE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: UNISTROKE_ADDR, UNISTROKE_DB_PATH, ...
	// Keys map to struct tags with underscores preserved.
	envProvider := env.Provider("UNISTROKE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "unistroke_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.AngleWindowDeg <= 0 || c.AngleWindowDeg > 180 {
		return errors.New("angle_window_deg must be in (0, 180]")
	}
	if c.AngleToleranceDeg <= 0 || c.AngleToleranceDeg >= c.AngleWindowDeg {
		return errors.New("angle_tolerance_deg must be positive and below angle_window_deg")
	}
	if c.MinPathLength < 0 {
		return errors.New("min_path_length must not be negative")
	}
	return nil
}

// AngleWindow returns the rotation search window in radians.
func (c *Config) AngleWindow() float64 {
	return c.AngleWindowDeg * math.Pi / 180
}

// AngleTolerance returns the rotation search tolerance in radians.
func (c *Config) AngleTolerance() float64 {
	return c.AngleToleranceDeg * math.Pi / 180
}
