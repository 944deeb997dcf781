// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/FocuswithJustin/IntersectionFinder/core/errors"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "INTERSECTIONS_"

// Config holds the settings shared by all commands. Command-line flags take
// precedence over these values.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// MinRects is the smallest accepted input.
	MinRects int `env:"MIN_RECTS" envDefault:"2"`
	// MaxRects is the largest input processed as is.
	MaxRects int `env:"MAX_RECTS" envDefault:"10"`
	// TruncateTo is how many rectangles are kept from an input above MaxRects.
	TruncateTo int `env:"TRUNCATE_TO" envDefault:"9"`

	// Workers is the number of goroutines per generation (1 = sequential).
	Workers int `env:"WORKERS" envDefault:"1"`
	// MaxGenerations caps the closure search (0 = unlimited).
	MaxGenerations int `env:"MAX_GENERATIONS" envDefault:"0"`
	// CacheSize is the number of memoised results kept across inputs.
	CacheSize int `env:"CACHE_SIZE" envDefault:"64"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:   "info",
		LogFormat:  "text",
		MinRects:   2,
		MaxRects:   10,
		TruncateTo: 9,
		Workers:    1,
		CacheSize:  64,
	}
}

// Load reads the configuration from INTERSECTIONS_* variables.
func Load() (Config, error) {
	return parse(env.Options{Prefix: EnvPrefix})
}

// LoadFrom reads the configuration from vars instead of the process
// environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Prefix: EnvPrefix, Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the size policy and worker settings are coherent.
func (c Config) Validate() error {
	switch {
	case c.MinRects < 1:
		return errors.NewValidation("MIN_RECTS", "must be at least 1")
	case c.MaxRects < c.MinRects:
		return errors.NewValidation("MAX_RECTS", "must not be below MIN_RECTS")
	case c.TruncateTo < c.MinRects || c.TruncateTo > c.MaxRects:
		return errors.NewValidation("TRUNCATE_TO", "must lie between MIN_RECTS and MAX_RECTS")
	case c.Workers < 1:
		return errors.NewValidation("WORKERS", "must be at least 1")
	case c.MaxGenerations < 0:
		return errors.NewValidation("MAX_GENERATIONS", "must not be negative")
	case c.CacheSize < 0:
		return errors.NewValidation("CACHE_SIZE", "must not be negative")
	}
	return nil
}
