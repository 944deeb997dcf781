package config

import (
	"testing"

	"github.com/FocuswithJustin/IntersectionFinder/core/errors"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("LoadFrom(empty) = %+v, want %+v", cfg, Default())
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"INTERSECTIONS_LOG_LEVEL":   "debug",
		"INTERSECTIONS_LOG_FORMAT":  "json",
		"INTERSECTIONS_MAX_RECTS":   "20",
		"INTERSECTIONS_TRUNCATE_TO": "15",
		"INTERSECTIONS_WORKERS":     "4",
		"INTERSECTIONS_CACHE_SIZE":  "0",
		"MAX_RECTS":                 "3", // unprefixed, ignored
	})
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("log settings = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.MaxRects != 20 || cfg.TruncateTo != 15 || cfg.MinRects != 2 {
		t.Errorf("size policy = %d/%d/%d", cfg.MinRects, cfg.MaxRects, cfg.TruncateTo)
	}
	if cfg.Workers != 4 || cfg.CacheSize != 0 {
		t.Errorf("Workers/CacheSize = %d/%d", cfg.Workers, cfg.CacheSize)
	}
}

func TestLoadFrom_BadNumber(t *testing.T) {
	if _, err := LoadFrom(map[string]string{"INTERSECTIONS_WORKERS": "many"}); err == nil {
		t.Error("expected parse error for non-numeric WORKERS")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "valid default", mutate: func(*Config) {}},
		{name: "min below one", mutate: func(c *Config) { c.MinRects = 0 }, field: "MIN_RECTS"},
		{name: "max below min", mutate: func(c *Config) { c.MaxRects = 1 }, field: "MAX_RECTS"},
		{name: "truncate above max", mutate: func(c *Config) { c.TruncateTo = 11 }, field: "TRUNCATE_TO"},
		{name: "truncate below min", mutate: func(c *Config) { c.TruncateTo = 1 }, field: "TRUNCATE_TO"},
		{name: "no workers", mutate: func(c *Config) { c.Workers = 0 }, field: "WORKERS"},
		{name: "negative generations", mutate: func(c *Config) { c.MaxGenerations = -1 }, field: "MAX_GENERATIONS"},
		{name: "negative cache", mutate: func(c *Config) { c.CacheSize = -1 }, field: "CACHE_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			var vErr *errors.ValidationError
			if !errors.As(err, &vErr) || vErr.Field != tt.field {
				t.Errorf("Validate() = %v, want field %s", err, tt.field)
			}
		})
	}
}

func TestLoadFrom_InvalidPolicy(t *testing.T) {
	_, err := LoadFrom(map[string]string{"INTERSECTIONS_TRUNCATE_TO": "50"})
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}
