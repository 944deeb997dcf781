// Command intersections finds every overlap region among sets of rectangles,
// including overlaps of three or more rectangles.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/IntersectionFinder/core/cache"
	"github.com/FocuswithJustin/IntersectionFinder/core/errors"
	"github.com/FocuswithJustin/IntersectionFinder/core/intersect"
	"github.com/FocuswithJustin/IntersectionFinder/core/region"
	"github.com/FocuswithJustin/IntersectionFinder/internal/config"
	"github.com/FocuswithJustin/IntersectionFinder/internal/ingest"
	"github.com/FocuswithJustin/IntersectionFinder/internal/logging"
	"github.com/FocuswithJustin/IntersectionFinder/internal/report"
)

const version = "0.1.0"

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = 2
	exitIO      = 3
)

// Injectable for tests.
var (
	stdout     io.Writer = os.Stdout
	loadConfig           = config.Load
)

// CLI defines the command-line interface for intersections.
var CLI struct {
	// Global flags; empty means use the environment or the default.
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (text, json)"`

	Find     FindCmd     `cmd:"" help:"Find all intersections among the rectangles of each input"`
	Validate ValidateCmd `cmd:"" help:"Check inputs without computing intersections"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// FindCmd computes and prints the intersections of each input file.
type FindCmd struct {
	Paths          []string `arg:"" help:"Input files (.json, .xml, .txt or .rects, optionally .xz-compressed)"`
	Output         string   `short:"o" help:"Output format" enum:"text,json" default:"text"`
	Workers        int      `short:"w" help:"Goroutines per generation (0 = from environment)" default:"0"`
	MaxGenerations int      `name:"max-generations" help:"Fail when more generations are needed (0 = from environment)" default:"0"`
}

func (c *FindCmd) Run() error {
	cfg, err := settings()
	if err != nil {
		return err
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.MaxGenerations > 0 {
		cfg.MaxGenerations = c.MaxGenerations
	}
	format, err := report.ParseFormat(c.Output)
	if err != nil {
		return err
	}

	ctx := logging.WithRunID(context.Background(), logging.NewRunID())
	engine := intersect.New(
		intersect.WithLogger(logging.LoggerFromContext(ctx)),
		intersect.WithWorkers(cfg.Workers),
		intersect.WithMaxGenerations(cfg.MaxGenerations),
	)
	memo := intersect.NewMemo(engine, cache.NewResultCache(cache.Config{MaxSize: cfg.CacheSize}))
	policy := ingest.PolicyFromConfig(cfg)

	for i, path := range c.Paths {
		initial, err := loadRegions(ctx, path, policy)
		if err != nil {
			logging.RunFailed(ctx, "load", err, "path", path)
			return err
		}

		start := time.Now()
		found, err := memo.Compute(initial)
		if err != nil {
			logging.RunFailed(ctx, "compute", err, "path", path)
			return fmt.Errorf("%s: %w", path, err)
		}
		logging.ComputeFinished(ctx, len(initial), len(found), time.Since(start),
			"path", path,
			"cache_hits", memo.Stats().Hits,
		)

		rep := report.Report{Inputs: initial, Intersections: found}
		if len(c.Paths) > 1 {
			rep.Source = path
			if i > 0 && format == report.FormatText {
				fmt.Fprintln(stdout)
			}
		}
		if err := report.Write(stdout, format, rep); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCmd loads each input and applies the size policy and geometry
// checks.
type ValidateCmd struct {
	Paths []string `arg:"" help:"Input files to check"`
}

func (c *ValidateCmd) Run() error {
	cfg, err := settings()
	if err != nil {
		return err
	}

	ctx := logging.WithRunID(context.Background(), logging.NewRunID())
	policy := ingest.PolicyFromConfig(cfg)

	var firstErr error
	for _, path := range c.Paths {
		initial, err := loadRegions(ctx, path, policy)
		if err != nil {
			logging.RunFailed(ctx, "validate", err, "path", path)
			fmt.Fprintf(stdout, "%s: FAIL: %v\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		fmt.Fprintf(stdout, "%s: OK (%d rectangles)\n", path, len(initial))
	}
	return firstErr
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintf(stdout, "intersections version %s\n", version)
	return nil
}

// Helper functions

// settings loads the environment configuration, applies the global flags
// and initialises logging.
func settings() (config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if CLI.LogLevel != "" {
		cfg.LogLevel = CLI.LogLevel
	}
	if CLI.LogFormat != "" {
		cfg.LogFormat = CLI.LogFormat
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return config.Config{}, err
	}
	logging.InitLogger(level, format)
	return cfg, nil
}

// loadRegions reads path, enforces policy and numbers the kept rectangles
// from 1.
func loadRegions(ctx context.Context, path string, policy ingest.Policy) ([]*region.Region, error) {
	doc, err := ingest.Load(path)
	if err != nil {
		return nil, err
	}
	logging.InputLoaded(ctx, path, string(doc.Format), len(doc.Rects), "compressed", doc.Compressed)

	kept, truncated, err := policy.Apply(doc.Rects)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if truncated {
		logging.InputTruncated(ctx, path, len(doc.Rects), len(kept))
	}

	initial, err := ingest.Build(kept)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return initial, nil
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	var ioErr *errors.IOError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errors.ErrInvalidGeometry), errors.Is(err, errors.ErrInvalidInput):
		return exitInvalid
	case errors.As(err, &ioErr):
		return exitIO
	default:
		return exitFailure
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("intersections"),
		kong.Description("Find every overlap region among a set of rectangles"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err := ctx.Run(); err != nil {
		ctx.Errorf("%v", err)
		os.Exit(exitCode(err))
	}
}
