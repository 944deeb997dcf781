// Package intersect discovers every distinct region where two or more input
// rectangles overlap.
//
// Discovery runs in generations. The first generation intersects the input
// rectangles pairwise; each later generation intersects the regions found in
// the previous one against everything known so far. A region built from k
// rectangles can only appear after the (k-1)-rectangle regions that form it,
// so the search reaches its fixed point once a generation adds nothing new.
package intersect

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/FocuswithJustin/IntersectionFinder/core/errors"
	"github.com/FocuswithJustin/IntersectionFinder/core/region"
)

// Engine computes intersection closures. An Engine holds only configuration
// and is safe for concurrent use.
type Engine struct {
	logger         *slog.Logger
	workers        int
	maxGenerations int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-generation debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithWorkers evaluates the pairs of each generation on n goroutines.
// Values below 2 keep evaluation sequential. Results do not depend on n.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithMaxGenerations fails a run that would need more than n generations.
// Zero means unlimited.
func WithMaxGenerations(n int) Option {
	return func(e *Engine) {
		e.maxGenerations = n
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:  slog.New(slog.DiscardHandler),
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats describes a single run.
type Stats struct {
	Generations int
	PairsTested int
	Overlaps    int
	Touching    int
	Disjoint    int
	Duplicates  int
}

// Result is the output of Run.
type Result struct {
	// Regions holds the distinct derived regions in discovery order.
	Regions []*region.Region
	Stats   Stats
}

// pair indexes two arena slots, i < j.
type pair struct {
	i, j int
}

// Compute returns every distinct derived region for initial, in discovery
// order. initial must be non-empty and hold only initial regions.
func (e *Engine) Compute(initial []*region.Region) ([]*region.Region, error) {
	res, err := e.Run(initial)
	if err != nil {
		return nil, err
	}
	return res.Regions, nil
}

// Run is Compute with run statistics.
func (e *Engine) Run(initial []*region.Region) (*Result, error) {
	if err := validateInitial(initial); err != nil {
		return nil, err
	}

	// The arena holds the inputs followed by every region found so far.
	// [start, end) is the most recent generation; the inputs are generation zero.
	base := len(initial)
	arena := make([]*region.Region, base, base*2)
	copy(arena, initial)

	var stats Stats
	start, end := 0, base
	for start < end {
		if e.maxGenerations > 0 && stats.Generations >= e.maxGenerations {
			return nil, &errors.ValidationError{
				Field:   "generations",
				Value:   fmt.Sprint(stats.Generations),
				Message: fmt.Sprintf("closure not reached within %d generations", e.maxGenerations),
			}
		}
		stats.Generations++

		pairs := generationPairs(start, end)
		outcomes, err := e.evaluate(arena, pairs)
		if err != nil {
			return nil, err
		}
		stats.PairsTested += len(pairs)

		added := 0
		for _, out := range outcomes {
			switch out.Kind {
			case Disjoint:
				stats.Disjoint++
			case Touching:
				stats.Touching++
			case Overlap:
				stats.Overlaps++
				if !isNew(arena[base:], out.Region) {
					stats.Duplicates++
					continue
				}
				arena = append(arena, out.Region)
				added++
			}
		}

		e.logger.Debug("generation complete",
			"generation", stats.Generations,
			"pairs", len(pairs),
			"added", added,
			"total", len(arena)-base,
		)
		start, end = end, len(arena)
	}

	found := make([]*region.Region, len(arena)-base)
	copy(found, arena[base:])
	return &Result{Regions: found, Stats: stats}, nil
}

// generationPairs lists every unordered pair below end with at least one
// member in [start, end), ordered by first index then second.
func generationPairs(start, end int) []pair {
	var pairs []pair
	for i := 0; i < end; i++ {
		for j := max(i+1, start); j < end; j++ {
			pairs = append(pairs, pair{i: i, j: j})
		}
	}
	return pairs
}

// evaluate intersects every pair. Outcomes are returned in pair order
// regardless of worker count.
func (e *Engine) evaluate(arena []*region.Region, pairs []pair) ([]Outcome, error) {
	outcomes := make([]Outcome, len(pairs))
	if e.workers < 2 || len(pairs) < 2 {
		for idx, p := range pairs {
			out, err := Intersect(arena[p.i], arena[p.j])
			if err != nil {
				return nil, err
			}
			outcomes[idx] = out
		}
		return outcomes, nil
	}

	var g errgroup.Group
	g.SetLimit(e.workers)
	for idx, p := range pairs {
		g.Go(func() error {
			out, err := Intersect(arena[p.i], arena[p.j])
			if err != nil {
				return err
			}
			outcomes[idx] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// isNew reports whether candidate is distinct from every region in found.
func isNew(found []*region.Region, candidate *region.Region) bool {
	for _, existing := range found {
		if !existing.IsDistinctFrom(candidate) {
			return false
		}
	}
	return true
}

func validateInitial(initial []*region.Region) error {
	if len(initial) == 0 {
		return errors.NewValidation("initial", "at least one region is required")
	}
	for i, r := range initial {
		field := fmt.Sprintf("initial[%d]", i)
		if r == nil {
			return errors.NewValidation(field, "missing region")
		}
		if !r.IsInitial() {
			return errors.NewValidation(field, "derived region is not a valid input")
		}
	}
	return nil
}
