package ingest

import (
	"fmt"

	"github.com/FocuswithJustin/IntersectionFinder/core/errors"
	"github.com/FocuswithJustin/IntersectionFinder/core/region"
	"github.com/FocuswithJustin/IntersectionFinder/internal/config"
)

// Policy bounds how many rectangles an input may contribute.
type Policy struct {
	MinRects   int
	MaxRects   int
	TruncateTo int
}

// DefaultPolicy accepts 2 to 10 rectangles and keeps the first 9 of anything
// larger.
func DefaultPolicy() Policy {
	return PolicyFromConfig(config.Default())
}

// PolicyFromConfig extracts the size policy from cfg.
func PolicyFromConfig(cfg config.Config) Policy {
	return Policy{
		MinRects:   cfg.MinRects,
		MaxRects:   cfg.MaxRects,
		TruncateTo: cfg.TruncateTo,
	}
}

// Apply enforces the policy. Inputs above MaxRects are cut down to the first
// TruncateTo rectangles and truncated is reported as true.
func (p Policy) Apply(rects []region.Bounds) (kept []region.Bounds, truncated bool, err error) {
	if len(rects) < p.MinRects {
		return nil, false, errors.NewValidation("rects",
			fmt.Sprintf("need at least %d rectangles, got %d", p.MinRects, len(rects)))
	}
	if len(rects) > p.MaxRects {
		return rects[:p.TruncateTo:p.TruncateTo], true, nil
	}
	return rects, false, nil
}

// Build turns bounds into initial regions numbered from 1 in input order.
func Build(rects []region.Bounds) ([]*region.Region, error) {
	regions := make([]*region.Region, 0, len(rects))
	for i, b := range rects {
		r, err := region.FromBounds(b, i+1)
		if err != nil {
			return nil, errors.Wrapf(err, "rectangle %d", i+1)
		}
		regions = append(regions, r)
	}
	return regions, nil
}
