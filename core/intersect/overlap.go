package intersect

import (
	"github.com/FocuswithJustin/IntersectionFinder/core/region"
)

// OutcomeKind classifies the result of intersecting two regions.
type OutcomeKind int

const (
	// Disjoint means the regions are separated on at least one axis.
	Disjoint OutcomeKind = iota
	// Touching means the regions share an edge or corner but no area.
	Touching
	// Overlap means the regions share a positive area.
	Overlap
)

func (k OutcomeKind) String() string {
	switch k {
	case Disjoint:
		return "disjoint"
	case Touching:
		return "touching"
	case Overlap:
		return "overlap"
	default:
		return "unknown"
	}
}

// Outcome is the result of Intersect. Region is set only for Overlap.
type Outcome struct {
	Kind   OutcomeKind
	Region *region.Region
}

// Overlaps reports whether a and b overlap or touch. Shared edges count,
// so a true result does not imply a positive-area intersection.
func Overlaps(a, b *region.Region) bool {
	return !(a.Right() < b.X() ||
		a.X() > b.Right() ||
		a.Top() < b.Y() ||
		a.Y() > b.Top())
}

// Intersect computes the overlap of a and b. On a positive-area overlap the
// returned region is derived and carries the union of both parents' ids.
func Intersect(a, b *region.Region) (Outcome, error) {
	if !Overlaps(a, b) {
		return Outcome{Kind: Disjoint}, nil
	}

	x := max(a.X(), b.X())
	y := max(a.Y(), b.Y())
	width := min(a.Right(), b.Right()) - x
	height := min(a.Top(), b.Top()) - y
	if width <= 0 || height <= 0 {
		return Outcome{Kind: Touching}, nil
	}

	r, err := region.NewDerived(x, y, width, height)
	if err != nil {
		return Outcome{}, err
	}
	r.MergeContributors(a.IDs())
	r.MergeContributors(b.IDs())
	return Outcome{Kind: Overlap, Region: r}, nil
}
