// Package region defines the rectangle model shared by the intersection engine
// and its collaborators.
//
// A Region is either an initial rectangle taken from the input, identified by
// its 1-based input position, or a derived rectangle produced by overlapping
// two other regions, identified by the ascending set of initial ids it was
// built from.
package region

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/IntersectionFinder/core/errors"
)

// Kind distinguishes the two region variants.
type Kind int

const (
	// KindInitial marks a rectangle read from the input.
	KindInitial Kind = iota + 1
	// KindDerived marks a rectangle computed as an overlap.
	KindDerived
)

func (k Kind) String() string {
	switch k {
	case KindInitial:
		return "initial"
	case KindDerived:
		return "derived"
	default:
		return "unknown"
	}
}

// Bounds is the axis-aligned geometry of a region. The anchor corner is
// (X, Y) and the opposite corner is (X+Width, Y+Height).
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"delta_x"`
	Height int `json:"delta_y"`
}

// Right returns X+Width.
func (b Bounds) Right() int { return b.X + b.Width }

// Top returns Y+Height.
func (b Bounds) Top() int { return b.Y + b.Height }

// Validate reports the first non-positive field as a GeometryError, or the
// size whose far edge does not fit in an int.
func (b Bounds) Validate() error {
	const overflow = "places the far edge beyond the int range"
	switch {
	case b.X <= 0:
		return errors.NewGeometry("x", b.X)
	case b.Y <= 0:
		return errors.NewGeometry("y", b.Y)
	case b.Width <= 0:
		return errors.NewGeometry("width", b.Width)
	case b.Height <= 0:
		return errors.NewGeometry("height", b.Height)
	case b.X > math.MaxInt-b.Width:
		return errors.NewGeometryReason("width", overflow, b.Width)
	case b.Y > math.MaxInt-b.Height:
		return errors.NewGeometryReason("height", overflow, b.Height)
	}
	return nil
}

// Region is an axis-aligned rectangle with provenance. Geometry never changes
// after construction.
type Region struct {
	bounds       Bounds
	kind         Kind
	originID     int
	contributors []int
}

// NewInitial creates an initial region for the rectangle at input position id.
func NewInitial(x, y, width, height, id int) (*Region, error) {
	b := Bounds{X: x, Y: y, Width: width, Height: height}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if id < 0 {
		return nil, errors.NewGeometryReason("id", "must not be negative", id)
	}
	return &Region{bounds: b, kind: KindInitial, originID: id}, nil
}

// NewDerived creates a derived region with an empty contributor set. The
// caller populates it with MergeContributors.
func NewDerived(x, y, width, height int) (*Region, error) {
	b := Bounds{X: x, Y: y, Width: width, Height: height}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &Region{bounds: b, kind: KindDerived, contributors: []int{}}, nil
}

// FromBounds creates an initial region from b.
func FromBounds(b Bounds, id int) (*Region, error) {
	return NewInitial(b.X, b.Y, b.Width, b.Height, id)
}

func (r *Region) X() int         { return r.bounds.X }
func (r *Region) Y() int         { return r.bounds.Y }
func (r *Region) Width() int     { return r.bounds.Width }
func (r *Region) Height() int    { return r.bounds.Height }
func (r *Region) Right() int     { return r.bounds.Right() }
func (r *Region) Top() int       { return r.bounds.Top() }
func (r *Region) Bounds() Bounds { return r.bounds }
func (r *Region) Kind() Kind     { return r.kind }

// Area returns Width*Height.
func (r *Region) Area() int { return r.bounds.Width * r.bounds.Height }

// IsInitial reports whether r came from the input.
func (r *Region) IsInitial() bool { return r.kind == KindInitial }

// IsDerived reports whether r is a computed overlap.
func (r *Region) IsDerived() bool { return r.kind == KindDerived }

// OriginID returns the 1-based input position of an initial region, or 0 for
// a derived one.
func (r *Region) OriginID() int {
	if r.kind != KindInitial {
		return 0
	}
	return r.originID
}

// Contributors returns a copy of the contributor set of a derived region, or
// nil for an initial one.
func (r *Region) Contributors() []int {
	if r.kind != KindDerived {
		return nil
	}
	return slices.Clone(r.contributors)
}

// IDs returns the initial ids r stands for: the origin id of an initial
// region, the contributor set of a derived one.
func (r *Region) IDs() []int {
	if r.kind == KindInitial {
		return []int{r.originID}
	}
	return slices.Clone(r.contributors)
}

// BoundsEqual reports whether r and other occupy exactly the same rectangle.
func (r *Region) BoundsEqual(other *Region) bool {
	return r.bounds == other.bounds
}

// IsDistinctFrom reports whether other is a new finding relative to r. It is
// not distinct when both share bounds and other carries no id that r lacks.
// The relation is asymmetric: a superset of r's ids with the same bounds is
// distinct, a subset is not.
func (r *Region) IsDistinctFrom(other *Region) bool {
	if !r.BoundsEqual(other) {
		return true
	}
	own := r.idSet()
	for _, id := range other.idSet() {
		if _, found := slices.BinarySearch(own, id); !found {
			return true
		}
	}
	return false
}

// MergeContributors adds every id from ids that is not yet present, keeping
// the set ascending. It has no effect on initial regions.
func (r *Region) MergeContributors(ids []int) {
	if r.kind != KindDerived {
		return
	}
	for _, id := range ids {
		pos, found := slices.BinarySearch(r.contributors, id)
		if found {
			continue
		}
		r.contributors = slices.Insert(r.contributors, pos, id)
	}
}

// Clone returns a deep copy of r.
func (r *Region) Clone() *Region {
	c := *r
	if r.contributors != nil {
		c.contributors = slices.Clone(r.contributors)
	}
	return &c
}

// Equal reports whether r and other have the same variant, bounds and ids.
func (r *Region) Equal(other *Region) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.kind == other.kind &&
		r.bounds == other.bounds &&
		r.OriginID() == other.OriginID() &&
		slices.Equal(r.contributors, other.contributors)
}

func (r *Region) String() string {
	b := r.bounds
	if r.kind == KindInitial {
		return fmt.Sprintf("#%d (%d,%d) %dx%d", r.originID, b.X, b.Y, b.Width, b.Height)
	}
	ids := make([]string, len(r.contributors))
	for i, id := range r.contributors {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("{%s} (%d,%d) %dx%d", strings.Join(ids, ","), b.X, b.Y, b.Width, b.Height)
}

// idSet returns r's ids without copying. Callers must not modify the result.
func (r *Region) idSet() []int {
	if r.kind == KindInitial {
		return []int{r.originID}
	}
	return r.contributors
}
