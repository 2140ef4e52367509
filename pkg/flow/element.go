package flow

import (
	"fmt"

	"github.com/go-fit/fit/pkg/geometry"
)

// Element is one positionable item in a flow. Implementations report an
// intrinsic size under a sizing proposal and a per-edge spacing preference.
// The engine reads each element exactly once per measurement pass and
// never mutates it.
type Element interface {
	Measure(proposal geometry.Proposal) geometry.Size
	Spacing() Spacing
}

// Breaker is implemented by elements carrying an explicit line-break
// directive. LineBreak reports the directive and whether it is active,
// letting configured elements opt out at runtime.
type Breaker interface {
	LineBreak() (Break, bool)
}

// AnchorProvider overrides the flow-level anchor policy for one element.
// AnchorOffset returns the element's alignment anchor, measured from its
// top edge, given the size the measurement pass resolved for it.
type AnchorProvider interface {
	AnchorOffset(size geometry.Size) float64
}

// Break forces a line break around the element carrying it.
type Break struct {
	// After breaks after the carrying element: the next element opens a
	// new line unconditionally, even when it would fit. When false the
	// break applies before the carrying element instead.
	After bool
	// When gates the directive on the accumulating line at the moment the
	// directive is checked; nil means the directive always holds. The
	// callback receives a read-only view and must not retain or mutate it.
	When func(Line) bool
}

// Anchor selects the shared vertical alignment policy of a flow. Elements
// implementing AnchorProvider override it individually.
type Anchor int

const (
	// AnchorTop aligns the top edges of items sharing a line.
	AnchorTop Anchor = iota
	// AnchorCenter aligns the vertical centers of items sharing a line.
	AnchorCenter
	// AnchorBottom aligns the bottom edges of items sharing a line.
	AnchorBottom
)

// String returns a human-readable representation of the anchor policy.
func (a Anchor) String() string {
	switch a {
	case AnchorTop:
		return "top"
	case AnchorCenter:
		return "center"
	case AnchorBottom:
		return "bottom"
	default:
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
}

// Offset returns the anchor's offset from an item's top edge for the given
// item height.
func (a Anchor) Offset(height float64) float64 {
	switch a {
	case AnchorCenter:
		return height / 2
	case AnchorBottom:
		return height
	default:
		return 0
	}
}
