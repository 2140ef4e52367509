package flow

import (
	"fmt"
	"math"

	"github.com/go-fit/fit/pkg/geometry"
)

// NoFloor disables the minimum clamp of a preference-derived spacing rule,
// deferring entirely to the negotiated preference.
const NoFloor = -math.MaxFloat64

// Spacing is a per-edge spacing preference. Adjacent elements on a line
// negotiate their gap from the two facing horizontal edges; adjacent lines
// negotiate theirs from the facing vertical edges.
type Spacing struct {
	Top      float64
	Leading  float64
	Bottom   float64
	Trailing float64
}

// UniformSpacing returns a preference carrying the same value on every edge.
func UniformSpacing(value float64) Spacing {
	return Spacing{Top: value, Leading: value, Bottom: value, Trailing: value}
}

// Union merges two preferences edge-wise, keeping the larger value per edge.
func (s Spacing) Union(other Spacing) Spacing {
	return Spacing{
		Top:      math.Max(s.Top, other.Top),
		Leading:  math.Max(s.Leading, other.Leading),
		Bottom:   math.Max(s.Bottom, other.Bottom),
		Trailing: math.Max(s.Trailing, other.Trailing),
	}
}

// Distance returns the preferred gap between s and a following preference
// along the given axis: the larger of the two facing edge values.
func (s Spacing) Distance(next Spacing, axis geometry.Axis) float64 {
	if axis == geometry.Vertical {
		return math.Max(s.Bottom, next.Top)
	}
	return math.Max(s.Trailing, next.Leading)
}

// SpacingPolicy selects how a SpacingRule resolves gaps.
type SpacingPolicy int

const (
	// SpacingPreferred derives the gap from the adjacent preferences,
	// clamped below by a configured minimum.
	SpacingPreferred SpacingPolicy = iota
	// SpacingFixed ignores the preferences and returns a constant gap.
	SpacingFixed
)

// String returns a human-readable representation of the spacing policy.
func (p SpacingPolicy) String() string {
	switch p {
	case SpacingPreferred:
		return "preferred"
	case SpacingFixed:
		return "fixed"
	default:
		return fmt.Sprintf("SpacingPolicy(%d)", int(p))
	}
}

// SpacingRule resolves the distance between two adjacent items or lines.
// The zero value derives gaps from preferences along the horizontal axis
// with no minimum applied below zero.
type SpacingRule struct {
	Policy SpacingPolicy
	Axis   geometry.Axis
	// Minimum floors a SpacingPreferred gap. NoFloor defers entirely to
	// the preference.
	Minimum float64
	// Value is the constant gap of a SpacingFixed rule.
	Value float64
}

// PreferredSpacing returns a rule deriving gaps from the adjacent
// preferences along axis, clamped below by minimum.
func PreferredSpacing(axis geometry.Axis, minimum float64) SpacingRule {
	return SpacingRule{Policy: SpacingPreferred, Axis: axis, Minimum: minimum}
}

// FixedSpacing returns a rule that always resolves to value.
func FixedSpacing(axis geometry.Axis, value float64) SpacingRule {
	return SpacingRule{Policy: SpacingFixed, Axis: axis, Value: value}
}

// Distance resolves the gap between the previous and the next preference.
// The result is never negative. The distance before a leading item or line
// is 0 by caller policy; the rule is not consulted for it.
func (r SpacingRule) Distance(prev, next Spacing) float64 {
	if r.Policy == SpacingFixed {
		return math.Max(0, r.Value)
	}
	d := prev.Distance(next, r.Axis)
	if d < r.Minimum {
		d = r.Minimum
	}
	return math.Max(0, d)
}
