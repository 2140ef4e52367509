package geometry

import (
	"fmt"
	"math"
)

// Unbounded marks a proposal dimension that carries no constraint.
const Unbounded = math.MaxFloat64

// Proposal is a sizing proposal offered to an element or a layout: each
// dimension is either a concrete bound or Unbounded.
//
// The zero value proposes zero space in both dimensions. Use Unconstrained
// for a proposal that lets elements report their ideal size.
type Proposal struct {
	Width  float64
	Height float64
}

// Unconstrained returns a proposal with no bound in either dimension.
func Unconstrained() Proposal {
	return Proposal{Width: Unbounded, Height: Unbounded}
}

// ProposeWidth returns a proposal bounding only the width.
func ProposeWidth(width float64) Proposal {
	return Proposal{Width: width, Height: Unbounded}
}

// Constrain clamps size to the proposal's bounded dimensions.
func (p Proposal) Constrain(size Size) Size {
	w := size.Width
	if p.Width != Unbounded && w > p.Width {
		w = p.Width
	}
	h := size.Height
	if p.Height != Unbounded && h > p.Height {
		h = p.Height
	}
	return Size{Width: math.Max(0, w), Height: math.Max(0, h)}
}

// Axis identifies a layout direction.
//
// Horizontal is the zero value: flows pack items along the horizontal axis
// and stack lines along the vertical one.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}
