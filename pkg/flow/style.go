package flow

import "fmt"

// LineAlignment controls where a packed line sits along the horizontal
// axis of its container.
type LineAlignment int

const (
	// AlignLeading places the line at the leading edge of the container.
	AlignLeading LineAlignment = iota
	// AlignCenter centers the line within the container.
	AlignCenter
	// AlignTrailing places the line against the trailing edge.
	AlignTrailing
)

// String returns a human-readable representation of the alignment.
func (a LineAlignment) String() string {
	switch a {
	case AlignLeading:
		return "leading"
	case AlignCenter:
		return "center"
	case AlignTrailing:
		return "trailing"
	default:
		return fmt.Sprintf("LineAlignment(%d)", int(a))
	}
}

// LineStyle is the realized horizontal treatment of one committed line.
type LineStyle struct {
	// Alignment positions the packed line within the container width.
	Alignment LineAlignment
	// Reversed lays the line's items out in reverse reading order,
	// mirroring the inter-item spacing with them.
	Reversed bool
	// Stretched distributes the line's remaining capacity as extra
	// inter-item gaps so its trailing edge reaches the container edge.
	// A stretched line ignores Alignment and starts at the leading edge.
	Stretched bool
}

// StyleFunc resolves a style for each committed line. The callback may
// inspect the line's fill ratio, item count, and metrics; it runs exactly
// once per line and must not mutate shared state.
type StyleFunc func(Line) LineStyle
