package flow

import (
	"math"

	"github.com/go-fit/fit/pkg/geometry"
)

// itemRecord captures the spacing preference and measured size of one line
// member, kept for gap negotiation and the merged spacing envelope.
type itemRecord struct {
	spacing Spacing
	size    geometry.Size
}

// LineBuilder accumulates one row of items during the measurement pass.
// It exists only while the pass runs; committing it produces an immutable
// Line snapshot.
type LineBuilder struct {
	index     int
	indices   []int
	baseline  Baseline
	length    float64
	offered   float64
	available float64
	first     itemRecord
	last      itemRecord
	tallest   itemRecord
	union     Spacing
}

// newLineBuilder opens a line with its leading item and the width the
// container offers. An oversize leading item saturates the remaining
// capacity at zero instead of failing: no item is ever rejected outright.
func newLineBuilder(index, leading int, size geometry.Size, anchor float64, spacing Spacing, width float64) *LineBuilder {
	rec := itemRecord{spacing: spacing, size: size}
	return &LineBuilder{
		index:     index,
		indices:   []int{leading},
		baseline:  newBaseline(size.Height, anchor),
		length:    size.Width,
		offered:   width,
		available: math.Max(0, width-size.Width),
		first:     rec,
		last:      rec,
		tallest:   rec,
		union:     spacing,
	}
}

// TryAppend attempts to add the item to the line. On success it returns the
// negotiated distance to the previous item and true. On failure it returns
// (0, false) and the builder is left exactly as it was: callers rely on
// rejection having no side effects to open a fresh line instead, without
// rolling anything back.
func (b *LineBuilder) TryAppend(index int, size geometry.Size, anchor float64, spacing Spacing, rule SpacingRule) (float64, bool) {
	distance := rule.Distance(b.last.spacing, spacing)
	occupied := distance + size.Width
	if occupied > b.available {
		return 0, false
	}
	b.indices = append(b.indices, index)
	b.available -= occupied
	b.length += occupied
	b.last = itemRecord{spacing: spacing, size: size}
	if size.Height > b.tallest.size.Height {
		b.tallest = itemRecord{spacing: spacing, size: size}
	}
	b.union = b.union.Union(spacing)
	b.baseline.Add(size.Height, anchor)
	return distance, true
}

// snapshot returns the line's current immutable view. The indices slice is
// shared, not copied: a committed line owns it because the builder is
// discarded at commit, and mid-pass views handed to break predicates and
// style resolvers are read-only by contract.
func (b *LineBuilder) snapshot() Line {
	return Line{
		index:     b.index,
		indices:   b.indices,
		baseline:  b.baseline,
		length:    b.length,
		offered:   b.offered,
		available: b.available,
		first:     b.first,
		last:      b.last,
		tallest:   b.tallest,
		union:     b.union,
	}
}

// Line is an immutable row of items committed by the measurement pass.
// Break predicates and style resolvers receive Lines to inspect; the
// placement pass converts them into coordinates.
type Line struct {
	index     int
	indices   []int
	baseline  Baseline
	length    float64
	offered   float64
	available float64
	first     itemRecord
	last      itemRecord
	tallest   itemRecord
	union     Spacing
}

// Index returns the line's creation-order position, starting at 0.
func (l Line) Index() int { return l.index }

// Count returns the number of items on the line.
func (l Line) Count() int { return len(l.indices) }

// Item returns the item index at the given position in reading order.
func (l Line) Item(position int) int { return l.indices[position] }

// Length returns the summed item widths plus inter-item distances.
func (l Line) Length() float64 { return l.length }

// Offered returns the width the container offered when the line opened.
func (l Line) Offered() float64 { return l.offered }

// Available returns the capacity the line has not used yet.
func (l Line) Available() float64 { return l.available }

// Height returns the accumulated line height.
func (l Line) Height() float64 { return l.baseline.Height() }

// Baseline returns the accumulated vertical metrics of the line.
func (l Line) Baseline() Baseline { return l.baseline }

// Spacing returns the union of the member items' preferences: the value
// the line presents when negotiating gaps against neighboring lines.
func (l Line) Spacing() Spacing { return l.union }

// FillRatio reports how much of the offered width the line occupies, in
// [0, 1]. Lines offered unbounded width report 0; a sole oversize item
// overflowing a bounded width reports 1.
func (l Line) FillRatio() float64 {
	if l.offered == geometry.Unbounded {
		return 0
	}
	if l.offered <= 0 {
		return 1
	}
	return math.Min(1, l.length/l.offered)
}

// MaximumStretch returns the extra gap inserted before the item at the
// given position when the line is stretch-justified: the remaining
// capacity split evenly across the non-leading items, so the trailing edge
// reaches the offered width exactly. The leading position stretches by
// zero, which also covers single-item lines. Lines offered unbounded width
// stretch by zero: there is no edge to justify against.
func (l Line) MaximumStretch(position int) float64 {
	if position == 0 || l.offered == geometry.Unbounded {
		return 0
	}
	return l.available / float64(len(l.indices)-1)
}
