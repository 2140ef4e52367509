package flow

import "math"

// Baseline accumulates a line's vertical metrics as items join it.
//
// Each item contributes its height and an anchor offset measured from its
// own top edge. Highest and Lowest track the extreme anchors seen so far;
// Up and Down are the extents the line needs above and below its shared
// vertical reference to contain every item simultaneously. Extents only
// grow: appending an item never shrinks the line.
type Baseline struct {
	Highest float64
	Lowest  float64
	Up      float64
	Down    float64
}

// newBaseline seeds the accumulator from the line's leading item.
func newBaseline(height, anchor float64) Baseline {
	b := Baseline{Highest: anchor, Lowest: anchor}
	b.Up = b.upExtent()
	b.Down = downExtent(height, anchor)
	return b
}

// Add folds one more item into the accumulator.
func (b *Baseline) Add(height, anchor float64) {
	b.Highest = math.Min(b.Highest, anchor)
	b.Lowest = math.Max(b.Lowest, anchor)
	b.Up = math.Max(b.Up, b.upExtent())
	b.Down = math.Max(b.Down, downExtent(height, anchor))
}

// Height returns the vertical span needed to contain every item seen.
func (b Baseline) Height() float64 {
	return b.Up + b.Down
}

// upExtent is the span above the reference implied by the anchor extremes:
// anchors below the item top push the reference down, anchors above it
// (negative) push the visual top up.
func (b Baseline) upExtent() float64 {
	return math.Abs(math.Max(b.Lowest, 0)) + math.Abs(math.Min(b.Highest, 0))
}

// downExtent is the span one item needs below the reference: the part of
// its body extending past its own anchor.
func downExtent(height, anchor float64) float64 {
	return math.Max(0, height-math.Max(0, anchor))
}
