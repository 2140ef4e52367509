package fit

import (
	"fmt"

	"github.com/go-fit/fit/pkg/flow"
	"github.com/go-fit/fit/pkg/geometry"
)

// Flow declares how a layout packs items into lines. The zero value packs
// with preference-derived spacing, top alignment, and plain leading lines.
type Flow struct {
	// ItemSpacing resolves gaps between adjacent items on a line.
	ItemSpacing flow.SpacingRule
	// LineSpacing resolves gaps between adjacent lines.
	LineSpacing flow.SpacingRule
	// Anchor is the shared vertical alignment policy. Elements wrapped in
	// Anchored (or implementing flow.AnchorProvider) override it.
	Anchor flow.Anchor
	// Style applies to every line when StyleFor is nil.
	Style flow.LineStyle
	// StyleFor resolves each committed line's style individually.
	StyleFor flow.StyleFunc
	// ProposeWidth measures items under the container width instead of an
	// unconstrained proposal.
	ProposeWidth bool
	// Capacity hints the expected item count so the cache can pre-size its
	// containers. Zero is fine; containers grow as needed.
	Capacity int
}

// Layout binds one engine configuration to one cache. A Layout belongs to
// a single layout participant; callers serialize access to it.
type Layout struct {
	engine flow.Engine
	cache  *flow.Cache
}

// New builds a Layout from the declared flow.
//
// Panics when Capacity is negative: a hint below zero is always a
// programmer error, never a meaningful configuration.
func New(config Flow) *Layout {
	if config.Capacity < 0 {
		panic(fmt.Sprintf(
			"Flow declared with negative Capacity (%d).\n\n"+
				"Capacity hints how many items the layout will hold so the cache can\n"+
				"pre-size its containers. A negative hint usually happens when:\n"+
				"- The hint is derived from a subtraction that can underflow\n"+
				"- A sentinel like -1 stands in for \"unknown\"\n\n"+
				"Solutions:\n"+
				"- Pass 0 when the item count is unknown; containers grow as needed\n"+
				"- Clamp derived hints at zero before declaring the Flow",
			config.Capacity,
		))
	}
	return &Layout{
		engine: flow.Engine{
			ItemRule:     config.ItemSpacing,
			LineRule:     config.LineSpacing,
			Anchor:       config.Anchor,
			Style:        config.Style,
			StyleFor:     config.StyleFor,
			ProposeWidth: config.ProposeWidth,
		},
		cache: flow.NewCache(config.Capacity),
	}
}

// Measure partitions items into lines under the proposal and returns the
// aggregate size the arrangement requires. Clean caches with an unchanged
// width return without recomputation.
func (l *Layout) Measure(items []flow.Element, proposal geometry.Proposal) geometry.Size {
	return l.engine.Measure(l.cache, items, proposal)
}

// Place realizes the layout into rect, invoking place once per item with
// its absolute origin and the sizing proposal it was measured under.
func (l *Layout) Place(items []flow.Element, rect geometry.Rect, proposal geometry.Proposal, place flow.PlaceFunc) {
	l.engine.Place(l.cache, items, rect, proposal, place)
}

// Envelope returns the merged spacing the arrangement presents toward its
// own siblings under the proposal.
func (l *Layout) Envelope(items []flow.Element, proposal geometry.Proposal) flow.Spacing {
	return l.engine.Envelope(l.cache, items, proposal)
}

// MarkDirty invalidates cached results. The next Measure or Place
// recomputes from the elements.
func (l *Layout) MarkDirty() {
	l.cache.MarkDirty()
}

// Size returns the aggregate size from the last measurement pass.
func (l *Layout) Size() geometry.Size {
	return l.cache.Size()
}

// Lines returns the committed lines from the last measurement pass, in
// creation order. Treat the returned slice as read-only.
func (l *Layout) Lines() []flow.Line {
	return l.cache.Lines()
}

// Styles returns the resolved per-line styles, index-aligned with Lines.
// Treat the returned slice as read-only.
func (l *Layout) Styles() []flow.LineStyle {
	return l.cache.Styles()
}

// ItemSize returns the measured size of the item at index from the last
// measurement pass.
func (l *Layout) ItemSize(index int) geometry.Size {
	return l.cache.ItemSize(index)
}

// ItemDistance returns the resolved gap between the item at index and the
// previous item on its line; 0 when the item leads its line.
func (l *Layout) ItemDistance(index int) float64 {
	return l.cache.ItemDistance(index)
}

// LineDistance returns the resolved gap between the line at index and the
// previous line; 0 for the first line.
func (l *Layout) LineDistance(index int) float64 {
	return l.cache.LineDistance(index)
}
