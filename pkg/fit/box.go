package fit

import (
	"github.com/go-fit/fit/pkg/flow"
	"github.com/go-fit/fit/pkg/geometry"
)

// Box is a fixed-size element. It reports the same size under every
// proposal, making it the building block for hosts whose items are
// pre-measured, for scene files, and for tests.
//
// Common uses:
//
//	// Fixed-size item
//	fit.Box{Width: 100, Height: 50}
//
//	// Item negotiating 8 units of breathing room on every edge
//	fit.Box{Width: 100, Height: 50, Gap: flow.UniformSpacing(8)}
//
//	// Item that always ends its line
//	fit.Box{Width: 100, Height: 50, Break: &flow.Break{After: true}}
type Box struct {
	Width  float64
	Height float64
	// Gap is the per-edge spacing preference the box negotiates with.
	Gap flow.Spacing
	// Break, when non-nil, attaches an explicit line-break directive.
	Break *flow.Break
}

// Measure returns the declared size regardless of the proposal.
func (b Box) Measure(geometry.Proposal) geometry.Size {
	return geometry.Size{Width: b.Width, Height: b.Height}
}

// Spacing returns the declared per-edge preference.
func (b Box) Spacing() flow.Spacing {
	return b.Gap
}

// LineBreak reports the attached directive; inactive when Break is nil.
func (b Box) LineBreak() (flow.Break, bool) {
	if b.Break == nil {
		return flow.Break{}, false
	}
	return *b.Break, true
}

// Items adapts boxes into the element slice Layout operations consume.
func Items(boxes ...Box) []flow.Element {
	items := make([]flow.Element, len(boxes))
	for i, b := range boxes {
		items[i] = b
	}
	return items
}

// Anchored overrides the flow-level anchor policy for one element: the
// wrapped element aligns on Offset, measured from its top edge, instead
// of the policy every other element follows.
//
//	// A 40-tall icon whose visual baseline sits 32 units down
//	fit.Anchored{Element: fit.Box{Width: 40, Height: 40}, Offset: 32}
type Anchored struct {
	Element flow.Element
	Offset  float64
}

// Measure delegates to the wrapped element.
func (a Anchored) Measure(proposal geometry.Proposal) geometry.Size {
	return a.Element.Measure(proposal)
}

// Spacing delegates to the wrapped element.
func (a Anchored) Spacing() flow.Spacing {
	return a.Element.Spacing()
}

// AnchorOffset returns the declared anchor override.
func (a Anchored) AnchorOffset(geometry.Size) float64 {
	return a.Offset
}

// LineBreak forwards the wrapped element's directive, if it carries one.
func (a Anchored) LineBreak() (flow.Break, bool) {
	if b, ok := a.Element.(flow.Breaker); ok {
		return b.LineBreak()
	}
	return flow.Break{}, false
}
