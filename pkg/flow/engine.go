package flow

import (
	"math"

	"github.com/go-fit/fit/pkg/geometry"
)

// PlaceFunc receives one item's placement: its index, the absolute origin
// of its top-left corner, and the sizing proposal it was measured under.
type PlaceFunc func(index int, origin geometry.Offset, proposal geometry.Proposal)

// Engine orchestrates the two flow passes over a Cache: prepare-lines
// (measurement: partition items into lines and compute the aggregate size)
// and place-lines (placement: realize cached line data into coordinates).
//
// An Engine carries configuration only; all state lives in the Cache.
// The zero value packs items with preference-derived spacing, top
// alignment, and leading, unreversed, unstretched lines.
type Engine struct {
	// ItemRule resolves gaps between adjacent items on a line.
	ItemRule SpacingRule
	// LineRule resolves gaps between adjacent lines.
	LineRule SpacingRule
	// Anchor is the shared vertical alignment policy. Elements
	// implementing AnchorProvider override it individually.
	Anchor Anchor
	// Style is the static per-line style, used when StyleFor is nil.
	Style LineStyle
	// StyleFor, when non-nil, resolves each committed line's style from
	// the finished line.
	StyleFor StyleFunc
	// ProposeWidth measures items under the container width instead of an
	// unconstrained proposal.
	ProposeWidth bool
}

// Measure partitions items into lines under the width proposal and returns
// the aggregate size the arrangement requires. Results are cached: a clean
// cache with an unchanged width returns without recomputation, and height
// changes alone never recompute.
func (e *Engine) Measure(cache *Cache, items []Element, proposal geometry.Proposal) geometry.Size {
	cache.Validate(proposal, func() {
		e.prepareLines(cache, items, proposal.Width)
	})
	return cache.size
}

// Place realizes the layout into coordinates, invoking place exactly once
// per item with its absolute origin and its cached sizing proposal.
//
// Measurement results are validated first, so a dirty cache or a changed
// width re-partitions before placing. When the cache already holds
// locations for this width, the placement pass is skipped and the cached
// origin-relative coordinates are replayed against the rect's origin.
func (e *Engine) Place(cache *Cache, items []Element, rect geometry.Rect, proposal geometry.Proposal, place PlaceFunc) {
	e.Measure(cache, items, proposal)
	if !cache.canReusePlacement(len(items), proposal) {
		e.placeLines(cache, proposal.Width)
		cache.placed = proposal
	}
	origin := rect.TopLeft()
	for i, loc := range cache.locations {
		place(i, geometry.Offset{X: origin.X + loc.X, Y: origin.Y + loc.Y}, cache.proposals[i])
	}
}

// prepareLines walks the items once, growing the current line until an
// append is rejected or a break directive intervenes, committing lines as
// they close. Per-item results land in the cache's parallel containers.
func (e *Engine) prepareLines(c *Cache, items []Element, width float64) {
	sizing := geometry.Unconstrained()
	if e.ProposeWidth {
		sizing = geometry.ProposeWidth(width)
	}

	var current *LineBuilder
	suppress := -1 // index forced onto a new line by a prior after-directive

	for i, item := range items {
		size := item.Measure(sizing)
		anchor := e.anchorOf(item, size)
		spacing := item.Spacing()

		c.sizes = append(c.sizes, size)
		c.proposals = append(c.proposals, sizing)
		c.anchors = append(c.anchors, anchor)

		directive, directed := breakOf(item)

		switch {
		case current == nil:
			current = newLineBuilder(len(c.lines), i, size, anchor, spacing, width)
			c.distances = append(c.distances, 0)
		case i == suppress || (directed && !directive.After && directiveHolds(directive, current.snapshot())):
			e.commit(c, current)
			current = newLineBuilder(len(c.lines), i, size, anchor, spacing, width)
			c.distances = append(c.distances, 0)
		default:
			if d, ok := current.TryAppend(i, size, anchor, spacing, e.ItemRule); ok {
				c.distances = append(c.distances, d)
			} else {
				e.commit(c, current)
				current = newLineBuilder(len(c.lines), i, size, anchor, spacing, width)
				c.distances = append(c.distances, 0)
			}
		}

		if directed && directive.After && directiveHolds(directive, current.snapshot()) {
			suppress = i + 1
		}
	}

	if current != nil {
		e.commit(c, current)
	}

	e.totalSize(c, width)
}

// commit finalizes a builder into the cache: the immutable snapshot, its
// resolved style, and the negotiated gap to the previous line.
func (e *Engine) commit(c *Cache, b *LineBuilder) {
	line := b.snapshot()
	gap := 0.0
	if len(c.lines) > 0 {
		prev := c.lines[len(c.lines)-1]
		gap = e.LineRule.Distance(prev.Spacing(), line.Spacing())
	}
	c.lineGaps = append(c.lineGaps, gap)
	c.styles = append(c.styles, e.resolveStyle(line))
	c.lines = append(c.lines, line)
}

// totalSize folds committed lines into the aggregate size: the widest line
// (or the container width when any line stretches against a bounded one)
// by the summed line heights and gaps.
func (e *Engine) totalSize(c *Cache, width float64) {
	var w, h float64
	stretched := false
	for i := range c.lines {
		if c.styles[i].Stretched {
			stretched = true
		}
		w = math.Max(w, c.lines[i].length)
		h += c.lineGaps[i] + c.lines[i].Height()
	}
	if stretched && width != geometry.Unbounded {
		w = width
	}
	c.size = geometry.Size{Width: w, Height: h}
}

// placeLines converts cached line data into per-item locations relative to
// the bounding rectangle's origin.
func (e *Engine) placeLines(c *Cache, width float64) {
	// Alignment reference: the proposed width, or what the lines actually
	// need when the proposal is unbounded. Keeps cached locations a pure
	// function of items and width.
	ref := width
	if ref == geometry.Unbounded {
		ref = c.size.Width
	}

	n := len(c.sizes)
	if cap(c.locations) < n {
		c.locations = make([]geometry.Offset, n)
	} else {
		c.locations = c.locations[:n]
	}

	y := 0.0
	for li := range c.lines {
		line := c.lines[li]
		style := c.styles[li]
		y += c.lineGaps[li]

		x := lineStart(style, ref, line.length)
		reference := math.Max(0, line.baseline.Lowest)

		if style.Reversed {
			// Mirrored: the cached distance precedes an item in reading
			// order, so in reverse order it follows the item.
			for k := len(line.indices) - 1; k >= 0; k-- {
				idx := line.indices[k]
				d := c.distances[idx] + stretchFor(line, style, k)
				c.locations[idx] = geometry.Offset{X: x, Y: y + reference - c.anchors[idx]}
				x += c.sizes[idx].Width + d
			}
		} else {
			for k, idx := range line.indices {
				d := c.distances[idx] + stretchFor(line, style, k)
				x += d
				c.locations[idx] = geometry.Offset{X: x, Y: y + reference - c.anchors[idx]}
				x += c.sizes[idx].Width
			}
		}

		y += line.Height()
	}
}

// lineStart returns a line's horizontal starting offset for its style.
func lineStart(style LineStyle, ref, length float64) float64 {
	if style.Stretched {
		return 0
	}
	switch style.Alignment {
	case AlignCenter:
		return (ref - length) / 2
	case AlignTrailing:
		return ref - length
	default:
		return 0
	}
}

// stretchFor returns the extra stretch gap before the item at position k.
func stretchFor(line Line, style LineStyle, position int) float64 {
	if !style.Stretched {
		return 0
	}
	return line.MaximumStretch(position)
}

// Envelope returns the merged spacing this flow presents toward its own
// siblings, derived from the outermost items and lines under the proposal.
//
// The top edge unions the top line's preferences when the flow anchors at
// the top (every item touches the line's top); otherwise only the tallest
// item defines the edge. The bottom edge mirrors this for bottom anchoring.
// Leading and trailing edges depend on each line's alignment: a
// leading-aligned line presses its first item against the leading edge
// (union), while only the longest line reaches the trailing edge;
// trailing-aligned lines mirror this; center-aligned lines contribute only
// the longest line's edge items; stretched lines touch both edges.
func (e *Engine) Envelope(cache *Cache, items []Element, proposal geometry.Proposal) Spacing {
	e.Measure(cache, items, proposal)
	lines := cache.lines
	if len(lines) == 0 {
		return Spacing{}
	}

	var env Spacing

	top := lines[0]
	if e.Anchor == AnchorTop {
		env.Top = top.union.Top
	} else {
		env.Top = top.tallest.spacing.Top
	}
	bottom := lines[len(lines)-1]
	if e.Anchor == AnchorBottom {
		env.Bottom = bottom.union.Bottom
	} else {
		env.Bottom = bottom.tallest.spacing.Bottom
	}

	longest := 0
	for i := range lines {
		if lines[i].length > lines[longest].length {
			longest = i
		}
	}

	for i := range lines {
		style := cache.styles[i]
		leads := style.Stretched || style.Alignment == AlignLeading
		trails := style.Stretched || style.Alignment == AlignTrailing
		if leads || i == longest {
			env.Leading = math.Max(env.Leading, lines[i].first.spacing.Leading)
		}
		if trails || i == longest {
			env.Trailing = math.Max(env.Trailing, lines[i].last.spacing.Trailing)
		}
	}

	return env
}

// resolveStyle applies the static style or the per-line resolver.
func (e *Engine) resolveStyle(line Line) LineStyle {
	if e.StyleFor != nil {
		return e.StyleFor(line)
	}
	return e.Style
}

// anchorOf resolves one element's alignment anchor: its own override when
// it provides one, the flow policy otherwise.
func (e *Engine) anchorOf(item Element, size geometry.Size) float64 {
	if p, ok := item.(AnchorProvider); ok {
		return p.AnchorOffset(size)
	}
	return e.Anchor.Offset(size.Height)
}

// breakOf extracts an element's break directive, if it carries an active one.
func breakOf(item Element) (Break, bool) {
	if b, ok := item.(Breaker); ok {
		return b.LineBreak()
	}
	return Break{}, false
}

// directiveHolds evaluates a directive's predicate against the line view.
func directiveHolds(directive Break, line Line) bool {
	return directive.When == nil || directive.When(line)
}
