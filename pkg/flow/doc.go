// Package flow implements the line-forming and placement engine behind Fit
// layouts.
//
// Given an ordered sequence of elements, each with an intrinsic size, a
// vertical alignment anchor, and per-edge spacing preferences, the engine
// packs elements left-to-right into lines bounded by an available width,
// stacks the lines vertically, and resolves final per-element coordinates.
//
// # Passes
//
// Layout happens in two decoupled passes over one Cache:
//
//	engine := flow.Engine{ItemRule: flow.FixedSpacing(geometry.Horizontal, 8)}
//	cache := flow.NewCache(len(items))
//
//	size := engine.Measure(cache, items, geometry.ProposeWidth(320))
//	engine.Place(cache, items, geometry.RectFromLTWH(0, 0, size.Width, size.Height),
//		geometry.ProposeWidth(320), func(i int, origin geometry.Offset, p geometry.Proposal) {
//			// hand origin and p to the host's placement primitive
//		})
//
// Measure partitions elements into lines and reports the aggregate size.
// Place realizes cached line data into coordinates and replays them through
// the placement callback. Both passes reuse cached results: a clean cache
// under an unchanged width skips partitioning entirely, and a repeated
// placement under the same width replays cached coordinates without
// re-running the placement pass.
//
// # Invalidation
//
// The Cache follows a dirty/clean protocol. It starts dirty, recomputes on
// Validate, and goes clean until MarkDirty or a width change. Height changes
// never invalidate: a line partition depends on width alone.
//
// # Break directives
//
// Elements implementing Breaker force line breaks before or after
// themselves, optionally gated on the accumulating line's state (such as
// its fill ratio). An after-break forces the next element onto a fresh line
// unconditionally, even when it would fit.
//
// The engine is synchronous and single-threaded by contract: one Cache
// belongs to one layout participant, and callers serialize measurement and
// placement against it.
package flow
