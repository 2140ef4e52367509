// Package fit is the declarative surface over the flow layout engine.
//
// A Flow struct declares how items pack into lines; New builds a Layout
// that owns the engine configuration and its cache for one layout
// participant. Hosts drive the Layout with element slices and receive
// coordinates through a placement callback.
//
// # Construction
//
// Declare the flow once, reuse the Layout across frames:
//
//	layout := fit.New(fit.Flow{
//	    ItemSpacing: flow.FixedSpacing(geometry.Horizontal, 8),
//	    LineSpacing: flow.PreferredSpacing(geometry.Vertical, 4),
//	    Anchor:      flow.AnchorCenter,
//	    Capacity:    len(items),
//	})
//
//	size := layout.Measure(items, geometry.ProposeWidth(width))
//	layout.Place(items, bounds, geometry.ProposeWidth(width), host.Move)
//
// Repeated calls against an unchanged width replay cached results; call
// MarkDirty when item metrics change out from under the layout.
//
// # Elements
//
// Any type implementing flow.Element participates. Box is the built-in
// fixed-size element for hosts, scenes, and tests:
//
//	items := []flow.Element{
//	    fit.Box{Width: 120, Height: 40},
//	    fit.Box{Width: 80, Height: 40, Gap: flow.UniformSpacing(6)},
//	    fit.Box{Width: 200, Height: 24, Break: &flow.Break{After: true}},
//	}
//
// Wrap an element in Anchored to override the flow-level anchor policy
// for that element alone.
package fit
