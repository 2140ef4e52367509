// Package scene loads, validates, and formats the scene files consumed by
// the fit CLI.
//
// Two formats describe the same document: a YAML schema (.yaml, .yml) and a
// compact DSL (.fit). Both parse into a Document, which adapts into the
// runtime types of pkg/fit.
package scene

import (
	"fmt"

	"github.com/go-fit/fit/pkg/errors"
	"github.com/go-fit/fit/pkg/fit"
	"github.com/go-fit/fit/pkg/flow"
	"github.com/go-fit/fit/pkg/geometry"
)

// Document is one parsed scene: flow options plus an ordered item list.
type Document struct {
	Flow  FlowConfig   `yaml:"flow,omitempty"`
	Items []ItemConfig `yaml:"items"`
}

// FlowConfig mirrors fit.Flow in serializable form.
type FlowConfig struct {
	// Width bounds the container. 0 means unbounded: everything packs onto
	// a single line.
	Width float64 `yaml:"width,omitempty"`
	// ItemGap configures the distance rule between items sharing a line.
	// Absent means preference-derived with a floor of 0.
	ItemGap *GapConfig `yaml:"item-gap,omitempty"`
	// LineGap configures the distance rule between stacked lines.
	LineGap *GapConfig `yaml:"line-gap,omitempty"`
	// Anchor is the shared vertical alignment policy: top, center, bottom.
	Anchor string `yaml:"anchor,omitempty"`
	// Align positions each line horizontally: leading, center, trailing.
	Align string `yaml:"align,omitempty"`
	// Reversed lays each line out in reverse reading order.
	Reversed bool `yaml:"reversed,omitempty"`
	// Stretched distributes leftover width as extra inter-item gaps.
	Stretched bool `yaml:"stretched,omitempty"`
	// ProposeWidth forwards the container width to item measurement.
	ProposeWidth bool `yaml:"propose-width,omitempty"`
}

// GapConfig selects a spacing rule: a fixed distance, or preference-derived
// with an optional floor. NoFloor defers entirely to the preferences.
type GapConfig struct {
	Fixed   *float64 `yaml:"fixed,omitempty"`
	Min     float64  `yaml:"min,omitempty"`
	NoFloor bool     `yaml:"no-floor,omitempty"`
}

// ItemConfig describes one fixed-size item.
type ItemConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Gap is a uniform per-edge spacing preference. Spacing overrides it
	// edge by edge when present.
	Gap     float64        `yaml:"gap,omitempty"`
	Spacing *SpacingConfig `yaml:"spacing,omitempty"`
	// Anchor overrides the flow anchor policy with an offset from the
	// item's top edge.
	Anchor *float64 `yaml:"anchor,omitempty"`
	// Break attaches an explicit line-break directive.
	Break *BreakConfig `yaml:"break,omitempty"`
}

// SpacingConfig is a per-edge spacing preference.
type SpacingConfig struct {
	Top      float64 `yaml:"top,omitempty"`
	Leading  float64 `yaml:"leading,omitempty"`
	Bottom   float64 `yaml:"bottom,omitempty"`
	Trailing float64 `yaml:"trailing,omitempty"`
}

// BreakConfig is a serializable break directive. MinFill gates the break on
// the accumulating line's fill ratio at the moment the directive is checked.
type BreakConfig struct {
	After   bool     `yaml:"after,omitempty"`
	MinFill *float64 `yaml:"min-fill,omitempty"`
}

// Validate checks the document against the ranges the runtime accepts.
func (d *Document) Validate() error {
	const op = "scene.Validate"
	if d.Flow.Width < 0 {
		return errors.Wrap(op, errors.KindScene,
			fmt.Errorf("flow width %g is negative", d.Flow.Width))
	}
	if _, err := parseAnchor(d.Flow.Anchor); err != nil {
		return errors.Wrap(op, errors.KindScene, err)
	}
	if _, err := parseAlignment(d.Flow.Align); err != nil {
		return errors.Wrap(op, errors.KindScene, err)
	}
	for i, item := range d.Items {
		if item.Width < 0 || item.Height < 0 {
			return errors.Wrap(op, errors.KindScene,
				fmt.Errorf("item %d: negative size %gx%g", i, item.Width, item.Height))
		}
		if item.Break != nil && item.Break.MinFill != nil {
			if f := *item.Break.MinFill; f < 0 || f > 1 {
				return errors.Wrap(op, errors.KindScene,
					fmt.Errorf("item %d: break min-fill %g outside [0, 1]", i, f))
			}
		}
	}
	return nil
}

// Layout builds the runtime layout the document configures. The document
// must have passed Validate; unknown anchor or alignment names fall back to
// their zero policies here.
func (d *Document) Layout() *fit.Layout {
	anchor, _ := parseAnchor(d.Flow.Anchor)
	align, _ := parseAlignment(d.Flow.Align)
	return fit.New(fit.Flow{
		ItemSpacing: d.Flow.ItemGap.rule(geometry.Horizontal),
		LineSpacing: d.Flow.LineGap.rule(geometry.Vertical),
		Anchor:      anchor,
		Style: flow.LineStyle{
			Alignment: align,
			Reversed:  d.Flow.Reversed,
			Stretched: d.Flow.Stretched,
		},
		ProposeWidth: d.Flow.ProposeWidth,
		Capacity:     len(d.Items),
	})
}

// Elements builds the flow elements the document describes, in item order.
func (d *Document) Elements() []flow.Element {
	items := make([]flow.Element, 0, len(d.Items))
	for _, cfg := range d.Items {
		items = append(items, cfg.element())
	}
	return items
}

// Proposal returns the width proposal the document's container implies.
func (d *Document) Proposal() geometry.Proposal {
	if d.Flow.Width <= 0 {
		return geometry.Unconstrained()
	}
	return geometry.ProposeWidth(d.Flow.Width)
}

func (g *GapConfig) rule(axis geometry.Axis) flow.SpacingRule {
	if g == nil {
		return flow.PreferredSpacing(axis, 0)
	}
	if g.Fixed != nil {
		return flow.FixedSpacing(axis, *g.Fixed)
	}
	if g.NoFloor {
		return flow.PreferredSpacing(axis, flow.NoFloor)
	}
	return flow.PreferredSpacing(axis, g.Min)
}

func (c ItemConfig) element() flow.Element {
	box := fit.Box{Width: c.Width, Height: c.Height, Gap: c.spacing()}
	if c.Break != nil {
		box.Break = c.Break.directive()
	}
	if c.Anchor != nil {
		return fit.Anchored{Element: box, Offset: *c.Anchor}
	}
	return box
}

func (c ItemConfig) spacing() flow.Spacing {
	if c.Spacing != nil {
		return flow.Spacing{
			Top:      c.Spacing.Top,
			Leading:  c.Spacing.Leading,
			Bottom:   c.Spacing.Bottom,
			Trailing: c.Spacing.Trailing,
		}
	}
	return flow.UniformSpacing(c.Gap)
}

func (b *BreakConfig) directive() *flow.Break {
	br := &flow.Break{After: b.After}
	if b.MinFill != nil {
		threshold := *b.MinFill
		br.When = func(l flow.Line) bool { return l.FillRatio() >= threshold }
	}
	return br
}

func parseAnchor(s string) (flow.Anchor, error) {
	switch s {
	case "", "top":
		return flow.AnchorTop, nil
	case "center":
		return flow.AnchorCenter, nil
	case "bottom":
		return flow.AnchorBottom, nil
	}
	return 0, fmt.Errorf("unknown anchor %q (want top, center, or bottom)", s)
}

func parseAlignment(s string) (flow.LineAlignment, error) {
	switch s {
	case "", "leading":
		return flow.AlignLeading, nil
	case "center":
		return flow.AlignCenter, nil
	case "trailing":
		return flow.AlignTrailing, nil
	}
	return 0, fmt.Errorf("unknown alignment %q (want leading, center, or trailing)", s)
}
