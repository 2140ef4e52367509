package fit_test

import (
	"path/filepath"
	"testing"

	"github.com/go-fit/fit/pkg/fit"
	"github.com/go-fit/fit/pkg/fittest"
	"github.com/go-fit/fit/pkg/flow"
	"github.com/go-fit/fit/pkg/geometry"
)

// The golden files pin full measure+place output for configurations that
// combine several policies at once; the unit tests in this package assert
// each policy in isolation.

func TestSnapshotTrailingBottomAnchor(t *testing.T) {
	layout := fit.New(fit.Flow{
		ItemSpacing: flow.FixedSpacing(geometry.Horizontal, 10),
		Anchor:      flow.AnchorBottom,
		Style:       flow.LineStyle{Alignment: flow.AlignTrailing},
		Capacity:    3,
	})
	items := fit.Items(
		fit.Box{Width: 60, Height: 20},
		fit.Box{Width: 80, Height: 30},
		fit.Box{Width: 40, Height: 10},
	)

	snap := fittest.Capture(layout, items, geometry.RectFromLTWH(0, 0, 220, 60), geometry.ProposeWidth(220))
	snap.MatchesFile(t, filepath.Join("testdata", "trailing_bottom.json"))
}

func TestSnapshotBreakAndStretch(t *testing.T) {
	layout := fit.New(fit.Flow{
		ItemSpacing: flow.FixedSpacing(geometry.Horizontal, 5),
		LineSpacing: flow.FixedSpacing(geometry.Vertical, 8),
		Style:       flow.LineStyle{Stretched: true},
		Capacity:    4,
	})
	items := fit.Items(
		fit.Box{Width: 30, Height: 20},
		fit.Box{Width: 50, Height: 20, Break: &flow.Break{After: true}},
		fit.Box{Width: 30, Height: 20},
		fit.Box{Width: 50, Height: 20},
	)

	snap := fittest.Capture(layout, items, geometry.RectFromLTWH(0, 0, 100, 80), geometry.ProposeWidth(100))
	snap.MatchesFile(t, filepath.Join("testdata", "break_stretch.json"))
}
