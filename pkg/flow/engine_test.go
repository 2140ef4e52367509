package flow

import (
	"testing"

	"github.com/go-fit/fit/pkg/geometry"
)

func sz(w, h float64) geometry.Size { return geometry.Size{Width: w, Height: h} }

// stubElement is a fixed-size element with an optional break directive.
type stubElement struct {
	size     geometry.Size
	spacing  Spacing
	brk      *Break
	measured int
}

func (s *stubElement) Measure(geometry.Proposal) geometry.Size {
	s.measured++
	return s.size
}

func (s *stubElement) Spacing() Spacing { return s.spacing }

func (s *stubElement) LineBreak() (Break, bool) {
	if s.brk == nil {
		return Break{}, false
	}
	return *s.brk, true
}

// anchoredElement overrides the flow-level anchor policy.
type anchoredElement struct {
	stubElement
	anchor float64
}

func (a *anchoredElement) AnchorOffset(geometry.Size) float64 { return a.anchor }

func boxes(widths ...float64) []Element {
	items := make([]Element, len(widths))
	for i, w := range widths {
		items[i] = &stubElement{size: sz(w, 20)}
	}
	return items
}

func lineItems(l Line) []int {
	out := make([]int, l.Count())
	for i := range out {
		out[i] = l.Item(i)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func collectPlacements(e *Engine, c *Cache, items []Element, rect geometry.Rect, p geometry.Proposal) map[int]geometry.Offset {
	got := make(map[int]geometry.Offset, len(items))
	e.Place(c, items, rect, p, func(i int, origin geometry.Offset, _ geometry.Proposal) {
		got[i] = origin
	})
	return got
}

func TestEngineMeasurePartitionsByWidth(t *testing.T) {
	e := Engine{
		ItemRule: FixedSpacing(geometry.Horizontal, 10),
		LineRule: FixedSpacing(geometry.Vertical, 7),
	}
	c := NewCache(3)
	items := boxes(50, 50, 50)

	size := e.Measure(c, items, geometry.ProposeWidth(140))

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines: got %d, want 2", len(lines))
	}
	if got := lineItems(lines[0]); !equalInts(got, []int{0, 1}) {
		t.Errorf("line 0 items: got %v, want [0 1]", got)
	}
	if got := lineItems(lines[1]); !equalInts(got, []int{2}) {
		t.Errorf("line 1 items: got %v, want [2]", got)
	}
	if size.Width != 110 {
		t.Errorf("aggregate width: got %v, want 110", size.Width)
	}
	if size.Height != 47 {
		t.Errorf("aggregate height: got %v, want 47", size.Height)
	}
	if c.ItemDistance(0) != 0 || c.ItemDistance(1) != 10 || c.ItemDistance(2) != 0 {
		t.Errorf("distances: got %v, %v, %v, want 0, 10, 0",
			c.ItemDistance(0), c.ItemDistance(1), c.ItemDistance(2))
	}
}

func TestEngineOversizeItemOwnsLine(t *testing.T) {
	e := Engine{}
	c := NewCache(1)
	size := e.Measure(c, boxes(200), geometry.ProposeWidth(100))

	lines := c.Lines()
	if len(lines) != 1 || lines[0].Count() != 1 {
		t.Fatalf("expected a single one-item line, got %d lines", len(lines))
	}
	if lines[0].Available() != 0 {
		t.Errorf("available: got %v, want 0", lines[0].Available())
	}
	if size.Width != 200 {
		t.Errorf("aggregate width: got %v, want 200", size.Width)
	}
}

func TestEngineAfterBreakForcesNextLine(t *testing.T) {
	e := Engine{ItemRule: FixedSpacing(geometry.Horizontal, 10)}
	c := NewCache(3)
	items := []Element{
		&stubElement{size: sz(50, 20), brk: &Break{After: true}},
		&stubElement{size: sz(50, 20)},
		&stubElement{size: sz(50, 20)},
	}

	e.Measure(c, items, geometry.ProposeWidth(500))

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines: got %d, want 2", len(lines))
	}
	if !equalInts(lineItems(lines[0]), []int{0}) {
		t.Errorf("line 0 items: got %v, want [0]", lineItems(lines[0]))
	}
	if !equalInts(lineItems(lines[1]), []int{1, 2}) {
		t.Errorf("line 1 items: got %v, want [1 2]", lineItems(lines[1]))
	}
}

func TestEngineAfterBreakPredicateGates(t *testing.T) {
	e := Engine{ItemRule: FixedSpacing(geometry.Horizontal, 10)}
	c := NewCache(3)
	items := []Element{
		&stubElement{size: sz(50, 20), brk: &Break{After: true, When: func(Line) bool { return false }}},
		&stubElement{size: sz(50, 20)},
		&stubElement{size: sz(50, 20)},
	}
	e.Measure(c, items, geometry.ProposeWidth(500))
	if got := len(c.Lines()); got != 1 {
		t.Errorf("gated after-break split lines: got %d, want 1", got)
	}
}

func TestEngineBeforeBreakPredicate(t *testing.T) {
	fillAboveHalf := func(l Line) bool { return l.FillRatio() > 0.5 }
	e := Engine{}

	c := NewCache(3)
	items := []Element{
		&stubElement{size: sz(60, 10)},
		&stubElement{size: sz(10, 10), brk: &Break{When: fillAboveHalf}},
		&stubElement{size: sz(10, 10)},
	}
	e.Measure(c, items, geometry.ProposeWidth(100))
	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines: got %d, want 2", len(lines))
	}
	if !equalInts(lineItems(lines[1]), []int{1, 2}) {
		t.Errorf("line 1 items: got %v, want [1 2]", lineItems(lines[1]))
	}

	// Below the threshold the directive stays inactive.
	c2 := NewCache(2)
	items2 := []Element{
		&stubElement{size: sz(20, 10)},
		&stubElement{size: sz(10, 10), brk: &Break{When: fillAboveHalf}},
	}
	e.Measure(c2, items2, geometry.ProposeWidth(100))
	if got := len(c2.Lines()); got != 1 {
		t.Errorf("inactive before-break split lines: got %d, want 1", got)
	}
}

func TestEngineNoItemLoss(t *testing.T) {
	widths := []float64{35, 80, 10, 120, 55, 20, 64, 42}
	e := Engine{ItemRule: FixedSpacing(geometry.Horizontal, 6)}
	for _, container := range []float64{1, 40, 90, 150, 400, geometry.Unbounded} {
		c := NewCache(len(widths))
		e.Measure(c, boxes(widths...), geometry.Proposal{Width: container, Height: geometry.Unbounded})

		seen := make(map[int]int)
		for _, l := range c.Lines() {
			for p := 0; p < l.Count(); p++ {
				seen[l.Item(p)]++
			}
		}
		if len(seen) != len(widths) {
			t.Fatalf("container %v: %d of %d items placed", container, len(seen), len(widths))
		}
		for idx, n := range seen {
			if n != 1 {
				t.Fatalf("container %v: item %d placed %d times", container, idx, n)
			}
		}
	}
}

func TestEngineMeasureReusesCleanCache(t *testing.T) {
	items := boxes(30, 40, 50)
	probe := items[0].(*stubElement)
	e := Engine{}
	c := NewCache(len(items))

	e.Measure(c, items, geometry.ProposeWidth(100))
	if probe.measured != 1 {
		t.Fatalf("first measure: element read %d times, want 1", probe.measured)
	}
	e.Measure(c, items, geometry.ProposeWidth(100))
	if probe.measured != 1 {
		t.Errorf("clean re-measure read elements again: %d reads", probe.measured)
	}
	e.Measure(c, items, geometry.Proposal{Width: 100, Height: 5000})
	if probe.measured != 1 {
		t.Errorf("height-only change read elements again: %d reads", probe.measured)
	}
	e.Measure(c, items, geometry.ProposeWidth(260))
	if probe.measured != 2 {
		t.Errorf("width change: element read %d times, want 2", probe.measured)
	}
	c.MarkDirty()
	e.Measure(c, items, geometry.ProposeWidth(260))
	if probe.measured != 3 {
		t.Errorf("dirty mark: element read %d times, want 3", probe.measured)
	}
}

func TestEnginePlacementCoordinates(t *testing.T) {
	e := Engine{
		ItemRule: FixedSpacing(geometry.Horizontal, 5),
		LineRule: FixedSpacing(geometry.Vertical, 4),
	}
	c := NewCache(3)
	items := boxes(30, 50, 40)

	got := collectPlacements(&e, c, items, geometry.RectFromLTWH(10, 10, 100, 100), geometry.ProposeWidth(100))

	want := map[int]geometry.Offset{
		0: {X: 10, Y: 10},
		1: {X: 45, Y: 10},
		2: {X: 10, Y: 34},
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("item %d: got %+v, want %+v", i, got[i], w)
		}
	}
}

func TestEnginePlaceReusesLocations(t *testing.T) {
	e := Engine{ItemRule: FixedSpacing(geometry.Horizontal, 5)}
	c := NewCache(2)
	items := boxes(30, 50)
	p := geometry.ProposeWidth(200)
	rect := geometry.RectFromLTWH(0, 0, 200, 50)

	first := collectPlacements(&e, c, items, rect, p)

	// Tamper with a cached location: a reused placement replays it as-is,
	// proving the placement pass did not run again.
	c.locations[0] = geometry.Offset{X: 123, Y: 456}

	second := collectPlacements(&e, c, items, rect, p)
	if second[0] != (geometry.Offset{X: 123, Y: 456}) {
		t.Error("identical place call re-ran the placement pass")
	}
	if second[1] != first[1] {
		t.Errorf("re-placement not idempotent: got %+v, want %+v", second[1], first[1])
	}
	if got := items[0].(*stubElement).measured; got != 1 {
		t.Errorf("placement reuse re-measured elements: %d reads", got)
	}

	// A new origin still reuses the cached relative coordinates.
	moved := collectPlacements(&e, c, items, geometry.RectFromLTWH(7, 9, 200, 50), p)
	if moved[1] != (geometry.Offset{X: first[1].X + 7, Y: first[1].Y + 9}) {
		t.Errorf("moved origin: got %+v", moved[1])
	}

	// A width change re-runs placement: the tampered value is recomputed.
	third := collectPlacements(&e, c, items, rect, geometry.ProposeWidth(300))
	if third[0] != first[0] {
		t.Errorf("width change: got %+v, want %+v", third[0], first[0])
	}
}

func TestEngineAnchorPolicies(t *testing.T) {
	e := Engine{Anchor: AnchorBottom}
	c := NewCache(2)
	items := []Element{
		&stubElement{size: sz(30, 10)},
		&stubElement{size: sz(30, 30)},
	}
	got := collectPlacements(&e, c, items, geometry.RectFromLTWH(0, 0, 100, 30), geometry.ProposeWidth(100))
	if got[0].Y != 20 || got[1].Y != 0 {
		t.Errorf("bottom anchor: got y=%v, y=%v, want 20, 0", got[0].Y, got[1].Y)
	}
	if h := c.Size().Height; h != 30 {
		t.Errorf("line height: got %v, want 30", h)
	}

	e2 := Engine{Anchor: AnchorCenter}
	c2 := NewCache(2)
	items2 := []Element{
		&stubElement{size: sz(30, 10)},
		&stubElement{size: sz(30, 30)},
	}
	got2 := collectPlacements(&e2, c2, items2, geometry.RectFromLTWH(0, 0, 100, 30), geometry.ProposeWidth(100))
	if got2[0].Y != 10 || got2[1].Y != 0 {
		t.Errorf("center anchor: got y=%v, y=%v, want 10, 0", got2[0].Y, got2[1].Y)
	}
}

func TestEngineAnchorProviderOverride(t *testing.T) {
	items := []Element{
		&stubElement{size: sz(20, 20)},
		&anchoredElement{stubElement: stubElement{size: sz(20, 20)}, anchor: 5},
	}
	e := Engine{Anchor: AnchorTop}
	c := NewCache(2)
	got := collectPlacements(&e, c, items, geometry.RectFromLTWH(0, 0, 100, 40), geometry.ProposeWidth(100))
	if got[0].Y != 5 || got[1].Y != 0 {
		t.Errorf("override: got y=%v, y=%v, want 5, 0", got[0].Y, got[1].Y)
	}
}

func TestEngineReversedMirrorsSpacing(t *testing.T) {
	e := Engine{
		ItemRule: FixedSpacing(geometry.Horizontal, 5),
		Style:    LineStyle{Reversed: true},
	}
	c := NewCache(2)
	items := boxes(30, 50)
	got := collectPlacements(&e, c, items, geometry.RectFromLTWH(0, 0, 100, 20), geometry.ProposeWidth(100))
	if got[1].X != 0 {
		t.Errorf("reversed leading item: got x=%v, want 0", got[1].X)
	}
	if got[0].X != 55 {
		t.Errorf("reversed trailing item: got x=%v, want 55", got[0].X)
	}
}

func TestEngineStretchedReachesContainerEdge(t *testing.T) {
	e := Engine{
		ItemRule: FixedSpacing(geometry.Horizontal, 5),
		Style:    LineStyle{Stretched: true},
	}
	c := NewCache(2)
	items := boxes(30, 50)
	p := geometry.ProposeWidth(100)

	got := collectPlacements(&e, c, items, geometry.RectFromLTWH(0, 0, 100, 20), p)
	if got[0].X != 0 {
		t.Errorf("stretched leading item: got x=%v, want 0", got[0].X)
	}
	if got[1].X != 50 {
		t.Errorf("stretched item: got x=%v, want 50", got[1].X)
	}
	if edge := got[1].X + 50; edge != 100 {
		t.Errorf("trailing edge: got %v, want 100", edge)
	}
	if size := e.Measure(c, items, p); size.Width != 100 {
		t.Errorf("stretched aggregate width: got %v, want 100", size.Width)
	}
}

func TestEngineAlignmentStarts(t *testing.T) {
	cases := []struct {
		align LineAlignment
		want  float64
	}{
		{AlignLeading, 0},
		{AlignCenter, 7.5},
		{AlignTrailing, 15},
	}
	for _, tc := range cases {
		e := Engine{
			ItemRule: FixedSpacing(geometry.Horizontal, 5),
			Style:    LineStyle{Alignment: tc.align},
		}
		c := NewCache(2)
		got := collectPlacements(&e, c, boxes(30, 50), geometry.RectFromLTWH(0, 0, 100, 20), geometry.ProposeWidth(100))
		if got[0].X != tc.want {
			t.Errorf("%v: got x=%v, want %v", tc.align, got[0].X, tc.want)
		}
	}
}

func TestEngineStyleForCallback(t *testing.T) {
	calls := 0
	e := Engine{
		ItemRule: FixedSpacing(geometry.Horizontal, 10),
		StyleFor: func(l Line) LineStyle {
			calls++
			return LineStyle{Reversed: l.Index()%2 == 1}
		},
	}
	c := NewCache(3)
	e.Measure(c, boxes(50, 50, 50), geometry.ProposeWidth(140))
	if calls != 2 {
		t.Errorf("style resolver ran %d times, want 2", calls)
	}
	styles := c.Styles()
	if styles[0].Reversed || !styles[1].Reversed {
		t.Errorf("resolved styles: got %+v", styles)
	}
}

func TestEngineUnboundedWidthSingleLine(t *testing.T) {
	e := Engine{ItemRule: FixedSpacing(geometry.Horizontal, 10)}
	c := NewCache(4)
	size := e.Measure(c, boxes(50, 60, 70, 80), geometry.Unconstrained())
	if got := len(c.Lines()); got != 1 {
		t.Fatalf("unbounded width: got %d lines, want 1", got)
	}
	if size.Width != 290 {
		t.Errorf("aggregate width: got %v, want 290", size.Width)
	}
}

func TestEngineEmptyItems(t *testing.T) {
	e := Engine{}
	c := NewCache(0)
	if size := e.Measure(c, nil, geometry.ProposeWidth(100)); size != (geometry.Size{}) {
		t.Errorf("empty measure: got %+v, want zero size", size)
	}
	calls := 0
	e.Place(c, nil, geometry.RectFromLTWH(0, 0, 100, 100), geometry.ProposeWidth(100),
		func(int, geometry.Offset, geometry.Proposal) { calls++ })
	if calls != 0 {
		t.Errorf("empty place invoked the callback %d times", calls)
	}
}

func TestEngineProposeWidthMode(t *testing.T) {
	var seen []geometry.Proposal
	probe := &proposalProbe{out: sz(40, 10), seen: &seen}

	e := Engine{ProposeWidth: true}
	c := NewCache(1)
	e.Measure(c, []Element{probe}, geometry.ProposeWidth(140))
	if len(seen) != 1 || seen[0].Width != 140 {
		t.Errorf("ProposeWidth mode: element saw %+v", seen)
	}

	seen = nil
	e2 := Engine{}
	c2 := NewCache(1)
	e2.Measure(c2, []Element{probe}, geometry.ProposeWidth(140))
	if len(seen) != 1 || seen[0].Width != geometry.Unbounded {
		t.Errorf("default mode: element saw %+v", seen)
	}
}

type proposalProbe struct {
	out  geometry.Size
	seen *[]geometry.Proposal
}

func (p *proposalProbe) Measure(prop geometry.Proposal) geometry.Size {
	*p.seen = append(*p.seen, prop)
	return p.out
}

func (p *proposalProbe) Spacing() Spacing { return Spacing{} }

func TestEngineEnvelope(t *testing.T) {
	mk := func(w, h float64, s Spacing) Element {
		return &stubElement{size: sz(w, h), spacing: s}
	}
	items := []Element{
		mk(60, 10, Spacing{Top: 9, Leading: 4, Bottom: 1, Trailing: 2}),
		mk(30, 25, Spacing{Top: 3, Leading: 1, Bottom: 8, Trailing: 7}),
		mk(50, 12, Spacing{Top: 2, Leading: 6, Bottom: 5, Trailing: 3}),
	}

	e := Engine{Anchor: AnchorTop}
	c := NewCache(3)
	env := e.Envelope(c, items, geometry.ProposeWidth(100))
	want := Spacing{Top: 9, Leading: 6, Bottom: 5, Trailing: 7}
	if env != want {
		t.Errorf("top-anchored envelope: got %+v, want %+v", env, want)
	}

	// Anything but top anchoring takes the tallest item's top, not the union.
	e2 := Engine{Anchor: AnchorBottom}
	c2 := NewCache(3)
	env2 := e2.Envelope(c2, items, geometry.ProposeWidth(100))
	if env2.Top != 3 {
		t.Errorf("bottom-anchored envelope top: got %v, want 3", env2.Top)
	}

	// Trailing-aligned lines union the trailing edge and expose only the
	// longest line's leading item.
	e3 := Engine{Anchor: AnchorTop, Style: LineStyle{Alignment: AlignTrailing}}
	c3 := NewCache(3)
	env3 := e3.Envelope(c3, items, geometry.ProposeWidth(100))
	if env3.Trailing != 7 || env3.Leading != 4 {
		t.Errorf("trailing-aligned envelope: got %+v", env3)
	}
}

func TestEngineEnvelopeEmpty(t *testing.T) {
	e := Engine{}
	c := NewCache(0)
	if env := e.Envelope(c, nil, geometry.ProposeWidth(100)); env != (Spacing{}) {
		t.Errorf("empty envelope: got %+v", env)
	}
}
