package flow

import "testing"

func TestBaselineFirstItem(t *testing.T) {
	b := newBaseline(20, 5)
	if b.Highest != 5 || b.Lowest != 5 {
		t.Errorf("extremes: got highest=%v lowest=%v, want 5, 5", b.Highest, b.Lowest)
	}
	if b.Up != 5 || b.Down != 15 {
		t.Errorf("extents: got up=%v down=%v, want 5, 15", b.Up, b.Down)
	}
	if b.Height() != 20 {
		t.Errorf("height: got %v, want 20", b.Height())
	}
}

func TestBaselineNegativeAnchor(t *testing.T) {
	// An anchor above the item's own top pushes the visual top upward and
	// leaves the whole body below the reference.
	b := newBaseline(20, -5)
	if b.Up != 5 || b.Down != 20 {
		t.Errorf("extents: got up=%v down=%v, want 5, 20", b.Up, b.Down)
	}
	if b.Height() != 25 {
		t.Errorf("height: got %v, want 25", b.Height())
	}
}

func TestBaselineAccumulatesExtremes(t *testing.T) {
	b := newBaseline(10, 10)
	b.Add(30, 30)
	if b.Highest != 10 || b.Lowest != 30 {
		t.Errorf("extremes: got highest=%v lowest=%v, want 10, 30", b.Highest, b.Lowest)
	}
	if b.Up != 30 || b.Down != 0 {
		t.Errorf("extents after tall item: got up=%v down=%v, want 30, 0", b.Up, b.Down)
	}
	b.Add(8, 0)
	if b.Up != 30 || b.Down != 8 {
		t.Errorf("extents after top-anchored item: got up=%v down=%v, want 30, 8", b.Up, b.Down)
	}
	if b.Height() != 38 {
		t.Errorf("height: got %v, want 38", b.Height())
	}
}

func TestBaselineMonotonicHeight(t *testing.T) {
	b := newBaseline(12, 6)
	prev := b.Height()
	steps := []struct{ h, a float64 }{
		{4, 2}, {1, 0}, {40, 20}, {3, -2}, {18, 18},
	}
	for _, s := range steps {
		b.Add(s.h, s.a)
		if b.Height() < prev {
			t.Fatalf("height shrank after Add(%v, %v): %v < %v", s.h, s.a, b.Height(), prev)
		}
		prev = b.Height()
	}
	if b.Height() != 42 {
		t.Errorf("final height: got %v, want 42", b.Height())
	}
}
