package flow

import (
	"testing"

	"github.com/go-fit/fit/pkg/geometry"
)

func TestCacheInitialValidateRecomputes(t *testing.T) {
	c := NewCache(4)
	if !c.Dirty() {
		t.Fatal("new cache should start dirty")
	}
	count := 0
	c.Validate(geometry.ProposeWidth(100), func() { count++ })
	if count != 1 {
		t.Fatalf("first validate: recompute ran %d times, want 1", count)
	}
	if c.Dirty() {
		t.Error("cache should be clean after validate")
	}
	c.Validate(geometry.ProposeWidth(100), func() { count++ })
	if count != 1 {
		t.Errorf("clean same-width validate recomputed: %d runs", count)
	}
}

func TestCacheWidthChangeRecomputes(t *testing.T) {
	c := NewCache(0)
	count := 0
	recompute := func() { count++ }
	c.Validate(geometry.ProposeWidth(100), recompute)
	c.Validate(geometry.ProposeWidth(120), recompute)
	if count != 2 {
		t.Fatalf("width change: recompute ran %d times, want 2", count)
	}
	c.Validate(geometry.ProposeWidth(120), recompute)
	if count != 2 {
		t.Errorf("repeated width recomputed: %d runs", count)
	}
}

func TestCacheHeightChangeDoesNotRecompute(t *testing.T) {
	c := NewCache(0)
	count := 0
	c.Validate(geometry.Proposal{Width: 100, Height: 50}, func() { count++ })
	c.Validate(geometry.Proposal{Width: 100, Height: 900}, func() { count++ })
	if count != 1 {
		t.Errorf("height-only change recomputed: %d runs, want 1", count)
	}
}

func TestCacheMarkDirtyForcesExactlyOneRecompute(t *testing.T) {
	c := NewCache(0)
	count := 0
	recompute := func() { count++ }
	c.Validate(geometry.ProposeWidth(100), recompute)
	c.MarkDirty()
	c.Validate(geometry.ProposeWidth(100), recompute)
	if count != 2 {
		t.Fatalf("dirty validate: recompute ran %d times, want 2", count)
	}
	c.Validate(geometry.ProposeWidth(100), recompute)
	if count != 2 {
		t.Errorf("recompute refired without a dirty mark: %d runs", count)
	}
}

func TestCacheResetKeepsBackingStorage(t *testing.T) {
	c := NewCache(8)
	for i := 0; i < 8; i++ {
		c.sizes = append(c.sizes, geometry.Size{Width: float64(i)})
		c.distances = append(c.distances, float64(i))
	}
	c.MarkDirty()
	c.Validate(geometry.ProposeWidth(10), func() {})
	if len(c.sizes) != 0 || len(c.distances) != 0 {
		t.Error("reset should truncate containers")
	}
	if cap(c.sizes) < 8 || cap(c.distances) < 8 {
		t.Error("reset should keep backing storage")
	}
}

func TestCacheResetClearsPlacement(t *testing.T) {
	c := NewCache(2)
	c.Validate(geometry.ProposeWidth(100), func() {})
	c.locations = append(c.locations, geometry.Offset{X: 1})
	c.placed = geometry.ProposeWidth(100)
	if !c.canReusePlacement(1, geometry.ProposeWidth(100)) {
		t.Fatal("placement should be reusable before reset")
	}
	if c.canReusePlacement(2, geometry.ProposeWidth(100)) {
		t.Error("item count mismatch must not reuse placement")
	}
	if c.canReusePlacement(1, geometry.ProposeWidth(140)) {
		t.Error("width mismatch must not reuse placement")
	}
	c.MarkDirty()
	c.Validate(geometry.ProposeWidth(100), func() {})
	if c.canReusePlacement(1, geometry.ProposeWidth(100)) {
		t.Error("reset must clear cached placement")
	}
}
