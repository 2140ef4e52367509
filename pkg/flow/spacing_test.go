package flow

import (
	"testing"

	"github.com/go-fit/fit/pkg/geometry"
)

func TestSpacingUnion(t *testing.T) {
	a := Spacing{Top: 1, Leading: 5, Bottom: 2, Trailing: 0}
	b := Spacing{Top: 3, Leading: 1, Bottom: 2, Trailing: 4}
	got := a.Union(b)
	want := Spacing{Top: 3, Leading: 5, Bottom: 2, Trailing: 4}
	if got != want {
		t.Errorf("Union: got %+v, want %+v", got, want)
	}
}

func TestSpacingDistance(t *testing.T) {
	a := Spacing{Trailing: 6, Bottom: 2}
	b := Spacing{Leading: 4, Top: 9}
	if got := a.Distance(b, geometry.Horizontal); got != 6 {
		t.Errorf("horizontal distance: got %v, want 6", got)
	}
	if got := a.Distance(b, geometry.Vertical); got != 9 {
		t.Errorf("vertical distance: got %v, want 9", got)
	}
}

func TestPreferredSpacingFloor(t *testing.T) {
	rule := PreferredSpacing(geometry.Horizontal, 8)
	if got := rule.Distance(Spacing{Trailing: 3}, Spacing{Leading: 5}); got != 8 {
		t.Errorf("floored distance: got %v, want 8", got)
	}
	if got := rule.Distance(Spacing{Trailing: 3}, Spacing{Leading: 12}); got != 12 {
		t.Errorf("preference above floor: got %v, want 12", got)
	}
}

func TestPreferredSpacingNoFloor(t *testing.T) {
	rule := PreferredSpacing(geometry.Horizontal, NoFloor)
	if got := rule.Distance(Spacing{}, Spacing{}); got != 0 {
		t.Errorf("empty preferences: got %v, want 0", got)
	}
	if got := rule.Distance(Spacing{Trailing: 2.5}, Spacing{Leading: 1}); got != 2.5 {
		t.Errorf("NoFloor should defer to preference: got %v, want 2.5", got)
	}
}

func TestSpacingRuleNeverNegative(t *testing.T) {
	if got := FixedSpacing(geometry.Horizontal, -4).Distance(Spacing{}, Spacing{}); got != 0 {
		t.Errorf("negative fixed value: got %v, want 0", got)
	}
	rule := PreferredSpacing(geometry.Vertical, NoFloor)
	if got := rule.Distance(Spacing{Bottom: -3}, Spacing{Top: -5}); got != 0 {
		t.Errorf("negative preferences: got %v, want 0", got)
	}
}

func TestFixedSpacingIgnoresPreferences(t *testing.T) {
	rule := FixedSpacing(geometry.Horizontal, 10)
	if got := rule.Distance(Spacing{Trailing: 99}, Spacing{Leading: 99}); got != 10 {
		t.Errorf("fixed rule consulted preferences: got %v, want 10", got)
	}
}

func TestUniformSpacing(t *testing.T) {
	got := UniformSpacing(4)
	want := Spacing{Top: 4, Leading: 4, Bottom: 4, Trailing: 4}
	if got != want {
		t.Errorf("UniformSpacing: got %+v, want %+v", got, want)
	}
}

func TestSpacingPolicyString(t *testing.T) {
	if SpacingPreferred.String() != "preferred" || SpacingFixed.String() != "fixed" {
		t.Error("spacing policy String() mismatch")
	}
	if SpacingPolicy(7).String() != "SpacingPolicy(7)" {
		t.Errorf("unknown policy: got %q", SpacingPolicy(7).String())
	}
}
