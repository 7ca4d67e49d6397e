package math

import (
	"testing"
)

func TestVec2Sub(t *testing.T) {
	got := Vec3{4, 9, 6}.XZ().Sub(Vec3{1, 0, 2}.XZ())
	want := Vec2{3, 4}
	if got != want {
		t.Errorf("Vec2.Sub() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
	if got := v.LengthSquared(); got != 25 {
		t.Errorf("Vec2.LengthSquared() = %v, want 25", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	l := Vec2{3, 4}.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec2{}).Normalize(); z != (Vec2{}) {
		t.Errorf("zero Vec2 should normalize to zero, got %v", z)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 20, 30}

	tests := []struct {
		t    float32
		want Vec3
	}{
		{0, a},
		{0.5, Vec3{5, 10, 15}},
		{1, b},
		{-1, a}, // clamped
		{2, b},  // clamped
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); got.Distance(tt.want) > 0.001 {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestVec3Normalize(t *testing.T) {
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero Vec3 should normalize to zero, got %v", z)
	}
	if l := (Vec3{1, 2, 2}).Normalize().Length(); abs(l-1) > 0.0001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want 1", l)
	}
}
