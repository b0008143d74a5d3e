package core

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	if got := a.Add(b); !got.Equals(NewVec3(5, 7, 9)) {
		t.Errorf("Add: expected (5,7,9), got %v", got)
	}
	if got := b.Subtract(a); !got.Equals(NewVec3(3, 3, 3)) {
		t.Errorf("Subtract: expected (3,3,3), got %v", got)
	}
	if got := a.Multiply(2); !got.Equals(NewVec3(2, 4, 6)) {
		t.Errorf("Multiply: expected (2,4,6), got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot: expected 32, got %v", got)
	}
	if got := a.Cross(b); !got.Equals(NewVec3(-3, 6, -3)) {
		t.Errorf("Cross: expected (-3,6,-3), got %v", got)
	}
	if got := a.Negate(); !got.Equals(NewVec3(-1, -2, -3)) {
		t.Errorf("Negate: expected (-1,-2,-3), got %v", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4)
	n := v.Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Normalize: expected unit length, got %v", n.Length())
	}
	if !n.Equals(NewVec3(0.6, 0, 0.8)) {
		t.Errorf("Normalize: expected (0.6,0,0.8), got %v", n)
	}

	zero := NewVec3(0, 0, 0).Normalize()
	if !zero.Equals(NewVec3(0, 0, 0)) {
		t.Errorf("Normalize of zero vector should be zero, got %v", zero)
	}
}

func TestVec3Cylindrical(t *testing.T) {
	v := NewVec3(3, 4, 5)
	if math.Abs(v.R()-5) > 1e-12 {
		t.Errorf("R: expected 5, got %v", v.R())
	}

	p := NewVec3(0, 2, 0)
	if math.Abs(p.Phi()-math.Pi/2) > 1e-12 {
		t.Errorf("Phi: expected pi/2, got %v", p.Phi())
	}
}

func TestVec2Operations(t *testing.T) {
	a := NewVec2(1, 2)
	b := NewVec2(3, 4)

	if got := a.Dot(b); got != 11 {
		t.Errorf("Dot: expected 11, got %v", got)
	}
	if got := a.Cross(b); got != -2 {
		t.Errorf("Cross: expected -2, got %v", got)
	}
	if got := a.Perp(); got != NewVec2(-2, 1) {
		t.Errorf("Perp: expected (-2,1), got %v", got)
	}
	n := NewVec2(3, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Normalize: expected unit length, got %v", n.Length())
	}
}

func TestRayAt(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 1, 0))
	if got := ray.At(2.5); !got.Equals(NewVec3(1, 2.5, 0)) {
		t.Errorf("At: expected (1,2.5,0), got %v", got)
	}
}
