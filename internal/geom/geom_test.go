package geom

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       Vec
		expected Vec
	}{
		{"unit x", V(3, 0), V(1, 0)},
		{"diagonal", V(3, 4), V(0.6, 0.8)},
		{"negative", V(0, -2), V(0, -1)},
		{"zero falls back", V(0, 0), UnitX},
		{"nan falls back", V(math.NaN(), 1), UnitX},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if math.Abs(got.X-tt.expected.X) > 1e-12 || math.Abs(got.Y-tt.expected.Y) > 1e-12 {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.expected)
			}
		})
	}
}

func TestVectorAlgebra(t *testing.T) {
	a := V(1, 2)
	b := V(3, -1)

	if got := Add(a, b); got != V(4, 1) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := Sub(a, b); got != V(-2, 3) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := Scale(2, a); got != V(2, 4) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := Dot(a, b); got != 1 {
		t.Errorf("expected dot 1, got %f", got)
	}
	// a x b = 1*(-1) - 2*3
	if got := Cross(a, b); got != -7 {
		t.Errorf("expected cross -7, got %f", got)
	}
	if got := Length(V(3, 4)); got != 5 {
		t.Errorf("expected length 5, got %f", got)
	}
	if got := LengthSquared(V(3, 4)); got != 25 {
		t.Errorf("expected length squared 25, got %f", got)
	}
	if got := Distance(V(1, 1), V(4, 5)); got != 5 {
		t.Errorf("expected distance 5, got %f", got)
	}
}

func TestRect(t *testing.T) {
	r := RectAround(V(10, 10), 4, 6)
	if r.Min != V(8, 7) || r.Max != V(12, 13) {
		t.Errorf("unexpected rect %v", r)
	}

	grown := EnsureMinSize(r, 28, 28)
	if Width(grown) != 28 || Height(grown) != 28 {
		t.Errorf("expected 28x28, got %fx%f", Width(grown), Height(grown))
	}

	big := EnsureMinSize(RectAround(V(0, 0), 40, 50), 28, 28)
	if Width(big) != 40 || Height(big) != 50 {
		t.Errorf("EnsureMinSize shrank rect: %fx%f", Width(big), Height(big))
	}

	if !Contains(r, V(8, 7)) {
		t.Error("expected edge to be contained")
	}
	if Contains(r, V(7.9, 10)) {
		t.Error("expected point outside rect")
	}

	box := RectFromPoints(V(5, -1), V(-3, 4))
	if box.Min != V(-3, -1) || box.Max != V(5, 4) {
		t.Errorf("unexpected bounding box %v", box)
	}
}

func TestSize(t *testing.T) {
	if !(Size{}).IsZero() {
		t.Error("expected zero size")
	}
	s := Size{Width: 300, Height: 200}
	if s.IsZero() {
		t.Error("expected non-zero size")
	}
	if r := s.Rect(); r.Max != V(300, 200) || r.Min != V(0, 0) {
		t.Errorf("unexpected canvas rect %v", r)
	}
}
