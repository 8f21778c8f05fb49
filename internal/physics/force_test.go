package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/world"
)

func near(a, b geom.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func newWorld[O object.Object](t *testing.T, s world.Scenario[O]) *world.World[O] {
	t.Helper()
	w, err := world.New[O](s, dynamo.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return w
}

func TestGravityForce(t *testing.T) {
	g := NewGravity()
	ids := object.NewIDGen()
	heavy := object.NewCircle(ids.Next(), 2, 10, geom.Vec{}, geom.Vec{})
	peg := object.NewStaticCircle(ids.Next(), 10, geom.V(50, 50))

	g.StepForces([]object.Object{heavy, peg}, world.Env{})

	if want := geom.V(0, 2*g.G); heavy.Force() != want {
		t.Errorf("expected force %v, got %v", want, heavy.Force())
	}
	if peg.Force() != (geom.Vec{}) {
		t.Errorf("expected no force on a static body, got %v", peg.Force())
	}
}

func TestGravityInteractions(t *testing.T) {
	w := newWorld[object.Object](t, NewGravity())
	n := w.Len()

	w.Tap(geom.V(500, 500))
	if w.Len() != n+1 {
		t.Fatalf("expected tap to spawn, got %d objects", w.Len())
	}

	w.DragMove(geom.V(700, 700))
	w.DragMove(geom.V(710, 700))
	w.DragEnd()
	if w.Len() != n+3 {
		t.Errorf("expected a circle per drag move, got %d objects", w.Len())
	}
}

func TestSpringForce(t *testing.T) {
	s := NewSpring()
	s.K = 10
	s.RestLength = 100
	s.Damping = 0.5

	tests := []struct {
		name string
		p, v geom.Vec
		want geom.Vec
	}{
		{"stretched", geom.V(200, 0), geom.Vec{}, geom.V(-1000, 0)},
		{"compressed", geom.V(0, 50), geom.Vec{}, geom.V(0, 500)},
		{"at rest length", geom.V(0, -100), geom.Vec{}, geom.Vec{}},
		{"damped", geom.V(100, 0), geom.V(4, -2), geom.V(-2, 1)},
		{"on the anchor", geom.Vec{}, geom.Vec{}, geom.V(1000, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Force(tt.p, tt.v, geom.Vec{})
			if !near(got, tt.want, 1e-9) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSpringLattice(t *testing.T) {
	s := NewSpring()
	s.Damping = 0
	ids := object.NewIDGen()
	anchor := object.NewStaticCircle(ids.Next(), 10, geom.Vec{})
	a := object.NewCircle(ids.Next(), 1, 10, geom.V(100, 0), geom.Vec{})
	b := object.NewCircle(ids.Next(), 1, 10, geom.V(-100, 0), geom.Vec{})
	objs := []object.Object{anchor, a, b}

	s.StepForces(objs, world.Env{})
	if a.Force() != (geom.Vec{}) {
		t.Errorf("expected no force at rest length without lattice, got %v", a.Force())
	}

	a.SetForce(geom.Vec{})
	b.SetForce(geom.Vec{})
	s.Lattice = true
	s.StepForces(objs, world.Env{})

	// a and b are 200 apart: the pair spring pulls them together
	if want := geom.V(-s.K*100, 0); !near(a.Force(), want, 1e-9) {
		t.Errorf("expected %v, got %v", want, a.Force())
	}
	if got := geom.Add(a.Force(), b.Force()); !near(got, geom.Vec{}, 1e-9) {
		t.Errorf("expected pair forces to cancel, got %v", got)
	}
	if anchor.Force() != (geom.Vec{}) {
		t.Errorf("expected no force on the anchor, got %v", anchor.Force())
	}
}

func TestSpringAnchorAtCanvasCentre(t *testing.T) {
	w := newWorld[object.Object](t, NewSpring())
	w.Resize(geom.Size{Width: 800, Height: 600})

	if w.Offset() != geom.V(400, 300) {
		t.Errorf("expected offset at centre, got %v", w.Offset())
	}
	if !w.Objects()[0].IsStatic() {
		t.Error("expected the first object to be the anchor")
	}
}

func TestParams(t *testing.T) {
	scenarios := []dynamo.Configurable{
		NewGravity(), NewSpring(), NewBilliard(1), NewRope(), NewGalton(), NewPendulum(),
	}
	for _, s := range scenarios {
		for name, v := range s.GetParams() {
			if err := s.SetParam(name, v); err != nil {
				t.Errorf("%T: round trip of %s failed: %v", s, name, err)
			}
		}
		if err := s.SetParam("nope", 1); !errors.Is(err, dynamo.ErrInvalidConfig) {
			t.Errorf("%T: expected ErrInvalidConfig, got %v", s, err)
		}
	}
}
