package object

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/worldsim/internal/geom"
)

func TestIDGen(t *testing.T) {
	g := NewIDGen()
	a, b := g.Next(), g.Next()
	if a == b || b <= a {
		t.Errorf("expected increasing ids, got %d then %d", a, b)
	}

	g.Observe(10)
	if next := g.Next(); next != 11 {
		t.Errorf("expected 11 after observing 10, got %d", next)
	}

	g.Observe(3)
	if next := g.Next(); next != 12 {
		t.Errorf("observing a lower id must not rewind, got %d", next)
	}
}

func TestStaticFromMass(t *testing.T) {
	c := NewCircle(1, 2, 5, geom.V(0, 0), geom.V(0, 0))
	if c.IsStatic() {
		t.Error("finite mass circle reported static")
	}

	peg := NewStaticCircle(2, 5, geom.V(0, 0))
	if !peg.IsStatic() {
		t.Error("infinite mass circle not static")
	}

	line := NewLine(3, geom.V(0, 0), geom.V(10, 0), 4)
	if !line.IsStatic() {
		t.Error("line should be static")
	}
}

func TestTouchableRegion(t *testing.T) {
	tests := []struct {
		name          string
		obj           Object
		minW, minH    float64
		containsPoint geom.Vec
	}{
		{"small circle inflated", NewCircle(1, 1, 2, geom.V(50, 50), geom.Vec{}), 28, 28, geom.V(63, 50)},
		{"large circle", NewCircle(2, 1, 30, geom.V(0, 0), geom.Vec{}), 60, 60, geom.V(29, 0)},
		{"thin line", NewLine(3, geom.V(0, 0), geom.V(100, 0), 2), 100, 28, geom.V(50, 13)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.obj.TouchableRegion()
			if geom.Width(r) < tt.minW-1e-9 || geom.Height(r) < tt.minH-1e-9 {
				t.Errorf("region too small: %fx%f", geom.Width(r), geom.Height(r))
			}
			if !geom.Contains(r, tt.containsPoint) {
				t.Errorf("expected %v inside %v", tt.containsPoint, r)
			}
		})
	}
}

func TestLineTranslate(t *testing.T) {
	l := NewLine(1, geom.V(0, 0), geom.V(10, 5), 4)
	l.SetPosition(geom.V(2, 3))

	if l.Start() != geom.V(2, 3) {
		t.Errorf("expected start (2,3), got %v", l.Start())
	}
	if l.End != geom.V(12, 8) {
		t.Errorf("expected end (12,8), got %v", l.End)
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := NewCircle(7, 1, 5, geom.V(1, 2), geom.V(3, 4))
	cp := orig.Clone()

	if diff := cmp.Diff(orig.State(), cp.State()); diff != "" {
		t.Errorf("clone differs (-orig +clone):\n%s", diff)
	}

	cp.SetPosition(geom.V(100, 100))
	if orig.Position() != geom.V(1, 2) {
		t.Error("mutating clone changed original")
	}
}

func TestProjectChain(t *testing.T) {
	b1 := NewBob(1, 1, 10, math.Pi/2)
	b2 := NewBob(2, 1, 5, 0)
	b1.AngleVelocity = 1

	Project([]*Bob{b1, b2})

	if math.Abs(b1.Position().X-10) > 1e-9 || math.Abs(b1.Position().Y) > 1e-9 {
		t.Errorf("expected first bob at (10,0), got %v", b1.Position())
	}
	if math.Abs(b2.Position().X-10) > 1e-9 || math.Abs(b2.Position().Y-5) > 1e-9 {
		t.Errorf("expected second bob at (10,5), got %v", b2.Position())
	}
	// horizontal rod swinging: velocity points straight up (negative y)
	if math.Abs(b1.Velocity().Y+10) > 1e-9 {
		t.Errorf("expected first bob velocity (0,-10), got %v", b1.Velocity())
	}
	if b2.Velocity() != b1.Velocity() {
		t.Errorf("second bob should inherit first bob velocity, got %v", b2.Velocity())
	}
}

func TestStates(t *testing.T) {
	objs := []Object{
		NewCircle(1, 1, 5, geom.V(0, 0), geom.Vec{}),
		NewLine(2, geom.V(0, 0), geom.V(1, 1), 2),
	}
	states := States(objs)
	if len(states) != 2 {
		t.Fatalf("expected 2 states, got %d", len(states))
	}
	if states[0].Kind != KindCircle || states[0].Radius != 5 {
		t.Errorf("unexpected circle state %+v", states[0])
	}
	if states[1].Kind != KindLine || states[1].End != geom.V(1, 1) {
		t.Errorf("unexpected line state %+v", states[1])
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindCircle, KindLine, KindBob} {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("expected %v, got %v (ok=%v)", k, got, ok)
		}
	}
	if _, ok := ParseKind("square"); ok {
		t.Error("expected unknown kind to be rejected")
	}
}
