package physics

import (
	"math"
	"testing"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/integrators"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/world"
)

func pendulumWorld(t *testing.T, p *Pendulum) *world.World[*object.Bob] {
	t.Helper()
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := dynamo.DefaultConfig()
	cfg.Dt = 0.01
	w, err := world.New[*object.Bob](p, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return w
}

func TestPendulumRestsAtEquilibrium(t *testing.T) {
	for _, mode := range []integrators.Mode{integrators.ModeFrozen, integrators.ModeCanonical} {
		t.Run(mode.String(), func(t *testing.T) {
			w := pendulumWorld(t, NewPendulumChain(DefaultPendulumGravity, mode,
				BobSpec{Mass: 1, RodLength: 100, Angle: 0}))

			for i := 0; i < 1000; i++ {
				w.Tick(0.01)
			}

			b := w.Objects()[0]
			if math.Abs(b.Angle) >= 1e-9 {
				t.Errorf("expected |angle| < 1e-9, got %v", b.Angle)
			}
			if b.Position() != geom.V(0, 100) {
				t.Errorf("expected bob straight below the pivot, got %v", b.Position())
			}
		})
	}
}

func TestDoublePendulumIsChaotic(t *testing.T) {
	run := func(delta float64) *world.World[*object.Bob] {
		return pendulumWorld(t, NewPendulumChain(9.81, integrators.ModeCanonical,
			BobSpec{Mass: 1, RodLength: 1, Angle: math.Pi / 2},
			BobSpec{Mass: 1, RodLength: 1, Angle: math.Pi/2 + delta}))
	}
	a, b := run(0), run(1e-6)

	for i := 0; i < 5000; i++ {
		a.Tick(0.01)
		b.Tick(0.01)
		if geom.Distance(a.Objects()[1].Position(), b.Objects()[1].Position()) > 1.0 {
			return
		}
	}
	t.Error("expected the trajectories to diverge by more than 1.0 within 5000 ticks")
}

func TestDoublePendulumCoupling(t *testing.T) {
	// with the lower bob hanging straight, a swinging upper bob must drag it along
	bobs := []*object.Bob{
		object.NewBob(1, 1, 1, math.Pi/4),
		object.NewBob(2, 1, 1, 0),
	}
	acc := DoublePendulumDerivative(1)(bobs)
	if acc[1] == 0 {
		t.Error("expected the lower bob to feel the upper one")
	}
	single := SinglePendulumDerivative(1)(bobs[:1])
	if acc[0] == single[0] {
		t.Error("expected the coupled acceleration to differ from a lone pendulum")
	}
}

func TestPendulumFrozenDivergesFromCanonical(t *testing.T) {
	spec := []BobSpec{
		{Mass: 1, RodLength: 1, Angle: math.Pi / 2},
		{Mass: 1, RodLength: 1, Angle: math.Pi / 2},
	}
	frozen := pendulumWorld(t, NewPendulumChain(9.81, integrators.ModeFrozen, spec...))
	canonical := pendulumWorld(t, NewPendulumChain(9.81, integrators.ModeCanonical, spec...))

	for i := 0; i < 500; i++ {
		frozen.Tick(0.01)
		canonical.Tick(0.01)
	}

	d := math.Abs(frozen.Objects()[1].Angle - canonical.Objects()[1].Angle)
	if d < 1e-6 {
		t.Errorf("expected frozen and canonical trajectories to differ, got %v", d)
	}
}

func TestPendulumEnergyCanonical(t *testing.T) {
	p := NewPendulumChain(1, integrators.ModeCanonical, BobSpec{Mass: 1, RodLength: 100, Angle: math.Pi / 3})
	w := pendulumWorld(t, p)
	e0 := Energy(p.G, w.Objects())

	for i := 0; i < 2000; i++ {
		w.Tick(0.01)
	}

	if e := Energy(p.G, w.Objects()); math.Abs(e-e0) > 1e-6*math.Abs(e0) {
		t.Errorf("expected energy %v to be conserved, got %v", e0, e)
	}
}

func TestPendulumProjection(t *testing.T) {
	p := NewDoublePendulum()
	w := pendulumWorld(t, p)
	w.Resize(geom.Size{Width: 600, Height: 900})

	if w.Offset() != geom.V(300, 300) {
		t.Errorf("expected pivot at (300, 300), got %v", w.Offset())
	}
	bobs := w.Objects()
	// both released horizontally: a straight rod to the right
	if !near(bobs[0].Position(), geom.V(100, 0), 1e-9) || !near(bobs[1].Position(), geom.V(200, 0), 1e-9) {
		t.Errorf("expected bobs at (100,0) and (200,0), got %v and %v", bobs[0].Position(), bobs[1].Position())
	}
}

func TestPendulumDrag(t *testing.T) {
	w := pendulumWorld(t, NewDoublePendulum())
	w.Resize(geom.Size{Width: 600, Height: 900})
	w.Tick(0.01)

	// grab the lower bob (pointer in canvas coordinates) and pull it straight down from the upper one
	lower := w.Objects()[1]
	upper := w.Objects()[0]
	grab := geom.Add(w.Offset(), lower.Position())
	w.DragMove(grab)
	if w.Drag().ObjectID != lower.ID() {
		t.Fatalf("expected to grab the lower bob, got %+v", w.Drag())
	}

	target := geom.Add(w.Offset(), geom.Add(upper.Position(), geom.V(0, 50)))
	w.DragMove(target)

	if math.Abs(lower.Angle) > 1e-12 {
		t.Errorf("expected angle 0, got %v", lower.Angle)
	}
	if lower.AngleVelocity != 0 {
		t.Errorf("expected the dragged bob to stop, got %v", lower.AngleVelocity)
	}
	if !near(lower.Position(), geom.Add(upper.Position(), geom.V(0, lower.RodLength)), 1e-9) {
		t.Errorf("expected position reprojected below the upper bob, got %v", lower.Position())
	}
}

func TestPendulumIgnoresTap(t *testing.T) {
	w := pendulumWorld(t, NewPendulum())
	w.Tap(geom.V(10, 10))
	if w.Len() != 1 {
		t.Errorf("expected tap to be ignored, got %d bobs", w.Len())
	}
}

func TestPendulumValidate(t *testing.T) {
	if err := NewPendulumChain(1, integrators.ModeFrozen).Validate(); err == nil {
		t.Error("expected error for an empty chain")
	}
	p := NewPendulumChain(1, integrators.ModeFrozen, BobSpec{Mass: 0, RodLength: 1})
	if err := p.Validate(); err == nil {
		t.Error("expected error for a massless bob")
	}
}

func BenchmarkDoublePendulumTick(b *testing.B) {
	p := NewDoublePendulum()
	w, _ := world.New[*object.Bob](p, dynamo.DefaultConfig())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Tick(0.01)
	}
}
