package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
)

func TestEulerStep(t *testing.T) {
	c := object.NewCircle(1, 2, 5, geom.V(0, 0), geom.V(1, 0))
	c.SetForce(geom.V(4, 2))

	NewEuler().Step(c, 0.5)

	// v = (1,0) + (4,2)/2*0.5 = (2, 0.5); p = v*0.5
	if c.Velocity() != geom.V(2, 0.5) {
		t.Errorf("expected velocity (2,0.5), got %v", c.Velocity())
	}
	if c.Position() != geom.V(1, 0.25) {
		t.Errorf("expected position (1,0.25), got %v", c.Position())
	}
}

func TestEulerSkipsStaticAndProjected(t *testing.T) {
	peg := object.NewStaticCircle(1, 5, geom.V(3, 4))
	peg.SetForce(geom.V(100, 100))
	line := object.NewLine(2, geom.V(0, 0), geom.V(1, 1), 2)
	line.SetForce(geom.V(1, 1))
	bob := object.NewBob(3, 1, 10, 0.3)
	bob.SetForce(geom.V(5, 5))

	e := NewEuler()
	for _, o := range []object.Object{peg, line, bob} {
		e.Step(o, 0.1)
	}

	if peg.Velocity() != (geom.Vec{}) || peg.Position() != geom.V(3, 4) {
		t.Errorf("static peg moved: %v %v", peg.Position(), peg.Velocity())
	}
	if !geom.IsFinite(peg.Velocity()) {
		t.Error("static peg velocity is not finite")
	}
	if line.Position() != geom.V(0, 0) {
		t.Errorf("line moved to %v", line.Position())
	}
	if bob.Position() != (geom.Vec{}) {
		t.Errorf("bob was integrated: %v", bob.Position())
	}
}

// harmonic oscillator: theta'' = -theta
func harmonic(bobs []*object.Bob) []float64 {
	out := make([]float64, len(bobs))
	for i, b := range bobs {
		out[i] = -b.Angle
	}
	return out
}

func TestRK4CanonicalAccuracy(t *testing.T) {
	integ := NewRK4Mode(ModeCanonical)
	b := object.NewBob(1, 1, 1, 1.0)
	bobs := []*object.Bob{b}

	dt := 0.01
	steps := 100
	for i := 0; i < steps; i++ {
		integ.Step(bobs, dt, harmonic)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(b.Angle-expectedX) > 1e-8 {
		t.Errorf("angle error too large: got %.10f, expected %.10f", b.Angle, expectedX)
	}
	if math.Abs(b.AngleVelocity-expectedV) > 1e-8 {
		t.Errorf("velocity error too large: got %.10f, expected %.10f", b.AngleVelocity, expectedV)
	}
}

func TestRK4FrozenSingleStep(t *testing.T) {
	integ := NewRK4()
	b := object.NewBob(1, 1, 1, 1.0)
	b.AngleVelocity = 0.5

	constant := func(bobs []*object.Bob) []float64 { return []float64{-2} }
	integ.Step([]*object.Bob{b}, 0.1, constant)

	// frozen stages: theta += w*dt + a*dt^2/2, w += a*dt
	if math.Abs(b.Angle-(1.0+0.05-0.01)) > 1e-12 {
		t.Errorf("unexpected angle %.12f", b.Angle)
	}
	if math.Abs(b.AngleVelocity-(0.5-0.2)) > 1e-12 {
		t.Errorf("unexpected angular velocity %.12f", b.AngleVelocity)
	}
	if b.AngleAcceleration != -2 {
		t.Errorf("expected stored acceleration -2, got %f", b.AngleAcceleration)
	}
}

// The frozen scheme evaluates the derivative once per step, so it is less
// accurate than canonical RK4 on the same problem.
func TestRK4FrozenDiffersFromCanonical(t *testing.T) {
	frozen := []*object.Bob{object.NewBob(1, 1, 1, 1.0)}
	canonical := []*object.Bob{object.NewBob(1, 1, 1, 1.0)}

	calls := 0
	counting := func(bobs []*object.Bob) []float64 {
		calls++
		return harmonic(bobs)
	}

	fi, ci := NewRK4Mode(ModeFrozen), NewRK4Mode(ModeCanonical)
	for i := 0; i < 100; i++ {
		fi.Step(frozen, 0.01, counting)
	}
	if calls != 100 {
		t.Errorf("frozen mode should evaluate once per step, got %d calls", calls)
	}

	calls = 0
	for i := 0; i < 100; i++ {
		ci.Step(canonical, 0.01, counting)
	}
	if calls != 400 {
		t.Errorf("canonical mode should evaluate four times per step, got %d calls", calls)
	}

	exact := math.Cos(1.0)
	errFrozen := math.Abs(frozen[0].Angle - exact)
	errCanonical := math.Abs(canonical[0].Angle - exact)
	if errFrozen <= errCanonical {
		t.Errorf("expected frozen error (%g) above canonical error (%g)", errFrozen, errCanonical)
	}
}

func TestRK4EmptyChain(t *testing.T) {
	NewRK4().Step(nil, 0.1, harmonic)
}

func TestParseMode(t *testing.T) {
	if ParseMode("canonical") != ModeCanonical {
		t.Error("expected canonical mode")
	}
	if ParseMode("frozen") != ModeFrozen || ParseMode("") != ModeFrozen {
		t.Error("expected frozen mode by default")
	}
	if ModeCanonical.String() != "canonical" {
		t.Errorf("unexpected mode string %q", ModeCanonical.String())
	}
}

func BenchmarkEuler(b *testing.B) {
	integ := NewEuler()
	c := object.NewCircle(1, 1, 5, geom.V(0, 0), geom.V(1, 1))
	c.SetForce(geom.V(0, 9.8))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(c, 0.01)
	}
}

func BenchmarkRK4Frozen(b *testing.B) {
	integ := NewRK4()
	bobs := []*object.Bob{object.NewBob(1, 1, 1, 0.5), object.NewBob(2, 1, 1, 0.5)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(bobs, 0.01, harmonic)
	}
}

func BenchmarkRK4Canonical(b *testing.B) {
	integ := NewRK4Mode(ModeCanonical)
	bobs := []*object.Bob{object.NewBob(1, 1, 1, 0.5), object.NewBob(2, 1, 1, 0.5)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		integ.Step(bobs, 0.01, harmonic)
	}
}
