package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/integrators"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/world"
)

// DefaultPendulumGravity is deliberately abstract rather than 9.81.
const DefaultPendulumGravity = 1.0

// BobSpec describes one bob of a chain.
type BobSpec struct {
	Mass      float64
	RodLength float64
	Angle     float64
}

// Pendulum drives a chain of one or two bobs with angular RK4. Bob positions
// are projections relative to the pivot, which is the layout offset.
type Pendulum struct {
	world.Interactions[*object.Bob]

	G    float64
	Bobs []BobSpec

	rk4 *integrators.RK4
	acc []float64
}

// NewPendulum returns a single pendulum released at 45 degrees.
func NewPendulum() *Pendulum {
	return NewPendulumChain(DefaultPendulumGravity, integrators.ModeFrozen,
		BobSpec{Mass: 1, RodLength: 150, Angle: math.Pi / 4})
}

// NewDoublePendulum returns a double pendulum released horizontally.
func NewDoublePendulum() *Pendulum {
	return NewPendulumChain(DefaultPendulumGravity, integrators.ModeFrozen,
		BobSpec{Mass: 1, RodLength: 100, Angle: math.Pi / 2},
		BobSpec{Mass: 1, RodLength: 100, Angle: math.Pi / 2})
}

func NewPendulumChain(g float64, mode integrators.Mode, bobs ...BobSpec) *Pendulum {
	return &Pendulum{
		G:    g,
		Bobs: bobs,
		rk4:  integrators.NewRK4Mode(mode),
		acc:  make([]float64, len(bobs)),
	}
}

// Validate rejects chains the derivative has no closed form for.
func (p *Pendulum) Validate() error {
	if n := len(p.Bobs); n < 1 || n > 2 {
		return fmt.Errorf("pendulum needs 1 or 2 bobs, got %d: %w", n, dynamo.ErrInvalidConfig)
	}
	for i, b := range p.Bobs {
		if b.Mass <= 0 || b.RodLength <= 0 {
			return fmt.Errorf("bob %d needs positive mass and rod length: %w", i, dynamo.ErrParameterBounds)
		}
	}
	return nil
}

func (p *Pendulum) Name() string {
	if len(p.Bobs) == 2 {
		return "double-pendulum"
	}
	return "pendulum"
}

func (p *Pendulum) Mode() integrators.Mode { return p.rk4.Mode }

func (p *Pendulum) SetMode(m integrators.Mode) { p.rk4.Mode = m }

// Layout hangs the pivot at the horizontal centre, a third of the way down.
func (p *Pendulum) Layout(canvas geom.Size) world.Layout {
	return world.Layout{Offset: geom.V(canvas.Width/2, canvas.Height/3)}
}

func (p *Pendulum) InitialObjects(ids *object.IDGen, _ geom.Size) []*object.Bob {
	bobs := make([]*object.Bob, len(p.Bobs))
	for i, s := range p.Bobs {
		bobs[i] = object.NewBob(ids.Next(), s.Mass, s.RodLength, s.Angle)
	}
	object.Project(bobs)
	return bobs
}

func (p *Pendulum) StepForces(bobs []*object.Bob, env world.Env) []*object.Bob {
	p.rk4.Step(bobs, env.Dt, p.derivative)
	object.Project(bobs)
	return bobs
}

func (p *Pendulum) derivative(bobs []*object.Bob) []float64 {
	if len(p.acc) != len(bobs) {
		p.acc = make([]float64, len(bobs))
	}
	switch len(bobs) {
	case 1:
		singleAcceleration(p.G, bobs, p.acc)
	case 2:
		doubleAcceleration(p.G, bobs, p.acc)
	default:
		// no coupling law past two bobs; each swings on its own
		for i, b := range bobs {
			p.acc[i] = -p.G / b.RodLength * math.Sin(b.Angle)
		}
	}
	return p.acc
}

// OnDragObject swings the dragged bob to point at the pointer from the bob
// above it (or the pivot) and stops it.
func (p *Pendulum) OnDragObject(bob *object.Bob, point geom.Vec, bobs []*object.Bob) {
	var base geom.Vec
	for i, b := range bobs {
		if b != bob {
			continue
		}
		if i > 0 {
			base = bobs[i-1].Position()
		}
		d := geom.Sub(point, base)
		bob.Angle = math.Atan2(d.X, d.Y)
		bob.AngleVelocity = 0
		object.Project(bobs)
		return
	}
}

// SinglePendulumDerivative returns theta'' = -g/L sin(theta) for each bob.
func SinglePendulumDerivative(g float64) integrators.Derivative {
	return func(bobs []*object.Bob) []float64 {
		out := make([]float64, len(bobs))
		singleAcceleration(g, bobs, out)
		return out
	}
}

// DoublePendulumDerivative returns the coupled Lagrangian accelerations of
// two bobs, with mu = 1 + m1/m2.
func DoublePendulumDerivative(g float64) integrators.Derivative {
	return func(bobs []*object.Bob) []float64 {
		out := make([]float64, 2)
		doubleAcceleration(g, bobs, out)
		return out
	}
}

func singleAcceleration(g float64, bobs []*object.Bob, out []float64) {
	for i, b := range bobs {
		out[i] = -g / b.RodLength * math.Sin(b.Angle)
	}
}

func doubleAcceleration(g float64, bobs []*object.Bob, out []float64) {
	b1, b2 := bobs[0], bobs[1]
	l1, l2 := b1.RodLength, b2.RodLength
	t1, t2 := b1.Angle, b2.Angle
	w1, w2 := b1.AngleVelocity, b2.AngleVelocity

	mu := 1 + b1.Mass()/b2.Mass()
	sd, cd := math.Sincos(t1 - t2)
	den := mu - cd*cd

	out[0] = (g*(math.Sin(t2)*cd-mu*math.Sin(t1)) - (l2*w2*w2+l1*w1*w1*cd)*sd) / (l1 * den)
	out[1] = (g*mu*(math.Sin(t1)*cd-math.Sin(t2)) + (mu*l1*w1*w1+l2*w2*w2*cd)*sd) / (l2 * den)
}

// Energy returns the kinetic plus potential energy of a projected chain,
// with the pivot as the zero of potential energy.
func Energy(g float64, bobs []*object.Bob) float64 {
	e := 0.0
	for _, b := range bobs {
		e += 0.5*b.Mass()*geom.LengthSquared(b.Velocity()) - b.Mass()*g*b.Position().Y
	}
	return e
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"g":    p.G,
		"mode": float64(p.rk4.Mode),
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "g":
		if value < 0 {
			return fmt.Errorf("gravity must not be negative: %w", dynamo.ErrParameterBounds)
		}
		p.G = value
	case "mode":
		p.rk4.Mode = integrators.Mode(value)
	default:
		return fmt.Errorf("unknown param: %s: %w", name, dynamo.ErrInvalidConfig)
	}
	return nil
}
