package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/world"
)

const (
	DefaultStiffness  = 10.0
	DefaultDamping    = 0.5
	DefaultRestLength = 100.0
)

// Spring ties every movable object to every static anchor with a damped
// Hookean spring. With Lattice set, movable objects are also joined pairwise.
// The anchor sits at the layout offset, the centre of the canvas.
type Spring struct {
	world.Interactions[object.Object]

	K          float64
	Damping    float64
	RestLength float64
	Lattice    bool
}

func NewSpring() *Spring {
	return &Spring{
		K:          DefaultStiffness,
		Damping:    DefaultDamping,
		RestLength: DefaultRestLength,
	}
}

func (s *Spring) Name() string { return "spring" }

func (s *Spring) Layout(canvas geom.Size) world.Layout {
	return world.Layout{Offset: geom.V(canvas.Width/2, canvas.Height/2)}
}

func (s *Spring) InitialObjects(ids *object.IDGen, _ geom.Size) []object.Object {
	objs := []object.Object{object.NewStaticCircle(ids.Next(), DefaultRadius, geom.Vec{})}
	for i := 0; i < 4; i++ {
		a := float64(i) * math.Pi / 2
		pos := geom.Scale(1.5*s.RestLength, geom.V(math.Cos(a), math.Sin(a)))
		objs = append(objs, object.NewCircle(ids.Next(), DefaultMass, DefaultRadius, pos, geom.Vec{}))
	}
	return objs
}

// Force returns the spring force on an object at p with velocity v attached
// to a point at anchor: -k(|d| - rest) * d/|d| - damping * v, d = p - anchor.
func (s *Spring) Force(p, v, anchor geom.Vec) geom.Vec {
	return geom.Sub(s.pull(p, anchor), geom.Scale(s.Damping, v))
}

func (s *Spring) pull(p, anchor geom.Vec) geom.Vec {
	d := geom.Sub(p, anchor)
	stretch := geom.Length(d) - s.RestLength
	return geom.Scale(-s.K*stretch, geom.Normalize(d))
}

func (s *Spring) StepForces(objects []object.Object, _ world.Env) []object.Object {
	for _, o := range objects {
		if o.IsStatic() {
			continue
		}
		o.AddForce(geom.Scale(-s.Damping, o.Velocity()))
		for _, a := range objects {
			if a.IsStatic() {
				o.AddForce(s.pull(o.Position(), a.Position()))
			}
		}
	}

	if !s.Lattice {
		return objects
	}
	for i := 0; i < len(objects); i++ {
		if objects[i].IsStatic() {
			continue
		}
		for j := i + 1; j < len(objects); j++ {
			if objects[j].IsStatic() {
				continue
			}
			f := s.pull(objects[i].Position(), objects[j].Position())
			objects[i].AddForce(f)
			objects[j].AddForce(geom.Scale(-1, f))
		}
	}
	return objects
}

func (s *Spring) MakeObjectOnTap(ids *object.IDGen, point geom.Vec) (object.Object, bool) {
	return object.NewCircle(ids.Next(), DefaultMass, DefaultRadius, point, geom.Vec{}), true
}

func (s *Spring) GetParams() map[string]float64 {
	lattice := 0.0
	if s.Lattice {
		lattice = 1
	}
	return map[string]float64{
		"k":           s.K,
		"damping":     s.Damping,
		"rest_length": s.RestLength,
		"lattice":     lattice,
	}
}

func (s *Spring) SetParam(name string, value float64) error {
	switch name {
	case "k":
		s.K = value
	case "damping":
		if value < 0 {
			return fmt.Errorf("damping must not be negative: %w", dynamo.ErrParameterBounds)
		}
		s.Damping = value
	case "rest_length":
		if value < 0 {
			return fmt.Errorf("rest length must not be negative: %w", dynamo.ErrParameterBounds)
		}
		s.RestLength = value
	case "lattice":
		s.Lattice = value != 0
	default:
		return fmt.Errorf("unknown param: %s: %w", name, dynamo.ErrInvalidConfig)
	}
	return nil
}
