package physics

import (
	"fmt"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/world"
)

const (
	DefaultFieldGravity = 98.0
	DefaultMass         = 1.0
	DefaultRadius       = 10.0
)

// Gravity pulls every movable object down with F = (0, m*g).
type Gravity struct {
	world.Interactions[object.Object]

	G      float64
	Mass   float64
	Radius float64
}

func NewGravity() *Gravity {
	return &Gravity{
		G:      DefaultFieldGravity,
		Mass:   DefaultMass,
		Radius: DefaultRadius,
	}
}

func (g *Gravity) Name() string { return "gravity" }

func (g *Gravity) InitialObjects(ids *object.IDGen, _ geom.Size) []object.Object {
	objs := make([]object.Object, 0, 5)
	for i := 0; i < 5; i++ {
		pos := geom.V(80+float64(i)*60, 80)
		vel := geom.V(float64(i-2)*15, -40)
		objs = append(objs, object.NewCircle(ids.Next(), g.Mass, g.Radius, pos, vel))
	}
	return objs
}

func (g *Gravity) StepForces(objects []object.Object, _ world.Env) []object.Object {
	for _, o := range objects {
		if o.IsStatic() {
			continue
		}
		o.AddForce(geom.V(0, o.Mass()*g.G))
	}
	return objects
}

func (g *Gravity) MakeObjectOnTap(ids *object.IDGen, point geom.Vec) (object.Object, bool) {
	return object.NewCircle(ids.Next(), g.Mass, g.Radius, point, geom.Vec{}), true
}

// OnDragEmptyArea sprays one circle per pointer move.
func (g *Gravity) OnDragEmptyArea(ids *object.IDGen, objects []object.Object, point geom.Vec) []object.Object {
	return append(objects, object.NewCircle(ids.Next(), g.Mass, g.Radius/2, point, geom.Vec{}))
}

func (g *Gravity) GetParams() map[string]float64 {
	return map[string]float64{
		"g":      g.G,
		"mass":   g.Mass,
		"radius": g.Radius,
	}
}

func (g *Gravity) SetParam(name string, value float64) error {
	switch name {
	case "g":
		g.G = value
	case "mass":
		if value <= 0 {
			return fmt.Errorf("mass must be positive: %w", dynamo.ErrParameterBounds)
		}
		g.Mass = value
	case "radius":
		if value <= 0 {
			return fmt.Errorf("radius must be positive: %w", dynamo.ErrParameterBounds)
		}
		g.Radius = value
	default:
		return fmt.Errorf("unknown param: %s: %w", name, dynamo.ErrInvalidConfig)
	}
	return nil
}
