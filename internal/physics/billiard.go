package physics

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/worldsim/internal/collision"
	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/world"
)

const DefaultLineWidth = 4.0

// Billiard resolves elastic contacts between every pair of objects and keeps
// circles inside the canvas walls. There is no force field. Dragging on empty
// space draws a line obstacle that is finalized when the drag ends.
type Billiard struct {
	world.Interactions[object.Object]

	Wall      collision.Wall
	LineWidth float64
	MaxSpeed  float64

	rng     *rand.Rand
	drawing object.ID
}

func NewBilliard(seed int64) *Billiard {
	return &Billiard{
		Wall:      collision.DefaultWall(),
		LineWidth: DefaultLineWidth,
		MaxSpeed:  80,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (b *Billiard) Name() string { return "billiard" }

// InitialObjects racks a triangle of balls with a cue ball aimed at it.
func (b *Billiard) InitialObjects(ids *object.IDGen, _ geom.Size) []object.Object {
	b.drawing = 0
	r := DefaultRadius
	objs := []object.Object{
		object.NewCircle(ids.Next(), DefaultMass, r, geom.V(100, 200), geom.V(120, 0)),
	}
	apex := geom.V(300, 200)
	for row := 0; row < 4; row++ {
		for i := 0; i <= row; i++ {
			pos := geom.V(
				apex.X+float64(row)*r*math.Sqrt(3),
				apex.Y+(float64(i)-float64(row)/2)*2*r,
			)
			objs = append(objs, object.NewCircle(ids.Next(), DefaultMass, r, pos, geom.Vec{}))
		}
	}
	return objs
}

func (b *Billiard) StepForces(objects []object.Object, env world.Env) []object.Object {
	collision.ResolvePairs(objects)
	if env.Canvas.IsZero() {
		return objects
	}
	bounds := env.Canvas.Rect()
	for _, o := range objects {
		if c, ok := o.(*object.Circle); ok {
			b.Wall.ResolveWall(c, bounds)
		}
	}
	return objects
}

// MakeObjectOnTap spawns a ball of random mass moving in a random direction.
func (b *Billiard) MakeObjectOnTap(ids *object.IDGen, point geom.Vec) (object.Object, bool) {
	mass := 1 + 4*b.rng.Float64()
	angle := 2 * math.Pi * b.rng.Float64()
	speed := b.MaxSpeed * b.rng.Float64()
	vel := geom.Scale(speed, geom.V(math.Cos(angle), math.Sin(angle)))
	return object.NewCircle(ids.Next(), mass, DefaultRadius*math.Sqrt(mass), point, vel), true
}

// OnDragEmptyArea starts a line at the first point and then drags its end.
func (b *Billiard) OnDragEmptyArea(ids *object.IDGen, objects []object.Object, point geom.Vec) []object.Object {
	if l := b.line(objects); l != nil {
		l.End = point
		return objects
	}
	l := object.NewLine(ids.Next(), point, point, b.LineWidth)
	b.drawing = l.ID()
	return append(objects, l)
}

// OnDragEndEmptyArea finalizes the line being drawn. A line that never grew
// past a point is dropped.
func (b *Billiard) OnDragEndEmptyArea(objects []object.Object) []object.Object {
	l := b.line(objects)
	b.drawing = 0
	if l == nil {
		return objects
	}
	if l.Start() == l.End {
		for i, o := range objects {
			if o.ID() == l.ID() {
				return append(objects[:i], objects[i+1:]...)
			}
		}
	}
	l.Finalized = true
	return objects
}

func (b *Billiard) line(objects []object.Object) *object.Line {
	if b.drawing == 0 {
		return nil
	}
	for _, o := range objects {
		if o.ID() == b.drawing {
			l, _ := o.(*object.Line)
			return l
		}
	}
	return nil
}

func (b *Billiard) GetParams() map[string]float64 {
	return map[string]float64{
		"restitution": b.Wall.Restitution,
		"friction":    b.Wall.Friction,
		"line_width":  b.LineWidth,
		"max_speed":   b.MaxSpeed,
	}
}

func (b *Billiard) SetParam(name string, value float64) error {
	switch name {
	case "restitution":
		if value < 0 || value > 1 {
			return fmt.Errorf("restitution must be in [0, 1]: %w", dynamo.ErrParameterBounds)
		}
		b.Wall.Restitution = value
	case "friction":
		b.Wall.Friction = value
	case "line_width":
		b.LineWidth = value
	case "max_speed":
		b.MaxSpeed = value
	default:
		return fmt.Errorf("unknown param: %s: %w", name, dynamo.ErrInvalidConfig)
	}
	return nil
}
