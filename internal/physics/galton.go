package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/worldsim/internal/collision"
	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/world"
)

const (
	DefaultGaltonRows    = 8
	DefaultPegSpacing    = 30.0
	DefaultPegRadius     = 4.0
	DefaultBallRadius    = 5.0
	DefaultSpawnInterval = 10
	DefaultSettleLine    = 0.75
	DefaultGaltonGravity = 98.0
	DefaultGaltonBounce  = 0.5
)

// fallbackCanvas sizes the board before the first resize.
var fallbackCanvas = geom.Size{Width: 400, Height: 600}

// Galton is a peg board. Balls drop from the top centre, bounce through a
// triangular lattice of static pegs and settle between bin dividers. Below
// SettleLine (a fraction of the canvas height) horizontal motion is frozen.
// The board is rebuilt on every resize.
type Galton struct {
	world.Interactions[object.Object]

	Rows          int
	PegSpacing    float64
	PegRadius     float64
	BallRadius    float64
	SpawnInterval int
	SettleLine    float64
	G             float64
	Wall          collision.Wall
}

func NewGalton() *Galton {
	return &Galton{
		Rows:          DefaultGaltonRows,
		PegSpacing:    DefaultPegSpacing,
		PegRadius:     DefaultPegRadius,
		BallRadius:    DefaultBallRadius,
		SpawnInterval: DefaultSpawnInterval,
		SettleLine:    DefaultSettleLine,
		G:             DefaultGaltonGravity,
		Wall:          collision.Wall{Restitution: DefaultGaltonBounce, Friction: collision.DefaultFriction},
	}
}

func (g *Galton) Name() string { return "galton" }

func (g *Galton) Layout(canvas geom.Size) world.Layout {
	return world.Layout{Regenerate: !canvas.IsZero()}
}

func board(canvas geom.Size) geom.Size {
	if canvas.IsZero() {
		return fallbackCanvas
	}
	return canvas
}

func (g *Galton) top(canvas geom.Size) float64 { return 0.15 * canvas.Height }

// InitialObjects lays out the peg lattice and the bin dividers.
func (g *Galton) InitialObjects(ids *object.IDGen, canvas geom.Size) []object.Object {
	canvas = board(canvas)
	cx := canvas.Width / 2
	y0 := g.top(canvas)
	rowStep := g.PegSpacing * math.Sqrt(3) / 2

	objs := make([]object.Object, 0, g.Rows*(g.Rows+1)/2+g.Rows+2)
	for row := 0; row < g.Rows; row++ {
		y := y0 + float64(row)*rowStep
		for i := 0; i <= row; i++ {
			x := cx + (float64(i)-float64(row)/2)*g.PegSpacing
			objs = append(objs, object.NewStaticCircle(ids.Next(), g.PegRadius, geom.V(x, y)))
		}
	}

	settle := g.SettleLine * canvas.Height
	for i := 0; i <= g.Rows+1; i++ {
		x := cx + (float64(i)-float64(g.Rows+1)/2)*g.PegSpacing
		l := object.NewLine(ids.Next(), geom.V(x, settle), geom.V(x, canvas.Height), 2)
		l.Finalized = true
		objs = append(objs, l)
	}
	return objs
}

func (g *Galton) StepForces(objects []object.Object, env world.Env) []object.Object {
	canvas := board(env.Canvas)

	if g.SpawnInterval > 0 && env.Tick%uint64(g.SpawnInterval) == 0 {
		objects = append(objects, g.spawn(env.IDs, canvas, env.Tick/uint64(g.SpawnInterval)))
	}

	for _, o := range objects {
		if !o.IsStatic() {
			o.AddForce(geom.V(0, o.Mass()*g.G))
		}
	}

	collision.ResolvePairs(objects)

	bounds := canvas.Rect()
	settle := g.SettleLine * canvas.Height
	for _, o := range objects {
		c, ok := o.(*object.Circle)
		if !ok || c.IsStatic() {
			continue
		}
		if c.Position().Y > settle {
			v := c.Velocity()
			c.SetVelocity(geom.V(0, v.Y))
		}
		g.Wall.ResolveWall(c, bounds)
	}
	return objects
}

// spawn drops the n-th ball with a small alternating offset so balls do not
// balance on the top peg.
func (g *Galton) spawn(ids *object.IDGen, canvas geom.Size, n uint64) object.Object {
	jitter := (float64(n%5) - 2) * 0.1 * g.BallRadius
	pos := geom.V(canvas.Width/2+jitter, g.top(canvas)-2*g.PegSpacing)
	return object.NewCircle(ids.Next(), DefaultMass, g.BallRadius, pos, geom.Vec{})
}

func (g *Galton) MakeObjectOnTap(ids *object.IDGen, point geom.Vec) (object.Object, bool) {
	return object.NewCircle(ids.Next(), DefaultMass, g.BallRadius, point, geom.Vec{}), true
}

func (g *Galton) GetParams() map[string]float64 {
	return map[string]float64{
		"g":              g.G,
		"spawn_interval": float64(g.SpawnInterval),
		"settle_line":    g.SettleLine,
		"restitution":    g.Wall.Restitution,
	}
}

func (g *Galton) SetParam(name string, value float64) error {
	switch name {
	case "g":
		g.G = value
	case "spawn_interval":
		if value < 0 {
			return fmt.Errorf("spawn interval must not be negative: %w", dynamo.ErrParameterBounds)
		}
		g.SpawnInterval = int(value)
	case "settle_line":
		if value < 0 || value > 1 {
			return fmt.Errorf("settle line must be in [0, 1]: %w", dynamo.ErrParameterBounds)
		}
		g.SettleLine = value
	case "restitution":
		g.Wall.Restitution = value
	default:
		return fmt.Errorf("unknown param: %s: %w", name, dynamo.ErrInvalidConfig)
	}
	return nil
}
