// Package object defines the simulation entities the world engine moves:
// circles, line segments and pendulum bobs. Every variant satisfies [Object];
// physics routines dispatch on [Object.Kind] or a type switch, never on
// embedding.
package object

import (
	"math"

	"github.com/san-kum/worldsim/internal/geom"
)

// MinTouchSize is the smallest edge of any touchable region.
const MinTouchSize = 28.0

// Infinite is the mass of immovable bodies.
var Infinite = math.Inf(1)

// ID identifies an object for its whole lifetime. IDs are never reused by an IDGen.
type ID uint64

// IDGen hands out monotonically increasing IDs. It is owned by one world and
// is not safe for concurrent use.
type IDGen struct {
	last ID
}

func NewIDGen() *IDGen { return &IDGen{} }

func (g *IDGen) Next() ID {
	g.last++
	return g.last
}

// Observe advances the generator past id so restored objects never collide
// with fresh ones.
func (g *IDGen) Observe(id ID) {
	if id > g.last {
		g.last = id
	}
}

type Kind int

const (
	KindCircle Kind = iota
	KindLine
	KindBob
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindLine:
		return "line"
	case KindBob:
		return "bob"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindCircle, KindLine, KindBob} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Integrated reports whether the Euler pass owns this kind's kinematics.
// Bob positions are projections of angular state.
func (k Kind) Integrated() bool { return k != KindBob }

// Object is the capability set shared by every variant.
type Object interface {
	ID() ID
	Kind() Kind
	Mass() float64
	IsStatic() bool

	Position() geom.Vec
	SetPosition(p geom.Vec)
	Velocity() geom.Vec
	SetVelocity(v geom.Vec)
	Force() geom.Vec
	SetForce(f geom.Vec)
	AddForce(f geom.Vec)

	TouchableRegion() geom.Rect
	Clone() Object
	State() State
}

// Body holds the kinematic state common to all variants.
type Body struct {
	id       ID
	mass     float64
	position geom.Vec
	velocity geom.Vec
	force    geom.Vec
}

func NewBody(id ID, mass float64, position, velocity geom.Vec) Body {
	return Body{id: id, mass: mass, position: position, velocity: velocity}
}

func (b *Body) ID() ID                 { return b.id }
func (b *Body) Mass() float64          { return b.mass }
func (b *Body) SetMass(m float64)      { b.mass = m }
func (b *Body) IsStatic() bool         { return math.IsInf(b.mass, 1) }
func (b *Body) Position() geom.Vec     { return b.position }
func (b *Body) SetPosition(p geom.Vec) { b.position = p }
func (b *Body) Velocity() geom.Vec     { return b.velocity }
func (b *Body) SetVelocity(v geom.Vec) { b.velocity = v }
func (b *Body) Force() geom.Vec        { return b.force }
func (b *Body) SetForce(f geom.Vec)    { b.force = f }
func (b *Body) AddForce(f geom.Vec)    { b.force = geom.Add(b.force, f) }

func (b *Body) state(k Kind) State {
	return State{
		ID:       b.id,
		Kind:     k,
		Mass:     b.mass,
		Position: b.position,
		Velocity: b.velocity,
		Force:    b.force,
	}
}

// State is a plain value copy of an object, used for snapshots, recording
// and comparisons.
type State struct {
	ID       ID
	Kind     Kind
	Mass     float64
	Position geom.Vec
	Velocity geom.Vec
	Force    geom.Vec

	Radius float64

	End       geom.Vec
	Width     float64
	Finalized bool

	RodLength         float64
	Angle             float64
	AngleVelocity     float64
	AngleAcceleration float64
}

// States converts a slice of objects into value snapshots.
func States[O Object](objects []O) []State {
	out := make([]State, len(objects))
	for i, o := range objects {
		out[i] = o.State()
	}
	return out
}
