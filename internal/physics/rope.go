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
	DefaultRopeLength    = 200.0
	DefaultRopeStiffness = 20.0
	DefaultRopeDamping   = 4.0
	anchorRadius         = 8.0
	controlRadius        = 6.0
)

type rope struct {
	a, mid, b object.ID
}

// tail holds the members of a tapped rope that join after its first anchor.
type tail struct {
	anchor object.ID
	objs   []object.Object
}

// Rope simulates ropes of fixed length hung between two anchors. The control
// point of each rope is pulled by a spring-damper toward the point where a
// string of that length would sag to. Anchors feel no force; when they are
// dragged further apart than the rope allows, both are pulled back.
type Rope struct {
	world.Interactions[object.Object]

	Length  float64
	K       float64
	Damping float64

	base    []rope // from InitialObjects, survive resets
	ropes   []rope // spawned by taps, dropped once a member is gone
	pending []tail
}

func NewRope() *Rope {
	return &Rope{
		Length:  DefaultRopeLength,
		K:       DefaultRopeStiffness,
		Damping: DefaultRopeDamping,
	}
}

func (r *Rope) Name() string { return "rope" }

func (r *Rope) InitialObjects(ids *object.IDGen, _ geom.Size) []object.Object {
	r.ropes = r.ropes[:0]
	r.pending = nil
	objs, rp := r.spawn(ids, geom.V(300, 150))
	r.base = []rope{rp}
	return objs
}

// spawn creates a rope centred on p with its anchors at 80% of the length.
func (r *Rope) spawn(ids *object.IDGen, p geom.Vec) ([]object.Object, rope) {
	half := 0.4 * r.Length
	a := object.NewCircle(ids.Next(), DefaultMass, anchorRadius, geom.V(p.X-half, p.Y), geom.Vec{})
	mid := object.NewCircle(ids.Next(), DefaultMass, controlRadius, p, geom.Vec{})
	b := object.NewCircle(ids.Next(), DefaultMass, anchorRadius, geom.V(p.X+half, p.Y), geom.Vec{})
	return []object.Object{a, mid, b}, rope{a: a.ID(), mid: mid.ID(), b: b.ID()}
}

// MakeObjectOnTap returns the first anchor of a new rope. The control point
// and second anchor join the world on the next tick.
func (r *Rope) MakeObjectOnTap(ids *object.IDGen, point geom.Vec) (object.Object, bool) {
	objs, rp := r.spawn(ids, point)
	r.ropes = append(r.ropes, rp)
	r.pending = append(r.pending, tail{anchor: rp.a, objs: objs[1:]})
	return objs[0], true
}

// SagTarget is where the control point of a rope of the given length hangs
// when its anchors are at a and b.
func SagTarget(a, b geom.Vec, length float64) geom.Vec {
	mid := geom.Scale(0.5, geom.Add(a, b))
	half := geom.Distance(a, b) / 2
	l := length / 2
	return geom.Add(mid, geom.V(0, math.Sqrt(math.Max(0, l*l-half*half))))
}

func (r *Rope) StepForces(objects []object.Object, _ world.Env) []object.Object {
	byID := make(map[object.ID]object.Object, len(objects)+2*len(r.pending))
	for _, o := range objects {
		byID[o.ID()] = o
	}
	for _, t := range r.pending {
		if _, ok := byID[t.anchor]; !ok {
			continue
		}
		objects = append(objects, t.objs...)
		for _, o := range t.objs {
			byID[o.ID()] = o
		}
	}
	r.pending = r.pending[:0]

	for _, rp := range r.base {
		r.pull(byID, rp)
	}
	live := r.ropes[:0]
	for _, rp := range r.ropes {
		if r.pull(byID, rp) {
			live = append(live, rp)
		}
	}
	r.ropes = live
	return objects
}

// pull applies the rope constraint and reports whether all members exist.
func (r *Rope) pull(byID map[object.ID]object.Object, rp rope) bool {
	a, okA := byID[rp.a]
	mid, okM := byID[rp.mid]
	b, okB := byID[rp.b]
	if !okA || !okM || !okB {
		return false
	}
	r.tension(a, b)

	target := SagTarget(a.Position(), b.Position(), r.Length)
	f := geom.Sub(geom.Scale(r.K, geom.Sub(target, mid.Position())), geom.Scale(r.Damping, mid.Velocity()))
	mid.AddForce(f)
	return true
}

// tension moves both anchors toward each other until they are no more than
// Length apart and removes their separating velocity.
func (r *Rope) tension(a, b object.Object) {
	d := geom.Sub(b.Position(), a.Position())
	dist := geom.Length(d)
	if dist <= r.Length {
		return
	}
	n := geom.Normalize(d)
	shift := geom.Scale((dist-r.Length)/2, n)
	a.SetPosition(geom.Add(a.Position(), shift))
	b.SetPosition(geom.Sub(b.Position(), shift))

	if sep := geom.Dot(geom.Sub(b.Velocity(), a.Velocity()), n); sep > 0 {
		half := geom.Scale(sep/2, n)
		a.SetVelocity(geom.Add(a.Velocity(), half))
		b.SetVelocity(geom.Sub(b.Velocity(), half))
	}
}

// Ropes reports how many ropes are tracked, including preset ones.
func (r *Rope) Ropes() int { return len(r.base) + len(r.ropes) }

func (r *Rope) GetParams() map[string]float64 {
	return map[string]float64{
		"length":  r.Length,
		"k":       r.K,
		"damping": r.Damping,
	}
}

func (r *Rope) SetParam(name string, value float64) error {
	switch name {
	case "length":
		if value <= 0 {
			return fmt.Errorf("rope length must be positive: %w", dynamo.ErrParameterBounds)
		}
		r.Length = value
	case "k":
		r.K = value
	case "damping":
		r.Damping = value
	default:
		return fmt.Errorf("unknown param: %s: %w", name, dynamo.ErrInvalidConfig)
	}
	return nil
}
