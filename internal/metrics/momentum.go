package metrics

import (
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
)

// Momentum reports the magnitude of the total momentum of the finite-mass
// objects at the last observed tick.
type Momentum struct {
	name  string
	total geom.Vec
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(objects []object.Object, _ uint64) {
	m.total = Total(objects)
}

// Vector returns the total momentum rather than its magnitude.
func (m *Momentum) Vector() geom.Vec { return m.total }

func (m *Momentum) Value() float64 { return geom.Length(m.total) }

func (m *Momentum) Reset() { m.total = geom.Vec{} }

// Total sums m*v over the finite-mass objects.
func Total(objects []object.Object) geom.Vec {
	var p geom.Vec
	for _, o := range objects {
		if o.IsStatic() {
			continue
		}
		p = geom.Add(p, geom.Scale(o.Mass(), o.Velocity()))
	}
	return p
}

// ObjectCount reports the collection size at the last observed tick and
// remembers the peak.
type ObjectCount struct {
	name    string
	current int
	peak    int
}

func NewObjectCount() *ObjectCount {
	return &ObjectCount{name: "object_count"}
}

func (c *ObjectCount) Name() string { return c.name }

func (c *ObjectCount) Observe(objects []object.Object, _ uint64) {
	c.current = len(objects)
	c.peak = max(c.peak, c.current)
}

func (c *ObjectCount) Value() float64 { return float64(c.current) }

func (c *ObjectCount) Peak() int { return c.peak }

func (c *ObjectCount) Reset() {
	c.current = 0
	c.peak = 0
}
