package integrators

import (
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
)

// Euler advances velocity from force, then position from the new velocity.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

// Step integrates one object. Static bodies and projected kinds (pendulum
// bobs) are left untouched so infinite mass never reaches a division.
func (e *Euler) Step(o object.Object, dt float64) {
	if o.IsStatic() || !o.Kind().Integrated() {
		return
	}
	m := o.Mass()
	if m <= 0 {
		return
	}
	v := geom.Add(o.Velocity(), geom.Scale(dt/m, o.Force()))
	o.SetVelocity(v)
	o.SetPosition(geom.Add(o.Position(), geom.Scale(dt, v)))
}
