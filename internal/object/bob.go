package object

import (
	"math"

	"github.com/san-kum/worldsim/internal/geom"
)

// Bob is a pendulum mass hanging from a pivot or from the previous bob.
// Angle is measured from the downward vertical. Position, velocity and force
// are projections written by Project and are never integrated directly.
type Bob struct {
	Body
	RodLength         float64
	Angle             float64
	AngleVelocity     float64
	AngleAcceleration float64
	Radius            float64
}

func NewBob(id ID, mass, rodLength, angle float64) *Bob {
	return &Bob{
		Body:      NewBody(id, mass, geom.Vec{}, geom.Vec{}),
		RodLength: rodLength,
		Angle:     angle,
		Radius:    10,
	}
}

func (b *Bob) Kind() Kind { return KindBob }

func (b *Bob) TouchableRegion() geom.Rect {
	r := geom.RectAround(b.position, 2*b.Radius, 2*b.Radius)
	return geom.EnsureMinSize(r, MinTouchSize, MinTouchSize)
}

func (b *Bob) Clone() Object {
	cp := *b
	return &cp
}

func (b *Bob) State() State {
	s := b.state(KindBob)
	s.Radius = b.Radius
	s.RodLength = b.RodLength
	s.Angle = b.Angle
	s.AngleVelocity = b.AngleVelocity
	s.AngleAcceleration = b.AngleAcceleration
	return s
}

// Project recomputes Cartesian position and velocity of a bob chain from the
// angular state. Positions are relative to the pivot and compose absolutely:
// each bob hangs from the previous one.
func Project(bobs []*Bob) {
	var pos, vel geom.Vec
	for _, b := range bobs {
		sin, cos := math.Sincos(b.Angle)
		pos = geom.Add(pos, geom.V(b.RodLength*sin, b.RodLength*cos))
		vel = geom.Add(vel, geom.V(b.RodLength*cos*b.AngleVelocity, -b.RodLength*sin*b.AngleVelocity))
		b.position = pos
		b.velocity = vel
		if !b.IsStatic() {
			// tangential force for the debug arrow
			b.force = geom.V(b.mass*b.RodLength*b.AngleAcceleration*cos, -b.mass*b.RodLength*b.AngleAcceleration*sin)
		}
	}
}
