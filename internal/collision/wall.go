package collision

import (
	"math"

	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
)

const (
	DefaultRestitution = 0.8
	DefaultFriction    = 0.02
)

// Wall keeps circles inside a rectangle.
type Wall struct {
	Restitution float64
	Friction    float64
}

func DefaultWall() Wall {
	return Wall{Restitution: DefaultRestitution, Friction: DefaultFriction}
}

// ResolveWall reflects the velocity component perpendicular to every
// boundary c has crossed, scaled by Restitution, and clamps the circle back
// inside bounds. A circle that touched a wall also receives a friction force
// opposing its velocity. The check is discrete: a circle that crossed the
// whole rectangle within one tick is not caught. Reports whether a wall was hit.
func (w Wall) ResolveWall(c *object.Circle, bounds geom.Rect) bool {
	if c.IsStatic() {
		return false
	}
	p, v := c.Position(), c.Velocity()
	r := c.Radius
	hit := false

	if p.X-r < bounds.Min.X {
		p.X = bounds.Min.X + r
		v.X = math.Abs(v.X) * w.Restitution
		hit = true
	} else if p.X+r > bounds.Max.X {
		p.X = bounds.Max.X - r
		v.X = -math.Abs(v.X) * w.Restitution
		hit = true
	}

	if p.Y-r < bounds.Min.Y {
		p.Y = bounds.Min.Y + r
		v.Y = math.Abs(v.Y) * w.Restitution
		hit = true
	} else if p.Y+r > bounds.Max.Y {
		p.Y = bounds.Max.Y - r
		v.Y = -math.Abs(v.Y) * w.Restitution
		hit = true
	}

	if !hit {
		return false
	}
	c.SetPosition(p)
	c.SetVelocity(v)
	c.AddForce(geom.Scale(-w.Friction*c.Mass(), v))
	return true
}
