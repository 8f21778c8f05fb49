package object

import "github.com/san-kum/worldsim/internal/geom"

type Circle struct {
	Body
	Radius float64
}

func NewCircle(id ID, mass, radius float64, position, velocity geom.Vec) *Circle {
	return &Circle{Body: NewBody(id, mass, position, velocity), Radius: radius}
}

// NewStaticCircle returns an immovable circle, e.g. a Galton peg or spring anchor.
func NewStaticCircle(id ID, radius float64, position geom.Vec) *Circle {
	return NewCircle(id, Infinite, radius, position, geom.Vec{})
}

func (c *Circle) Kind() Kind { return KindCircle }

func (c *Circle) TouchableRegion() geom.Rect {
	r := geom.RectAround(c.position, 2*c.Radius, 2*c.Radius)
	return geom.EnsureMinSize(r, MinTouchSize, MinTouchSize)
}

func (c *Circle) Clone() Object {
	cp := *c
	return &cp
}

func (c *Circle) State() State {
	s := c.state(KindCircle)
	s.Radius = c.Radius
	return s
}
