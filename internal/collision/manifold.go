package collision

import (
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
)

// Manifold describes a contact. Normal is a unit vector pointing from the
// second body toward the first; Overlap is the penetration depth (> 0).
type Manifold struct {
	Normal  geom.Vec
	Overlap float64
}

// DetectCircleCircle reports a contact when the centres are closer than the
// sum of the radii. Coincident centres use geom.UnitX as the normal.
func DetectCircleCircle(c1, c2 *object.Circle) (Manifold, bool) {
	delta := geom.Sub(c1.Position(), c2.Position())
	dist := geom.Length(delta)
	radii := c1.Radius + c2.Radius
	if dist >= radii {
		return Manifold{}, false
	}
	return Manifold{Normal: geom.Normalize(delta), Overlap: radii - dist}, true
}

// DetectLineCircle tests a circle against a segment. The circle centre is
// projected onto the segment's infinite extension: before the start and past
// the end it collides with the endpoint; in between it collides with the
// segment inflated by half its width. The normal points from the line toward
// the circle.
func DetectLineCircle(l *object.Line, c *object.Circle) (Manifold, bool) {
	start, end := l.Start(), l.End
	seg := geom.Sub(end, start)
	rel := geom.Sub(c.Position(), start)

	segLen2 := geom.LengthSquared(seg)
	if segLen2 == 0 {
		return detectPoint(start, c, l.Width/2)
	}

	t := geom.Dot(rel, seg) / segLen2
	switch {
	case t < 0:
		return detectPoint(start, c, l.Width/2)
	case t > 1:
		return detectPoint(end, c, l.Width/2)
	}

	dir := geom.Normalize(seg)
	side := geom.Cross(dir, rel)
	dist := side
	if dist < 0 {
		dist = -dist
	}
	reach := c.Radius + l.Width/2
	if dist >= reach {
		return Manifold{}, false
	}

	// left-hand perpendicular; flip to the circle's side
	normal := geom.V(-dir.Y, dir.X)
	if side < 0 {
		normal = geom.Scale(-1, normal)
	}
	return Manifold{Normal: normal, Overlap: reach - dist}, true
}

func detectPoint(p geom.Vec, c *object.Circle, pad float64) (Manifold, bool) {
	delta := geom.Sub(c.Position(), p)
	dist := geom.Length(delta)
	reach := c.Radius + pad
	if dist >= reach {
		return Manifold{}, false
	}
	return Manifold{Normal: geom.Normalize(delta), Overlap: reach - dist}, true
}

// Detect dispatches on the object pair. The manifold normal always points
// from b toward a. Unsupported pairs (line-line, bobs) report no contact.
func Detect(a, b object.Object) (Manifold, bool) {
	switch a := a.(type) {
	case *object.Circle:
		switch b := b.(type) {
		case *object.Circle:
			return DetectCircleCircle(a, b)
		case *object.Line:
			return DetectLineCircle(b, a)
		}
	case *object.Line:
		if c, ok := b.(*object.Circle); ok {
			m, hit := DetectLineCircle(a, c)
			if !hit {
				return m, false
			}
			m.Normal = geom.Scale(-1, m.Normal)
			return m, true
		}
	}
	return Manifold{}, false
}
