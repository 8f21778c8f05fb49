package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D vector in screen coordinates (y grows downward).
type Vec = r2.Vec

// UnitX is the fallback direction for degenerate normals.
var UnitX = Vec{X: 1, Y: 0}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func Add(a, b Vec) Vec            { return r2.Add(a, b) }
func Sub(a, b Vec) Vec            { return r2.Sub(a, b) }
func Scale(f float64, v Vec) Vec  { return r2.Scale(f, v) }
func Dot(a, b Vec) float64        { return r2.Dot(a, b) }
func Length(v Vec) float64        { return r2.Norm(v) }
func LengthSquared(v Vec) float64 { return r2.Norm2(v) }
func Distance(a, b Vec) float64   { return r2.Norm(r2.Sub(a, b)) }

// Cross returns the z component of the 3D cross product of a and b.
func Cross(a, b Vec) float64 { return r2.Cross(a, b) }

// Normalize returns the unit vector in the direction of v.
// The zero vector (and any vector whose length underflows) yields UnitX.
func Normalize(v Vec) Vec {
	l := r2.Norm(v)
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return UnitX
	}
	return r2.Scale(1/l, v)
}

// IsFinite reports whether both components are finite numbers.
func IsFinite(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
