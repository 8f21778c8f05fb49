package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Size is a canvas extent.
type Size struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

func (s Size) IsZero() bool { return s.Width <= 0 || s.Height <= 0 }

// Rect returns the canvas rectangle anchored at the origin.
func (s Size) Rect() Rect { return Rect{Max: Vec{X: s.Width, Y: s.Height}} }

// Rect is an axis-aligned rectangle with Min <= Max.
type Rect = r2.Box

// RectAround returns the rectangle of the given extent centred on c.
func RectAround(c Vec, w, h float64) Rect {
	return Rect{
		Min: Vec{X: c.X - w/2, Y: c.Y - h/2},
		Max: Vec{X: c.X + w/2, Y: c.Y + h/2},
	}
}

// RectFromPoints returns the bounding box of two points.
func RectFromPoints(a, b Vec) Rect {
	return Rect{
		Min: Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Inflate grows r by dx on the left and right and dy on the top and bottom.
func Inflate(r Rect, dx, dy float64) Rect {
	return Rect{
		Min: Vec{X: r.Min.X - dx, Y: r.Min.Y - dy},
		Max: Vec{X: r.Max.X + dx, Y: r.Max.Y + dy},
	}
}

// EnsureMinSize inflates r symmetrically until it is at least w by h.
func EnsureMinSize(r Rect, w, h float64) Rect {
	dx := math.Max(0, (w-(r.Max.X-r.Min.X))/2)
	dy := math.Max(0, (h-(r.Max.Y-r.Min.Y))/2)
	return Inflate(r, dx, dy)
}

// Contains reports whether p lies inside r, edges included.
func Contains(r Rect, p Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func Width(r Rect) float64  { return r.Max.X - r.Min.X }
func Height(r Rect) float64 { return r.Max.Y - r.Min.Y }
