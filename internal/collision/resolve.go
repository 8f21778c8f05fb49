package collision

import (
	"math"

	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
)

// MassRatios returns each body's share of the combined mass,
// (m1/(m1+m2), m2/(m1+m2)). Infinite masses take the whole share:
// (inf, inf) -> (0.5, 0.5), (inf, m) -> (1, 0), (m, inf) -> (0, 1).
func MassRatios(m1, m2 float64) (float64, float64) {
	inf1, inf2 := math.IsInf(m1, 1), math.IsInf(m2, 1)
	switch {
	case inf1 && inf2:
		return 0.5, 0.5
	case inf1:
		return 1, 0
	case inf2:
		return 0, 1
	}
	total := m1 + m2
	if total == 0 {
		return 0.5, 0.5
	}
	return m1 / total, m2 / total
}

// Resolve applies an elastic collision along m.Normal and separates the
// bodies by m.Overlap. Each body's change is weighted by the other body's
// mass share, so an infinite-mass body never moves. Velocities only change
// while the bodies approach each other; two static bodies are left alone.
func Resolve(m Manifold, a, b object.Object) {
	if a.IsStatic() && b.IsStatic() {
		return
	}
	r1, r2 := MassRatios(a.Mass(), b.Mass())

	rel := geom.Dot(geom.Sub(a.Velocity(), b.Velocity()), m.Normal)
	if rel < 0 {
		impulse := geom.Scale(2*rel, m.Normal)
		if r2 != 0 {
			a.SetVelocity(geom.Sub(a.Velocity(), geom.Scale(r2, impulse)))
		}
		if r1 != 0 {
			b.SetVelocity(geom.Add(b.Velocity(), geom.Scale(r1, impulse)))
		}
	}

	slide := geom.Scale(m.Overlap, m.Normal)
	if r2 != 0 {
		a.SetPosition(geom.Add(a.Position(), geom.Scale(r2, slide)))
	}
	if r1 != 0 {
		b.SetPosition(geom.Sub(b.Position(), geom.Scale(r1, slide)))
	}
}

// ResolvePairs detects and resolves every unordered pair once, in index
// order. It returns the number of contacts resolved.
func ResolvePairs[O object.Object](objects []O) int {
	n := 0
	for i := 0; i < len(objects); i++ {
		for j := i + 1; j < len(objects); j++ {
			a, b := objects[i], objects[j]
			if a.IsStatic() && b.IsStatic() {
				continue
			}
			if m, ok := Detect(a, b); ok {
				Resolve(m, a, b)
				n++
			}
		}
	}
	return n
}
