package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/integrators"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/physics"
	"github.com/san-kum/worldsim/internal/world"
)

// Chain describes a pendulum chain to analyse.
type Chain struct {
	G    float64
	Mode integrators.Mode
	Bobs []physics.BobSpec
	Dt   float64
}

// World builds a fresh world for the chain.
func (c Chain) World() (*world.World[*object.Bob], error) {
	p := physics.NewPendulumChain(c.G, c.Mode, c.Bobs...)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cfg := dynamo.DefaultConfig()
	cfg.Dt = c.Dt
	return world.New[*object.Bob](p, cfg)
}

// phase flattens the chain into angles followed by angular velocities.
func phase(bobs []*object.Bob) []float64 {
	x := make([]float64, 2*len(bobs))
	for i, b := range bobs {
		x[i] = b.Angle
		x[len(bobs)+i] = b.AngleVelocity
	}
	return x
}

func setPhase(bobs []*object.Bob, x []float64) {
	for i, b := range bobs {
		b.Angle = x[i]
		b.AngleVelocity = x[len(bobs)+i]
	}
	object.Project(bobs)
}

// LyapunovExponent estimates the largest Lyapunov exponent by perturbing the
// first angle of a twin chain.
//
// Algorithm:
// 1. Run the chain and a copy offset by perturbation
// 2. After each tick measure their separation d in phase space
// 3. Accumulate ln(d/d0) and pull the copy back to distance d0
// 4. λ ≈ Σ ln(d/d0) / (ticks * dt)
func LyapunovExponent(c Chain, ticks int, perturbation float64) (float64, error) {
	return lyapunov(c, ticks, 0, perturbation)
}

// LyapunovSpectrum perturbs each phase coordinate in turn: angles first,
// then angular velocities.
func LyapunovSpectrum(c Chain, ticks int, perturbation float64) ([]float64, error) {
	spectrum := make([]float64, 2*len(c.Bobs))
	for i := range spectrum {
		l, err := lyapunov(c, ticks, i, perturbation)
		if err != nil {
			return nil, err
		}
		spectrum[i] = l
	}
	return spectrum, nil
}

func lyapunov(c Chain, ticks, coord int, d0 float64) (float64, error) {
	if d0 <= 0 {
		return 0, fmt.Errorf("perturbation must be positive, got %g: %w", d0, dynamo.ErrParameterBounds)
	}
	if ticks < 1 {
		return 0, fmt.Errorf("ticks must be positive, got %d: %w", ticks, dynamo.ErrParameterBounds)
	}
	base, err := c.World()
	if err != nil {
		return 0, err
	}
	twin, err := c.World()
	if err != nil {
		return 0, err
	}

	x := phase(twin.Objects())
	if coord >= len(x) {
		return 0, fmt.Errorf("coordinate %d out of range: %w", coord, dynamo.ErrParameterBounds)
	}
	x[coord] += d0
	setPhase(twin.Objects(), x)

	sumLog := 0.0
	for i := 0; i < ticks; i++ {
		base.Tick(c.Dt)
		twin.Tick(c.Dt)

		a, b := phase(base.Objects()), phase(twin.Objects())
		sep := 0.0
		for j := range a {
			diff := b[j] - a[j]
			sep += diff * diff
		}
		sep = math.Sqrt(sep)
		if sep == 0 || math.IsNaN(sep) {
			continue
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for j := range b {
			b[j] = a[j] + (b[j]-a[j])*scale
		}
		setPhase(twin.Objects(), b)
	}

	return sumLog / (float64(ticks) * c.Dt), nil
}
