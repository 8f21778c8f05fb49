package metrics

import (
	"math"

	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
)

// KineticEnergy reports the total kinetic energy of the movable objects at
// the last observed tick.
type KineticEnergy struct {
	name  string
	value float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(objects []object.Object, _ uint64) {
	k.value = Kinetic(objects)
}

func (k *KineticEnergy) Value() float64 { return k.value }

func (k *KineticEnergy) Reset() { k.value = 0 }

// Kinetic sums 1/2 m |v|^2 over the finite-mass objects.
func Kinetic(objects []object.Object) float64 {
	e := 0.0
	for _, o := range objects {
		if o.IsStatic() {
			continue
		}
		e += 0.5 * o.Mass() * geom.LengthSquared(o.Velocity())
	}
	return e
}

// PendulumEnergy reports kinetic plus potential energy of the pendulum bobs,
// with the pivot as the zero of potential energy. Other kinds are ignored.
type PendulumEnergy struct {
	name    string
	gravity float64
	value   float64
}

func NewPendulumEnergy(gravity float64) *PendulumEnergy {
	return &PendulumEnergy{
		name:    "pendulum_energy",
		gravity: gravity,
	}
}

func (p *PendulumEnergy) Name() string { return p.name }

func (p *PendulumEnergy) Observe(objects []object.Object, _ uint64) {
	e := 0.0
	for _, o := range objects {
		if o.Kind() != object.KindBob {
			continue
		}
		m := o.Mass()
		e += 0.5*m*geom.LengthSquared(o.Velocity()) - m*p.gravity*o.Position().Y
	}
	p.value = e
}

func (p *PendulumEnergy) Value() float64 { return p.value }

func (p *PendulumEnergy) Reset() { p.value = 0 }

// EnergyDrift tracks the largest relative deviation of an energy from its
// first observed value.
type EnergyDrift struct {
	name          string
	energy        func(objects []object.Object) float64
	initialEnergy float64
	maxDrift      float64
	samples       int
}

// NewEnergyDrift wraps an energy function, e.g. [Kinetic].
func NewEnergyDrift(energy func(objects []object.Object) float64) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		energy: energy,
	}
}

// NewPendulumEnergyDrift measures drift of the total pendulum energy.
func NewPendulumEnergyDrift(gravity float64) *EnergyDrift {
	pe := NewPendulumEnergy(gravity)
	return NewEnergyDrift(func(objects []object.Object) float64 {
		pe.Observe(objects, 0)
		return pe.Value()
	})
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(objects []object.Object, _ uint64) {
	energy := e.energy(objects)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
