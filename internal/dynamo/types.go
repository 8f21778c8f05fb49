package dynamo

import (
	"fmt"

	"github.com/san-kum/worldsim/internal/object"
)

const (
	DefaultDt             = 0.1
	DefaultMaxObjectCount = 10000
	DefaultBoundsPadding  = 1.0
	MinDt                 = 1e-4
	MaxDt                 = 10.0
)

type Integrator interface {
	Step(o object.Object, dt float64)
}

// Metric accumulates a scalar over the ticks of a run.
type Metric interface {
	Name() string
	Observe(objects []object.Object, tick uint64)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick. The slice is the live
// collection and must not be retained or mutated.
type Observer interface {
	OnTick(objects []object.Object, tick uint64)
}

type ObserverFunc func(objects []object.Object, tick uint64)

func (f ObserverFunc) OnTick(objects []object.Object, tick uint64) { f(objects, tick) }

// Config holds the runtime options of one world.
type Config struct {
	// Dt is the simulated seconds per tick.
	Dt float64
	// MaxObjectCount caps the collection; the oldest objects are dropped first.
	MaxObjectCount int
	// BoundsPadding is the eviction margin as a fraction of max(width, height).
	BoundsPadding float64

	ShowsVelocityArrows bool
	ShowsForceArrows    bool
	VelocityArrowScale  float64
	ForceArrowScale     float64
}

func DefaultConfig() Config {
	return Config{
		Dt:                 DefaultDt,
		MaxObjectCount:     DefaultMaxObjectCount,
		BoundsPadding:      DefaultBoundsPadding,
		VelocityArrowScale: 1,
		ForceArrowScale:    1,
	}
}

func (c Config) Validate() error {
	if err := ValidateDt(c.Dt); err != nil {
		return err
	}
	if c.MaxObjectCount < 1 {
		return fmt.Errorf("max object count must be positive, got %d: %w", c.MaxObjectCount, ErrParameterBounds)
	}
	if c.BoundsPadding < 0 {
		return fmt.Errorf("bounds padding must not be negative, got %f: %w", c.BoundsPadding, ErrParameterBounds)
	}
	return nil
}

// ValidateDt checks a delta time against the accepted slider range.
func ValidateDt(dt float64) error {
	if !(dt >= MinDt && dt <= MaxDt) {
		return fmt.Errorf("dt must be in [%g, %g], got %g: %w", MinDt, MaxDt, dt, ErrParameterBounds)
	}
	return nil
}

// Configurable is implemented by scenarios whose constants can be tuned
// while a world runs.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
