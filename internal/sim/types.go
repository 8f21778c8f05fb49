package sim

import (
	"fmt"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/object"
)

// State is the timer lifecycle of a runner.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Config controls a headless run.
type Config struct {
	Ticks int
	// Dt overrides the engine delta time when positive.
	Dt float64
	// SampleEvery records metric samples and a frame every n ticks.
	SampleEvery int
	// Canvas is applied with Resize before the first tick when non-zero.
	Canvas geom.Size
	// ValidateState stops the run at the first non-finite velocity.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Ticks:         1000,
		SampleEvery:   10,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d: %w", c.Ticks, dynamo.ErrInvalidConfig)
	}
	if c.SampleEvery < 1 {
		return fmt.Errorf("sample interval must be positive, got %d: %w", c.SampleEvery, dynamo.ErrInvalidConfig)
	}
	if c.Dt != 0 {
		return dynamo.ValidateDt(c.Dt)
	}
	return nil
}

// Frame is a sampled copy of the collection.
type Frame struct {
	Tick    uint64
	Objects []object.State
}

// Result is what a headless run produced.
type Result struct {
	Scenario string
	Ticks    uint64
	// Offset is the layout offset at the end of the run. Frame positions are
	// relative to it.
	Offset geom.Vec
	// SampleTicks holds the tick of every sample; Series is aligned with it.
	SampleTicks []uint64
	Series      map[string][]float64
	Frames      []Frame
	Metrics     map[string]float64
	Errors      []error
}

func newResult(scenario string, samples int) *Result {
	return &Result{
		Scenario:    scenario,
		SampleTicks: make([]uint64, 0, samples),
		Series:      make(map[string][]float64),
		Frames:      make([]Frame, 0, samples),
		Metrics:     make(map[string]float64),
	}
}
