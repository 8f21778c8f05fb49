package dynamo

import "errors"

// Domain errors for configuration boundaries.
var (
	// ErrInvalidConfig indicates a configuration that cannot drive a world.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownScenario indicates a scenario name with no registered factory.
	ErrUnknownScenario = errors.New("dynamo: unknown scenario")

	// ErrRunnerBusy indicates Start was called while the timer is running.
	ErrRunnerBusy = errors.New("dynamo: runner already running")

	// ErrContextCanceled indicates the run was interrupted.
	ErrContextCanceled = errors.New("dynamo: run canceled by context")

	// ErrInvalidState indicates a non-finite position or velocity was observed.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// SimulationError wraps an error with the tick it happened on.
type SimulationError struct {
	Tick    uint64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
