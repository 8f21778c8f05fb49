package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
	"github.com/san-kum/worldsim/internal/logging"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/world"
)

// Runner is the tick source of one engine. Ticks from the timer and calls
// made through Do are serialized on one mutex, so the engine never sees two
// callers at once.
type Runner struct {
	engine  world.Engine
	metrics []dynamo.Metric
	log     *logging.Logger

	mu    sync.Mutex
	state State
	stop  chan struct{}
	done  chan struct{}
}

func New(engine world.Engine, log *logging.Logger) *Runner {
	if log == nil {
		log = logging.Discard()
	}
	r := &Runner{
		engine: engine,
		log:    log.ForWorld(engine.Name()),
	}
	engine.AddObserver(dynamo.ObserverFunc(r.observe))
	return r
}

func (r *Runner) AddMetric(m dynamo.Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = append(r.metrics, m)
}

func (r *Runner) observe(objects []object.Object, tick uint64) {
	for _, m := range r.metrics {
		m.Observe(objects, tick)
	}
}

// Do runs fn with exclusive access to the engine.
func (r *Runner) Do(fn func(e world.Engine)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.engine)
}

// Metrics returns the current value of every metric.
func (r *Runner) Metrics() map[string]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Run ticks the engine cfg.Ticks times on the calling goroutine, sampling
// metrics and frames. The timer must be stopped.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Running {
		return nil, dynamo.ErrRunnerBusy
	}

	if cfg.Dt > 0 {
		if err := r.engine.SetDeltaTime(cfg.Dt); err != nil {
			return nil, err
		}
	}
	if cfg.Canvas != (geom.Size{}) {
		r.engine.Resize(cfg.Canvas)
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	result := newResult(r.engine.Name(), cfg.Ticks/cfg.SampleEvery+1)
	dt := r.engine.DeltaTime()
	r.log.Info("run started", "ticks", cfg.Ticks, "dt", dt, "objects", r.engine.Len())
	start := time.Now()

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			result.Ticks = uint64(i)
			r.collect(result)
			return result, &dynamo.SimulationError{
				Tick:    r.engine.TickCount(),
				Wrapped: fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err()),
			}
		default:
		}

		r.engine.Tick(dt)

		if cfg.ValidateState {
			if err := validate(r.engine.View()); err != nil {
				result.Errors = append(result.Errors, &dynamo.SimulationError{Tick: r.engine.TickCount(), Wrapped: err})
				result.Ticks = uint64(i + 1)
				r.log.Warn("run stopped on invalid state", "tick", r.engine.TickCount())
				break
			}
		}

		if (i+1)%cfg.SampleEvery == 0 {
			r.sample(result)
		}
		result.Ticks = uint64(i + 1)
	}

	r.collect(result)
	r.log.Info("run finished", "ticks", result.Ticks, "objects", r.engine.Len(), "elapsed", time.Since(start))
	return result, nil
}

func (r *Runner) sample(result *Result) {
	snap := r.engine.Snapshot()
	result.SampleTicks = append(result.SampleTicks, snap.Tick)
	result.Frames = append(result.Frames, Frame{Tick: snap.Tick, Objects: snap.Objects})
	for _, m := range r.metrics {
		result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
	}
}

func (r *Runner) collect(result *Result) {
	result.Offset = r.engine.Snapshot().Offset
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validate(objects []object.Object) error {
	for _, o := range objects {
		if !geom.IsFinite(o.Velocity()) {
			return fmt.Errorf("object %d: %w", o.ID(), dynamo.ErrInvalidState)
		}
	}
	return nil
}

// Start ticks the engine every interval on a background goroutine until Stop
// is called or ctx is done. Each tick advances by the engine delta time.
func (r *Runner) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s: %w", interval, dynamo.ErrParameterBounds)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Running {
		return dynamo.ErrRunnerBusy
	}
	r.state = Running
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	go r.loop(ctx, interval, r.stop, r.done)
	r.log.Debug("timer started", "interval", interval)
	return nil
}

func (r *Runner) loop(ctx context.Context, interval time.Duration, stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.mu.Lock()
			if r.done == done {
				r.state = Idle
			}
			r.mu.Unlock()
			return
		case <-stop:
			return
		case <-ticker.C:
			r.Do(func(e world.Engine) { e.Tick(e.DeltaTime()) })
		}
	}
}

// Stop halts the timer and waits for an in-flight tick. Stopping an idle
// runner is a no-op.
func (r *Runner) Stop() {
	r.mu.Lock()
	if r.state != Running {
		r.mu.Unlock()
		return
	}
	r.state = Idle
	stop, done := r.stop, r.done
	r.mu.Unlock()

	close(stop)
	<-done
	r.log.Debug("timer stopped")
}
