package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/worldsim/internal/config"
	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/logging"
	"github.com/san-kum/worldsim/internal/sim"
	"github.com/san-kum/worldsim/internal/world"
)

// Experiment is one configured run: an engine, its runner and metrics.
type Experiment struct {
	cfg    *config.Config
	reg    *Registry
	log    *logging.Logger
	params map[string]float64
	engine world.Engine
	runner *sim.Runner
}

func New(cfg *config.Config, reg *Registry, log *logging.Logger) *Experiment {
	if log == nil {
		log = logging.Discard()
	}
	return &Experiment{cfg: cfg, reg: reg, log: log}
}

// Override sets a scenario parameter on every engine built afterwards.
func (e *Experiment) Override(name string, value float64) {
	if e.params == nil {
		e.params = make(map[string]float64)
	}
	e.params[name] = value
}

// build constructs an engine for cfg, sized to its canvas with the
// overrides applied.
func (e *Experiment) build(cfg *config.Config) (world.Engine, error) {
	engine, err := e.reg.Build(cfg, e.log)
	if err != nil {
		return nil, err
	}
	for name, v := range e.params {
		if err := engine.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	if !cfg.Canvas.IsZero() {
		engine.Resize(cfg.Canvas)
	}
	return engine, nil
}

// Setup builds the engine and attaches the default metrics.
func (e *Experiment) Setup() error {
	engine, err := e.build(e.cfg)
	if err != nil {
		return err
	}
	e.engine = engine
	e.runner = sim.New(engine, e.log)
	for _, m := range e.reg.DefaultMetrics(e.cfg) {
		e.runner.AddMetric(m)
	}
	return nil
}

func (e *Experiment) simConfig() sim.Config {
	return sim.Config{
		Ticks:         e.cfg.Ticks,
		SampleEvery:   e.cfg.SampleEvery,
		ValidateState: true,
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.runner.Run(ctx, e.simConfig())
}

// Ensemble runs n copies with consecutive seeds starting at the configured one.
func (e *Experiment) Ensemble(ctx context.Context, n int) ([]*sim.Result, error) {
	factory := func(seed int64) (world.Engine, []dynamo.Metric, error) {
		cfg := e.cfg.Clone()
		cfg.Seed = seed
		engine, err := e.build(cfg)
		if err != nil {
			return nil, nil, err
		}
		return engine, e.reg.DefaultMetrics(cfg), nil
	}
	return sim.NewEnsemble(factory, n, e.cfg.Seed, e.log).Run(ctx, e.simConfig())
}

func (e *Experiment) Engine() world.Engine { return e.engine }

// Runner returns the tick source for interactive use.
func (e *Experiment) Runner() *sim.Runner { return e.runner }

func (e *Experiment) Config() *config.Config { return e.cfg }
