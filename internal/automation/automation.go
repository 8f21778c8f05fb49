package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/worldsim/internal/config"
	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/experiment"
	"github.com/san-kum/worldsim/internal/logging"
	"github.com/san-kum/worldsim/internal/sim"
	"github.com/san-kum/worldsim/internal/storage"
)

// Script defines a scripted sequence of runs.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single run in a script. Zero values keep the preset's settings.
type Step struct {
	Scenario string             `yaml:"scenario"`
	Preset   string             `yaml:"preset"`
	Ticks    int                `yaml:"ticks"`
	Dt       float64            `yaml:"dt"`
	Seed     int64              `yaml:"seed"`
	Params   map[string]float64 `yaml:"params"`
	SaveAs   string             `yaml:"save_as"`
}

// LoadScript loads a script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &script, nil
}

// Config resolves the step against its preset or the defaults.
func (s Step) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Scenario, s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %s/%s: %w", s.Scenario, s.Preset, dynamo.ErrInvalidConfig)
		}
	}
	cfg.Scenario = s.Scenario
	if s.Ticks > 0 {
		cfg.Ticks = s.Ticks
	}
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	return cfg, cfg.Validate()
}

// Runner executes scripts and sweeps against one registry. Steps with a
// SaveAs label are recorded when Store is set.
type Runner struct {
	Registry *experiment.Registry
	Store    *storage.Store
	Log      *logging.Logger
}

func (r *Runner) log() *logging.Logger {
	if r.Log == nil {
		return logging.Discard()
	}
	return r.Log
}

func (r *Runner) experiment(cfg *config.Config, params map[string]float64) (*experiment.Experiment, error) {
	exp := experiment.New(cfg, r.Registry, r.log())
	for k, v := range params {
		exp.Override(k, v)
	}
	if err := exp.Setup(); err != nil {
		return nil, err
	}
	return exp, nil
}

// RunScript executes all steps in order and stops at the first failure,
// returning the results gathered so far.
func (r *Runner) RunScript(ctx context.Context, script *Script) ([]*sim.Result, error) {
	results := make([]*sim.Result, 0, len(script.Steps))

	for i, step := range script.Steps {
		r.log().Info("running step", "step", i+1, "of", len(script.Steps), "scenario", step.Scenario)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		exp, err := r.experiment(cfg, step.Params)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, result)

		if step.SaveAs != "" && r.Store != nil {
			id, err := r.Store.Save(storage.RunMetadata{
				Preset:      step.Preset,
				Label:       step.SaveAs,
				Seed:        cfg.Seed,
				Dt:          cfg.Dt,
				SampleEvery: cfg.SampleEvery,
				Canvas:      cfg.Canvas,
			}, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			r.log().Info("saved step", "step", i+1, "run", id, "label", step.SaveAs)
		}
	}

	return results, nil
}

// Sweep runs one scenario across evenly spaced values of a parameter.
type Sweep struct {
	Scenario string
	Preset   string
	Param    string
	Min      float64
	Max      float64
	Steps    int
	Ticks    int
}

// SweepResult holds the final metrics for one parameter value.
type SweepResult struct {
	Value   float64
	Metrics map[string]float64
}

// RunSweep executes a parameter sweep.
func (r *Runner) RunSweep(ctx context.Context, sweep Sweep) ([]SweepResult, error) {
	if sweep.Steps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d: %w", sweep.Steps, dynamo.ErrParameterBounds)
	}
	step := Step{Scenario: sweep.Scenario, Preset: sweep.Preset, Ticks: sweep.Ticks}
	cfg, err := step.Config()
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.Steps)
	paramStep := (sweep.Max - sweep.Min) / float64(sweep.Steps-1)

	for i := 0; i < sweep.Steps; i++ {
		v := sweep.Min + float64(i)*paramStep
		exp, err := r.experiment(cfg.Clone(), map[string]float64{sweep.Param: v})
		if err != nil {
			return results, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, SweepResult{Value: v, Metrics: result.Metrics})

		r.log().Debug("sweep point", "param", sweep.Param, "value", v, "step", i+1, "of", sweep.Steps)
	}

	return results, nil
}
