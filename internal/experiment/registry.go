package experiment

import (
	"fmt"
	"maps"
	"slices"

	"github.com/san-kum/worldsim/internal/collision"
	"github.com/san-kum/worldsim/internal/config"
	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/integrators"
	"github.com/san-kum/worldsim/internal/logging"
	"github.com/san-kum/worldsim/internal/metrics"
	"github.com/san-kum/worldsim/internal/object"
	"github.com/san-kum/worldsim/internal/physics"
	"github.com/san-kum/worldsim/internal/world"
)

type factory func(cfg *config.Config, opts []world.Option) (world.Engine, error)

// Registry maps scenario names to engine constructors.
type Registry struct {
	scenarios map[string]factory
}

func NewRegistry() *Registry {
	r := &Registry{scenarios: make(map[string]factory)}

	r.scenarios["gravity"] = func(cfg *config.Config, opts []world.Option) (world.Engine, error) {
		g := physics.NewGravity()
		g.G = cfg.Gravity.G
		g.Mass = cfg.Gravity.Mass
		g.Radius = cfg.Gravity.Radius
		return world.New[object.Object](g, cfg.WorldConfig(), opts...)
	}
	r.scenarios["spring"] = func(cfg *config.Config, opts []world.Option) (world.Engine, error) {
		s := physics.NewSpring()
		s.K = cfg.Spring.K
		s.Damping = cfg.Spring.Damping
		s.RestLength = cfg.Spring.RestLength
		s.Lattice = cfg.Spring.Lattice
		return world.New[object.Object](s, cfg.WorldConfig(), opts...)
	}
	r.scenarios["billiard"] = func(cfg *config.Config, opts []world.Option) (world.Engine, error) {
		b := physics.NewBilliard(cfg.Seed)
		b.Wall = wall(cfg.Wall)
		b.LineWidth = cfg.Billiard.LineWidth
		b.MaxSpeed = cfg.Billiard.MaxSpeed
		return world.New[object.Object](b, cfg.WorldConfig(), opts...)
	}
	r.scenarios["rope"] = func(cfg *config.Config, opts []world.Option) (world.Engine, error) {
		rp := physics.NewRope()
		rp.Length = cfg.Rope.Length
		rp.K = cfg.Rope.K
		rp.Damping = cfg.Rope.Damping
		return world.New[object.Object](rp, cfg.WorldConfig(), opts...)
	}
	r.scenarios["galton"] = func(cfg *config.Config, opts []world.Option) (world.Engine, error) {
		g := physics.NewGalton()
		g.Rows = cfg.Galton.Rows
		g.PegSpacing = cfg.Galton.PegSpacing
		g.PegRadius = cfg.Galton.PegRadius
		g.BallRadius = cfg.Galton.BallRadius
		g.SpawnInterval = cfg.Galton.SpawnInterval
		g.SettleLine = cfg.Galton.SettleLine
		g.G = cfg.Galton.G
		g.Wall = collision.Wall{Restitution: cfg.Galton.Restitution, Friction: cfg.Wall.Friction}
		return world.New[object.Object](g, cfg.WorldConfig(), opts...)
	}
	r.scenarios["pendulum"] = pendulum
	r.scenarios["double-pendulum"] = pendulum

	return r
}

func wall(c config.WallConfig) collision.Wall {
	return collision.Wall{Restitution: c.Restitution, Friction: c.Friction}
}

// PendulumChain builds the chain a pendulum scenario runs: the first one or
// two configured bobs, padded with the stock chain.
func PendulumChain(cfg *config.Config) (*physics.Pendulum, error) {
	n, stock := 1, physics.NewPendulum().Bobs
	if cfg.Scenario == "double-pendulum" {
		n, stock = 2, physics.NewDoublePendulum().Bobs
	}
	bobs := make([]physics.BobSpec, n)
	for i := range bobs {
		if i < len(cfg.Pendulum.Bobs) {
			b := cfg.Pendulum.Bobs[i]
			bobs[i] = physics.BobSpec{Mass: b.Mass, RodLength: b.RodLength, Angle: b.Angle}
		} else {
			bobs[i] = stock[i]
		}
	}

	p := physics.NewPendulumChain(cfg.Pendulum.G, integrators.ParseMode(cfg.Pendulum.Mode), bobs...)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func pendulum(cfg *config.Config, opts []world.Option) (world.Engine, error) {
	p, err := PendulumChain(cfg)
	if err != nil {
		return nil, err
	}
	return world.New[*object.Bob](p, cfg.WorldConfig(), opts...)
}

// Build constructs the engine for cfg.Scenario.
func (r *Registry) Build(cfg *config.Config, log *logging.Logger) (world.Engine, error) {
	fn, ok := r.scenarios[cfg.Scenario]
	if !ok {
		return nil, fmt.Errorf("%q: %w", cfg.Scenario, dynamo.ErrUnknownScenario)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var opts []world.Option
	if log != nil {
		opts = append(opts, world.WithLogger(log))
	}
	return fn(cfg, opts)
}

func (r *Registry) ListScenarios() []string {
	return slices.Sorted(maps.Keys(r.scenarios))
}

func (r *Registry) Has(name string) bool {
	_, ok := r.scenarios[name]
	return ok
}

// DefaultMetrics returns fresh metrics suited to the scenario.
func (r *Registry) DefaultMetrics(cfg *config.Config) []dynamo.Metric {
	switch cfg.Scenario {
	case "pendulum", "double-pendulum":
		return []dynamo.Metric{
			metrics.NewPendulumEnergy(cfg.Pendulum.G),
			metrics.NewPendulumEnergyDrift(cfg.Pendulum.G),
			metrics.NewStability(),
		}
	case "billiard":
		return []dynamo.Metric{
			metrics.NewKineticEnergy(),
			metrics.NewEnergyDrift(metrics.Kinetic),
			metrics.NewMomentum(),
			metrics.NewObjectCount(),
			metrics.NewStability(),
		}
	default:
		return []dynamo.Metric{
			metrics.NewKineticEnergy(),
			metrics.NewMomentum(),
			metrics.NewObjectCount(),
			metrics.NewStability(),
		}
	}
}
