package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/worldsim/internal/dynamo"
	"github.com/san-kum/worldsim/internal/geom"
)

const (
	DefaultScenario    = "gravity"
	DefaultTicks       = 1000
	DefaultSampleEvery = 10
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
)

// Config is the on-disk description of a run: which scenario, how long, and
// the scenario constants.
type Config struct {
	Scenario      string    `yaml:"scenario"`
	Dt            float64   `yaml:"dt"`
	Ticks         int       `yaml:"ticks"`
	Seed          int64     `yaml:"seed"`
	MaxObjects    int       `yaml:"max_objects"`
	BoundsPadding float64   `yaml:"bounds_padding"`
	SampleEvery   int       `yaml:"sample_every"`
	Canvas        geom.Size `yaml:"canvas"`

	Display  DisplayConfig  `yaml:"display"`
	Gravity  GravityConfig  `yaml:"gravity"`
	Spring   SpringConfig   `yaml:"spring"`
	Wall     WallConfig     `yaml:"wall"`
	Billiard BilliardConfig `yaml:"billiard"`
	Rope     RopeConfig     `yaml:"rope"`
	Galton   GaltonConfig   `yaml:"galton"`
	Pendulum PendulumConfig `yaml:"pendulum"`
}

type DisplayConfig struct {
	VelocityArrows bool    `yaml:"velocity_arrows"`
	ForceArrows    bool    `yaml:"force_arrows"`
	VelocityScale  float64 `yaml:"velocity_scale"`
	ForceScale     float64 `yaml:"force_scale"`
}

type GravityConfig struct {
	G      float64 `yaml:"g"`
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
}

type SpringConfig struct {
	K          float64 `yaml:"k"`
	Damping    float64 `yaml:"damping"`
	RestLength float64 `yaml:"rest_length"`
	Lattice    bool    `yaml:"lattice"`
}

type WallConfig struct {
	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
}

type BilliardConfig struct {
	LineWidth float64 `yaml:"line_width"`
	MaxSpeed  float64 `yaml:"max_speed"`
}

type RopeConfig struct {
	Length  float64 `yaml:"length"`
	K       float64 `yaml:"k"`
	Damping float64 `yaml:"damping"`
}

type GaltonConfig struct {
	Rows          int     `yaml:"rows"`
	PegSpacing    float64 `yaml:"peg_spacing"`
	PegRadius     float64 `yaml:"peg_radius"`
	BallRadius    float64 `yaml:"ball_radius"`
	SpawnInterval int     `yaml:"spawn_interval"`
	SettleLine    float64 `yaml:"settle_line"`
	G             float64 `yaml:"g"`
	Restitution   float64 `yaml:"restitution"`
}

type PendulumConfig struct {
	G    float64     `yaml:"g"`
	Mode string      `yaml:"mode"`
	Bobs []BobConfig `yaml:"bobs"`
}

type BobConfig struct {
	Mass      float64 `yaml:"mass"`
	RodLength float64 `yaml:"rod_length"`
	Angle     float64 `yaml:"angle"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:      DefaultScenario,
		Dt:            dynamo.DefaultDt,
		Ticks:         DefaultTicks,
		Seed:          1,
		MaxObjects:    dynamo.DefaultMaxObjectCount,
		BoundsPadding: dynamo.DefaultBoundsPadding,
		SampleEvery:   DefaultSampleEvery,
		Canvas:        geom.Size{Width: DefaultWidth, Height: DefaultHeight},
		Display: DisplayConfig{
			VelocityScale: 1,
			ForceScale:    1,
		},
		Gravity: GravityConfig{G: 98, Mass: 1, Radius: 10},
		Spring:  SpringConfig{K: 10, Damping: 0.5, RestLength: 100},
		Wall:    WallConfig{Restitution: 0.8, Friction: 0.02},
		Billiard: BilliardConfig{
			LineWidth: 4,
			MaxSpeed:  80,
		},
		Rope: RopeConfig{Length: 200, K: 20, Damping: 4},
		Galton: GaltonConfig{
			Rows:          8,
			PegSpacing:    30,
			PegRadius:     4,
			BallRadius:    5,
			SpawnInterval: 10,
			SettleLine:    0.75,
			G:             98,
			Restitution:   0.5,
		},
		Pendulum: PendulumConfig{
			G:    1,
			Mode: "frozen",
			Bobs: []BobConfig{{Mass: 1, RodLength: 150, Angle: 0.785}},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Pendulum.Bobs = append([]BobConfig(nil), c.Pendulum.Bobs...)
	return &cp
}

// WorldConfig extracts the engine options.
func (c *Config) WorldConfig() dynamo.Config {
	return dynamo.Config{
		Dt:                  c.Dt,
		MaxObjectCount:      c.MaxObjects,
		BoundsPadding:       c.BoundsPadding,
		ShowsVelocityArrows: c.Display.VelocityArrows,
		ShowsForceArrows:    c.Display.ForceArrows,
		VelocityArrowScale:  c.Display.VelocityScale,
		ForceArrowScale:     c.Display.ForceScale,
	}
}

func (c *Config) Validate() error {
	if c.Scenario == "" {
		return fmt.Errorf("scenario is required: %w", dynamo.ErrInvalidConfig)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d: %w", c.Ticks, dynamo.ErrInvalidConfig)
	}
	if c.SampleEvery < 1 {
		return fmt.Errorf("sample_every must be positive, got %d: %w", c.SampleEvery, dynamo.ErrInvalidConfig)
	}
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		return fmt.Errorf("canvas must not be negative: %w", dynamo.ErrInvalidConfig)
	}
	return c.WorldConfig().Validate()
}
