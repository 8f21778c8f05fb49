package config

import (
	"maps"
	"slices"
)

func preset(scenario string, apply func(c *Config)) *Config {
	c := DefaultConfig()
	c.Scenario = scenario
	if apply != nil {
		apply(c)
	}
	return c
}

var Presets = map[string]map[string]*Config{
	"gravity": {
		"default": preset("gravity", nil),
		"heavy": preset("gravity", func(c *Config) {
			c.Gravity.G = 300
		}),
		"arrows": preset("gravity", func(c *Config) {
			c.Display.VelocityArrows = true
			c.Display.ForceArrows = true
			c.Display.ForceScale = 0.2
		}),
	},
	"spring": {
		"default": preset("spring", nil),
		"lattice": preset("spring", func(c *Config) {
			c.Spring.Lattice = true
		}),
		"stiff": preset("spring", func(c *Config) {
			c.Spring.K = 50
			c.Spring.Damping = 2
			c.Dt = 0.02
		}),
	},
	"billiard": {
		"break": preset("billiard", nil),
		"bouncy": preset("billiard", func(c *Config) {
			c.Wall.Restitution = 1
			c.Wall.Friction = 0
		}),
	},
	"rope": {
		"default": preset("rope", nil),
		"long": preset("rope", func(c *Config) {
			c.Rope.Length = 320
		}),
		"loose": preset("rope", func(c *Config) {
			c.Rope.K = 5
			c.Rope.Damping = 0.5
		}),
	},
	"galton": {
		"default": preset("galton", nil),
		"dense": preset("galton", func(c *Config) {
			c.Galton.Rows = 12
			c.Galton.PegSpacing = 22
			c.Galton.BallRadius = 4
		}),
		"rain": preset("galton", func(c *Config) {
			c.Galton.SpawnInterval = 2
			c.Ticks = 3000
		}),
	},
	"pendulum": {
		"small": preset("pendulum", func(c *Config) {
			c.Dt = 0.01
			c.Pendulum.Bobs = []BobConfig{{Mass: 1, RodLength: 150, Angle: 0.2}}
		}),
		"large": preset("pendulum", func(c *Config) {
			c.Dt = 0.01
			c.Pendulum.Bobs = []BobConfig{{Mass: 1, RodLength: 150, Angle: 2.5}}
		}),
	},
	"double-pendulum": {
		"symmetric": preset("double-pendulum", func(c *Config) {
			c.Dt = 0.05
			c.Pendulum.Bobs = []BobConfig{
				{Mass: 1, RodLength: 100, Angle: 1.5},
				{Mass: 1, RodLength: 100, Angle: 1.5},
			}
		}),
		"chaos": preset("double-pendulum", func(c *Config) {
			c.Dt = 0.05
			c.Ticks = 5000
			c.Pendulum.Bobs = []BobConfig{
				{Mass: 1, RodLength: 100, Angle: 3.0},
				{Mass: 1, RodLength: 100, Angle: 3.0},
			}
		}),
		"canonical": preset("double-pendulum", func(c *Config) {
			c.Dt = 0.05
			c.Pendulum.Mode = "canonical"
			c.Pendulum.Bobs = []BobConfig{
				{Mass: 1, RodLength: 100, Angle: 3.0},
				{Mass: 1, RodLength: 100, Angle: 3.0},
			}
		}),
		"gentle": preset("double-pendulum", func(c *Config) {
			c.Dt = 0.05
			c.Pendulum.Bobs = []BobConfig{
				{Mass: 2, RodLength: 120, Angle: 0.3},
				{Mass: 1, RodLength: 80, Angle: 0.3},
			}
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scenario, name string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names of a scenario in sorted order.
func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(scenarioPresets))
}

// Scenarios returns every scenario that has presets, sorted.
func Scenarios() []string {
	return slices.Sorted(maps.Keys(Presets))
}
