package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bipedlab/fivelink/internal/dynamics"
	"github.com/bipedlab/fivelink/internal/sim"
)

const (
	DefaultDt       = 0.001
	DefaultDuration = 10.0
	DefaultGravity  = 9.81
)

type Config struct {
	Robot      RobotConfig      `yaml:"robot"`
	Sim        SimConfig        `yaml:"sim"`
	Controller ControllerConfig `yaml:"controller"`
	Init       InitConfig       `yaml:"init"`
}

// RobotConfig lists the per-link parameters, index 1 to 5: stance
// tibia, stance femur, torso, swing femur, swing tibia.
type RobotConfig struct {
	Masses   []float64 `yaml:"masses"`
	Inertias []float64 `yaml:"inertias"`
	Lengths  []float64 `yaml:"lengths"`
	Offsets  []float64 `yaml:"offsets"`
	Gravity  float64   `yaml:"gravity"`
}

type SimConfig struct {
	Integrator string  `yaml:"integrator"`
	Controller string  `yaml:"controller"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Strides    int     `yaml:"strides"`
	Seed       int64   `yaml:"seed"`
}

type ControllerConfig struct {
	Kp     []float64 `yaml:"kp"`
	Kd     []float64 `yaml:"kd"`
	Target []float64 `yaml:"target"`
}

type InitConfig struct {
	Q  []float64 `yaml:"q"`
	DQ []float64 `yaml:"dq"`
}

func DefaultConfig() *Config {
	return &Config{
		Robot: RobotConfig{
			Masses:   []float64{3.2, 6.8, 20.0, 6.8, 3.2},
			Inertias: []float64{0.93, 1.08, 2.22, 1.08, 0.93},
			Lengths:  []float64{0.4, 0.4, 0.625, 0.4, 0.4},
			Offsets:  []float64{0.128, 0.163, 0.2, 0.163, 0.128},
			Gravity:  DefaultGravity,
		},
		Sim: SimConfig{
			Integrator: "rk4",
			Controller: "none",
			Dt:         DefaultDt,
			Duration:   DefaultDuration,
			Strides:    10,
		},
		Controller: ControllerConfig{
			Kp:     []float64{120, 120, 200, 120, 120},
			Kd:     []float64{12, 12, 20, 12, 12},
			Target: []float64{0.1, 0.05, 0, -0.05, -0.3},
		},
		Init: InitConfig{
			Q:  []float64{0.15, 0.1, 0, -0.1, -0.3},
			DQ: []float64{0, 0, 0, 0, 0},
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
		return nil, err
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

// Validate checks physical plausibility of the robot and sanity of the
// run settings.
func (c *Config) Validate() error {
	r := c.Robot
	for _, field := range []struct {
		name string
		vals []float64
	}{
		{"masses", r.Masses},
		{"inertias", r.Inertias},
		{"lengths", r.Lengths},
		{"offsets", r.Offsets},
	} {
		if len(field.vals) != 5 {
			return fmt.Errorf("robot %s: expected 5 values, got %d", field.name, len(field.vals))
		}
		for i, v := range field.vals {
			if v <= 0 {
				return fmt.Errorf("robot %s[%d]: must be positive, got %f", field.name, i, v)
			}
		}
	}
	for i := range r.Offsets {
		if r.Offsets[i] >= r.Lengths[i] {
			return fmt.Errorf("robot offsets[%d]: CoM offset %f exceeds link length %f", i, r.Offsets[i], r.Lengths[i])
		}
	}
	if r.Gravity <= 0 {
		return fmt.Errorf("robot gravity: must be positive, got %f", r.Gravity)
	}

	if c.Sim.Dt <= 0 {
		return fmt.Errorf("sim dt: must be positive, got %f", c.Sim.Dt)
	}
	if c.Sim.Duration <= 0 {
		return fmt.Errorf("sim duration: must be positive, got %f", c.Sim.Duration)
	}

	if len(c.Init.Q) != 5 || len(c.Init.DQ) != 5 {
		return fmt.Errorf("init state: expected 5 angles and 5 rates, got %d and %d", len(c.Init.Q), len(c.Init.DQ))
	}

	return nil
}

// Symmetric reports whether the two legs carry identical parameters.
// Heel-strike relabeling maps the robot onto itself only then, so the
// walk command refuses asymmetric robots.
func (c *Config) Symmetric() bool {
	r := c.Robot
	for _, vals := range [][]float64{r.Masses, r.Inertias, r.Lengths, r.Offsets} {
		if vals[0] != vals[4] || vals[1] != vals[3] {
			return false
		}
	}
	return true
}

// Params converts the robot section into evaluator parameters.
func (c *Config) Params() dynamics.Params {
	var p dynamics.Params
	copy(p.M[:], c.Robot.Masses)
	copy(p.I[:], c.Robot.Inertias)
	copy(p.L[:], c.Robot.Lengths)
	copy(p.C[:], c.Robot.Offsets)
	p.G = c.Robot.Gravity
	return p
}

// State packs the initial condition.
func (c *Config) State() sim.State {
	x := make(sim.State, 10)
	copy(x[:5], c.Init.Q)
	copy(x[5:], c.Init.DQ)
	return x
}
