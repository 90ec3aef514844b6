package config

// Presets are ready-made run setups, keyed by name.
var Presets = map[string]*Config{
	// Small passive sway about upright, for integrator checks.
	"sway": presetSway(),
	// Passive leg swing that ends in a heel strike.
	"pendular": presetPendular(),
	// PD-driven walking gait.
	"stride": presetStride(),
}

func presetSway() *Config {
	c := DefaultConfig()
	c.Sim.Controller = "none"
	c.Sim.Duration = 5.0
	c.Init.Q = []float64{0.05, 0.02, 0.01, -0.02, -0.05}
	c.Init.DQ = []float64{0, 0, 0, 0, 0}
	return c
}

func presetPendular() *Config {
	c := DefaultConfig()
	c.Sim.Controller = "none"
	c.Sim.Duration = 2.0
	c.Sim.Strides = 1
	c.Init.Q = []float64{0.2, 0.2, 0, 0.2, 0.6}
	c.Init.DQ = []float64{0, 0, 0, 0, -3.0}
	return c
}

func presetStride() *Config {
	c := DefaultConfig()
	c.Sim.Controller = "pd"
	c.Sim.Duration = 20.0
	c.Sim.Strides = 8
	c.Init.Q = []float64{0.2, 0.1, 0, -0.1, -0.35}
	c.Init.DQ = []float64{0.4, 0.4, 0, 0.3, 0.8}
	return c
}
