package metrics

import (
	"math"

	"github.com/bipedlab/fivelink/internal/sim"
)

// ControlEffort averages the summed joint-torque magnitude per sample
// and tracks the single largest torque seen, a proxy for actuator
// sizing.
type ControlEffort struct {
	name    string
	sum     float64
	peak    float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{name: "control_effort"}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(x sim.State, u sim.Control, t float64) {
	for _, tau := range u {
		mag := math.Abs(tau)
		c.sum += mag
		if mag > c.peak {
			c.peak = mag
		}
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

// Peak returns the largest torque magnitude observed since the last
// reset.
func (c *ControlEffort) Peak() float64 {
	return c.peak
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.peak = 0
	c.samples = 0
}
