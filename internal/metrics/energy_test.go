package metrics

import (
	"math"
	"testing"

	"github.com/bipedlab/fivelink/internal/sim"
)

type constantEnergy struct{ e float64 }

func (c *constantEnergy) Energy(x sim.State) float64 { return c.e }

type stateEnergy struct{}

func (s *stateEnergy) Energy(x sim.State) float64 { return x[0] }

func TestEnergyDriftFlat(t *testing.T) {
	m := NewEnergyDrift(&constantEnergy{e: 42})

	for i := 0; i < 10; i++ {
		m.Observe(sim.State{0}, nil, float64(i))
	}
	if m.Value() != 0 {
		t.Errorf("expected zero drift for constant energy, got %g", m.Value())
	}
}

func TestEnergyDriftTracksWorstCase(t *testing.T) {
	m := NewEnergyDrift(&stateEnergy{})

	m.Observe(sim.State{100}, nil, 0)
	m.Observe(sim.State{90}, nil, 1)
	m.Observe(sim.State{99}, nil, 2)

	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("expected max drift 0.1, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()

	m.Observe(nil, sim.Control{1, -2}, 0)
	m.Observe(nil, sim.Control{3, 0}, 1)

	if math.Abs(m.Value()-3) > 1e-12 {
		t.Errorf("expected mean effort 3, got %g", m.Value())
	}
	if m.Peak() != 3 {
		t.Errorf("expected peak torque 3, got %g", m.Peak())
	}
}

func TestStabilityChecksRatesOnly(t *testing.T) {
	m := NewStability(10)

	// Angles beyond the threshold are fine, rates are not.
	m.Observe(sim.State{50, 2}, nil, 0)
	m.Observe(sim.State{0, 11}, nil, 1)

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected stability 0.5, got %g", m.Value())
	}
}
