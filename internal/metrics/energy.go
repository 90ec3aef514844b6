package metrics

import (
	"math"

	"github.com/bipedlab/fivelink/internal/sim"
)

// EnergyDrift tracks the worst relative deviation of a system's
// mechanical energy from its initial value. For a passive walker this
// is a direct check on the integrator; under actuation it measures
// net energy injected.
type EnergyDrift struct {
	name     string
	dyn      sim.Hamiltonian
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(dyn sim.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", dyn: dyn}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x sim.State, u sim.Control, t float64) {
	energy := e.dyn.Energy(x)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
