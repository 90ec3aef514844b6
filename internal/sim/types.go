package sim

import "math"

// State is a flat state vector. The walker packs it as the five
// absolute angles followed by the five angular rates.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] - other[i]
	}
	return result
}

// Control is a flat actuation vector, one entry per joint torque.
type Control []float64

// System is a controlled first-order ODE.
type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

// Hamiltonian is implemented by systems that can report their total
// mechanical energy.
type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, u Control, t float64, dt float64) State
}

// AdaptiveIntegrator also estimates local error and proposes the next
// step size.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, u Control, t, dt, tol float64) (State, float64, error)
}

type Controller interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Control, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64

	// Adaptive enables error-controlled stepping; Tolerance bounds the
	// local error estimate, Dt stays within [MinDt, MaxDt].
	Adaptive  bool
	Tolerance float64
	MinDt     float64
	MaxDt     float64

	ValidateState bool
}

type Result struct {
	States   []State
	Controls []Control
	Times    []float64
	Metrics  map[string]float64
	Steps    int
}
