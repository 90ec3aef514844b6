package integrators

import (
	"math"
	"testing"

	"github.com/bipedlab/fivelink/internal/sim"
)

func TestRK45Accuracy(t *testing.T) {
	dyn := &oscillator{}
	integ := NewRK45()

	x := sim.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, nil, float64(i)*dt, dt)
	}

	if math.Abs(x[0]-math.Cos(1.0)) > 1e-8 {
		t.Errorf("position error too large: got %.10f", x[0])
	}
}

func TestRK45AdaptiveShrinksStep(t *testing.T) {
	dyn := &oscillator{}
	integ := NewRK45()

	// A very loose step against a tight tolerance must propose a
	// smaller one.
	_, dtNext, err := integ.StepAdaptive(dyn, sim.State{1.0, 0.0}, nil, 0, 1.0, 1e-10)
	if err != nil {
		t.Fatalf("adaptive step: %v", err)
	}
	if dtNext >= 1.0 {
		t.Errorf("expected shrunken step, got %f", dtNext)
	}
}
