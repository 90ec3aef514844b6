package control

import (
	"math"
	"testing"

	"github.com/bipedlab/fivelink/internal/sim"
)

func TestNoneIsZero(t *testing.T) {
	c := NewNone(5)
	u := c.Compute(sim.State{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0)
	if len(u) != 5 {
		t.Fatalf("expected 5 torques, got %d", len(u))
	}
	for i, v := range u {
		if v != 0 {
			t.Errorf("torque %d: expected 0, got %f", i, v)
		}
	}
}

func TestJointPDAtTarget(t *testing.T) {
	kp := []float64{100, 100, 100, 100, 100}
	kd := []float64{10, 10, 10, 10, 10}
	target := []float64{0.1, -0.2, 0, 0.2, -0.1}

	c := NewJointPD(kp, kd, target)

	x := make(sim.State, 10)
	copy(x, target)
	u := c.Compute(x, 0)

	for i, v := range u {
		if math.Abs(v) > 1e-12 {
			t.Errorf("torque %d: expected 0 at target, got %f", i, v)
		}
	}
}

func TestJointPDTorqueRecursion(t *testing.T) {
	kp := []float64{1, 1, 1, 1, 1}
	kd := []float64{0, 0, 0, 0, 0}
	target := []float64{0, 0, 0, 0, 0}

	c := NewJointPD(kp, kd, target)

	x := sim.State{1, 1, 1, 1, 1, 0, 0, 0, 0, 0}
	u := c.Compute(x, 0)

	// tau = -1 per coordinate; torque pairs must telescope back.
	for i := 0; i < 5; i++ {
		next := 0.0
		if i+1 < 5 {
			next = u[i+1]
		}
		if math.Abs((u[i]-next)-(-1)) > 1e-12 {
			t.Errorf("coordinate %d: generalized force %f, want -1", i, u[i]-next)
		}
	}
}

func TestStateFeedbackRegulates(t *testing.T) {
	k := [][]float64{{2, 0, 1, 0}}
	c := NewStateFeedback(k, sim.State{1, 0, 0, 0})

	u := c.Compute(sim.State{2, 0, 3, 0}, 0)
	want := -(2*(2-1) + 1*3)
	if math.Abs(u[0]-float64(want)) > 1e-12 {
		t.Errorf("expected %d, got %f", want, u[0])
	}
}
