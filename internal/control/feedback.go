package control

import "github.com/bipedlab/fivelink/internal/sim"

// StateFeedback applies a fixed gain matrix about a reference state:
// u = -K (x - target).
type StateFeedback struct {
	K      [][]float64
	Target sim.State
}

func NewStateFeedback(k [][]float64, target sim.State) *StateFeedback {
	return &StateFeedback{K: k, Target: target}
}

func (l *StateFeedback) Compute(x sim.State, t float64) sim.Control {
	u := make(sim.Control, len(l.K))
	for i := range u {
		for j := range x {
			target := 0.0
			if j < len(l.Target) {
				target = l.Target[j]
			}
			if j < len(l.K[i]) {
				u[i] -= l.K[i][j] * (x[j] - target)
			}
		}
	}
	return u
}
