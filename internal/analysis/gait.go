package analysis

import (
	"math"

	"github.com/bipedlab/fivelink/internal/sim"
	"github.com/bipedlab/fivelink/internal/walker"
)

// GaitStats summarizes a multi-stride walk.
type GaitStats struct {
	Strides      int
	MeanLength   float64
	StdLength    float64
	MeanPeriod   float64
	Speed        float64
	EnergyPerM   float64
	ReturnDrifts []float64
}

// Analyze computes stride statistics and the return-map drift between
// successive post-impact states. Post-impact states are read from the
// recorded trace at the step times.
func Analyze(result *walker.WalkResult) GaitStats {
	stats := GaitStats{Strides: len(result.Steps)}
	if stats.Strides == 0 {
		return stats
	}

	var sumLen, sumSqLen float64
	prevTime := 0.0
	var sumPeriod float64
	for _, step := range result.Steps {
		sumLen += step.Length
		sumSqLen += step.Length * step.Length
		sumPeriod += step.Time - prevTime
		prevTime = step.Time
	}
	n := float64(stats.Strides)
	stats.MeanLength = sumLen / n
	stats.MeanPeriod = sumPeriod / n
	variance := sumSqLen/n - stats.MeanLength*stats.MeanLength
	if variance > 0 {
		stats.StdLength = math.Sqrt(variance)
	}
	if prevTime > 0 {
		stats.Speed = result.Distance / prevTime
	}

	if len(result.Steps) > 0 {
		spent := result.Steps[0].Energy - result.Steps[len(result.Steps)-1].Energy
		if result.Distance > 0 {
			stats.EnergyPerM = spent / result.Distance
		}
	}

	post := postImpactStates(result)
	for i := 1; i < len(post); i++ {
		stats.ReturnDrifts = append(stats.ReturnDrifts, post[i].Sub(post[i-1]).Norm())
	}
	return stats
}

// Converged reports whether the last return-map drift fell under the
// threshold: the walk settled onto a limit cycle.
func (g GaitStats) Converged(threshold float64) bool {
	if len(g.ReturnDrifts) == 0 {
		return false
	}
	return g.ReturnDrifts[len(g.ReturnDrifts)-1] < threshold
}

func postImpactStates(result *walker.WalkResult) []sim.State {
	states := make([]sim.State, 0, len(result.Steps))
	for _, step := range result.Steps {
		// The trace records the post-impact state at exactly the step
		// time.
		for i, t := range result.Times {
			if t == step.Time {
				states = append(states, result.States[i])
				break
			}
		}
	}
	return states
}
