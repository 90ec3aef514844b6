package metrics

import (
	"math"

	"github.com/bipedlab/fivelink/internal/sim"
)

// Stability reports the fraction of samples whose joint rates stayed
// within a threshold. Only the rate half of the state is checked;
// large angles can be legitimate postures, runaway rates are not.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{name: "stability", threshold: threshold}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x sim.State, u sim.Control, t float64) {
	s.samples++
	for _, rate := range x[len(x)/2:] {
		if math.Abs(rate) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
