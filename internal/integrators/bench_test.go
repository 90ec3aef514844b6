package integrators

import (
	"testing"

	"github.com/bipedlab/fivelink/internal/sim"
)

func benchStep(b *testing.B, integ sim.Integrator) {
	dyn := &oscillator{}
	x := sim.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, nil, 0, 0.01)
	}
}

func BenchmarkEuler(b *testing.B)  { benchStep(b, NewEuler()) }
func BenchmarkRK4(b *testing.B)    { benchStep(b, NewRK4()) }
func BenchmarkRK45(b *testing.B)   { benchStep(b, NewRK45()) }
func BenchmarkVerlet(b *testing.B) { benchStep(b, NewVerlet()) }
