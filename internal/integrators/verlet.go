package integrators

import "github.com/bipedlab/fivelink/internal/sim"

// Verlet integrates states laid out as positions followed by rates,
// which matches the walker's [q, dq] packing. Velocity-dependent
// forces are handled with the previous acceleration, so it trades a
// little accuracy on Coriolis terms for much better long-run energy
// behavior.
type Verlet struct {
	scratch sim.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dyn sim.System, x sim.State, u sim.Control, t, dt float64) sim.State {
	n := len(x)
	half := n / 2
	if len(v.scratch) != n {
		v.scratch = make(sim.State, n)
	}

	result := make(sim.State, n)
	dx := dyn.Derive(x, u, t)
	dt2 := dt * dt

	for i := 0; i < half; i++ {
		result[i] = x[i] + x[half+i]*dt + 0.5*dx[half+i]*dt2
	}

	for i := 0; i < half; i++ {
		v.scratch[i] = result[i]
		v.scratch[half+i] = x[half+i]
	}
	dxNew := dyn.Derive(v.scratch, u, t+dt)

	halfDt := 0.5 * dt
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + (dx[half+i]+dxNew[half+i])*halfDt
	}

	return result
}
