// Package walker wraps the generated evaluators as a simulable biped:
// the stance phase as an ODE system, the heel-strike impact with leg
// relabeling, and a stride runner that alternates the two.
package walker

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/bipedlab/fivelink/internal/dynamics"
	"github.com/bipedlab/fivelink/internal/sim"
)

// nq is the number of generalized coordinates.
const nq = 5

// System is the stance-phase biped. States are packed as the five
// absolute link angles followed by their rates.
type System struct {
	ev *dynamics.Evaluators
	p  dynamics.Params

	a  *mat.Dense
	lu mat.LU
}

func NewSystem(ev *dynamics.Evaluators, p dynamics.Params) *System {
	return &System{ev: ev, p: p, a: mat.NewDense(nq, nq, nil)}
}

func (s *System) StateDim() int   { return 2 * nq }
func (s *System) ControlDim() int { return nq }

func (s *System) Params() dynamics.Params { return s.p }

func split(x sim.State) (q, dq [nq]float64) {
	copy(q[:], x[:nq])
	copy(dq[:], x[nq:])
	return q, dq
}

func packControl(u sim.Control) (out [nq]float64) {
	copy(out[:], u)
	return out
}

// Derive solves the mass-matrix system for the angular accelerations.
// A singular solve poisons the state with NaN, which the simulator's
// validation surfaces as an error.
func (s *System) Derive(x sim.State, u sim.Control, t float64) sim.State {
	q, dq := split(x)
	massVals, force := s.ev.Dynamics(q, dq, packControl(u), s.p)
	ddq, ok := s.solve(massVals, force)

	out := make(sim.State, 2*nq)
	copy(out[:nq], dq[:])
	if !ok {
		for i := nq; i < 2*nq; i++ {
			out[i] = math.NaN()
		}
		return out
	}
	copy(out[nq:], ddq[:])
	return out
}

func (s *System) solve(massVals []float64, force [nq]float64) ([nq]float64, bool) {
	s.a.Zero()
	for i, idx := range s.ev.MassIndex {
		s.a.Set(idx/nq, idx%nq, massVals[i])
	}
	s.lu.Factorize(s.a)

	var x mat.VecDense
	if err := s.lu.SolveVecTo(&x, false, mat.NewVecDense(nq, force[:])); err != nil {
		return [nq]float64{}, false
	}

	var ddq [nq]float64
	for i := range ddq {
		ddq[i] = x.AtVec(i)
	}
	return ddq, true
}

// Energy reports total mechanical energy, making the system a
// sim.Hamiltonian.
func (s *System) Energy(x sim.State) float64 {
	q, dq := split(x)
	ke, pe := s.ev.Energy(q, dq, s.p)
	return ke + pe
}

// Contact returns the ground reaction force under the given control.
func (s *System) Contact(x sim.State, u sim.Control) (fx, fy float64) {
	q, dq := split(x)
	massVals, force := s.ev.Dynamics(q, dq, packControl(u), s.p)
	ddq, ok := s.solve(massVals, force)
	if !ok {
		return math.NaN(), math.NaN()
	}
	return s.ev.Contact(q, dq, ddq, s.p)
}

// SwingFoot returns the swing foot position.
func (s *System) SwingFoot(x sim.State) dynamics.Point {
	q, _ := split(x)
	joints, _ := s.ev.Points(q, s.p)
	return joints[nq-1]
}

// Hip returns the hip position.
func (s *System) Hip(x sim.State) dynamics.Point {
	q, _ := split(x)
	joints, _ := s.ev.Points(q, s.p)
	return joints[1]
}

// Pose returns all joint positions, contact first.
func (s *System) Pose(x sim.State) [nq + 1]dynamics.Point {
	q, _ := split(x)
	joints, _ := s.ev.Points(q, s.p)
	var pose [nq + 1]dynamics.Point
	copy(pose[1:], joints[:])
	return pose
}
