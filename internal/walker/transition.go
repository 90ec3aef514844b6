package walker

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/bipedlab/fivelink/internal/sim"
)

// Impact applies the heel-strike collision and swaps leg roles. The
// former swing tibia becomes the new stance tibia, so the coordinate
// vector simply reverses: the mixed sign convention of the two legs
// makes the relabeled angles numerically identical. Pre-impact CoM
// velocities are evaluated in the old coordinates, relabeled, and fed
// to the collision map, whose solution is the post-impact rate vector
// in the new coordinates.
func (s *System) Impact(x sim.State) (sim.State, error) {
	q, dq := split(x)
	vel := s.ev.ComVel(q, dq, s.p)

	var qr, dqr, dgx, dgy [nq]float64
	for i := 0; i < nq; i++ {
		j := nq - 1 - i
		qr[i] = q[j]
		dqr[i] = dq[j]
		dgx[i] = vel[j].X
		dgy[i] = vel[j].Y
	}

	mm, ff := s.ev.HeelStrike(qr, dqr, dgx, dgy, s.p)

	a := mat.NewDense(nq, nq, nil)
	for r := 0; r < nq; r++ {
		for c := 0; c < nq; c++ {
			a.Set(r, c, mm[r][c])
		}
	}
	var lu mat.LU
	lu.Factorize(a)

	var post mat.VecDense
	if err := lu.SolveVecTo(&post, false, mat.NewVecDense(nq, ff[:])); err != nil {
		return nil, fmt.Errorf("heel-strike solve: %w", err)
	}

	out := make(sim.State, 2*nq)
	for i := 0; i < nq; i++ {
		out[i] = qr[i]
		out[nq+i] = post.AtVec(i)
	}
	return out, nil
}
