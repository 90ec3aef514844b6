package dynamics

import (
	"fmt"

	"github.com/bipedlab/fivelink/internal/kinematics"
	"github.com/bipedlab/fivelink/internal/sym"
)

// HeelStrike is the impulsive collision map at swing-foot touchdown:
// Matrix·dq_post = Rhs, where Rhs depends on the pre-impact Cartesian
// CoM velocities and angular rates. The map conserves angular momentum
// about every joint through the impact; the impulsive ground reaction
// has no moment about the contact and finite torques contribute no
// impulse over zero time, so no torque terms appear.
//
// The mapper does not relabel legs. Callers supply pre-impact
// velocities matching the current stance assignment and interpret the
// solution in the post-swap coordinates.
type HeelStrike struct {
	Matrix [][]sym.Expr
	Rhs    []sym.Expr
}

// DeriveHeelStrike assembles conservation of angular momentum about
// each joint, telescoped into the same row partition as the
// single-support system, and extracts the linear map in the
// post-impact rates.
func DeriveHeelStrike(g *kinematics.Geometry) (*HeelStrike, error) {
	rates := kinematics.ChainRates()

	// Pre-impact momentum uses the free Cartesian CoM velocities: the
	// topology is about to change, so they are not yet expressible
	// through the post-swap rates.
	preVel := make([]sym.Vec2, n)
	postVel := make([]sym.Vec2, n)
	for i := 1; i <= n; i++ {
		preVel[i-1] = sym.V(kinematics.PreVelX(i), kinematics.PreVelY(i))
		postVel[i-1] = g.G[i-1].Dt(rates)
	}

	rows := make([]sym.Expr, n)
	for k := 0; k < n; k++ {
		rg := rowGeometry(g, k)

		row := sym.Expr(sym.Zero)
		for _, l := range rg.diff {
			i := l.Index
			arm := g.G[i-1].Sub(rg.pivot)
			row = sym.Add(row, arm.Cross(preVel[i-1].Scale(kinematics.Mass(i))))
			row = sym.Add(row, sym.Mul(kinematics.Inertia(i), kinematics.PreRate(i)))
			row = sym.Sub(row, arm.Cross(postVel[i-1].Scale(kinematics.Mass(i))))
			row = sym.Sub(row, sym.Mul(kinematics.Inertia(i), kinematics.DQ(i)))
		}
		if rg.hasStep {
			// Spin terms for the inboard-shared links cancel between
			// the two pivots; only the moment of the linear momentum
			// shifts by the pivot step.
			for _, l := range rg.rest {
				i := l.Index
				row = sym.Add(row, rg.step.Cross(preVel[i-1].Scale(kinematics.Mass(i))))
				row = sym.Sub(row, rg.step.Cross(postVel[i-1].Scale(kinematics.Mass(i))))
			}
		}
		rows[k] = row
	}

	unknowns := make([]sym.Var, n)
	for j := 0; j < n; j++ {
		unknowns[j] = kinematics.DQ(j + 1)
		rows[j] = sym.Neg(rows[j])
	}

	matrix, rhs, err := sym.Linearize(rows, unknowns)
	if err != nil {
		return nil, fmt.Errorf("heel-strike assembly: %w", err)
	}

	// The collision matrix shares the mass matrix's structure and is
	// invertible for any non-degenerate mass distribution; a fully
	// zero row would mean the topology itself is broken.
	for r := 0; r < n; r++ {
		zero := true
		for c := 0; c < n; c++ {
			if !sym.IsZero(matrix[r][c]) {
				zero = false
				break
			}
		}
		if zero {
			return nil, fmt.Errorf("heel-strike assembly: %w", ErrDegenerate)
		}
	}

	return &HeelStrike{Matrix: matrix, Rhs: rhs}, nil
}
