package dynamics

import (
	"fmt"

	"github.com/bipedlab/fivelink/internal/kinematics"
	"github.com/bipedlab/fivelink/internal/sym"
)

const n = kinematics.NumLinks

// SingleSupport is the stance-phase dynamics in mass-matrix form:
// Mass·ddq = Force, with Mass symmetric positive definite and sparse.
type SingleSupport struct {
	// Mass[i][j] is the coefficient of ddq_{j+1} in row i.
	Mass [][]sym.Expr
	// Force is the generalized-force vector F(q, dq, u).
	Force []sym.Expr
	// Index lists the structurally nonzero entries of Mass as flat
	// row-major positions. The pattern is a property of the topology,
	// identical for every parameter value.
	Index []int
}

// AMB returns the raw angular-momentum-balance equation about joint k,
// collected as torque - inertia: gravity and actuator torque on the
// outboard subtree against the rate of change of the subtree's angular
// momentum about the joint.
func AMB(g *kinematics.Geometry, k int, ddG []sym.Vec2) sym.Expr {
	pivot := g.Pivot(k)

	torque := sym.Expr(kinematics.U(k + 1))
	inertia := sym.Expr(sym.Zero)
	for _, l := range g.Chain().Outboard(k) {
		i := l.Index
		arm := g.G[i-1].Sub(pivot)
		weight := sym.V(sym.Zero, sym.Neg(sym.Mul(kinematics.Mass(i), kinematics.Gravity)))
		torque = sym.Add(torque, arm.Cross(weight))

		spin := sym.Mul(kinematics.Inertia(i), kinematics.DDQ(i))
		inertia = sym.Add(inertia, sym.Add(arm.Cross(ddG[i-1].Scale(kinematics.Mass(i))), spin))
	}
	return sym.Sub(torque, inertia)
}

// rowGeom is the shape of the telescoped row k: the difference of the
// balance equations about joints k and k+1. The outboard sets nest
// strictly, so the difference keeps the links leaving the sum about
// pivot k, and shifts the rest by the pivot step. Building the
// difference from the tree, instead of subtracting the assembled
// equations, keeps cancelled terms out of the expression so structural
// zeros stay detectable.
type rowGeom struct {
	diff    []*kinematics.Link // S_k minus S_{k+1}
	rest    []*kinematics.Link // S_{k+1}
	pivot   sym.Vec2
	step    sym.Vec2 // pivot(k+1) - pivot(k)
	hasStep bool
}

func rowGeometry(g *kinematics.Geometry, k int) rowGeom {
	c := g.Chain()
	rg := rowGeom{pivot: g.Pivot(k)}

	inRest := make(map[int]bool)
	if k+1 < n {
		rg.rest = c.Outboard(k + 1)
		for _, l := range rg.rest {
			inRest[l.Index] = true
		}
	}
	for _, l := range c.Outboard(k) {
		if !inRest[l.Index] {
			rg.diff = append(rg.diff, l)
		}
	}

	if k+1 < n {
		// The pivot step is the chain segment between the two joint
		// anchors; at the hip the torso and swing-femur joints share
		// the anchor and the step vanishes.
		seen := make(map[int]bool)
		for _, l := range c.Ancestors(k + 1) {
			seen[l.Index] = true
		}
		step := sym.V(sym.Zero, sym.Zero)
		for _, l := range c.Ancestors(k + 2) {
			if seen[l.Index] {
				continue
			}
			rg.hasStep = true
			step = step.Add(g.E[l.Index-1].Scale(kinematics.Length(l.Index)))
		}
		rg.step = step
	}
	return rg
}

// gravityOn returns the weight vector of link i.
func gravityOn(i int) sym.Vec2 {
	return sym.V(sym.Zero, sym.Neg(sym.Mul(kinematics.Mass(i), kinematics.Gravity)))
}

// balanceRows builds the telescoped balance rows, equal to
// AMB(k) - AMB(k+1) with AMB(5) identically zero.
func balanceRows(g *kinematics.Geometry, ddG []sym.Vec2) []sym.Expr {
	rows := make([]sym.Expr, n)
	for k := 0; k < n; k++ {
		rg := rowGeometry(g, k)

		row := sym.Expr(kinematics.U(k + 1))
		if k+1 < n {
			row = sym.Sub(row, kinematics.U(k+2))
		}
		for _, l := range rg.diff {
			i := l.Index
			arm := g.G[i-1].Sub(rg.pivot)
			row = sym.Add(row, arm.Cross(gravityOn(i)))
			row = sym.Sub(row, arm.Cross(ddG[i-1].Scale(kinematics.Mass(i))))
			row = sym.Sub(row, sym.Mul(kinematics.Inertia(i), kinematics.DDQ(i)))
		}
		if rg.hasStep {
			for _, l := range rg.rest {
				i := l.Index
				row = sym.Add(row, rg.step.Cross(gravityOn(i)))
				row = sym.Sub(row, rg.step.Cross(ddG[i-1].Scale(kinematics.Mass(i))))
			}
		}
		rows[k] = row
	}
	return rows
}

// DeriveSingleSupport assembles the balance equations over the tree
// and extracts the sparse mass-matrix decomposition.
func DeriveSingleSupport(g *kinematics.Geometry) (*SingleSupport, error) {
	rates := kinematics.ChainRates()

	ddG := make([]sym.Vec2, n)
	for i := 0; i < n; i++ {
		ddG[i] = g.G[i].Dt(rates).Dt(rates)
	}

	rows := balanceRows(g, ddG)

	// Rows are torque - inertia; negate so the extracted matrix
	// carries positive inertia coefficients.
	unknowns := make([]sym.Var, n)
	for j := 0; j < n; j++ {
		unknowns[j] = kinematics.DDQ(j + 1)
		rows[j] = sym.Neg(rows[j])
	}

	mass, force, err := sym.Linearize(rows, unknowns)
	if err != nil {
		return nil, fmt.Errorf("single-support assembly: %w", err)
	}

	ss := &SingleSupport{Mass: mass, Force: force}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if !sym.IsZero(mass[r][c]) {
				ss.Index = append(ss.Index, r*n+c)
			}
		}
	}
	if len(ss.Index) == 0 {
		return nil, fmt.Errorf("single-support assembly: %w", ErrDegenerate)
	}
	return ss, nil
}
