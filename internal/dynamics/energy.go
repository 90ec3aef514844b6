package dynamics

import (
	"github.com/bipedlab/fivelink/internal/kinematics"
	"github.com/bipedlab/fivelink/internal/sym"
)

// Energy holds the closed-form kinetic and potential energy of the
// chain as functions of (q, dq, params).
type Energy struct {
	KE, PE sym.Expr
}

// DeriveEnergy sums translational and rotational kinetic energy and
// gravitational potential energy over the links.
func DeriveEnergy(g *kinematics.Geometry) *Energy {
	rates := kinematics.ChainRates()
	half := sym.Num(0.5)

	ke := sym.Expr(sym.Zero)
	pe := sym.Expr(sym.Zero)
	for i := 1; i <= n; i++ {
		dG := g.G[i-1].Dt(rates)
		trans := sym.Mul(half, sym.Mul(kinematics.Mass(i), dG.Dot(dG)))
		rot := sym.Mul(half, sym.Mul(kinematics.Inertia(i), sym.Mul(kinematics.DQ(i), kinematics.DQ(i))))
		ke = sym.Add(ke, sym.Add(trans, rot))

		pe = sym.Add(pe, sym.Mul(kinematics.Mass(i), sym.Mul(kinematics.Gravity, g.G[i-1].Y)))
	}
	return &Energy{KE: ke, PE: pe}
}
