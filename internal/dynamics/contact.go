package dynamics

import (
	"fmt"

	"github.com/bipedlab/fivelink/internal/kinematics"
	"github.com/bipedlab/fivelink/internal/sym"
)

// Ground reaction unknowns, present only during single support.
const (
	varFx = sym.Var("Fx")
	varFy = sym.Var("Fy")
)

// Contact holds the closed-form ground reaction force at the stance
// contact, solved from whole-system linear-momentum balance.
type Contact struct {
	Fx, Fy sym.Expr
}

// DeriveContact extracts and solves the 2x2 linear system
// (Fx, Fy) + total weight = total mass x CoM acceleration.
func DeriveContact(g *kinematics.Geometry) (*Contact, error) {
	rates := kinematics.ChainRates()
	ddCoM := g.CoM.Dt(rates).Dt(rates)

	eqs := []sym.Expr{
		sym.Sub(varFx, sym.Mul(g.TotalMass, ddCoM.X)),
		sym.Sub(sym.Sub(varFy, sym.Mul(g.TotalMass, kinematics.Gravity)), sym.Mul(g.TotalMass, ddCoM.Y)),
	}

	a, b, err := sym.Linearize(eqs, []sym.Var{varFx, varFy})
	if err != nil {
		return nil, fmt.Errorf("contact-force derivation: %w", err)
	}

	det := sym.Sub(sym.Mul(a[0][0], a[1][1]), sym.Mul(a[0][1], a[1][0]))
	if sym.IsZero(det) {
		return nil, fmt.Errorf("contact-force derivation: %w", ErrDegenerate)
	}

	// Closed-form 2x2 solve by adjugate.
	return &Contact{
		Fx: sym.Div(sym.Sub(sym.Mul(a[1][1], b[0]), sym.Mul(a[0][1], b[1])), det),
		Fy: sym.Div(sym.Sub(sym.Mul(a[0][0], b[1]), sym.Mul(a[1][0], b[0])), det),
	}, nil
}
