package kinematics

import (
	"fmt"

	"github.com/bipedlab/fivelink/internal/sym"
)

// Variable naming is fixed across the whole pipeline; every artifact
// declares the subset it is allowed to reference at compile time.

// Q is the absolute angle of link i, measured from vertical.
func Q(i int) sym.Var { return sym.Var(fmt.Sprintf("q%d", i)) }

// DQ and DDQ are the first and second time derivatives of Q.
func DQ(i int) sym.Var  { return sym.Var(fmt.Sprintf("dq%d", i)) }
func DDQ(i int) sym.Var { return sym.Var(fmt.Sprintf("ddq%d", i)) }

// U is the torque acting between link i and its inboard neighbor.
func U(i int) sym.Var { return sym.Var(fmt.Sprintf("u%d", i)) }

// Mass, Inertia, Length, and Offset are the per-link parameters.
func Mass(i int) sym.Var    { return sym.Var(fmt.Sprintf("m%d", i)) }
func Inertia(i int) sym.Var { return sym.Var(fmt.Sprintf("I%d", i)) }
func Length(i int) sym.Var  { return sym.Var(fmt.Sprintf("l%d", i)) }
func Offset(i int) sym.Var  { return sym.Var(fmt.Sprintf("c%d", i)) }

// Gravity is the scalar gravitational acceleration.
const Gravity = sym.Var("g")

// PreRate is the pre-impact angular rate of link i at heel strike.
func PreRate(i int) sym.Var { return sym.Var(fmt.Sprintf("dq%dm", i)) }

// PreVelX and PreVelY are the pre-impact Cartesian CoM velocity
// components of link i at heel strike, free of the post-swap
// generalized rates.
func PreVelX(i int) sym.Var { return sym.Var(fmt.Sprintf("dG%dmx", i)) }
func PreVelY(i int) sym.Var { return sym.Var(fmt.Sprintf("dG%dmy", i)) }

// ChainRates maps q to dq and dq to ddq, so that sym.Dt propagates
// first and second time derivatives through any position expression.
func ChainRates() sym.Rates {
	r := make(sym.Rates, 2*NumLinks)
	for i := 1; i <= NumLinks; i++ {
		r[Q(i)] = DQ(i)
		r[DQ(i)] = DDQ(i)
	}
	return r
}
