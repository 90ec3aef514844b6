package dynamics

import (
	"fmt"

	"github.com/bipedlab/fivelink/internal/kinematics"
	"github.com/bipedlab/fivelink/internal/sym"
)

// Params are the fixed link parameters of the model. L[4] (the swing
// tibia length) is consumed only by the kinematics evaluator; every
// dynamics artifact depends on l1..l4 alone.
type Params struct {
	M [n]float64 // link masses
	I [n]float64 // centroidal moments of inertia
	L [n]float64 // link lengths
	C [n]float64 // CoM offsets
	G float64    // gravitational acceleration
}

// Point is a numeric position or velocity in the horizontal/vertical
// basis.
type Point struct {
	X, Y float64
}

type scalarFn = func([]float64) float64

// Evaluators are the standalone numeric functions emitted by
// [Generate]. They hold no symbolic state; each closure reads its
// inputs in a fixed, documented order.
type Evaluators struct {
	// MassIndex is the flat row-major index list of the structurally
	// nonzero mass-matrix entries. It is model-dependent but identical
	// across calls and parameter values.
	MassIndex []int

	massVals []scalarFn
	force    [n]scalarFn
	hsMat    [n][n]scalarFn
	hsRhs    [n]scalarFn
	fx, fy   scalarFn
	ke, pe   scalarFn
	points   [2 * n]scalarFn
	coms     [2 * n]scalarFn
	comVel   [2 * n]scalarFn
}

// Generate runs the full derivation pipeline for the chain and
// compiles every artifact. It fails on a malformed model: nonlinear
// coefficients, structural singularity, or an expression that escapes
// its declared parameter list.
func Generate(g *kinematics.Geometry) (*Evaluators, error) {
	ss, err := DeriveSingleSupport(g)
	if err != nil {
		return nil, err
	}
	hs, err := DeriveHeelStrike(g)
	if err != nil {
		return nil, err
	}
	contact, err := DeriveContact(g)
	if err != nil {
		return nil, err
	}
	energy := DeriveEnergy(g)

	ev := &Evaluators{MassIndex: ss.Index}

	dynParams := dynamicsParams()
	for _, idx := range ss.Index {
		fn, err := compileArtifact("mass matrix", ss.Mass[idx/n][idx%n], dynParams)
		if err != nil {
			return nil, err
		}
		ev.massVals = append(ev.massVals, fn)
	}
	for i := 0; i < n; i++ {
		if ev.force[i], err = compileArtifact("force vector", ss.Force[i], dynParams); err != nil {
			return nil, err
		}
	}

	hsParams := heelStrikeParams()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if ev.hsMat[r][c], err = compileArtifact("heel-strike matrix", hs.Matrix[r][c], hsParams); err != nil {
				return nil, err
			}
		}
		if ev.hsRhs[r], err = compileArtifact("heel-strike rhs", hs.Rhs[r], hsParams); err != nil {
			return nil, err
		}
	}

	ctParams := contactParams()
	if ev.fx, err = compileArtifact("contact force", contact.Fx, ctParams); err != nil {
		return nil, err
	}
	if ev.fy, err = compileArtifact("contact force", contact.Fy, ctParams); err != nil {
		return nil, err
	}

	enParams := energyParams()
	if ev.ke, err = compileArtifact("kinetic energy", energy.KE, enParams); err != nil {
		return nil, err
	}
	if ev.pe, err = compileArtifact("potential energy", energy.PE, enParams); err != nil {
		return nil, err
	}

	ptParams := pointParams()
	rates := kinematics.ChainRates()
	cvParams := comVelParams()
	for i := 0; i < n; i++ {
		if ev.points[2*i], err = compileArtifact("points", g.P[i+1].X, ptParams); err != nil {
			return nil, err
		}
		if ev.points[2*i+1], err = compileArtifact("points", g.P[i+1].Y, ptParams); err != nil {
			return nil, err
		}
		if ev.coms[2*i], err = compileArtifact("points", g.G[i].X, ptParams); err != nil {
			return nil, err
		}
		if ev.coms[2*i+1], err = compileArtifact("points", g.G[i].Y, ptParams); err != nil {
			return nil, err
		}

		dG := g.G[i].Dt(rates)
		if ev.comVel[2*i], err = compileArtifact("CoM velocity", dG.X, cvParams); err != nil {
			return nil, err
		}
		if ev.comVel[2*i+1], err = compileArtifact("CoM velocity", dG.Y, cvParams); err != nil {
			return nil, err
		}
	}

	return ev, nil
}

func compileArtifact(name string, e sym.Expr, params []sym.Var) (scalarFn, error) {
	fn, err := sym.Compile(e, params)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", name, err)
	}
	return fn, nil
}

// Parameter orders. These are the documented call contracts of the
// generated evaluators; the packing helpers below must match exactly.

func dynamicsParams() []sym.Var {
	ps := varRange(kinematics.Q, 5)
	ps = append(ps, varRange(kinematics.DQ, 5)...)
	ps = append(ps, varRange(kinematics.U, 5)...)
	ps = append(ps, varRange(kinematics.Mass, 5)...)
	ps = append(ps, varRange(kinematics.Inertia, 5)...)
	ps = append(ps, varRange(kinematics.Length, 4)...)
	ps = append(ps, varRange(kinematics.Offset, 5)...)
	return append(ps, kinematics.Gravity)
}

func heelStrikeParams() []sym.Var {
	ps := varRange(kinematics.Q, 5)
	ps = append(ps, varRange(kinematics.PreRate, 5)...)
	ps = append(ps, varRange(kinematics.PreVelX, 5)...)
	ps = append(ps, varRange(kinematics.PreVelY, 5)...)
	ps = append(ps, varRange(kinematics.Mass, 5)...)
	ps = append(ps, varRange(kinematics.Inertia, 5)...)
	ps = append(ps, varRange(kinematics.Length, 4)...)
	return append(ps, varRange(kinematics.Offset, 5)...)
}

func contactParams() []sym.Var {
	ps := varRange(kinematics.Q, 5)
	ps = append(ps, varRange(kinematics.DQ, 5)...)
	ps = append(ps, varRange(kinematics.DDQ, 5)...)
	ps = append(ps, varRange(kinematics.Mass, 5)...)
	ps = append(ps, varRange(kinematics.Length, 4)...)
	ps = append(ps, varRange(kinematics.Offset, 5)...)
	return append(ps, kinematics.Gravity)
}

func energyParams() []sym.Var {
	ps := varRange(kinematics.Q, 5)
	ps = append(ps, varRange(kinematics.DQ, 5)...)
	ps = append(ps, varRange(kinematics.Mass, 5)...)
	ps = append(ps, varRange(kinematics.Inertia, 5)...)
	ps = append(ps, varRange(kinematics.Length, 4)...)
	ps = append(ps, varRange(kinematics.Offset, 5)...)
	return append(ps, kinematics.Gravity)
}

func pointParams() []sym.Var {
	ps := varRange(kinematics.Q, 5)
	ps = append(ps, varRange(kinematics.Length, 5)...)
	return append(ps, varRange(kinematics.Offset, 5)...)
}

func comVelParams() []sym.Var {
	ps := varRange(kinematics.Q, 5)
	ps = append(ps, varRange(kinematics.DQ, 5)...)
	ps = append(ps, varRange(kinematics.Length, 4)...)
	return append(ps, varRange(kinematics.Offset, 5)...)
}

func varRange(f func(int) sym.Var, k int) []sym.Var {
	out := make([]sym.Var, k)
	for i := range out {
		out[i] = f(i + 1)
	}
	return out
}

// Input packing, mirroring the parameter orders above.

func (p Params) packDynamics(q, dq, u [n]float64) []float64 {
	in := make([]float64, 0, 34)
	in = append(in, q[:]...)
	in = append(in, dq[:]...)
	in = append(in, u[:]...)
	in = append(in, p.M[:]...)
	in = append(in, p.I[:]...)
	in = append(in, p.L[:4]...)
	in = append(in, p.C[:]...)
	return append(in, p.G)
}

// Dynamics evaluates the single-support equations of motion: the
// nonzero mass-matrix values (ordered like MassIndex) and the
// generalized-force vector.
func (e *Evaluators) Dynamics(q, dq, u [n]float64, p Params) (mass []float64, force [n]float64) {
	in := p.packDynamics(q, dq, u)
	mass = make([]float64, len(e.massVals))
	for i, fn := range e.massVals {
		mass[i] = fn(in)
	}
	for i := 0; i < n; i++ {
		force[i] = e.force[i](in)
	}
	return mass, force
}

// HeelStrike evaluates the collision map MM·dq_post = ff from the
// pre-impact angular rates and Cartesian CoM velocities.
func (e *Evaluators) HeelStrike(q, dqPre [n]float64, dgx, dgy [n]float64, p Params) (mm [n][n]float64, ff [n]float64) {
	in := make([]float64, 0, 39)
	in = append(in, q[:]...)
	in = append(in, dqPre[:]...)
	in = append(in, dgx[:]...)
	in = append(in, dgy[:]...)
	in = append(in, p.M[:]...)
	in = append(in, p.I[:]...)
	in = append(in, p.L[:4]...)
	in = append(in, p.C[:]...)

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			mm[r][c] = e.hsMat[r][c](in)
		}
		ff[r] = e.hsRhs[r](in)
	}
	return mm, ff
}

// Contact evaluates the ground reaction force during single support.
func (e *Evaluators) Contact(q, dq, ddq [n]float64, p Params) (fx, fy float64) {
	in := make([]float64, 0, 30)
	in = append(in, q[:]...)
	in = append(in, dq[:]...)
	in = append(in, ddq[:]...)
	in = append(in, p.M[:]...)
	in = append(in, p.L[:4]...)
	in = append(in, p.C[:]...)
	in = append(in, p.G)

	return e.fx(in), e.fy(in)
}

// Energy evaluates total kinetic and potential energy.
func (e *Evaluators) Energy(q, dq [n]float64, p Params) (ke, pe float64) {
	in := make([]float64, 0, 30)
	in = append(in, q[:]...)
	in = append(in, dq[:]...)
	in = append(in, p.M[:]...)
	in = append(in, p.I[:]...)
	in = append(in, p.L[:4]...)
	in = append(in, p.C[:]...)
	in = append(in, p.G)

	return e.ke(in), e.pe(in)
}

// Points evaluates the joint positions P1..P5 and link CoMs G1..G5.
func (e *Evaluators) Points(q [n]float64, p Params) (joints, coms [n]Point) {
	in := make([]float64, 0, 15)
	in = append(in, q[:]...)
	in = append(in, p.L[:]...)
	in = append(in, p.C[:]...)

	for i := 0; i < n; i++ {
		joints[i] = Point{X: e.points[2*i](in), Y: e.points[2*i+1](in)}
		coms[i] = Point{X: e.coms[2*i](in), Y: e.coms[2*i+1](in)}
	}
	return joints, coms
}

// ComVel evaluates the Cartesian CoM velocities dG1..dG5.
func (e *Evaluators) ComVel(q, dq [n]float64, p Params) (vel [n]Point) {
	in := make([]float64, 0, 19)
	in = append(in, q[:]...)
	in = append(in, dq[:]...)
	in = append(in, p.L[:4]...)
	in = append(in, p.C[:]...)

	for i := 0; i < n; i++ {
		vel[i] = Point{X: e.comVel[2*i](in), Y: e.comVel[2*i+1](in)}
	}
	return vel
}
