package dynamics

import (
	"math"
	"sync"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/bipedlab/fivelink/internal/kinematics"
)

var (
	evOnce   sync.Once
	evCached *Evaluators
	evErr    error
)

// testEvaluators runs the full derivation once and shares the compiled
// artifacts across the package's tests.
func testEvaluators(t *testing.T) *Evaluators {
	t.Helper()
	evOnce.Do(func() {
		evCached, evErr = Generate(kinematics.NewGeometry(kinematics.NewBiped()))
	})
	if evErr != nil {
		t.Fatalf("generate: %v", evErr)
	}
	return evCached
}

func testParams() Params {
	return Params{
		M: [n]float64{3.2, 6.8, 20.0, 6.8, 3.2},
		I: [n]float64{0.93, 1.08, 2.22, 1.08, 0.93},
		L: [n]float64{0.4, 0.4, 0.625, 0.4, 0.4},
		C: [n]float64{0.128, 0.163, 0.2, 0.163, 0.128},
		G: 9.81,
	}
}

func denseMass(ev *Evaluators, q, dq, u [n]float64, p Params) [n][n]float64 {
	vals, _ := ev.Dynamics(q, dq, u, p)
	var m [n][n]float64
	for i, idx := range ev.MassIndex {
		m[idx/n][idx%n] = vals[i]
	}
	return m
}

func solveLinear(t *testing.T, a [n][n]float64, b [n]float64) [n]float64 {
	t.Helper()
	dense := mat.NewDense(n, n, nil)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			dense.Set(r, c, a[r][c])
		}
	}
	var lu mat.LU
	lu.Factorize(dense)
	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, mat.NewVecDense(n, b[:])); err != nil {
		t.Fatalf("linear solve: %v", err)
	}
	var out [n]float64
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out
}

func TestGenerateClosesOverDeclaredParameters(t *testing.T) {
	// Generate compiles every artifact against its fixed parameter
	// list and fails on any free symbol outside it. Success proves
	// the swing tibia length stays out of the dynamics, contact,
	// energy, and collision artifacts.
	ev := testEvaluators(t)
	if len(ev.MassIndex) == 0 {
		t.Fatal("expected nonzero mass-matrix entries")
	}
}

func TestComVelMatchesPointDerivative(t *testing.T) {
	ev := testEvaluators(t)
	p := testParams()

	q := [n]float64{0.31, -0.24, 0.12, 0.45, -0.38}
	dq := [n]float64{1.1, -0.7, 0.4, -1.3, 0.9}

	vel := ev.ComVel(q, dq, p)

	const h = 1e-6
	var qp, qm [n]float64
	for i := range q {
		qp[i] = q[i] + h*dq[i]
		qm[i] = q[i] - h*dq[i]
	}
	_, cp := ev.Points(qp, p)
	_, cm := ev.Points(qm, p)

	for i := 0; i < n; i++ {
		fdx := (cp[i].X - cm[i].X) / (2 * h)
		fdy := (cp[i].Y - cm[i].Y) / (2 * h)
		if math.Abs(vel[i].X-fdx) > 1e-6 {
			t.Errorf("link %d: vx %f, finite difference %f", i+1, vel[i].X, fdx)
		}
		if math.Abs(vel[i].Y-fdy) > 1e-6 {
			t.Errorf("link %d: vy %f, finite difference %f", i+1, vel[i].Y, fdy)
		}
	}
}
