package dynamics

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/bipedlab/fivelink/internal/kinematics"
	"github.com/bipedlab/fivelink/internal/sym"
)

func TestMassMatrixSparsity(t *testing.T) {
	geom := kinematics.NewGeometry(kinematics.NewBiped())
	ss, err := DeriveSingleSupport(geom)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}

	// The torso angle only moves the torso CoM, and no swing-side CoM
	// depends on it, so the torso row and column decouple from the
	// swing links: exactly four structural zeros.
	zeros := map[int]bool{13: true, 14: true, 17: true, 22: true}

	var want []int
	for idx := 0; idx < n*n; idx++ {
		if !zeros[idx] {
			want = append(want, idx)
		}
	}
	if len(ss.Index) != len(want) {
		t.Fatalf("expected %d nonzero entries, got %d: %v", len(want), len(ss.Index), ss.Index)
	}
	for i, idx := range ss.Index {
		if idx != want[i] {
			t.Errorf("entry %d: expected flat index %d, got %d", i, want[i], idx)
		}
	}
}

func TestMassMatrixSymmetricPositiveDefinite(t *testing.T) {
	gt := NewWithT(t)
	ev := testEvaluators(t)
	p := testParams()

	configs := [][n]float64{
		{},
		{0.31, -0.24, 0.12, 0.45, -0.38},
		{-0.8, 0.5, -0.3, 0.9, 0.2},
	}
	for _, q := range configs {
		m := denseMass(ev, q, [n]float64{}, [n]float64{}, p)

		for r := 0; r < n; r++ {
			for c := r + 1; c < n; c++ {
				gt.Expect(m[r][c]).To(BeNumerically("~", m[c][r], 1e-9),
					"asymmetry at (%d,%d), q=%v", r, c, q)
			}
		}

		sd := mat.NewSymDense(n, nil)
		for r := 0; r < n; r++ {
			for c := 0; c <= r; c++ {
				sd.SetSym(r, c, m[r][c])
			}
		}
		var ch mat.Cholesky
		gt.Expect(ch.Factorize(sd)).To(BeTrue(), "mass matrix not positive definite at q=%v", q)
	}
}

func TestForceVanishesUpright(t *testing.T) {
	ev := testEvaluators(t)

	// Every CoM sits on the vertical through the contact, so gravity
	// has no moment about any joint.
	_, force := ev.Dynamics([n]float64{}, [n]float64{}, [n]float64{}, testParams())
	for k, f := range force {
		if math.Abs(f) > 1e-10 {
			t.Errorf("row %d: expected zero force upright, got %g", k, f)
		}
	}
}

func TestRowsMatchBalanceDifferences(t *testing.T) {
	geom := kinematics.NewGeometry(kinematics.NewBiped())
	rates := kinematics.ChainRates()

	ddG := make([]sym.Vec2, n)
	for i := 0; i < n; i++ {
		ddG[i] = geom.G[i].Dt(rates).Dt(rates)
	}
	rows := balanceRows(geom, ddG)

	params := append(dynamicsParams(), varRange(kinematics.DDQ, 5)...)
	p := testParams()
	q := [n]float64{0.31, -0.24, 0.12, 0.45, -0.38}
	dq := [n]float64{1.1, -0.7, 0.4, -1.3, 0.9}
	u := [n]float64{10, -6, 4, 7, -3}
	ddq := [n]float64{2.1, -1.4, 0.8, -2.6, 1.7}
	in := append(p.packDynamics(q, dq, u), ddq[:]...)

	for k := 0; k < n; k++ {
		want := AMB(geom, k, ddG)
		if k+1 < n {
			want = sym.Sub(want, AMB(geom, k+1, ddG))
		}

		wf, err := sym.Compile(want, params)
		if err != nil {
			t.Fatalf("row %d: compile balance difference: %v", k, err)
		}
		rf, err := sym.Compile(rows[k], params)
		if err != nil {
			t.Fatalf("row %d: compile row: %v", k, err)
		}

		got, expect := rf(in), wf(in)
		if math.Abs(got-expect) > 1e-8 {
			t.Errorf("row %d: %g, balance difference %g", k, got, expect)
		}
	}
}
