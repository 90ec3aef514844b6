package kinematics

import (
	"math"
	"testing"

	"github.com/bipedlab/fivelink/internal/sym"
)

// pointParams is the full kinematic parameter list: angles, lengths,
// offsets.
func pointParams() []sym.Var {
	var ps []sym.Var
	for i := 1; i <= NumLinks; i++ {
		ps = append(ps, Q(i))
	}
	for i := 1; i <= NumLinks; i++ {
		ps = append(ps, Length(i))
	}
	for i := 1; i <= NumLinks; i++ {
		ps = append(ps, Offset(i))
	}
	return ps
}

func evalPoint(t *testing.T, v sym.Vec2, vals []float64) (float64, float64) {
	t.Helper()
	fx, err := sym.Compile(v.X, pointParams())
	if err != nil {
		t.Fatalf("compile X: %v", err)
	}
	fy, err := sym.Compile(v.Y, pointParams())
	if err != nil {
		t.Fatalf("compile Y: %v", err)
	}
	return fx(vals), fy(vals)
}

func TestUprightConfiguration(t *testing.T) {
	g := NewGeometry(NewBiped())

	l := []float64{0.4, 0.4, 0.6, 0.4, 0.4}
	c := []float64{0.2, 0.2, 0.3, 0.2, 0.2}
	vals := append(append([]float64{0, 0, 0, 0, 0}, l...), c...)

	tests := []struct {
		name string
		v    sym.Vec2
		x, y float64
	}{
		{"P1", g.P[1], 0, 0.4},
		{"P2", g.P[2], 0, 0.8},
		{"P3", g.P[3], 0, 1.4},
		{"P4", g.P[4], 0, 0.4},
		{"P5", g.P[5], 0, 0},
		{"G1", g.G[0], 0, 0.2},
		{"G2", g.G[1], 0, 0.6},
		{"G3", g.G[2], 0, 1.1},
		{"G4", g.G[3], 0, 0.6},
		{"G5", g.G[4], 0, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := evalPoint(t, tt.v, vals)
			if math.Abs(x-tt.x) > 1e-12 || math.Abs(y-tt.y) > 1e-12 {
				t.Errorf("expected (%g, %g), got (%g, %g)", tt.x, tt.y, x, y)
			}
		})
	}
}

func TestSwingFootClosure(t *testing.T) {
	// P5 through the chain must equal P2 plus the two swing segments,
	// whatever the configuration.
	g := NewGeometry(NewBiped())

	q := []float64{0.3, -0.1, 0.05, 0.4, -0.2}
	l := []float64{0.4, 0.4, 0.6, 0.4, 0.4}
	c := []float64{0.2, 0.2, 0.3, 0.2, 0.2}
	vals := append(append(q, l...), c...)

	x5, y5 := evalPoint(t, g.P[5], vals)

	x2, y2 := evalPoint(t, g.P[2], vals)
	wantX := x2 + l[3]*math.Sin(q[3]) + l[4]*math.Sin(q[4])
	wantY := y2 - l[3]*math.Cos(q[3]) - l[4]*math.Cos(q[4])

	if math.Abs(x5-wantX) > 1e-12 || math.Abs(y5-wantY) > 1e-12 {
		t.Errorf("P5: expected (%g, %g), got (%g, %g)", wantX, wantY, x5, y5)
	}
}

func TestPivotsShareHip(t *testing.T) {
	g := NewGeometry(NewBiped())

	q := []float64{0.3, -0.1, 0.05, 0.4, -0.2}
	l := []float64{0.4, 0.4, 0.6, 0.4, 0.4}
	c := []float64{0.2, 0.2, 0.3, 0.2, 0.2}
	vals := append(append(q, l...), c...)

	x2, y2 := evalPoint(t, g.Pivot(2), vals)
	x3, y3 := evalPoint(t, g.Pivot(3), vals)
	if x2 != x3 || y2 != y3 {
		t.Errorf("torso and swing-femur joints must share the hip: (%g,%g) vs (%g,%g)", x2, y2, x3, y3)
	}

	x4, y4 := evalPoint(t, g.Pivot(4), vals)
	px, py := evalPoint(t, g.P[4], vals)
	if x4 != px || y4 != py {
		t.Errorf("swing-knee joint must sit at P4: (%g,%g) vs (%g,%g)", x4, y4, px, py)
	}
}

func TestComFreeOfSwingTibiaLength(t *testing.T) {
	// No CoM expression may reference l5; the dynamics parameter lists
	// only carry l1..l4.
	g := NewGeometry(NewBiped())

	check := func(name string, e sym.Expr) {
		for _, v := range sym.Vars(e) {
			if v == Length(5) {
				t.Errorf("%s references l5", name)
			}
		}
	}
	for i := 0; i < NumLinks; i++ {
		check("G.X", g.G[i].X)
		check("G.Y", g.G[i].Y)
	}
	check("CoM.X", g.CoM.X)
	check("CoM.Y", g.CoM.Y)
}

func TestTotalMassAndCom(t *testing.T) {
	g := NewGeometry(NewBiped())

	var ps []sym.Var
	for i := 1; i <= NumLinks; i++ {
		ps = append(ps, Mass(i))
	}
	fn, err := sym.Compile(g.TotalMass, ps)
	if err != nil {
		t.Fatalf("compile total mass: %v", err)
	}
	m := []float64{3.2, 6.8, 20, 6.8, 3.2}
	if got := fn(m); math.Abs(got-40) > 1e-12 {
		t.Errorf("total mass: expected 40, got %g", got)
	}
}
