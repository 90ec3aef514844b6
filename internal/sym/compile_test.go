package sym

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestCompileEvaluates(t *testing.T) {
	q, dq, l := Var("q"), Var("dq"), Var("l")
	e := Add(Mul(l, Mul(dq, Cos(q))), Div(One, l))

	fn, err := Compile(e, []Var{q, dq, l})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	got := fn([]float64{0.3, 2.0, 0.5})
	want := 0.5*2.0*math.Cos(0.3) + 1/0.5
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %g, got %g", want, got)
	}
}

func TestCompileUnresolvedSymbol(t *testing.T) {
	e := Add(Var("q1"), Mul(Var("g"), Var("m1")))

	_, err := Compile(e, []Var{"q1", "m1"})
	if !errors.Is(err, ErrUnresolved) {
		t.Fatalf("expected ErrUnresolved, got %v", err)
	}
	if !strings.Contains(err.Error(), "g") {
		t.Errorf("error should name the missing symbol: %v", err)
	}
}

func TestCompiledClosureIsReusable(t *testing.T) {
	e := Sin(Var("x"))
	fn, err := Compile(e, []Var{"x"})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	for _, x := range []float64{-1, 0, 0.5, 2} {
		if got := fn([]float64{x}); math.Abs(got-math.Sin(x)) > 1e-15 {
			t.Errorf("fn(%g): expected %g, got %g", x, math.Sin(x), got)
		}
	}
}
