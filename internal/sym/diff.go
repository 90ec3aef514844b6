package sym

// Diff rules follow the chain rule; constructors simplify as the
// derivative is built, so differentiating an expression that does not
// contain v collapses to the literal zero.

func (Num) Diff(Var) Expr { return Zero }

func (v Var) Diff(w Var) Expr {
	if v == w {
		return One
	}
	return Zero
}

func (e add) Diff(v Var) Expr { return Add(e.x.Diff(v), e.y.Diff(v)) }

func (e mul) Diff(v Var) Expr {
	return Add(Mul(e.x.Diff(v), e.y), Mul(e.x, e.y.Diff(v)))
}

func (e div) Diff(v Var) Expr {
	num := Sub(Mul(e.x.Diff(v), e.y), Mul(e.x, e.y.Diff(v)))
	return Div(num, Mul(e.y, e.y))
}

func (e sinOp) Diff(v Var) Expr { return Mul(Cos(e.x), e.x.Diff(v)) }
func (e cosOp) Diff(v Var) Expr { return Neg(Mul(Sin(e.x), e.x.Diff(v))) }

// Rates maps each time-dependent variable to its rate of change.
// Variables absent from the map are treated as constants.
type Rates map[Var]Expr

// Dt returns the total time derivative of e: the sum of rate(v)·∂e/∂v
// over the free variables of e. Applying Dt twice with a rate map that
// chains q→dq→ddq yields second time derivatives.
func Dt(e Expr, r Rates) Expr {
	acc := Expr(Zero)
	for _, v := range Vars(e) {
		rate, ok := r[v]
		if !ok {
			continue
		}
		acc = Add(acc, Mul(rate, e.Diff(v)))
	}
	return acc
}
