package sym

import (
	"fmt"
	"math"
	"sort"
)

// Expr is an immutable symbolic expression.
type Expr interface {
	// Diff returns the partial derivative with respect to v.
	Diff(v Var) Expr
	// Subst returns the expression with every bound variable replaced.
	Subst(b map[Var]Expr) Expr

	String() string

	addVars(set map[Var]struct{})
	compile(idx map[Var]int) (evalFn, error)
}

type evalFn func(p []float64) float64

// Num is a numeric constant.
type Num float64

// Var is a symbolic variable, identified by name.
type Var string

// Zero and One are the identities the constructors fold against.
const (
	Zero = Num(0)
	One  = Num(1)
)

type add struct{ x, y Expr }
type mul struct{ x, y Expr }
type div struct{ x, y Expr }
type sinOp struct{ x Expr }
type cosOp struct{ x Expr }

// Add returns x + y with constants folded and zeros elided.
func Add(x, y Expr) Expr {
	nx, xok := x.(Num)
	ny, yok := y.(Num)
	switch {
	case xok && yok:
		return nx + ny
	case xok && nx == 0:
		return y
	case yok && ny == 0:
		return x
	}
	return add{x, y}
}

// Sum folds a list of terms left to right.
func Sum(terms ...Expr) Expr {
	acc := Expr(Zero)
	for _, t := range terms {
		acc = Add(acc, t)
	}
	return acc
}

// Sub returns x - y.
func Sub(x, y Expr) Expr { return Add(x, Neg(y)) }

// Neg returns -x.
func Neg(x Expr) Expr { return Mul(Num(-1), x) }

// Mul returns x * y with constants folded; zero annihilates.
func Mul(x, y Expr) Expr {
	nx, xok := x.(Num)
	ny, yok := y.(Num)
	switch {
	case xok && yok:
		return nx * ny
	case xok && nx == 0, yok && ny == 0:
		return Zero
	case xok && nx == 1:
		return y
	case yok && ny == 1:
		return x
	}
	return mul{x, y}
}

// Div returns x / y. Division by the constant zero panics: it can only
// arise from a malformed model, never from user input.
func Div(x, y Expr) Expr {
	ny, yok := y.(Num)
	if yok && ny == 0 {
		panic("sym: division by constant zero")
	}
	if nx, xok := x.(Num); xok {
		if nx == 0 {
			return Zero
		}
		if yok {
			return nx / ny
		}
	}
	if yok && ny == 1 {
		return x
	}
	return div{x, y}
}

// Sin returns sin(x).
func Sin(x Expr) Expr {
	if n, ok := x.(Num); ok {
		return Num(math.Sin(float64(n)))
	}
	return sinOp{x}
}

// Cos returns cos(x).
func Cos(x Expr) Expr {
	if n, ok := x.(Num); ok {
		return Num(math.Cos(float64(n)))
	}
	return cosOp{x}
}

// IsZero reports whether e simplified to the literal zero.
func IsZero(e Expr) bool {
	n, ok := e.(Num)
	return ok && n == 0
}

// Vars returns the free variables of e in sorted order.
func Vars(e Expr) []Var {
	set := make(map[Var]struct{})
	e.addVars(set)
	out := make([]Var, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (Num) addVars(map[Var]struct{})         {}
func (v Var) addVars(set map[Var]struct{})   { set[v] = struct{}{} }
func (e add) addVars(set map[Var]struct{})   { e.x.addVars(set); e.y.addVars(set) }
func (e mul) addVars(set map[Var]struct{})   { e.x.addVars(set); e.y.addVars(set) }
func (e div) addVars(set map[Var]struct{})   { e.x.addVars(set); e.y.addVars(set) }
func (e sinOp) addVars(set map[Var]struct{}) { e.x.addVars(set) }
func (e cosOp) addVars(set map[Var]struct{}) { e.x.addVars(set) }

func (n Num) Subst(map[Var]Expr) Expr { return n }

func (v Var) Subst(b map[Var]Expr) Expr {
	if r, ok := b[v]; ok {
		return r
	}
	return v
}

func (e add) Subst(b map[Var]Expr) Expr { return Add(e.x.Subst(b), e.y.Subst(b)) }
func (e mul) Subst(b map[Var]Expr) Expr { return Mul(e.x.Subst(b), e.y.Subst(b)) }
func (e div) Subst(b map[Var]Expr) Expr { return Div(e.x.Subst(b), e.y.Subst(b)) }
func (e sinOp) Subst(b map[Var]Expr) Expr { return Sin(e.x.Subst(b)) }
func (e cosOp) Subst(b map[Var]Expr) Expr { return Cos(e.x.Subst(b)) }

func (n Num) String() string { return fmt.Sprintf("%g", float64(n)) }
func (v Var) String() string { return string(v) }
func (e add) String() string { return fmt.Sprintf("(%s + %s)", e.x, e.y) }
func (e mul) String() string { return fmt.Sprintf("(%s * %s)", e.x, e.y) }
func (e div) String() string { return fmt.Sprintf("(%s / %s)", e.x, e.y) }
func (e sinOp) String() string { return fmt.Sprintf("sin(%s)", e.x) }
func (e cosOp) String() string { return fmt.Sprintf("cos(%s)", e.x) }
