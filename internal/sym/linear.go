package sym

import "fmt"

// Linearize extracts the coefficient matrix A and right-hand side b of
// a system of equations eq = 0 that is linear in the given unknowns,
// so that eq = 0 is equivalent to A·x = b.
//
// Each coefficient is the partial derivative of the equation with
// respect to its unknown. If any coefficient still mentions an
// unknown, the system is not linear and Linearize reports the
// offending equation and unknown.
func Linearize(eqs []Expr, unknowns []Var) (a [][]Expr, b []Expr, err error) {
	set := make(map[Var]struct{}, len(unknowns))
	zeros := make(map[Var]Expr, len(unknowns))
	for _, u := range unknowns {
		set[u] = struct{}{}
		zeros[u] = Zero
	}

	a = make([][]Expr, len(eqs))
	b = make([]Expr, len(eqs))
	for i, eq := range eqs {
		a[i] = make([]Expr, len(unknowns))
		for j, u := range unknowns {
			coef := eq.Diff(u)
			for _, v := range Vars(coef) {
				if _, bad := set[v]; bad {
					return nil, nil, fmt.Errorf("%w: equation %d, unknown %s", ErrNonlinear, i, u)
				}
			}
			a[i][j] = coef
		}
		// eq(x) = eq(0) + A_row·x, so eq = 0 means A_row·x = -eq(0).
		b[i] = Neg(eq.Subst(zeros))
	}
	return a, b, nil
}
