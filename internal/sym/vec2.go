package sym

// Vec2 is a symbolic 2-D vector in the horizontal/vertical basis.
type Vec2 struct {
	X, Y Expr
}

// V builds a vector from its components.
func V(x, y Expr) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(w Vec2) Vec2 { return Vec2{Add(v.X, w.X), Add(v.Y, w.Y)} }
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{Sub(v.X, w.X), Sub(v.Y, w.Y)} }

// Scale returns s·v.
func (v Vec2) Scale(s Expr) Vec2 { return Vec2{Mul(s, v.X), Mul(s, v.Y)} }

// Dot returns v·w.
func (v Vec2) Dot(w Vec2) Expr {
	return Add(Mul(v.X, w.X), Mul(v.Y, w.Y))
}

// Cross returns the scalar 2-D cross product v×w.
func (v Vec2) Cross(w Vec2) Expr {
	return Sub(Mul(v.X, w.Y), Mul(v.Y, w.X))
}

// Dt returns the componentwise total time derivative.
func (v Vec2) Dt(r Rates) Vec2 {
	return Vec2{Dt(v.X, r), Dt(v.Y, r)}
}
