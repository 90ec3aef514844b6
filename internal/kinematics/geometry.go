package kinematics

import "github.com/bipedlab/fivelink/internal/sym"

// Geometry holds the closed-form positions of the chain in the
// horizontal/vertical basis. All members are symbolic in q1..q5 and
// the link parameters; they are built once and never mutated.
type Geometry struct {
	chain *Chain

	// E[i-1] is the unit vector of link i, pointing from its proximal
	// joint toward its distal joint. q_i = 0 is vertical alignment;
	// the swing-side vectors are the stance formula negated.
	E [NumLinks]sym.Vec2

	// P[0] is the stance contact at the origin; P[i] the distal joint
	// or endpoint of link i, built by sequential vector addition.
	P [NumLinks + 1]sym.Vec2

	// G[i-1] is the CoM of link i.
	G [NumLinks]sym.Vec2

	// CoM is the mass-weighted average of the link CoMs.
	CoM sym.Vec2

	// TotalMass is m1 + ... + m5.
	TotalMass sym.Expr
}

// NewGeometry derives the position expressions for the chain.
func NewGeometry(c *Chain) *Geometry {
	g := &Geometry{chain: c}

	for _, l := range c.Links() {
		i := l.Index
		q := Q(i)
		if l.Swing {
			g.E[i-1] = sym.V(sym.Sin(q), sym.Neg(sym.Cos(q)))
		} else {
			g.E[i-1] = sym.V(sym.Neg(sym.Sin(q)), sym.Cos(q))
		}
	}

	g.P[0] = sym.V(sym.Zero, sym.Zero)
	for _, l := range c.Links() {
		i := l.Index
		g.P[i] = g.anchor(l).Add(g.E[i-1].Scale(Length(i)))
	}

	// Stance-side CoMs hang c_i inboard of the distal joint; swing-side
	// CoMs sit c_i outboard of the proximal joint. Together with the
	// flipped swing unit vectors this keeps l5 out of every CoM, so the
	// dynamics artifacts depend on l1..l4 only.
	for _, l := range c.Links() {
		i := l.Index
		off := g.E[i-1].Scale(Offset(i))
		if l.Swing {
			g.G[i-1] = g.anchor(l).Add(off)
		} else {
			g.G[i-1] = g.P[i].Sub(off)
		}
	}

	weighted := sym.V(sym.Zero, sym.Zero)
	total := sym.Expr(sym.Zero)
	for i := 1; i <= NumLinks; i++ {
		weighted = weighted.Add(g.G[i-1].Scale(Mass(i)))
		total = sym.Add(total, Mass(i))
	}
	g.TotalMass = total
	g.CoM = sym.V(sym.Div(weighted.X, total), sym.Div(weighted.Y, total))

	return g
}

// anchor returns the proximal joint position of l: the distal point of
// its parent, or the ground contact for the stance tibia.
func (g *Geometry) anchor(l *Link) sym.Vec2 {
	if l.Parent == nil {
		return g.P[0]
	}
	return g.P[l.Parent.Index]
}

// Pivot returns the position of joint k: the proximal joint of link
// k+1. The torso and swing-femur joints share the hip position.
func (g *Geometry) Pivot(k int) sym.Vec2 {
	return g.anchor(g.chain.Link(k + 1))
}

// Chain returns the underlying tree.
func (g *Geometry) Chain() *Chain { return g.chain }
