// Package kinematics builds the five-link biped's kinematic tree and
// its closed-form geometry: unit vectors, joint positions, and
// center-of-mass positions as symbolic expressions of the five
// absolute link angles.
package kinematics

// Link is one rigid body of the chain.
type Link struct {
	// Index is the 1-based coordinate index: q<Index> is the link's
	// absolute angle, joint Index-1 its proximal joint.
	Index int
	Name  string
	// Parent is the inboard neighbor; nil for the stance tibia, which
	// roots at the ground contact.
	Parent *Link
	// Swing marks the sign-flipped unit-vector convention of the
	// swing leg, which extends from the hip in the opposite
	// rotational sense.
	Swing bool
}

// Chain is the branching kinematic tree. It is serial except at the
// hip, where the torso and the swing femur attach as siblings.
type Chain struct {
	links    []*Link
	children map[int][]*Link
	subtrees map[int][]*Link
	outboard map[int][]*Link
}

// NumLinks is fixed: the derivation assumes exactly five links with
// the hip branch.
const NumLinks = 5

// NewBiped constructs the five-link chain: stance tibia, stance femur,
// torso, swing femur, swing tibia.
func NewBiped() *Chain {
	tibia := &Link{Index: 1, Name: "stance tibia"}
	femur := &Link{Index: 2, Name: "stance femur", Parent: tibia}
	torso := &Link{Index: 3, Name: "torso", Parent: femur}
	swingFemur := &Link{Index: 4, Name: "swing femur", Parent: femur, Swing: true}
	swingTibia := &Link{Index: 5, Name: "swing tibia", Parent: swingFemur, Swing: true}

	c := &Chain{
		links:    []*Link{tibia, femur, torso, swingFemur, swingTibia},
		children: make(map[int][]*Link),
		subtrees: make(map[int][]*Link),
		outboard: make(map[int][]*Link),
	}

	for _, l := range c.links {
		if l.Parent != nil {
			c.children[l.Parent.Index] = append(c.children[l.Parent.Index], l)
		}
	}
	for _, l := range c.links {
		c.subtrees[l.Index] = c.collectSubtree(l)
	}
	// The outboard set of joint k unions the subtrees of every link
	// numbered above k. For serial segments this is plain tree
	// distance; at the hip it encodes the equation ordering of the
	// siblings: the torso joint still sees the whole swing leg, while
	// the swing-femur joint no longer sees the torso.
	for k := 0; k < NumLinks; k++ {
		seen := make(map[int]bool)
		var set []*Link
		for j := k + 1; j <= NumLinks; j++ {
			for _, l := range c.subtrees[j] {
				if !seen[l.Index] {
					seen[l.Index] = true
					set = append(set, l)
				}
			}
		}
		c.outboard[k] = sortByIndex(set)
	}

	return c
}

func (c *Chain) collectSubtree(root *Link) []*Link {
	set := []*Link{root}
	for _, ch := range c.children[root.Index] {
		set = append(set, c.collectSubtree(ch)...)
	}
	return sortByIndex(set)
}

func sortByIndex(ls []*Link) []*Link {
	for i := 1; i < len(ls); i++ {
		for j := i; j > 0 && ls[j-1].Index > ls[j].Index; j-- {
			ls[j-1], ls[j] = ls[j], ls[j-1]
		}
	}
	return ls
}

// Links returns the links in coordinate order.
func (c *Chain) Links() []*Link { return c.links }

// Link returns the link with the given 1-based index.
func (c *Chain) Link(i int) *Link { return c.links[i-1] }

// Outboard returns the links strictly outboard of joint k, k in 0..4.
// Joint 0 is the ground contact, joint k the proximal joint of link
// k+1.
func (c *Chain) Outboard(k int) []*Link { return c.outboard[k] }

// Subtree returns link i and everything outboard of it.
func (c *Chain) Subtree(i int) []*Link { return c.subtrees[i] }

// Ancestors returns the proper ancestors of link i, root first. Their
// segment vectors sum to link i's proximal joint position.
func (c *Chain) Ancestors(i int) []*Link {
	var out []*Link
	for l := c.Link(i).Parent; l != nil; l = l.Parent {
		out = append([]*Link{l}, out...)
	}
	return out
}
