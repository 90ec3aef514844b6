// Package sym implements the small symbolic-expression engine behind
// the dynamics derivation pipeline.
//
// Expressions are immutable trees built from constants, variables,
// arithmetic, and sin/cos. The package provides:
//
//   - [Diff]: partial derivatives via the chain rule
//   - [Dt]: total time derivatives along a variable-rate map
//   - [Linearize]: extraction of A·x = b from equations linear in x,
//     with linearity validation
//   - [Compile]: translation of a finished expression into a numeric
//     closure over an ordered parameter slice
//
// Constructors fold constants and elide additive/multiplicative
// identities, so an expression that is identically zero simplifies to
// the literal zero. Structural queries such as [IsZero] and the
// sparsity pattern of a linearized system rely on this.
package sym
