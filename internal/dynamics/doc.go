// Package dynamics derives the five-link biped's equations of motion
// and emits them as numeric evaluators.
//
// The derivation runs once per model, in a fixed order: assemble the
// angular-momentum-balance equations over the kinematic tree, extract
// the sparse mass-matrix form of the single-support dynamics, derive
// the contact-force solution, the energy expressions, and the
// heel-strike collision map, then compile everything into closures
// with fixed parameter orders (see [Generate]).
//
// All symbolic artifacts are immutable once built. Every failure mode
// is a construction-time model error: nonlinearity where linearity is
// required, a structurally singular system, or an unresolved symbol at
// compile time. The emitted evaluators themselves are pure numeric
// functions.
package dynamics
