// Package analysis characterizes walking gaits.
//
// The heel strike is a natural Poincare section for the walker: each
// post-impact state is one sample of the stride-to-stride return map,
// so limit-cycle convergence reads off as successive samples
// clustering.
package analysis
