// Package control provides feedback controllers for the walker.
//
// Controllers implement the [sim.Controller] interface:
//
//   - [JointPD]: posture tracking with joint-space PD torques
//   - [StateFeedback]: static full-state feedback about a reference
//   - [None]: zero torque (passive dynamics)
package control
