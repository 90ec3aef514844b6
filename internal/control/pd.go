package control

import "github.com/bipedlab/fivelink/internal/sim"

// JointPD tracks a reference posture with PD action on each absolute
// angle. The PD law yields a generalized force per coordinate; joint
// torques follow by back-substitution, since coordinate k carries the
// torque pair u_k - u_{k+1}.
type JointPD struct {
	Kp, Kd []float64
	Target []float64
}

func NewJointPD(kp, kd, target []float64) *JointPD {
	return &JointPD{Kp: kp, Kd: kd, Target: target}
}

func (c *JointPD) Compute(x sim.State, t float64) sim.Control {
	n := len(c.Target)
	if len(x) < 2*n {
		return make(sim.Control, n)
	}

	tau := make([]float64, n)
	for i := 0; i < n; i++ {
		tau[i] = c.Kp[i]*(c.Target[i]-x[i]) - c.Kd[i]*x[n+i]
	}

	u := make(sim.Control, n)
	u[n-1] = tau[n-1]
	for i := n - 2; i >= 0; i-- {
		u[i] = tau[i] + u[i+1]
	}
	return u
}

// SetTarget swaps the reference posture, for live retargeting between
// strides.
func (c *JointPD) SetTarget(target []float64) {
	copy(c.Target, target)
}
