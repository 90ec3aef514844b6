package walker

import (
	"context"

	"github.com/bipedlab/fivelink/internal/sim"
)

// StepEvent records one completed stride: the heel-strike time, the
// horizontal distance gained, and the mechanical energy right after
// the impact.
type StepEvent struct {
	Time   float64
	Length float64
	Energy float64
}

// WalkResult is the trace of a multi-stride walk. States stay in the
// current-stance frame, rooted at the active contact; Distance
// accumulates the step lengths across relabelings.
type WalkResult struct {
	States   []sim.State
	Controls []sim.Control
	Times    []float64
	Steps    []StepEvent
	Distance float64
	Fell     bool
}

// Walker alternates stance-phase integration with heel-strike impacts.
type Walker struct {
	sys   *System
	integ sim.Integrator
	ctrl  sim.Controller

	// Clearance arms touchdown detection: the swing foot must rise
	// above it before a ground crossing counts as a strike, so the
	// foot can scuff through the ground right after relabeling.
	Clearance float64

	// FallHeight declares a fall when the hip drops below it.
	FallHeight float64
}

func NewWalker(sys *System, integ sim.Integrator, ctrl sim.Controller) *Walker {
	p := sys.Params()
	return &Walker{
		sys:        sys,
		integ:      integ,
		ctrl:       ctrl,
		Clearance:  0.01,
		FallHeight: 0.5 * (p.L[0] + p.L[1]),
	}
}

// Walk runs until the requested number of strides, the configured
// duration, or a fall. Touchdown inside a timestep is located by
// linear interpolation of the swing-foot height before the impact is
// applied.
func (w *Walker) Walk(ctx context.Context, x0 sim.State, strides int, cfg sim.Config) (*WalkResult, error) {
	result := &WalkResult{}

	x := x0.Clone()
	t := 0.0
	armed := false
	prevFoot := w.sys.SwingFoot(x)

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for t < cfg.Duration && len(result.Steps) < strides {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		u := w.ctrl.Compute(x, t)
		next := w.integ.Step(w.sys, x, u, t, cfg.Dt)
		if !next.IsValid() {
			return result, &sim.StepError{Step: len(result.Times), Time: t, Wrapped: sim.ErrInvalidState}
		}

		foot := w.sys.SwingFoot(next)
		if !armed && foot.Y > w.Clearance {
			armed = true
		}

		if armed && foot.Y <= 0 && prevFoot.Y > 0 {
			// Back the state up to the crossing, then strike.
			alpha := prevFoot.Y / (prevFoot.Y - foot.Y)
			xc := interpolate(x, next, alpha)
			tc := t + alpha*cfg.Dt

			length := w.sys.SwingFoot(xc).X

			post, err := w.sys.Impact(xc)
			if err != nil {
				return result, err
			}

			result.Steps = append(result.Steps, StepEvent{
				Time:   tc,
				Length: length,
				Energy: w.sys.Energy(post),
			})
			result.Distance += length

			x = post
			t = tc
			armed = false
			prevFoot = w.sys.SwingFoot(x)

			result.Controls = append(result.Controls, u)
			result.States = append(result.States, x.Clone())
			result.Times = append(result.Times, t)
			continue
		}

		x = next
		t += cfg.Dt
		prevFoot = foot

		result.Controls = append(result.Controls, u)
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)

		if w.sys.Hip(x).Y < w.FallHeight {
			result.Fell = true
			return result, nil
		}
	}

	return result, nil
}

func interpolate(a, b sim.State, alpha float64) sim.State {
	out := make(sim.State, len(a))
	for i := range a {
		out[i] = a[i] + alpha*(b[i]-a[i])
	}
	return out
}
