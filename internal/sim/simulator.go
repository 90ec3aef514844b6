package sim

import (
	"context"
	"fmt"
	"math"
)

// Simulator advances a System under a Controller, collecting metrics
// and notifying observers along the way.
type Simulator struct {
	dyn        System
	integrator Integrator
	controller Controller
	metrics    []Metric
	observers  []Observer
}

func New(dyn System, integrator Integrator, controller Controller) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		controller: controller,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:   make([]State, 0, steps+1),
		Controls: make([]Control, 0, steps),
		Times:    make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for i := 0; t < cfg.Duration; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		u := s.controller.Compute(x, t)

		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, u, t)
		}

		var newX State
		var err error
		if cfg.Adaptive {
			newX, dt, err = s.adaptiveStep(x, u, t, dt, cfg)
			if err != nil {
				return result, &StepError{Step: i, Time: t, Wrapped: err}
			}
		} else {
			newX = s.integrator.Step(s.dyn, x, u, t, dt)
		}

		if cfg.ValidateState && !newX.IsValid() {
			return result, &StepError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}

		x = newX
		t += dt
		result.Steps++

		result.States = append(result.States, x.Clone())
		result.Controls = append(result.Controls, u)
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the system and hands every sample to callback;
// returning false stops the run. Used by the live views, which render
// as they go instead of accumulating a Result.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, Control, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		u := s.controller.Compute(x, t)
		if !callback(x, u, t) {
			return nil
		}

		x = s.integrator.Step(s.dyn, x, u, t, cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("at t=%.4f: %w", t, ErrInvalidState)
		}
	}

	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}

func (s *Simulator) adaptiveStep(x State, u Control, t, dt float64, cfg Config) (State, float64, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		newX, dtNext, err := adaptive.StepAdaptive(s.dyn, x, u, t, dt, cfg.Tolerance)
		if err != nil {
			return nil, dt, err
		}
		return newX, clampDt(dtNext, cfg), nil
	}

	// Step doubling for plain integrators: compare one full step with
	// two half steps.
	x1 := s.integrator.Step(s.dyn, x, u, t, dt)
	xHalf := s.integrator.Step(s.dyn, x, u, t, dt/2)
	x2 := s.integrator.Step(s.dyn, xHalf, u, t+dt/2, dt/2)

	errEst := x1.Sub(x2).Norm()
	if errEst > cfg.Tolerance {
		if dt/2 < cfg.MinDt {
			return nil, dt, ErrStepTooSmall
		}
		return s.adaptiveStep(x, u, t, dt/2, cfg)
	}

	if errEst < cfg.Tolerance/10 {
		dt = clampDt(dt*2, cfg)
	}
	return x2, dt, nil
}

func clampDt(dt float64, cfg Config) float64 {
	if cfg.MaxDt > 0 {
		dt = math.Min(dt, cfg.MaxDt)
	}
	if cfg.MinDt > 0 {
		dt = math.Max(dt, cfg.MinDt)
	}
	return dt
}
