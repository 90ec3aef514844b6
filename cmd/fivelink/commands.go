package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bipedlab/fivelink/internal/analysis"
	"github.com/bipedlab/fivelink/internal/config"
	"github.com/bipedlab/fivelink/internal/dynamics"
	"github.com/bipedlab/fivelink/internal/kinematics"
	"github.com/bipedlab/fivelink/internal/metrics"
	"github.com/bipedlab/fivelink/internal/sim"
	"github.com/bipedlab/fivelink/internal/storage"
	"github.com/bipedlab/fivelink/internal/tui"
	"github.com/bipedlab/fivelink/internal/viz"
	"github.com/bipedlab/fivelink/internal/walker"
)

func runDerive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	geom := kinematics.NewGeometry(kinematics.NewBiped())
	ev, err := dynamics.Generate(geom)
	if err != nil {
		return err
	}
	p := cfg.Params()

	fmt.Println(viz.TitleStyle.Render("derivation artifacts"))

	nonzero := make(map[int]bool, len(ev.MassIndex))
	for _, idx := range ev.MassIndex {
		nonzero[idx] = true
	}
	fmt.Println("mass matrix sparsity (5x5):")
	for r := 0; r < 5; r++ {
		row := "  "
		for c := 0; c < 5; c++ {
			if nonzero[r*5+c] {
				row += "* "
			} else {
				row += ". "
			}
		}
		fmt.Println(row)
	}
	fmt.Printf("nonzero entries: %d of 25\n\n", len(ev.MassIndex))

	var q, dq, ddq [5]float64
	fx, fy := ev.Contact(q, dq, ddq, p)
	var weight float64
	for _, m := range p.M {
		weight += m * p.G
	}
	fmt.Printf("static contact force: fx=%.4f N, fy=%.4f N (weight %.4f N)\n", fx, fy, weight)

	ke, pe := ev.Energy(q, dq, p)
	fmt.Printf("upright energy: ke=%.4f J, pe=%.4f J\n", ke, pe)

	joints, _ := ev.Points(q, p)
	fmt.Printf("upright hip height: %.4f m, torso tip: %.4f m\n", joints[1].Y, joints[2].Y)
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}
	integ, err := buildIntegrator(cfg.Sim.Integrator)
	if err != nil {
		return err
	}
	ctrl, err := buildController(cfg)
	if err != nil {
		return err
	}

	simulator := sim.New(sys, integ, ctrl)
	simulator.AddMetric(metrics.NewEnergyDrift(sys))
	simulator.AddMetric(metrics.NewControlEffort())
	simulator.AddMetric(metrics.NewStability(25))

	ctx, cancel := signalContext()
	defer cancel()

	simCfg := sim.Config{
		Dt:            cfg.Sim.Dt,
		Duration:      cfg.Sim.Duration,
		Seed:          cfg.Sim.Seed,
		ValidateState: true,
	}
	result, err := simulator.Run(ctx, cfg.State(), simCfg)
	if err != nil {
		return err
	}

	fmt.Println(viz.TitleStyle.Render("single-support run"))
	fmt.Printf("steps: %d, final t: %.3f s\n", result.Steps, result.Times[len(result.Times)-1])
	for name, value := range result.Metrics {
		fmt.Printf("%s: %.6g\n", name, value)
	}

	fmt.Println()
	fmt.Println(viz.AnglePlot(downsampleStates(result.States), 0, "stance tibia angle (rad)", 8))

	if save {
		return saveRun(cfg, "simulate", result.States, result.Controls, result.Times, result.Metrics, nil)
	}
	return nil
}

func runWalk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Symmetric() {
		return fmt.Errorf("walking requires symmetric legs: heel-strike relabeling assumes them")
	}

	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}
	integ, err := buildIntegrator(cfg.Sim.Integrator)
	if err != nil {
		return err
	}
	ctrl, err := buildController(cfg)
	if err != nil {
		return err
	}

	w := walker.NewWalker(sys, integ, ctrl)

	ctx, cancel := signalContext()
	defer cancel()

	result, err := w.Walk(ctx, cfg.State(), cfg.Sim.Strides, sim.Config{
		Dt:       cfg.Sim.Dt,
		Duration: cfg.Sim.Duration,
	})
	if err != nil {
		return err
	}

	fmt.Println(viz.TitleStyle.Render("walk"))
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "stride\ttime (s)\tlength (m)\tenergy (J)")
	for i, step := range result.Steps {
		fmt.Fprintf(tw, "%d\t%.3f\t%.4f\t%.3f\n", i+1, step.Time, step.Length, step.Energy)
	}
	tw.Flush()

	status := viz.GoodStyle.Render(fmt.Sprintf("walked %.3f m in %d strides", result.Distance, len(result.Steps)))
	if result.Fell {
		status = viz.BadStyle.Render("fell")
	}
	fmt.Println(status)

	stats := analysis.Analyze(result)
	if stats.Strides > 0 {
		fmt.Printf("mean stride: %.4f m, period: %.3f s, speed: %.3f m/s\n",
			stats.MeanLength, stats.MeanPeriod, stats.Speed)
	}
	if len(stats.ReturnDrifts) > 0 {
		last := stats.ReturnDrifts[len(stats.ReturnDrifts)-1]
		fmt.Printf("return-map drift: %.6f", last)
		if stats.Converged(1e-3) {
			fmt.Print(viz.GoodStyle.Render("  (limit cycle)"))
		}
		fmt.Println()
	}

	if save {
		walkMeta := &storage.RunMetadata{
			Strides:  len(result.Steps),
			Distance: result.Distance,
			Fell:     result.Fell,
		}
		return saveRun(cfg, "walk", result.States, result.Controls, result.Times, nil, walkMeta)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println(viz.SubtleStyle.Render("no saved runs"))
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tmode\tintegrator\tcontroller\tdt\tduration")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.4g\t%.4g\n",
			run.ID, run.Mode, run.Integrator, run.Controller, run.Dt, run.Duration)
	}
	return tw.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	states, times, err := store.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("run %s has no states", args[0])
	}

	if pngOut != "" {
		if err := viz.SaveAnglesPNG(pngOut, times, states); err != nil {
			return err
		}
		fmt.Println(viz.GoodStyle.Render("wrote " + pngOut))
		return nil
	}

	names := []string{"stance tibia", "stance femur", "torso", "swing femur", "swing tibia"}
	ds := downsampleStates(states)
	for i, name := range names {
		fmt.Println(viz.AnglePlot(ds, i, name+" angle (rad)", 6))
		fmt.Println()
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}
	integ, err := buildIntegrator(cfg.Sim.Integrator)
	if err != nil {
		return err
	}
	ctrl, err := buildController(cfg)
	if err != nil {
		return err
	}

	model := tui.NewModel(sys, integ, ctrl, cfg.State(), cfg.Sim.Dt, frameRate)
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func saveRun(cfg *config.Config, mode string, states []sim.State, controls []sim.Control, times []float64, runMetrics map[string]float64, walkMeta *storage.RunMetadata) error {
	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}

	meta := storage.RunMetadata{
		Mode:       mode,
		Seed:       cfg.Sim.Seed,
		Dt:         cfg.Sim.Dt,
		Duration:   cfg.Sim.Duration,
		Integrator: cfg.Sim.Integrator,
		Controller: cfg.Sim.Controller,
		Metrics:    runMetrics,
	}
	if walkMeta != nil {
		meta.Strides = walkMeta.Strides
		meta.Distance = walkMeta.Distance
		meta.Fell = walkMeta.Fell
	}

	id, err := store.Save(meta, states, controls, times)
	if err != nil {
		return err
	}
	fmt.Println(viz.GoodStyle.Render("saved run " + id))
	return nil
}

// downsampleStates thins a trace for terminal plots.
func downsampleStates(states []sim.State) []sim.State {
	const maxPoints = 120
	if len(states) <= maxPoints {
		return states
	}
	out := make([]sim.State, maxPoints)
	step := float64(len(states)-1) / float64(maxPoints-1)
	for i := range out {
		out[i] = states[int(float64(i)*step)]
	}
	return out
}
