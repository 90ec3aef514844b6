package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bipedlab/fivelink/internal/config"
	"github.com/bipedlab/fivelink/internal/control"
	"github.com/bipedlab/fivelink/internal/dynamics"
	"github.com/bipedlab/fivelink/internal/integrators"
	"github.com/bipedlab/fivelink/internal/kinematics"
	"github.com/bipedlab/fivelink/internal/sim"
	"github.com/bipedlab/fivelink/internal/viz"
	"github.com/bipedlab/fivelink/internal/walker"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	duration   float64
	strides    int
	integrator string
	controller string
	save       bool
	pngOut     string
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fivelink",
		Short: "five-link biped walker: derivation, simulation, gait",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fivelink", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "preset configuration")

	deriveCmd := &cobra.Command{
		Use:   "derive",
		Short: "run the derivation pipeline and report its artifacts",
		RunE:  runDerive,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "integrate a single-support phase",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	simulateCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	simulateCmd.Flags().StringVar(&integrator, "integrator", "", "integrator override")
	simulateCmd.Flags().StringVar(&controller, "controller", "", "controller override")
	simulateCmd.Flags().BoolVar(&save, "save", false, "persist the run")

	walkCmd := &cobra.Command{
		Use:   "walk",
		Short: "walk with heel-strike resets",
		RunE:  runWalk,
	}
	walkCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	walkCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	walkCmd.Flags().IntVar(&strides, "strides", 0, "stride count override")
	walkCmd.Flags().StringVar(&integrator, "integrator", "", "integrator override")
	walkCmd.Flags().StringVar(&controller, "controller", "", "controller override")
	walkCmd.Flags().BoolVar(&save, "save", false, "persist the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  runList,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().StringVar(&pngOut, "png", "", "write a PNG instead of an ascii plot")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the walker in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	rootCmd.AddCommand(deriveCmd, simulateCmd, walkCmd, listCmd, plotCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.BadStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	case preset != "":
		p, ok := config.Presets[preset]
		if !ok {
			names := make([]string, 0, len(config.Presets))
			for name := range config.Presets {
				names = append(names, name)
			}
			return nil, fmt.Errorf("unknown preset %q (have: %s)", preset, strings.Join(names, ", "))
		}
		cfg = p
	default:
		cfg = config.DefaultConfig()
	}

	if dt > 0 {
		cfg.Sim.Dt = dt
	}
	if duration > 0 {
		cfg.Sim.Duration = duration
	}
	if strides > 0 {
		cfg.Sim.Strides = strides
	}
	if integrator != "" {
		cfg.Sim.Integrator = integrator
	}
	if controller != "" {
		cfg.Sim.Controller = controller
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildSystem(cfg *config.Config) (*walker.System, error) {
	ev, err := dynamics.Generate(kinematics.NewGeometry(kinematics.NewBiped()))
	if err != nil {
		return nil, fmt.Errorf("derivation: %w", err)
	}
	return walker.NewSystem(ev, cfg.Params()), nil
}

func buildIntegrator(name string) (sim.Integrator, error) {
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	case "rk45":
		return integrators.NewRK45(), nil
	case "verlet":
		return integrators.NewVerlet(), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q", name)
	}
}

func buildController(cfg *config.Config) (sim.Controller, error) {
	switch cfg.Sim.Controller {
	case "none":
		return control.NewNone(5), nil
	case "pd":
		c := cfg.Controller
		if len(c.Kp) != 5 || len(c.Kd) != 5 || len(c.Target) != 5 {
			return nil, fmt.Errorf("pd controller needs 5 kp, kd and target values")
		}
		return control.NewJointPD(c.Kp, c.Kd, c.Target), nil
	default:
		return nil, fmt.Errorf("unknown controller %q", cfg.Sim.Controller)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
