package viz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/bipedlab/fivelink/internal/sim"
)

var plotColors = []struct{ r, g, b uint8 }{
	{31, 119, 180},
	{255, 127, 14},
	{44, 160, 44},
	{214, 39, 40},
	{148, 103, 189},
}

// SaveAnglesPNG plots the five absolute link angles against time.
func SaveAnglesPNG(path string, times []float64, states []sim.State) error {
	p := plot.New()
	p.Title.Text = "link angles"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "angle (rad)"
	p.Legend.Top = true

	names := []string{"stance tibia", "stance femur", "torso", "swing femur", "swing tibia"}
	for j := 0; j < 5; j++ {
		pts := make(plotter.XYs, len(states))
		for i := range states {
			pts[i].X = times[i]
			pts[i].Y = states[i][j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plot angles: %w", err)
		}
		c := plotColors[j%len(plotColors)]
		line.Color = rgb(c.r, c.g, c.b)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(names[j], line)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// SaveSeriesPNG plots one named series against time.
func SaveSeriesPNG(path, title, ylabel string, times, values []float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = ylabel

	pts := make(plotter.XYs, len(values))
	for i := range values {
		pts[i].X = times[i]
		pts[i].Y = values[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("plot %s: %w", title, err)
	}
	line.Color = rgb(31, 119, 180)
	line.Width = vg.Points(1.5)
	p.Add(line)

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
