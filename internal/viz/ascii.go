package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/bipedlab/fivelink/internal/sim"
)

// Sparkline renders one series as an asciigraph plot.
func Sparkline(data []float64, caption string, height int) string {
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// AnglePlot renders one coordinate of a state trace.
func AnglePlot(states []sim.State, index int, caption string, height int) string {
	data := make([]float64, len(states))
	for i, x := range states {
		data[i] = x[index]
	}
	return Sparkline(data, caption, height)
}

// Downsample thins a series to at most max points, keeping endpoints.
func Downsample(data []float64, max int) []float64 {
	if len(data) <= max || max < 2 {
		return data
	}
	out := make([]float64, max)
	step := float64(len(data)-1) / float64(max-1)
	for i := range out {
		out[i] = data[int(float64(i)*step)]
	}
	return out
}
