// Package viz renders walker trajectories: a braille pixel canvas and
// skeleton drawing for the live terminal view, asciigraph sparklines
// for the CLI, and gonum/plot PNG export for saved runs.
package viz
