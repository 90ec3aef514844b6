// Package tui animates the walker in the terminal with bubbletea.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bipedlab/fivelink/internal/sim"
	"github.com/bipedlab/fivelink/internal/viz"
	"github.com/bipedlab/fivelink/internal/walker"
)

const (
	canvasWidth  = 60
	canvasHeight = 18
	historyLen   = 240
)

type tickMsg time.Time

// Model steps the walker between frames and renders the skeleton with
// live stats. Space pauses, r resets, q quits.
type Model struct {
	sys   *walker.System
	integ sim.Integrator
	ctrl  sim.Controller

	x0, x sim.State
	t     float64
	dt    float64

	canvas   *viz.Canvas
	skeleton *viz.Skeleton

	running bool
	strides int
	armed   bool
	prevY   float64
	energy  []float64

	frameRate int
	substeps  int
}

func NewModel(sys *walker.System, integ sim.Integrator, ctrl sim.Controller, x0 sim.State, dt float64, frameRate int) Model {
	canvas := viz.NewCanvas(canvasWidth, canvasHeight)
	substeps := int(1.0/float64(frameRate)/dt + 0.5)
	if substeps < 1 {
		substeps = 1
	}
	return Model{
		sys:       sys,
		integ:     integ,
		ctrl:      ctrl,
		x0:        x0.Clone(),
		x:         x0.Clone(),
		dt:        dt,
		canvas:    canvas,
		skeleton:  viz.NewSkeleton(canvas, 1.2),
		running:   true,
		prevY:     sys.SwingFoot(x0).Y,
		frameRate: frameRate,
		substeps:  substeps,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.x = m.x0.Clone()
			m.t = 0
			m.strides = 0
			m.armed = false
			m.energy = nil
			m.prevY = m.sys.SwingFoot(m.x).Y
		}
		return m, nil

	case tickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// advance integrates one frame's worth of substeps, applying heel
// strikes as the swing foot crosses the ground.
func (m *Model) advance() {
	for i := 0; i < m.substeps; i++ {
		u := m.ctrl.Compute(m.x, m.t)
		next := m.integ.Step(m.sys, m.x, u, m.t, m.dt)
		if !next.IsValid() {
			m.running = false
			return
		}

		foot := m.sys.SwingFoot(next)
		if !m.armed && foot.Y > 0.01 {
			m.armed = true
		}
		if m.armed && foot.Y <= 0 && m.prevY > 0 {
			post, err := m.sys.Impact(next)
			if err != nil {
				m.running = false
				return
			}
			next = post
			m.strides++
			m.armed = false
			foot = m.sys.SwingFoot(next)
		}

		m.x = next
		m.t += m.dt
		m.prevY = foot.Y
	}

	m.energy = append(m.energy, m.sys.Energy(m.x))
	if len(m.energy) > historyLen {
		m.energy = m.energy[1:]
	}
}

func (m Model) View() string {
	m.canvas.Clear()
	m.skeleton.Draw(m.sys.Pose(m.x))

	status := viz.GoodStyle.Render("running")
	if !m.running {
		status = viz.BadStyle.Render("paused")
	}

	stats := strings.Join([]string{
		fmt.Sprintf("%s%s", viz.LabelStyle.Render("time"), viz.ValueStyle.Render(fmt.Sprintf("%7.2f s", m.t))),
		fmt.Sprintf("%s%s", viz.LabelStyle.Render("strides"), viz.ValueStyle.Render(fmt.Sprintf("%d", m.strides))),
		fmt.Sprintf("%s%s", viz.LabelStyle.Render("energy"), viz.ValueStyle.Render(fmt.Sprintf("%7.2f J", m.sys.Energy(m.x)))),
		fmt.Sprintf("%s%s", viz.LabelStyle.Render("status"), status),
	}, "\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.canvas.String(),
		viz.PanelStyle.Render(stats),
	)

	graph := ""
	if len(m.energy) > 2 {
		graph = viz.GraphStyle.Render(viz.Sparkline(viz.Downsample(m.energy, 50), "energy", 5))
	}

	return viz.TitleStyle.Render("fivelink walker") + "\n" +
		body + "\n" + graph + "\n" +
		viz.SubtleStyle.Render("space pause · r reset · q quit")
}
