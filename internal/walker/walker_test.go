package walker_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bipedlab/fivelink/internal/control"
	"github.com/bipedlab/fivelink/internal/dynamics"
	"github.com/bipedlab/fivelink/internal/integrators"
	"github.com/bipedlab/fivelink/internal/kinematics"
	"github.com/bipedlab/fivelink/internal/sim"
	"github.com/bipedlab/fivelink/internal/walker"
)

var (
	ev     *dynamics.Evaluators
	params dynamics.Params
)

var _ = BeforeSuite(func() {
	var err error
	ev, err = dynamics.Generate(kinematics.NewGeometry(kinematics.NewBiped()))
	Expect(err).NotTo(HaveOccurred())

	// Symmetric legs, so relabeling across a heel strike maps the
	// robot onto itself.
	params = dynamics.Params{
		M: [5]float64{3.2, 6.8, 20.0, 6.8, 3.2},
		I: [5]float64{0.93, 1.08, 2.22, 1.08, 0.93},
		L: [5]float64{0.4, 0.4, 0.625, 0.4, 0.4},
		C: [5]float64{0.128, 0.163, 0.2, 0.163, 0.128},
		G: 9.81,
	}
})

func kinetic(s *walker.System, x sim.State) float64 {
	rest := x.Clone()
	for i := 5; i < 10; i++ {
		rest[i] = 0
	}
	return s.Energy(x) - s.Energy(rest)
}

var _ = Describe("System", func() {
	var sys *walker.System

	BeforeEach(func() {
		sys = walker.NewSystem(ev, params)
	})

	It("reports walker dimensions", func() {
		Expect(sys.StateDim()).To(Equal(10))
		Expect(sys.ControlDim()).To(Equal(5))
	})

	It("propagates rates into the angle derivatives", func() {
		x := sim.State{0.3, -0.2, 0.1, 0.25, -0.35, 1.0, -0.5, 0.2, -0.8, 0.6}
		dx := sys.Derive(x, make(sim.Control, 5), 0)

		for i := 0; i < 5; i++ {
			Expect(dx[i]).To(BeNumerically("~", x[5+i], 1e-12))
		}
	})

	It("rests at the upright equilibrium", func() {
		dx := sys.Derive(make(sim.State, 10), make(sim.Control, 5), 0)
		for i, v := range dx {
			Expect(v).To(BeNumerically("~", 0, 1e-10), "component %d", i)
		}
	})

	It("loads the contact with the robot's weight at rest", func() {
		fx, fy := sys.Contact(make(sim.State, 10), make(sim.Control, 5))

		var weight float64
		for _, m := range params.M {
			weight += m * params.G
		}
		Expect(fx).To(BeNumerically("~", 0, 1e-9))
		Expect(fy).To(BeNumerically("~", weight, 1e-8))
	})

	It("conserves energy under passive motion", func() {
		integ := integrators.NewRK4()
		x := sim.State{0.1, -0.05, 0.02, 0.1, -0.15, 0, 0, 0, 0, 0}
		e0 := sys.Energy(x)

		dt := 1e-3
		for i := 0; i < 200; i++ {
			x = integ.Step(sys, x, make(sim.Control, 5), float64(i)*dt, dt)
		}

		Expect(sys.Energy(x)).To(BeNumerically("~", e0, 1e-6*math.Abs(e0)))
	})
})

var _ = Describe("Impact", func() {
	var sys *walker.System

	BeforeEach(func() {
		sys = walker.NewSystem(ev, params)
	})

	It("reverses the coordinate vector", func() {
		x := sim.State{0.3, -0.2, 0.1, 0.25, -0.35, 1.0, -0.5, 0.2, -0.8, 0.6}
		post, err := sys.Impact(x)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 5; i++ {
			Expect(post[i]).To(Equal(x[4-i]))
		}
	})

	It("does not increase kinetic energy", func() {
		x := sim.State{0.3, -0.2, 0.1, 0.25, -0.35, 1.0, -0.5, 0.2, -0.8, 0.6}
		post, err := sys.Impact(x)
		Expect(err).NotTo(HaveOccurred())

		kePre := kinetic(sys, x)
		kePost := kinetic(sys, post)
		Expect(kePost).To(BeNumerically("<=", kePre+1e-9))
	})

	It("preserves angular momentum about the new contact", func() {
		x := sim.State{0.3, -0.2, 0.1, 0.25, -0.35, 1.0, -0.5, 0.2, -0.8, 0.6}
		post, err := sys.Impact(x)
		Expect(err).NotTo(HaveOccurred())

		var q, dq, qPost, dqPost [5]float64
		copy(q[:], x[:5])
		copy(dq[:], x[5:])
		copy(qPost[:], post[:5])
		copy(dqPost[:], post[5:])

		// Pre-impact momentum about the landing foot, in the old
		// frame.
		joints, comsPre := ev.Points(q, params)
		velPre := ev.ComVel(q, dq, params)
		foot := joints[4]

		var pre float64
		for i := 0; i < 5; i++ {
			rx, ry := comsPre[i].X-foot.X, comsPre[i].Y-foot.Y
			pre += params.M[i]*(rx*velPre[i].Y-ry*velPre[i].X) + params.I[i]*dq[i]
		}

		// Post-impact momentum about the new origin, in the new frame.
		_, comsPost := ev.Points(qPost, params)
		velPost := ev.ComVel(qPost, dqPost, params)

		var after float64
		for i := 0; i < 5; i++ {
			after += params.M[i]*(comsPost[i].X*velPost[i].Y-comsPost[i].Y*velPost[i].X) + params.I[i]*dqPost[i]
		}

		Expect(after).To(BeNumerically("~", pre, 1e-8))
	})
})

var _ = Describe("Walker", func() {
	It("takes a stride when the swing foot comes down", func() {
		sys := walker.NewSystem(ev, params)
		w := walker.NewWalker(sys, integrators.NewRK4(), control.NewNone(5))

		// Swing foot starts above clearance and descending fast, so a
		// touchdown comes within a fraction of a second.
		x0 := sim.State{0.2, 0.2, 0, 0.2, 0.6, 0, 0, 0, 0, -3.0}

		res, err := w.Walk(context.Background(), x0, 1, sim.Config{Dt: 1e-3, Duration: 2.0})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Fell).To(BeFalse())
		Expect(res.Steps).To(HaveLen(1))

		// The impact relabels, so the recorded post-step state starts
		// from the former swing tibia's angle.
		Expect(res.Steps[0].Time).To(BeNumerically(">", 0))
		last := res.States[len(res.States)-1]
		Expect(last.IsValid()).To(BeTrue())
	})
})
