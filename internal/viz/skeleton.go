package viz

import "github.com/bipedlab/fivelink/internal/dynamics"

// Skeleton maps walker poses into canvas subpixels. World x spans
// [-Span, Span] meters around the stance contact; the ground line sits
// near the bottom edge.
type Skeleton struct {
	canvas *Canvas
	Span   float64
}

func NewSkeleton(c *Canvas, span float64) *Skeleton {
	return &Skeleton{canvas: c, Span: span}
}

func (s *Skeleton) project(p dynamics.Point) (int, int) {
	w := float64(s.canvas.Width * 2)
	h := float64(s.canvas.Height * 4)

	x := (p.X + s.Span) / (2 * s.Span) * (w - 1)
	// Leave a margin below the ground line.
	y := (h - 5) - p.Y/(2*s.Span)*(w-1)
	return int(x), int(y)
}

// Draw renders the ground and the five links. Poses come contact
// first: P0, P1, P2, P3, P4, P5; the torso hangs off the hip (P2), the
// swing leg continues P2 -> P4 -> P5.
func (s *Skeleton) Draw(pose [6]dynamics.Point) {
	gx0, gy := s.project(dynamics.Point{X: -s.Span, Y: 0})
	gx1, _ := s.project(dynamics.Point{X: s.Span, Y: 0})
	s.canvas.Line(gx0, gy, gx1, gy)

	segments := [][2]int{
		{0, 1}, // stance tibia
		{1, 2}, // stance femur
		{2, 3}, // torso
		{2, 4}, // swing femur
		{4, 5}, // swing tibia
	}
	for _, seg := range segments {
		x0, y0 := s.project(pose[seg[0]])
		x1, y1 := s.project(pose[seg[1]])
		s.canvas.Line(x0, y0, x1, y1)
	}

	// Mark the torso tip so orientation reads at a glance.
	hx, hy := s.project(pose[3])
	s.canvas.Set(hx, hy-1)
	s.canvas.Set(hx+1, hy-1)
}
