package geom

import "slices"

// Spline is a curve defined by a sequence of knots and drawn piecewise.
// The integer part of u selects the piece and the fractional part the
// position within it. Values of u outside [0, Len()] are clamped.
type Spline interface {
	Curve
	// Len returns the number of pieces in the spline.
	Len() int
}

// clampPiece maps u onto a piece index and local coordinate for a spline
// with n pieces.
func clampPiece(u float64, n int) (int, float64) {
	var i int
	switch {
	case u < 0:
		i = 0
	case u >= float64(n):
		i = n - 1
	default:
		i = int(u)
	}
	return i, u - float64(i)
}

// Polyline is the simplest possible spline: straight lines between knots.
type Polyline struct {
	Knots []Point
}

// At returns the position of the polyline at u.
func (p Polyline) At(u float64) Point {
	i, v := clampPiece(u, p.Len())
	return FitLine(p.Knots[i], p.Knots[i+1]).At(v)
}

// Len returns the number of line segments.
func (p Polyline) Len() int { return len(p.Knots) - 1 }

// NaturalCubicSpline interpolates its knots with cubic pieces whose first
// and second derivatives are continuous, and whose second derivative
// vanishes at the endpoints. Pieces are computed once and cached; mutate
// Knots only through SetKnots.
type NaturalCubicSpline struct {
	knots  []Point
	pieces []Cubic
}

// NewNaturalCubicSpline creates a spline through the given knots.
// At least two knots are required for the spline to be usable.
func NewNaturalCubicSpline(knots []Point) *NaturalCubicSpline {
	s := &NaturalCubicSpline{}
	s.SetKnots(knots)
	return s
}

// SetKnots replaces the knot sequence and recomputes the cubic pieces.
func (s *NaturalCubicSpline) SetKnots(knots []Point) {
	s.knots = slices.Clone(knots)
	s.calculate()
}

// Knots returns a copy of the knot sequence.
func (s *NaturalCubicSpline) Knots() []Point { return slices.Clone(s.knots) }

// At returns the position of the spline at u.
func (s *NaturalCubicSpline) At(u float64) Point {
	i, v := clampPiece(u, s.Len())
	return s.pieces[i].At(v)
}

// Len returns the number of cubic pieces.
func (s *NaturalCubicSpline) Len() int { return len(s.knots) - 1 }

// calculate solves the tridiagonal system for the piece coefficients.
// This is the classic forward-elimination / back-substitution derivation.
func (s *NaturalCubicSpline) calculate() {
	p := s.knots
	if len(p) < 2 {
		s.pieces = nil
		return
	}
	g := gamma(len(p))
	e := epsilon(g, delta(p, g))

	s.pieces = make([]Cubic, 0, len(p)-1)
	for i := 0; i < len(p)-1; i++ {
		a := p[i]
		b := e[i]
		c := p[i+1].Sub(p[i]).Scale(3).Sub(e[i].Scale(2).Add(e[i+1]))
		d := p[i].Sub(p[i+1]).Scale(2).Add(e[i]).Add(e[i+1])
		s.pieces = append(s.pieces, Cubic{A: a, B: b, C: c, D: d})
	}
}

func gamma(n int) []float64 {
	g := make([]float64, 0, n)
	g = append(g, 0.5)
	for i := 1; i < n-1; i++ {
		g = append(g, 1/(4-g[i-1]))
	}
	return append(g, 1/(2-g[len(g)-1]))
}

func delta(p []Point, g []float64) []Point {
	d := make([]Point, 0, len(p))
	d = append(d, p[1].Sub(p[0]).Scale(g[0]*3))
	for i := 1; i < len(p)-1; i++ {
		d = append(d, p[i+1].Sub(p[i-1]).Scale(3).Sub(d[i-1]).Scale(g[i]))
	}
	last := p[len(p)-1].Sub(p[len(p)-2]).Scale(3).Sub(d[len(d)-1]).Scale(g[len(g)-1])
	return append(d, last)
}

// epsilon performs backward substitution to solve for the tangent vectors.
func epsilon(g []float64, d []Point) []Point {
	e := make([]Point, len(d))
	e[len(d)-1] = d[len(d)-1]
	for i := len(d) - 2; i >= 0; i-- {
		e[i] = d[i].Sub(e[i+1].Scale(g[i]))
	}
	return e
}

// Sample walks a spline from u = 0 to u = Len() in increments of step and
// returns the visited points. The final knot is always included.
func Sample(s Spline, step float64) []Point {
	if s.Len() < 1 || step <= 0 {
		return nil
	}
	lim := float64(s.Len())
	var pts []Point
	for u := 0.0; u < lim; u += step {
		pts = append(pts, s.At(u))
	}
	return append(pts, s.At(lim))
}
