package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestPointOps(t *testing.T) {
	p := Point{3, 4}
	q := Point{1, -2}

	if got := p.Add(q); got != (Point{4, 2}) {
		t.Errorf("Add = %v", got)
	}
	if got := p.Sub(q); got != (Point{2, 6}) {
		t.Errorf("Sub = %v", got)
	}
	if got := p.Scale(2); got != (Point{6, 8}) {
		t.Errorf("Scale = %v", got)
	}
	if got := p.Dot(q); got != 3-8 {
		t.Errorf("Dot = %g", got)
	}
	if got := p.Norm(); got != 5 {
		t.Errorf("Norm = %g", got)
	}
	if got := p.Dist(Point{0, 0}); got != 5 {
		t.Errorf("Dist = %g", got)
	}
}

func TestFitLine(t *testing.T) {
	p, q := Point{1, 1}, Point{3, 5}
	l := FitLine(p, q)

	if !approx(l.At(0), p) {
		t.Errorf("At(0) = %v, want %v", l.At(0), p)
	}
	if !approx(l.At(1), q) {
		t.Errorf("At(1) = %v, want %v", l.At(1), q)
	}
	if !approx(l.At(0.5), Point{2, 3}) {
		t.Errorf("At(0.5) = %v", l.At(0.5))
	}
}

func TestFitQuadratic(t *testing.T) {
	o, p, q := Point{-1, 1}, Point{0, 0}, Point{1, 1}
	c := FitQuadratic(o, p, q)

	// Passes through the fit points at u = -1, 0, 1.
	if !approx(c.At(-1), o) || !approx(c.At(0), p) || !approx(c.At(1), q) {
		t.Errorf("quadratic does not interpolate: %v %v %v", c.At(-1), c.At(0), c.At(1))
	}
}

func TestFitCubic(t *testing.T) {
	pts := []Point{{-1, 2}, {0, 0}, {1, 1}, {2, -3}}
	c := FitCubic(pts[0], pts[1], pts[2], pts[3])

	for i, u := range []float64{-1, 0, 1, 2} {
		if !approx(c.At(u), pts[i]) {
			t.Errorf("At(%g) = %v, want %v", u, c.At(u), pts[i])
		}
	}
}

func TestPolyline(t *testing.T) {
	p := Polyline{Knots: []Point{{0, 0}, {1, 0}, {1, 1}}}

	if p.Len() != 2 {
		t.Fatalf("Len = %d, want 2", p.Len())
	}
	if !approx(p.At(0.5), Point{0.5, 0}) {
		t.Errorf("At(0.5) = %v", p.At(0.5))
	}
	if !approx(p.At(1.5), Point{1, 0.5}) {
		t.Errorf("At(1.5) = %v", p.At(1.5))
	}
	// Out-of-range u extrapolates along the clamped piece.
	if !approx(p.At(-1), Point{-1, 0}) {
		t.Errorf("At(-1) = %v", p.At(-1))
	}
	if !approx(p.At(3), Point{1, 2}) {
		t.Errorf("At(3) = %v", p.At(3))
	}
}

func TestNaturalCubicSplineInterpolates(t *testing.T) {
	knots := []Point{{0, 0}, {0, 1}, {1, 0}, {0, -2}, {-3, 0}} // a spiral
	s := NewNaturalCubicSpline(knots)

	if s.Len() != len(knots)-1 {
		t.Fatalf("Len = %d, want %d", s.Len(), len(knots)-1)
	}
	for i, k := range knots {
		if got := s.At(float64(i)); !approx(got, k) {
			t.Errorf("At(%d) = %v, want knot %v", i, got, k)
		}
	}
}

func TestNaturalCubicSplineContinuity(t *testing.T) {
	s := NewNaturalCubicSpline([]Point{{0, 0}, {2, 3}, {5, 1}, {6, 6}})

	// Position and first derivative are continuous across piece boundaries.
	const h = 1e-6
	for i := 1; i < s.Len(); i++ {
		u := float64(i)
		left := s.At(u - h)
		right := s.At(u + h)
		if left.Dist(right) > 1e-4 {
			t.Errorf("discontinuity at u=%g: %v vs %v", u, left, right)
		}

		dLeft := s.At(u - h).Sub(s.At(u - 2*h)).Div(h)
		dRight := s.At(u + 2*h).Sub(s.At(u + h)).Div(h)
		if dLeft.Dist(dRight) > 1e-2 {
			t.Errorf("tangent discontinuity at u=%g: %v vs %v", u, dLeft, dRight)
		}
	}
}

func TestSetKnotsRecalculates(t *testing.T) {
	s := NewNaturalCubicSpline([]Point{{0, 0}, {1, 1}})
	first := s.At(0.5)

	s.SetKnots([]Point{{0, 0}, {2, 2}})
	second := s.At(0.5)

	if approx(first, second) {
		t.Error("SetKnots should change interpolation")
	}
	if !approx(second, Point{1, 1}) {
		t.Errorf("two-knot spline should be linear: At(0.5) = %v", second)
	}
}

func TestSample(t *testing.T) {
	p := Polyline{Knots: []Point{{0, 0}, {1, 0}}}
	pts := Sample(p, 0.25)

	if len(pts) != 5 {
		t.Fatalf("Sample returned %d points, want 5", len(pts))
	}
	if !approx(pts[0], Point{0, 0}) || !approx(pts[len(pts)-1], Point{1, 0}) {
		t.Errorf("Sample endpoints = %v, %v", pts[0], pts[len(pts)-1])
	}

	if Sample(p, 0) != nil {
		t.Error("Sample with zero step should return nil")
	}
}
