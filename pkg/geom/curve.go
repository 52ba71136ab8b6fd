package geom

// Curve is a continuous sequence of points parameterized by u.
type Curve interface {
	// At returns the position of the curve at coordinate u.
	At(u float64) Point
}

// Line is a first-order curve: a + b*u.
type Line struct {
	A, B Point // 0th and 1st order coefficients
}

// At returns the position of the line at u.
func (l Line) At(u float64) Point {
	return l.A.Add(l.B.Scale(u))
}

// FitLine fits a line through two points so that it passes through p at
// u = 0 and through q at u = 1.
func FitLine(p, q Point) Line {
	return Line{A: p, B: q.Sub(p)}
}

// Quadratic is a second-order curve: a + b*u + c*u².
type Quadratic struct {
	A, B, C Point
}

// At returns the position of the quadratic at u.
func (q Quadratic) At(u float64) Point {
	return q.A.Add(q.B.Scale(u)).Add(q.C.Scale(u * u))
}

// FitQuadratic fits a quadratic through three points so that it passes
// through o, p, and q at u = -1, 0, and 1, respectively.
func FitQuadratic(o, p, q Point) Quadratic {
	return Quadratic{
		A: p,
		B: q.Sub(o).Div(2),
		C: q.Add(o).Div(2).Sub(p),
	}
}

// Cubic is a third-order curve: a + b*u + c*u² + d*u³.
type Cubic struct {
	A, B, C, D Point
}

// At returns the position of the cubic at u.
func (c Cubic) At(u float64) Point {
	return c.A.Add(c.B.Scale(u)).Add(c.C.Scale(u * u)).Add(c.D.Scale(u * u * u))
}

// FitCubic fits a cubic through four points so that it passes through
// o, p, q, and r at u = -1, 0, 1, and 2, respectively.
func FitCubic(o, p, q, r Point) Cubic {
	a := p
	c := o.Add(q).Div(2).Sub(a)
	d := r.Sub(q.Scale(2)).Add(a).Sub(c.Scale(2)).Div(6)
	b := q.Sub(o).Div(2).Sub(d)
	return Cubic{A: a, B: b, C: c, D: d}
}
