// Package geom provides the 2D primitives used by the drawing pipeline:
// points, parametric curves, and splines.
//
// Curves are parametric: a Curve maps a coordinate u to a Point. Low-order
// polynomial curves (Line, Quadratic, Cubic) can be fitted through 2-4
// points. Splines chain curve pieces through a sequence of knots; the
// integer part of u selects the piece and the fractional part the position
// within it.
//
// # Usage
//
// Fit a natural cubic spline through knots and sample it:
//
//	s := geom.NewNaturalCubicSpline([]geom.Point{{0, 0}, {0, 1}, {1, 0}})
//	pts := geom.Sample(s, 0.1)
//
// Only Point knows the dimensionality of the space; everything else is
// expressed in terms of its vector operations.
package geom
