package trace

import (
	"math"

	"github.com/inkplot/inkplot/pkg/geom"
)

// Simplify reduces a polyline with the Ramer-Douglas-Peucker algorithm.
// Points farther than epsilon from the chord between kept neighbors
// survive. Epsilon <= 0 returns the input unchanged.
func Simplify(points []geom.Point, epsilon float64) []geom.Point {
	if epsilon <= 0 || len(points) < 3 {
		return points
	}
	keep := make([]bool, len(points))
	keep[0], keep[len(points)-1] = true, true
	rdp(points, 0, len(points)-1, epsilon, keep)

	out := make([]geom.Point, 0, len(points))
	for i, p := range points {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

func rdp(points []geom.Point, lo, hi int, epsilon float64, keep []bool) {
	if hi <= lo+1 {
		return
	}
	maxDist := 0.0
	maxIdx := lo
	for i := lo + 1; i < hi; i++ {
		if d := perpDist(points[i], points[lo], points[hi]); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}
	if maxDist > epsilon {
		keep[maxIdx] = true
		rdp(points, lo, maxIdx, epsilon, keep)
		rdp(points, maxIdx, hi, epsilon, keep)
	}
}

// perpDist returns the perpendicular distance from p to the segment ab.
func perpDist(p, a, b geom.Point) float64 {
	ab := b.Sub(a)
	if ab.IsZero() {
		return p.Dist(a)
	}
	// Area of the parallelogram over the base length.
	cross := ab.X*(p.Y-a.Y) - ab.Y*(p.X-a.X)
	return math.Abs(cross) / ab.Norm()
}

// Smooth resamples a polyline through a natural cubic spline, returning
// density points per original segment. The endpoints are preserved; with
// density <= 1 or too few points the input is returned unchanged.
func Smooth(points []geom.Point, density int) []geom.Point {
	if density <= 1 || len(points) < 3 {
		return points
	}
	s := geom.NewNaturalCubicSpline(points)
	return geom.Sample(s, 1/float64(density))
}
