// Package scribble draws a single continuous stroke: a seeded random
// walk lays down knots inside the frame and a natural cubic spline is
// threaded through them.
package scribble

import (
	"context"
	"math/rand/v2"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/geom"
)

func init() {
	art.Register(New())
}

// Extra parameter names understood by the scribble algorithm.
const (
	// ExtraKnots is the number of spline knots (default 24).
	ExtraKnots = "knots"
	// ExtraStep is the mean walk step as a fraction of the frame (default 0.18).
	ExtraStep = "step"
	// ExtraJitter is the per-step directional noise in [0, 1] (default 0.6).
	ExtraJitter = "jitter"
	// ExtraDensity is the number of samples per spline piece (default 24).
	ExtraDensity = "density"
)

const (
	defaultKnots   = 24
	defaultStep    = 0.18
	defaultJitter  = 0.6
	defaultDensity = 24
)

// Scribble is the spline-walk algorithm.
type Scribble struct{}

// New returns the scribble algorithm.
func New() *Scribble { return &Scribble{} }

func (*Scribble) Name() string { return "scribble" }

func (*Scribble) Describe() string {
	return "one continuous stroke: a random walk smoothed by a cubic spline"
}

// Generate walks knots around the frame and samples a spline through
// them into one open path.
func (s *Scribble) Generate(ctx context.Context, p art.Params) (*art.Drawing, error) {
	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	knots := int(p.ExtraOr(ExtraKnots, defaultKnots))
	if knots < 2 {
		knots = 2
	}
	step := p.ExtraOr(ExtraStep, defaultStep)
	jitter := p.ExtraOr(ExtraJitter, defaultJitter)
	density := int(p.ExtraOr(ExtraDensity, defaultDensity))

	size := float64(p.Size)
	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0xdeadbeef))

	spline := geom.NewNaturalCubicSpline(walk(rng, knots, size, p.Margin, step, jitter))
	points := geom.Sample(spline, 1/float64(density))

	return &art.Drawing{
		Width:  size,
		Height: size,
		Paths: []art.Path{{
			Points: points,
			Width:  p.StrokeWidth,
			Value:  1,
		}},
	}, nil
}

// walk produces the knot sequence. Each step continues roughly in the
// previous direction with jitter mixed in, and bounces off the margin
// box so the stroke stays inside the frame.
func walk(rng *rand.Rand, knots int, size, margin, step, jitter float64) []geom.Point {
	half := size / 2
	lo := half - margin*half
	hi := half + margin*half

	pos := geom.Point{X: half, Y: half}
	dir := geom.Point{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1}

	pts := make([]geom.Point, 0, knots)
	pts = append(pts, pos)
	for len(pts) < knots {
		dir = dir.Scale(1 - jitter).Add(geom.Point{
			X: (rng.Float64()*2 - 1) * jitter,
			Y: (rng.Float64()*2 - 1) * jitter,
		})
		if dir.IsZero() {
			dir = geom.Point{X: 1, Y: 0}
		}
		next := pos.Add(dir.Div(dir.Norm()).Scale(step * size))

		if next.X < lo || next.X > hi {
			dir.X = -dir.X
			next.X = mirror(next.X, lo, hi)
		}
		if next.Y < lo || next.Y > hi {
			dir.Y = -dir.Y
			next.Y = mirror(next.Y, lo, hi)
		}

		pos = next
		pts = append(pts, pos)
	}
	return pts
}

// mirror folds v back into [lo, hi] by mirroring at the crossed edge.
func mirror(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo + (lo - v)
	case v > hi:
		return hi - (v - hi)
	default:
		return v
	}
}
