package snowflake

import (
	"math/rand/v2"

	"github.com/inkplot/inkplot/pkg/geom"
)

// Environment holds the automaton parameters. In curve mode the values
// drift along smooth random curves as the crystal grows; otherwise they
// stay fixed.
type Environment struct {
	Beta    float64 // attachment threshold for cells with few frozen neighbors
	Theta   float64 // vapor threshold for 3-neighbor attachment
	Alpha   float64 // boundary mass threshold for 3-neighbor attachment
	Kappa   float64 // fraction of vapor that freezes straight to crystal
	Mu      float64 // boundary mass melt rate
	Upsilon float64 // crystal mass melt rate
	Sigma   float64 // vapor noise amplitude
	Gamma   float64 // initial vapor density

	curves *paramCurves
}

// DefaultEnvironment returns the baseline parameter set, which grows a
// classic dendritic flake.
func DefaultEnvironment() *Environment {
	return &Environment{
		Beta:    1.3,
		Theta:   0.025,
		Alpha:   0.08,
		Kappa:   0.003,
		Mu:      0.07,
		Upsilon: 0.00005,
		Sigma:   0.00001,
		Gamma:   0.5,
	}
}

// Curve ranges for BuildEnvironment, matched to values that keep the
// automaton in its crystal-growing regime.
var curveRanges = map[string][2]float64{
	"beta":    {1.3, 2},
	"theta":   {0.01, 0.04},
	"alpha":   {0.02, 0.1},
	"kappa":   {0.001, 0.01},
	"mu":      {0.01, 0.1},
	"upsilon": {0.00001, 0.0001},
	"sigma":   {0.000001, 0.00001},
}

// Gamma stays constant per run; BuildEnvironment draws it from this range.
const (
	minGamma = 0.45
	maxGamma = 0.85
)

// BuildEnvironment creates a curve-mode environment: every parameter
// follows its own smooth random curve over the given number of steps,
// so the crystal's character shifts as it grows. The same rng state
// always yields the same environment.
func BuildEnvironment(steps int, rng *rand.Rand) *Environment {
	pc := &paramCurves{
		beta:    randomCurve(steps, curveRanges["beta"], rng),
		theta:   randomCurve(steps, curveRanges["theta"], rng),
		alpha:   randomCurve(steps, curveRanges["alpha"], rng),
		kappa:   randomCurve(steps, curveRanges["kappa"], rng),
		mu:      randomCurve(steps, curveRanges["mu"], rng),
		upsilon: randomCurve(steps, curveRanges["upsilon"], rng),
		sigma:   randomCurve(steps, curveRanges["sigma"], rng),
	}

	env := &Environment{
		Gamma:  minGamma + rng.Float64()*(maxGamma-minGamma),
		curves: pc,
	}
	env.Step(0)
	return env
}

// Step advances the environment to the given iteration. Fixed
// environments ignore it.
func (e *Environment) Step(iteration int) {
	if e.curves == nil {
		return
	}
	e.Beta = e.curves.beta.at(iteration)
	e.Theta = e.curves.theta.at(iteration)
	e.Alpha = e.curves.alpha.at(iteration)
	e.Kappa = e.curves.kappa.at(iteration)
	e.Mu = e.curves.mu.at(iteration)
	e.Upsilon = e.curves.upsilon.at(iteration)
	e.Sigma = e.curves.sigma.at(iteration)
}

type paramCurves struct {
	beta, theta, alpha, kappa, mu, upsilon, sigma curve
}

// curve is a parameter's precomputed per-step value track.
type curve []float64

func (c curve) at(iteration int) float64 {
	if len(c) == 0 {
		return 0
	}
	if iteration < 0 {
		iteration = 0
	}
	if iteration >= len(c) {
		iteration = len(c) - 1
	}
	return c[iteration]
}

// knotsPerCurve controls how wiggly the parameter tracks are.
const knotsPerCurve = 5

// randomCurve samples a natural cubic spline through random knots in
// [lo, hi], one value per step, clamped back into the range.
func randomCurve(steps int, rng [2]float64, r *rand.Rand) curve {
	lo, hi := rng[0], rng[1]
	if steps < 1 {
		steps = 1
	}

	knots := make([]geom.Point, knotsPerCurve)
	for i := range knots {
		x := float64(i) * float64(steps) / float64(knotsPerCurve-1)
		knots[i] = geom.Point{X: x, Y: lo + r.Float64()*(hi-lo)}
	}

	spline := geom.NewNaturalCubicSpline(knots)
	track := make(curve, steps+1)
	for i := range track {
		v := spline.At(float64(i) * float64(spline.Len()) / float64(steps)).Y
		if v < lo {
			v = lo
		}
		if v > hi {
			v = hi
		}
		track[i] = v
	}
	return track
}
