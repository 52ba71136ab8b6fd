package snowflake

import (
	"context"
	"image"
	"math"
	"math/rand/v2"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/geom"
	"github.com/inkplot/inkplot/pkg/palette"
	"github.com/inkplot/inkplot/pkg/trace"
)

func init() {
	art.Register(New())
}

// Extra parameter names understood by the snowflake algorithm. The
// automaton parameters override individual [Environment] fields;
// "curves" (nonzero) switches to curve mode and "layers" sets the number
// of mass-clustered output layers.
const (
	ExtraBeta    = "beta"
	ExtraTheta   = "theta"
	ExtraAlpha   = "alpha"
	ExtraKappa   = "kappa"
	ExtraMu      = "mu"
	ExtraUpsilon = "upsilon"
	ExtraSigma   = "sigma"
	ExtraGamma   = "gamma"
	ExtraCurves  = "curves"
	ExtraLayers  = "layers"
)

// xScaleFactor compresses the horizontal axis so the skewed hexagonal
// grid renders with true proportions.
var xScaleFactor = 1 / math.Sqrt(3)

// Snowflake is the Gravner-Griffeath crystal growth algorithm.
type Snowflake struct{}

// New returns the snowflake algorithm.
func New() *Snowflake { return &Snowflake{} }

func (*Snowflake) Name() string { return "snowflake" }

func (*Snowflake) Describe() string {
	return "ice crystal growth on a hexagonal lattice (Gravner-Griffeath)"
}

// Generate grows a crystal and traces it into layered contour paths.
func (s *Snowflake) Generate(ctx context.Context, p art.Params) (*art.Drawing, error) {
	p.SetDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0xdeadbeef))
	env := buildEnv(p, rng)

	lattice := NewLattice(p.Size, env, p.Steps, p.Margin, rng)
	if err := lattice.Grow(ctx); err != nil {
		return nil, err
	}

	layers := int(p.ExtraOr(ExtraLayers, 1))
	if layers < 1 {
		layers = 1
	}
	return buildDrawing(lattice, layers, p.StrokeWidth), nil
}

// buildEnv assembles the environment from the defaults, curve mode, and
// per-parameter overrides.
func buildEnv(p art.Params, rng *rand.Rand) *Environment {
	var env *Environment
	if p.ExtraOr(ExtraCurves, 0) != 0 {
		env = BuildEnvironment(p.Steps, rng)
	} else {
		env = DefaultEnvironment()
	}

	override := func(name string, field *float64) {
		if v, ok := p.Extra[name]; ok {
			*field = v
		}
	}
	override(ExtraBeta, &env.Beta)
	override(ExtraTheta, &env.Theta)
	override(ExtraAlpha, &env.Alpha)
	override(ExtraKappa, &env.Kappa)
	override(ExtraMu, &env.Mu)
	override(ExtraUpsilon, &env.Upsilon)
	override(ExtraSigma, &env.Sigma)
	override(ExtraGamma, &env.Gamma)
	return env
}

// buildDrawing clusters the attached cells by crystal mass, traces each
// cluster's region, and maps the lattice onto screen coordinates.
func buildDrawing(l *Lattice, layers int, strokeWidth float64) *art.Drawing {
	size := l.Size()

	type site struct {
		x, y int
		mass float64
	}
	var (
		sites   []site
		maxMass float64
	)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := l.Cell(x, y)
			if !c.Attached {
				continue
			}
			sites = append(sites, site{x, y, c.CrystalMass})
			if c.CrystalMass > maxMass {
				maxMass = c.CrystalMass
			}
		}
	}

	masses := make([]float64, len(sites))
	for i, s := range sites {
		masses[i] = s.mass
	}
	assignment := palette.AssignLayers(masses, layers)

	d := &art.Drawing{
		Width:  float64(size) * xScaleFactor,
		Height: float64(size),
	}

	for layer := 0; layer < layers; layer++ {
		mask := image.NewGray(image.Rect(0, 0, size, size))
		var sum float64
		n := 0
		for i, s := range sites {
			if assignment[i] != layer {
				continue
			}
			mask.Pix[s.y*mask.Stride+s.x] = 255
			sum += s.mass
			n++
		}
		if n == 0 {
			continue
		}

		value := 0.0
		if maxMass > 0 {
			value = sum / float64(n) / maxMass
		}

		paths := trace.ContourPaths(mask, trace.Options{
			Epsilon:     trace.DefaultEpsilon,
			Density:     3,
			StrokeWidth: strokeWidth,
			Layer:       layer,
		})
		for i := range paths {
			paths[i].Points = toScreen(paths[i].Points, size)
			paths[i].Value = value
		}
		d.Paths = append(d.Paths, paths...)
	}
	return d
}

// toScreen rotates lattice coordinates 45 degrees about the grid center
// and squeezes the horizontal axis by 1/sqrt(3), undoing the hexagonal
// skew.
func toScreen(pts []geom.Point, size int) []geom.Point {
	const rot = 45 * math.Pi / 180
	sin, cos := math.Sin(rot), math.Cos(rot)
	half := float64(size) / 2

	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		dx, dy := p.X-half, p.Y-half
		rx := dx*cos - dy*sin + half
		ry := dx*sin + dy*cos + half
		out[i] = geom.Point{X: rx * xScaleFactor, Y: ry}
	}
	return out
}
