package snowflake

import (
	"context"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/errors"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 1^0xdeadbeef))
}

func TestLatticeSeedCell(t *testing.T) {
	l := NewLattice(32, DefaultEnvironment(), 10, 0.85, testRNG())

	center := l.Cell(16, 16)
	if !center.Attached {
		t.Fatal("center cell should start attached")
	}
	if center.CrystalMass != 1 {
		t.Errorf("seed crystal mass = %g, want 1", center.CrystalMass)
	}
	if l.Cell(0, 0).DiffusiveMass != DefaultEnvironment().Gamma {
		t.Errorf("initial vapor = %g, want gamma", l.Cell(0, 0).DiffusiveMass)
	}
}

func TestLatticeGrows(t *testing.T) {
	l := NewLattice(48, DefaultEnvironment(), 0, 0.85, testRNG())
	for i := 0; i < 120; i++ {
		l.Step()
	}

	attached := 0
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			if l.Cell(x, y).Attached {
				attached++
			}
		}
	}
	if attached < 7 {
		t.Errorf("crystal should have grown past the seed, attached = %d", attached)
	}
}

func TestLatticeStepsAreDeterministic(t *testing.T) {
	run := func() []float64 {
		l := NewLattice(32, DefaultEnvironment(), 0, 0.85, testRNG())
		for i := 0; i < 40; i++ {
			l.Step()
		}
		var masses []float64
		for y := 0; y < 32; y++ {
			for x := 0; x < 32; x++ {
				masses = append(masses, l.Cell(x, y).CrystalMass)
			}
		}
		return masses
	}

	if !reflect.DeepEqual(run(), run()) {
		t.Error("same seed should replay the exact same growth")
	}
}

func TestGrowStopsAtStepLimit(t *testing.T) {
	l := NewLattice(32, DefaultEnvironment(), 5, 0.85, testRNG())
	if err := l.Grow(context.Background()); err != nil {
		t.Fatalf("Grow() error: %v", err)
	}
	if l.Iteration() < 5 || l.Iteration() > 6 {
		t.Errorf("iteration = %d, want to stop at the step limit", l.Iteration())
	}
}

func TestGrowCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLattice(64, DefaultEnvironment(), 0, 0.85, testRNG())
	err := l.Grow(ctx)
	if !errors.Is(err, errors.ErrCodeCancelled) {
		t.Errorf("cancelled Grow() error = %v, want CANCELLED", err)
	}
}

func TestRadiusProbe(t *testing.T) {
	l := NewLattice(32, DefaultEnvironment(), 0, 0.85, testRNG())
	// Only the seed is attached; its neighbors are boundary after a step.
	l.Step()
	if r := l.Radius(); r < 1 || r > 3 {
		t.Errorf("radius = %d, want close to the seed", r)
	}
}

func TestBuildEnvironmentCurves(t *testing.T) {
	env := BuildEnvironment(100, testRNG())

	if env.Gamma < minGamma || env.Gamma > maxGamma {
		t.Errorf("gamma = %g, want in [%g, %g]", env.Gamma, minGamma, maxGamma)
	}

	lo, hi := curveRanges["beta"][0], curveRanges["beta"][1]
	for i := 0; i <= 100; i += 10 {
		env.Step(i)
		if env.Beta < lo || env.Beta > hi {
			t.Errorf("beta at step %d = %g, want in [%g, %g]", i, env.Beta, lo, hi)
		}
	}
}

func TestBuildEnvironmentDeterministic(t *testing.T) {
	a := BuildEnvironment(50, testRNG())
	b := BuildEnvironment(50, testRNG())
	a.Step(25)
	b.Step(25)
	if a.Beta != b.Beta || a.Theta != b.Theta || a.Gamma != b.Gamma {
		t.Error("same rng state should build the same environment")
	}
}

func TestFixedEnvironmentIgnoresStep(t *testing.T) {
	env := DefaultEnvironment()
	beta := env.Beta
	env.Step(100)
	if env.Beta != beta {
		t.Error("fixed environment should not drift")
	}
}

func TestGenerate(t *testing.T) {
	d, err := New().Generate(context.Background(), art.Params{
		Size:  64,
		Steps: 80,
		Seed:  7,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	wantWidth := 64 / math.Sqrt(3)
	if math.Abs(d.Width-wantWidth) > 1e-9 || d.Height != 64 {
		t.Errorf("drawing dims = %gx%g, want %gx64", d.Width, d.Height, wantWidth)
	}
	if len(d.Paths) == 0 {
		t.Fatal("drawing should contain contour paths")
	}
	for _, p := range d.Paths {
		if !p.Closed {
			t.Error("contour paths should be closed")
		}
		if p.Value < 0 || p.Value > 1 {
			t.Errorf("path value = %g, want in [0, 1]", p.Value)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := art.Params{Size: 64, Steps: 60, Seed: 3}

	a, err := New().Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	b, err := New().Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("same params should produce identical drawings")
	}
}

func TestGenerateLayers(t *testing.T) {
	d, err := New().Generate(context.Background(), art.Params{
		Size:  64,
		Steps: 80,
		Seed:  7,
		Extra: map[string]float64{ExtraLayers: 3},
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	for _, p := range d.Paths {
		if p.Layer < 0 || p.Layer > 2 {
			t.Errorf("path layer = %d, want in [0, 2]", p.Layer)
		}
	}
}

func TestGenerateParamOverrides(t *testing.T) {
	p := art.Params{
		Size:  32,
		Steps: 10,
		Seed:  1,
		Extra: map[string]float64{ExtraGamma: 0.7, ExtraBeta: 1.5},
	}
	rng := testRNG()
	env := buildEnv(p, rng)
	if env.Gamma != 0.7 || env.Beta != 1.5 {
		t.Errorf("overrides not applied: gamma=%g beta=%g", env.Gamma, env.Beta)
	}
	if env.Theta != DefaultEnvironment().Theta {
		t.Error("untouched parameters should keep their defaults")
	}
}

func TestGenerateRegistered(t *testing.T) {
	a, err := art.Lookup("snowflake")
	if err != nil {
		t.Fatalf("Lookup(snowflake) error: %v", err)
	}
	if a.Name() != "snowflake" {
		t.Errorf("Name() = %q", a.Name())
	}
}
