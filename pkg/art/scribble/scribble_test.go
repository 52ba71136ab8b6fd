package scribble

import (
	"context"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/inkplot/inkplot/pkg/art"
)

func TestGenerate(t *testing.T) {
	d, err := New().Generate(context.Background(), art.Params{Size: 200, Seed: 9})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if d.Width != 200 || d.Height != 200 {
		t.Errorf("dims = %gx%g, want 200x200", d.Width, d.Height)
	}
	if len(d.Paths) != 1 {
		t.Fatalf("paths = %d, want a single stroke", len(d.Paths))
	}
	p := d.Paths[0]
	if p.Closed {
		t.Error("stroke should be open")
	}
	if len(p.Points) < defaultKnots {
		t.Errorf("stroke has %d points, want at least the knot count", len(p.Points))
	}
}

func TestGenerateStaysInMargin(t *testing.T) {
	d, err := New().Generate(context.Background(), art.Params{Size: 200, Seed: 5, Margin: 0.8})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	// The walk bounces knots off the margin box; the spline may overshoot
	// between knots but must stay on the canvas.
	for _, pt := range d.Paths[0].Points {
		if pt.X < 0 || pt.X > 200 || pt.Y < 0 || pt.Y > 200 {
			t.Fatalf("point %v escaped the frame", pt)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := art.Params{Size: 150, Seed: 11}
	a, _ := New().Generate(context.Background(), p)
	b, _ := New().Generate(context.Background(), p)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should reproduce the stroke")
	}
}

func TestGenerateSeedsDiffer(t *testing.T) {
	a, _ := New().Generate(context.Background(), art.Params{Size: 150, Seed: 1})
	b, _ := New().Generate(context.Background(), art.Params{Size: 150, Seed: 2})
	if reflect.DeepEqual(a.Paths[0].Points, b.Paths[0].Points) {
		t.Error("different seeds should walk different strokes")
	}
}

func TestGenerateKnotsKnob(t *testing.T) {
	d, err := New().Generate(context.Background(), art.Params{
		Size: 150, Seed: 3,
		Extra: map[string]float64{ExtraKnots: 5, ExtraDensity: 2},
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	// 5 knots -> 4 pieces at density 2 -> 8 samples plus the final knot.
	if got := len(d.Paths[0].Points); got != 9 {
		t.Errorf("points = %d, want 9", got)
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Generate(ctx, art.Params{Size: 150, Seed: 3}); err == nil {
		t.Error("cancelled context should fail")
	}
}

func TestWalkBounces(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	pts := walk(rng, 200, 100, 0.9, 0.3, 0.5)

	lo, hi := 50-0.9*50, 50+0.9*50
	for _, p := range pts {
		if p.X < lo || p.X > hi || p.Y < lo || p.Y > hi {
			t.Fatalf("knot %v outside the margin box", p)
		}
	}
}

func TestMirror(t *testing.T) {
	if got := mirror(-2, 0, 10); got != 2 {
		t.Errorf("mirror(-2) = %g, want 2", got)
	}
	if got := mirror(13, 0, 10); got != 7 {
		t.Errorf("mirror(13) = %g, want 7", got)
	}
	if got := mirror(5, 0, 10); got != 5 {
		t.Errorf("mirror(5) = %g, want 5", got)
	}
}
