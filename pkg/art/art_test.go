package art

import (
	"context"
	"image/color"
	"testing"

	"github.com/inkplot/inkplot/pkg/errors"
	"github.com/inkplot/inkplot/pkg/geom"
)

type fakeAlgo struct{ name string }

func (f *fakeAlgo) Name() string     { return f.name }
func (f *fakeAlgo) Describe() string { return "fake" }
func (f *fakeAlgo) Generate(ctx context.Context, p Params) (*Drawing, error) {
	return &Drawing{Width: 1, Height: 1}, nil
}

func TestRegistry(t *testing.T) {
	Register(&fakeAlgo{name: "fake-a"})
	Register(&fakeAlgo{name: "fake-b"})

	a, err := Lookup("fake-a")
	if err != nil {
		t.Fatalf("Lookup error: %v", err)
	}
	if a.Name() != "fake-a" {
		t.Errorf("Lookup returned %s", a.Name())
	}

	_, err = Lookup("missing")
	if !errors.Is(err, errors.ErrCodeAlgorithmNotFound) {
		t.Errorf("Lookup(missing) error = %v, want ALGORITHM_NOT_FOUND", err)
	}

	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names not sorted: %v", names)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register should panic on duplicate name")
		}
	}()
	Register(&fakeAlgo{name: "fake-dup"})
	Register(&fakeAlgo{name: "fake-dup"})
}

func TestParamsDefaults(t *testing.T) {
	var p Params
	p.SetDefaults()

	if p.Size != DefaultSize || p.Steps != DefaultSteps || p.Seed != DefaultSeed {
		t.Errorf("defaults not applied: %+v", p)
	}

	// Idempotent: explicit values survive a second call.
	p.Size = 100
	p.SetDefaults()
	if p.Size != 100 {
		t.Errorf("SetDefaults overwrote explicit size: %d", p.Size)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		code   errors.Code
	}{
		{"valid", func(p *Params) {}, ""},
		{"tiny size", func(p *Params) { p.Size = 4 }, errors.ErrCodeInvalidParam},
		{"zero steps", func(p *Params) { p.Steps = -1 }, errors.ErrCodeInvalidParam},
		{"bad margin", func(p *Params) { p.Margin = 1.5 }, errors.ErrCodeInvalidParam},
		{"bad stroke", func(p *Params) { p.StrokeWidth = -2 }, errors.ErrCodeInvalidParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Params
			p.SetDefaults()
			tt.mutate(&p)
			err := p.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestParamsMerge(t *testing.T) {
	base := Params{Size: 100, Steps: 50, Extra: map[string]float64{"beta": 1.3, "gamma": 0.5}}
	over := Params{Steps: 200, Extra: map[string]float64{"gamma": 0.7}}

	got := base.Merge(over)
	if got.Size != 100 || got.Steps != 200 {
		t.Errorf("Merge scalar fields: %+v", got)
	}
	if got.Extra["beta"] != 1.3 || got.Extra["gamma"] != 0.7 {
		t.Errorf("Merge extras: %v", got.Extra)
	}
	// Base must be untouched.
	if base.Extra["gamma"] != 0.5 {
		t.Errorf("Merge mutated receiver: %v", base.Extra)
	}
}

func TestDrawingLayers(t *testing.T) {
	d := &Drawing{
		Width: 10, Height: 10,
		Paths: []Path{
			{Layer: 2, Points: []geom.Point{{X: 0, Y: 0}}},
			{Layer: 0, Points: []geom.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}},
			{Layer: 2, Stroke: color.Black},
		},
	}

	layers := d.Layers()
	if len(layers) != 2 || layers[0] != 0 || layers[1] != 2 {
		t.Errorf("Layers = %v, want [0 2]", layers)
	}
	if d.PointCount() != 3 {
		t.Errorf("PointCount = %d, want 3", d.PointCount())
	}
}
