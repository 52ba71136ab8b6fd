package raster

import (
	"image"
	"image/color"
	"testing"
)

// square returns a white-on-black filled square mask.
func square(size, x0, y0, x1, y1 int) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, size, size))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return g
}

func countOn(g *image.Gray) int {
	n := 0
	for _, v := range g.Pix {
		if v > 127 {
			n++
		}
	}
	return n
}

func TestToGrayPreservesDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 50, 40))
	g := ToGray(src)
	if g.Bounds().Dx() != 40 || g.Bounds().Dy() != 30 {
		t.Errorf("ToGray bounds = %v", g.Bounds())
	}
}

func TestInvert(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 1))
	g.Pix[0], g.Pix[1] = 0, 200
	inv := Invert(g)
	if inv.Pix[0] != 255 || inv.Pix[1] != 55 {
		t.Errorf("Invert pix = %v", inv.Pix)
	}
}

func TestGaussianBlurSmooths(t *testing.T) {
	g := square(21, 10, 10, 11, 11) // single bright pixel
	blurred := GaussianBlur(g, 2)

	center := blurred.GrayAt(10, 10).Y
	neighbor := blurred.GrayAt(12, 10).Y
	if center == 255 {
		t.Error("blur should spread energy away from the center")
	}
	if neighbor == 0 {
		t.Error("blur should deposit energy in neighbors")
	}
	if neighbor > center {
		t.Error("center should stay the brightest")
	}
}

func TestGaussianBlurZeroSigmaIsIdentity(t *testing.T) {
	g := square(8, 2, 2, 6, 6)
	if got := GaussianBlur(g, 0); got != g {
		t.Error("sigma<=0 should return the input unchanged")
	}
}

func TestKernelSize(t *testing.T) {
	tests := []struct {
		sigma float64
		want  int
	}{
		{0.5, 7},
		{1, 7},
		{3, 19},
		{2.5, 17}, // 6*2.5+1 = 16, forced odd
	}
	for _, tt := range tests {
		if got := kernelSize(tt.sigma); got != tt.want {
			t.Errorf("kernelSize(%g) = %d, want %d", tt.sigma, got, tt.want)
		}
	}
}

func TestLoGRespondsToEdges(t *testing.T) {
	g := square(32, 0, 0, 32, 16) // top half white
	out := LoG(g, 1.5, false)

	// Flat regions stay dark, the luminance step lights up.
	if out.GrayAt(16, 2).Y > 10 {
		t.Errorf("flat region response = %d", out.GrayAt(16, 2).Y)
	}
	edgeBand := 0
	for y := 13; y < 19; y++ {
		edgeBand += int(out.GrayAt(16, y).Y)
	}
	if edgeBand == 0 {
		t.Error("no LoG response along the step edge")
	}
}

func TestDetectEdgesSquareOutline(t *testing.T) {
	g := square(40, 10, 10, 30, 30)
	edges := DetectEdges(g, 100, 250)

	on := countOn(edges)
	if on == 0 {
		t.Fatal("no edges detected")
	}
	// The outline of a 20x20 square is roughly its perimeter; interior
	// must stay empty.
	if edges.GrayAt(20, 20).Y != 0 {
		t.Error("interior pixel marked as edge")
	}
	if on > 400 {
		t.Errorf("edge mask too dense: %d pixels", on)
	}
}

func TestThinReducesStrokeWidth(t *testing.T) {
	// A thick horizontal bar thins to a single-pixel line.
	g := square(30, 5, 12, 25, 17)
	thin := Thin(g)

	for x := 8; x < 22; x++ {
		col := 0
		for y := 0; y < 30; y++ {
			if thin.GrayAt(x, y).Y > 127 {
				col++
			}
		}
		if col > 1 {
			t.Errorf("column %d still %d pixels wide", x, col)
		}
	}
	if countOn(thin) == 0 {
		t.Error("thinning erased the stroke entirely")
	}
}

func TestThreshold(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 3, 1))
	g.Pix[0], g.Pix[1], g.Pix[2] = 10, 127, 250
	m := Threshold(g, 127)
	if m.Pix[0] != 0 || m.Pix[1] != 255 || m.Pix[2] != 255 {
		t.Errorf("Threshold pix = %v", m.Pix)
	}
}

func TestRemoveBackground(t *testing.T) {
	// Dark subject on a light backdrop.
	g := image.NewGray(image.Rect(0, 0, 20, 20))
	for i := range g.Pix {
		g.Pix[i] = 230
	}
	for y := 8; y < 12; y++ {
		for x := 8; x < 12; x++ {
			g.SetGray(x, y, color.Gray{Y: 40})
		}
	}

	out := RemoveBackground(g, 30)
	if out.GrayAt(0, 0).Y != 0 {
		t.Error("border background should be masked to 0")
	}
	if out.GrayAt(10, 10).Y != 40 {
		t.Errorf("subject pixel = %d, want 40", out.GrayAt(10, 10).Y)
	}
}
