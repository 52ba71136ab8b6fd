package palette

import (
	"image/color"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/errors"
)

// Scheme names accepted by Lookup.
const (
	SchemeGrayscale  = "grayscale"
	SchemeBlackWhite = "blackwhite"
	SchemeColorful   = "colorful"
	SchemeLaser      = "laser"
)

// DefaultScheme is used when no scheme is requested.
const DefaultScheme = SchemeGrayscale

// Scheme maps a normalized paint value to a color.
type Scheme interface {
	// Name returns the scheme identifier.
	Name() string

	// Color returns the stroke color for a paint value in [0, 1].
	Color(t float64) color.Color

	// Background returns the canvas color behind the strokes.
	Background() color.Color
}

// Lookup returns the scheme registered under name.
func Lookup(name string) (Scheme, error) {
	switch name {
	case SchemeGrayscale:
		return Grayscale{}, nil
	case SchemeBlackWhite:
		return BlackWhite{}, nil
	case SchemeColorful:
		return Colorful{}, nil
	case SchemeLaser:
		return Laser{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidScheme,
			"invalid scheme: %q (must be one of: %s, %s, %s, %s)",
			name, SchemeGrayscale, SchemeBlackWhite, SchemeColorful, SchemeLaser)
	}
}

// Names returns the valid scheme names.
func Names() []string {
	return []string{SchemeBlackWhite, SchemeColorful, SchemeGrayscale, SchemeLaser}
}

// Paint assigns stroke colors to every path whose Stroke is nil, using
// the path's paint value, and sets the drawing background. Paths with an
// explicit Stroke are left alone.
func Paint(d *art.Drawing, s Scheme) {
	d.Background = s.Background()
	for i := range d.Paths {
		if d.Paths[i].Stroke == nil {
			d.Paths[i].Stroke = s.Color(d.Paths[i].Value)
		}
	}
}

// Grayscale scales the normalized mass to a gray level, clamped to white.
type Grayscale struct{}

func (Grayscale) Name() string { return SchemeGrayscale }

func (Grayscale) Color(t float64) color.Color {
	if t < 0 {
		t = 0
	}
	// 255*t with a little headroom, so the heaviest layers saturate to
	// white and mid-range masses stay visible.
	v := int(280 * t)
	if v > 255 {
		v = 255
	}
	return color.Gray{Y: uint8(v)}
}

func (Grayscale) Background() color.Color { return color.Black }

// BlackWhite paints any positive value as white on black.
type BlackWhite struct{}

func (BlackWhite) Name() string { return SchemeBlackWhite }

func (BlackWhite) Color(t float64) color.Color {
	if t > 0 {
		return color.White
	}
	return color.Black
}

func (BlackWhite) Background() color.Color { return color.Black }

// Colorful maps the value onto the HSV hue circle at full saturation.
type Colorful struct{}

func (Colorful) Name() string { return SchemeColorful }

func (Colorful) Color(t float64) color.Color {
	c := colorful.Hsv(clamp01(t)*360, 1, 1)
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func (Colorful) Background() color.Color { return color.Black }

// Laser paints layers in high-contrast colors for cutting or pen passes,
// spacing hues evenly around the circle at reduced saturation.
type Laser struct{}

func (Laser) Name() string { return SchemeLaser }

func (Laser) Color(t float64) color.Color {
	c := colorful.Hsv(clamp01(t)*300, 0.85, 0.95) // stop short of wrapping to red
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func (Laser) Background() color.Color { return color.White }

// AssignLayers clusters scalar values into k groups with 1-D k-means and
// returns the cluster index for each value, ordered so that cluster 0 has
// the smallest centroid. k <= 1 assigns everything to layer 0.
func AssignLayers(values []float64, k int) []int {
	out := make([]int, len(values))
	if k <= 1 || len(values) == 0 {
		return out
	}
	if k > len(values) {
		k = len(values)
	}

	// Seed centroids at evenly spaced quantiles.
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	centroids := make([]float64, k)
	for i := range centroids {
		centroids[i] = sorted[(2*i+1)*(len(sorted)-1)/(2*k)]
	}

	assign := func() bool {
		changed := false
		for i, v := range values {
			best := 0
			bestDist := dist(v, centroids[0])
			for c := 1; c < k; c++ {
				if d := dist(v, centroids[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			if out[i] != best {
				out[i] = best
				changed = true
			}
		}
		return changed
	}

	for iter := 0; iter < 100; iter++ {
		if !assign() {
			break
		}
		sums := make([]float64, k)
		counts := make([]int, k)
		for i, v := range values {
			sums[out[i]] += v
			counts[out[i]]++
		}
		for c := range centroids {
			if counts[c] > 0 {
				centroids[c] = sums[c] / float64(counts[c])
			}
		}
	}

	// Relabel clusters by ascending centroid for stable layer order.
	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return centroids[order[a]] < centroids[order[b]] })
	rank := make([]int, k)
	for r, c := range order {
		rank[c] = r
	}
	for i := range out {
		out[i] = rank[out[i]]
	}
	return out
}

func dist(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
