package raster

import (
	"image"
	"math"
)

// Default Canny thresholds, on the 0-255 gradient magnitude scale.
const (
	DefaultLowThreshold  = 100
	DefaultHighThreshold = 250
)

// DetectEdges runs a Canny-style edge detector: Sobel gradients,
// non-maximum suppression, then double thresholding with hysteresis.
// The result is a binary mask with edge pixels set to 255.
func DetectEdges(g *image.Gray, low, high float64) *image.Gray {
	if low <= 0 {
		low = DefaultLowThreshold
	}
	if high <= 0 {
		high = DefaultHighThreshold
	}
	if high < low {
		low, high = high, low
	}

	mag, dir := sobel(g)
	thin := nonMaxSuppress(mag, dir)
	return hysteresis(thin, low, high)
}

// sobel computes gradient magnitude and direction with 3x3 Sobel kernels.
func sobel(g *image.Gray) (mag [][]float64, dir [][]float64) {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	at := func(x, y int) float64 {
		return float64(g.GrayAt(b.Min.X+clampInt(x, 0, w-1), b.Min.Y+clampInt(y, 0, h-1)).Y)
	}

	mag = make([][]float64, h)
	dir = make([][]float64, h)
	for y := 0; y < h; y++ {
		mag[y] = make([]float64, w)
		dir[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			mag[y][x] = math.Hypot(gx, gy)
			dir[y][x] = math.Atan2(gy, gx)
		}
	}
	return mag, dir
}

// nonMaxSuppress keeps only pixels that are local maxima along the
// gradient direction, quantized to 0, 45, 90, or 135 degrees.
func nonMaxSuppress(mag, dir [][]float64) [][]float64 {
	h := len(mag)
	w := len(mag[0])
	out := make([][]float64, h)
	for y := range out {
		out[y] = make([]float64, w)
	}
	get := func(x, y int) float64 {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		return mag[y][x]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			angle := dir[y][x] * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}
			var a, b float64
			switch {
			case angle < 22.5 || angle >= 157.5: // horizontal gradient
				a, b = get(x-1, y), get(x+1, y)
			case angle < 67.5: // 45 degrees
				a, b = get(x+1, y-1), get(x-1, y+1)
			case angle < 112.5: // vertical gradient
				a, b = get(x, y-1), get(x, y+1)
			default: // 135 degrees
				a, b = get(x-1, y-1), get(x+1, y+1)
			}
			if mag[y][x] >= a && mag[y][x] >= b {
				out[y][x] = mag[y][x]
			}
		}
	}
	return out
}

// hysteresis marks strong pixels (>= high) as edges and grows them into
// connected weak pixels (>= low) via 8-neighborhood flood fill.
func hysteresis(mag [][]float64, low, high float64) *image.Gray {
	h := len(mag)
	w := len(mag[0])
	out := image.NewGray(image.Rect(0, 0, w, h))

	type pt struct{ x, y int }
	var stack []pt
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mag[y][x] >= high {
				out.Pix[y*out.Stride+x] = 255
				stack = append(stack, pt{x, y})
			}
		}
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.x+dx, p.y+dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				if out.Pix[ny*out.Stride+nx] == 0 && mag[ny][nx] >= low {
					out.Pix[ny*out.Stride+nx] = 255
					stack = append(stack, pt{nx, ny})
				}
			}
		}
	}
	return out
}
