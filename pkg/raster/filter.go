package raster

import (
	"image"
	"math"
)

// GaussianBlur smooths the image with a Gaussian kernel of the given
// sigma. Sigma values <= 0 return the input unchanged.
func GaussianBlur(g *image.Gray, sigma float64) *image.Gray {
	if sigma <= 0 {
		return g
	}
	size := kernelSize(sigma)
	k := make([][]float64, size)
	half := size / 2
	sum := 0.0
	for y := 0; y < size; y++ {
		k[y] = make([]float64, size)
		for x := 0; x < size; x++ {
			dx, dy := float64(x-half), float64(y-half)
			v := math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
			k[y][x] = v
			sum += v
		}
	}
	for y := range k {
		for x := range k[y] {
			k[y][x] /= sum
		}
	}
	return convolve(g, k)
}

// LoG applies a Laplacian-of-Gaussian filter. The kernel size is derived
// from sigma (6*sigma+1, forced odd, minimum 7) and the kernel is
// normalized so the sum of absolute weights is 1. When preBlur is set the
// image is first smoothed with sigma/2 to reduce noise.
func LoG(g *image.Gray, sigma float64, preBlur bool) *image.Gray {
	if preBlur {
		g = GaussianBlur(g, sigma/2)
	}
	size := kernelSize(sigma)
	half := size / 2

	k := make([][]float64, size)
	absSum := 0.0
	for y := 0; y < size; y++ {
		k[y] = make([]float64, size)
		for x := 0; x < size; x++ {
			dx, dy := float64(x-half), float64(y-half)
			r2 := dx*dx + dy*dy
			v := -(1 / (math.Pi * math.Pow(sigma, 4))) *
				(1 - r2/(2*sigma*sigma)) *
				math.Exp(-r2/(2*sigma*sigma))
			k[y][x] = v
			absSum += math.Abs(v)
		}
	}
	for y := range k {
		for x := range k[y] {
			k[y][x] /= absSum
		}
	}
	return convolve(g, k)
}

// kernelSize returns an odd kernel size appropriate for sigma.
func kernelSize(sigma float64) int {
	size := 7
	if sigma >= 1 {
		size = int(6*sigma + 1)
	}
	if size%2 == 0 {
		size++
	}
	return size
}

// convolve applies a dense kernel with edge clamping and clips the result
// to [0, 255].
func convolve(g *image.Gray, k [][]float64) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	half := len(k) / 2
	out := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			acc := 0.0
			for ky := range k {
				sy := clampInt(y+ky-half, 0, h-1)
				for kx := range k[ky] {
					sx := clampInt(x+kx-half, 0, w-1)
					acc += k[ky][kx] * float64(g.GrayAt(b.Min.X+sx, b.Min.Y+sy).Y)
				}
			}
			out.Pix[y*out.Stride+x] = clampByte(acc)
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampByte(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
