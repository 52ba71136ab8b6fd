package raster

import (
	"bytes"
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"

	"github.com/inkplot/inkplot/pkg/errors"
)

// Load reads an image file and converts it to grayscale. Supported formats
// are those registered with image.Decode via the imaging package (PNG,
// JPEG, GIF, TIFF, BMP).
func Load(path string) (*image.Gray, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode %s", path)
	}
	return ToGray(img), nil
}

// Decode parses in-memory image bytes and converts them to grayscale.
func Decode(data []byte) (*image.Gray, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode image")
	}
	return ToGray(img), nil
}

// ToGray converts any image to 8-bit grayscale.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	src := imaging.Grayscale(img)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, _, _, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			gray.SetGray(x, y, color.Gray{Y: uint8(r >> 8)})
		}
	}
	return gray
}

// Resize scales a grayscale image so that its longer side equals maxSide,
// preserving aspect ratio. Images already small enough are returned as-is.
func Resize(g *image.Gray, maxSide int) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return g
	}
	if w >= h {
		return ToGray(imaging.Resize(g, maxSide, 0, imaging.Lanczos))
	}
	return ToGray(imaging.Resize(g, 0, maxSide, imaging.Lanczos))
}

// Invert returns the photographic negative.
func Invert(g *image.Gray) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(b)
	for i, v := range g.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}
