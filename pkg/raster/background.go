package raster

import "image"

// RemoveBackground masks out the background of a grayscale image by flood
// filling from the borders: border-connected pixels within tolerance of
// the median border luminance are treated as background and set to 0.
// Foreground pixels keep their values.
//
// This is a luminance heuristic, not a segmentation model; it works for
// photos with a roughly uniform backdrop.
func RemoveBackground(g *image.Gray, tolerance uint8) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return g
	}
	at := func(x, y int) uint8 { return g.GrayAt(b.Min.X+x, b.Min.Y+y).Y }

	bg := medianBorder(g)
	within := func(v uint8) bool {
		d := int(v) - int(bg)
		if d < 0 {
			d = -d
		}
		return d <= int(tolerance)
	}

	masked := make([]bool, w*h)
	type pt struct{ x, y int }
	var stack []pt
	push := func(x, y int) {
		if x < 0 || x >= w || y < 0 || y >= h || masked[y*w+x] || !within(at(x, y)) {
			return
		}
		masked[y*w+x] = true
		stack = append(stack, pt{x, y})
	}

	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.x-1, p.y)
		push(p.x+1, p.y)
		push(p.x, p.y-1)
		push(p.x, p.y+1)
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !masked[y*w+x] {
				out.Pix[y*out.Stride+x] = at(x, y)
			}
		}
	}
	return out
}

// medianBorder returns the median luminance of the image's border pixels.
func medianBorder(g *image.Gray) uint8 {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	var hist [256]int
	n := 0
	add := func(x, y int) {
		hist[g.GrayAt(b.Min.X+x, b.Min.Y+y).Y]++
		n++
	}
	for x := 0; x < w; x++ {
		add(x, 0)
		if h > 1 {
			add(x, h-1)
		}
	}
	for y := 1; y < h-1; y++ {
		add(0, y)
		if w > 1 {
			add(w-1, y)
		}
	}

	half := n / 2
	sum := 0
	for v := 0; v < 256; v++ {
		sum += hist[v]
		if sum > half {
			return uint8(v)
		}
	}
	return 0
}
