package raster

import "image"

// Thin skeletonizes a binary mask using the Zhang-Suen algorithm,
// reducing strokes to one-pixel-wide center lines. The input must be a
// 0/255 mask as produced by DetectEdges or Threshold.
func Thin(mask *image.Gray) *image.Gray {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()

	cur := make([][]bool, h)
	for y := 0; y < h; y++ {
		cur[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			cur[y][x] = mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y > 127
		}
	}

	at := func(x, y int) bool {
		if x < 0 || x >= w || y < 0 || y >= h {
			return false
		}
		return cur[y][x]
	}

	// neighbors returns P2..P9 clockwise from north.
	neighbors := func(x, y int) [8]bool {
		return [8]bool{
			at(x, y-1), at(x+1, y-1), at(x+1, y), at(x+1, y+1),
			at(x, y+1), at(x-1, y+1), at(x-1, y), at(x-1, y-1),
		}
	}

	for {
		changed := false
		for pass := 0; pass < 2; pass++ {
			var remove [][2]int
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					if !cur[y][x] {
						continue
					}
					n := neighbors(x, y)
					count := 0
					for _, v := range n {
						if v {
							count++
						}
					}
					if count < 2 || count > 6 {
						continue
					}
					transitions := 0
					for i := 0; i < 8; i++ {
						if !n[i] && n[(i+1)%8] {
							transitions++
						}
					}
					if transitions != 1 {
						continue
					}
					// Pass-dependent neighbor products (P2*P4*P6 etc.).
					if pass == 0 {
						if (n[0] && n[2] && n[4]) || (n[2] && n[4] && n[6]) {
							continue
						}
					} else {
						if (n[0] && n[2] && n[6]) || (n[0] && n[4] && n[6]) {
							continue
						}
					}
					remove = append(remove, [2]int{x, y})
				}
			}
			for _, p := range remove {
				cur[p[1]][p[0]] = false
			}
			if len(remove) > 0 {
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if cur[y][x] {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}

// Threshold produces a binary mask: pixels >= cutoff become 255.
func Threshold(g *image.Gray, cutoff uint8) *image.Gray {
	b := g.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if g.GrayAt(b.Min.X+x, b.Min.Y+y).Y >= cutoff {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}
