package trace

import (
	"image"

	"github.com/inkplot/inkplot/pkg/geom"
)

// minContourLen drops specks that would render as dots.
const minContourLen = 4

// Contours extracts the outer boundary of every filled region in a binary
// mask using Moore neighbor tracing. Each contour is a closed loop of
// pixel coordinates in image space.
func Contours(mask *image.Gray) [][]geom.Point {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	on := func(x, y int) bool {
		if x < 0 || x >= w || y < 0 || y >= h {
			return false
		}
		return mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y > 127
	}

	visited := make([]bool, w*h)
	var contours [][]geom.Point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// A start pixel is foreground, unvisited, and entered from
			// a background pixel to its left.
			if !on(x, y) || visited[y*w+x] || on(x-1, y) {
				continue
			}
			c := traceBoundary(on, x, y, w, h)
			for _, p := range c {
				visited[int(p.Y)*w+int(p.X)] = true
			}
			if len(c) >= minContourLen {
				contours = append(contours, c)
			}
		}
	}
	return contours
}

// Moore neighborhood in clockwise order starting west.
var moore = [8][2]int{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// traceBoundary walks the boundary of the region containing (sx, sy),
// entered from the west, and returns the closed pixel loop.
func traceBoundary(on func(x, y int) bool, sx, sy, w, h int) []geom.Point {
	contour := []geom.Point{{X: float64(sx), Y: float64(sy)}}
	cx, cy := sx, sy
	backtrack := 0 // index into moore of the background pixel we came from

	// A boundary cannot be longer than the pixel count.
	for step := 0; step <= w*h; step++ {
		found := false
		for i := 0; i < 8; i++ {
			idx := (backtrack + i) % 8
			nx, ny := cx+moore[idx][0], cy+moore[idx][1]
			if on(nx, ny) {
				// Next backtrack is the neighbor before the hit,
				// rotated to be relative to the new pixel.
				backtrack = (idx + 5) % 8
				cx, cy = nx, ny
				found = true
				break
			}
		}
		if !found {
			break // isolated pixel
		}
		if cx == sx && cy == sy {
			break
		}
		contour = append(contour, geom.Point{X: float64(cx), Y: float64(cy)})
	}
	return contour
}

// Strokes walks a skeleton mask into open polylines. Endpoints (pixels
// with a single neighbor) seed the walks so that lines are traced
// end-to-end; leftover cycles are walked from an arbitrary pixel.
func Strokes(mask *image.Gray) [][]geom.Point {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	on := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			on[y*w+x] = mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y > 127
		}
	}

	neighborCount := func(x, y int) int {
		n := 0
		for _, d := range moore {
			nx, ny := x+d[0], y+d[1]
			if nx >= 0 && nx < w && ny >= 0 && ny < h && on[ny*w+nx] {
				n++
			}
		}
		return n
	}

	walk := func(x, y int) []geom.Point {
		var line []geom.Point
		for {
			on[y*w+x] = false
			line = append(line, geom.Point{X: float64(x), Y: float64(y)})
			nx, ny, found := -1, -1, false
			for _, d := range moore {
				cx, cy := x+d[0], y+d[1]
				if cx >= 0 && cx < w && cy >= 0 && cy < h && on[cy*w+cx] {
					nx, ny, found = cx, cy, true
					break
				}
			}
			if !found {
				return line
			}
			x, y = nx, ny
		}
	}

	var strokes [][]geom.Point
	// First pass: start from endpoints for clean end-to-end lines.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if on[y*w+x] && neighborCount(x, y) == 1 {
				strokes = append(strokes, walk(x, y))
			}
		}
	}
	// Second pass: whatever remains is cyclic; walk from any pixel.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if on[y*w+x] {
				strokes = append(strokes, walk(x, y))
			}
		}
	}

	var kept [][]geom.Point
	for _, s := range strokes {
		if len(s) >= minContourLen {
			kept = append(kept, s)
		}
	}
	return kept
}
