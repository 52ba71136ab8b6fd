package art

import (
	"image/color"
	"slices"

	"github.com/inkplot/inkplot/pkg/geom"
)

// Path is a single pen stroke: a sequence of points, optionally closed
// into a loop. Stroke and Fill are nil-able; a nil Fill means no fill and
// a nil Stroke falls back to the drawing's foreground default at render
// time.
type Path struct {
	Points []geom.Point
	Closed bool
	Stroke color.Color
	Width  float64
	Fill   color.Color
	Layer  int     // output layer, e.g. one per laser/pen pass
	Value  float64 // normalized paint value in [0, 1], read by color schemes
}

// Drawing is a finished piece of artwork in abstract units. Width and
// Height define the viewBox; paths may extend beyond it but are normally
// confined by the algorithm's margin.
type Drawing struct {
	Width, Height float64
	Background    color.Color
	Paths         []Path
}

// Layers returns the sorted set of distinct layer indices used by the
// drawing's paths.
func (d *Drawing) Layers() []int {
	seen := make(map[int]bool)
	var layers []int
	for _, p := range d.Paths {
		if !seen[p.Layer] {
			seen[p.Layer] = true
			layers = append(layers, p.Layer)
		}
	}
	slices.Sort(layers)
	return layers
}

// PointCount returns the total number of points across all paths.
func (d *Drawing) PointCount() int {
	n := 0
	for _, p := range d.Paths {
		n += len(p.Points)
	}
	return n
}
