package trace

import (
	"image"
	"image/color"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/geom"
)

// Options controls vectorization of a mask.
type Options struct {
	Epsilon     float64     // RDP tolerance in pixels; 0 disables simplification
	Density     int         // spline resampling density; <= 1 disables smoothing
	StrokeWidth float64     // pen width for produced paths
	Stroke      color.Color // stroke color; nil defers to the renderer default
	Layer       int         // output layer for produced paths
}

// DefaultEpsilon is a simplification tolerance that removes pixel
// staircasing without visibly changing shapes.
const DefaultEpsilon = 1.2

// ContourPaths vectorizes the filled regions of a mask into closed paths.
func ContourPaths(mask *image.Gray, o Options) []art.Path {
	var paths []art.Path
	for _, c := range Contours(mask) {
		paths = append(paths, art.Path{
			Points: refine(c, o, true),
			Closed: true,
			Stroke: o.Stroke,
			Width:  o.StrokeWidth,
			Layer:  o.Layer,
		})
	}
	return paths
}

// StrokePaths vectorizes a skeleton mask into open paths.
func StrokePaths(mask *image.Gray, o Options) []art.Path {
	var paths []art.Path
	for _, s := range Strokes(mask) {
		paths = append(paths, art.Path{
			Points: refine(s, o, false),
			Stroke: o.Stroke,
			Width:  o.StrokeWidth,
			Layer:  o.Layer,
		})
	}
	return paths
}

// StrokeDrawing vectorizes a skeleton mask into a complete drawing sized
// to the mask.
func StrokeDrawing(mask *image.Gray, o Options) *art.Drawing {
	b := mask.Bounds()
	return &art.Drawing{
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
		Paths:  StrokePaths(mask, o),
	}
}

// refine applies simplification then smoothing. Closed loops get their
// first point appended before smoothing so the spline meets itself.
func refine(points []geom.Point, o Options, closed bool) []geom.Point {
	pts := Simplify(points, o.Epsilon)
	if o.Density > 1 {
		if closed && len(pts) > 2 {
			pts = append(pts, pts[0])
		}
		pts = Smooth(pts, o.Density)
	}
	return pts
}
