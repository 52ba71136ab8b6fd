// Package palette provides the color schemes that paint drawings.
//
// A Scheme maps a path's normalized paint value (0 to 1) to a color.
// Algorithms set the value from whatever statistic makes sense for them
// (crystal mass, cell age, layer index); schemes stay ignorant of the
// algorithm that produced the drawing.
//
// The laser scheme additionally relies on 1-D k-means clustering
// (AssignLayers) to split a drawing into a small number of output layers,
// one per cutting or pen pass.
package palette
