// Package trace converts binary raster masks into vector geometry.
//
// Two extraction modes cover the two kinds of masks the pipeline
// produces:
//
//   - Contours follows the outer boundaries of filled regions
//     (Moore neighbor tracing). Used for lattice growth output, where each
//     color layer is a set of solid blobs.
//   - Strokes walks one-pixel-wide skeletons into open polylines. Used for
//     edge-detected line drawings.
//
// Extracted polylines can be simplified (Ramer-Douglas-Peucker) and
// smoothed (natural cubic spline resampling) before being assembled into
// an art.Drawing.
package trace
