// Package pkg provides the core libraries for inkplot generative art.
//
// # Overview
//
// Inkplot turns parametric algorithms into plotter-ready line art. The
// pkg directory is organized around the data flow:
//
//	Params + Seed
//	     ↓
//	[art] package (algorithm registry, drawing model)
//	     ↓
//	[palette] package (color schemes, layer assignment)
//	     ↓
//	[render/sink] package (SVG, PNG, JSON output)
//
// Image tracing is the second entry point into the same model:
//
//	raster image
//	     ↓
//	[raster] package (grayscale, blur, edge detection, thinning)
//	     ↓
//	[trace] package (contours, strokes, simplification, smoothing)
//	     ↓
//	*art.Drawing
//
// # Quick Start
//
// Generate a snowflake and render it:
//
//	import (
//	    "context"
//	    "github.com/inkplot/inkplot/pkg/art"
//	    _ "github.com/inkplot/inkplot/pkg/art/snowflake"
//	    "github.com/inkplot/inkplot/pkg/palette"
//	    "github.com/inkplot/inkplot/pkg/render/sink"
//	)
//
//	algo, _ := art.Lookup("snowflake")
//	d, _ := algo.Generate(context.Background(), art.Params{Seed: 42})
//	palette.Paint(d, palette.Grayscale{})
//	svg := sink.RenderSVG(d)
//
// Or run the whole thing with caching through the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{Algorithm: "snowflake"})
//
// # Main Packages
//
// [art] - The drawing model (paths, layers, params) and the algorithm
// registry. Algorithms live in subpackages ([art/snowflake],
// [art/scribble]) and register themselves on import.
//
// [geom] - Points, parametric curves, and natural cubic splines.
//
// [raster] - Grayscale image operations: loading, resizing, Gaussian
// blur, Laplacian-of-Gaussian edge detection, skeleton thinning, and
// background removal.
//
// [trace] - Vectorization of binary images into contour and stroke
// paths, with simplification and spline smoothing.
//
// [palette] - Color schemes mapping path values to stroke colors, and
// k-means layer assignment for multi-pen plotting.
//
// [render/sink] - Output formats: deterministic SVG, rasterized PNG,
// and a JSON export with provenance.
//
// [pipeline] - The generate → paint → render orchestration shared by
// the CLI and the gallery server, with content-addressed caching.
//
// [cache] - Cache backends (file, Redis, null) and key derivation.
//
// [config] - Embedded and user-defined preset catalogs.
//
// [gallery] - Artwork persistence (file or MongoDB) and the HTTP
// gallery server.
//
// [observability] - Hook points for pipeline and cache instrumentation.
//
// [art]: https://pkg.go.dev/github.com/inkplot/inkplot/pkg/art
// [art/snowflake]: https://pkg.go.dev/github.com/inkplot/inkplot/pkg/art/snowflake
// [art/scribble]: https://pkg.go.dev/github.com/inkplot/inkplot/pkg/art/scribble
// [geom]: https://pkg.go.dev/github.com/inkplot/inkplot/pkg/geom
// [raster]: https://pkg.go.dev/github.com/inkplot/inkplot/pkg/raster
// [trace]: https://pkg.go.dev/github.com/inkplot/inkplot/pkg/trace
// [palette]: https://pkg.go.dev/github.com/inkplot/inkplot/pkg/palette
// [render/sink]: https://pkg.go.dev/github.com/inkplot/inkplot/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/inkplot/inkplot/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/inkplot/inkplot/pkg/cache
// [config]: https://pkg.go.dev/github.com/inkplot/inkplot/pkg/config
// [gallery]: https://pkg.go.dev/github.com/inkplot/inkplot/pkg/gallery
// [observability]: https://pkg.go.dev/github.com/inkplot/inkplot/pkg/observability
package pkg
