// Package sink provides output format renderers for drawings.
//
// # Overview
//
// A "sink" transforms a finished [art.Drawing] into a final output format.
// This package provides renderers for:
//
//   - SVG: scalable vector output, the primary plotter format
//   - PNG: raster preview output
//   - JSON: drawing data export for external tools
//
// # SVG Output
//
// [RenderSVG] produces plotter-friendly SVG:
//
//   - One <g> group per output layer, in ascending layer order
//   - Stable path ordering, so identical drawings yield identical bytes
//   - Configurable coordinate precision
//
// Basic usage:
//
//	svg := sink.RenderSVG(d,
//	    sink.WithPrecision(2),
//	    sink.WithTitle("snowflake #42"),
//	)
//
// # JSON Output
//
// [RenderJSON] exports the complete drawing as JSON, enabling:
//
//   - Integration with external plotting tools
//   - Caching of generated drawings
//   - Round-trip rendering (re-import and render identically)
//
// The JSON can record provenance (algorithm, seed, scheme) via
// [WithJSONProvenance] so a drawing can be regenerated exactly.
//
// # PNG Output
//
// [RenderPNG] rasterizes the drawing directly with a 2D canvas; no
// external converter is required. Use [WithScale] for higher resolution:
//
//	png, err := sink.RenderPNG(d, sink.WithScale(2))
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Create a renderer function: func RenderFoo(d *art.Drawing, opts ...FooOption) ([]byte, error)
//  2. Define option types for configuration
//  3. Access d.Paths for strokes and d.Layers() for layer grouping
//  4. Register in internal/cli for CLI support
//
// The existing sinks provide examples: svg.go for the primary output,
// json.go for data export, png.go for rasterization.
//
// [art.Drawing]: github.com/inkplot/inkplot/pkg/art.Drawing
package sink
