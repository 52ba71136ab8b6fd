// Package render and its subpackages turn drawings into output files.
//
// The [sink] subpackage holds the format renderers (SVG, PNG, JSON).
// This parent package exists to group them and may grow shared helpers
// if more formats are added.
//
// [sink]: github.com/inkplot/inkplot/pkg/render/sink
package render
