// Package pipeline provides the core artwork pipeline for inkplot.
//
// This package implements the complete generate → paint → render
// pipeline used by both the CLI and the gallery server. Centralizing it
// keeps caching behavior and defaults identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: run an algorithm to produce a drawing
//  2. Paint: apply a color scheme to the drawing's paths
//  3. Render: emit output bytes in one or more formats (SVG, PNG, JSON)
//
// Generation and rendering are cached; painting is cheap and re-applied
// on every run. Because algorithms are deterministic per seed, cached
// entries are exact equivalents of fresh computation.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Algorithm: "snowflake",
//	    Scheme:    "laser",
//	    Formats:   []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"slices"
	"time"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/errors"
	"github.com/inkplot/inkplot/pkg/palette"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG, FormatJSON}

// DefaultPNGScale is the raster scale factor for PNG output.
const DefaultPNGScale = 2.0

// Options configures a pipeline run. The zero value plus an Algorithm
// is runnable after ValidateAndSetDefaults.
type Options struct {
	// Algorithm names the registered generator to run.
	Algorithm string `json:"algorithm"`

	// Preset records the preset this run came from, if any. Informational;
	// preset resolution happens before the pipeline runs.
	Preset string `json:"preset,omitempty"`

	// Params are the algorithm parameters.
	Params art.Params `json:"params"`

	// Scheme selects the color scheme (default grayscale).
	Scheme string `json:"scheme,omitempty"`

	// Formats lists the outputs to render (default svg).
	Formats []string `json:"formats,omitempty"`

	// PNGScale is the raster scale factor for PNG output (default 2).
	PNGScale float64 `json:"png_scale,omitempty"`

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults fills defaults and checks the options.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Scheme == "" {
		o.Scheme = palette.DefaultScheme
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	o.Params.SetDefaults()

	if o.Algorithm == "" {
		return errors.New(errors.ErrCodeInvalidParam, "algorithm is required")
	}
	if _, err := art.Lookup(o.Algorithm); err != nil {
		return err
	}
	if _, err := palette.Lookup(o.Scheme); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if !slices.Contains(Formats, f) {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %q (must be one of: svg, png, json)", f)
		}
	}
	return o.Params.Validate()
}

// Result holds the outcome of a pipeline run.
type Result struct {
	// Drawing is the painted drawing.
	Drawing *art.Drawing

	// DrawingHash is the content hash of the unpainted drawing, used as
	// the artifact cache key root and as a stable artwork identity.
	DrawingHash string

	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte

	// Stats captures per-stage timings and drawing size.
	Stats Stats

	// CacheInfo reports which stages were cache hits.
	CacheInfo CacheInfo
}

// Stats captures pipeline timing and output size information.
type Stats struct {
	GenerateTime time.Duration
	RenderTime   time.Duration
	PathCount    int
	PointCount   int
}

// CacheInfo reports cache hits per pipeline stage.
type CacheInfo struct {
	DrawingHit bool
	RenderHit  bool
}
