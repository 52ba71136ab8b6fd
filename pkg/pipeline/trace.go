package pipeline

import (
	"context"
	"time"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/cache"
	"github.com/inkplot/inkplot/pkg/errors"
	"github.com/inkplot/inkplot/pkg/observability"
	"github.com/inkplot/inkplot/pkg/raster"
	"github.com/inkplot/inkplot/pkg/trace"
)

// Trace modes.
const (
	// TraceModeLine produces a one-line style drawing: edge detection,
	// skeletonization, and open stroke paths.
	TraceModeLine = "line"

	// TraceModeContour produces closed outlines of the dark regions.
	TraceModeContour = "contour"
)

// DefaultTraceMaxSide bounds the working resolution of traced images.
const DefaultTraceMaxSide = 1024

// TraceOptions configures image tracing.
type TraceOptions struct {
	Mode             string  `json:"mode,omitempty"`
	Sigma            float64 `json:"sigma,omitempty"`             // Gaussian pre-blur; 0 disables
	LowThreshold     float64 `json:"low_threshold,omitempty"`     // hysteresis low (0-255)
	HighThreshold    float64 `json:"high_threshold,omitempty"`    // hysteresis high (0-255)
	Invert           bool    `json:"invert,omitempty"`            // trace light-on-dark input
	RemoveBackground bool    `json:"remove_background,omitempty"` // mask the border-connected background
	Epsilon          float64 `json:"epsilon,omitempty"`           // path simplification tolerance
	Density          int     `json:"density,omitempty"`           // spline smoothing density; <= 1 disables
	StrokeWidth      float64 `json:"stroke_width,omitempty"`
	MaxSide          int     `json:"max_side,omitempty"`
	Refresh          bool    `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults fills defaults and checks the options.
// It is idempotent.
func (o *TraceOptions) ValidateAndSetDefaults() error {
	if o.Mode == "" {
		o.Mode = TraceModeLine
	}
	if o.LowThreshold == 0 {
		o.LowThreshold = raster.DefaultLowThreshold
	}
	if o.HighThreshold == 0 {
		o.HighThreshold = raster.DefaultHighThreshold
	}
	if o.Epsilon == 0 {
		o.Epsilon = trace.DefaultEpsilon
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = art.DefaultStrokeWidth
	}
	if o.MaxSide == 0 {
		o.MaxSide = DefaultTraceMaxSide
	}

	if o.Mode != TraceModeLine && o.Mode != TraceModeContour {
		return errors.New(errors.ErrCodeInvalidParam,
			"invalid trace mode: %q (must be %q or %q)", o.Mode, TraceModeLine, TraceModeContour)
	}
	if o.LowThreshold >= o.HighThreshold {
		return errors.New(errors.ErrCodeInvalidParam,
			"low threshold %g must be below high threshold %g", o.LowThreshold, o.HighThreshold)
	}
	return nil
}

// Trace vectorizes raw image bytes into a drawing, with caching keyed
// on the image content and the trace options.
func (r *Runner) Trace(ctx context.Context, imageData []byte, opts TraceOptions) (*art.Drawing, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.TraceKey(cache.Hash(imageData), cache.TraceKeyOpts{
		Mode:             opts.Mode,
		Sigma:            opts.Sigma,
		LowThreshold:     opts.LowThreshold,
		HighThreshold:    opts.HighThreshold,
		Invert:           opts.Invert,
		RemoveBackground: opts.RemoveBackground,
		Epsilon:          opts.Epsilon,
		Density:          opts.Density,
		StrokeWidth:      opts.StrokeWidth,
		MaxSide:          opts.MaxSide,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if d, err := art.UnmarshalDrawing(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "trace")
				return d, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "trace")
	}

	start := time.Now()
	d, err := traceImage(imageData, opts)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Info("traced image",
		"mode", opts.Mode,
		"paths", len(d.Paths),
		"duration", time.Since(start))

	if data, err := art.MarshalDrawing(d); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLTrace); err == nil {
			observability.Cache().OnCacheSet(ctx, "trace", len(data))
		}
	}
	return d, false, nil
}

// traceImage runs the raster pipeline: decode, resize, optional
// background removal and blur, edge detection, then vectorization.
func traceImage(imageData []byte, opts TraceOptions) (*art.Drawing, error) {
	g, err := raster.Decode(imageData)
	if err != nil {
		return nil, err
	}
	g = raster.Resize(g, opts.MaxSide)

	if opts.Invert {
		g = raster.Invert(g)
	}
	if opts.RemoveBackground {
		g = raster.RemoveBackground(g, 32)
	}
	if opts.Sigma > 0 {
		g = raster.GaussianBlur(g, opts.Sigma)
	}

	edges := raster.DetectEdges(g, opts.LowThreshold, opts.HighThreshold)

	traceOpts := trace.Options{
		Epsilon:     opts.Epsilon,
		Density:     opts.Density,
		StrokeWidth: opts.StrokeWidth,
	}
	if opts.Mode == TraceModeContour {
		b := edges.Bounds()
		return &art.Drawing{
			Width:  float64(b.Dx()),
			Height: float64(b.Dy()),
			Paths:  trace.ContourPaths(edges, traceOpts),
		}, nil
	}
	return trace.StrokeDrawing(raster.Thin(edges), traceOpts), nil
}
