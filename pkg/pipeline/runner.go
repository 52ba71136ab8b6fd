package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/cache"
	"github.com/inkplot/inkplot/pkg/errors"
	"github.com/inkplot/inkplot/pkg/observability"
	"github.com/inkplot/inkplot/pkg/palette"
	"github.com/inkplot/inkplot/pkg/render/sink"
)

// Runner executes the pipeline with caching. It is stateless apart from
// the cache and logger; multiple goroutines can share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer, and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete generate → paint → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	genStart := time.Now()
	drawing, drawingHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.PathCount = len(drawing.Paths)
	result.Stats.PointCount = drawing.PointCount()
	result.CacheInfo.DrawingHit = drawingHit

	if data, err := art.MarshalDrawing(drawing); err == nil {
		result.DrawingHash = cache.Hash(data)
	}

	r.Logger.Info("generated drawing",
		"algorithm", opts.Algorithm,
		"paths", result.Stats.PathCount,
		"points", result.Stats.PointCount,
		"cached", drawingHit,
		"duration", result.Stats.GenerateTime)

	scheme, err := palette.Lookup(opts.Scheme)
	if err != nil {
		return nil, err
	}
	palette.Paint(drawing, scheme)
	result.Drawing = drawing

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, drawing, result.DrawingHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo runs the algorithm with caching and reports
// whether the drawing came from cache. The returned drawing is
// unpainted.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*art.Drawing, bool, error) {
	algo, err := art.Lookup(opts.Algorithm)
	if err != nil {
		return nil, false, err
	}

	key := r.Keyer.DrawingKey(opts.Algorithm, cache.DrawingKeyOpts{
		Size:        opts.Params.Size,
		Steps:       opts.Params.Steps,
		Seed:        opts.Params.Seed,
		Margin:      opts.Params.Margin,
		StrokeWidth: opts.Params.StrokeWidth,
		Extra:       opts.Params.Extra,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if d, err := art.UnmarshalDrawing(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "drawing")
				return d, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "drawing")
	}

	observability.Pipeline().OnGenerateStart(ctx, opts.Algorithm, opts.Params.Seed)
	start := time.Now()
	drawing, err := algo.Generate(ctx, opts.Params)
	observability.Pipeline().OnGenerateComplete(ctx, opts.Algorithm, pathCount(drawing), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := art.MarshalDrawing(drawing); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLDrawing); err == nil {
			observability.Cache().OnCacheSet(ctx, "drawing", len(data))
		}
	}
	return drawing, false, nil
}

// Generate is a convenience wrapper discarding the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (*art.Drawing, error) {
	d, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return d, err
}

// RenderWithCacheInfo renders every requested format, serving from
// cache when all formats are present. The drawing must already be
// painted; drawingHash identifies the unpainted drawing.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *art.Drawing, drawingHash string, opts Options) (map[string][]byte, bool, error) {
	artifactKey := func(format string) string {
		return r.Keyer.ArtifactKey(drawingHash, cache.ArtifactKeyOpts{
			Format:      format,
			Scheme:      opts.Scheme,
			StrokeWidth: opts.Params.StrokeWidth,
		})
	}

	if !opts.Refresh && drawingHash != "" {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, artifactKey(format))
			if err != nil || !hit {
				artifacts = nil
				break
			}
			artifacts[format] = data
		}
		if artifacts != nil {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := r.render(d, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if drawingHash != "" {
		for format, data := range artifacts {
			if err := r.Cache.Set(ctx, artifactKey(format), data, cache.TTLArtifact); err == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}
	return artifacts, false, nil
}

func (r *Runner) render(d *art.Drawing, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = sink.RenderSVG(d)
		case FormatPNG:
			data, err := sink.RenderPNG(d, sink.WithScale(opts.PNGScale))
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		case FormatJSON:
			data, err := sink.RenderJSON(d,
				sink.WithJSONProvenance(opts.Algorithm, int64(opts.Params.Seed), opts.Scheme),
				sink.WithJSONPreset(opts.Preset),
			)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}
	return artifacts, nil
}

// Close releases the cache backend.
func (r *Runner) Close() error { return r.Cache.Close() }

func pathCount(d *art.Drawing) int {
	if d == nil {
		return 0
	}
	return len(d.Paths)
}
