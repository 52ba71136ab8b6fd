package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/cache"
	"github.com/inkplot/inkplot/pkg/errors"
	"github.com/inkplot/inkplot/pkg/palette"
	"github.com/inkplot/inkplot/pkg/pipeline"
)

// traceOpts holds the command-line flags for the trace command.
type traceOpts struct {
	mode       string  // "line" or "contour"
	sigma      float64 // Gaussian pre-blur
	low        float64 // edge hysteresis low threshold
	high       float64 // edge hysteresis high threshold
	invert     bool    // trace light-on-dark input
	removeBG   bool    // mask the border-connected background
	epsilon    float64 // path simplification tolerance
	density    int     // spline smoothing density
	stroke     float64 // pen width
	maxSide    int     // working resolution bound
	scheme     string  // color scheme
	formatsStr string  // comma-separated output formats
	output     string  // output file or base path
	noCache    bool    // disable caching
	refresh    bool    // recompute even when cached
}

// traceCommand creates the trace command for vectorizing raster images.
func (c *CLI) traceCommand() *cobra.Command {
	var opts traceOpts

	cmd := &cobra.Command{
		Use:   "trace [image]",
		Short: "Trace a raster image into plottable line art",
		Long: `Trace a raster image (PNG, JPEG, GIF, TIFF, BMP) into plottable line art.

Two modes are available:
  line     edge detection plus skeletonization, producing open strokes (default)
  contour  closed outlines of the bright regions

Results are cached by image content, so re-tracing the same file is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTrace(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "trace mode: line (default), contour")
	cmd.Flags().Float64Var(&opts.sigma, "sigma", 0, "Gaussian pre-blur radius (0 disables)")
	cmd.Flags().Float64Var(&opts.low, "low", 0, "edge hysteresis low threshold (default 100)")
	cmd.Flags().Float64Var(&opts.high, "high", 0, "edge hysteresis high threshold (default 250)")
	cmd.Flags().BoolVar(&opts.invert, "invert", false, "trace light-on-dark input")
	cmd.Flags().BoolVar(&opts.removeBG, "remove-background", false, "mask the border-connected background")
	cmd.Flags().Float64Var(&opts.epsilon, "epsilon", 0, "path simplification tolerance (default 1.2)")
	cmd.Flags().IntVar(&opts.density, "density", 0, "spline smoothing density (<= 1 disables)")
	cmd.Flags().Float64Var(&opts.stroke, "stroke-width", 0, "pen width in drawing units (default 1.5)")
	cmd.Flags().IntVar(&opts.maxSide, "max-side", 0, "working resolution bound (default 1024)")
	cmd.Flags().StringVarP(&opts.scheme, "scheme", "s", "", "color scheme: grayscale (default), blackwhite, colorful, laser")
	cmd.Flags().StringVarP(&opts.formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")

	return cmd
}

func (c *CLI) runTrace(ctx context.Context, input string, opts *traceOpts) error {
	imageData, err := os.ReadFile(input)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeFileNotFound, "no such file: %s", input)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", input)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Tracing %s...", filepath.Base(input)))
	spinner.Start()

	drawing, hit, err := runner.Trace(ctx, imageData, pipeline.TraceOptions{
		Mode:             opts.mode,
		Sigma:            opts.sigma,
		LowThreshold:     opts.low,
		HighThreshold:    opts.high,
		Invert:           opts.invert,
		RemoveBackground: opts.removeBG,
		Epsilon:          opts.epsilon,
		Density:          opts.density,
		StrokeWidth:      opts.stroke,
		MaxSide:          opts.maxSide,
		Refresh:          opts.refresh,
	})
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Traced %s", filepath.Base(input)))
	printStats(len(drawing.Paths), drawing.PointCount(), hit)

	var drawingHash string
	if data, err := art.MarshalDrawing(drawing); err == nil {
		drawingHash = cache.Hash(data)
	}

	scheme, err := palette.Lookup(schemeOrDefault(opts.scheme))
	if err != nil {
		return err
	}
	palette.Paint(drawing, scheme)

	renderOpts := pipeline.Options{
		Algorithm: "trace",
		Scheme:    schemeOrDefault(opts.scheme),
		Formats:   parseFormats(opts.formatsStr),
		PNGScale:  pipeline.DefaultPNGScale,
		Refresh:   opts.refresh,
	}
	renderOpts.Params.SetDefaults()
	if opts.stroke > 0 {
		renderOpts.Params.StrokeWidth = opts.stroke
	}

	artifacts, _, err := runner.RenderWithCacheInfo(ctx, drawing, drawingHash, renderOpts)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(input, filepath.Ext(input)) + "-traced"
	return writeArtifacts(opts.output, base, artifacts)
}

func schemeOrDefault(s string) string {
	if s == "" {
		return palette.DefaultScheme
	}
	return s
}
