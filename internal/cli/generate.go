package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/config"
	"github.com/inkplot/inkplot/pkg/errors"
	"github.com/inkplot/inkplot/pkg/gallery"
	"github.com/inkplot/inkplot/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	preset     string   // preset name from the catalog
	scheme     string   // color scheme name
	formatsStr string   // comma-separated output formats
	output     string   // output file (single format) or base path (multiple)
	extras     []string // algorithm-specific key=value overrides
	seed       uint64   // random seed
	size       int      // canvas size in drawing units
	steps      int      // simulation step budget
	margin     float64  // fraction of the canvas the artwork may fill
	stroke     float64  // pen width in drawing units
	noCache    bool     // disable caching
	refresh    bool     // recompute even when cached
	save       bool     // keep the result in the local gallery
}

// generateCommand creates the generate command for producing artworks.
// Run without arguments in a terminal, it opens an interactive picker.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [algorithm]",
		Short: "Generate an artwork from an algorithm or preset",
		Long: `Generate an artwork from a registered algorithm or a named preset.

The same algorithm, parameters, and seed always produce the same output,
so any artwork can be regenerated from the values printed after a run.
Results are cached locally for faster subsequent runs.

Algorithm-specific parameters are passed with --set, e.g.:

  inkplot generate snowflake --set beta=1.9 --set layers=3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			algorithm := ""
			if len(args) > 0 {
				algorithm = args[0]
			}
			return c.runGenerate(cmd.Context(), algorithm, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "preset name (see 'inkplot presets list')")
	cmd.Flags().StringVarP(&opts.scheme, "scheme", "s", "", "color scheme: grayscale (default), blackwhite, colorful, laser")
	cmd.Flags().StringVarP(&opts.formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringArrayVar(&opts.extras, "set", nil, "algorithm parameter override (key=value, repeatable)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default 42)")
	cmd.Flags().IntVar(&opts.size, "size", 0, "canvas size in drawing units (default 500)")
	cmd.Flags().IntVar(&opts.steps, "steps", 0, "simulation step budget (default 500)")
	cmd.Flags().Float64Var(&opts.margin, "margin", 0, "fraction of the canvas the artwork may fill (default 0.85)")
	cmd.Flags().Float64Var(&opts.stroke, "stroke-width", 0, "pen width in drawing units (default 1.5)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().BoolVar(&opts.save, "save", false, "keep the result in the local gallery")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, algorithm string, opts *generateOpts) error {
	if algorithm == "" && opts.preset == "" {
		choice, err := pickAlgorithm()
		if err != nil {
			return err
		}
		if choice == nil {
			return nil // user backed out
		}
		algorithm = choice.Algorithm
		opts.preset = choice.Preset
	}

	pipeOpts, err := buildPipelineOptions(algorithm, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s (seed %d)...", pipeOpts.Algorithm, pipeOpts.Params.Seed))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		spinner.Stop()
		if errors.Is(err, errors.ErrCodeCancelled) {
			printWarning("Cancelled")
			return err
		}
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Generated %s", pipeOpts.Algorithm))
	printStats(result.Stats.PathCount, result.Stats.PointCount, result.CacheInfo.DrawingHit)
	prog.done(fmt.Sprintf("Pipeline finished, %d paths", result.Stats.PathCount))

	if err := writeArtifacts(opts.output, defaultBaseName(pipeOpts), result.Artifacts); err != nil {
		return err
	}

	if opts.save {
		artwork, err := saveToGallery(ctx, runner, pipeOpts, result)
		if err != nil {
			return err
		}
		printDetail("Saved to gallery as %s", artwork.ID)
		printNextStep("Browse your gallery", "inkplot gallery serve")
	}
	return nil
}

// buildPipelineOptions assembles pipeline options from the preset (if
// any) and the command-line flags. Flags win over preset values.
func buildPipelineOptions(algorithm string, opts *generateOpts) (pipeline.Options, error) {
	extra, err := parseExtras(opts.extras)
	if err != nil {
		return pipeline.Options{}, err
	}
	overrides := art.Params{
		Size:        opts.size,
		Steps:       opts.steps,
		Seed:        opts.seed,
		Margin:      opts.margin,
		StrokeWidth: opts.stroke,
		Extra:       extra,
	}

	pipeOpts := pipeline.Options{
		Algorithm: algorithm,
		Preset:    opts.preset,
		Scheme:    opts.scheme,
		Formats:   parseFormats(opts.formatsStr),
		Refresh:   opts.refresh,
	}

	if opts.preset != "" {
		presets, err := config.Load()
		if err != nil {
			return pipeline.Options{}, err
		}
		p, err := presets.Resolve(opts.preset, overrides)
		if err != nil {
			return pipeline.Options{}, err
		}
		if pipeOpts.Algorithm == "" {
			pipeOpts.Algorithm = p.Algorithm
		}
		if pipeOpts.Scheme == "" {
			pipeOpts.Scheme = p.Scheme
		}
		pipeOpts.Params = p.Params
	} else {
		pipeOpts.Params = overrides
	}
	return pipeOpts, nil
}

// parseExtras parses repeated key=value flags into a parameter map.
func parseExtras(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	extra := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.New(errors.ErrCodeInvalidParam, "invalid --set value %q (expected key=value)", pair)
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidParam, "invalid --set value %q: %q is not a number", pair, value)
		}
		extra[key] = f
	}
	return extra, nil
}

// defaultBaseName derives an output base name like "snowflake-42".
func defaultBaseName(opts pipeline.Options) string {
	name := opts.Algorithm
	if opts.Preset != "" {
		name = opts.Preset
	}
	return fmt.Sprintf("%s-%d", name, opts.Params.Seed)
}

// writeArtifacts writes each rendered format to disk. With a single
// format, output is used verbatim when set; with several, output (or
// the derived base name) becomes the base path.
func writeArtifacts(output, base string, artifacts map[string][]byte) error {
	if output != "" {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	for format, data := range artifacts {
		path := base + "." + format
		if output != "" && len(artifacts) == 1 && filepath.Ext(output) != "" {
			path = output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		printFile(path)
	}
	return nil
}

func saveToGallery(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, result *pipeline.Result) (*gallery.Artwork, error) {
	store, err := gallery.NewFileStore("")
	if err != nil {
		return nil, err
	}
	g, err := gallery.New(store, runner, "")
	if err != nil {
		return nil, err
	}
	return g.AddResult(ctx, opts, result)
}
