package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/cache"
	"github.com/inkplot/inkplot/pkg/errors"

	_ "github.com/inkplot/inkplot/pkg/art/scribble"
	_ "github.com/inkplot/inkplot/pkg/art/snowflake"
)

func testRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	return NewRunner(c, nil, log.New(io.Discard))
}

func testOptions() Options {
	return Options{
		Algorithm: "scribble",
		Params:    art.Params{Size: 120, Seed: 7},
		Formats:   []string{FormatSVG},
	}
}

func TestOptionsValidate(t *testing.T) {
	opts := testOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.Scheme == "" || opts.PNGScale == 0 {
		t.Error("defaults not applied")
	}

	cases := []struct {
		name string
		mut  func(*Options)
		code errors.Code
	}{
		{"missing algorithm", func(o *Options) { o.Algorithm = "" }, errors.ErrCodeInvalidParam},
		{"unknown algorithm", func(o *Options) { o.Algorithm = "nope" }, errors.ErrCodeAlgorithmNotFound},
		{"unknown scheme", func(o *Options) { o.Scheme = "nope" }, errors.ErrCodeInvalidScheme},
		{"bad format", func(o *Options) { o.Formats = []string{"pdf"} }, errors.ErrCodeInvalidFormat},
		{"bad size", func(o *Options) { o.Params.Size = 4 }, errors.ErrCodeInvalidParam},
	}
	for _, tc := range cases {
		opts := testOptions()
		tc.mut(&opts)
		if err := opts.ValidateAndSetDefaults(); !errors.Is(err, tc.code) {
			t.Errorf("%s: error = %v, want %s", tc.name, err, tc.code)
		}
	}
}

func TestExecute(t *testing.T) {
	r := testRunner(t)
	result, err := r.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Drawing == nil || len(result.Drawing.Paths) == 0 {
		t.Fatal("missing drawing")
	}
	if result.DrawingHash == "" {
		t.Error("missing drawing hash")
	}
	svg := result.Artifacts[FormatSVG]
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Error("svg artifact should start with <svg")
	}
	if result.Stats.PathCount == 0 || result.Stats.PointCount == 0 {
		t.Error("stats not populated")
	}
	if result.CacheInfo.DrawingHit || result.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}
}

func TestExecuteCacheHits(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()

	first, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	second, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if !second.CacheInfo.DrawingHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact must be byte-identical to fresh render")
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, testOptions()); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	opts := testOptions()
	opts.Refresh = true
	result, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.CacheInfo.DrawingHit || result.CacheInfo.RenderHit {
		t.Error("refresh run should not report cache hits")
	}
}

func TestExecuteAllFormats(t *testing.T) {
	r := testRunner(t)
	opts := testOptions()
	opts.Formats = []string{FormatSVG, FormatPNG, FormatJSON}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	for _, format := range opts.Formats {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
}

func TestExecuteDeterministic(t *testing.T) {
	ctx := context.Background()
	a, err := testRunner(t).Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	b, err := testRunner(t).Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !bytes.Equal(a.Artifacts[FormatSVG], b.Artifacts[FormatSVG]) {
		t.Error("same options should produce byte-identical SVG across runners")
	}
	if a.DrawingHash != b.DrawingHash {
		t.Error("same options should produce the same drawing hash")
	}
}

func TestSchemeChangesArtifactNotDrawing(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()

	opts := testOptions()
	a, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	opts.Scheme = "colorful"
	b, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if a.DrawingHash != b.DrawingHash {
		t.Error("scheme must not affect the generated drawing")
	}
	if bytes.Equal(a.Artifacts[FormatSVG], b.Artifacts[FormatSVG]) {
		t.Error("scheme change should change the rendered SVG")
	}
}

func TestStrokeWidthChangesCachedDrawing(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()

	a, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	opts := testOptions()
	opts.Params.StrokeWidth = 5
	b, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if b.CacheInfo.DrawingHit {
		t.Error("stroke width change must not reuse the cached drawing")
	}
	if a.DrawingHash == b.DrawingHash {
		t.Error("stroke width is baked into paths, so the drawing hash should change")
	}
	if bytes.Equal(a.Artifacts[FormatSVG], b.Artifacts[FormatSVG]) {
		t.Error("stroke width change should change the rendered SVG")
	}

	// Cached and fresh runs must agree for each width.
	fresh, err := testRunner(t).Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !bytes.Equal(b.Artifacts[FormatSVG], fresh.Artifacts[FormatSVG]) {
		t.Error("cached pipeline should match a fresh runner byte for byte")
	}
}

func testImagePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 60, 60))
	for y := 20; y < 40; y++ {
		for x := 20; x < 40; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestTrace(t *testing.T) {
	r := testRunner(t)
	d, hit, err := r.Trace(context.Background(), testImagePNG(t), TraceOptions{})
	if err != nil {
		t.Fatalf("Trace() error: %v", err)
	}
	if hit {
		t.Error("first trace should miss the cache")
	}
	if d.Width != 60 || d.Height != 60 {
		t.Errorf("traced dims = %gx%g, want 60x60", d.Width, d.Height)
	}
	if len(d.Paths) == 0 {
		t.Error("tracing a bright square should yield paths")
	}
}

func TestTraceCached(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()
	img := testImagePNG(t)

	if _, _, err := r.Trace(ctx, img, TraceOptions{}); err != nil {
		t.Fatalf("Trace() error: %v", err)
	}
	_, hit, err := r.Trace(ctx, img, TraceOptions{})
	if err != nil {
		t.Fatalf("Trace() error: %v", err)
	}
	if !hit {
		t.Error("second trace should hit the cache")
	}
}

func TestTraceStrokeWidthChangesCachedDrawing(t *testing.T) {
	r := testRunner(t)
	ctx := context.Background()
	img := testImagePNG(t)

	a, _, err := r.Trace(ctx, img, TraceOptions{})
	if err != nil {
		t.Fatalf("Trace() error: %v", err)
	}
	b, hit, err := r.Trace(ctx, img, TraceOptions{StrokeWidth: 5})
	if err != nil {
		t.Fatalf("Trace() error: %v", err)
	}
	if hit {
		t.Error("stroke width change must not reuse the cached trace")
	}
	if len(a.Paths) == 0 || len(b.Paths) == 0 {
		t.Fatal("expected paths from both traces")
	}
	if a.Paths[0].Width == b.Paths[0].Width {
		t.Errorf("path width = %g for both traces, want different", a.Paths[0].Width)
	}
}

func TestTraceOptionsValidate(t *testing.T) {
	opts := TraceOptions{Mode: "sketch"}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidParam) {
		t.Errorf("bad mode error = %v", err)
	}

	opts = TraceOptions{LowThreshold: 200, HighThreshold: 100}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidParam) {
		t.Errorf("inverted thresholds error = %v", err)
	}

	opts = TraceOptions{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults error: %v", err)
	}
	if opts.Mode != TraceModeLine || opts.Epsilon == 0 || opts.MaxSide == 0 {
		t.Errorf("defaults not applied: %+v", opts)
	}
}

func TestTraceInvalidImage(t *testing.T) {
	r := testRunner(t)
	_, _, err := r.Trace(context.Background(), []byte("not an image"), TraceOptions{})
	if !errors.Is(err, errors.ErrCodeInvalidImage) {
		t.Errorf("error = %v, want INVALID_IMAGE", err)
	}
}
