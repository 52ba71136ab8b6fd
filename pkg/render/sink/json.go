package sink

import (
	"encoding/json"

	"github.com/inkplot/inkplot/pkg/art"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	algorithm string
	preset    string
	scheme    string
	seed      int64
}

// WithJSONProvenance records how the drawing was generated (algorithm,
// seed, scheme) in the JSON output, enabling reproducible re-rendering.
func WithJSONProvenance(algorithm string, seed int64, scheme string) JSONOption {
	return func(r *jsonRenderer) {
		r.algorithm = algorithm
		r.seed = seed
		r.scheme = scheme
	}
}

// WithJSONPreset records the preset name the drawing was generated from.
func WithJSONPreset(name string) JSONOption {
	return func(r *jsonRenderer) { r.preset = name }
}

type jsonOutput struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Background string     `json:"background,omitempty"`
	Algorithm  string     `json:"algorithm,omitempty"`
	Preset     string     `json:"preset,omitempty"`
	Scheme     string     `json:"scheme,omitempty"`
	Seed       int64      `json:"seed,omitempty"`
	Paths      []jsonPath `json:"paths"`
}

type jsonPath struct {
	Points [][2]float64 `json:"points"`
	Closed bool         `json:"closed,omitempty"`
	Stroke string       `json:"stroke,omitempty"`
	Width  float64      `json:"width,omitempty"`
	Fill   string       `json:"fill,omitempty"`
	Layer  int          `json:"layer,omitempty"`
	Value  float64      `json:"value,omitempty"`
}

// RenderJSON exports the drawing as a pretty-printed JSON document. This
// is the data interchange format for inkplot, enabling:
//
//   - Integration with external plotting tools
//   - Caching generated drawings for fast re-rendering
//   - Round-trip rendering (re-import and render identically)
//
// RenderJSON returns an error only if JSON marshaling fails (should not
// happen with well-formed drawings). It does not modify d and is safe to
// call concurrently.
func RenderJSON(d *art.Drawing, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:     d.Width,
		Height:    d.Height,
		Algorithm: r.algorithm,
		Preset:    r.preset,
		Scheme:    r.scheme,
		Seed:      r.seed,
		Paths:     buildJSONPaths(d),
	}
	if d.Background != nil {
		out.Background = hexColor(d.Background)
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONPaths(d *art.Drawing) []jsonPath {
	paths := make([]jsonPath, 0, len(d.Paths))
	for _, p := range d.Paths {
		jp := jsonPath{
			Points: make([][2]float64, len(p.Points)),
			Closed: p.Closed,
			Width:  p.Width,
			Layer:  p.Layer,
			Value:  p.Value,
		}
		for i, pt := range p.Points {
			jp.Points[i] = [2]float64{pt.X, pt.Y}
		}
		if p.Stroke != nil {
			jp.Stroke = hexColor(p.Stroke)
		}
		if p.Fill != nil {
			jp.Fill = hexColor(p.Fill)
		}
		paths = append(paths, jp)
	}
	return paths
}
