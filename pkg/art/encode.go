package art

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/inkplot/inkplot/pkg/errors"
	"github.com/inkplot/inkplot/pkg/geom"
)

// Wire types for drawing serialization. Colors travel as #rrggbb or
// #rrggbbaa strings so the encoding stays readable and stable.

type wireDrawing struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Background string     `json:"background,omitempty"`
	Paths      []wirePath `json:"paths"`
}

type wirePath struct {
	Points [][2]float64 `json:"points"`
	Closed bool         `json:"closed,omitempty"`
	Stroke string       `json:"stroke,omitempty"`
	Width  float64      `json:"width,omitempty"`
	Fill   string       `json:"fill,omitempty"`
	Layer  int          `json:"layer,omitempty"`
	Value  float64      `json:"value,omitempty"`
}

// MarshalDrawing encodes a drawing as compact JSON. The encoding is
// deterministic, so it doubles as the content hash input for caching.
func MarshalDrawing(d *Drawing) ([]byte, error) {
	w := wireDrawing{
		Width:      d.Width,
		Height:     d.Height,
		Background: encodeColor(d.Background),
		Paths:      make([]wirePath, len(d.Paths)),
	}
	for i, p := range d.Paths {
		wp := wirePath{
			Points: make([][2]float64, len(p.Points)),
			Closed: p.Closed,
			Stroke: encodeColor(p.Stroke),
			Width:  p.Width,
			Fill:   encodeColor(p.Fill),
			Layer:  p.Layer,
			Value:  p.Value,
		}
		for j, pt := range p.Points {
			wp.Points[j] = [2]float64{pt.X, pt.Y}
		}
		w.Paths[i] = wp
	}
	return json.Marshal(w)
}

// UnmarshalDrawing decodes a drawing from MarshalDrawing's encoding.
func UnmarshalDrawing(data []byte) (*Drawing, error) {
	var w wireDrawing
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode drawing")
	}

	d := &Drawing{
		Width:  w.Width,
		Height: w.Height,
		Paths:  make([]Path, len(w.Paths)),
	}
	var err error
	if d.Background, err = decodeColor(w.Background); err != nil {
		return nil, err
	}
	for i, wp := range w.Paths {
		p := Path{
			Points: make([]geom.Point, len(wp.Points)),
			Closed: wp.Closed,
			Width:  wp.Width,
			Layer:  wp.Layer,
			Value:  wp.Value,
		}
		for j, pt := range wp.Points {
			p.Points[j] = geom.Point{X: pt[0], Y: pt[1]}
		}
		if p.Stroke, err = decodeColor(wp.Stroke); err != nil {
			return nil, err
		}
		if p.Fill, err = decodeColor(wp.Fill); err != nil {
			return nil, err
		}
		d.Paths[i] = p
	}
	return d, nil
}

func encodeColor(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A != 255 {
		return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
	}
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func decodeColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	var n color.NRGBA
	n.A = 255
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &n.R, &n.G, &n.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &n.R, &n.G, &n.B, &n.A)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid color %q", s)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid color %q", s)
	}
	return n, nil
}
