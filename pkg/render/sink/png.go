package sink

import (
	"bytes"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/inkplot/inkplot/pkg/art"
	"github.com/inkplot/inkplot/pkg/errors"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	foreground color.Color
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGForeground sets the fallback stroke color for paths that carry
// no color of their own (default black).
func WithPNGForeground(c color.Color) PNGOption {
	return func(r *pngRenderer) { r.foreground = c }
}

// RenderPNG rasterizes the drawing as a PNG image.
func RenderPNG(d *art.Drawing, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, foreground: color.Black}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParam, "scale must be positive, got %g", r.scale)
	}

	w := int(d.Width*r.scale + 0.5)
	h := int(d.Height*r.scale + 0.5)
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParam, "drawing has empty canvas: %gx%g", d.Width, d.Height)
	}

	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)

	if d.Background != nil {
		dc.SetColor(d.Background)
		dc.Clear()
	}

	for _, layer := range d.Layers() {
		for _, p := range d.Paths {
			if p.Layer != layer {
				continue
			}
			r.drawPath(dc, p)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (r *pngRenderer) drawPath(dc *gg.Context, p art.Path) {
	if len(p.Points) == 0 {
		return
	}

	dc.MoveTo(p.Points[0].X, p.Points[0].Y)
	for _, pt := range p.Points[1:] {
		dc.LineTo(pt.X, pt.Y)
	}
	if p.Closed {
		dc.ClosePath()
	}

	if p.Fill != nil {
		dc.SetColor(p.Fill)
		dc.FillPreserve()
	}

	stroke := p.Stroke
	if stroke == nil {
		stroke = r.foreground
	}
	width := p.Width
	if width <= 0 {
		width = 1
	}
	dc.SetColor(stroke)
	dc.SetLineWidth(width)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.Stroke()
}
