package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/inkplot/inkplot/pkg/art"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	precision  int
	title      string
	background bool
	foreground color.Color
}

// WithPrecision sets the number of decimal places for coordinates
// (default 2). Lower precision yields smaller files.
func WithPrecision(digits int) SVGOption {
	return func(r *svgRenderer) { r.precision = digits }
}

// WithTitle embeds a <title> element in the SVG.
func WithTitle(title string) SVGOption {
	return func(r *svgRenderer) { r.title = title }
}

// WithoutBackground omits the background rectangle, leaving the canvas
// transparent. Useful when the output is layered over other media.
func WithoutBackground() SVGOption {
	return func(r *svgRenderer) { r.background = false }
}

// WithForeground sets the fallback stroke color for paths that carry no
// color of their own (default black).
func WithForeground(c color.Color) SVGOption {
	return func(r *svgRenderer) { r.foreground = c }
}

// RenderSVG renders the drawing as an SVG document. Output is
// deterministic: paths are emitted grouped by ascending layer index, in
// their original order within each layer, with fixed coordinate
// precision. Identical drawings always produce identical bytes.
func RenderSVG(d *art.Drawing, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		r.fmtNum(d.Width), r.fmtNum(d.Height), r.fmtNum(d.Width), r.fmtNum(d.Height))

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if r.background && d.Background != nil {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", hexColor(d.Background))
	}

	for _, layer := range d.Layers() {
		fmt.Fprintf(&buf, `  <g id="layer-%d" fill="none" stroke-linecap="round" stroke-linejoin="round">`+"\n", layer)
		for _, p := range d.Paths {
			if p.Layer != layer {
				continue
			}
			r.renderPath(&buf, p)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{precision: 2, background: true, foreground: color.Black}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *svgRenderer) renderPath(buf *bytes.Buffer, p art.Path) {
	if len(p.Points) == 0 {
		return
	}

	var path strings.Builder
	path.WriteString("M ")
	path.WriteString(r.fmtNum(p.Points[0].X))
	path.WriteByte(' ')
	path.WriteString(r.fmtNum(p.Points[0].Y))
	for _, pt := range p.Points[1:] {
		path.WriteString(" L ")
		path.WriteString(r.fmtNum(pt.X))
		path.WriteByte(' ')
		path.WriteString(r.fmtNum(pt.Y))
	}
	if p.Closed {
		path.WriteString(" Z")
	}

	stroke := p.Stroke
	if stroke == nil {
		stroke = r.foreground
	}
	width := p.Width
	if width <= 0 {
		width = 1
	}

	fmt.Fprintf(buf, `    <path d="%s" stroke="%s" stroke-width="%s"`,
		path.String(), hexColor(stroke), r.fmtNum(width))
	if p.Fill != nil {
		fmt.Fprintf(buf, ` fill="%s"`, hexColor(p.Fill))
	}
	if a := alpha(stroke); a < 255 {
		fmt.Fprintf(buf, ` stroke-opacity="%s"`, r.fmtNum(float64(a)/255))
	}
	buf.WriteString("/>\n")
}

// fmtNum formats a coordinate with the renderer's precision, trimming
// trailing zeros so "12.00" becomes "12".
func (r *svgRenderer) fmtNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', r.precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

func hexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func alpha(c color.Color) uint8 {
	return color.NRGBAModel.Convert(c).(color.NRGBA).A
}

func escapeXML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}
