package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/csvtable/pkg/fonts"
	"github.com/matzehuels/csvtable/pkg/render/table"
	"github.com/matzehuels/csvtable/pkg/render/table/layout"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontFamily string
}

// WithFontFamily sets the CSS font-family of text elements.
func WithFontFamily(family string) SVGOption {
	return func(r *svgRenderer) { r.fontFamily = family }
}

func cssFamily(f *fonts.Font) string {
	switch f.Name {
	case fonts.FamilyGo:
		return "Go, Helvetica, Arial, sans-serif"
	case fonts.FamilyLatinModern:
		return "'Latin Modern Sans', Helvetica, Arial, sans-serif"
	case fonts.FamilyBasic:
		return "monospace"
	}
	return "Helvetica, Arial, sans-serif"
}

// RenderSVG writes res's plan as an SVG document of the canvas size. Text
// keeps the raster positions; glyph shapes depend on the viewer's fonts.
func RenderSVG(res *table.Result, opts ...SVGOption) []byte {
	r := svgRenderer{fontFamily: cssFamily(res.Cell)}
	for _, opt := range opts {
		opt(&r)
	}

	l := res.Layout
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, `  <rect width="%d" height="%d" fill="#ffffff"/>`+"\n", l.Width, l.Height)
	fmt.Fprintf(&buf, `  <g font-family="%s">`+"\n", escape(r.fontFamily))

	for _, op := range res.Plan {
		switch op.Kind {
		case layout.OpFill:
			fmt.Fprintf(&buf, `    <rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
				op.Rect.Min.X, op.Rect.Min.Y, op.Rect.Dx(), op.Rect.Dy(), op.Color.Hex())
		case layout.OpStroke:
			writeStroke(&buf, op)
		case layout.OpText:
			face := res.Face(op.Role)
			fmt.Fprintf(&buf, `    <text x="%d" y="%d" font-size="%d" fill="%s">%s</text>`+"\n",
				op.At.X, op.At.Y+face.Ascent(), face.Size, op.Color.Hex(), escape(op.Text))
		}
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

// writeStroke places an SVG stroke, which is centered on its path, so that
// it covers the same pixels as Canvas.Stroke.
func writeStroke(buf *bytes.Buffer, op layout.Op) {
	if op.Stroke <= 0 || op.Rect.Empty() {
		return
	}
	w := float64(op.Stroke)
	x := float64(op.Rect.Min.X) + w/2
	y := float64(op.Rect.Min.Y) + w/2
	width := float64(op.Rect.Dx()+1) - w
	height := float64(op.Rect.Dy()+1) - w
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="%d"/>`+"\n",
		x, y, max(width, 0), max(height, 0), op.Color.Hex(), op.Stroke)
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
