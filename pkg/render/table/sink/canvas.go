package sink

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/csvtable/pkg/render/table"
	"github.com/matzehuels/csvtable/pkg/render/table/layout"
)

// Canvas is a write-once raster surface. Draw on it, then call Finalize to
// take the image; the canvas cannot be drawn on afterwards.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas returns a w x h canvas filled with bg.
func NewCanvas(w, h int, bg color.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Canvas{img: img}
}

func (c *Canvas) dst() *image.RGBA {
	if c.img == nil {
		panic("sink: Canvas used after Finalize")
	}
	return c.img
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle { return c.dst().Bounds() }

// Fill paints r with col.
func (c *Canvas) Fill(r image.Rectangle, col color.Color) {
	dst := c.dst()
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

// Stroke outlines r with lines width pixels thick, growing inward. The
// outline runs along the pixel rows and columns at r.Min and r.Max, so two
// rectangles that share an edge share one border line.
func (c *Canvas) Stroke(r image.Rectangle, width int, col color.Color) {
	if width <= 0 || r.Empty() {
		return
	}
	outer := image.Rect(r.Min.X, r.Min.Y, r.Max.X+1, r.Max.Y+1)
	edges := []image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, outer.Min.Y+width), // top
		image.Rect(outer.Min.X, outer.Max.Y-width, outer.Max.X, outer.Max.Y), // bottom
		image.Rect(outer.Min.X, outer.Min.Y, outer.Min.X+width, outer.Max.Y), // left
		image.Rect(outer.Max.X-width, outer.Min.Y, outer.Max.X, outer.Max.Y), // right
	}
	for _, e := range edges {
		c.Fill(e.Intersect(outer), col)
	}
}

// Text draws s with its top-left corner at at. The baseline sits one ascent
// below the top.
func (c *Canvas) Text(at image.Point, s string, face font.Face, col color.Color) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  c.dst(),
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(at.X, at.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// Finalize returns a copy of the drawn image and releases the canvas.
func (c *Canvas) Finalize() *image.RGBA {
	out := clone.AsRGBA(c.dst())
	c.img = nil
	return out
}

// Execute draws res's plan on a fresh white canvas and returns the image.
// Ops run in plan order.
func Execute(res *table.Result) *image.RGBA {
	l := res.Layout
	c := NewCanvas(l.Width, l.Height, color.White)
	for _, op := range res.Plan {
		switch op.Kind {
		case layout.OpFill:
			c.Fill(op.Rect, op.Color.RGBA())
		case layout.OpStroke:
			c.Stroke(op.Rect, op.Stroke, op.Color.RGBA())
		case layout.OpText:
			c.Text(op.At, op.Text, res.Face(op.Role).Face, op.Color.RGBA())
		}
	}
	return c.Finalize()
}
