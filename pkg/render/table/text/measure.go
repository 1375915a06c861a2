// Package text measures and wraps cell text for table layout.
//
// Layout never touches a rasterizer directly: every width comes from a
// [Measurer]. Production code measures a [font.Face]; tests pin metrics with
// [Fixed] so results are identical on every platform.
package text

import (
	"unicode/utf8"

	"golang.org/x/image/font"
)

// Measurer reports the rendered width of a string in pixels.
type Measurer interface {
	Width(s string) int
}

// FaceWidth returns the ink width of s drawn with face at the origin.
// The bounds are taken from a zero-origin probe, so the result does not
// depend on where the text is later drawn.
func FaceWidth(face font.Face, s string) int {
	if s == "" {
		return 0
	}
	bounds, _ := font.BoundString(face, s)
	return (bounds.Max.X - bounds.Min.X).Ceil()
}

// Face adapts a font.Face to Measurer.
type Face struct {
	font.Face
}

// Width implements Measurer.
func (f Face) Width(s string) int { return FaceWidth(f.Face, s) }

// Fixed is a deterministic Measurer: every rune is Advance pixels wide.
type Fixed struct {
	Advance int
}

// Width implements Measurer.
func (f Fixed) Width(s string) int { return utf8.RuneCountInString(s) * f.Advance }

// Memo caches widths of an underlying Measurer.
//
// Column-width and wrap passes measure the same strings repeatedly. A Memo is
// meant to live for a single layout pass and is not safe for concurrent use.
type Memo struct {
	m     Measurer
	cache map[string]int
}

// NewMemo wraps m with a per-string width cache.
func NewMemo(m Measurer) *Memo {
	return &Memo{m: m, cache: make(map[string]int)}
}

// Width implements Measurer.
func (c *Memo) Width(s string) int {
	if w, ok := c.cache[s]; ok {
		return w
	}
	w := c.m.Width(s)
	c.cache[s] = w
	return w
}
