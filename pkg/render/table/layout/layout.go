// Package layout turns table data into pixel geometry.
//
// Layout runs in a fixed order because each step depends on the previous one:
//
//  1. [ColumnWidths] measures every cell (header included) and clamps
//  2. [RowHeights] wraps every cell to its column width and counts lines
//  3. [Build] positions rows, cells and wrapped text lines on the canvas
//
// [Plan] then flattens a Layout into an ordered list of draw operations that
// a sink executes. Nothing here is cached between calls; the same inputs
// always produce the same Layout.
package layout

import (
	"image"
	"strings"

	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/render/table/text"
)

// DefaultCellPadding is the space, before scaling, added to a measured cell
// width when sizing its column.
const DefaultCellPadding = 30

// Metrics are the scaled pixel dimensions that drive layout.
type Metrics struct {
	CellHeight       int `json:"cell_height"`
	HeaderHeight     int `json:"header_height"`
	Padding          int `json:"padding"`
	MinColumnWidth   int `json:"min_column_width"`
	MaxColumnWidth   int `json:"max_column_width"`
	CellPadding      int `json:"cell_padding"`
	WrapPadding      int `json:"wrap_padding"`
	LineSpacing      int `json:"line_spacing"`
	MinRowHeight     int `json:"min_row_height"`
	LeftInset        int `json:"left_inset"`
	BorderWidth      int `json:"border_width"`
	OuterBorderWidth int `json:"outer_border_width"`
}

// Fonts holds the measurers for the header row and for body rows.
type Fonts struct {
	Header text.Measurer
	Cell   text.Measurer
}

func (f Fonts) forRow(row int) text.Measurer {
	if row == 0 {
		return f.Header
	}
	return f.Cell
}

// Line is one wrapped display line placed on the canvas. X and Y are the
// top-left corner of the line.
type Line struct {
	Text  string `json:"text"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Width int    `json:"width"`
}

// Cell is the geometry of one rendered cell.
type Cell struct {
	Row   int             `json:"row"`
	Col   int             `json:"col"`
	Rect  image.Rectangle `json:"rect"`
	Lines []Line          `json:"lines"`
}

// Layout is the complete geometry of a rendered table.
type Layout struct {
	Columns []int   `json:"columns"`
	Rows    []int   `json:"rows"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Metrics Metrics `json:"metrics"`

	// RowRects holds the full-width background rectangle of each row.
	RowRects []image.Rectangle `json:"row_rects"`
	// Cells lists rendered cells row by row, left to right. Cells past a
	// short row's end or past the header width are absent.
	Cells []Cell `json:"cells"`
}

// Table returns the outer table rectangle, excluding the canvas margin.
func (l *Layout) Table() image.Rectangle {
	p := l.Metrics.Padding
	return image.Rect(p, p, l.Width-p, l.Height-p)
}

// Bounds returns the canvas rectangle.
func (l *Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Width, l.Height)
}

// ColumnWidths sizes each column of data at the given scale: the widest
// measured cell plus int(DefaultCellPadding*scale), clamped to
// [minWidth, maxWidth].
func ColumnWidths(data [][]string, m text.Measurer, minWidth, maxWidth int, scale float64) []int {
	return ColumnWidthsPadded(data, m, minWidth, maxWidth, int(DefaultCellPadding*scale))
}

// ColumnWidthsPadded is ColumnWidths with an explicit scaled cell padding.
//
// The column count is len(data[0]). Cells beyond that are ignored and short
// rows contribute nothing to the columns they lack.
func ColumnWidthsPadded(data [][]string, m text.Measurer, minWidth, maxWidth, cellPadding int) []int {
	if len(data) == 0 {
		return nil
	}

	n := len(data[0])
	widths := make([]int, n)
	for i := range widths {
		widths[i] = minWidth
	}

	for _, row := range data {
		for i, cell := range row {
			if i >= n {
				break
			}
			w := m.Width(cell) + cellPadding
			widths[i] = max(widths[i], min(w, maxWidth))
		}
	}
	return widths
}

// RowHeights computes each row's height from the wrapped line count of its
// tallest cell: max(base, lines*lineSpacing + minHeight), where base is
// headerHeight for row 0 and cellHeight otherwise. Cell text is trimmed
// before wrapping.
func RowHeights(data [][]string, widths []int, fonts Fonts, m Metrics) []int {
	heights := make([]int, len(data))
	for r, row := range data {
		base := m.CellHeight
		if r == 0 {
			base = m.HeaderHeight
		}
		font := fonts.forRow(r)

		maxLines := 1
		for c, cell := range row {
			if c >= len(widths) {
				break
			}
			lines := text.WrapPadded(strings.TrimSpace(cell), font, widths[c], m.WrapPadding)
			maxLines = max(maxLines, len(lines))
		}
		heights[r] = max(base, maxLines*m.LineSpacing+m.MinRowHeight)
	}
	return heights
}

// Build computes the full layout of data.
//
// An empty table yields an EMPTY_DATA error and no layout; callers report it
// as "nothing to render".
func Build(data [][]string, m Metrics, fonts Fonts) (*Layout, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyData, "nothing to render: table has no rows")
	}

	widths := ColumnWidthsPadded(data, fonts.Cell, m.MinColumnWidth, m.MaxColumnWidth, m.CellPadding)
	heights := RowHeights(data, widths, fonts, m)

	l := &Layout{
		Columns: widths,
		Rows:    heights,
		Width:   sum(widths) + 2*m.Padding,
		Height:  sum(heights) + 2*m.Padding,
		Metrics: m,
	}

	y := m.Padding
	for r, row := range data {
		h := heights[r]
		l.RowRects = append(l.RowRects, image.Rect(m.Padding, y, l.Width-m.Padding, y+h))
		font := fonts.forRow(r)

		x := m.Padding
		for c, cell := range row {
			if c >= len(widths) {
				break
			}
			w := widths[c]
			l.Cells = append(l.Cells, Cell{
				Row:   r,
				Col:   c,
				Rect:  image.Rect(x, y, x+w, y+h),
				Lines: placeLines(strings.TrimSpace(cell), font, c, x, y, w, h, m),
			})
			x += w
		}
		y += h
	}
	return l, nil
}

// placeLines wraps a cell and positions its lines: the block is centered
// vertically; the first column is left-aligned at LeftInset, the others are
// centered per line.
func placeLines(s string, font text.Measurer, col, x, y, w, h int, m Metrics) []Line {
	wrapped := text.WrapPadded(s, font, w, m.WrapPadding)
	ty := y + floorDiv(h-len(wrapped)*m.LineSpacing, 2)

	lines := make([]Line, 0, len(wrapped))
	for _, t := range wrapped {
		tw := font.Width(t)
		tx := x + m.LeftInset
		if col > 0 {
			tx = x + floorDiv(w-tw, 2)
		}
		lines = append(lines, Line{Text: t, X: tx, Y: ty, Width: tw})
		ty += m.LineSpacing
	}
	return lines
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

// floorDiv divides rounding toward negative infinity, so overflowing text
// is offset the same way on both sides.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
