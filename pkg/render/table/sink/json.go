package sink

import (
	"encoding/json"

	"github.com/matzehuels/csvtable/pkg/render/table"
	"github.com/matzehuels/csvtable/pkg/render/table/layout"
)

type jsonOutput struct {
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Scale   float64        `json:"scale"`
	DPI     [2]int         `json:"dpi"`
	Fonts   jsonFonts      `json:"fonts"`
	Columns []int          `json:"columns"`
	Rows    []int          `json:"rows"`
	Metrics layout.Metrics `json:"metrics"`
	Palette layout.Palette `json:"palette"`
	Cells   []jsonCell     `json:"cells"`
	Plan    []layout.Op    `json:"plan"`
}

type jsonFonts struct {
	Header string `json:"header"`
	Cell   string `json:"cell"`
}

type jsonCell struct {
	Row    int           `json:"row"`
	Col    int           `json:"col"`
	X      int           `json:"x"`
	Y      int           `json:"y"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Lines  []layout.Line `json:"lines"`
}

// RenderJSON writes the layout and draw plan of res as indented JSON.
func RenderJSON(res *table.Result) ([]byte, error) {
	l := res.Layout
	out := jsonOutput{
		Width:   l.Width,
		Height:  l.Height,
		Scale:   res.Config.Scale,
		DPI:     res.Config.DPI,
		Fonts:   jsonFonts{Header: res.Header.Name, Cell: res.Cell.Name},
		Columns: l.Columns,
		Rows:    l.Rows,
		Metrics: l.Metrics,
		Palette: res.Config.Palette(),
		Cells:   make([]jsonCell, 0, len(l.Cells)),
		Plan:    res.Plan,
	}
	for _, c := range l.Cells {
		out.Cells = append(out.Cells, jsonCell{
			Row:    c.Row,
			Col:    c.Col,
			X:      c.Rect.Min.X,
			Y:      c.Rect.Min.Y,
			Width:  c.Rect.Dx(),
			Height: c.Rect.Dy(),
			Lines:  c.Lines,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
