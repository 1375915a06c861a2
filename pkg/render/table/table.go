// Package table renders tabular string data into a drawing plan.
//
// [Render] is the entry point: it loads fonts for the configuration, runs the
// layout engine and returns the layout together with its ordered draw plan.
// Sinks in the sink subpackage turn a [Result] into image bytes.
//
//	data := table.Data{{"Name", "Age"}, {"Alice", "30"}}
//	res, err := table.Render(data, table.DefaultConfig())
//	if errors.Is(err, errors.ErrCodeEmptyData) {
//	    // nothing to render
//	}
//	png, err := sink.RenderRaster(res, sink.FormatPNG)
package table

import (
	"github.com/matzehuels/csvtable/pkg/fonts"
	"github.com/matzehuels/csvtable/pkg/render/table/layout"
	"github.com/matzehuels/csvtable/pkg/render/table/text"
)

// Data is a table of string cells. Row 0 is the header and fixes the column
// count; rows may be ragged.
type Data [][]string

// Columns returns the column count, taken from the header.
func (d Data) Columns() int {
	if len(d) == 0 {
		return 0
	}
	return len(d[0])
}

// Empty reports whether there is nothing to render.
func (d Data) Empty() bool { return len(d) == 0 }

// Result is a laid-out table ready for a sink.
type Result struct {
	Config Config
	Layout *layout.Layout
	Plan   []layout.Op

	// Header and Cell are the faces the plan's text roles are drawn with.
	Header *fonts.Font
	Cell   *fonts.Font
}

// Face returns the face for a text role.
func (r *Result) Face(role layout.Role) *fonts.Font {
	if role == layout.RoleHeader {
		return r.Header
	}
	return r.Cell
}

// Option customises Render.
type Option func(*renderer)

type renderer struct {
	header, cell *fonts.Font
}

// WithFonts renders with already loaded faces instead of loading them from
// the configuration.
func WithFonts(header, cell *fonts.Font) Option {
	return func(r *renderer) { r.header, r.cell = header, cell }
}

// Render validates cfg, lays out data and builds the draw plan.
//
// An empty table returns an EMPTY_DATA error and no result.
func Render(data Data, cfg Config, opts ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var r renderer
	for _, opt := range opts {
		opt(&r)
	}
	if r.header == nil || r.cell == nil {
		headerSize, cellSize := cfg.FontSizes()
		r.header, r.cell = fonts.Pair(cfg.FontRequest(0), headerSize, cellSize)
	}

	measure := layout.Fonts{
		Header: text.NewMemo(r.header),
		Cell:   text.NewMemo(r.cell),
	}
	l, err := layout.Build(data, cfg.Metrics(), measure)
	if err != nil {
		return nil, err
	}

	return &Result{
		Config: cfg,
		Layout: l,
		Plan:   layout.Plan(l, cfg.Palette()),
		Header: r.header,
		Cell:   r.cell,
	}, nil
}
