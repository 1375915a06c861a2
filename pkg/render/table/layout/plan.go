package layout

import "image"

// OpKind identifies a draw operation.
type OpKind string

const (
	OpFill   OpKind = "fill"   // filled rectangle
	OpStroke OpKind = "stroke" // rectangle outline, stroked inward
	OpText   OpKind = "text"   // one line of text
)

// Role selects the font a text op is drawn with.
type Role string

const (
	RoleHeader Role = "header"
	RoleCell   Role = "cell"
)

// Palette holds the colors a plan is drawn with.
type Palette struct {
	HeaderBG        Color `json:"header_bg" toml:"header_bg" yaml:"header_bg"`
	AltRowBG        Color `json:"alt_row_bg" toml:"alt_row_bg" yaml:"alt_row_bg"`
	NormalRowBG     Color `json:"normal_row_bg" toml:"normal_row_bg" yaml:"normal_row_bg"`
	TextColor       Color `json:"text_color" toml:"text_color" yaml:"text_color"`
	HeaderTextColor Color `json:"header_text_color" toml:"header_text_color" yaml:"header_text_color"`
	BorderColor     Color `json:"border_color" toml:"border_color" yaml:"border_color"`
}

// Op is a single draw operation. Rect and Stroke apply to fill and stroke
// ops; Text, At and Role apply to text ops, where At is the top-left corner
// of the line.
type Op struct {
	Kind   OpKind          `json:"kind"`
	Color  Color           `json:"color"`
	Rect   image.Rectangle `json:"rect,omitzero"`
	Stroke int             `json:"stroke,omitempty"`
	Text   string          `json:"text,omitempty"`
	At     image.Point     `json:"at,omitzero"`
	Role   Role            `json:"role,omitempty"`
}

// RowBackground returns the background color of row r: the header color for
// row 0, then alternating with even rows taking the alternate color.
func (p Palette) RowBackground(r int) Color {
	switch {
	case r == 0:
		return p.HeaderBG
	case r%2 == 0:
		return p.AltRowBG
	default:
		return p.NormalRowBG
	}
}

// Plan flattens l into draw operations. The order is significant and fixed:
// for each row its background, then for each cell its outline followed by
// its text lines; the outer table border comes last.
func Plan(l *Layout, p Palette) []Op {
	ops := make([]Op, 0, len(l.RowRects)+3*len(l.Cells)+1)

	cell := 0
	for r, rect := range l.RowRects {
		ops = append(ops, Op{Kind: OpFill, Color: p.RowBackground(r), Rect: rect})

		role, fg := RoleCell, p.TextColor
		if r == 0 {
			role, fg = RoleHeader, p.HeaderTextColor
		}

		for ; cell < len(l.Cells) && l.Cells[cell].Row == r; cell++ {
			c := l.Cells[cell]
			ops = append(ops, Op{
				Kind:   OpStroke,
				Color:  p.BorderColor,
				Rect:   c.Rect,
				Stroke: l.Metrics.BorderWidth,
			})
			for _, line := range c.Lines {
				if line.Text == "" {
					continue
				}
				ops = append(ops, Op{
					Kind:  OpText,
					Color: fg,
					Text:  line.Text,
					At:    image.Pt(line.X, line.Y),
					Role:  role,
				})
			}
		}
	}

	ops = append(ops, Op{
		Kind:   OpStroke,
		Color:  p.BorderColor,
		Rect:   l.Table(),
		Stroke: l.Metrics.OuterBorderWidth,
	})
	return ops
}
