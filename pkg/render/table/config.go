package table

import (
	"encoding/json"
	"slices"

	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/fonts"
	"github.com/matzehuels/csvtable/pkg/render/table/layout"
)

// Default dimensions, before scaling.
const (
	DefaultCellHeight       = 35
	DefaultHeaderHeight     = 45
	DefaultPadding          = 10
	DefaultMinColumnWidth   = 80
	DefaultMaxColumnWidth   = 400
	DefaultHeaderFontSize   = 14
	DefaultCellFontSize     = 11
	DefaultLineSpacing      = 15
	DefaultMinRowHeight     = 25
	DefaultLeftInset        = 10
	DefaultBorderWidth      = 1
	DefaultOuterBorderWidth = 2
	DefaultDPI              = 96
	DefaultJPEGQuality      = 95
)

// MaxScale bounds Config.Scale; a 20x table is already several thousand
// pixels wide.
const MaxScale = 20.0

// Config describes how a table is drawn. Dimensions are given at scale 1;
// [Config.Metrics] applies Scale. A Config is a plain value: copy it to vary
// it.
type Config struct {
	CellHeight   int `json:"cell_height" toml:"cell_height" yaml:"cell_height"`
	HeaderHeight int `json:"header_height" toml:"header_height" yaml:"header_height"`
	Padding      int `json:"padding" toml:"padding" yaml:"padding"`

	HeaderBG        layout.Color `json:"header_bg" toml:"header_bg" yaml:"header_bg"`
	AltRowBG        layout.Color `json:"alt_row_bg" toml:"alt_row_bg" yaml:"alt_row_bg"`
	NormalRowBG     layout.Color `json:"normal_row_bg" toml:"normal_row_bg" yaml:"normal_row_bg"`
	TextColor       layout.Color `json:"text_color" toml:"text_color" yaml:"text_color"`
	HeaderTextColor layout.Color `json:"header_text_color" toml:"header_text_color" yaml:"header_text_color"`
	BorderColor     layout.Color `json:"border_color" toml:"border_color" yaml:"border_color"`

	Scale float64 `json:"scale" toml:"scale" yaml:"scale"`
	DPI   [2]int  `json:"dpi" toml:"dpi" yaml:"dpi"`

	MinColumnWidth   int `json:"min_column_width" toml:"min_column_width" yaml:"min_column_width"`
	MaxColumnWidth   int `json:"max_column_width" toml:"max_column_width" yaml:"max_column_width"`
	HeaderFontSize   int `json:"header_font_size" toml:"header_font_size" yaml:"header_font_size"`
	CellFontSize     int `json:"cell_font_size" toml:"cell_font_size" yaml:"cell_font_size"`
	LineSpacing      int `json:"line_spacing" toml:"line_spacing" yaml:"line_spacing"`
	MinRowHeight     int `json:"min_row_height" toml:"min_row_height" yaml:"min_row_height"`
	CellPadding      int `json:"cell_padding" toml:"cell_padding" yaml:"cell_padding"`
	WrapPadding      int `json:"wrap_padding" toml:"wrap_padding" yaml:"wrap_padding"`
	LeftInset        int `json:"left_inset" toml:"left_inset" yaml:"left_inset"`
	BorderWidth      int `json:"border_width" toml:"border_width" yaml:"border_width"`
	OuterBorderWidth int `json:"outer_border_width" toml:"outer_border_width" yaml:"outer_border_width"`
	JPEGQuality      int `json:"jpeg_quality" toml:"jpeg_quality" yaml:"jpeg_quality"`

	// FontPath is an optional TTF/OTF file; FontFamily names the embedded
	// family used when it is unset or unreadable.
	FontPath   string `json:"font_path,omitempty" toml:"font_path" yaml:"font_path"`
	FontFamily string `json:"font_family,omitempty" toml:"font_family" yaml:"font_family"`

	// SVGFontFamily replaces the CSS font-family written into SVG and PDF
	// output. Raster output ignores it.
	SVGFontFamily string `json:"svg_font_family,omitempty" toml:"svg_font_family" yaml:"svg_font_family"`
}

// DefaultConfig returns the "standard" look.
func DefaultConfig() Config {
	return Config{
		CellHeight:   DefaultCellHeight,
		HeaderHeight: DefaultHeaderHeight,
		Padding:      DefaultPadding,

		HeaderBG:        layout.RGB(41, 128, 185),
		AltRowBG:        layout.RGB(236, 240, 241),
		NormalRowBG:     layout.RGB(255, 255, 255),
		TextColor:       layout.RGB(44, 62, 80),
		HeaderTextColor: layout.RGB(255, 255, 255),
		BorderColor:     layout.RGB(189, 195, 199),

		Scale: 1,
		DPI:   [2]int{DefaultDPI, DefaultDPI},

		MinColumnWidth:   DefaultMinColumnWidth,
		MaxColumnWidth:   DefaultMaxColumnWidth,
		HeaderFontSize:   DefaultHeaderFontSize,
		CellFontSize:     DefaultCellFontSize,
		LineSpacing:      DefaultLineSpacing,
		MinRowHeight:     DefaultMinRowHeight,
		CellPadding:      layout.DefaultCellPadding,
		WrapPadding:      20,
		LeftInset:        DefaultLeftInset,
		BorderWidth:      DefaultBorderWidth,
		OuterBorderWidth: DefaultOuterBorderWidth,
		JPEGQuality:      DefaultJPEGQuality,
		FontFamily:       fonts.FamilyGo,
	}
}

// WithScale returns a copy of c with the given scale and DPI. A zero dpi
// keeps the current value.
func (c Config) WithScale(scale float64, dpi int) Config {
	c.Scale = scale
	if dpi > 0 {
		c.DPI = [2]int{dpi, dpi}
	}
	return c
}

// scaled truncates toward zero, matching int(v*scale).
func scaled(v int, scale float64) int {
	return int(float64(v) * scale)
}

// Metrics returns the pixel dimensions at c.Scale. Borders never scale below
// their unscaled width.
func (c Config) Metrics() layout.Metrics {
	s := c.Scale
	return layout.Metrics{
		CellHeight:       scaled(c.CellHeight, s),
		HeaderHeight:     scaled(c.HeaderHeight, s),
		Padding:          scaled(c.Padding, s),
		MinColumnWidth:   scaled(c.MinColumnWidth, s),
		MaxColumnWidth:   scaled(c.MaxColumnWidth, s),
		CellPadding:      scaled(c.CellPadding, s),
		WrapPadding:      scaled(c.WrapPadding, s),
		LineSpacing:      scaled(c.LineSpacing, s),
		MinRowHeight:     scaled(c.MinRowHeight, s),
		LeftInset:        scaled(c.LeftInset, s),
		BorderWidth:      max(c.BorderWidth, scaled(c.BorderWidth, s)),
		OuterBorderWidth: max(c.OuterBorderWidth, scaled(c.OuterBorderWidth, s)),
	}
}

// FontSizes returns the scaled header and cell font sizes.
func (c Config) FontSizes() (header, cell int) {
	return scaled(c.HeaderFontSize, c.Scale), scaled(c.CellFontSize, c.Scale)
}

// Palette returns the colors of c.
func (c Config) Palette() layout.Palette {
	return layout.Palette{
		HeaderBG:        c.HeaderBG,
		AltRowBG:        c.AltRowBG,
		NormalRowBG:     c.NormalRowBG,
		TextColor:       c.TextColor,
		HeaderTextColor: c.HeaderTextColor,
		BorderColor:     c.BorderColor,
	}
}

// FontRequest returns the font request for c at the given size.
func (c Config) FontRequest(size int) fonts.Request {
	return fonts.Request{Size: size, Path: c.FontPath, Family: c.FontFamily}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfig, format, args...)
	}

	switch {
	case !(c.Scale > 0) || c.Scale > MaxScale:
		return invalid("scale must be in (0, %g], got %g", MaxScale, c.Scale)
	case c.DPI[0] <= 0 || c.DPI[1] <= 0:
		return invalid("dpi must be positive, got %v", c.DPI)
	case c.JPEGQuality < 1 || c.JPEGQuality > 100:
		return invalid("jpeg_quality must be between 1 and 100, got %d", c.JPEGQuality)
	case c.CellHeight <= 0 || c.HeaderHeight <= 0:
		return invalid("cell_height and header_height must be positive")
	case c.Padding < 0:
		return invalid("padding must not be negative, got %d", c.Padding)
	case c.MinColumnWidth <= 0:
		return invalid("min_column_width must be positive, got %d", c.MinColumnWidth)
	case c.MaxColumnWidth < c.MinColumnWidth:
		return invalid("max_column_width (%d) is below min_column_width (%d)", c.MaxColumnWidth, c.MinColumnWidth)
	case c.HeaderFontSize <= 0 || c.CellFontSize <= 0:
		return invalid("font sizes must be positive")
	case c.LineSpacing <= 0:
		return invalid("line_spacing must be positive, got %d", c.LineSpacing)
	case c.MinRowHeight < 0 || c.CellPadding < 0 || c.WrapPadding < 0 || c.LeftInset < 0:
		return invalid("paddings must not be negative")
	case c.BorderWidth < 0 || c.OuterBorderWidth < 0:
		return invalid("border widths must not be negative")
	case c.FontFamily != "" && !slices.Contains(fonts.Families, c.FontFamily):
		return invalid("unknown font_family %q (must be one of: %v)", c.FontFamily, fonts.Families)
	}

	m := c.Metrics()
	if m.CellHeight <= 0 || m.HeaderHeight <= 0 || m.LineSpacing <= 0 {
		return invalid("scale %g is too small: rows would be %dpx, header %dpx, line spacing %dpx",
			c.Scale, m.CellHeight, m.HeaderHeight, m.LineSpacing)
	}
	return nil
}

// Key returns the canonical encoding of c used in cache keys.
func (c Config) Key() []byte {
	data, _ := json.Marshal(c)
	return data
}
