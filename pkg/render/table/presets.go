package table

import (
	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/render/table/layout"
)

// Preset names.
const (
	PresetStandard     = "standard"
	PresetCompact      = "compact"
	PresetLarge        = "large"
	PresetColorful     = "colorful"
	PresetProfessional = "professional"
)

// Presets lists the built-in preset names in display order.
var Presets = []string{
	PresetStandard,
	PresetCompact,
	PresetLarge,
	PresetColorful,
	PresetProfessional,
}

var presetDescriptions = map[string]string{
	PresetStandard:     "blue header, light grey stripes",
	PresetCompact:      "tight rows for long tables",
	PresetLarge:        "roomy rows, slate header",
	PresetColorful:     "purple header, warm stripes",
	PresetProfessional: "dark header, neutral greys",
}

// Describe returns a one-line description of a built-in preset.
func Describe(name string) string {
	return presetDescriptions[name]
}

// Preset returns the configuration of a built-in preset at scale 1.
func Preset(name string) (Config, error) {
	c := DefaultConfig()
	switch name {
	case PresetStandard, "":
	case PresetCompact:
		c.CellHeight, c.HeaderHeight, c.Padding = 30, 40, 8
	case PresetLarge:
		c.CellHeight, c.HeaderHeight, c.Padding = 45, 55, 15
		c.HeaderBG = layout.RGB(52, 73, 94)
		c.AltRowBG = layout.RGB(245, 247, 250)
		c.BorderColor = layout.RGB(149, 165, 166)
	case PresetColorful:
		c.CellHeight, c.HeaderHeight, c.Padding = 38, 48, 12
		c.HeaderBG = layout.RGB(142, 68, 173)
		c.AltRowBG = layout.RGB(250, 219, 216)
		c.NormalRowBG = layout.RGB(255, 250, 240)
		c.BorderColor = layout.RGB(142, 68, 173)
	case PresetProfessional:
		c.CellHeight, c.HeaderHeight, c.Padding = 40, 50, 10
		c.HeaderBG = layout.RGB(34, 49, 63)
		c.AltRowBG = layout.RGB(248, 249, 250)
		c.NormalRowBG = layout.RGB(255, 255, 255)
		c.TextColor = layout.RGB(33, 37, 41)
		c.BorderColor = layout.RGB(206, 212, 218)
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidPreset,
			"unknown preset %q (must be one of: %v)", name, Presets)
	}
	return c, nil
}

// Theme is a named set of overrides on top of a base preset. Unset fields
// keep the base value. Themes come from the user's config file.
type Theme struct {
	Base string `json:"base,omitempty" toml:"base" yaml:"base"`

	CellHeight   *int `json:"cell_height,omitempty" toml:"cell_height" yaml:"cell_height"`
	HeaderHeight *int `json:"header_height,omitempty" toml:"header_height" yaml:"header_height"`
	Padding      *int `json:"padding,omitempty" toml:"padding" yaml:"padding"`

	HeaderBG        *layout.Color `json:"header_bg,omitempty" toml:"header_bg" yaml:"header_bg"`
	AltRowBG        *layout.Color `json:"alt_row_bg,omitempty" toml:"alt_row_bg" yaml:"alt_row_bg"`
	NormalRowBG     *layout.Color `json:"normal_row_bg,omitempty" toml:"normal_row_bg" yaml:"normal_row_bg"`
	TextColor       *layout.Color `json:"text_color,omitempty" toml:"text_color" yaml:"text_color"`
	HeaderTextColor *layout.Color `json:"header_text_color,omitempty" toml:"header_text_color" yaml:"header_text_color"`
	BorderColor     *layout.Color `json:"border_color,omitempty" toml:"border_color" yaml:"border_color"`

	HeaderFontSize *int    `json:"header_font_size,omitempty" toml:"header_font_size" yaml:"header_font_size"`
	CellFontSize   *int    `json:"cell_font_size,omitempty" toml:"cell_font_size" yaml:"cell_font_size"`
	FontFamily     *string `json:"font_family,omitempty" toml:"font_family" yaml:"font_family"`
}

// Resolve applies t to its base preset.
func (t Theme) Resolve() (Config, error) {
	c, err := Preset(t.Base)
	if err != nil {
		return Config{}, err
	}

	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setColor := func(dst *layout.Color, src *layout.Color) {
		if src != nil {
			*dst = *src
		}
	}

	setInt(&c.CellHeight, t.CellHeight)
	setInt(&c.HeaderHeight, t.HeaderHeight)
	setInt(&c.Padding, t.Padding)
	setInt(&c.HeaderFontSize, t.HeaderFontSize)
	setInt(&c.CellFontSize, t.CellFontSize)
	setColor(&c.HeaderBG, t.HeaderBG)
	setColor(&c.AltRowBG, t.AltRowBG)
	setColor(&c.NormalRowBG, t.NormalRowBG)
	setColor(&c.TextColor, t.TextColor)
	setColor(&c.HeaderTextColor, t.HeaderTextColor)
	setColor(&c.BorderColor, t.BorderColor)
	if t.FontFamily != nil {
		c.FontFamily = *t.FontFamily
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Lookup resolves a preset or theme name. Themes shadow built-in presets of
// the same name.
func Lookup(name string, themes map[string]Theme) (Config, error) {
	if t, ok := themes[name]; ok {
		c, err := t.Resolve()
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "theme %q", name)
		}
		return c, nil
	}
	return Preset(name)
}
