package layout

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an opaque RGB color. It serialises as "#rrggbb" in JSON, TOML
// and YAML.
type Color struct {
	R, G, B uint8
}

// RGB is shorthand for Color{r, g, b}.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// RGBA converts c to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

// Hex returns c as "#rrggbb".
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

func (c Color) String() string { return c.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "#rrggbb", "#rgb", "rrggbb" or "r,g,b".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("invalid color %q: want r,g,b", s)
		}
		var v [3]uint8
		for i, p := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
			}
			v[i] = uint8(n)
		}
		return RGB(v[0], v[1], v[2]), nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB(uint8(n>>16), uint8(n>>8), uint8(n)), nil
}
