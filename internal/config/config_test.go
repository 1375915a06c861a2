package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/render/table"
	"github.com/matzehuels/csvtable/pkg/render/table/layout"
)

func withPath(t *testing.T, path string) {
	t.Helper()
	orig := pathFunc
	pathFunc = func() (string, error) { return path, nil }
	t.Cleanup(func() { pathFunc = orig })
}

func TestLoadMissing(t *testing.T) {
	withPath(t, filepath.Join(t.TempDir(), "nope", "config.toml"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, &Config{}) {
		t.Errorf("Load() = %+v, want empty config", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	src := `
preset  = "brand"
formats = ["png", "svg"]
scale   = 2
dpi     = 300
jpeg_quality    = 80
svg_font_family = "Inter"

[cache]
dir = "/tmp/csvtable"

[themes.brand]
base        = "large"
header_bg   = "#c0392b"
cell_height = 50
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	withPath(t, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Preset != "brand" || cfg.Scale != 2 || cfg.DPI != 300 {
		t.Errorf("Load() = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Formats, []string{"png", "svg"}) {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	if cfg.JPEGQuality != 80 || cfg.SVGFontFamily != "Inter" {
		t.Errorf("JPEGQuality/SVGFontFamily = %d/%q, want 80/Inter", cfg.JPEGQuality, cfg.SVGFontFamily)
	}
	if cfg.Cache.Dir != "/tmp/csvtable" {
		t.Errorf("Cache.Dir = %q", cfg.Cache.Dir)
	}

	resolved, err := table.Lookup("brand", cfg.Themes)
	if err != nil {
		t.Fatal(err)
	}
	if resolved.HeaderBG != layout.RGB(0xc0, 0x39, 0x2b) {
		t.Errorf("HeaderBG = %v, want #c0392b", resolved.HeaderBG)
	}
	if resolved.CellHeight != 50 || resolved.HeaderHeight != 55 {
		t.Errorf("heights = %d/%d, want 50/55", resolved.CellHeight, resolved.HeaderHeight)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	src := `preset: compact
font_family: latin-modern
themes:
  mono:
    base: professional
    border_color: "0,0,0"
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Preset != "compact" || cfg.FontFamily != "latin-modern" {
		t.Errorf("LoadFromPath() = %+v", cfg)
	}
	if got := cfg.Themes["mono"].BorderColor; got == nil || *got != layout.RGB(0, 0, 0) {
		t.Errorf("BorderColor = %v, want black", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		asYAML bool
	}{
		{"bad toml", "preset = ", false},
		{"unknown toml key", "colour = \"red\"", false},
		{"unknown yaml key", "colour: red\n", true},
		{"unknown preset", "preset = \"neon\"", false},
		{"quality out of range", "jpeg_quality = 120", false},
		{"bad theme name", "[themes.Brand]\nbase = \"large\"", false},
		{"bad theme base", "[themes.brand]\nbase = \"neon\"", false},
		{"bad theme color", "[themes.brand]\nheader_bg = \"#zzz\"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.src), tt.asYAML); err == nil {
				t.Error("Parse() should fail")
			}
		})
	}
}

func TestParseEmptyYAML(t *testing.T) {
	cfg, err := Parse(nil, true)
	if err != nil {
		t.Fatalf("Parse(empty) error: %v", err)
	}
	if cfg.Preset != "" {
		t.Errorf("Parse(empty) = %+v", cfg)
	}
}

func TestLoadFromPathInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("preset = \"neon\""), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFromPath(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("LoadFromPath() error = %v, want INVALID_CONFIG", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	red := layout.RGB(255, 0, 0)
	height := 42
	cfg := &Config{
		Preset:  "brand",
		Formats: []string{"svg"},
		Themes: map[string]table.Theme{
			"brand": {Base: table.PresetColorful, HeaderBG: &red, CellHeight: &height},
		},
	}
	for _, name := range []string{"config.toml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sub", name)
			if err := cfg.Save(path); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			got, err := LoadFromPath(path)
			if err != nil {
				t.Fatalf("LoadFromPath() error: %v", err)
			}
			if got.Preset != "brand" || *got.Themes["brand"].HeaderBG != red || *got.Themes["brand"].CellHeight != 42 {
				t.Errorf("round trip = %+v", got)
			}
		})
	}
}

func TestThemeNames(t *testing.T) {
	cfg := &Config{Themes: map[string]table.Theme{"zeta": {}, "alpha": {}}}
	if got := cfg.ThemeNames(); !reflect.DeepEqual(got, []string{"alpha", "zeta"}) {
		t.Errorf("ThemeNames() = %v", got)
	}
}
