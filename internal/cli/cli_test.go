package cli

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/csvtable/internal/config"
	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/pipeline"
	"github.com/matzehuels/csvtable/pkg/render/table"
)

const scoresCSV = "Name,Score,Notes\nAlice,91,steady\nBob,78,improving fast over the whole term\n"

// runCLI executes the root command with args and an isolated config and
// cache directory, returning command output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	var out bytes.Buffer
	c := &CLI{Logger: log.New(io.Discard), Out: &out}
	root := c.RootCommand()
	hasConfig := false
	for _, a := range args {
		if a == "--config" {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append(args, "--config", filepath.Join(dir, "config.toml"))
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderCommand(t *testing.T) {
	input := writeCSV(t, scoresCSV)
	out := filepath.Join(t.TempDir(), "out", "table.png")

	if _, err := runCLI(t, "render", input, "-o", out, "--preset", "colorful", "--scale", "2", "--dpi", "300"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestRenderCommandFormats(t *testing.T) {
	input := writeCSV(t, scoresCSV)
	base := filepath.Join(t.TempDir(), "report")

	if _, err := runCLI(t, "render", input, "-o", base, "-f", "svg,json,jpg", "--no-cache"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	for _, ext := range []string{".svg", ".json", ".jpg"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}
}

func TestRenderCommandDefaultOutput(t *testing.T) {
	input := writeCSV(t, scoresCSV)
	if _, err := runCLI(t, "render", input); err != nil {
		t.Fatalf("render error: %v", err)
	}
	want := strings.TrimSuffix(input, ".csv") + ".png"
	if _, err := os.Stat(want); err != nil {
		t.Errorf("default output %s not written: %v", want, err)
	}
}

func TestRenderCommandReports(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.csv")
	if _, err := runCLI(t, "render", missing); err != nil {
		t.Errorf("missing input should be a warning, got error: %v", err)
	}

	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "render", empty); err != nil {
		t.Errorf("empty input should be a warning, got error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "empty.png")); !os.IsNotExist(err) {
		t.Error("empty input should not produce an output file")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := writeCSV(t, scoresCSV)
	tests := []struct {
		name string
		args []string
	}{
		{"unknown preset", []string{"render", input, "--preset", "neon"}},
		{"unknown format", []string{"render", input, "-f", "gif"}},
		{"unknown output extension", []string{"render", input, "-o", "out.gif"}},
		{"scale out of range", []string{"render", input, "--scale", "100"}},
		{"no input", []string{"render"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRenderCommandConfigTheme(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	src := "preset = \"brand\"\n[themes.brand]\nbase = \"compact\"\nheader_bg = \"#ff0000\"\n"
	if err := os.WriteFile(cfgPath, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	input := writeCSV(t, scoresCSV)
	out := filepath.Join(dir, "t.png")

	if _, err := runCLI(t, "render", input, "-o", out, "--config", cfgPath); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(5, 5).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("header pixel = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
}

func TestBatchCommand(t *testing.T) {
	input := writeCSV(t, scoresCSV)
	outDir := filepath.Join(t.TempDir(), "suite")

	if _, err := runCLI(t, "batch", input, "-o", outDir, "--no-cache"); err != nil {
		t.Fatalf("batch error: %v", err)
	}
	for _, v := range pipeline.StandardSuite() {
		if _, err := os.Stat(filepath.Join(outDir, v.Name+".png")); err != nil {
			t.Errorf("missing %s.png: %v", v.Name, err)
		}
	}
}

func TestBatchCommandMissingInput(t *testing.T) {
	if _, err := runCLI(t, "batch", filepath.Join(t.TempDir(), "nope.csv")); err != nil {
		t.Errorf("missing input should be a warning, got error: %v", err)
	}
}

func TestLayoutCommandJSON(t *testing.T) {
	input := writeCSV(t, scoresCSV)
	out, err := runCLI(t, "layout", input, "--json")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}

	var got struct {
		Width   int   `json:"width"`
		Height  int   `json:"height"`
		Columns []int `json:"columns"`
		Rows    []int `json:"rows"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("layout --json output is not JSON: %v\n%s", err, out)
	}
	if len(got.Columns) != 3 || len(got.Rows) != 3 {
		t.Errorf("columns/rows = %v/%v, want 3 each", got.Columns, got.Rows)
	}
	if got.Width <= 0 || got.Height <= 0 {
		t.Errorf("canvas = %dx%d", got.Width, got.Height)
	}
}

func TestPreviewTable(t *testing.T) {
	cfg := table.DefaultConfig()
	cfg.FontFamily = "basic"
	data := table.Data{{"Name", "Score"}, {"Alice", "91"}, {"Bob"}}
	res, err := table.Render(data, cfg)
	if err != nil {
		t.Fatal(err)
	}
	got := previewTable(res)
	for _, want := range []string{"Name", "Score", "Alice", "91", "Bob"} {
		if !strings.Contains(got, want) {
			t.Errorf("preview missing %q:\n%s", want, got)
		}
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := runCLI(t, "presets")
	if err != nil {
		t.Fatalf("presets error: %v", err)
	}
	for _, name := range table.Presets {
		if !strings.Contains(out, name) {
			t.Errorf("presets output missing %q", name)
		}
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q, want suffix %q", out, appName)
	}
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "csvtable", "config.toml")

	if _, err := runCLI(t, "config", "init", "--preset", "professional", "--config", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Preset != "professional" || cfg.JPEGQuality != table.DefaultJPEGQuality {
		t.Errorf("written config = %+v", cfg)
	}
	if _, ok := cfg.Themes["brand"]; !ok {
		t.Error("starter config should define the brand theme")
	}

	// The starter theme is usable right away.
	csv := writeCSV(t, "Name,Score\nAlice,91\n")
	out := filepath.Join(t.TempDir(), "brand.png")
	if _, err := runCLI(t, "render", csv, "-o", out, "--preset", "brand", "--config", path); err != nil {
		t.Fatalf("render with starter theme: %v", err)
	}

	_, err = runCLI(t, "config", "init", "--config", path)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("config init over existing file error = %v, want INVALID_INPUT", err)
	}
	if _, err := runCLI(t, "config", "init", "--force", "--preset", "compact", "--config", path); err != nil {
		t.Errorf("config init --force: %v", err)
	}

	_, err = runCLI(t, "config", "init", "--force", "--preset", "neon", "--config", path)
	if !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("config init with unknown preset error = %v, want INVALID_PRESET", err)
	}
}

func TestConfigPathCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	out, err := runCLI(t, "config", "path", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"png", []string{"png"}},
		{"png, svg,,pdf", []string{"png", "svg", "pdf"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "data/scores.csv", "data/scores"},
		{"out/table.png", "scores.csv", "out/table"},
		{"out/table.JPEG", "scores.csv", "out/table"},
		{"out/table", "scores.csv", "out/table"},
		{"out/table.v2", "scores.csv", "out/table.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestApplyConfig(t *testing.T) {
	cfg := &config.Config{
		Preset: "large", Formats: []string{"svg"}, Scale: 2, DPI: 300, FontFamily: "latin-modern",
		JPEGQuality: 70, SVGFontFamily: "Inter",
	}

	opts := pipeline.Options{Preset: "compact"}
	applyConfig(&opts, cfg)
	if opts.Preset != "compact" {
		t.Errorf("flag preset overridden: %q", opts.Preset)
	}
	if !reflect.DeepEqual(opts.Formats, []string{"svg"}) || opts.Scale != 2 || opts.DPI != 300 || opts.FontFamily != "latin-modern" {
		t.Errorf("config defaults not applied: %+v", opts)
	}
	if opts.Quality != 70 || opts.SVGFont != "Inter" {
		t.Errorf("quality/svg font = %d/%q, want 70/Inter", opts.Quality, opts.SVGFont)
	}
}
