package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/pipeline"
	"github.com/matzehuels/csvtable/pkg/render/table/sink"
)

// renderFlags holds the style flags shared by render, batch, layout and
// preview.
type renderFlags struct {
	preset     string
	formats    string
	scale      float64
	dpi        int
	fontPath   string
	fontFamily string
	quality    int
	svgFont    string
	noCache    bool
	refresh    bool
}

func (c *CLI) registerRenderFlags(cmd *cobra.Command, f *renderFlags, withOutput bool) {
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "preset or theme name (default standard)")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "scale factor for every dimension (default 1)")
	cmd.Flags().StringVar(&f.fontPath, "font", "", "TrueType/OpenType font file")
	cmd.Flags().StringVar(&f.fontFamily, "font-family", "", "embedded font family: go (default), latin-modern, basic")
	if withOutput {
		cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): png (default), jpg, bmp, tiff, svg, pdf, json (comma-separated)")
		cmd.Flags().IntVar(&f.dpi, "dpi", 0, "resolution written to PNG and JPEG files (default 96)")
		cmd.Flags().IntVar(&f.quality, "quality", 0, "JPEG quality 1-100 (default 95)")
		cmd.Flags().StringVar(&f.svgFont, "svg-font", "", "CSS font-family written into SVG and PDF output")
		cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
		cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even when cached")
		_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	}
	_ = cmd.RegisterFlagCompletionFunc("preset", c.completePresets)
}

// options converts the flags into pipeline options with config defaults
// applied.
func (c *CLI) options(input string, f *renderFlags) (pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Input:      input,
		Preset:     f.preset,
		Scale:      f.scale,
		DPI:        f.dpi,
		FontPath:   f.fontPath,
		FontFamily: f.fontFamily,
		Quality:    f.quality,
		SVGFont:    f.svgFont,
		Formats:    parseFormats(f.formats),
		Refresh:    f.refresh,
		Logger:     c.Logger,
	}
	applyConfig(&opts, cfg)
	return opts, nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags       renderFlags
		output      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "render <csv>",
		Short: "Render a CSV file as a table image",
		Long: `Render a CSV file as a table image.

The first row is the header. The output format is taken from --format, or
from the extension of --output, and defaults to PNG. With several formats,
--output is used as the base name.

A missing or empty CSV file is reported as a warning and nothing is written.`,
		Example: `  csvtable render scores.csv
  csvtable render scores.csv -o out/scores.svg --preset professional
  csvtable render scores.csv -f png,pdf --scale 2 --dpi 300`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				name, ok, err := pickPreset(cfg)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
				flags.preset = name
			}
			if flags.formats == "" && output != "" && filepath.Ext(output) != "" {
				f, err := sink.FormatFromPath(output)
				if err != nil {
					return err
				}
				flags.formats = string(f)
			}
			return c.runRender(cmd.Context(), args[0], output, &flags)
		},
	}

	c.registerRenderFlags(cmd, &flags, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or base path for several formats")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the preset interactively")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, flags *renderFlags) error {
	opts, err := c.options(input, flags)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, opts)
	if errors.IsReport(err) {
		printWarning("%s", errors.UserMessage(err))
		return nil
	}
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(result, output, input, opts.Formats)
	if err != nil {
		return err
	}
	printSuccess("Rendered %s", input)
	printStats(result.Stats.Rows, result.Stats.Columns, result.Stats.Width, result.Stats.Height, result.CacheHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes each artifact next to the base path derived from
// output and input, adding the format's extension. A single format whose
// output file already has a matching extension is written to that file.
func writeArtifacts(result *pipeline.Result, output, input string, formats []string) ([]string, error) {
	if len(formats) == 0 {
		formats = []string{pipeline.DefaultFormat}
	}
	normalized, err := pipeline.NormalizeFormats(formats)
	if err != nil {
		return nil, err
	}

	base := basePath(output, input)
	if f, err := sink.FormatFromPath(output); err == nil && len(normalized) == 1 && string(f) == normalized[0] {
		return []string{output}, writeFile(output, result.Artifacts[normalized[0]])
	}

	paths := make([]string, 0, len(normalized))
	for _, name := range normalized {
		path := base + sink.Format(name).Ext()
		if err := writeFile(path, result.Artifacts[name]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.png, .svg, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := sink.ParseFormat(ext); ext != "" && err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
