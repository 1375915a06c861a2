package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/pipeline"
)

// batchCommand creates the batch command, which renders the standard suite
// of presets and print scales from one CSV file.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		flags  renderFlags
		outDir string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "batch <csv>",
		Short: "Render every preset, plus 2x and 3x print variants",
		Long: `Render the standard suite from one CSV file:

  table_<preset>.png                 every preset at 1x, 96 DPI
  table_standard_2x.png              2x, 300 DPI
  table_professional_2x.png          2x, 300 DPI
  table_standard_3x.png              3x, 300 DPI
  table_professional_3x.png          3x, 300 DPI

Variants are rendered concurrently.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), args[0], outDir, jobs, &flags)
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", ".", "output directory")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", pipeline.DefaultBatchLimit, "variants rendered in parallel")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s) for every variant (default png)")
	cmd.Flags().StringVar(&flags.fontPath, "font", "", "TrueType/OpenType font file")
	cmd.Flags().StringVar(&flags.fontFamily, "font-family", "", "embedded font family: go (default), latin-modern, basic")
	cmd.Flags().IntVar(&flags.quality, "quality", 0, "JPEG quality 1-100 (default 95)")
	cmd.Flags().StringVar(&flags.svgFont, "svg-font", "", "CSS font-family written into SVG and PDF output")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "re-render even when cached")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, input, outDir string, limit int, flags *renderFlags) error {
	base, err := c.options(input, flags)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	// Read the CSV once; every variant shares the parsed table.
	data, err := runner.Load(ctx, base)
	if err == nil && data.Empty() {
		err = errors.New(errors.ErrCodeEmptyData, "CSV file %s is empty", input)
	}
	if errors.IsReport(err) {
		printWarning("%s", errors.UserMessage(err))
		return nil
	}
	if err != nil {
		return err
	}
	base.Data = data

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d variants...", len(pipeline.StandardSuite())))
	spinner.Start()
	results, err := runner.RunBatch(ctx, pipeline.Jobs(base, pipeline.StandardSuite()), limit)
	if err != nil {
		spinner.StopWithError("Batch cancelled")
		return err
	}
	spinner.Stop()

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			printError("%s: %s", r.Job.Name, errors.UserMessage(r.Err))
			continue
		}
		paths, err := writeArtifacts(r.Result, filepath.Join(outDir, r.Job.Name), "", r.Job.Options.Formats)
		if err != nil {
			return err
		}
		for _, p := range paths {
			printFile(p)
		}
	}

	prog.done(fmt.Sprintf("Rendered %d of %d variants", len(results)-failed, len(results)))
	if failed > 0 {
		return fmt.Errorf("%d of %d variants failed", failed, len(results))
	}
	printSuccess("Rendered %d variants into %s", len(results), outDir)
	return nil
}
