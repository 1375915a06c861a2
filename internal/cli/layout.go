package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/pipeline"
	"github.com/matzehuels/csvtable/pkg/render/table"
	"github.com/matzehuels/csvtable/pkg/render/table/sink"
)

// layoutCommand creates the layout command, which prints the computed
// geometry of a table without rendering it.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   renderFlags
		asJSON  bool
		dpiFlag int
	)

	cmd := &cobra.Command{
		Use:   "layout <csv>",
		Short: "Print column widths, row heights and canvas size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.dpi = dpiFlag
			res, err := c.buildLayout(cmd.Context(), args[0], &flags)
			if errors.IsReport(err) {
				printWarning("%s", errors.UserMessage(err))
				return nil
			}
			if err != nil {
				return err
			}

			if asJSON {
				data, err := sink.RenderJSON(res)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			printLayout(res)
			return nil
		},
	}

	c.registerRenderFlags(cmd, &flags, false)
	cmd.Flags().IntVar(&dpiFlag, "dpi", 0, "resolution recorded in the JSON output")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout and draw plan as JSON")

	return cmd
}

// buildLayout loads input and lays it out without rendering.
func (c *CLI) buildLayout(ctx context.Context, input string, flags *renderFlags) (*table.Result, error) {
	opts, err := c.options(input, flags)
	if err != nil {
		return nil, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	cfg, err := opts.ResolveConfig()
	if err != nil {
		return nil, err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	data, err := runner.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	return runner.Layout(ctx, data, cfg)
}

func printLayout(res *table.Result) {
	l := res.Layout
	printKeyValue("Canvas", fmt.Sprintf("%d x %d px", l.Width, l.Height))
	printKeyValue("Columns", joinInts(l.Columns))
	printKeyValue("Rows", joinInts(l.Rows))
	printKeyValue("Scale", fmt.Sprintf("%g", res.Config.Scale))
	printKeyValue("Header font", fontLabel(res, true))
	printKeyValue("Cell font", fontLabel(res, false))
	printKeyValue("Draw ops", fmt.Sprintf("%d", len(res.Plan)))
}

func fontLabel(res *table.Result, header bool) string {
	f := res.Cell
	if header {
		f = res.Header
	}
	label := fmt.Sprintf("%s %dpx", f.Name, f.Size)
	if f.Fallback != "" {
		label += StyleDim.Render(" (fallback: " + f.Fallback + ")")
	}
	return label
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, " ")
}
