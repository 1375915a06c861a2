package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/render/table"
)

// previewCommand creates the preview command, which draws the table in the
// terminal using the preset's colors and the computed line wrapping.
func (c *CLI) previewCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "preview <csv>",
		Short: "Show the table in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.buildLayout(cmd.Context(), args[0], &flags)
			if errors.IsReport(err) {
				printWarning("%s", errors.UserMessage(err))
				return nil
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), previewTable(res))
			return err
		},
	}

	c.registerRenderFlags(cmd, &flags, false)
	return cmd
}

// previewTable renders res as a terminal table. Cell text is wrapped exactly
// as in the image; cells missing from short rows are left blank.
func previewTable(res *table.Result) string {
	l := res.Layout
	grid := make([][]string, len(l.Rows))
	for r := range grid {
		grid[r] = make([]string, len(l.Columns))
	}
	for _, cell := range l.Cells {
		lines := make([]string, len(cell.Lines))
		for i, line := range cell.Lines {
			lines[i] = line.Text
		}
		grid[cell.Row][cell.Col] = strings.Join(lines, "\n")
	}

	cfg := res.Config
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color(cfg.HeaderTextColor.Hex())).
		Background(lipgloss.Color(cfg.HeaderBG.Hex()))
	rowStyle := func(r int) lipgloss.Style {
		bg := cfg.Palette().RowBackground(r)
		return lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color(cfg.TextColor.Hex())).
			Background(lipgloss.Color(bg.Hex()))
	}

	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.BorderColor.Hex()))).
		Headers(grid[0]...).
		Rows(grid[1:]...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			// Data rows are numbered from 0 here and from 1 in the layout.
			return rowStyle(row + 1)
		})
	return t.Render()
}
