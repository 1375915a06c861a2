package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// presetsCommand lists built-in presets and configured themes.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List presets and custom themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			model := NewPresetListModel(cfg)

			rows := make([][]string, 0, len(model.Choices))
			for _, p := range model.Choices {
				rows = append(rows, []string{
					p.Name,
					swatch(p.Config),
					fmt.Sprintf("%d/%d", p.Config.HeaderHeight, p.Config.CellHeight),
					fmt.Sprint(p.Config.Padding),
					p.Description,
				})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
			cellStyle := lipgloss.NewStyle().Padding(0, 1)
			t := lgtable.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Name", "Colors", "Header/Row", "Padding", "Description").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if col == 0 {
						return cellStyle.Foreground(colorCyan)
					}
					return cellStyle
				})

			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
}
