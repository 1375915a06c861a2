package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csvtable/internal/config"
	"github.com/matzehuels/csvtable/pkg/errors"
	"github.com/matzehuels/csvtable/pkg/pipeline"
	"github.com/matzehuels/csvtable/pkg/render/table"
	"github.com/matzehuels/csvtable/pkg/render/table/layout"
)

// configCommand creates the config file management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the csvtable config file",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand, which writes a
// starter config file with one example theme.
func (c *CLI) configInitCommand() *cobra.Command {
	var (
		preset string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write a starter config file to --config or the default location.

The file sets the default preset, format, scale, DPI and JPEG quality, and
defines an example theme named "brand". A .yaml or .yml path is written as
YAML, anything else as TOML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configFile()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}

			cfg := starterConfig(preset)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "write config")
			}
			c.config = cfg

			printSuccess("Wrote config")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&preset, "preset", "p", pipeline.DefaultPreset, "default preset")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	_ = cmd.RegisterFlagCompletionFunc("preset", c.completePresets)

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configFile()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

// configFile returns --config or the default config path.
func (c *CLI) configFile() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("get config path: %w", err)
	}
	return path, nil
}

func starterConfig(preset string) *config.Config {
	headerBG := layout.RGB(192, 57, 43)
	cellHeight := 40
	return &config.Config{
		Preset:      preset,
		Formats:     []string{pipeline.DefaultFormat},
		Scale:       1,
		DPI:         table.DefaultDPI,
		JPEGQuality: table.DefaultJPEGQuality,
		Themes: map[string]table.Theme{
			"brand": {Base: table.PresetLarge, HeaderBG: &headerBG, CellHeight: &cellHeight},
		},
	}
}
