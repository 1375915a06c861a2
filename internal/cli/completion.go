package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/csvtable/pkg/render/table"
	"github.com/matzehuels/csvtable/pkg/render/table/sink"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for csvtable.

To load completions:

Bash:
  $ source <(csvtable completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ csvtable completion bash > /etc/bash_completion.d/csvtable
  # macOS:
  $ csvtable completion bash > $(brew --prefix)/etc/bash_completion.d/csvtable

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ csvtable completion zsh > "${fpath[1]}/_csvtable"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ csvtable completion fish | source

  # To load completions for each session, execute once:
  $ csvtable completion fish > ~/.config/fish/completions/csvtable.fish

PowerShell:
  PS> csvtable completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> csvtable completion powershell > csvtable.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// completePresets completes --preset with built-in presets and themes.
func (c *CLI) completePresets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(table.Presets))
	for _, name := range table.Presets {
		names = append(names, name+"\t"+table.Describe(name))
	}
	if cfg, err := c.loadConfig(); err == nil {
		names = append(names, cfg.ThemeNames()...)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes --format with the supported output formats.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(sink.Formats))
	for i, f := range sink.Formats {
		names[i] = string(f)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
