// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// newCompletionCommand creates the `childenv completion` command.
func newCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for childenv.

To enable shell completions, run one of the following commands:

` + SubtitleStyle.Render("Bash:") + `
  # Add to ~/.bashrc:
  eval "$(childenv completion bash)"

  # Or install system-wide:
  childenv completion bash > /etc/bash_completion.d/childenv

` + SubtitleStyle.Render("Zsh:") + `
  # Add to ~/.zshrc:
  eval "$(childenv completion zsh)"

  # Or install to fpath:
  childenv completion zsh > "${fpath[1]}/_childenv"

` + SubtitleStyle.Render("Fish:") + `
  childenv completion fish > ~/.config/fish/completions/childenv.fish

` + SubtitleStyle.Render("PowerShell:") + `
  childenv completion powershell | Out-String | Invoke-Expression

  # Or add to $PROFILE:
  childenv completion powershell >> $PROFILE
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
