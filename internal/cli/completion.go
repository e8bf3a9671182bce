package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for quibraries.

To load completions:

Bash:
  $ source <(quibraries completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ quibraries completion bash > /etc/bash_completion.d/quibraries
  # macOS:
  $ quibraries completion bash > $(brew --prefix)/etc/bash_completion.d/quibraries

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ quibraries completion zsh > "${fpath[1]}/_quibraries"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ quibraries completion fish | source

  # To load completions for each session, execute once:
  $ quibraries completion fish > ~/.config/fish/completions/quibraries.fish

PowerShell:
  PS> quibraries completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> quibraries completion powershell > quibraries.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		// Completion scripts need no configuration or API key.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}
