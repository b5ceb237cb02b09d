// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for numsay.

Install instructions:
  Bash:       numsay completion bash > /etc/bash_completion.d/numsay
              echo 'source <(numsay completion bash)' >> ~/.bashrc
  Zsh:        numsay completion zsh > ~/.zsh/completions/_numsay
  Fish:       numsay completion fish > ~/.config/fish/completions/numsay.fish
  PowerShell: numsay completion powershell >> $PROFILE`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				fmt.Fprintln(os.Stdout, "# numsay bash completion")
				fmt.Fprintln(os.Stdout, "# Install: numsay completion bash > /etc/bash_completion.d/numsay")
				fmt.Fprintln(os.Stdout, "# Or:      echo 'source <(numsay completion bash)' >> ~/.bashrc")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				fmt.Fprintln(os.Stdout, "# numsay zsh completion")
				fmt.Fprintln(os.Stdout, "# Install: numsay completion zsh > ~/.zsh/completions/_numsay")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				fmt.Fprintln(os.Stdout, "# numsay fish completion")
				fmt.Fprintln(os.Stdout, "# Install: numsay completion fish > ~/.config/fish/completions/numsay.fish")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				fmt.Fprintln(os.Stdout, "# numsay PowerShell completion")
				fmt.Fprintln(os.Stdout, "# Install: numsay completion powershell >> $PROFILE")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
	return cmd
}
