// Package cmd contains all CLI commands for the numsay binary.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/numsay/cmd/batch"
	"github.com/klytics/numsay/cmd/completion"
	cmdconfig "github.com/klytics/numsay/cmd/config"
	"github.com/klytics/numsay/cmd/doctor"
	"github.com/klytics/numsay/cmd/excel"
	"github.com/klytics/numsay/cmd/history"
	"github.com/klytics/numsay/cmd/lexicon"
	"github.com/klytics/numsay/cmd/say"
	cmdshell "github.com/klytics/numsay/cmd/shell"
	"github.com/klytics/numsay/cmd/update"
	"github.com/klytics/numsay/cmd/version"
	cmdwatch "github.com/klytics/numsay/cmd/watch"
	shellpkg "github.com/klytics/numsay/internal/shell"
)

var (
	jsonOutput bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "numsay",
		Short: "Turn integers into English words",
		Long: `Numsay — numbers, spoken.

Translates integers into their English spoken words: 55 becomes
"fifty-five". Say one number, whole files of them, or entire
spreadsheets from your terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(say.NewCommand())
	rootCmd.AddCommand(batch.NewCommand())
	rootCmd.AddCommand(excel.NewCommand())
	rootCmd.AddCommand(lexicon.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(history.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(doctor.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(update.NewCommand())
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	// The interactive shell dispatches non-number lines back through the CLI.
	shellpkg.DefaultRunner = func(ctx context.Context, args []string, stdout, stderr io.Writer) error {
		root := NewRootCommand()
		root.SetArgs(args)
		root.SetOut(stdout)
		root.SetErr(stderr)
		return root.ExecuteContext(ctx)
	}
}
