// Package excel provides CLI commands for working with .xlsx files.
package excel

import "github.com/spf13/cobra"

// NewCommand returns the excel subcommand group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "excel",
		Short: "Translate numbers inside Excel spreadsheets (.xlsx)",
		Long:  "Commands for working with Excel .xlsx files — preview the spoken form of a sheet's numbers, or write a copy with a words column appended.",
	}

	cmd.AddCommand(newReadCommand())
	cmd.AddCommand(newAnnotateCommand())

	return cmd
}
