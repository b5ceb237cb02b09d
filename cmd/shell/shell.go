// Package shell provides the "numsay shell" interactive REPL command.
package shell

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klytics/numsay/cmd/version"
	"github.com/klytics/numsay/internal/config"
	"github.com/klytics/numsay/internal/history"
	shellpkg "github.com/klytics/numsay/internal/shell"
	updatelib "github.com/klytics/numsay/internal/update"
)

// NewCommand creates the "shell" command.
func NewCommand() *cobra.Command {
	var evalCmd string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive numsay shell",
		Long: `Start an interactive REPL with tab completion and persistent history.

Type a number to hear it in words. Anything else runs as a numsay
command without re-paying startup cost. 'set and on' switches to
British phrasing for the session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tr, err := config.Translator()
			if err != nil {
				return err
			}

			session, err := shellpkg.NewSession(tr)
			if err != nil {
				return err
			}
			store := history.DefaultStore()
			store.Enabled = cfg.History.Enabled
			session.Store = store

			if evalCmd != "" {
				output, err := session.Eval(cmd.Context(), evalCmd)
				if err != nil {
					return err
				}
				fmt.Print(output)
				return nil
			}

			// A long-lived session is the one place a background release
			// check has time to land; it prints to stderr above the prompt.
			updatelib.CheckInBackground(version.Version)

			return session.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&evalCmd, "eval", "", "Run a single command and exit")
	return cmd
}
