// Package watch provides the "numsay watch" CLI commands for file system monitoring.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/klytics/numsay/internal/config"
	w "github.com/klytics/numsay/internal/watch"
)

// NewCommand creates the "watch" command with subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Monitor directories and translate number files on change",
		Long: `Watch directories for new or modified number files (.txt, .csv) and
write a words file next to each one as it changes.

Example:
  numsay watch start ./readings --recursive
  numsay watch status
  numsay watch stop`,
	}

	cmd.AddCommand(newStartCmd())
	cmd.AddCommand(newStopCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func newStartCmd() *cobra.Command {
	var (
		patterns  []string
		outDir    string
		recursive bool
		debounce  int
	)

	cmd := &cobra.Command{
		Use:   "start <directory> [directory...]",
		Short: "Start watching directories for number files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Load() // ensure loaded
			tr, err := config.Translator()
			if err != nil {
				return err
			}

			watchConfig := w.WatchConfig{
				Directories: args,
				Patterns:    patterns,
				OutDir:      outDir,
				Recursive:   recursive,
				Debounce:    debounce,
			}

			watcher, err := w.New(watchConfig, tr)
			if err != nil {
				return err
			}

			// Write PID
			configDir := w.DefaultConfigDir()
			if err := w.WritePIDFile(configDir); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not write PID file: %v\n", err)
			}
			defer w.RemovePIDFile(configDir)

			// Save config for status command
			w.SaveConfig(configDir, watchConfig)

			fmt.Printf("Watching %d directory(ies) for .txt and .csv number files\n", len(args))
			fmt.Println("Press Ctrl+C to stop")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			// Handle signals
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				fmt.Println("\nStopping watcher...")
				cancel()
			}()

			return watcher.Start(ctx)
		},
	}

	cmd.Flags().StringSliceVar(&patterns, "pattern", nil, `Only translate files matching a glob (e.g. "invoice_*.csv")`)
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Write words files here instead of next to the inputs")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Watch directories recursively")
	cmd.Flags().IntVar(&debounce, "debounce", 500, "Debounce interval in milliseconds")

	return cmd
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running watcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir := w.DefaultConfigDir()
			pid, err := w.ReadPIDFile(configDir)
			if err != nil {
				return fmt.Errorf("no watcher running (PID file not found)")
			}

			process, err := os.FindProcess(pid)
			if err != nil {
				return fmt.Errorf("could not find process %d: %w", pid, err)
			}

			if err := process.Signal(syscall.SIGTERM); err != nil {
				w.RemovePIDFile(configDir)
				return fmt.Errorf("could not stop watcher (PID %d): %w", pid, err)
			}

			w.RemovePIDFile(configDir)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"stopped": true,
					"pid":     pid,
				})
			}

			fmt.Printf("Stopped watcher (PID %d)\n", pid)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current watcher status",
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir := w.DefaultConfigDir()

			pid, err := w.ReadPIDFile(configDir)
			running := err == nil

			// Check if process is actually running
			if running {
				process, err := os.FindProcess(pid)
				if err != nil {
					running = false
				} else {
					// Try sending signal 0 to check if process exists
					err = process.Signal(syscall.Signal(0))
					if err != nil {
						running = false
						w.RemovePIDFile(configDir)
					}
				}
			}

			jsonOut, _ := cmd.Flags().GetBool("json")

			if !running {
				if jsonOut {
					return json.NewEncoder(os.Stdout).Encode(map[string]any{"running": false})
				}
				fmt.Println("Watcher is not running")
				return nil
			}

			watchConfig, _ := w.LoadConfig(configDir)

			status := map[string]any{
				"running": true,
				"pid":     pid,
			}
			if watchConfig != nil {
				status["directories"] = watchConfig.Directories
				status["recursive"] = watchConfig.Recursive
				if len(watchConfig.Patterns) > 0 {
					status["patterns"] = watchConfig.Patterns
				}
				if watchConfig.OutDir != "" {
					status["outDir"] = watchConfig.OutDir
				}
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(status)
			}

			fmt.Printf("Watcher is running (PID %d)\n", pid)
			if watchConfig != nil {
				fmt.Printf("  Directories: %s\n", strings.Join(watchConfig.Directories, ", "))
				fmt.Printf("  Recursive:   %v\n", watchConfig.Recursive)
				if len(watchConfig.Patterns) > 0 {
					fmt.Printf("  Patterns:    %s\n", strings.Join(watchConfig.Patterns, ", "))
				}
				if watchConfig.OutDir != "" {
					fmt.Printf("  Output dir:  %s\n", watchConfig.OutDir)
				}
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the current watcher configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir := w.DefaultConfigDir()
			watchConfig, err := w.LoadConfig(configDir)
			if err != nil {
				return fmt.Errorf("no watcher configuration found (run 'numsay watch start' first)")
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(watchConfig)
			}

			fmt.Printf("Directories: %s\n", strings.Join(watchConfig.Directories, ", "))
			fmt.Printf("Recursive:   %v\n", watchConfig.Recursive)
			fmt.Printf("Debounce:    %dms\n", watchConfig.Debounce)
			if len(watchConfig.Patterns) > 0 {
				fmt.Printf("Patterns:    %s\n", strings.Join(watchConfig.Patterns, ", "))
			}
			if watchConfig.OutDir != "" {
				fmt.Printf("Output dir:  %s\n", watchConfig.OutDir)
			}
			return nil
		},
	}
}
