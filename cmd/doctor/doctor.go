// Package doctor provides the "numsay doctor" command for checking system health.
package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/numsay/internal/config"
	"github.com/klytics/numsay/internal/history"
	"github.com/klytics/numsay/internal/watch"
	"github.com/klytics/numsay/numword"
)

// Check represents a single health check result.
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message"`
}

// NewCommand creates the "doctor" command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check system health and configuration",
		Long:  "Run diagnostic checks to verify numsay is properly configured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := runChecks()

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(checks)
			}

			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()

			fmt.Println("Numsay Doctor")
			fmt.Println("=============")
			fmt.Println()

			okCount, warnCount, errCount := 0, 0, 0
			for _, c := range checks {
				var icon string
				switch c.Status {
				case "ok":
					icon = green("✓")
					okCount++
				case "warning":
					icon = yellow("!")
					warnCount++
				case "error":
					icon = red("✗")
					errCount++
				}
				fmt.Printf("  %s %s: %s\n", icon, c.Name, c.Message)
			}

			fmt.Println()
			fmt.Printf("  %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

			if errCount > 0 {
				return fmt.Errorf("%d check(s) failed", errCount)
			}
			return nil
		},
	}
}

func runChecks() []Check {
	var checks []Check

	// Check Go runtime
	checks = append(checks, Check{
		Name:    "Go Runtime",
		Status:  "ok",
		Message: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	})

	// Check config directory
	configDir := watch.DefaultConfigDir()
	if info, err := os.Stat(configDir); err == nil && info.IsDir() {
		checks = append(checks, Check{
			Name:    "Config Directory",
			Status:  "ok",
			Message: configDir,
		})
	} else {
		checks = append(checks, Check{
			Name:    "Config Directory",
			Status:  "warning",
			Message: fmt.Sprintf("%s not found — run 'numsay config init'", configDir),
		})
	}

	// Check config file
	configFile := configDir + "/config.yaml"
	if _, err := os.Stat(configFile); err == nil {
		checks = append(checks, Check{
			Name:    "Config File",
			Status:  "ok",
			Message: configFile,
		})
	} else {
		checks = append(checks, Check{
			Name:    "Config File",
			Status:  "warning",
			Message: "Not found — run 'numsay config init'",
		})
	}

	// Check lexicon pack
	cfg, _ := config.Load()
	if pack := config.Get("lexicon.pack"); pack != "" {
		if lex, err := numword.LoadLexicon(pack); err == nil {
			checks = append(checks, Check{
				Name:    "Lexicon Pack",
				Status:  "ok",
				Message: fmt.Sprintf("%s (%s, %d scales)", pack, lex.Tag(), len(lex.Scales())),
			})
		} else {
			checks = append(checks, Check{
				Name:    "Lexicon Pack",
				Status:  "error",
				Message: fmt.Sprintf("could not load %s — run 'numsay lexicon check %s'", pack, pack),
			})
		}
	} else {
		checks = append(checks, Check{
			Name:    "Lexicon Pack",
			Status:  "ok",
			Message: "Built-in English",
		})
	}

	// Check the translator end to end
	if tr, err := config.Translator(); err == nil {
		if words, terr := tr.Translate(121); terr == nil {
			checks = append(checks, Check{
				Name:    "Translator",
				Status:  "ok",
				Message: fmt.Sprintf("121 → %q", words),
			})
		} else {
			checks = append(checks, Check{
				Name:    "Translator",
				Status:  "error",
				Message: terr.Error(),
			})
		}
	} else {
		checks = append(checks, Check{
			Name:    "Translator",
			Status:  "error",
			Message: err.Error(),
		})
	}

	// Check history store
	store := history.DefaultStore()
	if cfg != nil {
		store.Enabled = cfg.History.Enabled
	}
	if !store.Enabled {
		checks = append(checks, Check{
			Name:    "History Store",
			Status:  "ok",
			Message: "Disabled",
		})
	} else if size := store.Size(); size > 0 {
		checks = append(checks, Check{
			Name:    "History Store",
			Status:  "ok",
			Message: fmt.Sprintf("%s (%d bytes)", store.Path, size),
		})
	} else {
		checks = append(checks, Check{
			Name:    "History Store",
			Status:  "ok",
			Message: "Empty — created on first translation",
		})
	}

	// Check for a stale watcher PID file
	if pid, err := watch.ReadPIDFile(configDir); err == nil {
		if proc, perr := os.FindProcess(pid); perr == nil && proc.Signal(syscall.Signal(0)) == nil {
			checks = append(checks, Check{
				Name:    "Watcher",
				Status:  "ok",
				Message: fmt.Sprintf("Running (PID %d)", pid),
			})
		} else {
			checks = append(checks, Check{
				Name:    "Watcher",
				Status:  "warning",
				Message: fmt.Sprintf("Stale PID file for %d — run 'numsay watch stop' to clean up", pid),
			})
		}
	} else {
		checks = append(checks, Check{
			Name:    "Watcher",
			Status:  "ok",
			Message: "Not running",
		})
	}

	return checks
}
