// Package history provides the "numsay history" CLI commands for the local
// translation log.
package history

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	historypkg "github.com/klytics/numsay/internal/history"
	"github.com/klytics/numsay/internal/output"
)

// NewCommand creates the "history" command with all subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "View and manage the local translation log",
		Long:  "Show past translations, aggregate statistics, and clear the log. Everything stays in ~/.numsay — nothing leaves your machine.",
	}

	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newClearCmd())

	return cmd
}

func newShowCmd() *cobra.Command {
	var (
		last       int
		command    string
		since      string
		until      string
		failedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show recent translations",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := historypkg.DefaultStore()
			entries, err := store.ReadEntries()
			if err != nil {
				return err
			}

			var sinceTime, untilTime time.Time
			if since != "" {
				t, err := time.Parse("2006-01-02", since)
				if err != nil {
					return fmt.Errorf("invalid --since date: %w (use YYYY-MM-DD)", err)
				}
				sinceTime = t
			}
			if until != "" {
				t, err := time.Parse("2006-01-02", until)
				if err != nil {
					return fmt.Errorf("invalid --until date: %w (use YYYY-MM-DD)", err)
				}
				// Include the whole named day.
				untilTime = t.Add(24*time.Hour - time.Nanosecond)
			}

			filtered := historypkg.Filter(entries, sinceTime, untilTime, command, failedOnly)

			if last > 0 && len(filtered) > last {
				filtered = filtered[len(filtered)-last:]
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return output.PrintJSON("history show", filtered)
			}

			if len(filtered) == 0 {
				fmt.Println("No translations recorded.")
				return nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Translation History — %d Entries\n", len(filtered))
			fmt.Fprintf(&b, "File: %s\n\n", store.Path)

			tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "TIMESTAMP\tCOMMAND\tNUMBER\tWORDS\n")
			for _, e := range filtered {
				ts := e.Timestamp.Format("2006-01-02 15:04:05")
				words := e.Words
				if e.Err != "" {
					words = "✗ " + e.Err
				}
				if len(words) > 60 {
					words = words[:59] + "~"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ts, e.Command, e.Input, words)
			}
			tw.Flush()

			content := b.String()
			if output.ShouldPage(content, output.DefaultPageHeight) {
				return output.Page(content)
			}
			fmt.Print(content)
			return nil
		},
	}

	cmd.Flags().IntVar(&last, "last", 20, "Show last N entries")
	cmd.Flags().StringVar(&command, "command", "", "Filter by command name (say, batch, excel, shell, watch)")
	cmd.Flags().StringVar(&since, "since", "", "Filter entries since date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&until, "until", "", "Filter entries up to date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Show only failed translations")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate translation statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := historypkg.DefaultStore()
			stats, err := store.Summary()
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return output.PrintJSON("history stats", stats)
			}

			fmt.Printf("Translations: %d\n", stats.TotalTranslations)
			if stats.TotalTranslations == 0 {
				return nil
			}

			fmt.Printf("Errors:       %d\n", stats.ErrorCount)
			fmt.Printf("Avg duration: %.1fms\n", stats.AvgDurationMs)
			if stats.LargestInput != "" {
				fmt.Printf("Largest:      %s (%d digits)\n", stats.LargestInput, stats.MaxDigits)
			}

			fmt.Println("\nBy command:")
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, c := range []string{"say", "batch", "excel", "shell", "watch"} {
				if n, ok := stats.ByCommand[c]; ok {
					fmt.Fprintf(tw, "  %s\t%d\n", c, n)
				}
			}
			tw.Flush()

			fmt.Printf("\nStore: %s (%s)\n", store.Path, formatSize(store.Size()))
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the translation log",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := historypkg.DefaultStore()
			if err := store.Clear(); err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return output.PrintJSON("history clear", map[string]string{"cleared": store.Path})
			}
			fmt.Printf("Translation log cleared: %s\n", store.Path)
			return nil
		},
	}
}

func formatSize(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}
