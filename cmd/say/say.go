// Package say provides the primary "numsay say" translation command.
package say

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/numsay/internal/config"
	"github.com/klytics/numsay/internal/history"
	"github.com/klytics/numsay/internal/output"
	"github.com/klytics/numsay/numword"
)

type sayResult struct {
	Input string `json:"input"`
	Words string `json:"words,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewCommand returns the say subcommand.
func NewCommand() *cobra.Command {
	var (
		andFlag  bool
		template string
	)

	cmd := &cobra.Command{
		Use:   "say <integer>...",
		Short: "Translate integers into English words",
		Long: `Translates one or more integers into their spoken English words.

Accepts decimal integers of any length, with optional thousands
separators (, or _). Pass '-' to read numbers line by line from stdin.

Examples:
  numsay say 55
  numsay say 1,000,000 42
  numsay say -- -1024
  seq 1 5 | numsay say -
  numsay say 55 --template "{{number}} reads as {{words}}"`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !jsonFlag {
				if f, ferr := output.ParseFormat(cfg.Output.Format); ferr == nil && f == output.FormatJSON {
					jsonFlag = true
				}
			}

			if template != "" {
				known := map[string]bool{"number": true, "words": true, "digits": true}
				for _, name := range output.TemplateVars(template) {
					if !known[name] {
						return fmt.Errorf("unknown template variable %s (available: digits, number, words)", name)
					}
				}
			}

			opts, err := config.TranslatorOptions()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("and") {
				opts.And = andFlag
			}
			tr, err := numword.New(opts)
			if err != nil {
				return err
			}

			inputs, err := collectInputs(args)
			if err != nil {
				return err
			}

			store := history.DefaultStore()
			store.Enabled = cfg.History.Enabled

			red := color.New(color.FgRed).SprintFunc()
			results := make([]sayResult, 0, len(inputs))
			failed := 0

			for _, in := range inputs {
				start := time.Now()
				words, terr := tr.TranslateString(in)
				store.Record(history.NewEntry("say", in, words, time.Since(start), terr))

				if terr != nil {
					failed++
					results = append(results, sayResult{Input: in, Error: terr.Error()})
					if !jsonFlag {
						if len(inputs) == 1 {
							return terr
						}
						fmt.Fprintf(os.Stderr, "%s %s\n", red("✗"), terr)
					}
					continue
				}

				results = append(results, sayResult{Input: in, Words: words})
				if !jsonFlag {
					line := words
					if template != "" {
						line, err = output.RenderTemplate(template, map[string]string{
							"number": in,
							"words":  words,
							"digits": strconv.Itoa(history.CountDigits(in)),
						})
						if err != nil {
							return err
						}
					}
					fmt.Println(line)
				}
			}

			if jsonFlag {
				if len(inputs) == 1 && failed == 1 {
					output.PrintJSONError("say", errors.New(results[0].Error), output.ExitUserError)
					os.Exit(output.ExitUserError)
				}
				if err := output.PrintJSON("say", results); err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("could not translate %d of %d inputs", failed, len(inputs))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&andFlag, "and", false, `British phrasing ("one hundred and one")`)
	cmd.Flags().StringVar(&template, "template", "", `Output template, e.g. "{{number}} is {{words}}"`)

	return cmd
}

// collectInputs gathers the numbers to translate from arguments and, when
// requested with '-' (or when no arguments arrive on a pipe), stdin lines.
func collectInputs(args []string) ([]string, error) {
	inputs := make([]string, 0, len(args))
	fromStdin := len(args) == 0
	for _, a := range args {
		if a == "-" {
			fromStdin = true
			continue
		}
		inputs = append(inputs, a)
	}

	if !fromStdin {
		return inputs, nil
	}

	if len(args) == 0 {
		if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			return nil, fmt.Errorf("no input provided — pass an integer or pipe numbers to stdin\n\nExample: numsay say 55")
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read from stdin: %w", err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input provided — stdin was empty")
	}
	return inputs, nil
}
