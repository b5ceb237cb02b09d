// Package batch provides CLI commands for translating files of numbers.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/klytics/numsay/internal/config"
	"github.com/klytics/numsay/internal/numfile"
	"github.com/klytics/numsay/internal/output"
	"github.com/klytics/numsay/internal/progress"
	"github.com/klytics/numsay/internal/xlsx"
	"github.com/klytics/numsay/numword"
)

type batchResultItem struct {
	File   string      `json:"file"`
	Status string      `json:"status"`
	Output interface{} `json:"output,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewCommand returns the batch subcommand.
func NewCommand() *cobra.Command {
	var (
		outDir      string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch <glob-pattern>",
		Short: "Translate every number file matching a glob pattern",
		Long: `Translates all files matching a glob pattern and writes a words file
next to each one (or into --out-dir).

.txt files are translated line by line, .csv files cell by cell (label
cells pass through untouched), and .xlsx workbooks get a words column.
On error, the batch logs the failure and continues to the next file.

Example:
  numsay batch 'readings/*.txt'
  numsay batch 'invoices/*.csv' --out-dir words/ --concurrency 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			config.Load() // ensure loaded
			tr, err := config.Translator()
			if err != nil {
				return err
			}

			pattern := args[0]
			files, err := filepath.Glob(pattern)
			if err != nil {
				return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
			}

			if len(files) == 0 {
				return fmt.Errorf("no files matched pattern %q", pattern)
			}

			// Create output directory if specified
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0755); err != nil {
					return fmt.Errorf("could not create output directory %s: %w", outDir, err)
				}
			}

			results := make([]batchResultItem, len(files))
			succeeded := 0
			failed := 0

			if concurrency <= 1 {
				// Sequential processing
				for i, file := range files {
					if !jsonFlag {
						fmt.Printf("[%d/%d] Translating %s...\n", i+1, len(files), filepath.Base(file))
					}
					result := processFile(tr, file, outDir, jsonFlag)
					results[i] = result
					if result.Status == "ok" {
						succeeded++
					} else {
						failed++
					}
				}
			} else {
				// Concurrent processing
				bar := progress.New("Translating", len(files))
				if jsonFlag {
					bar.Enabled = false
				}

				var mu sync.Mutex
				sem := make(chan struct{}, concurrency)
				var wg sync.WaitGroup

				for i, file := range files {
					wg.Add(1)
					go func(idx int, f string) {
						defer wg.Done()
						sem <- struct{}{}
						defer func() { <-sem }()

						result := processFile(tr, f, outDir, true)
						bar.Increment(filepath.Base(f))
						mu.Lock()
						results[idx] = result
						if result.Status == "ok" {
							succeeded++
						} else {
							failed++
						}
						mu.Unlock()
					}(i, file)
				}
				wg.Wait()
				bar.Finish(fmt.Sprintf("Translated %d files", len(files)))
			}

			if jsonFlag {
				return output.PrintJSON("batch", results)
			}

			fmt.Printf("\nTranslated %d files. %d succeeded, %d failed.\n", len(files), succeeded, failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory for words files")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "Number of parallel workers")

	return cmd
}

func processFile(tr *numword.Translator, file, outDir string, quiet bool) batchResultItem {
	result := batchResultItem{File: file, Status: "ok"}

	ext := strings.ToLower(filepath.Ext(file))
	switch ext {
	case ".txt", ".csv":
		res, err := numfile.TranslateToFile(tr, file, outDir)
		if err != nil {
			result.Status = "error"
			result.Error = err.Error()
			return result
		}
		result.Output = res
		if !quiet {
			fmt.Printf("  %d ok, %d failed → %s\n", res.Translated, res.Failed, res.OutputPath)
		}

	case ".xlsx":
		outPath := numfile.OutputPath(file, outDir)
		res, err := xlsx.AnnotateFile(tr, file, "", "", outPath)
		if err != nil {
			result.Status = "error"
			result.Error = err.Error()
			return result
		}
		result.Output = res
		if !quiet {
			fmt.Printf("  %d ok, %d failed → %s\n", res.Annotated, res.Failed, res.OutputPath)
		}

	default:
		result.Status = "error"
		result.Error = fmt.Sprintf("unsupported file type %q — supported: .txt, .csv, .xlsx", ext)
	}

	return result
}
