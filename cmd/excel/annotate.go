package excel

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/numsay/internal/config"
	"github.com/klytics/numsay/internal/numfile"
	"github.com/klytics/numsay/internal/output"
	"github.com/klytics/numsay/internal/progress"
	"github.com/klytics/numsay/internal/xlsx"
)

func newAnnotateCommand() *cobra.Command {
	var (
		sheetName string
		column    string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "annotate <file.xlsx>",
		Short: "Write a workbook copy with a words column appended",
		Long: `Copies a workbook and appends one column holding the spoken form of
each row's number. Every original cell, sheet and style is preserved.

With --col only that column is read; otherwise the first integer cell
of each row is used. A header row gets a generated words header.

Example:
  numsay excel annotate invoices.xlsx --col B -o invoices.words.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			filePath := args[0]
			if !strings.HasSuffix(strings.ToLower(filePath), ".xlsx") {
				return fmt.Errorf("expected an .xlsx file, got %q — use 'numsay excel annotate <file.xlsx>'", filePath)
			}

			config.Load() // ensure loaded
			tr, err := config.Translator()
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = numfile.OutputPath(filePath, "")
			}

			spin := progress.NewSpinner(fmt.Sprintf("Annotating %s...", filePath))
			if jsonFlag {
				spin.Enabled = false
			}
			spin.Start()

			res, err := xlsx.AnnotateFile(tr, filePath, sheetName, column, outPath)
			spin.StopClear()
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.PrintJSON("excel annotate", res)
			}

			green := color.New(color.FgGreen).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()
			dim := color.New(color.FgHiBlack)

			fmt.Printf("%s Annotated %d cell(s) → %s\n", green("✓"), res.Annotated, res.OutputPath)
			fmt.Printf("  Sheet:        %s\n", res.Sheet)
			fmt.Printf("  Words column: %s\n", res.WordsColumn)
			if res.Skipped > 0 {
				dim.Printf("  Skipped:      %d (labels, blanks)\n", res.Skipped)
			}
			if res.Failed > 0 {
				fmt.Printf("  Failed:       %d\n", res.Failed)
				for _, f := range res.Failures {
					fmt.Printf("    %s %s %q: %s\n", red("✗"), f.Cell, f.Input, f.Error)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Annotate the named sheet (default: first sheet)")
	cmd.Flags().StringVar(&column, "col", "", `Translate only the given column letter (e.g. "B")`)
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file path (default: <name>.words.xlsx)")

	return cmd
}
