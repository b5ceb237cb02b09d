package excel

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/numsay/internal/config"
	"github.com/klytics/numsay/internal/output"
	"github.com/klytics/numsay/internal/xlsx"
)

type readOutput struct {
	File  string                 `json:"file"`
	Sheet string                 `json:"sheet"`
	Cells []xlsx.CellTranslation `json:"cells"`
}

func newReadCommand() *cobra.Command {
	var (
		sheetName string
		column    string
	)

	cmd := &cobra.Command{
		Use:   "read <file.xlsx>",
		Short: "Preview a sheet's numbers with their spoken words",
		Long:  "Reads an .xlsx sheet and prints each numeric cell next to its English words. Restrict the scan to one column with --col, otherwise every numeric cell is shown.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			filePath := args[0]
			if !strings.HasSuffix(strings.ToLower(filePath), ".xlsx") {
				return fmt.Errorf("expected an .xlsx file, got %q — use 'numsay excel read <file.xlsx>'", filePath)
			}

			config.Load() // ensure loaded
			tr, err := config.Translator()
			if err != nil {
				return err
			}

			sheet, cells, err := xlsx.ReadSheet(tr, filePath, sheetName, column)
			if err != nil {
				return err
			}

			if jsonFlag {
				return output.PrintJSON("excel read", readOutput{
					File:  filePath,
					Sheet: sheet,
					Cells: cells,
				})
			}

			headerStyle := color.New(color.Bold, color.FgCyan)
			dim := color.New(color.FgHiBlack)
			red := color.New(color.FgRed).SprintFunc()

			headerStyle.Printf("Sheet: %s\n", sheet)
			if len(cells) == 0 {
				dim.Println("  (no numeric cells)")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "  CELL\tNUMBER\tWORDS\n")
			for _, c := range cells {
				if c.Error != "" {
					fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.Cell, c.Input, red(c.Error))
					continue
				}
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.Cell, c.Input, c.Words)
			}
			tw.Flush()

			dim.Printf("  (%d cells)\n", len(cells))
			return nil
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Read the named sheet (default: first sheet)")
	cmd.Flags().StringVar(&column, "col", "", `Read only the given column letter (e.g. "B")`)

	return cmd
}
