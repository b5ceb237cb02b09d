package xlsx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/numsay/numword"
)

// CellTranslation is the spoken form of one workbook cell.
type CellTranslation struct {
	Cell  string `json:"cell"`
	Input string `json:"input"`
	Words string `json:"words,omitempty"`
	Error string `json:"error,omitempty"`
}

// ReadSheet translates the integer cells of one sheet. An empty sheet name
// selects the first sheet; a column letter ("B") restricts the scan to that
// column. Text cells are skipped; numeric cells the lexicon cannot speak are
// reported with their error. Returns the sheet actually read.
func ReadSheet(tr *numword.Translator, path, sheet, column string) (string, []CellTranslation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}

	colNum := 0
	if column != "" {
		colNum, err = excelize.ColumnNameToNumber(column)
		if err != nil {
			return "", nil, fmt.Errorf("invalid column %q: %w", column, err)
		}
	}

	var cells []CellTranslation
	for i, row := range rows {
		for j, cell := range row {
			if colNum > 0 && j != colNum-1 {
				continue
			}
			if strings.TrimSpace(cell) == "" {
				continue
			}
			words, err := tr.TranslateString(cell)
			if err != nil {
				var invErr *numword.InvalidInputError
				if errors.As(err, &invErr) {
					continue // labels and headers
				}
				name, _ := excelize.CoordinatesToCellName(j+1, i+1)
				cells = append(cells, CellTranslation{Cell: name, Input: cell, Error: err.Error()})
				continue
			}
			name, _ := excelize.CoordinatesToCellName(j+1, i+1)
			cells = append(cells, CellTranslation{Cell: name, Input: cell, Words: words})
		}
	}
	return sheet, cells, nil
}

// AnnotateResult holds the outcome of annotating a workbook.
type AnnotateResult struct {
	File        string            `json:"file"`
	OutputPath  string            `json:"output"`
	Sheet       string            `json:"sheet"`
	WordsColumn string            `json:"wordsColumn"`
	Annotated   int               `json:"annotated"`
	Skipped     int               `json:"skipped"`
	Failed      int               `json:"failed"`
	Failures    []CellTranslation `json:"failures,omitempty"`
}

// AnnotateFile copies a workbook to outPath with one extra column holding
// the spoken form of each row's number. With a column letter set only that
// column is read; otherwise the first integer cell of each row is used.
// Existing cells, other sheets and formatting are preserved.
func AnnotateFile(tr *numword.Translator, path, sheet, column, outPath string) (*AnnotateResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}

	colNum := 0
	if column != "" {
		colNum, err = excelize.ColumnNameToNumber(column)
		if err != nil {
			return nil, fmt.Errorf("invalid column %q: %w", column, err)
		}
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	target := width + 1
	targetName, err := excelize.ColumnNumberToName(target)
	if err != nil {
		return nil, fmt.Errorf("could not place words column: %w", err)
	}

	res := &AnnotateResult{
		File:        path,
		OutputPath:  outPath,
		Sheet:       sheet,
		WordsColumn: targetName,
	}

	for i, row := range rows {
		input, at := pickCell(tr, row, colNum)
		cellName, err := excelize.CoordinatesToCellName(target, i+1)
		if err != nil {
			return nil, fmt.Errorf("invalid cell coordinates: %w", err)
		}

		if at < 0 {
			res.Skipped++
			continue
		}

		words, terr := tr.TranslateString(input)
		if terr != nil {
			var invErr *numword.InvalidInputError
			if errors.As(terr, &invErr) {
				if i == 0 {
					// Header row gets a words header instead of a value.
					header := "words"
					if colNum > 0 && strings.TrimSpace(input) != "" {
						header = input + " (words)"
					}
					if err := f.SetCellValue(sheet, cellName, header); err != nil {
						return nil, fmt.Errorf("could not set cell %s: %w", cellName, err)
					}
				}
				res.Skipped++
				continue
			}
			srcName, _ := excelize.CoordinatesToCellName(at+1, i+1)
			res.Failed++
			res.Failures = append(res.Failures, CellTranslation{Cell: srcName, Input: input, Error: terr.Error()})
			continue
		}

		if err := f.SetCellValue(sheet, cellName, words); err != nil {
			return nil, fmt.Errorf("could not set cell %s: %w", cellName, err)
		}
		res.Annotated++
	}

	if err := f.SaveAs(outPath); err != nil {
		return nil, fmt.Errorf("could not save %s: %w", outPath, err)
	}
	return res, nil
}

// pickCell selects the cell to annotate in a row: the configured column, or
// the first cell that reads as a number (speakable or not).
func pickCell(tr *numword.Translator, row []string, colNum int) (string, int) {
	if colNum > 0 {
		if colNum-1 < len(row) {
			return row[colNum-1], colNum - 1
		}
		return "", -1
	}
	for j, cell := range row {
		_, err := tr.TranslateString(cell)
		if err == nil {
			return cell, j
		}
		var invErr *numword.InvalidInputError
		if !errors.As(err, &invErr) {
			return cell, j
		}
	}
	return "", -1
}
