// Package numfile translates files of numbers into files of words.
// It reads plain text (one number per line) and CSV (numeric cells).
package numfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klytics/numsay/numword"
)

// Line is the outcome of translating one piece of input.
type Line struct {
	LineNo  int    `json:"line"`
	Input   string `json:"input"`
	Words   string `json:"words,omitempty"`
	Error   string `json:"error,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
}

// Result summarizes one translated file.
type Result struct {
	File       string `json:"file"`
	OutputPath string `json:"output,omitempty"`
	Translated int    `json:"translated"`
	Failed     int    `json:"failed"`
	Skipped    int    `json:"skipped"`
	Lines      []Line `json:"lines,omitempty"`
}

// TranslateFile translates path without writing an output file.
func TranslateFile(tr *numword.Translator, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	result, err := translate(tr, f, io.Discard, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	result.File = path
	return result, nil
}

// TranslateToFile translates path and writes the spoken form next to it
// (or under outDir): numbers.txt becomes numbers.words.txt. On a bad line
// the failure is logged into the output and translation continues.
func TranslateToFile(tr *numword.Translator, path, outDir string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	outPath := OutputPath(path, outDir)
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return nil, fmt.Errorf("could not create output directory %s: %w", outDir, err)
		}
	}
	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("could not create %s: %w", outPath, err)
	}
	defer out.Close()

	result, err := translate(tr, f, out, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	result.File = path
	result.OutputPath = outPath
	return result, nil
}

func translate(tr *numword.Translator, r io.Reader, w io.Writer, ext string) (*Result, error) {
	if strings.ToLower(ext) == ".csv" {
		return translateCSV(tr, r, w)
	}
	return translateText(tr, r, w)
}

// translateText handles one number per line. Blank lines and # comments
// pass through untouched.
func translateText(tr *numword.Translator, r io.Reader, w io.Writer) (*Result, error) {
	result := &Result{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result.Skipped++
			result.Lines = append(result.Lines, Line{LineNo: lineNo, Input: raw, Skipped: true})
			if _, err := fmt.Fprintln(w, raw); err != nil {
				return nil, fmt.Errorf("could not write output: %w", err)
			}
			continue
		}

		words, err := tr.TranslateString(trimmed)
		if err != nil {
			result.Failed++
			result.Lines = append(result.Lines, Line{LineNo: lineNo, Input: trimmed, Error: err.Error()})
			if _, werr := fmt.Fprintf(w, "# %v\n", err); werr != nil {
				return nil, fmt.Errorf("could not write output: %w", werr)
			}
			continue
		}

		result.Translated++
		result.Lines = append(result.Lines, Line{LineNo: lineNo, Input: trimmed, Words: words})
		if _, err := fmt.Fprintln(w, words); err != nil {
			return nil, fmt.Errorf("could not write output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read input: %w", err)
	}
	return result, nil
}

// translateCSV replaces integer cells with their spoken form and leaves
// everything else (headers, labels) alone. A numeric cell the lexicon cannot
// speak is kept and counted as a failure.
func translateCSV(tr *numword.Translator, r io.Reader, w io.Writer) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse CSV: %w", err)
	}

	result := &Result{}
	for i, row := range records {
		for j, cell := range row {
			words, err := tr.TranslateString(cell)
			if err != nil {
				var invErr *numword.InvalidInputError
				if errors.As(err, &invErr) {
					result.Skipped++
					continue
				}
				result.Failed++
				result.Lines = append(result.Lines, Line{LineNo: i + 1, Input: cell, Error: err.Error()})
				continue
			}
			records[i][j] = words
			result.Translated++
			result.Lines = append(result.Lines, Line{LineNo: i + 1, Input: cell, Words: words})
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("could not write CSV output: %w", err)
	}
	return result, nil
}

// OutputPath derives the words-file path for an input file:
// numbers.txt -> numbers.words.txt, data.csv -> data.words.csv.
// With outDir set the output lands there instead of next to the input.
func OutputPath(path, outDir string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" {
		ext = ".txt"
	}
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".words" + ext
	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(filepath.Dir(path), name)
}

// IsWordsOutput reports whether path looks like a file this package wrote,
// so watchers do not translate their own outputs.
func IsWordsOutput(path string) bool {
	return strings.Contains(filepath.Base(path), ".words.")
}
