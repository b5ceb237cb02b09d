//go:build ignore

// This program generates test fixture files for numsay.
package main

import (
	"fmt"
	"os"

	"github.com/klytics/numsay/internal/xlsx"
	"github.com/klytics/numsay/numword"
)

func main() {
	if err := generateText(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.txt: %v\n", err)
		os.Exit(1)
	}

	if err := generateCSV(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.csv: %v\n", err)
		os.Exit(1)
	}

	if err := generateXlsx(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.xlsx: %v\n", err)
		os.Exit(1)
	}

	if err := generatePack(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating english.yaml: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Test fixtures generated successfully.")
}

func generateText() error {
	content := `# Meter readings, one per line
55
1024
-3
1,000,000

7919
90
9223372036854775807
`
	return os.WriteFile("testdata/sample.txt", []byte(content), 0644)
}

func generateCSV() error {
	content := `item,amount,qty
widget,1250,12
gadget,450000,7
doohickey,-17,1
gizmo,320,101
`
	return os.WriteFile("testdata/sample.csv", []byte(content), 0644)
}

func generateXlsx() error {
	wb := &xlsx.Workbook{
		Sheets: []xlsx.Sheet{
			{
				Name: "Invoices",
				Rows: [][]string{
					{"Invoice", "Customer", "Amount", "Items"},
					{"INV-001", "Acme Corp", "1250000", "12"},
					{"INV-002", "Globex", "450000", "8"},
					{"INV-003", "Initech", "320000", "15"},
					{"INV-004", "Umbrella", "1380000", "10"},
					{"INV-005", "Hooli", "520000", "16"},
					{"INV-006", "Vandelay", "350000", "9"},
				},
			},
			{
				Name: "Summary",
				Rows: [][]string{
					{"Metric", "Value"},
					{"Total Amount", "4270000"},
					{"Invoice Count", "6"},
					{"Largest", "1380000"},
				},
			},
		},
	}

	return xlsx.WriteFile(wb, "testdata/sample.xlsx")
}

func generatePack() error {
	data, err := numword.English().Pack().Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile("testdata/english.yaml", data, 0644)
}
