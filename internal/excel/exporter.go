// Package excel exports a language's word history to an Excel or CSV file.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/lingobot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet the history is written to in Excel exports
const SheetName = "Word History"

var header = []string{"Word", "Translation", "Pronunciation", "Example Sentence", "Learned At"}

// ExportHistory writes the records (newest first) to filePath. The file format
// is chosen by extension: .csv for CSV, anything else is written as Excel.
func ExportHistory(filePath string, records []models.WordRecord) error {
	ext := strings.ToLower(filepath.Ext(filePath))

	if ext == ".csv" {
		return exportToCSV(filePath, records)
	}

	return exportToExcel(filePath, records)
}

// exportToExcel writes the history as an .xlsx workbook
func exportToExcel(filePath string, records []models.WordRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %v", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %v", err)
		}
		if err := f.SetCellValue(SheetName, cell, title); err != nil {
			return fmt.Errorf("failed to write header: %v", err)
		}
	}

	for i, record := range records {
		for col, value := range recordRow(record) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell for row %d: %v", i+2, err)
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %v", i+2, err)
			}
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save Excel file: %v", err)
	}
	return nil
}

// exportToCSV writes the history as a CSV file
func exportToCSV(filePath string, records []models.WordRecord) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}

	for _, record := range records {
		if err := writer.Write(recordRow(record)); err != nil {
			return fmt.Errorf("failed to write record %s: %v", record.Word, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func recordRow(record models.WordRecord) []string {
	return []string{
		record.Word,
		record.Translation,
		record.Pronunciation,
		record.ExampleSentence,
		record.LearnedAt().Format(time.RFC3339),
	}
}
