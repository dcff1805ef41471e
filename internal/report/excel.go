// Package report renders tabular reports as XLSX workbooks.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"rem-go/internal/rem"
)

// ExcelWriter implements rem.SpreadsheetWriter using excelize.
type ExcelWriter struct{}

// NewExcelWriter creates an ExcelWriter.
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// Write creates the workbook at path with one tab per sheet: a bold header
// row followed by the data rows.
func (*ExcelWriter) Write(path string, sheets []rem.Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			// excelize starts every workbook with "Sheet1".
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return fmt.Errorf("renaming sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return fmt.Errorf("creating sheet %s: %w", sheet.Name, err)
			}
		}

		header := make([]any, len(sheet.Header))
		for j, h := range sheet.Header {
			header[j] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return fmt.Errorf("writing header of %s: %w", sheet.Name, err)
		}
		if len(sheet.Header) > 0 {
			end, err := excelize.CoordinatesToCellName(len(sheet.Header), 1)
			if err != nil {
				return fmt.Errorf("resolving header range: %w", err)
			}
			if err := f.SetCellStyle(sheet.Name, "A1", end, headerStyle); err != nil {
				return fmt.Errorf("styling header of %s: %w", sheet.Name, err)
			}
		}

		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return fmt.Errorf("resolving row cell: %w", err)
			}
			rowValues := row
			if err := f.SetSheetRow(sheet.Name, cell, &rowValues); err != nil {
				return fmt.Errorf("writing row %d of %s: %w", r+2, sheet.Name, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// Compile-time check that ExcelWriter implements rem.SpreadsheetWriter.
var _ rem.SpreadsheetWriter = (*ExcelWriter)(nil)
