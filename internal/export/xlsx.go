// Package export encodes extracted result tables as XLSX workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/equicharts/race-results-tracker/internal/chart"
)

const sheetName = "Results"

// EncodeXLSX returns an XLSX workbook (as bytes) with one row per result,
// using the same column order as the CSV encoding.
func EncodeXLSX(rows []chart.ResultRow) ([]byte, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, h := range chart.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for i, r := range rows {
		rowNum := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			_ = f.SetCellValue(sheetName, cell, v)
		}
		write(1, r.Date)
		write(2, r.RaceNumber)
		write(3, r.Surface)
		write(4, r.Distance)
		write(5, r.Jockey)
		write(6, r.Trainer)
		write(7, r.Win)
		write(8, r.Place)
		write(9, r.Show)
	}

	// Widen the name columns
	_ = f.SetColWidth(sheetName, "A", "A", 18) // date
	_ = f.SetColWidth(sheetName, "C", "D", 14) // surface, distance
	_ = f.SetColWidth(sheetName, "E", "F", 28) // jockey, trainer

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
