package report

import (
	"errors"

	"github.com/xuri/excelize/v2"
)

// sheetName is the single worksheet every report workbook carries.
const sheetName = "RAG Report"

// WriteWorkbook renders a table as an xlsx workbook with a header row
// followed by one row per table row, in column order.
func WriteWorkbook(table *Table) ([]byte, error) {
	if table == nil || len(table.Columns) == 0 {
		return nil, errors.New("report table is empty")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetList()[0], sheetName); err != nil {
		return nil, err
	}

	for c, column := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, column); err != nil {
			return nil, err
		}
	}

	for r, row := range table.Rows {
		for c, column := range table.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, row[column]); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
