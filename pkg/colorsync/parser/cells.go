package parser

import (
	"strconv"

	"github.com/ukaji3/colorsync-go/pkg/colorsync/models"
	"github.com/xuri/excelize/v2"
)

// ReadSheet loads the typed cell grid of a sheet.
// Empty cells are left nil so that callers see them as absent.
func ReadSheet(f *excelize.File, sheetName string) (*models.Sheet, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	sheet := &models.Sheet{
		Name: sheetName,
		Rows: make([][]*models.Cell, len(rows)),
	}
	for rowIdx, row := range rows {
		if len(row) == 0 {
			continue
		}
		cells := make([]*models.Cell, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cell, err := readCell(f, sheetName, cellName, raw)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = cell
		}
		sheet.Rows[rowIdx] = cells
	}

	return sheet, nil
}

// readCell classifies a populated cell.
func readCell(f *excelize.File, sheetName, cellName, raw string) (*models.Cell, error) {
	cellType, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return nil, err
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return &models.Cell{Type: models.CellText, Value: raw}, nil
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		// Formula cells carry their cached result without a type marker.
		formula, err := f.GetCellFormula(sheetName, cellName)
		if err != nil {
			return nil, err
		}
		if formula != "" {
			return &models.Cell{Type: models.CellOther, Value: raw}, nil
		}
		if n, ok := parseNumber(raw); ok {
			return &models.Cell{Type: models.CellNumeric, Value: raw, Number: n}, nil
		}
	}
	return &models.Cell{Type: models.CellOther, Value: raw}, nil
}

// parseNumber attempts to parse a raw stored value as a number.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatNumber renders a numeric cell value in its shortest plain decimal form:
// no exponent, no thousands separators, no trailing ".0".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
