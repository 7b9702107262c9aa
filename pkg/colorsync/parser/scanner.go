// Package parser reads product sheets and extracts labeled fields from them.
package parser

import (
	"strings"

	"github.com/ukaji3/colorsync-go/pkg/colorsync/models"
)

// Labels searched for on a product sheet. Matching is exact and case-sensitive.
const (
	LabelItemName  = "Item Name"
	LabelColorName = "COLOR NAME"
	LabelSKU       = "SKU"
)

const (
	// HeaderDuplicateRow is the template row that reuses the COLOR NAME and SKU
	// labels for something else; it never contributes colors or a SKU.
	HeaderDuplicateRow = 3
	// MaxSKURow bounds the rows (exclusive) where a SKU label is honored.
	MaxSKURow = 14
)

// ScanSheet walks every populated cell of sheet in row-major order and
// collects the product attributes found next to the label cells.
// Item name and SKU keep the last match; colors accumulate in scan order.
func ScanSheet(sheet *models.Sheet) models.ExtractedRecord {
	var rec models.ExtractedRecord

	for row := 0; row <= sheet.LastRow(); row++ {
		lastCol := sheet.LastCol(row)
		for col := 0; col <= lastCol; col++ {
			cell := sheet.Cell(row, col)
			if !cell.IsText() {
				continue
			}

			switch cell.Value {
			case LabelItemName:
				if next := sheet.Cell(row, col+1); next.IsText() {
					rec.ItemName = next.Value
					rec.ItemNameTrimmed = strings.TrimSpace(next.Value)
				}
			case LabelColorName:
				if row == HeaderDuplicateRow {
					continue
				}
				below := sheet.Cell(row+1, col)
				if below.IsText() && strings.TrimSpace(below.Value) != "" {
					rec.Colors = append(rec.Colors, below.Value)
				}
			case LabelSKU:
				if row >= MaxSKURow || row == HeaderDuplicateRow {
					continue
				}
				if sku, ok := skuValue(sheet.Cell(row, col+1)); ok {
					rec.SKU = sku
				}
			}
		}
	}

	return rec
}

// skuValue converts the cell next to a SKU label. Anything other than a text
// or numeric cell yields no value.
func skuValue(cell *models.Cell) (string, bool) {
	switch {
	case cell.IsText():
		return cell.Value, true
	case cell.IsNumeric():
		return FormatNumber(cell.Number), true
	default:
		return "", false
	}
}
