// Package models defines data structures for product sheet extraction.
package models

// CellType classifies a cell the way the sheet scanner needs to see it.
type CellType int

const (
	// CellOther covers formulas, booleans, errors and dates stored as dates.
	CellOther CellType = iota
	// CellText is a shared or inline string cell.
	CellText
	// CellNumeric is a plain number cell (including date serials).
	CellNumeric
)

// Cell is a single populated cell of a sheet.
type Cell struct {
	// Type is the classified cell type.
	Type CellType `json:"type"`
	// Value is the string content of a text cell, or the raw stored value otherwise.
	Value string `json:"value"`
	// Number holds the parsed value of a numeric cell.
	Number float64 `json:"number,omitempty"`
}

// IsText reports whether c is present and text-typed.
func (c *Cell) IsText() bool {
	return c != nil && c.Type == CellText
}

// IsNumeric reports whether c is present and numeric-typed.
func (c *Cell) IsNumeric() bool {
	return c != nil && c.Type == CellNumeric
}
