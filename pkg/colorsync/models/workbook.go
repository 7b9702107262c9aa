package models

// WorkbookInfo describes an opened workbook for logging and summaries.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetNames lists worksheets in workbook order.
	SheetNames []string `json:"sheet_names"`
}
