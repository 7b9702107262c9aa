package colorsync

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/colorsync-go/pkg/colorsync/models"
	"github.com/ukaji3/colorsync-go/pkg/colorsync/parser"
	"github.com/xuri/excelize/v2"
)

// Workbook is an opened product workbook. Close must be called once all
// sheets have been read.
type Workbook struct {
	bookName string
	file     *excelize.File
}

// OpenWorkbook opens the workbook at path read-only.
// Errors match ErrFileOpen when the file cannot be read and ErrInvalidFormat
// when its content is not a workbook.
func OpenWorkbook(path string) (*Workbook, error) {
	bookName := filepath.Base(path)

	fh, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, NewExtractionError(bookName, "", "open", fmt.Errorf("%w: %w", ErrFileOpen, err))
	}
	// excelize reads the whole package into memory, so the handle can go now.
	defer fh.Close()

	f, err := excelize.OpenReader(fh)
	if err != nil {
		return nil, NewExtractionError(bookName, "", "open", fmt.Errorf("%w: %w", ErrInvalidFormat, err))
	}

	return &Workbook{bookName: bookName, file: f}, nil
}

// BookName returns the workbook file name without its directory.
func (w *Workbook) BookName() string {
	return w.bookName
}

// SheetNames returns the worksheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Info returns a summary of the workbook.
func (w *Workbook) Info() models.WorkbookInfo {
	return models.WorkbookInfo{
		BookName:   w.bookName,
		SheetNames: w.SheetNames(),
	}
}

// Sheet loads the typed cell grid of the named sheet.
func (w *Workbook) Sheet(name string) (*models.Sheet, error) {
	sheet, err := parser.ReadSheet(w.file, name)
	if err != nil {
		return nil, NewExtractionError(w.bookName, name, "cells", err)
	}
	return sheet, nil
}

// Close releases the resources held by the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}
