package colorsync

import (
	"errors"
	"fmt"
)

// ErrFileOpen indicates a workbook file could not be opened or read.
var ErrFileOpen = errors.New("cannot open workbook file")

// ErrInvalidFormat indicates the file is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrDirectoryRead indicates the input directory could not be listed.
var ErrDirectoryRead = errors.New("cannot read input directory")

// ExtractionError represents an error while reading a workbook.
type ExtractionError struct {
	BookName  string
	SheetName string
	Component string // "open", "cells", "close"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("extraction error in %s (%s): %v", e.BookName, e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error in %s sheet %q (%s): %v", e.BookName, e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(bookName, sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		BookName:  bookName,
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}

// UpdateError is returned when both the initial write and the trimmed-name
// retry failed for a product.
type UpdateError struct {
	ProductName string
	SKU         string
	Annotation  string
	Err         error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update of product %q (sku %q) with %q failed: %v", e.ProductName, e.SKU, e.Annotation, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}
