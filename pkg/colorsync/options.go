// Package colorsync reads product workbooks and annotates product
// descriptions with the single color found on each sheet.
package colorsync

import "go.uber.org/zap"

// FilePolicy decides what the walker does when a workbook cannot be read.
type FilePolicy string

const (
	// FilePolicySkip logs the failure and continues with the next file.
	FilePolicySkip FilePolicy = "skip"
	// FilePolicyAbort stops the walk and returns the error.
	FilePolicyAbort FilePolicy = "abort"
)

// DefaultPattern matches legacy and modern spreadsheet extensions.
const DefaultPattern = "*.xls*"

// Options configures a Walker.
type Options struct {
	// OnFileError specifies how unreadable workbooks are handled.
	// Defaults to FilePolicySkip.
	OnFileError FilePolicy
	// Pattern is matched against file base names. Defaults to DefaultPattern.
	Pattern string
	// Logger receives one entry per decision. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default walker options.
func DefaultOptions() Options {
	return Options{
		OnFileError: FilePolicySkip,
		Pattern:     DefaultPattern,
	}
}

// ShouldAbortOnFileError returns whether a file-level error stops the walk.
func (o Options) ShouldAbortOnFileError() bool {
	return o.OnFileError == FilePolicyAbort
}

func (o Options) pattern() string {
	if o.Pattern == "" {
		return DefaultPattern
	}
	return o.Pattern
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
