package colorsync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/colorsync-go/pkg/colorsync/parser"
	"go.uber.org/zap"
)

// Summary counts what a walk did.
type Summary struct {
	Files          int
	FilesFailed    int
	Sheets         int
	Updated        int
	UpdatedOnRetry int
	MultipleColors int
	NoColor        int
}

func (s *Summary) add(o Outcome) {
	switch o {
	case OutcomeNoColor:
		s.NoColor++
	case OutcomeMultipleColors:
		s.MultipleColors++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeUpdatedOnRetry:
		s.UpdatedOnRetry++
	}
}

// Walker feeds every workbook of a directory through scanning and resolution.
type Walker struct {
	dir      string
	opts     Options
	resolver *Resolver
	logger   *zap.Logger
}

// NewWalker creates a Walker over dir writing through annotator.
func NewWalker(dir string, annotator Annotator, opts Options) *Walker {
	logger := opts.logger()
	return &Walker{
		dir:      dir,
		opts:     opts,
		resolver: NewResolver(annotator, logger),
		logger:   logger,
	}
}

// Files lists the regular files directly inside the directory whose names
// match the configured pattern, in lexical order.
func (w *Walker) Files() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDirectoryRead, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ok, err := filepath.Match(w.opts.pattern(), entry.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", w.opts.pattern(), err)
		}
		if ok {
			files = append(files, filepath.Join(w.dir, entry.Name()))
		}
	}
	return files, nil
}

// Run processes every matching file in sequence. File-level errors follow
// Options.OnFileError; a failed update retry always stops the walk.
func (w *Walker) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	files, err := w.Files()
	if err != nil {
		return summary, err
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.Files++
		w.logger.Info("File found", zap.String("file", path))

		err := w.ProcessFile(ctx, path, &summary)
		if err == nil {
			continue
		}

		summary.FilesFailed++
		var updateErr *UpdateError
		if errors.As(err, &updateErr) || w.opts.ShouldAbortOnFileError() {
			return summary, fmt.Errorf("processing %s: %w", path, err)
		}
		w.logger.Warn("Skipping file", zap.String("file", path), zap.Error(err))
	}

	return summary, nil
}

// ProcessFile scans and resolves every sheet of one workbook. The workbook is
// closed before returning. summary may be nil.
func (w *Walker) ProcessFile(ctx context.Context, path string, summary *Summary) (err error) {
	if summary == nil {
		summary = &Summary{}
	}

	wb, err := OpenWorkbook(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil && err == nil {
			err = NewExtractionError(wb.BookName(), "", "close", cerr)
		}
	}()

	info := wb.Info()
	w.logger.Debug("Workbook opened",
		zap.String("book", info.BookName),
		zap.Strings("sheets", info.SheetNames))

	for _, name := range info.SheetNames {
		sheet, err := wb.Sheet(name)
		if err != nil {
			return err
		}
		summary.Sheets++

		rec := parser.ScanSheet(sheet)
		w.logger.Debug("Sheet scanned",
			zap.String("book", info.BookName),
			zap.String("sheet", name),
			zap.String("name", rec.ItemName),
			zap.String("sku", rec.SKU),
			zap.Strings("colors", rec.Colors))

		res, err := w.resolver.Resolve(ctx, rec)
		if err != nil {
			return err
		}
		summary.add(res.Outcome)
	}

	return nil
}
