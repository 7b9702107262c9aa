package colorsync

import (
	"context"
	"fmt"

	"github.com/ukaji3/colorsync-go/pkg/colorsync/models"
	"go.uber.org/zap"
)

// Annotator performs the conditional description update.
type Annotator interface {
	AnnotateDescription(ctx context.Context, annotation, productName string) (int64, error)
}

// Outcome is the terminal state of resolving one sheet.
type Outcome int

const (
	// OutcomeNoColor means the sheet had no color; nothing was written.
	OutcomeNoColor Outcome = iota
	// OutcomeMultipleColors means the sheet had several colors; nothing was written.
	OutcomeMultipleColors
	// OutcomeUpdated means the write with the item name succeeded.
	OutcomeUpdated
	// OutcomeUpdatedOnRetry means the write with the trimmed item name succeeded.
	OutcomeUpdatedOnRetry
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoColor:
		return "no_color"
	case OutcomeMultipleColors:
		return "multiple_colors"
	case OutcomeUpdated:
		return "updated"
	case OutcomeUpdatedOnRetry:
		return "updated_on_retry"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Resolution describes what Resolve decided for a record.
type Resolution struct {
	Outcome Outcome
	// Annotation is the text written, empty unless exactly one color was found.
	Annotation string
	// ProductName is the lookup key of the successful write.
	ProductName string
	// RowsAffected is the row count reported by the successful write.
	RowsAffected int64
	// FirstAttemptErr is the error that triggered the retry, if any.
	FirstAttemptErr error
}

// FormatAnnotation returns the description prefix for a color.
func FormatAnnotation(color string) string {
	return fmt.Sprintf("<p>Color: %s</p>", color)
}

type attemptStatus int

const (
	attemptSucceeded attemptStatus = iota
	attemptNeedsRetry
	attemptFailed
)

type attemptResult struct {
	status attemptStatus
	rows   int64
	err    error
}

// Resolver decides whether an extracted record is written to the store.
type Resolver struct {
	annotator Annotator
	logger    *zap.Logger
}

// NewResolver creates a Resolver. A nil logger disables logging.
func NewResolver(annotator Annotator, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{annotator: annotator, logger: logger}
}

// Resolve classifies the record's colors and, when there is exactly one,
// writes its annotation. A failed first write is retried once with the
// trimmed item name; if that fails too an *UpdateError is returned.
func (r *Resolver) Resolve(ctx context.Context, rec models.ExtractedRecord) (Resolution, error) {
	log := r.logger.With(zap.String("name", rec.ItemName), zap.String("sku", rec.SKU))

	switch len(rec.Colors) {
	case 0:
		log.Info("No colors found")
		return Resolution{Outcome: OutcomeNoColor}, nil
	case 1:
	default:
		log.Info("Multiple colors", zap.Int("count", len(rec.Colors)))
		for _, color := range rec.Colors {
			log.Info("Multiple colors", zap.String("color", color))
		}
		return Resolution{Outcome: OutcomeMultipleColors}, nil
	}

	color := rec.Colors[0]
	annotation := FormatAnnotation(color)
	log.Info("Single color", zap.String("color", color))

	first := r.attempt(ctx, annotation, rec.ItemName, false)
	if first.status == attemptSucceeded {
		r.logWritten(log, first.rows, rec.ItemName)
		return Resolution{
			Outcome:      OutcomeUpdated,
			Annotation:   annotation,
			ProductName:  rec.ItemName,
			RowsAffected: first.rows,
		}, nil
	}

	log.Warn("Failed to update, retrying with trimmed name",
		zap.Error(first.err),
		zap.String("annotation", annotation),
		zap.String("trimmed_name", rec.ItemNameTrimmed))

	retry := r.attempt(ctx, annotation, rec.ItemNameTrimmed, true)
	if retry.status == attemptFailed {
		log.Error("Retry with trimmed name failed", zap.Error(retry.err))
		return Resolution{FirstAttemptErr: first.err}, &UpdateError{
			ProductName: rec.ItemNameTrimmed,
			SKU:         rec.SKU,
			Annotation:  annotation,
			Err:         retry.err,
		}
	}

	r.logWritten(log, retry.rows, rec.ItemNameTrimmed)
	return Resolution{
		Outcome:         OutcomeUpdatedOnRetry,
		Annotation:      annotation,
		ProductName:     rec.ItemNameTrimmed,
		RowsAffected:    retry.rows,
		FirstAttemptErr: first.err,
	}, nil
}

// attempt runs one write. A failure needs a retry unless this is the retry.
func (r *Resolver) attempt(ctx context.Context, annotation, productName string, isRetry bool) attemptResult {
	rows, err := r.annotator.AnnotateDescription(ctx, annotation, productName)
	switch {
	case err == nil:
		return attemptResult{status: attemptSucceeded, rows: rows}
	case isRetry:
		return attemptResult{status: attemptFailed, err: err}
	default:
		return attemptResult{status: attemptNeedsRetry, err: err}
	}
}

func (r *Resolver) logWritten(log *zap.Logger, rows int64, key string) {
	if rows == 0 {
		log.Warn("No matching unannotated product", zap.String("key", key))
		return
	}
	log.Info("Description updated", zap.String("key", key), zap.Int64("rows", rows))
}
