package colorsync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/colorsync-go/pkg/colorsync/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type annotateCall struct {
	annotation  string
	productName string
}

// fakeAnnotator records calls and returns queued results in order.
type fakeAnnotator struct {
	calls   []annotateCall
	results []error
	rows    int64
}

func (f *fakeAnnotator) AnnotateDescription(_ context.Context, annotation, productName string) (int64, error) {
	f.calls = append(f.calls, annotateCall{annotation, productName})
	if len(f.results) == 0 {
		return f.rows, nil
	}
	err := f.results[0]
	f.results = f.results[1:]
	if err != nil {
		return 0, err
	}
	return f.rows, nil
}

func newObservedResolver(a Annotator) (*Resolver, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewResolver(a, zap.New(core)), logs
}

func TestFormatAnnotation(t *testing.T) {
	assert.Equal(t, "<p>Color: Red</p>", FormatAnnotation("Red"))
	assert.Equal(t, "<p>Color:  Navy Blue </p>", FormatAnnotation(" Navy Blue "))
}

func TestResolveNoColor(t *testing.T) {
	fake := &fakeAnnotator{}
	r, logs := newObservedResolver(fake)

	res, err := r.Resolve(context.Background(), models.ExtractedRecord{ItemName: "Widget A", SKU: "1023"})

	require.NoError(t, err)
	assert.Equal(t, OutcomeNoColor, res.Outcome)
	assert.Empty(t, fake.calls)

	entries := logs.FilterMessage("No colors found").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Widget A", entries[0].ContextMap()["name"])
	assert.Equal(t, "1023", entries[0].ContextMap()["sku"])
}

func TestResolveMultipleColors(t *testing.T) {
	fake := &fakeAnnotator{}
	r, logs := newObservedResolver(fake)

	res, err := r.Resolve(context.Background(), models.ExtractedRecord{
		ItemName: "Widget A",
		SKU:      "1023",
		Colors:   []string{"Red", "Blue"},
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeMultipleColors, res.Outcome)
	assert.Empty(t, fake.calls)

	var reported []string
	for _, e := range logs.FilterField(zap.String("sku", "1023")).All() {
		if c, ok := e.ContextMap()["color"]; ok {
			reported = append(reported, c.(string))
		}
	}
	assert.Equal(t, []string{"Red", "Blue"}, reported)
}

func TestResolveSingleColor(t *testing.T) {
	fake := &fakeAnnotator{rows: 1}
	r, _ := newObservedResolver(fake)

	res, err := r.Resolve(context.Background(), models.ExtractedRecord{
		ItemName:        "Widget A",
		ItemNameTrimmed: "Widget A",
		SKU:             "1023",
		Colors:          []string{"Red"},
	})

	require.NoError(t, err)
	assert.Equal(t, Resolution{
		Outcome:      OutcomeUpdated,
		Annotation:   "<p>Color: Red</p>",
		ProductName:  "Widget A",
		RowsAffected: 1,
	}, res)
	assert.Equal(t, []annotateCall{{"<p>Color: Red</p>", "Widget A"}}, fake.calls)
}

func TestResolveZeroRowsIsNotRetried(t *testing.T) {
	fake := &fakeAnnotator{rows: 0}
	r, logs := newObservedResolver(fake)

	res, err := r.Resolve(context.Background(), models.ExtractedRecord{
		ItemName:        "Widget A ",
		ItemNameTrimmed: "Widget A",
		Colors:          []string{"Red"},
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, res.Outcome)
	assert.Len(t, fake.calls, 1)
	assert.Equal(t, 1, logs.FilterMessage("No matching unannotated product").Len())
}

func TestResolveRetriesWithTrimmedName(t *testing.T) {
	firstErr := errors.New("connection reset")
	fake := &fakeAnnotator{results: []error{firstErr, nil}, rows: 1}
	r, logs := newObservedResolver(fake)

	res, err := r.Resolve(context.Background(), models.ExtractedRecord{
		ItemName:        " Widget A ",
		ItemNameTrimmed: "Widget A",
		SKU:             "1023",
		Colors:          []string{"Red"},
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdatedOnRetry, res.Outcome)
	assert.Equal(t, "Widget A", res.ProductName)
	assert.ErrorIs(t, res.FirstAttemptErr, firstErr)
	assert.Equal(t, []annotateCall{
		{"<p>Color: Red</p>", " Widget A "},
		{"<p>Color: Red</p>", "Widget A"},
	}, fake.calls)

	failed := logs.FilterMessage("Failed to update, retrying with trimmed name").All()
	require.Len(t, failed, 1)
	ctx := failed[0].ContextMap()
	assert.Equal(t, " Widget A ", ctx["name"])
	assert.Equal(t, "1023", ctx["sku"])
	assert.Equal(t, "<p>Color: Red</p>", ctx["annotation"])
}

func TestResolveRetryFailurePropagates(t *testing.T) {
	firstErr := errors.New("timeout")
	retryErr := errors.New("still failing")
	fake := &fakeAnnotator{results: []error{firstErr, retryErr, nil}}
	r, _ := newObservedResolver(fake)

	_, err := r.Resolve(context.Background(), models.ExtractedRecord{
		ItemName:        "Widget A ",
		ItemNameTrimmed: "Widget A",
		SKU:             "1023",
		Colors:          []string{"Red"},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, retryErr)

	var updateErr *UpdateError
	require.ErrorAs(t, err, &updateErr)
	assert.Equal(t, "Widget A", updateErr.ProductName)
	assert.Equal(t, "1023", updateErr.SKU)
	assert.Equal(t, "<p>Color: Red</p>", updateErr.Annotation)

	// exactly one retry
	assert.Len(t, fake.calls, 2)
}

func TestNewResolverNilLogger(t *testing.T) {
	r := NewResolver(&fakeAnnotator{}, nil)

	res, err := r.Resolve(context.Background(), models.ExtractedRecord{})
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoColor, res.Outcome)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "no_color", OutcomeNoColor.String())
	assert.Equal(t, "multiple_colors", OutcomeMultipleColors.String())
	assert.Equal(t, "updated", OutcomeUpdated.String())
	assert.Equal(t, "updated_on_retry", OutcomeUpdatedOnRetry.String())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
}
