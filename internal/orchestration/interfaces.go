package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/einteger"
)

// CalculationResult is the outcome of one variant. It is the shared domain
// type between orchestration and presentation.
type CalculationResult struct {
	// Name identifies the variant, e.g. "toom3" or "oracle:big".
	Name string
	// Values holds the results; nil when Err is set.
	Values   []*einteger.EInteger
	Duration time.Duration
	Err      error
}

// Equal reports whether r and o produced the same values.
func (r CalculationResult) Equal(o CalculationResult) bool {
	if len(r.Values) != len(o.Values) {
		return false
	}
	for i := range r.Values {
		if !r.Values[i].Equals(o.Values[i]) {
			return false
		}
	}
	return true
}

// PresentationOptions configures how results are printed.
type PresentationOptions struct {
	Op      string
	Radix   int
	Digits  int
	Verbose bool
	Details bool
	Quiet   bool
}

// ProgressReporter displays progress updates until progressChan is closed,
// then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numVariants int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numVariants int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numVariants int, out io.Writer) {
	f(wg, progressChan, numVariants, out)
}

// NullProgressReporter drains the channel silently. Used in quiet mode.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter prints results and errors.
type ResultPresenter interface {
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
	ErrorHandler
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler prints an error and returns the process exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
