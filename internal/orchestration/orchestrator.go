package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/einteger"
	apperrors "github.com/agbru/einteger/internal/errors"
	"github.com/agbru/einteger/internal/oracle"
)

// ProgressBufferMultiplier sizes the progress channel per variant so that
// variants never block on a slow display.
const ProgressBufferMultiplier = 5

// ExecuteVariants runs every variant on args concurrently and returns their
// results in the order of variants. A variant failure does not cancel the
// others; ctx cancellation stops all of them.
func ExecuteVariants(ctx context.Context, variants []Variant, args []*einteger.EInteger, reporter ProgressReporter, out io.Writer) []CalculationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(variants))
	progressChan := make(chan ProgressUpdate, len(variants)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(variants), out)

	for i, v := range variants {
		g.Go(func() error {
			progressChan <- ProgressUpdate{VariantIndex: i, Value: 0}
			start := time.Now()
			values, err := v.Run(ctx, args)
			results[i] = CalculationResult{Name: v.Name(), Values: values, Duration: time.Since(start), Err: err}
			progressChan <- ProgressUpdate{VariantIndex: i, Value: 1}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()
	return results
}

// AnalyzeComparisonResults prints the comparison table, checks that every
// successful variant agrees and presents the agreed result. It returns the
// process exit code: ExitErrorMismatch when variants disagree.
//
// A variant failing with oracle.ErrUnsupported is ignored. When some
// variants fail and others succeed, the failures are reported as a
// mismatch; when all fail, the first failure (in the caller's order)
// decides the exit code.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	var firstErr error
	var failed []string
	for _, r := range results {
		if r.Err == nil || errors.Is(r.Err, oracle.ErrUnsupported) {
			continue
		}
		failed = append(failed, r.Name)
		if firstErr == nil {
			firstErr = r.Err
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})
	presenter.PresentComparisonTable(results, out)

	var reference *CalculationResult
	var differing []string
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		if reference == nil {
			reference = r
		} else if !r.Equal(*reference) {
			differing = append(differing, r.Name)
		}
	}

	if reference == nil {
		if firstErr == nil {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No variant could evaluate %s.\n", opts.Op)
			return apperrors.ExitErrorGeneric
		}
		fmt.Fprintf(out, "\nGlobal Status: every variant failed consistently.\n")
		return presenter.HandleError(firstErr, 0, out)
	}
	differing = append(differing, failed...)
	if len(differing) > 0 {
		err := apperrors.MismatchError{Operation: opts.Op, Variants: differing}
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! Variants disagree with %s.\n", reference.Name)
		return presenter.HandleError(err, 0, out)
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*reference, opts, out)
	return apperrors.ExitSuccess
}
