package tui

import (
	"context"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/einteger/internal/errors"
	"github.com/agbru/einteger/internal/format"
	"github.com/agbru/einteger/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// bubbletea copies the model on every Update, so the sweep goroutine
// needs a pointer that survives copies to send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
// It is a no-op until SetProgram has been called.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// pauseGate blocks the sweep between sizes while the dashboard is paused.
type pauseGate struct {
	mu     sync.Mutex
	resume chan struct{} // nil when running
}

// Pause makes subsequent Wait calls block until Resume.
func (g *pauseGate) Pause() {
	g.mu.Lock()
	if g.resume == nil {
		g.resume = make(chan struct{})
	}
	g.mu.Unlock()
}

// Resume releases every blocked Wait.
func (g *pauseGate) Resume() {
	g.mu.Lock()
	if g.resume != nil {
		close(g.resume)
		g.resume = nil
	}
	g.mu.Unlock()
}

// Paused reports whether the gate is closed.
func (g *pauseGate) Paused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resume != nil
}

// Wait returns once the gate is open or ctx is done.
func (g *pauseGate) Wait(ctx context.Context) error {
	g.mu.Lock()
	ch := g.resume
	g.mu.Unlock()
	if ch == nil {
		return ctx.Err()
	}
	select {
	case <-ch:
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter.
// It drains the progress channel and forwards updates as bubbletea messages.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends ProgressMsg to the TUI.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numVariants int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numVariants)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			VariantIndex:    ap.VariantIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter implements orchestration.ResultPresenter for one
// sweep size. It sends messages instead of writing to stdout.
type TUIResultPresenter struct {
	ref        *programRef
	words      int
	generation uint64
}

var (
	_ orchestration.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends the timings of this size to the TUI.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, _ io.Writer) {
	cp := make([]orchestration.CalculationResult, len(results))
	copy(cp, results)
	t.ref.Send(SizeResultsMsg{Words: t.words, Results: cp, Generation: t.generation})
}

// PresentResult is a no-op: the dashboard shows timings, not values.
func (t *TUIResultPresenter) PresentResult(orchestration.CalculationResult, orchestration.PresentationOptions, io.Writer) {
}

// FormatDuration delegates to the shared formatter.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError sends an error message to the TUI and returns the exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	if err != nil {
		t.ref.Send(ErrorMsg{Err: err, Words: t.words, Duration: duration, Generation: t.generation})
	}
	return apperrors.HandleCalculationError(err, duration, io.Discard, nil)
}
