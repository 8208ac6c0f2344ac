//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/einteger/internal/format"
	"github.com/agbru/einteger/internal/orchestration"
	"github.com/agbru/einteger/internal/ui"
)

const (
	// ProgressRefreshRate is the redraw interval of the spinner line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with the aggregated progress of the
// running variants until progressChan is closed, then calls wg.Done.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numVariants int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numVariants)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(agg.CalculateAverage(), agg.GetETA(), numVariants))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()
	for {
		select {
		case u, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(progressSuffix(1, 0, numVariants))
				return
			}
			agg.Update(u)
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(agg.CalculateAverage(), agg.GetETA(), numVariants))
		}
	}
}

func progressSuffix(progress float64, eta time.Duration, numVariants int) string {
	label := "Evaluating"
	if numVariants > 1 {
		label = fmt.Sprintf("Comparing %d variants", numVariants)
	}
	return fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(progress, eta, ProgressBarWidth))
}

// CLIProgressReporter implements orchestration.ProgressReporter with the
// terminal spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numVariants int, out io.Writer) {
	DisplayProgress(wg, progressChan, numVariants, out)
}

// CLIColorProvider feeds the active theme to apperrors diagnostics.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.GetCurrentTheme().Error }
func (CLIColorProvider) Yellow() string { return ui.GetCurrentTheme().Warning }
func (CLIColorProvider) Reset() string  { return ui.GetCurrentTheme().Reset }
