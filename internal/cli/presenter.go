package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/agbru/einteger/internal/errors"
	"github.com/agbru/einteger/internal/format"
	"github.com/agbru/einteger/internal/oracle"
	"github.com/agbru/einteger/internal/orchestration"
	"github.com/agbru/einteger/internal/ui"
)

// CLIResultPresenter implements orchestration.ResultPresenter for the
// terminal.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per variant. Padding is computed
// by hand because the ANSI sequences confuse tabwriter.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	th := ui.GetCurrentTheme()
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameWidth, durWidth := len("Variant"), len("Duration")
	for _, res := range results {
		nameWidth = max(nameWidth, len(res.Name))
		durWidth = max(durWidth, utf8.RuneCountInString(comparisonDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sVariant%s%s   %sDuration%s%s   %sStatus%s\n",
		th.Underline, th.Reset, pad(nameWidth-len("Variant")),
		th.Underline, th.Reset, pad(durWidth-len("Duration")),
		th.Underline, th.Reset)

	for _, res := range results {
		var status string
		switch {
		case res.Err == nil:
			status = fmt.Sprintf("%s✅ Success%s", th.Success, th.Reset)
		case errors.Is(res.Err, oracle.ErrUnsupported):
			status = fmt.Sprintf("%s– Skipped (not supported)%s", th.Secondary, th.Reset)
		default:
			status = fmt.Sprintf("%s❌ Failure (%v)%s", th.Error, res.Err, th.Reset)
		}
		d := comparisonDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			th.Primary, res.Name, th.Reset, pad(nameWidth-len(res.Name)),
			th.Warning, d, th.Reset, pad(durWidth-utf8.RuneCountInString(d)),
			status)
	}
}

func comparisonDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// PresentResult prints the agreed result.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		_ = DisplayQuietResult(out, result.Values, opts.Radix)
		return
	}
	DisplayResult(result, opts, out)
}

func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError prints err and returns its exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats prints allocation statistics gathered around an
// evaluation.
func DisplayMemoryStats(heapAlloc, allocated uint64, gcCycles uint32, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(heapAlloc))
	fmt.Fprintf(out, "  Allocated:       %s\n", format.FormatBytes(allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", gcCycles)
}
