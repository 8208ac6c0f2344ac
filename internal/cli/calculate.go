package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/einteger/internal/config"
	"github.com/agbru/einteger/internal/orchestration"
	"github.com/agbru/einteger/internal/ui"
)

// PrintExecutionConfig shows what is about to be evaluated and with which
// thresholds.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	th := ui.GetCurrentTheme()
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%s%s on %d operand(s) in radix %d with a timeout of %s%s%s.\n",
		th.Primary, cfg.Op, th.Reset, len(cfg.Operands), cfg.Radix, th.Warning, cfg.Timeout, th.Reset)
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		th.Info, runtime.NumCPU(), th.Reset, th.Info, runtime.Version(), th.Reset)
	fmt.Fprintf(out, "Thresholds: %s%s%s (limbs).\n", th.Info, cfg.Thresholds(), th.Reset)
}

// PrintExecutionMode announces a single evaluation or a comparison.
func PrintExecutionMode(variants []orchestration.Variant, out io.Writer) {
	th := ui.GetCurrentTheme()
	var modeDesc string
	if len(variants) > 1 {
		names := make([]string, len(variants))
		for i, v := range variants {
			names[i] = v.Name()
		}
		modeDesc = fmt.Sprintf("Parallel comparison of %s%s%s", th.Success, strings.Join(names, ", "), th.Reset)
	} else if len(variants) == 1 {
		modeDesc = fmt.Sprintf("Single evaluation with the %s%s%s variant", th.Success, variants[0].Name(), th.Reset)
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
