package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/einteger/internal/config"
	"github.com/agbru/einteger/internal/format"
	"github.com/agbru/einteger/internal/ui"
)

// printCalibrationResults prints one table per crossover.
func printCalibrationResults(out io.Writer, crossovers []Crossover) {
	th := ui.GetCurrentTheme()
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	for _, c := range crossovers {
		fmt.Fprintf(out, "\n%s%s%s threshold: %s vs %s\n", th.Bold, c.Name, th.Reset, c.Lower, c.Upper)
		tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintf(tw, "  %sLimbs%s\t%s%s%s\t%s%s%s\t\n",
			th.Underline, th.Reset, th.Underline, c.Lower, th.Reset, th.Underline, c.Upper, th.Reset)
		fmt.Fprintf(tw, "  %s\t%s\t%s\t\n", strings.Repeat("─", 6), strings.Repeat("─", 12), strings.Repeat("─", 12))
		for _, s := range c.Samples {
			lower, upper := format.FormatExecutionDuration(s.Lower), format.FormatExecutionDuration(s.Upper)
			if s.UpperWins() {
				upper = th.Success + upper + th.Reset
			} else {
				lower = th.Success + lower + th.Reset
			}
			fmt.Fprintf(tw, "  %s%d%s\t%s\t%s\t\n", th.Info, s.Size, th.Reset, lower, upper)
		}
		tw.Flush()
		fmt.Fprintf(out, "  chosen: %s%d%s limbs\n", th.Warning, c.Threshold, th.Reset)
	}
}

func printProfileSaved(out io.Writer, p *CalibrationProfile, path string) {
	th := ui.GetCurrentTheme()
	fmt.Fprintf(out, "\n%s", p)
	fmt.Fprintf(out, "%sProfile saved%s to %s\n", th.Success, th.Reset, path)
}

// printCalibrationOutput prints the thresholds chosen by auto-calibration.
func printCalibrationOutput(cfg config.AppConfig, out io.Writer) {
	th := ui.GetCurrentTheme()
	fmt.Fprintf(out, "%sAuto-calibration%s: %s%s%s\n",
		th.Success, th.Reset, th.Warning, cfg.Thresholds(), th.Reset)
}
