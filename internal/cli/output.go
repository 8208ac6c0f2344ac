// # Naming Conventions
//
// Functions in this package follow consistent naming patterns:
//
//   - Display* functions write formatted, colorized output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a string without performing I/O.
//     Examples: [FormatValue], [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Example: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/einteger"
	"github.com/agbru/einteger/internal/format"
	"github.com/agbru/einteger/internal/orchestration"
	"github.com/agbru/einteger/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	Quiet      bool
	Verbose    bool
	Details    bool
	Radix      int
	// Digits is the number of leading and trailing digits kept when a
	// result is truncated; 0 never truncates.
	Digits int
}

// Options converts the output configuration to presentation options.
func (c OutputConfig) Options(op string) orchestration.PresentationOptions {
	return orchestration.PresentationOptions{
		Op:      op,
		Radix:   c.Radix,
		Digits:  c.Digits,
		Verbose: c.Verbose,
		Details: c.Details,
		Quiet:   c.Quiet,
	}
}

// FormatValue renders x in radix, with uppercase letters for digits above
// 9 as the engine prints them. Unless verbose is set, digit strings
// longer than 2*digits are shortened around an ellipsis and truncated is
// true.
func FormatValue(x *einteger.EInteger, radix, digits int, verbose bool) (text string, truncated bool, err error) {
	s, err := x.ToRadixString(radix)
	if err != nil {
		return "", false, err
	}
	if verbose || digits <= 0 {
		return s, false, nil
	}
	t := format.TruncateDigits(s, digits)
	return t, t != s, nil
}

// valueLabels names the values of a multi-valued result.
func valueLabels(op string, n int) []string {
	switch {
	case n == 1:
		return []string{op}
	case op == "divrem" && n == 2:
		return []string{"quotient", "remainder"}
	case op == "sqrtrem" && n == 2:
		return []string{"root", "remainder"}
	}
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("%s[%d]", op, i)
	}
	return labels
}

// FormatQuietResult joins the values in radix, one per line.
func FormatQuietResult(values []*einteger.EInteger, radix int) (string, error) {
	lines := make([]string, len(values))
	for i, v := range values {
		s, err := v.ToRadixString(radix)
		if err != nil {
			return "", err
		}
		lines[i] = s
	}
	return strings.Join(lines, "\n"), nil
}

// DisplayQuietResult prints only the values, for scripting.
func DisplayQuietResult(out io.Writer, values []*einteger.EInteger, radix int) error {
	s, err := FormatQuietResult(values, radix)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, s)
	return err
}

// DisplayResult prints the values of result with optional size and timing
// details.
func DisplayResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	th := ui.GetCurrentTheme()
	radix := opts.Radix
	if radix == 0 {
		radix = 10
	}

	if opts.Details {
		fmt.Fprintf(out, "\n%s--- Details ---%s\n", th.Bold, th.Reset)
		fmt.Fprintf(out, "Variant:          %s%s%s\n", th.Primary, result.Name, th.Reset)
		fmt.Fprintf(out, "Evaluation time:  %s%s%s\n", th.Success, format.FormatExecutionDuration(result.Duration), th.Reset)
		for i, v := range result.Values {
			label := valueLabels(opts.Op, len(result.Values))[i]
			fmt.Fprintf(out, "%s: %s%d%s bits, %s%s%s decimal digits, %s%d%s limbs\n",
				label,
				th.Info, v.UnsignedBitLength(), th.Reset,
				th.Info, format.FormatNumberString(fmt.Sprint(v.DigitCount())), th.Reset,
				th.Info, v.WordCount(), th.Reset)
		}
	}

	fmt.Fprintf(out, "\n%s--- Result ---%s\n", th.Bold, th.Reset)
	anyTruncated := false
	labels := valueLabels(opts.Op, len(result.Values))
	for i, v := range result.Values {
		text, truncated, err := FormatValue(v, radix, opts.Digits, opts.Verbose)
		if err != nil {
			fmt.Fprintf(out, "%s%s: %v%s\n", th.Error, labels[i], err, th.Reset)
			continue
		}
		if radix == 10 && !truncated {
			text = format.FormatNumberString(text)
		}
		anyTruncated = anyTruncated || truncated
		fmt.Fprintf(out, "%s = %s%s%s", labels[i], th.Number, text, th.Reset)
		if radix != 10 {
			fmt.Fprintf(out, " %s(radix %d)%s", th.Secondary, radix, th.Reset)
		}
		if truncated {
			fmt.Fprintf(out, " %s(truncated)%s", th.Secondary, th.Reset)
		}
		fmt.Fprintln(out)
	}
	if anyTruncated {
		fmt.Fprintf(out, "%sTip: use -v to print the full value or -o to save it.%s\n", th.Secondary, th.Reset)
	}
}

// WriteResultToFile writes the full result with a commented header.
func WriteResultToFile(result orchestration.CalculationResult, op string, operands []string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}
	radix := config.Radix
	if radix == 0 {
		radix = 10
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# eintcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operation: %s %s\n", op, strings.Join(operands, " "))
	fmt.Fprintf(file, "# Variant: %s\n", result.Name)
	fmt.Fprintf(file, "# Duration: %s\n", result.Duration)
	fmt.Fprintf(file, "# Radix: %d\n\n", radix)

	labels := valueLabels(op, len(result.Values))
	for i, v := range result.Values {
		s, err := v.ToRadixString(radix)
		if err != nil {
			return err
		}
		fmt.Fprintf(file, "%s =\n%s\n", labels[i], s)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayResultWithConfig prints result according to config and saves it
// when an output file is set.
func DisplayResultWithConfig(out io.Writer, result orchestration.CalculationResult, op string, operands []string, config OutputConfig) error {
	if config.Quiet {
		if err := DisplayQuietResult(out, result.Values, config.Radix); err != nil {
			return err
		}
	} else {
		DisplayResult(result, config.Options(op), out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(result, op, operands, config); err != nil {
			return err
		}
		if !config.Quiet {
			th := ui.GetCurrentTheme()
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n", th.Success, th.Info, config.OutputFile, th.Reset)
		}
	}
	return nil
}
