package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/einteger/internal/calc"
	apperrors "github.com/agbru/einteger/internal/errors"
	"github.com/agbru/einteger/internal/format"
	"github.com/agbru/einteger/internal/orchestration"
	"github.com/agbru/einteger/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout bounds each evaluation.
	Timeout     time.Duration
	Radix       int
	OutputRadix int
	// Digits is the truncation width of displayed results (0 shows all).
	Digits int
}

// REPL is an interactive calculator session. Results are kept in
// variables: the last one in $ (or $_), named ones via "x = op ...".
type REPL struct {
	config    REPLConfig
	evaluator *calc.Evaluator
	vars      calc.Vars
	in        io.Reader
	out       io.Writer
}

// NewREPL creates a REPL evaluating through evaluator.
func NewREPL(evaluator *calc.Evaluator, config REPLConfig) *REPL {
	if config.Radix == 0 {
		config.Radix = 10
	}
	if config.OutputRadix == 0 {
		config.OutputRadix = config.Radix
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	if evaluator.Registry == nil {
		evaluator.Registry = calc.DefaultRegistry()
	}
	return &REPL{
		config:    config,
		evaluator: evaluator,
		vars:      calc.Vars{},
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Vars returns the session variables.
func (r *REPL) Vars() calc.Vars { return r.vars }

// Start reads and executes lines until exit, EOF or ctx cancellation.
func (r *REPL) Start(ctx context.Context) {
	th := ui.GetCurrentTheme()
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 64*1024), 16<<20)
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(r.out, th.Success+"eint> "+th.Reset)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", th.Error, err, th.Reset)
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !r.processCommand(ctx, line) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	th := ui.GetCurrentTheme()
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", th.Primary, th.Reset)
	fmt.Fprintf(r.out, "%s║%s     %sArbitrary-precision integer calculator%s               %s║%s\n",
		th.Primary, th.Reset, th.Bold, th.Reset, th.Primary, th.Reset)
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", th.Primary, th.Reset)
}

func (r *REPL) printHelp() {
	th := ui.GetCurrentTheme()
	cmd := func(name, help string) {
		fmt.Fprintf(r.out, "  %s%-22s%s - %s\n", th.Warning, name, th.Reset, help)
	}
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", th.Bold, th.Reset)
	cmd("<op> <operand>...", "Evaluate, e.g. mul 12 $x")
	cmd("<name> = <op> ...", "Evaluate and store in $name")
	cmd("compare <op> ...", "Evaluate with every algorithm variant")
	cmd("ops", "List operations")
	cmd("vars", "List variables")
	cmd("radix <n>", "Set the operand radix")
	cmd("output <n>", "Set the result radix")
	cmd("hex", "Toggle hexadecimal results")
	cmd("status", "Display current configuration")
	cmd("help", "Display this help")
	cmd("exit / quit", "Exit interactive mode")
}

// processCommand executes one line. It returns false on exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	th := ui.GetCurrentTheme()
	parts := strings.Fields(input)
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", th.Success, th.Reset)
		return false
	case "help", "h", "?":
		r.printHelp()
	case "ops", "list", "ls":
		r.cmdOps()
	case "vars":
		r.cmdVars()
	case "radix":
		r.setRadix(args, &r.config.Radix)
	case "output":
		r.setRadix(args, &r.config.OutputRadix)
	case "hex":
		r.cmdHex()
	case "status", "st":
		r.cmdStatus()
	case "compare", "cmp":
		if len(args) == 0 {
			fmt.Fprintf(r.out, "%sUsage: compare <op> <operand>...%s\n", th.Error, th.Reset)
			return true
		}
		r.cmdCompare(ctx, strings.ToLower(args[0]), args[1:])
	default:
		r.evaluate(ctx, input)
	}
	return true
}

// evaluate runs a statement and stores its first value.
func (r *REPL) evaluate(ctx context.Context, line string) {
	th := ui.GetCurrentTheme()
	st, err := calc.ParseStatement(line)
	if err != nil {
		r.printError(err)
		return
	}
	if _, ok := r.evaluator.Registry.Lookup(st.Op); !ok {
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", th.Error, st.Op, th.Reset)
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", th.Warning, th.Reset)
		return
	}
	args, err := calc.ParseOperands(st.Args, r.config.Radix, r.vars)
	if err != nil {
		r.printError(err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()
	res, err := r.evaluator.Eval(ctx, st.Op, args)
	if err != nil {
		r.printError(err)
		return
	}

	r.vars[calc.LastResult] = res.Value()
	if st.Assign != "" {
		r.vars[st.Assign] = res.Value()
	}
	labels := valueLabels(st.Op, len(res.Values))
	for i, v := range res.Values {
		text, truncated, err := FormatValue(v, r.config.OutputRadix, r.config.Digits, false)
		if err != nil {
			r.printError(err)
			return
		}
		suffix := ""
		if truncated {
			suffix = fmt.Sprintf(" %s(%d digits)%s", th.Secondary, v.DigitCount(), th.Reset)
		}
		name := labels[i]
		if st.Assign != "" && i == 0 {
			name = st.Assign
		}
		fmt.Fprintf(r.out, "  %s = %s%s%s%s\n", name, th.Number, text, th.Reset, suffix)
	}
	fmt.Fprintf(r.out, "  %s(%s)%s\n", th.Secondary, format.FormatExecutionDuration(res.Duration), th.Reset)
}

func (r *REPL) cmdCompare(ctx context.Context, op string, operands []string) {
	th := ui.GetCurrentTheme()
	variants, err := orchestration.SelectVariants(op, "all", r.evaluator.Registry)
	if err != nil {
		r.printError(err)
		return
	}
	args, err := calc.ParseOperands(operands, r.config.Radix, r.vars)
	if err != nil {
		r.printError(err)
		return
	}
	if o, _ := r.evaluator.Registry.Lookup(op); len(args) != o.Arity {
		r.printError(apperrors.ValidationError{Field: "operands", Message: fmt.Sprintf("%s takes %d operand(s)", op, o.Arity)})
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()
	results := orchestration.ExecuteVariants(ctx, variants, args, orchestration.NullProgressReporter{}, r.out)

	fmt.Fprintf(r.out, "\n%sComparison for %s:%s\n", th.Bold, op, th.Reset)
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", th.Primary, th.Reset)
	var first *orchestration.CalculationResult
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			fmt.Fprintf(r.out, "  %s%-12s%s: %sError - %v%s\n", th.Warning, res.Name, th.Reset, th.Error, res.Err, th.Reset)
			continue
		}
		if first == nil {
			first = res
		}
		status := th.Success + "✓" + th.Reset
		if !res.Equal(*first) {
			status = th.Error + "✗ INCONSISTENT" + th.Reset
		}
		fmt.Fprintf(r.out, "  %s%-12s%s: %s%12s%s %s\n",
			th.Warning, res.Name, th.Reset, th.Info, format.FormatExecutionDuration(res.Duration), th.Reset, status)
	}
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", th.Primary, th.Reset)
	if first != nil {
		r.vars[calc.LastResult] = first.Values[0]
	}
}

func (r *REPL) cmdOps() {
	th := ui.GetCurrentTheme()
	fmt.Fprintf(r.out, "\n%sAvailable operations:%s\n", th.Bold, th.Reset)
	for _, op := range r.evaluator.Registry.Operations() {
		fmt.Fprintf(r.out, "  %s%-9s%s %d  %s\n", th.Warning, op.Name, th.Reset, op.Arity, op.Usage)
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdVars() {
	th := ui.GetCurrentTheme()
	if len(r.vars) == 0 {
		fmt.Fprintln(r.out, "No variables defined.")
		return
	}
	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		text, _, err := FormatValue(r.vars[name], r.config.OutputRadix, r.config.Digits, false)
		if err != nil {
			r.printError(err)
			continue
		}
		fmt.Fprintf(r.out, "  $%s%s%s = %s\n", th.Warning, name, th.Reset, text)
	}
}

func (r *REPL) setRadix(args []string, dst *int) {
	th := ui.GetCurrentTheme()
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: radix|output <2-36>%s\n", th.Error, th.Reset)
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 2 || n > 36 {
		fmt.Fprintf(r.out, "%sInvalid radix: %s%s\n", th.Error, args[0], th.Reset)
		return
	}
	*dst = n
	fmt.Fprintf(r.out, "Radix set to %s%d%s\n", th.Success, n, th.Reset)
}

func (r *REPL) cmdHex() {
	th := ui.GetCurrentTheme()
	if r.config.OutputRadix == 16 {
		r.config.OutputRadix = r.config.Radix
	} else {
		r.config.OutputRadix = 16
	}
	fmt.Fprintf(r.out, "Result radix: %s%d%s\n", th.Success, r.config.OutputRadix, th.Reset)
}

func (r *REPL) cmdStatus() {
	th := ui.GetCurrentTheme()
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", th.Bold, th.Reset)
	fmt.Fprintf(r.out, "  Operand radix:  %s%d%s\n", th.Info, r.config.Radix, th.Reset)
	fmt.Fprintf(r.out, "  Result radix:   %s%d%s\n", th.Info, r.config.OutputRadix, th.Reset)
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", th.Info, r.config.Timeout, th.Reset)
	fmt.Fprintf(r.out, "  Max operand:    %s%d%s limbs\n", th.Info, r.evaluator.MaxWords, th.Reset)
	fmt.Fprintf(r.out, "  Variables:      %s%d%s\n", th.Info, len(r.vars), th.Reset)
	fmt.Fprintln(r.out)
}

func (r *REPL) printError(err error) {
	th := ui.GetCurrentTheme()
	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(r.out, "%sError: timed out after %s%s\n", th.Error, r.config.Timeout, th.Reset)
		return
	}
	fmt.Fprintf(r.out, "%sError: %v%s\n", th.Error, err, th.Reset)
}
