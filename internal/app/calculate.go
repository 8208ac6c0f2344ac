package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agbru/einteger/internal/calc"
	"github.com/agbru/einteger/internal/cli"
	apperrors "github.com/agbru/einteger/internal/errors"
	"github.com/agbru/einteger/internal/logging"
	"github.com/agbru/einteger/internal/metrics"
	"github.com/agbru/einteger/internal/oracle"
	"github.com/agbru/einteger/internal/orchestration"
	"github.com/agbru/einteger/internal/ui"
)

// runCalculate evaluates the operation given on the command line, comparing
// or verifying variants when asked to.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	args, err := calc.ParseOperands(a.Config.Operands, a.Config.Radix, nil)
	if err != nil {
		return a.fail(err)
	}
	evaluator := calc.NewEvaluator(a.Config.MaxOperandWords)
	evaluator.Registry = a.Registry
	_, words, err := evaluator.Check(a.Config.Op, args)
	if err != nil {
		return a.fail(err)
	}

	variants, err := a.variantsToRun()
	if err != nil {
		return a.fail(err)
	}
	a.logger.Debug("evaluating",
		logging.String("op", a.Config.Op),
		logging.Int("words", words),
		logging.Int("variants", len(variants)))

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(variants, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	gc := metrics.NewGCController(a.Config.GCMode, words)
	gc.SetLogger(a.logger.Zerolog())
	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	gc.Begin()
	results := orchestration.ExecuteVariants(ctx, variants, args, reporter, progressOut)
	gc.End()
	after := collector.Snapshot()

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
		Radix:      a.Config.OutputRadix,
		Digits:     a.Config.Digits,
	}
	code := a.analyzeResultsWithOutput(results, outputCfg, out)

	if a.Config.Details && !a.Config.Quiet {
		delta := after.Since(before)
		cli.DisplayMemoryStats(after.HeapAlloc, delta.Allocated, delta.GCCycles, out)
	}
	return code
}

// variantsToRun picks the variants for the configured mode: every selected
// variant when comparing, the default variant next to an oracle when
// verifying, the default variant alone otherwise.
func (a *Application) variantsToRun() ([]orchestration.Variant, error) {
	op := a.Config.Op
	switch {
	case a.Config.Compare:
		return orchestration.SelectVariants(op, a.Config.Variants, a.Registry)
	case a.Config.Verify:
		all := orchestration.VariantsFor(op, a.Registry)
		if len(all) == 0 {
			return nil, apperrors.NewConfigError("unknown operation %q", op)
		}
		backend, err := oracle.New(a.Config.Oracle)
		if err != nil {
			return nil, apperrors.NewConfigError("%v", err)
		}
		if !backend.Supports(op) {
			return nil, apperrors.NewConfigError("oracle %s cannot verify %s", backend.Name(), op)
		}
		return []orchestration.Variant{all[0], orchestration.OracleVariant{Op: op, Backend: backend}}, nil
	}
	all := orchestration.VariantsFor(op, a.Registry)
	if len(all) == 0 {
		return nil, apperrors.NewConfigError("unknown operation %q", op)
	}
	return all[:1], nil
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	best := findBestResult(results)

	if outputCfg.Quiet && best != nil && len(results) == 1 {
		if err := cli.DisplayResultWithConfig(out, *best, a.Config.Op, a.Config.Operands, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	var presenter orchestration.ResultPresenter = cli.CLIResultPresenter{}
	presentOut := out
	if outputCfg.Quiet {
		presenter = quietPresenter{valueOut: out, errOut: a.ErrWriter}
		presentOut = io.Discard
	}
	code := orchestration.AnalyzeComparisonResults(results, outputCfg.Options(a.Config.Op), presenter, presentOut)
	if code != apperrors.ExitSuccess {
		return code
	}

	best = findBestResult(results)
	if best == nil {
		return code
	}
	if outputCfg.OutputFile != "" {
		if err := cli.WriteResultToFile(*best, a.Config.Op, a.Config.Operands, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !outputCfg.Quiet {
			th := ui.GetCurrentTheme()
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n", th.Success, th.Info, outputCfg.OutputFile, th.Reset)
		}
	}
	return code
}

// findBestResult returns the fastest successful result that came from the
// engine, preferring it over an oracle with the same value.
func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var best *orchestration.CalculationResult
	for i := range results {
		r := &results[i]
		if r.Err != nil || len(r.Values) == 0 {
			continue
		}
		if best == nil || isOracle(best.Name) && !isOracle(r.Name) ||
			isOracle(best.Name) == isOracle(r.Name) && r.Duration < best.Duration {
			best = r
		}
	}
	return best
}

func isOracle(name string) bool {
	return strings.HasPrefix(name, "oracle:")
}

// fail reports err on the error writer and returns its exit code.
func (a *Application) fail(err error) int {
	return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
}

// quietPresenter prints only the agreed value on stdout and errors on
// stderr, dropping the comparison table.
type quietPresenter struct {
	cli.CLIResultPresenter
	valueOut io.Writer
	errOut   io.Writer
}

func (quietPresenter) PresentComparisonTable([]orchestration.CalculationResult, io.Writer) {}

func (p quietPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, _ io.Writer) {
	p.CLIResultPresenter.PresentResult(result, opts, p.valueOut)
}

func (p quietPresenter) HandleError(err error, d time.Duration, _ io.Writer) int {
	return p.CLIResultPresenter.HandleError(err, d, p.errOut)
}
