// Package app wires configuration, the engine and the eintcalc front ends
// (command line, REPL, dashboard and HTTP server) together.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/einteger"
	"github.com/agbru/einteger/internal/calc"
	"github.com/agbru/einteger/internal/calibration"
	"github.com/agbru/einteger/internal/cli"
	"github.com/agbru/einteger/internal/config"
	apperrors "github.com/agbru/einteger/internal/errors"
	"github.com/agbru/einteger/internal/logging"
	"github.com/agbru/einteger/internal/orchestration"
	"github.com/agbru/einteger/internal/server"
	"github.com/agbru/einteger/internal/tui"
	"github.com/agbru/einteger/internal/ui"
)

// Application is one eintcalc invocation.
type Application struct {
	Config    config.AppConfig
	Registry  *calc.Registry
	ErrWriter io.Writer
	logger    *logging.ZerologAdapter
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry replaces the default operation registry.
func WithRegistry(r *calc.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithLogger replaces the stderr logger.
func WithLogger(l *logging.ZerologAdapter) AppOption {
	return func(a *Application) { a.logger = l }
}

// New parses args (program name first) and resolves the thresholds from
// a cached calibration profile or the hardware estimate.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = calc.DefaultRegistry()
	}
	if app.logger == nil {
		app.logger = logging.NewLogger(errWriter, "eintcalc")
	}

	programName := "eintcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Registry.Names())
	if err != nil {
		return nil, err
	}

	if withProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
		cfg = withProfile
	} else {
		cfg = config.ApplyAdaptiveThresholds(cfg)
	}

	app.Config = cfg
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level := zerolog.WarnLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	einteger.SetLogger(a.logger.Zerolog())
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}

	a.Config = a.runAutoCalibrationIfEnabled(ctx, out)
	if err := einteger.SetThresholds(a.Config.Thresholds()); err != nil {
		return apperrors.HandleCalculationError(apperrors.NewConfigError("invalid thresholds: %v", err), 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	a.logger.Debug("thresholds applied", logging.String("thresholds", a.Config.Thresholds().String()))

	switch {
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Serve:
		return a.runServer(ctx)
	case a.Config.REPL:
		return a.runREPL(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// runCompletion prints a shell completion script.
func (a *Application) runCompletion(out io.Writer) int {
	ops := a.Registry.Names()
	variants := orchestration.AllVariantNames(a.Registry)
	if err := cli.GenerateCompletion(out, a.Config.Completion, ops, variants); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration runs the full calibration and saves the profile.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	th := ui.GetCurrentTheme()
	progress := func(done, total int) {
		if a.Config.Quiet {
			return
		}
		fmt.Fprintf(out, "\r%sCalibrating%s %d/%d", th.Info, th.Reset, done, total)
		if done == total {
			fmt.Fprintln(out)
		}
	}
	return calibration.RunCalibration(ctx, out, a.Config.CalibrationProfile, progress)
}

// runAutoCalibrationIfEnabled runs the quick calibration when requested.
func (a *Application) runAutoCalibrationIfEnabled(ctx context.Context, out io.Writer) config.AppConfig {
	if !a.Config.AutoCalibrate {
		return a.Config
	}
	if updated, ok := calibration.AutoCalibrate(ctx, a.Config, out); ok {
		return updated
	}
	a.logger.Info("auto-calibration failed, keeping estimated thresholds")
	return a.Config
}

// runTUI launches the benchmark dashboard. The timeout bounds the whole
// session.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Config, Version)
}

// runServer serves the HTTP API until SIGINT or SIGTERM.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	srv := server.New(a.Config, server.WithLogger(a.logger), server.WithRegistry(a.Registry))
	if err := srv.Start(ctx); err != nil {
		a.logger.Error("server stopped", err, logging.String("addr", a.Config.Addr))
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive calculator on stdin.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stopSignals()

	evaluator := calc.NewEvaluator(a.Config.MaxOperandWords)
	evaluator.Registry = a.Registry
	repl := cli.NewREPL(evaluator, cli.REPLConfig{
		Timeout:     a.Config.Timeout,
		Radix:       a.Config.Radix,
		OutputRadix: a.Config.OutputRadix,
		Digits:      a.Config.Digits,
	})
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
