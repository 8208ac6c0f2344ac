// Package config parses the eintcalc command line. Values come from flags,
// then EINTCALC_* environment variables, then defaults; zero thresholds are
// filled in later by calibration or hardware estimation.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/einteger"
	apperrors "github.com/agbru/einteger/internal/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "EINTCALC_"

// Defaults for the flags without a natural zero value.
const (
	DefaultTimeout         = 5 * time.Minute
	DefaultRadix           = 10
	DefaultAddr            = "127.0.0.1:8080"
	DefaultMaxOperandWords = 1 << 20
	DefaultOracle          = "big"
	DefaultDigits          = 40
	DefaultGCMode          = "auto"
)

// AppConfig is the fully resolved configuration of one eintcalc run.
type AppConfig struct {
	// Op is the operation to evaluate; Operands are its textual arguments.
	Op       string
	Operands []string

	Radix       int
	OutputRadix int
	Timeout     time.Duration

	// Variants selects the algorithm variants for --compare ("all" or a
	// comma-separated list).
	Variants string
	Compare  bool
	Verify   bool
	Oracle   string

	REPL  bool
	TUI   bool
	Serve bool
	Addr  string

	Calibrate          bool
	AutoCalibrate      bool
	CalibrationProfile string

	// Thresholds in limbs. Zero means "not set".
	MultThreshold  int
	Toom3Threshold int
	Toom4Threshold int
	DivThreshold   int
	GcdThreshold   int

	MaxOperandWords int
	GCMode          string
	OutputFile      string
	Digits          int
	Verbose         bool
	Details         bool
	Quiet           bool
	NoColor         bool
	Completion      string
	Version         bool
}

// EvaluationMode reports whether no other mode was requested, so that Op
// must name an operation.
func (c AppConfig) EvaluationMode() bool {
	return !(c.REPL || c.TUI || c.Serve || c.Calibrate || c.Version || c.Completion != "")
}

// Thresholds converts the configured thresholds to engine thresholds,
// keeping the engine default for every unset field.
func (c AppConfig) Thresholds() einteger.Thresholds {
	t := einteger.DefaultThresholds()
	setIf(&t.MultRecursion, c.MultThreshold)
	setIf(&t.Toom3, c.Toom3Threshold)
	setIf(&t.Toom4, c.Toom4Threshold)
	setIf(&t.RecursiveDivision, c.DivThreshold)
	setIf(&t.GcdSubquadratic, c.GcdThreshold)
	return t
}

// WithThresholds copies t into the threshold fields.
func (c AppConfig) WithThresholds(t einteger.Thresholds) AppConfig {
	c.MultThreshold = t.MultRecursion
	c.Toom3Threshold = t.Toom3
	c.Toom4Threshold = t.Toom4
	c.DivThreshold = t.RecursiveDivision
	c.GcdThreshold = t.GcdSubquadratic
	return c
}

func setIf(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

// ParseConfig parses args (without the program name) into an AppConfig.
// availableOps lists the operation names accepted for evaluation.
// flag.ErrHelp is returned unchanged when -h or --help is given.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableOps []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] OP [OPERAND...]\n\n", programName)
		fmt.Fprintf(errWriter, "Operations: %s\n\nFlags:\n", strings.Join(availableOps, " "))
		fs.PrintDefaults()
	}

	cfg := AppConfig{}
	fs.IntVar(&cfg.Radix, "radix", DefaultRadix, "Radix of the operands (2-36).")
	fs.IntVar(&cfg.OutputRadix, "output-radix", 0, "Radix of the result (defaults to --radix).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum evaluation time.")
	fs.StringVar(&cfg.Variants, "variants", "all", "Algorithm variants to compare (\"all\" or a comma-separated list).")
	fs.BoolVar(&cfg.Compare, "compare", false, "Evaluate with every selected algorithm variant and compare.")
	fs.BoolVar(&cfg.Verify, "verify", false, "Check the result against a reference backend.")
	fs.StringVar(&cfg.Oracle, "oracle", DefaultOracle, "Reference backend for --verify (big or gmp).")
	fs.BoolVar(&cfg.REPL, "repl", false, "Start the interactive calculator.")
	fs.BoolVar(&cfg.REPL, "i", false, "Shorthand for --repl.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Start the benchmark dashboard.")
	fs.BoolVar(&cfg.Serve, "serve", false, "Serve the HTTP evaluation API.")
	fs.StringVar(&cfg.Addr, "addr", DefaultAddr, "Listen address for --serve.")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "Measure algorithm crossovers and save a profile.")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", false, "Run a quick calibration before evaluating.")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "Path of the calibration profile.")
	fs.IntVar(&cfg.MultThreshold, "mult-threshold", 0, "Largest operand (limbs) multiplied by schoolbook.")
	fs.IntVar(&cfg.Toom3Threshold, "toom3-threshold", 0, "Smallest operand (limbs) multiplied by Toom-3.")
	fs.IntVar(&cfg.Toom4Threshold, "toom4-threshold", 0, "Smallest operand (limbs) multiplied by Toom-4.")
	fs.IntVar(&cfg.DivThreshold, "div-threshold", 0, "Smallest divisor (limbs) for recursive division.")
	fs.IntVar(&cfg.GcdThreshold, "gcd-threshold", 0, "Largest operand (limbs) handled by Lehmer's GCD.")
	fs.IntVar(&cfg.MaxOperandWords, "max-words", DefaultMaxOperandWords, "Largest operand accepted, in limbs.")
	fs.StringVar(&cfg.GCMode, "gc-mode", DefaultGCMode, "Garbage collector control during evaluation (auto, aggressive, disabled).")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the result to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.IntVar(&cfg.Digits, "digits", DefaultDigits, "Leading and trailing digits shown for long results (0 shows all).")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print the full result.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.Details, "details", false, "Show timing and size details.")
	fs.BoolVar(&cfg.Details, "d", false, "Shorthand for --details.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the result.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script (bash, zsh, fish, powershell).")
	fs.BoolVar(&cfg.Version, "version", false, "Print the version and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		cfg.Op = strings.ToLower(rest[0])
		cfg.Operands = rest[1:]
	}

	applyEnvOverrides(&cfg, fs)
	if cfg.OutputRadix == 0 {
		cfg.OutputRadix = cfg.Radix
	}

	if err := cfg.Validate(availableOps); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(availableOps []string) error {
	switch {
	case c.Radix < 2 || c.Radix > 36:
		return apperrors.NewConfigError("radix %d out of range [2, 36]", c.Radix)
	case c.OutputRadix < 2 || c.OutputRadix > 36:
		return apperrors.NewConfigError("output radix %d out of range [2, 36]", c.OutputRadix)
	case c.Timeout <= 0:
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	case c.MaxOperandWords <= 0:
		return apperrors.NewConfigError("max-words must be positive, got %d", c.MaxOperandWords)
	case c.Digits < 0:
		return apperrors.NewConfigError("digits must not be negative, got %d", c.Digits)
	case c.Oracle != "big" && c.Oracle != "gmp":
		return apperrors.NewConfigError("unknown oracle %q (want big or gmp)", c.Oracle)
	case c.GCMode != "auto" && c.GCMode != "aggressive" && c.GCMode != "disabled":
		return apperrors.NewConfigError("unknown gc mode %q (want auto, aggressive or disabled)", c.GCMode)
	case c.Compare && c.Verify:
		return apperrors.NewConfigError("--compare and --verify are mutually exclusive")
	}
	for _, v := range []int{c.MultThreshold, c.Toom3Threshold, c.Toom4Threshold, c.DivThreshold, c.GcdThreshold} {
		if v < 0 {
			return apperrors.NewConfigError("thresholds must not be negative, got %d", v)
		}
	}
	if err := c.Thresholds().Validate(); err != nil {
		return apperrors.NewConfigError("invalid thresholds: %v", err)
	}
	if c.EvaluationMode() {
		if c.Op == "" {
			return apperrors.NewConfigError("no operation given")
		}
		if !slices.Contains(availableOps, c.Op) {
			return apperrors.NewConfigError("unknown operation %q; available: %s", c.Op, strings.Join(availableOps, ", "))
		}
	}
	return nil
}
