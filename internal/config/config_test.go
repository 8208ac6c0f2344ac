package config

import (
	"bytes"
	"errors"
	"flag"
	"testing"
	"time"

	"github.com/agbru/einteger"
	apperrors "github.com/agbru/einteger/internal/errors"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var testOps = []string{"add", "mul", "div", "gcd"}

func TestParseConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		args  []string
		check func(*testing.T, AppConfig)
	}{
		{"defaults", []string{"add", "1", "2"}, func(t *testing.T, c AppConfig) {
			if c.Op != "add" || len(c.Operands) != 2 || c.Radix != 10 || c.OutputRadix != 10 {
				t.Errorf("unexpected config %+v", c)
			}
			if c.Timeout != DefaultTimeout || c.Oracle != "big" || c.Variants != "all" || c.GCMode != DefaultGCMode {
				t.Errorf("unexpected defaults %+v", c)
			}
		}},
		{"op is lowercased", []string{"MUL", "3", "4"}, func(t *testing.T, c AppConfig) {
			if c.Op != "mul" {
				t.Errorf("Op = %q", c.Op)
			}
		}},
		{"output radix follows radix", []string{"-radix", "16", "add", "ff", "1"}, func(t *testing.T, c AppConfig) {
			if c.OutputRadix != 16 {
				t.Errorf("OutputRadix = %d", c.OutputRadix)
			}
		}},
		{"short aliases", []string{"-q", "-d", "-o", "out.txt", "gcd", "4", "6"}, func(t *testing.T, c AppConfig) {
			if !c.Quiet || !c.Details || c.OutputFile != "out.txt" {
				t.Errorf("aliases not applied: %+v", c)
			}
		}},
		{"repl needs no op", []string{"-i"}, func(t *testing.T, c AppConfig) {
			if !c.REPL || c.EvaluationMode() {
				t.Errorf("REPL mode not detected: %+v", c)
			}
		}},
		{"thresholds", []string{"--toom3-threshold", "60", "--toom4-threshold", "200", "mul", "1", "1"}, func(t *testing.T, c AppConfig) {
			th := c.Thresholds()
			if th.Toom3 != 60 || th.Toom4 != 200 || th.MultRecursion != einteger.DefaultMultRecursionThreshold {
				t.Errorf("Thresholds() = %+v", th)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var errBuf bytes.Buffer
			cfg, err := ParseConfig("eintcalc", tt.args, &errBuf, testOps)
			if err != nil {
				t.Fatalf("ParseConfig: %v (%s)", err, errBuf.String())
			}
			tt.check(t, cfg)
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
	}{
		{"no op", nil},
		{"unknown op", []string{"frobnicate", "1"}},
		{"radix too small", []string{"-radix", "1", "add"}},
		{"radix too large", []string{"-output-radix", "37", "add"}},
		{"negative timeout", []string{"-timeout", "-1s", "add"}},
		{"bad oracle", []string{"-oracle", "python", "add"}},
		{"compare and verify", []string{"-compare", "-verify", "mul"}},
		{"toom4 below toom3", []string{"-toom3-threshold", "90", "-toom4-threshold", "50", "mul"}},
		{"negative threshold", []string{"-gcd-threshold", "-3", "gcd"}},
		{"negative digits", []string{"-digits", "-1", "add"}},
		{"bad gc mode", []string{"-gc-mode", "sometimes", "add"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseConfig("eintcalc", tt.args, &bytes.Buffer{}, testOps)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want ConfigError", err)
			}
			if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
				t.Errorf("exit code = %d", apperrors.ExitCodeFor(err))
			}
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	t.Parallel()
	var errBuf bytes.Buffer
	_, err := ParseConfig("eintcalc", []string{"-h"}, &errBuf, testOps)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err = %v, want flag.ErrHelp", err)
	}
	if !bytes.Contains(errBuf.Bytes(), []byte("Operations: add mul div gcd")) {
		t.Errorf("usage lacks operation list:\n%s", errBuf.String())
	}
}

// Environment tests mutate process state and cannot run in parallel.

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"RADIX", "16")
	t.Setenv(EnvPrefix+"TIMEOUT", "30s")
	t.Setenv(EnvPrefix+"QUIET", "yes")
	t.Setenv(EnvPrefix+"TOOM3_THRESHOLD", "77")
	t.Setenv(EnvPrefix+"ORACLE", "gmp")
	t.Setenv(EnvPrefix+"MAX_WORDS", "not-a-number")

	cfg, err := ParseConfig("eintcalc", []string{"add", "a", "b"}, &bytes.Buffer{}, testOps)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Radix != 16 || cfg.OutputRadix != 16 {
		t.Errorf("radix = %d/%d, want 16/16", cfg.Radix, cfg.OutputRadix)
	}
	if cfg.Timeout != 30*time.Second || !cfg.Quiet || cfg.Toom3Threshold != 77 || cfg.Oracle != "gmp" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.MaxOperandWords != DefaultMaxOperandWords {
		t.Errorf("malformed value should keep default, got %d", cfg.MaxOperandWords)
	}
}

func TestFlagsBeatEnvironment(t *testing.T) {
	t.Setenv(EnvPrefix+"RADIX", "16")
	t.Setenv(EnvPrefix+"VERBOSE", "true")

	cfg, err := ParseConfig("eintcalc", []string{"-radix", "8", "-v=false", "add", "7", "1"}, &bytes.Buffer{}, testOps)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Radix != 8 || cfg.Verbose {
		t.Errorf("flags should win: radix %d verbose %v", cfg.Radix, cfg.Verbose)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"No", true, false},
		{"0", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v", tt.in, tt.def, got)
		}
	}
}

func TestApplyAdaptiveThresholds(t *testing.T) {
	t.Parallel()
	cfg := ApplyAdaptiveThresholds(AppConfig{})
	if err := cfg.Thresholds().Validate(); err != nil {
		t.Fatalf("estimated thresholds invalid: %v", err)
	}
	if cfg.DivThreshold != 2*cfg.Toom3Threshold+1 {
		t.Errorf("div threshold %d not derived from toom3 %d", cfg.DivThreshold, cfg.Toom3Threshold)
	}

	explicit := ApplyAdaptiveThresholds(AppConfig{MultThreshold: 5, GcdThreshold: 40})
	if explicit.MultThreshold != 5 || explicit.GcdThreshold != 40 {
		t.Errorf("explicit thresholds overwritten: %+v", explicit)
	}
}

func TestAdaptiveThresholdProperties(t *testing.T) {
	t.Parallel()
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("explicit values survive and the result validates", prop.ForAll(
		func(mult, toom3 int) bool {
			cfg := ApplyAdaptiveThresholds(AppConfig{MultThreshold: mult, Toom3Threshold: toom3})
			return cfg.MultThreshold == mult && cfg.Toom3Threshold == toom3 &&
				cfg.Toom4Threshold >= toom3 && cfg.Thresholds().Validate() == nil
		},
		gen.IntRange(2, 1000),
		gen.IntRange(3, 5000),
	))

	properties.Property("WithThresholds round-trips through Thresholds", prop.ForAll(
		func(toom3, extra int) bool {
			th := einteger.DefaultThresholds()
			th.Toom3, th.Toom4 = toom3, toom3+extra
			return AppConfig{}.WithThresholds(th).Thresholds() == th
		},
		gen.IntRange(3, 5000),
		gen.IntRange(0, 5000),
	))

	properties.TestingRun(t)
}
