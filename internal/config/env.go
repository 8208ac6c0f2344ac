package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Overrides
// ─────────────────────────────────────────────────────────────────────────────

// envOverride maps one EINTCALC_ variable to the flag names it stands in for.
// Malformed values are ignored and the flag default stays.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func intOverride(dst func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst(c) = parsed
		}
	}
}

func boolOverride(dst func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := dst(c)
		*p = parseBoolEnv(v, *p)
	}
}

var envOverrides = []envOverride{
	{"RADIX", []string{"radix"}, intOverride(func(c *AppConfig) *int { return &c.Radix })},
	{"OUTPUT_RADIX", []string{"output-radix"}, intOverride(func(c *AppConfig) *int { return &c.OutputRadix })},
	{"MULT_THRESHOLD", []string{"mult-threshold"}, intOverride(func(c *AppConfig) *int { return &c.MultThreshold })},
	{"TOOM3_THRESHOLD", []string{"toom3-threshold"}, intOverride(func(c *AppConfig) *int { return &c.Toom3Threshold })},
	{"TOOM4_THRESHOLD", []string{"toom4-threshold"}, intOverride(func(c *AppConfig) *int { return &c.Toom4Threshold })},
	{"DIV_THRESHOLD", []string{"div-threshold"}, intOverride(func(c *AppConfig) *int { return &c.DivThreshold })},
	{"GCD_THRESHOLD", []string{"gcd-threshold"}, intOverride(func(c *AppConfig) *int { return &c.GcdThreshold })},
	{"MAX_WORDS", []string{"max-words"}, intOverride(func(c *AppConfig) *int { return &c.MaxOperandWords })},
	{"DIGITS", []string{"digits"}, intOverride(func(c *AppConfig) *int { return &c.Digits })},

	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	{"VARIANTS", []string{"variants"}, func(c *AppConfig, v string) { c.Variants = v }},
	{"ORACLE", []string{"oracle"}, func(c *AppConfig, v string) { c.Oracle = v }},
	{"GC_MODE", []string{"gc-mode"}, func(c *AppConfig, v string) { c.GCMode = v }},
	{"ADDR", []string{"addr"}, func(c *AppConfig, v string) { c.Addr = v }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, func(c *AppConfig, v string) { c.CalibrationProfile = v }},

	{"VERBOSE", []string{"verbose", "v"}, boolOverride(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"details", "d"}, boolOverride(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"quiet", "q"}, boolOverride(func(c *AppConfig) *bool { return &c.Quiet })},
	{"COMPARE", []string{"compare"}, boolOverride(func(c *AppConfig) *bool { return &c.Compare })},
	{"VERIFY", []string{"verify"}, boolOverride(func(c *AppConfig) *bool { return &c.Verify })},
	{"AUTO_CALIBRATE", []string{"auto-calibrate"}, boolOverride(func(c *AppConfig) *bool { return &c.AutoCalibrate })},
	{"NO_COLOR", []string{"no-color"}, boolOverride(func(c *AppConfig) *bool { return &c.NoColor })},
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitively.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// isFlagSetAny reports whether any of names was given on the command line.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, n := range names {
			if f.Name == n {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides fills in every flag not given explicitly from its
// environment variable, giving CLI flags > environment > defaults.
func applyEnvOverrides(cfg *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(cfg, val)
		}
	}
}
