package config

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flags (--mult-threshold, --toom3-threshold, ...)
//   2. Environment variables (EINTCALC_TOOM3_THRESHOLD, ...)
//   3. Cached calibration profile
//   4. Hardware estimation (this file)
//   5. Engine defaults

// ApplyAdaptiveThresholds fills every unset threshold with a hardware
// estimate. Explicit values are kept.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.MultThreshold == 0 {
		cfg.MultThreshold = EstimateMultThreshold()
	}
	if cfg.Toom3Threshold == 0 {
		cfg.Toom3Threshold = EstimateToom3Threshold()
	}
	if cfg.Toom4Threshold == 0 {
		cfg.Toom4Threshold = max(4*cfg.Toom3Threshold, EstimateToom3Threshold())
	}
	if cfg.DivThreshold == 0 {
		cfg.DivThreshold = 2*cfg.Toom3Threshold + 1
	}
	if cfg.GcdThreshold == 0 {
		cfg.GcdThreshold = EstimateGcdThreshold()
	}
	return cfg
}

// wideMultiply reports whether the CPU has fast 64-bit multiply-with-carry
// support, which makes the schoolbook inner loop cheaper relative to
// the recursive algorithms' additions.
func wideMultiply() bool {
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasBMI2 && cpu.X86.HasADX
	case "arm64":
		return cpu.ARM64.HasASIMD
	}
	return false
}

// EstimateMultThreshold estimates the schoolbook/Karatsuba crossover.
func EstimateMultThreshold() int {
	wordSize := 32 << (^uint(0) >> 63)
	switch {
	case wordSize == 64 && wideMultiply():
		return 12
	case wordSize == 64:
		return 10
	}
	return 8
}

// EstimateToom3Threshold estimates the Karatsuba/Toom-3 crossover.
func EstimateToom3Threshold() int {
	if cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD {
		return 120
	}
	return 100
}

// EstimateGcdThreshold estimates the Lehmer/half-GCD crossover.
func EstimateGcdThreshold() int {
	if wideMultiply() {
		return 16
	}
	return 12
}
