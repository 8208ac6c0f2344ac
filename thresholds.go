package einteger

import (
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// MaxWordCount is the largest limb count a value may hold.
const MaxWordCount = 1<<31 - 1

// ─────────────────────────────────────────────────────────────────────────────
// Algorithm Thresholds
// ─────────────────────────────────────────────────────────────────────────────

// Default thresholds, in limbs. They were tuned empirically and should be
// re-measured (see cmd/eintcalc --calibrate) on unusual hardware.
const (
	DefaultMultRecursionThreshold   = 10
	DefaultToom3Threshold           = 100
	DefaultToom4Threshold           = 400
	DefaultRecursiveDivisionLimit   = DefaultToom3Threshold*2 + 1
	DefaultGcdSubquadraticThreshold = 12
)

// Thresholds holds the operand sizes, in 16-bit limbs, at which the
// dispatchers switch algorithms.
type Thresholds struct {
	// MultRecursion is the largest operand size multiplied by schoolbook.
	MultRecursion int `json:"mult_recursion"`
	// Toom3 is the smallest balanced operand size multiplied with Toom-3.
	Toom3 int `json:"toom3"`
	// Toom4 is the smallest balanced operand size multiplied with Toom-4.
	Toom4 int `json:"toom4"`
	// RecursiveDivision is the smallest divisor size for Burnikel-Ziegler.
	RecursiveDivision int `json:"recursive_division"`
	// GcdSubquadratic is the largest operand size handled by Lehmer's GCD.
	GcdSubquadratic int `json:"gcd_subquadratic"`
}

// DefaultThresholds returns the built-in thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MultRecursion:     DefaultMultRecursionThreshold,
		Toom3:             DefaultToom3Threshold,
		Toom4:             DefaultToom4Threshold,
		RecursiveDivision: DefaultRecursiveDivisionLimit,
		GcdSubquadratic:   DefaultGcdSubquadraticThreshold,
	}
}

// MinimumThresholds returns the smallest thresholds Validate accepts.
// Every recursive path stays terminating at these values.
func MinimumThresholds() Thresholds {
	return Thresholds{
		MultRecursion:     2,
		Toom3:             3,
		Toom4:             3,
		RecursiveDivision: 4,
		GcdSubquadratic:   4,
	}
}

// Validate checks that the thresholds are usable by the dispatchers.
func (t Thresholds) Validate() error {
	low := MinimumThresholds()
	switch {
	case t.MultRecursion < low.MultRecursion:
		return newError(KindInvalidArgument, "SetThresholds", "MultRecursion %d < %d", t.MultRecursion, low.MultRecursion)
	case t.Toom3 < low.Toom3:
		return newError(KindInvalidArgument, "SetThresholds", "Toom3 %d < %d", t.Toom3, low.Toom3)
	case t.Toom4 < t.Toom3:
		return newError(KindInvalidArgument, "SetThresholds", "Toom4 %d below Toom3 %d", t.Toom4, t.Toom3)
	case t.RecursiveDivision < low.RecursiveDivision:
		return newError(KindInvalidArgument, "SetThresholds", "RecursiveDivision %d < %d", t.RecursiveDivision, low.RecursiveDivision)
	case t.GcdSubquadratic < low.GcdSubquadratic:
		return newError(KindInvalidArgument, "SetThresholds", "GcdSubquadratic %d < %d", t.GcdSubquadratic, low.GcdSubquadratic)
	}
	return nil
}

func (t Thresholds) String() string {
	return fmt.Sprintf("mult=%d toom3=%d toom4=%d div=%d gcd=%d",
		t.MultRecursion, t.Toom3, t.Toom4, t.RecursiveDivision, t.GcdSubquadratic)
}

var activeThresholds atomic.Pointer[Thresholds]

func init() {
	t := DefaultThresholds()
	activeThresholds.Store(&t)
}

// CurrentThresholds returns the thresholds in effect.
func CurrentThresholds() Thresholds {
	return *activeThresholds.Load()
}

// thresholds returns the active thresholds without copying.
func thresholds() *Thresholds {
	return activeThresholds.Load()
}

// SetThresholds validates t and publishes it for all subsequent operations.
// The dispatchers read the thresholds at every recursion level, so an
// operation already running may switch to t part way through. Every valid
// set yields the same results; only the algorithm mix changes.
func SetThresholds(t Thresholds) error {
	if err := t.Validate(); err != nil {
		return err
	}
	prev := activeThresholds.Swap(&t)
	logger.Load().Debug().
		Str("previous", prev.String()).
		Str("current", t.String()).
		Msg("thresholds updated")
	return nil
}

// ResetThresholds restores DefaultThresholds.
func ResetThresholds() {
	t := DefaultThresholds()
	activeThresholds.Store(&t)
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging
// ─────────────────────────────────────────────────────────────────────────────

var logger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	logger.Store(&nop)
}

// SetLogger installs the logger used for threshold changes and internal
// invariant reports. The default discards everything.
func SetLogger(l zerolog.Logger) {
	logger.Store(&l)
}
