package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Evaluation or I/O failure.
	ExitErrorTimeout  = 2   // The evaluation exceeded its deadline.
	ExitErrorMismatch = 3   // Algorithm variants disagreed on a result.
	ExitErrorConfig   = 4   // Invalid flags, environment or operands.
	ExitErrorCanceled = 130 // Interrupted (SIGINT convention).
)

// ConfigError reports invalid user configuration: flags, environment
// variables or a calibration profile that cannot be used.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError returns a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure raised while evaluating an operation.
type CalculationError struct {
	// Op is the operation being evaluated, e.g. "div".
	Op    string
	Cause error
}

func (e CalculationError) Error() string {
	if e.Op == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError reports an evaluation that exceeded its time limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError reports an operand or request field that failed
// validation before evaluation started.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError reports an operand or result larger than the configured
// limit. Sizes are in 16-bit words.
type MemoryError struct {
	// Subject is what was too large; empty means "operand".
	Subject   string
	Requested uint64
	Limit     uint64
}

func (e MemoryError) Error() string {
	subject := e.Subject
	if subject == "" {
		subject = "operand"
	}
	return fmt.Sprintf("%s too large: %d words requested, limit %d", subject, e.Requested, e.Limit)
}

// MismatchError reports algorithm variants that produced different results
// for the same operation.
type MismatchError struct {
	Operation string
	// Variants lists the variants whose result differed from the first
	// successful one.
	Variants []string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("%s: results differ for variants %s", e.Operation, strings.Join(e.Variants, ", "))
}

// WrapError adds context to err with %w, or returns nil for a nil err.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a cancellation or deadline error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
