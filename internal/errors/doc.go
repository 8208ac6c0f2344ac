// Package apperrors defines the error classes of the eintcalc tooling
// (configuration, evaluation, timeout, mismatch between algorithm variants)
// and maps them, together with the engine's own *einteger.Error values, to
// process exit codes.
//
// All wrapper types implement Unwrap so that errors.Is and errors.As reach
// the underlying cause.
package apperrors
