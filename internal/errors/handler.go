package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/einteger"
)

// ColorProvider supplies the ANSI sequences used to highlight diagnostics.
// A nil provider prints plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

// ExitCodeFor classifies err into a process exit code.
func ExitCodeFor(err error) int {
	var (
		cfgErr      ConfigError
		valErr      ValidationError
		memErr      MemoryError
		mismatchErr MismatchError
		timeoutErr  TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr), errors.As(err, &valErr), errors.As(err, &memErr):
		return ExitErrorConfig
	case errors.Is(err, einteger.ErrInvalidArgument):
		// Malformed operands are user input errors.
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}

// HandleCalculationError prints a diagnostic for err to out and returns
// the matching exit code. duration is the time spent before the failure;
// zero omits it.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColors{}
	}
	var after string
	if duration > 0 {
		after = fmt.Sprintf(" after %s", duration)
	}
	code := ExitCodeFor(err)
	var engineErr *einteger.Error
	switch {
	case code == ExitErrorTimeout:
		fmt.Fprintf(out, "%sEvaluation timed out%s.%s\n", colors.Red(), after, colors.Reset())
	case code == ExitErrorCanceled:
		fmt.Fprintf(out, "%sEvaluation canceled%s.%s\n", colors.Yellow(), after, colors.Reset())
	case code == ExitErrorMismatch:
		fmt.Fprintf(out, "%sCRITICAL: %v%s\n", colors.Red(), err, colors.Reset())
	case errors.As(err, &engineErr):
		fmt.Fprintf(out, "%sArithmetic error in %s (%s)%s%s\n",
			colors.Red(), engineErr.Op, engineErr.Kind, after, colors.Reset())
		if engineErr.Msg != "" {
			fmt.Fprintf(out, "  %s\n", engineErr.Msg)
		}
	default:
		fmt.Fprintf(out, "%sError%s: %v%s\n", colors.Red(), after, err, colors.Reset())
	}
	return code
}
