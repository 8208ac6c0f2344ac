package einteger

import "fmt"

// Kind classifies an engine failure.
type Kind int

const (
	// KindDivideByZero reports a division or remainder with a zero divisor.
	KindDivideByZero Kind = iota + 1
	// KindInvalidArgument reports malformed input or an out-of-domain argument.
	KindInvalidArgument
	// KindOverflow reports a checked narrowing conversion that does not fit.
	KindOverflow
	// KindNullReference reports a missing required operand.
	KindNullReference
	// KindResourceExhausted reports a result larger than MaxWordCount limbs.
	KindResourceExhausted
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDivideByZero:
		return "divide by zero"
	case KindInvalidArgument:
		return "invalid argument"
	case KindOverflow:
		return "overflow"
	case KindNullReference:
		return "null reference"
	case KindResourceExhausted:
		return "resource exhausted"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the error type returned (or panicked with) by this package.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "Divide".
	Op string
	// Msg carries optional detail.
	Msg string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return "einteger: " + e.Kind.String()
	}
	if e.Msg == "" {
		return fmt.Sprintf("einteger: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("einteger: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Is reports whether target is an *Error of the same Kind. It lets callers
// write errors.Is(err, einteger.ErrDivideByZero).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// Sentinel errors for use with errors.Is.
var (
	ErrDivideByZero      = &Error{Kind: KindDivideByZero}
	ErrInvalidArgument   = &Error{Kind: KindInvalidArgument}
	ErrOverflow          = &Error{Kind: KindOverflow}
	ErrNullReference     = &Error{Kind: KindNullReference}
	ErrResourceExhausted = &Error{Kind: KindResourceExhausted}
)

func newError(kind Kind, op, format string, args ...any) *Error {
	e := &Error{Kind: kind, Op: op}
	if format != "" {
		e.Msg = fmt.Sprintf(format, args...)
	}
	return e
}

// mustNotBeNil panics with a NullReference error when x is nil.
func mustNotBeNil(op string, xs ...*EInteger) {
	for _, x := range xs {
		if x == nil {
			panic(newError(KindNullReference, op, "nil operand"))
		}
	}
}

// checkWordCount panics with a ResourceExhausted error when a result would
// need more than MaxWordCount limbs.
func checkWordCount(op string, n int64) {
	if n > MaxWordCount || n < 0 {
		panic(newError(KindResourceExhausted, op, "result needs %d limbs", n))
	}
}
