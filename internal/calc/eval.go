package calc

import (
	"context"
	"fmt"
	"time"

	"github.com/agbru/einteger"
	apperrors "github.com/agbru/einteger/internal/errors"
)

// Result is the outcome of one evaluation.
type Result struct {
	Op       string
	Values   []*einteger.EInteger
	Duration time.Duration
}

// Value returns the first result value.
func (r Result) Value() *einteger.EInteger {
	if len(r.Values) == 0 {
		return nil
	}
	return r.Values[0]
}

// Observer is notified after every evaluation. Metrics and tracing hook in
// here; implementations must be safe for concurrent use.
type Observer interface {
	Observe(op string, operandWords int, d time.Duration, err error)
}

// Evaluator runs registered operations. The zero value uses the default
// registry and no operand limit.
type Evaluator struct {
	Registry *Registry
	// MaxWords bounds the limb count of every operand and of the
	// estimated result of shifts, powers and low-bit masks; 0 disables
	// the check.
	MaxWords int
	Observer Observer
}

// NewEvaluator returns an evaluator over the default registry.
func NewEvaluator(maxWords int) *Evaluator {
	return &Evaluator{Registry: DefaultRegistry(), MaxWords: maxWords}
}

func (e *Evaluator) registry() *Registry {
	if e.Registry == nil {
		return DefaultRegistry()
	}
	return e.Registry
}

// Check validates args against the operation called name without running
// it and returns the operation and the largest operand size in limbs.
// Requests whose operands or estimated result exceed MaxWords fail with
// apperrors.MemoryError before any work is done.
func (e *Evaluator) Check(name string, args []*einteger.EInteger) (Operation, int, error) {
	op, ok := e.registry().Lookup(name)
	if !ok {
		return Operation{}, 0, apperrors.ValidationError{Field: "op", Message: fmt.Sprintf("unknown operation %q", name)}
	}
	if len(args) != op.Arity {
		return Operation{}, 0, apperrors.ValidationError{
			Field:   "operands",
			Message: fmt.Sprintf("%s takes %d operand(s), got %d", name, op.Arity, len(args)),
		}
	}
	words := 0
	for _, a := range args {
		if a == nil {
			return Operation{}, 0, apperrors.CalculationError{Op: name, Cause: einteger.ErrNullReference}
		}
		words = max(words, a.WordCount())
	}
	if e.MaxWords <= 0 {
		return op, words, nil
	}
	if words > e.MaxWords {
		return Operation{}, 0, apperrors.MemoryError{Requested: uint64(words), Limit: uint64(e.MaxWords)}
	}
	if op.ResultWords != nil {
		if rw := op.ResultWords(args); rw > uint64(e.MaxWords) {
			return Operation{}, 0, apperrors.MemoryError{Subject: "result", Requested: rw, Limit: uint64(e.MaxWords)}
		}
	}
	return op, words, nil
}

// Eval applies the operation called name to args. Errors are wrapped in
// apperrors.CalculationError and keep the engine error or the context
// error in their chain.
func (e *Evaluator) Eval(ctx context.Context, name string, args []*einteger.EInteger) (Result, error) {
	op, words, err := e.Check(name, args)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	values, err := Run(ctx, func() ([]*einteger.EInteger, error) { return op.Fn(args) })
	d := time.Since(start)
	if e.Observer != nil {
		e.Observer.Observe(name, words, d, err)
	}
	if err != nil {
		return Result{}, apperrors.CalculationError{Op: name, Cause: err}
	}
	return Result{Op: name, Values: values, Duration: d}, nil
}

// Run calls fn on its own goroutine and waits for it or for ctx. An
// *einteger.Error panic raised by fn is returned as an error; other panics
// propagate. Engine calls cannot be interrupted, so after cancellation fn
// keeps running in the background until it finishes.
func Run[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type outcome struct {
		v     T
		err   error
		panic any
	}
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	done := make(chan outcome, 1)
	go func() {
		var o outcome
		defer func() {
			if p := recover(); p != nil {
				if engineErr, ok := p.(*einteger.Error); ok {
					o.err = engineErr
				} else {
					o.panic = p
				}
			}
			done <- o
		}()
		o.v, o.err = fn()
	}()

	select {
	case o := <-done:
		if o.panic != nil {
			panic(o.panic)
		}
		return o.v, o.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
