package calc

import (
	"fmt"
	"slices"
	"sync"

	"github.com/agbru/einteger"
)

// Func evaluates an operation. args has exactly the operation's arity.
type Func func(args []*einteger.EInteger) ([]*einteger.EInteger, error)

// Operation describes one named operation.
type Operation struct {
	Name string
	// Arity is the number of operands.
	Arity int
	// Usage is a one-line description shown by help and /v1/ops.
	Usage string
	Fn    Func
	// ResultWords estimates the limb count of the result from the
	// operands, for operations whose result can outgrow them by far. Zero
	// means the result is no larger than a product of the operands.
	ResultWords func(args []*einteger.EInteger) uint64
}

// Registry is a concurrency-safe set of operations.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

// NewRegistry returns a registry holding the given operations.
func NewRegistry(ops ...Operation) *Registry {
	r := &Registry{ops: make(map[string]Operation, len(ops))}
	for _, op := range ops {
		if err := r.Register(op); err != nil {
			panic(err)
		}
	}
	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(builtinOperations()...)
})

// DefaultRegistry returns the shared registry of built-in operations.
func DefaultRegistry() *Registry { return defaultRegistry() }

// Register adds op. Names must be unique.
func (r *Registry) Register(op Operation) error {
	if op.Name == "" || op.Fn == nil || op.Arity < 0 {
		return fmt.Errorf("calc: invalid operation %q", op.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ops[op.Name]; dup {
		return fmt.Errorf("calc: operation %q already registered", op.Name)
	}
	r.ops[op.Name] = op
	return nil
}

// Lookup returns the operation called name.
func (r *Registry) Lookup(name string) (Operation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	return op, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Operations returns all operations sorted by name.
func (r *Registry) Operations() []Operation {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	ops := make([]Operation, len(names))
	for i, n := range names {
		ops[i] = r.ops[n]
	}
	return ops
}
