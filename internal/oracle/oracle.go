// Package oracle evaluates eintcalc operations with independent
// arbitrary-precision libraries so that engine results can be checked.
//
// The math/big backend is always available. Building with -tags=gmp adds a
// backend over libgmp through github.com/ncw/gmp; it requires libgmp-dev
// (Debian/Ubuntu) or brew's gmp (macOS).
package oracle

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"sync"

	"github.com/agbru/einteger"
)

// ErrUnsupported is returned by a backend for an operation it does not
// implement.
var ErrUnsupported = errors.New("oracle: operation not supported")

// ErrDomain reports an operation the backend refused for its operands
// (division by zero, negative square root, ...). Verification treats two
// failures as agreement.
var ErrDomain = errors.New("oracle: operand outside the operation's domain")

// Backend evaluates named operations on engine values.
type Backend interface {
	Name() string
	Supports(op string) bool
	Eval(op string, args []*einteger.EInteger) ([]*einteger.EInteger, error)
}

var (
	backendsMu sync.RWMutex
	backends   = map[string]func() Backend{}
)

// Register makes a backend constructor available to New.
func Register(name string, ctor func() Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = ctor
}

// New returns the backend called name.
func New(name string) (Backend, error) {
	backendsMu.RLock()
	ctor, ok := backends[name]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("oracle: backend %q not available (have %v)", name, Available())
	}
	return ctor(), nil
}

// Available lists the registered backend names.
func Available() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// ToBig converts x through its two's-complement byte encoding.
func ToBig(x *einteger.EInteger) *big.Int {
	b := x.ToBytes(false)
	v := new(big.Int).SetBytes(b)
	if x.Sign() < 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(8*len(b))))
	}
	return v
}

// FromBig converts v to an engine value.
func FromBig(v *big.Int) *einteger.EInteger {
	n := v.BitLen()/8 + 1
	t := new(big.Int).Set(v)
	if v.Sign() < 0 {
		t.Add(t, new(big.Int).Lsh(big.NewInt(1), uint(8*n)))
	}
	x, err := einteger.FromBytes(t.FillBytes(make([]byte, n)), false)
	if err != nil {
		// Unreachable: the slice is non-nil.
		panic(err)
	}
	return x
}
