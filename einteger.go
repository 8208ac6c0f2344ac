package einteger

import (
	"math"
	"sync"
)

// EInteger is an immutable arbitrary-precision integer.
//
// The zero value is not usable; obtain values from the From* constructors,
// Zero, One, or arithmetic on existing values. A nil *EInteger passed where
// an operand is required panics with an ErrNullReference *Error from the
// total operations and is returned as that error from the others.
type EInteger struct {
	negative bool
	words    nat
}

// ─────────────────────────────────────────────────────────────────────────────
// Small-Value Cache
// ─────────────────────────────────────────────────────────────────────────────

const (
	cacheMin = -24
	cacheMax = 128
)

// smallValues is built on first use and never written afterwards.
var smallValues = sync.OnceValue(func() *[cacheMax - cacheMin + 1]EInteger {
	var t [cacheMax - cacheMin + 1]EInteger
	for v := cacheMin; v <= cacheMax; v++ {
		e := &t[v-cacheMin]
		if v < 0 {
			e.negative = true
			e.words = nat{uint16(-v)}
		} else if v > 0 {
			e.words = nat{uint16(v)}
		}
	}
	return &t
})

func cached(v int64) *EInteger {
	return &smallValues()[v-cacheMin]
}

// isCached reports whether x is one of the shared small values.
func isCached(x *EInteger) bool {
	t := smallValues()
	for i := range t {
		if x == &t[i] {
			return true
		}
	}
	return false
}

// newInt wraps a magnitude and sign, normalizing and substituting cached
// instances. mag must not be modified afterwards.
func newInt(mag nat, negative bool) *EInteger {
	mag = mag.norm()
	switch len(mag) {
	case 0:
		return cached(0)
	case 1:
		v := int64(mag[0])
		if negative {
			v = -v
		}
		if v >= cacheMin && v <= cacheMax {
			return cached(v)
		}
	}
	return &EInteger{negative: negative, words: mag}
}

// Zero returns 0.
func Zero() *EInteger { return cached(0) }

// One returns 1.
func One() *EInteger { return cached(1) }

// MinusOne returns -1.
func MinusOne() *EInteger { return cached(-1) }

// Ten returns 10.
func Ten() *EInteger { return cached(10) }

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

// FromInt64 returns v as an EInteger.
func FromInt64(v int64) *EInteger {
	if v >= cacheMin && v <= cacheMax {
		return cached(v)
	}
	if v < 0 {
		// -MinInt64 wraps to itself, whose uint64 value is the magnitude.
		return &EInteger{negative: true, words: natFromUint64(uint64(-v))}
	}
	return &EInteger{words: natFromUint64(uint64(v))}
}

// FromInt32 returns v as an EInteger.
func FromInt32(v int32) *EInteger { return FromInt64(int64(v)) }

// FromInt16 returns v as an EInteger.
func FromInt16(v int16) *EInteger { return FromInt64(int64(v)) }

// FromInt8 returns v as an EInteger.
func FromInt8(v int8) *EInteger { return FromInt64(int64(v)) }

// FromUint64 returns v as an EInteger.
func FromUint64(v uint64) *EInteger {
	if v <= math.MaxInt64 {
		return FromInt64(int64(v))
	}
	return &EInteger{words: natFromUint64(v)}
}

// FromBool returns 1 for true and 0 for false.
func FromBool(b bool) *EInteger {
	if b {
		return One()
	}
	return Zero()
}

// ─────────────────────────────────────────────────────────────────────────────
// Predicates and Comparison
// ─────────────────────────────────────────────────────────────────────────────

// Sign returns -1, 0 or +1.
func (x *EInteger) Sign() int {
	mustNotBeNil("Sign", x)
	switch {
	case len(x.words) == 0:
		return 0
	case x.negative:
		return -1
	}
	return 1
}

// IsZero reports whether x == 0.
func (x *EInteger) IsZero() bool {
	mustNotBeNil("IsZero", x)
	return len(x.words) == 0
}

// IsEven reports whether x is divisible by two.
func (x *EInteger) IsEven() bool {
	mustNotBeNil("IsEven", x)
	return len(x.words) == 0 || x.words[0]&1 == 0
}

// IsPowerOfTwo reports whether x is a positive power of two.
func (x *EInteger) IsPowerOfTwo() bool {
	mustNotBeNil("IsPowerOfTwo", x)
	return !x.negative && x.words.isPow2()
}

// Compare returns -1, 0 or +1 as x is less than, equal to or greater than y.
func (x *EInteger) Compare(y *EInteger) int {
	mustNotBeNil("Compare", x, y)
	if x.negative != y.negative {
		if x.negative {
			return -1
		}
		return 1
	}
	c := x.words.cmp(y.words)
	if x.negative {
		return -c
	}
	return c
}

// Equals reports whether x and y have the same sign and magnitude.
func (x *EInteger) Equals(y *EInteger) bool {
	if x == nil || y == nil {
		return x == y
	}
	return x.negative == y.negative && x.words.cmp(y.words) == 0
}

// Min returns the smaller of x and y.
func (x *EInteger) Min(y *EInteger) *EInteger {
	if x.Compare(y) <= 0 {
		return x
	}
	return y
}

// Max returns the larger of x and y.
func (x *EInteger) Max(y *EInteger) *EInteger {
	if x.Compare(y) >= 0 {
		return x
	}
	return y
}

// Abs returns |x|.
func (x *EInteger) Abs() *EInteger {
	mustNotBeNil("Abs", x)
	if !x.negative {
		return x
	}
	return newInt(x.words, false)
}

// Negate returns -x.
func (x *EInteger) Negate() *EInteger {
	mustNotBeNil("Negate", x)
	if len(x.words) == 0 {
		return x
	}
	return newInt(x.words, !x.negative)
}

// WordCount returns the number of significant 16-bit limbs of |x|.
func (x *EInteger) WordCount() int {
	mustNotBeNil("WordCount", x)
	return len(x.words)
}

// small returns x as an int64 when |x| < 2^32.
func (x *EInteger) small() (int64, bool) {
	if len(x.words) > 2 {
		return 0, false
	}
	v := int64(x.words.low64())
	if x.negative {
		v = -v
	}
	return v, true
}
