package calc

import (
	"fmt"
	"math"

	"github.com/agbru/einteger"
	apperrors "github.com/agbru/einteger/internal/errors"
)

type (
	unary  func(x *einteger.EInteger) *einteger.EInteger
	binary func(x, y *einteger.EInteger) *einteger.EInteger
)

func one(x *einteger.EInteger) []*einteger.EInteger { return []*einteger.EInteger{x} }

func total1(name, usage string, f unary) Operation {
	return Operation{Name: name, Arity: 1, Usage: usage, Fn: func(a []*einteger.EInteger) ([]*einteger.EInteger, error) {
		return one(f(a[0])), nil
	}}
}

func total2(name, usage string, f binary) Operation {
	return Operation{Name: name, Arity: 2, Usage: usage, Fn: func(a []*einteger.EInteger) ([]*einteger.EInteger, error) {
		return one(f(a[0], a[1])), nil
	}}
}

func partial2(name, usage string, f func(x, y *einteger.EInteger) (*einteger.EInteger, error)) Operation {
	return Operation{Name: name, Arity: 2, Usage: usage, Fn: func(a []*einteger.EInteger) ([]*einteger.EInteger, error) {
		z, err := f(a[0], a[1])
		if err != nil {
			return nil, err
		}
		return one(z), nil
	}}
}

func count(name, usage string, f func(x *einteger.EInteger) int) Operation {
	return total1(name, usage, func(x *einteger.EInteger) *einteger.EInteger {
		return einteger.FromInt64(int64(f(x)))
	})
}

// IntArg converts an operand used as a count or index to int. Values
// outside the int32 range are rejected with a ValidationError.
func IntArg(field string, x *einteger.EInteger) (int, error) {
	v, err := x.ToInt32Checked()
	if err != nil {
		return 0, apperrors.ValidationError{Field: field, Message: fmt.Sprintf("%s does not fit in 32 bits", x)}
	}
	return int(v), nil
}

// bitsToWords converts a bit count to 16-bit limbs, rounding up.
func bitsToWords(bits uint64) uint64 {
	return bits/16 + 1
}

// shiftWords bounds x << k.
func shiftWords(a []*einteger.EInteger) uint64 {
	k, err := a[1].ToInt64Checked()
	if err != nil || k <= 0 {
		return 0
	}
	return bitsToWords(uint64(a[0].UnsignedBitLength()) + uint64(k))
}

// powWords bounds x ** e by bitlen(x)·e bits.
func powWords(a []*einteger.EInteger) uint64 {
	e, err := a[1].ToInt64Checked()
	if err != nil || e <= 0 {
		return 0
	}
	bits := uint64(a[0].UnsignedBitLength())
	if bits <= 1 {
		return 1
	}
	if bits > math.MaxUint64/uint64(e) {
		return math.MaxUint64
	}
	return bitsToWords(bits * uint64(e))
}

// lowBitsWords bounds the n-bit mask of a negative x; for x >= 0 the
// result is no larger than x.
func lowBitsWords(a []*einteger.EInteger) uint64 {
	n, err := a[1].ToInt64Checked()
	if err != nil || n <= 0 || a[0].Sign() >= 0 {
		return 0
	}
	return bitsToWords(uint64(n))
}

func withResultWords(op Operation, f func([]*einteger.EInteger) uint64) Operation {
	op.ResultWords = f
	return op
}

func builtinOperations() []Operation {
	return []Operation{
		total2("add", "x + y", (*einteger.EInteger).Add),
		total2("sub", "x - y", (*einteger.EInteger).Subtract),
		total2("mul", "x * y", (*einteger.EInteger).Multiply),
		total1("sqr", "x * x", (*einteger.EInteger).Square),
		partial2("div", "x / y truncated toward zero", (*einteger.EInteger).Divide),
		partial2("rem", "x - y*(x/y), sign of x", (*einteger.EInteger).Remainder),
		partial2("mod", "x mod y in [0, y)", (*einteger.EInteger).Mod),
		{Name: "divrem", Arity: 2, Usage: "quotient and remainder", Fn: func(a []*einteger.EInteger) ([]*einteger.EInteger, error) {
			q, r, err := a[0].DivRem(a[1])
			if err != nil {
				return nil, err
			}
			return []*einteger.EInteger{q, r}, nil
		}},
		total2("gcd", "greatest common divisor", (*einteger.EInteger).Gcd),
		total2("lcm", "least common multiple", (*einteger.EInteger).Lcm),
		withResultWords(partial2("pow", "x ** n", func(x, n *einteger.EInteger) (*einteger.EInteger, error) {
			e, err := n.ToInt64Checked()
			if err != nil {
				return nil, apperrors.ValidationError{Field: "exponent", Message: "does not fit in 64 bits"}
			}
			return x.Pow(e)
		}), powWords),
		{Name: "modpow", Arity: 3, Usage: "x ** e mod m", Fn: func(a []*einteger.EInteger) ([]*einteger.EInteger, error) {
			z, err := a[0].ModPow(a[1], a[2])
			if err != nil {
				return nil, err
			}
			return one(z), nil
		}},
		{Name: "sqrt", Arity: 1, Usage: "floor square root", Fn: func(a []*einteger.EInteger) ([]*einteger.EInteger, error) {
			s, err := a[0].Sqrt()
			if err != nil {
				return nil, err
			}
			return one(s), nil
		}},
		{Name: "sqrtrem", Arity: 1, Usage: "floor square root and remainder", Fn: func(a []*einteger.EInteger) ([]*einteger.EInteger, error) {
			s, r, err := a[0].SqrtRem()
			if err != nil {
				return nil, err
			}
			return []*einteger.EInteger{s, r}, nil
		}},
		partial2("root", "k-th root truncated toward zero", func(x, k *einteger.EInteger) (*einteger.EInteger, error) {
			n, err := IntArg("k", k)
			if err != nil {
				return nil, err
			}
			return x.Root(n)
		}),

		total2("and", "bitwise and", (*einteger.EInteger).And),
		total2("or", "bitwise or", (*einteger.EInteger).Or),
		total2("xor", "bitwise exclusive or", (*einteger.EInteger).Xor),
		total1("not", "bitwise complement, -x-1", (*einteger.EInteger).Not),
		total2("andnot", "x and not y", (*einteger.EInteger).AndNot),
		total2("ornot", "x or not y", (*einteger.EInteger).OrNot),
		total2("imp", "not x or y", (*einteger.EInteger).Imp),
		total2("eqv", "not (x xor y)", (*einteger.EInteger).Eqv),
		withResultWords(partial2("shl", "x * 2**k", func(x, k *einteger.EInteger) (*einteger.EInteger, error) {
			n, err := IntArg("k", k)
			if err != nil {
				return nil, err
			}
			return x.ShiftLeft(n), nil
		}), shiftWords),
		partial2("shr", "floor(x / 2**k)", func(x, k *einteger.EInteger) (*einteger.EInteger, error) {
			n, err := IntArg("k", k)
			if err != nil {
				return nil, err
			}
			return x.ShiftRight(n), nil
		}),
		withResultWords(partial2("lowbits", "x and (2**n - 1)", func(x, k *einteger.EInteger) (*einteger.EInteger, error) {
			n, err := IntArg("n", k)
			if err != nil {
				return nil, err
			}
			return x.LowBits(n)
		}), lowBitsWords),
		partial2("testbit", "bit i of x in two's complement, 0 or 1", func(x, i *einteger.EInteger) (*einteger.EInteger, error) {
			n, err := IntArg("i", i)
			if err != nil {
				return nil, err
			}
			return einteger.FromBool(x.TestBit(n)), nil
		}),
		count("popcount", "number of one bits in |x|", (*einteger.EInteger).PopCount),
		count("bitlen", "bit length of |x|", (*einteger.EInteger).UnsignedBitLength),
		count("digits", "decimal digits of |x|", (*einteger.EInteger).DigitCount),

		total1("neg", "-x", (*einteger.EInteger).Negate),
		total1("abs", "|x|", (*einteger.EInteger).Abs),
		total2("min", "smaller of x and y", (*einteger.EInteger).Min),
		total2("max", "larger of x and y", (*einteger.EInteger).Max),
		total2("cmp", "-1, 0 or 1", func(x, y *einteger.EInteger) *einteger.EInteger {
			return einteger.FromInt64(int64(x.Compare(y)))
		}),
	}
}
