package einteger

import "math/bits"

// Multiply returns x * y.
func (x *EInteger) Multiply(y *EInteger) *EInteger {
	return x.multiply("Multiply", y, MulAuto)
}

// MultiplyUsing returns x * y computed with alg at the top level.
// Sub-products still go through the size-based dispatcher. The result is
// identical to Multiply; the method exists to compare and time algorithms.
func (x *EInteger) MultiplyUsing(y *EInteger, alg MulAlgorithm) *EInteger {
	return x.multiply("MultiplyUsing", y, alg)
}

// Square returns x * x.
func (x *EInteger) Square() *EInteger {
	return x.multiply("Square", x, MulAuto)
}

func (x *EInteger) multiply(op string, y *EInteger, alg MulAlgorithm) *EInteger {
	mustNotBeNil(op, x, y)
	if len(x.words) == 0 || len(y.words) == 0 {
		return Zero()
	}
	neg := x.negative != y.negative
	if alg == MulAuto {
		if isOne(x.words) {
			return newInt(y.words, neg)
		}
		if isOne(y.words) {
			return newInt(x.words, neg)
		}
		if len(x.words) <= 2 && len(y.words) <= 2 {
			return newInt(natFromUint64(x.words.low64()*y.words.low64()), neg)
		}
	}
	checkWordCount(op, int64(len(x.words))+int64(len(y.words)))
	if x == y {
		return newInt(natSqrUsing(x.words, alg), false)
	}
	return newInt(natMulUsing(x.words, y.words, alg), neg)
}

func isOne(x nat) bool { return len(x) == 1 && x[0] == 1 }

// Pow returns x**exponent. 0**0 is 1.
func (x *EInteger) Pow(exponent int64) (*EInteger, error) {
	const op = "Pow"
	if x == nil {
		return nil, newError(KindNullReference, op, "nil receiver")
	}
	if exponent < 0 {
		return nil, newError(KindInvalidArgument, op, "negative exponent %d", exponent)
	}
	switch {
	case exponent == 0:
		return One(), nil
	case len(x.words) == 0 || exponent == 1:
		return x, nil
	}
	neg := x.negative && exponent&1 == 1
	if isOne(x.words) {
		return newInt(x.words, neg), nil
	}
	if bl := int64(x.words.bitLen()); bl > 1 && (bl-1) > (int64(MaxWordCount)*wordBits)/exponent {
		return nil, newError(KindResourceExhausted, op, "result exceeds %d limbs", MaxWordCount)
	}
	return newInt(natPow(x.words, uint64(exponent)), neg), nil
}

// natPow returns x**e by left-to-right square-and-multiply.
func natPow(x nat, e uint64) nat {
	if e == 0 {
		return nat{1}
	}
	if x.isPow2() {
		return natShl(nat{1}, uint(uint64(x.bitLen()-1)*e))
	}
	z := x.clone()
	for i := 62 - bits.LeadingZeros64(e); i >= 0; i-- {
		z = natSqr(z)
		if e&(1<<uint(i)) != 0 {
			z = natMul(z, x)
		}
	}
	return z
}
