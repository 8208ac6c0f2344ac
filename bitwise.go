package einteger

import "math/bits"

// ─────────────────────────────────────────────────────────────────────────────
// Bitwise Logic
// ─────────────────────────────────────────────────────────────────────────────

// All combinators treat operands as infinite two's-complement bit strings.

type limbOp func(a, b uint16) uint16

// bitwise applies f limb by limb. Non-negative operands are combined
// directly on their magnitudes when f maps two zero limbs to zero; every
// other case goes through the two's-complement view, one limb wider than
// the longer operand so the sign limb is explicit.
func (x *EInteger) bitwise(op string, y *EInteger, f limbOp) *EInteger {
	mustNotBeNil(op, x, y)
	n := max(len(x.words), len(y.words))
	if !x.negative && !y.negative && f(0, 0) == 0 {
		z := make(nat, n)
		for i := range z {
			z[i] = f(limbAt(x.words, i), limbAt(y.words, i))
		}
		return newInt(z, false)
	}
	checkWordCount(op, int64(n)+1)
	tx := toTwos(x.words, x.negative, n+1)
	ty := toTwos(y.words, y.negative, n+1)
	for i := range tx {
		tx[i] = f(tx[i], ty[i])
	}
	return newInt(fromTwos(tx))
}

func limbAt(x nat, i int) uint16 {
	if i < len(x) {
		return x[i]
	}
	return 0
}

// And returns x & y.
func (x *EInteger) And(y *EInteger) *EInteger {
	return x.bitwise("And", y, func(a, b uint16) uint16 { return a & b })
}

// Or returns x | y.
func (x *EInteger) Or(y *EInteger) *EInteger {
	return x.bitwise("Or", y, func(a, b uint16) uint16 { return a | b })
}

// Xor returns x ^ y.
func (x *EInteger) Xor(y *EInteger) *EInteger {
	return x.bitwise("Xor", y, func(a, b uint16) uint16 { return a ^ b })
}

// AndNot returns x & ^y.
func (x *EInteger) AndNot(y *EInteger) *EInteger {
	return x.bitwise("AndNot", y, func(a, b uint16) uint16 { return a &^ b })
}

// OrNot returns x | ^y.
func (x *EInteger) OrNot(y *EInteger) *EInteger {
	return x.bitwise("OrNot", y, func(a, b uint16) uint16 { return a | ^b })
}

// Imp returns the material implication x → y, that is y | ^x.
func (x *EInteger) Imp(y *EInteger) *EInteger {
	return x.bitwise("Imp", y, func(a, b uint16) uint16 { return b | ^a })
}

// Eqv returns the equivalence x ^ ^y.
func (x *EInteger) Eqv(y *EInteger) *EInteger {
	return x.bitwise("Eqv", y, func(a, b uint16) uint16 { return a ^ ^b })
}

// Not returns ^x, which equals -x - 1.
func (x *EInteger) Not() *EInteger {
	mustNotBeNil("Not", x)
	if x.negative {
		return newInt(natSubWord(x.words, 1), false)
	}
	return newInt(natAddWord(x.words, 1), true)
}

// LowBits returns the low n bits of x as a non-negative value, i.e.
// x & (2^n - 1).
func (x *EInteger) LowBits(n int) (*EInteger, error) {
	const op = "LowBits"
	if x == nil {
		return nil, newError(KindNullReference, op, "nil receiver")
	}
	if n < 0 {
		return nil, newError(KindInvalidArgument, op, "negative bit count %d", n)
	}
	if n == 0 || len(x.words) == 0 {
		return Zero(), nil
	}
	limbs := (n + wordBits - 1) / wordBits
	if !x.negative {
		if n >= x.words.bitLen() {
			return x, nil
		}
		z := x.words[:limbs].clone()
		maskTop(z, n)
		return newInt(z, false), nil
	}
	if int64(limbs) > MaxWordCount {
		return nil, newError(KindResourceExhausted, op, "%d bits", n)
	}
	z := toTwos(x.words, true, max(limbs, len(x.words)+1))[:limbs]
	maskTop(z, n)
	return newInt(z, false), nil
}

// maskTop clears the bits of z at and above bit n.
func maskTop(z nat, n int) {
	if r := n % wordBits; r != 0 {
		z[len(z)-1] &= 1<<uint(r) - 1
	}
}

// TestBit reports whether bit i of the two's-complement form of x is set.
// Negative indices report false.
func (x *EInteger) TestBit(i int) bool {
	mustNotBeNil("TestBit", x)
	if i < 0 {
		return false
	}
	w := i / wordBits
	if w >= len(x.words) {
		return x.negative
	}
	limb := x.words[w]
	if x.negative {
		limb = toTwos(x.words, true, len(x.words)+1)[w]
	}
	return limb&(1<<uint(i%wordBits)) != 0
}

// LowestSetBit returns the index of the lowest one bit, or -1 for zero.
// The index is the same for x and -x.
func (x *EInteger) LowestSetBit() int {
	mustNotBeNil("LowestSetBit", x)
	if len(x.words) == 0 {
		return -1
	}
	return x.words.trailingZeroBits()
}

// PopCount returns the number of one bits in |x|.
func (x *EInteger) PopCount() int {
	mustNotBeNil("PopCount", x)
	n := 0
	for _, w := range x.words {
		n += bits.OnesCount16(w)
	}
	return n
}
