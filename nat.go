package einteger

import "math/bits"

// nat is an unsigned magnitude in little-endian 16-bit limbs. Functions in
// this file return freshly allocated, normalized results unless their name
// says otherwise; arguments are never modified.
type nat []uint16

// norm drops most-significant zero limbs.
func (x nat) norm() nat {
	i := len(x)
	for i > 0 && x[i-1] == 0 {
		i--
	}
	return x[:i]
}

func natFromUint64(v uint64) nat {
	if v == 0 {
		return nil
	}
	z := make(nat, 0, 4)
	for v != 0 {
		z = append(z, uint16(v))
		v >>= wordBits
	}
	return z
}

// low64 returns the low 64 bits of x.
func (x nat) low64() uint64 {
	var v uint64
	for i := min(len(x), 4) - 1; i >= 0; i-- {
		v = v<<wordBits | uint64(x[i])
	}
	return v
}

// fitsUint64 reports whether the normalized x fits in 64 bits.
func (x nat) fitsUint64() bool { return len(x) <= 4 }

func (x nat) bitLen() int {
	if len(x) == 0 {
		return 0
	}
	return (len(x)-1)*wordBits + bits.Len16(x[len(x)-1])
}

// trailingZeroBits returns the number of low zero bits; 0 for x == 0.
func (x nat) trailingZeroBits() int {
	for i, w := range x {
		if w != 0 {
			return i*wordBits + bits.TrailingZeros16(w)
		}
	}
	return 0
}

func (x nat) isPow2() bool {
	if len(x) == 0 {
		return false
	}
	top := x[len(x)-1]
	if top&(top-1) != 0 {
		return false
	}
	for _, w := range x[:len(x)-1] {
		if w != 0 {
			return false
		}
	}
	return true
}

// cmp compares two normalized magnitudes.
func (x nat) cmp(y nat) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func (x nat) clone() nat {
	if len(x) == 0 {
		return nil
	}
	z := make(nat, len(x))
	copy(z, x)
	return z
}

// sameNat reports whether x and y share the same limbs in memory.
func sameNat(x, y nat) bool {
	return len(x) == len(y) && (len(x) == 0 || &x[0] == &y[0])
}

// ─────────────────────────────────────────────────────────────────────────────
// Ragged add / subtract
// ─────────────────────────────────────────────────────────────────────────────

// natAdd returns x + y.
func natAdd(x, y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(y) == 0 {
		return x.clone().norm()
	}
	z := make(nat, len(x)+1)
	c := addVV(z[:len(y)], x, y)
	z[len(x)] = addVW(z[len(y):len(x)], x[len(y):], c)
	return z.norm()
}

// natSub returns x - y; x must be >= y.
func natSub(x, y nat) nat {
	y = y.norm()
	if len(y) == 0 {
		return x.clone().norm()
	}
	z := make(nat, len(x))
	b := subVV(z[:len(y)], x, y)
	b = subVW(z[len(y):], x[len(y):], b)
	if b != 0 {
		panic("einteger: natSub underflow")
	}
	return z.norm()
}

// natAddWord returns x + w.
func natAddWord(x nat, w uint16) nat {
	z := make(nat, len(x)+1)
	if len(x) == 0 {
		z[0] = w
		return z.norm()
	}
	z[len(x)] = addVW(z[:len(x)], x, w)
	return z.norm()
}

// natSubWord returns x - w; x must be >= w.
func natSubWord(x nat, w uint16) nat {
	if len(x) == 0 {
		return nil
	}
	z := make(nat, len(x))
	if subVW(z, x, w) != 0 {
		panic("einteger: natSubWord underflow")
	}
	return z.norm()
}

// addAt adds x into z starting at limb i and propagates the carry. The sum
// must fit in z.
func addAt(z, x nat, i int) {
	x = x.norm()
	n := len(x)
	if n == 0 {
		return
	}
	if c := addVV(z[i:i+n], z[i:], x); c != 0 {
		j := i + n
		if j >= len(z) || addVW(z[j:], z[j:], c) != 0 {
			panic("einteger: addAt overflow")
		}
	}
}

// subAt subtracts x from z starting at limb i and propagates the borrow.
// The difference must be non-negative.
func subAt(z, x nat, i int) {
	x = x.norm()
	n := len(x)
	if n == 0 {
		return
	}
	if b := subVV(z[i:i+n], z[i:], x); b != 0 {
		j := i + n
		if j >= len(z) || subVW(z[j:], z[j:], b) != 0 {
			panic("einteger: subAt underflow")
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Shifts and small multiples
// ─────────────────────────────────────────────────────────────────────────────

// natShl returns x << s.
func natShl(x nat, s uint) nat {
	if len(x) == 0 {
		return nil
	}
	w := int(s / wordBits)
	z := make(nat, len(x)+w+1)
	z[len(x)+w] = shlVU(z[w:len(x)+w], x, s%wordBits)
	return z.norm()
}

// natShr returns x >> s.
func natShr(x nat, s uint) nat {
	w := int(s / wordBits)
	if w >= len(x) {
		return nil
	}
	z := make(nat, len(x)-w)
	shrVU(z, x[w:], s%wordBits)
	return z.norm()
}

// natMulWord returns x * y.
func natMulWord(x nat, y uint16) nat {
	if len(x) == 0 || y == 0 {
		return nil
	}
	z := make(nat, len(x)+1)
	z[len(x)] = mulAddVWW(z[:len(x)], x, y, 0)
	return z.norm()
}

// natDivWordExact returns x / d, which must leave no remainder.
func natDivWordExact(x nat, d uint16) nat {
	if len(x) == 0 {
		return nil
	}
	z := make(nat, len(x))
	if divWVW(z, 0, x, d) != 0 {
		panic("einteger: inexact division in interpolation")
	}
	return z.norm()
}

// pow2 returns 2^s.
func pow2(s int) nat {
	z := make(nat, s/wordBits+1)
	z[s/wordBits] = 1 << uint(s%wordBits)
	return z
}

// greaterThanPow2 reports whether x > 2^s.
func greaterThanPow2(x nat, s int) bool {
	n := x.bitLen()
	if n != s+1 {
		return n > s+1
	}
	return !x.isPow2()
}

// ─────────────────────────────────────────────────────────────────────────────
// Signed magnitudes for Toom evaluation
// ─────────────────────────────────────────────────────────────────────────────

// snat is a signed magnitude used for evaluation at negative points.
type snat struct {
	mag nat
	neg bool
}

// addSigned returns x + s; the result must be non-negative.
func addSigned(x nat, s snat) nat {
	if s.neg {
		return natSub(x, s.mag)
	}
	return natAdd(x, s.mag)
}

// subSigned returns x - s; the result must be non-negative.
func subSigned(x nat, s snat) nat {
	if s.neg {
		return natAdd(x, s.mag)
	}
	return natSub(x, s.mag)
}
