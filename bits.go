package einteger

import (
	"math"
	"math/bits"
)

// SignedBitLength returns the number of bits in the shortest two's-complement
// form of x, excluding the sign bit. It is 0 for both 0 and -1.
func (x *EInteger) SignedBitLength() int {
	mustNotBeNil("SignedBitLength", x)
	if !x.negative {
		return x.words.bitLen()
	}
	return natSubWord(x.words, 1).bitLen()
}

// UnsignedBitLength returns the bit length of |x|; 0 for zero.
func (x *EInteger) UnsignedBitLength() int {
	mustNotBeNil("UnsignedBitLength", x)
	return x.words.bitLen()
}

// CanFitInInt32 reports whether x is within the int32 range.
func (x *EInteger) CanFitInInt32() bool {
	return x.SignedBitLength() <= 31
}

// CanFitInInt64 reports whether x is within the int64 range.
func (x *EInteger) CanFitInInt64() bool {
	return x.SignedBitLength() <= 63
}

// DigitCount returns the number of decimal digits of |x|; 1 for zero.
func (x *EInteger) DigitCount() int {
	mustNotBeNil("DigitCount", x)
	if len(x.words) == 0 {
		return 1
	}
	if x.words.fitsUint64() {
		return decimalDigits64(x.words.low64())
	}
	// floor((bitLen-1)·log10 2) + 1 is a lower bound that is at most one
	// short; the loops also absorb rounding in the float estimate.
	bl := x.words.bitLen()
	est := int(float64(bl-1)*math.Log10(2)) + 1
	for est > 1 && x.words.cmp(natPow(nat{10}, uint64(est-1))) < 0 {
		est--
	}
	for x.words.cmp(natPow(nat{10}, uint64(est))) >= 0 {
		est++
	}
	return est
}

func decimalDigits64(v uint64) int {
	n := 1
	for v >= 10 {
		v /= 10
		n++
	}
	return n
}

// radixChunk describes the largest power of a radix that fits in a limb.
type radixChunk struct {
	digits int    // digits per chunk
	base   uint16 // radix^digits
}

// radixChunks is indexed by radix (2..36).
var radixChunks = func() [37]radixChunk {
	var t [37]radixChunk
	for r := 2; r <= 36; r++ {
		d, b := 0, 1
		for b*r < wordBase {
			b *= r
			d++
		}
		t[r] = radixChunk{digits: d, base: uint16(b)}
	}
	return t
}()

// radixLog2 returns log2(radix) for power-of-two radixes, 0 otherwise.
func radixLog2(radix int) uint {
	if radix&(radix-1) != 0 {
		return 0
	}
	return uint(bits.TrailingZeros(uint(radix)))
}

// radixPowers memoizes radix^k for one conversion. It lives for a single
// call and is never shared.
type radixPowers struct {
	radix int
	cache map[int]nat
}

func newRadixPowers(radix int) *radixPowers {
	return &radixPowers{radix: radix, cache: make(map[int]nat)}
}

func (p *radixPowers) pow(k int) nat {
	if v, ok := p.cache[k]; ok {
		return v
	}
	var v nat
	switch {
	case k == 0:
		v = nat{1}
	case k&1 == 0:
		v = natSqr(p.pow(k / 2))
	default:
		v = natMulWord(p.pow(k-1), uint16(p.radix))
	}
	p.cache[k] = v
	return v
}
