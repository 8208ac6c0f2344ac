package einteger

import (
	"math/bits"
)

// ─────────────────────────────────────────────────────────────────────────────
// GCD Engine
// ─────────────────────────────────────────────────────────────────────────────

// GcdAlgorithm selects the GCD algorithm.
type GcdAlgorithm int

const (
	// GcdAuto picks by operand size.
	GcdAuto GcdAlgorithm = iota
	// GcdEuclid repeats remainder steps.
	GcdEuclid
	// GcdBinary is Stein's algorithm on whole magnitudes.
	GcdBinary
	// GcdLehmer simulates Euclid on leading bits.
	GcdLehmer
	// GcdHalf is Möller's subquadratic half-GCD.
	GcdHalf
)

var gcdAlgorithmNames = [...]string{"auto", "euclid", "binary", "lehmer", "halfgcd"}

func (a GcdAlgorithm) String() string {
	if int(a) < len(gcdAlgorithmNames) {
		return gcdAlgorithmNames[a]
	}
	return "unknown"
}

// natGcd returns gcd(a, b) of two normalized magnitudes.
func natGcd(a, b nat, alg GcdAlgorithm) nat {
	if len(a) == 0 {
		return b.clone()
	}
	if len(b) == 0 {
		return a.clone()
	}
	switch alg {
	case GcdEuclid:
		return gcdEuclid(a, b)
	case GcdBinary:
		return gcdBinaryNat(a, b)
	case GcdLehmer:
		return gcdLehmer(a, b)
	case GcdHalf:
		return gcdSubquadraticCutoff(a, b, 4)
	}
	if a.fitsUint64() && b.fitsUint64() {
		return natFromUint64(binaryGCD(a.low64(), b.low64()))
	}
	if max(len(a), len(b)) <= thresholds().GcdSubquadratic {
		return gcdLehmer(a, b)
	}
	return gcdSubquadratic(a, b)
}

// binaryGCD is Stein's algorithm: the shared power of two is set aside,
// then odd values are reduced by shift and subtract.
func binaryGCD(a, b uint64) uint64 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	shift := bits.TrailingZeros64(a | b)
	a >>= bits.TrailingZeros64(a)
	for b != 0 {
		b >>= bits.TrailingZeros64(b)
		if a > b {
			a, b = b, a
		}
		b -= a
	}
	return a << shift
}

// gcdBinaryNat runs Stein's algorithm on full magnitudes.
func gcdBinaryNat(a, b nat) nat {
	za, zb := a.trailingZeroBits(), b.trailingZeroBits()
	shift := min(za, zb)
	a = natShr(a, uint(za))
	b = natShr(b, uint(zb))
	for len(b) != 0 {
		if a.fitsUint64() && b.fitsUint64() {
			a = natFromUint64(binaryGCD(a.low64(), b.low64()))
			break
		}
		if a.cmp(b) > 0 {
			a, b = b, a
		}
		b = natSub(b, a)
		b = natShr(b, uint(b.trailingZeroBits()))
	}
	return natShl(a, uint(shift))
}

// gcdEuclid repeats a, b = b, a mod b.
func gcdEuclid(a, b nat) nat {
	for len(b) != 0 {
		if a.fitsUint64() && b.fitsUint64() {
			return natFromUint64(binaryGCD(a.low64(), b.low64()))
		}
		a, b = b, natMod(a, b)
	}
	return a.clone()
}

// ─────────────────────────────────────────────────────────────────────────────
// Lehmer
// ─────────────────────────────────────────────────────────────────────────────

// lehmerBits is the width of the leading-bit surrogates. Cofactors stay
// below 2^lehmerBits, so every product below fits an int64.
const lehmerBits = 48

// gcdLehmer is Knuth's Algorithm L. The top lehmerBits of a and b drive a
// single-precision Euclid run whose quotients are accepted only while both
// cofactor bounds agree; the accumulated matrix is then applied to the
// full operands. When no quotient can be trusted a full remainder step is
// taken instead.
func gcdLehmer(a, b nat) nat {
	if a.cmp(b) < 0 {
		a, b = b, a
	}
	for len(b) != 0 {
		if a.fitsUint64() {
			return natFromUint64(binaryGCD(a.low64(), b.low64()))
		}
		A, B, C, D := lehmerSimulate(a, b)
		if B == 0 {
			a, b = b, natMod(a, b)
			continue
		}
		na, okA := lehmerCombine(a, b, A, B)
		nb, okB := lehmerCombine(a, b, C, D)
		if !okA || !okB {
			reportInvariant("lehmer", "negative cofactor combination")
			a, b = b, natMod(a, b)
			continue
		}
		a, b = na, nb
		if a.cmp(b) < 0 {
			a, b = b, a
		}
	}
	return a
}

// lehmerSimulate runs Euclid on the leading bits of a >= b and returns the
// cofactor matrix [A B; C D]. B == 0 means no step was certain.
func lehmerSimulate(a, b nat) (A, B, C, D int64) {
	shift := a.bitLen() - lehmerBits
	if shift < 0 {
		shift = 0
	}
	x := int64(natShr(a, uint(shift)).low64())
	y := int64(natShr(b, uint(shift)).low64())
	A, B, C, D = 1, 0, 0, 1
	for {
		if y+C <= 0 || y+D <= 0 || x+A < 0 || x+B < 0 {
			break
		}
		q := (x + A) / (y + C)
		if q != (x+B)/(y+D) {
			break
		}
		A, C = C, A-q*C
		B, D = D, B-q*D
		x, y = y, x-q*y
	}
	return
}

// lehmerCombine returns p·a + q·b. ok is false when the combination would
// be negative, which a correct cofactor pair never produces.
func lehmerCombine(a, b nat, p, q int64) (nat, bool) {
	var pos, neg nat
	for _, t := range [...]struct {
		x nat
		c int64
	}{{a, p}, {b, q}} {
		if t.c == 0 {
			continue
		}
		prod := natMul(t.x, natFromUint64(absInt64(t.c)))
		if t.c > 0 {
			pos = natAdd(pos, prod)
		} else {
			neg = natAdd(neg, prod)
		}
	}
	if pos.cmp(neg) < 0 {
		return nil, false
	}
	return natSub(pos, neg), true
}

func absInt64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}
