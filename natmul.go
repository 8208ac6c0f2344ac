package einteger

// ─────────────────────────────────────────────────────────────────────────────
// Multiplication Dispatcher
// ─────────────────────────────────────────────────────────────────────────────

// MulAlgorithm selects the top-level multiplication algorithm.
type MulAlgorithm int

const (
	// MulAuto chooses by operand size.
	MulAuto MulAlgorithm = iota
	// MulSchoolbook is the O(m·n) row-by-row product.
	MulSchoolbook
	// MulKaratsuba splits into halves (same size) or chunks (asymmetric).
	MulKaratsuba
	// MulToom3 splits into three parts and interpolates at five points.
	MulToom3
	// MulToom4 splits into four parts and interpolates at seven points.
	MulToom4
)

var mulAlgorithmNames = [...]string{"auto", "schoolbook", "karatsuba", "toom3", "toom4"}

func (a MulAlgorithm) String() string {
	if int(a) < len(mulAlgorithmNames) {
		return mulAlgorithmNames[a]
	}
	return "unknown"
}

// natMul returns x*y. When x and y share their limbs the squaring path is
// taken.
func natMul(x, y nat) nat {
	return natMulUsing(x, y, MulAuto)
}

func natMulUsing(x, y nat, alg MulAlgorithm) nat {
	if sameNat(x, y) {
		return natSqrUsing(x.norm(), alg)
	}
	x, y = x.norm(), y.norm()
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make(nat, len(x)+len(y))
	if alg == MulAuto {
		mulInto(z, x, y)
	} else {
		mulForced(z, x, y, alg)
	}
	return z.norm()
}

// natSqr returns x*x.
func natSqr(x nat) nat {
	return natSqrUsing(x.norm(), MulAuto)
}

func natSqrUsing(x nat, alg MulAlgorithm) nat {
	if len(x) == 0 {
		return nil
	}
	z := make(nat, 2*len(x))
	if alg == MulAuto {
		sqrInto(z, x)
	} else {
		sqrForced(z, x, alg)
	}
	return z.norm()
}

// mulAny computes z = x*y for operands in any order, including empty and
// identical ones. len(z) must equal len(x)+len(y) and z must not overlap
// either operand. z is fully overwritten.
func mulAny(z, x, y nat) {
	if len(x) == 0 || len(y) == 0 {
		clear(z)
		return
	}
	if sameNat(x, y) {
		sqrInto(z, x)
		return
	}
	if len(x) < len(y) {
		x, y = y, x
	}
	mulInto(z, x, y)
}

// minRecursiveMul is the smallest operand size the recursive algorithms
// accept from the dispatcher. Karatsuba on 3 limbs would multiply two
// 3-limb half sums and never shrink.
const minRecursiveMul = 4

// mulInto computes z = x*y with len(x) >= len(y) >= 1 and
// len(z) == len(x)+len(y). z must not overlap x or y.
func mulInto(z, x, y nat) {
	m, n := len(x), len(y)
	th := thresholds()
	switch {
	case n == 1:
		z[m] = mulAddVWW(z[:m], x, y[0], 0)
	case m == n && m == 2:
		mulBaseline2(z, x, y)
	case m == n && m == 4:
		mulBaseline4(z, x, y)
	case m == n && m == 8:
		mulBaseline8(z, x, y)
	case m <= max(th.MultRecursion, minRecursiveMul-1) || n <= th.MultRecursion/2:
		mulSchoolbook(z, x, y)
	case m >= 2*n:
		mulAsymmetric(z, x, y)
	case n >= th.Toom4:
		toom4(z, x, y)
	case n >= th.Toom3:
		toom3(z, x, y)
	case m == n:
		karatsuba(z, x, y)
	default:
		mulAsymmetric(z, x, y)
	}
}

// mulForced runs the requested algorithm at the top level only.
func mulForced(z, x, y nat, alg MulAlgorithm) {
	switch alg {
	case MulSchoolbook:
		mulSchoolbook(z, x, y)
	case MulKaratsuba:
		if len(x) == len(y) && len(x) >= 2 {
			karatsuba(z, x, y)
		} else if len(y) > 1 {
			mulAsymmetric(z, x, y)
		} else {
			mulSchoolbook(z, x, y)
		}
	case MulToom3:
		toom3(z, x, y)
	case MulToom4:
		toom4(z, x, y)
	default:
		mulInto(z, x, y)
	}
}

// sqrInto computes z = x*x with len(z) == 2*len(x). z must not overlap x.
func sqrInto(z, x nat) {
	n := len(x)
	th := thresholds()
	switch {
	case n == 1:
		z[1], z[0] = mulWW(x[0], x[0])
	case n == 2 || n == 4 || n == 8:
		sqrBaseline(z, x)
	case n <= max(th.MultRecursion, minRecursiveMul-1):
		sqrSchoolbook(z, x)
	case n >= th.Toom4:
		toom4(z, x, x)
	case n >= th.Toom3:
		toom3(z, x, x)
	default:
		karatsubaSqr(z, x)
	}
}

func sqrForced(z, x nat, alg MulAlgorithm) {
	switch alg {
	case MulSchoolbook:
		sqrSchoolbook(z, x)
	case MulKaratsuba:
		if len(x) >= 2 {
			karatsubaSqr(z, x)
		} else {
			sqrSchoolbook(z, x)
		}
	case MulToom3:
		toom3(z, x, x)
	case MulToom4:
		toom4(z, x, x)
	default:
		sqrInto(z, x)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Schoolbook
// ─────────────────────────────────────────────────────────────────────────────

// mulSchoolbook computes z = x*y row by row.
func mulSchoolbook(z, x, y nat) {
	clear(z)
	m := len(x)
	for j, d := range y {
		if d != 0 {
			z[m+j] = addMulVVW(z[j:j+m], x, d)
		}
	}
}

// sqrSchoolbook accumulates the off-diagonal triangle once, doubles it and
// adds the diagonal squares.
func sqrSchoolbook(z, x nat) {
	n := len(x)
	clear(z)
	for i := 0; i < n-1; i++ {
		if x[i] != 0 {
			z[n+i] = addMulVVW(z[2*i+1:n+i], x[i+1:], x[i])
		}
	}
	shlVU(z, z, 1)
	diag := acquireScratch(2 * n)
	defer releaseScratch(diag)
	for i, d := range x {
		diag[2*i+1], diag[2*i] = mulWW(d, d)
	}
	addVV(z, z, diag)
}

// ─────────────────────────────────────────────────────────────────────────────
// Baseline Kernels
// ─────────────────────────────────────────────────────────────────────────────

// The baseline kernels accumulate each result column in a uint64, so a
// column of up to 8 products of 32 bits plus the incoming carry cannot
// overflow.

func mulBaseline2(z, x, y nat) {
	x0, x1 := uint64(x[0]), uint64(x[1])
	y0, y1 := uint64(y[0]), uint64(y[1])
	c := x0 * y0
	z[0] = uint16(c)
	c = c>>wordBits + x0*y1 + x1*y0
	z[1] = uint16(c)
	c = c>>wordBits + x1*y1
	z[2] = uint16(c)
	z[3] = uint16(c >> wordBits)
}

func mulBaseline4(z, x, y nat) {
	x0, x1, x2, x3 := uint64(x[0]), uint64(x[1]), uint64(x[2]), uint64(x[3])
	y0, y1, y2, y3 := uint64(y[0]), uint64(y[1]), uint64(y[2]), uint64(y[3])
	c := x0 * y0
	z[0] = uint16(c)
	c = c>>wordBits + x0*y1 + x1*y0
	z[1] = uint16(c)
	c = c>>wordBits + x0*y2 + x1*y1 + x2*y0
	z[2] = uint16(c)
	c = c>>wordBits + x0*y3 + x1*y2 + x2*y1 + x3*y0
	z[3] = uint16(c)
	c = c>>wordBits + x1*y3 + x2*y2 + x3*y1
	z[4] = uint16(c)
	c = c>>wordBits + x2*y3 + x3*y2
	z[5] = uint16(c)
	c = c>>wordBits + x3*y3
	z[6] = uint16(c)
	z[7] = uint16(c >> wordBits)
}

func mulBaseline8(z, x, y nat) {
	xa := (*[8]uint16)(x)
	ya := (*[8]uint16)(y)
	za := (*[16]uint16)(z)
	var c uint64
	for k := 0; k < 15; k++ {
		lo, hi := max(0, k-7), min(k, 7)
		for i := lo; i <= hi; i++ {
			c += uint64(xa[i]) * uint64(ya[k-i])
		}
		za[k] = uint16(c)
		c >>= wordBits
	}
	za[15] = uint16(c)
}

// sqrBaseline squares 2, 4 or 8 limbs column by column, doubling the
// off-diagonal products.
func sqrBaseline(z, x nat) {
	n := len(x)
	var c uint64
	for k := 0; k < 2*n-1; k++ {
		lo, hi := max(0, k-n+1), min(k, n-1)
		var col uint64
		for i, j := lo, hi; i < j; i, j = i+1, j-1 {
			col += uint64(x[i]) * uint64(x[j])
		}
		c += col << 1
		if k&1 == 0 {
			d := uint64(x[k/2])
			c += d * d
		}
		z[k] = uint16(c)
		c >>= wordBits
	}
	z[2*n-1] = uint16(c)
}
