package einteger

import "math"

// Divide returns x / d truncated toward zero.
func (x *EInteger) Divide(d *EInteger) (*EInteger, error) {
	q, _, err := x.divRem("Divide", d, DivAuto, true, false)
	return q, err
}

// Remainder returns x - d*(x/d). The result has the sign of x.
func (x *EInteger) Remainder(d *EInteger) (*EInteger, error) {
	_, r, err := x.divRem("Remainder", d, DivAuto, false, true)
	return r, err
}

// DivRem returns the truncated quotient and the remainder, satisfying
// x == q*d + r with |r| < |d|.
func (x *EInteger) DivRem(d *EInteger) (q, r *EInteger, err error) {
	return x.divRem("DivRem", d, DivAuto, true, true)
}

// DivideUsing is DivRem with the long-division algorithm forced. The
// native and single-limb fast paths are skipped so that alg always runs
// for divisors of two or more limbs.
func (x *EInteger) DivideUsing(d *EInteger, alg DivAlgorithm) (q, r *EInteger, err error) {
	return x.divRem("DivideUsing", d, alg, true, true)
}

func (x *EInteger) divRem(op string, d *EInteger, alg DivAlgorithm, wantQ, wantR bool) (*EInteger, *EInteger, error) {
	if x == nil || d == nil {
		return nil, nil, newError(KindNullReference, op, "nil operand")
	}
	if len(d.words) == 0 {
		return nil, nil, newError(KindDivideByZero, op, "")
	}
	if alg == DivAuto {
		// MinInt64 / -1 overflows natively and takes the general path.
		if xv, ok := x.int64(); ok {
			if dv, ok := d.int64(); ok && !(xv == math.MinInt64 && dv == -1) {
				return FromInt64(xv / dv), FromInt64(xv % dv), nil
			}
		}
	}
	if x.words.cmp(d.words) < 0 {
		return Zero(), x, nil
	}
	qm, rm := natDivRem(x.words, d.words, alg)
	var q, r *EInteger
	if wantQ {
		q = newInt(qm, x.negative != d.negative)
	}
	if wantR {
		r = newInt(rm, x.negative)
	}
	return q, r, nil
}

// int64 returns x when it fits in an int64.
func (x *EInteger) int64() (int64, bool) {
	if !x.CanFitInInt64() {
		return 0, false
	}
	return x.ToInt64Unchecked(), true
}

// Mod returns x modulo m in [0, m). m must be positive.
func (x *EInteger) Mod(m *EInteger) (*EInteger, error) {
	const op = "Mod"
	if x == nil || m == nil {
		return nil, newError(KindNullReference, op, "nil operand")
	}
	if err := checkModulus(op, m); err != nil {
		return nil, err
	}
	_, r, err := x.divRem(op, m, DivAuto, false, true)
	if err != nil {
		return nil, err
	}
	if r.negative {
		r = r.Add(m)
	}
	return r, nil
}

func checkModulus(op string, m *EInteger) error {
	if len(m.words) == 0 {
		return newError(KindDivideByZero, op, "zero modulus")
	}
	if m.negative {
		return newError(KindInvalidArgument, op, "negative modulus")
	}
	return nil
}

// ModPow returns x**e mod m in [0, m). e must be non-negative and m
// positive.
func (x *EInteger) ModPow(e, m *EInteger) (*EInteger, error) {
	const op = "ModPow"
	if x == nil || e == nil || m == nil {
		return nil, newError(KindNullReference, op, "nil operand")
	}
	if e.negative {
		return nil, newError(KindInvalidArgument, op, "negative exponent")
	}
	if err := checkModulus(op, m); err != nil {
		return nil, err
	}
	if isOne(m.words) {
		return Zero(), nil
	}
	base, err := x.Mod(m)
	if err != nil {
		return nil, err
	}
	z := nat{1}
	b := base.words
	for i := e.words.bitLen() - 1; i >= 0; i-- {
		z = natMod(natSqr(z), m.words)
		if e.words[i/wordBits]&(1<<uint(i%wordBits)) != 0 {
			z = natMod(natMul(z, b), m.words)
		}
	}
	return newInt(z, false), nil
}
