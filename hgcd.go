package einteger

// ─────────────────────────────────────────────────────────────────────────────
// Half-GCD (Möller 2008)
// ─────────────────────────────────────────────────────────────────────────────

// hgcdBaseBits is the operand size below which hgcd runs SDiv steps
// directly instead of recursing.
const hgcdBaseBits = 640

// hgcdMatrix is a 2×2 matrix with non-negative entries and determinant 1,
// relating the input pair to the reduced pair by
// (a, b) = M·(α, β).
type hgcdMatrix struct {
	m00, m01, m10, m11 nat
}

func newIdentityMatrix() *hgcdMatrix {
	return &hgcdMatrix{m00: nat{1}, m11: nat{1}}
}

// mul returns m·n.
func (m *hgcdMatrix) mul(n *hgcdMatrix) *hgcdMatrix {
	return &hgcdMatrix{
		m00: natAdd(natMul(m.m00, n.m00), natMul(m.m01, n.m10)),
		m01: natAdd(natMul(m.m00, n.m01), natMul(m.m01, n.m11)),
		m10: natAdd(natMul(m.m10, n.m00), natMul(m.m11, n.m10)),
		m11: natAdd(natMul(m.m10, n.m01), natMul(m.m11, n.m11)),
	}
}

// applyInverse returns M⁻¹·(a, b) = (m11·a - m01·b, m00·b - m10·a).
// ok is false if either component would be negative.
func (m *hgcdMatrix) applyInverse(a, b nat) (alpha, beta nat, ok bool) {
	p, q := natMul(m.m11, a), natMul(m.m01, b)
	if p.cmp(q) < 0 {
		return nil, nil, false
	}
	r, t := natMul(m.m00, b), natMul(m.m10, a)
	if r.cmp(t) < 0 {
		return nil, nil, false
	}
	return natSub(p, q), natSub(r, t), true
}

// sdivStep performs one reduction of the larger of (a, b) by a multiple
// of the smaller, keeping both above 2^s. It reports false once
// |a - b| <= 2^s, where no further step with respect to s is possible.
// m is updated in place so that the original pair stays M·(a, b).
func sdivStep(m *hgcdMatrix, a, b nat, s int) (nat, nat, bool) {
	bound := natAddWord(pow2(s), 1)
	if a.cmp(b) >= 0 {
		if !greaterThanPow2(natSub(a, b), s) {
			return a, b, false
		}
		q, r := natDivRem(natSub(a, bound), b, DivAuto)
		a = natAdd(r, bound)
		m.m01 = natAdd(m.m01, natMul(q, m.m00))
		m.m11 = natAdd(m.m11, natMul(q, m.m10))
		return a, b, true
	}
	if !greaterThanPow2(natSub(b, a), s) {
		return a, b, false
	}
	q, r := natDivRem(natSub(b, bound), a, DivAuto)
	b = natAdd(r, bound)
	m.m00 = natAdd(m.m00, natMul(q, m.m01))
	m.m10 = natAdd(m.m10, natMul(q, m.m11))
	return a, b, true
}

// hgcd reduces (a, b) to (α, β) with both above 2^s, s = ⌊n/2⌋+1 for n the
// larger bit length, and |α - β| <= 2^s. It returns a nil matrix when no
// reduction is possible. The top halves are reduced recursively twice,
// with SDiv steps in between bringing the pair to about 3n/4 bits; each
// recursive matrix is applied to the full operands exactly and the
// remainder of the work is done with SDiv steps.
func hgcd(a, b nat) (*hgcdMatrix, nat, nat) {
	n := max(a.bitLen(), b.bitLen())
	s := n/2 + 1
	if !greaterThanPow2(a, s) || !greaterThanPow2(b, s) {
		return nil, a, b
	}
	if n <= 64 {
		return lhgcd(a.low64(), b.low64(), s)
	}

	m := newIdentityMatrix()
	alpha, beta := a, b
	changed := false

	if n > hgcdBaseBits {
		if m1, _, _ := hgcd(natShr(a, uint(s)), natShr(b, uint(s))); m1 != nil {
			if x, y, ok := m1.applyInverse(a, b); ok && greaterThanPow2(x, s) && greaterThanPow2(y, s) {
				m, alpha, beta, changed = m1, x, y, true
			} else {
				reportInvariant("hgcd", "first half reduction left the valid range")
			}
		}

		// The second recursion needs the pair at no more than about 3n/4
		// bits; SDiv steps make up for a weak first reduction.
		reducible := true
		for max(alpha.bitLen(), beta.bitLen()) > 3*n/4+1 {
			var stepped bool
			alpha, beta, stepped = sdivStep(m, alpha, beta, s)
			if !stepped {
				reducible = false
				break
			}
			changed = true
		}

		n2 := max(alpha.bitLen(), beta.bitLen())
		if p2 := 2*s - n2 + 1; reducible && p2 > 0 {
			if m2, _, _ := hgcd(natShr(alpha, uint(p2)), natShr(beta, uint(p2))); m2 != nil {
				if x, y, ok := m2.applyInverse(alpha, beta); ok && greaterThanPow2(x, s) && greaterThanPow2(y, s) {
					m, alpha, beta, changed = m.mul(m2), x, y, true
				} else {
					reportInvariant("hgcd", "second half reduction left the valid range")
				}
			}
		}
	}

	for {
		var stepped bool
		alpha, beta, stepped = sdivStep(m, alpha, beta, s)
		if !stepped {
			break
		}
		changed = true
	}
	if !changed {
		return nil, a, b
	}
	return m, alpha, beta
}

// lhgcd is hgcd for operands that fit in 64 bits. Matrix entries stay
// below 2^(64-s), so nothing overflows.
func lhgcd(a, b uint64, s int) (*hgcdMatrix, nat, nat) {
	lim := uint64(1) << uint(s)
	m00, m01, m10, m11 := uint64(1), uint64(0), uint64(0), uint64(1)
	steps := 0
	for {
		if a >= b {
			if a-b <= lim {
				break
			}
			q := (a - lim - 1) / b
			a -= q * b
			m01 += q * m00
			m11 += q * m10
		} else {
			if b-a <= lim {
				break
			}
			q := (b - lim - 1) / a
			b -= q * a
			m00 += q * m01
			m10 += q * m11
		}
		steps++
	}
	if steps == 0 {
		return nil, natFromUint64(a), natFromUint64(b)
	}
	m := &hgcdMatrix{
		m00: natFromUint64(m00),
		m01: natFromUint64(m01),
		m10: natFromUint64(m10),
		m11: natFromUint64(m11),
	}
	return m, natFromUint64(a), natFromUint64(b)
}

// gcdSubquadratic alternates half-GCD reductions with Euclid steps (taken
// when hgcd cannot reduce, typically because the operands differ greatly
// in size) and hands off to Lehmer once the larger operand has at most
// cutoff limbs.
func gcdSubquadratic(a, b nat) nat {
	return gcdSubquadraticCutoff(a, b, thresholds().GcdSubquadratic)
}

func gcdSubquadraticCutoff(a, b nat, cutoff int) nat {
	for {
		if a.cmp(b) < 0 {
			a, b = b, a
		}
		if len(b) == 0 {
			return a
		}
		if len(a) <= cutoff {
			return gcdLehmer(a, b)
		}
		m, x, y := hgcd(a, b)
		if m == nil {
			a, b = b, natMod(a, b)
			continue
		}
		a, b = x, y
	}
}
