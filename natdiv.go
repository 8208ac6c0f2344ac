package einteger

// ─────────────────────────────────────────────────────────────────────────────
// Division Engine
// ─────────────────────────────────────────────────────────────────────────────

// DivAlgorithm selects the long-division algorithm for multi-limb divisors.
type DivAlgorithm int

const (
	// DivAuto picks by divisor size.
	DivAuto DivAlgorithm = iota
	// DivSchoolbook is Knuth's Algorithm D.
	DivSchoolbook
	// DivRecursive is block-recursive Burnikel-Ziegler division.
	DivRecursive
)

var divAlgorithmNames = [...]string{"auto", "schoolbook", "recursive"}

func (a DivAlgorithm) String() string {
	if int(a) < len(divAlgorithmNames) {
		return divAlgorithmNames[a]
	}
	return "unknown"
}

// minRecursiveDivision is the smallest divisor the recursive step splits.
const minRecursiveDivision = 4

// natDivRem returns u/v and u%v for normalized u and v, v != 0.
func natDivRem(u, v nat, alg DivAlgorithm) (q, r nat) {
	if len(v) == 0 {
		panic("einteger: natDivRem by zero")
	}
	if u.cmp(v) < 0 {
		return nil, u.clone()
	}
	if len(v) == 1 {
		var rw uint16
		q, rw = natDivWord(u, v[0])
		return q, natFromUint64(uint64(rw))
	}
	return divLarge(u, v, alg)
}

// natMod returns u mod v.
func natMod(u, v nat) nat {
	_, r := natDivRem(u, v, DivAuto)
	return r
}

// natDivWord returns x/d and x%d for a single-limb divisor.
func natDivWord(x nat, d uint16) (nat, uint16) {
	switch {
	case d == 0:
		panic("einteger: natDivWord by zero")
	case len(x) == 0:
		return nil, 0
	case d == 1:
		return x.clone(), 0
	case d == 2:
		return natShr(x, 1), x[0] & 1
	case d == 10:
		q := make(nat, len(x))
		r := divTen(q, x)
		return q.norm(), r
	}
	q := make(nat, len(x))
	r := divWVW(q, 0, x, d)
	return q.norm(), r
}

// divTen sets z = x/10 and returns x%10, two limbs per step so the
// constant divisor is folded into multiplications.
func divTen(z, x nat) uint16 {
	var r uint32
	i := len(x) - 1
	if len(x)&1 == 1 {
		t := uint32(x[i])
		z[i] = uint16(t / 10)
		r = t % 10
		i--
	}
	for ; i > 0; i -= 2 {
		t := r<<wordBits | uint32(x[i])
		q1 := t / 10
		t = (t-q1*10)<<wordBits | uint32(x[i-1])
		q0 := t / 10
		z[i], z[i-1] = uint16(q1), uint16(q0)
		r = t - q0*10
	}
	return uint16(r)
}

// divLarge divides u by a divisor of at least two limbs. Both operands
// are scaled so the divisor's top bit is set; the scaled dividend gains a
// limb and is reduced in place to the scaled remainder.
func divLarge(u, v nat, alg DivAlgorithm) (q, r nat) {
	n := len(v)
	m := len(u) - n
	shift := nlz(v[n-1])

	vn := acquireScratch(n)
	defer releaseScratch(vn)
	shlVU(vn, v, shift)

	un := make(nat, len(u)+1)
	un[len(u)] = shlVU(un[:len(u)], u, shift)

	q = make(nat, m+1)
	useRecursive := alg == DivRecursive ||
		(alg == DivAuto && n >= thresholds().RecursiveDivision)
	switch {
	case useRecursive && n >= minRecursiveDivision:
		limit := thresholds().RecursiveDivision
		if alg == DivRecursive {
			limit = minRecursiveDivision
		}
		divRecursive(q, un, vn, limit)
	default:
		divBasic(q, un, vn)
	}

	shrVU(un, un, shift)
	return q.norm(), un.norm()
}

// divBasic is Knuth's Algorithm D. It stores ⌊u/v⌋ in q and leaves the
// remainder in u. v must be normalized with its top bit set and len(v) >= 2.
// q may be one limb shorter than len(u)-len(v)+1 when the caller knows the
// top quotient digit is zero.
func divBasic(q, u, v nat) {
	n := len(v)
	m := len(u) - n

	qhatv := acquireScratch(n + 1)
	defer releaseScratch(qhatv)

	vn1 := v[n-1]
	vn2 := v[n-2]
	for j := m; j >= 0; j-- {
		// 2-by-1 guess; the first step invents a leading zero for u.
		qhat := uint16(wordMask)
		var ujn uint16
		if j+n < len(u) {
			ujn = u[j+n]
		}
		if ujn != vn1 {
			var rhat uint16
			qhat, rhat = divWW(ujn, u[j+n-1], vn1)

			// Refine against the next divisor limb.
			x1, x2 := mulWW(qhat, vn2)
			ujn2 := u[j+n-2]
			for greaterThan(x1, x2, rhat, ujn2) {
				qhat--
				prev := rhat
				rhat += vn1
				if rhat < prev {
					break
				}
				x1, x2 = mulWW(qhat, vn2)
			}
		}

		qhatv[n] = mulAddVWW(qhatv[:n], v, qhat, 0)
		qhl := len(qhatv)
		if j+qhl > len(u) && qhatv[n] == 0 {
			qhl--
		}

		// The estimate is at most one too large; add v back if so.
		if subVV(u[j:j+qhl], u[j:], qhatv) != 0 {
			c := addVV(u[j:j+n], u[j:], v)
			if n < qhl {
				u[j+n] += c
			}
			qhat--
		}

		if j == m && m == len(q) && qhat == 0 {
			continue
		}
		q[j] = qhat
	}
}

func greaterThan(x1, x2, y1, y2 uint16) bool {
	return x1 > y1 || x1 == y1 && x2 > y2
}
