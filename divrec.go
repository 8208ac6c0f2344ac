package einteger

// ─────────────────────────────────────────────────────────────────────────────
// Block-Recursive Division (Burnikel-Ziegler)
// ─────────────────────────────────────────────────────────────────────────────

// divRecursive stores ⌊u/v⌋ in z and leaves the remainder in u. v is
// normalized with its top bit set. Divisors shorter than limit fall back to
// divBasic.
//
// The divisor is treated as two wide digits of B = n/2 limbs. Each step
// divides three wide digits of u by v: a recursive 2-by-1 wide division on
// the top parts gives an estimate q̂ that is at most two too large, which is
// corrected by comparing q̂·v_low against the partial remainder.
func divRecursive(z, u, v nat, limit int) {
	clear(z)
	divRecursiveStep(z, u, v, limit)
}

// divRecursiveStep adds ⌊u/v⌋ to z and overwrites u with the remainder.
// u is a window into the caller's dividend and may carry leading zeros.
// Every level allocates its own q̂ buffer, so no scratch is shared across
// recursion.
func divRecursiveStep(z, u, v nat, limit int) {
	u = u.norm()
	v = v.norm()
	if len(u) == 0 {
		return
	}
	n := len(v)
	if n < limit {
		divBasic(z, u, v)
		return
	}
	m := len(u) - n
	if m < 0 {
		return
	}

	B := n / 2
	s := B - 1
	qhat := make(nat, B+1)

	j := m
	for j > B {
		// Divide u[j-B:j+n] (three wide digits) by v (two wide digits).
		uu := u[j-B:]
		clear(qhat)
		divRecursiveStep(qhat, uu[s:B+n], v[s:], limit)
		correctWideDigit(qhat, uu, v, s)
		addAt(z, qhat, j-B)
		j -= B
	}

	// Now u < v·B^B; the remaining low wide digit is computed the same way.
	clear(qhat)
	divRecursiveStep(qhat, u[s:], v[s:], limit)
	correctWideDigit(qhat, u, v, s)
	addAt(z, qhat, 0)
}

// correctWideDigit turns the 2-by-1 estimate q̂ (with its remainder already
// written into uu[s:]) into the 3-by-2 quotient digit: it subtracts
// q̂·v[:s] from uu, decrementing q̂ while the product is too large.
func correctWideDigit(qhat, uu, v nat, s int) {
	qn := qhat.norm()
	qhatv := make(nat, len(qn)+s+1)
	copy(qhatv, natMul(qn, v[:s]))

	for i := 0; i < 2 && qhatv.norm().cmp(uu.norm()) > 0; i++ {
		subVW(qhat, qhat, 1)
		c := subVV(qhatv[:s], qhatv[:s], v[:s])
		subVW(qhatv[s:], qhatv[s:], c)
		addAtMod(uu[s:], v[s:])
	}
	if qhatv.norm().cmp(uu.norm()) > 0 {
		panic("einteger: recursive division estimate off by more than two")
	}
	pv := qhatv.norm()
	if c := subVV(uu[:len(pv)], uu[:len(pv)], pv); c != 0 {
		subVW(uu[len(pv):], uu[len(pv):], c)
	}
}

// addAtMod adds x into z and drops any carry out of z. The window may be
// shorter than the true partial remainder; the matching borrow of the
// following subtraction cancels the dropped carry.
func addAtMod(z, x nat) {
	x = x.norm()
	n := min(len(x), len(z))
	if c := addVV(z[:n], z, x); c != 0 && n < len(z) {
		addVW(z[n:], z[n:], c)
	}
}
