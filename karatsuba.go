package einteger

// ─────────────────────────────────────────────────────────────────────────────
// Karatsuba (same-size and asymmetric)
// ─────────────────────────────────────────────────────────────────────────────

// karatsuba computes z = x*y for len(x) == len(y) >= 2 using
// x*y = z2·B^2h + (z1 - z0 - z2)·B^h + z0 with z1 = (x0+x1)(y0+y1).
// z (2n limbs) holds z0 and z2 side by side; the middle term lives in
// pooled scratch that never escapes.
func karatsuba(z, x, y nat) {
	n := len(x)
	h := n >> 1
	hi := n - h
	x0, x1 := x[:h], x[h:]
	y0, y1 := y[:h], y[h:]

	mulAny(z[:2*h], x0, y0)
	mulAny(z[2*h:], x1, y1)

	sx := acquireScratch(hi + 1)
	defer releaseScratch(sx)
	sy := acquireScratch(hi + 1)
	defer releaseScratch(sy)
	halfSum(sx, x0, x1)
	halfSum(sy, y0, y1)

	p := acquireScratch(2*hi + 2)
	defer releaseScratch(p)
	mulAny(p, sx, sy)
	subAt(p, z[:2*h], 0)
	subAt(p, z[2*h:], 0)
	addAt(z, p, h)
}

// karatsubaSqr is karatsuba with x == y.
func karatsubaSqr(z, x nat) {
	n := len(x)
	h := n >> 1
	hi := n - h
	x0, x1 := x[:h], x[h:]

	sqrAny(z[:2*h], x0)
	sqrAny(z[2*h:], x1)

	sx := acquireScratch(hi + 1)
	defer releaseScratch(sx)
	halfSum(sx, x0, x1)

	p := acquireScratch(2*hi + 2)
	defer releaseScratch(p)
	sqrAny(p, sx)
	subAt(p, z[:2*h], 0)
	subAt(p, z[2*h:], 0)
	addAt(z, p, h)
}

// sqrAny is sqrInto that tolerates an empty operand.
func sqrAny(z, x nat) {
	if len(x) == 0 {
		clear(z)
		return
	}
	sqrInto(z, x)
}

// halfSum sets z = lo + hi where len(hi) >= len(lo) and len(z) == len(hi)+1.
func halfSum(z, lo, hi nat) {
	c := addVV(z[:len(lo)], lo, hi)
	c = addVW(z[len(lo):len(hi)], hi[len(lo):], c)
	z[len(hi)] = c
}

// mulAsymmetric computes z = x*y for len(x) > len(y) by cutting x into
// chunks of len(y) limbs and adding each chunk product at its offset.
// Chunk products go back through the dispatcher at matched sizes.
func mulAsymmetric(z, x, y nat) {
	m, n := len(x), len(y)
	clear(z)
	t := acquireScratch(2 * n)
	defer releaseScratch(t)
	for i := 0; i < m; i += n {
		chunk := x[i:min(i+n, m)]
		tt := t[:len(chunk)+n]
		mulAny(tt, chunk, y)
		addAt(z, tt, i)
	}
}
