package einteger

// ─────────────────────────────────────────────────────────────────────────────
// Toom-Cook Multiplication
// ─────────────────────────────────────────────────────────────────────────────

// Both variants split x and y into k pieces of b limbs, multiply the
// evaluations at 2k-1 points through the dispatcher, recover the
// coefficients of the product polynomial with exact small divisions and
// add them into z at multiples of b. Every coefficient is a sum of
// piece products, hence non-negative; only the values at negative points
// carry a sign. Pieces may be empty when the operands are short, which
// keeps forced invocations on small inputs valid.

// toomPieces splits x into k pieces of b limbs.
func toomPieces(x nat, k, b int) []nat {
	p := make([]nat, k)
	for i := range p {
		lo := i * b
		if lo >= len(x) {
			break
		}
		p[i] = x[lo:min(lo+b, len(x))].norm()
	}
	return p
}

// toomArena carves the evaluations and point products of one Toom call out
// of a single pooled buffer. Nothing taken from it outlives the call.
type toomArena struct {
	buf nat
	off int
}

func newToomArena(n int) toomArena {
	return toomArena{buf: acquireScratch(n)}
}

func (a *toomArena) release() {
	releaseScratch(a.buf)
	a.buf = nil
}

// take returns n zeroed limbs. A request past the end of the buffer is
// served from the heap.
func (a *toomArena) take(n int) nat {
	if a.off+n > len(a.buf) {
		return make(nat, n)
	}
	z := a.buf[a.off : a.off+n : a.off+n]
	a.off += n
	return z
}

// add returns x + y in arena space.
func (a *toomArena) add(x, y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := a.take(len(x) + 1)
	c := addVV(z[:len(y)], x, y)
	z[len(x)] = addVW(z[len(y):len(x)], x[len(y):], c)
	return z.norm()
}

// sub returns x - y with its sign in arena space.
func (a *toomArena) sub(x, y nat) snat {
	neg := x.cmp(y) < 0
	if neg {
		x, y = y, x
	}
	z := a.take(len(x))
	b := subVV(z[:len(y)], x, y)
	subVW(z[len(y):], x[len(y):], b)
	return snat{mag: z.norm(), neg: neg}
}

// shl returns x << s for s < 16 in arena space.
func (a *toomArena) shl(x nat, s uint) nat {
	z := a.take(len(x) + 1)
	z[len(x)] = shlVU(z[:len(x)], x, s)
	return z.norm()
}

// product multiplies two evaluations in arena space. For squaring the two
// sides are equal but held in distinct buffers, so the flag picks the
// squaring path explicitly.
func (a *toomArena) product(x, y nat, square bool) nat {
	z := a.take(len(x) + len(y))
	if square {
		sqrAny(z, x)
	} else {
		mulAny(z, x, y)
	}
	return z.norm()
}

func (a *toomArena) signedProduct(x, y snat, square bool) snat {
	p := a.product(x.mag, y.mag, square)
	return snat{mag: p, neg: len(p) > 0 && x.neg != y.neg}
}

// toomAccumulate writes Σ c[i]·B^(i·b) into z.
func toomAccumulate(z nat, c []nat, b int) {
	clear(z)
	for i, ci := range c {
		addAt(z, ci, i*b)
	}
}

// toom3 computes z = x*y, len(x) >= len(y), at points 0, 1, -1, 2 and ∞.
func toom3(z, x, y nat) {
	square := sameNat(x, y)
	b := (len(x) + 2) / 3
	xp := toomPieces(x, 3, b)
	yp := xp
	if !square {
		yp = toomPieces(y, 3, b)
	}

	ar := newToomArena(28*b + 64)
	defer ar.release()

	eval := func(p []nat) (v1 nat, vm1 snat, v2 nat) {
		e := ar.add(p[0], p[2])
		v1 = ar.add(e, p[1])
		vm1 = ar.sub(e, p[1])
		v2 = ar.add(ar.add(p[0], ar.shl(p[1], 1)), ar.shl(p[2], 2))
		return
	}
	x1, xm1, x2 := eval(xp)
	y1, ym1, y2 := x1, xm1, x2
	if !square {
		y1, ym1, y2 = eval(yp)
	}

	r0 := ar.product(xp[0], yp[0], square)
	r1 := ar.product(x1, y1, square)
	rm1 := ar.signedProduct(xm1, ym1, square)
	r2 := ar.product(x2, y2, square)
	rinf := ar.product(xp[2], yp[2], square)

	// r(1) + r(-1) = 2(c0 + c2 + c4), r(1) - r(-1) = 2(c1 + c3)
	e1 := natShr(addSigned(r1, rm1), 1)
	o1 := natShr(subSigned(r1, rm1), 1)
	c2 := natSub(natSub(e1, r0), rinf)
	// (r(2) - c0 - 4c2 - 16c4) / 2 = c1 + 4c3
	t := natShr(natSub(natSub(natSub(r2, r0), natShl(c2, 2)), natShl(rinf, 4)), 1)
	c3 := natDivWordExact(natSub(t, o1), 3)
	c1 := natSub(o1, c3)

	toomAccumulate(z, []nat{r0, c1, c2, c3, rinf}, b)
}

// toom4 computes z = x*y, len(x) >= len(y), at points 0, 1, -1, 2, -2,
// 1/2 and ∞. The value at 1/2 is scaled by 8 on each side, giving
// r(1/2) = Σ c_i·2^(6-i).
func toom4(z, x, y nat) {
	square := sameNat(x, y)
	b := (len(x) + 3) / 4
	xp := toomPieces(x, 4, b)
	yp := xp
	if !square {
		yp = toomPieces(y, 4, b)
	}

	type points struct {
		v1, v2, vh nat
		vm1, vm2   snat
	}
	ar := newToomArena(56*b + 128)
	defer ar.release()

	eval := func(p []nat) points {
		var r points
		even := ar.add(p[0], p[2])
		odd := ar.add(p[1], p[3])
		r.v1 = ar.add(even, odd)
		r.vm1 = ar.sub(even, odd)
		even2 := ar.add(p[0], ar.shl(p[2], 2))
		odd2 := ar.add(ar.shl(p[1], 1), ar.shl(p[3], 3))
		r.v2 = ar.add(even2, odd2)
		r.vm2 = ar.sub(even2, odd2)
		r.vh = ar.add(ar.add(ar.shl(p[0], 3), ar.shl(p[1], 2)), ar.add(ar.shl(p[2], 1), p[3]))
		return r
	}
	xe := eval(xp)
	ye := xe
	if !square {
		ye = eval(yp)
	}

	c0 := ar.product(xp[0], yp[0], square)
	c6 := ar.product(xp[3], yp[3], square)
	r1 := ar.product(xe.v1, ye.v1, square)
	rm1 := ar.signedProduct(xe.vm1, ye.vm1, square)
	r2 := ar.product(xe.v2, ye.v2, square)
	rm2 := ar.signedProduct(xe.vm2, ye.vm2, square)
	rh := ar.product(xe.vh, ye.vh, square)

	// even parts: e1 = c0+c2+c4+c6, e2 = c0+4c2+16c4+64c6
	// odd parts:  o1 = c1+c3+c5,    o2 = c1+4c3+16c5
	e1 := natShr(addSigned(r1, rm1), 1)
	o1 := natShr(subSigned(r1, rm1), 1)
	e2 := natShr(addSigned(r2, rm2), 1)
	o2 := natShr(subSigned(r2, rm2), 2)

	// a = c2 + c4, bb = c2 + 4c4
	a := natSub(natSub(e1, c0), c6)
	bb := natShr(natSub(natSub(e2, c0), natShl(c6, 6)), 2)
	c4 := natDivWordExact(natSub(bb, a), 3)
	c2 := natSub(a, c4)

	// w = 16c1 + 4c3 + c5
	w := natSub(rh, natShl(c0, 6))
	w = natSub(w, natShl(c2, 4))
	w = natSub(w, natShl(c4, 2))
	w = natShr(natSub(w, c6), 1)

	// s = c3 + 5c5, t = 4c3 + 5c5
	s := natDivWordExact(natSub(o2, o1), 3)
	t := natDivWordExact(natSub(natShl(o1, 4), w), 3)
	c3 := natDivWordExact(natSub(t, s), 3)
	c5 := natDivWordExact(natSub(s, c3), 5)
	c1 := natSub(natSub(o1, c3), c5)

	toomAccumulate(z, []nat{c0, c1, c2, c3, c4, c5, c6}, b)
}
