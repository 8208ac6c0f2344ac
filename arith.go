package einteger

import "math/bits"

// Word-level kernels over 16-bit limbs. Every intermediate fits in a
// uint32, so none of these can overflow.
//
// Aliasing: z may be the same slice as x or y (identical start), but must
// not partially overlap them, unless noted otherwise.

const (
	wordBits = 16
	wordBase = 1 << wordBits
	wordMask = wordBase - 1
	signBit  = 1 << (wordBits - 1)
)

// addVV sets z = x + y over len(z) limbs and returns the carry.
// len(x) and len(y) must be at least len(z).
func addVV(z, x, y []uint16) uint16 {
	var c uint32
	for i := range z {
		s := uint32(x[i]) + uint32(y[i]) + c
		z[i] = uint16(s)
		c = s >> wordBits
	}
	return uint16(c)
}

// subVV sets z = x - y over len(z) limbs and returns the borrow.
func subVV(z, x, y []uint16) uint16 {
	var b uint32
	for i := range z {
		d := uint32(x[i]) - uint32(y[i]) - b
		z[i] = uint16(d)
		b = (d >> wordBits) & 1
	}
	return uint16(b)
}

// addVW sets z = x + y for a single limb y and returns the carry.
func addVW(z, x []uint16, y uint16) uint16 {
	c := uint32(y)
	for i := range z {
		if c == 0 {
			if &z[i] != &x[i] {
				copy(z[i:], x[i:len(z)])
			}
			return 0
		}
		s := uint32(x[i]) + c
		z[i] = uint16(s)
		c = s >> wordBits
	}
	return uint16(c)
}

// subVW sets z = x - y for a single limb y and returns the borrow.
func subVW(z, x []uint16, y uint16) uint16 {
	b := uint32(y)
	for i := range z {
		if b == 0 {
			if &z[i] != &x[i] {
				copy(z[i:], x[i:len(z)])
			}
			return 0
		}
		d := uint32(x[i]) - b
		z[i] = uint16(d)
		b = (d >> wordBits) & 1
	}
	return uint16(b)
}

// mulAddVWW sets z = x*y + r and returns the high limb.
func mulAddVWW(z, x []uint16, y, r uint16) uint16 {
	c := uint32(r)
	m := uint32(y)
	for i := range z {
		t := uint32(x[i])*m + c
		z[i] = uint16(t)
		c = t >> wordBits
	}
	return uint16(c)
}

// addMulVVW adds x*y to z in place and returns the carry limb.
// (2^16-1)^2 + 2*(2^16-1) = 2^32-1, so the sum fits.
func addMulVVW(z, x []uint16, y uint16) uint16 {
	var c uint32
	m := uint32(y)
	for i := range z {
		t := uint32(x[i])*m + uint32(z[i]) + c
		z[i] = uint16(t)
		c = t >> wordBits
	}
	return uint16(c)
}

// shlVU sets z = x << s for 0 <= s < 16 and returns the bits shifted out.
// It walks from the top limb down, so z may start at or above x.
func shlVU(z, x []uint16, s uint) uint16 {
	n := len(z)
	if n == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x[:n])
		return 0
	}
	ŝ := wordBits - s
	out := x[n-1] >> ŝ
	for i := n - 1; i > 0; i-- {
		z[i] = x[i]<<s | x[i-1]>>ŝ
	}
	z[0] = x[0] << s
	return out
}

// shrVU sets z = x >> s for 0 <= s < 16 and returns the bits shifted out,
// left-aligned in the returned limb. It walks upwards, so z may start at or
// below x.
func shrVU(z, x []uint16, s uint) uint16 {
	n := len(z)
	if n == 0 {
		return 0
	}
	if s == 0 {
		copy(z, x[:n])
		return 0
	}
	ŝ := wordBits - s
	out := x[0] << ŝ
	for i := 0; i < n-1; i++ {
		z[i] = x[i]>>s | x[i+1]<<ŝ
	}
	z[n-1] = x[n-1] >> s
	return out
}

// divWW returns the quotient and remainder of (u1<<16 | u0) / d.
// u1 must be less than d.
func divWW(u1, u0, d uint16) (q, r uint16) {
	u := uint32(u1)<<wordBits | uint32(u0)
	return uint16(u / uint32(d)), uint16(u % uint32(d))
}

// mulWW returns the 32-bit product x*y as two limbs.
func mulWW(x, y uint16) (hi, lo uint16) {
	p := uint32(x) * uint32(y)
	return uint16(p >> wordBits), uint16(p)
}

// divWVW divides (xn, x) by y from the top limb down, stores the quotient
// in z and returns the remainder. len(z) == len(x).
func divWVW(z []uint16, xn uint16, x []uint16, y uint16) uint16 {
	r := uint32(xn)
	d := uint32(y)
	for i := len(z) - 1; i >= 0; i-- {
		t := r<<wordBits | uint32(x[i])
		z[i] = uint16(t / d)
		r = t % d
	}
	return uint16(r)
}

// nlz returns the number of leading zero bits of x.
func nlz(x uint16) uint {
	return uint(bits.LeadingZeros16(x))
}
