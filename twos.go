package einteger

// ─────────────────────────────────────────────────────────────────────────────
// Two's-Complement View
// ─────────────────────────────────────────────────────────────────────────────

// toTwos returns the n-limb two's-complement encoding of a signed
// magnitude. n must exceed len(mag) so the sign bit has room; negative
// values are encoded as (^mag) + 1 across all n limbs.
func toTwos(mag nat, negative bool, n int) nat {
	z := make(nat, n)
	copy(z, mag)
	if negative {
		for i := range z {
			z[i] = ^z[i]
		}
		addVW(z, z, 1)
	}
	return z
}

// fromTwos decodes a two's-complement limb array whose top bit is the sign.
// z is consumed and may be overwritten.
func fromTwos(z nat) (mag nat, negative bool) {
	if len(z) == 0 || z[len(z)-1]&signBit == 0 {
		return z.norm(), false
	}
	for i := range z {
		z[i] = ^z[i]
	}
	addVW(z, z, 1)
	return z.norm(), true
}

// signLimb returns the limb that repeats forever above a two's-complement
// encoding: all ones for negative values, zero otherwise.
func signLimb(negative bool) uint16 {
	if negative {
		return wordMask
	}
	return 0
}
