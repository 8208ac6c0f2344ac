package einteger

// ShiftLeft returns x << k, i.e. x·2^k. A negative k shifts right.
func (x *EInteger) ShiftLeft(k int) *EInteger {
	mustNotBeNil("ShiftLeft", x)
	if k < 0 {
		if k == minInt {
			return x.shiftRight(maxInt).shiftRight(1)
		}
		return x.shiftRight(-k)
	}
	return x.shiftLeft(k)
}

// ShiftRight returns x >> k, rounding toward negative infinity as an
// arithmetic shift of the two's-complement form does. A negative k shifts
// left.
func (x *EInteger) ShiftRight(k int) *EInteger {
	mustNotBeNil("ShiftRight", x)
	if k < 0 {
		if k == minInt {
			panic(newError(KindResourceExhausted, "ShiftRight", "shift count %d", k))
		}
		return x.shiftLeft(-k)
	}
	return x.shiftRight(k)
}

const (
	maxInt = int(^uint(0) >> 1)
	minInt = -maxInt - 1
)

func (x *EInteger) shiftLeft(k int) *EInteger {
	if k == 0 || len(x.words) == 0 {
		return x
	}
	w := k / wordBits
	checkWordCount("ShiftLeft", int64(len(x.words))+int64(w)+1)
	if !x.negative {
		return newInt(natShl(x.words, uint(k)), false)
	}
	// Shift the two's-complement form; the extra limb keeps the sign bit
	// clear of the bits shifted in from the magnitude.
	t := toTwos(x.words, true, len(x.words)+1)
	z := make(nat, len(t)+w+1)
	z[len(t)+w] = shlVU(z[w:len(t)+w], t, uint(k%wordBits))
	// Sign-extend the bits above the shifted value.
	z[len(t)+w] |= signExtendAbove(k % wordBits)
	return newInt(fromTwos(z))
}

// signExtendAbove returns the mask of the top limb bits above a shift of
// s bits, which must be filled with the sign.
func signExtendAbove(s int) uint16 {
	return ^uint16(0) << uint(s)
}

func (x *EInteger) shiftRight(k int) *EInteger {
	if k == 0 || len(x.words) == 0 {
		return x
	}
	if !x.negative {
		return newInt(natShr(x.words, uint(k)), false)
	}
	n := len(x.words) + 1
	if k >= n*wordBits {
		return MinusOne()
	}
	t := toTwos(x.words, true, n)
	w := k / wordBits
	z := make(nat, n-w)
	shrVU(z, t[w:], uint(k%wordBits))
	// Refill the vacated top bits with the sign.
	if s := k % wordBits; s != 0 {
		z[len(z)-1] |= ^uint16(0) << uint(wordBits-s)
	}
	return newInt(fromTwos(z))
}
