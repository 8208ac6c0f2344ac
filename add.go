package einteger

// Add returns x + y.
func (x *EInteger) Add(y *EInteger) *EInteger {
	mustNotBeNil("Add", x, y)
	if xv, ok := x.small(); ok {
		if yv, ok := y.small(); ok {
			return FromInt64(xv + yv)
		}
	}
	switch {
	case len(y.words) == 0:
		return x
	case len(x.words) == 0:
		return y
	}
	return signedSum("Add", x.words, x.negative, y.words, y.negative)
}

// Subtract returns x - y.
func (x *EInteger) Subtract(y *EInteger) *EInteger {
	mustNotBeNil("Subtract", x, y)
	if xv, ok := x.small(); ok {
		if yv, ok := y.small(); ok {
			return FromInt64(xv - yv)
		}
	}
	switch {
	case len(y.words) == 0:
		return x
	case len(x.words) == 0:
		return y.Negate()
	}
	return signedSum("Subtract", x.words, x.negative, y.words, !y.negative)
}

// Increment returns x + 1.
func (x *EInteger) Increment() *EInteger { return x.Add(One()) }

// Decrement returns x - 1.
func (x *EInteger) Decrement() *EInteger { return x.Subtract(One()) }

// signedSum adds two signed magnitudes. With equal signs the magnitudes
// are added; otherwise the smaller is subtracted from the larger and the
// result takes the larger one's sign.
func signedSum(op string, xm nat, xneg bool, ym nat, yneg bool) *EInteger {
	if xneg == yneg {
		checkWordCount(op, int64(max(len(xm), len(ym)))+1)
		return newInt(natAdd(xm, ym), xneg)
	}
	switch xm.cmp(ym) {
	case 0:
		return Zero()
	case 1:
		return newInt(natSub(xm, ym), xneg)
	default:
		return newInt(natSub(ym, xm), yneg)
	}
}
