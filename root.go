package einteger

// Sqrt returns ⌊√x⌋. x must be non-negative.
func (x *EInteger) Sqrt() (*EInteger, error) {
	s, _, err := x.SqrtRem()
	return s, err
}

// SqrtRem returns s = ⌊√x⌋ and r = x - s². x must be non-negative.
func (x *EInteger) SqrtRem() (s, r *EInteger, err error) {
	const op = "Sqrt"
	if x == nil {
		return nil, nil, newError(KindNullReference, op, "nil receiver")
	}
	if x.negative {
		return nil, nil, newError(KindInvalidArgument, op, "negative operand")
	}
	sm := natRoot(x.words, 2)
	return newInt(sm, false), newInt(natSub(x.words, natSqr(sm)), false), nil
}

// Root returns the k-th root of x truncated toward zero. k must be
// positive; even roots need a non-negative x.
func (x *EInteger) Root(k int) (*EInteger, error) {
	const op = "Root"
	if x == nil {
		return nil, newError(KindNullReference, op, "nil receiver")
	}
	if k <= 0 {
		return nil, newError(KindInvalidArgument, op, "root degree %d", k)
	}
	if x.negative && k%2 == 0 {
		return nil, newError(KindInvalidArgument, op, "even root of a negative value")
	}
	return newInt(natRoot(x.words, k), x.negative), nil
}

// natRoot returns ⌊x^(1/k)⌋ by Newton iteration from an overestimate:
// z' = ((k-1)·z + x / z^(k-1)) / k, stopping once z stops decreasing.
func natRoot(x nat, k int) nat {
	if len(x) == 0 || k == 1 {
		return x.clone()
	}
	bl := x.bitLen()
	if k >= bl {
		return nat{1}
	}
	km1 := natFromUint64(uint64(k - 1))
	kn := natFromUint64(uint64(k))
	z := natShl(nat{1}, uint((bl+k-1)/k))
	for {
		zp := natPow(z, uint64(k-1))
		q, _ := natDivRem(x, zp, DivAuto)
		next, _ := natDivRem(natAdd(natMul(km1, z), q), kn, DivAuto)
		if next.cmp(z) >= 0 {
			return z
		}
		z = next
	}
}
