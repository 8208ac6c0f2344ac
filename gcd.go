package einteger

// Gcd returns the greatest common divisor of |x| and |y|. Gcd(x, 0) is
// |x|; the result is never negative.
func (x *EInteger) Gcd(y *EInteger) *EInteger {
	return x.gcd("Gcd", y, GcdAuto)
}

// GcdUsing is Gcd with the algorithm forced. The result is identical to
// Gcd.
func (x *EInteger) GcdUsing(y *EInteger, alg GcdAlgorithm) *EInteger {
	return x.gcd("GcdUsing", y, alg)
}

func (x *EInteger) gcd(op string, y *EInteger, alg GcdAlgorithm) *EInteger {
	mustNotBeNil(op, x, y)
	switch {
	case len(x.words) == 0:
		return y.Abs()
	case len(y.words) == 0:
		return x.Abs()
	}
	return newInt(natGcd(x.words, y.words, alg), false)
}

// Lcm returns the least common multiple of |x| and |y|; zero if either
// is zero.
func (x *EInteger) Lcm(y *EInteger) *EInteger {
	mustNotBeNil("Lcm", x, y)
	if len(x.words) == 0 || len(y.words) == 0 {
		return Zero()
	}
	g := natGcd(x.words, y.words, GcdAuto)
	q, _ := natDivRem(x.words, g, DivAuto)
	checkWordCount("Lcm", int64(len(q))+int64(len(y.words)))
	return newInt(natMul(q, y.words), false)
}
