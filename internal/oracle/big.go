package oracle

import (
	"math/big"
	"math/bits"

	"github.com/agbru/einteger"
)

func init() {
	Register("big", func() Backend { return BigBackend{} })
}

// BigBackend evaluates operations with math/big.
type BigBackend struct{}

func (BigBackend) Name() string { return "big" }

type bigFunc func(a []*big.Int) ([]*big.Int, error)

func bigOne(f func(z *big.Int, a []*big.Int) *big.Int) bigFunc {
	return func(a []*big.Int) ([]*big.Int, error) { return []*big.Int{f(new(big.Int), a)}, nil }
}

func bigInt(v int) *big.Int { return big.NewInt(int64(v)) }

// smallArg returns a as an int, or ErrDomain when it does not fit in 32 bits.
func smallArg(a *big.Int) (int, error) {
	if a.BitLen() > 31 {
		return 0, ErrDomain
	}
	return int(a.Int64()), nil
}

func mask(n int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(n))
	return m.Sub(m, big.NewInt(1))
}

var bigOps = map[string]bigFunc{
	"add": bigOne(func(z *big.Int, a []*big.Int) *big.Int { return z.Add(a[0], a[1]) }),
	"sub": bigOne(func(z *big.Int, a []*big.Int) *big.Int { return z.Sub(a[0], a[1]) }),
	"mul": bigOne(func(z *big.Int, a []*big.Int) *big.Int { return z.Mul(a[0], a[1]) }),
	"sqr": bigOne(func(z *big.Int, a []*big.Int) *big.Int { return z.Mul(a[0], a[0]) }),
	"div": func(a []*big.Int) ([]*big.Int, error) {
		if a[1].Sign() == 0 {
			return nil, ErrDomain
		}
		return []*big.Int{new(big.Int).Quo(a[0], a[1])}, nil
	},
	"rem": func(a []*big.Int) ([]*big.Int, error) {
		if a[1].Sign() == 0 {
			return nil, ErrDomain
		}
		return []*big.Int{new(big.Int).Rem(a[0], a[1])}, nil
	},
	"mod": func(a []*big.Int) ([]*big.Int, error) {
		if a[1].Sign() <= 0 {
			return nil, ErrDomain
		}
		return []*big.Int{new(big.Int).Mod(a[0], a[1])}, nil
	},
	"divrem": func(a []*big.Int) ([]*big.Int, error) {
		if a[1].Sign() == 0 {
			return nil, ErrDomain
		}
		q, r := new(big.Int).QuoRem(a[0], a[1], new(big.Int))
		return []*big.Int{q, r}, nil
	},
	"gcd": bigOne(func(z *big.Int, a []*big.Int) *big.Int {
		return z.GCD(nil, nil, new(big.Int).Abs(a[0]), new(big.Int).Abs(a[1]))
	}),
	"lcm": bigOne(func(z *big.Int, a []*big.Int) *big.Int {
		if a[0].Sign() == 0 || a[1].Sign() == 0 {
			return z
		}
		x, y := new(big.Int).Abs(a[0]), new(big.Int).Abs(a[1])
		g := new(big.Int).GCD(nil, nil, x, y)
		return z.Mul(x.Quo(x, g), y)
	}),
	"pow": func(a []*big.Int) ([]*big.Int, error) {
		if a[1].Sign() < 0 {
			return nil, ErrDomain
		}
		return []*big.Int{new(big.Int).Exp(a[0], a[1], nil)}, nil
	},
	"modpow": func(a []*big.Int) ([]*big.Int, error) {
		if a[1].Sign() < 0 || a[2].Sign() <= 0 {
			return nil, ErrDomain
		}
		base := new(big.Int).Mod(a[0], a[2])
		return []*big.Int{new(big.Int).Exp(base, a[1], a[2])}, nil
	},
	"sqrt": func(a []*big.Int) ([]*big.Int, error) {
		if a[0].Sign() < 0 {
			return nil, ErrDomain
		}
		return []*big.Int{new(big.Int).Sqrt(a[0])}, nil
	},
	"sqrtrem": func(a []*big.Int) ([]*big.Int, error) {
		if a[0].Sign() < 0 {
			return nil, ErrDomain
		}
		s := new(big.Int).Sqrt(a[0])
		r := new(big.Int).Sub(a[0], new(big.Int).Mul(s, s))
		return []*big.Int{s, r}, nil
	},
	"root": func(a []*big.Int) ([]*big.Int, error) {
		k, err := smallArg(a[1])
		if err != nil || k <= 0 || (a[0].Sign() < 0 && k%2 == 0) {
			return nil, ErrDomain
		}
		z := bigRoot(new(big.Int).Abs(a[0]), k)
		if a[0].Sign() < 0 {
			z.Neg(z)
		}
		return []*big.Int{z}, nil
	},
	"and":    bigOne(func(z *big.Int, a []*big.Int) *big.Int { return z.And(a[0], a[1]) }),
	"or":     bigOne(func(z *big.Int, a []*big.Int) *big.Int { return z.Or(a[0], a[1]) }),
	"xor":    bigOne(func(z *big.Int, a []*big.Int) *big.Int { return z.Xor(a[0], a[1]) }),
	"not":    bigOne(func(z *big.Int, a []*big.Int) *big.Int { return z.Not(a[0]) }),
	"andnot": bigOne(func(z *big.Int, a []*big.Int) *big.Int { return z.AndNot(a[0], a[1]) }),
	"ornot": bigOne(func(z *big.Int, a []*big.Int) *big.Int {
		return z.Or(a[0], new(big.Int).Not(a[1]))
	}),
	"imp": bigOne(func(z *big.Int, a []*big.Int) *big.Int {
		return z.Or(new(big.Int).Not(a[0]), a[1])
	}),
	"eqv": bigOne(func(z *big.Int, a []*big.Int) *big.Int {
		return z.Not(z.Xor(a[0], a[1]))
	}),
	"shl": shiftOp(func(z, x *big.Int, n int) *big.Int {
		if n < 0 {
			return z.Rsh(x, uint(-n))
		}
		return z.Lsh(x, uint(n))
	}),
	"shr": shiftOp(func(z, x *big.Int, n int) *big.Int {
		if n < 0 {
			return z.Lsh(x, uint(-n))
		}
		return z.Rsh(x, uint(n))
	}),
	"lowbits": func(a []*big.Int) ([]*big.Int, error) {
		n, err := smallArg(a[1])
		if err != nil || n < 0 {
			return nil, ErrDomain
		}
		return []*big.Int{new(big.Int).And(a[0], mask(n))}, nil
	},
	"testbit": func(a []*big.Int) ([]*big.Int, error) {
		n, err := smallArg(a[1])
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return []*big.Int{new(big.Int)}, nil
		}
		return []*big.Int{bigInt(int(a[0].Bit(n)))}, nil
	},
	"popcount": bigOne(func(z *big.Int, a []*big.Int) *big.Int {
		n := 0
		for _, w := range a[0].Bits() {
			n += bits.OnesCount(uint(w))
		}
		return z.SetInt64(int64(n))
	}),
	"bitlen": bigOne(func(z *big.Int, a []*big.Int) *big.Int { return z.SetInt64(int64(a[0].BitLen())) }),
	"digits": bigOne(func(z *big.Int, a []*big.Int) *big.Int {
		return z.SetInt64(int64(len(new(big.Int).Abs(a[0]).String())))
	}),
	"neg": bigOne(func(z *big.Int, a []*big.Int) *big.Int { return z.Neg(a[0]) }),
	"abs": bigOne(func(z *big.Int, a []*big.Int) *big.Int { return z.Abs(a[0]) }),
	"min": bigOne(func(z *big.Int, a []*big.Int) *big.Int {
		if a[0].Cmp(a[1]) <= 0 {
			return z.Set(a[0])
		}
		return z.Set(a[1])
	}),
	"max": bigOne(func(z *big.Int, a []*big.Int) *big.Int {
		if a[0].Cmp(a[1]) >= 0 {
			return z.Set(a[0])
		}
		return z.Set(a[1])
	}),
	"cmp": bigOne(func(z *big.Int, a []*big.Int) *big.Int { return z.SetInt64(int64(a[0].Cmp(a[1]))) }),
}

// bigRoot returns the floor of the k-th root of x >= 0 by bisection, which
// is slow but independent of the engine's Newton iteration.
func bigRoot(x *big.Int, k int) *big.Int {
	if x.Sign() == 0 || k == 1 {
		return new(big.Int).Set(x)
	}
	lo := big.NewInt(1)
	hi := new(big.Int).Lsh(big.NewInt(1), uint(x.BitLen()/k+1))
	kk := big.NewInt(int64(k))
	one := big.NewInt(1)
	for lo.Cmp(hi) < 0 {
		// mid = (lo + hi + 1) / 2
		mid := new(big.Int).Add(lo, hi)
		mid.Add(mid, one).Rsh(mid, 1)
		if new(big.Int).Exp(mid, kk, nil).Cmp(x) <= 0 {
			lo = mid
		} else {
			hi = mid.Sub(mid, one)
		}
	}
	return lo
}

func shiftOp(f func(z, x *big.Int, n int) *big.Int) bigFunc {
	return func(a []*big.Int) ([]*big.Int, error) {
		n, err := smallArg(new(big.Int).Abs(a[1]))
		if err != nil {
			return nil, err
		}
		if a[1].Sign() < 0 {
			n = -n
		}
		return []*big.Int{f(new(big.Int), a[0], n)}, nil
	}
}

func (BigBackend) Supports(op string) bool {
	_, ok := bigOps[op]
	return ok
}

func (BigBackend) Eval(op string, args []*einteger.EInteger) ([]*einteger.EInteger, error) {
	f, ok := bigOps[op]
	if !ok {
		return nil, ErrUnsupported
	}
	in := make([]*big.Int, len(args))
	for i, a := range args {
		in[i] = ToBig(a)
	}
	out, err := f(in)
	if err != nil {
		return nil, err
	}
	res := make([]*einteger.EInteger, len(out))
	for i, v := range out {
		res[i] = FromBig(v)
	}
	return res, nil
}
