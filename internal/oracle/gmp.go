//go:build gmp

package oracle

import (
	"math/big"

	"github.com/agbru/einteger"
	"github.com/ncw/gmp"
)

func init() {
	Register("gmp", func() Backend { return GMPBackend{} })
}

// GMPBackend evaluates the arithmetic core with libgmp. Values cross the
// cgo boundary as hexadecimal strings, which keeps the conversion
// independent of both the engine's and math/big's byte codecs.
type GMPBackend struct{}

func (GMPBackend) Name() string { return "gmp" }

type gmpFunc func(a []*gmp.Int) ([]*gmp.Int, error)

func gmpOne(f func(z *gmp.Int, a []*gmp.Int) *gmp.Int) gmpFunc {
	return func(a []*gmp.Int) ([]*gmp.Int, error) { return []*gmp.Int{f(gmp.NewInt(0), a)}, nil }
}

func nonZeroDivisor(f func(z *gmp.Int, a []*gmp.Int) *gmp.Int) gmpFunc {
	return func(a []*gmp.Int) ([]*gmp.Int, error) {
		if a[1].Sign() == 0 {
			return nil, ErrDomain
		}
		return []*gmp.Int{f(gmp.NewInt(0), a)}, nil
	}
}

var gmpOps = map[string]gmpFunc{
	"add": gmpOne(func(z *gmp.Int, a []*gmp.Int) *gmp.Int { return z.Add(a[0], a[1]) }),
	"sub": gmpOne(func(z *gmp.Int, a []*gmp.Int) *gmp.Int { return z.Sub(a[0], a[1]) }),
	"mul": gmpOne(func(z *gmp.Int, a []*gmp.Int) *gmp.Int { return z.Mul(a[0], a[1]) }),
	"sqr": gmpOne(func(z *gmp.Int, a []*gmp.Int) *gmp.Int { return z.Mul(a[0], a[0]) }),
	"div": nonZeroDivisor(func(z *gmp.Int, a []*gmp.Int) *gmp.Int { return z.Quo(a[0], a[1]) }),
	"rem": nonZeroDivisor(func(z *gmp.Int, a []*gmp.Int) *gmp.Int { return z.Rem(a[0], a[1]) }),
	"divrem": func(a []*gmp.Int) ([]*gmp.Int, error) {
		if a[1].Sign() == 0 {
			return nil, ErrDomain
		}
		q, r := gmp.NewInt(0), gmp.NewInt(0)
		q.QuoRem(a[0], a[1], r)
		return []*gmp.Int{q, r}, nil
	},
	"mod": func(a []*gmp.Int) ([]*gmp.Int, error) {
		if a[1].Sign() <= 0 {
			return nil, ErrDomain
		}
		return []*gmp.Int{gmp.NewInt(0).Mod(a[0], a[1])}, nil
	},
	"gcd": gmpOne(func(z *gmp.Int, a []*gmp.Int) *gmp.Int {
		return z.GCD(nil, nil, gmp.NewInt(0).Abs(a[0]), gmp.NewInt(0).Abs(a[1]))
	}),
	"modpow": func(a []*gmp.Int) ([]*gmp.Int, error) {
		if a[1].Sign() < 0 || a[2].Sign() <= 0 {
			return nil, ErrDomain
		}
		base := gmp.NewInt(0).Mod(a[0], a[2])
		return []*gmp.Int{gmp.NewInt(0).Exp(base, a[1], a[2])}, nil
	},
	"neg": gmpOne(func(z *gmp.Int, a []*gmp.Int) *gmp.Int { return z.Neg(a[0]) }),
	"abs": gmpOne(func(z *gmp.Int, a []*gmp.Int) *gmp.Int { return z.Abs(a[0]) }),
	"cmp": gmpOne(func(z *gmp.Int, a []*gmp.Int) *gmp.Int { return z.SetInt64(int64(a[0].Cmp(a[1]))) }),
}

func (GMPBackend) Supports(op string) bool {
	_, ok := gmpOps[op]
	return ok
}

func (GMPBackend) Eval(op string, args []*einteger.EInteger) ([]*einteger.EInteger, error) {
	f, ok := gmpOps[op]
	if !ok {
		return nil, ErrUnsupported
	}
	in := make([]*gmp.Int, len(args))
	for i, a := range args {
		in[i] = toGMP(a)
	}
	out, err := f(in)
	if err != nil {
		return nil, err
	}
	res := make([]*einteger.EInteger, len(out))
	for i, v := range out {
		res[i] = fromGMP(v)
	}
	return res, nil
}

func toGMP(x *einteger.EInteger) *gmp.Int {
	s, err := x.ToRadixString(16)
	if err != nil {
		panic(err)
	}
	z, ok := gmp.NewInt(0).SetString(s, 16)
	if !ok {
		panic("oracle: gmp rejected " + s)
	}
	return z
}

func fromGMP(v *gmp.Int) *einteger.EInteger {
	b, ok := new(big.Int).SetString(v.String(), 10)
	if !ok {
		panic("oracle: unparsable gmp value")
	}
	return FromBig(b)
}
