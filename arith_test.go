package einteger

import (
	"math/big"
	"testing"
)

// natBig interprets limbs as an unsigned value.
func natBig(x []uint16) *big.Int {
	return toBig(&EInteger{words: x})
}

func TestVectorKernels(t *testing.T) {
	t.Parallel()
	r := newTestRand(91)
	base := new(big.Int).Lsh(big.NewInt(1), wordBits)
	for i := 0; i < 200; i++ {
		n := 1 + r.IntN(12)
		x, y := randNat(r, n), randNat(r, n)
		if i%10 == 0 {
			for j := range x {
				x[j] = wordMask
			}
		}
		bn := new(big.Int).Exp(base, big.NewInt(int64(n)), nil)
		z := make(nat, n)

		c := addVV(z, x, y)
		sum := new(big.Int).Add(natBig(x), natBig(y))
		if got := new(big.Int).Add(natBig(z), new(big.Int).Mul(big.NewInt(int64(c)), bn)); got.Cmp(sum) != 0 {
			t.Fatalf("addVV(%v, %v) = %v carry %d", x, y, z, c)
		}

		b := subVV(z, x, y)
		diff := new(big.Int).Sub(natBig(x), natBig(y))
		if got := new(big.Int).Sub(natBig(z), new(big.Int).Mul(big.NewInt(int64(b)), bn)); got.Cmp(diff) != 0 {
			t.Fatalf("subVV(%v, %v) = %v borrow %d", x, y, z, b)
		}

		w, rw := uint16(r.Uint32()), uint16(r.Uint32())
		hi := mulAddVWW(z, x, w, rw)
		prod := new(big.Int).Mul(natBig(x), big.NewInt(int64(w)))
		prod.Add(prod, big.NewInt(int64(rw)))
		if got := new(big.Int).Add(natBig(z), new(big.Int).Mul(big.NewInt(int64(hi)), bn)); got.Cmp(prod) != 0 {
			t.Fatalf("mulAddVWW(%v, %d, %d) = %v hi %d", x, w, rw, z, hi)
		}

		copy(z, y)
		hi = addMulVVW(z, x, w)
		acc := new(big.Int).Add(natBig(y), new(big.Int).Mul(natBig(x), big.NewInt(int64(w))))
		if got := new(big.Int).Add(natBig(z), new(big.Int).Mul(big.NewInt(int64(hi)), bn)); got.Cmp(acc) != 0 {
			t.Fatalf("addMulVVW = %v hi %d", z, hi)
		}

		if w == 0 {
			w = 1
		}
		rem := divWVW(z, 0, x, w)
		q, m := new(big.Int).QuoRem(natBig(x), big.NewInt(int64(w)), new(big.Int))
		if natBig(z).Cmp(q) != 0 || int64(rem) != m.Int64() {
			t.Fatalf("divWVW(%v, %d) = %v rem %d", x, w, z, rem)
		}
	}
}

func TestShiftKernels(t *testing.T) {
	t.Parallel()
	r := newTestRand(92)
	for s := uint(0); s < wordBits; s++ {
		x := randNat(r, 6)
		z := make(nat, 6)
		out := shlVU(z, x, s)
		want := new(big.Int).Lsh(natBig(x), s)
		got := new(big.Int).Add(natBig(z), new(big.Int).Lsh(big.NewInt(int64(out)), 6*wordBits))
		if got.Cmp(want) != 0 {
			t.Fatalf("shlVU(%v, %d) = %v out %d", x, s, z, out)
		}
		shrVU(z, x, s)
		if natBig(z).Cmp(new(big.Int).Rsh(natBig(x), s)) != 0 {
			t.Fatalf("shrVU(%v, %d) = %v", x, s, z)
		}
		// In-place shifts.
		y := x.clone()
		shlVU(y, y, s)
		shrVU(y, y, s)
		mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 6*wordBits-s), big.NewInt(1))
		if natBig(y).Cmp(new(big.Int).And(natBig(x), mask)) != 0 {
			t.Fatalf("in-place shift of %v by %d gave %v", x, s, y)
		}
	}
}

func TestWordHelpers(t *testing.T) {
	t.Parallel()
	if hi, lo := mulWW(wordMask, wordMask); hi != 0xFFFE || lo != 1 {
		t.Errorf("mulWW = %#x %#x", hi, lo)
	}
	if q, r := divWW(3, 7, 10); uint32(q)*10+uint32(r) != 3<<16|7 {
		t.Errorf("divWW = %d %d", q, r)
	}
	if nlz(1) != 15 || nlz(0x8000) != 0 || nlz(0) != 16 {
		t.Error("nlz")
	}
}

func TestNatHelpers(t *testing.T) {
	t.Parallel()
	x := nat{0, 0, 4}
	if x.trailingZeroBits() != 34 || !x.isPow2() || x.bitLen() != 35 {
		t.Errorf("helpers on %v", x)
	}
	if !greaterThanPow2(nat{1, 0, 4}, 34) || greaterThanPow2(x, 34) || greaterThanPow2(nat{5}, 3) {
		t.Error("greaterThanPow2")
	}
	if got := pow2(35); got.cmp(nat{0, 0, 8}) != 0 {
		t.Errorf("pow2(35) = %v", got)
	}
	if len(natFromUint64(0)) != 0 {
		t.Error("natFromUint64(0) not empty")
	}
	defer func() {
		if recover() == nil {
			t.Error("natSub underflow did not panic")
		}
	}()
	natSub(nat{1}, nat{2})
}
