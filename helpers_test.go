package einteger

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// toBig converts through the limbs directly so the oracle does not depend
// on the conversion code under test.
func toBig(x *EInteger) *big.Int {
	z := new(big.Int)
	for i := len(x.words) - 1; i >= 0; i-- {
		z.Lsh(z, wordBits)
		z.Or(z, big.NewInt(int64(x.words[i])))
	}
	if x.negative {
		z.Neg(z)
	}
	return z
}

func fromBig(b *big.Int) *EInteger {
	mag := new(big.Int).Abs(b)
	mask := big.NewInt(wordMask)
	var words nat
	for mag.Sign() > 0 {
		words = append(words, uint16(new(big.Int).And(mag, mask).Uint64()))
		mag.Rsh(mag, wordBits)
	}
	return newInt(words, b.Sign() < 0)
}

func bigFromString(t testing.TB, s string) *big.Int {
	t.Helper()
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad test literal %q", s)
	}
	return b
}

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randNat returns a magnitude of exactly limbs limbs.
func randNat(r *rand.Rand, limbs int) nat {
	z := make(nat, limbs)
	for i := range z {
		z[i] = uint16(r.Uint32())
	}
	if limbs > 0 && z[limbs-1] == 0 {
		z[limbs-1] = 1
	}
	return z
}

// randInt returns a value with the given limb count and a random sign.
func randInt(r *rand.Rand, limbs int) *EInteger {
	return newInt(randNat(r, limbs), r.IntN(2) == 0)
}

// randSparse returns a value with long runs of zero and all-ones limbs,
// which stress carry and borrow propagation.
func randSparse(r *rand.Rand, limbs int) *EInteger {
	z := make(nat, limbs)
	for i := range z {
		switch r.IntN(4) {
		case 0:
			z[i] = 0
		case 1:
			z[i] = wordMask
		default:
			z[i] = uint16(r.Uint32())
		}
	}
	z[limbs-1] |= 1
	return newInt(z, r.IntN(2) == 0)
}

func checkBig(t *testing.T, label string, got *EInteger, want *big.Int) {
	t.Helper()
	if g := toBig(got); g.Cmp(want) != 0 {
		t.Errorf("%s = %s, want %s", label, g, want)
	}
	checkCanonical(t, label, got)
}

// checkCanonical verifies the representation invariants.
func checkCanonical(t *testing.T, label string, x *EInteger) {
	t.Helper()
	if len(x.words) > 0 && x.words[len(x.words)-1] == 0 {
		t.Errorf("%s: leading zero limb in %v", label, x.words)
	}
	if len(x.words) == 0 && x.negative {
		t.Errorf("%s: negative zero", label)
	}
}

// withThresholds installs th for the duration of the test. Callers must
// not run in parallel.
func withThresholds(t *testing.T, th Thresholds) {
	t.Helper()
	prev := CurrentThresholds()
	if err := SetThresholds(th); err != nil {
		t.Fatalf("SetThresholds(%v): %v", th, err)
	}
	t.Cleanup(func() {
		if err := SetThresholds(prev); err != nil {
			t.Errorf("restoring thresholds: %v", err)
		}
	})
}

// sampleValues covers zero, units, limb boundaries and a few random
// values of both signs.
func sampleValues() []*EInteger {
	r := newTestRand(7)
	var vs []*EInteger
	for _, s := range []string{
		"0", "1", "-1", "2", "-2", "127", "128", "129", "-24", "-25",
		"65535", "65536", "65537", "-65536",
		"4294967295", "4294967296", "-4294967296",
		"9223372036854775807", "-9223372036854775808",
		"18446744073709551615", "18446744073709551616", "18446744073709551617",
		"-18446744073709551616",
	} {
		vs = append(vs, MustFromString(s))
	}
	for _, n := range []int{3, 5, 9, 17, 40} {
		vs = append(vs, randInt(r, n), randSparse(r, n))
	}
	return vs
}

// genInt generates values of up to maxLimbs limbs with either sign.
func genInt(maxLimbs int) gopter.Gen {
	return gopter.CombineGens(
		gen.SliceOfN(maxLimbs, gen.UInt16()),
		gen.IntRange(0, maxLimbs),
		gen.Bool(),
	).Map(func(v []interface{}) *EInteger {
		limbs := v[0].([]uint16)
		n := min(v[1].(int), len(limbs))
		return newInt(nat(limbs[:n]).clone(), v[2].(bool))
	})
}

func propertyParams(n int) *gopter.TestParameters {
	p := gopter.DefaultTestParameters()
	p.MinSuccessfulTests = n
	return p
}
