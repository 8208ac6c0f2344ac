package einteger

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
)

func TestDivideByZero(t *testing.T) {
	t.Parallel()
	seven := FromInt64(7)
	if _, err := seven.Divide(Zero()); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("Divide: err = %v, want ErrDivideByZero", err)
	}
	if _, err := seven.Remainder(Zero()); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("Remainder: err = %v", err)
	}
	if _, _, err := seven.DivRem(Zero()); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("DivRem: err = %v", err)
	}
	if _, err := seven.Mod(Zero()); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("Mod: err = %v", err)
	}
	if _, err := seven.Divide(nil); !errors.Is(err, ErrNullReference) {
		t.Errorf("Divide(nil): err = %v", err)
	}
}

func TestDivRemTruncates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, d, q, r string
	}{
		{"7", "2", "3", "1"},
		{"-7", "2", "-3", "-1"},
		{"7", "-2", "-3", "1"},
		{"-7", "-2", "3", "-1"},
		{"0", "5", "0", "0"},
		{"3", "100000000000000000000", "0", "3"},
		{"-9223372036854775808", "-1", "9223372036854775808", "0"},
		{"340282366920938463463374607431768211456", "18446744073709551617", "18446744073709551615", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.x+"/"+tt.d, func(t *testing.T) {
			t.Parallel()
			q, r, err := MustFromString(tt.x).DivRem(MustFromString(tt.d))
			if err != nil {
				t.Fatal(err)
			}
			if q.String() != tt.q || r.String() != tt.r {
				t.Errorf("got q=%s r=%s, want q=%s r=%s", q, r, tt.q, tt.r)
			}
			checkCanonical(t, "q", q)
			checkCanonical(t, "r", r)
		})
	}
}

func TestMinInt64DividedByMinusOne(t *testing.T) {
	t.Parallel()
	q, err := FromInt64(math.MinInt64).Divide(MinusOne())
	if err != nil {
		t.Fatal(err)
	}
	if q.CanFitInInt64() {
		t.Errorf("quotient %s should not fit in int64", q)
	}
	if _, err := q.ToInt64Checked(); !errors.Is(err, ErrOverflow) {
		t.Errorf("ToInt64Checked err = %v", err)
	}
}

// checkDivision verifies x = q·d + r with |r| < |d| and sign(r) = sign(x).
func checkDivision(t *testing.T, label string, x, d, q, r *EInteger) {
	t.Helper()
	bq, br := new(big.Int).QuoRem(toBig(x), toBig(d), new(big.Int))
	checkBig(t, label+" quotient", q, bq)
	checkBig(t, label+" remainder", r, br)
}

func TestDivisionAlgorithmsAgree(t *testing.T) {
	t.Parallel()
	r := newTestRand(31)
	algs := []DivAlgorithm{DivAuto, DivSchoolbook, DivRecursive}
	for _, n := range []int{1, 2, 3, 4, 5, 8, 17, 64, 200, 201, 202, 450} {
		for _, extra := range []int{0, 1, 3, n / 2, n, 2*n + 5} {
			x, d := randSparse(r, n+extra), randInt(r, n)
			for _, alg := range algs {
				q, rem, err := x.DivideUsing(d, alg)
				if err != nil {
					t.Fatal(err)
				}
				checkDivision(t, fmt.Sprintf("%s %d/%d", alg, n+extra, n), x, d, q, rem)
			}
		}
	}
}

// Divisors with a high limb just above a power of two make the quotient
// digit estimate overshoot, which drives the correction steps.
func TestDivisionCorrectionSteps(t *testing.T) {
	t.Parallel()
	r := newTestRand(32)
	for _, n := range []int{2, 3, 6, 40, 220} {
		d := One().ShiftLeft(n*wordBits - 1).Add(FromInt64(int64(r.IntN(1000))))
		x := d.Square().Subtract(One())
		for _, alg := range []DivAlgorithm{DivSchoolbook, DivRecursive} {
			q, rem, err := x.DivideUsing(d, alg)
			if err != nil {
				t.Fatal(err)
			}
			checkDivision(t, fmt.Sprintf("%s n=%d", alg, n), x, d, q, rem)
		}
	}
}

func TestDivideWithLoweredThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.RecursiveDivision = 4
	withThresholds(t, th)
	r := newTestRand(33)
	for i := 0; i < 200; i++ {
		n := 2 + r.IntN(60)
		x, d := randInt(r, n+r.IntN(80)), randSparse(r, n)
		q, rem, err := x.DivRem(d)
		if err != nil {
			t.Fatal(err)
		}
		checkDivision(t, "lowered", x, d, q, rem)
	}
}

func TestDivideByTen(t *testing.T) {
	t.Parallel()
	r := newTestRand(34)
	for _, n := range []int{1, 2, 3, 7, 8, 33} {
		x := newInt(randNat(r, n), false)
		q, rem, err := x.DivRem(Ten())
		if err != nil {
			t.Fatal(err)
		}
		checkDivision(t, "x/10", x, Ten(), q, rem)
	}
}

func TestMod(t *testing.T) {
	t.Parallel()
	tests := []struct{ x, m, want string }{
		{"-7", "3", "2"},
		{"7", "3", "1"},
		{"-9", "3", "0"},
		{"-100000000000000000000", "7", "5"},
	}
	for _, tt := range tests {
		got, err := MustFromString(tt.x).Mod(MustFromString(tt.m))
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != tt.want {
			t.Errorf("%s mod %s = %s, want %s", tt.x, tt.m, got, tt.want)
		}
	}
	if _, err := One().Mod(FromInt64(-3)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative modulus: err = %v", err)
	}
}

func TestModPow(t *testing.T) {
	t.Parallel()
	r := newTestRand(35)
	for i := 0; i < 50; i++ {
		x, e, m := randInt(r, 1+r.IntN(8)), randInt(r, 1+r.IntN(3)).Abs(), randInt(r, 1+r.IntN(8)).Abs()
		if m.IsZero() {
			continue
		}
		got, err := x.ModPow(e, m)
		if err != nil {
			t.Fatal(err)
		}
		bm := toBig(m)
		want := new(big.Int).Exp(new(big.Int).Mod(toBig(x), bm), toBig(e), bm)
		checkBig(t, "ModPow", got, want)
	}
	if _, err := Ten().ModPow(MinusOne(), Ten()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative exponent: err = %v", err)
	}
	if got, _ := Ten().ModPow(Zero(), One()); got != Zero() {
		t.Errorf("x^0 mod 1 = %s", got)
	}
}

func TestDivisionProperties(t *testing.T) {
	properties := gopter.NewProperties(propertyParams(200))

	properties.Property("x = q*d + r with |r| < |d|", prop.ForAll(
		func(x, d *EInteger) bool {
			if d.IsZero() {
				return true
			}
			q, r, err := x.DivRem(d)
			if err != nil {
				return false
			}
			return q.Multiply(d).Add(r).Equals(x) &&
				r.Abs().Compare(d.Abs()) < 0 &&
				(r.IsZero() || r.Sign() == x.Sign())
		},
		genInt(50), genInt(25),
	))

	properties.TestingRun(t)
}
