package einteger

import (
	"math/big"
	"testing"
)

func TestSqrtRem(t *testing.T) {
	t.Parallel()
	r := newTestRand(81)
	vs := []*EInteger{Zero(), One(), FromInt64(2), FromInt64(3), FromInt64(4), FromInt64(65535), FromInt64(65536)}
	for i := 0; i < 60; i++ {
		vs = append(vs, randInt(r, 1+r.IntN(40)).Abs())
	}
	for _, x := range vs {
		s, rem, err := x.SqrtRem()
		if err != nil {
			t.Fatal(err)
		}
		want := new(big.Int).Sqrt(toBig(x))
		checkBig(t, "Sqrt", s, want)
		checkBig(t, "SqrtRem remainder", rem, new(big.Int).Sub(toBig(x), new(big.Int).Mul(want, want)))
	}
	if _, err := FromInt64(-4).Sqrt(); !isKind(err, KindInvalidArgument) {
		t.Errorf("Sqrt(-4) err = %v", err)
	}
}

func TestRoot(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x    string
		k    int
		want string
	}{
		{"27", 3, "3"},
		{"-27", 3, "-3"},
		{"26", 3, "2"},
		{"-26", 3, "-2"},
		{"1024", 10, "2"},
		{"1023", 10, "1"},
		{"5", 1, "5"},
		{"0", 7, "0"},
		{"1267650600228229401496703205376", 5, "1048576"},
	}
	for _, tt := range tests {
		got, err := MustFromString(tt.x).Root(tt.k)
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != tt.want {
			t.Errorf("Root(%s, %d) = %s, want %s", tt.x, tt.k, got, tt.want)
		}
	}
	if _, err := Ten().Root(0); !isKind(err, KindInvalidArgument) {
		t.Errorf("Root(0) err = %v", err)
	}
	if _, err := FromInt64(-16).Root(4); !isKind(err, KindInvalidArgument) {
		t.Errorf("even root of negative err = %v", err)
	}
}

func TestRootBracketsValue(t *testing.T) {
	t.Parallel()
	r := newTestRand(82)
	for i := 0; i < 60; i++ {
		x := randInt(r, 1+r.IntN(30)).Abs()
		k := 2 + r.IntN(9)
		z, err := x.Root(k)
		if err != nil {
			t.Fatal(err)
		}
		lo, _ := z.Pow(int64(k))
		hi, _ := z.Increment().Pow(int64(k))
		if lo.Compare(x) > 0 || hi.Compare(x) <= 0 {
			t.Fatalf("Root(%s, %d) = %s does not bracket", x, k, z)
		}
	}
}
