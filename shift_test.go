package einteger

import (
	"math/big"
	"testing"
)

func TestShiftLeftKnown(t *testing.T) {
	t.Parallel()
	if got := One().ShiftLeft(64).String(); got != "18446744073709551616" {
		t.Errorf("1<<64 = %s", got)
	}
	if got := FromInt64(-3).ShiftLeft(17).String(); got != "-393216" {
		t.Errorf("-3<<17 = %s", got)
	}
	if got := FromInt64(-5).ShiftRight(1).String(); got != "-3" {
		t.Errorf("-5>>1 = %s", got)
	}
	if got := FromInt64(-5).ShiftRight(1000); got != MinusOne() {
		t.Errorf("-5>>1000 = %s", got)
	}
	if got := FromInt64(5).ShiftRight(1000); got != Zero() {
		t.Errorf("5>>1000 = %s", got)
	}
	if got := FromInt64(40).ShiftLeft(-3).String(); got != "5" {
		t.Errorf("40<<-3 = %s", got)
	}
	if got := FromInt64(5).ShiftRight(-3).String(); got != "40" {
		t.Errorf("5>>-3 = %s", got)
	}
}

func TestShiftMatchesBig(t *testing.T) {
	t.Parallel()
	shifts := []int{0, 1, 7, 15, 16, 17, 31, 32, 33, 64, 100, 255}
	for _, x := range sampleValues() {
		bx := toBig(x)
		for _, k := range shifts {
			checkBig(t, "ShiftLeft", x.ShiftLeft(k), new(big.Int).Lsh(bx, uint(k)))
			checkBig(t, "ShiftRight", x.ShiftRight(k), new(big.Int).Rsh(bx, uint(k)))
		}
	}
}

func TestShiftRoundTrip(t *testing.T) {
	t.Parallel()
	r := newTestRand(51)
	for i := 0; i < 200; i++ {
		x := randSparse(r, 1+r.IntN(20))
		k := r.IntN(200)
		if !x.ShiftLeft(k).ShiftRight(k).Equals(x) {
			t.Fatalf("(%s << %d) >> %d changed the value", x, k, k)
		}
	}
}
