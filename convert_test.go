package einteger

import (
	"errors"
	"math"
	"testing"
)

func TestCheckedConversions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		s                     string
		fits8, fits16, fits32 bool
		fits64                bool
	}{
		{"0", true, true, true, true},
		{"127", true, true, true, true},
		{"128", false, true, true, true},
		{"-128", true, true, true, true},
		{"-129", false, true, true, true},
		{"32767", false, true, true, true},
		{"-32769", false, false, true, true},
		{"2147483647", false, false, true, true},
		{"-2147483649", false, false, false, true},
		{"9223372036854775807", false, false, false, true},
		{"-9223372036854775808", false, false, false, true},
		{"9223372036854775808", false, false, false, false},
		{"-9223372036854775809", false, false, false, false},
	}
	for _, tt := range tests {
		x := MustFromString(tt.s)
		_, err8 := x.ToInt8Checked()
		_, err16 := x.ToInt16Checked()
		_, err32 := x.ToInt32Checked()
		v64, err64 := x.ToInt64Checked()
		for _, c := range []struct {
			bits int
			fits bool
			err  error
		}{{8, tt.fits8, err8}, {16, tt.fits16, err16}, {32, tt.fits32, err32}, {64, tt.fits64, err64}} {
			if c.fits != (c.err == nil) {
				t.Errorf("%s to int%d: err = %v, fits = %v", tt.s, c.bits, c.err, c.fits)
			}
			if c.err != nil && !errors.Is(c.err, ErrOverflow) {
				t.Errorf("%s to int%d: err %v is not ErrOverflow", tt.s, c.bits, c.err)
			}
		}
		if tt.fits64 && x.String() != MustFromString(tt.s).String() {
			t.Errorf("%s: round trip", tt.s)
		}
		if tt.fits64 != x.CanFitInInt64() || tt.fits32 != x.CanFitInInt32() {
			t.Errorf("%s: CanFitIn mismatch", tt.s)
		}
		if tt.fits64 && FromInt64(v64).String() != tt.s {
			t.Errorf("%s: ToInt64Checked = %d", tt.s, v64)
		}
	}
}

func TestUncheckedConversionsWrap(t *testing.T) {
	t.Parallel()
	x := One().ShiftLeft(64).Add(FromInt64(-1)) // 2^64 - 1
	if got := x.ToInt64Unchecked(); got != -1 {
		t.Errorf("(2^64-1) unchecked = %d, want -1", got)
	}
	if got := FromInt64(-129).ToInt8Unchecked(); got != 127 {
		t.Errorf("-129 to int8 = %d", got)
	}
	if got := FromInt64(65537).ToInt16Unchecked(); got != 1 {
		t.Errorf("65537 to int16 = %d", got)
	}
	if got := FromInt64(math.MaxInt32 + 1).ToInt32Unchecked(); got != math.MinInt32 {
		t.Errorf("MaxInt32+1 to int32 = %d", got)
	}
	y := One().ShiftLeft(100).Negate().Add(FromInt64(3)) // -2^100 + 3
	if got := y.ToInt64Unchecked(); got != 3 {
		t.Errorf("(-2^100 + 3) unchecked = %d", got)
	}
}

func TestBitLengths(t *testing.T) {
	t.Parallel()
	tests := []struct {
		v                int64
		signed, unsigned int
	}{
		{0, 0, 0}, {-1, 0, 1}, {1, 1, 1}, {-2, 1, 2}, {127, 7, 7}, {-128, 7, 8}, {128, 8, 8},
		{math.MinInt64, 63, 64}, {math.MaxInt64, 63, 63},
	}
	for _, tt := range tests {
		x := FromInt64(tt.v)
		if x.SignedBitLength() != tt.signed || x.UnsignedBitLength() != tt.unsigned {
			t.Errorf("%d: signed=%d unsigned=%d, want %d %d", tt.v,
				x.SignedBitLength(), x.UnsignedBitLength(), tt.signed, tt.unsigned)
		}
	}
}
