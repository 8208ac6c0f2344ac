package einteger

import "math"

// ToInt64Checked returns x as an int64, or ErrOverflow if it does not fit.
func (x *EInteger) ToInt64Checked() (int64, error) {
	if x == nil {
		return 0, newError(KindNullReference, "ToInt64Checked", "nil receiver")
	}
	if !x.CanFitInInt64() {
		return 0, newError(KindOverflow, "ToInt64Checked", "%d bits", x.SignedBitLength()+1)
	}
	return x.ToInt64Unchecked(), nil
}

// ToInt64Unchecked returns the low 64 bits of the two's-complement form.
func (x *EInteger) ToInt64Unchecked() int64 {
	mustNotBeNil("ToInt64Unchecked", x)
	v := x.words.low64()
	if x.negative {
		v = -v
	}
	return int64(v)
}

// ToInt32Checked returns x as an int32, or ErrOverflow if it does not fit.
func (x *EInteger) ToInt32Checked() (int32, error) {
	v, err := x.narrow("ToInt32Checked", math.MinInt32, math.MaxInt32)
	return int32(v), err
}

// ToInt32Unchecked returns the low 32 bits of the two's-complement form.
func (x *EInteger) ToInt32Unchecked() int32 { return int32(x.ToInt64Unchecked()) }

// ToInt16Checked returns x as an int16, or ErrOverflow if it does not fit.
func (x *EInteger) ToInt16Checked() (int16, error) {
	v, err := x.narrow("ToInt16Checked", math.MinInt16, math.MaxInt16)
	return int16(v), err
}

// ToInt16Unchecked returns the low 16 bits of the two's-complement form.
func (x *EInteger) ToInt16Unchecked() int16 { return int16(x.ToInt64Unchecked()) }

// ToInt8Checked returns x as an int8, or ErrOverflow if it does not fit.
func (x *EInteger) ToInt8Checked() (int8, error) {
	v, err := x.narrow("ToInt8Checked", math.MinInt8, math.MaxInt8)
	return int8(v), err
}

// ToInt8Unchecked returns the low 8 bits of the two's-complement form.
func (x *EInteger) ToInt8Unchecked() int8 { return int8(x.ToInt64Unchecked()) }

func (x *EInteger) narrow(op string, lo, hi int64) (int64, error) {
	if x == nil {
		return 0, newError(KindNullReference, op, "nil receiver")
	}
	v, ok := x.int64()
	if !ok || v < lo || v > hi {
		return 0, newError(KindOverflow, op, "value out of range [%d, %d]", lo, hi)
	}
	return v, nil
}

// MarshalText implements encoding.TextMarshaler using the decimal form.
// A nil value has no text form; encoding/json writes it as null without
// calling MarshalText.
func (x *EInteger) MarshalText() ([]byte, error) {
	if x == nil {
		return nil, newError(KindNullReference, "MarshalText", "nil value")
	}
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The receiver is
// overwritten, so it must be a value nobody else holds; decoding into one
// of the shared small values (Zero, One, results in -24..128) fails with
// ErrInvalidArgument.
func (x *EInteger) UnmarshalText(text []byte) error {
	const op = "UnmarshalText"
	if x == nil {
		return newError(KindNullReference, op, "nil receiver")
	}
	if isCached(x) {
		return newError(KindInvalidArgument, op, "cannot decode into shared value %s", x)
	}
	v, err := FromString(string(text))
	if err != nil {
		return err
	}
	*x = *v
	return nil
}
