package einteger

import "slices"

// FromBytes decodes a two's-complement byte sequence. An empty slice is
// zero; a nil slice is a NullReference error. Any length round-trips
// through ToBytes.
func FromBytes(b []byte, littleEndian bool) (*EInteger, error) {
	if b == nil {
		return nil, newError(KindNullReference, "FromBytes", "nil byte slice")
	}
	n := len(b)
	if n == 0 {
		return Zero(), nil
	}
	at := func(i int) byte { // i-th byte from the least significant end
		if littleEndian {
			return b[i]
		}
		return b[n-1-i]
	}
	negative := at(n-1)&0x80 != 0
	fill := byte(0)
	if negative {
		fill = 0xFF
	}
	z := make(nat, (n+1)/2)
	for i := range z {
		lo := at(2 * i)
		hi := fill
		if 2*i+1 < n {
			hi = at(2*i + 1)
		}
		z[i] = uint16(hi)<<8 | uint16(lo)
	}
	return newInt(fromTwos(z)), nil
}

// ToBytes returns the shortest two's-complement encoding of x. Zero
// encodes as a single 0x00 byte.
func (x *EInteger) ToBytes(littleEndian bool) []byte {
	mustNotBeNil("ToBytes", x)
	if len(x.words) == 0 {
		return []byte{0}
	}
	t := toTwos(x.words, x.negative, len(x.words)+1)
	out := make([]byte, 2*len(t))
	for i, w := range t {
		out[2*i] = byte(w)
		out[2*i+1] = byte(w >> 8)
	}
	// Drop sign bytes that the next byte's top bit already implies.
	for len(out) > 1 {
		top, next := out[len(out)-1], out[len(out)-2]
		if (top == 0 && next&0x80 == 0) || (top == 0xFF && next&0x80 != 0) {
			out = out[:len(out)-1]
			continue
		}
		break
	}
	if !littleEndian {
		slices.Reverse(out)
	}
	return out
}
