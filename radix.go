package einteger

import "strings"

// ─────────────────────────────────────────────────────────────────────────────
// Radix Conversion
// ─────────────────────────────────────────────────────────────────────────────

const digitChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	// Digit strings longer than this are parsed by splitting in halves.
	parseSplitDigits = 1024
	// Magnitudes longer than this are formatted by dividing by radix powers.
	formatSplitLimbs = 64
)

// FromString parses a decimal integer.
func FromString(s string) (*EInteger, error) {
	return FromRadixString(s, 10)
}

// MustFromString is like FromString but panics if s cannot be parsed.
func MustFromString(s string) *EInteger {
	x, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return x
}

// FromRadixString parses s as an integer in the given radix (2..36).
// Letters may be either case. A single leading '-' is allowed; signs,
// whitespace and separators are not. Leading zeros are accepted.
func FromRadixString(s string, radix int) (*EInteger, error) {
	return parseRadix("FromRadixString", s, radix, 0, len(s))
}

// FromRadixSubstring parses s[start:end] like FromRadixString.
func FromRadixSubstring(s string, radix, start, end int) (*EInteger, error) {
	return parseRadix("FromRadixSubstring", s, radix, start, end)
}

func parseRadix(op, s string, radix, start, end int) (*EInteger, error) {
	if radix < 2 || radix > 36 {
		return nil, newError(KindInvalidArgument, op, "radix %d out of range", radix)
	}
	if start < 0 || end > len(s) || start > end {
		return nil, newError(KindInvalidArgument, op, "bounds [%d:%d] outside length %d", start, end, len(s))
	}
	t := s[start:end]
	neg := false
	if len(t) > 0 && t[0] == '-' {
		neg = true
		t = t[1:]
	}
	if len(t) == 0 {
		return nil, newError(KindInvalidArgument, op, "no digits")
	}
	digits := make([]byte, len(t))
	for i := 0; i < len(t); i++ {
		d := digitValue(t[i])
		if d >= radix {
			return nil, newError(KindInvalidArgument, op, "invalid digit %q at offset %d", t[i], start+i+btoi(neg))
		}
		digits[i] = byte(d)
	}
	if len(digits) > MaxWordCount {
		return nil, newError(KindResourceExhausted, op, "%d digits", len(digits))
	}
	return newInt(digitsToNat(digits, radix), neg), nil
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// digitValue maps '0'-'9', 'a'-'z' and 'A'-'Z' to 0..35; anything else
// yields 36, which no radix accepts.
func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}

// digitsToNat converts digit values, most significant first.
func digitsToNat(d []byte, radix int) nat {
	if b := radixLog2(radix); b != 0 {
		return packPow2Digits(d, b)
	}
	if len(d) > parseSplitDigits {
		return parseSplit(d, radix, newRadixPowers(radix))
	}
	return parseChunks(d, radix)
}

// packPow2Digits assembles the bits of a power-of-two radix directly.
func packPow2Digits(d []byte, b uint) nat {
	z := make(nat, 0, (len(d)*int(b))/wordBits+1)
	var acc uint32
	var nbits uint
	for i := len(d) - 1; i >= 0; i-- {
		acc |= uint32(d[i]) << nbits
		nbits += b
		if nbits >= wordBits {
			z = append(z, uint16(acc))
			acc >>= wordBits
			nbits -= wordBits
		}
	}
	if nbits > 0 {
		z = append(z, uint16(acc))
	}
	return z.norm()
}

// parseChunks folds the digits in limb-sized chunks: z = z·radix^k + chunk.
func parseChunks(d []byte, radix int) nat {
	ch := radixChunks[radix]
	z := make(nat, 0, len(d)/ch.digits+1)
	first := len(d) % ch.digits
	if first == 0 {
		first = ch.digits
	}
	for i := 0; i < len(d); {
		n := ch.digits
		if i == 0 {
			n = first
		}
		mult := uint16(1)
		var v uint32
		for _, c := range d[i : i+n] {
			v = v*uint32(radix) + uint32(c)
			mult *= uint16(radix)
		}
		if c := mulAddVWW(z, z, mult, uint16(v)); c != 0 {
			z = append(z, c)
		}
		i += n
	}
	return z.norm()
}

// parseSplit converts the high and low halves separately and joins them
// with one multiplication by a power of the radix.
func parseSplit(d []byte, radix int, p *radixPowers) nat {
	if len(d) <= parseSplitDigits {
		return parseChunks(d, radix)
	}
	k := len(d) / 2
	hi := parseSplit(d[:len(d)-k], radix, p)
	lo := parseSplit(d[len(d)-k:], radix, p)
	return natAdd(natMul(hi, p.pow(k)), lo)
}

// String returns the decimal form of x.
func (x *EInteger) String() string {
	if x == nil {
		return "<nil>"
	}
	s, _ := x.ToRadixString(10)
	return s
}

// ToRadixString formats x in the given radix (2..36) with uppercase
// letters and a leading '-' for negative values.
func (x *EInteger) ToRadixString(radix int) (string, error) {
	const op = "ToRadixString"
	if x == nil {
		return "", newError(KindNullReference, op, "nil receiver")
	}
	if radix < 2 || radix > 36 {
		return "", newError(KindInvalidArgument, op, "radix %d out of range", radix)
	}
	if len(x.words) == 0 {
		return "0", nil
	}
	var le []byte
	switch b := radixLog2(radix); {
	case b != 0:
		le = pow2DigitsLE(x.words, b)
	case len(x.words) > formatSplitLimbs:
		le = (&radixFormatter{radix: radix, powers: newRadixPowers(radix)}).appendLE(nil, x.words, 0)
	default:
		le = chunkDigitsLE(nil, x.words, radix, 0)
	}
	var sb strings.Builder
	sb.Grow(len(le) + 1)
	if x.negative {
		sb.WriteByte('-')
	}
	for i := len(le) - 1; i >= 0; i-- {
		sb.WriteByte(digitChars[le[i]])
	}
	return sb.String(), nil
}

// pow2DigitsLE extracts b-bit digits, least significant first, without
// leading zeros.
func pow2DigitsLE(x nat, b uint) []byte {
	out := make([]byte, 0, x.bitLen()/int(b)+1)
	mask := uint32(1)<<b - 1
	var acc uint32
	var nbits uint
	for _, w := range x {
		acc |= uint32(w) << nbits
		nbits += wordBits
		for nbits >= b {
			out = append(out, byte(acc&mask))
			acc >>= b
			nbits -= b
		}
	}
	if nbits > 0 {
		out = append(out, byte(acc&mask))
	}
	for len(out) > 1 && out[len(out)-1] == 0 {
		out = out[:len(out)-1]
	}
	return out
}

// chunkDigitsLE appends the digits of x, least significant first, by
// repeated division by the limb-sized radix power (10^4 for decimal).
// With width > 0 the output is zero-padded to exactly width digits.
func chunkDigitsLE(dst []byte, x nat, radix, width int) []byte {
	start := len(dst)
	ch := radixChunks[radix]
	w := x.clone()
	for len(w) > 0 {
		r := uint32(divWVW(w, 0, w, ch.base))
		w = w.norm()
		if len(w) > 0 {
			for i := 0; i < ch.digits; i++ {
				dst = append(dst, byte(r%uint32(radix)))
				r /= uint32(radix)
			}
			continue
		}
		for r != 0 {
			dst = append(dst, byte(r%uint32(radix)))
			r /= uint32(radix)
		}
	}
	for len(dst)-start < width {
		dst = append(dst, 0)
	}
	return dst
}

// radixFormatter splits a magnitude by powers radix^(k·2^i), where k is the
// digit count of a limb-sized chunk, converting quotient and remainder
// separately. The remainder is padded to the exact digit count of the
// divisor power.
type radixFormatter struct {
	radix  int
	powers *radixPowers
}

func (f *radixFormatter) appendLE(dst []byte, x nat, width int) []byte {
	if len(x) <= formatSplitLimbs {
		return chunkDigitsLE(dst, x, f.radix, width)
	}
	k := radixChunks[f.radix].digits
	// Largest power radix^(k·2^i) with at most half the limbs of x.
	digits := k
	for len(f.powers.pow(digits*2)) <= (len(x)+1)/2 {
		digits *= 2
	}
	q, r := natDivRem(x, f.powers.pow(digits), DivAuto)
	dst = f.appendLE(dst, r, digits)
	rest := 0
	if width > 0 {
		rest = width - digits
	}
	if len(q) == 0 {
		for i := 0; i < rest; i++ {
			dst = append(dst, 0)
		}
		return dst
	}
	return f.appendLE(dst, q, rest)
}
