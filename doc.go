// Package einteger implements immutable arbitrary-precision integers.
//
// An EInteger is stored in sign-magnitude form over 16-bit limbs, least
// significant limb first, with no leading zero limbs. Zero has no limbs and
// is never negative. Values never change after construction, so they can be
// shared freely between goroutines.
//
// Arithmetic picks an algorithm from operand sizes:
//
//   - multiplication: scalar, squaring, unrolled 2/4/8-limb kernels,
//     schoolbook, Karatsuba (same-size and asymmetric), Toom-3 and Toom-4;
//   - division: single-limb passes (with dedicated divisors 2 and 10),
//     native int64, Knuth's Algorithm D and Burnikel-Ziegler recursion;
//   - GCD: binary GCD, Lehmer's algorithm and Möller's half-GCD.
//
// The size gates are collected in Thresholds and can be tuned at run time
// with SetThresholds. Bitwise operations and shifts follow infinite
// two's-complement semantics, so -1 behaves as an endless run of one bits.
//
// Operations whose outcome depends on argument values (division, roots,
// parsing, checked conversions) return an error. The errors carry a Kind
// and match the sentinel values with errors.Is.
package einteger
