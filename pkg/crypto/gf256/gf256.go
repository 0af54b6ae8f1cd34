// Package gf256 implements arithmetic over GF(2^8), the 256-element binary
// field the share reconstruction scheme operates in.
//
// Elements are bytes. The field is defined by the Rijndael reduction
// polynomial x^8 + x^4 + x^3 + x + 1 (0x11B), the same polynomial used by
// AES and SLIP-0039. All operations are pure functions and safe for
// unrestricted concurrent use.
package gf256

import "errors"

// ReductionPoly is the irreducible polynomial defining the field:
// x^8 + x^4 + x^3 + x + 1.
const ReductionPoly = 0x11B

// ErrUndefinedInverse is returned when the multiplicative inverse of the
// zero element is requested.
var ErrUndefinedInverse = errors.New("gf256: zero has no multiplicative inverse")

// Inverse lookup table, built once at init from the exp/log tables over
// generator 3.
var (
	expTable [256]byte
	logTable [256]byte
	invTable [256]byte
)

func init() {
	x := byte(1)
	const generator = 3

	for i := 0; i < 255; i++ {
		expTable[i] = x
		logTable[x] = byte(i)
		x = Mul(x, generator)
	}
	expTable[255] = expTable[0]

	// inverse(3^k) = 3^(255-k); inverse(1) closes the cycle via exp[255].
	for a := 1; a < 256; a++ {
		invTable[a] = expTable[255-int(logTable[a])]
	}
}

// Add returns the sum of a and b. Addition is bitwise XOR: the identity is
// 0 and every element is its own additive inverse.
func Add(a, b byte) byte {
	return a ^ b
}

// Sub returns the difference of a and b. In a characteristic-2 field
// subtraction is identical to addition.
func Sub(a, b byte) byte {
	return a ^ b
}

// Mul returns the product of a and b: carry-less polynomial multiplication
// reduced modulo ReductionPoly, iterating over the 8 bit positions of b.
func Mul(a, b byte) byte {
	var product byte

	for i := 0; i < 8; i++ {
		if b&1 == 1 {
			product ^= a
		}

		carry := a & 0x80
		a <<= 1
		if carry != 0 {
			// Fold the overflowed x^8 term back in. The high bit is
			// already gone from the shift, so only the low byte of
			// the polynomial remains to be applied.
			a ^= ReductionPoly & 0xFF
		}

		b >>= 1
	}

	return product
}

// Inverse returns the unique b with Mul(a, b) == 1. It fails with
// ErrUndefinedInverse when a is zero.
func Inverse(a byte) (byte, error) {
	if a == 0 {
		return 0, ErrUndefinedInverse
	}
	return invTable[a], nil
}

// Div returns a divided by b. It fails with ErrUndefinedInverse when b is
// zero.
func Div(a, b byte) (byte, error) {
	inv, err := Inverse(b)
	if err != nil {
		return 0, err
	}
	return Mul(a, inv), nil
}
