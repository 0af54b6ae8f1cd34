// Package shamir recovers secrets from shares of a Shamir split over
// GF(256). Splitting is out of scope: the shares are issued by an external
// tool, and this package only reconstructs what that tool distributed.
package shamir

import (
	"errors"
	"fmt"

	"github.com/Davincible/seedrecover/pkg/crypto/gf256"
)

// The splitting tool issues its two shares at fixed public x-coordinates.
const (
	shareIndexA = 1
	shareIndexB = 2
)

var (
	ErrShareLengthMismatch     = errors.New("shamir: shares must have equal non-zero length")
	ErrUnsupportedShareIndices = errors.New("shamir: unsupported share indices")
)

// Share is a single evaluation point of the splitting polynomials: Data[i]
// is the value at x=Index of an independent degree-1 (or higher) polynomial
// whose constant term is byte i of the secret.
type Share struct {
	Index byte
	Data  []byte
}

// Reconstruct recovers the secret from the two shares issued at the fixed
// x-coordinates 1 and 2. The shares may be passed in either order; any
// other index pair fails with ErrUnsupportedShareIndices.
//
// Each byte position is solved independently: with points (x1,y1) and
// (x2,y2) of a degree-1 polynomial, the slope is (y1+y2)/(x1+x2) and the
// constant term is y1 + slope*x1, all in GF(256) where addition doubles as
// subtraction.
func Reconstruct(a, b Share) ([]byte, error) {
	if err := VerifyCompatible([]Share{a, b}); err != nil {
		return nil, err
	}

	pair := [2]byte{a.Index, b.Index}
	if pair != [2]byte{shareIndexA, shareIndexB} && pair != [2]byte{shareIndexB, shareIndexA} {
		return nil, fmt.Errorf("%w: want x-coordinates {%d, %d}, got {%d, %d}",
			ErrUnsupportedShareIndices, shareIndexA, shareIndexB, a.Index, b.Index)
	}

	x1, x2 := a.Index, b.Index

	// x1+x2 is 3 for the fixed pair, so the inverse always exists.
	denom, err := gf256.Inverse(gf256.Add(x1, x2))
	if err != nil {
		return nil, err
	}

	secret := make([]byte, len(a.Data))
	for i := range secret {
		y1, y2 := a.Data[i], b.Data[i]

		slope := gf256.Mul(gf256.Add(y1, y2), denom)
		secret[i] = gf256.Add(y1, gf256.Mul(slope, x1))
	}

	return secret, nil
}

// Combine recovers the secret from two or more shares at arbitrary
// distinct non-zero x-coordinates by Lagrange interpolation at x=0,
// independently per byte position. On the fixed {1, 2} pair it agrees
// with Reconstruct.
func Combine(shares []Share) ([]byte, error) {
	if err := VerifyCompatible(shares); err != nil {
		return nil, err
	}

	// The Lagrange basis at x=0 depends only on the x-coordinates, so it
	// is computed once and reused across byte positions.
	basis := make([]byte, len(shares))
	for i, si := range shares {
		numerator := byte(1)
		denominator := byte(1)

		for j, sj := range shares {
			if i == j {
				continue
			}

			// Evaluated at x=0 the numerator factor 0-xj is xj itself.
			numerator = gf256.Mul(numerator, sj.Index)
			denominator = gf256.Mul(denominator, gf256.Sub(si.Index, sj.Index))
		}

		b, err := gf256.Div(numerator, denominator)
		if err != nil {
			return nil, err
		}

		basis[i] = b
	}

	secret := make([]byte, len(shares[0].Data))
	for k := range secret {
		var sum byte
		for i, share := range shares {
			sum = gf256.Add(sum, gf256.Mul(share.Data[k], basis[i]))
		}

		secret[k] = sum
	}

	return secret, nil
}

// VerifyCompatible reports whether the shares could have come from a
// single split: at least two of them, pairwise distinct non-zero indices,
// and equal non-zero data lengths. It does not reconstruct anything and
// reveals nothing about the secret.
func VerifyCompatible(shares []Share) error {
	if len(shares) < 2 {
		return fmt.Errorf("%w: need at least 2 shares, got %d", ErrUnsupportedShareIndices, len(shares))
	}

	want := len(shares[0].Data)
	seen := make(map[byte]bool, len(shares))

	for _, share := range shares {
		if len(share.Data) == 0 {
			return fmt.Errorf("%w: share %d is empty", ErrShareLengthMismatch, share.Index)
		}
		if len(share.Data) != want {
			return fmt.Errorf("%w: share %d has %d bytes, want %d",
				ErrShareLengthMismatch, share.Index, len(share.Data), want)
		}

		if share.Index == 0 {
			return fmt.Errorf("%w: index 0 is the secret itself", ErrUnsupportedShareIndices)
		}
		if seen[share.Index] {
			return fmt.Errorf("%w: duplicate index %d", ErrUnsupportedShareIndices, share.Index)
		}

		seen[share.Index] = true
	}

	return nil
}
