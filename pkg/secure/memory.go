// Package secure wipes and compares sensitive byte material. Wiping is
// best effort: Go may have copied the bytes during earlier processing,
// but clearing the buffers we control shortens how long recovered
// secrets stay resident.
package secure

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"runtime"
)

// Zero overwrites b with zero bytes.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// ClearBytes zeroes the slice behind b and drops the reference.
func ClearBytes(b *[]byte) {
	if b == nil || *b == nil {
		return
	}

	Zero(*b)
	*b = nil
	runtime.GC()
}

// ClearString drops the string behind s. Strings are immutable, so the
// backing bytes cannot be overwritten; releasing the reference and
// collecting is the best available.
func ClearString(s *string) {
	if s == nil {
		return
	}

	*s = ""
	runtime.GC()
}

// ConstantTimeCompare reports whether x and y are equal without leaking
// where they diverge. Length is compared first and is not hidden.
func ConstantTimeCompare(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}

	return subtle.ConstantTimeCompare(x, y) == 1
}

// SecureRandom returns size cryptographically random bytes.
func SecureRandom(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		Zero(b)
		return nil, fmt.Errorf("generate random bytes: %w", err)
	}

	return b, nil
}
