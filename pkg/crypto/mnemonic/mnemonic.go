// Package mnemonic converts between 12-word recovery phrases and the
// 16 bytes of entropy they encode, and derives the 64-byte seed a phrase
// and passphrase determine.
//
// A phrase encodes 132 bits: 128 bits of entropy followed by a 4-bit
// checksum taken from the top of SHA-256(entropy). Each word contributes
// 11 bits, most significant bits first.
package mnemonic

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// WordCount is the exact number of words in a phrase.
	WordCount = 12

	// EntropySize is the exact entropy length in bytes.
	EntropySize = 16

	// SeedSize is the length of a derived seed in bytes.
	SeedSize = 64

	wordBits     = 11
	checksumBits = 4

	seedIterations = 2048
	seedSaltPrefix = "mnemonic"
)

var (
	ErrInvalidMnemonicLength = errors.New("mnemonic: phrase must contain exactly 12 words")
	ErrUnknownWord           = errors.New("mnemonic: word not present in wordlist")
	ErrInvalidEntropyLength  = errors.New("mnemonic: entropy must be exactly 16 bytes")
	ErrChecksumMismatch      = errors.New("mnemonic: checksum does not match entropy")
)

var (
	wordRadix    = big.NewInt(1 << wordBits)
	checksumMask = big.NewInt((1 << checksumBits) - 1)
)

// Decode converts a 12-word phrase to its 16-byte entropy. The embedded
// 4-bit checksum is extracted but not verified, so phrases written by
// tooling that never recomputed checksums stay decodable. Use DecodeStrict
// to enforce the checksum.
func Decode(phrase string, wordlist *Wordlist) ([]byte, error) {
	entropy, _, err := decode(phrase, wordlist)
	return entropy, err
}

// DecodeStrict converts a 12-word phrase to its 16-byte entropy and fails
// with ErrChecksumMismatch when the embedded checksum disagrees with the
// one recomputed from the extracted entropy.
func DecodeStrict(phrase string, wordlist *Wordlist) ([]byte, error) {
	entropy, checksum, err := decode(phrase, wordlist)
	if err != nil {
		return nil, err
	}

	if want := checksumNibble(entropy); checksum != want {
		return nil, fmt.Errorf("%w: embedded %#x, computed %#x", ErrChecksumMismatch, checksum, want)
	}

	return entropy, nil
}

func decode(phrase string, wordlist *Wordlist) ([]byte, byte, error) {
	words := strings.Fields(phrase)
	if len(words) != WordCount {
		return nil, 0, fmt.Errorf("%w: got %d", ErrInvalidMnemonicLength, len(words))
	}

	// Accumulate the 12 eleven-bit indices, most significant word first,
	// into a single 132-bit integer.
	value := new(big.Int)
	for _, word := range words {
		index, ok := wordlist.Index(word)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q", ErrUnknownWord, word)
		}

		value.Mul(value, wordRadix)
		value.Add(value, big.NewInt(int64(index)))
	}

	// The low 4 bits carry the checksum, the 128 bits above it the entropy.
	checksum := byte(new(big.Int).And(value, checksumMask).Uint64())
	value.Rsh(value, checksumBits)

	entropy := make([]byte, EntropySize)
	value.FillBytes(entropy)

	return entropy, checksum, nil
}

// Encode converts 16 bytes of entropy to its canonical 12-word phrase,
// recomputing the checksum from the entropy.
func Encode(entropy []byte, wordlist *Wordlist) (string, error) {
	if len(entropy) != EntropySize {
		return "", fmt.Errorf("%w: got %d", ErrInvalidEntropyLength, len(entropy))
	}

	// 128 entropy bits followed by the 4 checksum bits, sliced into 12
	// eleven-bit groups from the least significant end.
	value := new(big.Int).SetBytes(entropy)
	value.Lsh(value, checksumBits)
	value.Or(value, big.NewInt(int64(checksumNibble(entropy))))

	words := make([]string, WordCount)
	rem := new(big.Int)
	for i := WordCount - 1; i >= 0; i-- {
		value.DivMod(value, wordRadix, rem)
		words[i] = wordlist.Word(int(rem.Int64()))
	}

	return strings.Join(words, " "), nil
}

// Seed derives the 64-byte seed for a phrase and passphrase using
// PBKDF2-HMAC-SHA512 with 2048 iterations. The password is the phrase's
// words joined by single spaces; the salt is "mnemonic" plus the
// passphrase. Deterministic: identical inputs always yield the same seed.
func Seed(phrase, passphrase string) []byte {
	password := strings.Join(strings.Fields(phrase), " ")
	salt := seedSaltPrefix + passphrase

	return pbkdf2.Key([]byte(password), []byte(salt), seedIterations, SeedSize, sha512.New)
}

// checksumNibble returns the 4-bit checksum of entropy: the top four bits
// of the first byte of its SHA-256 digest.
func checksumNibble(entropy []byte) byte {
	digest := sha256.Sum256(entropy)
	return digest[0] >> 4
}
