package mnemonic

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

// syntheticWordlist builds a wordlist of w0000..w2047 so index fixtures can
// be asserted without depending on any particular published list.
func syntheticWordlist(t *testing.T) *Wordlist {
	t.Helper()

	words := make([]string, WordlistSize)
	for i := range words {
		words[i] = fmt.Sprintf("w%04d", i)
	}

	wl, err := NewWordlist(words)
	require.NoError(t, err)

	return wl
}

func phraseFromIndices(t *testing.T, wl *Wordlist, indices []int) string {
	t.Helper()
	require.Len(t, indices, WordCount)

	words := make([]string, WordCount)
	for i, idx := range indices {
		words[i] = wl.Word(idx)
	}

	return strings.Join(words, " ")
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)

	return b
}

func TestEncodeKnownIndices(t *testing.T) {
	wl := syntheticWordlist(t)

	tests := []struct {
		name    string
		entropy string
		indices []int
	}{
		{
			name:    "All zero entropy",
			entropy: "00000000000000000000000000000000",
			indices: []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3},
		},
		{
			name:    "Ascending bytes",
			entropy: "a0a1a2a3a4a5a6a7a8a9aaabacadaeaf",
			indices: []int{1285, 104, 1351, 586, 723, 670, 1301, 426, 1373, 811, 861, 757},
		},
		{
			name:    "Repeated 0x7f",
			entropy: "7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f",
			indices: []int{1019, 2015, 1790, 2039, 1983, 1533, 2031, 1919, 1019, 2015, 1790, 2040},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entropy := mustHex(t, tt.entropy)

			phrase, err := Encode(entropy, wl)
			require.NoError(t, err)
			assert.Equal(t, phraseFromIndices(t, wl, tt.indices), phrase)

			decoded, err := DecodeStrict(phrase, wl)
			require.NoError(t, err)
			assert.Equal(t, entropy, decoded)
		})
	}
}

func TestDecodeIgnoresChecksum(t *testing.T) {
	wl := syntheticWordlist(t)

	// Twelve zero words embed checksum 0, but the checksum of all-zero
	// entropy is 3. Permissive decode accepts the phrase, strict does not.
	phrase := phraseFromIndices(t, wl, []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})

	entropy, err := Decode(phrase, wl)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, EntropySize), entropy)

	_, err = DecodeStrict(phrase, wl)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestDecodeStrictAcceptsCanonicalPhrase(t *testing.T) {
	wl := syntheticWordlist(t)

	phrase := phraseFromIndices(t, wl, []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3})

	entropy, err := DecodeStrict(phrase, wl)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, EntropySize), entropy)
}

func TestDecodeErrors(t *testing.T) {
	wl := syntheticWordlist(t)

	tests := []struct {
		name   string
		phrase string
		want   error
	}{
		{
			name:   "Eleven words",
			phrase: strings.Repeat("w0000 ", 10) + "w0000",
			want:   ErrInvalidMnemonicLength,
		},
		{
			name:   "Thirteen words",
			phrase: strings.Repeat("w0000 ", 12) + "w0000",
			want:   ErrInvalidMnemonicLength,
		},
		{
			name:   "Empty phrase",
			phrase: "",
			want:   ErrInvalidMnemonicLength,
		},
		{
			name:   "Word missing from list",
			phrase: strings.Repeat("w0000 ", 11) + "zebra",
			want:   ErrUnknownWord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.phrase, wl)
			assert.ErrorIs(t, err, tt.want)

			_, err = DecodeStrict(tt.phrase, wl)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeToleratesExtraWhitespace(t *testing.T) {
	wl := syntheticWordlist(t)

	canonical := phraseFromIndices(t, wl, []int{1285, 104, 1351, 586, 723, 670, 1301, 426, 1373, 811, 861, 757})
	messy := "  " + strings.ReplaceAll(canonical, " ", " \t\n ") + "\n"

	want, err := Decode(canonical, wl)
	require.NoError(t, err)

	got, err := Decode(messy, wl)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEncodeErrors(t *testing.T) {
	wl := syntheticWordlist(t)

	tests := []struct {
		name    string
		entropy []byte
	}{
		{name: "Nil entropy", entropy: nil},
		{name: "Fifteen bytes", entropy: make([]byte, 15)},
		{name: "Seventeen bytes", entropy: make([]byte, 17)},
		{name: "Thirty-two bytes", entropy: make([]byte, 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.entropy, wl)
			assert.ErrorIs(t, err, ErrInvalidEntropyLength)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	wl := syntheticWordlist(t)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 256; i++ {
		entropy := make([]byte, EntropySize)
		_, err := rng.Read(entropy)
		require.NoError(t, err)

		phrase, err := Encode(entropy, wl)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(phrase), WordCount)

		decoded, err := DecodeStrict(phrase, wl)
		require.NoError(t, err)
		assert.Equal(t, entropy, decoded)
	}
}

func TestRoundTripLeadingZeros(t *testing.T) {
	wl := syntheticWordlist(t)

	// Entropy starting with zero bytes must survive the big.Int packing.
	entropy := mustHex(t, "00000000000000000000000000000001")

	phrase, err := Encode(entropy, wl)
	require.NoError(t, err)

	decoded, err := DecodeStrict(phrase, wl)
	require.NoError(t, err)
	assert.Equal(t, entropy, decoded)
	assert.Len(t, decoded, EntropySize)
}

// TestEncodeMatchesReferenceLibrary pins the codec against the widely
// deployed go-bip39 implementation over the English list.
func TestEncodeMatchesReferenceLibrary(t *testing.T) {
	wl := English()
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 64; i++ {
		entropy := make([]byte, EntropySize)
		_, err := rng.Read(entropy)
		require.NoError(t, err)

		phrase, err := Encode(entropy, wl)
		require.NoError(t, err)

		want, err := bip39.NewMnemonic(entropy)
		require.NoError(t, err)
		assert.Equal(t, want, phrase)

		decoded, err := DecodeStrict(phrase, wl)
		require.NoError(t, err)
		assert.Equal(t, entropy, decoded)

		libEntropy, err := bip39.EntropyFromMnemonic(phrase)
		require.NoError(t, err)
		assert.Equal(t, libEntropy, decoded)
	}
}

func TestEncodeEnglishZeroEntropy(t *testing.T) {
	phrase, err := Encode(make([]byte, EntropySize), English())
	require.NoError(t, err)

	want := strings.Repeat("abandon ", 11) + "about"
	assert.Equal(t, want, phrase)
}

func TestSeedKnownVectors(t *testing.T) {
	tests := []struct {
		name       string
		phrase     string
		passphrase string
		seed       string
	}{
		{
			name:       "Zero entropy phrase without passphrase",
			phrase:     strings.Repeat("abandon ", 11) + "about",
			passphrase: "",
			seed:       "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4",
		},
		{
			name:       "Zero entropy phrase with TREZOR passphrase",
			phrase:     strings.Repeat("abandon ", 11) + "about",
			passphrase: "TREZOR",
			seed:       "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
		},
		{
			name:       "Recovery phrase without passphrase",
			phrase:     "session cigar grape merry useful churn fatal thought very any arm unaware",
			passphrase: "",
			seed:       "4fce6e7bc42009866c9927076501a7ad4238ee37e8c6974c5d027e84fcad94b607f6be908652416e40b508e3570673343e623c0d319e519f99230d9ab2fd278c",
		},
		{
			name:       "Recovery phrase with passphrase",
			phrase:     "clock fresh security field caution effort gorilla speed plastic common tomato echo",
			passphrase: "x",
			seed:       "a1ba94937151677a7559383898b03ff34d8d35af4d0c44bf6cdaac40efc030bd088d0900a301c444b82316229fe01677dbeeacc96bfc7825dd077b8bba6473d1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := Seed(tt.phrase, tt.passphrase)
			assert.Equal(t, tt.seed, hex.EncodeToString(seed))
			assert.Len(t, seed, SeedSize)
		})
	}
}

func TestSeedMatchesReferenceLibrary(t *testing.T) {
	phrases := []string{
		"session cigar grape merry useful churn fatal thought very any arm unaware",
		"clock fresh security field caution effort gorilla speed plastic common tomato echo",
		strings.Repeat("abandon ", 11) + "about",
	}

	for _, phrase := range phrases {
		for _, passphrase := range []string{"", "TREZOR", "correct horse"} {
			assert.Equal(t, bip39.NewSeed(phrase, passphrase), Seed(phrase, passphrase))
		}
	}
}

func TestSeedNormalizesWhitespace(t *testing.T) {
	canonical := "session cigar grape merry useful churn fatal thought very any arm unaware"
	messy := "  session\tcigar  grape merry useful churn\nfatal thought very any arm unaware "

	assert.Equal(t, Seed(canonical, ""), Seed(messy, ""))
}

func TestSeedDeterministic(t *testing.T) {
	phrase := "session cigar grape merry useful churn fatal thought very any arm unaware"

	assert.Equal(t, Seed(phrase, "pass"), Seed(phrase, "pass"))
	assert.NotEqual(t, Seed(phrase, "pass"), Seed(phrase, "other"))
	assert.NotEqual(t, Seed(phrase, ""), Seed(phrase, "pass"))
}

func BenchmarkEncode(b *testing.B) {
	wl := English()
	entropy := bytes.Repeat([]byte{0xA5}, EntropySize)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(entropy, wl)
	}
}

func BenchmarkDecode(b *testing.B) {
	wl := English()
	phrase := strings.Repeat("abandon ", 11) + "about"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Decode(phrase, wl)
	}
}

func BenchmarkSeed(b *testing.B) {
	phrase := strings.Repeat("abandon ", 11) + "about"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Seed(phrase, "")
	}
}
