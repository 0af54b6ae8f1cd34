// Package validation pre-checks user input before it reaches the codec
// and derivation layers. These checks cover the obvious mistakes typed
// input produces; word membership and checksum verification stay with the
// codec, which is authoritative.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Davincible/seedrecover/pkg/crypto/hdkey"
	"github.com/Davincible/seedrecover/pkg/crypto/mnemonic"
)

// ValidateMnemonic checks that the phrase has exactly 12 words and no
// control characters. It deliberately does not inspect the words
// themselves: that depends on the wordlist in use.
func ValidateMnemonic(phrase string) error {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return fmt.Errorf("mnemonic cannot be empty")
	}

	words := strings.Fields(phrase)
	if len(words) != mnemonic.WordCount {
		return fmt.Errorf("mnemonic must have exactly %d words (got %d)", mnemonic.WordCount, len(words))
	}

	for i, word := range words {
		for _, r := range word {
			if unicode.IsControl(r) {
				return fmt.Errorf("word %d contains a control character", i+1)
			}
		}
	}

	return nil
}

// ValidatePassphrase rejects passphrases that would be unrepresentable or
// are suspiciously long. Empty passphrases are valid.
func ValidatePassphrase(passphrase string) error {
	if len(passphrase) > 256 {
		return fmt.Errorf("passphrase too long (max 256 characters)")
	}

	for i, r := range passphrase {
		if r == 0 {
			return fmt.Errorf("passphrase contains null character at position %d", i)
		}
	}

	return nil
}

// ValidateDerivationPath checks BIP32 path syntax.
func ValidateDerivationPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("derivation path cannot be empty")
	}

	return hdkey.ValidatePath(path)
}

// SanitizeInput normalizes line endings and strips surrounding whitespace
// from pasted or piped input.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)

	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")

	lines := strings.Split(input, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return strings.Join(lines, "\n")
}
