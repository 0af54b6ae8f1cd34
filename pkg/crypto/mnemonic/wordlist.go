package mnemonic

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// WordlistSize is the number of words every wordlist must contain. Each
// mnemonic word encodes 11 bits, so the list holds 2^11 entries.
const WordlistSize = 2048

var (
	ErrInvalidWordlistSize = errors.New("mnemonic: wordlist must contain exactly 2048 words")
	ErrDuplicateWord       = errors.New("mnemonic: wordlist contains a duplicate word")
)

// Wordlist is an ordered, immutable set of 2048 unique words with a
// bidirectional word/index mapping. Safe for concurrent readers.
type Wordlist struct {
	words   []string
	indices map[string]int
}

// NewWordlist builds a Wordlist from an ordered slice of exactly 2048
// unique words. The slice is copied.
func NewWordlist(words []string) (*Wordlist, error) {
	if len(words) != WordlistSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWordlistSize, len(words))
	}

	wl := &Wordlist{
		words:   make([]string, WordlistSize),
		indices: make(map[string]int, WordlistSize),
	}

	for i, word := range words {
		if _, seen := wl.indices[word]; seen {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateWord, word)
		}

		wl.words[i] = word
		wl.indices[word] = i
	}

	return wl, nil
}

// ParseWordlist reads a newline-delimited wordlist, one word per line with
// the zero-based line number as its index. Blank lines and surrounding
// whitespace are ignored.
func ParseWordlist(r io.Reader) (*Wordlist, error) {
	words := make([]string, 0, WordlistSize)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}

		words = append(words, word)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read wordlist: %w", err)
	}

	return NewWordlist(words)
}

var (
	englishOnce sync.Once
	english     *Wordlist
)

// English returns the standard English wordlist. The list is compiled in,
// so it never fails to load.
func English() *Wordlist {
	englishOnce.Do(func() {
		wl, err := NewWordlist(wordlists.English)
		if err != nil {
			panic(fmt.Sprintf("mnemonic: embedded english wordlist invalid: %v", err))
		}

		english = wl
	})

	return english
}

// Word returns the word at index i. Panics if i is out of range, matching
// slice semantics; decoded word indices are always in range by
// construction.
func (w *Wordlist) Word(i int) string {
	return w.words[i]
}

// Index returns the index of word and whether the word is present.
func (w *Wordlist) Index(word string) (int, bool) {
	i, ok := w.indices[word]
	return i, ok
}

// Words returns a copy of the ordered word slice.
func (w *Wordlist) Words() []string {
	words := make([]string, len(w.words))
	copy(words, w.words)

	return words
}
