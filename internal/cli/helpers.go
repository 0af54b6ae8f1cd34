package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Davincible/seedrecover/internal/validation"
	"github.com/Davincible/seedrecover/pkg/crypto/mnemonic"
)

// readPassphrase reads a passphrase from the terminal without echo,
// falling back to plain line reading when stdin is not a terminal.
func readPassphrase(prompt string) (string, error) {
	fmt.Print(prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		passBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(passBytes), nil
	}

	// Fallback for non-terminal
	reader := bufio.NewReader(os.Stdin)
	pass, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pass), nil
}

// readLine reads one line from stdin after printing prompt.
func readLine(prompt string) (string, error) {
	fmt.Print(prompt)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return validation.SanitizeInput(line), nil
}

// loadWordlist opens the wordlist at path, or returns the built-in
// English list when path is empty.
func loadWordlist(path string) (*mnemonic.Wordlist, error) {
	if path == "" {
		return mnemonic.English(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wordlist: %w", err)
	}
	defer file.Close()

	wordlist, err := mnemonic.ParseWordlist(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse wordlist %s: %w", path, err)
	}

	return wordlist, nil
}

// decodePhrase converts a phrase to entropy, verifying the checksum when
// strict is set.
func decodePhrase(phrase string, wordlist *mnemonic.Wordlist, strict bool) ([]byte, error) {
	if strict {
		return mnemonic.DecodeStrict(phrase, wordlist)
	}

	return mnemonic.Decode(phrase, wordlist)
}

// readSharesFromFile reads share mnemonics from a JSON file of the form
// {"shares": ["first phrase ...", "second phrase ..."]}.
func readSharesFromFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var data struct {
		Shares []string `json:"shares"`
	}

	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	if len(data.Shares) == 0 {
		return nil, fmt.Errorf("no shares found in file")
	}

	for i := range data.Shares {
		data.Shares[i] = validation.SanitizeInput(data.Shares[i])
	}

	green := color.New(color.FgGreen)
	green.Printf("Loaded %d shares from %s\n", len(data.Shares), filename)

	return data.Shares, nil
}

// collectShareMnemonics interactively prompts for exactly count share
// phrases, validating each as it is entered. The prompt states the
// x-coordinate each position is assigned.
func collectShareMnemonics(count int, wordlist *mnemonic.Wordlist) ([]string, error) {
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Println()
	yellow.Printf("Enter the %d share phrases, one per line\n", count)
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	phrases := make([]string, 0, count)

	for len(phrases) < count {
		fmt.Printf("Share %d (x=%d): ", len(phrases)+1, len(phrases)+1)

		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = validation.SanitizeInput(line)
		if line == "" {
			continue
		}

		if err := validation.ValidateMnemonic(line); err != nil {
			red.Printf("  ✗ Invalid share: %v\n", err)
			continue
		}

		// Membership check only; the checksum is inspected later.
		if _, err := mnemonic.Decode(line, wordlist); err != nil {
			red.Printf("  ✗ Invalid share: %v\n", err)
			continue
		}

		green.Println("  ✓ Valid share")
		phrases = append(phrases, line)
	}

	return phrases, nil
}

// readMnemonicArgOrPrompt takes the phrase from args when present,
// otherwise prompts for it.
func readMnemonicArgOrPrompt(args []string) (string, error) {
	if len(args) > 0 {
		return validation.SanitizeInput(strings.Join(args, " ")), nil
	}

	phrase, err := readLine("Enter mnemonic phrase: ")
	if err != nil {
		return "", err
	}

	if phrase == "" {
		return "", fmt.Errorf("no mnemonic provided")
	}

	return phrase, nil
}
