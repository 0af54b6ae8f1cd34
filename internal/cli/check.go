package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/seedrecover/internal/validation"
	"github.com/Davincible/seedrecover/pkg/config"
	"github.com/Davincible/seedrecover/pkg/crypto/mnemonic"
	"github.com/Davincible/seedrecover/pkg/crypto/shamir"
	"github.com/Davincible/seedrecover/pkg/secure"
)

// NewCheckCommand creates a command to check share compatibility without
// revealing the secret.
func NewCheckCommand(cfg *config.Config) *cobra.Command {
	var wordlistPath string

	cmd := &cobra.Command{
		Use:   "check [share...]",
		Short: "Check if share mnemonics are compatible for recovery",
		Long: `Analyzes share mnemonics to determine whether they can be combined
for recovery. The secret itself is never computed or displayed.`,
		Example: `  # Check shares interactively
  seedrecover check

  # Check specific shares
  seedrecover check "word1 ... word12" "word1 ... word12"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			wordlist, err := loadWordlist(wordlistPath)
			if err != nil {
				return err
			}
			return checkShares(args, wordlist)
		},
	}

	cmd.Flags().StringVarP(&wordlistPath, "wordlist", "w", cfg.Wordlist, "Path to a custom 2048-word list")

	return cmd
}

func checkShares(args []string, wordlist *mnemonic.Wordlist) error {
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan)
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	var phrases []string

	// Get shares from args or interactively
	if len(args) > 0 {
		phrases = args
	} else {
		fmt.Println()
		cyan.Println("SHARE COMPATIBILITY CHECKER")
		fmt.Println("=" + strings.Repeat("=", 40))
		fmt.Println()
		fmt.Println("Enter shares to check (press Enter on an empty line when done):")
		fmt.Println()

		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Printf("Share %d: ", len(phrases)+1)

			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}

			line = validation.SanitizeInput(line)
			if line == "" {
				if len(phrases) >= 2 {
					break
				}
				if len(phrases) > 0 {
					fmt.Println("Enter at least 2 shares to check compatibility")
				}
				continue
			}

			phrases = append(phrases, line)
		}
	}

	if len(phrases) < 2 {
		return fmt.Errorf("need at least 2 shares to check compatibility")
	}

	fmt.Println()
	cyan.Printf("Analyzing %d shares...\n", len(phrases))
	fmt.Println()

	// Validate each share and decode it. Entropy is kept only long
	// enough for the compatibility check and never displayed.
	shares := make([]shamir.Share, 0, len(phrases))
	allValid := true

	for i := range phrases {
		phrases[i] = validation.SanitizeInput(phrases[i])
		phrase := phrases[i]

		if err := validation.ValidateMnemonic(phrase); err != nil {
			red.Printf("Share %d: ❌ Invalid - %v\n", i+1, err)
			allValid = false
			continue
		}

		entropy, err := mnemonic.Decode(phrase, wordlist)
		if err != nil {
			red.Printf("Share %d: ❌ Invalid - %v\n", i+1, err)
			allValid = false
			continue
		}

		green.Printf("Share %d: ✓ Valid\n", i+1)
		fmt.Printf("  Words: %d\n", len(strings.Fields(phrase)))
		if _, err := mnemonic.DecodeStrict(phrase, wordlist); err != nil {
			fmt.Printf("  Checksum: mismatch (raw share data, expected for split shares)\n")
		} else {
			fmt.Printf("  Checksum: valid\n")
		}

		shares = append(shares, shamir.Share{Index: byte(len(shares) + 1), Data: entropy})
	}

	defer func() {
		for i := range shares {
			secure.ClearBytes(&shares[i].Data)
		}
	}()

	fmt.Println()

	if !allValid {
		red.Println("❌ INVALID SHARES FOUND")
		fmt.Println("Fix the invalid shares before attempting recovery.")
		return nil
	}

	// Identical phrases almost always mean the same share was entered
	// twice, which cannot recover anything useful.
	for i := 0; i < len(phrases); i++ {
		for j := i + 1; j < len(phrases); j++ {
			if secure.ConstantTimeCompare([]byte(phrases[i]), []byte(phrases[j])) {
				yellow.Printf("⚠️  Share %d and share %d are identical\n", i+1, j+1)
				fmt.Println("Recovery needs two distinct shares of the same wallet.")
				fmt.Println()
			}
		}
	}

	if err := shamir.VerifyCompatible(shares); err != nil {
		red.Println("❌ INCOMPATIBLE SHARES")
		fmt.Printf("These shares cannot be combined: %v\n", err)
		return nil
	}

	green.Println("✅ SHARES ARE COMPATIBLE!")
	if len(shares) == 2 {
		fmt.Println("You can recover the wallet with: seedrecover recover")
	} else {
		fmt.Printf("Recovery uses exactly two shares; pick two of the %d entered.\n", len(shares))
	}

	return nil
}
