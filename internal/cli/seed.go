package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/seedrecover/internal/validation"
	"github.com/Davincible/seedrecover/pkg/config"
	"github.com/Davincible/seedrecover/pkg/crypto/mnemonic"
	"github.com/Davincible/seedrecover/pkg/secure"
)

// SeedResult carries the derived seed for JSON output.
type SeedResult struct {
	Seed string `json:"seed"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(cfg *config.Config) *cobra.Command {
	var (
		passphrase   string
		wordlistPath string
		strict       bool
		outputJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "seed [mnemonic]",
		Short: "Derive the 64-byte seed from a mnemonic phrase",
		Long: `Derive the wallet seed from a 12-word mnemonic phrase and an optional
passphrase. The seed is printed as 128 hex characters.`,
		Example: `  # Interactive entry
  seedrecover seed

  # Mnemonic as argument
  seedrecover seed "word1 word2 ... word12"

  # With a passphrase
  seedrecover seed "word1 ... word12" --passphrase "my passphrase"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ = cmd.Flags().GetBool("json")

			wordlist, err := loadWordlist(wordlistPath)
			if err != nil {
				return err
			}

			phrase, err := readMnemonicArgOrPrompt(args)
			if err != nil {
				return err
			}

			if err := validation.ValidateMnemonic(phrase); err != nil {
				return err
			}

			// Decode first so unknown words and bad checksums are
			// reported before any seed is produced.
			entropy, err := decodePhrase(phrase, wordlist, strict)
			if err != nil {
				return fmt.Errorf("invalid mnemonic: %w", err)
			}
			secure.ClearBytes(&entropy)

			if passphrase == "" && !cmd.Flags().Changed("passphrase") && !outputJSON {
				passphrase, err = readPassphrase("Enter passphrase (press Enter if none): ")
				if err != nil {
					return fmt.Errorf("failed to read passphrase: %w", err)
				}
			}
			if err := validation.ValidatePassphrase(passphrase); err != nil {
				return err
			}

			seed := mnemonic.Seed(phrase, passphrase)

			if outputJSON {
				data, err := json.MarshalIndent(SeedResult{Seed: hex.EncodeToString(seed)}, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			} else {
				green := color.New(color.FgGreen, color.Bold)
				cyan := color.New(color.FgCyan, color.Bold)

				fmt.Println()
				green.Println("✓ Seed derived")
				fmt.Println()
				cyan.Println("Seed (hex):")
				fmt.Printf("  %s\n", hex.EncodeToString(seed))
			}

			secure.ClearBytes(&seed)
			secure.ClearString(&phrase)

			return nil
		},
	}

	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "Passphrase for seed derivation")
	cmd.Flags().StringVarP(&wordlistPath, "wordlist", "w", cfg.Wordlist, "Path to a custom 2048-word list")
	cmd.Flags().BoolVar(&strict, "strict", cfg.StrictChecksum, "Reject mnemonics with an invalid checksum")

	return cmd
}
