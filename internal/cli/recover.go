package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/seedrecover/internal/validation"
	"github.com/Davincible/seedrecover/pkg/config"
	"github.com/Davincible/seedrecover/pkg/crypto/mnemonic"
	"github.com/Davincible/seedrecover/pkg/crypto/shamir"
	"github.com/Davincible/seedrecover/pkg/secure"
	"github.com/Davincible/seedrecover/pkg/storage"
)

// RecoverResult carries the recovered wallet material for JSON output.
type RecoverResult struct {
	Mnemonic string `json:"mnemonic"`
	Seed     string `json:"seed"`
}

// NewRecoverCommand creates the recover command.
func NewRecoverCommand(cfg *config.Config) *cobra.Command {
	var (
		inputFile    string
		passphrase   string
		wordlistPath string
		outputFile   string
		strict       bool
		outputJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "recover [share-1] [share-2]",
		Short: "Recover a wallet from two share mnemonics",
		Long: `Recover the original wallet mnemonic and seed from two share mnemonics.

The shares are 12-word phrases produced by splitting a wallet's entropy.
The first share entered is treated as share 1 and the second as share 2,
so enter them in the order they were issued.

Shares can be passed as quoted arguments, loaded from a JSON file, or
entered interactively.

Examples:
  # Interactive entry
  seedrecover recover

  # Shares as arguments
  seedrecover recover "word1 word2 ... word12" "word1 word2 ... word12"

  # Shares from a file
  seedrecover recover --input shares.json

  # Save the recovered wallet to an encrypted file
  seedrecover recover --output wallet.enc`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ = cmd.Flags().GetBool("json")

			wordlist, err := loadWordlist(wordlistPath)
			if err != nil {
				return err
			}

			var phrases []string
			switch {
			case inputFile != "":
				phrases, err = readSharesFromFile(inputFile)
				if err != nil {
					return fmt.Errorf("failed to read shares: %w", err)
				}
			case len(args) == 2:
				phrases = args
			case len(args) == 1:
				return fmt.Errorf("recovery requires two shares, got one")
			default:
				phrases, err = collectShareMnemonics(2, wordlist)
				if err != nil {
					return err
				}
			}

			if len(phrases) != 2 {
				return fmt.Errorf("recovery requires exactly two shares, got %d", len(phrases))
			}

			shares := make([]shamir.Share, len(phrases))
			for i, phrase := range phrases {
				entropy, err := decodePhrase(phrase, wordlist, strict)
				if err != nil {
					return fmt.Errorf("failed to decode share %d: %w", i+1, err)
				}
				shares[i] = shamir.Share{Index: byte(i + 1), Data: entropy}
			}

			slog.Debug("Decoded share mnemonics", "count", len(shares))

			secret, err := shamir.Reconstruct(shares[0], shares[1])
			if err != nil {
				return fmt.Errorf("failed to recover secret: %w", err)
			}

			phrase, err := mnemonic.Encode(secret, wordlist)
			if err != nil {
				return fmt.Errorf("failed to encode recovered entropy: %w", err)
			}

			if passphrase == "" && !cmd.Flags().Changed("passphrase") && !outputJSON {
				passphrase, err = readPassphrase("Enter wallet passphrase (press Enter if none): ")
				if err != nil {
					return fmt.Errorf("failed to read passphrase: %w", err)
				}
			}
			if err := validation.ValidatePassphrase(passphrase); err != nil {
				return err
			}

			seed := mnemonic.Seed(phrase, passphrase)

			if outputJSON {
				result := RecoverResult{
					Mnemonic: phrase,
					Seed:     hex.EncodeToString(seed),
				}
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			} else {
				displayRecovered(phrase, seed)
			}

			if outputFile != "" {
				if err := saveRecoveryRecord(outputFile, phrase, seed); err != nil {
					return err
				}
			}

			// Clear sensitive data
			for i := range shares {
				secure.ClearBytes(&shares[i].Data)
			}
			secure.ClearBytes(&secret)
			secure.ClearBytes(&seed)
			secure.ClearString(&phrase)

			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "JSON file containing the share phrases")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "Wallet passphrase for seed derivation")
	cmd.Flags().StringVarP(&wordlistPath, "wordlist", "w", cfg.Wordlist, "Path to a custom 2048-word list")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Save the recovered wallet to an encrypted file")
	cmd.Flags().BoolVar(&strict, "strict", cfg.StrictChecksum, "Reject shares with an invalid checksum")

	return cmd
}

// displayRecovered prints the recovered wallet material.
func displayRecovered(phrase string, seed []byte) {
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow)

	fmt.Println()
	green.Println("✓ Successfully recovered wallet!")
	fmt.Println()

	cyan.Println("Recovery Phrase:")
	fmt.Printf("  %s\n", phrase)
	fmt.Println()

	cyan.Println("Seed (hex):")
	fmt.Printf("  %s\n", hex.EncodeToString(seed))
	fmt.Println()

	yellow.Println("⚠️  Anyone with this phrase controls the wallet. Store it safely.")
}

// saveRecoveryRecord writes the recovered wallet to an encrypted file,
// prompting for the file password.
func saveRecoveryRecord(filename, phrase string, seed []byte) error {
	password, err := readPassphrase("Enter password for encrypted file: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := readPassphrase("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if !secure.ConstantTimeCompare([]byte(password), []byte(confirm)) {
		return fmt.Errorf("passwords do not match")
	}

	record := storage.RecoveryRecord{
		Mnemonic:  phrase,
		Seed:      hex.EncodeToString(seed),
		CreatedAt: time.Now().UTC(),
	}

	store := storage.NewRecordStore(filename)
	if err := store.Save(record, []byte(password)); err != nil {
		return fmt.Errorf("failed to save encrypted file: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ Encrypted recovery record saved to %s\n", filename)

	return nil
}
