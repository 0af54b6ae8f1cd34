package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/seedrecover/internal/validation"
	"github.com/Davincible/seedrecover/pkg/config"
	"github.com/Davincible/seedrecover/pkg/crypto/hdkey"
	"github.com/Davincible/seedrecover/pkg/crypto/mnemonic"
	"github.com/Davincible/seedrecover/pkg/secure"
)

type DeriveResult struct {
	Path              string `json:"path"`
	PublicKey         string `json:"public_key"`
	ExtendedPublic    string `json:"extended_public"`
	ParentFingerprint string `json:"parent_fingerprint"`
	PrivateKey        string `json:"private_key,omitempty"`
	ExtendedPrivate   string `json:"extended_private,omitempty"`
}

func NewDeriveCommand(cfg *config.Config) *cobra.Command {
	var (
		path         string
		passphrase   string
		wordlistPath string
		strict       bool
		outputJSON   bool
		showPrivate  bool
	)

	cmd := &cobra.Command{
		Use:   "derive [mnemonic]",
		Short: "Derive HD wallet keys from a mnemonic phrase",
		Long: `Derive HD (Hierarchical Deterministic) keys from a mnemonic phrase
using BIP32/BIP44 derivation paths. Useful for confirming that a
recovered phrase controls the expected wallet.`,
		Example: `  # Derive the default Bitcoin path
  seedrecover derive

  # Derive Ethereum keys
  seedrecover derive --path "m/44'/60'/0'/0/0"

  # Include the private key in the output
  seedrecover derive --show-private`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputJSON, _ = cmd.Flags().GetBool("json")

			if path == "" {
				path = cfg.DerivationPath
			}
			if err := validation.ValidateDerivationPath(path); err != nil {
				return err
			}

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
			defer secure.ClearBytes(&seed)
			secure.ClearString(&phrase)

			master, err := hdkey.NewMaster(seed)
			if err != nil {
				return fmt.Errorf("failed to create master key: %w", err)
			}

			key, err := master.Derive(path)
			if err != nil {
				return fmt.Errorf("failed to derive key: %w", err)
			}

			result := DeriveResult{
				Path:              key.Path(),
				PublicKey:         key.PublicKeyHex(),
				ExtendedPublic:    key.ExtendedPublic(),
				ParentFingerprint: key.ParentFingerprint(),
			}
			if showPrivate {
				result.PrivateKey = key.PrivateKeyHex()
				result.ExtendedPrivate = key.ExtendedPrivate()
			}

			if outputJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(result)
			}

			return outputDeriveText(&result, showPrivate)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "BIP32 derivation path (default from config)")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "Passphrase for seed derivation")
	cmd.Flags().StringVarP(&wordlistPath, "wordlist", "w", cfg.Wordlist, "Path to a custom 2048-word list")
	cmd.Flags().BoolVar(&strict, "strict", cfg.StrictChecksum, "Reject mnemonics with an invalid checksum")
	cmd.Flags().BoolVar(&showPrivate, "show-private", false, "Show private key (DANGEROUS)")

	return cmd
}

func outputDeriveText(result *DeriveResult, showPrivate bool) error {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed, color.Bold)

	fmt.Println()
	green.Println("=== DERIVED KEY ===")
	fmt.Println()

	yellow.Println("Derivation Path:")
	fmt.Printf("  %s\n\n", result.Path)

	yellow.Println("Public Key:")
	fmt.Printf("  %s\n\n", result.PublicKey)

	yellow.Println("Extended Public Key:")
	fmt.Printf("  %s\n\n", result.ExtendedPublic)

	yellow.Println("Parent Fingerprint:")
	fmt.Printf("  %s\n\n", result.ParentFingerprint)

	if showPrivate {
		red.Println("⚠️  PRIVATE KEY (KEEP SECRET):")
		fmt.Printf("  %s\n\n", result.PrivateKey)

		red.Println("⚠️  Extended Private Key:")
		fmt.Printf("  %s\n\n", result.ExtendedPrivate)
	}

	green.Println("=== END ===")

	return nil
}
