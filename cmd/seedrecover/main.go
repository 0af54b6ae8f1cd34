package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/seedrecover/internal/cli"
	"github.com/Davincible/seedrecover/pkg/config"
)

var (
	// Version is set during build
	Version = "dev"
	// BuildTime is set during build
	BuildTime = "unknown"
	// GitCommit is set during build
	GitCommit = "unknown"
)

func main() {
	// Set up structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	rootCmd := &cobra.Command{
		Use:   "seedrecover",
		Short: "Recover wallet seeds from share mnemonics",
		Long: `seedrecover reassembles a wallet's recovery phrase from two
12-word share mnemonics and derives the wallet seed and keys from it.

Shares are combined with Shamir secret sharing over GF(256), so two
shares reveal the original entropy while a single share reveals nothing.`,
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}

	// Add commands
	rootCmd.AddCommand(
		cli.NewRecoverCommand(cfg), // Recover wallet from two shares
		cli.NewCheckCommand(cfg),   // Check share compatibility
		cli.NewSeedCommand(cfg),    // Derive seed from mnemonic
		cli.NewDeriveCommand(cfg),  // Derive HD keys from mnemonic
	)

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
