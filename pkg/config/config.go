// Package config loads and persists the tool's configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/seedrecover/pkg/crypto/hdkey"
)

// Config holds the user-tunable defaults. Command-line flags override it.
type Config struct {
	Wordlist       string `json:"wordlist"`        // Path to a custom wordlist; empty selects the built-in English list
	StrictChecksum bool   `json:"strict_checksum"` // Verify mnemonic checksums while decoding
	DerivationPath string `json:"derivation_path"` // Default BIP32 path for key derivation
	NoColor        bool   `json:"no_color"`        // Disable colored output
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Wordlist:       "",
		StrictChecksum: false,
		DerivationPath: hdkey.DefaultPath,
		NoColor:        false,
	}
}

// Load reads the configuration file, creating it with defaults on first
// run. A missing derivation path is filled in with the default.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}

		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.DerivationPath == "" {
		cfg.DerivationPath = hdkey.DefaultPath
	}

	return cfg, nil
}

// Save writes the configuration as indented JSON, creating the config
// directory as needed.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// configPath resolves the configuration file location: the
// SEEDRECOVER_CONFIG environment variable, then XDG_CONFIG_HOME, then
// ~/.config/seedrecover/config.json.
func configPath() (string, error) {
	if custom := os.Getenv("SEEDRECOVER_CONFIG"); custom != "" {
		return custom, nil
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "seedrecover", "config.json"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".config", "seedrecover", "config.json"), nil
}
