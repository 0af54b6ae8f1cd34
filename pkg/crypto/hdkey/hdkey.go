// Package hdkey derives hierarchical deterministic key trees (BIP32) from
// a recovered seed, so a restored wallet can be checked against known
// addresses without exporting the seed into another tool.
package hdkey

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip32"
)

// HardenedOffset is added to a segment index to request hardened
// derivation.
const HardenedOffset = uint32(0x80000000)

// DefaultPath is the first external BIP44 bitcoin key, the customary
// place to start verifying a recovered wallet.
const DefaultPath = "m/44'/0'/0'/0/0"

var (
	ErrInvalidPath  = errors.New("hdkey: invalid derivation path")
	ErrSeedTooShort = errors.New("hdkey: seed must be at least 16 bytes")
)

// Key is an extended key annotated with the derivation path it sits at.
type Key struct {
	key  *bip32.Key
	path string
}

// NewMaster builds the master key at path "m". Seeds are typically the
// 64-byte output of mnemonic seed derivation.
func NewMaster(seed []byte) (*Key, error) {
	if len(seed) < 16 {
		return nil, fmt.Errorf("%w: got %d", ErrSeedTooShort, len(seed))
	}

	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}

	return &Key{key: master, path: "m"}, nil
}

// Derive walks an absolute path like "m/44'/0'/0'/0/0" segment by segment.
// Both ' and h mark hardened segments. The result records the given path,
// so Derive is normally called on the master key.
func (k *Key) Derive(path string) (*Key, error) {
	indices, err := parsePath(path)
	if err != nil {
		return nil, err
	}

	current := k.key
	for _, index := range indices {
		child, err := current.NewChildKey(index)
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", index, err)
		}

		current = child
	}

	return &Key{key: current, path: strings.TrimSpace(path)}, nil
}

// Path returns the derivation path this key was produced at.
func (k *Key) Path() string {
	return k.path
}

// PrivateKey returns the raw 32-byte private key.
func (k *Key) PrivateKey() []byte {
	return k.key.Key
}

// PrivateKeyHex returns the private key as lowercase hex.
func (k *Key) PrivateKeyHex() string {
	return hex.EncodeToString(k.key.Key)
}

// PublicKey returns the 33-byte compressed public key.
func (k *Key) PublicKey() []byte {
	return k.key.PublicKey().Key
}

// PublicKeyHex returns the compressed public key as lowercase hex.
func (k *Key) PublicKeyHex() string {
	return hex.EncodeToString(k.PublicKey())
}

// ExtendedPrivate returns the Base58Check xprv serialization.
func (k *Key) ExtendedPrivate() string {
	return k.key.String()
}

// ExtendedPublic returns the Base58Check xpub serialization.
func (k *Key) ExtendedPublic() string {
	return k.key.PublicKey().String()
}

// ParentFingerprint returns the fingerprint of the key's parent as hex,
// 00000000 for the master key.
func (k *Key) ParentFingerprint() string {
	return hex.EncodeToString(k.key.FingerPrint)
}

// ValidatePath checks derivation path syntax without deriving anything.
func ValidatePath(path string) error {
	_, err := parsePath(path)
	return err
}

// parsePath converts an absolute derivation path into child indices with
// the hardened bit applied. The bare master path "m" yields no indices.
func parsePath(path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	if path == "m" || path == "M" {
		return nil, nil
	}
	if !strings.HasPrefix(path, "m/") && !strings.HasPrefix(path, "M/") {
		return nil, fmt.Errorf("%w: %q must start with \"m\"", ErrInvalidPath, path)
	}

	segments := strings.Split(path, "/")[1:]
	indices := make([]uint32, 0, len(segments))

	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, path)
		}

		hardened := strings.HasSuffix(segment, "'") || strings.HasSuffix(segment, "h")
		if hardened {
			segment = segment[:len(segment)-1]
		}

		value, err := strconv.ParseUint(segment, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %q", ErrInvalidPath, segment)
		}

		index := uint32(value)
		if index >= HardenedOffset {
			return nil, fmt.Errorf("%w: index %d exceeds 2^31-1", ErrInvalidPath, index)
		}
		if hardened {
			index += HardenedOffset
		}

		indices = append(indices, index)
	}

	return indices, nil
}
