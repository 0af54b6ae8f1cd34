// Package storage persists recovery results as password-encrypted files,
// so a recovered wallet can be kept off screen and out of shell history.
package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/Davincible/seedrecover/pkg/secure"
)

const (
	SaltSize   = 32
	NonceSize  = 12
	KeySize    = 32
	Iterations = 100000
)

// EncryptedFile reads and writes a single AES-256-GCM encrypted file whose
// key is derived from a password with PBKDF2-SHA256.
type EncryptedFile struct {
	path string
}

type envelope struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

func NewEncryptedFile(path string) *EncryptedFile {
	return &EncryptedFile{path: path}
}

// Save encrypts data under password and writes it to the file, creating
// parent directories as needed. A fresh salt and nonce are drawn for every
// write.
func (f *EncryptedFile) Save(data, password []byte) error {
	if len(password) == 0 {
		return fmt.Errorf("password cannot be empty")
	}

	salt, err := secure.SecureRandom(SaltSize)
	if err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New)
	defer secure.Zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("create GCM: %w", err)
	}

	nonce, err := secure.SecureRandom(NonceSize)
	if err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, data, nil)

	payload, err := json.Marshal(envelope{
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: ciphertext,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if err := os.WriteFile(f.path, payload, 0600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// Load reads the file and decrypts it with password. Decryption fails on
// a wrong password or a tampered file.
func (f *EncryptedFile) Load(password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("password cannot be empty")
	}

	payload, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}

	key := pbkdf2.Key(password, env.Salt, Iterations, KeySize, sha256.New)
	defer secure.Zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	plaintext, err := gcm.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}

	return plaintext, nil
}

func (f *EncryptedFile) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Delete overwrites the file with random bytes before removing it.
func (f *EncryptedFile) Delete() error {
	if !f.Exists() {
		return nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read file for deletion: %w", err)
	}

	noise, err := secure.SecureRandom(len(data))
	if err != nil {
		return fmt.Errorf("overwrite file: %w", err)
	}

	if err := os.WriteFile(f.path, noise, 0600); err != nil {
		return fmt.Errorf("overwrite file: %w", err)
	}

	return os.Remove(f.path)
}

// RecoveryRecord is the persisted result of a successful recovery: the
// reassembled mnemonic and the seed it derives.
type RecoveryRecord struct {
	Mnemonic  string    `json:"mnemonic"`
	Seed      string    `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordStore persists one RecoveryRecord inside an EncryptedFile.
type RecordStore struct {
	file *EncryptedFile
}

func NewRecordStore(path string) *RecordStore {
	return &RecordStore{file: NewEncryptedFile(path)}
}

func (s *RecordStore) Save(record RecoveryRecord, password []byte) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	defer secure.Zero(data)

	return s.file.Save(data, password)
}

func (s *RecordStore) Load(password []byte) (*RecoveryRecord, error) {
	data, err := s.file.Load(password)
	if err != nil {
		return nil, err
	}
	defer secure.Zero(data)

	var record RecoveryRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}

	return &record, nil
}

func (s *RecordStore) Exists() bool {
	return s.file.Exists()
}

func (s *RecordStore) Delete() error {
	return s.file.Delete()
}
