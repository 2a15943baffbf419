// Package keys provides signing key loading and management.
//
// This package implements the crypto.KeyProvider interface for loading NEO
// signing keys from a key directory.
//
// # Key File Format
//
// Keys are stored in ~/.config/neo-review/keys/ with up to two files per key:
//
//	<key-name>.private - Format: "hexkey:p256" where hexkey is the private scalar
//	<key-name>.public  - Optional hex-encoded compressed public key
//
// When the .public file exists it must match the key derived from the
// .private file.
//
// # Loading Keys
//
// Load a key using the FileKeyProvider:
//
//	provider := &keys.FileKeyProvider{KeyName: "my-key"}
//	key, err := provider.PrivateKey(ctx, path)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Or directly load a key by name:
//
//	key, err := keys.LoadKey("my-key")
package keys

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	neokeys "github.com/nspcc-dev/neo-go/pkg/crypto/keys"

	"github.com/anchorageoss/visualsign-neoreview/crypto"
)

var ErrPublicKeyMismatch = errors.New("public key file does not match private key")

// FileKeyProvider implements crypto.KeyProvider by reading from files. Every
// path maps to the same named key; derivation happens outside this tool.
type FileKeyProvider struct {
	KeyName string
	// Dir overrides the default key directory
	Dir string
}

// PrivateKey loads the private key from files
func (f *FileKeyProvider) PrivateKey(ctx context.Context, path crypto.Path) (*neokeys.PrivateKey, error) {
	dir := f.Dir
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	return LoadKeyFromDir(dir, f.KeyName)
}

// DefaultDir returns the default key directory
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "neo-review", "keys"), nil
}

// LoadKey loads a key by name from the default key directory
func LoadKey(keyName string) (*neokeys.PrivateKey, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return LoadKeyFromDir(dir, keyName)
}

// LoadKeyFromDir loads a key by name from configDir
func LoadKeyFromDir(configDir, keyName string) (*neokeys.PrivateKey, error) {
	privateKeyPath := filepath.Join(configDir, keyName+".private")
	privateKeyBytes, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file: %w", err)
	}

	// Parse private key format: "hexkey:curve"
	privateKeyContent := strings.TrimSpace(string(privateKeyBytes))
	parts := strings.Split(privateKeyContent, ":")
	if len(parts) != 2 {
		return nil, errors.New("invalid private key format, expected 'hexkey:curve'")
	}

	privateKeyHex := parts[0]
	curve := parts[1]

	if curve != "p256" {
		return nil, fmt.Errorf("unsupported curve: %s, only p256 is supported", curve)
	}

	scalar, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key hex: %w", err)
	}

	privateKey, err := neokeys.NewPrivateKeyFromBytes(scalar)
	if err != nil {
		return nil, fmt.Errorf("failed to create private key: %w", err)
	}

	publicKeyPath := filepath.Join(configDir, keyName+".public")
	publicKeyBytes, err := os.ReadFile(publicKeyPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return privateKey, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read public key file: %w", err)
	}

	publicKeyHex := strings.ToLower(strings.TrimSpace(string(publicKeyBytes)))
	if derived := hex.EncodeToString(privateKey.PublicKey().Bytes()); derived != publicKeyHex {
		return nil, fmt.Errorf("%w: %s has %s, derived %s", ErrPublicKeyMismatch, keyName, publicKeyHex, derived)
	}
	return privateKey, nil
}
