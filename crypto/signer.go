package crypto

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"

	"github.com/anchorageoss/visualsign-neoreview/transaction"
)

// KeyProvider supplies the private key for a derivation path
type KeyProvider interface {
	PrivateKey(ctx context.Context, path Path) (*keys.PrivateKey, error)
}

// SoftwareSigner signs review digests with keys held in memory
type SoftwareSigner struct {
	Keys KeyProvider
}

// Sign validates the path, fetches its key and signs the digest
func (s *SoftwareSigner) Sign(ctx context.Context, path Path, digest transaction.Hash256) ([]byte, error) {
	if err := path.Validate(); err != nil {
		return nil, err
	}

	key, err := s.Keys.PrivateKey(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load key for %s: %w", path, err)
	}

	signature, err := SignDigest(key, digest)
	if err != nil {
		return nil, fmt.Errorf("failed to sign digest: %w", err)
	}
	return signature, nil
}

// StaticKey is a KeyProvider returning the same key for every path
type StaticKey struct {
	Key *keys.PrivateKey
}

// PrivateKey returns the configured key
func (k StaticKey) PrivateKey(ctx context.Context, path Path) (*keys.PrivateKey, error) {
	if k.Key == nil {
		return nil, fmt.Errorf("no key configured for %s", path)
	}
	return k.Key, nil
}
