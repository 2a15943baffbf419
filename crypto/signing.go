// Package crypto provides the signing side of a transaction review.
//
// This package provides:
//   - BIP44 derivation path parsing and validation for NEO accounts
//   - ECDSA P-256 digest signing with deterministic nonces
//   - DER encoding/decoding of ECDSA signatures
//
// # Signing
//
// Sign a review digest with a key from a KeyProvider:
//
//	signer := &crypto.SoftwareSigner{Keys: provider}
//	signature, err := signer.Sign(ctx, path, digest)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Verification
//
// Verify DER signatures against the signed digest:
//
//	valid := crypto.VerifyDigestSignature(publicKey, digest, signature)
//
// # Serialization
//
// Marshal ECDSA signatures to DER format:
//
//	derSig, err := crypto.MarshalECDSASignatureDER(r, s)
//	if err != nil {
//		log.Fatal(err)
//	}
package crypto

import (
	"encoding/asn1"
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/util"

	"github.com/anchorageoss/visualsign-neoreview/transaction"
)

// rawSignatureLen is the length of an r || s signature on P-256
const rawSignatureLen = 64

var ErrInvalidSignature = errors.New("invalid ECDSA signature")

// ECDSASignature represents an ECDSA signature for ASN.1 encoding
type ECDSASignature struct {
	R, S *big.Int
}

// SignDigest signs a 32-byte digest without hashing it again and returns the
// DER encoded signature.
func SignDigest(key *keys.PrivateKey, digest transaction.Hash256) ([]byte, error) {
	if key == nil {
		return nil, errors.New("no private key")
	}
	raw := key.SignHash(util.Uint256(digest))
	if len(raw) != rawSignatureLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSignature, len(raw))
	}

	r := new(big.Int).SetBytes(raw[:32])
	s := new(big.Int).SetBytes(raw[32:])
	return MarshalECDSASignatureDER(r, s)
}

// MarshalECDSASignatureDER converts ECDSA signature components to DER format
func MarshalECDSASignatureDER(r, s *big.Int) ([]byte, error) {
	signature := ECDSASignature{R: r, S: s}
	return asn1.Marshal(signature)
}

// UnmarshalECDSASignatureDER converts a DER signature to its r || s form
func UnmarshalECDSASignatureDER(der []byte) ([]byte, error) {
	var sig ECDSASignature
	rest, err := asn1.Unmarshal(der, &sig)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DER signature: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidSignature, len(rest))
	}
	if sig.R.Sign() <= 0 || sig.S.Sign() <= 0 || sig.R.BitLen() > 256 || sig.S.BitLen() > 256 {
		return nil, ErrInvalidSignature
	}

	raw := make([]byte, rawSignatureLen)
	sig.R.FillBytes(raw[:32])
	sig.S.FillBytes(raw[32:])
	return raw, nil
}

// VerifyDigestSignature verifies a DER signature over a digest
func VerifyDigestSignature(publicKey *keys.PublicKey, digest transaction.Hash256, signature []byte) bool {
	if publicKey == nil {
		return false
	}
	raw, err := UnmarshalECDSASignatureDER(signature)
	if err != nil {
		return false
	}
	return publicKey.Verify(raw, digest[:])
}
