// Package transaction provides the display-relevant view of a NEO N3 transaction.
//
// A Transaction is the validated, read-only record the review engine works
// from. It carries the transaction-level scalar fields shown before any
// signer data, the kind flags that decide which of those fields appear, and
// the ordered list of signers with their allow-lists.
//
// # Producing records
//
// Records are produced either from a serialized NEO N3 transaction:
//
//	tx, err := transaction.FromNeoBytes(raw, transaction.MainNetMagic)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// or from the Borsh-encoded record format used to hand a parsed transaction
// over to the review engine:
//
//	tx, err := transaction.DecodeRecordFromBase64(recordB64)
//
// Both paths run Validate, so a record obtained from this package always
// respects MaxSigners, MaxAllowedContracts and MaxAllowedGroups.
//
// # Signing digest
//
// The digest handed to the signing collaborator binds the network magic to
// the transaction hash:
//
//	digest := transaction.SigningDigest(tx.NetworkMagic, tx.Hash)
package transaction

import (
	"encoding/hex"
	"strings"
)

// Bounds enforced by Validate.
const (
	MaxSigners          = 4
	MaxAllowedContracts = 16
	MaxAllowedGroups    = 16
)

// Well-known network magics.
const (
	MainNetMagic uint32 = 860833102
	TestNetMagic uint32 = 894710606
)

// Scope is the witness scope bitset of a signer.
type Scope uint8

const (
	ScopeNone            Scope = 0x00
	ScopeCalledByEntry   Scope = 0x01
	ScopeCustomContracts Scope = 0x10
	ScopeCustomGroups    Scope = 0x20
	ScopeGlobal          Scope = 0x80
)

const scopeKnownFlags = ScopeCalledByEntry | ScopeCustomContracts | ScopeCustomGroups | ScopeGlobal

// Has reports whether all bits of flag are set.
func (s Scope) Has(flag Scope) bool {
	return flag != 0 && s&flag == flag
}

// String returns the scope flag names joined with "|"
func (s Scope) String() string {
	switch s {
	case ScopeNone:
		return "None"
	case ScopeGlobal:
		return "Global"
	}
	var names []string
	if s.Has(ScopeCalledByEntry) {
		names = append(names, "CalledByEntry")
	}
	if s.Has(ScopeCustomContracts) {
		names = append(names, "CustomContracts")
	}
	if s.Has(ScopeCustomGroups) {
		names = append(names, "CustomGroups")
	}
	if s&^scopeKnownFlags != 0 {
		names = append(names, "Unknown")
	}
	return strings.Join(names, "|")
}

// Hash160 is a 20-byte account or contract script hash
type Hash160 [20]byte

// Hex returns the uppercase hex encoding of the hash bytes.
func (h Hash160) Hex() string {
	return strings.ToUpper(hex.EncodeToString(h[:]))
}

// Hash256 is a 32-byte hash (transaction hash, signing digest)
type Hash256 [32]byte

// Hex returns the lowercase hex encoding of the hash bytes.
func (h Hash256) Hex() string {
	return hex.EncodeToString(h[:])
}

// PublicKey is a compressed secp256r1 public key
type PublicKey [33]byte

// Hex returns the uppercase hex encoding of the key bytes.
func (k PublicKey) Hex() string {
	return strings.ToUpper(hex.EncodeToString(k[:]))
}

// Signer is a transaction participant and its witness scope.
type Signer struct {
	Account          Hash160     `borsh:"account"`
	Scope            Scope       `borsh:"scope"`
	AllowedContracts []Hash160   `borsh:"allowed_contracts"`
	AllowedGroups    []PublicKey `borsh:"allowed_groups"`
}

// Transaction is the display-relevant subset of a parsed NEO N3 transaction.
type Transaction struct {
	NetworkMagic    uint32   `borsh:"network_magic"`
	Version         uint8    `borsh:"version"`
	Nonce           uint32   `borsh:"nonce"`
	SystemFee       int64    `borsh:"system_fee"`
	NetworkFee      int64    `borsh:"network_fee"`
	ValidUntilBlock uint32   `borsh:"valid_until_block"`
	Signers         []Signer `borsh:"signers"`

	IsVoteScript bool      `borsh:"is_vote_script"`
	IsRemoveVote bool      `borsh:"is_remove_vote"`
	VoteTo       PublicKey `borsh:"vote_to"`

	IsSystemAssetTransfer bool   `borsh:"is_system_asset_transfer"`
	IsNeo                 bool   `borsh:"is_neo"`
	DstAddress            string `borsh:"dst_address"`
	Amount                int64  `borsh:"amount"`

	ScriptHash Hash160 `borsh:"script_hash"`
	Hash       Hash256 `borsh:"hash"`
}

// IsArbitraryScript reports whether the script is neither a vote nor a NEO/GAS transfer.
func (t *Transaction) IsArbitraryScript() bool {
	return !t.IsVoteScript && !t.IsSystemAssetTransfer
}
