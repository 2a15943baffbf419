package transaction

import (
	"errors"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

var (
	ErrVersion                = errors.New("unsupported transaction version")
	ErrNegativeFee            = errors.New("fee must not be negative")
	ErrNoSigners              = errors.New("transaction has no signers")
	ErrTooManySigners         = errors.New("too many signers")
	ErrDuplicateSigner        = errors.New("duplicate signer account")
	ErrGlobalScopeCombined    = errors.New("global scope cannot be combined with other flags")
	ErrUnsupportedScope       = errors.New("unsupported witness scope")
	ErrTooManyContracts       = errors.New("too many allowed contracts")
	ErrTooManyGroups          = errors.New("too many allowed groups")
	ErrContractsNotAllowed    = errors.New("allowed contracts present without custom contracts scope")
	ErrGroupsNotAllowed       = errors.New("allowed groups present without custom groups scope")
	ErrMissingDestination     = errors.New("asset transfer without destination address")
	ErrMissingVoteTarget      = errors.New("vote without candidate key")
	ErrConflictingScriptKinds = errors.New("script cannot be both a vote and an asset transfer")
)

// Validate checks the record against the bounds and consistency rules the
// review engine relies on. The navigator does not re-check any of them.
func (t *Transaction) Validate() error {
	if t.Version != 0 {
		return fmt.Errorf("%w: %d", ErrVersion, t.Version)
	}
	if t.SystemFee < 0 {
		return fmt.Errorf("system fee: %w", ErrNegativeFee)
	}
	if t.NetworkFee < 0 {
		return fmt.Errorf("network fee: %w", ErrNegativeFee)
	}
	if t.Amount < 0 {
		return fmt.Errorf("amount: %w", ErrNegativeFee)
	}

	if len(t.Signers) == 0 {
		return ErrNoSigners
	}
	if len(t.Signers) > MaxSigners {
		return fmt.Errorf("%w: %d > %d", ErrTooManySigners, len(t.Signers), MaxSigners)
	}

	seen := mapset.NewThreadUnsafeSet[Hash160]()
	for i := range t.Signers {
		s := &t.Signers[i]
		if !seen.Add(s.Account) {
			return fmt.Errorf("signer %d: %w: %s", i, ErrDuplicateSigner, s.Account.Hex())
		}
		if err := s.validate(); err != nil {
			return fmt.Errorf("signer %d: %w", i, err)
		}
	}

	if t.IsVoteScript && t.IsSystemAssetTransfer {
		return ErrConflictingScriptKinds
	}
	if t.IsSystemAssetTransfer && t.DstAddress == "" {
		return ErrMissingDestination
	}
	if t.IsVoteScript && !t.IsRemoveVote && t.VoteTo == (PublicKey{}) {
		return ErrMissingVoteTarget
	}
	return nil
}

func (s *Signer) validate() error {
	if s.Scope&^scopeKnownFlags != 0 {
		return fmt.Errorf("%w: 0x%02x", ErrUnsupportedScope, uint8(s.Scope))
	}
	if s.Scope.Has(ScopeGlobal) && s.Scope != ScopeGlobal {
		return ErrGlobalScopeCombined
	}
	if len(s.AllowedContracts) > MaxAllowedContracts {
		return fmt.Errorf("%w: %d > %d", ErrTooManyContracts, len(s.AllowedContracts), MaxAllowedContracts)
	}
	if len(s.AllowedGroups) > MaxAllowedGroups {
		return fmt.Errorf("%w: %d > %d", ErrTooManyGroups, len(s.AllowedGroups), MaxAllowedGroups)
	}
	if len(s.AllowedContracts) > 0 && !s.Scope.Has(ScopeCustomContracts) {
		return ErrContractsNotAllowed
	}
	if len(s.AllowedGroups) > 0 && !s.Scope.Has(ScopeCustomGroups) {
		return ErrGroupsNotAllowed
	}
	return nil
}
