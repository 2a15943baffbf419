package crypto

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Hardened marks a hardened derivation index
const Hardened uint32 = 0x80000000

// Allowed values of a NEO signing path.
const (
	PurposeBIP44    = 44
	CoinTypeNEO     = 888
	MaxAccountIndex = 10
	MaxAddressIndex = 5000
)

// DefaultPath is the first address of the first NEO account
const DefaultPath = "m/44'/888'/0'/0/0"

var (
	ErrMalformedPath      = errors.New("malformed derivation path")
	ErrBadPurpose         = errors.New("derivation path purpose must be 44'")
	ErrBadCoinType        = errors.New("derivation path coin type must be 888'")
	ErrAccountNotHardened = errors.New("derivation path account must be hardened")
	ErrBadAccount         = errors.New("derivation path account out of range")
	ErrBadChange          = errors.New("derivation path change must be 0 or 1")
	ErrBadAddress         = errors.New("derivation path address index out of range")
)

// Path is a BIP44 derivation path: purpose, coin type, account, change, address index.
type Path [5]uint32

// ParsePath parses a path like m/44'/888'/0'/0/0. Both ' and h mark hardened indexes.
func ParsePath(s string) (Path, error) {
	var p Path
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != len(p)+1 || parts[0] != "m" {
		return Path{}, fmt.Errorf("%w: %q", ErrMalformedPath, s)
	}

	for i, part := range parts[1:] {
		hardened := strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h")
		if hardened {
			part = part[:len(part)-1]
		}
		n, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return Path{}, fmt.Errorf("%w: element %d of %q: %w", ErrMalformedPath, i+1, s, err)
		}
		p[i] = uint32(n)
		if hardened {
			p[i] |= Hardened
		}
	}
	return p, nil
}

// Validate applies the rules for NEO signing paths
func (p Path) Validate() error {
	if p[0] != PurposeBIP44|Hardened {
		return ErrBadPurpose
	}
	if p[1] != CoinTypeNEO|Hardened {
		return ErrBadCoinType
	}
	if p[2]&Hardened == 0 {
		return ErrAccountNotHardened
	}
	if p[2]&^Hardened > MaxAccountIndex {
		return fmt.Errorf("%w: %d > %d", ErrBadAccount, p[2]&^Hardened, MaxAccountIndex)
	}
	if p[3] != 0 && p[3] != 1 {
		return ErrBadChange
	}
	if p[4] > MaxAddressIndex {
		return fmt.Errorf("%w: %d > %d", ErrBadAddress, p[4], MaxAddressIndex)
	}
	return nil
}

func (p Path) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, n := range p {
		sb.WriteString("/")
		sb.WriteString(strconv.FormatUint(uint64(n&^Hardened), 10))
		if n&Hardened != 0 {
			sb.WriteString("'")
		}
	}
	return sb.String()
}

var pathStatusWords = []struct {
	err error
	sw  uint16
}{
	{ErrBadPurpose, 0xB100},
	{ErrBadCoinType, 0xB101},
	{ErrAccountNotHardened, 0xB102},
	{ErrBadAccount, 0xB103},
	{ErrBadChange, 0xB104},
	{ErrBadAddress, 0xB105},
}

// PathStatusWord maps a Validate error to the status word a device reports for it
func PathStatusWord(err error) (uint16, bool) {
	for _, e := range pathStatusWords {
		if errors.Is(err, e.err) {
			return e.sw, true
		}
	}
	return 0, false
}
