package review

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/util"

	"github.com/anchorageoss/visualsign-neoreview/transaction"
)

// MaxFieldLen is the capacity of the title and text slots of a screen. The
// longest fixed-width value is a compressed public key in hex.
const MaxFieldLen = 2 * len(transaction.PublicKey{})

// GAS is stored as an integer with 8 implied decimals.
const gasDecimals = 8

// ErrFieldOverflow is returned when a formatted value does not fit a screen slot
var ErrFieldOverflow = errors.New("formatted field exceeds display capacity")

// Formatter renders transaction fields into display items
type Formatter struct{}

// NewFormatter creates a new formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func field(title, text string) (string, string, error) {
	if len(title) > MaxFieldLen {
		return "", "", fmt.Errorf("%w: title %q", ErrFieldOverflow, title)
	}
	if len(text) > MaxFieldLen {
		return "", "", fmt.Errorf("%w: %s text is %d bytes", ErrFieldOverflow, title, len(text))
	}
	return title, text, nil
}

// FormatSigner formats the 1-based position of a signer as "k of N"
func (f *Formatter) FormatSigner(index, count int) (string, string, error) {
	return field("Signer", fmt.Sprintf("%d of %d", index+1, count))
}

// FormatAccount formats a signer account
func (f *Formatter) FormatAccount(account transaction.Hash160) (string, string, error) {
	return field("Account", account.Hex())
}

// FormatScope formats a witness scope as "None", "Global" or "By " followed
// by the set flags in the order Entry, Contracts, Groups.
func (f *Formatter) FormatScope(scope transaction.Scope) (string, string, error) {
	switch scope {
	case transaction.ScopeNone:
		return field("Scope", "None")
	case transaction.ScopeGlobal:
		return field("Scope", "Global")
	}

	var names []string
	if scope.Has(transaction.ScopeCalledByEntry) {
		names = append(names, "Entry")
	}
	if scope.Has(transaction.ScopeCustomContracts) {
		names = append(names, "Contracts")
	}
	if scope.Has(transaction.ScopeCustomGroups) {
		names = append(names, "Groups")
	}
	return field("Scope", "By "+strings.Join(names, ","))
}

// FormatContract formats the i-th of count allowed contracts
func (f *Formatter) FormatContract(i, count int, contract transaction.Hash160) (string, string, error) {
	return field(fmt.Sprintf("Contract %d of %d", i+1, count), contract.Hex())
}

// FormatGroup formats the i-th of count allowed groups
func (f *Formatter) FormatGroup(i, count int, group transaction.PublicKey) (string, string, error) {
	return field(fmt.Sprintf("Group %d of %d", i+1, count), group.Hex())
}

// FormatNetwork names the well-known networks and falls back to the decimal magic
func (f *Formatter) FormatNetwork(magic uint32) string {
	switch magic {
	case transaction.MainNetMagic:
		return "MainNet"
	case transaction.TestNetMagic:
		return "TestNet"
	default:
		return strconv.FormatUint(uint64(magic), 10)
	}
}

// FormatGas formats an amount of GAS fractions with all 8 decimals, the way
// the device prints fees
func (f *Formatter) FormatGas(v *big.Int) string {
	return "GAS " + padDecimals(fixedn.ToString(v, gasDecimals), gasDecimals)
}

// padDecimals restores the trailing zeros fixedn.ToString drops
func padDecimals(s string, decimals int) string {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s + "." + strings.Repeat("0", decimals)
	}
	return s + strings.Repeat("0", decimals-(len(s)-dot-1))
}

// FormatTokenAmount formats a NEO (indivisible) or GAS transfer amount
func (f *Formatter) FormatTokenAmount(amount int64, isNeo bool) string {
	if isNeo {
		return "NEO " + fixedn.ToString(big.NewInt(amount), 0)
	}
	return f.FormatGas(big.NewInt(amount))
}

// FormatScriptHash formats a script hash the way NEO explorers display it
func (f *Formatter) FormatScriptHash(h transaction.Hash160) string {
	return "0x" + util.Uint160(h).StringLE()
}

// prefixItems formats the transaction-level fields shown before the signers.
func (f *Formatter) prefixItems(tx *transaction.Transaction, opts Options) ([]Item, error) {
	type pair struct{ title, text string }
	var fields []pair

	switch {
	case tx.IsVoteScript && tx.IsRemoveVote:
		fields = append(fields, pair{"Retracting vote", ""})
	case tx.IsVoteScript:
		fields = append(fields, pair{"Casting vote for", tx.VoteTo.Hex()})
	case tx.IsSystemAssetTransfer:
		fields = append(fields,
			pair{"Destination addr", tx.DstAddress},
			pair{"Token amount", f.FormatTokenAmount(tx.Amount, tx.IsNeo)},
		)
	}

	sysFee := big.NewInt(tx.SystemFee)
	netFee := big.NewInt(tx.NetworkFee)
	total := new(big.Int).Add(sysFee, netFee)

	fields = append(fields,
		pair{"Target network", f.FormatNetwork(tx.NetworkMagic)},
		pair{"System fee", f.FormatGas(sysFee)},
		pair{"Network fee", f.FormatGas(netFee)},
		pair{"Total fees", f.FormatGas(total)},
		pair{"Valid until height", strconv.FormatUint(uint64(tx.ValidUntilBlock), 10)},
	)
	if opts.ShowScriptHash {
		fields = append(fields, pair{"Script hash", f.FormatScriptHash(tx.ScriptHash)})
	}

	items := make([]Item, 0, len(fields))
	for i, p := range fields {
		title, text, err := field(p.title, p.text)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Coordinate: AtPrefix(i), Title: title, Text: text})
	}
	return items, nil
}
