package review

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anchorageoss/visualsign-neoreview/testdata"
	"github.com/anchorageoss/visualsign-neoreview/transaction"
)

func TestFormatScope(t *testing.T) {
	f := NewFormatter()

	tests := []struct {
		scope    transaction.Scope
		expected string
	}{
		{transaction.ScopeNone, "None"},
		{transaction.ScopeGlobal, "Global"},
		{transaction.ScopeCalledByEntry, "By Entry"},
		{transaction.ScopeCustomContracts, "By Contracts"},
		{transaction.ScopeCustomGroups, "By Groups"},
		{transaction.ScopeCalledByEntry | transaction.ScopeCustomGroups, "By Entry,Groups"},
		{transaction.ScopeCustomContracts | transaction.ScopeCustomGroups, "By Contracts,Groups"},
		{transaction.ScopeCalledByEntry | transaction.ScopeCustomContracts | transaction.ScopeCustomGroups, "By Entry,Contracts,Groups"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			title, text, err := f.FormatScope(tt.scope)
			require.NoError(t, err)
			require.Equal(t, "Scope", title)
			require.Equal(t, tt.expected, text)
		})
	}
}

func TestFormatValues(t *testing.T) {
	f := NewFormatter()

	t.Run("network", func(t *testing.T) {
		require.Equal(t, "MainNet", f.FormatNetwork(transaction.MainNetMagic))
		require.Equal(t, "TestNet", f.FormatNetwork(transaction.TestNetMagic))
		require.Equal(t, "12345", f.FormatNetwork(12345))
	})

	t.Run("gas", func(t *testing.T) {
		require.Equal(t, "GAS 0.00000000", f.FormatGas(big.NewInt(0)))
		require.Equal(t, "GAS 0.00000456", f.FormatGas(big.NewInt(456)))
		require.Equal(t, "GAS 1.50000000", f.FormatGas(big.NewInt(150000000)))
		require.Equal(t, "GAS 92233720368.54775807", f.FormatGas(big.NewInt(9223372036854775807)))
	})

	t.Run("token amount", func(t *testing.T) {
		require.Equal(t, "NEO 5", f.FormatTokenAmount(5, true))
		require.Equal(t, "GAS 1.50000000", f.FormatTokenAmount(150000000, false))
	})

	t.Run("signer and sub items", func(t *testing.T) {
		title, text, err := f.FormatSigner(1, 4)
		require.NoError(t, err)
		require.Equal(t, "Signer", title)
		require.Equal(t, "2 of 4", text)

		title, text, err = f.FormatAccount(testdata.Account(0xab))
		require.NoError(t, err)
		require.Equal(t, "Account", title)
		require.Equal(t, strings.Repeat("AB", 20), text)

		title, text, err = f.FormatContract(0, 2, testdata.Account(0x0c))
		require.NoError(t, err)
		require.Equal(t, "Contract 1 of 2", title)
		require.Equal(t, strings.Repeat("0C", 20), text)

		title, text, err = f.FormatGroup(15, 16, testdata.Group(0xee))
		require.NoError(t, err)
		require.Equal(t, "Group 16 of 16", title)
		require.Equal(t, "02"+strings.Repeat("EE", 32), text)
		require.Len(t, text, MaxFieldLen)
	})

	t.Run("script hash", func(t *testing.T) {
		require.Equal(t, "0x"+strings.Repeat("11", 20), f.FormatScriptHash(testdata.Account(0x11)))
	})
}

func titles(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

var feeTitles = []string{"Target network", "System fee", "Network fee", "Total fees", "Valid until height"}

func TestPrefix(t *testing.T) {
	t.Run("neo transfer", func(t *testing.T) {
		src := newSource(t, testdata.Transfer(true))
		require.Equal(t, append([]string{"Destination addr", "Token amount"}, feeTitles...), titles(src.Prefix()))

		texts := make([]string, 0, src.PrefixCount())
		for _, item := range src.Prefix() {
			texts = append(texts, item.Text)
		}
		require.Equal(t, []string{
			testdata.TransferDestination,
			"NEO 5",
			"MainNet",
			"GAS 0.00000456",
			"GAS 0.00000789",
			"GAS 0.00001245",
			"1234567",
		}, texts)
	})

	t.Run("vote", func(t *testing.T) {
		src := newSource(t, testdata.Vote(false))
		require.Equal(t, append([]string{"Casting vote for"}, feeTitles...), titles(src.Prefix()))
		require.Equal(t, testdata.Group(0x33).Hex(), src.Prefix()[0].Text)
	})

	t.Run("retract vote", func(t *testing.T) {
		src := newSource(t, testdata.Vote(true))
		require.Equal(t, append([]string{"Retracting vote"}, feeTitles...), titles(src.Prefix()))
		require.Empty(t, src.Prefix()[0].Text)
	})

	t.Run("arbitrary script with script hash", func(t *testing.T) {
		tx := testdata.Arbitrary()
		tx.ScriptHash = testdata.Account(0x5e)
		src, err := NewSource(tx, Options{ShowScriptHash: true})
		require.NoError(t, err)
		require.Equal(t, append(append([]string{}, feeTitles...), "Script hash"), titles(src.Prefix()))
		require.Equal(t, "0x"+strings.Repeat("5e", 20), src.Prefix()[5].Text)
	})

	t.Run("oversized destination is rejected", func(t *testing.T) {
		tx := testdata.Transfer(false)
		tx.DstAddress = strings.Repeat("N", MaxFieldLen+1)
		_, err := NewSource(tx, Options{})
		require.ErrorIs(t, err, ErrFieldOverflow)
	})

	t.Run("large fees do not overflow", func(t *testing.T) {
		tx := testdata.Arbitrary()
		tx.SystemFee = 9223372036854775807
		tx.NetworkFee = 9223372036854775807
		src := newSource(t, tx)
		require.Equal(t, "GAS 184467440737.09551614", src.Prefix()[3].Text)
	})
}

func TestSourcePositions(t *testing.T) {
	src := newSource(t, testdata.TwoSigners())
	require.Equal(t, 7, src.PrefixCount())
	require.Equal(t, 7, src.DynamicCount())
	require.Equal(t, 14, src.TotalItemCount())

	t.Run("coordinate and position are inverse", func(t *testing.T) {
		for pos := 0; pos < src.TotalItemCount(); pos++ {
			c, err := src.CoordinateAt(pos)
			require.NoError(t, err)
			back, err := src.PositionOf(c)
			require.NoError(t, err)
			require.Equal(t, pos, back, c.String())
		}
	})

	t.Run("block subtraction", func(t *testing.T) {
		c, err := src.CoordinateAt(7 + 3)
		require.NoError(t, err)
		require.Equal(t, AtSigner(1), c)

		c, err = src.CoordinateAt(13)
		require.NoError(t, err)
		require.Equal(t, AtContract(1, 0), c)

		item, err := src.ItemAt(13)
		require.NoError(t, err)
		require.Equal(t, "Contract 1 of 1", item.Title)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := src.ItemAt(src.TotalItemCount())
		require.ErrorIs(t, err, ErrOutOfRange)
		_, err = src.ItemAt(-1)
		require.ErrorIs(t, err, ErrOutOfRange)

		for _, c := range []Coordinate{
			AtPrefix(7),
			AtSigner(2),
			AtContract(0, 0),
			AtContract(1, 1),
			AtGroup(1, 0),
			AtContract(1, -1),
		} {
			_, err := src.Render(c)
			require.ErrorIs(t, err, ErrOutOfRange, c.String())
			_, err = src.PositionOf(c)
			require.ErrorIs(t, err, ErrOutOfRange, c.String())
		}
	})

	t.Run("items", func(t *testing.T) {
		items, err := src.Items()
		require.NoError(t, err)
		require.Len(t, items, 14)
		require.Equal(t, "Signer", items[7].Title)
		require.Equal(t, "1 of 2", items[7].Text)
		require.Equal(t, "2 of 2", items[10].Text)
	})
}

func TestGate(t *testing.T) {
	tests := []struct {
		name     string
		tx       *transaction.Transaction
		allow    bool
		expected Decision
	}{
		{"transfer", testdata.Transfer(true), false, DecisionAllowed},
		{"vote", testdata.Vote(false), false, DecisionAllowed},
		{"retract", testdata.Vote(true), false, DecisionAllowed},
		{"arbitrary blocked", testdata.Arbitrary(), false, DecisionBlockedByPolicy},
		{"arbitrary allowed", testdata.Arbitrary(), true, DecisionAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Gate(tt.tx, tt.allow))
		})
	}
	require.Equal(t, "blocked-by-policy", DecisionBlockedByPolicy.String())
}
