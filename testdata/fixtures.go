// Package testdata provides transaction fixtures for use across all test packages.
package testdata

import "github.com/anchorageoss/visualsign-neoreview/transaction"

// TransferDestination is the N3 address used by the transfer fixture
const TransferDestination = "NVTiAjNgagDkTr5HTzDmQP9kPwPHN5BgVq"

// Account returns a recognizable 20-byte account filled with b
func Account(b byte) transaction.Hash160 {
	var h transaction.Hash160
	for i := range h {
		h[i] = b
	}
	return h
}

// Group returns a 33-byte compressed key with prefix 0x02 and body b
func Group(b byte) transaction.PublicKey {
	var k transaction.PublicKey
	k[0] = 0x02
	for i := 1; i < len(k); i++ {
		k[i] = b
	}
	return k
}

// Signer builds a signer with the given numbers of allowed contracts and
// groups. The custom flags are added to scope when the lists are non-empty.
func Signer(account byte, scope transaction.Scope, contracts, groups int) transaction.Signer {
	s := transaction.Signer{Account: Account(account), Scope: scope}
	for i := 0; i < contracts; i++ {
		s.AllowedContracts = append(s.AllowedContracts, Account(0xC0+byte(i)))
	}
	for i := 0; i < groups; i++ {
		s.AllowedGroups = append(s.AllowedGroups, Group(0xA0+byte(i)))
	}
	if contracts > 0 {
		s.Scope |= transaction.ScopeCustomContracts
	}
	if groups > 0 {
		s.Scope |= transaction.ScopeCustomGroups
	}
	return s
}

func base(signers ...transaction.Signer) *transaction.Transaction {
	return &transaction.Transaction{
		NetworkMagic:    transaction.MainNetMagic,
		Nonce:           0x2A,
		SystemFee:       456,
		NetworkFee:      789,
		ValidUntilBlock: 1234567,
		Signers:         signers,
	}
}

// Arbitrary is a contract invocation that is neither a vote nor a transfer
func Arbitrary(signers ...transaction.Signer) *transaction.Transaction {
	if len(signers) == 0 {
		signers = []transaction.Signer{Signer(0x11, transaction.ScopeCalledByEntry, 0, 0)}
	}
	return base(signers...)
}

// Transfer is a transfer of 5 NEO, or of 1.5 GAS when neo is false
func Transfer(neo bool, signers ...transaction.Signer) *transaction.Transaction {
	tx := Arbitrary(signers...)
	tx.IsSystemAssetTransfer = true
	tx.IsNeo = neo
	tx.DstAddress = TransferDestination
	tx.Amount = 150000000
	if neo {
		tx.Amount = 5
	}
	return tx
}

// Vote casts a vote for Group(0x33), or retracts the vote when remove is set
func Vote(remove bool, signers ...transaction.Signer) *transaction.Transaction {
	tx := Arbitrary(signers...)
	tx.IsVoteScript = true
	tx.IsRemoveVote = remove
	if !remove {
		tx.VoteTo = Group(0x33)
	}
	return tx
}

// CustomScopes has one signer with two allowed contracts and one allowed group
func CustomScopes() *transaction.Transaction {
	return Transfer(true, Signer(0x11, transaction.ScopeNone, 2, 1))
}

// TwoSigners has an empty first signer and a second signer with one contract
func TwoSigners() *transaction.Transaction {
	return Transfer(true,
		Signer(0x11, transaction.ScopeCalledByEntry, 0, 0),
		Signer(0x22, transaction.ScopeNone, 1, 0),
	)
}

// Shapes enumerates signer layouts covering empty lists, full lists and
// every mix of the two, for exhaustive cursor tests.
func Shapes() []*transaction.Transaction {
	counts := []int{0, 1, 2, transaction.MaxAllowedContracts}
	var out []*transaction.Transaction

	for _, c := range counts {
		for _, g := range counts {
			out = append(out, Arbitrary(Signer(0x11, transaction.ScopeCalledByEntry, c, g)))
		}
	}

	layouts := [][][2]int{
		{{0, 0}, {0, 0}},
		{{0, 0}, {1, 0}},
		{{1, 0}, {0, 1}},
		{{2, 1}, {0, 0}, {1, 2}},
		{{0, 3}, {3, 0}, {0, 0}, {1, 1}},
		{{16, 16}, {0, 0}, {16, 0}, {0, 16}},
	}
	for _, layout := range layouts {
		var signers []transaction.Signer
		for i, l := range layout {
			signers = append(signers, Signer(0x11+byte(i), transaction.ScopeCalledByEntry, l[0], l[1]))
		}
		out = append(out, Arbitrary(signers...))
	}
	return out
}
