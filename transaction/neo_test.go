package transaction_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	neotx "github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/callflag"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/emit"
	"github.com/nspcc-dev/neo-go/pkg/vm/opcode"
	"github.com/stretchr/testify/require"

	"github.com/anchorageoss/visualsign-neoreview/transaction"
)

var (
	from = util.Uint160{0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x11}
	to   = util.Uint160{0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22}
)

func callScript(t *testing.T, contract util.Uint160, method string, assert bool, args ...any) []byte {
	t.Helper()
	w := io.NewBufBinWriter()
	emit.AppCall(w.BinWriter, contract, method, callflag.All, args...)
	if assert {
		emit.Opcodes(w.BinWriter, opcode.ASSERT)
	}
	require.NoError(t, w.Err)
	return w.Bytes()
}

func buildNeoTx(script []byte, signers ...neotx.Signer) *neotx.Transaction {
	if len(signers) == 0 {
		signers = []neotx.Signer{{Account: from, Scopes: neotx.CalledByEntry}}
	}
	tx := neotx.New(script, 456)
	tx.Nonce = 42
	tx.NetworkFee = 789
	tx.ValidUntilBlock = 1234567
	tx.Signers = signers
	tx.Scripts = make([]neotx.Witness, len(signers))
	return tx
}

func TestFromNeoBytes(t *testing.T) {
	t.Run("NEO transfer", func(t *testing.T) {
		script := callScript(t, transaction.NeoContractHash, "transfer", true, from, to, 5, nil)
		ntx := buildNeoTx(script)

		tx, err := transaction.FromNeoBytes(ntx.Bytes(), transaction.MainNetMagic)
		require.NoError(t, err)
		require.True(t, tx.IsSystemAssetTransfer)
		require.True(t, tx.IsNeo)
		require.False(t, tx.IsVoteScript)
		require.Equal(t, address.Uint160ToString(to), tx.DstAddress)
		require.Equal(t, int64(5), tx.Amount)

		require.Equal(t, transaction.MainNetMagic, tx.NetworkMagic)
		require.Equal(t, uint32(42), tx.Nonce)
		require.Equal(t, int64(456), tx.SystemFee)
		require.Equal(t, int64(789), tx.NetworkFee)
		require.Equal(t, uint32(1234567), tx.ValidUntilBlock)
		require.Equal(t, transaction.Hash256(ntx.Hash()), tx.Hash)
		require.Equal(t, transaction.Hash160(hash.Hash160(script)), tx.ScriptHash)

		require.Len(t, tx.Signers, 1)
		require.Equal(t, transaction.Hash160(from), tx.Signers[0].Account)
		require.Equal(t, transaction.ScopeCalledByEntry, tx.Signers[0].Scope)
	})

	t.Run("GAS transfer without assert", func(t *testing.T) {
		script := callScript(t, transaction.GasContractHash, "transfer", false, from, to, 150000000, nil)
		tx, err := transaction.FromNeoBytes(buildNeoTx(script).Bytes(), transaction.TestNetMagic)
		require.NoError(t, err)
		require.True(t, tx.IsSystemAssetTransfer)
		require.False(t, tx.IsNeo)
		require.Equal(t, int64(150000000), tx.Amount)
	})

	t.Run("transfer of another token is arbitrary", func(t *testing.T) {
		token := util.Uint160{0x01, 0x02, 0x03}
		script := callScript(t, token, "transfer", true, from, to, 5, nil)
		tx, err := transaction.FromNeoBytes(buildNeoTx(script).Bytes(), transaction.MainNetMagic)
		require.NoError(t, err)
		require.True(t, tx.IsArbitraryScript())
		require.Empty(t, tx.DstAddress)
	})

	t.Run("transfer with data is arbitrary", func(t *testing.T) {
		script := callScript(t, transaction.NeoContractHash, "transfer", true, from, to, 5, []byte{0x01})
		tx, err := transaction.FromNeoBytes(buildNeoTx(script).Bytes(), transaction.MainNetMagic)
		require.NoError(t, err)
		require.True(t, tx.IsArbitraryScript())
	})

	t.Run("vote", func(t *testing.T) {
		priv, err := keys.NewPrivateKey()
		require.NoError(t, err)
		candidate := priv.PublicKey().Bytes()

		script := callScript(t, transaction.NeoContractHash, "vote", true, from, candidate)
		tx, err := transaction.FromNeoBytes(buildNeoTx(script).Bytes(), transaction.MainNetMagic)
		require.NoError(t, err)
		require.True(t, tx.IsVoteScript)
		require.False(t, tx.IsRemoveVote)
		require.Equal(t, candidate, tx.VoteTo[:])
	})

	t.Run("retract vote", func(t *testing.T) {
		script := callScript(t, transaction.NeoContractHash, "vote", true, from, nil)
		tx, err := transaction.FromNeoBytes(buildNeoTx(script).Bytes(), transaction.MainNetMagic)
		require.NoError(t, err)
		require.True(t, tx.IsVoteScript)
		require.True(t, tx.IsRemoveVote)
	})

	t.Run("vote on GAS is arbitrary", func(t *testing.T) {
		script := callScript(t, transaction.GasContractHash, "vote", true, from, nil)
		tx, err := transaction.FromNeoBytes(buildNeoTx(script).Bytes(), transaction.MainNetMagic)
		require.NoError(t, err)
		require.True(t, tx.IsArbitraryScript())
	})

	t.Run("arbitrary script", func(t *testing.T) {
		tx, err := transaction.FromNeoBytes(buildNeoTx([]byte{byte(opcode.PUSH1)}).Bytes(), transaction.MainNetMagic)
		require.NoError(t, err)
		require.True(t, tx.IsArbitraryScript())
	})

	t.Run("custom contracts and groups", func(t *testing.T) {
		priv, err := keys.NewPrivateKey()
		require.NoError(t, err)

		signers := []neotx.Signer{
			{Account: from, Scopes: neotx.CalledByEntry},
			{
				Account:          to,
				Scopes:           neotx.CustomContracts | neotx.CustomGroups,
				AllowedContracts: []util.Uint160{transaction.NeoContractHash, transaction.GasContractHash},
				AllowedGroups:    keys.PublicKeys{priv.PublicKey()},
			},
		}
		tx, err := transaction.FromNeoBytes(buildNeoTx([]byte{byte(opcode.PUSH1)}, signers...).Bytes(), transaction.MainNetMagic)
		require.NoError(t, err)
		require.Len(t, tx.Signers, 2)

		s := tx.Signers[1]
		require.Equal(t, transaction.ScopeCustomContracts|transaction.ScopeCustomGroups, s.Scope)
		require.Equal(t, []transaction.Hash160{
			transaction.Hash160(transaction.NeoContractHash),
			transaction.Hash160(transaction.GasContractHash),
		}, s.AllowedContracts)
		require.Len(t, s.AllowedGroups, 1)
		require.Equal(t, priv.PublicKey().Bytes(), s.AllowedGroups[0][:])
	})

	t.Run("invalid bytes", func(t *testing.T) {
		_, err := transaction.FromNeoBytes([]byte{0x00, 0x01}, transaction.MainNetMagic)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to deserialize NEO transaction")
	})
}

func TestFromNeoEncodings(t *testing.T) {
	script := callScript(t, transaction.NeoContractHash, "transfer", true, from, to, 1, nil)
	raw := buildNeoTx(script).Bytes()

	t.Run("base64", func(t *testing.T) {
		tx, err := transaction.FromNeoBase64(base64.StdEncoding.EncodeToString(raw), transaction.MainNetMagic)
		require.NoError(t, err)
		require.True(t, tx.IsNeo)

		_, err = transaction.FromNeoBase64("not-valid-base64!", transaction.MainNetMagic)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to decode base64")
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tx.bin")
		require.NoError(t, os.WriteFile(path, raw, 0o600))

		tx, err := transaction.FromNeoFile(path, transaction.MainNetMagic)
		require.NoError(t, err)
		require.Equal(t, int64(1), tx.Amount)

		_, err = transaction.FromNeoFile(filepath.Join(t.TempDir(), "missing.bin"), transaction.MainNetMagic)
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to read file")
	})
}

func TestSigningDigest(t *testing.T) {
	ntx := buildNeoTx([]byte{byte(opcode.PUSH1)})
	digest := transaction.SigningDigest(transaction.MainNetMagic, transaction.Hash256(ntx.Hash()))
	require.Equal(t, transaction.Hash256(hash.NetSha256(transaction.MainNetMagic, ntx)), digest)

	other := transaction.SigningDigest(transaction.TestNetMagic, transaction.Hash256(ntx.Hash()))
	require.NotEqual(t, digest, other)
}
