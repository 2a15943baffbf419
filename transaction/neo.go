package transaction

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/interopnames"
	neotx "github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm"
	"github.com/nspcc-dev/neo-go/pkg/vm/opcode"
)

// Native contract script hashes
var (
	NeoContractHash = mustUint160LE("ef4073a0f2b305a38ec4050e4d3d28bc40ea63f5")
	GasContractHash = mustUint160LE("d2a4cff31913016155e38e474a2c06d08be276cf")
)

var contractCallID = interopnames.ToID([]byte(interopnames.SystemContractCall))

func mustUint160LE(s string) util.Uint160 {
	u, err := util.Uint160DecodeStringLE(s)
	if err != nil {
		panic(err)
	}
	return u
}

// FromNeoBytes converts a serialized NEO N3 transaction (neo-go wire format,
// witnesses included) into a validated display record.
func FromNeoBytes(raw []byte, magic uint32) (*Transaction, error) {
	ntx, err := neotx.NewTransactionFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize NEO transaction: %w", err)
	}
	return FromNeoTransaction(ntx, magic)
}

// FromNeoBase64 decodes a base64-encoded serialized NEO N3 transaction
func FromNeoBase64(txB64 string, magic uint32) (*Transaction, error) {
	raw, err := base64.StdEncoding.DecodeString(txB64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return FromNeoBytes(raw, magic)
}

// FromNeoFile reads a serialized NEO N3 transaction from a binary file
func FromNeoFile(filePath string, magic uint32) (*Transaction, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return FromNeoBytes(raw, magic)
}

// FromNeoTransaction builds the display record from an already decoded neo-go transaction
func FromNeoTransaction(ntx *neotx.Transaction, magic uint32) (*Transaction, error) {
	tx := &Transaction{
		NetworkMagic:    magic,
		Version:         ntx.Version,
		Nonce:           ntx.Nonce,
		SystemFee:       ntx.SystemFee,
		NetworkFee:      ntx.NetworkFee,
		ValidUntilBlock: ntx.ValidUntilBlock,
		ScriptHash:      Hash160(hash.Hash160(ntx.Script)),
		Hash:            Hash256(ntx.Hash()),
	}

	for _, ns := range ntx.Signers {
		s := Signer{
			Account: Hash160(ns.Account),
			Scope:   Scope(ns.Scopes),
		}
		for _, c := range ns.AllowedContracts {
			s.AllowedContracts = append(s.AllowedContracts, Hash160(c))
		}
		for _, g := range ns.AllowedGroups {
			var pk PublicKey
			copy(pk[:], g.Bytes())
			s.AllowedGroups = append(s.AllowedGroups, pk)
		}
		tx.Signers = append(tx.Signers, s)
	}

	classifyScript(tx, ntx.Script)

	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transaction: %w", err)
	}
	return tx, nil
}

type instruction struct {
	op    opcode.Opcode
	param []byte
}

func decodeScript(script []byte) ([]instruction, error) {
	ctx := vm.NewContext(script)
	var out []instruction
	for {
		op, param, err := ctx.Next()
		if err != nil {
			return nil, err
		}
		if ctx.IP() >= len(script) {
			return out, nil
		}
		out = append(out, instruction{op: op, param: param})
	}
}

// classifyScript recognizes NEO/GAS transfers and NEO votes. Anything else
// stays an arbitrary script and is subject to the contract scripts setting.
func classifyScript(tx *Transaction, script []byte) {
	ins, err := decodeScript(script)
	if err != nil {
		return
	}
	if n := len(ins); n > 0 && ins[n-1].op == opcode.ASSERT {
		ins = ins[:n-1]
	}

	switch len(ins) {
	case 10:
		matchTransfer(tx, ins)
	case 8:
		matchVote(tx, ins)
	}
}

// matchCall checks the tail shared by every System.Contract.Call with CallFlags.All.
func matchCall(ins []instruction, argc int, method string) (util.Uint160, bool) {
	if len(ins) != 6 {
		return util.Uint160{}, false
	}
	if ins[0].op != opcode.PUSH0+opcode.Opcode(argc) || ins[1].op != opcode.PACK || ins[2].op != opcode.PUSH15 {
		return util.Uint160{}, false
	}
	if ins[3].op != opcode.PUSHDATA1 || !bytes.Equal(ins[3].param, []byte(method)) {
		return util.Uint160{}, false
	}
	contract, ok := pushedHash160(ins[4])
	if !ok {
		return util.Uint160{}, false
	}
	if ins[5].op != opcode.SYSCALL || len(ins[5].param) != 4 || binary.LittleEndian.Uint32(ins[5].param) != contractCallID {
		return util.Uint160{}, false
	}
	return contract, true
}

func matchTransfer(tx *Transaction, ins []instruction) {
	if ins[0].op != opcode.PUSHNULL {
		return
	}
	amount, ok := pushedInt64(ins[1])
	if !ok || amount < 0 {
		return
	}
	to, ok := pushedHash160(ins[2])
	if !ok {
		return
	}
	if _, ok := pushedHash160(ins[3]); !ok {
		return
	}
	contract, ok := matchCall(ins[4:], 4, "transfer")
	if !ok || (contract != NeoContractHash && contract != GasContractHash) {
		return
	}

	tx.IsSystemAssetTransfer = true
	tx.IsNeo = contract == NeoContractHash
	tx.DstAddress = address.Uint160ToString(to)
	tx.Amount = amount
}

func matchVote(tx *Transaction, ins []instruction) {
	var voteTo PublicKey
	remove := false
	switch {
	case ins[0].op == opcode.PUSHNULL:
		remove = true
	case ins[0].op == opcode.PUSHDATA1 && len(ins[0].param) == len(voteTo):
		copy(voteTo[:], ins[0].param)
	default:
		return
	}
	if _, ok := pushedHash160(ins[1]); !ok {
		return
	}
	contract, ok := matchCall(ins[2:], 2, "vote")
	if !ok || contract != NeoContractHash {
		return
	}

	tx.IsVoteScript = true
	tx.IsRemoveVote = remove
	tx.VoteTo = voteTo
}

func pushedHash160(in instruction) (util.Uint160, bool) {
	if in.op != opcode.PUSHDATA1 || len(in.param) != util.Uint160Size {
		return util.Uint160{}, false
	}
	u, err := util.Uint160DecodeBytesBE(in.param)
	if err != nil {
		return util.Uint160{}, false
	}
	return u, true
}

func pushedInt64(in instruction) (int64, bool) {
	switch {
	case in.op >= opcode.PUSH0 && in.op <= opcode.PUSH16:
		return int64(in.op - opcode.PUSH0), true
	case in.op >= opcode.PUSHINT8 && in.op <= opcode.PUSHINT256:
		v := bigint.FromBytes(in.param)
		if !v.IsInt64() {
			return 0, false
		}
		return v.Int64(), true
	}
	return 0, false
}
