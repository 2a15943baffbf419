package transaction

import (
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/util"
)

// FormatText formats a record for terminal display
func FormatText(tx *Transaction) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Hash: %s\n", tx.Hash.Hex()))
	sb.WriteString(fmt.Sprintf("Network Magic: %d\n", tx.NetworkMagic))
	sb.WriteString(fmt.Sprintf("Version: %d\n", tx.Version))
	sb.WriteString(fmt.Sprintf("Nonce: %d\n", tx.Nonce))
	sb.WriteString(fmt.Sprintf("System Fee: %d\n", tx.SystemFee))
	sb.WriteString(fmt.Sprintf("Network Fee: %d\n", tx.NetworkFee))
	sb.WriteString(fmt.Sprintf("Valid Until Block: %d\n", tx.ValidUntilBlock))
	sb.WriteString(fmt.Sprintf("Script Hash: %s\n", scriptHashLE(tx.ScriptHash)))

	sb.WriteString(fmt.Sprintf("\nScript: %s\n", scriptKind(tx)))
	switch {
	case tx.IsSystemAssetTransfer:
		sb.WriteString(fmt.Sprintf("  Destination: %s\n", tx.DstAddress))
		sb.WriteString(fmt.Sprintf("  Amount: %d\n", tx.Amount))
	case tx.IsVoteScript && !tx.IsRemoveVote:
		sb.WriteString(fmt.Sprintf("  Vote To: %s\n", tx.VoteTo.Hex()))
	}

	sb.WriteString(fmt.Sprintf("\nSigners (%d):\n", len(tx.Signers)))
	for i, s := range tx.Signers {
		sb.WriteString(fmt.Sprintf("  [%d] Account: %s\n", i, s.Account.Hex()))
		sb.WriteString(fmt.Sprintf("      Scope: %s\n", s.Scope))
		for _, c := range s.AllowedContracts {
			sb.WriteString(fmt.Sprintf("      Contract: %s\n", c.Hex()))
		}
		for _, g := range s.AllowedGroups {
			sb.WriteString(fmt.Sprintf("      Group: %s\n", g.Hex()))
		}
	}

	return sb.String()
}

// FormatJSON formats a record as a map for JSON output
func FormatJSON(tx *Transaction) map[string]interface{} {
	signers := make([]map[string]interface{}, 0, len(tx.Signers))
	for _, s := range tx.Signers {
		contracts := make([]string, 0, len(s.AllowedContracts))
		for _, c := range s.AllowedContracts {
			contracts = append(contracts, c.Hex())
		}
		groups := make([]string, 0, len(s.AllowedGroups))
		for _, g := range s.AllowedGroups {
			groups = append(groups, g.Hex())
		}
		signers = append(signers, map[string]interface{}{
			"account":          s.Account.Hex(),
			"scope":            s.Scope.String(),
			"allowedContracts": contracts,
			"allowedGroups":    groups,
		})
	}

	out := map[string]interface{}{
		"hash":            tx.Hash.Hex(),
		"networkMagic":    tx.NetworkMagic,
		"version":         tx.Version,
		"nonce":           tx.Nonce,
		"systemFee":       tx.SystemFee,
		"networkFee":      tx.NetworkFee,
		"validUntilBlock": tx.ValidUntilBlock,
		"scriptHash":      scriptHashLE(tx.ScriptHash),
		"script":          scriptKind(tx),
		"signers":         signers,
	}
	switch {
	case tx.IsSystemAssetTransfer:
		out["destination"] = tx.DstAddress
		out["amount"] = tx.Amount
	case tx.IsVoteScript && !tx.IsRemoveVote:
		out["voteTo"] = tx.VoteTo.Hex()
	}
	return out
}

func scriptKind(tx *Transaction) string {
	switch {
	case tx.IsSystemAssetTransfer && tx.IsNeo:
		return "NEO transfer"
	case tx.IsSystemAssetTransfer:
		return "GAS transfer"
	case tx.IsVoteScript && tx.IsRemoveVote:
		return "vote retraction"
	case tx.IsVoteScript:
		return "vote"
	default:
		return "contract script"
	}
}

// scriptHashLE renders a script hash the way NEO explorers show it
func scriptHashLE(h Hash160) string {
	return "0x" + util.Uint160(h).StringLE()
}
