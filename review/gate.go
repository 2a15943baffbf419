package review

import "github.com/anchorageoss/visualsign-neoreview/transaction"

// Decision is the outcome of the pre-review policy check
type Decision uint8

const (
	DecisionAllowed Decision = iota
	DecisionBlockedByPolicy
)

func (d Decision) String() string {
	if d == DecisionBlockedByPolicy {
		return "blocked-by-policy"
	}
	return "allowed"
}

// Gate blocks transactions running arbitrary contract scripts unless the
// user enabled them. Votes and NEO/GAS transfers always pass.
func Gate(tx *transaction.Transaction, allowContractScripts bool) Decision {
	if tx.IsArbitraryScript() && !allowContractScripts {
		return DecisionBlockedByPolicy
	}
	return DecisionAllowed
}
