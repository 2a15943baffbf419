package flow

import (
	"encoding/hex"
	"encoding/json"

	"github.com/anchorageoss/visualsign-neoreview/review"
	"github.com/anchorageoss/visualsign-neoreview/transaction"
)

// Status words reported to the host
const (
	StatusOK       uint16 = 0x9000
	StatusDenied   uint16 = 0x6985
	StatusSignFail uint16 = 0xB009
)

// Outcome is the final user decision of a review
type Outcome uint8

const (
	OutcomePending Outcome = iota
	OutcomeApproved
	OutcomeRejected
	OutcomeAbortedToSettings
	OutcomeSignFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApproved:
		return "approved"
	case OutcomeRejected:
		return "rejected"
	case OutcomeAbortedToSettings:
		return "aborted-to-settings"
	case OutcomeSignFailed:
		return "sign-failed"
	default:
		return "pending"
	}
}

// StatusWord returns the status word the outcome is reported with
func (o Outcome) StatusWord() uint16 {
	switch o {
	case OutcomeApproved:
		return StatusOK
	case OutcomeSignFailed:
		return StatusSignFail
	default:
		return StatusDenied
	}
}

// Result is what a finished review reports back
type Result struct {
	Outcome   Outcome
	Decision  review.Decision
	Digest    transaction.Hash256
	Signature []byte

	// Address and PublicKey are set by an address confirmation instead of
	// the review fields above. PublicKey is only set on approval.
	Address   string
	PublicKey []byte
}

// MarshalJSON renders the result for the CLI
func (r Result) MarshalJSON() ([]byte, error) {
	sw := r.Outcome.StatusWord()
	out := map[string]interface{}{
		"outcome":    r.Outcome.String(),
		"statusWord": hex.EncodeToString([]byte{byte(sw >> 8), byte(sw)}),
	}
	if r.Address != "" {
		out["address"] = r.Address
		if r.Outcome == OutcomeApproved {
			out["publicKey"] = hex.EncodeToString(r.PublicKey)
		}
		return json.Marshal(out)
	}

	out["decision"] = r.Decision.String()
	if r.Outcome == OutcomeApproved {
		out["digest"] = r.Digest.Hex()
		out["signature"] = hex.EncodeToString(r.Signature)
	}
	return json.Marshal(out)
}
