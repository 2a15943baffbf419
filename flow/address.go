package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/sirupsen/logrus"

	"github.com/anchorageoss/visualsign-neoreview/crypto"
	"github.com/anchorageoss/visualsign-neoreview/review"
)

// AddressDriver asks the user to confirm the N3 address of a signing key
// before its public key is handed to the host.
type AddressDriver struct {
	pub   *keys.PublicKey
	steps []step
	index int
	log   *logrus.Entry

	result Result
}

// NewAddress prepares the confirmation of the address derived at path
func NewAddress(pub *keys.PublicKey, path crypto.Path, logger *logrus.Logger) (*AddressDriver, error) {
	if pub == nil {
		return nil, errors.New("no public key")
	}
	if err := path.Validate(); err != nil {
		return nil, fmt.Errorf("invalid signing path %s: %w", path, err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	address := pub.Address()
	d := &AddressDriver{
		pub: pub,
		steps: []step{
			{kind: StepConfirmAddress, item: review.Item{Title: "Confirm Address"}},
			{kind: StepField, item: review.Item{Title: "Address", Text: address}},
			{kind: StepApprove, item: review.Item{Title: "Approve"}},
			{kind: StepReject, item: review.Item{Title: "Reject"}},
		},
		log: logger.WithFields(logrus.Fields{
			"address": address,
			"path":    path.String(),
		}),
		result: Result{Address: address},
	}
	d.log.Debug("Address confirmation started")
	return d, nil
}

// Done reports whether the user made a final decision
func (d *AddressDriver) Done() bool {
	return d.result.Outcome != OutcomePending
}

// Result returns the decision, with the public key when approved
func (d *AddressDriver) Result() Result {
	return d.result
}

// Screen returns the screen to paint for the current step
func (d *AddressDriver) Screen() Screen {
	st := d.steps[d.index]
	return Screen{
		Step:     st.kind,
		Mode:     review.ModeStatic,
		Title:    st.item.Title,
		Text:     st.item.Text,
		Position: -1,
		First:    d.index == 0,
		Last:     d.index == len(d.steps)-1,
	}
}

// Forward moves to the next screen
func (d *AddressDriver) Forward() {
	if d.Done() || d.index+1 >= len(d.steps) {
		return
	}
	d.index++
}

// Backward moves to the previous screen
func (d *AddressDriver) Backward() {
	if d.Done() || d.index == 0 {
		return
	}
	d.index--
}

// Confirm presses both buttons; only the approve and reject screens react
func (d *AddressDriver) Confirm() {
	if d.Done() {
		return
	}
	switch d.steps[d.index].kind {
	case StepApprove:
		d.result.PublicKey = d.pub.UncompressedBytes()
		d.finish(OutcomeApproved)
	case StepReject:
		d.finish(OutcomeRejected)
	}
}

// Reject ends the confirmation as rejected from any screen
func (d *AddressDriver) Reject() {
	if d.Done() {
		return
	}
	d.finish(OutcomeRejected)
}

// Handle applies a user event
func (d *AddressDriver) Handle(ctx context.Context, ev Event) error {
	switch ev {
	case EventForward:
		d.Forward()
	case EventBackward:
		d.Backward()
	case EventConfirm:
		d.Confirm()
	case EventReject:
		d.Reject()
	default:
		return fmt.Errorf("unknown event %d", ev)
	}
	return nil
}

func (d *AddressDriver) finish(o Outcome) {
	d.result.Outcome = o
	d.log.WithFields(logrus.Fields{
		"outcome":    o.String(),
		"statusWord": fmt.Sprintf("0x%04X", o.StatusWord()),
	}).Info("Address confirmation finished")
}
