// Package flow drives a transaction review on a device-like display.
//
// A Driver owns the review state of one transaction: the list of static
// screens, the cursor over the signer section and the final decision. The
// display feeds it user events and paints whatever Screen returns:
//
//	d, err := flow.New(tx, flow.Config{Path: path, Signer: signer})
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := flow.Run(ctx, d, display)
//
// Static screens are the review banner, the transaction fields and the
// approve and reject buttons. The signer section sits between the fields and
// the approve button and is rendered one item at a time.
package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/anchorageoss/visualsign-neoreview/crypto"
	"github.com/anchorageoss/visualsign-neoreview/review"
	"github.com/anchorageoss/visualsign-neoreview/transaction"
)

// ArbitraryScriptWarning is shown instead of the review when the policy blocks it
const ArbitraryScriptWarning = "Arbitrary contract scripts are not allowed. Go to Settings to enable signing of such transactions"

// Signer is the collaborator producing the signature once the user approves
type Signer interface {
	Sign(ctx context.Context, path crypto.Path, digest transaction.Hash256) ([]byte, error)
}

// Config configures a review
type Config struct {
	Options              review.Options
	AllowContractScripts bool
	Path                 crypto.Path
	Signer               Signer
	Logger               *logrus.Logger
}

// StepKind identifies a screen of the flow
type StepKind uint8

const (
	StepReview StepKind = iota
	StepField
	StepSigners
	StepApprove
	StepReject
	StepWarning
	StepSettings
	StepConfirmAddress
)

func (k StepKind) String() string {
	switch k {
	case StepReview:
		return "review"
	case StepField:
		return "field"
	case StepSigners:
		return "signers"
	case StepApprove:
		return "approve"
	case StepReject:
		return "reject"
	case StepWarning:
		return "warning"
	case StepSettings:
		return "settings"
	case StepConfirmAddress:
		return "confirm-address"
	default:
		return fmt.Sprintf("step(%d)", uint8(k))
	}
}

type step struct {
	kind StepKind
	item review.Item
}

// Screen is what the display shows for the current step
type Screen struct {
	Step  StepKind
	Mode  review.ScreenMode
	Title string
	Text  string
	// Position is the index of the item in the whole review, -1 for buttons
	Position int
	Total    int
	First    bool
	Last     bool
}

// Driver runs one review flow
type Driver struct {
	tx     *transaction.Transaction
	src    *review.Source
	cursor *review.Cursor
	cfg    Config
	log    *logrus.Entry

	decision review.Decision
	steps    []step
	signers  int
	index    int
	mode     review.ScreenMode
	current  review.Item

	result Result
}

// New prepares the review of a validated transaction
func New(tx *transaction.Transaction, cfg Config) (*Driver, error) {
	if cfg.Signer == nil {
		return nil, errors.New("no signer configured")
	}
	if err := cfg.Path.Validate(); err != nil {
		return nil, fmt.Errorf("invalid signing path %s: %w", cfg.Path, err)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	src, err := review.NewSource(tx, cfg.Options)
	if err != nil {
		return nil, err
	}

	d := &Driver{
		tx:       tx,
		src:      src,
		cursor:   review.NewCursor(src),
		cfg:      cfg,
		decision: review.Gate(tx, cfg.AllowContractScripts),
		signers:  -1,
		mode:     review.ModeStatic,
		log: cfg.Logger.WithFields(logrus.Fields{
			"tx":   tx.Hash.Hex(),
			"path": cfg.Path.String(),
		}),
	}
	d.buildSteps()

	d.log.WithFields(logrus.Fields{
		"decision": d.decision.String(),
		"items":    src.TotalItemCount(),
		"signers":  len(tx.Signers),
	}).Debug("Review started")
	if d.decision == review.DecisionBlockedByPolicy {
		d.log.Info("Arbitrary contract script blocked by settings")
	}
	return d, nil
}

func (d *Driver) buildSteps() {
	if d.decision == review.DecisionBlockedByPolicy {
		d.steps = []step{
			{kind: StepWarning, item: review.Item{Title: "Error", Text: ArbitraryScriptWarning}},
			{kind: StepSettings, item: review.Item{Title: "Go to settings"}},
			{kind: StepReject, item: review.Item{Title: "Reject"}},
		}
		return
	}

	d.steps = append(d.steps, step{kind: StepReview, item: review.Item{Title: "Review", Text: "Transaction"}})
	for _, item := range d.src.Prefix() {
		d.steps = append(d.steps, step{kind: StepField, item: item})
	}
	d.signers = len(d.steps)
	d.steps = append(d.steps,
		step{kind: StepSigners},
		step{kind: StepApprove, item: review.Item{Title: "Approve"}},
		step{kind: StepReject, item: review.Item{Title: "Reject"}},
	)
}

// Decision returns the outcome of the pre-review policy check
func (d *Driver) Decision() review.Decision {
	return d.decision
}

// Mode returns whether the signer section is being shown
func (d *Driver) Mode() review.ScreenMode {
	return d.mode
}

// Source returns the item source of the review
func (d *Driver) Source() *review.Source {
	return d.src
}

// Done reports whether the user made a final decision
func (d *Driver) Done() bool {
	return d.result.Outcome != OutcomePending
}

// Result returns the final decision, OutcomePending until Done
func (d *Driver) Result() Result {
	r := d.result
	r.Decision = d.decision
	return r
}

// Screen returns the screen to paint for the current step
func (d *Driver) Screen() Screen {
	st := d.steps[d.index]
	item := st.item
	if st.kind == StepSigners {
		item = d.current
	}

	s := Screen{
		Step:     st.kind,
		Mode:     d.mode,
		Title:    item.Title,
		Text:     item.Text,
		Position: -1,
		Total:    d.src.TotalItemCount(),
		First:    d.index == 0,
		Last:     d.index == len(d.steps)-1,
	}
	if st.kind == StepField || st.kind == StepSigners {
		if pos, err := d.src.PositionOf(item.Coordinate); err == nil {
			s.Position = pos
		}
	}
	return s
}

// Forward moves to the next screen
func (d *Driver) Forward() error {
	if d.Done() {
		return nil
	}

	if d.mode == review.ModeDynamic {
		item, ok, err := d.cursor.Advance()
		if err != nil {
			return d.fail(err)
		}
		if ok {
			d.show(item)
			return nil
		}
		d.leaveSigners(d.signers + 1)
		return nil
	}

	if d.index+1 >= len(d.steps) {
		return nil
	}
	if d.index+1 == d.signers {
		item, ok, err := d.cursor.Advance()
		if err != nil {
			return d.fail(err)
		}
		if ok {
			d.enterSigners(item)
			return nil
		}
		d.moveTo(d.signers + 1)
		return nil
	}
	d.moveTo(d.index + 1)
	return nil
}

// Backward moves to the previous screen
func (d *Driver) Backward() error {
	if d.Done() {
		return nil
	}

	if d.mode == review.ModeDynamic {
		item, ok, err := d.cursor.Retreat()
		if err != nil {
			return d.fail(err)
		}
		if ok {
			d.show(item)
			return nil
		}
		d.leaveSigners(d.signers - 1)
		return nil
	}

	if d.index == 0 {
		return nil
	}
	if d.index-1 == d.signers {
		item, ok, err := d.cursor.Retreat()
		if err != nil {
			return d.fail(err)
		}
		if ok {
			d.enterSigners(item)
			return nil
		}
		d.moveTo(d.signers - 1)
		return nil
	}
	d.moveTo(d.index - 1)
	return nil
}

// Confirm presses both buttons on the current screen. It only has an effect
// on the approve, reject and settings buttons.
func (d *Driver) Confirm(ctx context.Context) {
	if d.Done() || d.mode == review.ModeDynamic {
		return
	}

	switch d.steps[d.index].kind {
	case StepApprove:
		d.approve(ctx)
	case StepReject:
		d.finish(OutcomeRejected)
	case StepSettings:
		d.finish(OutcomeAbortedToSettings)
	}
}

// Reject ends the review as rejected from any screen
func (d *Driver) Reject() {
	if d.Done() {
		return
	}
	d.finish(OutcomeRejected)
}

// Handle applies a user event
func (d *Driver) Handle(ctx context.Context, ev Event) error {
	switch ev {
	case EventForward:
		return d.Forward()
	case EventBackward:
		return d.Backward()
	case EventConfirm:
		d.Confirm(ctx)
	case EventReject:
		d.Reject()
	default:
		return fmt.Errorf("unknown event %d", ev)
	}
	return nil
}

func (d *Driver) approve(ctx context.Context) {
	digest := transaction.SigningDigest(d.tx.NetworkMagic, d.tx.Hash)
	d.result.Digest = digest

	signature, err := d.cfg.Signer.Sign(ctx, d.cfg.Path, digest)
	if err != nil {
		d.log.WithError(err).Error("Failed to sign transaction")
		d.finish(OutcomeSignFailed)
		return
	}
	d.result.Signature = signature
	d.finish(OutcomeApproved)
}

func (d *Driver) finish(o Outcome) {
	d.result.Outcome = o
	d.log.WithFields(logrus.Fields{
		"outcome":    o.String(),
		"statusWord": fmt.Sprintf("0x%04X", o.StatusWord()),
	}).Info("Review finished")
}

// fail logs a rendering error. These only happen when the cursor and the
// item source disagree, so the flow cannot continue.
func (d *Driver) fail(err error) error {
	d.log.WithError(err).WithField("state", d.cursor.State().String()).Error("Failed to render review item")
	return fmt.Errorf("failed to render review item: %w", err)
}

func (d *Driver) show(item review.Item) {
	d.current = item
	d.log.WithFields(logrus.Fields{
		"coordinate": item.Coordinate.String(),
		"state":      d.cursor.State().String(),
	}).Debug("Showing signer item")
}

func (d *Driver) enterSigners(item review.Item) {
	d.index = d.signers
	d.mode = review.ModeDynamic
	d.show(item)
}

func (d *Driver) leaveSigners(index int) {
	d.mode = review.ModeStatic
	d.current = review.Item{}
	d.moveTo(index)
}

func (d *Driver) moveTo(index int) {
	d.index = index
	d.log.WithFields(logrus.Fields{
		"step":  d.steps[index].kind.String(),
		"index": index,
	}).Debug("Showing screen")
}
