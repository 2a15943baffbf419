package review

import (
	"fmt"

	"github.com/anchorageoss/visualsign-neoreview/transaction"
)

// PropertyState is the phase of the cursor within the active signer.
type PropertyState uint8

const (
	// StateStart is before the signer's index item
	StateStart PropertyState = iota
	// StateIndex is on the "Signer k of n" item
	StateIndex
	// StateAccount is on the account item
	StateAccount
	// StateScope is on the witness scope item
	StateScope
	// StateContracts walks the allowed contracts
	StateContracts
	// StateGroups walks the allowed groups
	StateGroups
	// StateEnd is past the signer's last item
	StateEnd
)

func (p PropertyState) String() string {
	switch p {
	case StateStart:
		return "START"
	case StateIndex:
		return "INDEX"
	case StateAccount:
		return "ACCOUNT"
	case StateScope:
		return "SCOPE"
	case StateContracts:
		return "CONTRACTS"
	case StateGroups:
		return "GROUPS"
	case StateEnd:
		return "END"
	default:
		return fmt.Sprintf("PropertyState(%d)", uint8(p))
	}
}

// State is the position of the cursor in the signer section.
//
// ContractIndex and GroupIndex are -1 before their list has been entered
// going forward and equal to the list size once it has been left going
// forward (or before it is re-entered going backward).
type State struct {
	SignerIndex   int           `json:"signerIndex"`
	Property      PropertyState `json:"property"`
	ContractIndex int           `json:"contractIndex"`
	GroupIndex    int           `json:"groupIndex"`
}

// InitialState is the state of a freshly reset cursor
func InitialState() State {
	return State{SignerIndex: 0, Property: StateStart, ContractIndex: -1, GroupIndex: -1}
}

func (st State) String() string {
	return fmt.Sprintf("s=%d p=%s c=%d g=%d", st.SignerIndex, st.Property, st.ContractIndex, st.GroupIndex)
}

// Coordinate returns the item shown in this state. START and END show nothing.
func (st State) Coordinate() (Coordinate, bool) {
	switch st.Property {
	case StateIndex:
		return AtSigner(st.SignerIndex), true
	case StateAccount:
		return AtAccount(st.SignerIndex), true
	case StateScope:
		return AtScope(st.SignerIndex), true
	case StateContracts:
		return AtContract(st.SignerIndex, st.ContractIndex), true
	case StateGroups:
		return AtGroup(st.SignerIndex, st.GroupIndex), true
	default:
		return Coordinate{}, false
	}
}

// Next moves one item forward. It reports false when the signer section is
// exhausted; the returned state is then the END state of the last signer,
// and calling Next on it again changes nothing.
func Next(tx *transaction.Transaction, st State) (State, bool) {
	if len(tx.Signers) == 0 {
		return st, false
	}

	for {
		sg := &tx.Signers[st.SignerIndex]

		if st.Property < StateContracts {
			st.Property++
			if st.Property < StateContracts {
				return st, true
			}
		}

		if st.Property == StateContracts {
			if st.ContractIndex+1 < len(sg.AllowedContracts) {
				st.ContractIndex++
				return st, true
			}
			st.ContractIndex = len(sg.AllowedContracts)
			st.Property = StateGroups
		}

		if st.Property == StateGroups {
			if st.GroupIndex+1 < len(sg.AllowedGroups) {
				st.GroupIndex++
				return st, true
			}
			st.GroupIndex = len(sg.AllowedGroups)
			st.Property = StateEnd
		}

		if st.SignerIndex+1 >= len(tx.Signers) {
			return st, false
		}
		st = State{SignerIndex: st.SignerIndex + 1, Property: StateStart, ContractIndex: -1, GroupIndex: -1}
	}
}

// Prev moves one item backward, mirroring Next. Leaving the first item of
// the first signer returns InitialState and false; Prev on InitialState
// stays there.
func Prev(tx *transaction.Transaction, st State) (State, bool) {
	if len(tx.Signers) == 0 {
		return st, false
	}

	for {
		if st.SignerIndex == 0 && st.Property <= StateIndex {
			return InitialState(), false
		}

		if st.Property == StateEnd {
			st.Property = StateGroups
		}

		if st.Property == StateGroups {
			if st.GroupIndex > 0 {
				st.GroupIndex--
				return st, true
			}
			st.GroupIndex = -1
			st.Property = StateContracts
		}

		if st.Property == StateContracts {
			if st.ContractIndex > 0 {
				st.ContractIndex--
				return st, true
			}
			st.ContractIndex = -1
		}

		if st.Property > StateStart {
			st.Property--
		}
		if st.Property != StateStart {
			return st, true
		}

		prev := &tx.Signers[st.SignerIndex-1]
		st = State{
			SignerIndex:   st.SignerIndex - 1,
			Property:      StateEnd,
			ContractIndex: len(prev.AllowedContracts),
			GroupIndex:    len(prev.AllowedGroups),
		}
	}
}

// ScreenMode tells whether the display is on a fixed screen or inside the
// signer section.
type ScreenMode uint8

const (
	// ModeStatic shows prefix items addressed by position
	ModeStatic ScreenMode = iota
	// ModeDynamic shows signer items produced by the cursor
	ModeDynamic
)

func (m ScreenMode) String() string {
	if m == ModeDynamic {
		return "DYNAMIC"
	}
	return "STATIC"
}

// Cursor walks the signer section of a Source one item at a time.
type Cursor struct {
	src   *Source
	state State
}

// NewCursor creates a cursor in the initial state
func NewCursor(src *Source) *Cursor {
	return &Cursor{src: src, state: InitialState()}
}

// Reset returns the cursor to the initial state
func (c *Cursor) Reset() {
	c.state = InitialState()
}

// State returns the current state
func (c *Cursor) State() State {
	return c.state
}

// Coordinate returns the coordinate of the current item, if any
func (c *Cursor) Coordinate() (Coordinate, bool) {
	return c.state.Coordinate()
}

// Advance moves forward and renders the new item. ok is false when there
// is no further signer item.
func (c *Cursor) Advance() (item Item, ok bool, err error) {
	next, ok := Next(c.src.tx, c.state)
	c.state = next
	if !ok {
		return Item{}, false, nil
	}
	return c.render()
}

// Retreat moves backward and renders the new item. ok is false when the
// cursor left the first signer item.
func (c *Cursor) Retreat() (item Item, ok bool, err error) {
	prev, ok := Prev(c.src.tx, c.state)
	c.state = prev
	if !ok {
		return Item{}, false, nil
	}
	return c.render()
}

// Render renders the current item
func (c *Cursor) Render() (Item, error) {
	coord, ok := c.state.Coordinate()
	if !ok {
		return Item{}, fmt.Errorf("%w: cursor at %s", ErrOutOfRange, c.state)
	}
	return c.src.Render(coord)
}

func (c *Cursor) render() (Item, bool, error) {
	item, err := c.Render()
	if err != nil {
		return Item{}, false, err
	}
	return item, true, nil
}
