package review

import (
	"errors"
	"fmt"

	"github.com/anchorageoss/visualsign-neoreview/transaction"
)

// itemsPerSigner counts the index, account and scope items of a signer.
const itemsPerSigner = 3

// ErrOutOfRange is returned for positions or coordinates outside the transaction
var ErrOutOfRange = errors.New("review position out of range")

// Options are the user settings that change what is displayed
type Options struct {
	ShowScriptHash bool
}

// Source defines the total order of display items for one transaction.
// Prefix items are formatted once by NewSource; signer items are rendered
// on demand.
type Source struct {
	tx        *transaction.Transaction
	formatter *Formatter
	prefix    []Item
}

// NewSource formats the prefix fields of tx. The transaction must have
// passed Validate; its bounds are not checked again here.
func NewSource(tx *transaction.Transaction, opts Options) (*Source, error) {
	f := NewFormatter()
	prefix, err := f.prefixItems(tx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to format transaction fields: %w", err)
	}
	return &Source{tx: tx, formatter: f, prefix: prefix}, nil
}

// Transaction returns the transaction the source was built for
func (s *Source) Transaction() *transaction.Transaction {
	return s.tx
}

// PrefixCount returns the number of transaction-level items
func (s *Source) PrefixCount() int {
	return len(s.prefix)
}

// Prefix returns the transaction-level items in display order
func (s *Source) Prefix() []Item {
	return append([]Item(nil), s.prefix...)
}

func signerBlock(sg *transaction.Signer) int {
	return itemsPerSigner + len(sg.AllowedContracts) + len(sg.AllowedGroups)
}

// DynamicCount returns the number of per-signer items
func (s *Source) DynamicCount() int {
	n := 0
	for i := range s.tx.Signers {
		n += signerBlock(&s.tx.Signers[i])
	}
	return n
}

// TotalItemCount returns the number of items in the whole review
func (s *Source) TotalItemCount() int {
	return s.PrefixCount() + s.DynamicCount()
}

// CoordinateAt maps a flat position to the coordinate displayed there.
func (s *Source) CoordinateAt(pos int) (Coordinate, error) {
	if pos < 0 {
		return Coordinate{}, fmt.Errorf("%w: position %d", ErrOutOfRange, pos)
	}
	if pos < len(s.prefix) {
		return AtPrefix(pos), nil
	}

	local := pos - len(s.prefix)
	for i := range s.tx.Signers {
		sg := &s.tx.Signers[i]
		block := signerBlock(sg)
		if local >= block {
			local -= block
			continue
		}

		switch {
		case local == 0:
			return AtSigner(i), nil
		case local == 1:
			return AtAccount(i), nil
		case local == 2:
			return AtScope(i), nil
		case local-itemsPerSigner < len(sg.AllowedContracts):
			return AtContract(i, local-itemsPerSigner), nil
		default:
			return AtGroup(i, local-itemsPerSigner-len(sg.AllowedContracts)), nil
		}
	}
	return Coordinate{}, fmt.Errorf("%w: position %d of %d", ErrOutOfRange, pos, s.TotalItemCount())
}

// PositionOf is the inverse of CoordinateAt
func (s *Source) PositionOf(c Coordinate) (int, error) {
	if err := s.check(c); err != nil {
		return 0, err
	}
	if c.Kind == KindPrefix {
		return c.Index, nil
	}

	pos := len(s.prefix)
	for i := 0; i < c.Signer; i++ {
		pos += signerBlock(&s.tx.Signers[i])
	}
	switch c.Kind {
	case KindSigner:
		return pos, nil
	case KindAccount:
		return pos + 1, nil
	case KindScope:
		return pos + 2, nil
	case KindContract:
		return pos + itemsPerSigner + c.Index, nil
	default:
		return pos + itemsPerSigner + len(s.tx.Signers[c.Signer].AllowedContracts) + c.Index, nil
	}
}

// ItemAt renders the item at a flat position
func (s *Source) ItemAt(pos int) (Item, error) {
	c, err := s.CoordinateAt(pos)
	if err != nil {
		return Item{}, err
	}
	return s.Render(c)
}

// Items renders the whole review in order
func (s *Source) Items() ([]Item, error) {
	n := s.TotalItemCount()
	items := make([]Item, 0, n)
	for pos := 0; pos < n; pos++ {
		item, err := s.ItemAt(pos)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Source) check(c Coordinate) error {
	if c.Kind == KindPrefix {
		if c.Index < 0 || c.Index >= len(s.prefix) {
			return fmt.Errorf("%w: %s", ErrOutOfRange, c)
		}
		return nil
	}
	if c.Signer < 0 || c.Signer >= len(s.tx.Signers) {
		return fmt.Errorf("%w: %s", ErrOutOfRange, c)
	}
	sg := &s.tx.Signers[c.Signer]
	switch c.Kind {
	case KindSigner, KindAccount, KindScope:
		return nil
	case KindContract:
		if c.Index >= 0 && c.Index < len(sg.AllowedContracts) {
			return nil
		}
	case KindGroup:
		if c.Index >= 0 && c.Index < len(sg.AllowedGroups) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrOutOfRange, c)
}

// Render formats the item at a coordinate.
func (s *Source) Render(c Coordinate) (Item, error) {
	if err := s.check(c); err != nil {
		return Item{}, err
	}
	if c.Kind == KindPrefix {
		return s.prefix[c.Index], nil
	}

	sg := &s.tx.Signers[c.Signer]
	var (
		title, text string
		err         error
	)
	switch c.Kind {
	case KindSigner:
		title, text, err = s.formatter.FormatSigner(c.Signer, len(s.tx.Signers))
	case KindAccount:
		title, text, err = s.formatter.FormatAccount(sg.Account)
	case KindScope:
		title, text, err = s.formatter.FormatScope(sg.Scope)
	case KindContract:
		title, text, err = s.formatter.FormatContract(c.Index, len(sg.AllowedContracts), sg.AllowedContracts[c.Index])
	case KindGroup:
		title, text, err = s.formatter.FormatGroup(c.Index, len(sg.AllowedGroups), sg.AllowedGroups[c.Index])
	}
	if err != nil {
		return Item{}, err
	}
	return Item{Coordinate: c, Title: title, Text: text}, nil
}
