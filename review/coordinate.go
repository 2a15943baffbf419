// Package review implements the paginated review of a NEO N3 transaction.
//
// The review shows one (title, text) item at a time. Items come in a fixed
// total order: the transaction-level prefix fields first, then for every
// signer its index, account and scope, followed by one item per allowed
// contract and one per allowed group.
//
// # Item source
//
// A Source defines that order for a transaction and can render any position
// or coordinate:
//
//	src, err := review.NewSource(tx, review.Options{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	item, err := src.ItemAt(src.PrefixCount())
//
// # Cursor
//
// The signer section is walked lazily by a Cursor. Its transitions are the
// pure functions Next and Prev over a State, so a cursor never materializes
// more than the item it is currently showing:
//
//	cur := review.NewCursor(src)
//	for {
//		item, ok, err := cur.Advance()
//		if err != nil {
//			log.Fatal(err)
//		}
//		if !ok {
//			break
//		}
//		fmt.Println(item.Title, item.Text)
//	}
package review

import "fmt"

// Kind identifies which field of the transaction an item displays.
type Kind uint8

const (
	KindPrefix Kind = iota
	KindSigner
	KindAccount
	KindScope
	KindContract
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindPrefix:
		return "Prefix"
	case KindSigner:
		return "Signer"
	case KindAccount:
		return "Account"
	case KindScope:
		return "Scope"
	case KindContract:
		return "Contract"
	case KindGroup:
		return "Group"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Coordinate is the position of an item in the transaction structure.
// Signer is unused for prefix items; Index is the prefix position, the
// contract index or the group index depending on Kind.
type Coordinate struct {
	Kind   Kind `json:"kind"`
	Signer int  `json:"signer"`
	Index  int  `json:"index"`
}

// AtPrefix addresses the i-th item before the signers
func AtPrefix(i int) Coordinate { return Coordinate{Kind: KindPrefix, Index: i} }
// AtSigner addresses the "Signer k of n" item of signer s
func AtSigner(s int) Coordinate { return Coordinate{Kind: KindSigner, Signer: s} }
// AtAccount addresses the account of signer s
func AtAccount(s int) Coordinate { return Coordinate{Kind: KindAccount, Signer: s} }
// AtScope addresses the witness scope of signer s
func AtScope(s int) Coordinate { return Coordinate{Kind: KindScope, Signer: s} }
// AtContract addresses allowed contract c of signer s
func AtContract(s, c int) Coordinate { return Coordinate{Kind: KindContract, Signer: s, Index: c} }
// AtGroup addresses allowed group g of signer s
func AtGroup(s, g int) Coordinate { return Coordinate{Kind: KindGroup, Signer: s, Index: g} }

// String renders the coordinate as Kind(args), e.g. Contract(0,1).
func (c Coordinate) String() string {
	switch c.Kind {
	case KindPrefix:
		return fmt.Sprintf("Prefix(%d)", c.Index)
	case KindContract, KindGroup:
		return fmt.Sprintf("%s(%d,%d)", c.Kind, c.Signer, c.Index)
	default:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Signer)
	}
}

// Item is a single rendered display screen.
type Item struct {
	Coordinate Coordinate `json:"coordinate"`
	Title      string     `json:"title"`
	Text       string     `json:"text"`
}
