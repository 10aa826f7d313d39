package tshock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/tshock2plr/internal/terraria/item"
)

// Blob delimiters used by TShock's inventory column.
const (
	SlotSeparator  = "~"
	FieldSeparator = ","
)

// ParseItem decodes one "<item_id>,<count>,<prefix_id>" token.
//
// Precondition: catalog must be non-nil.
// Postcondition: returns a populated slot (Count > 0) or a non-nil error
// wrapping ErrMalformedToken, ErrUnknownItem, or ErrPrefix.
func ParseItem(token string, catalog *item.Catalog) (item.Slot, error) {
	fields := strings.Split(token, FieldSeparator)
	if len(fields) < 3 {
		return item.Empty, fmt.Errorf("%w: %q has %d fields", ErrMalformedToken, token, len(fields))
	}

	id, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 32)
	if err != nil {
		return item.Empty, fmt.Errorf("%w: item id %q: %v", ErrMalformedToken, fields[0], err)
	}
	count, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 32)
	if err != nil {
		return item.Empty, fmt.Errorf("%w: count %q: %v", ErrMalformedToken, fields[1], err)
	}
	prefix, err := strconv.ParseUint(strings.TrimSpace(fields[2]), 10, 8)
	if err != nil {
		return item.Empty, fmt.Errorf("%w: %q: %v", ErrPrefix, fields[2], err)
	}

	identity, ok := catalog.Lookup(int32(id))
	if !ok {
		return item.Empty, fmt.Errorf("%w: %d", ErrUnknownItem, id)
	}
	if count <= 0 {
		return item.Empty, fmt.Errorf("%w: count %d is not positive", ErrMalformedToken, count)
	}

	return item.Slot{
		Item:   identity,
		Prefix: item.PrefixFromID(uint8(prefix)),
		Count:  int32(count),
	}, nil
}

// ParseItemOrEmpty is ParseItem with every failure mapped to the empty slot.
// Sentinel tokens such as "0,0,0" decode as empty.
func ParseItemOrEmpty(token string, catalog *item.Catalog) item.Slot {
	s, err := ParseItem(token, catalog)
	if err != nil {
		return item.Empty
	}
	return s
}

// FormatItem encodes s in the blob token format. The empty slot encodes as
// the "0,0,0" sentinel.
func FormatItem(s item.Slot) string {
	if s.IsEmpty() {
		return "0,0,0"
	}
	return fmt.Sprintf("%d,%d,%d", s.Item.ID, s.Count, uint8(s.Prefix))
}

// Inventory is the decoded flat slot sequence. Index i is the canonical
// position of the i-th token in the blob.
type Inventory []item.Slot

// DecodeInventory splits blob on SlotSeparator and parses every token.
//
// Postcondition: len(result) equals the number of tokens in blob, and a
// token that fails to parse contributes item.Empty at its own index.
func DecodeInventory(blob string, catalog *item.Catalog) Inventory {
	tokens := strings.Split(blob, SlotSeparator)
	inv := make(Inventory, len(tokens))
	for i, tok := range tokens {
		inv[i] = ParseItemOrEmpty(tok, catalog)
	}
	return inv
}

// EncodeInventory is the inverse of DecodeInventory for well-formed input.
func EncodeInventory(inv Inventory) string {
	tokens := make([]string, len(inv))
	for i, s := range inv {
		tokens[i] = FormatItem(s)
	}
	return strings.Join(tokens, SlotSeparator)
}

// Len returns the number of positions.
func (inv Inventory) Len() int { return len(inv) }

// Occupied counts the non-empty positions.
func (inv Inventory) Occupied() int {
	n := 0
	for _, s := range inv {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}
