package tshock_test

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/tshock2plr/internal/importer/tshock"
	"github.com/cory-johannsen/tshock2plr/internal/terraria/item"
)

// positional returns an inventory of n slots where slot i holds item id i+1,
// so every decoded cell names the blob index it came from.
func positional(n int) tshock.Inventory {
	inv := make(tshock.Inventory, n)
	for i := range inv {
		inv[i] = item.Slot{Item: item.Identity{ID: int32(i + 1)}, Count: 1}
	}
	return inv
}

// positionalBlob is positional rendered as a TShock blob.
func positionalBlob(n int) string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("%d,1,0", i+1)
	}
	return strings.Join(tokens, tshock.SlotSeparator)
}

// emptyBlob is n sentinel tokens.
func emptyBlob(n int) string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = "0,0,0"
	}
	return strings.Join(tokens, tshock.SlotSeparator)
}

// from returns the blob index a positional slot was decoded from, or -1.
func from(s item.Slot) int {
	if s.IsEmpty() {
		return -1
	}
	return int(s.Item.ID) - 1
}

func splitBlob(blob string) []string {
	return strings.Split(blob, tshock.SlotSeparator)
}

func joinBlob(tokens []string) string {
	return strings.Join(tokens, tshock.SlotSeparator)
}
