// Package item defines Terraria item identities, prefixes, and item stacks.
package item

import "fmt"

// Identity is a resolved item type.
type Identity struct {
	ID     int32  `yaml:"id"`
	Name   string `yaml:"name,omitempty"`
	Modded bool   `yaml:"modded,omitempty"`
}

// String returns the display name, falling back to the numeric id.
func (i Identity) String() string {
	if i.Name != "" {
		return i.Name
	}
	return fmt.Sprintf("item #%d", i.ID)
}

// Slot is one item stack. The zero value is the empty slot.
//
// Invariant: a populated slot has Count > 0.
type Slot struct {
	Item   Identity `yaml:"item"`
	Prefix Prefix   `yaml:"prefix,omitempty"`
	Count  int32    `yaml:"count"`
}

// Empty is the absent slot.
var Empty = Slot{}

// IsEmpty reports whether s holds no stack.
func (s Slot) IsEmpty() bool {
	return s.Count <= 0
}

// IsZero lets yaml omit empty slots.
func (s Slot) IsZero() bool {
	return s.IsEmpty()
}

// String renders s for logs and test failure output.
func (s Slot) String() string {
	if s.IsEmpty() {
		return "<empty>"
	}
	if s.Prefix == NoPrefix {
		return fmt.Sprintf("%s x%d", s.Item, s.Count)
	}
	return fmt.Sprintf("%s %s x%d", s.Prefix, s.Item, s.Count)
}
