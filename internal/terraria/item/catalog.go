package item

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MaxVanillaID is the highest item id shipped with Terraria 1.4.4.
const MaxVanillaID int32 = 5455

// builtinNames covers the items every exported character is likely to carry.
// Other vanilla ids resolve without a name.
var builtinNames = map[int32]string{
	1:  "Iron Pickaxe",
	2:  "Dirt Block",
	3:  "Stone Block",
	4:  "Iron Broadsword",
	5:  "Mushroom",
	6:  "Iron Shortsword",
	7:  "Iron Hammer",
	8:  "Torch",
	9:  "Wood",
	10: "Iron Axe",
	71: "Copper Coin",
	72: "Silver Coin",
	73: "Gold Coin",
	74: "Platinum Coin",
}

// NameDef is one entry of a catalog names file.
type NameDef struct {
	ID   int32  `yaml:"id"`
	Name string `yaml:"name"`
}

// Validate checks that the NameDef satisfies its invariants.
//
// Postcondition: returns nil iff ID is positive and Name is non-empty.
func (d NameDef) Validate() error {
	var errs []error
	if d.ID <= 0 {
		errs = append(errs, fmt.Errorf("id must be > 0, got %d", d.ID))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	return errors.Join(errs...)
}

// Catalog resolves numeric item ids to identities.
//
// Ids 1..MaxVanillaID are always known. Ids above that range resolve to a
// modded identity only when modded ids are allowed. Zero and negative ids
// never resolve.
type Catalog struct {
	names       map[int32]string
	allowModded bool
}

// NewCatalog returns a Catalog seeded with the builtin names.
//
// Postcondition: Lookup resolves every vanilla id.
func NewCatalog(allowModded bool) *Catalog {
	names := make(map[int32]string, len(builtinNames))
	for id, n := range builtinNames {
		names[id] = n
	}
	return &Catalog{names: names, allowModded: allowModded}
}

// Register names an item id, replacing any previous name.
//
// Precondition: d must pass Validate.
func (c *Catalog) Register(d NameDef) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("item: Catalog.Register: %w", err)
	}
	c.names[d.ID] = d.Name
	return nil
}

// Lookup resolves id.
//
// Postcondition: ok is false iff id is not a known or permitted modded id.
func (c *Catalog) Lookup(id int32) (Identity, bool) {
	switch {
	case id <= 0:
		return Identity{}, false
	case id <= MaxVanillaID:
		return Identity{ID: id, Name: c.names[id]}, true
	case c.allowModded:
		return Identity{ID: id, Name: c.names[id], Modded: true}, true
	default:
		return Identity{}, false
	}
}

// Len returns the number of named ids.
func (c *Catalog) Len() int {
	return len(c.names)
}

// LoadNames reads a YAML list of NameDef from path and registers each entry.
//
// Precondition: path is a readable YAML file.
// Postcondition: every entry is registered, or the first error is returned.
func (c *Catalog) LoadNames(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("LoadNames: cannot read file %q: %w", path, err)
	}
	var defs []NameDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return fmt.Errorf("LoadNames: cannot parse file %q: %w", path, err)
	}
	for i, d := range defs {
		if err := c.Register(d); err != nil {
			return fmt.Errorf("LoadNames: entry %d in %q: %w", i, path, err)
		}
	}
	return nil
}
