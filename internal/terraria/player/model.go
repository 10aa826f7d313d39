// Package player defines the structured Terraria player record that
// exported characters are folded into.
package player

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/tshock2plr/internal/terraria/item"
)

// Region dimensions of the player record.
const (
	BagRows         = 5
	BagCols         = 10
	StashRows       = 4
	StashCols       = 10
	CoinSlots       = 4
	AmmoSlots       = 4
	AccessorySlots  = 6
	LoadoutCount    = 3
	MaxLoadoutIndex = LoadoutCount - 1
)

// InventorySlot is a carried-bag, coin, or ammo slot.
type InventorySlot struct {
	Slot      item.Slot `yaml:"slot,omitempty"`
	Favorited bool      `yaml:"favorited,omitempty"`
}

// IsEmpty reports whether the slot holds nothing.
func (s InventorySlot) IsEmpty() bool { return s.Slot.IsEmpty() }

// ArmorRow is one equip category: functional piece, cosmetic override, dye.
type ArmorRow struct {
	Armor       item.Slot `yaml:"armor,omitempty"`
	VanityArmor item.Slot `yaml:"vanity_armor,omitempty"`
	Dye         item.Slot `yaml:"dye,omitempty"`
}

// AccessoryRow is an accessory slot with its vanity visibility toggle.
type AccessoryRow struct {
	Accessory       item.Slot `yaml:"accessory,omitempty"`
	VanityAccessory item.Slot `yaml:"vanity_accessory,omitempty"`
	Dye             item.Slot `yaml:"dye,omitempty"`
	IsShown         bool      `yaml:"is_shown"`
}

// MiscRow holds minecart, mount, and hook equipment.
type MiscRow struct {
	Item item.Slot `yaml:"item,omitempty"`
	Dye  item.Slot `yaml:"dye,omitempty"`
}

// MiscRowWithVisibility holds pet and light pet equipment.
type MiscRowWithVisibility struct {
	Item    item.Slot `yaml:"item,omitempty"`
	Dye     item.Slot `yaml:"dye,omitempty"`
	IsShown bool      `yaml:"is_shown"`
}

// Loadout is one complete equipment configuration.
type Loadout struct {
	Helmet      ArmorRow                     `yaml:"helmet"`
	Breastplate ArmorRow                     `yaml:"breastplate"`
	Pants       ArmorRow                     `yaml:"pants"`
	Accessories [AccessorySlots]AccessoryRow `yaml:"accessories"`
}

// Loadouts is the fixed set of equipment loadouts.
//
// Invariant: 0 <= Selected <= MaxLoadoutIndex.
type Loadouts struct {
	Loadouts [LoadoutCount]Loadout `yaml:"loadouts"`
	Selected int                   `yaml:"selected"`
}

// Bag is the carried inventory grid.
type Bag [BagRows][BagCols]InventorySlot

// Stash is a 4x10 storage container.
type Stash [StashRows][StashCols]item.Slot

// Record is a complete player.
type Record struct {
	Name    string `yaml:"name"`
	Life    int32  `yaml:"life"`
	MaxLife int32  `yaml:"max_life"`
	Mana    int32  `yaml:"mana"`
	MaxMana int32  `yaml:"max_mana"`

	FinishedAnglerQuests int32 `yaml:"finished_angler_quests"`
	UsingBiomeTorches    bool  `yaml:"using_biome_torches"`
	ArtisanBreadEaten    bool  `yaml:"artisan_bread_eaten"`
	AegisCrystalUsed     bool  `yaml:"aegis_crystal_used"`
	AegisFruitUsed       bool  `yaml:"aegis_fruit_used"`
	ArcaneCrystalUsed    bool  `yaml:"arcane_crystal_used"`
	GalaxyPearlUsed      bool  `yaml:"galaxy_pearl_used"`
	GummyWormUsed        bool  `yaml:"gummy_worm_used"`
	AmbrosiaUsed         bool  `yaml:"ambrosia_used"`
	SuperCartUnlocked    bool  `yaml:"super_cart_unlocked"`
	SuperCartEnabled     bool  `yaml:"super_cart_enabled"`

	Inventory      Bag                      `yaml:"inventory"`
	Coins          [CoinSlots]InventorySlot `yaml:"coins"`
	Ammo           [AmmoSlots]InventorySlot `yaml:"ammo"`
	PiggyBank      Stash                    `yaml:"piggy_bank"`
	Safe           Stash                    `yaml:"safe"`
	DefendersForge Stash                    `yaml:"defenders_forge"`
	Loadouts       Loadouts                 `yaml:"loadouts"`

	Pet      MiscRowWithVisibility `yaml:"pet"`
	LightPet MiscRowWithVisibility `yaml:"light_pet"`
	Minecart MiscRow               `yaml:"minecart"`
	Mount    MiscRow               `yaml:"mount"`
	Hook     MiscRow               `yaml:"hook"`
}

// Occupancy counts non-empty slots per region.
type Occupancy struct {
	Inventory      int `yaml:"inventory"`
	Coins          int `yaml:"coins"`
	Ammo           int `yaml:"ammo"`
	PiggyBank      int `yaml:"piggy_bank"`
	Safe           int `yaml:"safe"`
	DefendersForge int `yaml:"defenders_forge"`
	Loadouts       int `yaml:"loadouts"`
	Misc           int `yaml:"misc"`
}

// Total returns the sum across all regions.
func (o Occupancy) Total() int {
	return o.Inventory + o.Coins + o.Ammo + o.PiggyBank + o.Safe + o.DefendersForge + o.Loadouts + o.Misc
}

// Occupancy counts the non-empty slots of r.
//
// Precondition: r is non-nil.
func (r *Record) Occupancy() Occupancy {
	var o Occupancy
	for _, row := range r.Inventory {
		o.Inventory += countInventory(row[:])
	}
	o.Coins = countInventory(r.Coins[:])
	o.Ammo = countInventory(r.Ammo[:])
	o.PiggyBank = countStash(r.PiggyBank)
	o.Safe = countStash(r.Safe)
	o.DefendersForge = countStash(r.DefendersForge)
	for _, l := range r.Loadouts.Loadouts {
		o.Loadouts += l.occupied()
	}
	for _, s := range []item.Slot{
		r.Pet.Item, r.Pet.Dye, r.LightPet.Item, r.LightPet.Dye,
		r.Minecart.Item, r.Minecart.Dye, r.Mount.Item, r.Mount.Dye, r.Hook.Item, r.Hook.Dye,
	} {
		if !s.IsEmpty() {
			o.Misc++
		}
	}
	return o
}

func (l Loadout) occupied() int {
	n := 0
	for _, row := range []ArmorRow{l.Helmet, l.Breastplate, l.Pants} {
		for _, s := range []item.Slot{row.Armor, row.VanityArmor, row.Dye} {
			if !s.IsEmpty() {
				n++
			}
		}
	}
	for _, a := range l.Accessories {
		for _, s := range []item.Slot{a.Accessory, a.VanityAccessory, a.Dye} {
			if !s.IsEmpty() {
				n++
			}
		}
	}
	return n
}

func countInventory(slots []InventorySlot) int {
	n := 0
	for _, s := range slots {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}

func countStash(s Stash) int {
	n := 0
	for _, row := range s {
		for _, slot := range row {
			if !slot.IsEmpty() {
				n++
			}
		}
	}
	return n
}

// Validate checks the record invariants the codec relies on.
//
// Postcondition: returns nil iff the name is set, life and mana are
// non-negative, and the selected loadout index is in range.
func (r *Record) Validate() error {
	var errs []error
	if r.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if r.Life < 0 || r.MaxLife < 0 {
		errs = append(errs, fmt.Errorf("life must be >= 0, got %d/%d", r.Life, r.MaxLife))
	}
	if r.Mana < 0 || r.MaxMana < 0 {
		errs = append(errs, fmt.Errorf("mana must be >= 0, got %d/%d", r.Mana, r.MaxMana))
	}
	if r.Loadouts.Selected < 0 || r.Loadouts.Selected > MaxLoadoutIndex {
		errs = append(errs, fmt.Errorf("selected loadout must be 0-%d, got %d", MaxLoadoutIndex, r.Loadouts.Selected))
	}
	if len(errs) > 0 {
		return fmt.Errorf("player validation failed: %w", errors.Join(errs...))
	}
	return nil
}
