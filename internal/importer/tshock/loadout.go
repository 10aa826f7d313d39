package tshock

import (
	"github.com/cory-johannsen/tshock2plr/internal/terraria/item"
	"github.com/cory-johannsen/tshock2plr/internal/terraria/player"
)

// LoadoutLength is the number of blob positions a loadout occupies.
const LoadoutLength = 20

// Relative offsets inside a loadout window. Positions 9 and 19 are not read.
const (
	loadoutArmorStart           = 0
	loadoutAccessoryStart       = 3
	loadoutVanityArmorStart     = 10
	loadoutVanityAccessoryStart = 13
	loadoutArmorRows            = 3
)

// loadoutTargets maps each relative loadout index to the field it fills.
// A nil entry is an unmapped position.
func loadoutTargets(l *player.Loadout) [LoadoutLength]*item.Slot {
	var t [LoadoutLength]*item.Slot
	armor := [loadoutArmorRows]*player.ArmorRow{&l.Helmet, &l.Breastplate, &l.Pants}
	for i, row := range armor {
		t[loadoutArmorStart+i] = &row.Armor
		t[loadoutVanityArmorStart+i] = &row.VanityArmor
	}
	for i := range l.Accessories {
		t[loadoutAccessoryStart+i] = &l.Accessories[i].Accessory
		t[loadoutVanityAccessoryStart+i] = &l.Accessories[i].VanityAccessory
	}
	return t
}

// AssembleLoadout builds one loadout from a loadout window. Positions past
// the end of slots are treated as empty. Dyes stay empty and every
// accessory is shown.
func AssembleLoadout(slots []item.Slot) player.Loadout {
	var l player.Loadout
	for i := range l.Accessories {
		l.Accessories[i].IsShown = true
	}
	for rel, dst := range loadoutTargets(&l) {
		if dst == nil || rel >= len(slots) {
			continue
		}
		*dst = slots[rel]
	}
	return l
}
