// Package tshock converts TShock character rows into Terraria player records.
package tshock

import (
	"fmt"

	"github.com/cory-johannsen/tshock2plr/internal/terraria/item"
	"github.com/cory-johannsen/tshock2plr/internal/terraria/player"
)

// regions holds everything extracted from one inventory blob.
type regions struct {
	bag            player.Bag
	coins          [player.CoinSlots]player.InventorySlot
	ammo           [player.AmmoSlots]player.InventorySlot
	piggyBank      player.Stash
	safe           player.Stash
	defendersForge player.Stash
	loadouts       [player.LoadoutCount]player.Loadout
	pet            item.Slot
	lightPet       item.Slot
	minecart       item.Slot
	mount          item.Slot
	hook           item.Slot
}

// extractRegions slices inv into every region of the player record.
//
// Postcondition: returns fully populated regions, or the first *RegionError.
func extractRegions(inv Inventory) (*regions, error) {
	var out regions

	bag, err := inv.Grid(MainBag)
	if err != nil {
		return nil, err
	}
	for i, row := range bag {
		fillInventoryRow(out.bag[i][:], row)
	}

	for _, r := range []struct {
		region Region
		dst    []player.InventorySlot
	}{
		{Coins, out.coins[:]},
		{Ammo, out.ammo[:]},
	} {
		grid, err := inv.Grid(r.region)
		if err != nil {
			return nil, err
		}
		fillInventoryRow(r.dst, grid[0])
	}

	for _, r := range []struct {
		region Region
		dst    *player.Stash
	}{
		{PiggyBank, &out.piggyBank},
		{Safe, &out.safe},
		{DefendersForge, &out.defendersForge},
	} {
		grid, err := inv.Grid(r.region)
		if err != nil {
			return nil, err
		}
		for i, row := range grid {
			copy(r.dst[i][:], row)
		}
	}

	for _, r := range []struct {
		region Region
		dst    *item.Slot
	}{
		{Pet, &out.pet},
		{LightPet, &out.lightPet},
		{Minecart, &out.minecart},
		{Mount, &out.mount},
		{Hook, &out.hook},
	} {
		s, err := inv.Slot(r.region)
		if err != nil {
			return nil, err
		}
		*r.dst = s
	}

	for i, r := range LoadoutRegions {
		span, err := inv.Span(r)
		if err != nil {
			return nil, err
		}
		out.loadouts[i] = AssembleLoadout(span)
	}

	return &out, nil
}

func fillInventoryRow(dst []player.InventorySlot, src []item.Slot) {
	for i, s := range src {
		dst[i] = player.InventorySlot{Slot: s}
	}
}

// AssemblePlayer overlays row onto template and returns it.
//
// Precondition: template, row, and catalog must be non-nil.
// Postcondition: on success the returned record is template with every
// scalar and region replaced from row; on error template is unmodified and
// the error wraps ErrMissingField or ErrRegionOutOfRange.
func AssemblePlayer(template *player.Record, row *CharacterRow, catalog *item.Catalog) (*player.Record, error) {
	name, ok := row.String(ColUsername)
	if !ok {
		return nil, &MissingFieldError{Field: ColUsername}
	}
	var scalars [4]int32
	for i, col := range []string{ColHealth, ColMaxHealth, ColMana, ColMaxMana} {
		v, ok := row.Int32(col)
		if !ok {
			return nil, &MissingFieldError{Field: col}
		}
		scalars[i] = v
	}
	blob, ok := row.String(ColInventory)
	if !ok {
		return nil, &MissingFieldError{Field: ColInventory}
	}

	reg, err := extractRegions(DecodeInventory(blob, catalog))
	if err != nil {
		return nil, fmt.Errorf("player %q: %w", name, err)
	}

	p := template
	p.Name = name
	p.Life, p.MaxLife, p.Mana, p.MaxMana = scalars[0], scalars[1], scalars[2], scalars[3]

	p.FinishedAnglerQuests, _ = row.Int32(ColQuestsCompleted)
	p.UsingBiomeTorches = row.Flag(ColUnlockedBiomeTorches)
	p.ArtisanBreadEaten = row.Flag(ColAteArtisanBread)
	p.AegisCrystalUsed = row.Flag(ColUsedAegisCrystal)
	p.AegisFruitUsed = row.Flag(ColUsedAegisFruit)
	p.ArcaneCrystalUsed = row.Flag(ColUsedArcaneCrystal)
	p.GalaxyPearlUsed = row.Flag(ColUsedGalaxyPearl)
	p.GummyWormUsed = row.Flag(ColUsedGummyWorm)
	p.AmbrosiaUsed = row.Flag(ColUsedAmbrosia)
	p.SuperCartUnlocked = row.Flag(ColUnlockedSuperCart)
	p.SuperCartEnabled = row.Flag(ColEnabledSuperCart)

	p.Inventory = reg.bag
	p.Coins = reg.coins
	p.Ammo = reg.ammo
	p.PiggyBank = reg.piggyBank
	p.Safe = reg.safe
	p.DefendersForge = reg.defendersForge
	p.Loadouts = player.Loadouts{Loadouts: reg.loadouts, Selected: 0}

	p.Pet = player.MiscRowWithVisibility{Item: reg.pet, IsShown: true}
	p.LightPet = player.MiscRowWithVisibility{Item: reg.lightPet, IsShown: true}
	p.Minecart = player.MiscRow{Item: reg.minecart}
	p.Mount = player.MiscRow{Item: reg.mount}
	p.Hook = player.MiscRow{Item: reg.hook}

	return p, nil
}
