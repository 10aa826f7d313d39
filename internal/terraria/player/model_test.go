package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tshock2plr/internal/terraria/item"
	"github.com/cory-johannsen/tshock2plr/internal/terraria/player"
)

func stack(id int32) item.Slot {
	return item.Slot{Item: item.Identity{ID: id}, Count: 1}
}

func TestRecord_OccupancyEmpty(t *testing.T) {
	var r player.Record
	assert.Equal(t, 0, r.Occupancy().Total())
}

func TestRecord_OccupancyCountsEveryRegion(t *testing.T) {
	var r player.Record
	r.Inventory[4][9] = player.InventorySlot{Slot: stack(1)}
	r.Coins[0] = player.InventorySlot{Slot: stack(71)}
	r.Ammo[3] = player.InventorySlot{Slot: stack(40)}
	r.PiggyBank[0][0] = stack(2)
	r.Safe[3][9] = stack(3)
	r.DefendersForge[1][1] = stack(4)
	r.Loadouts.Loadouts[2].Accessories[5].VanityAccessory = stack(5)
	r.Hook.Item = stack(6)

	o := r.Occupancy()
	assert.Equal(t, player.Occupancy{
		Inventory: 1, Coins: 1, Ammo: 1, PiggyBank: 1, Safe: 1, DefendersForge: 1, Loadouts: 1, Misc: 1,
	}, o)
	assert.Equal(t, 8, o.Total())
}

func TestRecord_Validate(t *testing.T) {
	r := player.Record{Name: "Guide", Life: 100, MaxLife: 100, Mana: 20, MaxMana: 20}
	assert.NoError(t, r.Validate())

	r.Name = ""
	assert.Error(t, r.Validate())

	r = player.Record{Name: "Guide", Life: -1}
	assert.Error(t, r.Validate())
}

func TestPropertyRecord_SelectedLoadoutRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sel := rapid.IntRange(-10, 10).Draw(t, "selected")
		r := player.Record{Name: "p"}
		r.Loadouts.Selected = sel
		err := r.Validate()
		valid := sel >= 0 && sel <= player.MaxLoadoutIndex
		if valid && err != nil {
			t.Fatalf("selected %d rejected: %v", sel, err)
		}
		if !valid && err == nil {
			t.Fatalf("selected %d accepted", sel)
		}
	})
}
