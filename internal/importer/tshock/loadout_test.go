package tshock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tshock2plr/internal/importer/tshock"
	"github.com/cory-johannsen/tshock2plr/internal/terraria/item"
)

func TestAssembleLoadout_HelmetFromIndexZero(t *testing.T) {
	slots := make([]item.Slot, tshock.LoadoutLength)
	slots[0] = item.Slot{Item: item.Identity{ID: 88}, Count: 1}

	l := tshock.AssembleLoadout(slots)
	assert.Equal(t, slots[0], l.Helmet.Armor)
	assert.True(t, l.Helmet.VanityArmor.IsEmpty())
}

func TestAssembleLoadout_VanityFromIndexTen(t *testing.T) {
	slots := make([]item.Slot, tshock.LoadoutLength)
	slots[10] = item.Slot{Item: item.Identity{ID: 250}, Count: 1}

	l := tshock.AssembleLoadout(slots)
	assert.Equal(t, slots[10], l.Helmet.VanityArmor)
	assert.True(t, l.Helmet.Armor.IsEmpty())
}

func TestAssembleLoadout_FullMapping(t *testing.T) {
	l := tshock.AssembleLoadout(positional(tshock.LoadoutLength))

	assert.Equal(t, 0, from(l.Helmet.Armor))
	assert.Equal(t, 1, from(l.Breastplate.Armor))
	assert.Equal(t, 2, from(l.Pants.Armor))
	assert.Equal(t, 10, from(l.Helmet.VanityArmor))
	assert.Equal(t, 11, from(l.Breastplate.VanityArmor))
	assert.Equal(t, 12, from(l.Pants.VanityArmor))

	for i, a := range l.Accessories {
		assert.Equal(t, 3+i, from(a.Accessory), "accessory %d", i)
		assert.Equal(t, 13+i, from(a.VanityAccessory), "vanity accessory %d", i)
		assert.True(t, a.IsShown)
		assert.True(t, a.Dye.IsEmpty())
	}
	assert.Equal(t, 0, occupied(l.Helmet.Dye, l.Breastplate.Dye, l.Pants.Dye))
}

func TestAssembleLoadout_UnmappedPositionsIgnored(t *testing.T) {
	slots := make([]item.Slot, tshock.LoadoutLength)
	slots[9] = item.Slot{Item: item.Identity{ID: 1}, Count: 1}
	slots[19] = item.Slot{Item: item.Identity{ID: 2}, Count: 1}

	l := tshock.AssembleLoadout(slots)
	assert.Equal(t, 0, occupied(l.Helmet.Armor, l.Breastplate.Armor, l.Pants.Armor,
		l.Helmet.VanityArmor, l.Breastplate.VanityArmor, l.Pants.VanityArmor))
	for _, a := range l.Accessories {
		assert.True(t, a.Accessory.IsEmpty())
		assert.True(t, a.VanityAccessory.IsEmpty())
	}
}

func TestAssembleLoadout_ShortSliceIsEmptyTail(t *testing.T) {
	l := tshock.AssembleLoadout(positional(4))
	require.Equal(t, 3, from(l.Accessories[0].Accessory))
	assert.True(t, l.Accessories[1].Accessory.IsEmpty())
	assert.True(t, l.Helmet.VanityArmor.IsEmpty())
}

func occupied(slots ...item.Slot) int {
	n := 0
	for _, s := range slots {
		if !s.IsEmpty() {
			n++
		}
	}
	return n
}
