package tshock_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tshock2plr/internal/importer/tshock"
	"github.com/cory-johannsen/tshock2plr/internal/terraria/item"
)

func TestRegions_TableIsValid(t *testing.T) {
	for _, r := range tshock.Regions {
		t.Run(r.Name, func(t *testing.T) {
			assert.NoError(t, r.Validate())
		})
	}
}

func TestRegions_PublishedOffsets(t *testing.T) {
	cases := []struct {
		region     tshock.Region
		start, end int
	}{
		{tshock.MainBag, 0, 50},
		{tshock.Coins, 49, 53},
		{tshock.Ammo, 54, 58},
		{tshock.Loadout1, 59, 79},
		{tshock.Pet, 89, 90},
		{tshock.LightPet, 90, 91},
		{tshock.Minecart, 91, 92},
		{tshock.Mount, 92, 93},
		{tshock.Hook, 93, 94},
		{tshock.PiggyBank, 99, 149},
		{tshock.Safe, 139, 189},
		{tshock.DefendersForge, 199, 249},
		{tshock.Loadout2, 290, 310},
		{tshock.Loadout3, 320, 340},
	}
	require.Len(t, tshock.Regions, len(cases))
	for _, tc := range cases {
		t.Run(tc.region.Name, func(t *testing.T) {
			assert.Equal(t, tc.start, tc.region.Start)
			assert.Equal(t, tc.end, tc.region.End())
		})
	}
	assert.Equal(t, 340, tshock.RequiredLength())
}

func TestRegion_ValidateRejectsBadShape(t *testing.T) {
	assert.Error(t, tshock.Region{Name: "neg", Start: -1, Length: 4}.Validate())
	assert.Error(t, tshock.Region{Name: "empty", Start: 0, Length: 0}.Validate())
	assert.Error(t, tshock.Region{Name: "shape", Start: 0, Length: 10, Rows: 3, Cols: 3, Retain: 3}.Validate())
	assert.Error(t, tshock.Region{Name: "retain", Start: 0, Length: 9, Rows: 3, Cols: 3, Retain: 4}.Validate())
}

// TestCoinsOverlapMainBag pins the shared cell at index 49: it is both the
// last main bag slot and the first coin slot.
func TestCoinsOverlapMainBag(t *testing.T) {
	inv := positional(tshock.RequiredLength())

	bag, err := inv.Grid(tshock.MainBag)
	require.NoError(t, err)
	coins, err := inv.Grid(tshock.Coins)
	require.NoError(t, err)

	assert.Equal(t, 49, from(bag[4][9]))
	assert.Equal(t, 49, from(coins[0][0]))
	assert.Equal(t, []int{49, 50, 51, 52}, []int{from(coins[0][0]), from(coins[0][1]), from(coins[0][2]), from(coins[0][3])})
}

func TestGrid_MainBagRowMajor(t *testing.T) {
	inv := positional(tshock.RequiredLength())
	bag, err := inv.Grid(tshock.MainBag)
	require.NoError(t, err)
	require.Len(t, bag, 5)
	for r, row := range bag {
		require.Len(t, row, 10)
		for c, s := range row {
			assert.Equal(t, r*10+c, from(s))
		}
	}
}

func TestGrid_StashDropsFifthRow(t *testing.T) {
	inv := positional(tshock.RequiredLength())
	for _, region := range []tshock.Region{tshock.PiggyBank, tshock.Safe, tshock.DefendersForge} {
		t.Run(region.Name, func(t *testing.T) {
			grid, err := inv.Grid(region)
			require.NoError(t, err)
			require.Len(t, grid, 4)
			assert.Equal(t, region.Start, from(grid[0][0]))
			assert.Equal(t, region.Start+39, from(grid[3][9]))
		})
	}
}

func TestGrid_AllEmptyPiggyBank(t *testing.T) {
	inv := tshock.DecodeInventory(emptyBlob(tshock.RequiredLength()), item.NewCatalog(false))
	grid, err := inv.Grid(tshock.PiggyBank)
	require.NoError(t, err)
	require.Len(t, grid, 4)
	for _, row := range grid {
		require.Len(t, row, 10)
		for _, s := range row {
			assert.True(t, s.IsEmpty())
		}
	}
}

func TestSpan_CopiesSlots(t *testing.T) {
	inv := positional(100)
	span, err := inv.Span(tshock.Coins)
	require.NoError(t, err)
	span[0] = item.Empty
	assert.Equal(t, 49, from(inv[49]))
}

func TestSpan_OutOfRange(t *testing.T) {
	inv := positional(tshock.PiggyBank.End() - 1)
	_, err := inv.Grid(tshock.PiggyBank)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tshock.ErrRegionOutOfRange))

	var regionErr *tshock.RegionError
	require.ErrorAs(t, err, &regionErr)
	assert.Equal(t, "piggy bank", regionErr.Region)
	assert.Equal(t, 149, regionErr.Need)
	assert.Equal(t, 148, regionErr.Have)
}

func TestSlot_ScalarRegions(t *testing.T) {
	inv := positional(tshock.RequiredLength())
	for _, region := range []tshock.Region{tshock.Pet, tshock.LightPet, tshock.Minecart, tshock.Mount, tshock.Hook} {
		s, err := inv.Slot(region)
		require.NoError(t, err)
		assert.Equal(t, region.Start, from(s), region.Name)
	}
}

func TestPropertyRegion_ShortSequenceAlwaysFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		region := rapid.SampledFrom(tshock.Regions).Draw(t, "region")
		n := rapid.IntRange(0, region.End()-1).Draw(t, "len")
		_, err := positional(n).Span(region)
		if !errors.Is(err, tshock.ErrRegionOutOfRange) {
			t.Fatalf("region %q on %d slots: got %v", region.Name, n, err)
		}
	})
}

func TestPropertyRegion_LongEnoughSequenceSucceeds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		region := rapid.SampledFrom(tshock.Regions).Draw(t, "region")
		n := rapid.IntRange(region.End(), region.End()+50).Draw(t, "len")
		span, err := positional(n).Span(region)
		if err != nil {
			t.Fatalf("region %q on %d slots: %v", region.Name, n, err)
		}
		if len(span) != region.Length {
			t.Fatalf("region %q: span %d, want %d", region.Name, len(span), region.Length)
		}
	})
}
