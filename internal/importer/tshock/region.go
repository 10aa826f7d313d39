package tshock

import (
	"fmt"

	"github.com/cory-johannsen/tshock2plr/internal/terraria/item"
)

// Region is a fixed window into the flat inventory.
//
// Grid regions are chunked row-major into Rows x Cols and only the first
// Retain rows are kept. Loadout regions have Rows == 0 and are consumed
// whole by AssembleLoadout.
type Region struct {
	Name   string
	Start  int
	Length int
	Rows   int
	Cols   int
	Retain int
}

// End returns the exclusive end index.
func (r Region) End() int { return r.Start + r.Length }

// Validate checks that the region's shape is consistent with its length.
//
// Postcondition: returns nil iff Start >= 0, Length > 0, Rows*Cols == Length
// for grid regions, and 0 < Retain <= Rows.
func (r Region) Validate() error {
	if r.Start < 0 || r.Length <= 0 {
		return fmt.Errorf("region %q: invalid range [%d,%d)", r.Name, r.Start, r.End())
	}
	if r.Rows == 0 {
		return nil
	}
	if r.Rows*r.Cols != r.Length {
		return fmt.Errorf("region %q: shape %dx%d does not cover %d slots", r.Name, r.Rows, r.Cols, r.Length)
	}
	if r.Retain <= 0 || r.Retain > r.Rows {
		return fmt.Errorf("region %q: retain %d outside 1-%d", r.Name, r.Retain, r.Rows)
	}
	return nil
}

// TShock inventory layout. Coins start at 49, one cell inside the main bag;
// the overlap is how TShock lays the blob out and is preserved as is.
var (
	MainBag        = Region{Name: "main bag", Start: 0, Length: 50, Rows: 5, Cols: 10, Retain: 5}
	Coins          = Region{Name: "coins", Start: 49, Length: 4, Rows: 1, Cols: 4, Retain: 1}
	Ammo           = Region{Name: "ammo", Start: 54, Length: 4, Rows: 1, Cols: 4, Retain: 1}
	Loadout1       = Region{Name: "loadout 1", Start: 59, Length: LoadoutLength}
	Pet            = Region{Name: "pet", Start: 89, Length: 1, Rows: 1, Cols: 1, Retain: 1}
	LightPet       = Region{Name: "light pet", Start: 90, Length: 1, Rows: 1, Cols: 1, Retain: 1}
	Minecart       = Region{Name: "minecart", Start: 91, Length: 1, Rows: 1, Cols: 1, Retain: 1}
	Mount          = Region{Name: "mount", Start: 92, Length: 1, Rows: 1, Cols: 1, Retain: 1}
	Hook           = Region{Name: "hook", Start: 93, Length: 1, Rows: 1, Cols: 1, Retain: 1}
	PiggyBank      = Region{Name: "piggy bank", Start: 99, Length: 50, Rows: 5, Cols: 10, Retain: 4}
	Safe           = Region{Name: "safe", Start: 139, Length: 50, Rows: 5, Cols: 10, Retain: 4}
	DefendersForge = Region{Name: "defenders forge", Start: 199, Length: 50, Rows: 5, Cols: 10, Retain: 4}
	Loadout2       = Region{Name: "loadout 2", Start: 290, Length: LoadoutLength}
	Loadout3       = Region{Name: "loadout 3", Start: 320, Length: LoadoutLength}
)

// Regions lists every region read from the blob, in blob order.
var Regions = []Region{
	MainBag, Coins, Ammo, Loadout1,
	Pet, LightPet, Minecart, Mount, Hook,
	PiggyBank, Safe, DefendersForge,
	Loadout2, Loadout3,
}

// LoadoutRegions are the loadout windows in loadout order.
var LoadoutRegions = [3]Region{Loadout1, Loadout2, Loadout3}

// RequiredLength is the smallest inventory that every region fits in.
func RequiredLength() int {
	n := 0
	for _, r := range Regions {
		if r.End() > n {
			n = r.End()
		}
	}
	return n
}

// Span returns the raw sub-slice [r.Start, r.End()).
//
// Postcondition: returns exactly r.Length slots, or a *RegionError.
func (inv Inventory) Span(r Region) ([]item.Slot, error) {
	if r.Start < 0 || r.End() > len(inv) {
		return nil, &RegionError{Region: r.Name, Need: r.End(), Have: len(inv)}
	}
	out := make([]item.Slot, r.Length)
	copy(out, inv[r.Start:r.End()])
	return out, nil
}

// Grid chunks the region row-major into r.Rows rows of r.Cols slots and
// keeps the first r.Retain rows. Every row is built before any is dropped.
//
// Precondition: r is a grid region that passes Validate.
// Postcondition: returns r.Retain rows of r.Cols slots, or a *RegionError.
func (inv Inventory) Grid(r Region) ([][]item.Slot, error) {
	span, err := inv.Span(r)
	if err != nil {
		return nil, err
	}
	rows := make([][]item.Slot, 0, r.Rows)
	for i := 0; i < r.Rows; i++ {
		rows = append(rows, span[i*r.Cols:(i+1)*r.Cols])
	}
	return rows[:r.Retain], nil
}

// Slot returns the first cell of a region, used for the single-slot rows.
func (inv Inventory) Slot(r Region) (item.Slot, error) {
	span, err := inv.Span(r)
	if err != nil {
		return item.Empty, err
	}
	return span[0], nil
}
