package tshock

import (
	"fmt"
	"math"
	"strings"
)

// TShock column names. Required columns abort the player when absent;
// optional columns default to zero/false.
const (
	ColUsername  = "Username"
	ColHealth    = "Health"
	ColMaxHealth = "MaxHealth"
	ColMana      = "Mana"
	ColMaxMana   = "MaxMana"
	ColInventory = "Inventory"

	ColQuestsCompleted      = "questsCompleted"
	ColUnlockedBiomeTorches = "unlockedBiomeTorches"
	ColAteArtisanBread      = "ateArtisanBread"
	ColUsedAegisCrystal     = "usedAegisCrystal"
	ColUsedAegisFruit       = "usedAegisFruit"
	ColUsedArcaneCrystal    = "usedArcaneCrystal"
	ColUsedGalaxyPearl      = "usedGalaxyPearl"
	ColUsedGummyWorm        = "usedGummyWorm"
	ColUsedAmbrosia         = "usedAmbrosia"
	ColUnlockedSuperCart    = "unlockedSuperCart"
	ColEnabledSuperCart     = "enabledSuperCart"
)

// CharacterColumns are the tsCharacter columns every supported schema has.
var CharacterColumns = []string{ColHealth, ColMaxHealth, ColMana, ColMaxMana, ColInventory}

// OptionalColumns were added to tsCharacter over several TShock releases.
var OptionalColumns = []string{
	ColQuestsCompleted,
	ColUnlockedBiomeTorches,
	ColAteArtisanBread,
	ColUsedAegisCrystal,
	ColUsedAegisFruit,
	ColUsedArcaneCrystal,
	ColUsedGalaxyPearl,
	ColUsedGummyWorm,
	ColUsedAmbrosia,
	ColUnlockedSuperCart,
	ColEnabledSuperCart,
}

// CharacterRow is one joined Users/tsCharacter row as raw driver values.
// Lookups are case-insensitive on the column name.
type CharacterRow struct {
	values map[string]any
}

// NewCharacterRow pairs column names with scanned values.
//
// Precondition: len(columns) == len(values).
func NewCharacterRow(columns []string, values []any) (*CharacterRow, error) {
	if len(columns) != len(values) {
		return nil, fmt.Errorf("tshock: %d columns but %d values", len(columns), len(values))
	}
	row := &CharacterRow{values: make(map[string]any, len(columns))}
	for i, c := range columns {
		row.values[strings.ToLower(c)] = values[i]
	}
	return row, nil
}

// Value returns the raw value of column and whether the row carries it.
func (r *CharacterRow) Value(column string) (any, bool) {
	v, ok := r.values[strings.ToLower(column)]
	return v, ok
}

// String returns column as text. ok is false for absent, NULL, or non-text values.
func (r *CharacterRow) String(column string) (string, bool) {
	v, _ := r.Value(column)
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}

// Int32 returns column as an integer. ok is false for absent, NULL,
// non-integer, or out-of-range values.
func (r *CharacterRow) Int32(column string) (int32, bool) {
	v, _ := r.Value(column)
	n, ok := toInt64(v)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int32(n), true
}

// Flag reports whether column holds exactly 1. Anything else, including an
// absent or mistyped column, is false.
func (r *CharacterRow) Flag(column string) bool {
	v, _ := r.Value(column)
	if b, ok := v.(bool); ok {
		return b
	}
	n, ok := toInt64(v)
	return ok && n == 1
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case int:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

// Dialect describes the SQL differences between the supported databases.
type Dialect struct {
	// Placeholder renders the n-th (1-based) bind parameter.
	Placeholder func(n int) string
}

// CharacterQuery builds the single-character SELECT. Only optional columns
// present in available (lower-cased names) are selected.
//
// Postcondition: columns lists the result columns in SELECT order.
func CharacterQuery(d Dialect, available map[string]bool) (query string, columns []string) {
	columns = append(columns, ColUsername)
	selects := []string{"u." + ColUsername}
	for _, c := range CharacterColumns {
		columns = append(columns, c)
		selects = append(selects, "c."+c)
	}
	for _, c := range OptionalColumns {
		if !available[strings.ToLower(c)] {
			continue
		}
		columns = append(columns, c)
		selects = append(selects, "c."+c)
	}
	query = fmt.Sprintf(
		"SELECT %s FROM Users u LEFT JOIN tsCharacter c ON c.Account = u.ID WHERE u.Username = %s",
		strings.Join(selects, ", "), d.Placeholder(1),
	)
	return query, columns
}

// ListQuery selects every username that has a stored character.
const ListQuery = "SELECT u.Username FROM Users u JOIN tsCharacter c ON c.Account = u.ID ORDER BY u.Username"
