package testutil

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/tshock2plr/internal/importer/tshock"
)

// Character is a fixture row for the Users and tsCharacter tables.
type Character struct {
	ID        int64
	Username  string
	Health    int32
	MaxHealth int32
	Mana      int32
	MaxMana   int32
	// Inventory is stored as NULL when NullInventory is set.
	Inventory     string
	NullInventory bool
	// Optional holds values for optional tsCharacter columns by name.
	Optional map[string]int64
	// NoCharacter inserts only the Users row.
	NoCharacter bool
}

// TShockSchema returns the DDL for a TShock database. A legacy schema has
// none of the optional tsCharacter columns.
//
// Postcondition: The statements are valid for both SQLite and PostgreSQL.
func TShockSchema(legacy bool) string {
	cols := []string{
		"Account INTEGER PRIMARY KEY",
		"Health INTEGER",
		"MaxHealth INTEGER",
		"Mana INTEGER",
		"MaxMana INTEGER",
		"Inventory TEXT",
	}
	if !legacy {
		for _, c := range tshock.OptionalColumns {
			cols = append(cols, c+" INTEGER")
		}
	}
	return fmt.Sprintf(`
		CREATE TABLE Users (
			ID       INTEGER PRIMARY KEY,
			Username TEXT NOT NULL UNIQUE
		);
		CREATE TABLE tsCharacter (
			%s
		);
	`, strings.Join(cols, ",\n\t\t\t"))
}

type statement struct {
	sql  string
	args []any
}

// insertStatements renders c as INSERTs using placeholder for bind parameters.
func insertStatements(c Character, placeholder func(n int) string) []statement {
	stmts := []statement{{
		sql:  fmt.Sprintf("INSERT INTO Users (ID, Username) VALUES (%s, %s)", placeholder(1), placeholder(2)),
		args: []any{c.ID, c.Username},
	}}
	if c.NoCharacter {
		return stmts
	}

	var inventory any = c.Inventory
	if c.NullInventory {
		inventory = nil
	}
	cols := []string{"Account", "Health", "MaxHealth", "Mana", "MaxMana", "Inventory"}
	args := []any{c.ID, c.Health, c.MaxHealth, c.Mana, c.MaxMana, inventory}
	for _, name := range tshock.OptionalColumns {
		if v, ok := c.Optional[name]; ok {
			cols = append(cols, name)
			args = append(args, v)
		}
	}
	phs := make([]string, len(cols))
	for i := range phs {
		phs[i] = placeholder(i + 1)
	}
	return append(stmts, statement{
		sql: fmt.Sprintf("INSERT INTO tsCharacter (%s) VALUES (%s)",
			strings.Join(cols, ", "), strings.Join(phs, ", ")),
		args: args,
	})
}
