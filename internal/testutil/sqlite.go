package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// SQLiteDB is a temporary TShock database file.
type SQLiteDB struct {
	Path string
	db   *sql.DB
}

// NewSQLiteDB creates a TShock database in a temporary directory.
//
// Postcondition: The schema exists; the file is removed when the test ends.
func NewSQLiteDB(t *testing.T, legacy bool) *SQLiteDB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tshock.sqlite")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("opening sqlite fixture: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(TShockSchema(legacy)); err != nil {
		t.Fatalf("creating tshock schema: %v", err)
	}
	return &SQLiteDB{Path: path, db: db}
}

// Insert stores the given characters.
func (s *SQLiteDB) Insert(t *testing.T, chars ...Character) {
	t.Helper()
	for _, c := range chars {
		for _, st := range insertStatements(c, func(int) string { return "?" }) {
			if _, err := s.db.Exec(st.sql, st.args...); err != nil {
				t.Fatalf("inserting %q: %v", c.Username, err)
			}
		}
	}
}
