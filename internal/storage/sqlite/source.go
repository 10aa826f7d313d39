// Package sqlite reads TShock characters from a tshock.sqlite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/tshock2plr/internal/config"
	"github.com/cory-johannsen/tshock2plr/internal/importer"
	"github.com/cory-johannsen/tshock2plr/internal/importer/tshock"
)

var dialect = tshock.Dialect{Placeholder: func(int) string { return "?" }}

// Source reads characters from SQLite. The database is opened read-only.
type Source struct {
	db      *sql.DB
	query   string
	columns []string
}

// Open opens the database at cfg.Path and discovers which optional
// character columns its schema has.
//
// Precondition: cfg.Path names an existing TShock database.
// Postcondition: Returns a ready Source or a non-nil error.
func Open(ctx context.Context, cfg config.SQLiteConfig) (*Source, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	dsn, err := readOnlyDSN(cfg)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db %s: %w", cfg.Path, err)
	}

	available, err := characterColumns(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if len(available) == 0 {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite db %s has no tsCharacter table", cfg.Path)
	}
	query, columns := tshock.CharacterQuery(dialect, available)
	return &Source{db: db, query: query, columns: columns}, nil
}

// readOnlyDSN renders cfg as a read-only SQLite URI. The path is made
// absolute and percent-encoded so '?', '#' and '%' in it stay part of the
// file name.
func readOnlyDSN(cfg config.SQLiteConfig) (string, error) {
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return "", fmt.Errorf("resolving sqlite path %s: %w", cfg.Path, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{
		Scheme:   "file",
		Path:     p,
		RawQuery: fmt.Sprintf("mode=ro&_pragma=busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()),
	}
	return u.String(), nil
}

func characterColumns(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info('tsCharacter')")
	if err != nil {
		return nil, fmt.Errorf("reading tsCharacter schema: %w", err)
	}
	defer rows.Close()

	available := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning tsCharacter schema: %w", err)
		}
		available[strings.ToLower(name)] = true
	}
	return available, rows.Err()
}

// Columns returns the result columns LoadCharacter selects.
func (s *Source) Columns() []string {
	return append([]string(nil), s.columns...)
}

// LoadCharacter returns the character row of the account called name.
//
// Postcondition: Returns a non-nil row, importer.ErrCharacterNotFound, or
// another non-nil error.
func (s *Source) LoadCharacter(ctx context.Context, name string) (*tshock.CharacterRow, error) {
	values := make([]any, len(s.columns))
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}
	err := s.db.QueryRowContext(ctx, s.query, name).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", importer.ErrCharacterNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading character %q: %w", name, err)
	}
	return tshock.NewCharacterRow(s.columns, values)
}

// ListCharacters returns every account name with a stored character, sorted.
func (s *Source) ListCharacters(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, tshock.ListQuery)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning character name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database handle.
func (s *Source) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
