package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cory-johannsen/tshock2plr/internal/importer"
	"github.com/cory-johannsen/tshock2plr/internal/importer/tshock"
)

var dialect = tshock.Dialect{Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) }}

// TShock creates its PostgreSQL tables with unquoted identifiers, which
// PostgreSQL folds to lower case.
const columnsQuery = `SELECT column_name FROM information_schema.columns
	WHERE table_schema = current_schema() AND table_name = 'tscharacter'`

// Source reads characters through a Pool.
type Source struct {
	pool    *Pool
	query   string
	columns []string
}

// NewSource discovers which optional character columns the schema has.
//
// Precondition: pool must be connected.
// Postcondition: Returns a ready Source or a non-nil error. Closing the
// Source closes pool.
func NewSource(ctx context.Context, pool *Pool) (*Source, error) {
	rows, err := pool.DB().Query(ctx, columnsQuery)
	if err != nil {
		return nil, fmt.Errorf("reading tsCharacter schema: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("reading tsCharacter schema: %w", err)
	}
	if len(names) == 0 {
		return nil, errors.New("database has no tsCharacter table")
	}

	available := make(map[string]bool, len(names))
	for _, n := range names {
		available[strings.ToLower(n)] = true
	}
	query, columns := tshock.CharacterQuery(dialect, available)
	return &Source{pool: pool, query: query, columns: columns}, nil
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
	rows, err := s.pool.DB().Query(ctx, s.query, name)
	if err != nil {
		return nil, fmt.Errorf("loading character %q: %w", name, err)
	}
	values, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) ([]any, error) {
		return row.Values()
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", importer.ErrCharacterNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading character %q: %w", name, err)
	}
	return tshock.NewCharacterRow(s.columns, values)
}

// ListCharacters returns every account name with a stored character, sorted.
func (s *Source) ListCharacters(ctx context.Context) ([]string, error) {
	rows, err := s.pool.DB().Query(ctx, tshock.ListQuery)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	return names, nil
}

// Close releases the pool.
func (s *Source) Close() error {
	s.pool.Close()
	return nil
}
