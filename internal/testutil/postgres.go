// Package testutil provides test helpers for TShock database fixtures.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cory-johannsen/tshock2plr/internal/config"
	"github.com/cory-johannsen/tshock2plr/internal/storage/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	container testcontainers.Container
	Pool      *postgres.Pool
	RawPool   *pgxpool.Pool
	Config    config.DatabaseConfig
}

// NewPostgresContainer starts a PostgreSQL test container and returns
// a connected Pool. The test is skipped when Docker is unavailable or
// when running with -short.
//
// Postcondition: Returns a running container with a connected pool,
// or skips or fails the test.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	start := time.Now()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v [%s]", err, time.Since(start))
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("getting container host: %v", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("getting mapped port: %v", err)
	}

	dbCfg := config.DatabaseConfig{
		Host:            host,
		Port:            mappedPort.Int(),
		User:            "test",
		Password:        "test",
		Name:            "test",
		SSLMode:         "disable",
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		t.Fatalf("connecting to test postgres: %v [%s]", err, time.Since(start))
	}

	// Pool is read-only; fixtures are written through a separate pool.
	raw, err := pgxpool.New(ctx, dbCfg.DSN())
	if err != nil {
		t.Fatalf("connecting fixture pool: %v", err)
	}

	t.Logf("postgres container started [%s]", time.Since(start))

	pc := &PostgresContainer{
		container: container,
		Pool:      pool,
		RawPool:   raw,
		Config:    dbCfg,
	}

	t.Cleanup(func() {
		pool.Close()
		raw.Close()
		_ = container.Terminate(ctx)
	})

	return pc
}

// ApplySchema creates the TShock tables directly for tests.
//
// Precondition: Pool must be connected and the tables must not exist.
// Postcondition: The Users and tsCharacter tables exist.
func (pc *PostgresContainer) ApplySchema(t *testing.T, legacy bool) {
	t.Helper()
	start := time.Now()
	if _, err := pc.RawPool.Exec(context.Background(), TShockSchema(legacy)); err != nil {
		t.Fatalf("applying tshock schema: %v", err)
	}
	t.Logf("tshock schema applied [%s]", time.Since(start))
}

// Reset drops the TShock tables so the next test can apply its own schema.
func (pc *PostgresContainer) Reset(t *testing.T) {
	t.Helper()
	if _, err := pc.RawPool.Exec(context.Background(), "DROP TABLE IF EXISTS tsCharacter; DROP TABLE IF EXISTS Users"); err != nil {
		t.Fatalf("dropping tshock schema: %v", err)
	}
}

// Insert stores the given characters.
func (pc *PostgresContainer) Insert(t *testing.T, chars ...Character) {
	t.Helper()
	ctx := context.Background()
	for _, c := range chars {
		for _, st := range insertStatements(c, func(n int) string { return fmt.Sprintf("$%d", n) }) {
			if _, err := pc.RawPool.Exec(ctx, st.sql, st.args...); err != nil {
				t.Fatalf("inserting %q: %v", c.Username, err)
			}
		}
	}
}

// DSN returns the connection string for the test database.
func (pc *PostgresContainer) DSN() string {
	return pc.Config.DSN()
}
