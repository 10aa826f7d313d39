package postgres_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tshock2plr/internal/importer"
	"github.com/cory-johannsen/tshock2plr/internal/importer/tshock"
	"github.com/cory-johannsen/tshock2plr/internal/storage/postgres"
	"github.com/cory-johannsen/tshock2plr/internal/testutil"
)

func blob() string {
	slots := make([]string, tshock.RequiredLength())
	for i := range slots {
		slots[i] = "0,0,0"
	}
	slots[0] = "4,1,81"
	return strings.Join(slots, tshock.SlotSeparator)
}

func newSource(t *testing.T, pc *testutil.PostgresContainer) *postgres.Source {
	t.Helper()
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, pc.Config)
	require.NoError(t, err)
	src, err := postgres.NewSource(ctx, pool)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	return src
}

func TestSource(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	ctx := context.Background()

	t.Run("current schema", func(t *testing.T) {
		pc.Reset(t)
		pc.ApplySchema(t, false)
		pc.Insert(t,
			testutil.Character{
				ID: 1, Username: "Andrew",
				Health: 400, MaxHealth: 500, Mana: 200, MaxMana: 200,
				Inventory: blob(),
				Optional: map[string]int64{
					tshock.ColQuestsCompleted: 7,
					tshock.ColUsedAegisFruit:  1,
				},
			},
			testutil.Character{ID: 2, Username: "Beth", Health: 100, MaxHealth: 100, Inventory: blob()},
			testutil.Character{ID: 3, Username: "Lurker", NoCharacter: true},
		)
		src := newSource(t, pc)

		row, err := src.LoadCharacter(ctx, "Andrew")
		require.NoError(t, err)
		name, _ := row.String(tshock.ColUsername)
		assert.Equal(t, "Andrew", name)
		maxLife, ok := row.Int32(tshock.ColMaxHealth)
		require.True(t, ok)
		assert.Equal(t, int32(500), maxLife)
		quests, _ := row.Int32(tshock.ColQuestsCompleted)
		assert.Equal(t, int32(7), quests)
		assert.True(t, row.Flag(tshock.ColUsedAegisFruit))
		assert.False(t, row.Flag(tshock.ColUsedAmbrosia))

		names, err := src.ListCharacters(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Andrew", "Beth"}, names)

		_, err = src.LoadCharacter(ctx, "nobody")
		assert.ErrorIs(t, err, importer.ErrCharacterNotFound)
	})

	t.Run("legacy schema", func(t *testing.T) {
		pc.Reset(t)
		pc.ApplySchema(t, true)
		pc.Insert(t, testutil.Character{ID: 1, Username: "Old", Health: 100, MaxHealth: 100, Inventory: blob()})
		src := newSource(t, pc)

		assert.NotContains(t, src.Columns(), tshock.ColUsedAmbrosia)
		row, err := src.LoadCharacter(ctx, "Old")
		require.NoError(t, err)
		_, ok := row.Value(tshock.ColQuestsCompleted)
		assert.False(t, ok)
	})

	t.Run("missing table", func(t *testing.T) {
		pc.Reset(t)
		pool, err := postgres.NewPool(ctx, pc.Config)
		require.NoError(t, err)
		defer pool.Close()
		_, err = postgres.NewSource(ctx, pool)
		assert.Error(t, err)
	})
}

func TestPool_ReadOnly(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	pc.Reset(t)
	pc.ApplySchema(t, false)

	_, err := pc.Pool.DB().Exec(context.Background(), "INSERT INTO Users (ID, Username) VALUES (1, 'x')")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
}
