//go:build integration

package arepo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/records/arepo"
	"github.com/go-arrower/records/arepo/testdata"
	"github.com/go-arrower/records/tests"
)

func TestPostgresStore(t *testing.T) {
	t.Parallel()

	pgDocker := tests.GetPostgresDockerForIntegrationTestingInstance()
	t.Cleanup(pgDocker.Cleanup)

	t.Run("load missing", func(t *testing.T) {
		t.Parallel()

		store := arepo.NewPostgresStore(pgDocker.NewTestDatabase())

		var entities []testdata.Entity

		err := store.Load(ctx, "Entity.json", &entities)
		assert.ErrorIs(t, err, arepo.ErrNoData)
	})

	t.Run("load fixtures", func(t *testing.T) {
		t.Parallel()

		store := arepo.NewPostgresStore(pgDocker.NewTestDatabase("../tests/testdata/fixtures/snapshots.yml"))

		repo, err := arepo.NewMemoryRepository[testdata.Entity, testdata.EntityID](ctx, arepo.WithStore(store))
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, "fixture-1")
		assert.NoError(t, err)
		assert.Equal(t, "Grace", got.Name)

		names, err := store.Names(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []string{"Entity.json", "Other.json"}, names)
	})

	t.Run("store and load in a new session", func(t *testing.T) {
		t.Parallel()

		store := arepo.NewPostgresStore(pgDocker.NewTestDatabase())

		repo, err := arepo.NewMemoryRepository[testdata.EntityWithIntPK, testdata.EntityIDInt](ctx, arepo.WithStore(store))
		require.NoError(t, err)

		for _, id := range []testdata.EntityIDInt{2, 1} {
			err = repo.Insert(ctx, testdata.RandomEntityWithIntPK(id))
			require.NoError(t, err)
		}

		err = repo.UpdateField(ctx, 1, func(e *testdata.EntityWithIntPK) error {
			e.Quantity = 7
			return nil
		})
		require.NoError(t, err)

		reloaded, err := arepo.NewMemoryRepository[testdata.EntityWithIntPK, testdata.EntityIDInt](ctx, arepo.WithStore(store))
		require.NoError(t, err)

		all, _ := reloaded.GetAll(ctx)
		require.Len(t, all, 2)
		assert.Equal(t, testdata.EntityIDInt(2), all[0].ID)
		assert.Equal(t, 7, all[1].Quantity)
	})

	t.Run("suite", func(t *testing.T) {
		t.Parallel()

		pg := pgDocker.NewTestDatabase()

		arepo.TestSuite(t,
			func() arepo.Repository[testdata.Entity, testdata.EntityID] {
				// every repository writes its own row, so parallel sub tests do not overwrite each other
				repo, err := arepo.NewMemoryRepository[testdata.Entity, testdata.EntityID](ctx,
					arepo.WithStore(arepo.NewPostgresStore(pg)),
					arepo.WithStoreName(string(testdata.RandomEntity().ID)),
				)
				require.NoError(t, err)

				return repo
			},
			func() arepo.Repository[testdata.EntityWithIntPK, testdata.EntityIDInt] {
				repo, err := arepo.NewMemoryRepository[testdata.EntityWithIntPK, testdata.EntityIDInt](ctx,
					arepo.WithStore(arepo.NewPostgresStore(pg)),
					arepo.WithStoreName(string(testdata.RandomEntity().ID)),
					arepo.WithValidation(testdata.ValidateQuantity),
				)
				require.NoError(t, err)

				return repo
			},
		)
	})
}
