package arepo

import (
	"context"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/records/arepo/testdata"
)

// TestSuite verifies that a Repository implementation behaves like the MemoryRepository.
// newEntityRepo and newEntityRepoInt are called once per sub test and have to return an empty repository.
// newEntityRepoInt has to enforce testdata.ValidateQuantity.
func TestSuite(
	t *testing.T,
	newEntityRepo func() Repository[testdata.Entity, testdata.EntityID],
	newEntityRepoInt func() Repository[testdata.EntityWithIntPK, testdata.EntityIDInt],
) { //nolint:tparallel // t.Parallel can only be called ones! The caller decides
	t.Helper()

	if newEntityRepo == nil || newEntityRepoInt == nil {
		t.Fatal("repository constructor is nil")
	}

	ctx := context.Background()

	t.Run("NextID", func(t *testing.T) {
		t.Parallel()

		t.Run("string", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepo()

			id, err := repo.NextID(ctx)
			assert.NoError(t, err)
			assert.NotEmpty(t, id)
		})

		t.Run("int", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepoInt()

			id, _ := repo.NextID(ctx)
			assert.Equal(t, testdata.EntityIDInt(1), id)

			id, _ = repo.NextID(ctx)
			assert.Equal(t, testdata.EntityIDInt(2), id)
		})

		t.Run("int continues after inserted ids", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepoInt()
			err := repo.Insert(ctx, testdata.RandomEntityWithIntPK(41))
			require.NoError(t, err)

			id, _ := repo.NextID(ctx)
			assert.Equal(t, testdata.EntityIDInt(42), id)
		})
	})

	t.Run("Insert", func(t *testing.T) {
		t.Parallel()

		t.Run("insert", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepo()
			err := repo.Insert(ctx, testdata.DefaultEntity)
			assert.NoError(t, err)

			got, err := repo.GetByID(ctx, testdata.DefaultEntity.ID)
			assert.NoError(t, err)
			assert.Equal(t, testdata.DefaultEntity, got)
		})

		t.Run("insert same id again", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepo()
			original := testdata.RandomEntity()

			err := repo.Insert(ctx, original)
			require.NoError(t, err)

			duplicate := original
			duplicate.Name = gofakeit.Name()

			err = repo.Insert(ctx, duplicate)
			assert.ErrorIs(t, err, ErrDuplicateKey)

			c, _ := repo.Count(ctx)
			assert.Equal(t, 1, c, "store should be unchanged")

			got, _ := repo.GetByID(ctx, original.ID)
			assert.Equal(t, original, got, "original fields should be kept")
		})

		t.Run("missing id", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepo()

			err := repo.Insert(ctx, testdata.Entity{})
			assert.ErrorIs(t, err, ErrInvalidValue)
		})

		t.Run("violates constraint", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepoInt()

			err := repo.Insert(ctx, testdata.EntityWithIntPK{ID: 1, Quantity: -1})
			assert.ErrorIs(t, err, ErrInvalidValue)

			c, _ := repo.Count(ctx)
			assert.Equal(t, 0, c)
		})

		t.Run("many distinct ids", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepo()
			entities := make([]testdata.Entity, 0, 25)

			for range 25 {
				e := testdata.RandomEntity()
				entities = append(entities, e)

				err := repo.Insert(ctx, e)
				require.NoError(t, err)
			}

			all, err := repo.GetAll(ctx)
			assert.NoError(t, err)
			assert.Len(t, all, len(entities))

			for _, e := range entities {
				got, err := repo.GetByID(ctx, e.ID)
				assert.NoError(t, err)
				assert.Equal(t, e, got)
			}
		})
	})

	t.Run("InsertAll", func(t *testing.T) {
		t.Parallel()

		t.Run("insert all", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepo()

			err := repo.InsertAll(ctx, []testdata.Entity{testdata.RandomEntity(), testdata.RandomEntity()})
			assert.NoError(t, err)

			c, _ := repo.Count(ctx)
			assert.Equal(t, 2, c)
		})

		t.Run("duplicate inside the batch", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepo()
			e := testdata.RandomEntity()

			err := repo.InsertAll(ctx, []testdata.Entity{testdata.RandomEntity(), e, e})
			assert.ErrorIs(t, err, ErrDuplicateKey)

			c, _ := repo.Count(ctx)
			assert.Equal(t, 0, c, "nothing should be inserted")
		})

		t.Run("duplicate of a stored entity", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepo()
			e := testdata.RandomEntity()
			_ = repo.Insert(ctx, e)

			err := repo.InsertAll(ctx, []testdata.Entity{testdata.RandomEntity(), e})
			assert.ErrorIs(t, err, ErrDuplicateKey)

			c, _ := repo.Count(ctx)
			assert.Equal(t, 1, c, "nothing should be inserted")
		})
	})

	t.Run("GetByID", func(t *testing.T) {
		t.Parallel()

		repo := newEntityRepo()

		_, err := repo.GetByID(ctx, testdata.EntityID(gofakeit.UUID()))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("TryGetByID", func(t *testing.T) {
		t.Parallel()

		repo := newEntityRepo()
		_ = repo.Insert(ctx, testdata.DefaultEntity)

		got, ok := repo.TryGetByID(ctx, testdata.DefaultEntity.ID)
		assert.True(t, ok)
		assert.Equal(t, testdata.DefaultEntity, got)

		got, ok = repo.TryGetByID(ctx, testdata.EntityID(gofakeit.UUID()))
		assert.False(t, ok)
		assert.Empty(t, got)
	})

	t.Run("Remove", func(t *testing.T) {
		t.Parallel()

		t.Run("remove", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepo()
			e0 := testdata.RandomEntity()
			e1 := testdata.RandomEntity()
			_ = repo.InsertAll(ctx, []testdata.Entity{e0, e1})

			err := repo.Remove(ctx, e0.ID)
			assert.NoError(t, err)

			c, _ := repo.Count(ctx)
			assert.Equal(t, 1, c)

			_, err = repo.GetByID(ctx, e0.ID)
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run("absent id", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepo()
			_ = repo.Insert(ctx, testdata.DefaultEntity)

			err := repo.Remove(ctx, testdata.EntityID(gofakeit.UUID()))
			assert.ErrorIs(t, err, ErrNotFound)

			c, _ := repo.Count(ctx)
			assert.Equal(t, 1, c, "store should be unchanged")
		})
	})

	t.Run("UpdateField", func(t *testing.T) {
		t.Parallel()

		t.Run("update", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepoInt()
			e := testdata.RandomEntityWithIntPK(1)
			_ = repo.Insert(ctx, e)

			err := repo.UpdateField(ctx, e.ID, func(entity *testdata.EntityWithIntPK) error {
				entity.Quantity = 1337
				return nil
			})
			assert.NoError(t, err)

			got, _ := repo.GetByID(ctx, e.ID)
			assert.Equal(t, 1337, got.Quantity)
			assert.Equal(t, e.Name, got.Name, "other fields should be unchanged")
		})

		t.Run("absent id", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepoInt()

			err := repo.UpdateField(ctx, 1, func(_ *testdata.EntityWithIntPK) error { return nil })
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run("violates constraint", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepoInt()
			e := testdata.RandomEntityWithIntPK(1)
			_ = repo.Insert(ctx, e)

			err := repo.UpdateField(ctx, e.ID, func(entity *testdata.EntityWithIntPK) error {
				entity.Quantity = -1
				return nil
			})
			assert.ErrorIs(t, err, ErrInvalidValue)

			got, _ := repo.GetByID(ctx, e.ID)
			assert.Equal(t, e.Quantity, got.Quantity, "prior value should be intact")
		})

		t.Run("mutate fails", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepoInt()
			e := testdata.RandomEntityWithIntPK(1)
			_ = repo.Insert(ctx, e)

			err := repo.UpdateField(ctx, e.ID, func(entity *testdata.EntityWithIntPK) error {
				entity.Name = gofakeit.Name()
				return testdata.ErrNegativeQuantity
			})
			assert.ErrorIs(t, err, ErrInvalidValue)
			assert.ErrorIs(t, err, testdata.ErrNegativeQuantity)

			got, _ := repo.GetByID(ctx, e.ID)
			assert.Equal(t, e, got)
		})

		t.Run("id changes", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepoInt()
			e := testdata.RandomEntityWithIntPK(1)
			_ = repo.Insert(ctx, e)

			err := repo.UpdateField(ctx, e.ID, func(entity *testdata.EntityWithIntPK) error {
				entity.ID = 2
				return nil
			})
			assert.ErrorIs(t, err, ErrInvalidValue)

			ex, _ := repo.Exists(ctx, 2)
			assert.False(t, ex)
		})
	})

	t.Run("GetAll", func(t *testing.T) {
		t.Parallel()

		t.Run("insertion order", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepoInt()
			ids := []testdata.EntityIDInt{5, 3, 9, 1}

			for _, id := range ids {
				_ = repo.Insert(ctx, testdata.RandomEntityWithIntPK(id))
			}

			_ = repo.Remove(ctx, 3)
			_ = repo.Insert(ctx, testdata.RandomEntityWithIntPK(3))

			all, err := repo.GetAll(ctx)
			assert.NoError(t, err)

			got := []testdata.EntityIDInt{}
			for _, e := range all {
				got = append(got, e.ID)
			}

			assert.Equal(t, []testdata.EntityIDInt{5, 9, 1, 3}, got)
		})

		t.Run("snapshot", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepo()
			_ = repo.Insert(ctx, testdata.DefaultEntity)

			all, _ := repo.GetAll(ctx)
			all[0].Name = gofakeit.Name()

			got, _ := repo.GetByID(ctx, testdata.DefaultEntity.ID)
			assert.Equal(t, testdata.DefaultEntity, got, "changing the snapshot should not change the store")
		})

		t.Run("empty", func(t *testing.T) {
			t.Parallel()

			repo := newEntityRepo()

			all, err := repo.GetAll(ctx)
			assert.NoError(t, err)
			assert.Empty(t, all)
		})
	})

	t.Run("Exists", func(t *testing.T) {
		t.Parallel()

		repo := newEntityRepo()
		_ = repo.Insert(ctx, testdata.DefaultEntity)

		ex, err := repo.Exists(ctx, testdata.DefaultEntity.ID)
		assert.NoError(t, err)
		assert.True(t, ex)

		ex, err = repo.Exists(ctx, testdata.EntityID(gofakeit.UUID()))
		assert.NoError(t, err)
		assert.False(t, ex)
	})

	t.Run("Clear", func(t *testing.T) {
		t.Parallel()

		repo := newEntityRepo()
		_ = repo.InsertAll(ctx, []testdata.Entity{testdata.RandomEntity(), testdata.RandomEntity()})

		err := repo.Clear(ctx)
		assert.NoError(t, err)

		c, _ := repo.Count(ctx)
		assert.Equal(t, 0, c)
	})

	t.Run("concurrent inserts", func(t *testing.T) {
		t.Parallel()

		repo := newEntityRepoInt()
		wg := sync.WaitGroup{}

		const routines = 20
		wg.Add(routines)

		errs := make(chan error, routines)

		for range routines {
			go func() {
				defer wg.Done()

				errs <- repo.Insert(ctx, testdata.RandomEntityWithIntPK(7))
			}()
		}

		wg.Wait()
		close(errs)

		succeeded := 0

		for err := range errs {
			if err == nil {
				succeeded++
				continue
			}

			assert.ErrorIs(t, err, ErrDuplicateKey)
		}

		assert.Equal(t, 1, succeeded, "exactly one insert of the same id should win")
	})
}
