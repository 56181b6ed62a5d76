package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"address-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// testStoreContract exercises behaviour every Store backend must share.
// newStore must return an empty store with the schema in place.
func testStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		store := newStore(t)

		created, err := store.Create(ctx, models.NewAddress{Name: "Eiffel Tower", Latitude: 48.8584, Longitude: 2.2945})
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.Equal(t, "Eiffel Tower", created.Name)

		got, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("create accepts boundary coordinates and empty name", func(t *testing.T) {
		store := newStore(t)

		created, err := store.Create(ctx, models.NewAddress{Name: "", Latitude: -90, Longitude: 180})
		require.NoError(t, err)
		assert.Equal(t, models.Address{ID: created.ID, Name: "", Latitude: -90, Longitude: 180}, created)
	})

	t.Run("create rejects out of range coordinates", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Create(ctx, models.NewAddress{Name: "nowhere", Latitude: 91, Longitude: 0})
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "latitude", verr.Field)

		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("get missing", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Get(ctx, 4242)
		assert.ErrorIs(t, err, models.ErrAddressNotFound)
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		store := newStore(t)
		created, err := store.Create(ctx, models.NewAddress{Name: "Louvre", Latitude: 48.8606, Longitude: 2.3376})
		require.NoError(t, err)

		updated, err := store.Update(ctx, created.ID, models.AddressUpdate{Name: ptr("Musée du Louvre")})
		require.NoError(t, err)
		assert.Equal(t, models.Address{ID: created.ID, Name: "Musée du Louvre", Latitude: 48.8606, Longitude: 2.3376}, updated)

		updated, err = store.Update(ctx, created.ID, models.AddressUpdate{Latitude: ptr(0.0)})
		require.NoError(t, err)
		assert.Equal(t, models.Address{ID: created.ID, Name: "Musée du Louvre", Latitude: 0, Longitude: 2.3376}, updated)

		got, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("update with no fields returns the record", func(t *testing.T) {
		store := newStore(t)
		created, err := store.Create(ctx, models.NewAddress{Name: "a", Latitude: 1, Longitude: 2})
		require.NoError(t, err)

		got, err := store.Update(ctx, created.ID, models.AddressUpdate{})
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("update missing", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Update(ctx, 99, models.AddressUpdate{Name: ptr("x")})
		assert.ErrorIs(t, err, models.ErrAddressNotFound)
	})

	t.Run("update rejects out of range coordinates", func(t *testing.T) {
		store := newStore(t)
		created, err := store.Create(ctx, models.NewAddress{Name: "a", Latitude: 1, Longitude: 2})
		require.NoError(t, err)

		_, err = store.Update(ctx, created.ID, models.AddressUpdate{Longitude: ptr(200.0)})
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "longitude", verr.Field)

		got, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("delete then get", func(t *testing.T) {
		store := newStore(t)
		created, err := store.Create(ctx, models.NewAddress{Name: "a", Latitude: 1, Longitude: 2})
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, created.ID))

		_, err = store.Get(ctx, created.ID)
		assert.ErrorIs(t, err, models.ErrAddressNotFound)
		assert.ErrorIs(t, store.Delete(ctx, created.ID), models.ErrAddressNotFound)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		store := newStore(t)
		first, err := store.Create(ctx, models.NewAddress{Name: "first", Latitude: 1, Longitude: 1})
		require.NoError(t, err)
		require.NoError(t, store.Delete(ctx, first.ID))

		second, err := store.Create(ctx, models.NewAddress{Name: "second", Latitude: 1, Longitude: 1})
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("list all", func(t *testing.T) {
		store := newStore(t)

		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		a, err := store.Create(ctx, models.NewAddress{Name: "a", Latitude: 1, Longitude: 1})
		require.NoError(t, err)
		b, err := store.Create(ctx, models.NewAddress{Name: "b", Latitude: 2, Longitude: 2})
		require.NoError(t, err)

		all, err = store.ListAll(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []models.Address{a, b}, all)
	})

	t.Run("bulk insert", func(t *testing.T) {
		store := newStore(t)

		n, err := store.BulkInsert(ctx, []models.NewAddress{
			{Name: "Eiffel Tower", Latitude: 48.8584, Longitude: 2.2945},
			{Name: "Louvre", Latitude: 48.8606, Longitude: 2.3376},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("bulk insert is all or nothing on invalid input", func(t *testing.T) {
		store := newStore(t)

		_, err := store.BulkInsert(ctx, []models.NewAddress{
			{Name: "ok", Latitude: 1, Longitude: 1},
			{Name: "bad", Latitude: 1, Longitude: 999},
		})
		require.Error(t, err)

		all, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("concurrent updates of different fields are not lost", func(t *testing.T) {
		store := newStore(t)
		created, err := store.Create(ctx, models.NewAddress{Name: "a", Latitude: 1, Longitude: 1})
		require.NoError(t, err)

		var wg sync.WaitGroup
		updates := []models.AddressUpdate{
			{Name: ptr("renamed")},
			{Latitude: ptr(10.0)},
			{Longitude: ptr(20.0)},
		}
		for _, u := range updates {
			wg.Add(1)
			go func(u models.AddressUpdate) {
				defer wg.Done()
				_, err := store.Update(ctx, created.ID, u)
				assert.NoError(t, err)
			}(u)
		}
		wg.Wait()

		got, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Address{ID: created.ID, Name: "renamed", Latitude: 10, Longitude: 20}, got)
	})
}

func newAddress(name string, lat, lon float64) models.NewAddress {
	return models.NewAddress{Name: name, Latitude: lat, Longitude: lon}
}
