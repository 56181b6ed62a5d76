package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) Store {
	t.Helper()

	store, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestSQLiteRepository(t *testing.T) {
	testStoreContract(t, newSQLiteStore)
}

func TestSQLiteRepository_EnsureSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.EnsureSchema(ctx))
}

func TestSQLiteRepository_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	source := "file:" + filepath.Join(t.TempDir(), "addresses.db") + "?_busy_timeout=5000"

	store, err := Open(ctx, DriverSQLite, source)
	require.NoError(t, err)
	created, err := store.Create(ctx, newAddress("Louvre", 48.8606, 2.3376))
	require.NoError(t, err)
	store.Close()

	store, err = Open(ctx, DriverSQLite, source)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "whatever")
	assert.ErrorContains(t, err, `unsupported driver "oracle"`)
}
