//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDatabase(t *testing.T) string {
	ctx := context.Background()

	// Start PostgreSQL container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return "postgres://testuser:testpass@" + host + ":" + port.Port() + "/testdb?sslmode=disable"
}

func TestPostgresRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	connString := setupTestDatabase(t)
	ctx := context.Background()

	store, err := Open(ctx, DriverPostgres, connString)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	// Every subtest starts from an empty table. RESTART IDENTITY is not used so
	// the sequence keeps counting, the same as it would in production.
	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	testStoreContract(t, func(t *testing.T) Store {
		_, err := pool.Exec(ctx, `TRUNCATE addresses`)
		require.NoError(t, err)
		return store
	})
}

func TestPostgresRepository_CheckConstraints(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	connString := setupTestDatabase(t)
	ctx := context.Background()

	store, err := Open(ctx, DriverPostgres, connString)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.EnsureSchema(ctx))

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	// Writes that bypass the repository are still held to the coordinate bounds.
	_, err = pool.Exec(ctx, `INSERT INTO addresses (name, latitude, longitude) VALUES ('bad', 95, 0)`)
	assert.Error(t, err)
}
