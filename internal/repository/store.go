package repository

import (
	"context"
	"fmt"

	"address-api/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Store is the persistence contract for addresses shared by every backend.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, a models.NewAddress) (models.Address, error)
	Get(ctx context.Context, id int64) (models.Address, error)
	Update(ctx context.Context, id int64, u models.AddressUpdate) (models.Address, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]models.Address, error)
	BulkInsert(ctx context.Context, addresses []models.NewAddress) (int64, error)
	Ping(ctx context.Context) error
	Close()
}

// Open connects to the backend named by driver and makes sure the addresses
// table exists.
func Open(ctx context.Context, driver, source string) (Store, error) {
	var (
		store Store
		err   error
	)
	switch driver {
	case DriverPostgres:
		store, err = OpenPostgres(ctx, source)
	case DriverSQLite:
		store, err = OpenSQLite(source)
	default:
		return nil, fmt.Errorf("repository: unsupported driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
