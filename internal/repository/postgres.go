package repository

import (
	"context"
	"errors"
	"fmt"

	"address-api/internal/models"
	"address-api/internal/validation"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createAddressesTablePostgres = `
	CREATE TABLE IF NOT EXISTS addresses (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
		longitude DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180)
	);
	CREATE INDEX IF NOT EXISTS addresses_name_idx ON addresses (name);
`

// Repository implements Store for PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// OpenPostgres creates a pool for dsn and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repository: failed to ping database: %w", err)
	}
	return NewRepository(pool), nil
}

// EnsureSchema creates the addresses table if it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createAddressesTablePostgres); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// Create inserts a new address and returns it with its assigned id
func (r *Repository) Create(ctx context.Context, a models.NewAddress) (models.Address, error) {
	if err := validation.CheckNewAddress(a); err != nil {
		return models.Address{}, err
	}

	sql := `
		INSERT INTO addresses (name, latitude, longitude)
		VALUES ($1, $2, $3)
		RETURNING id, name, latitude, longitude
	`
	created, err := scanAddress(r.db.QueryRow(ctx, sql, a.Name, a.Latitude, a.Longitude))
	if err != nil {
		return models.Address{}, fmt.Errorf("repository: failed to insert address: %w", err)
	}
	return created, nil
}

// Get looks up a single address by id
func (r *Repository) Get(ctx context.Context, id int64) (models.Address, error) {
	sql := `
		SELECT id, name, latitude, longitude
		FROM addresses
		WHERE id = $1
	`
	a, err := scanAddress(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Address{}, models.ErrAddressNotFound
		}
		return models.Address{}, fmt.Errorf("repository: failed to get address %d: %w", id, err)
	}
	return a, nil
}

// Update overwrites the supplied fields of an address in one statement, so
// concurrent updates of the same row serialize on the row lock.
func (r *Repository) Update(ctx context.Context, id int64, u models.AddressUpdate) (models.Address, error) {
	if err := validation.CheckUpdate(u); err != nil {
		return models.Address{}, err
	}

	sql := `
		UPDATE addresses
		SET name = COALESCE($2, name),
			latitude = COALESCE($3, latitude),
			longitude = COALESCE($4, longitude)
		WHERE id = $1
		RETURNING id, name, latitude, longitude
	`
	updated, err := scanAddress(r.db.QueryRow(ctx, sql, id, u.Name, u.Latitude, u.Longitude))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Address{}, models.ErrAddressNotFound
		}
		return models.Address{}, fmt.Errorf("repository: failed to update address %d: %w", id, err)
	}
	return updated, nil
}

// Delete removes an address permanently
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete address %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrAddressNotFound
	}
	return nil
}

// ListAll returns every stored address
func (r *Repository) ListAll(ctx context.Context) ([]models.Address, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, latitude, longitude FROM addresses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute list query: %w", err)
	}
	defer rows.Close()

	addresses := []models.Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return addresses, nil
}

// BulkInsert loads many addresses with COPY inside a single transaction
func (r *Repository) BulkInsert(ctx context.Context, addresses []models.NewAddress) (int64, error) {
	for _, a := range addresses {
		if err := validation.CheckNewAddress(a); err != nil {
			return 0, err
		}
	}

	var copied int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"addresses"},
			[]string{"name", "latitude", "longitude"},
			pgx.CopyFromSlice(len(addresses), func(i int) ([]any, error) {
				a := addresses[i]
				return []any{a.Name, a.Latitude, a.Longitude}, nil
			}),
		)
		copied = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("repository: failed to copy addresses: %w", err)
	}
	return copied, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *Repository) Close() {
	r.db.Close()
}

// scanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAddress(row scanner) (models.Address, error) {
	var a models.Address
	err := row.Scan(&a.ID, &a.Name, &a.Latitude, &a.Longitude)
	return a, err
}
