package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"address-api/internal/models"
	"address-api/internal/validation"

	_ "github.com/mattn/go-sqlite3"
)

const createAddressesTableSQLite = `
	CREATE TABLE IF NOT EXISTS addresses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		latitude REAL NOT NULL CHECK (latitude BETWEEN -90 AND 90),
		longitude REAL NOT NULL CHECK (longitude BETWEEN -180 AND 180)
	);
	CREATE INDEX IF NOT EXISTS addresses_name_idx ON addresses (name);
`

// SQLiteRepository implements Store on an SQLite database file.
// AUTOINCREMENT keeps ids from being reused after a delete.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository wraps an open database handle.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// OpenSQLite opens the database at source, e.g. "file:addresses.db?_busy_timeout=5000".
func OpenSQLite(source string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to open sqlite database: %w", err)
	}
	// SQLite allows one writer at a time; a single connection also keeps
	// ":memory:" databases alive for the lifetime of the handle.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: failed to ping sqlite database: %w", err)
	}
	return NewSQLiteRepository(db), nil
}

func (r *SQLiteRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAddressesTableSQLite); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Create(ctx context.Context, a models.NewAddress) (models.Address, error) {
	if err := validation.CheckNewAddress(a); err != nil {
		return models.Address{}, err
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO addresses (name, latitude, longitude)
		VALUES (?, ?, ?)
		RETURNING id, name, latitude, longitude
	`, a.Name, a.Latitude, a.Longitude)

	created, err := scanAddress(row)
	if err != nil {
		return models.Address{}, fmt.Errorf("repository: failed to insert address: %w", err)
	}
	return created, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (models.Address, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, latitude, longitude FROM addresses WHERE id = ?`, id)

	a, err := scanAddress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Address{}, models.ErrAddressNotFound
		}
		return models.Address{}, fmt.Errorf("repository: failed to get address %d: %w", id, err)
	}
	return a, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, u models.AddressUpdate) (models.Address, error) {
	if err := validation.CheckUpdate(u); err != nil {
		return models.Address{}, err
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE addresses
		SET name = COALESCE(?, name),
			latitude = COALESCE(?, latitude),
			longitude = COALESCE(?, longitude)
		WHERE id = ?
		RETURNING id, name, latitude, longitude
	`, u.Name, u.Latitude, u.Longitude, id)

	updated, err := scanAddress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Address{}, models.ErrAddressNotFound
		}
		return models.Address{}, fmt.Errorf("repository: failed to update address %d: %w", id, err)
	}
	return updated, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete address %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to read affected rows: %w", err)
	}
	if n == 0 {
		return models.ErrAddressNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]models.Address, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, latitude, longitude FROM addresses ORDER BY id`)
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

func (r *SQLiteRepository) BulkInsert(ctx context.Context, addresses []models.NewAddress) (int64, error) {
	for _, a := range addresses {
		if err := validation.CheckNewAddress(a); err != nil {
			return 0, err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO addresses (name, latitude, longitude) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range addresses {
		if _, err := stmt.ExecContext(ctx, a.Name, a.Latitude, a.Longitude); err != nil {
			return 0, fmt.Errorf("repository: failed to insert address %q: %w", a.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("repository: failed to commit import: %w", err)
	}
	return int64(len(addresses)), nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Close() {
	r.db.Close()
}
