package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
)

// SQLStorageRepository keeps the persisted client state in a key/value table.
// It works on SQLite and PostgreSQL; queries are written with ? and rebound
// for the driver in use.
type SQLStorageRepository struct {
	db *sqlx.DB
}

// NewSQLStorageRepository wraps an open database.
func NewSQLStorageRepository(db *sqlx.DB) *SQLStorageRepository {
	return &SQLStorageRepository{db: db}
}

// OpenSQLite opens (creating if needed) the SQLite file at path and migrates it.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	if err := RunMigrations(DriverSQLite, path); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(DriverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// sqlx maps "sqlite3" to ? placeholders.
	db := sqlx.NewDb(sqlDB, "sqlite3")
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	return db, nil
}

// OpenPostgres connects to PostgreSQL through pgx and migrates the schema.
func OpenPostgres(ctx context.Context, dsn string, maxOpenConns, maxIdleConns int) (*sqlx.DB, error) {
	if err := RunMigrations(DriverPostgres, dsn); err != nil {
		return nil, err
	}
	db, err := sqlx.ConnectContext(ctx, DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	return db, nil
}

// Get returns the value stored under key and whether it exists.
func (r *SQLStorageRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := r.db.Rebind(`SELECT storage_value FROM client_storage WHERE storage_key = ?`)

	var value string
	err := r.db.GetContext(ctx, &value, query, key)

	logger.Log.Debugw("storage get",
		"query", query,
		"args", []any{key},
		"found", err == nil,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (r *SQLStorageRepository) Set(ctx context.Context, key, value string) error {
	query := r.db.Rebind(`
		INSERT INTO client_storage (storage_key, storage_value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (storage_key)
		DO UPDATE SET storage_value = excluded.storage_value, updated_at = CURRENT_TIMESTAMP
	`)

	_, err := r.db.ExecContext(ctx, query, key, value)

	// values are session secrets, only keys are logged
	logger.Log.Debugw("storage set",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{key},
		"error", err,
	)

	return err
}

// Delete removes the given keys. Missing keys are not an error.
func (r *SQLStorageRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM client_storage WHERE storage_key IN (?)`, keys)
	if err != nil {
		return err
	}
	query = r.db.Rebind(query)

	_, err = r.db.ExecContext(ctx, query, args...)

	logger.Log.Debugw("storage delete",
		"query", query,
		"args", args,
		"error", err,
	)

	return err
}
