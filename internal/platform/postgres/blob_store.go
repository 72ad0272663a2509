package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/scry-match/internal/platform/migrations"
	"github.com/phrazzld/scry-match/internal/store"
	"github.com/pressly/goose/v3"
)

// PostgresBlobStore implements store.BlobStore using the blobs table.
type PostgresBlobStore struct {
	db store.DBTX
}

var _ store.BlobStore = (*PostgresBlobStore)(nil)

// Open establishes a connection pool, verifies it and applies the schema migrations.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrations.Up(ctx, db, goose.DialectPostgres, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// NewPostgresBlobStore creates a new PostgreSQL implementation of the BlobStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
func NewPostgresBlobStore(db store.DBTX) *PostgresBlobStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &PostgresBlobStore{db: db}
}

// Get implements store.BlobStore.Get
func (s *PostgresBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM blobs WHERE blob_key = $1`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrBlobNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("blob", "get", "failed to read blob", MapError(err))
	}
	return []byte(value), nil
}

// Put implements store.BlobStore.Put
func (s *PostgresBlobStore) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("%w: empty blob key", store.ErrInvalidEntity)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (blob_key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (blob_key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value),
	)
	if err != nil {
		return store.NewStoreError("blob", "put", "failed to write blob", MapError(err))
	}
	if err := CheckRowsAffected(result, "blob"); err != nil {
		return store.NewStoreError("blob", "put", "blob was not written", err)
	}
	return nil
}
