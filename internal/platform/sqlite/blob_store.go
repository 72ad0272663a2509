package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/phrazzld/scry-match/internal/platform/migrations"
	"github.com/phrazzld/scry-match/internal/store"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// BlobStore stores blobs in the blobs table of a SQLite database.
type BlobStore struct {
	db store.DBTX
}

var _ store.BlobStore = (*BlobStore)(nil)

// Open opens (creating if needed) the SQLite database at path and applies
// the schema migrations.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite allows a single writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := migrations.Up(ctx, db, goose.DialectSQLite3, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

// NewBlobStore creates a BlobStore over an open, migrated database.
func NewBlobStore(db store.DBTX) *BlobStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &BlobStore{db: db}
}

// Get implements store.BlobStore.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM blobs WHERE blob_key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrBlobNotFound
	}
	if err != nil {
		return nil, store.NewStoreError("blob", "get", "failed to read blob", err)
	}
	return []byte(value), nil
}

// Put implements store.BlobStore.
func (s *BlobStore) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("%w: empty blob key", store.ErrInvalidEntity)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (blob_key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (blob_key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value),
	)
	if err != nil {
		return store.NewStoreError("blob", "put", "failed to write blob", err)
	}
	return nil
}
