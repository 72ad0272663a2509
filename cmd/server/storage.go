package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-match/internal/config"
	"github.com/phrazzld/scry-match/internal/platform/file"
	"github.com/phrazzld/scry-match/internal/platform/memory"
	"github.com/phrazzld/scry-match/internal/platform/postgres"
	"github.com/phrazzld/scry-match/internal/platform/sqlite"
	"github.com/phrazzld/scry-match/internal/store"
)

// storage is the blob store selected by configuration together with the
// database handle backing it, if any.
type storage struct {
	blobs store.BlobStore
	db    *sql.DB
}

// Close releases the database handle.
func (s *storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// openStorage opens the blob store for cfg.Driver, running schema migrations
// for the SQL drivers.
func openStorage(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (*storage, error) {
	log = log.With(slog.String("storage_driver", cfg.Driver))

	switch cfg.Driver {
	case "memory":
		log.Warn("using in-memory storage, scores are lost on restart")
		return &storage{blobs: memory.NewBlobStore()}, nil

	case "file":
		blobs, err := file.NewOSBlobStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		log.Info("file storage ready", slog.String("path", cfg.Path))
		return &storage{blobs: blobs}, nil

	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.Path, log)
		if err != nil {
			return nil, err
		}
		log.Info("sqlite storage ready", slog.String("path", cfg.Path))
		return &storage{blobs: sqlite.NewBlobStore(db), db: db}, nil

	case "postgres":
		db, err := postgres.Open(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		log.Info("postgres storage ready")
		return &storage{blobs: postgres.NewPostgresBlobStore(db), db: db}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
