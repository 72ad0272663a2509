// Package migrations holds the SQL schema shared by the SQL blob stores and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// FS contains the embedded migration files.
//
//go:embed *.sql
var FS embed.FS

// Up applies every pending migration for the given dialect.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	provider, err := goose.NewProvider(dialect, db, FS)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, r := range results {
		logger.Info("applied migration",
			slog.String("component", "migrations"),
			slog.String("dialect", string(dialect)),
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration))
	}
	return nil
}
