package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
	"time"
)

//go:embed *.sql
var embedMigrations embed.FS

// AutoMigrateProducts creates the products_info table if it does not exist.
// dialect is goose.DialectMySQL in production and goose.DialectSQLite3 in tests.
func AutoMigrateProducts(ctx context.Context, db *sql.DB, dialect goose.Dialect, retries int) error {
	provider, err := goose.NewProvider(dialect, db, embedMigrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	var results []*goose.MigrationResult
	for i := 0; ; i++ {
		results, err = provider.Up(ctx)
		if err == nil || i >= retries {
			break
		}
		// Retry applying the migrations
		log.Warn().Err(err).Msgf("Migration attempt %d failed", i+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(1 * time.Second):
		}
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, r := range results {
		log.Info().Str("migration", r.Source.Path).Dur("duration", r.Duration).Msg("Applied migration")
	}
	return nil
}
