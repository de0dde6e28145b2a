package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// Up applies every pending SQL migration found in dir and returns the number
// of migrations applied.
func Up(ctx context.Context, db *sql.DB, dir string, log zerolog.Logger) (int, error) {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, os.DirFS(dir))
	if err != nil {
		return 0, fmt.Errorf("create goose provider for %s: %w", dir, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("run goose up migrations: %w", err)
	}

	for _, r := range results {
		log.Info().
			Int64("version", r.Source.Version).
			Dur("duration", r.Duration).
			Msg("migration applied")
	}
	return len(results), nil
}
