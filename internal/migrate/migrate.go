package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Up applies pending migrations from dir and returns how many ran.
// It returns an error instead of exiting so the caller decides what to do.
func Up(ctx context.Context, dbURL, dir string, log *slog.Logger) (int, error) {
	if log == nil {
		log = slog.Default()
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return 0, fmt.Errorf("migrations: open db: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("migrations: close db", "err", err)
		}
	}()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(dir))
	if err != nil {
		return 0, fmt.Errorf("migrations: provider: %w", err)
	}

	log.Info("running database migrations", "dir", dir)
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrations: goose up: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied", "version", r.Source.Version, "file", r.Source.Path, "took", r.Duration)
	}
	log.Info("database migrations done", "applied", len(results))
	return len(results), nil
}
