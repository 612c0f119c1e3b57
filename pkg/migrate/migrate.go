package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/angelmondragon/vendas-backend/pkg/config"
)

//go:embed migrations
var embedded embed.FS

// Dir returns the embedded migration directory for the given SQL dialect.
func Dir(dialect string) (string, goose.Dialect, error) {
	switch dialect {
	case config.DriverSQLite:
		return "migrations/sqlite", goose.DialectSQLite3, nil
	case config.DriverPostgres:
		return "migrations/postgres", goose.DialectPostgres, nil
	default:
		return "", "", fmt.Errorf("no migrations for dialect %q", dialect)
	}
}

// Files exposes the embedded migrations of one dialect.
func Files(dialect string) (fs.FS, error) {
	dir, _, err := Dir(dialect)
	if err != nil {
		return nil, err
	}
	return fs.Sub(embedded, dir)
}

// Up applies every pending migration for dialect and returns the number of
// migrations applied.
func Up(ctx context.Context, db *sql.DB, dialect string) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("db is required")
	}
	_, gooseDialect, err := Dir(dialect)
	if err != nil {
		return 0, err
	}
	fsys, err := Files(dialect)
	if err != nil {
		return 0, fmt.Errorf("open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	return len(results), nil
}
