package repository

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/segyhp/helbflow/internal/config"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Open connects to the configured database and applies the pool settings
func Open(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.GetConnMaxLifetime())

	if cfg.Database.Driver == "sqlite" {
		// in-memory sqlite databases live exactly as long as their connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// EnsureSchema creates any missing tables for the connected driver.
// It is a bootstrap for development and tests, not a migration system.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	var file string
	switch db.DriverName() {
	case "postgres":
		file = "schema/postgres.sql"
	case "sqlite":
		file = "schema/sqlite.sql"
	default:
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}

	ddl, err := schemaFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
