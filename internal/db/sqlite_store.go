package db

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4/database/sqlite3"
)

// SqliteConfig holds the configuration for a SQLite backed store.
type SqliteConfig struct {
	// DatabaseFileName is the full path of the database file.
	DatabaseFileName string

	// SkipMigrations skips applying migrations on startup. Intended for
	// tests that manage the schema themselves.
	SkipMigrations bool
}

// SqliteStore is a SQLite backed Store with migrations applied.
type SqliteStore struct {
	cfg *SqliteConfig

	*Store
}

// NewSqliteStore opens the configured SQLite database, applies any pending
// migrations, and returns a store wrapping it.
func NewSqliteStore(cfg *SqliteConfig, log *slog.Logger) (*SqliteStore, error) {
	db, err := OpenSQLite(cfg.DatabaseFileName)
	if err != nil {
		return nil, err
	}

	if !cfg.SkipMigrations {
		if err := ApplyMigrations(db, log); err != nil {
			db.Close()
			return nil, fmt.Errorf("unable to apply migrations: %w",
				err)
		}
	}

	return &SqliteStore{
		cfg:   cfg,
		Store: NewStore(db),
	}, nil
}

// ApplyMigrations applies all pending migrations from the embedded migration
// file system to the given database, up to the latest known version.
func ApplyMigrations(db *sql.DB, log *slog.Logger,
	opts ...MigrateOpt) error {

	options := defaultMigrateOptions()
	for _, opt := range opts {
		opt(options)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("unable to create migration driver: %w", err)
	}

	return applyMigrations(
		sqlSchemas, driver, "migrations", "modqueue", TargetLatest,
		options, log,
	)
}
