package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"inkhub/internal/db/migrations"
	"inkhub/internal/logging"

	"github.com/pressly/goose/v3"
)

// migrationsDir is the root of the embedded FS.
const migrationsDir = "."

func configureGoose() error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(logging.Log)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

// Migrate runs a goose command ("up", "down" or "status") against the
// embedded migrations.
func (r *Repository) Migrate(command string) error {
	if err := configureGoose(); err != nil {
		return err
	}

	logging.Log.Infof("Running migration command: %s", command)

	var err error
	switch command {
	case "up":
		err = goose.Up(r.DB, migrationsDir)
	case "down":
		err = goose.Down(r.DB, migrationsDir)
	case "status":
		err = goose.Status(r.DB, migrationsDir)
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// ValidateSchema returns an error when the database is behind the newest
// embedded migration.
func (r *Repository) ValidateSchema() error {
	if err := configureGoose(); err != nil {
		return err
	}

	all, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	if err != nil {
		return fmt.Errorf("failed to collect migrations: %w", err)
	}
	latest, err := all.Last()
	if err != nil {
		return fmt.Errorf("failed to determine latest migration: %w", err)
	}

	current, err := goose.GetDBVersion(r.DB)
	if err != nil {
		return fmt.Errorf("failed to read database version: %w", err)
	}
	if current < latest.Version {
		return fmt.Errorf("database schema is outdated (version %d, expected %d); run 'inkhub migrate up'", current, latest.Version)
	}
	return nil
}

// EnsureSchemaBootstrapped applies all migrations to a brand new database.
// A database that already has a goose version table is left alone so that
// upgrades stay an explicit operator step.
func (r *Repository) EnsureSchemaBootstrapped() error {
	var name string
	err := r.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='goose_db_version'").Scan(&name)
	if err == nil {
		logging.Log.Debug("Database already initialized, skipping bootstrap migration")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	logging.Log.Info("Fresh database detected, applying migrations")
	return r.Migrate("up")
}
