// Package repository is the sqlite data layer for news items and visit
// statistics.
package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"inkhub/internal/config"
	"inkhub/internal/logging"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// Repository wraps the database handle and the shared query builder.
type Repository struct {
	DB      *sql.DB
	Builder squirrel.StatementBuilderType
}

// NewRepository opens (and creates, if needed) the sqlite database at
// cfg.Database.Path. The schema is not touched; see EnsureSchemaBootstrapped.
func NewRepository(cfg *config.Config) (*Repository, error) {
	path := cfg.Database.Path
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Log.Debugf("Opened sqlite database at %s", path)
	return &Repository{
		DB:      db,
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	return r.DB.Close()
}
