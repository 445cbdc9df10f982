package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

type Config struct {
	Driver          string // "sqlite" (local household DB) or "pgx" (Postgres)
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	DialTimeout     time.Duration
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*sql.DB, error) {
	logger.Info("connecting to database", "driver", cfg.Driver)

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("successfully connected to database")
	return db, nil
}

// Both drivers accept this DDL: TEXT/INTEGER/TIMESTAMP map cleanly on
// Postgres and SQLite, and money columns are stored as decimal strings.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS receipts (
		id             TEXT PRIMARY KEY,
		fingerprint    TEXT NOT NULL UNIQUE,
		store          TEXT NOT NULL,
		tx_date        TEXT NOT NULL,
		total          TEXT NOT NULL,
		payment_method TEXT NOT NULL DEFAULT '',
		receipt_number TEXT NOT NULL DEFAULT '',
		scanned_at     TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_history (
		id              TEXT PRIMARY KEY,
		name            TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		store           TEXT NOT NULL,
		tx_date         TEXT NOT NULL,
		price           TEXT NOT NULL,
		quantity        INTEGER NOT NULL,
		purchases       INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_normalized_name
		ON purchase_history (normalized_name)`,
	`CREATE TABLE IF NOT EXISTS inventory_items (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		store    TEXT NOT NULL,
		tx_date  TEXT NOT NULL,
		price    TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		status   TEXT NOT NULL
	)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Error("migration failed", "error", err)
			return fmt.Errorf("migrate: %w", err)
		}
	}
	logger.Info("database schema up to date")
	return nil
}

// HealthCheck pings the database to catch DSN issues early.
func HealthCheck(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return db.PingContext(ctx)
}

// Close closes the database connection gracefully.
func Close(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
		return
	}
	logger.Info("database connection closed")
}
