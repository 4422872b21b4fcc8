// Package db persists the user-entered state the engine reads: characters,
// their bank holdings, and purchase goals.
package db

import (
	"database/sql"
	"fmt"

	"gp-tracker/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
}

// Open opens (or creates) the SQLite database at path and runs migrations.
// Use ":memory:" for tests.
func Open(path string) (*DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if path == ":memory:" {
		// One shared connection, or each pooled conn gets its own empty DB.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	if path != ":memory:" {
		logger.Success("DB", fmt.Sprintf("Opened %s", path))
	}
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS characters (
				name TEXT PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS holdings (
				id              INTEGER PRIMARY KEY AUTOINCREMENT,
				character       TEXT NOT NULL REFERENCES characters(name) ON DELETE CASCADE,
				item            TEXT NOT NULL,
				quantity        INTEGER NOT NULL DEFAULT 0,
				estimated_price INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_holdings_character ON holdings(character);

			CREATE TABLE IF NOT EXISTS goals (
				id            INTEGER PRIMARY KEY AUTOINCREMENT,
				name          TEXT NOT NULL,
				quantity      INTEGER NOT NULL DEFAULT 1,
				current_price INTEGER NOT NULL DEFAULT 0,
				target_price  INTEGER NOT NULL DEFAULT 0
			);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}
