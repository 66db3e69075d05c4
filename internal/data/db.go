package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS log_queue (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id INTEGER NOT NULL,
		ch_id INTEGER NOT NULL,
		msg TEXT NOT NULL,
		reactions TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS schedule (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		location TEXT NOT NULL,
		sun1 TEXT NOT NULL, mon1 TEXT NOT NULL, tue1 TEXT NOT NULL, wed1 TEXT NOT NULL,
		thu1 TEXT NOT NULL, fri1 TEXT NOT NULL, sat1 TEXT NOT NULL,
		sun2 TEXT NOT NULL, mon2 TEXT NOT NULL, tue2 TEXT NOT NULL, wed2 TEXT NOT NULL,
		thu2 TEXT NOT NULL, fri2 TEXT NOT NULL, sat2 TEXT NOT NULL
	)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS log_queue (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		guild_id BIGINT UNSIGNED NOT NULL,
		ch_id BIGINT UNSIGNED NOT NULL,
		msg TEXT NOT NULL,
		reactions TEXT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS schedule (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		location VARCHAR(255) NOT NULL,
		sun1 TEXT NOT NULL, mon1 TEXT NOT NULL, tue1 TEXT NOT NULL, wed1 TEXT NOT NULL,
		thu1 TEXT NOT NULL, fri1 TEXT NOT NULL, sat1 TEXT NOT NULL,
		sun2 TEXT NOT NULL, mon2 TEXT NOT NULL, tue2 TEXT NOT NULL, wed2 TEXT NOT NULL,
		thu2 TEXT NOT NULL, fri2 TEXT NOT NULL, sat2 TEXT NOT NULL
	)`,
}

// OpenDB opens the queue/schedule database and creates missing tables.
// driver is "sqlite" or "mysql".
func OpenDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var schema []string
	switch driver {
	case "sqlite":
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return nil, fmt.Errorf("failed to create db directory: %w", err)
			}
		}
		schema = sqliteSchema
	case "mysql":
		schema = mysqlSchema
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == "sqlite" {
		// one connection keeps in-memory databases shared and writes serialized
		db.SetMaxOpenConns(1)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create table: %w", err)
		}
	}
	return db, nil
}
