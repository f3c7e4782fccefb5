// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Connect opens and pings a database for the given type and URL.
// Supported types are "sqlite" (a file path or file: URL) and "postgres"
// (a connection string).
func Connect(databaseType, databaseURL string) (*sql.DB, error) {
	switch databaseType {
	case "sqlite":
		return connectSQLite(databaseURL)
	case "postgres":
		return connectPostgres(databaseURL)
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}
}

func connectSQLite(path string) (*sql.DB, error) {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	if !strings.Contains(dsn, "?") {
		// WAL keeps readers from blocking the writer; busy_timeout makes
		// concurrent writers queue instead of failing with SQLITE_BUSY.
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite allows one writer at a time; a single pooled connection
	// serializes writes at the pool instead of at the driver.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return conn, nil
}

func connectPostgres(url string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}
	return conn, nil
}
