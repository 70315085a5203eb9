package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect captures what differs between the relational engines.
type Dialect struct {
	Name   string // also the migrations subdirectory
	Driver string

	insertEntry string
	returningID bool // insert reports the id via RETURNING instead of LastInsertId
	listTables  string
}

var (
	DialectSQLite = Dialect{
		Name:        "sqlite",
		Driver:      "sqlite",
		insertEntry: `INSERT INTO entries (name, message, createdAt) VALUES (?, ?, ?)`,
		listTables:  `SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
	}
	DialectPostgres = Dialect{
		Name:        "postgres",
		Driver:      "postgres",
		insertEntry: `INSERT INTO entries (name, message, createdAt) VALUES ($1, $2, $3) RETURNING id`,
		returningID: true,
		listTables:  `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() ORDER BY table_name`,
	}
)

// OpenDB connects to the database. For sqlite, dsn is a file path whose
// directory is created when missing.
func OpenDB(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	if d.Name == DialectSQLite.Name {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("create db dir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, err
	}

	if d.Name == DialectSQLite.Name {
		// One connection: writers queue in the pool instead of hitting SQLITE_BUSY.
		db.SetMaxOpenConns(1)
		for _, pragma := range []string{
			`PRAGMA journal_mode=WAL;`,
			`PRAGMA busy_timeout=5000;`,
		} {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				db.Close()
				return nil, err
			}
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
