package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// RunMigrations executes every embedded migration for d in file name order.
// Each file must be idempotent; nothing records which files already ran.
func RunMigrations(ctx context.Context, db *sql.DB, d Dialect) ([]string, error) {
	dir := "migrations/" + d.Name
	entries, err := migrationsFS.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		sqlBytes, err := migrationsFS.ReadFile(dir + "/" + name)
		if err != nil {
			return nil, err
		}
		if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
			return nil, fmt.Errorf("migration %s: %w", name, err)
		}
	}

	return files, nil
}
