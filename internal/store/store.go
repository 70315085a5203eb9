// Package store persists guestbook entries.
//
// Every backend satisfies Store. Exactly one backend is chosen at startup
// (see Open); backends are never mixed within a deployment.
package store

import (
	"context"
	"fmt"

	"guestbook/internal/shared"

	"go.uber.org/zap"
)

type Store interface {
	// ListEntries returns every entry, newest first.
	ListEntries(ctx context.Context) ([]shared.Entry, error)
	// AppendEntry persists e and writes the final id back into it.
	AppendEntry(ctx context.Context, e *shared.Entry) error
	Close() error
}

// Open builds the backend named by cfg.Backend. SQL backends have their
// schema created before Open returns.
func Open(ctx context.Context, cfg *shared.ServerConfig, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("store")

	switch cfg.Backend {
	case shared.BackendFile:
		return NewFileStore(cfg.DataFile, log), nil
	case shared.BackendMemory:
		return NewMemoryStore(), nil
	case shared.BackendSQLite:
		return openSQL(ctx, DialectSQLite, cfg.DBPath, log)
	case shared.BackendPostgres:
		return openSQL(ctx, DialectPostgres, cfg.DatabaseURL, log)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownBackend, cfg.Backend)
	}
}

func openSQL(ctx context.Context, d Dialect, dsn string, log *zap.Logger) (Store, error) {
	db, err := OpenDB(ctx, d, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}

	applied, err := RunMigrations(ctx, db, d)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", d.Name, err)
	}
	for _, name := range applied {
		log.Debug("migration applied", zap.String("dialect", d.Name), zap.String("file", name))
	}

	return NewSQLStore(db, d), nil
}
