package store

import (
	"context"
	"database/sql"
	"fmt"

	"guestbook/internal/shared"
)

// SQLStore is the single-table relational backend. Each call checks out its
// own connection and returns it before the call ends.
type SQLStore struct {
	DB      *sql.DB
	dialect Dialect
}

func NewSQLStore(db *sql.DB, d Dialect) *SQLStore {
	return &SQLStore{DB: db, dialect: d}
}

func (s *SQLStore) Dialect() Dialect { return s.dialect }

func (s *SQLStore) ListEntries(ctx context.Context) ([]shared.Entry, error) {
	conn, err := s.DB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx,
		`SELECT id, name, message, createdAt
		 FROM entries
		 ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []shared.Entry{}
	for rows.Next() {
		var e shared.Entry
		var name sql.NullString
		if err := rows.Scan(&e.ID, &name, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("list entries: %w", err)
		}
		e.Name = name.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

func (s *SQLStore) AppendEntry(ctx context.Context, e *shared.Entry) error {
	conn, err := s.DB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	defer conn.Close()

	var id int64
	if s.dialect.returningID {
		err = conn.QueryRowContext(ctx, s.dialect.insertEntry, e.Name, e.Message, e.CreatedAt).Scan(&id)
	} else {
		var res sql.Result
		res, err = conn.ExecContext(ctx, s.dialect.insertEntry, e.Name, e.Message, e.CreatedAt)
		if err == nil {
			id, err = res.LastInsertId()
		}
	}
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}

	e.ID = id
	return nil
}

// Tables lists the user tables in the database.
func (s *SQLStore) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, s.dialect.listTables)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLStore) Close() error { return s.DB.Close() }
