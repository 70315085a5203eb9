package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"guestbook/internal/shared"

	"go.uber.org/zap"
)

// FileStore keeps the whole collection as one JSON array, newest first.
//
// Appends are a read-modify-write of the entire document. mu serializes them
// within one process; separate processes sharing the file can still lose
// updates.
type FileStore struct {
	path string
	log  *zap.Logger

	mu sync.Mutex
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{path: path, log: log}
}

func (s *FileStore) Path() string { return s.path }

// ListEntries never fails: a missing, unreadable or malformed document
// reads as empty.
func (s *FileStore) ListEntries(ctx context.Context) ([]shared.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		s.log.Warn("read entries failed, treating as empty", zap.String("path", s.path), zap.Error(err))
		return []shared.Entry{}, nil
	}
	return entries, nil
}

func (s *FileStore) AppendEntry(ctx context.Context, e *shared.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Only a missing or malformed document starts a fresh collection; any
	// other read error would overwrite entries we could not see.
	entries, err := s.read()
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}

	// Ids are millisecond timestamps; two appends in the same millisecond
	// (or a clock step backwards) would collide, so keep them increasing.
	if len(entries) > 0 {
		var maxID int64
		for _, cur := range entries {
			if cur.ID > maxID {
				maxID = cur.ID
			}
		}
		if e.ID <= maxID {
			e.ID = maxID + 1
		}
	}

	entries = append([]shared.Entry{*e}, entries...)
	return s.write(entries)
}

func (s *FileStore) Close() error { return nil }

// read returns an error only for I/O failures. A missing file and a
// malformed document both read as empty.
func (s *FileStore) read() ([]shared.Entry, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []shared.Entry{}, nil
		}
		return nil, err
	}

	var entries []shared.Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		s.log.Warn("malformed entries file, treating as empty", zap.String("path", s.path), zap.Error(err))
		return []shared.Entry{}, nil
	}
	if entries == nil {
		entries = []shared.Entry{}
	}
	return entries, nil
}

// write replaces the document via a temp file + rename so a crash mid-write
// leaves the previous version intact.
func (s *FileStore) write(entries []shared.Entry) error {
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write entries: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write entries: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write entries: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write entries: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write entries: %w", err)
	}
	return nil
}
