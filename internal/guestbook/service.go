// Package guestbook validates submissions and hands them to a store.
package guestbook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"guestbook/internal/shared"
	"guestbook/internal/store"

	"go.uber.org/zap"
)

const DefaultName = "Anonymous"

var ErrMessageRequired = errors.New("message is required")

// ValidationError reports input the caller must fix. It is never a server
// fault.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

type Service struct {
	store store.Store
	log   *zap.Logger
	now   func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(st store.Store, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{store: st, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateEntry normalizes the submission, stamps id and createdAt, and
// persists it. The returned entry carries the id the store settled on.
func (s *Service) CreateEntry(ctx context.Context, name, message *string) (shared.Entry, error) {
	msg := trimmed(message)
	if msg == "" {
		return shared.Entry{}, &ValidationError{Field: "message", Err: ErrMessageRequired}
	}

	n := trimmed(name)
	if n == "" {
		n = DefaultName
	}

	now := s.now().UTC()
	e := shared.Entry{
		ID:        now.UnixMilli(), // provisional; relational stores replace it
		Name:      n,
		Message:   msg,
		CreatedAt: now.Format(time.RFC3339Nano),
	}

	if err := s.store.AppendEntry(ctx, &e); err != nil {
		return shared.Entry{}, fmt.Errorf("store entry: %w", err)
	}

	s.log.Debug("entry created", zap.Int64("id", e.ID), zap.Int("message_len", len(e.Message)))
	return e, nil
}

func (s *Service) ListEntries(ctx context.Context) ([]shared.Entry, error) {
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if entries == nil {
		entries = []shared.Entry{}
	}
	return entries, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
