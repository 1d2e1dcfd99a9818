// Package session owns the live configuration of the running process and is
// the single path through which it changes.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/store"
)

// ErrNotReady is returned by mutations issued before Init.
var ErrNotReady = errors.New("session: not initialized")

// Updater derives the next configuration from a private copy of the current
// one. Returning an error abandons the change.
type Updater func(schema.AppConfig) (schema.AppConfig, error)

// Commit describes a configuration that just became live.
type Commit struct {
	Config   schema.AppConfig
	Revision uint64
	SavedAt  time.Time
}

// Listener receives every commit. Listeners run while the session is locked
// and must not call back into it.
type Listener func(Commit)

type Option func(*Session)

// WithClock overrides the time source used for last-saved timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session serializes every mutation of the live configuration: apply,
// sanitize, validate, persist, then replace.
type Session struct {
	mu        sync.Mutex
	store     *store.Store
	logger    logger.Logger
	now       func() time.Time
	cfg       schema.AppConfig
	ready     bool
	revision  uint64
	savedAt   time.Time
	listeners []Listener
}

func New(st *store.Store, log logger.Logger, opts ...Option) *Session {
	s := &Session{store: st, logger: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads (or seeds) the stored configuration, sanitizes it and writes it
// back. Only the first call has an effect.
func (s *Session) Init(ctx context.Context) schema.AppConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return s.cfg.Clone()
	}

	cfg := schema.Sanitize(s.store.Ensure(ctx))
	s.persistLocked(ctx, cfg)
	s.cfg = cfg
	s.ready = true
	s.revision = 1
	s.notifyLocked()

	s.logger.Info("configuration session ready",
		logger.Int("links", len(cfg.Links.Items)),
		logger.Int("widgets", len(cfg.Widgets.Items)))
	return cfg.Clone()
}

func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Config returns a copy of the live configuration, false before Init.
func (s *Session) Config() (schema.AppConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return schema.AppConfig{}, false
	}
	return s.cfg.Clone(), true
}

// LastSavedAt is the time of the last committed mutation, zero if none.
func (s *Session) LastSavedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savedAt
}

// Revision increases by one on every commit.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Subscribe registers l. When the session is already ready, l immediately
// receives the current configuration.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, l)
	if s.ready {
		l(s.commitLocked())
	}
}

// Update applies fn to the live configuration. The result is sanitized and
// must still be a valid document, otherwise nothing changes.
func (s *Session) Update(ctx context.Context, fn Updater) (schema.AppConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return schema.AppConfig{}, ErrNotReady
	}

	next, err := fn(s.cfg.Clone())
	if err != nil {
		return schema.AppConfig{}, err
	}
	next, err = revalidate(schema.Sanitize(next))
	if err != nil {
		return schema.AppConfig{}, err
	}
	return s.replaceLocked(ctx, next), nil
}

// ImportRaw replaces the live configuration with the document in text.
// On any failure the live configuration is left untouched.
func (s *Session) ImportRaw(ctx context.Context, text []byte) (schema.AppConfig, error) {
	cfg, err := s.ValidateRaw(text)
	if err != nil {
		return schema.AppConfig{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return schema.AppConfig{}, ErrNotReady
	}
	return s.replaceLocked(ctx, cfg), nil
}

// ValidateRaw runs the import pipeline without committing anything.
func (s *Session) ValidateRaw(text []byte) (schema.AppConfig, error) {
	cfg, err := schema.ParseJSON(text)
	if err != nil {
		return schema.AppConfig{}, err
	}
	return schema.Sanitize(cfg), nil
}

// ExportRaw renders the live configuration as indented JSON. Before Init it
// falls back to the stored document, then to the default one.
func (s *Session) ExportRaw(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	cfg, ready := s.cfg, s.ready
	s.mu.Unlock()

	if !ready {
		stored, ok := s.store.Load(ctx)
		if !ok {
			stored = schema.Default()
		}
		cfg = stored
	}

	data, err := schema.MarshalIndent(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to export configuration: %w", err)
	}
	return data, nil
}

// Reset replaces the live configuration with the sanitized default one.
func (s *Session) Reset(ctx context.Context) (schema.AppConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return schema.AppConfig{}, ErrNotReady
	}
	return s.replaceLocked(ctx, schema.Sanitize(schema.Default())), nil
}

func (s *Session) replaceLocked(ctx context.Context, next schema.AppConfig) schema.AppConfig {
	s.persistLocked(ctx, next)
	s.cfg = next
	s.revision++
	s.savedAt = s.now()
	s.notifyLocked()
	return next.Clone()
}

// persistLocked writes cfg, degrading to memory-only when storage fails.
func (s *Session) persistLocked(ctx context.Context, cfg schema.AppConfig) {
	if err := s.store.Save(ctx, cfg); err != nil {
		s.logger.Warn("failed to persist configuration, changes will not survive a restart",
			logger.Error(err))
	}
}

func (s *Session) commitLocked() Commit {
	return Commit{Config: s.cfg.Clone(), Revision: s.revision, SavedAt: s.savedAt}
}

func (s *Session) notifyLocked() {
	for _, l := range s.listeners {
		l(s.commitLocked())
	}
}

// revalidate round-trips cfg through the document form so an updater cannot
// commit something Parse would reject.
func revalidate(cfg schema.AppConfig) (schema.AppConfig, error) {
	data, err := schema.Marshal(cfg)
	if err != nil {
		return schema.AppConfig{}, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return schema.ParseJSON(data)
}
