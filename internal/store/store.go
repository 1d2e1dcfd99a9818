// Package store persists the configuration document under a fixed key and
// guarantees a schema-valid value is always available to the session.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/schema"
)

// ErrNotFound is returned by a Backend when no value exists under a key.
var ErrNotFound = errors.New("store: not found")

// Backend is durable byte storage addressed by key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Ping(ctx context.Context) error
}

// Cache holds short-lived values such as the daily wallpaper.
// A miss is reported as ErrNotFound.
type Cache interface {
	GetCached(ctx context.Context, key string) ([]byte, error)
	SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// Flusher is implemented by backends whose cache can be cleared at once.
type Flusher interface {
	FlushCache(ctx context.Context) error
}

// Store reads and writes the configuration document.
type Store struct {
	backend Backend
	key     string
	logger  logger.Logger
}

// New returns a Store writing under schema.StorageKey.
func New(backend Backend, log logger.Logger) *Store {
	return &Store{backend: backend, key: schema.StorageKey, logger: log}
}

// Load returns the stored configuration. Missing, unreadable and invalid
// documents are all reported as absent.
func (s *Store) Load(ctx context.Context) (schema.AppConfig, bool) {
	data, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("failed to read stored configuration",
				logger.String("key", s.key),
				logger.Error(err))
		}
		return schema.AppConfig{}, false
	}

	cfg, err := schema.ParseJSON(data)
	if err != nil {
		s.logger.Warn("stored configuration is invalid, ignoring it",
			logger.String("key", s.key),
			logger.Error(err))
		return schema.AppConfig{}, false
	}
	return cfg, true
}

// Save overwrites the stored document with cfg.
func (s *Store) Save(ctx context.Context, cfg schema.AppConfig) error {
	data, err := schema.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	return nil
}

// Ensure returns the stored configuration, or writes and returns the default
// one. A failed write is logged and the default is still returned.
func (s *Store) Ensure(ctx context.Context) schema.AppConfig {
	if cfg, ok := s.Load(ctx); ok {
		return cfg
	}

	cfg := schema.Default()
	if err := s.Save(ctx, cfg); err != nil {
		s.logger.Warn("failed to persist default configuration, continuing in memory",
			logger.Error(err))
	}
	return cfg
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}
