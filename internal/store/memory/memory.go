// Package memory is an in-process store backend, used for tests and for
// DAWN_STORAGE=memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/store"
)

type cached struct {
	data      []byte
	expiresAt time.Time
}

// Backend keeps values in a map. It also satisfies store.Cache.
type Backend struct {
	mu     sync.RWMutex
	values map[string][]byte
	cache  map[string]cached
	now    func() time.Time
}

func New() *Backend {
	return &Backend{
		values: make(map[string][]byte),
		cache:  make(map[string]cached),
		now:    time.Now,
	}
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (b *Backend) Set(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.values[key] = append([]byte(nil), data...)
	return nil
}

func (b *Backend) Ping(context.Context) error { return nil }

func (b *Backend) GetCached(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	c, ok := b.cache[key]
	if !ok || !b.now().Before(c.expiresAt) {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), c.data...), nil
}

func (b *Backend) SetCached(_ context.Context, key string, data []byte, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for k, c := range b.cache {
		if !now.Before(c.expiresAt) {
			delete(b.cache, k)
		}
	}
	b.cache[key] = cached{data: append([]byte(nil), data...), expiresAt: now.Add(ttl)}
	return nil
}

// FlushCache drops every cached value.
func (b *Backend) FlushCache(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cache = make(map[string]cached)
	return nil
}
