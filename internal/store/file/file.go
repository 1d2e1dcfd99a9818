// Package file stores each key as a JSON file in a data directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/store"
	"github.com/MrSnakeDoc/dawnpage/internal/store/memory"
)

// Backend writes <dir>/<key>.json with write-then-rename so a crash never
// leaves a truncated document behind. Cached values live in memory only.
type Backend struct {
	dir   string
	cache *memory.Backend
}

func New(dir string) *Backend {
	return &Backend{dir: dir, cache: memory.New()}
}

func (b *Backend) path(key string) (string, error) {
	if key == "" || filepath.Base(key) != key || key == "." || key == ".." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(b.dir, key+".json"), nil
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, error) {
	p, err := b.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

func (b *Backend) Set(_ context.Context, key string, data []byte) error {
	p, err := b.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("failed to replace %s: %w", p, err)
	}
	return nil
}

// Ping reports whether the data directory exists or can be created.
func (b *Backend) Ping(context.Context) error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("data dir unavailable: %w", err)
	}
	return nil
}

func (b *Backend) GetCached(ctx context.Context, key string) ([]byte, error) {
	return b.cache.GetCached(ctx, key)
}

func (b *Backend) SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return b.cache.SetCached(ctx, key, data, ttl)
}

func (b *Backend) FlushCache(ctx context.Context) error {
	return b.cache.FlushCache(ctx)
}
