package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/dawnpage/internal/store"
)

// SetCached stores a value that expires after ttl
func (s *Store) SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, CacheKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache %s: %w", key, err)
	}
	return nil
}

// GetCached retrieves a cached value, store.ErrNotFound on miss
func (s *Store) GetCached(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, CacheKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cached %s: %w", key, err)
	}
	return data, nil
}

// FlushCache removes all cached values
func (s *Store) FlushCache(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixCache+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	return nil
}
