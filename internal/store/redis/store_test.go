package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/dawnpage/internal/store"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client), mr
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	_, err := s.Get(ctx, "dawnpage.config")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Set(ctx, "dawnpage.config", []byte(`{"version":1}`)))

	got, err := s.Get(ctx, "dawnpage.config")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(got))

	raw, err := mr.Get("dawnpage:dawnpage.config")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, raw)
	assert.Zero(t, mr.TTL("dawnpage:dawnpage.config"))
}

func TestCacheTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	require.NoError(t, s.SetCached(ctx, "wallpaper:2026-10-14", []byte("img"), 36*time.Hour))
	assert.Equal(t, 36*time.Hour, mr.TTL("dawnpage:cache:wallpaper:2026-10-14"))

	got, err := s.GetCached(ctx, "wallpaper:2026-10-14")
	require.NoError(t, err)
	assert.Equal(t, "img", string(got))

	mr.FastForward(37 * time.Hour)
	_, err = s.GetCached(ctx, "wallpaper:2026-10-14")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFlushCacheKeepsDocuments(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	require.NoError(t, s.Set(ctx, "dawnpage.config", []byte("{}")))
	require.NoError(t, s.SetCached(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, s.SetCached(ctx, "b", []byte("2"), time.Hour))

	require.NoError(t, s.FlushCache(ctx))
	assert.False(t, mr.Exists("dawnpage:cache:a"))
	assert.False(t, mr.Exists("dawnpage:cache:b"))
	assert.True(t, mr.Exists("dawnpage:dawnpage.config"))
}

func TestPing(t *testing.T) {
	s, mr := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}
