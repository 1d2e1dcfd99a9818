package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/dawnpage/internal/edit"
	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/session"
	"github.com/MrSnakeDoc/dawnpage/internal/store"
	"github.com/MrSnakeDoc/dawnpage/internal/store/memory"
	"github.com/MrSnakeDoc/dawnpage/internal/wallpaper"
)

type fakeSource struct {
	seed edit.Seed
	err  error
}

func (f fakeSource) Seed() (edit.Seed, error) { return f.seed, f.err }

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(store.New(memory.New(), logger.NewNop()), logger.NewNop())
	s.Init(context.Background())
	return s
}

var seed = edit.Seed{
	Sections: []schema.LinkSection{{ID: "media", Title: "Media", Sort: 0}},
	Items: []schema.LinkItem{{
		ID: "hp_0123456789abcdef", Title: "Jellyfin", URL: "https://jellyfin.lan",
		Tags: []string{}, SectionID: "media", Open: schema.OpenNewTab, Icon: schema.DashboardIcon{Name: "jellyfin"},
	}},
}

func TestHomepageReloaderMerges(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	hr := NewHomepageReloader(fakeSource{seed: seed}, s, logger.NewNop(), time.Hour, nil)

	res, err := hr.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, edit.MergeResult{Sections: 1, Items: 1}, res)

	cfg, _ := s.Config()
	assert.Len(t, cfg.Links.Items, 3)
	rev := s.Revision()

	res, err = hr.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, edit.MergeResult{}, res)
	assert.Equal(t, rev, s.Revision(), "nothing new, nothing committed")
}

func TestHomepageReloaderPartialSeed(t *testing.T) {
	s := newSession(t)
	hr := NewHomepageReloader(fakeSource{seed: seed, err: errors.New("bookmarks missing")}, s, logger.NewNop(), time.Hour, nil)

	res, err := hr.Reload(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, res.Items)
}

func TestHomepageReloaderLoadFailure(t *testing.T) {
	s := newSession(t)
	rev := s.Revision()
	hr := NewHomepageReloader(fakeSource{err: errors.New("boom")}, s, logger.NewNop(), time.Hour, nil)

	_, err := hr.Reload(context.Background())
	require.Error(t, err)
	assert.Equal(t, rev, s.Revision())
}

func TestHomepageReloaderNotReady(t *testing.T) {
	s := session.New(store.New(memory.New(), logger.NewNop()), logger.NewNop())
	hr := NewHomepageReloader(fakeSource{seed: seed}, s, logger.NewNop(), time.Hour, nil)

	_, err := hr.Reload(context.Background())
	assert.ErrorIs(t, err, session.ErrNotReady)
}

func TestHomepageReloaderManualTrigger(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newSession(t)
	trigger := make(chan struct{}, 1)
	hr := NewHomepageReloader(fakeSource{seed: seed}, s, logger.NewNop(), time.Hour, trigger)
	require.NoError(t, hr.Start(ctx))
	defer hr.Stop()

	_, err := s.Update(ctx, edit.DeleteLink(seed.Items[0].ID))
	require.NoError(t, err)
	rev := s.Revision()

	assert.True(t, Trigger(trigger))
	assert.Eventually(t, func() bool { return s.Revision() > rev }, time.Second, 10*time.Millisecond)
}

func TestStartRejectsBadInterval(t *testing.T) {
	hr := NewHomepageReloader(fakeSource{}, newSession(t), logger.NewNop(), 0, nil)
	assert.Error(t, hr.Start(context.Background()))

	wr := NewWallpaperRefresher(&countingResolver{}, logger.NewNop(), 0, nil, nil)
	assert.Error(t, wr.Start(context.Background()))
}

func TestTrigger(t *testing.T) {
	assert.False(t, Trigger(nil))
	ch := make(chan struct{}, 1)
	assert.True(t, Trigger(ch))
	assert.False(t, Trigger(ch), "pending request absorbs the new one")
}

type countingResolver struct {
	mu       sync.Mutex
	calls    int
	refreshs int
}

func (c *countingResolver) Resolve(_ context.Context, day time.Time, refresh bool) wallpaper.Wallpaper {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if refresh {
		c.refreshs++
	}
	return wallpaper.Wallpaper{Day: day.Format(wallpaper.DayFormat), Source: wallpaper.SourceBing}
}

func (c *countingResolver) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls, c.refreshs
}

func TestWallpaperRefresher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := func() time.Time { return time.Date(2026, 10, 14, 6, 0, 0, 0, time.UTC) }
	r := &countingResolver{}
	trigger := make(chan struct{}, 1)
	wr := NewWallpaperRefresher(r, logger.NewNop(), time.Hour, now, trigger)

	require.NoError(t, wr.Start(ctx))
	defer wr.Stop()

	calls, refreshes := r.counts()
	assert.Equal(t, 1, calls)
	assert.Zero(t, refreshes)

	Trigger(trigger)
	assert.Eventually(t, func() bool {
		_, refreshes := r.counts()
		return refreshes == 1
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, "2026-10-14", wr.Warm(ctx, false).Day)
}
