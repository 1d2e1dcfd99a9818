package wallpaper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/store/memory"
)

type fakeFetcher struct {
	img   Image
	err   error
	calls int
}

func (f *fakeFetcher) FetchBing(context.Context) (Image, error) {
	f.calls++
	return f.img, f.err
}

var day = time.Date(2026, 10, 14, 23, 0, 0, 0, time.UTC)

func TestResolveCachesBing(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{img: Image{URL: "https://www.bing.com/a.jpg", Copyright: "c"}}
	r := NewResolver(f, memory.New(), 0, logger.NewNop())

	want := Wallpaper{URL: "https://www.bing.com/a.jpg", Source: SourceBing, Copyright: "c", Day: "2026-10-14"}
	assert.Equal(t, want, r.Resolve(ctx, day, false))
	assert.Equal(t, want, r.Resolve(ctx, day, false))
	assert.Equal(t, 1, f.calls)

	f.img = Image{URL: "https://www.bing.com/b.jpg"}
	got := r.Resolve(ctx, day, true)
	assert.Equal(t, "https://www.bing.com/b.jpg", got.URL)
	assert.Equal(t, 2, f.calls)
	assert.Equal(t, got, r.Resolve(ctx, day, false))
}

func TestResolveFallback(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{err: ErrUpstream}
	r := NewResolver(f, memory.New(), time.Hour, logger.NewNop())

	got := r.Resolve(ctx, day, false)
	assert.Equal(t, Wallpaper{
		URL:    "https://picsum.photos/seed/2026-10-14/1920/1080",
		Source: SourcePicsum,
		Day:    "2026-10-14",
	}, got)

	f.err = nil
	f.img = Image{URL: "https://www.bing.com/late.jpg"}
	assert.Equal(t, SourceBing, r.Resolve(ctx, day, false).Source, "fallback is not cached")
}

func TestResolvePerDay(t *testing.T) {
	ctx := context.Background()
	f := &fakeFetcher{img: Image{URL: "https://www.bing.com/a.jpg"}}
	r := NewResolver(f, memory.New(), 0, logger.NewNop())

	r.Resolve(ctx, day, false)
	r.Resolve(ctx, day.AddDate(0, 0, 1), false)
	assert.Equal(t, 2, f.calls)
}
