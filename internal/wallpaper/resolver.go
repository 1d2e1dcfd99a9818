package wallpaper

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/store"
)

// Source names where a wallpaper came from.
type Source string

const (
	SourceBing   Source = "bing"
	SourcePicsum Source = "picsum"
)

// DayFormat is the layout of the per-day cache key and fallback seed.
const DayFormat = "2006-01-02"

// DefaultCacheTTL keeps a day's wallpaper well past midnight in any zone.
const DefaultCacheTTL = 36 * time.Hour

// Wallpaper is what the page displays for a given day.
type Wallpaper struct {
	URL       string `json:"url"`
	Source    Source `json:"source"`
	Copyright string `json:"copyright,omitempty"`
	Day       string `json:"day"`
}

// Fetcher is satisfied by *Client.
type Fetcher interface {
	FetchBing(ctx context.Context) (Image, error)
}

// Resolver picks the day's wallpaper: cached, then Bing, then a picsum image
// seeded by the date.
type Resolver struct {
	fetcher Fetcher
	cache   store.Cache
	ttl     time.Duration
	logger  logger.Logger
}

func NewResolver(f Fetcher, cache store.Cache, ttl time.Duration, log logger.Logger) *Resolver {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Resolver{fetcher: f, cache: cache, ttl: ttl, logger: log}
}

// FallbackURL is the deterministic image used when Bing is unavailable.
func FallbackURL(day string) string {
	return "https://picsum.photos/seed/" + day + "/1920/1080"
}

func cacheKey(day string) string {
	return "wallpaper:" + day
}

// Resolve returns the wallpaper for day. With refresh the cache is bypassed
// and overwritten. It never fails: when Bing is down the uncached fallback
// is returned so the next call retries.
func (r *Resolver) Resolve(ctx context.Context, day time.Time, refresh bool) Wallpaper {
	d := day.Format(DayFormat)

	if !refresh {
		if wp, ok := r.cached(ctx, d); ok {
			return wp
		}
	}

	img, err := r.fetcher.FetchBing(ctx)
	if err != nil {
		r.logger.Warn("bing wallpaper unavailable, using fallback",
			logger.String("day", d),
			logger.Error(err))
		return Wallpaper{URL: FallbackURL(d), Source: SourcePicsum, Day: d}
	}

	wp := Wallpaper{URL: img.URL, Source: SourceBing, Copyright: img.Copyright, Day: d}
	r.store(ctx, wp)
	return wp
}

func (r *Resolver) cached(ctx context.Context, day string) (Wallpaper, bool) {
	data, err := r.cache.GetCached(ctx, cacheKey(day))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			r.logger.Warn("failed to read cached wallpaper", logger.Error(err))
		}
		return Wallpaper{}, false
	}
	var wp Wallpaper
	if err := json.Unmarshal(data, &wp); err != nil || wp.URL == "" {
		return Wallpaper{}, false
	}
	return wp, true
}

func (r *Resolver) store(ctx context.Context, wp Wallpaper) {
	data, err := json.Marshal(wp)
	if err != nil {
		return
	}
	if err := r.cache.SetCached(ctx, cacheKey(wp.Day), data, r.ttl); err != nil {
		r.logger.Warn("failed to cache wallpaper", logger.Error(err))
	}
}
