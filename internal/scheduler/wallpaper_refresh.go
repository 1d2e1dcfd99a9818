package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/wallpaper"
)

// WallpaperResolver is satisfied by *wallpaper.Resolver.
type WallpaperResolver interface {
	Resolve(ctx context.Context, day time.Time, refresh bool) wallpaper.Wallpaper
}

// WallpaperRefresher keeps the daily wallpaper cached so page loads never
// wait for Bing. It writes the wallpaper cache only.
type WallpaperRefresher struct {
	resolver      WallpaperResolver
	logger        logger.Logger
	interval      time.Duration
	now           func() time.Time
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

func NewWallpaperRefresher(
	resolver WallpaperResolver,
	log logger.Logger,
	interval time.Duration,
	now func() time.Time,
	manualTrigger chan struct{},
) *WallpaperRefresher {
	if now == nil {
		now = time.Now
	}
	return &WallpaperRefresher{
		resolver:      resolver,
		logger:        log,
		interval:      interval,
		now:           now,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

func (wr *WallpaperRefresher) Start(ctx context.Context) error {
	if wr.interval <= 0 {
		return fmt.Errorf("invalid wallpaper refresh interval %s", wr.interval)
	}
	wr.Warm(ctx, false)

	go loop(ctx, wr.interval, wr.manualTrigger, wr.stopCh, func() {
		wr.Warm(ctx, false)
	}, func() {
		wr.logger.Info("manual wallpaper refresh triggered")
		wr.Warm(ctx, true)
	})
	return nil
}

func (wr *WallpaperRefresher) Stop() {
	close(wr.stopCh)
}

// Warm resolves today's wallpaper. With refresh the cached value is replaced.
func (wr *WallpaperRefresher) Warm(ctx context.Context, refresh bool) wallpaper.Wallpaper {
	wp := wr.resolver.Resolve(ctx, wr.now(), refresh)
	wr.logger.Debug("wallpaper warmed",
		logger.String("day", wp.Day),
		logger.String("source", string(wp.Source)))
	return wp
}
