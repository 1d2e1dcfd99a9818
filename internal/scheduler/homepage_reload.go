package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/dawnpage/internal/edit"
	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/session"
)

// SeedSource produces links to import. homepage.Source implements it.
type SeedSource interface {
	Seed() (edit.Seed, error)
}

// ConfigUpdater is the part of *session.Session the reloader needs.
type ConfigUpdater interface {
	Update(ctx context.Context, fn session.Updater) (schema.AppConfig, error)
}

// HomepageReloader periodically merges the homepage files into the live
// configuration. Merges only add, so user edits to imported links survive
// while an imported link the user deleted comes back on the next run.
type HomepageReloader struct {
	source        SeedSource
	session       ConfigUpdater
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

func NewHomepageReloader(
	source SeedSource,
	sess ConfigUpdater,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *HomepageReloader {
	return &HomepageReloader{
		source:        source,
		session:       sess,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start merges once, then keeps merging on every tick or manual trigger.
// A failing first merge is logged rather than returned: the page works
// without the import.
func (hr *HomepageReloader) Start(ctx context.Context) error {
	if hr.interval <= 0 {
		return fmt.Errorf("invalid homepage reload interval %s", hr.interval)
	}
	if _, err := hr.Reload(ctx); err != nil {
		hr.logger.Warn("initial homepage import failed", logger.Error(err))
	}

	go loop(ctx, hr.interval, hr.manualTrigger, hr.stopCh, func() {
		if _, err := hr.Reload(ctx); err != nil {
			hr.logger.Error("failed to import homepage links", logger.Error(err))
		}
	}, func() {
		hr.logger.Info("manual homepage import triggered")
	})
	return nil
}

func (hr *HomepageReloader) Stop() {
	close(hr.stopCh)
}

// Reload loads the seed and merges it through the session. A partially
// loaded seed is still merged; its load error is returned afterwards.
func (hr *HomepageReloader) Reload(ctx context.Context) (edit.MergeResult, error) {
	seed, loadErr := hr.source.Seed()
	if len(seed.Sections) == 0 && len(seed.Items) == 0 {
		if loadErr != nil {
			return edit.MergeResult{}, fmt.Errorf("failed to load homepage seed: %w", loadErr)
		}
		hr.logger.Debug("homepage seed is empty")
		return edit.MergeResult{}, nil
	}

	var res edit.MergeResult
	_, err := hr.session.Update(ctx, edit.MergeSeed(seed, &res))
	switch {
	case errors.Is(err, edit.ErrNoChange):
		hr.logger.Debug("homepage seed already merged",
			logger.Int("links", len(seed.Items)))
	case err != nil:
		return edit.MergeResult{}, fmt.Errorf("failed to merge homepage seed: %w", err)
	default:
		hr.logger.Info("imported homepage links",
			logger.Int("sections", res.Sections),
			logger.Int("links", res.Items))
	}

	if loadErr != nil {
		return res, fmt.Errorf("homepage seed partially loaded: %w", loadErr)
	}
	return res, nil
}
