package scheduler

import (
	"context"
	"time"
)

// loop calls run on every tick and on every manual trigger until stop is
// closed or ctx ends. onTrigger runs before run for manual triggers.
func loop(ctx context.Context, interval time.Duration, trigger <-chan struct{}, stop <-chan struct{}, run func(), onTrigger func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			run()
		case <-trigger:
			if onTrigger != nil {
				onTrigger()
			}
			run()
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Trigger requests a run without blocking. A pending request absorbs new
// ones, so trigger channels should have a buffer of one.
func Trigger(ch chan<- struct{}) bool {
	if ch == nil {
		return false
	}
	select {
	case ch <- struct{}{}:
		return true
	default:
		return false
	}
}
