package game

import (
	"context"
	"time"
)

// RunClock calls tick every interval until ctx is done. It blocks, so callers
// usually run it in its own goroutine.
func RunClock(ctx context.Context, interval time.Duration, tick func()) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			tick()
		}
	}
}
