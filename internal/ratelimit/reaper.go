// Package ratelimit provides log reclamation workers.
package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/SapphireFeiFei24/backend-coding-interview/internal/observability"
)

// Reap removes client logs with no live stamp at now and returns how many
// were removed. A log is only removed when the next Allow for that client
// would drop every stamp anyway, so admission decisions are unaffected.
func (l *Limiter) Reap(now time.Time) int {
	if l == nil || now.IsZero() {
		return 0
	}
	removed := 0
	for i := range l.shards {
		shard := &l.shards[i]
		shard.mu.Lock()
		for id, log := range shard.logs {
			if log.drained(now, l.window) {
				delete(shard.logs, id)
				removed++
			}
		}
		shard.mu.Unlock()
	}
	if removed > 0 {
		l.reaped.Add(int64(removed))
	}
	return removed
}

// Reaper periodically reaps idle client logs.
type Reaper struct {
	limiter  *Limiter
	interval time.Duration
	logger   observability.Logger
	now      func() time.Time
}

// NewReaper constructs a reaper that samples time.Now on each tick.
func NewReaper(limiter *Limiter, interval time.Duration, logger observability.Logger) *Reaper {
	return NewReaperWithClock(limiter, interval, logger, nil)
}

// NewReaperWithClock constructs a reaper with an explicit clock. Callers
// whose Allow timestamps do not track the wall clock must supply a clock
// on their own time base, or the reaper can remove logs those callers
// still count on. A nil now falls back to time.Now.
func NewReaperWithClock(limiter *Limiter, interval time.Duration, logger observability.Logger, now func() time.Time) *Reaper {
	return &Reaper{
		limiter:  limiter,
		interval: interval,
		logger:   logger,
		now:      now,
	}
}

// Start begins the reap loop. It returns when ctx is cancelled.
//
// The reaper's clock must share the time base callers pass to Allow; a
// reaper running ahead of the callers' clock could remove logs whose
// window is still live from the callers' point of view.
func (r *Reaper) Start(ctx context.Context) error {
	if r == nil || r.limiter == nil {
		return errors.New("reaper is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	interval := r.interval
	if interval <= 0 {
		interval = time.Minute
	}
	now := r.now
	if now == nil {
		now = time.Now
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			removed := r.limiter.Reap(now())
			if removed > 0 && r.logger != nil {
				r.logger.Info("reaped idle client logs", map[string]any{
					"removed":   removed,
					"remaining": r.limiter.Clients(),
				})
			}
		}
	}
}
