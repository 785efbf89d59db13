// Package sim provides workload generation.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type clientResult struct {
	requests int64
	allowed  int64
	denied   int64
}

// runClient replays one client's request stream. Timestamps advance on
// a per-client virtual clock seeded from the run seed plus the client
// index, so identical configurations replay identical streams.
func (r *Runner) runClient(ctx context.Context, index int) clientResult {
	clientID := fmt.Sprintf("client-%03d", index)
	rng := rand.New(rand.NewSource(r.cfg.Seed + int64(index)))
	now := r.base

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "replay client")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", r.runID),
		attribute.String("client.id", clientID),
	)

	var result clientResult
	for i := 0; i < r.cfg.RequestsPerClient; i++ {
		select {
		case <-ctx.Done():
			return result
		default:
		}

		now = now.Add(nextGap(rng, r.cfg.MeanGap))
		r.clocks[index].Store(now.UnixNano())
		begin := time.Now()
		allowed, err := r.limiter.Allow(clientID, now)
		if err != nil {
			r.logger.Error("allow failed", map[string]any{
				"run_id": r.runID,
				"client": clientID,
				"error":  err.Error(),
			})
			return result
		}
		r.metrics.RecordDecision(ctx, allowed, time.Since(begin).Microseconds())
		result.requests++
		if allowed {
			result.allowed++
		} else {
			result.denied++
		}
	}
	return result
}

// minVirtualNow returns the slowest client's published virtual clock.
// Every timestamp a client will still pass to Allow is at or after its
// published value, so reaping at the minimum never removes a log a later
// request counts on.
func (r *Runner) minVirtualNow() time.Time {
	if len(r.clocks) == 0 {
		return r.base
	}
	min := r.clocks[0].Load()
	for i := 1; i < len(r.clocks); i++ {
		if v := r.clocks[i].Load(); v < min {
			min = v
		}
	}
	return time.Unix(0, min)
}

// nextGap draws an exponentially distributed gap with the given mean. A
// zero mean collapses the stream onto a single instant.
func nextGap(rng *rand.Rand, mean time.Duration) time.Duration {
	if mean <= 0 {
		return 0
	}
	return time.Duration(rng.ExpFloat64() * float64(mean))
}
