// Package sim replays synthetic workloads against a limiter.
package sim

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/SapphireFeiFei24/backend-coding-interview/internal/config"
	"github.com/SapphireFeiFei24/backend-coding-interview/internal/observability"
	"github.com/SapphireFeiFei24/backend-coding-interview/internal/ratelimit"
)

// instrumentationName labels the meters and tracers this package emits.
const instrumentationName = "ratelimit-sim"

// Runner drives a configured workload against a shared limiter.
type Runner struct {
	cfg     *config.Config
	limiter *ratelimit.Limiter
	reaper  *ratelimit.Reaper
	logger  observability.Logger
	metrics *observability.SimMetrics
	runID   string
	base    time.Time

	// clocks holds each client's current virtual timestamp in unix
	// nanoseconds. The reaper runs on the minimum across clients so it
	// never gets ahead of a timestamp still in use.
	clocks []atomic.Int64
}

// Report summarizes a completed run.
type Report struct {
	RunID    string
	Clients  int
	Requests int64
	Allowed  int64
	Denied   int64
	Elapsed  time.Duration
	Stats    ratelimit.Stats
}

// NewRunner validates configuration and prepares a run.
func NewRunner(cfg *config.Config, logger observability.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = observability.NopLogger{}
	}

	limiter, err := ratelimit.NewWithPolicy(cfg.MaxRequests, cfg.Window, ratelimit.Policy{Shards: cfg.Shards})
	if err != nil {
		return nil, err
	}
	metrics, err := observability.NewSimMetrics(otel.Meter(instrumentationName))
	if err != nil {
		return nil, err
	}

	runner := &Runner{
		cfg:     cfg,
		limiter: limiter,
		logger:  logger,
		metrics: metrics,
		runID:   uuid.NewString(),
		base:    time.Now(),
		clocks:  make([]atomic.Int64, cfg.Clients),
	}
	for i := range runner.clocks {
		runner.clocks[i].Store(runner.base.UnixNano())
	}
	if cfg.ReapInterval > 0 {
		runner.reaper = ratelimit.NewReaperWithClock(limiter, cfg.ReapInterval, logger, runner.minVirtualNow)
	}
	return runner, nil
}

// Run replays the workload and blocks until every client finishes or
// ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if r == nil || r.limiter == nil {
		return nil, errors.New("runner is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	runCtx, span := otel.Tracer(instrumentationName).Start(runCtx, "run workload")
	defer span.End()
	span.SetAttributes(
		attribute.String("run.id", r.runID),
		attribute.Int("run.clients", r.cfg.Clients),
	)

	var background sync.WaitGroup
	if r.reaper != nil {
		background.Add(1)
		go func() {
			defer background.Done()
			_ = r.reaper.Start(runCtx)
		}()
	}

	r.logger.Info("run started", map[string]any{
		"run_id":              r.runID,
		"clients":             r.cfg.Clients,
		"requests_per_client": r.cfg.RequestsPerClient,
	})

	started := time.Now()
	results := make([]clientResult, r.cfg.Clients)
	var workers sync.WaitGroup
	for i := 0; i < r.cfg.Clients; i++ {
		workers.Add(1)
		go func(index int) {
			defer workers.Done()
			results[index] = r.runClient(runCtx, index)
		}(i)
	}
	workers.Wait()
	cancel()
	background.Wait()

	report := &Report{
		RunID:   r.runID,
		Clients: r.cfg.Clients,
		Elapsed: time.Since(started),
	}
	for _, result := range results {
		report.Requests += result.requests
		report.Allowed += result.allowed
		report.Denied += result.denied
	}
	report.Stats = r.limiter.StatsSnapshot()
	span.SetAttributes(
		attribute.Int64("run.allowed", report.Allowed),
		attribute.Int64("run.denied", report.Denied),
	)
	r.metrics.RecordReaped(ctx, report.Stats.Reaped)
	return report, nil
}
