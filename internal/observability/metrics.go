// Package observability provides workload metrics.
package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SimMetrics records admission decisions made during a workload run.
type SimMetrics struct {
	decisions metric.Int64Counter
	duration  metric.Int64Histogram
	reaped    metric.Int64Counter
}

// NewSimMetrics builds the workload instruments on the meter.
func NewSimMetrics(meter metric.Meter) (*SimMetrics, error) {
	decisions, err := meter.Int64Counter("ratelimit_decisions_total",
		metric.WithDescription("admission decisions by result"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Int64Histogram("ratelimit_check_duration_us",
		metric.WithDescription("duration of a single admission check"),
		metric.WithUnit("us"))
	if err != nil {
		return nil, err
	}
	reaped, err := meter.Int64Counter("ratelimit_reaped_logs_total",
		metric.WithDescription("idle client logs removed by the reaper"))
	if err != nil {
		return nil, err
	}
	return &SimMetrics{decisions: decisions, duration: duration, reaped: reaped}, nil
}

// RecordDecision counts one admission decision and its duration.
func (m *SimMetrics) RecordDecision(ctx context.Context, allowed bool, micros int64) {
	if m == nil {
		return
	}
	result := "denied"
	if allowed {
		result = "allowed"
	}
	m.decisions.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	m.duration.Record(ctx, micros)
}

// RecordReaped counts client logs removed by reaping.
func (m *SimMetrics) RecordReaped(ctx context.Context, removed int64) {
	if m == nil || removed <= 0 {
		return
	}
	m.reaped.Add(ctx, removed)
}
