// Package config provides simulator configuration.
package config

import (
	"errors"
	"time"
)

// Config controls a simulator run.
type Config struct {
	// Limiter parameters.
	MaxRequests int
	Window      time.Duration
	Shards      int

	// Workload shape.
	Clients           int
	RequestsPerClient int
	MeanGap           time.Duration
	Seed              int64

	// ReapInterval enables the background reaper when positive.
	ReapInterval time.Duration

	LogLevel        string
	EnableTelemetry bool
}

// Validate reports the first workload-level configuration problem. The
// limiter parameters are validated by the limiter constructor.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if cfg.Clients <= 0 {
		return errors.New("clients must be positive")
	}
	if cfg.RequestsPerClient <= 0 {
		return errors.New("requests per client must be positive")
	}
	if cfg.MeanGap < 0 {
		return errors.New("mean gap must not be negative")
	}
	if cfg.ReapInterval < 0 {
		return errors.New("reap interval must not be negative")
	}
	return nil
}
