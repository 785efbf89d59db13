// Package config provides CLI helpers.
package config

import (
	"errors"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// PrintConfig writes the config to the writer as YAML. The output uses
// the same keys the file layer reads, so it can be fed back via -config.
func PrintConfig(w io.Writer, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if w == nil {
		return errors.New("writer is required")
	}
	encoder := yaml.NewEncoder(w)
	if err := encoder.Encode(newConfigSnapshot(cfg)); err != nil {
		return err
	}
	return encoder.Close()
}

type durationText time.Duration

// MarshalYAML emits the Go duration string form, which the file layer
// parses back without losing sub-millisecond precision.
func (d durationText) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

type configSnapshot struct {
	MaxRequests       int          `yaml:"max_requests"`
	Window            durationText `yaml:"window"`
	Shards            int          `yaml:"shards"`
	Clients           int          `yaml:"clients"`
	RequestsPerClient int          `yaml:"requests_per_client"`
	MeanGap           durationText `yaml:"mean_gap"`
	Seed              int64        `yaml:"seed"`
	ReapInterval      durationText `yaml:"reap_interval"`
	LogLevel          string       `yaml:"log_level"`
	EnableTelemetry   bool         `yaml:"enable_telemetry"`
}

func newConfigSnapshot(cfg *Config) configSnapshot {
	snapshot := configSnapshot{}
	if cfg == nil {
		return snapshot
	}
	snapshot.MaxRequests = cfg.MaxRequests
	snapshot.Window = durationText(cfg.Window)
	snapshot.Shards = cfg.Shards
	snapshot.Clients = cfg.Clients
	snapshot.RequestsPerClient = cfg.RequestsPerClient
	snapshot.MeanGap = durationText(cfg.MeanGap)
	snapshot.Seed = cfg.Seed
	snapshot.ReapInterval = durationText(cfg.ReapInterval)
	snapshot.LogLevel = cfg.LogLevel
	snapshot.EnableTelemetry = cfg.EnableTelemetry
	return snapshot
}
