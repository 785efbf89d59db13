// Package config provides environment config overrides.
package config

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

func applyEnvOverrides(cfg *Config, environ []string) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	values := envMap(environ)
	if value, ok := values["RATELIMIT_MAX_REQUESTS"]; ok {
		parsed, err := parseIntEnv("RATELIMIT_MAX_REQUESTS", value)
		if err != nil {
			return err
		}
		cfg.MaxRequests = int(parsed)
	}
	if value, ok := values["RATELIMIT_WINDOW_MS"]; ok {
		parsed, err := parseIntEnv("RATELIMIT_WINDOW_MS", value)
		if err != nil {
			return err
		}
		cfg.Window = time.Duration(parsed) * time.Millisecond
	}
	if value, ok := values["RATELIMIT_SHARDS"]; ok {
		parsed, err := parseIntEnv("RATELIMIT_SHARDS", value)
		if err != nil {
			return err
		}
		cfg.Shards = int(parsed)
	}
	if value, ok := values["RATELIMIT_CLIENTS"]; ok {
		parsed, err := parseIntEnv("RATELIMIT_CLIENTS", value)
		if err != nil {
			return err
		}
		cfg.Clients = int(parsed)
	}
	if value, ok := values["RATELIMIT_REQUESTS_PER_CLIENT"]; ok {
		parsed, err := parseIntEnv("RATELIMIT_REQUESTS_PER_CLIENT", value)
		if err != nil {
			return err
		}
		cfg.RequestsPerClient = int(parsed)
	}
	if value, ok := values["RATELIMIT_MEAN_GAP_MS"]; ok {
		parsed, err := parseIntEnv("RATELIMIT_MEAN_GAP_MS", value)
		if err != nil {
			return err
		}
		cfg.MeanGap = time.Duration(parsed) * time.Millisecond
	}
	if value, ok := values["RATELIMIT_SEED"]; ok {
		parsed, err := parseIntEnv("RATELIMIT_SEED", value)
		if err != nil {
			return err
		}
		cfg.Seed = parsed
	}
	if value, ok := values["RATELIMIT_REAP_INTERVAL_MS"]; ok {
		parsed, err := parseIntEnv("RATELIMIT_REAP_INTERVAL_MS", value)
		if err != nil {
			return err
		}
		cfg.ReapInterval = time.Duration(parsed) * time.Millisecond
	}
	if value, ok := values["RATELIMIT_LOG_LEVEL"]; ok {
		cfg.LogLevel = value
	}
	if value, ok := values["RATELIMIT_ENABLE_TELEMETRY"]; ok {
		parsed, err := parseBoolEnv("RATELIMIT_ENABLE_TELEMETRY", value)
		if err != nil {
			return err
		}
		cfg.EnableTelemetry = parsed
	}
	return nil
}

func envMap(environ []string) map[string]string {
	values := make(map[string]string)
	for _, entry := range environ {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			continue
		}
		values[key] = parts[1]
	}
	return values
}

func parseBoolEnv(name, value string) (bool, error) {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, errors.New("invalid env value for " + name)
	}
	return parsed, nil
}

func parseIntEnv(name, value string) (int64, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, errors.New("invalid env value for " + name)
	}
	return parsed, nil
}
