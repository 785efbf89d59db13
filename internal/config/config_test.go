package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SapphireFeiFei24/backend-coding-interview/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(config.LoadOptions{Args: []string{}, Environ: []string{}})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaxRequests != 5 {
		t.Fatalf("expected default max requests 5 got %d", cfg.MaxRequests)
	}
	if cfg.Window != time.Second {
		t.Fatalf("expected default window 1s got %v", cfg.Window)
	}
	if cfg.Shards != 16 {
		t.Fatalf("expected default shards 16 got %d", cfg.Shards)
	}
	if cfg.Clients != 8 {
		t.Fatalf("expected default clients 8 got %d", cfg.Clients)
	}
	if cfg.RequestsPerClient != 1000 {
		t.Fatalf("expected default requests per client 1000 got %d", cfg.RequestsPerClient)
	}
	if cfg.MeanGap != 100*time.Millisecond {
		t.Fatalf("expected default mean gap 100ms got %v", cfg.MeanGap)
	}
	if cfg.Seed != 1 {
		t.Fatalf("expected default seed 1 got %d", cfg.Seed)
	}
	if cfg.ReapInterval != 0 {
		t.Fatalf("expected reaper disabled by default got %v", cfg.ReapInterval)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info got %q", cfg.LogLevel)
	}
	if cfg.EnableTelemetry {
		t.Fatalf("expected telemetry disabled by default")
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "max_requests: 9\nwindow: 250ms\nclients: 3\nmean_gap: 40\nlog_level: debug\nenable_telemetry: true\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	cfg, err := config.Load(config.LoadOptions{ConfigPath: path, Args: []string{}, Environ: []string{}})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaxRequests != 9 {
		t.Fatalf("expected max requests 9 got %d", cfg.MaxRequests)
	}
	if cfg.Window != 250*time.Millisecond {
		t.Fatalf("expected window 250ms got %v", cfg.Window)
	}
	if cfg.Clients != 3 {
		t.Fatalf("expected clients 3 got %d", cfg.Clients)
	}
	if cfg.MeanGap != 40*time.Millisecond {
		t.Fatalf("expected mean gap 40ms got %v", cfg.MeanGap)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level debug got %q", cfg.LogLevel)
	}
	if !cfg.EnableTelemetry {
		t.Fatalf("expected telemetry enabled")
	}
	if cfg.RequestsPerClient != 1000 {
		t.Fatalf("expected untouched default got %d", cfg.RequestsPerClient)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Parallel()

	environ := []string{
		"RATELIMIT_MAX_REQUESTS=12",
		"RATELIMIT_WINDOW_MS=1500",
		"RATELIMIT_SEED=99",
		"RATELIMIT_ENABLE_TELEMETRY=true",
	}
	cfg, err := config.Load(config.LoadOptions{Args: []string{}, Environ: environ})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaxRequests != 12 {
		t.Fatalf("expected max requests 12 got %d", cfg.MaxRequests)
	}
	if cfg.Window != 1500*time.Millisecond {
		t.Fatalf("expected window 1.5s got %v", cfg.Window)
	}
	if cfg.Seed != 99 {
		t.Fatalf("expected seed 99 got %d", cfg.Seed)
	}
	if !cfg.EnableTelemetry {
		t.Fatalf("expected telemetry enabled")
	}
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Parallel()

	_, err := config.Load(config.LoadOptions{Args: []string{}, Environ: []string{"RATELIMIT_CLIENTS=lots"}})
	if err == nil {
		t.Fatalf("expected error for invalid env value")
	}
}

func TestLoad_DotenvMergesUnderEnv(t *testing.T) {
	t.Parallel()

	dotenv := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(dotenv, []byte("RATELIMIT_CLIENTS=4\nRATELIMIT_SEED=7\n"), 0o600); err != nil {
		t.Fatalf("write dotenv failed: %v", err)
	}

	cfg, err := config.Load(config.LoadOptions{
		DotenvPath: dotenv,
		Args:       []string{},
		Environ:    []string{"RATELIMIT_SEED=21"},
	})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Clients != 4 {
		t.Fatalf("expected clients 4 from dotenv got %d", cfg.Clients)
	}
	if cfg.Seed != 21 {
		t.Fatalf("expected env to win over dotenv got %d", cfg.Seed)
	}
}

func TestLoad_FlagsWinOverFileAndEnv(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("max_requests: 9\n"), 0o600); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	cfg, err := config.Load(config.LoadOptions{
		Args:    []string{"-config", path, "-max_requests", "3", "-window_ms", "2000"},
		Environ: []string{"RATELIMIT_MAX_REQUESTS=12"},
	})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.MaxRequests != 3 {
		t.Fatalf("expected flag value 3 got %d", cfg.MaxRequests)
	}
	if cfg.Window != 2*time.Second {
		t.Fatalf("expected window 2s got %v", cfg.Window)
	}
}

func TestLoad_InvalidFlag(t *testing.T) {
	t.Parallel()

	_, err := config.Load(config.LoadOptions{Args: []string{"-clients", "many"}, Environ: []string{}})
	if err == nil {
		t.Fatalf("expected error for invalid flag value")
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.yaml")
	_, err := config.Load(config.LoadOptions{ConfigPath: path, Args: []string{}, Environ: []string{}})
	if err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Clients: 1, RequestsPerClient: 1}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config got %v", err)
	}

	if err := (&config.Config{RequestsPerClient: 1}).Validate(); err == nil {
		t.Fatalf("expected error for missing clients")
	}
	if err := (&config.Config{Clients: 1}).Validate(); err == nil {
		t.Fatalf("expected error for missing requests per client")
	}
	if err := (&config.Config{Clients: 1, RequestsPerClient: 1, MeanGap: -time.Second}).Validate(); err == nil {
		t.Fatalf("expected error for negative mean gap")
	}
	if err := (&config.Config{Clients: 1, RequestsPerClient: 1, ReapInterval: -time.Second}).Validate(); err == nil {
		t.Fatalf("expected error for negative reap interval")
	}

	var nilCfg *config.Config
	if err := nilCfg.Validate(); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestPrintConfig_RoundTrips(t *testing.T) {
	t.Parallel()

	original, err := config.Load(config.LoadOptions{
		Args:    []string{"-max_requests", "7", "-window_ms", "750", "-log_level", "warn", "-enable_telemetry"},
		Environ: []string{},
	})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	var buf bytes.Buffer
	if err := config.PrintConfig(&buf, original); err != nil {
		t.Fatalf("print config failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "printed.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write printed config failed: %v", err)
	}

	reloaded, err := config.Load(config.LoadOptions{ConfigPath: path, Args: []string{}, Environ: []string{}})
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if *reloaded != *original {
		t.Fatalf("expected round trip, got %+v want %+v", reloaded, original)
	}
}

func TestPrintConfig_KeepsSubMillisecondDurations(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("window: 250us\nmean_gap: 1500us\n"), 0o600); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	original, err := config.Load(config.LoadOptions{ConfigPath: path, Args: []string{}, Environ: []string{}})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if original.Window != 250*time.Microsecond {
		t.Fatalf("expected window 250us got %v", original.Window)
	}

	var buf bytes.Buffer
	if err := config.PrintConfig(&buf, original); err != nil {
		t.Fatalf("print config failed: %v", err)
	}

	printed := filepath.Join(dir, "printed.yaml")
	if err := os.WriteFile(printed, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write printed config failed: %v", err)
	}

	reloaded, err := config.Load(config.LoadOptions{ConfigPath: printed, Args: []string{}, Environ: []string{}})
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Window != 250*time.Microsecond {
		t.Fatalf("expected printed window to reload as 250us got %v", reloaded.Window)
	}
	if *reloaded != *original {
		t.Fatalf("expected round trip, got %+v want %+v", reloaded, original)
	}
}
