// Package config provides configuration loading.
package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadOptions controls config loading.
type LoadOptions struct {
	ConfigPath string
	DotenvPath string
	Args       []string
	Environ    []string
}

// Load builds configuration from defaults, file, env, and flags. Later
// layers win; env values include dotenv entries with real env on top.
func Load(opts LoadOptions) (*Config, error) {
	args := opts.Args
	if args == nil {
		args = os.Args[1:]
	}
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}

	flagOverrides, err := parseFlagOverrides(args)
	if err != nil {
		return nil, err
	}

	configPath := opts.ConfigPath
	if flagOverrides.ConfigPath != nil {
		configPath = *flagOverrides.ConfigPath
	}

	cfg := defaultConfig()
	if configPath != "" {
		fileOverrides, err := loadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		applyFileOverrides(cfg, fileOverrides)
	}
	if err := applyEnvOverrides(cfg, mergeDotenv(environ, opts.DotenvPath)); err != nil {
		return nil, err
	}
	applyFlagOverrides(cfg, flagOverrides)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		MaxRequests:       5,
		Window:            time.Second,
		Shards:            16,
		Clients:           8,
		RequestsPerClient: 1000,
		MeanGap:           100 * time.Millisecond,
		Seed:              1,
		LogLevel:          "info",
	}
}

// mergeDotenv prepends dotenv entries so real env entries win. A missing
// or unreadable dotenv file is skipped.
func mergeDotenv(environ []string, path string) []string {
	if path == "" {
		path = ".env"
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return environ
	}
	merged := make([]string, 0, len(values)+len(environ))
	for key, value := range values {
		merged = append(merged, key+"="+value)
	}
	return append(merged, environ...)
}

type fileOverrides struct {
	MaxRequests       *int           `yaml:"max_requests"`
	Window            *durationValue `yaml:"window"`
	Shards            *int           `yaml:"shards"`
	Clients           *int           `yaml:"clients"`
	RequestsPerClient *int           `yaml:"requests_per_client"`
	MeanGap           *durationValue `yaml:"mean_gap"`
	Seed              *int64         `yaml:"seed"`
	ReapInterval      *durationValue `yaml:"reap_interval"`
	LogLevel          *string        `yaml:"log_level"`
	EnableTelemetry   *bool          `yaml:"enable_telemetry"`
}

type durationValue struct {
	Value time.Duration
	Set   bool
}

// UnmarshalYAML accepts integer milliseconds or a Go duration string.
func (d *durationValue) UnmarshalYAML(node *yaml.Node) error {
	if d == nil || node == nil {
		return nil
	}
	var number int64
	if err := node.Decode(&number); err == nil {
		d.Value = time.Duration(number) * time.Millisecond
		d.Set = true
		return nil
	}
	var text string
	if err := node.Decode(&text); err == nil {
		if value, err := time.ParseDuration(text); err == nil {
			d.Value = value
			d.Set = true
			return nil
		}
		value, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return errors.New("invalid duration value")
		}
		d.Value = time.Duration(value) * time.Millisecond
		d.Set = true
		return nil
	}
	return errors.New("invalid duration value")
}

func loadConfigFile(path string) (*fileOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var overrides fileOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, err
	}
	return &overrides, nil
}

func applyFileOverrides(cfg *Config, overrides *fileOverrides) {
	if cfg == nil || overrides == nil {
		return
	}
	if overrides.MaxRequests != nil {
		cfg.MaxRequests = *overrides.MaxRequests
	}
	if overrides.Window != nil && overrides.Window.Set {
		cfg.Window = overrides.Window.Value
	}
	if overrides.Shards != nil {
		cfg.Shards = *overrides.Shards
	}
	if overrides.Clients != nil {
		cfg.Clients = *overrides.Clients
	}
	if overrides.RequestsPerClient != nil {
		cfg.RequestsPerClient = *overrides.RequestsPerClient
	}
	if overrides.MeanGap != nil && overrides.MeanGap.Set {
		cfg.MeanGap = overrides.MeanGap.Value
	}
	if overrides.Seed != nil {
		cfg.Seed = *overrides.Seed
	}
	if overrides.ReapInterval != nil && overrides.ReapInterval.Set {
		cfg.ReapInterval = overrides.ReapInterval.Value
	}
	if overrides.LogLevel != nil {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.EnableTelemetry != nil {
		cfg.EnableTelemetry = *overrides.EnableTelemetry
	}
}

type flagOverrides struct {
	ConfigPath        *string
	MaxRequests       *int
	WindowMS          *int
	Shards            *int
	Clients           *int
	RequestsPerClient *int
	MeanGapMS         *int
	Seed              *int64
	ReapIntervalMS    *int
	LogLevel          *string
	EnableTelemetry   *bool
}

func parseFlagOverrides(args []string) (flagOverrides, error) {
	fs := flag.NewFlagSet("ratelimit-sim", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	setFlagUsage(fs)

	configPath := fs.String("config", "", "config file path")
	maxRequests := fs.Int("max_requests", 0, "admission cap per window")
	windowMS := fs.Int("window_ms", 0, "window size in milliseconds")
	shards := fs.Int("shards", 0, "lock shard count")
	clients := fs.Int("clients", 0, "simulated client count")
	requestsPerClient := fs.Int("requests_per_client", 0, "requests per client")
	meanGapMS := fs.Int("mean_gap_ms", 0, "mean inter-request gap in milliseconds")
	seed := fs.Int64("seed", 0, "workload seed")
	reapIntervalMS := fs.Int("reap_interval_ms", 0, "reap interval in milliseconds, 0 disables")
	logLevel := fs.String("log_level", "", "log level")
	enableTelemetry := fs.Bool("enable_telemetry", false, "enable stdout telemetry")

	if err := fs.Parse(args); err != nil {
		return flagOverrides{}, errors.New("invalid flag values")
	}

	overrides := flagOverrides{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "config":
			overrides.ConfigPath = configPath
		case "max_requests":
			overrides.MaxRequests = maxRequests
		case "window_ms":
			overrides.WindowMS = windowMS
		case "shards":
			overrides.Shards = shards
		case "clients":
			overrides.Clients = clients
		case "requests_per_client":
			overrides.RequestsPerClient = requestsPerClient
		case "mean_gap_ms":
			overrides.MeanGapMS = meanGapMS
		case "seed":
			overrides.Seed = seed
		case "reap_interval_ms":
			overrides.ReapIntervalMS = reapIntervalMS
		case "log_level":
			overrides.LogLevel = logLevel
		case "enable_telemetry":
			overrides.EnableTelemetry = enableTelemetry
		}
	})
	return overrides, nil
}

func setFlagUsage(fs *flag.FlagSet) {
	if fs == nil {
		return
	}
	fs.Usage = func() {}
}

func applyFlagOverrides(cfg *Config, overrides flagOverrides) {
	if cfg == nil {
		return
	}
	if overrides.MaxRequests != nil {
		cfg.MaxRequests = *overrides.MaxRequests
	}
	if overrides.WindowMS != nil {
		cfg.Window = time.Duration(*overrides.WindowMS) * time.Millisecond
	}
	if overrides.Shards != nil {
		cfg.Shards = *overrides.Shards
	}
	if overrides.Clients != nil {
		cfg.Clients = *overrides.Clients
	}
	if overrides.RequestsPerClient != nil {
		cfg.RequestsPerClient = *overrides.RequestsPerClient
	}
	if overrides.MeanGapMS != nil {
		cfg.MeanGap = time.Duration(*overrides.MeanGapMS) * time.Millisecond
	}
	if overrides.Seed != nil {
		cfg.Seed = *overrides.Seed
	}
	if overrides.ReapIntervalMS != nil {
		cfg.ReapInterval = time.Duration(*overrides.ReapIntervalMS) * time.Millisecond
	}
	if overrides.LogLevel != nil {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.EnableTelemetry != nil {
		cfg.EnableTelemetry = *overrides.EnableTelemetry
	}
}
