// Command ratelimit-sim replays a synthetic workload through the limiter.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SapphireFeiFei24/backend-coding-interview/internal/config"
	"github.com/SapphireFeiFei24/backend-coding-interview/internal/observability"
	"github.com/SapphireFeiFei24/backend-coding-interview/internal/sim"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args[1:]
	printOnly := false
	if len(args) > 0 && args[0] == "print_config" {
		printOnly = true
		args = args[1:]
	}

	cfg, err := config.Load(config.LoadOptions{Args: args})
	if err != nil {
		printUsage(os.Stderr)
		log.Fatalf("failed to load config: %v", err)
	}

	if printOnly {
		if err := config.PrintConfig(os.Stdout, cfg); err != nil {
			log.Fatalf("failed to print config: %v", err)
		}
		return
	}

	logger := observability.NewLogrusLogger(os.Stdout, cfg.LogLevel)

	if cfg.EnableTelemetry {
		shutdown, err := observability.InitTelemetry(ctx, "ratelimit-sim")
		if err != nil {
			log.Fatalf("failed to init telemetry: %v", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Printf("failed to shutdown telemetry: %v", err)
			}
		}()
	}

	runner, err := sim.NewRunner(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create runner: %v", err)
	}

	report, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("failed to run workload: %v", err)
	}

	logger.Info("run finished", map[string]any{
		"run_id":          report.RunID,
		"clients":         report.Clients,
		"requests":        report.Requests,
		"allowed":         report.Allowed,
		"denied":          report.Denied,
		"elapsed_ms":      report.Elapsed.Milliseconds(),
		"expired":         report.Stats.Expired,
		"reaped":          report.Stats.Reaped,
		"clients_tracked": report.Stats.Clients,
	})
}
