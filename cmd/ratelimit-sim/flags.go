package main

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	if w == nil {
		return
	}
	fmt.Fprintln(w, "Usage")
	fmt.Fprintln(w, "  ratelimit-sim [print_config] [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags")
	fmt.Fprintln(w, "  config string config file path")
	fmt.Fprintln(w, "  max_requests int admission cap per window")
	fmt.Fprintln(w, "  window_ms int window size in milliseconds")
	fmt.Fprintln(w, "  shards int lock shard count")
	fmt.Fprintln(w, "  clients int simulated client count")
	fmt.Fprintln(w, "  requests_per_client int requests per client")
	fmt.Fprintln(w, "  mean_gap_ms int mean inter-request gap in milliseconds")
	fmt.Fprintln(w, "  seed int workload seed")
	fmt.Fprintln(w, "  reap_interval_ms int reap interval in milliseconds, 0 disables")
	fmt.Fprintln(w, "  log_level string log level")
	fmt.Fprintln(w, "  enable_telemetry bool enable stdout telemetry")
}
