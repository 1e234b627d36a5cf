// Command exrate prints the expected and harmonic-mean spread rate of a
// landscape of randomly arranged fuels.
//
//	exrate -samples 3 -depths 2 -lb 2 -fuel 10:0.5 -fuel 20:0.5
//
// Logs share stdout with the result line, so the default log level is warn.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/katalvlaran/randfuel/exrate"
	"github.com/katalvlaran/randfuel/internal/config"
	"github.com/katalvlaran/randfuel/internal/observability"
	"github.com/katalvlaran/randfuel/matrix"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes one computation and returns the process exit code: 0 on
// success or -h, 1 when the computation fails, 2 on bad configuration.
func run(args []string, stdout io.Writer) int {
	cfg, err := config.Load(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 2
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	reg := prometheus.NewRegistry()
	alloc := &matrix.CountingAllocator{Next: matrix.HeapAllocator{Limit: cfg.MaxCells}}

	opts := cfg.Options()
	opts.Logger = logger
	opts.Metrics = exrate.NewMetrics(reg)
	opts.Allocator = alloc

	res, err := exrate.ComputeSpread(cfg.Fuels, opts)
	if err != nil {
		logger.Error("computation failed", "kind", exrate.KindOf(err), "error", err)
		fmt.Fprintf(stdout, "expected=%g harmonic=%g\n", exrate.SentinelRate(err), exrate.SentinelRate(err))
		return 1
	}

	_, _, _, peak := alloc.Stats()
	logger.Info("memory", "peak_elements", peak, "peak_bytes", peak*8)
	if cfg.ShowMetrics {
		if err := observability.LogMetrics(logger, reg); err != nil {
			logger.Warn("gather metrics", "error", err)
		}
	}
	fmt.Fprintf(stdout, "expected=%g harmonic=%g\n", res.Expected, res.Harmonic)

	return 0
}
