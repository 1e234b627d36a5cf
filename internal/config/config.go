// Package config loads the exrate command settings from environment variables
// overridden by command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/katalvlaran/randfuel/exrate"
	"github.com/katalvlaran/randfuel/fuel"
)

// Config holds all command settings.
type Config struct {
	Samples         int
	Depths          int
	LengthToBreadth float64
	Workers         int
	Extensions      int
	LessIgnitions   int
	MaxCells        int
	LogLevel        string
	LogFormat       string
	ShowMetrics     bool

	Fuels []fuel.Type
}

// Options converts the settings into engine options.
func (c *Config) Options() exrate.Options {
	o := exrate.DefaultOptions()
	o.Samples = c.Samples
	o.Depths = c.Depths
	o.LengthToBreadth = c.LengthToBreadth
	o.Workers = c.Workers
	o.Extensions = c.Extensions
	o.LessIgnitions = c.LessIgnitions
	o.MaxCells = c.MaxCells

	return o
}

// fuelList collects repeated -fuel rate:fraction flags.
type fuelList []fuel.Type

func (f *fuelList) String() string {
	parts := make([]string, len(*f))
	for i, t := range *f {
		parts[i] = fmt.Sprintf("%g:%g", t.Rate, t.Fraction)
	}

	return strings.Join(parts, ",")
}

func (f *fuelList) Set(s string) error {
	rate, frac, ok := strings.Cut(s, ":")
	if !ok {
		return fmt.Errorf("fuel %q: want rate:fraction", s)
	}
	r, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
	if err != nil {
		return fmt.Errorf("fuel %q rate: %w", s, err)
	}
	fr, err := strconv.ParseFloat(strings.TrimSpace(frac), 64)
	if err != nil {
		return fmt.Errorf("fuel %q fraction: %w", s, err)
	}
	*f = append(*f, fuel.Type{Rate: r, Fraction: fr})

	return nil
}

// Load reads RANDFUEL_* environment variables, applying defaults where unset,
// then parses args (without the program name) on top of them. A -h or -help
// argument returns flag.ErrHelp after printing usage.
func Load(args []string) (*Config, error) {
	samples, err := envInt("RANDFUEL_SAMPLES", 1)
	if err != nil {
		return nil, err
	}
	depths, err := envInt("RANDFUEL_DEPTHS", 1)
	if err != nil {
		return nil, err
	}
	workers, err := envInt("RANDFUEL_WORKERS", runtime.NumCPU())
	if err != nil {
		return nil, err
	}
	extensions, err := envInt("RANDFUEL_EXTENSIONS", 0)
	if err != nil {
		return nil, err
	}
	less, err := envInt("RANDFUEL_LESS_IGNITIONS", 0)
	if err != nil {
		return nil, err
	}
	maxCells, err := envInt("RANDFUEL_MAX_CELLS", exrate.DefaultMaxCells)
	if err != nil {
		return nil, err
	}
	lb, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("RANDFUEL_LB", "1"), 64)
	if err != nil {
		return nil, errors.New("invalid RANDFUEL_LB")
	}

	cfg := &Config{
		LogLevel:  sharedcfg.EnvOrDefault("RANDFUEL_LOG_LEVEL", "warn"),
		LogFormat: sharedcfg.EnvOrDefault("RANDFUEL_LOG_FORMAT", "text"),
	}
	var fuels fuelList

	fs := flag.NewFlagSet("exrate", flag.ContinueOnError)
	fs.IntVar(&cfg.Samples, "samples", samples, "block columns, 1-50")
	fs.IntVar(&cfg.Depths, "depths", depths, "block rows, 1-50")
	fs.Float64Var(&cfg.LengthToBreadth, "lb", lb, "fire length-to-breadth ratio, >= 1")
	fs.IntVar(&cfg.Workers, "workers", workers, "solver goroutines")
	fs.IntVar(&cfg.Extensions, "extensions", extensions, "lateral extension levels")
	fs.IntVar(&cfg.LessIgnitions, "less-ignitions", less, "edge columns excluded from ignition")
	fs.IntVar(&cfg.MaxCells, "max-cells", maxCells, "largest single allocation in float64 elements, 0 = unlimited")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
	fs.BoolVar(&cfg.ShowMetrics, "metrics", false, "log collected metrics after the run")
	fs.Var(&fuels, "fuel", "fuel type as rate:fraction; repeat for each type")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Fuels = fuels

	if len(cfg.Fuels) == 0 {
		return nil, errors.New("at least one -fuel is required")
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}

	return cfg, nil
}

func envInt(key string, def int) (int, error) {
	n, err := strconv.Atoi(sharedcfg.EnvOrDefault(key, strconv.Itoa(def)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}

	return n, nil
}
