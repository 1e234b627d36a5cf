package exrate

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/randfuel/combo"
	"github.com/katalvlaran/randfuel/extension"
	"github.com/katalvlaran/randfuel/fuel"
	"github.com/katalvlaran/randfuel/matrix"
	"github.com/katalvlaran/randfuel/spread"
)

// stallTolerance is the largest stalled residual left by extension reduction
// that still allows a finite harmonic mean. Base-only stalled mass is exact
// and admits no tolerance.
const stallTolerance = 1e-12

// Result is the outcome of ComputeSpread. Rates are absolute, in the units of
// the fuel rates.
type Result struct {
	Expected float64 // probability-weighted average spread rate
	Harmonic float64 // harmonic-mean spread rate; 0 when any arrangement cannot spread
	MaxRate  float64 // fastest fuel rate, the unit of relative rates

	Combinations        int     // combinations solved, base and extensions
	Levels              int     // extension levels used
	AbsorbedProbability float64 // probability moved to faster extended arrangements
	StalledProbability  float64 // probability of arrangements with no spread path

	Elapsed time.Duration
}

// ComputeSpread returns the expected and harmonic-mean spread rates of a
// landscape whose fuels are arranged at random in the given proportions.
//
// Stage 1 (Validate): block size first, without allocating; then options and
// the fuel table. All fuels at rate 0 yield a zero Result.
// Stage 2 (Generate): every fuel assignment of the Samples×Depths block.
// Stage 3 (Solve): maximum spread rate per combination on Workers goroutines.
// Stage 4 (Reduce): probability-weighted sums over the base block, or over
// extension chain runs per base combination when Extensions > 0.
//
// Errors:
//   - ErrInvalidBlockSize, ErrInvalidInput, ErrAllocation (see KindOf).
//
// Complexity: O(F^(S·D) · S·D · ignitions) for the base block plus the
// extension cost documented in package extension.
func ComputeSpread(types []fuel.Type, opts Options) (res Result, err error) {
	defer func() { opts.Metrics.outcome(KindOf(err)) }()

	if err = opts.Validate(); err != nil {
		return Result{}, err
	}
	log := opts.logger()
	clock := opts.clock()
	alloc := opts.allocator()
	start := clock.Now()

	table, err := fuel.NewTable(types)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	shape, err := spread.NewShape(opts.LengthToBreadth)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if table.MaxRate() == 0 {
		log.Info("no fuel can spread", "fuels", table.Len())
		return Result{}, nil
	}
	opts.Metrics.workers(opts.Workers)

	base, err := combo.Generate(table, opts.Samples, opts.Depths, alloc)
	if err != nil {
		return Result{}, classify(err)
	}
	defer base.Free()
	log.Debug("base combinations generated", "combinations", base.Count(), "samples", opts.Samples, "depths", opts.Depths)

	blk, err := matrix.NewBlock(alloc, base.Count())
	if err != nil {
		return Result{}, classify(err)
	}
	defer blk.Free()
	rates, err := blk.Vector(base.Count())
	if err != nil {
		return Result{}, classify(err)
	}

	solver, err := spread.NewSolver(spread.Config{
		Shape:         shape,
		Width:         opts.Samples,
		Depth:         opts.Depths,
		LessIgnitions: opts.LessIgnitions,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	phase := clock.Now()
	if err = spread.Solve(solver, base.Rate, rates, opts.Workers); err != nil {
		return Result{}, fmt.Errorf("solve base: %w", err)
	}
	opts.Metrics.solved(PhaseBase, base.Count(), clock.Since(phase))
	log.Debug("base block solved", "workers", opts.Workers, "elapsed", clock.Since(phase))

	var acc extension.Contribution
	if opts.Extensions == 0 {
		for i := 0; i < base.Count(); i++ {
			p, err := base.Joint(i)
			if err != nil {
				return Result{}, classify(err)
			}
			acc.Hold(p, rates[i])
		}
	} else if acc, err = extend(table, base, rates, shape, opts); err != nil {
		return Result{}, err
	}

	tol := 0.0
	if opts.Extensions > 0 {
		tol = stallTolerance
	}
	res = finish(table.MaxRate(), acc, tol)
	res.Combinations = base.Count() + acc.Solved
	res.Levels = opts.Extensions
	res.Elapsed = clock.Since(start)
	log.Info("spread computed",
		"samples", opts.Samples,
		"depths", opts.Depths,
		"extensions", opts.Extensions,
		"combinations", res.Combinations,
		"expected", res.Expected,
		"harmonic", res.Harmonic,
		"elapsed", res.Elapsed,
	)

	return res, nil
}

// extend runs the extension chain once per base combination, strictly one
// run at a time.
func extend(table *fuel.Table, base *combo.Matrix, rates []float64, shape spread.Shape, opts Options) (extension.Contribution, error) {
	var acc extension.Contribution
	ch, err := extension.NewChain(extension.Config{
		Table:         table,
		Base:          base,
		Shape:         shape,
		Levels:        opts.Extensions,
		LessIgnitions: opts.LessIgnitions,
		Workers:       opts.Workers,
		Allocator:     opts.allocator(),
	})
	if err != nil {
		return acc, classify(err)
	}
	defer ch.Close()

	clock := opts.clock()
	phase := clock.Now()
	for i := 0; i < base.Count(); i++ {
		c, err := ch.Run(i, rates[i])
		if err != nil {
			return extension.Contribution{}, classify(err)
		}
		acc.Add(c)
	}
	opts.Metrics.runs(base.Count())
	opts.Metrics.solved(PhaseExtension, acc.Solved, clock.Since(phase))
	opts.logger().Debug("extension chain finished",
		"levels", opts.Extensions,
		"combinations", acc.Solved,
		"absorbed", acc.Absorbed,
	)

	return acc, nil
}

// finish converts relative accumulators into absolute rates. Any stalled mass
// above tol forces the harmonic mean to 0.
func finish(maxRate float64, acc extension.Contribution, tol float64) Result {
	res := Result{
		Expected:            maxRate * acc.Average,
		MaxRate:             maxRate,
		AbsorbedProbability: acc.Absorbed,
		StalledProbability:  acc.Stalled,
	}
	if acc.Stalled <= tol && acc.Harmonic > 0 {
		res.Harmonic = maxRate / acc.Harmonic
	}

	return res
}

// classify wraps allocation-related failures as ErrAllocation and anything
// else as ErrInvalidInput.
func classify(err error) error {
	if errors.Is(err, matrix.ErrAllocation) || errors.Is(err, combo.ErrTooLarge) {
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	}

	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
