package exrate

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"

	"github.com/jonboulle/clockwork"
	"github.com/katalvlaran/randfuel/matrix"
)

// Block size limits.
const (
	MinBlock = 1
	MaxBlock = 50
)

// DefaultMaxCells caps a single allocation at 64Mi float64 elements (512 MiB).
const DefaultMaxCells = 1 << 26

// Options configures ComputeSpread. Start from DefaultOptions.
type Options struct {
	// Samples (block columns) and Depths (block rows), each within [1, 50].
	Samples, Depths int

	// LengthToBreadth is the elliptical fire-shape ratio, >= 1.
	LengthToBreadth float64

	// Workers is the fixed number of goroutines per solve phase, >= 1.
	Workers int

	// Extensions is the number of lateral column pairs added around the block.
	Extensions int

	// LessIgnitions excludes this many edge columns from ignition.
	LessIgnitions int

	// MaxCells caps one allocation when Allocator is nil; 0 means unlimited.
	MaxCells int

	// Allocator overrides the heap allocator; used for budgets and accounting.
	Allocator matrix.Allocator

	Logger  *slog.Logger    // nil ⇒ discard
	Metrics *Metrics        // nil ⇒ not recorded
	Clock   clockwork.Clock // nil ⇒ real clock
}

// DefaultOptions returns a 1×1 block, circular fire shape, one worker per CPU
// and no extensions.
func DefaultOptions() Options {
	return Options{
		Samples:         1,
		Depths:          1,
		LengthToBreadth: 1,
		Workers:         runtime.NumCPU(),
		MaxCells:        DefaultMaxCells,
	}
}

func (o *Options) validateBlock() error {
	if o.Samples < MinBlock || o.Samples > MaxBlock || o.Depths < MinBlock || o.Depths > MaxBlock {
		return fmt.Errorf("samples=%d depths=%d: %w", o.Samples, o.Depths, ErrInvalidBlockSize)
	}

	return nil
}

// Validate checks every option. Block size is checked first and reported as
// ErrInvalidBlockSize; everything else as ErrInvalidInput.
func (o *Options) Validate() error {
	if err := o.validateBlock(); err != nil {
		return err
	}
	switch {
	case math.IsNaN(o.LengthToBreadth) || math.IsInf(o.LengthToBreadth, 0) || o.LengthToBreadth < 1:
		return fmt.Errorf("length-to-breadth %g: %w", o.LengthToBreadth, ErrInvalidInput)
	case o.Workers < 1:
		return fmt.Errorf("workers %d: %w", o.Workers, ErrInvalidInput)
	case o.Extensions < 0:
		return fmt.Errorf("extensions %d: %w", o.Extensions, ErrInvalidInput)
	case o.LessIgnitions < 0:
		return fmt.Errorf("less ignitions %d: %w", o.LessIgnitions, ErrInvalidInput)
	case o.MaxCells < 0:
		return fmt.Errorf("max cells %d: %w", o.MaxCells, ErrInvalidInput)
	}

	return nil
}

func (o *Options) allocator() matrix.Allocator {
	if o.Allocator != nil {
		return o.Allocator
	}

	return matrix.HeapAllocator{Limit: o.MaxCells}
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o *Options) clock() clockwork.Clock {
	if o.Clock != nil {
		return o.Clock
	}

	return clockwork.NewRealClock()
}
