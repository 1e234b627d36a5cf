package extension

import (
	"fmt"

	"github.com/katalvlaran/randfuel/combo"
	"github.com/katalvlaran/randfuel/fuel"
	"github.com/katalvlaran/randfuel/matrix"
	"github.com/katalvlaran/randfuel/spread"
)

// Config describes a chain of lateral extensions on top of a solved base block.
type Config struct {
	Table *fuel.Table
	Base  *combo.Matrix // base combinations; the chain never frees it
	Shape spread.Shape

	// Levels is the extension depth: the number of column pairs added.
	Levels int

	LessIgnitions int
	Workers       int
	Allocator     matrix.Allocator // nil ⇒ matrix.HeapAllocator{}
}

// Contribution accumulates probability-weighted rates of one or more runs.
// Rates are relative to the table's maximum rate.
type Contribution struct {
	Average  float64 // Σ held·rate
	Harmonic float64 // Σ held/rate over positive rates
	Stalled  float64 // held probability at rate 0
	Mass     float64 // Σ held
	Absorbed float64 // probability attributed to extension levels
	Solved   int     // combinations solved by extension levels
}

// Hold attributes probability p to rate; p at rate 0 is counted as stalled.
func (c *Contribution) Hold(p, rate float64) {
	c.Mass += p
	c.Average += p * rate
	if rate > 0 {
		c.Harmonic += p / rate
		return
	}
	c.Stalled += p
}

// Add merges o into c.
func (c *Contribution) Add(o Contribution) {
	c.Average += o.Average
	c.Harmonic += o.Harmonic
	c.Stalled += o.Stalled
	c.Mass += o.Mass
	c.Absorbed += o.Absorbed
	c.Solved += o.Solved
}

// Chain owns the levels and the lateral generator for a sequence of runs.
// A Chain is not safe for concurrent Run calls; each level's solve is itself
// parallel across Workers.
type Chain struct {
	cfg     Config
	alloc   matrix.Allocator
	lateral *combo.Matrix
	levels  []*Level
}

// NewChain validates cfg, generates the lateral column pairs and prepares one
// solver per level. Level ℓ is Base.Cols+2ℓ wide with an ℓ-column margin.
// The returned chain must be closed to release the lateral table.
// Complexity: O(F^(2·rows)·rows + Levels·width).
func NewChain(cfg Config) (*Chain, error) {
	if cfg.Table == nil || cfg.Base == nil || cfg.Levels < 0 || cfg.Workers < 1 || cfg.LessIgnitions < 0 {
		return nil, fmt.Errorf("levels=%d workers=%d: %w", cfg.Levels, cfg.Workers, ErrConfig)
	}
	alloc := cfg.Allocator
	if alloc == nil {
		alloc = matrix.HeapAllocator{}
	}
	cols, rows := cfg.Base.Cols, cfg.Base.Rows

	fanout, err := combo.Count(cfg.Table.Len(), 2*rows)
	if err != nil {
		return nil, err
	}
	levels := make([]*Level, cfg.Levels+1)
	levels[0] = newLevel(0, cols, rows, 1, 1, nil)
	for i := 1; i <= cfg.Levels; i++ {
		count, err := combo.Count(fanout, i)
		if err != nil {
			return nil, err
		}
		s, err := spread.NewSolver(spread.Config{
			Shape:         cfg.Shape,
			Width:         cols + 2*i,
			Depth:         rows,
			Margin:        i,
			LessIgnitions: cfg.LessIgnitions,
		})
		if err != nil {
			return nil, err
		}
		levels[i] = newLevel(i, cols+2*i, rows, count, fanout, s)
	}

	ch := &Chain{cfg: cfg, alloc: alloc, levels: levels}
	if cfg.Levels > 0 {
		if ch.lateral, err = combo.Lateral(cfg.Table, rows, alloc); err != nil {
			return nil, err
		}
	}

	return ch, nil
}

// Levels returns the extension depth.
func (c *Chain) Levels() int { return c.cfg.Levels }

// Level returns level i (0 is the base).
func (c *Chain) Level(i int) *Level { return c.levels[i] }

// Run extends base combination i, whose own maximum spread rate is baseRate,
// through every level and returns how its probability splits across rates.
// On error the contribution is zero and all level storage is already released.
//
// Stage 1 (Top-down): level 0 is seeded; each deeper level is allocated,
// spliced from its parent and solved.
// Stage 2 (Bottom-up): levels are reduced from the deepest up; the base keeps
// whatever no faster extension absorbed.
// Stage 3: every level is freed, on success and on error.
func (c *Chain) Run(i int, baseRate float64) (Contribution, error) {
	var acc Contribution
	defer c.free()

	l0 := c.levels[0]
	if err := l0.Allocate(c.alloc); err != nil {
		return Contribution{}, err
	}
	if err := l0.Seed(c.cfg.Base, i, baseRate); err != nil {
		return Contribution{}, err
	}

	for d := 1; d < len(c.levels); d++ {
		lv, parent := c.levels[d], c.levels[d-1]
		if err := lv.Allocate(c.alloc); err != nil {
			return Contribution{}, err
		}
		if err := lv.Splice(parent, c.lateral); err != nil {
			return Contribution{}, err
		}
		if err := lv.Solve(parent, c.cfg.Workers); err != nil {
			return Contribution{}, err
		}
		acc.Solved += lv.count
	}

	var child *Level
	for d := len(c.levels) - 1; d >= 0; d-- {
		if err := c.levels[d].Reduce(child, &acc); err != nil {
			return Contribution{}, err
		}
		child = c.levels[d]
	}
	acc.Hold(l0.held(), l0.eff[0])

	return acc, nil
}

// free releases levels bottom-up.
func (c *Chain) free() {
	for d := len(c.levels) - 1; d >= 0; d-- {
		c.levels[d].Free()
	}
}

// Close releases the lateral table. Safe to call more than once.
func (c *Chain) Close() {
	if c == nil {
		return
	}
	c.free()
	c.lateral.Free()
	c.lateral = nil
}
