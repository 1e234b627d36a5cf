package extension

import (
	"fmt"
	"math"

	"github.com/katalvlaran/randfuel/combo"
	"github.com/katalvlaran/randfuel/matrix"
	"github.com/katalvlaran/randfuel/spread"
)

// State is the lifecycle position of a Level.
type State uint8

const (
	StateUninitialized State = iota
	StateAllocated
	StateSpliced
	StateSolved
	StateReduced
	StateFreed
)

var stateNames = [...]string{"uninitialized", "allocated", "spliced", "solved", "reduced", "freed"}

// String implements fmt.Stringer.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}

	return fmt.Sprintf("State(%d)", uint8(s))
}

// Level is one widening step of a chain. Level 0 holds the single base
// combination of a run; level ℓ holds every way of adding ℓ columns on each
// side of it, count = fanout^ℓ.
//
// All storage of a level (combination pair and per-combination vectors) is
// carved from one Block owned exclusively by the level:
//
//	Prob, Rate  count × cells
//	joint       joint probability per combination
//	max         maximum spread rate from the solver
//	eff         effective rate, max(parent eff, max)
//	pass        probability handed to faster descendants
//	cum         per parent: probability of its faster children
type Level struct {
	index      int
	cols, rows int
	count      int
	fanout     int
	solver     *spread.Solver

	state  State
	block  *matrix.Block
	combos *combo.Matrix

	joint, max, eff, pass, cum []float64
}

func newLevel(index, cols, rows, count, fanout int, solver *spread.Solver) *Level {
	return &Level{
		index:  index,
		cols:   cols,
		rows:   rows,
		count:  count,
		fanout: fanout,
		solver: solver,
	}
}

// Index returns the level depth, 0 for the base.
func (l *Level) Index() int { return l.index }

// Count returns the number of combinations held by the level.
func (l *Level) Count() int { return l.count }

// State returns the current lifecycle state.
func (l *Level) State() State { return l.state }

// Combos exposes the level's combination table; valid between Allocate and Free.
func (l *Level) Combos() *combo.Matrix { return l.combos }

// Effective returns the effective spread rates; valid between Solve and Free.
func (l *Level) Effective() []float64 { return l.eff }

func (l *Level) expect(op string, want ...State) error {
	for _, s := range want {
		if l.state == s {
			return nil
		}
	}

	return fmt.Errorf("level %d %s in state %s: %w", l.index, op, l.state, ErrState)
}

func (l *Level) parents() int { return l.count / l.fanout }

// Allocate obtains the level's storage as a single block.
// Valid from Uninitialized or Freed, so a level can be reused across runs.
func (l *Level) Allocate(alloc matrix.Allocator) error {
	if err := l.expect("allocate", StateUninitialized, StateFreed); err != nil {
		return err
	}
	cells, err := matrix.Cells(l.cols, l.rows)
	if err != nil {
		return err
	}
	data, err := matrix.Cells(l.count, cells)
	if err != nil {
		return err
	}
	if l.count > math.MaxInt/8 || data > math.MaxInt/4 {
		return fmt.Errorf("level %d: %w", l.index, matrix.ErrAllocation)
	}
	blk, err := matrix.NewBlock(alloc, 2*data+4*l.count+l.parents())
	if err != nil {
		return fmt.Errorf("level %d: %w", l.index, err)
	}
	if err = l.carve(blk, cells); err != nil {
		blk.Free()
		return err
	}
	l.block = blk
	l.state = StateAllocated

	return nil
}

func (l *Level) carve(blk *matrix.Block, cells int) error {
	pair, err := matrix.PairFrom(blk, l.count, cells)
	if err != nil {
		return err
	}
	if l.combos, err = combo.FromPair(l.cols, l.rows, pair); err != nil {
		return err
	}
	for _, v := range []*[]float64{&l.joint, &l.max, &l.eff, &l.pass} {
		if *v, err = blk.Vector(l.count); err != nil {
			return err
		}
	}
	if l.cum, err = blk.Vector(l.parents()); err != nil {
		return err
	}
	clear(l.cum)

	return nil
}

// Seed loads base combination i with its already solved rate into level 0,
// moving it straight from Allocated to Solved.
func (l *Level) Seed(base *combo.Matrix, i int, rate float64) error {
	if err := l.expect("seed", StateAllocated); err != nil {
		return err
	}
	if l.index != 0 || base == nil || base.Cols != l.cols || base.Rows != l.rows {
		return fmt.Errorf("seed level %d: %w", l.index, ErrConfig)
	}
	if i < 0 || i >= base.Count() {
		return fmt.Errorf("seed %d of %d: %w", i, base.Count(), ErrBaseIndex)
	}
	if err := base.Prob.CopyRow(l.combos.Prob, 0, i); err != nil {
		return err
	}
	if err := base.Rate.CopyRow(l.combos.Rate, 0, i); err != nil {
		return err
	}
	joint, err := l.combos.Joint(0)
	if err != nil {
		return err
	}
	l.joint[0] = joint
	l.max[0] = rate
	l.eff[0] = rate
	l.state = StateSolved

	return nil
}

// Splice widens every combination of parent by each lateral column pair.
// parent must be Solved.
func (l *Level) Splice(parent *Level, lateral *combo.Matrix) error {
	if err := l.expect("splice", StateAllocated); err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("splice level %d: nil parent: %w", l.index, ErrState)
	}
	if err := parent.expect("parent of splice", StateSolved); err != nil {
		return err
	}
	if err := combo.Splice(l.combos, parent.combos, 0, parent.count, lateral); err != nil {
		return fmt.Errorf("splice level %d: %w", l.index, err)
	}
	l.state = StateSpliced

	return nil
}

// Solve computes the maximum spread rate of every combination across workers,
// then derives effective rates and, per parent, the cumulative probability of
// children that spread faster than the parent's effective rate.
func (l *Level) Solve(parent *Level, workers int) error {
	if err := l.expect("solve", StateSpliced); err != nil {
		return err
	}
	if parent == nil || parent.eff == nil || parent.count != l.parents() {
		return fmt.Errorf("solve level %d: parent mismatch: %w", l.index, ErrState)
	}
	if err := spread.Solve(l.solver, l.combos.Rate, l.max, workers); err != nil {
		return fmt.Errorf("solve level %d: %w", l.index, err)
	}

	var p int
	var ref float64
	for c := 0; c < l.count; c++ {
		joint, err := l.combos.Joint(c)
		if err != nil {
			return err
		}
		l.joint[c] = joint
		p = c / l.fanout
		ref = parent.eff[p]
		l.eff[c] = math.Max(ref, l.max[c])
		if l.eff[c] > ref {
			l.cum[p] += joint
		}
	}
	l.state = StateSolved

	return nil
}

// Reduce folds the already reduced child level into this one (bottom-up).
// For each node j: pass[j] = child.cum[j] + Σ child.pass[c] over children c
// that are not faster. Every faster child c keeps joint[c] − pass[c], which is
// added to acc at its effective rate. child is nil for the deepest level.
func (l *Level) Reduce(child *Level, acc *Contribution) error {
	if err := l.expect("reduce", StateSolved); err != nil {
		return err
	}
	if child == nil {
		clear(l.pass)
		l.state = StateReduced
		return nil
	}
	if err := child.expect("child of reduce", StateReduced); err != nil {
		return err
	}

	var held float64
	for j := 0; j < l.count; j++ {
		s := child.cum[j]
		for c := j * child.fanout; c < (j+1)*child.fanout; c++ {
			if child.eff[c] > l.eff[j] {
				held = math.Max(child.joint[c]-child.pass[c], 0)
				acc.Hold(held, child.eff[c])
				acc.Absorbed += held
				continue
			}
			s += child.pass[c]
		}
		l.pass[j] = s
	}
	l.state = StateReduced

	return nil
}

// held returns the probability level 0 keeps for the base combination.
func (l *Level) held() float64 { return math.Max(l.joint[0]-l.pass[0], 0) }

// Free releases the level's block. Every view obtained from the level becomes
// invalid. Free on an uninitialized or freed level is a no-op.
func (l *Level) Free() {
	if l.state == StateUninitialized || l.state == StateFreed {
		return
	}
	l.block.Free()
	l.block = nil
	l.combos = nil
	l.joint, l.max, l.eff, l.pass, l.cum = nil, nil, nil, nil, nil
	l.state = StateFreed
}
