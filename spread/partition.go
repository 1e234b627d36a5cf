package spread

import (
	"github.com/katalvlaran/randfuel/matrix"
	"golang.org/x/sync/errgroup"
)

// Range is a half-open index range [Lo, Hi) of combinations owned by one worker.
type Range struct {
	Lo, Hi int
}

// Len returns Hi − Lo.
func (r Range) Len() int { return r.Hi - r.Lo }

// Partition splits [0, n) into min(max(workers,1), n) contiguous,
// non-overlapping, increasing ranges whose sizes differ by at most one.
// n ≤ 0 yields no ranges.
// Complexity: O(workers).
func Partition(n, workers int) []Range {
	if n <= 0 {
		return nil
	}
	w := max(workers, 1)
	w = min(w, n)

	base, rem := n/w, n%w
	out := make([]Range, w)
	lo := 0
	for i := 0; i < w; i++ {
		size := base
		if i < rem {
			size++
		}
		out[i] = Range{Lo: lo, Hi: lo + size}
		lo += size
	}

	return out
}

// Solve fills out[i] with the maximum spread rate of every row of rates.
//
// The rows are partitioned into one contiguous range per worker and every
// range is dispatched to its own goroutine; Solve returns only after all of
// them finished (join barrier), so out is safe to read afterwards. Workers
// write disjoint indices of out and share the read-only solver and rates.
func Solve(s *Solver, rates *matrix.Dense, out []float64, workers int) error {
	if s == nil || rates == nil {
		return ErrConfig
	}
	if len(out) < rates.Rows() {
		return ErrRange
	}

	var g errgroup.Group
	for _, rg := range Partition(rates.Rows(), workers) {
		g.Go(func() error {
			return s.CalcSpreadPaths(rates, out, rg)
		})
	}

	return g.Wait()
}
