// Package combo enumerates every assignment of fuel types to the cells of a
// rectangular sample block.
//
// A block has Cols columns (samples, across the direction of spread) and Rows
// rows (depths, along it). With F fuel types there are F^(Cols·Rows)
// combinations. Each combination is one row of two parallel matrices:
//
//	Prob[m][r·Cols+c] — occurrence probability of the fuel placed in cell (r,c)
//	Rate[m][r·Cols+c] — relative spread rate of that fuel
//
// Ordering is a deterministic nested Cartesian product: breadth combinations
// (one block row, column 0 the most significant base-F digit) are built first,
// then tiled so that row 0 of the block is the most significant breadth digit.
// Written out, combination m is m in base F over the Cols·Rows cells with cell 0
// as the most significant digit. Downstream splicing relies on this order.
package combo

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/randfuel/fuel"
	"github.com/katalvlaran/randfuel/matrix"
)

var (
	// ErrShape indicates a block or destination shape that does not fit the operation.
	ErrShape = errors.New("combo: invalid block shape")

	// ErrTooLarge indicates that the combination count overflows int.
	ErrTooLarge = errors.New("combo: combination count overflows")
)

// Matrix is a combination table: one row per combination, Cols·Rows cells per row.
type Matrix struct {
	Cols, Rows int
	Prob       *matrix.Dense
	Rate       *matrix.Dense

	pair *matrix.Pair
}

// Count returns fuels^cells, or ErrTooLarge on overflow.
// Complexity: O(cells).
func Count(fuels, cells int) (int, error) {
	if fuels <= 0 || cells <= 0 {
		return 0, ErrShape
	}
	n := 1
	for i := 0; i < cells; i++ {
		if n > math.MaxInt/fuels {
			return 0, fmt.Errorf("%d^%d: %w", fuels, cells, ErrTooLarge)
		}
		n *= fuels
	}

	return n, nil
}

// New allocates an empty table of count combinations for a cols×rows block.
// The probability and rate matrices share one allocation.
func New(alloc matrix.Allocator, cols, rows, count int) (*Matrix, error) {
	if cols <= 0 || rows <= 0 || count <= 0 {
		return nil, ErrShape
	}
	cells, err := matrix.Cells(cols, rows)
	if err != nil {
		return nil, err
	}
	pair, err := matrix.NewPair(alloc, count, cells)
	if err != nil {
		return nil, err
	}

	return &Matrix{Cols: cols, Rows: rows, Prob: pair.Prob, Rate: pair.Rate, pair: pair}, nil
}

// FromPair wraps an already carved pair; the caller keeps ownership of its storage.
func FromPair(cols, rows int, pair *matrix.Pair) (*Matrix, error) {
	if pair == nil || cols <= 0 || rows <= 0 || pair.Prob.Cols() != cols*rows {
		return nil, ErrShape
	}

	return &Matrix{Cols: cols, Rows: rows, Prob: pair.Prob, Rate: pair.Rate}, nil
}

// Count returns the number of combinations (matrix rows).
func (m *Matrix) Count() int { return m.Prob.Rows() }

// Cells returns the number of cells per combination.
func (m *Matrix) Cells() int { return m.Cols * m.Rows }

// Joint returns the joint probability of combination i: the product of its
// per-cell occurrence probabilities.
func (m *Matrix) Joint(i int) (float64, error) { return m.Prob.RowProduct(i) }

// Free releases the table's storage if it owns it.
func (m *Matrix) Free() {
	if m == nil {
		return
	}
	m.pair.Free()
}

// breadth builds the F^cols single-row combinations as fuel indices,
// column 0 the most significant digit.
func breadth(fuels, cols, count int) [][]int {
	out := make([][]int, count)
	for b := 0; b < count; b++ {
		row := make([]int, cols)
		v := b
		for c := cols - 1; c >= 0; c-- {
			row[c] = v % fuels
			v /= fuels
		}
		out[b] = row
	}

	return out
}

// Generate enumerates every assignment of the table's fuel types to a
// cols×rows block.
// Stage 1 (Validate): shape and combination count.
// Stage 2 (Breadth): F^cols single-row combinations.
// Stage 3 (Tile): row r of combination m takes breadth row (m / B^(rows-1-r)) mod B.
// Complexity: O(F^(cols·rows) · cols·rows) time and memory.
func Generate(t *fuel.Table, cols, rows int, alloc matrix.Allocator) (*Matrix, error) {
	if t == nil || t.Len() == 0 || cols <= 0 || rows <= 0 {
		return nil, ErrShape
	}
	fuels := t.Len()
	nb, err := Count(fuels, cols)
	if err != nil {
		return nil, err
	}
	n, err := Count(fuels, cols*rows)
	if err != nil {
		return nil, err
	}
	m, err := New(alloc, cols, rows, n)
	if err != nil {
		return nil, err
	}

	fr := t.Fractions()
	rel := t.RelativeRates()
	tiles := breadth(fuels, cols, nb)

	// stride[r] = B^(rows-1-r); bounded by n so it cannot overflow.
	stride := make([]int, rows)
	s := 1
	for r := rows - 1; r >= 0; r-- {
		stride[r] = s
		s *= nb
	}

	var prob, rate []float64
	for i := 0; i < n; i++ {
		// i < n == m.Prob.Rows(), so Row cannot fail.
		prob, _ = m.Prob.Row(i)
		rate, _ = m.Rate.Row(i)
		for r := 0; r < rows; r++ {
			tile := tiles[(i/stride[r])%nb]
			for c, f := range tile {
				prob[r*cols+c] = fr[f]
				rate[r*cols+c] = rel[f]
			}
		}
	}

	return m, nil
}

// Lateral enumerates the left/right column pairs added on each side of a block
// by one extension level: F^(2·rows) combinations of a 2-column block, where
// column 0 is the new left column and column 1 the new right column.
func Lateral(t *fuel.Table, rows int, alloc matrix.Allocator) (*Matrix, error) {
	return Generate(t, 2, rows, alloc)
}

// Splice widens parent rows [from, from+n) by one column on each side.
// Child row p·L + l (p relative to from, L = lateral.Count()) is parent row
// from+p with lateral row l's left cell prepended and right cell appended on
// every block row. dst must be shaped (n·L) × ((parent.Cols+2)·Rows).
// Complexity: O(n·L·cells).
func Splice(dst, parent *Matrix, from, n int, lateral *Matrix) error {
	if dst == nil || parent == nil || lateral == nil {
		return ErrShape
	}
	if lateral.Cols != 2 || lateral.Rows != parent.Rows || dst.Rows != parent.Rows {
		return fmt.Errorf("lateral %dx%d parent rows %d: %w", lateral.Cols, lateral.Rows, parent.Rows, ErrShape)
	}
	if dst.Cols != parent.Cols+2 {
		return fmt.Errorf("dst width %d, parent width %d: %w", dst.Cols, parent.Cols, ErrShape)
	}
	if from < 0 || n <= 0 || from+n > parent.Count() {
		return fmt.Errorf("parent rows [%d,%d) of %d: %w", from, from+n, parent.Count(), ErrShape)
	}
	L := lateral.Count()
	if dst.Count() != n*L {
		return fmt.Errorf("dst count %d, want %d: %w", dst.Count(), n*L, ErrShape)
	}

	// Row indices are within the bounds checked above.
	pw, w := parent.Cols, dst.Cols
	for p := 0; p < n; p++ {
		pp, _ := parent.Prob.Row(from + p)
		pr, _ := parent.Rate.Row(from + p)
		for l := 0; l < L; l++ {
			lp, _ := lateral.Prob.Row(l)
			lr, _ := lateral.Rate.Row(l)
			cp, _ := dst.Prob.Row(p*L + l)
			cr, _ := dst.Rate.Row(p*L + l)
			for r := 0; r < parent.Rows; r++ {
				cp[r*w] = lp[r*2]
				cr[r*w] = lr[r*2]
				copy(cp[r*w+1:r*w+1+pw], pp[r*pw:(r+1)*pw])
				copy(cr[r*w+1:r*w+1+pw], pr[r*pw:(r+1)*pw])
				cp[r*w+w-1] = lp[r*2+1]
				cr[r*w+w-1] = lr[r*2+1]
			}
		}
	}

	return nil
}
