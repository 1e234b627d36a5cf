// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/Row return errors instead of panicking.
//   - Allow a Dense to be carved over caller-owned storage (see Pair) so several
//     views share a single allocation.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Row: O(1); RowProduct: O(c).

package matrix

import "fmt"

// ---------- error context tags ----------

const (
	ctxAt      = "At"      // method tag used in error wrappers
	ctxSet     = "Set"     // method tag used in error wrappers
	ctxRow     = "Row"     // method tag used in error wrappers
	ctxCopyRow = "CopyRow" // method tag used in error wrappers
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//   - Stage 2: return wrapped error.
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix of float64 values.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (>0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// NewDense creates an r×c zero matrix using row-major storage.
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// Allocate a contiguous flat buffer; make() zero-fills it deterministically.
	buf := make([]float64, rows*cols)

	return &Dense{r: rows, c: cols, data: buf}, nil
}

// NewDenseOver wraps caller-owned storage as an r×c Dense without copying.
// Implementation:
//   - Stage 1: validate rows>0 && cols>0.
//   - Stage 2: require len(buf) == rows*cols.
//
// Behavior highlights:
//   - Writes through the Dense are visible in buf and vice versa.
//   - Used by Pair to carve two matrices out of one block.
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(1), Space O(1).
func NewDenseOver(rows, cols int, buf []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(buf) != rows*cols {
		return nil, ErrDimensionMismatch
	}

	return &Dense{r: rows, c: cols, data: buf}, nil
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Implementation:
//   - Stage 1: validate 0 ≤ row < m.r and 0 ≤ col < m.c.
//   - Stage 2: compute row*m.c + col.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err) // wrap with context
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Row returns a no-copy slice over row i (length Cols()).
// Implementation:
//   - Stage 1: validate 0 ≤ i < Rows().
//   - Stage 2: return data[i*c : (i+1)*c] with capped capacity so appends
//     never spill into the next row.
//
// Behavior highlights:
//   - Writes through the slice mutate the matrix.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	base := i * m.c

	return m.data[base : base+m.c : base+m.c], nil
}

// RowProduct multiplies every entry of row i.
// Used for joint probabilities: a combination row holds per-cell occurrence
// probabilities and their product is the probability of the whole row.
//
// Complexity:
//   - Time O(c), Space O(1).
func (m *Dense) RowProduct(i int) (float64, error) {
	row, err := m.Row(i)
	if err != nil {
		return 0, err
	}
	p := 1.0
	for _, v := range row {
		p *= v
	}

	return p, nil
}

// CopyRow copies row src of m into row dst of out.
// Errors:
//   - ErrDimensionMismatch when widths differ; ErrOutOfRange on bad indices.
//
// Complexity:
//   - Time O(c), Space O(1).
func (m *Dense) CopyRow(out *Dense, dst, src int) error {
	if out == nil || out.c != m.c {
		return denseErrorf(ctxCopyRow, dst, src, ErrDimensionMismatch)
	}
	from, err := m.Row(src)
	if err != nil {
		return err
	}
	to, err := out.Row(dst)
	if err != nil {
		return err
	}
	copy(to, from)

	return nil
}
