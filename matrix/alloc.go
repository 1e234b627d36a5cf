// SPDX-License-Identifier: MIT

// Package matrix - block allocation.
//
// Purpose:
//   - Route every large float64 buffer through an Allocator so callers can put a
//     budget on combinatorial workloads and observe allocation counts in tests.
//   - Carve several matrices and vectors out of ONE contiguous allocation (Block)
//     with bounds-checked views instead of raw pointer arithmetic.
//
// Lifecycle:
//   - NewBlock → Dense/Vector (carve, in order) → Free (exactly once).
//   - Free is idempotent; carving from a freed Block returns ErrFreed.

package matrix

import (
	"fmt"
	"math"
)

// Allocator hands out zeroed float64 buffers and takes them back.
// Implementations must be safe for use by a single goroutine; the solver
// allocates only from orchestration code, never from workers.
type Allocator interface {
	// Alloc returns a zeroed buffer of length n or ErrAllocation.
	Alloc(n int) ([]float64, error)
	// Release returns a buffer obtained from Alloc.
	Release(buf []float64)
}

// HeapAllocator allocates from the Go heap.
// Limit caps the element count of a single request; 0 means unlimited.
type HeapAllocator struct {
	Limit int
}

// Alloc returns make([]float64, n) or ErrAllocation when n is negative or
// above Limit.
// Complexity: O(n).
func (h HeapAllocator) Alloc(n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("alloc(%d): %w", n, ErrAllocation)
	}
	if h.Limit > 0 && n > h.Limit {
		return nil, fmt.Errorf("alloc(%d) exceeds limit %d: %w", n, h.Limit, ErrAllocation)
	}

	return make([]float64, n), nil
}

// Release is a no-op for heap buffers; the garbage collector reclaims them
// once the last view is dropped.
func (HeapAllocator) Release([]float64) {}

// Cells returns rows*cols, or ErrAllocation when the product overflows int.
// Complexity: O(1).
func Cells(rows, cols int) (int, error) {
	if rows < 0 || cols < 0 {
		return 0, ErrInvalidDimensions
	}
	if rows != 0 && cols > math.MaxInt/rows {
		return 0, fmt.Errorf("cells(%d×%d): %w", rows, cols, ErrAllocation)
	}

	return rows * cols, nil
}

// Block is a single contiguous allocation carved into consecutive views.
type Block struct {
	alloc Allocator
	buf   []float64
	off   int
	freed bool
}

// NewBlock obtains n elements from alloc.
// Errors:
//   - ErrAllocation (wrapped) when alloc refuses the request.
//
// Complexity: O(n).
func NewBlock(alloc Allocator, n int) (*Block, error) {
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	buf, err := alloc.Alloc(n)
	if err != nil {
		return nil, err
	}

	return &Block{alloc: alloc, buf: buf}, nil
}

// take reserves the next n elements.
func (b *Block) take(n int) ([]float64, error) {
	if b.freed {
		return nil, ErrFreed
	}
	if n < 0 || b.off+n > len(b.buf) {
		return nil, fmt.Errorf("block take %d at %d/%d: %w", n, b.off, len(b.buf), ErrOutOfRange)
	}
	s := b.buf[b.off : b.off+n : b.off+n]
	b.off += n

	return s, nil
}

// Dense carves the next rows×cols elements as a matrix.
// Complexity: O(1).
func (b *Block) Dense(rows, cols int) (*Dense, error) {
	n, err := Cells(rows, cols)
	if err != nil {
		return nil, err
	}
	s, err := b.take(n)
	if err != nil {
		return nil, err
	}

	return NewDenseOver(rows, cols, s)
}

// Vector carves the next n elements as a plain slice.
// Complexity: O(1).
func (b *Block) Vector(n int) ([]float64, error) {
	return b.take(n)
}

// Len reports the total size of the block; Remaining the uncarved tail.
func (b *Block) Len() int       { return len(b.buf) }
func (b *Block) Remaining() int { return len(b.buf) - b.off }

// Free releases the block to its allocator. Views carved from it must not be
// used afterwards. Safe to call more than once.
func (b *Block) Free() {
	if b == nil || b.freed {
		return
	}
	b.freed = true
	b.alloc.Release(b.buf)
	b.buf = nil
}

// Pair is a probability matrix and a spread-rate matrix of identical shape
// sharing one allocation.
type Pair struct {
	Prob  *Dense
	Rate  *Dense
	block *Block
}

// NewPair allocates 2·rows·cols elements once and splits them into Prob and Rate.
// Errors:
//   - ErrInvalidDimensions, ErrAllocation.
//
// Complexity: O(rows*cols).
func NewPair(alloc Allocator, rows, cols int) (*Pair, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	n, err := Cells(rows, cols)
	if err != nil {
		return nil, err
	}
	if n > math.MaxInt/2 {
		return nil, fmt.Errorf("pair %d×%d: %w", rows, cols, ErrAllocation)
	}
	blk, err := NewBlock(alloc, 2*n)
	if err != nil {
		return nil, err
	}
	p, err := PairFrom(blk, rows, cols)
	if err != nil {
		blk.Free()
		return nil, err
	}
	p.block = blk

	return p, nil
}

// PairFrom carves a Pair out of an existing Block. The caller keeps ownership
// of the block; Free on the returned Pair is a no-op.
func PairFrom(blk *Block, rows, cols int) (*Pair, error) {
	prob, err := blk.Dense(rows, cols)
	if err != nil {
		return nil, err
	}
	rate, err := blk.Dense(rows, cols)
	if err != nil {
		return nil, err
	}

	return &Pair{Prob: prob, Rate: rate}, nil
}

// Free releases the pair's own block, if it owns one.
func (p *Pair) Free() {
	if p == nil {
		return
	}
	p.block.Free()
}
