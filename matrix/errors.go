// SPDX-License-Identifier: MIT
// Package matrix: sentinel errors for dense storage, blocks and allocators.
// Accessors, carving and allocation return these (possibly wrapped) instead of
// panicking; match them with errors.Is.

package matrix

import "errors"

// Messages carry the "matrix: " prefix. Call sites add the failing method and
// indices, e.g. "Dense.Row(7,0): matrix: index out of range".

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/Row) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible shapes between two operands
	// (e.g., CopyRow between matrices of different widths).
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAllocation is returned by an Allocator that cannot satisfy a request,
	// either because the request exceeds its budget or the size overflows int.
	ErrAllocation = errors.New("matrix: allocation failed")

	// ErrFreed marks use of a Pair whose backing block was already released.
	ErrFreed = errors.New("matrix: block already released")
)
