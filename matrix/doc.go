// Package matrix provides the bounded, row-major storage used by the spread engine.
//
// 🚀 What is inside?
//
//   - Dense — a flat []float64 with a stride; At/Set/Row are bounds-checked and
//     return ErrOutOfRange instead of panicking.
//   - Allocator — the single funnel for large buffers. HeapAllocator enforces an
//     optional per-request budget so combinatorial blow-ups surface as
//     ErrAllocation rather than exhausting memory.
//   - Block / Pair — one allocation carved into several matrices and vectors.
//     A combination table needs a probability matrix and a spread-rate matrix of
//     the same shape; Pair keeps both in a single block.
//
// ⚙️ Usage:
//
//	pair, err := matrix.NewPair(matrix.HeapAllocator{Limit: 1 << 24}, rows, cols)
//	if err != nil {
//	  // ErrInvalidDimensions or ErrAllocation
//	}
//	defer pair.Free()
//	_ = pair.Prob.Set(0, 0, 0.25)
//
// Complexity:
//
//   - At/Set/Row: O(1)
//   - NewPair:    O(rows·cols) zero-init, one allocation
package matrix
