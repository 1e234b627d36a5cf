// Package extension approximates an unbounded landscape by widening a sampled
// block one column pair at a time.
//
// For one base combination, level ℓ of a Chain holds every way to add ℓ new
// columns on each side of it (fanout^ℓ combinations, fanout = F^(2·rows)).
// A child whose maximum spread rate beats its parent's effective rate is
// "faster": its probability is attributed to the child's rate instead of the
// parent's. Probability already attributed to faster descendants is handed up
// through each level's pass vector so no mass is counted twice.
//
// Lifecycle of a Level:
//
//	Uninitialized → Allocated → Spliced → Solved → Reduced → Freed
//
// Levels run top-down for Allocate, Splice and Solve, bottom-up for Reduce
// and Free. Calls out of order return ErrState. Each level's storage is one
// contiguous matrix.Block released on every exit path of Chain.Run.
//
// Complexity:
//
//   - Memory for level ℓ: O(fanout^ℓ · (cols+2ℓ) · rows).
//   - Time per run: Σ_ℓ fanout^ℓ solves of a (cols+2ℓ)×rows block.
package extension
