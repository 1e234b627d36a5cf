// Package spread finds the fastest route of a fire front through a sample block
// of mixed fuels.
//
// 🚀 Model
//
//	Each cell of a Width×Depth block is a unit square carrying a relative
//	spread rate in [0,1]. A point fire ignited at the bottom of column k grows
//	row by row. It may run straight through its own cell or flank sideways
//	into a faster neighbour; lateral travel follows an elliptical fire shape
//	derived from the length-to-breadth ratio (see Shape.FlankTime). The path
//	time of column k is the earliest arrival at the top of column k; the
//	combination's maximum spread rate is Depth / min over ignition columns.
//
// ⚙️ Usage:
//
//	shape, _ := spread.NewShape(2.0)
//	s, _ := spread.NewSolver(spread.Config{Shape: shape, Width: 3, Depth: 2})
//	out := make([]float64, rates.Rows())
//	err := spread.Solve(s, rates, out, runtime.NumCPU())
//
// Concurrency:
//
//   - Partition divides the combinations into contiguous, disjoint ranges.
//   - Solve runs one goroutine per range and waits for all of them before
//     returning; no worker reads another's output.
//   - Results are identical for any worker count.
//
// Complexity:
//
//   - Per combination: O(ignitions · Depth · Width) with at most 3·Width live
//     candidates per row boundary (one per column and side).
package spread
