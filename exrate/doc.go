// Package exrate computes the expected and harmonic-mean spread rate of a fire
// burning through randomly arranged fuels.
//
// 🚀 What it does
//
//	Every assignment of the fuel types to a Samples×Depths block is generated
//	(package combo) and solved for its fastest spread path (package spread).
//	The rates are weighted by each arrangement's joint probability. Optional
//	lateral extensions (package extension) widen the block to approximate an
//	unbounded landscape without counting any probability twice.
//
// ⚙️ Usage:
//
//	opts := exrate.DefaultOptions()
//	opts.Samples, opts.Depths = 3, 2
//	opts.LengthToBreadth = 2
//	res, err := exrate.ComputeSpread([]fuel.Type{{Rate: 10, Fraction: .5}, {Rate: 20, Fraction: .5}}, opts)
//	if err != nil {
//		rate := exrate.SentinelRate(err) // 0 rejected input, −1 allocation failure
//	}
//
// Errors:
//
//   - ErrInvalidBlockSize before any allocation.
//   - ErrInvalidInput for other options and the fuel table.
//   - ErrAllocation with every buffer released.
//
// Observability: Options.Logger (slog), Options.Metrics (Prometheus) and
// Options.Clock (clockwork) are optional and default to no-ops or the real clock.
package exrate
