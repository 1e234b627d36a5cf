// Package randfuel computes how fast a fire front spreads through a landscape
// whose fuels are arranged at random.
//
// 🚀 What is randfuel?
//
//	Given fuel types with their own spread rates and landscape fractions, it
//	enumerates every arrangement of those fuels in a small sample block, finds
//	the fastest spread path through each arrangement and reports the
//	probability-weighted expected and harmonic-mean spread rates.
//
// Under the hood the work is split into packages:
//
//	matrix/    — bounds-checked dense storage carved from single allocations
//	fuel/      — validated, normalized fuel table
//	combo/     — combination generation and lateral splicing
//	spread/    — elliptical fire shape and parallel path solver
//	extension/ — lateral extension chain with probability hand-off
//	exrate/    — ComputeSpread, options, errors, metrics
//	cmd/exrate — command-line front end
//
// Quick example:
//
//	res, err := exrate.ComputeSpread([]fuel.Type{{Rate: 10, Fraction: .5}, {Rate: 20, Fraction: .5}}, exrate.DefaultOptions())
//	// res.Expected == 15, res.Harmonic ≈ 13.333
//
//	go get github.com/katalvlaran/randfuel
package randfuel
