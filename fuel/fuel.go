// Package fuel holds the per-fuel-type inputs of the spread engine: an absolute
// spread rate and the fraction of the landscape each fuel type occupies.
//
// A Table is built once per computation and is read-only afterwards. Normalize
// rescales fractions so they sum to 1 and derives relative spread rates in
// [0,1] against the fastest fuel type.
package fuel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmpty indicates that no fuel types were supplied.
	ErrEmpty = errors.New("fuel: at least one fuel type is required")

	// ErrInvalidRate indicates a negative, NaN or infinite spread rate.
	ErrInvalidRate = errors.New("fuel: spread rate must be finite and >= 0")

	// ErrInvalidFraction indicates a landscape fraction outside [0,1].
	ErrInvalidFraction = errors.New("fuel: fraction must be within [0,1]")

	// ErrZeroCoverage indicates that all fractions are zero, so nothing can be normalized.
	ErrZeroCoverage = errors.New("fuel: fractions sum to zero")
)

// Type is one fuel category: its absolute spread rate and landscape fraction.
type Type struct {
	Rate     float64 // absolute spread rate, any consistent unit
	Fraction float64 // share of the landscape covered, [0,1]
}

// Table is the validated, normalized set of fuel types for one computation.
type Table struct {
	rates     []float64 // absolute spread rates
	fractions []float64 // normalized fractions, sum == 1
	relative  []float64 // rates[i] / max(rates); all 0 when max == 0
	maxRate   float64
}

// NewTable validates types and returns a normalized Table.
// Stage 1 (Validate): non-empty, finite non-negative rates, fractions in [0,1].
// Stage 2 (Normalize): see Normalize.
// Complexity: O(F).
func NewTable(types []Type) (*Table, error) {
	if len(types) == 0 {
		return nil, ErrEmpty
	}
	t := &Table{
		rates:     make([]float64, len(types)),
		fractions: make([]float64, len(types)),
		relative:  make([]float64, len(types)),
	}
	for i, ft := range types {
		if math.IsNaN(ft.Rate) || math.IsInf(ft.Rate, 0) || ft.Rate < 0 {
			return nil, fmt.Errorf("fuel %d rate %g: %w", i, ft.Rate, ErrInvalidRate)
		}
		if math.IsNaN(ft.Fraction) || ft.Fraction < 0 || ft.Fraction > 1 {
			return nil, fmt.Errorf("fuel %d fraction %g: %w", i, ft.Fraction, ErrInvalidFraction)
		}
		t.rates[i] = ft.Rate
		t.fractions[i] = ft.Fraction
	}
	if err := t.Normalize(); err != nil {
		return nil, err
	}

	return t, nil
}

// Normalize rescales fractions to sum to 1 and recomputes relative rates.
// Idempotent. Complexity: O(F).
func (t *Table) Normalize() error {
	total := floats.Sum(t.fractions)
	if total <= 0 {
		return ErrZeroCoverage
	}
	floats.Scale(1/total, t.fractions)

	t.maxRate = floats.Max(t.rates)
	for i, r := range t.rates {
		if t.maxRate > 0 {
			t.relative[i] = r / t.maxRate
		} else {
			t.relative[i] = 0
		}
	}

	return nil
}

// Len returns the number of fuel types.
func (t *Table) Len() int { return len(t.rates) }

// MaxRate returns the fastest absolute spread rate.
func (t *Table) MaxRate() float64 { return t.maxRate }

// Rate returns the absolute spread rate of fuel i.
func (t *Table) Rate(i int) float64 { return t.rates[i] }

// Fraction returns the normalized landscape fraction of fuel i.
func (t *Table) Fraction(i int) float64 { return t.fractions[i] }

// Relative returns the spread rate of fuel i relative to the fastest fuel.
func (t *Table) Relative(i int) float64 { return t.relative[i] }

// Fractions returns a copy of the normalized fractions.
func (t *Table) Fractions() []float64 { return append([]float64(nil), t.fractions...) }

// RelativeRates returns a copy of the relative spread rates.
func (t *Table) RelativeRates() []float64 { return append([]float64(nil), t.relative...) }
