package spread_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/randfuel/combo"
	"github.com/katalvlaran/randfuel/fuel"
	"github.com/katalvlaran/randfuel/matrix"
	"github.com/katalvlaran/randfuel/spread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustShape(t *testing.T, lb float64) spread.Shape {
	t.Helper()
	s, err := spread.NewShape(lb)
	require.NoError(t, err)
	return s
}

func mustSolver(t *testing.T, cfg spread.Config) *spread.Solver {
	t.Helper()
	s, err := spread.NewSolver(cfg)
	require.NoError(t, err)
	return s
}

// TestNewShape_Constants checks head distance, breadth and rejection of LB < 1.
func TestNewShape_Constants(t *testing.T) {
	for _, lb := range []float64{1, 1.5, 2, 4, 8} {
		s := mustShape(t, lb)
		assert.InDelta(t, 1.0, s.A+s.C, 1e-12, "head distance, lb=%g", lb)
		assert.InDelta(t, 1/s.HB, s.A-s.C, 1e-12, "back distance, lb=%g", lb)
		assert.InDelta(t, lb, s.A/s.B, 1e-12, "length to breadth, lb=%g", lb)
	}

	for _, lb := range []float64{0.5, math.NaN(), math.Inf(1)} {
		_, err := spread.NewShape(lb)
		assert.ErrorIs(t, err, spread.ErrLengthToBreadth, "lb=%g", lb)
	}
}

// TestFlankTime_Geometry pins the closed forms of the perimeter equation.
func TestFlankTime_Geometry(t *testing.T) {
	circle := mustShape(t, 1)
	assert.InDelta(t, 5.0, circle.FlankTime(3, 4), 1e-12)
	assert.InDelta(t, 0.5, circle.FlankTime(0.5, 0), 1e-12)
	assert.Equal(t, 0.0, circle.FlankTime(0, 0))

	long := mustShape(t, 3)
	assert.InDelta(t, 1.0, long.FlankTime(0, 1), 1e-12, "head fire reaches y=1 at t=1")
	assert.InDelta(t, long.HB, long.FlankTime(0, -1), 1e-9*long.HB, "backing fire reaches y=-1 at t=HB")
	// Lateral spread at the ignition line: x·A / (B·√(A²−C²)).
	want := 0.5 * long.A / (long.B * math.Sqrt(long.A*long.A-long.C*long.C))
	assert.InDelta(t, want, long.FlankTime(0.5, 0), 1e-9)
	assert.Greater(t, long.FlankTime(0.5, 0), circle.FlankTime(0.5, 0), "elongated fires flank slower")
}

// TestNewSolver_Config covers rejection and the precomputed window.
func TestNewSolver_Config(t *testing.T) {
	shape := mustShape(t, 1)
	for _, cfg := range []spread.Config{
		{Shape: shape, Width: 0, Depth: 1},
		{Shape: shape, Width: 1, Depth: 0},
		{Shape: shape, Width: 3, Depth: 1, Margin: 2},
		{Shape: shape, Width: 3, Depth: 1, LessIgnitions: -1},
		{Width: 3, Depth: 1},
	} {
		_, err := spread.NewSolver(cfg)
		assert.ErrorIs(t, err, spread.ErrConfig, "%+v", cfg)
	}

	s := mustSolver(t, spread.Config{Shape: shape, Width: 5, Depth: 1, Margin: 2})
	for k, want := range []float64{2, 1, 0, 1, 2} {
		assert.InDelta(t, want, s.Delay(k), 1e-12, "delay[%d]", k)
	}

	lo, hi := mustSolver(t, spread.Config{Shape: shape, Width: 5, Depth: 1, LessIgnitions: 1}).Ignitions()
	assert.Equal(t, [2]int{1, 3}, [2]int{lo, hi})

	// Margin larger than the block keeps the centre column.
	lo, hi = mustSolver(t, spread.Config{Shape: shape, Width: 3, Depth: 1, LessIgnitions: 9}).Ignitions()
	assert.Equal(t, [2]int{1, 1}, [2]int{lo, hi})
}

// TestMaxRate_Scenarios walks hand-computed paths with a circular fire (LB=1).
func TestMaxRate_Scenarios(t *testing.T) {
	shape := mustShape(t, 1)
	cases := []struct {
		name string
		cfg  spread.Config
		row  []float64
		want float64
	}{
		{"uniform", spread.Config{Width: 3, Depth: 2}, []float64{1, 1, 1, 1, 1, 1}, 1},
		{"fastest column wins", spread.Config{Width: 2, Depth: 1}, []float64{0.5, 1}, 1},
		{"blocked column falls back to neighbour", spread.Config{Width: 2, Depth: 1}, []float64{0, 1}, 1},
		{"all blocked", spread.Config{Width: 2, Depth: 2}, []float64{0, 0, 0, 0}, 0},
		{"single slow cell", spread.Config{Width: 1, Depth: 1}, []float64{0.25}, 0.25},
		// Only column 1 ignites. Straight: 10+10. Detour: flank half a cell at
		// 0.1 (5), cross row 0 in column 2 (1), step back on the shared edge and
		// cross row 1 in column 1 (10) = 16.
		{"detour through faster neighbour", spread.Config{Width: 3, Depth: 2, LessIgnitions: 1},
			[]float64{0.1, 0.1, 1, 0.1, 0.1, 1}, 2.0 / 16},
		// Mirror-image detours through columns 0 and 2 both arrive at 16.
		{"equal-time detours", spread.Config{Width: 3, Depth: 2, LessIgnitions: 1},
			[]float64{1, 0.1, 1, 1, 0.1, 1}, 2.0 / 16},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Shape = shape
			s := mustSolver(t, tc.cfg)
			got, err := s.MaxRate(tc.row)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

// TestMaxRate_DelayPenalisesMargin ensures ignition in the lateral margin waits.
func TestMaxRate_DelayPenalisesMargin(t *testing.T) {
	s := mustSolver(t, spread.Config{Shape: mustShape(t, 1), Width: 3, Depth: 1, Margin: 1})
	// Window column is slow (time 4); margin columns are fast but start after 1.
	got, err := s.MaxRate([]float64{1, 0.25, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)
}

// TestCalcSpreadPaths_Errors checks shape and range validation.
func TestCalcSpreadPaths_Errors(t *testing.T) {
	s := mustSolver(t, spread.Config{Shape: mustShape(t, 1), Width: 2, Depth: 1})
	rates, _ := matrix.NewDense(3, 2)
	out := make([]float64, 3)

	assert.ErrorIs(t, s.CalcSpreadPaths(rates, out, spread.Range{Lo: 2, Hi: 1}), spread.ErrRange)
	assert.ErrorIs(t, s.CalcSpreadPaths(rates, out, spread.Range{Lo: 0, Hi: 4}), spread.ErrRange)
	assert.ErrorIs(t, s.CalcSpreadPaths(rates, out[:2], spread.Range{Lo: 0, Hi: 3}), spread.ErrRange)

	wrong, _ := matrix.NewDense(3, 3)
	assert.ErrorIs(t, s.CalcSpreadPaths(wrong, out, spread.Range{Lo: 0, Hi: 1}), spread.ErrShape)

	_, err := s.MaxRate([]float64{1})
	assert.ErrorIs(t, err, spread.ErrShape)
}

// TestCalcSpreadPaths_WritesOnlyItsRange verifies the disjoint-write contract.
func TestCalcSpreadPaths_WritesOnlyItsRange(t *testing.T) {
	s := mustSolver(t, spread.Config{Shape: mustShape(t, 1), Width: 1, Depth: 1})
	rates, err := matrix.NewDenseOver(4, 1, []float64{1, 1, 1, 1})
	require.NoError(t, err)
	out := []float64{-1, -1, -1, -1}

	require.NoError(t, s.CalcSpreadPaths(rates, out, spread.Range{Lo: 1, Hi: 3}))
	assert.Equal(t, []float64{-1, 1, 1, -1}, out)
}

// TestPartition_Coverage checks gap-free, overlap-free, increasing ranges.
func TestPartition_Coverage(t *testing.T) {
	assert.Nil(t, spread.Partition(0, 4))

	for n := 1; n <= 40; n++ {
		for w := -1; w <= 45; w++ {
			ranges := spread.Partition(n, w)
			want := min(max(w, 1), n)
			require.Len(t, ranges, want, "n=%d w=%d", n, w)

			next := 0
			minLen, maxLen := n, 0
			for _, r := range ranges {
				require.Equal(t, next, r.Lo, "gap or overlap n=%d w=%d", n, w)
				require.Greater(t, r.Hi, r.Lo)
				next = r.Hi
				minLen = min(minLen, r.Len())
				maxLen = max(maxLen, r.Len())
			}
			require.Equal(t, n, next, "coverage n=%d w=%d", n, w)
			require.LessOrEqual(t, maxLen-minLen, 1)
		}
	}
}

// TestSolve_DeterministicAcrossWorkers compares serial and parallel results.
func TestSolve_DeterministicAcrossWorkers(t *testing.T) {
	tbl, err := fuel.NewTable([]fuel.Type{{Rate: 2, Fraction: 0.3}, {Rate: 7, Fraction: 0.3}, {Rate: 10, Fraction: 0.4}})
	require.NoError(t, err)
	m, err := combo.Generate(tbl, 2, 2, nil)
	require.NoError(t, err)
	defer m.Free()

	s := mustSolver(t, spread.Config{Shape: mustShape(t, 2.5), Width: 2, Depth: 2})

	serial := make([]float64, m.Count())
	require.NoError(t, spread.Solve(s, m.Rate, serial, 1))

	for _, workers := range []int{2, 3, 8, 81, 500} {
		par := make([]float64, m.Count())
		require.NoError(t, spread.Solve(s, m.Rate, par, workers))
		assert.Equal(t, serial, par, "workers=%d", workers)
	}

	for i, v := range serial {
		require.GreaterOrEqual(t, v, 0.0, "combination %d", i)
		require.LessOrEqual(t, v, 1.0, "combination %d", i)
	}
}

// TestSolve_Errors checks argument validation.
func TestSolve_Errors(t *testing.T) {
	s := mustSolver(t, spread.Config{Shape: mustShape(t, 1), Width: 1, Depth: 1})
	rates, _ := matrix.NewDense(2, 1)
	assert.ErrorIs(t, spread.Solve(nil, rates, make([]float64, 2), 1), spread.ErrConfig)
	assert.ErrorIs(t, spread.Solve(s, rates, make([]float64, 1), 1), spread.ErrRange)
}
