package spread

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/randfuel/matrix"
)

var (
	// ErrConfig indicates an invalid solver configuration (block shape or margins).
	ErrConfig = errors.New("spread: invalid solver configuration")

	// ErrShape indicates that a rate matrix does not match the solver's block.
	ErrShape = errors.New("spread: rate matrix does not match block shape")

	// ErrRange indicates an index range outside the rate matrix or output vector.
	ErrRange = errors.New("spread: index range out of bounds")
)

// cellSize is the forward length of one block row in relative units.
const cellSize = 1.0

// side is where a path sits across its column on a row boundary.
type side uint8

const (
	center side = iota
	left
	right
	sides = 3
)

// offset returns the lateral distance from s to the edge shared with the
// neighbour in direction dir (−1 left, +1 right).
func (s side) offset(dir int) float64 {
	switch {
	case s == center:
		return 0.5
	case (s == right && dir > 0) || (s == left && dir < 0):
		return 0
	default:
		return 1
	}
}

// candidate is one live path on a row boundary.
type candidate struct {
	col  int
	side side
	time float64 // cumulative travel time, relative units
	dist float64 // cumulative relative distance covered
}

// Config describes the block a Solver works on.
type Config struct {
	Shape Shape

	// Width and Depth are the block columns and rows.
	Width, Depth int

	// Margin is the number of lateral extension columns on each side of the
	// sampled window. Ignition columns inside the margin start with a delay.
	Margin int

	// LessIgnitions excludes this many columns at each block edge from ignition.
	LessIgnitions int
}

// Solver computes the maximum effective spread rate of combinations.
// A Solver is immutable after construction and may be shared by workers; each
// CalcSpreadPaths call owns its scratch space.
type Solver struct {
	shape        Shape
	width, depth int
	first, last  int       // sampled window, inclusive
	ignLo, ignHi int       // ignition columns, inclusive
	delay        []float64 // start delay per column
}

// NewSolver validates cfg and precomputes ignition columns and start delays.
// Stage 1 (Validate): Width, Depth ≥ 1; Margin, LessIgnitions ≥ 0; 2·Margin < Width.
// Stage 2 (Prepare): ignition columns [lo, Width−1−lo], lo = min(LessIgnitions, (Width−1)/2).
// Stage 3 (Delay): columns outside the window wait FlankTime(d, 0) for lateral
// fire travelling d columns from the window at the fastest fuel's rate.
// Complexity: O(Width).
func NewSolver(cfg Config) (*Solver, error) {
	if cfg.Width < 1 || cfg.Depth < 1 || cfg.Margin < 0 || cfg.LessIgnitions < 0 || 2*cfg.Margin >= cfg.Width {
		return nil, fmt.Errorf("width=%d depth=%d margin=%d less=%d: %w",
			cfg.Width, cfg.Depth, cfg.Margin, cfg.LessIgnitions, ErrConfig)
	}
	if cfg.Shape.a2c2 <= 0 {
		return nil, fmt.Errorf("shape not initialised: %w", ErrConfig)
	}

	lo := min(cfg.LessIgnitions, (cfg.Width-1)/2)
	s := &Solver{
		shape: cfg.Shape,
		width: cfg.Width,
		depth: cfg.Depth,
		first: cfg.Margin,
		last:  cfg.Width - 1 - cfg.Margin,
		ignLo: lo,
		ignHi: cfg.Width - 1 - lo,
		delay: make([]float64, cfg.Width),
	}
	for k := 0; k < s.width; k++ {
		var d int
		switch {
		case k < s.first:
			d = s.first - k
		case k > s.last:
			d = k - s.last
		}
		if d > 0 {
			s.delay[k] = s.shape.FlankTime(float64(d)*cellSize, 0)
		}
	}

	return s, nil
}

// Width returns the number of block columns.
func (s *Solver) Width() int { return s.width }

// Depth returns the number of block rows.
func (s *Solver) Depth() int { return s.depth }

// Ignitions returns the inclusive range of ignition columns.
func (s *Solver) Ignitions() (lo, hi int) { return s.ignLo, s.ignHi }

// Delay returns the start delay of column k.
func (s *Solver) Delay(k int) float64 { return s.delay[k] }

// workspace is per-call scratch: the live path set for the current and next
// row boundary, indexed by col·sides + side.
type workspace struct {
	cur, next []candidate
}

func (s *Solver) newWorkspace() *workspace {
	n := s.width * sides
	return &workspace{cur: make([]candidate, n), next: make([]candidate, n)}
}

func reset(set []candidate, width int) {
	for c := 0; c < width; c++ {
		for sd := side(0); sd < sides; sd++ {
			set[c*sides+int(sd)] = candidate{col: c, side: sd, time: math.Inf(1)}
		}
	}
}

// relax keeps the faster of the stored candidate and (t, d); ties prefer the
// shorter distance.
func relax(set []candidate, col int, sd side, t, d float64) {
	c := &set[col*sides+int(sd)]
	if t < c.time || (t == c.time && d < c.dist) {
		c.time = t
		c.dist = d
	}
}

// CalcSpreadPaths writes the maximum spread rate of every combination in r to
// out[r.Lo:r.Hi]. It reads rates row by row and never touches other indices,
// so calls over disjoint ranges may run concurrently.
// Complexity: O((r.Hi−r.Lo) · ignitions · Depth · Width).
func (s *Solver) CalcSpreadPaths(rates *matrix.Dense, out []float64, r Range) error {
	if rates == nil || rates.Cols() != s.width*s.depth {
		return ErrShape
	}
	if r.Lo < 0 || r.Lo > r.Hi || r.Hi > rates.Rows() || r.Hi > len(out) {
		return fmt.Errorf("[%d,%d) of %d/%d: %w", r.Lo, r.Hi, rates.Rows(), len(out), ErrRange)
	}

	ws := s.newWorkspace()
	for i := r.Lo; i < r.Hi; i++ {
		row, err := rates.Row(i)
		if err != nil {
			return err
		}
		out[i] = s.maxRate(row, ws)
	}

	return nil
}

// MaxRate returns the maximum spread rate of a single combination row.
func (s *Solver) MaxRate(row []float64) (float64, error) {
	if len(row) != s.width*s.depth {
		return 0, ErrShape
	}

	return s.maxRate(row, s.newWorkspace()), nil
}

// maxRate is Depth·cellSize over the fastest path time of any ignition column.
// No path (every route blocked by zero-rate fuel) yields rate 0.
func (s *Solver) maxRate(row []float64, ws *workspace) float64 {
	best := math.Inf(1)
	for k := s.ignLo; k <= s.ignHi; k++ {
		if t := s.pathTime(row, k, ws); t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) || best <= 0 {
		return 0
	}

	return float64(s.depth) * cellSize / best
}

// pathTime grows the fire from the bottom of column k row by row and returns
// the earliest arrival at the top of column k.
//
// Every live candidate spawns up to three successors per row:
//   - straight ahead through its own cell;
//   - into each neighbour: flank across its own cell to the shared edge
//     (FlankTime(dx, 0) at the local rate, free when already on the edge),
//     then cross the row in the neighbour's fuel, entering it on the near edge.
func (s *Solver) pathTime(row []float64, k int, ws *workspace) float64 {
	reset(ws.cur, s.width)
	ws.cur[k*sides+int(center)].time = s.delay[k]
	ws.cur[k*sides+int(center)].dist = 0

	for r := 0; r < s.depth; r++ {
		reset(ws.next, s.width)
		base := r * s.width
		for _, c := range ws.cur {
			if math.IsInf(c.time, 1) {
				continue
			}
			q := row[base+c.col]
			if q > 0 {
				relax(ws.next, c.col, c.side, c.time+cellSize/q, c.dist+cellSize)
			}
			for _, dir := range [2]int{-1, 1} {
				n := c.col + dir
				if n < 0 || n >= s.width {
					continue
				}
				qn := row[base+n]
				if qn <= 0 {
					continue
				}
				dx := c.side.offset(dir) * cellSize
				lat := 0.0
				if dx > 0 {
					if q <= 0 {
						continue
					}
					lat = s.shape.FlankTime(dx, 0) / q
				}
				entry := left
				if dir < 0 {
					entry = right
				}
				relax(ws.next, n, entry, c.time+lat+cellSize/qn, c.dist+dx+cellSize)
			}
		}
		ws.cur, ws.next = ws.next, ws.cur
	}

	best := math.Inf(1)
	for sd := side(0); sd < sides; sd++ {
		if t := ws.cur[k*sides+int(sd)].time; t < best {
			best = t
		}
	}

	return best
}
