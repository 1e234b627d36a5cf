package spread

import (
	"errors"
	"math"
)

// ErrLengthToBreadth indicates a length-to-breadth ratio below 1 or not finite.
var ErrLengthToBreadth = errors.New("spread: length-to-breadth ratio must be finite and >= 1")

// Shape holds the elliptical fire-shape constants for a unit head-fire rate.
//
// The fire grows as an ellipse whose rear focus stays at the ignition point:
// after time t (head rate 1) the ellipse has semi-major axis A·t along the
// spread direction, semi-minor axis B·t across it, and its centre sits C·t ahead
// of the ignition point. Head distance A+C == 1, back distance A−C == 1/HB.
type Shape struct {
	LB float64 // length-to-breadth ratio
	HB float64 // head-to-back ratio
	A  float64
	B  float64
	C  float64

	a2c2 float64 // A² − C², > 0
}

// NewShape derives the ellipse constants from a length-to-breadth ratio.
// Complexity: O(1).
func NewShape(lb float64) (Shape, error) {
	if math.IsNaN(lb) || math.IsInf(lb, 0) || lb < 1 {
		return Shape{}, ErrLengthToBreadth
	}
	root := math.Sqrt(lb*lb - 1)
	hb := (lb + root) / (lb - root)
	a := (1 + 1/hb) / 2
	c := a - 1/hb

	return Shape{
		LB:   lb,
		HB:   hb,
		A:    a,
		B:    a / lb,
		C:    c,
		a2c2: a*a - c*c,
	}, nil
}

// FlankTime returns the time a fire with head rate 1 needs to reach the point
// x across and y ahead of its ignition point.
//
// The point lies on the fire perimeter at time u when
//
//	x²/(B·u)² + (y − C·u)²/(A·u)² = 1
//
// which rearranges to (A²−C²)u² + 2Cy·u − (A²x²/B² + y²) = 0; the positive root is
// returned. Divide by the local head rate to get the time in a slower fuel.
//
// FlankTime(0, 1) == 1 and, for LB == 1, FlankTime(x, y) == √(x²+y²).
func (s Shape) FlankTime(x, y float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}
	k := s.A*s.A*x*x/(s.B*s.B) + y*y
	disc := s.C*s.C*y*y + s.a2c2*k

	return (-s.C*y + math.Sqrt(disc)) / s.a2c2
}
