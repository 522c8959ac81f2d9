package textpath

import (
	"fmt"
	"math"
	"sort"
)

// ArcTableSize is the number of intervals in every segment's arc-length
// table. Each table holds ArcTableSize+1 entries, from t=0 to t=1.
const ArcTableSize = 64

// derivNudge is the parameter offset used to look past a stationary point
// when a curve's derivative vanishes (coincident control points).
const derivNudge = 1e-6

// Segment is one drawable piece of a path: a line, a quadratic or a cubic
// Bezier curve. Segments are immutable once constructed.
type Segment interface {
	// Start returns the position at t=0.
	Start() Point

	// End returns the position at t=1.
	End() Point

	// Length returns the arc length of the segment.
	Length() float64

	// Eval returns the position at parameter t in [0, 1].
	Eval(t float64) Point

	// Tangent returns the unit tangent at parameter t. Where the tangent is
	// undefined it returns (1, 0).
	Tangent(t float64) Vec2

	// ArcLenToT maps an arc length s, measured from the segment start, to the
	// curve parameter. s is clamped into [0, Length()].
	ArcLenToT(s float64) float64
}

// arcEntry is one sample of the arc-length function: the curve length
// accumulated from t=0 up to T.
type arcEntry struct {
	T, S float64
}

// arcTable is a monotonic table of (t, s) pairs used to invert arc length.
type arcTable [ArcTableSize + 1]arcEntry

// length returns the total length recorded in the table.
func (tbl *arcTable) length() float64 {
	return tbl[ArcTableSize].S
}

// paramAt inverts arc length by binary search and linear interpolation
// between the two bracketing entries.
func (tbl *arcTable) paramAt(s float64) float64 {
	total := tbl.length()
	if s <= 0 || total <= 0 {
		return 0
	}
	if s >= total {
		return 1
	}

	// First entry whose accumulated length reaches s. Entry 0 has S == 0 < s,
	// so i >= 1 and the bracket [i-1, i] is always valid.
	i := sort.Search(len(tbl), func(i int) bool { return tbl[i].S >= s })
	lo, hi := tbl[i-1], tbl[i]
	if hi.S == lo.S {
		return lo.T
	}
	return lo.T + (hi.T-lo.T)*(s-lo.S)/(hi.S-lo.S)
}

// gaussLegendre5 holds (weight, abscissa) pairs for 5-point Gauss-Legendre
// quadrature on [-1, 1].
var gaussLegendre5 = [5][2]float64{
	{0.5688888888888889, 0.0000000000000000},
	{0.4786286704993665, -0.5384693101056831},
	{0.4786286704993665, 0.5384693101056831},
	{0.2369268850561891, -0.9061798459386640},
	{0.2369268850561891, 0.9061798459386640},
}

// buildArcTable integrates the speed |B'(t)| over each table interval.
func buildArcTable(deriv func(t float64) Vec2) arcTable {
	var tbl arcTable
	var s float64
	for i := 1; i <= ArcTableSize; i++ {
		t0 := float64(i-1) / ArcTableSize
		t1 := float64(i) / ArcTableSize
		half := (t1 - t0) / 2
		mid := (t0 + t1) / 2

		var acc float64
		for _, c := range gaussLegendre5 {
			acc += c[0] * deriv(mid+half*c[1]).Length()
		}
		s += acc * half
		tbl[i] = arcEntry{T: t1, S: s}
	}
	return tbl
}

// linearArcTable builds the exact table of a straight line, where arc
// length is proportional to t.
func linearArcTable(length float64) arcTable {
	var tbl arcTable
	for i := 1; i <= ArcTableSize; i++ {
		t := float64(i) / ArcTableSize
		tbl[i] = arcEntry{T: t, S: length * t}
	}
	tbl[ArcTableSize].S = length
	return tbl
}

// tangentOf normalizes a derivative, looking slightly inward when the curve
// is stationary at t.
func tangentOf(deriv func(t float64) Vec2, t float64) Vec2 {
	d := deriv(t)
	if d.IsZero() {
		if t < 0.5 {
			d = deriv(t + derivNudge)
		} else {
			d = deriv(t - derivNudge)
		}
	}
	return d.Unit()
}

// -------------------------------------------------------------------
// LineSegment
// -------------------------------------------------------------------

// LineSegment is a straight Segment.
type LineSegment struct {
	Line
	table arcTable
}

// NewLineSegment creates a line segment from p0 to p1.
func NewLineSegment(p0, p1 Point) *LineSegment {
	l := Line{P0: p0, P1: p1}
	return &LineSegment{Line: l, table: linearArcTable(l.Length())}
}

// Start returns the starting point of the line.
func (s *LineSegment) Start() Point { return s.P0 }

// End returns the ending point of the line.
func (s *LineSegment) End() Point { return s.P1 }

// Length returns the length of the line.
func (s *LineSegment) Length() float64 { return s.table.length() }

// Tangent returns the unit direction of the line, (1, 0) when it has zero length.
func (s *LineSegment) Tangent(float64) Vec2 { return s.Deriv().Unit() }

// ArcLenToT maps arc length to the line parameter.
func (s *LineSegment) ArcLenToT(arc float64) float64 { return s.table.paramAt(arc) }

func (s *LineSegment) String() string {
	return fmt.Sprintf("L(%g,%g %g,%g)", s.P0.X, s.P0.Y, s.P1.X, s.P1.Y)
}

// -------------------------------------------------------------------
// QuadSegment
// -------------------------------------------------------------------

// QuadSegment is a quadratic Bezier Segment.
type QuadSegment struct {
	QuadBez
	table arcTable
}

// NewQuadSegment creates a quadratic segment from p0 to p2 with control point p1.
func NewQuadSegment(p0, p1, p2 Point) *QuadSegment {
	q := QuadBez{P0: p0, P1: p1, P2: p2}
	return &QuadSegment{QuadBez: q, table: buildArcTable(q.Deriv)}
}

// Start returns the starting point of the curve.
func (s *QuadSegment) Start() Point { return s.P0 }

// End returns the ending point of the curve.
func (s *QuadSegment) End() Point { return s.P2 }

// Length returns the arc length of the curve.
func (s *QuadSegment) Length() float64 { return s.table.length() }

// Tangent returns the unit tangent at t.
func (s *QuadSegment) Tangent(t float64) Vec2 { return tangentOf(s.Deriv, clampUnit(t)) }

// ArcLenToT maps arc length to the curve parameter.
func (s *QuadSegment) ArcLenToT(arc float64) float64 { return s.table.paramAt(arc) }

func (s *QuadSegment) String() string {
	return fmt.Sprintf("Q(%g,%g %g,%g %g,%g)", s.P0.X, s.P0.Y, s.P1.X, s.P1.Y, s.P2.X, s.P2.Y)
}

// -------------------------------------------------------------------
// CubicSegment
// -------------------------------------------------------------------

// CubicSegment is a cubic Bezier Segment.
type CubicSegment struct {
	CubicBez
	table arcTable
}

// NewCubicSegment creates a cubic segment from p0 to p3 with control points p1 and p2.
func NewCubicSegment(p0, p1, p2, p3 Point) *CubicSegment {
	c := CubicBez{P0: p0, P1: p1, P2: p2, P3: p3}
	return &CubicSegment{CubicBez: c, table: buildArcTable(c.Deriv)}
}

// Start returns the starting point of the curve.
func (s *CubicSegment) Start() Point { return s.P0 }

// End returns the ending point of the curve.
func (s *CubicSegment) End() Point { return s.P3 }

// Length returns the arc length of the curve.
func (s *CubicSegment) Length() float64 { return s.table.length() }

// Tangent returns the unit tangent at t.
func (s *CubicSegment) Tangent(t float64) Vec2 { return tangentOf(s.Deriv, clampUnit(t)) }

// ArcLenToT maps arc length to the curve parameter.
func (s *CubicSegment) ArcLenToT(arc float64) float64 { return s.table.paramAt(arc) }

func (s *CubicSegment) String() string {
	return fmt.Sprintf("C(%g,%g %g,%g %g,%g %g,%g)",
		s.P0.X, s.P0.Y, s.P1.X, s.P1.Y, s.P2.X, s.P2.Y, s.P3.X, s.P3.Y)
}

func clampUnit(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
