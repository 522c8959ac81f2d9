package textpath

import (
	"math"
	"strconv"
	"strings"
)

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path represents a vector path as an ordered list of elements.
// The start and current points are tracked while elements are appended.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current subpath
	current  Point // Current point
	started  bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.started = true
}

// LineTo draws a line to a position.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	ctrl := Pt(cx, cy)
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: ctrl, Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    Pt(x, y),
	})
	p.current = Pt(x, y)
}

// Close closes the current subpath; the current point returns to the subpath start.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// ArcTo draws an elliptical arc from the current point to (x, y) using the
// endpoint parameterization of the path grammar: radii rx and ry, x-axis
// rotation in degrees, and the large-arc and sweep flags. The arc is
// emitted as cubic Bezier curves of at most 90 degrees each.
func (p *Path) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) {
	from := p.current
	to := Pt(x, y)
	if from == to {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		p.LineTo(x, y)
		return
	}

	phi := rotation * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	// Endpoint to center conversion, see the SVG implementation notes (F.6.5).
	dx := (from.X - to.X) / 2
	dy := (from.Y - to.Y) / 2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	// Scale up radii that cannot span the endpoints.
	if lambda := (x1*x1)/(rx*rx) + (y1*y1)/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	cx := cosPhi*cx1 - sinPhi*cy1 + (from.X+to.X)/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (from.Y+to.Y)/2

	theta1 := V2(1, 0).Angle(V2((x1-cx1)/rx, (y1-cy1)/ry))
	delta := V2((x1-cx1)/rx, (y1-cy1)/ry).Angle(V2((-x1-cx1)/rx, (-y1-cy1)/ry))
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	const maxAngle = math.Pi / 2
	n := int(math.Ceil(math.Abs(delta)/maxAngle - 1e-9))
	if n < 1 {
		n = 1
	}
	step := delta / float64(n)
	alpha := 4.0 / 3.0 * math.Tan(step/4)

	// point and derivative on the unrotated ellipse, mapped to path space
	at := func(theta float64) (Point, Vec2) {
		sin, cos := math.Sincos(theta)
		px, py := rx*cos, ry*sin
		tx, ty := -rx*sin, ry*cos
		return Pt(cosPhi*px-sinPhi*py+cx, sinPhi*px+cosPhi*py+cy),
			V2(cosPhi*tx-sinPhi*ty, sinPhi*tx+cosPhi*ty)
	}

	theta := theta1
	for i := 0; i < n; i++ {
		p0, d0 := at(theta)
		p3, d3 := at(theta + step)
		c1 := p0.Add(d0.Mul(alpha))
		c2 := p3.Add(d3.Mul(-alpha))
		if i == n-1 {
			p3 = to
		}
		p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p3.X, p3.Y)
		theta += step
	}
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// StartPoint returns the start of the current subpath.
func (p *Path) StartPoint() Point {
	return p.start
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// HasCurrentPoint reports whether a subpath has been started with MoveTo.
func (p *Path) HasCurrentPoint() bool {
	return p.started
}

// Segments converts the path into drawable segments. Moves do not produce
// segments, Close produces a line back to the subpath start only when the
// current point differs from it, and zero-length pieces are skipped.
func (p *Path) Segments() []Segment {
	segs := make([]Segment, 0, len(p.elements))
	var current, start Point

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			start = e.Point
			current = e.Point
		case LineTo:
			if e.Point != current {
				segs = append(segs, NewLineSegment(current, e.Point))
			}
			current = e.Point
		case QuadTo:
			if !(e.Control == current && e.Point == current) {
				segs = append(segs, NewQuadSegment(current, e.Control, e.Point))
			}
			current = e.Point
		case CubicTo:
			if !(e.Control1 == current && e.Control2 == current && e.Point == current) {
				segs = append(segs, NewCubicSegment(current, e.Control1, e.Control2, e.Point))
			}
			current = e.Point
		case Close:
			if current != start {
				segs = append(segs, NewLineSegment(current, start))
			}
			current = start
		}
	}

	return segs
}

// String renders the path in the compact path grammar with absolute commands.
func (p *Path) String() string {
	var sb strings.Builder
	num := func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
	pt := func(q Point) string { return num(q.X) + "," + num(q.Y) }

	for i, elem := range p.elements {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch e := elem.(type) {
		case MoveTo:
			sb.WriteString("M" + pt(e.Point))
		case LineTo:
			sb.WriteString("L" + pt(e.Point))
		case QuadTo:
			sb.WriteString("Q" + pt(e.Control) + " " + pt(e.Point))
		case CubicTo:
			sb.WriteString("C" + pt(e.Control1) + " " + pt(e.Control2) + " " + pt(e.Point))
		case Close:
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.elements = make([]PathElement, len(p.elements))
	copy(result.elements, p.elements)
	result.start = p.start
	result.current = p.current
	result.started = p.started
	return result
}
