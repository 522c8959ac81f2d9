package textpath

import "math"

// kappa is the control point distance, as a fraction of the radius, of the
// cubic that best approximates a quarter circle.
const kappa = 0.5522847498307936

// PathBuilder provides a fluent interface for path construction.
// All methods return the builder for chaining.
//
// Besides the primitive commands it draws the template shapes the
// classifier recognizes, which is handy for producing reference paths:
//
//	d := textpath.BuildPath().Wave(0, 50, 300, 20, 3).String()
type PathBuilder struct {
	path *Path
}

// BuildPath starts a new path builder.
func BuildPath() *PathBuilder {
	return &PathBuilder{path: NewPath()}
}

// MoveTo moves to a new position.
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.path.MoveTo(x, y)
	return b
}

// LineTo draws a line to a position.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.path.LineTo(x, y)
	return b
}

// QuadTo draws a quadratic Bezier curve.
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	b.path.QuadraticTo(cx, cy, x, y)
	return b
}

// CubicTo draws a cubic Bezier curve.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	b.path.CubicTo(c1x, c1y, c2x, c2y, x, y)
	return b
}

// ArcTo draws an elliptical arc. See Path.ArcTo.
func (b *PathBuilder) ArcTo(rx, ry, rotation float64, largeArc, sweep bool, x, y float64) *PathBuilder {
	b.path.ArcTo(rx, ry, rotation, largeArc, sweep, x, y)
	return b
}

// Close closes the current subpath.
func (b *PathBuilder) Close() *PathBuilder {
	b.path.Close()
	return b
}

// Polyline adds an open subpath through pts.
func (b *PathBuilder) Polyline(pts ...Point) *PathBuilder {
	for i, p := range pts {
		if i == 0 {
			b.path.MoveTo(p.X, p.Y)
		} else {
			b.path.LineTo(p.X, p.Y)
		}
	}
	return b
}

// Circle adds a closed circle starting and ending at its rightmost point.
func (b *PathBuilder) Circle(cx, cy, r float64) *PathBuilder {
	k := kappa * r

	b.path.MoveTo(cx+r, cy)
	b.path.CubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	b.path.CubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	b.path.CubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	b.path.CubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	b.path.Close()
	return b
}

// Arch adds a circular arc from (x, y) to (x+width, y) bulging upward.
// bend is the swept angle as a fraction of a full turn; a bend of 1 or
// more draws the full circle with the chord as its diameter.
func (b *PathBuilder) Arch(x, y, width, bend float64) *PathBuilder {
	if bend >= 1 {
		return b.Circle(x+width/2, y, width/2)
	}
	theta := bend * 2 * math.Pi
	r := width / (2 * math.Sin(theta/2))

	b.path.MoveTo(x, y)
	b.path.ArcTo(r, r, 0, theta > math.Pi, true, x+width, y)
	return b
}

// Wave adds a wave of the given number of cycles along the baseline from
// (x, y) to (x+width, y), first rising by amplitude. Each half cycle is a
// quadratic curve.
func (b *PathBuilder) Wave(x, y, width, amplitude float64, cycles int) *PathBuilder {
	b.path.MoveTo(x, y)
	if cycles < 1 {
		b.path.LineTo(x+width, y)
		return b
	}

	half := width / float64(2*cycles)
	for i := 0; i < 2*cycles; i++ {
		// a quadratic peaks halfway to its control point
		peak := 2 * amplitude
		if i%2 == 1 {
			peak = -peak
		}
		x0 := x + float64(i)*half
		b.path.QuadraticTo(x0+half/2, y-peak, x0+half, y)
	}
	return b
}

// Bulge adds a parabolic arc from (x, y) to (x+width, y) whose apex sits
// height above the baseline. A negative height sags below it.
func (b *PathBuilder) Bulge(x, y, width, height float64) *PathBuilder {
	b.path.MoveTo(x, y)
	b.path.QuadraticTo(x+width/2, y-2*height, x+width, y)
	return b
}

// Build returns the constructed path.
func (b *PathBuilder) Build() *Path {
	return b.path
}

// String renders the constructed path as path data.
func (b *PathBuilder) String() string {
	return b.path.String()
}
