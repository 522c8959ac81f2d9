package textpath

import (
	"math"
	"sort"
)

// PathPoint is one sample on a path: its position, the direction of travel
// and the arc length from the path start.
type PathPoint struct {
	X, Y     float64
	Angle    float64 // tangent angle in radians
	Distance float64 // arc length from the first point
}

// Pos returns the sample position.
func (p PathPoint) Pos() Point {
	return Point{X: p.X, Y: p.Y}
}

// Samples is a fixed-size point sequence spaced evenly by arc length.
type Samples struct {
	// Points holds exactly the requested number of samples.
	Points []PathPoint

	// Length is the total arc length of the sampled path.
	Length float64

	// Closed reports that the path ends where it starts.
	Closed bool

	// Fallback reports that the path had no usable geometry and Points is
	// the nominal horizontal line instead.
	Fallback bool
}

// closeEpsilon is the endpoint distance, relative to path length, below
// which the sampler reports a path as closed.
const closeEpsilon = 1e-9

// SamplePath parses d and samples it. See Sample.
func SamplePath(d string, n int, cfg Config) Samples {
	return Sample(ParsePath(d).Segments, n, cfg)
}

// Sample returns exactly n points evenly spaced by arc length along segs.
//
// n is clamped into the configured point bounds (at most [2, 4096]); n <= 0
// derives the count from the path length and cfg.SamplesPerUnit. The first
// point sits on the path start with distance 0 and the last point on the
// path end with distance equal to the total length. Tangent angles come from
// the owning segment at the resolved parameter; no smoothing is applied.
//
// A path without length yields a horizontal fallback line of n points,
// flagged in Samples.Fallback.
func Sample(segs []Segment, n int, cfg Config) Samples {
	cum := make([]float64, len(segs))
	var total float64
	for i, seg := range segs {
		total += seg.Length()
		cum[i] = total
	}

	if len(segs) == 0 || !(total > 0) || !isFinite(total) {
		n = cfg.pointCount(n, FallbackLength)
		Logger().Debug("textpath: no usable geometry, sampling fallback line",
			"segments", len(segs), "points", n)
		return fallbackSamples(n)
	}

	n = cfg.pointCount(n, total)
	points := make([]PathPoint, n)
	last := len(segs) - 1
	for i := range points {
		d := float64(i) * total / float64(n-1)
		if i == n-1 {
			d = total
		}

		k := sort.SearchFloat64s(cum, d)
		if k > last {
			k = last
		}
		var before float64
		if k > 0 {
			before = cum[k-1]
		}

		seg := segs[k]
		t := seg.ArcLenToT(d - before)
		pos := seg.Eval(t)
		switch i {
		case 0:
			pos = segs[0].Start()
		case n - 1:
			pos = segs[last].End()
		}

		points[i] = PathPoint{
			X:        pos.X,
			Y:        pos.Y,
			Angle:    seg.Tangent(t).Atan2(),
			Distance: d,
		}
	}

	start, end := segs[0].Start(), segs[last].End()
	return Samples{
		Points: points,
		Length: total,
		Closed: start.Distance(end) <= closeEpsilon*math.Max(1, total),
	}
}

// fallbackSamples returns n points along the horizontal line from (0, 0)
// to (FallbackLength, 0).
func fallbackSamples(n int) Samples {
	points := make([]PathPoint, n)
	for i := range points {
		d := float64(i) * FallbackLength / float64(n-1)
		if i == n-1 {
			d = FallbackLength
		}
		points[i] = PathPoint{X: d, Y: 0, Angle: 0, Distance: d}
	}
	return Samples{Points: points, Length: FallbackLength, Fallback: true}
}

// Positions returns the sample positions.
func (s Samples) Positions() []Point {
	pts := make([]Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = p.Pos()
	}
	return pts
}
