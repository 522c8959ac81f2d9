package textpath

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/gogpu/textpath/internal/fit"
)

// Numerical noise floors in normalized (unit box) coordinates.
const (
	stepEpsilon  = 1e-9  // x or y steps smaller than this carry no direction
	crossEpsilon = 1e-10 // cross products smaller than this carry no turning sign
)

// Classify matches a sampled path against the preset shapes.
//
// The points are normalized into a unit box (y pointing up). A closed path
// is tested only as a Circle. An open path is first rotated within the
// configured sweep to the reading direction that maximizes x-monotonicity;
// paths that stay below the monotonicity threshold are not classified.
// Hypotheses are then tried in fixed order (circle/arch, wave,
// inflate/deflate, rise/slant, triangle). The result is the first candidate
// that fits within its family threshold and whose confidence and estimated
// error also pass the configured gate.
//
// Classify reports false when classification is disabled, when fewer than
// cfg.MinClassifyPoints points are given, or when no preset matches.
func Classify(points []PathPoint, cfg Config) (Classification, bool) {
	log := Logger()
	if !cfg.Classify {
		return Classification{}, false
	}
	if len(points) < max(cfg.MinClassifyPoints, 3) {
		log.Debug("textpath: too few points to classify", "points", len(points))
		return Classification{}, false
	}

	t := cfg.Thresholds
	if err := cfg.Validate(); err != nil {
		log.Warn("textpath: invalid classifier config, using default thresholds", "error", err)
		t = DefaultThresholds()
	}

	f, ok := normalizeFrame(points)
	if !ok {
		log.Debug("textpath: path has no extent")
		return Classification{}, false
	}

	if f.closed(t.CloseTolerance) {
		cand, ok := circleHypothesis(f, t, true)
		if !ok || !accept(cand, t) {
			return Classification{}, false
		}
		return cand, true
	}

	score := f.orient(t.RotationSweep, t.RotationStep)
	if score < t.MinMonotonicity {
		log.Debug("textpath: no reading direction", "monotonicity", score)
		return Classification{}, false
	}
	for _, h := range openHypotheses {
		if cand, ok := h(f, t); ok && accept(cand, t) {
			return cand, true
		}
	}
	return Classification{}, false
}

// accept applies the regeneration gate to a candidate.
func accept(c Classification, t Thresholds) bool {
	if c.Confidence > t.MinConfidence && c.Error < t.MaxError {
		return true
	}
	Logger().Debug("textpath: candidate failed regeneration check",
		"preset", c.Kind(), "confidence", c.Confidence, "error", c.Error)
	return false
}

// hypothesis tests one preset family against a normalized frame.
type hypothesis func(f *frame, t Thresholds) (Classification, bool)

var openHypotheses = []hypothesis{
	func(f *frame, t Thresholds) (Classification, bool) { return circleHypothesis(f, t, false) },
	waveHypothesis,
	quadraticHypothesis,
	linearHypothesis,
	triangleHypothesis,
}

// frame holds sample coordinates normalized into the unit box, y up.
type frame struct {
	xs, ys []float64

	scale    float64 // path units per normalized unit
	rotation float64 // radians applied to reach the reading direction
	reversed bool    // points are read end to start
}

func normalizeFrame(points []PathPoint) (*frame, bool) {
	f := &frame{
		xs: make([]float64, len(points)),
		ys: make([]float64, len(points)),
	}
	for i, p := range points {
		f.xs[i] = p.X
		f.ys[i] = -p.Y
	}
	extent := f.fitUnitBox()
	if !(extent > 0) || !isFinite(extent) {
		return nil, false
	}
	f.scale = extent
	return f, true
}

// fitUnitBox translates the bounding box minimum to the origin and scales
// uniformly so the larger side is 1. It returns the scale divisor.
func (f *frame) fitUnitBox() float64 {
	minX, minY := floats.Min(f.xs), floats.Min(f.ys)
	extent := math.Max(floats.Max(f.xs)-minX, floats.Max(f.ys)-minY)
	if !(extent > 0) {
		return extent
	}
	for i := range f.xs {
		f.xs[i] = (f.xs[i] - minX) / extent
		f.ys[i] = (f.ys[i] - minY) / extent
	}
	return extent
}

func (f *frame) closed(tolerance float64) bool {
	n := len(f.xs) - 1
	return math.Hypot(f.xs[n]-f.xs[0], f.ys[n]-f.ys[0]) <= tolerance
}

// orient searches rotations in [-sweep, sweep] degrees for the best
// x-monotonicity, reading the points in either direction, and applies the
// winner. Ties keep the smallest rotation. It returns the best score.
func (f *frame) orient(sweep, step float64) float64 {
	best, bestAngle, reverse := -1.0, 0.0, false
	for _, deg := range sweepAngles(sweep, step) {
		rad := deg * math.Pi / 180
		xs, _ := rotateAboutCentroid(f.xs, f.ys, rad)
		fwd, back := monotonicity(xs)
		if fwd > best {
			best, bestAngle, reverse = fwd, rad, false
		}
		if back > best {
			best, bestAngle, reverse = back, rad, true
		}
	}

	if bestAngle != 0 {
		f.xs, f.ys = rotateAboutCentroid(f.xs, f.ys, bestAngle)
		f.rotation = bestAngle
		f.scale *= f.fitUnitBox()
	}
	if reverse {
		floats.Reverse(f.xs)
		floats.Reverse(f.ys)
		f.reversed = true
	}
	return best
}

// sweepAngles lists the candidate rotations in degrees ordered by distance
// from zero.
func sweepAngles(sweep, step float64) []float64 {
	if !(step > 0) || !(sweep > 0) {
		return []float64{0}
	}
	steps := int(math.Round(2*sweep/step)) + 1
	if steps < 2 {
		return []float64{0}
	}
	angles := floats.Span(make([]float64, steps), -sweep, sweep)
	for i, a := range angles {
		if math.Abs(a) < 1e-9 {
			angles[i] = 0
		}
	}
	sort.SliceStable(angles, func(i, j int) bool {
		return math.Abs(angles[i]) < math.Abs(angles[j])
	})
	return angles
}

func rotateAboutCentroid(xs, ys []float64, angle float64) ([]float64, []float64) {
	n := float64(len(xs))
	cx, cy := floats.Sum(xs)/n, floats.Sum(ys)/n
	sin, cos := math.Sincos(angle)
	rx := make([]float64, len(xs))
	ry := make([]float64, len(ys))
	for i := range xs {
		dx, dy := xs[i]-cx, ys[i]-cy
		rx[i] = dx*cos - dy*sin
		ry[i] = dx*sin + dy*cos
	}
	return rx, ry
}

// monotonicity returns the fractions of non-negligible x steps that go
// forward and backward.
func monotonicity(xs []float64) (forward, backward float64) {
	var up, down int
	for i := 1; i < len(xs); i++ {
		switch dx := xs[i] - xs[i-1]; {
		case dx > stepEpsilon:
			up++
		case dx < -stepEpsilon:
			down++
		}
	}
	total := up + down
	if total == 0 {
		return 0, 0
	}
	return float64(up) / float64(total), float64(down) / float64(total)
}

// curvatureFlips counts sign changes of the turning direction along the
// points, ignoring nearly straight triples.
func curvatureFlips(xs, ys []float64) int {
	flips, last := 0, 0
	for i := 2; i < len(xs); i++ {
		a := V2(xs[i-1]-xs[i-2], ys[i-1]-ys[i-2])
		b := V2(xs[i]-xs[i-1], ys[i]-ys[i-1])
		cross := a.Cross(b)
		if math.Abs(cross) < crossEpsilon {
			continue
		}
		sign := 1
		if cross < 0 {
			sign = -1
		}
		if last != 0 && sign != last {
			flips++
		}
		last = sign
	}
	return flips
}

// circleHypothesis fits a circle; closed paths become Circle, open ones Arch.
func circleHypothesis(f *frame, t Thresholds, closed bool) (Classification, bool) {
	c, err := fit.FitCircle(f.xs, f.ys)
	if err != nil || c.RMSE >= t.CircleRMSE {
		return Classification{}, false
	}
	if curvatureFlips(f.xs, f.ys) > t.MaxCurvatureFlips {
		return Classification{}, false
	}

	var preset Preset
	if closed {
		preset, err = NewCircle(c.R * f.scale)
	} else {
		if c.R > t.MaxArchRadius {
			return Classification{}, false
		}
		// shallow parabolas are nearly circular; leave them to the quadratic
		if p, err := fit.FitPolynomial(f.xs, f.ys, 2); err == nil && p.RMSE < c.RMSE {
			return Classification{}, false
		}
		preset, err = NewArch(math.Min(sweptAngle(f.xs, f.ys, c.X, c.Y)/(2*math.Pi), 1))
	}
	if err != nil {
		return Classification{}, false
	}

	return Classification{
		Preset:     preset,
		Confidence: 1 - c.RMSE/t.CircleRMSE,
		Error:      c.RMSE,
	}, true
}

// sweptAngle accumulates the absolute angle the points turn around (cx, cy).
func sweptAngle(xs, ys []float64, cx, cy float64) float64 {
	var total float64
	prev := V2(xs[0]-cx, ys[0]-cy)
	for i := 1; i < len(xs); i++ {
		cur := V2(xs[i]-cx, ys[i]-cy)
		total += prev.Angle(cur)
		prev = cur
	}
	return math.Abs(total)
}

func waveHypothesis(f *frame, t Thresholds) (Classification, bool) {
	s, err := fit.FitSinusoid(f.xs, f.ys)
	if err != nil || s.Cycles < t.MinWaveCycles {
		return Classification{}, false
	}
	if !(s.SNR > t.WaveSNR) || s.Amplitude >= t.MaxWaveAmplitude {
		return Classification{}, false
	}

	w, err := NewWave(s.Amplitude, s.Period)
	if err != nil {
		return Classification{}, false
	}
	return Classification{Preset: w, Confidence: s.R2, Error: s.RMSE}, true
}

func quadraticHypothesis(f *frame, t Thresholds) (Classification, bool) {
	p, err := fit.FitPolynomial(f.xs, f.ys, 2)
	if err != nil || !(p.R2 > t.QuadraticR2) {
		return Classification{}, false
	}
	a := p.Leading()
	if math.Abs(a) < t.MinCurvature {
		return Classification{}, false
	}

	var preset Preset
	if a < 0 {
		preset, err = NewInflate(-a)
	} else {
		preset, err = NewDeflate(a)
	}
	if err != nil {
		return Classification{}, false
	}
	return Classification{Preset: preset, Confidence: p.R2, Error: p.RMSE}, true
}

func linearHypothesis(f *frame, t Thresholds) (Classification, bool) {
	l, err := fit.FitLine(f.xs, f.ys)
	if err != nil || !(l.R2 > t.LinearR2) {
		return Classification{}, false
	}

	// undo the reading-direction rotation
	angle := math.Atan(l.Slope) - f.rotation
	if angle > math.Pi/2 {
		angle -= math.Pi
	} else if angle < -math.Pi/2 {
		angle += math.Pi
	}

	var preset Preset
	if math.Abs(math.Tan(angle)) <= t.RiseMaxSlope {
		preset, err = NewRise(angle)
	} else {
		preset, err = NewSlant(angle)
	}
	if err != nil {
		return Classification{}, false
	}
	return Classification{Preset: preset, Confidence: l.R2, Error: l.RMSE}, true
}

func triangleHypothesis(f *frame, t Thresholds) (Classification, bool) {
	apex, ok := singleApex(f.ys)
	if !ok {
		return Classification{}, false
	}

	left, err := fit.FitLine(f.xs[:apex+1], f.ys[:apex+1])
	if err != nil {
		return Classification{}, false
	}
	right, err := fit.FitLine(f.xs[apex:], f.ys[apex:])
	if err != nil {
		return Classification{}, false
	}

	nl, nr := float64(apex+1), float64(len(f.xs)-apex)
	rmse := math.Sqrt((left.RMSE*left.RMSE*nl + right.RMSE*right.RMSE*nr) / (nl + nr))
	if rmse >= t.TriangleRMSE {
		return Classification{}, false
	}

	minX, maxX := floats.Min(f.xs), floats.Max(f.xs)
	tri, err := NewTriangle((f.xs[apex] - minX) / (maxX - minX))
	if err != nil {
		return Classification{}, false
	}
	return Classification{
		Preset:     tri,
		Confidence: 1 - rmse/t.TriangleRMSE,
		Error:      rmse,
	}, true
}

// singleApex finds the index of the only local extremum in ys. It fails
// when y turns around more than once or never.
func singleApex(ys []float64) (int, bool) {
	first, dir, turns := 0, 0, 0
	for i := 1; i < len(ys); i++ {
		dy := ys[i] - ys[i-1]
		if math.Abs(dy) < stepEpsilon {
			continue
		}
		d := 1
		if dy < 0 {
			d = -1
		}
		if first == 0 {
			first = d
		}
		if dir != 0 && d != dir {
			turns++
		}
		dir = d
	}
	if turns != 1 {
		return 0, false
	}

	apex := floats.MaxIdx(ys)
	if first < 0 {
		apex = floats.MinIdx(ys)
	}
	if apex == 0 || apex == len(ys)-1 {
		return 0, false
	}
	return apex, true
}
