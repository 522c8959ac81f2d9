package textpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func classifyPath(t *testing.T, d string, n int, cfg Config) (Classification, bool) {
	t.Helper()
	s := SamplePath(d, n, cfg)
	if s.Fallback {
		t.Fatalf("%q sampled as fallback", d)
	}
	return Classify(s.Points, cfg)
}

func TestClassify_Circle(t *testing.T) {
	c, ok := classifyPath(t, circlePath, 128, DefaultConfig())
	if !ok {
		t.Fatal("circle not recognized")
	}
	circle, isCircle := c.Preset.(Circle)
	if !isCircle {
		t.Fatalf("preset = %v, want circle", c.Kind())
	}
	if math.Abs(circle.Radius-50) > 0.05*50 {
		t.Errorf("radius = %v, want 50 within 5%%", circle.Radius)
	}
	if c.Confidence <= 0.8 {
		t.Errorf("confidence = %v, want > 0.8", c.Confidence)
	}
}

func TestClassify_CircleScales(t *testing.T) {
	for _, r := range []float64{1, 20, 500} {
		p := NewPath()
		p.MoveTo(r, 0)
		p.ArcTo(r, r, 0, false, true, -r, 0)
		p.ArcTo(r, r, 0, false, true, r, 0)
		p.Close()

		s := Sample(p.Segments(), 200, DefaultConfig())
		c, ok := Classify(s.Points, DefaultConfig())
		if !ok || c.Kind() != PresetCircle {
			t.Fatalf("r=%v: got %v, %v; want circle", r, c.Kind(), ok)
		}
		if got := c.Preset.(Circle).Radius; math.Abs(got-r) > 0.01*r {
			t.Errorf("r=%v: radius = %v", r, got)
		}
	}
}

func TestClassify_Presets(t *testing.T) {
	tests := []struct {
		name  string
		d     string
		kind  PresetKind
		check func(t *testing.T, p Preset)
	}{
		{
			name: "arch",
			d:    "M0,50 A50,50 0 0 1 100,50",
			kind: PresetArch,
			check: func(t *testing.T, p Preset) {
				if b := p.(Arch).Bend; math.Abs(b-0.5) > 0.02 {
					t.Errorf("bend = %v, want 0.5", b)
				}
			},
		},
		{
			name: "wave",
			d:    "M0,50 Q25,10 50,50 T100,50 T150,50 T200,50",
			kind: PresetWave,
			check: func(t *testing.T, p Preset) {
				w := p.(Wave)
				if math.Abs(w.Period-0.5) > 0.02 {
					t.Errorf("period = %v, want 0.5", w.Period)
				}
				if w.Amplitude <= 0 || w.Amplitude >= 0.2 {
					t.Errorf("amplitude = %v, want in (0, 0.2)", w.Amplitude)
				}
			},
		},
		{
			name: "inflate",
			d:    "M0,100 Q100,-100 200,100",
			kind: PresetInflate,
			check: func(t *testing.T, p Preset) {
				if c := p.(Inflate).Curvature; math.Abs(c-2) > 0.1 {
					t.Errorf("curvature = %v, want 2", c)
				}
			},
		},
		{
			name: "deflate",
			d:    "M0,0 Q100,200 200,0",
			kind: PresetDeflate,
			check: func(t *testing.T, p Preset) {
				if c := p.(Deflate).Curvature; math.Abs(c-2) > 0.1 {
					t.Errorf("curvature = %v, want 2", c)
				}
			},
		},
		{
			name: "flat rise",
			d:    "M0,0 L100,0",
			kind: PresetRise,
			check: func(t *testing.T, p Preset) {
				if a := p.(Rise).Angle; math.Abs(a) > 1e-9 {
					t.Errorf("angle = %v, want 0", a)
				}
			},
		},
		{
			name: "gentle rise",
			d:    "M0,0 L100,-30",
			kind: PresetRise,
			check: func(t *testing.T, p Preset) {
				if a := p.(Rise).Angle; math.Abs(a-math.Atan(0.3)) > 1e-6 {
					t.Errorf("angle = %v, want %v", a, math.Atan(0.3))
				}
			},
		},
		{
			name: "rise drawn right to left",
			d:    "M100,-30 L0,0",
			kind: PresetRise,
			check: func(t *testing.T, p Preset) {
				if a := p.(Rise).Angle; math.Abs(a-math.Atan(0.3)) > 1e-6 {
					t.Errorf("angle = %v, want %v", a, math.Atan(0.3))
				}
			},
		},
		{
			name: "slant",
			d:    "M0,0 L100,-150",
			kind: PresetSlant,
			check: func(t *testing.T, p Preset) {
				if a := p.(Slant).Angle; math.Abs(a-math.Atan(1.5)) > 1e-6 {
					t.Errorf("angle = %v, want %v", a, math.Atan(1.5))
				}
			},
		},
		{
			name: "falling slant",
			d:    "M0,0 L100,150",
			kind: PresetSlant,
			check: func(t *testing.T, p Preset) {
				if a := p.(Slant).Angle; math.Abs(a+math.Atan(1.5)) > 1e-6 {
					t.Errorf("angle = %v, want %v", a, -math.Atan(1.5))
				}
			},
		},
		{
			name: "triangle",
			d:    "M0,100 L50,0 L100,100",
			kind: PresetTriangle,
			check: func(t *testing.T, p Preset) {
				if x := p.(Triangle).ApexX; math.Abs(x-0.5) > 0.02 {
					t.Errorf("apex x = %v, want 0.5", x)
				}
			},
		},
		{
			name: "off-center triangle",
			d:    "M0,100 L30,0 L100,100",
			kind: PresetTriangle,
			check: func(t *testing.T, p Preset) {
				if x := p.(Triangle).ApexX; math.Abs(x-0.3) > 0.02 {
					t.Errorf("apex x = %v, want 0.3", x)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := classifyPath(t, tt.d, 128, DefaultConfig())
			if !ok {
				t.Fatalf("%q not recognized, want %v", tt.d, tt.kind)
			}
			if c.Kind() != tt.kind {
				t.Fatalf("preset = %v, want %v", c.Kind(), tt.kind)
			}
			if c.Confidence <= 0.8 || c.Confidence > 1 {
				t.Errorf("confidence = %v, want in (0.8, 1]", c.Confidence)
			}
			if c.Error < 0 || c.Error >= 0.05 {
				t.Errorf("error = %v, want in [0, 0.05)", c.Error)
			}
			tt.check(t, c.Preset)
		})
	}
}

func TestClassify_NoMatch(t *testing.T) {
	tests := []struct {
		name string
		d    string
	}{
		{"zigzag", "M0,0 L20,50 L10,80 L60,10 L0,40"},
		{"square", "M10,10 h50 v50 h-50 Z"},
		{"spiral", "M50,50 a10,10 0 0 1 20,0 a20,20 0 0 1 -40,0 a30,30 0 0 1 60,0 a40,40 0 0 1 -80,0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if c, ok := classifyPath(t, tt.d, 128, DefaultConfig()); ok {
				t.Errorf("%q classified as %v, want no match", tt.d, c.Kind())
			}
		})
	}
}

func TestClassify_TooFewPoints(t *testing.T) {
	cfg := DefaultConfig()
	for _, n := range []int{2, 3, 10, 15} {
		s := SamplePath(circlePath, n, cfg)
		if c, ok := Classify(s.Points, cfg); ok {
			t.Errorf("n=%d: classified as %v, want no match", n, c.Kind())
		}
	}
	if _, ok := Classify(nil, cfg); ok {
		t.Error("nil points classified")
	}
}

func TestClassify_Disabled(t *testing.T) {
	cfg := NewConfig(WithClassify(false))
	s := SamplePath(circlePath, 128, cfg)
	if _, ok := Classify(s.Points, cfg); ok {
		t.Error("classified with classification disabled")
	}
}

func TestClassify_Gate(t *testing.T) {
	strict := NewConfig(WithMinConfidence(0.9999))
	if c, ok := classifyPath(t, circlePath, 128, strict); ok {
		t.Errorf("strict gate accepted %v with confidence %v", c.Kind(), c.Confidence)
	}

	// The gate applies to the regeneration error as well.
	tight := NewConfig(WithMaxError(1e-9))
	if c, ok := classifyPath(t, "M0,100 L50,0 L100,100", 128, tight); ok {
		t.Errorf("tight gate accepted %v", c.Kind())
	}
}

func TestClassify_GateFallsThrough(t *testing.T) {
	segs := BuildPath().Arch(0, 0, 100, 0.25).Build().Segments()
	s := Sample(segs, 128, DefaultConfig())

	c, ok := Classify(s.Points, DefaultConfig())
	if !ok || c.Kind() != PresetArch {
		t.Fatalf("default thresholds: got %v, %v; want arch", c.Kind(), ok)
	}

	// The arc still fits within a tighter circle threshold, but with too
	// little confidence; the quadratic family gets its turn.
	th := DefaultThresholds()
	th.CircleRMSE = 1e-4
	cfg := NewConfig(WithThresholds(th))
	c, ok = Classify(s.Points, cfg)
	if !ok || c.Kind() != PresetInflate {
		t.Fatalf("tight circle threshold: got %v, %v; want inflate", c.Kind(), ok)
	}
	if c.Confidence <= cfg.Thresholds.MinConfidence || c.Error >= cfg.Thresholds.MaxError {
		t.Errorf("accepted candidate fails gate: confidence %v, error %v", c.Confidence, c.Error)
	}
}

func TestClassify_InvalidThresholdsUseDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Thresholds.CircleRMSE = -1
	cfg.Thresholds.MinConfidence = 2

	c, ok := classifyPath(t, circlePath, 128, cfg)
	if !ok || c.Kind() != PresetCircle {
		t.Errorf("got %v, %v; want circle under default thresholds", c.Kind(), ok)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	for _, d := range []string{circlePath, "M0,50 Q25,10 50,50 T100,50 T150,50 T200,50", "M0,100 L50,0 L100,100"} {
		s1 := SamplePath(d, 128, cfg)
		s2 := SamplePath(d, 128, cfg)
		c1, ok1 := Classify(s1.Points, cfg)
		c2, ok2 := Classify(s2.Points, cfg)
		if ok1 != ok2 {
			t.Fatalf("%q: match differs between runs", d)
		}
		if diff := cmp.Diff(c1, c2); diff != "" {
			t.Errorf("%q: classification differs:\n%s", d, diff)
		}
	}
}

func TestClassify_DoesNotModifyPoints(t *testing.T) {
	s := SamplePath("M0,0 L100,-30", 64, DefaultConfig())
	before := append([]PathPoint(nil), s.Points...)
	Classify(s.Points, DefaultConfig())
	if diff := cmp.Diff(before, s.Points); diff != "" {
		t.Errorf("Classify modified its input:\n%s", diff)
	}
}

func TestSweepAngles(t *testing.T) {
	got := sweepAngles(45, 5)
	if len(got) != 19 {
		t.Fatalf("len = %d, want 19", len(got))
	}
	if got[0] != 0 {
		t.Errorf("first angle = %v, want 0", got[0])
	}
	for i := 1; i < len(got); i++ {
		if math.Abs(got[i]) < math.Abs(got[i-1]) {
			t.Errorf("angles not ordered by magnitude: %v", got)
			break
		}
	}
	if got := sweepAngles(0, 5); !cmp.Equal(got, []float64{0}) {
		t.Errorf("sweepAngles(0, 5) = %v, want [0]", got)
	}
}

func TestMonotonicity(t *testing.T) {
	tests := []struct {
		name      string
		xs        []float64
		fwd, back float64
	}{
		{"increasing", []float64{0, 1, 2, 3}, 1, 0},
		{"decreasing", []float64{3, 2, 1}, 0, 1},
		{"flat steps ignored", []float64{0, 0, 1, 1, 2}, 1, 0},
		{"mixed", []float64{0, 1, 0, 1, 2}, 0.75, 0.25},
		{"constant", []float64{1, 1, 1}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fwd, back := monotonicity(tt.xs)
			if fwd != tt.fwd || back != tt.back {
				t.Errorf("monotonicity = (%v, %v), want (%v, %v)", fwd, back, tt.fwd, tt.back)
			}
		})
	}
}

func TestCurvatureFlips(t *testing.T) {
	tests := []struct {
		name   string
		xs, ys []float64
		expect int
	}{
		{"straight", []float64{0, 1, 2, 3}, []float64{0, 0, 0, 0}, 0},
		{"convex", []float64{0, 1, 2, 3, 4}, []float64{0, 3, 4, 3, 0}, 0},
		{"wiggle", []float64{0, 1, 2, 3, 4, 5}, []float64{0, 1, 1.5, 2.5, 3, 4}, 3},
		{"corner", []float64{0, 1, 2, 3, 4}, []float64{0, 1, 2, 1, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := curvatureFlips(tt.xs, tt.ys); got != tt.expect {
				t.Errorf("curvatureFlips = %d, want %d", got, tt.expect)
			}
		})
	}
}

func TestSingleApex(t *testing.T) {
	tests := []struct {
		name string
		ys   []float64
		apex int
		ok   bool
	}{
		{"peak", []float64{0, 1, 2, 1, 0}, 2, true},
		{"valley", []float64{2, 1, 0, 1, 2}, 2, true},
		{"monotonic", []float64{0, 1, 2, 3}, 0, false},
		{"two peaks", []float64{0, 1, 0, 1, 0}, 0, false},
		{"flat top", []float64{0, 1, 1, 0}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apex, ok := singleApex(tt.ys)
			if ok != tt.ok || (ok && apex != tt.apex) {
				t.Errorf("singleApex = (%d, %v), want (%d, %v)", apex, ok, tt.apex, tt.ok)
			}
		})
	}
}
