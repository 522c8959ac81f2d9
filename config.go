package textpath

import (
	"errors"
	"math"
)

// Hard limits on the number of sampled points.
const (
	MinSamples = 2
	MaxSamples = 4096
)

// FallbackLength is the length of the horizontal line returned when a path
// has no usable geometry.
const FallbackLength = 100.0

// Thresholds holds the per-family acceptance limits of the classifier.
// Lengths are in normalized units, where the sampled path fits a unit box.
type Thresholds struct {
	// MinMonotonicity is the minimum x-monotonicity score of the best
	// rotation for an open path to be classified at all.
	MinMonotonicity float64 `toml:"min_monotonicity" yaml:"min_monotonicity"`

	// RotationSweep and RotationStep bound the reading-direction search, in degrees.
	RotationSweep float64 `toml:"rotation_sweep" yaml:"rotation_sweep"`
	RotationStep  float64 `toml:"rotation_step" yaml:"rotation_step"`

	// CloseTolerance is the normalized endpoint distance under which a path
	// counts as closed.
	CloseTolerance float64 `toml:"close_tolerance" yaml:"close_tolerance"`

	CircleRMSE        float64 `toml:"circle_rmse" yaml:"circle_rmse"`
	MaxCurvatureFlips int     `toml:"max_curvature_flips" yaml:"max_curvature_flips"`
	MaxArchRadius     float64 `toml:"max_arch_radius" yaml:"max_arch_radius"`

	WaveSNR          float64 `toml:"wave_snr" yaml:"wave_snr"`
	MaxWaveAmplitude float64 `toml:"max_wave_amplitude" yaml:"max_wave_amplitude"`
	MinWaveCycles    int     `toml:"min_wave_cycles" yaml:"min_wave_cycles"`

	QuadraticR2  float64 `toml:"quadratic_r2" yaml:"quadratic_r2"`
	MinCurvature float64 `toml:"min_curvature" yaml:"min_curvature"`

	LinearR2     float64 `toml:"linear_r2" yaml:"linear_r2"`
	RiseMaxSlope float64 `toml:"rise_max_slope" yaml:"rise_max_slope"`

	TriangleRMSE float64 `toml:"triangle_rmse" yaml:"triangle_rmse"`

	// MinConfidence and MaxError gate every candidate before it is returned.
	MinConfidence float64 `toml:"min_confidence" yaml:"min_confidence"`
	MaxError      float64 `toml:"max_error" yaml:"max_error"`
}

// Config holds the sampling and classification parameters.
//
// A Config is a plain value: build it once with NewConfig, pass it by value,
// and never mutate a Config that other goroutines are reading.
type Config struct {
	// Classify enables shape classification.
	Classify bool `toml:"classify" yaml:"classify"`

	// SamplesPerUnit is the sampling density used when no explicit point
	// count is requested.
	SamplesPerUnit float64 `toml:"samples_per_unit" yaml:"samples_per_unit"`

	// MinPoints and MaxPoints bound the point count, within [MinSamples, MaxSamples].
	MinPoints int `toml:"min_points" yaml:"min_points"`
	MaxPoints int `toml:"max_points" yaml:"max_points"`

	// MinClassifyPoints is the smallest sample set the classifier will fit.
	MinClassifyPoints int `toml:"min_classify_points" yaml:"min_classify_points"`

	Thresholds Thresholds `toml:"thresholds" yaml:"thresholds"`
}

// DefaultThresholds returns the classifier limits used by DefaultConfig.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinMonotonicity:   0.9,
		RotationSweep:     45,
		RotationStep:      5,
		CloseTolerance:    1e-3,
		CircleRMSE:        0.01,
		MaxCurvatureFlips: 2,
		MaxArchRadius:     2,
		WaveSNR:           20,
		MaxWaveAmplitude:  0.6,
		MinWaveCycles:     2,
		QuadraticR2:       0.98,
		MinCurvature:      0.1,
		LinearR2:          0.98,
		RiseMaxSlope:      0.5,
		TriangleRMSE:      0.02,
		MinConfidence:     0.8,
		MaxError:          0.05,
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Classify:          true,
		SamplesPerUnit:    1,
		MinPoints:         MinSamples,
		MaxPoints:         MaxSamples,
		MinClassifyPoints: 16,
		Thresholds:        DefaultThresholds(),
	}
}

// Option modifies a Config during construction.
//
// Example:
//
//	cfg := textpath.NewConfig(
//	    textpath.WithSamplesPerUnit(0.5),
//	    textpath.WithMinConfidence(0.9),
//	)
type Option func(*Config)

// NewConfig returns DefaultConfig with the options applied in order.
func NewConfig(opts ...Option) Config {
	return DefaultConfig().With(opts...)
}

// With returns a copy of c with the options applied. c is not modified.
func (c Config) With(opts ...Option) Config {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithClassify enables or disables shape classification.
func WithClassify(enabled bool) Option {
	return func(c *Config) {
		c.Classify = enabled
	}
}

// WithSamplesPerUnit sets the sampling density used when no point count is given.
func WithSamplesPerUnit(density float64) Option {
	return func(c *Config) {
		c.SamplesPerUnit = density
	}
}

// WithPointBounds sets the minimum and maximum point count.
func WithPointBounds(minPoints, maxPoints int) Option {
	return func(c *Config) {
		c.MinPoints = minPoints
		c.MaxPoints = maxPoints
	}
}

// WithThresholds replaces all classifier thresholds.
func WithThresholds(t Thresholds) Option {
	return func(c *Config) {
		c.Thresholds = t
	}
}

// WithMinConfidence sets the confidence a candidate must exceed to be returned.
func WithMinConfidence(v float64) Option {
	return func(c *Config) {
		c.Thresholds.MinConfidence = v
	}
}

// WithMaxError sets the estimated error a candidate must stay below to be returned.
func WithMaxError(v float64) Option {
	return func(c *Config) {
		c.Thresholds.MaxError = v
	}
}

// Validate reports every field holding an unusable value.
// The returned error joins one *ConfigError per offending field.
func (c Config) Validate() error {
	var errs []error
	bad := func(field string, value any) {
		errs = append(errs, &ConfigError{Field: field, Value: value})
	}

	if !(c.SamplesPerUnit > 0) || !isFinite(c.SamplesPerUnit) {
		bad("SamplesPerUnit", c.SamplesPerUnit)
	}
	if c.MinPoints < MinSamples || c.MinPoints > MaxSamples {
		bad("MinPoints", c.MinPoints)
	}
	if c.MaxPoints < c.MinPoints || c.MaxPoints > MaxSamples {
		bad("MaxPoints", c.MaxPoints)
	}
	if c.MinClassifyPoints < 3 {
		bad("MinClassifyPoints", c.MinClassifyPoints)
	}

	t := c.Thresholds
	unit := func(field string, v float64) {
		if !(v >= 0 && v <= 1) {
			bad("Thresholds."+field, v)
		}
	}
	positive := func(field string, v float64) {
		if !(v > 0) || !isFinite(v) {
			bad("Thresholds."+field, v)
		}
	}
	unit("MinMonotonicity", t.MinMonotonicity)
	unit("QuadraticR2", t.QuadraticR2)
	unit("LinearR2", t.LinearR2)
	unit("MinConfidence", t.MinConfidence)
	positive("RotationStep", t.RotationStep)
	positive("CloseTolerance", t.CloseTolerance)
	positive("CircleRMSE", t.CircleRMSE)
	positive("MaxArchRadius", t.MaxArchRadius)
	positive("WaveSNR", t.WaveSNR)
	positive("MaxWaveAmplitude", t.MaxWaveAmplitude)
	positive("TriangleRMSE", t.TriangleRMSE)
	positive("MaxError", t.MaxError)
	if !(t.RotationSweep >= 0 && t.RotationSweep <= 90) {
		bad("Thresholds.RotationSweep", t.RotationSweep)
	}
	if t.MaxCurvatureFlips < 0 {
		bad("Thresholds.MaxCurvatureFlips", t.MaxCurvatureFlips)
	}
	if t.MinWaveCycles < 1 {
		bad("Thresholds.MinWaveCycles", t.MinWaveCycles)
	}
	if t.MinCurvature < 0 || !isFinite(t.MinCurvature) {
		bad("Thresholds.MinCurvature", t.MinCurvature)
	}
	if t.RiseMaxSlope < 0 || !isFinite(t.RiseMaxSlope) {
		bad("Thresholds.RiseMaxSlope", t.RiseMaxSlope)
	}

	return errors.Join(errs...)
}

// pointBounds returns the effective point-count range, always within
// [MinSamples, MaxSamples].
func (c Config) pointBounds() (int, int) {
	lo, hi := c.MinPoints, c.MaxPoints
	if lo < MinSamples || lo > MaxSamples {
		lo = MinSamples
	}
	if hi < lo || hi > MaxSamples {
		hi = MaxSamples
	}
	return lo, hi
}

// pointCount resolves the number of points to sample for a path of the
// given length. requested <= 0 means no explicit count.
func (c Config) pointCount(requested int, length float64) int {
	lo, hi := c.pointBounds()
	n := requested
	if n <= 0 {
		density := c.SamplesPerUnit
		if !(density > 0) || !isFinite(density) {
			Logger().Warn("textpath: invalid sampling density, using default",
				"samples_per_unit", density)
			density = DefaultConfig().SamplesPerUnit
		}
		want := math.Ceil(length * density)
		switch {
		case !(want >= float64(lo)):
			n = lo
		case want > float64(hi):
			n = hi
		default:
			n = int(want)
		}
	}
	return min(max(n, lo), hi)
}
