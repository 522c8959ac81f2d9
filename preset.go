package textpath

import (
	"encoding/json"
	"fmt"
	"math"
)

// PresetKind identifies a decorative-text shape template.
type PresetKind int

const (
	// PresetNone means no shape was recognized.
	PresetNone PresetKind = iota

	// PresetCircle is text running around a closed circle.
	PresetCircle

	// PresetArch is text following an open circular arc.
	PresetArch

	// PresetWave is text following a sinusoid.
	PresetWave

	// PresetInflate is text following a downward-opening parabola (bulging up).
	PresetInflate

	// PresetDeflate is text following an upward-opening parabola (sagging down).
	PresetDeflate

	// PresetRise is text on a gently inclined straight line.
	PresetRise

	// PresetSlant is text on a steeply inclined straight line.
	PresetSlant

	// PresetTriangle is text on two straight legs meeting at one apex.
	PresetTriangle
)

var presetNames = [...]string{
	PresetNone:     "none",
	PresetCircle:   "circle",
	PresetArch:     "arch",
	PresetWave:     "wave",
	PresetInflate:  "inflate",
	PresetDeflate:  "deflate",
	PresetRise:     "rise",
	PresetSlant:    "slant",
	PresetTriangle: "triangle",
}

// String returns the lower-case preset name.
func (k PresetKind) String() string {
	if k < 0 || int(k) >= len(presetNames) {
		return fmt.Sprintf("PresetKind(%d)", int(k))
	}
	return presetNames[k]
}

// MarshalText encodes the kind as its name.
func (k PresetKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Preset is a recognized shape template with its typed parameters.
// The concrete types are Circle, Arch, Wave, Inflate, Deflate, Rise,
// Slant and Triangle.
type Preset interface {
	Kind() PresetKind

	// Params returns the parameters keyed by name, for consumers that map
	// presets onto an output format.
	Params() map[string]float64

	isPreset()
}

// Circle is a closed circular path.
type Circle struct {
	Radius float64 // in path units
}

// NewCircle validates a circle preset; the radius must be positive.
func NewCircle(radius float64) (Circle, error) {
	if !(radius > 0) || !isFinite(radius) {
		return Circle{}, &PresetError{Kind: PresetCircle, Param: "radius", Value: radius}
	}
	return Circle{Radius: radius}, nil
}

// Kind returns PresetCircle.
func (Circle) Kind() PresetKind { return PresetCircle }

// Params returns the parameter map with key "radius".
func (c Circle) Params() map[string]float64 {
	return map[string]float64{"radius": c.Radius}
}

func (Circle) isPreset() {}

// Arch is an open circular arc.
type Arch struct {
	// Bend is the swept angle of the arc as a fraction of a full turn, in (0, 1].
	Bend float64
}

// NewArch validates an arch preset.
func NewArch(bend float64) (Arch, error) {
	if !(bend > 0 && bend <= 1) {
		return Arch{}, &PresetError{Kind: PresetArch, Param: "bend", Value: bend}
	}
	return Arch{Bend: bend}, nil
}

// Kind returns PresetArch.
func (Arch) Kind() PresetKind { return PresetArch }

// Params returns the parameter map with key "bend".
func (a Arch) Params() map[string]float64 {
	return map[string]float64{"bend": a.Bend}
}

func (Arch) isPreset() {}

// Wave is a sinusoidal path. Both parameters are in normalized units.
type Wave struct {
	Amplitude float64
	Period    float64
}

// NewWave validates a wave preset; amplitude must be non-negative and
// period positive.
func NewWave(amplitude, period float64) (Wave, error) {
	if !(amplitude >= 0) || !isFinite(amplitude) {
		return Wave{}, &PresetError{Kind: PresetWave, Param: "amplitude", Value: amplitude}
	}
	if !(period > 0) || !isFinite(period) {
		return Wave{}, &PresetError{Kind: PresetWave, Param: "period", Value: period}
	}
	return Wave{Amplitude: amplitude, Period: period}, nil
}

// Kind returns PresetWave.
func (Wave) Kind() PresetKind { return PresetWave }

// Params returns the parameter map with keys "amplitude" and "period".
func (w Wave) Params() map[string]float64 {
	return map[string]float64{"amplitude": w.Amplitude, "period": w.Period}
}

func (Wave) isPreset() {}

// Inflate is a path bulging upward like a downward-opening parabola.
type Inflate struct {
	Curvature float64 // |leading coefficient| of the normalized fit
}

// NewInflate validates an inflate preset.
func NewInflate(curvature float64) (Inflate, error) {
	if err := checkCurvature(PresetInflate, curvature); err != nil {
		return Inflate{}, err
	}
	return Inflate{Curvature: curvature}, nil
}

// Kind returns PresetInflate.
func (Inflate) Kind() PresetKind { return PresetInflate }

// Params returns the parameter map with key "curvature".
func (i Inflate) Params() map[string]float64 {
	return map[string]float64{"curvature": i.Curvature}
}

func (Inflate) isPreset() {}

// Deflate is a path sagging downward like an upward-opening parabola.
type Deflate struct {
	Curvature float64 // |leading coefficient| of the normalized fit
}

// NewDeflate validates a deflate preset.
func NewDeflate(curvature float64) (Deflate, error) {
	if err := checkCurvature(PresetDeflate, curvature); err != nil {
		return Deflate{}, err
	}
	return Deflate{Curvature: curvature}, nil
}

// Kind returns PresetDeflate.
func (Deflate) Kind() PresetKind { return PresetDeflate }

// Params returns the parameter map with key "curvature".
func (d Deflate) Params() map[string]float64 {
	return map[string]float64{"curvature": d.Curvature}
}

func (Deflate) isPreset() {}

func checkCurvature(kind PresetKind, v float64) error {
	if !(v >= 0) || !isFinite(v) {
		return &PresetError{Kind: kind, Param: "curvature", Value: v}
	}
	return nil
}

// Rise is a gently inclined straight path.
type Rise struct {
	Angle float64 // radians, y-up, in [-π/2, π/2]
}

// NewRise validates a rise preset.
func NewRise(angle float64) (Rise, error) {
	if err := checkAngle(PresetRise, angle); err != nil {
		return Rise{}, err
	}
	return Rise{Angle: angle}, nil
}

// Kind returns PresetRise.
func (Rise) Kind() PresetKind { return PresetRise }

// Params returns the parameter map with key "angle".
func (r Rise) Params() map[string]float64 {
	return map[string]float64{"angle": r.Angle}
}

func (Rise) isPreset() {}

// Slant is a steeply inclined straight path.
type Slant struct {
	Angle float64 // radians, y-up, in [-π/2, π/2]
}

// NewSlant validates a slant preset.
func NewSlant(angle float64) (Slant, error) {
	if err := checkAngle(PresetSlant, angle); err != nil {
		return Slant{}, err
	}
	return Slant{Angle: angle}, nil
}

// Kind returns PresetSlant.
func (Slant) Kind() PresetKind { return PresetSlant }

// Params returns the parameter map with key "angle".
func (s Slant) Params() map[string]float64 {
	return map[string]float64{"angle": s.Angle}
}

func (Slant) isPreset() {}

func checkAngle(kind PresetKind, v float64) error {
	if !(math.Abs(v) <= math.Pi/2) {
		return &PresetError{Kind: kind, Param: "angle", Value: v}
	}
	return nil
}

// Triangle is a path of two straight legs meeting at a single apex.
type Triangle struct {
	ApexX float64 // apex position across the path width, in [0, 1]
}

// NewTriangle validates a triangle preset.
func NewTriangle(apexX float64) (Triangle, error) {
	if !(apexX >= 0 && apexX <= 1) {
		return Triangle{}, &PresetError{Kind: PresetTriangle, Param: "apex_x", Value: apexX}
	}
	return Triangle{ApexX: apexX}, nil
}

// Kind returns PresetTriangle.
func (Triangle) Kind() PresetKind { return PresetTriangle }

// Params returns the parameter map with key "apex_x".
func (t Triangle) Params() map[string]float64 {
	return map[string]float64{"apex_x": t.ApexX}
}

func (Triangle) isPreset() {}

// Classification is a recognized preset with the quality of the fit.
type Classification struct {
	Preset Preset

	// Confidence is in [0, 1]; higher means the preset reproduces the path better.
	Confidence float64

	// Error is the estimated regeneration error in normalized units.
	Error float64
}

// Kind returns the preset kind, PresetNone for the zero Classification.
func (c Classification) Kind() PresetKind {
	if c.Preset == nil {
		return PresetNone
	}
	return c.Preset.Kind()
}

// MarshalJSON encodes the classification with the preset flattened into
// its name and parameter map.
func (c Classification) MarshalJSON() ([]byte, error) {
	var params map[string]float64
	if c.Preset != nil {
		params = c.Preset.Params()
	}
	return json.Marshal(struct {
		Preset     PresetKind         `json:"preset"`
		Parameters map[string]float64 `json:"parameters,omitempty"`
		Confidence float64            `json:"confidence"`
		Error      float64            `json:"estimated_error"`
	}{c.Kind(), params, c.Confidence, c.Error})
}
