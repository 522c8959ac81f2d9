// Package textpath turns SVG-style path strings into evenly spaced sample
// points for laying out text along a curve, and recognizes when a path is
// one of the common decorative-text shapes.
//
// # Overview
//
// A path string is parsed into segments (lines, quadratic and cubic Bézier
// curves; elliptical arcs are converted to cubics). The sampler walks the
// segments by arc length and returns exactly the requested number of points,
// each with a position, a tangent angle and its distance from the start. The
// classifier fits the samples against a fixed list of presets (circle, arch,
// wave, inflate, deflate, rise, slant, triangle) and returns the first one that
// reproduces the path closely enough.
//
// # Quick Start
//
//	cfg := textpath.DefaultConfig()
//
//	s := textpath.SamplePath("M0,100 Q100,-100 200,100", 64, cfg)
//	for _, p := range s.Points {
//	    // place a glyph at (p.X, p.Y) rotated by p.Angle
//	}
//
//	if c, ok := textpath.Classify(s.Points, cfg); ok {
//	    fmt.Println(c.Kind(), c.Preset.Params())
//	}
//
// # Coordinate System
//
// Path coordinates are SVG user units:
//   - X increases right
//   - Y increases down
//   - Angles in radians, measured from +X toward +Y
//
// Classifier parameters are reported with Y pointing up, so a positive
// Rise angle climbs to the right on screen.
//
// # Errors
//
// Nothing in this package panics on bad input. Malformed path data is
// reported in ParseResult.Errors and the well-formed prefix is still used; a
// path without length samples as a horizontal fallback line flagged in
// Samples.Fallback; an unrecognized shape is reported by Classify returning
// false.
//
// # Concurrency
//
// All functions are safe for concurrent use. Config is a plain value and the
// only package-level state is the logger installed with SetLogger.
package textpath
