package textpath

// Result is the outcome of Analyze: the parse, the samples taken from it and,
// when classification is enabled and succeeded, the recognized preset.
type Result struct {
	Parse   ParseResult
	Samples Samples

	// Classification is valid only when Matched is true.
	Classification Classification
	Matched        bool
}

// Analyze parses d, samples it into n points and classifies the samples.
//
// It never fails: parse errors are reported in Result.Parse.Errors, a path
// without geometry is sampled as the fallback line, and an unrecognized shape
// leaves Matched false. Fallback samples are never classified.
func Analyze(d string, n int, cfg Config) Result {
	r := Result{Parse: ParsePath(d)}
	r.Samples = Sample(r.Parse.Segments, n, cfg)
	if r.Samples.Fallback {
		return r
	}
	r.Classification, r.Matched = Classify(r.Samples.Points, cfg)
	return r
}
