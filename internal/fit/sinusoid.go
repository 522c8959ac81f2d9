package fit

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Sinusoid is a fitted y = Offset + Amplitude·sin(2π·x/Period + Phase).
type Sinusoid struct {
	Amplitude float64
	Period    float64 // in x units
	Phase     float64 // radians
	Offset    float64

	// Cycles is the dominant Fourier bin: the number of whole periods over
	// the sample sequence.
	Cycles int

	// SNR is the power of the fitted sinusoid over the residual power.
	SNR  float64
	R2   float64
	RMSE float64
}

// DominantBin returns the non-DC frequency bin with the largest magnitude
// in the real FFT of values (mean removed) and that magnitude. Ties go to
// the lower bin. It returns bin 0 when values carry no oscillation.
func DominantBin(values []float64) (bin int, magnitude float64) {
	n := len(values)
	if n < 4 {
		return 0, 0
	}

	mean := stat.Mean(values, nil)
	seq := make([]float64, n)
	for i, v := range values {
		seq[i] = v - mean
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, seq)
	for k := 1; k < len(coeffs); k++ {
		if m := cmplx.Abs(coeffs[k]); m > magnitude {
			bin, magnitude = k, m
		}
	}
	if magnitude <= 1e-12*float64(n) {
		return 0, 0
	}
	return bin, magnitude
}

// FitSinusoid detects the dominant frequency of ys with the FFT, converts
// it to a period over the x span, and refits amplitude, phase and offset
// against the actual x positions by linear least squares.
//
// The samples are expected in order along x; they need not be evenly spaced
// in x, though the spectral estimate is best when they nearly are.
func FitSinusoid(xs, ys []float64) (Sinusoid, error) {
	if err := checkInput(xs, ys, 4); err != nil {
		return Sinusoid{}, err
	}

	bin, _ := DominantBin(ys)
	span := floats.Max(xs) - floats.Min(xs)
	if bin == 0 || !(span > 0) {
		return Sinusoid{}, ErrDegenerate
	}
	period := span / float64(bin)

	n := len(xs)
	a := mat.NewDense(n, 3, nil)
	for i, x := range xs {
		sin, cos := math.Sincos(2 * math.Pi * x / period)
		a.Set(i, 0, sin)
		a.Set(i, 1, cos)
		a.Set(i, 2, 1)
	}
	sol, err := leastSquares(a, ys)
	if err != nil {
		return Sinusoid{}, err
	}

	s := Sinusoid{
		Amplitude: math.Hypot(sol[0], sol[1]),
		Period:    period,
		Phase:     math.Atan2(sol[1], sol[0]),
		Offset:    sol[2],
		Cycles:    bin,
	}

	est := make([]float64, n)
	for i := range xs {
		est[i] = sol[0]*a.At(i, 0) + sol[1]*a.At(i, 1) + sol[2]
	}
	s.R2 = RSquared(ys, est)
	s.RMSE = RMSE(ys, est)

	noise := s.RMSE * s.RMSE
	signal := s.Amplitude * s.Amplitude / 2
	switch {
	case noise > 0:
		s.SNR = signal / noise
	case signal > 0:
		s.SNR = math.Inf(1)
	}
	return s, nil
}
