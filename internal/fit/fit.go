package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Sentinel errors for model fitting.
var (
	// ErrTooFewPoints is returned when a fit has fewer samples than unknowns.
	ErrTooFewPoints = errors.New("fit: too few points")

	// ErrLengthMismatch is returned when x and y slices differ in length.
	ErrLengthMismatch = errors.New("fit: x and y lengths differ")

	// ErrDegenerate is returned when the samples cannot determine the model,
	// for example a circle through collinear points.
	ErrDegenerate = errors.New("fit: degenerate samples")
)

// flatVariance is the total sum of squares under which a sample set is
// treated as constant.
const flatVariance = 1e-20

// leastSquares solves the overdetermined system a*x = b in the least-squares
// sense via QR factorization.
func leastSquares(a *mat.Dense, b []float64) ([]float64, error) {
	rows, cols := a.Dims()
	var x mat.VecDense
	if err := x.SolveVec(a, mat.NewVecDense(rows, b)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}
	out := make([]float64, cols)
	for i := range out {
		out[i] = x.AtVec(i)
		if math.IsNaN(out[i]) || math.IsInf(out[i], 0) {
			return nil, ErrDegenerate
		}
	}
	return out, nil
}

func checkInput(xs, ys []float64, unknowns int) error {
	if len(xs) != len(ys) {
		return ErrLengthMismatch
	}
	if len(xs) < unknowns {
		return ErrTooFewPoints
	}
	return nil
}

// RSquared returns the coefficient of determination of estimates against
// values. A constant value set is perfectly explained (1) when the
// estimates match it and not at all (0) otherwise.
func RSquared(values, estimates []float64) float64 {
	mean := stat.Mean(values, nil)
	var sst, sse float64
	for i, v := range values {
		d := v - mean
		sst += d * d
		r := v - estimates[i]
		sse += r * r
	}
	if sst <= flatVariance {
		if sse <= flatVariance {
			return 1
		}
		return 0
	}
	return stat.RSquaredFrom(estimates, values, nil)
}

// RMSE returns the root mean square of values minus estimates.
func RMSE(values, estimates []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Distance(values, estimates, 2) / math.Sqrt(float64(len(values)))
}

// -------------------------------------------------------------------
// Circle
// -------------------------------------------------------------------

// Circle is a fitted circle with the RMSE of the radial distances of the
// samples from it.
type Circle struct {
	X, Y float64 // center
	R    float64
	RMSE float64
}

// FitCircle fits a circle with the Kåsa method: the algebraic equation
// x² + y² + D·x + E·y + F = 0 is solved for D, E, F in the least-squares
// sense, giving center (-D/2, -E/2) and radius sqrt(cx² + cy² - F).
func FitCircle(xs, ys []float64) (Circle, error) {
	if err := checkInput(xs, ys, 3); err != nil {
		return Circle{}, err
	}

	n := len(xs)
	a := mat.NewDense(n, 3, nil)
	b := make([]float64, n)
	for i := range xs {
		a.Set(i, 0, xs[i])
		a.Set(i, 1, ys[i])
		a.Set(i, 2, 1)
		b[i] = -(xs[i]*xs[i] + ys[i]*ys[i])
	}

	sol, err := leastSquares(a, b)
	if err != nil {
		return Circle{}, err
	}

	cx, cy := -sol[0]/2, -sol[1]/2
	r2 := cx*cx + cy*cy - sol[2]
	if !(r2 > 0) {
		return Circle{}, ErrDegenerate
	}
	c := Circle{X: cx, Y: cy, R: math.Sqrt(r2)}

	var sse float64
	for i := range xs {
		d := math.Hypot(xs[i]-cx, ys[i]-cy) - c.R
		sse += d * d
	}
	c.RMSE = math.Sqrt(sse / float64(n))
	return c, nil
}

// -------------------------------------------------------------------
// Polynomial
// -------------------------------------------------------------------

// Polynomial is a least-squares polynomial fit.
type Polynomial struct {
	// Coeffs holds the coefficients in ascending order of power:
	// y = Coeffs[0] + Coeffs[1]·x + Coeffs[2]·x² + ...
	Coeffs []float64
	R2     float64
	RMSE   float64
}

// Eval evaluates the polynomial at x using Horner's scheme.
func (p Polynomial) Eval(x float64) float64 {
	var y float64
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		y = y*x + p.Coeffs[i]
	}
	return y
}

// Leading returns the coefficient of the highest power.
func (p Polynomial) Leading() float64 {
	if len(p.Coeffs) == 0 {
		return 0
	}
	return p.Coeffs[len(p.Coeffs)-1]
}

// FitPolynomial fits a polynomial of the given degree by least squares.
func FitPolynomial(xs, ys []float64, degree int) (Polynomial, error) {
	if degree < 0 {
		return Polynomial{}, fmt.Errorf("fit: negative degree %d", degree)
	}
	if err := checkInput(xs, ys, degree+1); err != nil {
		return Polynomial{}, err
	}

	n := len(xs)
	a := mat.NewDense(n, degree+1, nil)
	for i, x := range xs {
		pow := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, pow)
			pow *= x
		}
	}

	coeffs, err := leastSquares(a, ys)
	if err != nil {
		return Polynomial{}, err
	}

	p := Polynomial{Coeffs: coeffs}
	est := make([]float64, n)
	for i, x := range xs {
		est[i] = p.Eval(x)
	}
	p.R2 = RSquared(ys, est)
	p.RMSE = RMSE(ys, est)
	return p, nil
}

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line is a least-squares straight line y = Intercept + Slope·x.
type Line struct {
	Intercept float64
	Slope     float64
	R2        float64
	RMSE      float64
}

// FitLine fits a straight line by ordinary least squares.
func FitLine(xs, ys []float64) (Line, error) {
	if err := checkInput(xs, ys, 2); err != nil {
		return Line{}, err
	}
	if floats.Max(xs)-floats.Min(xs) == 0 {
		return Line{}, ErrDegenerate
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	l := Line{Intercept: alpha, Slope: beta}

	est := make([]float64, len(xs))
	for i, x := range xs {
		est[i] = alpha + beta*x
	}
	l.R2 = RSquared(ys, est)
	l.RMSE = RMSE(ys, est)
	return l, nil
}
