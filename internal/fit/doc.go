// Package fit provides the least-squares model fits used by the shape
// classifier: algebraic circles, polynomials, straight lines and
// sinusoids located with the FFT.
//
// Every fit reports the coefficient of determination (R²) or the RMSE of
// its residuals so callers can compare hypotheses on the same samples.
// Inputs are plain x and y slices of equal length; none are modified.
package fit
