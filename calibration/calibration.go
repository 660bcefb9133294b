package calibration

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCalibration reports malformed wavelength bounds or point counts.
// A failed New never produces a partially built calibration; callers keep
// using the previous one.
var ErrInvalidCalibration = errors.New("invalid calibration")

// Calibration holds one spectrometer configuration: the wavelength grid the
// line-scan camera samples on and the wavenumber grids derived from it.
//
// The Fourier relationship between spectrum and depth holds in wavenumber
// space, so each acquired line has to be resampled from the non-uniform K
// grid onto the uniform KGrid before transforming. Calibration values are
// immutable after construction; replacing the bounds means building a new
// Calibration and swapping it in whole, so a single reconstruction pass can
// never observe K and KGrid from two different configurations.
type Calibration struct {
	LambdaMin float64 `json:"lambda_min"`
	LambdaMax float64 `json:"lambda_max"`
	NumPoints int     `json:"num_points"`

	// Lambda is the ascending wavelength grid, NumPoints evenly spaced
	// values in [LambdaMin, LambdaMax].
	Lambda []float64 `json:"-"`

	// K is the non-uniform wavenumber grid, K[i] = 2*pi / Lambda[n-1-i].
	// Reversing the wavelength order keeps K strictly ascending.
	K []float64 `json:"-"`

	// KGrid is the uniform resampling target, NumPoints evenly spaced
	// values spanning [K[0], K[n-1]].
	KGrid []float64 `json:"-"`
}

// New builds a calibration from wavelength bounds and the samples-per-line
// count. It returns ErrInvalidCalibration when lambdaMin >= lambdaMax or
// numPoints < 2.
func New(lambdaMin, lambdaMax float64, numPoints int) (*Calibration, error) {
	if lambdaMin >= lambdaMax {
		return nil, fmt.Errorf("%w: lambda bounds [%g, %g] not ascending", ErrInvalidCalibration, lambdaMin, lambdaMax)
	}
	if lambdaMin <= 0 {
		return nil, fmt.Errorf("%w: lambda_min %g must be positive", ErrInvalidCalibration, lambdaMin)
	}
	if numPoints < 2 {
		return nil, fmt.Errorf("%w: num_points %d, need at least 2", ErrInvalidCalibration, numPoints)
	}

	c := &Calibration{
		LambdaMin: lambdaMin,
		LambdaMax: lambdaMax,
		NumPoints: numPoints,
		Lambda:    linspace(lambdaMin, lambdaMax, numPoints),
	}

	c.K = make([]float64, numPoints)
	for i := range c.K {
		c.K[i] = 2 * math.Pi / c.Lambda[numPoints-1-i]
	}
	c.KGrid = linspace(c.K[0], c.K[numPoints-1], numPoints)

	return c, nil
}

// linspace returns n evenly spaced values over [start, stop], inclusive on
// both ends.
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	// Pin the last value to avoid accumulated rounding at the upper bound.
	out[n-1] = stop
	return out
}
