package dsp

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/spectralab/oct-recon/calibration"
	"github.com/spectralab/oct-recon/frame"
)

// Resampler converts frames from uniform-wavelength to uniform-wavenumber
// spacing. The spectrometer samples evenly in wavelength, but the Fourier
// relationship between spectrum and depth holds in wavenumber space, so each
// line is interpolated from the calibration's non-uniform K grid onto its
// uniform KGrid before transforming.
//
// Lines are independent, so the work is spread across a worker pool.
type Resampler struct{}

// NewResampler creates a new wavenumber resampler
func NewResampler() *Resampler {
	return &Resampler{}
}

// Apply resamples every line of the frame in place. Each line is reversed
// along the wavelength axis first, because ascending wavelength corresponds
// to descending wavenumber, then linearly interpolated from cal.K onto
// cal.KGrid.
//
// KGrid spans exactly the range of K, so no target falls outside the source
// domain under a valid calibration; if one ever does, it clamps to the
// boundary value rather than extrapolating.
func (r *Resampler) Apply(f *frame.Frame, cal *calibration.Calibration) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.Samples() != cal.NumPoints {
		return fmt.Errorf("%w: %d samples per line, calibration expects %d",
			frame.ErrInvalidFrame, f.Samples(), cal.NumPoints)
	}

	lines := f.Lines()
	jobs := make(chan int, lines)

	var wg sync.WaitGroup
	for w := 0; w < min(runtime.NumCPU(), lines); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Reuse the reversal buffer for this worker
			reversed := make([]float64, cal.NumPoints)

			for idx := range jobs {
				row := f.Data[idx]
				for i := range reversed {
					reversed[i] = row[len(row)-1-i]
				}
				interpLinear(row, cal.KGrid, cal.K, reversed)
			}
		}()
	}

	for idx := 0; idx < lines; idx++ {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return nil
}

// interpLinear writes into dst the values of the piecewise-linear function
// through (xs[i], ys[i]) evaluated at each of targets. Both xs and targets
// must be ascending; targets outside [xs[0], xs[last]] clamp to the boundary
// values. dst and targets may not alias ys.
//
// Both grids being ascending makes a single merge walk enough: the source
// index only ever moves forward.
func interpLinear(dst, targets, xs, ys []float64) {
	last := len(xs) - 1
	j := 0
	for i, x := range targets {
		switch {
		case x <= xs[0]:
			dst[i] = ys[0]
		case x >= xs[last]:
			dst[i] = ys[last]
		default:
			for xs[j+1] < x {
				j++
			}
			t := (x - xs[j]) / (xs[j+1] - xs[j])
			dst[i] = ys[j] + t*(ys[j+1]-ys[j])
		}
	}
}
