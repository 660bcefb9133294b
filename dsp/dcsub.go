// Package dsp holds the pure per-frame transformations of the reconstruction
// pipeline: DC subtraction, wavelength-to-wavenumber resampling,
// peak-centering zero-padding with windowing, and the depth transform. All
// stages are synchronous and perform no I/O; the reconstruction loop drives
// them in a fixed order over one frame at a time.
package dsp

import (
	"gonum.org/v1/gonum/floats"

	"github.com/spectralab/oct-recon/frame"
)

// DCSubtractor removes the mean spectral baseline from a frame. The source
// spectrum and the fixed-pattern background of the sensor are common to all
// lines, so the column-wise mean across lines estimates them well; removing
// it keeps the (huge) DC term from leaking across depth bins once the frame
// is asymmetrically zero-padded.
type DCSubtractor struct{}

// NewDCSubtractor creates a new DC subtractor
func NewDCSubtractor() *DCSubtractor {
	return &DCSubtractor{}
}

// Apply subtracts the column-wise mean across all lines from every line,
// mutating the frame in place. After Apply the column-wise mean of the frame
// is zero up to floating-point rounding.
func (d *DCSubtractor) Apply(f *frame.Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}

	dc := make([]float64, f.Samples())
	for _, row := range f.Data {
		floats.Add(dc, row)
	}
	floats.Scale(1/float64(f.Lines()), dc)

	for _, row := range f.Data {
		floats.Sub(row, dc)
	}
	return nil
}
