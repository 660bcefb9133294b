// Package recon drives the spectral-to-spatial reconstruction pipeline: it
// drains the latest acquired frame from a mailbox, runs DC subtraction,
// wavenumber resampling, peak-centering padding with windowing and the depth
// transform in order, and publishes the results without ever blocking the
// acquisition side.
package recon

import (
	"github.com/spectralab/oct-recon/windowing"
)

// Config is the reconstruction configuration surface. It is immutable during
// a single pass; the owning controller may swap in a new configuration
// between passes via Processor.UpdateConfig.
type Config struct {
	// Wavelength bounds of the spectrometer and samples per line; together
	// they define the wavenumber calibration.
	LambdaMin float64 `json:"lambda_min"`
	LambdaMax float64 `json:"lambda_max"`
	NumPoints int     `json:"num_points"`

	// PeakPercentage locates the coherence peak in the unpadded row as a
	// percentage (0-100) of its length; padding shifts it to the center of
	// the transform window.
	PeakPercentage float64 `json:"peak_percentage"`

	// Stage toggles.
	ApplyLambdaToK     bool `json:"apply_lambda_to_k"`
	ApplyDCSubtraction bool `json:"apply_dc_subtraction"`

	// Window is the window type applied before the transform (see package
	// windowing).
	Window string `json:"window"`

	// NoiseFloor is the spectral magnitude below which a bin is zeroed
	// before phase extraction.
	NoiseFloor float64 `json:"noise_floor"`

	// ROILow and ROIHigh bound the retained transform bins [low, high).
	ROILow  int `json:"roi_low"`
	ROIHigh int `json:"roi_high"`

	// MinTransformSize is the lower bound for the padded transform length;
	// the padder rounds it up to the next FFT-fast length.
	MinTransformSize int `json:"min_transform_size"`
}

// DefaultConfig returns the configuration matching the lab spectrometer:
// 1200-1430 nm over 2048 samples, coherence peak at 56% of the line.
func DefaultConfig() Config {
	return Config{
		LambdaMin:          1200,
		LambdaMax:          1430,
		NumPoints:          2048,
		PeakPercentage:     56,
		ApplyLambdaToK:     true,
		ApplyDCSubtraction: true,
		Window:             windowing.TypeRectangular,
		NoiseFloor:         400,
		ROILow:             25,
		ROIHigh:            525,
		MinTransformSize:   2500,
	}
}
