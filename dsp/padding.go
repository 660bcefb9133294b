package dsp

import (
	"github.com/spectralab/oct-recon/frame"
	"github.com/spectralab/oct-recon/windowing"
)

// PadPlan describes how the rows of one frame are zero-padded before the
// depth transform. Padding is asymmetric: the split between left and right
// is chosen so the coherence peak, expected at PeakPercentage of the
// original row, lands at the center of the padded row.
type PadPlan struct {
	CurrentSize int `json:"current_size"`
	TargetSize  int `json:"target_size"`
	Left        int `json:"left"`
	Right       int `json:"right"`
}

// Padded reports whether any padding is applied. When the rows already meet
// the target length, padding is skipped entirely and rows are transformed
// unpadded.
func (p PadPlan) Padded() bool {
	return p.TargetSize > p.CurrentSize
}

// PaddedSize returns the row length after padding. It equals TargetSize
// unless the requested peak shift pushes the left padding past the available
// room, in which case the padded row grows beyond the target rather than
// truncating the shift.
func (p PadPlan) PaddedSize() int {
	return p.CurrentSize + p.Left + p.Right
}

// PlanPadding computes the padding for rows of currentSize samples. The
// target length is the smallest FFT-fast length at least minTransformSize;
// peakPercentage (0-100) locates the coherence peak in the unpadded row.
func PlanPadding(currentSize, minTransformSize int, peakPercentage float64) PadPlan {
	plan := PadPlan{
		CurrentSize: currentSize,
		TargetSize:  NextFastLen(minTransformSize),
	}
	if !plan.Padded() {
		return plan
	}

	currentPeak := int(float64(currentSize) * peakPercentage / 100.0)
	targetPeak := plan.TargetSize / 2
	shift := targetPeak - currentPeak

	plan.Left = max(0, shift)
	plan.Right = max(0, plan.TargetSize-currentSize-plan.Left)
	return plan
}

// Windower pads each row of a frame per a PadPlan and multiplies in a window
// function. The window is built at the unpadded row length and padded with
// the same amounts as the data, so every sample outside the original support
// is exactly zero in the output.
type Windower struct {
	minTransformSize int
	windowName       string
}

// NewWindower creates a windower targeting the smallest fast transform
// length >= minTransformSize, using the named window type (see package
// windowing).
func NewWindower(minTransformSize int, window string) *Windower {
	return &Windower{
		minTransformSize: minTransformSize,
		windowName:       window,
	}
}

// Apply produces the padded, windowed copy of the frame along with the plan
// that shaped it. The input frame is left untouched.
//
// In the degenerate case where the rows already meet the target length, the
// rows stay unpadded; the window is still built at the row length and
// multiplied in.
func (w *Windower) Apply(f *frame.Frame, peakPercentage float64) (*frame.Frame, PadPlan, error) {
	if err := f.Validate(); err != nil {
		return nil, PadPlan{}, err
	}

	plan := PlanPadding(f.Samples(), w.minTransformSize, peakPercentage)

	win, err := windowing.ForName(w.windowName, plan.CurrentSize)
	if err != nil {
		return nil, PadPlan{}, err
	}
	coeffs := win.Coefficients()

	out := frame.New(f.Lines(), plan.PaddedSize())
	for li, row := range f.Data {
		dst := out.Data[li][plan.Left : plan.Left+plan.CurrentSize]
		for i, v := range row {
			dst[i] = v * coeffs[i]
		}
	}

	return out, plan, nil
}
