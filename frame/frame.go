package frame

import (
	"errors"
	"fmt"
)

// ErrInvalidFrame reports an empty or malformed input frame. The
// reconstruction loop skips the offending pass and keeps running.
var ErrInvalidFrame = errors.New("invalid frame")

// MaxRawSample is the largest value a raw camera sample can take. The
// line-scan camera delivers 10-bit unsigned samples.
const MaxRawSample = 1023

// Frame is one raw spectral acquisition: Lines() interferometric spectra of
// Samples() wavelength samples each. Samples originate as 10-bit unsigned
// integers but are carried as float64 because every pipeline stage from DC
// subtraction onward works in floating point.
//
// A frame is owned exclusively by whoever holds it: the acquisition side
// until it is published, the reconstruction loop for the duration of one
// pass. Stages mutate Data in place and the frame is discarded after the
// pass, never reused.
type Frame struct {
	Data [][]float64
}

// New allocates a zeroed frame of the given shape.
func New(lines, samples int) *Frame {
	data := make([][]float64, lines)
	for i := range data {
		data[i] = make([]float64, samples)
	}
	return &Frame{Data: data}
}

// FromRaw converts raw camera samples to a float64 frame. The raw buffer is
// copied, not aliased.
func FromRaw(raw [][]uint16) *Frame {
	data := make([][]float64, len(raw))
	for i, row := range raw {
		data[i] = make([]float64, len(row))
		for j, v := range row {
			data[i][j] = float64(v)
		}
	}
	return &Frame{Data: data}
}

// Lines returns the number of acquired lines in the frame.
func (f *Frame) Lines() int {
	return len(f.Data)
}

// Samples returns the number of wavelength samples per line, 0 for an empty
// frame.
func (f *Frame) Samples() int {
	if len(f.Data) == 0 {
		return 0
	}
	return len(f.Data[0])
}

// Validate rejects empty and ragged frames with ErrInvalidFrame.
func (f *Frame) Validate() error {
	if f == nil || len(f.Data) == 0 {
		return fmt.Errorf("%w: no lines", ErrInvalidFrame)
	}
	samples := len(f.Data[0])
	if samples == 0 {
		return fmt.Errorf("%w: no samples", ErrInvalidFrame)
	}
	for i, row := range f.Data {
		if len(row) != samples {
			return fmt.Errorf("%w: line %d has %d samples, want %d", ErrInvalidFrame, i, len(row), samples)
		}
	}
	return nil
}
