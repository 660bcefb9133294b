package dsp

import (
	"errors"
	"math"
	"testing"

	"github.com/spectralab/oct-recon/frame"
)

func TestDCSubtractionZeroesColumnMean(t *testing.T) {
	const lines, samples = 5, 64
	f := frame.New(lines, samples)
	for li := range f.Data {
		for j := range f.Data[li] {
			// Distinct per-line spectra on a shared pedestal.
			f.Data[li][j] = 500 + float64(li*7) + 30*math.Sin(float64(j)*0.3+float64(li))
		}
	}

	if err := NewDCSubtractor().Apply(f); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for j := 0; j < samples; j++ {
		sum := 0.0
		for li := 0; li < lines; li++ {
			sum += f.Data[li][j]
		}
		if mean := sum / lines; math.Abs(mean) > 1e-9 {
			t.Fatalf("column %d mean %g after DC subtraction, want ~0", j, mean)
		}
	}
}

func TestDCSubtractionRejectsInvalidFrame(t *testing.T) {
	if err := NewDCSubtractor().Apply(&frame.Frame{}); !errors.Is(err, frame.ErrInvalidFrame) {
		t.Fatalf("Apply(empty) = %v, want ErrInvalidFrame", err)
	}
}
