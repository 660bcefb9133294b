package dsp

import (
	"math"
	"testing"

	"github.com/spectralab/oct-recon/frame"
	"github.com/spectralab/oct-recon/windowing"
)

func TestPlanPaddingCentersPeak(t *testing.T) {
	// Reference values for the lab default: 2048-sample lines, coherence
	// peak at 56%, transform length 2500.
	plan := PlanPadding(2048, 2500, 56)

	if plan.TargetSize != 2500 {
		t.Fatalf("TargetSize = %d, want 2500", plan.TargetSize)
	}

	size := 2048.0
	currentPeak := int(size * 56.0 / 100.0) // 1146
	wantLeft := plan.TargetSize/2 - currentPeak
	if plan.Left != wantLeft || plan.Left != 104 {
		t.Fatalf("Left = %d, want %d (=104)", plan.Left, wantLeft)
	}
	if plan.Right != 348 {
		t.Fatalf("Right = %d, want 348", plan.Right)
	}
	if got := plan.Left + plan.CurrentSize + plan.Right; got != plan.TargetSize {
		t.Fatalf("Left+Current+Right = %d, want TargetSize %d", got, plan.TargetSize)
	}
	if !plan.Padded() || plan.PaddedSize() != plan.TargetSize {
		t.Fatalf("PaddedSize = %d, want %d", plan.PaddedSize(), plan.TargetSize)
	}
}

func TestPlanPaddingDegenerate(t *testing.T) {
	// Rows already longer than the transform target: padding is skipped
	// entirely and the rows are used as they are.
	plan := PlanPadding(4096, 2500, 56)

	if plan.Padded() {
		t.Fatal("Padded() = true for rows longer than the target")
	}
	if plan.Left != 0 || plan.Right != 0 {
		t.Fatalf("padding %d/%d, want 0/0", plan.Left, plan.Right)
	}
	if plan.PaddedSize() != 4096 {
		t.Fatalf("PaddedSize = %d, want unchanged 4096", plan.PaddedSize())
	}
}

func TestWindowerPadsDataAndWindowTogether(t *testing.T) {
	const lines, samples = 2, 2048
	f := frame.New(lines, samples)
	for li := range f.Data {
		for j := range f.Data[li] {
			f.Data[li][j] = 1
		}
	}

	out, plan, err := NewWindower(2500, windowing.TypeHann).Apply(f, 56)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.Samples() != plan.PaddedSize() {
		t.Fatalf("output rows %d samples, want %d", out.Samples(), plan.PaddedSize())
	}

	coeffs := windowing.NewHann(samples).Coefficients()
	for li := range out.Data {
		row := out.Data[li]

		// Everything outside the original support must be exactly zero.
		for j := 0; j < plan.Left; j++ {
			if row[j] != 0 {
				t.Fatalf("line %d left pad position %d = %g, want 0", li, j, row[j])
			}
		}
		for j := plan.Left + samples; j < len(row); j++ {
			if row[j] != 0 {
				t.Fatalf("line %d right pad position %d = %g, want 0", li, j, row[j])
			}
		}

		// Inside the support, all-ones data exposes the window itself.
		for j := 0; j < samples; j++ {
			if math.Abs(row[plan.Left+j]-coeffs[j]) > 1e-12 {
				t.Fatalf("line %d sample %d = %g, want window coefficient %g", li, j, row[plan.Left+j], coeffs[j])
			}
		}
	}

	// The input frame is left untouched.
	for li := range f.Data {
		for j := range f.Data[li] {
			if f.Data[li][j] != 1 {
				t.Fatal("Apply mutated the input frame")
			}
		}
	}
}

func TestWindowerDegenerateKeepsLength(t *testing.T) {
	f := frame.New(1, 32)
	for j := range f.Data[0] {
		f.Data[0][j] = float64(j)
	}

	out, plan, err := NewWindower(16, windowing.TypeRectangular).Apply(f, 56)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if plan.Padded() {
		t.Fatal("Padded() = true, want degenerate no-padding path")
	}
	if out.Samples() != 32 {
		t.Fatalf("output length %d, want input length 32", out.Samples())
	}
	for j, v := range out.Data[0] {
		if v != float64(j) {
			t.Fatalf("sample %d = %g, want %g under boxcar window", j, v, float64(j))
		}
	}
}

func TestWindowerRejectsUnknownWindow(t *testing.T) {
	if _, _, err := NewWindower(2500, "tukey").Apply(frame.New(1, 32), 56); err == nil {
		t.Fatal("Apply accepted an unknown window type")
	}
}
