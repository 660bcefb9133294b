package dsp

import (
	"math/cmplx"
	"runtime"
	"sync"

	"github.com/mjibson/go-dsp/fft"

	"github.com/spectralab/oct-recon/frame"
)

// Transformer computes the depth transform of a padded, windowed frame: one
// real-input FFT per line, magnitude over the region of interest, and the
// phase difference between adjacent lines.
//
// The ROI is a fixed bin range that drops the uninformative near-DC bins and
// the deep bins past the imaging range. Phase is taken from a noise-floor
// thresholded copy of the spectrum: bins whose magnitude sits below the
// floor carry essentially random phase, so they are zeroed and contribute a
// zero phase term instead of noise.
type Transformer struct{}

// NewTransformer creates a new depth transformer
func NewTransformer() *Transformer {
	return &Transformer{}
}

// DepthProfile holds the transform output for one frame. Both images are
// transposed relative to the input so the first axis is the frequency
// (depth) bin and the second the line index.
type DepthProfile struct {
	// Magnitude is |spectrum| over the ROI, bin x line.
	Magnitude [][]float64 `json:"magnitude"`

	// PhaseDiff is angle(line i) - angle(line i+1) of the thresholded
	// spectrum over the ROI, bin x (lines-1). Differencing adjacent lines
	// cancels the absolute phase offset common to the whole frame and
	// leaves only differential path-length changes between acquisitions.
	PhaseDiff [][]float64 `json:"phase_diff"`

	// Bins is the number of ROI bins retained.
	Bins int `json:"bins"`
}

// Apply transforms the frame. noiseFloor is the magnitude below which a bin
// is zeroed before phase extraction; roiLow and roiHigh bound the retained
// bin range [roiLow, roiHigh), clamped to the available half-spectrum.
func (t *Transformer) Apply(f *frame.Frame, noiseFloor float64, roiLow, roiHigh int) (*DepthProfile, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	lines := f.Lines()
	halfBins := f.Samples()/2 + 1

	lo := max(0, roiLow)
	hi := min(roiHigh, halfBins)
	if hi < lo {
		hi = lo
	}
	bins := hi - lo

	magnitude := make([][]float64, bins)
	for b := range magnitude {
		magnitude[b] = make([]float64, lines)
	}

	// Thresholded phase per line over the ROI, line-major for the FFT pass;
	// the difference image below transposes to bin-major.
	phases := make([][]float64, lines)

	jobs := make(chan int, lines)
	var wg sync.WaitGroup
	for w := 0; w < min(runtime.NumCPU(), lines); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for li := range jobs {
				spectrum := fft.FFTReal(f.Data[li])

				linePhases := make([]float64, bins)
				for b := lo; b < hi; b++ {
					v := spectrum[b]
					mag := cmplx.Abs(v)
					magnitude[b-lo][li] = mag
					if mag >= noiseFloor {
						linePhases[b-lo] = cmplx.Phase(v)
					}
				}
				phases[li] = linePhases
			}
		}()
	}
	for li := 0; li < lines; li++ {
		jobs <- li
	}
	close(jobs)
	wg.Wait()

	phaseDiff := make([][]float64, bins)
	for b := range phaseDiff {
		phaseDiff[b] = make([]float64, lines-1)
		for li := 0; li < lines-1; li++ {
			phaseDiff[b][li] = phases[li][b] - phases[li+1][b]
		}
	}

	return &DepthProfile{
		Magnitude: magnitude,
		PhaseDiff: phaseDiff,
		Bins:      bins,
	}, nil
}
