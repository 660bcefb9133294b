package recon

import (
	"time"

	"github.com/spectralab/oct-recon/dsp"
	"github.com/spectralab/oct-recon/frame"
)

// Result is the output of one reconstruction pass. Ownership transfers to
// the consumer on publish; the processor keeps no reference afterwards.
// Consumers must not block the loop in their callbacks.
type Result struct {
	// Magnitude is the ROI-cropped depth image, bin x line.
	Magnitude [][]float64 `json:"magnitude"`

	// PhaseDiff is the inter-line phase contrast image, bin x (lines-1).
	PhaseDiff [][]float64 `json:"phase_diff"`

	// Padded is the padded, windowed frame the transform ran on, kept for
	// diagnostic display.
	Padded *frame.Frame `json:"-"`

	// Plan records how the frame was padded.
	Plan dsp.PadPlan `json:"plan"`

	// Session identifies the processor run that produced this result.
	Session string `json:"session"`

	// Elapsed is the wall-clock duration of the pass.
	Elapsed time.Duration `json:"elapsed"`
}
