// Package windowing provides the spectral window functions applied to each
// line before the depth transform. The reconstruction default is the
// rectangular (boxcar) window; Hann and Hamming are available for edge
// tapering when sidelobe suppression matters more than peak sharpness.
package windowing

import "fmt"

// Window is a fixed-size window function.
type Window interface {
	// Coefficients returns the window coefficients. The returned slice is
	// owned by the window and must not be mutated.
	Coefficients() []float64

	// Size returns the window length.
	Size() int

	// Name returns the window type name.
	Name() string
}

// Window type names accepted by ForName.
const (
	TypeRectangular = "rectangular"
	TypeBoxcar      = "boxcar" // alias for rectangular
	TypeHann        = "hann"
	TypeHamming     = "hamming"
)

// ForName builds a window of the given type and size.
func ForName(name string, size int) (Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}

	switch name {
	case TypeRectangular, TypeBoxcar, "":
		return NewRectangular(size), nil
	case TypeHann:
		return NewHann(size), nil
	case TypeHamming:
		return NewHamming(size), nil
	default:
		return nil, fmt.Errorf("unknown window type %q", name)
	}
}
