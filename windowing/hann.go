package windowing

import "math"

// Hann represents a symmetric Hann window function
type Hann struct {
	size         int
	coefficients []float64
}

// NewHann creates a new Hann window
func NewHann(size int) *Hann {
	h := &Hann{
		size: size,
	}
	h.generate()
	return h
}

func (h *Hann) generate() {
	h.coefficients = make([]float64, h.size)
	if h.size == 1 {
		h.coefficients[0] = 1.0
		return
	}

	denominator := float64(h.size - 1)
	for i := 0; i < h.size; i++ {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/denominator))
	}
}

// Coefficients returns the window coefficients
func (h *Hann) Coefficients() []float64 {
	return h.coefficients
}

// Size returns the window size
func (h *Hann) Size() int {
	return h.size
}

// Name returns the window type
func (h *Hann) Name() string {
	return TypeHann
}
