package windowing

import "math"

// Hamming represents a symmetric Hamming window function
type Hamming struct {
	size         int
	coefficients []float64
}

// NewHamming creates a new Hamming window
func NewHamming(size int) *Hamming {
	h := &Hamming{
		size: size,
	}
	h.generate()
	return h
}

func (h *Hamming) generate() {
	h.coefficients = make([]float64, h.size)
	if h.size == 1 {
		h.coefficients[0] = 1.0
		return
	}

	denominator := float64(h.size - 1)
	for i := 0; i < h.size; i++ {
		h.coefficients[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/denominator)
	}
}

// Coefficients returns the window coefficients
func (h *Hamming) Coefficients() []float64 {
	return h.coefficients
}

// Size returns the window size
func (h *Hamming) Size() int {
	return h.size
}

// Name returns the window type
func (h *Hamming) Name() string {
	return TypeHamming
}
