package windowing

// Rectangular represents a rectangular (boxcar) window function. It leaves
// the signal untouched, which preserves the raw coherence peak shape.
type Rectangular struct {
	size         int
	coefficients []float64
}

// NewRectangular creates a new rectangular window
func NewRectangular(size int) *Rectangular {
	r := &Rectangular{
		size: size,
	}
	r.generate()
	return r
}

func (r *Rectangular) generate() {
	r.coefficients = make([]float64, r.size)
	for i := range r.coefficients {
		r.coefficients[i] = 1.0
	}
}

// Coefficients returns the window coefficients
func (r *Rectangular) Coefficients() []float64 {
	return r.coefficients
}

// Size returns the window size
func (r *Rectangular) Size() int {
	return r.size
}

// Name returns the window type
func (r *Rectangular) Name() string {
	return TypeRectangular
}
