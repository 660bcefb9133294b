package recon

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DefaultRateHistory is the number of recent pass durations kept for the
// smoothed rate estimate.
const DefaultRateHistory = 10

// RateTracker derives a smoothed frames-per-second estimate from a bounded
// history of per-pass durations. The oldest sample is evicted once the
// history is full.
type RateTracker struct {
	mu       sync.Mutex
	samples  []float64 // seconds
	capacity int
}

// NewRateTracker creates a tracker keeping the given number of samples;
// capacity <= 0 falls back to DefaultRateHistory.
func NewRateTracker(capacity int) *RateTracker {
	if capacity <= 0 {
		capacity = DefaultRateHistory
	}
	return &RateTracker{
		samples:  make([]float64, 0, capacity),
		capacity: capacity,
	}
}

// Observe records one pass duration and returns the updated rate. A mean
// loop time of zero reports a rate of 0 rather than dividing by it.
func (r *RateTracker) Observe(elapsed time.Duration) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.samples) == r.capacity {
		copy(r.samples, r.samples[1:])
		r.samples = r.samples[:len(r.samples)-1]
	}
	r.samples = append(r.samples, elapsed.Seconds())

	return r.rateLocked()
}

// Rate returns the current smoothed frames-per-second estimate, 0 when no
// samples have been observed.
func (r *RateTracker) Rate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rateLocked()
}

func (r *RateTracker) rateLocked() float64 {
	if len(r.samples) == 0 {
		return 0
	}
	mean := stat.Mean(r.samples, nil)
	if mean <= 0 {
		return 0
	}
	return 1 / mean
}
