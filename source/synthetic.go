// Package source provides frame producers for the reconstruction pipeline.
// The real producer is a vendor line-scan camera wrapper outside this
// module; Synthetic stands in for it, generating interferogram-like frames
// at a fixed rate for benches, demos and end-to-end tests.
package source

import (
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/spectralab/oct-recon/frame"
	"github.com/spectralab/oct-recon/logging"
	"github.com/spectralab/oct-recon/recon"
)

// SyntheticConfig shapes the generated frames.
type SyntheticConfig struct {
	Lines     int     `json:"lines"`      // lines per frame
	Samples   int     `json:"samples"`    // wavelength samples per line
	FrameRate float64 `json:"frame_rate"` // frames per second

	DCLevel   float64 `json:"dc_level"`   // baseline counts, camera delivers 10-bit samples
	Amplitude float64 `json:"amplitude"`  // fringe amplitude in counts
	Cycles    float64 `json:"cycles"`     // fringe cycles across one line
	PhaseStep float64 `json:"phase_step"` // per-line phase increment, radians
	Noise     float64 `json:"noise"`      // additive gaussian noise, counts
}

// DefaultSyntheticConfig matches the default reconstruction configuration:
// 2048 samples per line at 50 frames per second.
func DefaultSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{
		Lines:     256,
		Samples:   2048,
		FrameRate: 50,
		DCLevel:   500,
		Amplitude: 200,
		Cycles:    82,
		PhaseStep: 0.02,
		Noise:     2,
	}
}

// Synthetic continuously publishes generated frames into a mailbox, the same
// free-running, never-blocking producer contract a camera grab loop has. It
// counts frames and tracks its own smoothed acquisition rate.
type Synthetic struct {
	cfg     SyntheticConfig
	mailbox *frame.Mailbox
	logger  logging.Logger
	tracker *recon.RateTracker

	counter atomic.Int64
	running atomic.Bool

	stop chan struct{}
	done chan struct{}
}

// NewSynthetic creates a synthetic source publishing into the given mailbox.
func NewSynthetic(cfg SyntheticConfig, mailbox *frame.Mailbox) *Synthetic {
	return &Synthetic{
		cfg:     cfg,
		mailbox: mailbox,
		logger:  logging.WithFields(logging.Fields{"component": "source"}),
		tracker: recon.NewRateTracker(recon.DefaultRateHistory),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the acquisition loop.
func (s *Synthetic) Start() error {
	if s.cfg.Lines <= 0 || s.cfg.Samples <= 0 || s.cfg.FrameRate <= 0 {
		return fmt.Errorf("synthetic source needs positive lines, samples and frame rate")
	}
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("synthetic source already running")
	}
	s.logger.Info("synthetic acquisition starting", logging.Fields{
		"lines":      s.cfg.Lines,
		"samples":    s.cfg.Samples,
		"frame_rate": s.cfg.FrameRate,
	})
	go s.run()
	return nil
}

// Stop halts the acquisition loop and waits for it to exit.
func (s *Synthetic) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.stop)
	<-s.done
	s.logger.Info("synthetic acquisition stopped", logging.Fields{"frames": s.Frames()})
}

// Frames returns the number of frames published so far.
func (s *Synthetic) Frames() int64 {
	return s.counter.Load()
}

// Rate returns the smoothed acquisition rate in frames per second.
func (s *Synthetic) Rate() float64 {
	return s.tracker.Rate()
}

func (s *Synthetic) run() {
	defer close(s.done)

	interval := time.Duration(float64(time.Second) / s.cfg.FrameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
		}

		n := s.counter.Add(1)
		s.mailbox.Publish(s.Grab(n))

		now := time.Now()
		s.tracker.Observe(now.Sub(last))
		last = now
	}
}

// Grab generates one frame. Each line carries a cosine fringe pattern on a
// DC pedestal, with the phase advancing line to line and frame to frame so
// the inter-line phase contrast is nonzero. Samples are quantized and
// clamped to the camera's 10-bit range.
func (s *Synthetic) Grab(frameIndex int64) *frame.Frame {
	raw := make([][]uint16, s.cfg.Lines)
	framePhase := 0.01 * float64(frameIndex)

	for li := range raw {
		row := make([]uint16, s.cfg.Samples)
		phase := framePhase + s.cfg.PhaseStep*float64(li)

		for j := range row {
			x := float64(j) / float64(s.cfg.Samples)
			v := s.cfg.DCLevel + s.cfg.Amplitude*math.Cos(2*math.Pi*s.cfg.Cycles*x+phase)
			if s.cfg.Noise > 0 {
				v += rand.NormFloat64() * s.cfg.Noise
			}

			counts := math.Round(v)
			if counts < 0 {
				counts = 0
			} else if counts > frame.MaxRawSample {
				counts = frame.MaxRawSample
			}
			row[j] = uint16(counts)
		}
		raw[li] = row
	}

	return frame.FromRaw(raw)
}
