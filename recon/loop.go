package recon

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/spectralab/oct-recon/calibration"
	"github.com/spectralab/oct-recon/dsp"
	"github.com/spectralab/oct-recon/frame"
	"github.com/spectralab/oct-recon/logging"
)

// State is the lifecycle state of a Processor.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// snapshot bundles the configuration and the calibration derived from it.
// The pair is swapped atomically so a pass can never read wavenumber grids
// from two different calibration epochs.
type snapshot struct {
	cfg Config
	cal *calibration.Calibration
}

// Processor is the reconstruction worker. It waits on the mailbox for the
// latest published frame, runs the pipeline stages in order and publishes a
// Result per completed pass. Exactly one goroutine processes frames; the
// mailbox's overwrite semantics handle any backlog by dropping stale frames.
//
// Lifecycle is Idle -> Running -> Stopped; a stopped processor does not
// restart. Callbacks must be set before Start and must not block.
type Processor struct {
	mailbox *frame.Mailbox
	session string
	logger  logging.Logger

	onResult func(*Result)
	onRate   func(float64)

	state atomic.Int32
	snap  atomic.Pointer[snapshot]

	// updateMu serializes read-modify-write configuration updates; the
	// processing loop itself reads snapshots lock-free.
	updateMu sync.Mutex

	stop chan struct{}
	done chan struct{}

	dc          *dsp.DCSubtractor
	resampler   *dsp.Resampler
	transformer *dsp.Transformer
	tracker     *RateTracker
}

// NewProcessor creates a processor reading from the given mailbox. The
// configuration is validated up front; a bad calibration is rejected here
// rather than at the first frame.
func NewProcessor(mailbox *frame.Mailbox, cfg Config) (*Processor, error) {
	session := uuid.NewString()

	p := &Processor{
		mailbox:     mailbox,
		session:     session,
		logger:      logging.WithFields(logging.Fields{"component": "recon", "session": session}),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		dc:          dsp.NewDCSubtractor(),
		resampler:   dsp.NewResampler(),
		transformer: dsp.NewTransformer(),
		tracker:     NewRateTracker(DefaultRateHistory),
	}
	if err := p.UpdateConfig(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Session returns the identifier of this processor run.
func (p *Processor) Session() string {
	return p.session
}

// State returns the current lifecycle state.
func (p *Processor) State() State {
	return State(p.state.Load())
}

// Config returns the configuration of the current snapshot.
func (p *Processor) Config() Config {
	return p.snap.Load().cfg
}

// SetOnResult registers the per-pass result callback.
func (p *Processor) SetOnResult(fn func(*Result)) {
	p.onResult = fn
}

// SetOnRate registers the smoothed-rate callback, fired after every pass.
func (p *Processor) SetOnRate(fn func(float64)) {
	p.onRate = fn
}

// UpdateConfig replaces the configuration between passes. The calibration is
// rebuilt from the new wavelength bounds; on error the previous snapshot
// stays in effect untouched.
func (p *Processor) UpdateConfig(cfg Config) error {
	p.updateMu.Lock()
	defer p.updateMu.Unlock()

	cal, err := calibration.New(cfg.LambdaMin, cfg.LambdaMax, cfg.NumPoints)
	if err != nil {
		return err
	}
	p.snap.Store(&snapshot{cfg: cfg, cal: cal})
	return nil
}

// SetWavelengthBounds updates only the calibration bounds, keeping the rest
// of the configuration.
func (p *Processor) SetWavelengthBounds(lambdaMin, lambdaMax float64) error {
	p.updateMu.Lock()
	cfg := p.snap.Load().cfg
	p.updateMu.Unlock()

	cfg.LambdaMin = lambdaMin
	cfg.LambdaMax = lambdaMax
	return p.UpdateConfig(cfg)
}

// Start launches the processing loop. It fails if the processor is not
// idle.
func (p *Processor) Start() error {
	if !p.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return fmt.Errorf("processor is %s, can only start from idle", p.State())
	}
	p.logger.Info("reconstruction loop starting")
	go p.run()
	return nil
}

// Stop requests the loop to halt and waits for it to exit. Frames published
// after Stop is requested are discarded, not processed; a frame already
// being processed completes its pass but its result is not published.
func (p *Processor) Stop() {
	if p.state.CompareAndSwap(int32(StateRunning), int32(StateStopped)) {
		close(p.stop)
		<-p.done
		p.logger.Info("reconstruction loop stopped")
		return
	}
	p.state.CompareAndSwap(int32(StateIdle), int32(StateStopped))
}

func (p *Processor) run() {
	defer close(p.done)

	for {
		select {
		case <-p.stop:
			return
		case <-p.mailbox.Ready():
		}

		// A stop issued while waiting wins over any frame that arrived
		// concurrently.
		select {
		case <-p.stop:
			return
		default:
		}

		f, ok := p.mailbox.Take()
		if !ok {
			continue
		}

		start := time.Now()
		res, err := p.process(f)
		if err != nil {
			p.logger.Error(err, "reconstruction pass skipped")
			continue
		}
		res.Elapsed = time.Since(start)
		p.logger.Debug("reconstruction pass complete", logging.Fields{
			"padded_size": res.Plan.PaddedSize(),
			"elapsed_ms":  float64(res.Elapsed.Microseconds()) / 1000,
		})

		select {
		case <-p.stop:
			return
		default:
		}

		if p.onResult != nil {
			p.onResult(res)
		}
		rate := p.tracker.Observe(time.Since(start))
		if p.onRate != nil {
			p.onRate(rate)
		}
	}
}

// process runs one full pass over a frame the loop owns exclusively. The
// frame is mutated in place by the early stages and discarded afterwards.
// Any panic inside a stage is converted to an error so a single bad frame
// cannot take the loop down.
func (p *Processor) process(f *frame.Frame) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reconstruction pass panicked: %v", r)
		}
	}()

	snap := p.snap.Load()

	if err := f.Validate(); err != nil {
		return nil, err
	}

	if snap.cfg.ApplyDCSubtraction {
		if err := p.dc.Apply(f); err != nil {
			return nil, err
		}
	}

	if snap.cfg.ApplyLambdaToK {
		if err := p.resampler.Apply(f, snap.cal); err != nil {
			return nil, err
		}
	}

	windower := dsp.NewWindower(snap.cfg.MinTransformSize, snap.cfg.Window)
	padded, plan, err := windower.Apply(f, snap.cfg.PeakPercentage)
	if err != nil {
		return nil, err
	}

	profile, err := p.transformer.Apply(padded, snap.cfg.NoiseFloor, snap.cfg.ROILow, snap.cfg.ROIHigh)
	if err != nil {
		return nil, err
	}

	return &Result{
		Magnitude: profile.Magnitude,
		PhaseDiff: profile.PhaseDiff,
		Padded:    padded,
		Plan:      plan,
		Session:   p.session,
	}, nil
}
