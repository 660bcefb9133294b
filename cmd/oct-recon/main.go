// Command oct-recon runs the reconstruction pipeline against the synthetic
// line-scan source and reports throughput. It exercises the full path a
// camera-fed deployment uses: acquisition loop -> single-slot mailbox ->
// reconstruction loop -> result callbacks.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/maruel/interrupt"

	"github.com/spectralab/oct-recon/frame"
	"github.com/spectralab/oct-recon/logging"
	"github.com/spectralab/oct-recon/recon"
	"github.com/spectralab/oct-recon/source"
)

func mainImpl() error {
	lambdaMin := flag.Float64("lambda-min", 1200, "minimum wavelength of the spectrometer (nm)")
	lambdaMax := flag.Float64("lambda-max", 1430, "maximum wavelength of the spectrometer (nm)")
	numPoints := flag.Int("num-points", 2048, "wavelength samples per line")
	lines := flag.Int("lines", 256, "lines per frame")
	peak := flag.Float64("peak", 56, "coherence peak position, percent of line length")
	window := flag.String("window", "rectangular", "window type: rectangular, hann or hamming")
	frameRate := flag.Float64("frame-rate", 50, "acquisition rate in frames per second")
	noDC := flag.Bool("no-dc-subtraction", false, "disable DC subtraction")
	noResample := flag.Bool("no-lambda-to-k", false, "disable wavelength to wavenumber resampling")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if len(flag.Args()) != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}
	if *verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	interrupt.HandleCtrlC()

	cfg := recon.DefaultConfig()
	cfg.LambdaMin = *lambdaMin
	cfg.LambdaMax = *lambdaMax
	cfg.NumPoints = *numPoints
	cfg.PeakPercentage = *peak
	cfg.Window = *window
	cfg.ApplyDCSubtraction = !*noDC
	cfg.ApplyLambdaToK = !*noResample

	mailbox := frame.NewMailbox()
	proc, err := recon.NewProcessor(mailbox, cfg)
	if err != nil {
		return err
	}

	var results atomic.Int64
	var rateBits atomic.Uint64
	proc.SetOnResult(func(r *recon.Result) {
		results.Add(1)
	})
	proc.SetOnRate(func(fps float64) {
		rateBits.Store(uint64(fps * 100))
	})

	srcCfg := source.DefaultSyntheticConfig()
	srcCfg.Lines = *lines
	srcCfg.Samples = *numPoints
	srcCfg.FrameRate = *frameRate
	src := source.NewSynthetic(srcCfg, mailbox)

	if err := proc.Start(); err != nil {
		return err
	}
	if err := src.Start(); err != nil {
		proc.Stop()
		return err
	}

	for !interrupt.IsSet() {
		fmt.Printf("\racquired %d @ %.1f fps | reconstructed %d @ %.2f fps",
			src.Frames(), src.Rate(), results.Load(), float64(rateBits.Load())/100)
		time.Sleep(time.Second)
	}
	fmt.Print("\n")

	src.Stop()
	proc.Stop()
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "oct-recon: %v\n", err)
		os.Exit(1)
	}
}
