package transform

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/meko-christian/algo-approx"

	"github.com/cwbudde/algo-stft/dsp/core"
)

// DFT computes non-overlapping block Fourier transforms over a sample
// stream. Frames of SizeWin() samples are transformed as collected, with
// SizePad() zeros appended to interpolate the spectrum to a larger
// power-of-two size. Forward results are scaled so a unit-amplitude
// sinusoid at a bin center reads magnitude one.
//
// FeedForward and PullInverse provide one-sample-at-a-time streaming on
// the analysis and synthesis sides; Forward and Inverse transform whole
// frames directly.
type DFT struct {
	Base

	sizeWin   int
	sizePad   int
	format    SpectralFormat
	binFormat SpectralFormat
	precise   bool

	plan    *algofft.Plan[complex128]
	winBuf  []float64
	invBuf  []float64
	padTail []float64
	scratch []complex128

	tapW int
	tapR int
}

// NewDFT creates a transform over windows of winSize samples. The window
// size plus any pad configured with WithPad must be a power of two.
func NewDFT(winSize int, opts ...Option) (*DFT, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := validateSampleRate(cfg.sampleRate); err != nil {
		return nil, err
	}
	if !validFormat(cfg.format) {
		return nil, fmt.Errorf("dft spectral format invalid: %d", cfg.format)
	}
	t := &DFT{
		format:    cfg.format,
		binFormat: Rectangular,
		precise:   cfg.precise,
	}
	t.sampleRate = cfg.sampleRate
	t.numAux = max(cfg.numAux, 0)
	if err := t.Resize(winSize, cfg.pad); err != nil {
		return nil, err
	}
	return t, nil
}

// Resize reallocates for a new window and pad size and clears all state.
// winSize+padSize must be a power of two.
func (t *DFT) Resize(winSize, padSize int) error {
	if winSize <= 0 {
		return fmt.Errorf("dft window size must be > 0: %d", winSize)
	}
	if padSize < 0 {
		return fmt.Errorf("dft pad size must be >= 0: %d", padSize)
	}
	sizeDFT := winSize + padSize
	if !isPowerOfTwo(sizeDFT) {
		return fmt.Errorf("dft size must be a power of two: %d", sizeDFT)
	}
	if t.plan != nil && winSize == t.sizeWin && padSize == t.sizePad {
		t.Reset()
		return nil
	}
	plan, err := algofft.NewPlan64(sizeDFT)
	if err != nil {
		return fmt.Errorf("dft: failed to create FFT plan: %w", err)
	}
	t.plan = plan
	t.sizeWin = winSize
	t.sizePad = padSize
	t.resize(sizeDFT)
	t.winBuf = core.EnsureLen(t.winBuf, winSize)
	t.invBuf = core.EnsureLen(t.invBuf, winSize)
	t.padTail = core.EnsureLen(t.padTail, padSize)
	t.scratch = core.EnsureLen(t.scratch, sizeDFT)
	t.Reset()
	return nil
}

// Reset zeroes all buffers, resets both streaming taps, and marks the
// bins rectangular.
func (t *DFT) Reset() {
	t.Zero()
	t.ZeroAux()
	core.Zero(t.winBuf)
	core.Zero(t.invBuf)
	core.Zero(t.padTail)
	core.Zero(t.scratch)
	t.tapW = 0
	t.tapR = 0
	t.binFormat = Rectangular
}

// SizeWin returns the analysis window length in samples.
func (t *DFT) SizeWin() int { return t.sizeWin }

// SizePad returns the number of zeros appended to each frame.
func (t *DFT) SizePad() int { return t.sizePad }

// SizeHop returns the frame advance in samples. Block transforms do not
// overlap, so the hop equals the window size.
func (t *DFT) SizeHop() int { return t.sizeWin }

// Overlap returns the ratio of window size to hop size.
func (t *DFT) Overlap() float64 { return float64(t.sizeWin) / float64(t.SizeHop()) }

// Overlapping reports whether consecutive frames share samples.
func (t *DFT) Overlapping() bool { return t.SizeHop() < t.sizeWin }

// FreqRes returns the frequency resolution of the analysis window in Hz.
// Zero-padding interpolates bins below this resolution without improving it.
func (t *DFT) FreqRes() float64 { return t.sampleRate / float64(t.sizeWin) }

// HopDuration returns the time between output frames in seconds.
func (t *DFT) HopDuration() float64 { return float64(t.SizeHop()) / t.sampleRate }

// Format returns the spectral format produced by Forward.
func (t *DFT) Format() SpectralFormat { return t.format }

// SetFormat changes the spectral format produced by Forward. It does not
// rewrite bins already produced.
func (t *DFT) SetFormat(f SpectralFormat) error {
	if !validFormat(f) {
		return fmt.Errorf("dft spectral format invalid: %d", f)
	}
	t.format = f
	return nil
}

// BinFormat returns the format the bin buffer currently holds, which
// trails Format until the next forward transform.
func (t *DFT) BinFormat() SpectralFormat { return t.binFormat }

// Precise reports whether polar conversions use exact math.
func (t *DFT) Precise() bool { return t.precise }

// SetPrecise selects exact polar conversions when true or faster
// approximate ones when false.
func (t *DFT) SetPrecise(precise bool) { t.precise = precise }

// FeedForward accumulates one sample and reports whether a full window
// was collected and transformed. Bins are valid after it returns true.
func (t *DFT) FeedForward(sample float64) bool {
	t.winBuf[t.tapW] = sample
	t.tapW++
	if t.tapW < t.sizeWin {
		return false
	}
	t.tapW = 0
	// Plan and scratch sizes are fixed together in Resize; Forward
	// cannot fail on its own frame.
	_ = t.Forward(t.winBuf)
	return true
}

// Forward transforms one frame of samples into the bin buffer and
// converts it to the configured format. src may be shorter than the
// window; missing samples and the pad region are taken as zero.
func (t *DFT) Forward(src []float64) error {
	n := min(len(src), t.sizeWin)
	for i := 0; i < n; i++ {
		t.scratch[i] = complex(src[i], 0)
	}
	for i := n; i < len(t.scratch); i++ {
		t.scratch[i] = 0
	}
	if err := t.plan.Forward(t.scratch, t.scratch); err != nil {
		return fmt.Errorf("dft: forward FFT failed: %w", err)
	}
	norm := complex(t.NormForward(), 0)
	for k := range t.bins {
		t.bins[k] = t.scratch[k] * norm
	}
	t.binFormat = Rectangular
	t.ZeroEnds()
	if t.format != Rectangular {
		t.ToPolar()
	}
	return nil
}

// Inverse transforms the bins back to a time frame, overlap-adding the
// pad tail carried from the previous frame. The SizeWin() output samples
// are retained for PullInverse and copied into dst when it is non-nil;
// dst must then hold at least SizeWin() samples.
func (t *DFT) Inverse(dst []float64) error {
	t.ToRectangular()
	half := t.sizeDFT / 2
	scale := complex(1/t.NormForward(), 0)
	t.scratch[0] = complex(real(t.bins[0]), 0) * scale
	t.scratch[half] = complex(real(t.bins[half]), 0) * scale
	for k := 1; k < half; k++ {
		v := t.bins[k] * scale
		t.scratch[k] = v
		t.scratch[t.sizeDFT-k] = complex(real(v), -imag(v))
	}
	if err := t.plan.Inverse(t.scratch, t.scratch); err != nil {
		return fmt.Errorf("dft: inverse FFT failed: %w", err)
	}
	for i := 0; i < t.sizePad; i++ {
		t.scratch[i] += complex(t.padTail[i], 0)
	}
	for i := 0; i < t.sizePad; i++ {
		t.padTail[i] = real(t.scratch[t.sizeWin+i])
	}
	for i := 0; i < t.sizeWin; i++ {
		t.invBuf[i] = real(t.scratch[i])
	}
	if dst != nil {
		core.CopyInto(dst[:t.sizeWin], t.invBuf)
	}
	return nil
}

// PullInverse returns the next resynthesized sample, running Inverse each
// time the read tap wraps a full window. Output lags the bin updates by
// one frame of latency.
func (t *DFT) PullInverse() float64 {
	t.tapR++
	if t.tapR >= t.sizeWin {
		t.tapR = 0
		// Sizes are fixed in Resize; Inverse cannot fail here.
		_ = t.Inverse(nil)
	}
	return t.invBuf[t.tapR]
}

// InverseOnNext reports whether the next PullInverse call will run the
// inverse transform. Bins written before that call shape its output.
func (t *DFT) InverseOnNext() bool { return t.tapR == t.sizeWin-1 }

// ToPolar rewrites the bins in place from rectangular to magnitude-phase.
// Buffers already in a polar format are left untouched.
func (t *DFT) ToPolar() {
	if t.binFormat != Rectangular {
		return
	}
	if t.precise {
		for k := range t.bins {
			re, im := real(t.bins[k]), imag(t.bins[k])
			t.bins[k] = complex(math.Hypot(re, im), math.Atan2(im, re))
		}
	} else {
		for k := range t.bins {
			re, im := real(t.bins[k]), imag(t.bins[k])
			t.bins[k] = complex(approx.FastSqrt(re*re+im*im), atan2Fast(im, re))
		}
	}
	t.binFormat = MagnitudePhase
}

// ToRectangular rewrites the bins in place from magnitude-phase back to
// rectangular. The imaginary slot is taken as phase in radians. Buffers
// already rectangular are left untouched.
func (t *DFT) ToRectangular() {
	if t.binFormat == Rectangular {
		return
	}
	for k := range t.bins {
		mag, phase := real(t.bins[k]), imag(t.bins[k])
		s, c := math.Sincos(phase)
		t.bins[k] = complex(mag*c, mag*s)
	}
	t.binFormat = Rectangular
}

// atan2Fast approximates math.Atan2 with an octant-reduced polynomial.
// Worst-case error is about 0.005 radians.
func atan2Fast(y, x float64) float64 {
	const c = math.Pi / 4
	ay, ax := math.Abs(y), math.Abs(x)
	if ax == 0 && ay == 0 {
		return 0
	}
	var angle float64
	if ax >= ay {
		r := ay / ax
		angle = r * (c + 0.273*(1-r))
	} else {
		r := ax / ay
		angle = math.Pi/2 - r*(c+0.273*(1-r))
	}
	if x < 0 {
		angle = math.Pi - angle
	}
	if y < 0 {
		angle = -angle
	}
	return angle
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
