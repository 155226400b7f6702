package transform

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-stft/dsp/core"
	"github.com/cwbudde/algo-stft/dsp/window"
)

// STFT computes short-time Fourier transforms over overlapping windowed
// frames, advancing by a configurable hop. Analysis windows are
// normalized so bin magnitudes stay amplitude-calibrated, and the
// magnitude-frequency format replaces bin phases with instantaneous
// frequency estimates from hop-to-hop phase differences.
//
// Resynthesis overlap-adds inverse frames at the hop cadence, optionally
// shaped by a triangular synthesis window, with the overlap gain
// normalized so an unmodified analysis-resynthesis chain has unit gain.
type STFT struct {
	dft   *DFT
	slide *SlidingWindow

	winType   window.Type
	fwdWin    []float64
	invWin    []float64
	invWinMul float64
	useInvWin bool
	rotFwd    bool

	frame      []float64
	synthFrame []float64
	olaBuf     []float64
	outBuf     []float64
	tapR       int

	prevPhase  []float64
	accumPhase []float64
}

// NewSTFT creates a transform over windows of winSize samples advancing
// by hopSize samples. The hop is clamped to [1, winSize]; winSize plus
// any pad configured with WithPad must be a power of two.
func NewSTFT(winSize, hopSize int, opts ...Option) (*STFT, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	dft, err := NewDFT(winSize, opts...)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}
	slide, err := NewSlidingWindow(winSize, hopSize)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}
	s := &STFT{
		dft:       dft,
		slide:     slide,
		winType:   cfg.windowType,
		useInvWin: cfg.invWindowing,
		rotFwd:    cfg.rotateForward,
	}
	s.rebuildState()
	return s, nil
}

// Resize reallocates for a new window and pad size and clears all state.
// The hop is re-clamped to the new window size.
func (s *STFT) Resize(winSize, padSize int) error {
	if err := s.dft.Resize(winSize, padSize); err != nil {
		return fmt.Errorf("stft: %w", err)
	}
	if err := s.slide.Resize(winSize, s.slide.SizeHop()); err != nil {
		return fmt.Errorf("stft: %w", err)
	}
	s.rebuildState()
	return nil
}

func (s *STFT) rebuildState() {
	winSize := s.dft.SizeWin()
	nb := s.dft.NumBins()
	s.frame = core.EnsureLen(s.frame, winSize)
	s.synthFrame = core.EnsureLen(s.synthFrame, winSize)
	s.olaBuf = core.EnsureLen(s.olaBuf, winSize)
	s.outBuf = core.EnsureLen(s.outBuf, s.slide.SizeHop())
	s.prevPhase = core.EnsureLen(s.prevPhase, nb)
	s.accumPhase = core.EnsureLen(s.accumPhase, nb)
	s.applyWindowType()
	s.Reset()
}

// applyWindowType regenerates the analysis window, scaled so its
// coefficients sum to the window size and leave analyzed amplitudes
// unchanged.
func (s *STFT) applyWindowType() {
	winSize := s.dft.SizeWin()
	w := window.Generate(s.winType, winSize, window.WithPeriodic())
	sum := 0.0
	for _, c := range w {
		sum += c
	}
	if sum != 0 {
		vecmath.ScaleBlock(w, w, float64(winSize)/sum)
	}
	s.fwdWin = w
	s.computeInvWinMul()
}

// computeInvWinMul measures the analysis-resynthesis gain at hop strides
// and stores its reciprocal, so an unmodified chain reconstructs at unit
// gain.
func (s *STFT) computeInvWinMul() {
	winSize := s.dft.SizeWin()
	hop := s.slide.SizeHop()
	sum := 0.0
	if s.useInvWin {
		s.invWin = window.Generate(window.TypeTriangle, winSize,
			window.WithPeriodic(), window.WithBartlett())
		for i := 0; i < winSize; i += hop {
			sum += s.fwdWin[i] * s.invWin[i]
		}
	} else {
		s.invWin = nil
		for i := 0; i < winSize; i += hop {
			sum += s.fwdWin[i]
		}
	}
	if sum != 0 {
		s.invWinMul = 1 / sum
	} else {
		s.invWinMul = 1
	}
}

// Reset clears all streaming state: window accumulation, overlap-add
// carry, phase memory, and taps.
func (s *STFT) Reset() {
	s.slide.Reset()
	s.dft.Reset()
	core.Zero(s.frame)
	core.Zero(s.synthFrame)
	core.Zero(s.olaBuf)
	core.Zero(s.outBuf)
	s.tapR = 0
	s.ResetPhases()
}

// ResetPhases zeroes the phase memory and accumulators used by the
// magnitude-frequency format.
func (s *STFT) ResetPhases() {
	core.Zero(s.prevPhase)
	core.Zero(s.accumPhase)
}

// FeedForward accumulates one sample and reports whether a full hop
// elapsed and the captured frame was transformed. Bins are valid after
// it returns true.
func (s *STFT) FeedForward(sample float64) bool {
	if !s.slide.FeedCopy(s.frame, sample) {
		return false
	}
	s.forwardFrame()
	return true
}

// Forward windows and transforms a full frame of SizeWin() samples,
// bypassing the hop accumulator. Use FeedForward for streaming.
func (s *STFT) Forward(src []float64) error {
	if len(src) < s.dft.SizeWin() {
		return fmt.Errorf("stft frame must hold %d samples: %d", s.dft.SizeWin(), len(src))
	}
	copy(s.frame, src)
	s.forwardFrame()
	return nil
}

func (s *STFT) forwardFrame() {
	vecmath.MulBlockInPlace(s.frame, s.fwdWin)
	if s.rotFwd {
		core.RotateLeft(s.frame, len(s.frame)/2)
	}
	// Frame length always matches the window; Forward cannot fail here.
	_ = s.dft.Forward(s.frame)
	if s.dft.Format() == MagnitudeFrequency {
		s.phasesToFrequencies()
	}
}

// phasesToFrequencies replaces each bin's phase with the instantaneous
// frequency in Hz estimated from the deviation of its hop-to-hop phase
// advance from the bin center.
func (s *STFT) phasesToFrequencies() {
	bins := s.dft.Bins()
	hopF := float64(s.slide.SizeHop())
	sizeF := float64(s.dft.SizeDFT())
	toHz := s.dft.SampleRate() / (2 * math.Pi)
	for k := range bins {
		mag, phase := real(bins[k]), imag(bins[k])
		omega := 2 * math.Pi * float64(k) / sizeF
		delta := wrapPhase(phase - s.prevPhase[k] - omega*hopF)
		s.prevPhase[k] = phase
		bins[k] = complex(mag, (omega+delta/hopF)*toHz)
	}
	s.dft.binFormat = MagnitudeFrequency
}

// frequenciesToPhases integrates each bin's frequency into its running
// phase accumulator and writes the accumulated phase back to the bin.
func (s *STFT) frequenciesToPhases() {
	bins := s.dft.Bins()
	hopF := float64(s.slide.SizeHop())
	fromHz := 2 * math.Pi / s.dft.SampleRate()
	for k := range bins {
		mag, freq := real(bins[k]), imag(bins[k])
		s.accumPhase[k] += freq * fromHz * hopF
		bins[k] = complex(mag, s.accumPhase[k])
	}
	s.dft.binFormat = MagnitudePhase
}

// Inverse transforms the bins back to a time frame and overlap-adds it
// into the output accumulator. The SizeHop() consumable samples are
// retained for PullInverse and copied into dst when it is non-nil; dst
// must then hold at least SizeHop() samples.
func (s *STFT) Inverse(dst []float64) error {
	if s.dft.BinFormat() == MagnitudeFrequency {
		s.frequenciesToPhases()
	}
	if err := s.dft.Inverse(nil); err != nil {
		return fmt.Errorf("stft: %w", err)
	}
	sf := s.synthFrame
	copy(sf, s.dft.invBuf)
	if s.rotFwd {
		core.RotateLeft(sf, len(sf)-len(sf)/2)
	}
	if s.useInvWin {
		vecmath.MulBlockInPlace(sf, s.invWin)
	}
	vecmath.ScaleBlock(sf, sf, s.invWinMul)
	vecmath.AddBlockInPlace(s.olaBuf, sf)
	hop := s.slide.SizeHop()
	copy(s.outBuf, s.olaBuf[:hop])
	core.ShiftLeft(s.olaBuf, hop)
	if dst != nil {
		core.CopyInto(dst[:hop], s.outBuf)
	}
	return nil
}

// PullInverse returns the next resynthesized sample, running Inverse each
// time the read tap wraps a full hop.
func (s *STFT) PullInverse() float64 {
	s.tapR++
	if s.tapR >= s.slide.SizeHop() {
		s.tapR = 0
		// Sizes are fixed in rebuildState; Inverse cannot fail here.
		_ = s.Inverse(nil)
	}
	return s.outBuf[s.tapR]
}

// InverseOnNext reports whether the next PullInverse call will run the
// inverse transform. Bins written before that call shape its output.
func (s *STFT) InverseOnNext() bool { return s.tapR == s.slide.SizeHop()-1 }

// SetHopSize changes the frame advance, clamped to [1, SizeWin()], and
// clears streaming state so overlap bookkeeping stays aligned.
func (s *STFT) SetHopSize(hopSize int) {
	s.slide.SetHopSize(hopSize)
	s.outBuf = core.EnsureLen(s.outBuf, s.slide.SizeHop())
	s.computeInvWinMul()
	s.Reset()
}

// SetWindowType switches the analysis window and renormalizes the
// overlap gain. Streaming state is kept.
func (s *STFT) SetWindowType(t window.Type) {
	s.winType = t
	s.applyWindowType()
}

// WindowType returns the analysis window type.
func (s *STFT) WindowType() window.Type { return s.winType }

// SetInverseWindowing toggles the triangular synthesis window and
// renormalizes the overlap gain.
func (s *STFT) SetInverseWindowing(enabled bool) {
	s.useInvWin = enabled
	s.computeInvWinMul()
}

// InverseWindowing reports whether resynthesis applies a triangular
// synthesis window.
func (s *STFT) InverseWindowing() bool { return s.useInvWin }

// SetRotateForward toggles half-window rotation of analysis frames.
func (s *STFT) SetRotateForward(enabled bool) { s.rotFwd = enabled }

// RotateForward reports whether analysis frames are rotated by half a
// window before the transform.
func (s *STFT) RotateForward() bool { return s.rotFwd }

// Phases returns the per-bin analysis phase memory used by the
// magnitude-frequency format.
func (s *STFT) Phases() []float64 { return s.prevPhase }

// AccumPhases returns the per-bin synthesis phase accumulators used by
// the magnitude-frequency format.
func (s *STFT) AccumPhases() []float64 { return s.accumPhase }

// SizeHop returns the frame advance in samples.
func (s *STFT) SizeHop() int { return s.slide.SizeHop() }

// Overlap returns the ratio of window size to hop size.
func (s *STFT) Overlap() float64 {
	return float64(s.dft.SizeWin()) / float64(s.slide.SizeHop())
}

// Overlapping reports whether consecutive frames share samples.
func (s *STFT) Overlapping() bool { return s.slide.SizeHop() < s.dft.SizeWin() }

// HopDuration returns the time between output frames in seconds.
func (s *STFT) HopDuration() float64 {
	return float64(s.slide.SizeHop()) / s.dft.SampleRate()
}

// SizeDFT returns the transform length in samples.
func (s *STFT) SizeDFT() int { return s.dft.SizeDFT() }

// SizeWin returns the analysis window length in samples.
func (s *STFT) SizeWin() int { return s.dft.SizeWin() }

// SizePad returns the number of zeros appended to each frame.
func (s *STFT) SizePad() int { return s.dft.SizePad() }

// NumBins returns the number of half-spectrum bins, DC through Nyquist.
func (s *STFT) NumBins() int { return s.dft.NumBins() }

// Bins returns the bin buffer in the current spectral format.
func (s *STFT) Bins() []complex128 { return s.dft.Bins() }

// Bin returns bin k.
func (s *STFT) Bin(k int) complex128 { return s.dft.Bin(k) }

// BinFreq returns the frequency spacing between bins in Hz.
func (s *STFT) BinFreq() float64 { return s.dft.BinFreq() }

// FreqRes returns the frequency resolution of the analysis window in Hz.
func (s *STFT) FreqRes() float64 { return s.dft.FreqRes() }

// SampleRate returns the sample rate in Hz.
func (s *STFT) SampleRate() float64 { return s.dft.SampleRate() }

// SetSampleRate changes the sample rate and recomputes the bin spacing.
func (s *STFT) SetSampleRate(rate float64) error { return s.dft.SetSampleRate(rate) }

// OnDomainChange adopts a new sample rate. It allows the transform to be
// attached to a domain.Domain as an observer.
func (s *STFT) OnDomainChange(rate float64) { s.dft.OnDomainChange(rate) }

// Format returns the spectral format produced by forward transforms.
func (s *STFT) Format() SpectralFormat { return s.dft.Format() }

// SetFormat changes the spectral format produced by forward transforms.
func (s *STFT) SetFormat(f SpectralFormat) error { return s.dft.SetFormat(f) }

// BinFormat returns the format the bin buffer currently holds.
func (s *STFT) BinFormat() SpectralFormat { return s.dft.BinFormat() }

// Precise reports whether polar conversions use exact math.
func (s *STFT) Precise() bool { return s.dft.Precise() }

// SetPrecise selects exact polar conversions when true or faster
// approximate ones when false.
func (s *STFT) SetPrecise(precise bool) { s.dft.SetPrecise(precise) }

// ToPolar rewrites the bins in place from rectangular to magnitude-phase.
func (s *STFT) ToPolar() { s.dft.ToPolar() }

// ToRectangular rewrites the bins in place back to rectangular form,
// integrating frequencies into phases first when the buffer holds the
// magnitude-frequency format.
func (s *STFT) ToRectangular() {
	if s.dft.BinFormat() == MagnitudeFrequency {
		s.frequenciesToPhases()
	}
	s.dft.ToRectangular()
}

// Aux returns auxiliary buffer i, holding NumBins() values.
func (s *STFT) Aux(i int) []float64 { return s.dft.Aux(i) }

// AuxSpan returns count adjacent auxiliary buffers starting at i as one
// contiguous slice.
func (s *STFT) AuxSpan(i, count int) []float64 { return s.dft.AuxSpan(i, count) }

// AuxCount returns the number of auxiliary buffers.
func (s *STFT) AuxCount() int { return s.dft.AuxCount() }

// SetAuxCount reallocates the auxiliary storage to n zeroed buffers.
func (s *STFT) SetAuxCount(n int) { s.dft.SetAuxCount(n) }

// Zero clears the bin buffer.
func (s *STFT) Zero() { s.dft.Zero() }

// ZeroAux clears all auxiliary buffers.
func (s *STFT) ZeroAux() { s.dft.ZeroAux() }

// ZeroEnds clears the imaginary parts of the DC and Nyquist bins.
func (s *STFT) ZeroEnds() { s.dft.ZeroEnds() }

// wrapPhase wraps a phase difference to [-π, π).
func wrapPhase(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return x - math.Pi
}
