package transform

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-stft/dsp/delay"
)

// SlidingDFT maintains a running Fourier transform over the most recent
// SizeDFT() samples, updating once per input sample. Only bins inside
// the configured interval are computed, keeping the per-sample cost
// proportional to the interval width rather than the transform size.
// The size does not need to be a power of two, and there is no inverse.
//
// Each analyzed bin k is driven by a comb-filtered input and a complex
// resonator at the bin frequency:
//
//	bins[k] = bins[k]*e^(i2πk/N) + (x[n] - x[n-N])*2/N
//
// Bins stay rectangular; convert with the spectrum package if polar
// values are needed.
type SlidingDFT struct {
	Base

	binLo   int
	binHi   int
	hist    *delay.Line
	rotLo   complex128
	rotStep complex128
}

// NewSlidingDFT creates a transform of sizeDFT samples analyzing bins
// [binLo, binHi).
func NewSlidingDFT(sizeDFT, binLo, binHi int, opts ...Option) (*SlidingDFT, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := validateSampleRate(cfg.sampleRate); err != nil {
		return nil, err
	}
	s := &SlidingDFT{}
	s.sampleRate = cfg.sampleRate
	s.numAux = max(cfg.numAux, 0)
	if err := s.Resize(sizeDFT, binLo, binHi); err != nil {
		return nil, err
	}
	return s, nil
}

// Resize reallocates for a new transform size and analysis interval and
// clears all state. It leaves the transform unchanged on error.
func (s *SlidingDFT) Resize(sizeDFT, binLo, binHi int) error {
	if sizeDFT <= 0 {
		return fmt.Errorf("sliding dft size must be > 0: %d", sizeDFT)
	}
	if nb := (sizeDFT + 2) / 2; binLo < 0 || binHi > nb || binLo >= binHi {
		return fmt.Errorf("sliding dft interval invalid: [%d, %d) of %d bins", binLo, binHi, nb)
	}
	if s.hist == nil {
		hist, err := delay.New(sizeDFT)
		if err != nil {
			return fmt.Errorf("sliding dft: %w", err)
		}
		s.hist = hist
	} else if err := s.hist.Resize(sizeDFT); err != nil {
		return fmt.Errorf("sliding dft: %w", err)
	}
	s.resize(sizeDFT)
	return s.SetInterval(binLo, binHi)
}

// SetInterval restricts analysis to bins [binLo, binHi) and zeroes the
// bins outside it.
func (s *SlidingDFT) SetInterval(binLo, binHi int) error {
	nb := s.NumBins()
	if binLo < 0 || binHi > nb || binLo >= binHi {
		return fmt.Errorf("sliding dft interval invalid: [%d, %d) of %d bins", binLo, binHi, nb)
	}
	s.binLo = binLo
	s.binHi = binHi
	step := 2 * math.Pi / float64(s.sizeDFT)
	s.rotStep = cmplx.Exp(complex(0, step))
	s.rotLo = cmplx.Exp(complex(0, step*float64(binLo)))
	for k := range s.bins {
		if k < binLo || k >= binHi {
			s.bins[k] = 0
		}
	}
	return nil
}

// BinLo returns the first analyzed bin.
func (s *SlidingDFT) BinLo() int { return s.binLo }

// BinHi returns the bin one past the last analyzed bin.
func (s *SlidingDFT) BinHi() int { return s.binHi }

// Forward folds one sample into the running transform, updating every
// bin in the analysis interval.
func (s *SlidingDFT) Forward(sample float64) {
	old := s.hist.Tick(sample)
	dif := complex((sample-old)*s.NormForward(), 0)
	rot := s.rotLo
	for k := s.binLo; k < s.binHi; k++ {
		s.bins[k] = s.bins[k]*rot + dif
		rot *= s.rotStep
	}
}

// Reset clears the bins and the sample history.
func (s *SlidingDFT) Reset() {
	s.Zero()
	s.ZeroAux()
	s.hist.Reset()
}
