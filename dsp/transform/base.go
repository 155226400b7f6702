package transform

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-stft/dsp/core"
)

// Base holds the spectral state shared by the block and sliding
// transforms: the half-spectrum bin buffer, optional auxiliary buffers,
// and the sample-rate-derived bin metadata. It is embedded by DFT and
// SlidingDFT and not constructed on its own.
type Base struct {
	sizeDFT    int
	bins       []complex128
	aux        []float64
	numAux     int
	sampleRate float64
	binFreq    float64
}

// resize reallocates the bin and auxiliary buffers for a new transform
// size and zeroes them.
func (b *Base) resize(sizeDFT int) {
	b.sizeDFT = sizeDFT
	nb := b.NumBins()
	b.bins = core.EnsureLen(b.bins, nb)
	core.Zero(b.bins)
	b.aux = core.EnsureLen(b.aux, b.numAux*nb)
	core.Zero(b.aux)
	b.binFreq = b.sampleRate / float64(sizeDFT)
}

// SizeDFT returns the transform length in samples.
func (b *Base) SizeDFT() int { return b.sizeDFT }

// NumBins returns the number of half-spectrum bins, DC through Nyquist.
func (b *Base) NumBins() int { return (b.sizeDFT + 2) / 2 }

// NormForward returns the forward scaling factor 2/SizeDFT().
func (b *Base) NormForward() float64 { return 2 / float64(b.sizeDFT) }

// Bins returns the bin buffer. Its interpretation depends on the current
// spectral format of the owning transform.
func (b *Base) Bins() []complex128 { return b.bins }

// Bin returns bin k.
func (b *Base) Bin(k int) complex128 { return b.bins[k] }

// BinFreq returns the frequency spacing between bins in Hz.
func (b *Base) BinFreq() float64 { return b.binFreq }

// SampleRate returns the sample rate in Hz.
func (b *Base) SampleRate() float64 { return b.sampleRate }

// SetSampleRate changes the sample rate and recomputes the bin spacing.
func (b *Base) SetSampleRate(rate float64) error {
	if err := validateSampleRate(rate); err != nil {
		return err
	}
	b.OnDomainChange(rate)
	return nil
}

// OnDomainChange adopts a new sample rate. It allows the transform to be
// attached to a domain.Domain as an observer.
func (b *Base) OnDomainChange(rate float64) {
	b.sampleRate = rate
	b.binFreq = rate / float64(b.sizeDFT)
}

// AuxCount returns the number of auxiliary buffers.
func (b *Base) AuxCount() int { return b.numAux }

// SetAuxCount reallocates the auxiliary storage to n buffers of NumBins()
// values each, zeroed. Negative counts are treated as zero.
func (b *Base) SetAuxCount(n int) {
	b.numAux = max(n, 0)
	b.aux = core.EnsureLen(b.aux, b.numAux*b.NumBins())
	core.Zero(b.aux)
}

// Aux returns auxiliary buffer i, holding NumBins() values.
func (b *Base) Aux(i int) []float64 {
	nb := b.NumBins()
	return b.aux[i*nb : (i+1)*nb]
}

// AuxSpan returns count adjacent auxiliary buffers starting at i as one
// contiguous slice of count*NumBins() values.
func (b *Base) AuxSpan(i, count int) []float64 {
	nb := b.NumBins()
	return b.aux[i*nb : (i+count)*nb]
}

// Zero clears the bin buffer.
func (b *Base) Zero() {
	core.Zero(b.bins)
}

// ZeroAux clears all auxiliary buffers.
func (b *Base) ZeroAux() {
	core.Zero(b.aux)
}

// ZeroEnds clears the imaginary parts of the DC and Nyquist bins, which
// are purely real for real input.
func (b *Base) ZeroEnds() {
	if len(b.bins) == 0 {
		return
	}
	b.bins[0] = complex(real(b.bins[0]), 0)
	last := len(b.bins) - 1
	b.bins[last] = complex(real(b.bins[last]), 0)
}

func validateSampleRate(rate float64) error {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("transform sample rate must be positive and finite: %g", rate)
	}
	return nil
}
