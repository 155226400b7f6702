package transform

// StreamAnalyzer feeds a sample stream into a spectral transform one
// sample at a time. Implementations include DFT and STFT, which analyze
// on different cadences but expose the same half-spectrum layout.
//
// Both transforms:
//   - Accept one sample per FeedForward call
//   - Report true when a fresh spectral frame is available in Bins
//   - Scale bins so a unit-amplitude bin-centered sinusoid reads one
type StreamAnalyzer interface {
	// FeedForward accumulates one sample and reports whether the bins
	// were refreshed by a forward transform.
	FeedForward(sample float64) bool

	// NumBins returns the number of half-spectrum bins, DC through
	// Nyquist.
	NumBins() int

	// Bins returns the bin buffer in the transform's current spectral
	// format.
	Bins() []complex128

	// SizeDFT returns the transform length in samples.
	SizeDFT() int
}

// StreamResynthesizer drains a spectral transform back into a sample
// stream one sample at a time, running the inverse transform on frame
// boundaries.
type StreamResynthesizer interface {
	// PullInverse returns the next output sample.
	PullInverse() float64

	// InverseOnNext reports whether the next PullInverse call will run
	// the inverse transform, so bins can be edited just in time.
	InverseOnNext() bool

	// Reset clears all streaming state.
	Reset()
}
