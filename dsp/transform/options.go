package transform

import "github.com/cwbudde/algo-stft/dsp/window"

// Option configures a transform at construction time.
type Option func(*config)

type config struct {
	pad           int
	format        SpectralFormat
	numAux        int
	sampleRate    float64
	precise       bool
	windowType    window.Type
	invWindowing  bool
	rotateForward bool
}

func defaultConfig() config {
	return config{
		format:       Rectangular,
		sampleRate:   48000,
		precise:      true,
		windowType:   window.TypeHann,
		invWindowing: true,
	}
}

// WithPad appends n zero samples to each frame before the transform,
// interpolating the spectrum to a larger size. The window size plus pad
// must be a power of two.
func WithPad(n int) Option {
	return func(c *config) {
		c.pad = n
	}
}

// WithFormat sets the spectral format produced by forward transforms.
func WithFormat(f SpectralFormat) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithAuxBuffers preallocates n auxiliary buffers of NumBins() values each.
func WithAuxBuffers(n int) Option {
	return func(c *config) {
		c.numAux = n
	}
}

// WithSampleRate sets the sample rate in Hz used to derive bin frequencies.
// The default is 48000.
func WithSampleRate(rate float64) Option {
	return func(c *config) {
		c.sampleRate = rate
	}
}

// WithPrecise selects exact polar conversions when true (the default) or
// faster approximate ones when false.
func WithPrecise(precise bool) Option {
	return func(c *config) {
		c.precise = precise
	}
}

// WithWindowType selects the analysis window applied by the STFT.
// The default is a Hann window.
func WithWindowType(t window.Type) Option {
	return func(c *config) {
		c.windowType = t
	}
}

// WithInverseWindowing toggles the triangular synthesis window applied by
// the STFT during resynthesis. Enabled by default.
func WithInverseWindowing(enabled bool) Option {
	return func(c *config) {
		c.invWindowing = enabled
	}
}

// WithRotateForward rotates each windowed frame by half a window before
// the forward transform, referencing phases to the frame center.
// Disabled by default.
func WithRotateForward(enabled bool) Option {
	return func(c *config) {
		c.rotateForward = enabled
	}
}
