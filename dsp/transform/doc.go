// Package transform provides streaming spectral transforms for real-time
// analysis and resynthesis of sampled signals.
//
// Three transforms cover different latency and resolution trade-offs:
//
//   - DFT computes non-overlapping block transforms with optional
//     zero-padding and per-sample streaming taps.
//   - STFT adds overlapping windowed analysis, phase-vocoder frequency
//     estimation, and hop-based overlap-add resynthesis.
//   - SlidingDFT updates an interval of bins on every input sample for
//     minimum-latency narrowband analysis.
//
// All transforms share the same half-spectrum layout: NumBins() complex
// bins spanning DC through Nyquist, scaled so a unit-amplitude sinusoid
// at a bin center reads magnitude one. Bin buffers can be viewed in
// rectangular, magnitude-phase, or magnitude-frequency form; conversions
// happen in place and are tracked per buffer.
package transform
