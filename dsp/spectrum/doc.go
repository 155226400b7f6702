// Package spectrum provides helpers over complex half-spectrum bins.
//
// The package does not implement any transform itself. It operates on the
// bin buffers produced by the transforms in this module (or any other
// source of complex spectra) and extracts magnitude, power, and phase.
package spectrum
