package transform

// SpectralFormat selects how the two components of each spectral bin are
// interpreted.
type SpectralFormat int

const (
	// Rectangular stores bins as (real, imaginary).
	Rectangular SpectralFormat = iota
	// MagnitudePhase stores bins as (magnitude, phase in radians).
	MagnitudePhase
	// MagnitudeFrequency stores bins as (magnitude, frequency in Hz).
	MagnitudeFrequency
)

// String returns a short name for the format.
func (f SpectralFormat) String() string {
	switch f {
	case Rectangular:
		return "rectangular"
	case MagnitudePhase:
		return "magnitude-phase"
	case MagnitudeFrequency:
		return "magnitude-frequency"
	default:
		return "unknown"
	}
}

func validFormat(f SpectralFormat) bool {
	switch f {
	case Rectangular, MagnitudePhase, MagnitudeFrequency:
		return true
	default:
		return false
	}
}
