// Package decoder holds the rMQR symbol tables (versions, error correction
// levels, modes, data mask, format information) and a decoder that reads a
// clean module matrix back to its payload.
package decoder

import "strings"

// ErrorCorrectionLevel represents the two rMQR error correction levels.
type ErrorCorrectionLevel int

const (
	ECLevelM ErrorCorrectionLevel = iota // ~15% correction
	ECLevelH                             // ~30% correction
)

// Bits returns the 1-bit encoding of this level in the format information.
func (ecl ErrorCorrectionLevel) Bits() int {
	if ecl == ECLevelH {
		return 1
	}
	return 0
}

// Ordinal returns the ordinal position (M=0, H=1).
func (ecl ErrorCorrectionLevel) Ordinal() int {
	return int(ecl)
}

// String returns the level name.
func (ecl ErrorCorrectionLevel) String() string {
	switch ecl {
	case ECLevelM:
		return "M"
	case ECLevelH:
		return "H"
	}
	return "?"
}

// ECLevelForBits returns the ErrorCorrectionLevel for the given format bit.
func ECLevelForBits(bits int) (ErrorCorrectionLevel, error) {
	switch bits {
	case 0:
		return ECLevelM, nil
	case 1:
		return ECLevelH, nil
	}
	return 0, errInvalidECLevel
}

// ParseECLevel returns the level named by s ("M" or "H", any case).
func ParseECLevel(s string) (ErrorCorrectionLevel, error) {
	switch strings.ToUpper(s) {
	case "M":
		return ECLevelM, nil
	case "H":
		return ECLevelH, nil
	}
	return 0, errInvalidECLevel
}
