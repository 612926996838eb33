package decoder

// Mode represents an rMQR data encoding mode. The value is the 3-bit mode
// indicator.
type Mode int

const (
	ModeTerminator   Mode = 0x0
	ModeNumeric      Mode = 0x1
	ModeAlphanumeric Mode = 0x2
	ModeByte         Mode = 0x3
	ModeKanji        Mode = 0x4
)

// ModeIndicatorBits is the width of every mode indicator.
const ModeIndicatorBits = 3

// ModeForBits returns the Mode for the given 3-bit value.
func ModeForBits(bits int) (Mode, error) {
	switch Mode(bits) {
	case ModeTerminator, ModeNumeric, ModeAlphanumeric, ModeByte, ModeKanji:
		return Mode(bits), nil
	}
	return 0, errInvalidMode
}

// CharacterCountBits returns the number of bits used to encode the character
// count for this mode in the given version.
func (m Mode) CharacterCountBits(version *Version) int {
	switch m {
	case ModeNumeric:
		return version.CharacterCountBits[0]
	case ModeAlphanumeric:
		return version.CharacterCountBits[1]
	case ModeByte:
		return version.CharacterCountBits[2]
	case ModeKanji:
		return version.CharacterCountBits[3]
	}
	return 0
}

// Bits returns the 3-bit encoding of this mode.
func (m Mode) Bits() int {
	return int(m)
}

func (m Mode) String() string {
	switch m {
	case ModeTerminator:
		return "TERMINATOR"
	case ModeNumeric:
		return "NUMERIC"
	case ModeAlphanumeric:
		return "ALPHANUMERIC"
	case ModeByte:
		return "BYTE"
	case ModeKanji:
		return "KANJI"
	}
	return "UNKNOWN"
}
