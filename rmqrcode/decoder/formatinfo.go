package decoder

import "math/bits"

// Masks XORed onto the two copies of the 18-bit format information.
const (
	FormatMaskFinderSide    = 0x1FAB2
	FormatMaskSubFinderSide = 0x20A7B
)

// FormatInformation encapsulates an rMQR symbol's format info: the error
// correction level and the version indicator.
type FormatInformation struct {
	ECLevel ErrorCorrectionLevel
	Version *Version
}

// formatInfoDecodeLookup pairs each unmasked BCH(18,6) codeword with its
// 6 data bits: level bit followed by the version indicator.
var formatInfoDecodeLookup = [64][2]int{
	{0x00000, 0x00}, {0x01F25, 0x01}, {0x0216F, 0x02}, {0x03E4A, 0x03},
	{0x042DE, 0x04}, {0x05DFB, 0x05}, {0x063B1, 0x06}, {0x07C94, 0x07},
	{0x085BC, 0x08}, {0x09A99, 0x09}, {0x0A4D3, 0x0A}, {0x0BBF6, 0x0B},
	{0x0C762, 0x0C}, {0x0D847, 0x0D}, {0x0E60D, 0x0E}, {0x0F928, 0x0F},
	{0x10B78, 0x10}, {0x1145D, 0x11}, {0x12A17, 0x12}, {0x13532, 0x13},
	{0x149A6, 0x14}, {0x15683, 0x15}, {0x168C9, 0x16}, {0x177EC, 0x17},
	{0x18EC4, 0x18}, {0x191E1, 0x19}, {0x1AFAB, 0x1A}, {0x1B08E, 0x1B},
	{0x1CC1A, 0x1C}, {0x1D33F, 0x1D}, {0x1ED75, 0x1E}, {0x1F250, 0x1F},
	{0x209D5, 0x20}, {0x216F0, 0x21}, {0x228BA, 0x22}, {0x2379F, 0x23},
	{0x24B0B, 0x24}, {0x2542E, 0x25}, {0x26A64, 0x26}, {0x27541, 0x27},
	{0x28C69, 0x28}, {0x2934C, 0x29}, {0x2AD06, 0x2A}, {0x2B223, 0x2B},
	{0x2CEB7, 0x2C}, {0x2D192, 0x2D}, {0x2EFD8, 0x2E}, {0x2F0FD, 0x2F},
	{0x302AD, 0x30}, {0x31D88, 0x31}, {0x323C2, 0x32}, {0x33CE7, 0x33},
	{0x34073, 0x34}, {0x35F56, 0x35}, {0x3611C, 0x36}, {0x37E39, 0x37},
	{0x38711, 0x38}, {0x39834, 0x39}, {0x3A67E, 0x3A}, {0x3B95B, 0x3B},
	{0x3C5CF, 0x3C}, {0x3DAEA, 0x3D}, {0x3E4A0, 0x3E}, {0x3FB85, 0x3F},
}

func newFormatInformation(data int) *FormatInformation {
	ecLevel, _ := ECLevelForBits(data >> 5)
	version, err := GetVersionForIndicator(data & 0x1F)
	if err != nil {
		return nil
	}
	return &FormatInformation{ECLevel: ecLevel, Version: version}
}

// DecodeFormatInformation decodes the masked finder-side and sub-finder-side
// copies of the format information, tolerating up to 3 bit errors.
func DecodeFormatInformation(maskedFinderSide, maskedSubFinderSide int) *FormatInformation {
	left := maskedFinderSide ^ FormatMaskFinderSide
	right := maskedSubFinderSide ^ FormatMaskSubFinderSide

	bestDifference := 32
	bestFormatInfo := 0
	for _, entry := range formatInfoDecodeLookup {
		target := entry[0]
		if target == left || target == right {
			return newFormatInformation(entry[1])
		}
		if d := bits.OnesCount(uint(left ^ target)); d < bestDifference {
			bestFormatInfo = entry[1]
			bestDifference = d
		}
		if d := bits.OnesCount(uint(right ^ target)); d < bestDifference {
			bestFormatInfo = entry[1]
			bestDifference = d
		}
	}
	if bestDifference <= 3 {
		return newFormatInformation(bestFormatInfo)
	}
	return nil
}
