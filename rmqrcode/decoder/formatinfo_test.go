package decoder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeFormatInformationAllCodes(t *testing.T) {
	for _, entry := range formatInfoDecodeLookup {
		code, data := entry[0], entry[1]
		fi := DecodeFormatInformation(code^FormatMaskFinderSide, code^FormatMaskSubFinderSide)
		require.NotNil(t, fi, "data %#x", data)
		require.Equal(t, data&0x1F, fi.Version.Indicator)
		require.Equal(t, data>>5, fi.ECLevel.Bits())
	}
}

func TestDecodeFormatInformationCorrectsThreeBits(t *testing.T) {
	code := formatInfoDecodeLookup[0x2B][0] // H, R11x43
	damaged := code ^ 0x10300
	fi := DecodeFormatInformation(damaged^FormatMaskFinderSide, 0)
	require.NotNil(t, fi)
	require.Equal(t, ECLevelH, fi.ECLevel)
	require.Equal(t, "R11x43", fi.Version.Name)

	// one clean copy is enough
	fi = DecodeFormatInformation(0, code^FormatMaskSubFinderSide)
	require.NotNil(t, fi)
	require.Equal(t, "R11x43", fi.Version.Name)
}

func TestDecodeFormatInformationRejectsNoise(t *testing.T) {
	code := formatInfoDecodeLookup[5][0]
	// codewords are 8 apart, so 4 flipped bits leave every one out of reach
	damaged := code ^ 0x0F000
	fi := DecodeFormatInformation(damaged^FormatMaskFinderSide, damaged^FormatMaskSubFinderSide)
	require.Nil(t, fi)
}
