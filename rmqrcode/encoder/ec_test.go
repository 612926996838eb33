package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	rmqrgo "github.com/ericlevine/rmqrgo"
	"github.com/ericlevine/rmqrgo/bitutil"
	"github.com/ericlevine/rmqrgo/rmqrcode/decoder"
)

func sequentialBits(n int) *bitutil.BitArray {
	bits := bitutil.NewBitArray(8 * n)
	for i := 0; i < n; i++ {
		bits.AppendBits(uint32(i), 8)
	}
	return bits
}

func TestInterleaveWithECBytes(t *testing.T) {
	// R9x139 at M: blocks of 31 and 32 data codewords, 18 parity each
	v := mustVersion(t, "R9x139")
	bits := sequentialBits(63)

	result, err := interleaveWithECBytes(bits, v, decoder.ECLevelM)
	require.NoError(t, err)
	out := result.Bytes()
	require.Len(t, out, v.TotalCodewords)

	for i := 0; i < 31; i++ {
		require.Equal(t, byte(i), out[2*i])
		require.Equal(t, byte(31+i), out[2*i+1])
	}
	// the longer block takes the last data round alone
	require.Equal(t, byte(62), out[62])

	ec1 := rsEncoder.Encode(bits.Bytes()[:31], 18)
	ec2 := rsEncoder.Encode(bits.Bytes()[31:], 18)
	for i := 0; i < 18; i++ {
		require.Equal(t, ec1[i], out[63+2*i])
		require.Equal(t, ec2[i], out[63+2*i+1])
	}
}

func TestInterleaveMatchesDeinterleave(t *testing.T) {
	for _, v := range decoder.Versions() {
		for _, level := range []decoder.ErrorCorrectionLevel{decoder.ECLevelM, decoder.ECLevelH} {
			ecBlocks := v.ECBlocksForLevel(level)
			bits := sequentialBits(ecBlocks.TotalDataCodewords())
			result, err := interleaveWithECBytes(bits, v, level)
			require.NoError(t, err)

			offset := 0
			for _, block := range decoder.GetDataBlocks(result.Bytes(), v, level) {
				for i := 0; i < block.NumDataCodewords; i++ {
					require.Equal(t, byte(offset), block.Codewords[i], "%s/%s", v, level)
					offset++
				}
			}
			require.Equal(t, ecBlocks.TotalDataCodewords(), offset)
		}
	}
}

func TestInterleaveRejectsWrongLength(t *testing.T) {
	_, err := interleaveWithECBytes(sequentialBits(5), mustVersion(t, "R7x43"), decoder.ECLevelM)
	require.ErrorIs(t, err, rmqrgo.ErrWriter)
}
