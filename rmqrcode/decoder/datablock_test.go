package decoder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetDataBlocksUnequalLengths(t *testing.T) {
	v, err := GetVersionForName("R9x139") // M: 31 + 32 data, 18 parity each
	require.NoError(t, err)
	raw := make([]byte, v.TotalCodewords)
	for i := range raw {
		raw[i] = byte(i)
	}

	blocks := GetDataBlocks(raw, v, ECLevelM)
	require.Len(t, blocks, 2)
	require.Equal(t, 31, blocks[0].NumDataCodewords)
	require.Equal(t, 32, blocks[1].NumDataCodewords)

	for i := 0; i < 31; i++ {
		require.Equal(t, byte(2*i), blocks[0].Codewords[i])
		require.Equal(t, byte(2*i+1), blocks[1].Codewords[i])
	}
	require.Equal(t, byte(62), blocks[1].Codewords[31])
	for i := 0; i < 18; i++ {
		require.Equal(t, byte(63+2*i), blocks[0].Codewords[31+i])
		require.Equal(t, byte(64+2*i), blocks[1].Codewords[32+i])
	}
}
