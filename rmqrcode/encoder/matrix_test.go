package encoder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	rmqrgo "github.com/ericlevine/rmqrgo"
	"github.com/ericlevine/rmqrgo/bitutil"
	"github.com/ericlevine/rmqrgo/rmqrcode/decoder"
)

func TestFunctionPatternsMatchDecoder(t *testing.T) {
	for _, v := range decoder.Versions() {
		matrix := NewModuleMatrix(v.Width, v.Height)
		embedBasicPatterns(v, matrix)
		reserveFormatInfo(matrix)

		fp := v.BuildFunctionPattern()
		free := 0
		for y := 0; y < v.Height; y++ {
			for x := 0; x < v.Width; x++ {
				require.Equal(t, fp.Get(x, y), !matrix.isEmpty(x, y), "%s (%d, %d)", v, x, y)
				if matrix.isEmpty(x, y) {
					free++
				}
			}
		}
		require.Equal(t, 8*v.TotalCodewords+v.RemainderBits, free, v.Name)
	}
}

func TestBuildMatrixAssignsEveryCell(t *testing.T) {
	for _, v := range decoder.Versions() {
		codewords := sequentialBits(v.TotalCodewords)
		matrix, err := buildMatrix(codewords, decoder.ECLevelH, v)
		require.NoError(t, err, v.Name)
		require.True(t, matrix.complete(), v.Name)

		roles := map[CellRole]int{}
		for y := 0; y < v.Height; y++ {
			for x := 0; x < v.Width; x++ {
				roles[matrix.Role(x, y)]++
			}
		}
		require.Equal(t, 8*v.TotalCodewords+v.RemainderBits, roles[RoleData], v.Name)
		require.Equal(t, 36, roles[RoleFormat], v.Name)
		require.Equal(t, v.Area(), roles[RoleData]+roles[RoleFormat]+roles[RoleFunction], v.Name)
	}
}

func TestEmbedDataBitsRejectsWrongLength(t *testing.T) {
	v := mustVersion(t, "R7x43")
	matrix := NewModuleMatrix(v.Width, v.Height)
	embedBasicPatterns(v, matrix)
	reserveFormatInfo(matrix)

	err := embedDataBits(sequentialBits(v.TotalCodewords-1), v, matrix)
	require.ErrorIs(t, err, rmqrgo.ErrMatrixCapacityMismatch)
	var mismatch *rmqrgo.CapacityMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, "R7x43", mismatch.Version)
	require.Equal(t, 104, mismatch.Expected)
	require.Equal(t, 96, mismatch.Actual)
}

func TestEmbedDataBitsDetectsMissingPattern(t *testing.T) {
	// Without the format reservation there are 36 cells too many.
	v := mustVersion(t, "R11x27")
	matrix := NewModuleMatrix(v.Width, v.Height)
	embedBasicPatterns(v, matrix)

	err := embedDataBits(sequentialBits(v.TotalCodewords), v, matrix)
	var mismatch *rmqrgo.CapacityMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, mismatch.Expected+36, mismatch.Actual)
}

func TestDataPlacementOrder(t *testing.T) {
	// The first codeword fills the rightmost free column pair from the
	// bottom, right column first.
	v := mustVersion(t, "R13x27")
	codewords := bitutil.NewBitArray(8 * v.TotalCodewords)
	codewords.AppendBits(0xA5, 8)
	for codewords.Size() < 8*v.TotalCodewords {
		codewords.AppendBits(0, 8)
	}
	matrix, err := buildMatrix(codewords, decoder.ECLevelM, v)
	require.NoError(t, err)

	// Column pair (25, 24): rows 8..11 hold the finder sub pattern and
	// (24, 7) the format information, so placement starts at (25, 7).
	expected := []struct {
		x, y int
		dark bool
	}{
		{25, 7, true}, {25, 6, false}, {24, 6, true}, {25, 5, false},
		{24, 5, false}, {25, 4, true}, {24, 4, false}, {25, 3, true},
	}
	for _, e := range expected {
		require.Equal(t, RoleData, matrix.Role(e.x, e.y), "(%d, %d)", e.x, e.y)
		require.Equal(t, e.dark, matrix.Dark(e.x, e.y), "(%d, %d)", e.x, e.y)
	}
}

func TestStructuralPatterns(t *testing.T) {
	v := mustVersion(t, "R13x43")
	matrix, err := buildMatrix(sequentialBits(v.TotalCodewords), decoder.ECLevelM, v)
	require.NoError(t, err)
	w, h := v.Width, v.Height

	// finder pattern and separator
	require.True(t, matrix.Dark(0, 0))
	require.False(t, matrix.Dark(1, 1))
	require.True(t, matrix.Dark(3, 3))
	require.False(t, matrix.Dark(7, 3))
	require.False(t, matrix.Dark(3, 7))
	// finder sub pattern
	require.True(t, matrix.Dark(w-5, h-5))
	require.False(t, matrix.Dark(w-4, h-4))
	require.True(t, matrix.Dark(w-3, h-3))
	// corner finder patterns
	require.True(t, matrix.Dark(w-2, 0))
	require.True(t, matrix.Dark(w-1, 1))
	require.False(t, matrix.Dark(w-2, 1))
	require.True(t, matrix.Dark(1, h-1))
	require.True(t, matrix.Dark(0, h-2))
	require.False(t, matrix.Dark(1, h-2))
	// alignment patterns at column 21 and the vertical timing between them
	require.True(t, matrix.Dark(20, 2))
	require.False(t, matrix.Dark(21, 1))
	require.False(t, matrix.Dark(21, h-2))
	require.False(t, matrix.Dark(21, 3))
	require.True(t, matrix.Dark(21, 4))
	// edge timing
	require.True(t, matrix.Dark(10, 0))
	require.False(t, matrix.Dark(11, h-1))
	require.True(t, matrix.Dark(0, 8))
	require.False(t, matrix.Dark(w-1, 3))
	require.Equal(t, RoleFunction, matrix.Role(21, 6))
}

func TestFormatInfoBits(t *testing.T) {
	require.Equal(t, 0, formatInfoBits(decoder.ECLevelM, mustVersion(t, "R7x43")))
	require.Equal(t, 0x1F25, formatInfoBits(decoder.ECLevelM, mustVersion(t, "R7x59")))
	require.Equal(t, 0x2B223, formatInfoBits(decoder.ECLevelH, mustVersion(t, "R11x43")))
}

func TestFormatInfoReadsBack(t *testing.T) {
	for _, v := range decoder.Versions() {
		for _, level := range []decoder.ErrorCorrectionLevel{decoder.ECLevelM, decoder.ECLevelH} {
			matrix, err := buildMatrix(sequentialBits(v.TotalCodewords), level, v)
			require.NoError(t, err)

			finderSide, subFinderSide := 0, 0
			for n := 0; n < 18; n++ {
				x, y := finderSideFormatCell(n)
				if matrix.Dark(x, y) {
					finderSide |= 1 << uint(n)
				}
				x, y = subFinderSideFormatCell(n, matrix)
				if matrix.Dark(x, y) {
					subFinderSide |= 1 << uint(n)
				}
			}
			fi := decoder.DecodeFormatInformation(finderSide, subFinderSide)
			require.NotNil(t, fi)
			require.Equal(t, v, fi.Version)
			require.Equal(t, level, fi.ECLevel)
		}
	}
}

func TestModuleMatrixWritesOnce(t *testing.T) {
	m := NewModuleMatrix(3, 3)
	require.True(t, m.setData(0, 0, true))
	require.False(t, m.setData(0, 0, false))
	require.True(t, m.Dark(0, 0))

	m.stamp(0, 0, false)
	require.Equal(t, RoleData, m.Role(0, 0))

	require.False(t, m.setFormat(1, 1, true))
	m.reserve(1, 1)
	require.Equal(t, Reserved, m.Value(1, 1))
	require.True(t, m.setFormat(1, 1, true))
	require.False(t, m.setFormat(1, 1, true))
	require.False(t, m.complete())
}

func TestModuleMatrixToBitMatrix(t *testing.T) {
	m := NewModuleMatrix(2, 1)
	m.stamp(0, 0, true)
	m.stamp(1, 0, false)
	require.True(t, m.complete())
	require.Equal(t, "##  \n", m.String())
	require.Equal(t, "X.\n", m.ToBitMatrix().StringWithChars("X", "."))
}
