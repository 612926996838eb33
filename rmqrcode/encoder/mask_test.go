package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ericlevine/rmqrgo/rmqrcode/decoder"
)

// functionMatrix builds a matrix of function cells from rows of '#' (dark)
// and '.' (light).
func functionMatrix(rows ...string) *ModuleMatrix {
	m := NewModuleMatrix(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			m.stamp(x, y, c == '#')
		}
	}
	return m
}

func TestMaskPenaltyRules(t *testing.T) {
	light := functionMatrix(".....", ".....", ".....", ".....", ".....")
	// five rows and five columns of five
	require.Equal(t, 30, applyMaskPenaltyRule1(light))
	require.Equal(t, 16*3, applyMaskPenaltyRule2(light))
	require.Equal(t, 0, applyMaskPenaltyRule3(light))
	require.Equal(t, 100, applyMaskPenaltyRule4(light))

	longRun := functionMatrix("#######.")
	require.Equal(t, 3+2, applyMaskPenaltyRule1(longRun))

	finder := functionMatrix("#.###.#....")
	require.Equal(t, 0, applyMaskPenaltyRule1(finder))
	require.Equal(t, 0, applyMaskPenaltyRule2(finder))
	require.Equal(t, 40, applyMaskPenaltyRule3(finder))

	balanced := functionMatrix("#.#.", ".#.#")
	require.Equal(t, 0, applyMaskPenaltyRule4(balanced))
}

func TestApplyMaskTouchesDataOnly(t *testing.T) {
	m := NewModuleMatrix(3, 2)
	m.stamp(0, 0, true)
	m.reserve(1, 0)
	require.True(t, m.setFormat(1, 0, false))
	for x := 0; x < 3; x++ {
		m.setData(x, 1, false)
	}
	m.setData(2, 0, false)

	all := func(row, col int) bool { return true }
	masked := applyMask(m, all)
	require.True(t, masked.Dark(0, 0))
	require.False(t, masked.Dark(1, 0))
	require.True(t, masked.Dark(2, 0))
	for x := 0; x < 3; x++ {
		require.True(t, masked.Dark(x, 1))
	}
	// the input is not modified
	require.False(t, m.Dark(2, 0))
}

func TestChooseMaskPatternIsMinimal(t *testing.T) {
	v := mustVersion(t, "R11x43")
	matrix, err := buildMatrix(sequentialBits(v.TotalCodewords), decoder.ECLevelM, v)
	require.NoError(t, err)

	masks := []decoder.DataMaskFunc{
		func(row, col int) bool { return false },
		func(row, col int) bool { return (row+col)%2 == 0 },
		func(row, col int) bool { return row%2 == 0 },
		decoder.DataMasks[0],
		func(row, col int) bool { return col%3 == 0 },
	}
	index, penalty, masked := chooseMaskPattern(matrix, masks)
	require.GreaterOrEqual(t, index, 0)
	require.Equal(t, penalty, calculateMaskPenalty(masked))
	for i, mask := range masks {
		p := calculateMaskPenalty(applyMask(matrix, mask))
		require.LessOrEqual(t, penalty, p, "mask %d", i)
		if i < index {
			require.Less(t, penalty, p, "earlier mask %d ties", i)
		}
	}
}

func TestChooseMaskPatternTieGoesToLowestIndex(t *testing.T) {
	v := mustVersion(t, "R7x43")
	matrix, err := buildMatrix(sequentialBits(v.TotalCodewords), decoder.ECLevelM, v)
	require.NoError(t, err)

	m := decoder.DataMasks[0]
	index, _, _ := chooseMaskPattern(matrix, []decoder.DataMaskFunc{m, m, m})
	require.Equal(t, 0, index)
}

func TestChooseMaskPatternOrderIndependent(t *testing.T) {
	v := mustVersion(t, "R9x59")
	matrix, err := buildMatrix(sequentialBits(v.TotalCodewords), decoder.ECLevelH, v)
	require.NoError(t, err)

	a := func(row, col int) bool { return (row+col)%2 == 0 }
	b := decoder.DataMasks[0]
	_, p1, m1 := chooseMaskPattern(matrix, []decoder.DataMaskFunc{a, b})
	_, p2, m2 := chooseMaskPattern(matrix, []decoder.DataMaskFunc{b, a})
	require.Equal(t, p1, p2)
	if calculateMaskPenalty(applyMask(matrix, a)) != calculateMaskPenalty(applyMask(matrix, b)) {
		require.True(t, m1.ToBitMatrix().Equals(m2.ToBitMatrix()))
	}
}
