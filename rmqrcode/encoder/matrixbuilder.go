package encoder

import (
	"fmt"

	rmqrgo "github.com/ericlevine/rmqrgo"
	"github.com/ericlevine/rmqrgo/bitutil"
	"github.com/ericlevine/rmqrgo/rmqrcode/decoder"
)

// finderPattern is the 7x7 finder pattern in the top-left corner.
var finderPattern = [7][7]bool{
	{true, true, true, true, true, true, true},
	{true, false, false, false, false, false, true},
	{true, false, true, true, true, false, true},
	{true, false, true, true, true, false, true},
	{true, false, true, true, true, false, true},
	{true, false, false, false, false, false, true},
	{true, true, true, true, true, true, true},
}

// finderSubPattern is the 5x5 pattern in the bottom-right corner.
var finderSubPattern = [5][5]bool{
	{true, true, true, true, true},
	{true, false, false, false, true},
	{true, false, true, false, true},
	{true, false, false, false, true},
	{true, true, true, true, true},
}

// alignmentPattern is centred on the top and bottom edges at each of the
// version's alignment columns.
var alignmentPattern = [3][3]bool{
	{true, true, true},
	{true, false, true},
	{true, true, true},
}

const formatInfoPoly = 0x1F25

// buildMatrix returns the unmasked matrix of version with every function
// pattern stamped, the format information written and the codewords placed.
func buildMatrix(codewords *bitutil.BitArray, ecLevel decoder.ErrorCorrectionLevel, version *decoder.Version) (*ModuleMatrix, error) {
	matrix := NewModuleMatrix(version.Width, version.Height)
	embedBasicPatterns(version, matrix)
	reserveFormatInfo(matrix)
	if err := embedDataBits(codewords, version, matrix); err != nil {
		return nil, err
	}
	if err := embedFormatInfo(ecLevel, version, matrix); err != nil {
		return nil, err
	}
	return matrix, nil
}

// embedBasicPatterns stamps the structural patterns. A pattern never
// overwrites a cell stamped before it, so the order below sets precedence.
func embedBasicPatterns(version *decoder.Version, matrix *ModuleMatrix) {
	embedFinderPattern(matrix)
	embedFinderSubPattern(matrix)
	embedCornerFinderPatterns(matrix)
	embedAlignmentPatterns(version, matrix)
	embedTimingPatterns(matrix)
}

func embedFinderPattern(matrix *ModuleMatrix) {
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			matrix.stamp(x, y, finderPattern[y][x])
		}
	}
	// Separator
	for y := 0; y < 8 && y < matrix.Height(); y++ {
		matrix.stamp(7, y, false)
	}
	if matrix.Height() > 7 {
		for x := 0; x < 8; x++ {
			matrix.stamp(x, 7, false)
		}
	}
}

func embedFinderSubPattern(matrix *ModuleMatrix) {
	xStart, yStart := matrix.Width()-5, matrix.Height()-5
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			matrix.stamp(xStart+x, yStart+y, finderSubPattern[y][x])
		}
	}
}

func embedCornerFinderPatterns(matrix *ModuleMatrix) {
	w, h := matrix.Width(), matrix.Height()

	// Top right
	matrix.stamp(w-2, 0, true)
	matrix.stamp(w-1, 0, true)
	matrix.stamp(w-2, 1, false)
	matrix.stamp(w-1, 1, true)

	// Bottom left
	for x := 0; x < 3; x++ {
		matrix.stamp(x, h-1, true)
	}
	if h >= 11 {
		matrix.stamp(0, h-2, true)
		matrix.stamp(1, h-2, false)
	}
}

func embedAlignmentPatterns(version *decoder.Version, matrix *ModuleMatrix) {
	h := matrix.Height()
	for _, cx := range version.AlignmentPatternCenters {
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				matrix.stamp(cx-1+x, y, alignmentPattern[y][x])
				matrix.stamp(cx-1+x, h-3+y, alignmentPattern[y][x])
			}
		}
		// Vertical timing line between the two patterns
		for y := 3; y < h-3; y++ {
			matrix.stamp(cx, y, y%2 == 0)
		}
	}
}

func embedTimingPatterns(matrix *ModuleMatrix) {
	w, h := matrix.Width(), matrix.Height()
	for x := 0; x < w; x++ {
		matrix.stamp(x, 0, x%2 == 0)
		matrix.stamp(x, h-1, x%2 == 0)
	}
	for y := 0; y < h; y++ {
		matrix.stamp(0, y, y%2 == 0)
		matrix.stamp(w-1, y, y%2 == 0)
	}
}

// reserveFormatInfo marks the 18 cells of each format information copy.
func reserveFormatInfo(matrix *ModuleMatrix) {
	for n := 0; n < 18; n++ {
		x, y := finderSideFormatCell(n)
		matrix.reserve(x, y)
		x, y = subFinderSideFormatCell(n, matrix)
		matrix.reserve(x, y)
	}
}

// finderSideFormatCell returns the cell of bit n of the copy beside the
// finder pattern: columns 8..11, five rows each, least significant bit
// first.
func finderSideFormatCell(n int) (int, int) {
	return 8 + n/5, 1 + n%5
}

// subFinderSideFormatCell returns the cell of bit n of the copy beside the
// finder sub pattern. The last three bits run along the row above it.
func subFinderSideFormatCell(n int, matrix *ModuleMatrix) (int, int) {
	w, h := matrix.Width(), matrix.Height()
	if n < 15 {
		return w - 8 + n/5, h - 6 + n%5
	}
	return w - 20 + n, h - 6
}

// embedDataBits walks two-column strips from the right edge, alternating
// upward and downward over the rows between the top and bottom timing
// patterns, and fills every empty cell: codeword bits first, then light
// remainder bits.
func embedDataBits(codewords *bitutil.BitArray, version *decoder.Version, matrix *ModuleMatrix) error {
	expected := 8*version.TotalCodewords + version.RemainderBits
	if codewords.Size() != 8*version.TotalCodewords {
		return &rmqrgo.CapacityMismatchError{Version: version.Name, Expected: expected, Actual: codewords.Size() + version.RemainderBits}
	}

	w, h := matrix.Width(), matrix.Height()
	bitIndex := 0
	placed := 0
	upward := true
	for cx := w - 2; cx > 0; cx -= 2 {
		for count := 1; count < h-1; count++ {
			y := count
			if upward {
				y = h - 1 - count
			}
			for col := 0; col < 2; col++ {
				x := cx - col
				if !matrix.isEmpty(x, y) {
					continue
				}
				bit := false
				if bitIndex < codewords.Size() {
					bit = codewords.Get(bitIndex)
					bitIndex++
				}
				if !matrix.setData(x, y, bit) {
					return fmt.Errorf("%w: data cell (%d, %d) written twice", rmqrgo.ErrMatrixCapacityMismatch, x, y)
				}
				placed++
			}
		}
		upward = !upward
	}

	if placed != expected {
		return &rmqrgo.CapacityMismatchError{Version: version.Name, Expected: expected, Actual: placed}
	}
	return nil
}

// formatInfoBits returns the unmasked 18-bit format information: the level
// bit and the version indicator followed by their BCH(18,6) check bits.
func formatInfoBits(ecLevel decoder.ErrorCorrectionLevel, version *decoder.Version) int {
	formatInfo := ecLevel.Bits()<<5 | version.Indicator
	return formatInfo<<12 | calculateBCHCode(formatInfo, formatInfoPoly)
}

func embedFormatInfo(ecLevel decoder.ErrorCorrectionLevel, version *decoder.Version, matrix *ModuleMatrix) error {
	bits := formatInfoBits(ecLevel, version)
	finderSide := bits ^ decoder.FormatMaskFinderSide
	subFinderSide := bits ^ decoder.FormatMaskSubFinderSide

	for n := 0; n < 18; n++ {
		x, y := finderSideFormatCell(n)
		if !matrix.setFormat(x, y, finderSide>>uint(n)&1 == 1) {
			return fmt.Errorf("%w: format cell (%d, %d) not reserved", rmqrgo.ErrMatrixCapacityMismatch, x, y)
		}
		x, y = subFinderSideFormatCell(n, matrix)
		if !matrix.setFormat(x, y, subFinderSide>>uint(n)&1 == 1) {
			return fmt.Errorf("%w: format cell (%d, %d) not reserved", rmqrgo.ErrMatrixCapacityMismatch, x, y)
		}
	}
	return nil
}

func calculateBCHCode(value, poly int) int {
	msbSetInPoly := findMSBSet(poly)
	value <<= uint(msbSetInPoly - 1)
	for findMSBSet(value) >= msbSetInPoly {
		value ^= poly << uint(findMSBSet(value)-msbSetInPoly)
	}
	return value
}

func findMSBSet(value int) int {
	count := 0
	for value != 0 {
		value >>= 1
		count++
	}
	return count
}
