package decoder

import (
	"fmt"
	"strings"

	"github.com/ericlevine/rmqrgo/bitutil"
)

// ECB represents a group of error-correction blocks of equal size.
type ECB struct {
	Count         int
	DataCodewords int
}

// ECBlocks represents the block structure for one EC level. Groups are
// listed shortest first, which is also the order codewords are dealt in.
type ECBlocks struct {
	ECCodewordsPerBlock int
	Blocks              []ECB
}

// NumBlocks returns the total number of blocks.
func (ecb *ECBlocks) NumBlocks() int {
	total := 0
	for _, b := range ecb.Blocks {
		total += b.Count
	}
	return total
}

// TotalECCodewords returns the total number of error-correction codewords.
func (ecb *ECBlocks) TotalECCodewords() int {
	return ecb.ECCodewordsPerBlock * ecb.NumBlocks()
}

// TotalDataCodewords returns the number of data codewords over all blocks.
func (ecb *ECBlocks) TotalDataCodewords() int {
	total := 0
	for _, b := range ecb.Blocks {
		total += b.Count * b.DataCodewords
	}
	return total
}

// Version is one of the 32 rMQR symbol sizes, named RHxW.
type Version struct {
	// Indicator is the 5-bit version indicator carried in the format
	// information, 0 (R7x43) through 31 (R17x139).
	Indicator int
	Name      string
	Height    int
	Width     int

	TotalCodewords int
	RemainderBits  int

	// AlignmentPatternCenters are the columns of the alignment patterns on
	// the top and bottom edges.
	AlignmentPatternCenters []int

	// CharacterCountBits holds the count indicator widths for numeric,
	// alphanumeric, byte and kanji mode.
	CharacterCountBits [4]int

	ECBlocksArray [2]ECBlocks // M, H
}

// ECBlocksForLevel returns the ECBlocks for the given error correction level.
func (v *Version) ECBlocksForLevel(ecLevel ErrorCorrectionLevel) *ECBlocks {
	return &v.ECBlocksArray[ecLevel.Ordinal()]
}

// DataCapacityBits returns the number of data bits available at ecLevel.
func (v *Version) DataCapacityBits(ecLevel ErrorCorrectionLevel) int {
	return 8 * v.ECBlocksForLevel(ecLevel).TotalDataCodewords()
}

// Area returns the module count of the symbol.
func (v *Version) Area() int {
	return v.Width * v.Height
}

func (v *Version) String() string {
	return v.Name
}

// BuildFunctionPattern returns a matrix with every module that does not
// carry codeword or remainder bits set.
func (v *Version) BuildFunctionPattern() *bitutil.BitMatrix {
	w, h := v.Width, v.Height
	bm := bitutil.NewBitMatrix(w, h)

	// Finder pattern and separator
	bm.SetRegion(0, 0, 8, min(8, h))
	// Finder sub pattern
	bm.SetRegion(w-5, h-5, 5, 5)
	// Timing patterns along the four edges
	bm.SetRegion(0, 0, w, 1)
	bm.SetRegion(0, h-1, w, 1)
	bm.SetRegion(0, 0, 1, h)
	bm.SetRegion(w-1, 0, 1, h)
	// Corner finder patterns
	bm.SetRegion(w-2, 0, 2, 2)
	if h >= 11 {
		bm.SetRegion(0, h-2, 2, 1)
	}
	// Alignment patterns and the vertical timing line between them
	for _, cx := range v.AlignmentPatternCenters {
		bm.SetRegion(cx-1, 0, 3, 3)
		bm.SetRegion(cx-1, h-3, 3, 3)
		bm.SetRegion(cx, 0, 1, h)
	}
	// Format information
	bm.SetRegion(8, 1, 3, 5)
	bm.SetRegion(11, 1, 1, 3)
	bm.SetRegion(w-8, h-6, 3, 5)
	bm.SetRegion(w-5, h-6, 3, 1)

	return bm
}

// GetVersionForIndicator returns the Version with the given version indicator.
func GetVersionForIndicator(indicator int) (*Version, error) {
	if indicator < 0 || indicator >= len(versions) {
		return nil, fmt.Errorf("%w: indicator %d", errInvalidVersion, indicator)
	}
	return &versions[indicator], nil
}

// GetVersionForName returns the Version named like "R11x43" (case-insensitive).
func GetVersionForName(name string) (*Version, error) {
	for i := range versions {
		if strings.EqualFold(versions[i].Name, name) {
			return &versions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", errInvalidVersion, name)
}

// GetVersionForDimensions returns the Version of a width x height symbol.
func GetVersionForDimensions(width, height int) (*Version, error) {
	for i := range versions {
		if versions[i].Width == width && versions[i].Height == height {
			return &versions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %dx%d", errInvalidVersion, width, height)
}

// Versions returns every version in indicator order.
func Versions() []*Version {
	out := make([]*Version, len(versions))
	for i := range versions {
		out[i] = &versions[i]
	}
	return out
}

func newVersion(indicator, height, width, total, remainder int, align []int, cci [4]int, m, h ECBlocks) Version {
	return Version{
		Indicator:               indicator,
		Name:                    fmt.Sprintf("R%dx%d", height, width),
		Height:                  height,
		Width:                   width,
		TotalCodewords:          total,
		RemainderBits:           remainder,
		AlignmentPatternCenters: align,
		CharacterCountBits:      cci,
		ECBlocksArray:           [2]ECBlocks{m, h},
	}
}

func eb(ecCW int, blocks ...ECB) ECBlocks {
	return ECBlocks{ECCodewordsPerBlock: ecCW, Blocks: blocks}
}

func b(count, dataCodewords int) ECB {
	return ECB{Count: count, DataCodewords: dataCodewords}
}

// versions contains all 32 rMQR versions in indicator order.
var versions = [32]Version{
	newVersion(0, 7, 43, 13, 0, []int{21}, [4]int{4, 3, 3, 2}, eb(7, b(1, 6)), eb(10, b(1, 3))),
	newVersion(1, 7, 59, 21, 3, []int{19, 39}, [4]int{5, 5, 4, 3}, eb(9, b(1, 12)), eb(14, b(1, 7))),
	newVersion(2, 7, 77, 32, 5, []int{25, 51}, [4]int{6, 5, 5, 4}, eb(12, b(1, 20)), eb(22, b(1, 10))),
	newVersion(3, 7, 99, 44, 6, []int{23, 49, 75}, [4]int{7, 6, 5, 5}, eb(16, b(1, 28)), eb(30, b(1, 14))),
	newVersion(4, 7, 139, 68, 1, []int{27, 55, 83, 111}, [4]int{7, 6, 6, 5}, eb(24, b(1, 44)), eb(22, b(2, 12))),
	newVersion(5, 9, 43, 21, 2, []int{21}, [4]int{5, 5, 4, 3}, eb(9, b(1, 12)), eb(14, b(1, 7))),
	newVersion(6, 9, 59, 33, 3, []int{19, 39}, [4]int{6, 5, 5, 4}, eb(12, b(1, 21)), eb(22, b(1, 11))),
	newVersion(7, 9, 77, 49, 1, []int{25, 51}, [4]int{7, 6, 5, 5}, eb(18, b(1, 31)), eb(16, b(1, 8), b(1, 9))),
	newVersion(8, 9, 99, 66, 4, []int{23, 49, 75}, [4]int{7, 6, 6, 5}, eb(24, b(1, 42)), eb(22, b(2, 11))),
	newVersion(9, 9, 139, 99, 5, []int{27, 55, 83, 111}, [4]int{8, 7, 6, 6}, eb(18, b(1, 31), b(1, 32)), eb(22, b(3, 11))),
	newVersion(10, 11, 27, 15, 2, nil, [4]int{4, 4, 3, 2}, eb(8, b(1, 7)), eb(10, b(1, 5))),
	newVersion(11, 11, 43, 31, 1, []int{21}, [4]int{6, 5, 5, 4}, eb(12, b(1, 19)), eb(20, b(1, 11))),
	newVersion(12, 11, 59, 47, 0, []int{19, 39}, [4]int{7, 6, 5, 5}, eb(16, b(1, 31)), eb(16, b(1, 7), b(1, 8))),
	newVersion(13, 11, 77, 67, 2, []int{25, 51}, [4]int{7, 6, 6, 5}, eb(12, b(1, 21), b(1, 22)), eb(22, b(1, 11), b(1, 12))),
	newVersion(14, 11, 99, 89, 7, []int{23, 49, 75}, [4]int{8, 7, 6, 6}, eb(16, b(1, 28), b(1, 29)), eb(30, b(1, 14), b(1, 15))),
	newVersion(15, 11, 139, 132, 6, []int{27, 55, 83, 111}, [4]int{8, 7, 7, 6}, eb(16, b(3, 28)), eb(30, b(3, 14))),
	newVersion(16, 13, 27, 21, 4, nil, [4]int{5, 5, 4, 3}, eb(9, b(1, 12)), eb(14, b(1, 7))),
	newVersion(17, 13, 43, 41, 1, []int{21}, [4]int{6, 6, 5, 5}, eb(14, b(1, 27)), eb(28, b(1, 13))),
	newVersion(18, 13, 59, 60, 6, []int{19, 39}, [4]int{7, 6, 6, 5}, eb(22, b(1, 38)), eb(20, b(2, 10))),
	newVersion(19, 13, 77, 85, 4, []int{25, 51}, [4]int{7, 7, 6, 6}, eb(16, b(1, 26), b(1, 27)), eb(28, b(1, 14), b(1, 15))),
	newVersion(20, 13, 99, 113, 3, []int{23, 49, 75}, [4]int{8, 7, 7, 6}, eb(20, b(1, 36), b(1, 37)), eb(26, b(1, 11), b(2, 12))),
	newVersion(21, 13, 139, 166, 0, []int{27, 55, 83, 111}, [4]int{9, 8, 7, 7}, eb(14, b(2, 27), b(2, 28)), eb(28, b(2, 13), b(2, 14))),
	newVersion(22, 15, 43, 51, 1, []int{21}, [4]int{7, 6, 6, 5}, eb(18, b(1, 33)), eb(18, b(1, 7), b(1, 8))),
	newVersion(23, 15, 59, 74, 4, []int{19, 39}, [4]int{7, 7, 6, 5}, eb(26, b(1, 48)), eb(24, b(2, 13))),
	newVersion(24, 15, 77, 103, 6, []int{25, 51}, [4]int{8, 7, 7, 6}, eb(18, b(1, 33), b(1, 34)), eb(24, b(2, 10), b(1, 11))),
	newVersion(25, 15, 99, 136, 7, []int{23, 49, 75}, [4]int{8, 7, 7, 6}, eb(24, b(2, 44)), eb(22, b(4, 12))),
	newVersion(26, 15, 139, 199, 2, []int{27, 55, 83, 111}, [4]int{9, 8, 7, 7}, eb(24, b(2, 42), b(1, 43)), eb(26, b(1, 13), b(4, 14))),
	newVersion(27, 17, 43, 61, 1, []int{21}, [4]int{7, 6, 6, 5}, eb(12, b(1, 18), b(1, 19)), eb(20, b(1, 10), b(1, 11))),
	newVersion(28, 17, 59, 88, 2, []int{19, 39}, [4]int{8, 7, 6, 6}, eb(16, b(2, 28)), eb(30, b(2, 14))),
	newVersion(29, 17, 77, 122, 0, []int{25, 51}, [4]int{8, 7, 7, 6}, eb(22, b(2, 39)), eb(28, b(1, 12), b(2, 13))),
	newVersion(30, 17, 99, 160, 3, []int{23, 49, 75}, [4]int{8, 8, 7, 6}, eb(20, b(2, 33), b(1, 34)), eb(26, b(4, 14))),
	newVersion(31, 17, 139, 232, 4, []int{27, 55, 83, 111}, [4]int{9, 8, 8, 7}, eb(20, b(4, 38)), eb(26, b(2, 12), b(4, 13))),
}
