package decoder

import "github.com/ericlevine/rmqrgo/bitutil"

// DataMaskFunc reports whether the module at (row, col) is inverted.
type DataMaskFunc func(row, col int) bool

// DataMasks lists the data mask patterns of the rMQR family. There is only
// one, so the format information carries no mask reference.
var DataMasks = []DataMaskFunc{
	func(row, col int) bool { return ((row/2)+(col/3))&0x01 == 0 },
}

// UnmaskBitMatrix inverts every module of bits selected by the mask.
// Function modules are inverted too; readers skip them.
func UnmaskBitMatrix(bits *bitutil.BitMatrix, maskIndex int) {
	mask := DataMasks[maskIndex]
	for row := 0; row < bits.Height(); row++ {
		for col := 0; col < bits.Width(); col++ {
			if mask(row, col) {
				bits.Flip(col, row)
			}
		}
	}
}
