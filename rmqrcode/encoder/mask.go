package encoder

import (
	"math"

	"github.com/ericlevine/rmqrgo/rmqrcode/decoder"
)

// applyMask returns a copy of matrix with every data cell selected by mask
// inverted. Function and format cells are left alone.
func applyMask(matrix *ModuleMatrix, mask decoder.DataMaskFunc) *ModuleMatrix {
	masked := matrix.clone()
	for y := 0; y < masked.Height(); y++ {
		for x := 0; x < masked.Width(); x++ {
			if masked.Role(x, y) == RoleData && mask(y, x) {
				masked.flip(x, y)
			}
		}
	}
	return masked
}

// chooseMaskPattern applies each candidate to matrix and returns the index
// with the strictly lowest penalty (the first on a tie), its penalty and
// the masked matrix.
func chooseMaskPattern(matrix *ModuleMatrix, masks []decoder.DataMaskFunc) (int, int, *ModuleMatrix) {
	minPenalty := math.MaxInt32
	bestPattern := -1
	var best *ModuleMatrix
	for i, mask := range masks {
		masked := applyMask(matrix, mask)
		penalty := calculateMaskPenalty(masked)
		if penalty < minPenalty {
			minPenalty = penalty
			bestPattern = i
			best = masked
		}
	}
	return bestPattern, minPenalty, best
}

func calculateMaskPenalty(matrix *ModuleMatrix) int {
	return applyMaskPenaltyRule1(matrix) +
		applyMaskPenaltyRule2(matrix) +
		applyMaskPenaltyRule3(matrix) +
		applyMaskPenaltyRule4(matrix)
}

// Mask penalty rule 1: penalize runs of 5+ same-color modules
func applyMaskPenaltyRule1(matrix *ModuleMatrix) int {
	return applyMaskPenaltyRule1Internal(matrix, true) + applyMaskPenaltyRule1Internal(matrix, false)
}

func applyMaskPenaltyRule1Internal(matrix *ModuleMatrix, isHorizontal bool) int {
	penalty := 0
	iLimit := matrix.Height()
	jLimit := matrix.Width()
	if !isHorizontal {
		iLimit, jLimit = jLimit, iLimit
	}
	for i := 0; i < iLimit; i++ {
		numSameBitCells := 0
		var prevBit bool
		for j := 0; j < jLimit; j++ {
			var bit bool
			if isHorizontal {
				bit = matrix.Dark(j, i)
			} else {
				bit = matrix.Dark(i, j)
			}
			if j > 0 && bit == prevBit {
				numSameBitCells++
				continue
			}
			if numSameBitCells >= 5 {
				penalty += 3 + (numSameBitCells - 5)
			}
			numSameBitCells = 1
			prevBit = bit
		}
		if numSameBitCells >= 5 {
			penalty += 3 + (numSameBitCells - 5)
		}
	}
	return penalty
}

// Mask penalty rule 2: penalize 2x2 blocks of same color
func applyMaskPenaltyRule2(matrix *ModuleMatrix) int {
	penalty := 0
	for y := 0; y < matrix.Height()-1; y++ {
		for x := 0; x < matrix.Width()-1; x++ {
			value := matrix.Dark(x, y)
			if value == matrix.Dark(x+1, y) && value == matrix.Dark(x, y+1) && value == matrix.Dark(x+1, y+1) {
				penalty += 3
			}
		}
	}
	return penalty
}

// finderLike is the 1:1:3:1:1 dark/light ratio of a finder pattern.
var finderLike = [7]bool{true, false, true, true, true, false, true}

// Mask penalty rule 3: penalize finder-like patterns with four light
// modules on either side
func applyMaskPenaltyRule3(matrix *ModuleMatrix) int {
	penalty := 0
	w, h := matrix.Width(), matrix.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x+6 < w && matchesFinderLike(matrix, x, y, 1, 0) {
				leadingWhite := x+10 < w && isLight(matrix, x+7, y, 1, 0)
				trailingWhite := x >= 4 && isLight(matrix, x-4, y, 1, 0)
				if leadingWhite || trailingWhite {
					penalty += 40
				}
			}
			if y+6 < h && matchesFinderLike(matrix, x, y, 0, 1) {
				leadingWhite := y+10 < h && isLight(matrix, x, y+7, 0, 1)
				trailingWhite := y >= 4 && isLight(matrix, x, y-4, 0, 1)
				if leadingWhite || trailingWhite {
					penalty += 40
				}
			}
		}
	}
	return penalty
}

func matchesFinderLike(matrix *ModuleMatrix, x, y, dx, dy int) bool {
	for i, dark := range finderLike {
		if matrix.Dark(x+i*dx, y+i*dy) != dark {
			return false
		}
	}
	return true
}

// isLight reports whether the four modules from (x, y) in direction
// (dx, dy) are all light.
func isLight(matrix *ModuleMatrix, x, y, dx, dy int) bool {
	for i := 0; i < 4; i++ {
		if matrix.Dark(x+i*dx, y+i*dy) {
			return false
		}
	}
	return true
}

// Mask penalty rule 4: penalize deviation from 50% dark modules
func applyMaskPenaltyRule4(matrix *ModuleMatrix) int {
	numDarkCells := 0
	total := matrix.Height() * matrix.Width()
	for y := 0; y < matrix.Height(); y++ {
		for x := 0; x < matrix.Width(); x++ {
			if matrix.Dark(x, y) {
				numDarkCells++
			}
		}
	}
	fivePercentVariances := abs(numDarkCells*2-total) * 10 / total
	return fivePercentVariances * 10
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
