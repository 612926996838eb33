package decoder

import (
	"fmt"

	rmqrgo "github.com/ericlevine/rmqrgo"
	"github.com/ericlevine/rmqrgo/bitutil"
)

// BitMatrixParser reads format information and codewords from a module
// matrix whose dimensions match an rMQR version exactly (no quiet zone).
type BitMatrixParser struct {
	bitMatrix        *bitutil.BitMatrix
	version          *Version
	parsedFormatInfo *FormatInformation
}

// NewBitMatrixParser creates a new parser for the given BitMatrix.
func NewBitMatrixParser(bitMatrix *bitutil.BitMatrix) (*BitMatrixParser, error) {
	version, err := GetVersionForDimensions(bitMatrix.Width(), bitMatrix.Height())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rmqrgo.ErrFormat, err)
	}
	return &BitMatrixParser{bitMatrix: bitMatrix, version: version}, nil
}

// ReadFormatInformation reads both copies of the format information. The
// version it names must match the matrix dimensions.
func (p *BitMatrixParser) ReadFormatInformation() (*FormatInformation, error) {
	if p.parsedFormatInfo != nil {
		return p.parsedFormatInfo, nil
	}
	w, h := p.bitMatrix.Width(), p.bitMatrix.Height()

	finderSide := 0
	for n := 0; n < 18; n++ {
		finderSide = p.copyBit(8+n/5, 1+n%5, n, finderSide)
	}
	subFinderSide := 0
	for n := 0; n < 15; n++ {
		subFinderSide = p.copyBit(w-8+n/5, h-6+n%5, n, subFinderSide)
	}
	for n := 15; n < 18; n++ {
		subFinderSide = p.copyBit(w-20+n, h-6, n, subFinderSide)
	}

	fi := DecodeFormatInformation(finderSide, subFinderSide)
	if fi == nil || fi.Version != p.version {
		return nil, rmqrgo.ErrFormat
	}
	p.parsedFormatInfo = fi
	return fi, nil
}

// copyBit sets bit n of formatBits from the module at (x, y).
func (p *BitMatrixParser) copyBit(x, y, n, formatBits int) int {
	if p.bitMatrix.Get(x, y) {
		return formatBits | 1<<uint(n)
	}
	return formatBits
}

// ReadCodewords unmasks the matrix and reads the data and error correction
// codewords in placement order. Remainder bits are skipped.
func (p *BitMatrixParser) ReadCodewords() ([]byte, error) {
	if _, err := p.ReadFormatInformation(); err != nil {
		return nil, err
	}
	version := p.version

	UnmaskBitMatrix(p.bitMatrix, 0)
	defer UnmaskBitMatrix(p.bitMatrix, 0)

	functionPattern := version.BuildFunctionPattern()

	readingUp := true
	result := make([]byte, version.TotalCodewords)
	resultOffset := 0
	currentByte := 0
	bitsRead := 0
	w, h := version.Width, version.Height

	for cx := w - 2; cx > 0; cx -= 2 {
		for count := 1; count < h-1; count++ {
			y := count
			if readingUp {
				y = h - 1 - count
			}
			for col := 0; col < 2; col++ {
				x := cx - col
				if functionPattern.Get(x, y) || resultOffset == len(result) {
					continue
				}
				bitsRead++
				currentByte <<= 1
				if p.bitMatrix.Get(x, y) {
					currentByte |= 1
				}
				if bitsRead == 8 {
					result[resultOffset] = byte(currentByte)
					resultOffset++
					bitsRead = 0
					currentByte = 0
				}
			}
		}
		readingUp = !readingUp
	}

	if resultOffset != version.TotalCodewords {
		return nil, rmqrgo.ErrFormat
	}
	return result, nil
}
