// Package encoder builds rMQR symbols: it splits the payload into mode
// segments, packs the bit stream, appends Reed-Solomon parity, lays out the
// module matrix, applies the data mask and writes the format information.
package encoder

import (
	"fmt"
	"slices"
	"strings"

	rmqrgo "github.com/ericlevine/rmqrgo"
	"github.com/ericlevine/rmqrgo/bitutil"
	"github.com/ericlevine/rmqrgo/rmqrcode/decoder"
)

// SizeHint constrains the symbol size. Version forces a version by name
// ("R11x43"); MaxWidth and MaxHeight bound the candidates when non-zero.
type SizeHint struct {
	Version   string
	MaxWidth  int
	MaxHeight int
}

// Symbol holds an encoded rMQR symbol.
type Symbol struct {
	Version     *decoder.Version
	ECLevel     decoder.ErrorCorrectionLevel
	MaskPattern int
	Penalty     int
	Segments    []Segment
	Matrix      *ModuleMatrix
}

// Encode encodes payload at ecLevel into the smallest symbol that hint
// permits. A nil hint allows every version.
func Encode(payload []byte, ecLevel decoder.ErrorCorrectionLevel, hint *SizeHint) (*Symbol, error) {
	candidates, err := candidateVersions(ecLevel, hint)
	if err != nil {
		return nil, err
	}
	needed := 0
	for _, version := range candidates {
		segments, numBits := chooseSegments(payload, version)
		if numBits <= version.DataCapacityBits(ecLevel) {
			return encodeWith(segments, ecLevel, version)
		}
		needed = numBits
	}
	return nil, capacityError(needed, ecLevel, candidates)
}

// EncodeSegments encodes caller-chosen segments, in order, into the
// smallest symbol that hint permits.
func EncodeSegments(segments []Segment, ecLevel decoder.ErrorCorrectionLevel, hint *SizeHint) (*Symbol, error) {
	for _, s := range segments {
		if err := validateSegment(s); err != nil {
			return nil, err
		}
	}
	candidates, err := candidateVersions(ecLevel, hint)
	if err != nil {
		return nil, err
	}
	needed := 0
	for _, version := range candidates {
		needed = streamBits(segments, version)
		if needed <= version.DataCapacityBits(ecLevel) {
			return encodeWith(segments, ecLevel, version)
		}
	}
	return nil, capacityError(needed, ecLevel, candidates)
}

func capacityError(needed int, ecLevel decoder.ErrorCorrectionLevel, candidates []*decoder.Version) error {
	largest := candidates[len(candidates)-1]
	return fmt.Errorf("%w: %d bits do not fit %s at level %s (%d bits)",
		rmqrgo.ErrCapacityExceeded, needed, largest, ecLevel, largest.DataCapacityBits(ecLevel))
}

// candidateVersions returns the versions permitted by hint ordered by
// ascending area, then height, then version indicator.
func candidateVersions(ecLevel decoder.ErrorCorrectionLevel, hint *SizeHint) ([]*decoder.Version, error) {
	if ecLevel != decoder.ECLevelM && ecLevel != decoder.ECLevelH {
		return nil, fmt.Errorf("%w: error correction level %d", rmqrgo.ErrInvalidConfiguration, int(ecLevel))
	}
	if hint == nil {
		hint = &SizeHint{}
	}
	if hint.MaxWidth < 0 || hint.MaxHeight < 0 {
		return nil, fmt.Errorf("%w: negative size bound %dx%d", rmqrgo.ErrInvalidConfiguration, hint.MaxWidth, hint.MaxHeight)
	}
	fits := func(v *decoder.Version) bool {
		return (hint.MaxWidth == 0 || v.Width <= hint.MaxWidth) &&
			(hint.MaxHeight == 0 || v.Height <= hint.MaxHeight)
	}

	if hint.Version != "" {
		version, err := decoder.GetVersionForName(strings.TrimSpace(hint.Version))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", rmqrgo.ErrInvalidConfiguration, err)
		}
		if !fits(version) {
			return nil, fmt.Errorf("%w: %s exceeds %dx%d", rmqrgo.ErrInvalidConfiguration, version, hint.MaxWidth, hint.MaxHeight)
		}
		return []*decoder.Version{version}, nil
	}

	var candidates []*decoder.Version
	for _, v := range decoder.Versions() {
		if fits(v) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no version fits %dx%d", rmqrgo.ErrInvalidConfiguration, hint.MaxWidth, hint.MaxHeight)
	}
	slices.SortStableFunc(candidates, func(a, b *decoder.Version) int {
		if a.Area() != b.Area() {
			return a.Area() - b.Area()
		}
		if a.Height != b.Height {
			return a.Height - b.Height
		}
		return a.Indicator - b.Indicator
	})
	return candidates, nil
}

// encodeWith runs the pipeline for segments once the version is fixed.
func encodeWith(segments []Segment, ecLevel decoder.ErrorCorrectionLevel, version *decoder.Version) (*Symbol, error) {
	bits, err := buildBitStream(segments, version)
	if err != nil {
		return nil, err
	}
	numDataBytes := version.ECBlocksForLevel(ecLevel).TotalDataCodewords()
	if err := terminateBits(numDataBytes, bits); err != nil {
		return nil, err
	}

	codewords, err := interleaveWithECBytes(bits, version, ecLevel)
	if err != nil {
		return nil, err
	}

	matrix, err := buildMatrix(codewords, ecLevel, version)
	if err != nil {
		return nil, err
	}
	maskPattern, penalty, masked := chooseMaskPattern(matrix, decoder.DataMasks)
	if !masked.complete() {
		return nil, fmt.Errorf("%w: %s has unfinished cells", rmqrgo.ErrMatrixCapacityMismatch, version)
	}

	return &Symbol{
		Version:     version,
		ECLevel:     ecLevel,
		MaskPattern: maskPattern,
		Penalty:     penalty,
		Segments:    segments,
		Matrix:      masked,
	}, nil
}

// RenderResult renders a Symbol into a BitMatrix of at least width x height
// pixels, scaling modules uniformly and surrounding the symbol with a quiet
// zone of quietZone modules.
func RenderResult(symbol *Symbol, width, height, quietZone int) *bitutil.BitMatrix {
	input := symbol.Matrix
	inputWidth := input.Width()
	inputHeight := input.Height()
	codeWidth := inputWidth + quietZone*2
	codeHeight := inputHeight + quietZone*2
	outputWidth := max(width, codeWidth)
	outputHeight := max(height, codeHeight)

	multiple := min(outputWidth/codeWidth, outputHeight/codeHeight)

	leftPadding := (outputWidth - inputWidth*multiple) / 2
	topPadding := (outputHeight - inputHeight*multiple) / 2

	output := bitutil.NewBitMatrix(outputWidth, outputHeight)
	for inputY := 0; inputY < inputHeight; inputY++ {
		outputY := topPadding + inputY*multiple
		for inputX := 0; inputX < inputWidth; inputX++ {
			if input.Dark(inputX, inputY) {
				outputX := leftPadding + inputX*multiple
				output.SetRegion(outputX, outputY, multiple, multiple)
			}
		}
	}
	return output
}

// ToBitMatrix converts the symbol's matrix to a BitMatrix without a quiet zone.
func (s *Symbol) ToBitMatrix() *bitutil.BitMatrix {
	return s.Matrix.ToBitMatrix()
}

// String returns a visual representation of the symbol.
func (s *Symbol) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "version: %s\necLevel: %s\nmaskPattern: %d\npenalty: %d\nsegments:",
		s.Version, s.ECLevel, s.MaskPattern, s.Penalty)
	for _, seg := range s.Segments {
		sb.WriteByte(' ')
		sb.WriteString(seg.String())
	}
	sb.WriteString("\nmatrix:\n")
	sb.WriteString(s.Matrix.String())
	return sb.String()
}
