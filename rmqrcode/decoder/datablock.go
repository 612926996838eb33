package decoder

// DataBlock represents a block of data and error-correction codewords.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
}

// GetDataBlocks separates the interleaved codeword stream of a symbol into
// its blocks. Data codewords were dealt round-robin, with the longer blocks
// taking the final rounds alone, followed by the parity codewords dealt the
// same way.
func GetDataBlocks(rawCodewords []byte, version *Version, ecLevel ErrorCorrectionLevel) []DataBlock {
	ecBlocks := version.ECBlocksForLevel(ecLevel)
	ecCount := ecBlocks.ECCodewordsPerBlock

	var result []DataBlock
	maxData := 0
	for _, block := range ecBlocks.Blocks {
		for i := 0; i < block.Count; i++ {
			result = append(result, DataBlock{
				NumDataCodewords: block.DataCodewords,
				Codewords:        make([]byte, block.DataCodewords+ecCount),
			})
		}
		maxData = max(maxData, block.DataCodewords)
	}

	offset := 0
	for i := 0; i < maxData; i++ {
		for j := range result {
			if i < result[j].NumDataCodewords {
				result[j].Codewords[i] = rawCodewords[offset]
				offset++
			}
		}
	}
	for i := 0; i < ecCount; i++ {
		for j := range result {
			result[j].Codewords[result[j].NumDataCodewords+i] = rawCodewords[offset]
			offset++
		}
	}
	return result
}
