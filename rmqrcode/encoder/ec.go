package encoder

import (
	"fmt"

	rmqrgo "github.com/ericlevine/rmqrgo"
	"github.com/ericlevine/rmqrgo/bitutil"
	"github.com/ericlevine/rmqrgo/reedsolomon"
	"github.com/ericlevine/rmqrgo/rmqrcode/decoder"
)

// rsEncoder is shared by every encode call; its generator cache is locked.
var rsEncoder = reedsolomon.NewEncoder(reedsolomon.Field256)

type dataBlock struct {
	data []byte
	ec   []byte
}

// splitBlocks cuts the data codewords into the blocks of ecBlocks, in table
// order, and computes the parity of each.
func splitBlocks(dataBytes []byte, ecBlocks *decoder.ECBlocks) ([]dataBlock, error) {
	if len(dataBytes) != ecBlocks.TotalDataCodewords() {
		return nil, fmt.Errorf("%w: %d data codewords, want %d",
			rmqrgo.ErrWriter, len(dataBytes), ecBlocks.TotalDataCodewords())
	}
	blocks := make([]dataBlock, 0, ecBlocks.NumBlocks())
	offset := 0
	for _, group := range ecBlocks.Blocks {
		for i := 0; i < group.Count; i++ {
			data := dataBytes[offset : offset+group.DataCodewords]
			offset += group.DataCodewords
			blocks = append(blocks, dataBlock{
				data: data,
				ec:   rsEncoder.Encode(data, ecBlocks.ECCodewordsPerBlock),
			})
		}
	}
	return blocks, nil
}

// interleaveWithECBytes splits bits into blocks, appends the Reed-Solomon
// parity of each and returns the codewords in placement order: data
// round-robin across blocks, then parity round-robin.
func interleaveWithECBytes(bits *bitutil.BitArray, version *decoder.Version, ecLevel decoder.ErrorCorrectionLevel) (*bitutil.BitArray, error) {
	ecBlocks := version.ECBlocksForLevel(ecLevel)
	blocks, err := splitBlocks(bits.Bytes(), ecBlocks)
	if err != nil {
		return nil, err
	}

	maxNumDataBytes := 0
	for _, block := range blocks {
		maxNumDataBytes = max(maxNumDataBytes, len(block.data))
	}

	result := bitutil.NewBitArray(8 * version.TotalCodewords)
	for i := 0; i < maxNumDataBytes; i++ {
		for _, block := range blocks {
			if i < len(block.data) {
				result.AppendBits(uint32(block.data[i]), 8)
			}
		}
	}
	for i := 0; i < ecBlocks.ECCodewordsPerBlock; i++ {
		for _, block := range blocks {
			result.AppendBits(uint32(block.ec[i]), 8)
		}
	}

	if result.SizeInBytes() != version.TotalCodewords {
		return nil, fmt.Errorf("%w: %d interleaved codewords, want %d",
			rmqrgo.ErrWriter, result.SizeInBytes(), version.TotalCodewords)
	}
	return result, nil
}
