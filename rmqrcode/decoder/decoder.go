package decoder

import (
	rmqrgo "github.com/ericlevine/rmqrgo"
	"github.com/ericlevine/rmqrgo/bitutil"
	"github.com/ericlevine/rmqrgo/internal"
	"github.com/ericlevine/rmqrgo/reedsolomon"
)

// Decoder decodes rMQR module matrices.
type Decoder struct {
	rsDecoder *reedsolomon.Decoder
}

// NewDecoder creates a new rMQR Decoder.
func NewDecoder() *Decoder {
	return &Decoder{
		rsDecoder: reedsolomon.NewDecoder(reedsolomon.Field256),
	}
}

// Decode decodes a module matrix, one bit per module and no quiet zone,
// into a DecoderResult. The matrix is left unchanged.
func (d *Decoder) Decode(bits *bitutil.BitMatrix) (*internal.DecoderResult, error) {
	parser, err := NewBitMatrixParser(bits)
	if err != nil {
		return nil, err
	}
	formatInfo, err := parser.ReadFormatInformation()
	if err != nil {
		return nil, err
	}
	version, ecLevel := formatInfo.Version, formatInfo.ECLevel

	codewords, err := parser.ReadCodewords()
	if err != nil {
		return nil, err
	}

	dataBlocks := GetDataBlocks(codewords, version, ecLevel)
	resultBytes := make([]byte, 0, version.ECBlocksForLevel(ecLevel).TotalDataCodewords())

	errorsCorrected := 0
	for _, db := range dataBlocks {
		corrected, err := d.correctErrors(db.Codewords, db.NumDataCodewords)
		if err != nil {
			return nil, err
		}
		errorsCorrected += corrected
		resultBytes = append(resultBytes, db.Codewords[:db.NumDataCodewords]...)
	}

	result, err := DecodeBitStream(resultBytes, version, ecLevel)
	if err != nil {
		return nil, err
	}
	result.ErrorsCorrected = errorsCorrected
	return result, nil
}

func (d *Decoder) correctErrors(codewords []byte, numDataCodewords int) (int, error) {
	corrected, err := d.rsDecoder.Decode(codewords, len(codewords)-numDataCodewords)
	if err != nil {
		return 0, rmqrgo.ErrChecksum
	}
	return corrected, nil
}
