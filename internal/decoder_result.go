// Package internal provides the result type shared by the rMQR matrix decoder
// and its callers.
package internal

// Segment is one decoded mode run.
type Segment struct {
	Mode string
	Text string
	Raw  []byte
}

// DecoderResult encapsulates the result of decoding a matrix of modules.
type DecoderResult struct {
	RawBytes        []byte
	NumBits         int
	Text            string
	Segments        []Segment
	Version         string
	ECLevel         string
	ErrorsCorrected int
}

// NewDecoderResult creates a DecoderResult from the corrected data codewords
// and the parsed segments.
func NewDecoderResult(rawBytes []byte, text string, segments []Segment, version, ecLevel string) *DecoderResult {
	return &DecoderResult{
		RawBytes: rawBytes,
		NumBits:  8 * len(rawBytes),
		Text:     text,
		Segments: segments,
		Version:  version,
		ECLevel:  ecLevel,
	}
}

// Payload returns the concatenated raw bytes of every segment; kanji
// segments contribute their UTF-8 text.
func (d *DecoderResult) Payload() []byte {
	var out []byte
	for _, s := range d.Segments {
		out = append(out, s.Raw...)
	}
	return out
}
