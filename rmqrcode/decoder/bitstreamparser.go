package decoder

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/japanese"

	rmqrgo "github.com/ericlevine/rmqrgo"
	"github.com/ericlevine/rmqrgo/bitutil"
	"github.com/ericlevine/rmqrgo/internal"
)

// AlphanumericChars lists the alphanumeric mode character set in value order.
const AlphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// DecodeBitStream parses the corrected data codewords of a symbol into its
// segments.
func DecodeBitStream(bytes []byte, version *Version, ecLevel ErrorCorrectionLevel) (*internal.DecoderResult, error) {
	bs := bitutil.NewBitSource(bytes)
	var text strings.Builder
	var segments []internal.Segment

	for bs.Available() >= ModeIndicatorBits {
		modeBits, _ := bs.ReadBits(ModeIndicatorBits)
		mode, err := ModeForBits(modeBits)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", rmqrgo.ErrFormat, err)
		}
		if mode == ModeTerminator {
			break
		}
		count, err := bs.ReadBits(mode.CharacterCountBits(version))
		if err != nil {
			return nil, rmqrgo.ErrFormat
		}

		var seg internal.Segment
		switch mode {
		case ModeNumeric:
			seg, err = decodeNumericSegment(bs, count)
		case ModeAlphanumeric:
			seg, err = decodeAlphanumericSegment(bs, count)
		case ModeByte:
			seg, err = decodeByteSegment(bs, count)
		case ModeKanji:
			seg, err = decodeKanjiSegment(bs, count)
		}
		if err != nil {
			return nil, err
		}
		seg.Mode = mode.String()
		segments = append(segments, seg)
		text.WriteString(seg.Text)
	}

	return internal.NewDecoderResult(bytes, text.String(), segments, version.Name, ecLevel.String()), nil
}

func decodeKanjiSegment(bs *bitutil.BitSource, count int) (internal.Segment, error) {
	if count*13 > bs.Available() {
		return internal.Segment{}, rmqrgo.ErrFormat
	}
	buf := make([]byte, 0, 2*count)
	for ; count > 0; count-- {
		v, _ := bs.ReadBits(13)
		assembled := (v/0xC0)<<8 | v%0xC0
		if assembled < 0x1F00 {
			assembled += 0x8140
		} else {
			assembled += 0xC140
		}
		buf = append(buf, byte(assembled>>8), byte(assembled))
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(buf)
	if err != nil {
		return internal.Segment{}, fmt.Errorf("%w: %v", rmqrgo.ErrFormat, err)
	}
	return internal.Segment{Text: string(decoded), Raw: decoded}, nil
}

func decodeByteSegment(bs *bitutil.BitSource, count int) (internal.Segment, error) {
	if 8*count > bs.Available() {
		return internal.Segment{}, rmqrgo.ErrFormat
	}
	raw := make([]byte, count)
	for i := range raw {
		v, _ := bs.ReadBits(8)
		raw[i] = byte(v)
	}
	return internal.Segment{Text: string(raw), Raw: raw}, nil
}

func decodeAlphanumericSegment(bs *bitutil.BitSource, count int) (internal.Segment, error) {
	var sb strings.Builder
	for count > 1 {
		if bs.Available() < 11 {
			return internal.Segment{}, rmqrgo.ErrFormat
		}
		v, _ := bs.ReadBits(11)
		if v >= 45*45 {
			return internal.Segment{}, rmqrgo.ErrFormat
		}
		sb.WriteByte(AlphanumericChars[v/45])
		sb.WriteByte(AlphanumericChars[v%45])
		count -= 2
	}
	if count == 1 {
		if bs.Available() < 6 {
			return internal.Segment{}, rmqrgo.ErrFormat
		}
		v, _ := bs.ReadBits(6)
		if v >= 45 {
			return internal.Segment{}, rmqrgo.ErrFormat
		}
		sb.WriteByte(AlphanumericChars[v])
	}
	return internal.Segment{Text: sb.String(), Raw: []byte(sb.String())}, nil
}

func decodeNumericSegment(bs *bitutil.BitSource, count int) (internal.Segment, error) {
	var sb strings.Builder
	for _, group := range []struct{ digits, bits, limit int }{{3, 10, 1000}, {2, 7, 100}, {1, 4, 10}} {
		for count >= group.digits {
			if bs.Available() < group.bits {
				return internal.Segment{}, rmqrgo.ErrFormat
			}
			v, _ := bs.ReadBits(group.bits)
			if v >= group.limit {
				return internal.Segment{}, rmqrgo.ErrFormat
			}
			fmt.Fprintf(&sb, "%0*d", group.digits, v)
			count -= group.digits
		}
	}
	return internal.Segment{Text: sb.String(), Raw: []byte(sb.String())}, nil
}
