package encoder

import (
	"fmt"

	rmqrgo "github.com/ericlevine/rmqrgo"
	"github.com/ericlevine/rmqrgo/bitutil"
	"github.com/ericlevine/rmqrgo/rmqrcode/decoder"
)

// segmentBits returns the encoded length of s in version, headers included.
func segmentBits(s Segment, version *decoder.Version) int {
	n := s.CharacterCount()
	header := decoder.ModeIndicatorBits + s.Mode.CharacterCountBits(version)
	switch s.Mode {
	case decoder.ModeNumeric:
		return header + 10*(n/3) + [3]int{0, 4, 7}[n%3]
	case decoder.ModeAlphanumeric:
		return header + 11*(n/2) + 6*(n%2)
	case decoder.ModeKanji:
		return header + 13*n
	}
	return header + 8*n
}

func streamBits(segments []Segment, version *decoder.Version) int {
	total := 0
	for _, s := range segments {
		total += segmentBits(s, version)
	}
	return total
}

// buildBitStream writes mode indicators, count indicators and packed data
// for every segment. It does not terminate or pad.
func buildBitStream(segments []Segment, version *decoder.Version) (*bitutil.BitArray, error) {
	bits := bitutil.NewBitArray(version.DataCapacityBits(decoder.ECLevelM))
	for _, s := range segments {
		count := s.CharacterCount()
		countBits := s.Mode.CharacterCountBits(version)
		if count >= 1<<uint(countBits) {
			return nil, fmt.Errorf("%w: %d characters overflow the %d-bit %s count in %s",
				rmqrgo.ErrCapacityExceeded, count, countBits, s.Mode, version)
		}
		bits.AppendBits(uint32(s.Mode.Bits()), decoder.ModeIndicatorBits)
		bits.AppendBits(uint32(count), countBits)
		if err := appendBytes(s, bits); err != nil {
			return nil, err
		}
	}
	return bits, nil
}

// terminateBits appends the terminator, truncated if the capacity is nearly
// reached, zero bits up to a byte boundary and alternating pad codewords.
func terminateBits(numDataBytes int, bits *bitutil.BitArray) error {
	capacity := numDataBytes * 8
	if bits.Size() > capacity {
		return fmt.Errorf("%w: %d data bits exceed capacity %d", rmqrgo.ErrCapacityExceeded, bits.Size(), capacity)
	}

	for i := 0; i < decoder.ModeIndicatorBits && bits.Size() < capacity; i++ {
		bits.AppendBit(false)
	}

	for bits.Size()&0x07 != 0 {
		bits.AppendBit(false)
	}

	numPaddingBytes := numDataBytes - bits.SizeInBytes()
	for i := 0; i < numPaddingBytes; i++ {
		if i%2 == 0 {
			bits.AppendBits(0xEC, 8)
		} else {
			bits.AppendBits(0x11, 8)
		}
	}
	return nil
}

func appendBytes(s Segment, bits *bitutil.BitArray) error {
	switch s.Mode {
	case decoder.ModeNumeric:
		return appendNumericBytes(s.Data, bits)
	case decoder.ModeAlphanumeric:
		return appendAlphanumericBytes(s.Data, bits)
	case decoder.ModeByte:
		append8BitBytes(s.Data, bits)
		return nil
	case decoder.ModeKanji:
		return appendKanjiBytes(s.Data, bits)
	}
	return fmt.Errorf("%w: mode %s", rmqrgo.ErrUnsupportedCharacter, s.Mode)
}

func appendNumericBytes(content []byte, bits *bitutil.BitArray) error {
	for _, c := range content {
		if !isNumeric(rune(c)) {
			return fmt.Errorf("%w: %q is not a digit", rmqrgo.ErrUnsupportedCharacter, c)
		}
	}
	for i := 0; i < len(content); {
		num1 := int(content[i] - '0')
		switch {
		case i+2 < len(content):
			num2 := int(content[i+1] - '0')
			num3 := int(content[i+2] - '0')
			bits.AppendBits(uint32(num1*100+num2*10+num3), 10)
			i += 3
		case i+1 < len(content):
			num2 := int(content[i+1] - '0')
			bits.AppendBits(uint32(num1*10+num2), 7)
			i += 2
		default:
			bits.AppendBits(uint32(num1), 4)
			i++
		}
	}
	return nil
}

func appendAlphanumericBytes(content []byte, bits *bitutil.BitArray) error {
	for i := 0; i < len(content); {
		code1 := GetAlphanumericCode(rune(content[i]))
		if code1 == -1 {
			return fmt.Errorf("%w: %q is not alphanumeric", rmqrgo.ErrUnsupportedCharacter, content[i])
		}
		if i+1 < len(content) {
			code2 := GetAlphanumericCode(rune(content[i+1]))
			if code2 == -1 {
				return fmt.Errorf("%w: %q is not alphanumeric", rmqrgo.ErrUnsupportedCharacter, content[i+1])
			}
			bits.AppendBits(uint32(code1*45+code2), 11)
			i += 2
		} else {
			bits.AppendBits(uint32(code1), 6)
			i++
		}
	}
	return nil
}

func append8BitBytes(content []byte, bits *bitutil.BitArray) {
	for _, b := range content {
		bits.AppendBits(uint32(b), 8)
	}
}

// appendKanjiBytes packs each character's Shift JIS code into 13 bits:
// subtract 0x8140 or 0xC140, then high byte * 0xC0 + low byte.
func appendKanjiBytes(content []byte, bits *bitutil.BitArray) error {
	for _, u := range splitUnits(content) {
		code := u.kanji
		switch {
		case code >= 0x8140 && code <= 0x9FFC:
			code -= 0x8140
		case code >= 0xE040 && code <= 0xEBBF:
			code -= 0xC140
		default:
			return fmt.Errorf("%w: %q has no kanji mode code", rmqrgo.ErrUnsupportedCharacter, u.raw)
		}
		bits.AppendBits(uint32((code>>8)*0xC0+(code&0xFF)), 13)
	}
	return nil
}
