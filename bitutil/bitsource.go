package bitutil

// BitSource reads bits from a byte sequence, most-significant bit first,
// where the number of bits read is not necessarily a multiple of 8.
type BitSource struct {
	bytes []byte
	pos   int
}

// NewBitSource creates a new BitSource from a byte slice.
func NewBitSource(bytes []byte) *BitSource {
	return &BitSource{bytes: bytes}
}

// Position returns the index of the next bit to be read.
func (bs *BitSource) Position() int {
	return bs.pos
}

// ReadBits reads numBits bits and returns them as the least-significant bits of an int.
func (bs *BitSource) ReadBits(numBits int) (int, error) {
	if numBits < 1 || numBits > 32 || numBits > bs.Available() {
		return 0, &BitSourceError{NumBits: numBits, Available: bs.Available()}
	}
	result := 0
	for ; numBits > 0; numBits-- {
		bit := bs.bytes[bs.pos/8] >> uint(7-bs.pos&7) & 1
		result = result<<1 | int(bit)
		bs.pos++
	}
	return result, nil
}

// Available returns the number of bits that can still be read.
func (bs *BitSource) Available() int {
	return 8*len(bs.bytes) - bs.pos
}

// BitSourceError is returned when an invalid number of bits is requested.
type BitSourceError struct {
	NumBits   int
	Available int
}

func (e *BitSourceError) Error() string {
	return "bitsource: invalid number of bits"
}
