// Package bitutil provides the bit containers shared by the symbol encoder,
// the matrix decoder and the renderers.
package bitutil

import "strings"

// BitArray is an append-only sequence of bits stored most-significant bit
// first within each byte, so the backing slice doubles as the codeword
// stream once the length is a multiple of 8.
type BitArray struct {
	data []byte
	size int
}

// NewBitArray returns an empty BitArray with room for capacity bits.
func NewBitArray(capacity int) *BitArray {
	if capacity < 0 {
		capacity = 0
	}
	return &BitArray{data: make([]byte, 0, (capacity+7)/8)}
}

// Size returns the number of bits in the array.
func (ba *BitArray) Size() int {
	return ba.size
}

// SizeInBytes returns the number of bytes needed to hold the bits.
func (ba *BitArray) SizeInBytes() int {
	return (ba.size + 7) / 8
}

// Get returns true if bit i is set.
func (ba *BitArray) Get(i int) bool {
	return ba.data[i/8]&(0x80>>uint(i&7)) != 0
}

// AppendBit appends a single bit.
func (ba *BitArray) AppendBit(bit bool) {
	if ba.size&7 == 0 {
		ba.data = append(ba.data, 0)
	}
	if bit {
		ba.data[ba.size/8] |= 0x80 >> uint(ba.size&7)
	}
	ba.size++
}

// AppendBits appends the least-significant numBits bits of value, from most
// significant to least significant.
func (ba *BitArray) AppendBits(value uint32, numBits int) {
	if numBits < 0 || numBits > 32 {
		panic("bitarray: numBits must be between 0 and 32")
	}
	for n := numBits - 1; n >= 0; n-- {
		ba.AppendBit(value&(1<<uint(n)) != 0)
	}
}

// AppendBitArray appends another BitArray to this one.
func (ba *BitArray) AppendBitArray(other *BitArray) {
	for i := 0; i < other.size; i++ {
		ba.AppendBit(other.Get(i))
	}
}

// Bytes returns a copy of the bits packed into bytes. A trailing partial
// byte is zero-filled in its low bits.
func (ba *BitArray) Bytes() []byte {
	out := make([]byte, len(ba.data))
	copy(out, ba.data)
	return out
}

// Clone returns a copy of this BitArray.
func (ba *BitArray) Clone() *BitArray {
	return &BitArray{data: ba.Bytes(), size: ba.size}
}

// String returns the bits as '0' and '1' characters.
func (ba *BitArray) String() string {
	var sb strings.Builder
	sb.Grow(ba.size)
	for i := 0; i < ba.size; i++ {
		if ba.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
