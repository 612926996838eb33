package reedsolomon

import "sync"

// Encoder computes Reed-Solomon parity codewords. Generator polynomials are
// cached per degree; an Encoder is safe for concurrent use.
type Encoder struct {
	field *Field

	mu         sync.Mutex
	generators map[int][]int
}

// NewEncoder creates a new Encoder for the given field.
func NewEncoder(field *Field) *Encoder {
	return &Encoder{field: field, generators: map[int][]int{0: {1}}}
}

// generator returns the coefficients, highest degree first, of
// (x - a^b)(x - a^(b+1))...(x - a^(b+degree-1)).
func (e *Encoder) generator(degree int) []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if g, ok := e.generators[degree]; ok {
		return g
	}
	g := []int{1}
	for i := 0; i < degree; i++ {
		root := e.field.Exp(i + e.field.GeneratorBase())
		next := make([]int, len(g)+1)
		for j, c := range g {
			next[j] ^= c
			next[j+1] ^= e.field.Multiply(c, root)
		}
		g = next
	}
	e.generators[degree] = g
	return g
}

// Encode returns the ecLen parity codewords for data: the remainder of
// data(x) * x^ecLen divided by the generator polynomial.
func (e *Encoder) Encode(data []byte, ecLen int) []byte {
	if ecLen <= 0 {
		panic("reedsolomon: no error correction bytes")
	}
	if len(data) == 0 {
		panic("reedsolomon: no data bytes provided")
	}
	gen := e.generator(ecLen)
	rem := make([]int, ecLen)
	for _, d := range data {
		factor := int(d) ^ rem[0]
		copy(rem, rem[1:])
		rem[ecLen-1] = 0
		if factor == 0 {
			continue
		}
		for i := range rem {
			rem[i] ^= e.field.Multiply(gen[i+1], factor)
		}
	}
	out := make([]byte, ecLen)
	for i, r := range rem {
		out[i] = byte(r)
	}
	return out
}
