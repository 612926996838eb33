// Package reedsolomon implements Reed-Solomon coding over GF(256) as used by
// the rMQR symbol family.
package reedsolomon

import "fmt"

// Field is GF(256) generated by a primitive polynomial. Its tables are filled
// once at construction and only read afterwards.
type Field struct {
	exp           [512]int
	log           [256]int
	primitive     int
	generatorBase int
}

// Field256 is the field used by rMQR: x^8 + x^4 + x^3 + x^2 + 1 with
// generator base 0.
var Field256 = NewField(0x011D, 0)

// NewField builds GF(256) for the given primitive polynomial.
func NewField(primitive, generatorBase int) *Field {
	f := &Field{primitive: primitive, generatorBase: generatorBase}
	x := 1
	for i := 0; i < 255; i++ {
		f.exp[i] = x
		f.log[x] = i
		x <<= 1
		if x&0x100 != 0 {
			x ^= primitive
		}
	}
	// doubled so Multiply can skip the modulo
	for i := 255; i < len(f.exp); i++ {
		f.exp[i] = f.exp[i-255]
	}
	return f
}

// Exp returns alpha^a.
func (f *Field) Exp(a int) int {
	return f.exp[a%255]
}

// Log returns the discrete logarithm of a.
func (f *Field) Log(a int) int {
	if a == 0 {
		panic("reedsolomon: log(0)")
	}
	return f.log[a]
}

// Inverse returns the multiplicative inverse of a.
func (f *Field) Inverse(a int) int {
	if a == 0 {
		panic("reedsolomon: inverse(0)")
	}
	return f.exp[255-f.log[a]]
}

// Multiply returns a * b in this field.
func (f *Field) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[f.log[a]+f.log[b]]
}

// GeneratorBase returns the exponent of the first generator root.
func (f *Field) GeneratorBase() int { return f.generatorBase }

func (f *Field) String() string {
	return fmt.Sprintf("GF(0x%x,256)", f.primitive)
}
