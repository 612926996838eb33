package reedsolomon

import "errors"

// ErrReedSolomon indicates a Reed-Solomon decoding failure.
var ErrReedSolomon = errors.New("reedsolomon: decoding error")

// Decoder corrects errors in a received block using the syndromes, the
// extended Euclidean algorithm and Forney's formula.
type Decoder struct {
	field *Field
}

// NewDecoder creates a new Decoder for the given field.
func NewDecoder(field *Field) *Decoder {
	return &Decoder{field: field}
}

// Decode corrects received in place, where the last ecLen codewords are
// parity, and returns the number of codewords corrected.
func (d *Decoder) Decode(received []byte, ecLen int) (int, error) {
	coef := make([]int, len(received))
	for i, b := range received {
		coef[i] = int(b)
	}
	r := newPoly(d.field, coef)

	syndromes := make([]int, ecLen)
	clean := true
	for i := 0; i < ecLen; i++ {
		s := r.eval(d.field.Exp(i + d.field.GeneratorBase()))
		syndromes[ecLen-1-i] = s
		if s != 0 {
			clean = false
		}
	}
	if clean {
		return 0, nil
	}

	sigma, omega, err := d.euclid(monomial(d.field, ecLen, 1), newPoly(d.field, syndromes), ecLen)
	if err != nil {
		return 0, err
	}
	locations, err := d.errorLocations(sigma)
	if err != nil {
		return 0, err
	}
	for _, loc := range locations {
		pos := len(received) - 1 - d.field.Log(loc)
		if pos < 0 {
			return 0, ErrReedSolomon
		}
		received[pos] ^= byte(d.magnitude(omega, locations, loc))
	}
	return len(locations), nil
}

// euclid runs the extended Euclidean algorithm on x^ecLen and the syndrome
// polynomial until the remainder degree drops below ecLen/2, returning the
// error locator and evaluator normalised so the locator has constant term 1.
func (d *Decoder) euclid(a, b poly, ecLen int) (sigma, omega poly, err error) {
	if a.degree() < b.degree() {
		a, b = b, a
	}
	rPrev, r := a, b
	tPrev, t := newPoly(d.field, []int{0}), newPoly(d.field, []int{1})

	for 2*r.degree() >= ecLen {
		if r.isZero() {
			return poly{}, poly{}, ErrReedSolomon
		}
		q := newPoly(d.field, []int{0})
		rem := rPrev
		lead := d.field.Inverse(r.at(r.degree()))
		for rem.degree() >= r.degree() && !rem.isZero() {
			shift := rem.degree() - r.degree()
			c := d.field.Multiply(rem.at(rem.degree()), lead)
			q = q.add(monomial(d.field, shift, c))
			rem = rem.add(r.scale(c, shift))
		}
		rPrev, r = r, rem
		tPrev, t = t, q.mul(t).add(tPrev)

		if r.degree() >= rPrev.degree() {
			return poly{}, poly{}, ErrReedSolomon
		}
	}

	c0 := t.at(0)
	if c0 == 0 {
		return poly{}, poly{}, ErrReedSolomon
	}
	inv := d.field.Inverse(c0)
	return t.scale(inv, 0), r.scale(inv, 0), nil
}

// errorLocations finds the inverses of the roots of sigma by exhaustive search.
func (d *Decoder) errorLocations(sigma poly) ([]int, error) {
	n := sigma.degree()
	if n == 1 {
		return []int{sigma.at(1)}, nil
	}
	out := make([]int, 0, n)
	for x := 1; x < 256 && len(out) < n; x++ {
		if sigma.eval(x) == 0 {
			out = append(out, d.field.Inverse(x))
		}
	}
	if len(out) != n {
		return nil, ErrReedSolomon
	}
	return out, nil
}

// magnitude applies Forney's formula for the error at location xi.
func (d *Decoder) magnitude(omega poly, locations []int, xi int) int {
	xiInv := d.field.Inverse(xi)
	den := 1
	for _, xj := range locations {
		if xj == xi {
			continue
		}
		den = d.field.Multiply(den, d.field.Multiply(xj, xiInv)^1)
	}
	m := d.field.Multiply(omega.eval(xiInv), d.field.Inverse(den))
	for i := 0; i < d.field.GeneratorBase(); i++ {
		m = d.field.Multiply(m, xiInv)
	}
	return m
}
