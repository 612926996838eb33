package reedsolomon

// poly is a polynomial over a Field with coefficients ordered from the
// highest degree down. Values are never mutated once built.
type poly struct {
	field *Field
	coef  []int
}

func newPoly(field *Field, coef []int) poly {
	i := 0
	for i < len(coef)-1 && coef[i] == 0 {
		i++
	}
	return poly{field: field, coef: coef[i:]}
}

func monomial(field *Field, degree, c int) poly {
	if c == 0 {
		return newPoly(field, []int{0})
	}
	coef := make([]int, degree+1)
	coef[0] = c
	return poly{field: field, coef: coef}
}

func (p poly) degree() int { return len(p.coef) - 1 }

func (p poly) isZero() bool { return p.coef[0] == 0 }

// at returns the coefficient of x^d.
func (p poly) at(d int) int { return p.coef[len(p.coef)-1-d] }

func (p poly) eval(x int) int {
	if x == 0 {
		return p.at(0)
	}
	r := 0
	for _, c := range p.coef {
		r = p.field.Multiply(r, x) ^ c
	}
	return r
}

func (p poly) add(q poly) poly {
	if p.isZero() {
		return q
	}
	if q.isZero() {
		return p
	}
	if len(p.coef) < len(q.coef) {
		p, q = q, p
	}
	sum := make([]int, len(p.coef))
	copy(sum, p.coef)
	off := len(p.coef) - len(q.coef)
	for i, c := range q.coef {
		sum[off+i] ^= c
	}
	return newPoly(p.field, sum)
}

func (p poly) mul(q poly) poly {
	if p.isZero() || q.isZero() {
		return newPoly(p.field, []int{0})
	}
	prod := make([]int, len(p.coef)+len(q.coef)-1)
	for i, a := range p.coef {
		for j, b := range q.coef {
			prod[i+j] ^= p.field.Multiply(a, b)
		}
	}
	return newPoly(p.field, prod)
}

// scale multiplies by c * x^shift.
func (p poly) scale(c, shift int) poly {
	if c == 0 {
		return newPoly(p.field, []int{0})
	}
	prod := make([]int, len(p.coef)+shift)
	for i, a := range p.coef {
		prod[i] = p.field.Multiply(a, c)
	}
	return newPoly(p.field, prod)
}
