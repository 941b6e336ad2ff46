package bulletproofs

import (
	"encoding/binary"
	"fmt"

	"github.com/bwesterb/go-ristretto"
)

// scalarExp iterates the powers 1, x, x^2, ... of a scalar.
type scalarExp struct {
	x    *ristretto.Scalar
	next *ristretto.Scalar
}

func newScalarExp(x *ristretto.Scalar) *scalarExp {
	var one ristretto.Scalar
	return &scalarExp{x: x, next: one.SetOne()}
}

func (s *scalarExp) Next() *ristretto.Scalar {
	var cur ristretto.Scalar
	cur.Add(&cur, s.next)
	s.next.Mul(s.next, s.x)
	return &cur
}

func scalarExpVartime(x *ristretto.Scalar, n uint64) *ristretto.Scalar {
	var result, aux ristretto.Scalar
	result.SetOne()
	aux.SetZero()
	aux.Add(&aux, x)

	for n > 0 {
		if n&1 == 1 {
			result.Mul(&result, &aux)
		}
		n >>= 1
		aux.Mul(&aux, &aux)
	}
	return &result
}

// sumOfPowers returns 1 + x + x^2 + ... + x^(n-1).
func sumOfPowers(x *ristretto.Scalar, n uint64) *ristretto.Scalar {
	var sum ristretto.Scalar
	sum.SetZero()
	exp := newScalarExp(x)
	for i := uint64(0); i < n; i++ {
		sum.Add(&sum, exp.Next())
	}
	return &sum
}

// vecPoly1 is a vector of degree-1 polynomials: As[i] + Bs[i]*x.
type vecPoly1 struct {
	As []*ristretto.Scalar
	Bs []*ristretto.Scalar
}

func zeroVecPoly1(n int64) *vecPoly1 {
	vec := &vecPoly1{
		As: make([]*ristretto.Scalar, n),
		Bs: make([]*ristretto.Scalar, n),
	}
	for i := int64(0); i < n; i++ {
		var a, b ristretto.Scalar
		a.SetOne()
		b.SetOne()
		vec.As[i] = &a
		vec.Bs[i] = &b
	}
	return vec
}

func (v *vecPoly1) InnerProduct(rhs *vecPoly1) *poly2 {
	t0 := innerProduct(v.As, rhs.As)
	t2 := innerProduct(v.Bs, rhs.Bs)

	l0PlusL1 := addVec(v.As, v.Bs)
	r0PlusR1 := addVec(rhs.As, rhs.Bs)

	var t1 ristretto.Scalar
	t1.Sub(innerProduct(l0PlusL1, r0PlusR1), t0)
	t1.Sub(&t1, t2)

	return &poly2{A: t0, B: &t1, C: t2}
}

func (v *vecPoly1) Eval(x *ristretto.Scalar) []*ristretto.Scalar {
	out := make([]*ristretto.Scalar, len(v.As))
	for i := range v.As {
		var r ristretto.Scalar
		r.Mul(v.Bs[i], x)
		out[i] = r.Add(v.As[i], &r)
	}
	return out
}

// poly2 is the degree-2 polynomial A + B*x + C*x^2.
type poly2 struct {
	A, B, C *ristretto.Scalar
}

func (p *poly2) Eval(x *ristretto.Scalar) *ristretto.Scalar {
	var r ristretto.Scalar
	r.Mul(x, p.C)
	r.Add(p.B, &r)
	r.Mul(x, &r)
	return r.Add(p.A, &r)
}

func innerProduct(a, b []*ristretto.Scalar) *ristretto.Scalar {
	if len(a) != len(b) {
		panic(fmt.Sprintf("bulletproofs: innerProduct length mismatch %d, %d", len(a), len(b)))
	}
	var sum ristretto.Scalar
	sum.SetZero()
	for i := range a {
		var r ristretto.Scalar
		sum.Add(&sum, r.Mul(a[i], b[i]))
	}
	return &sum
}

func addVec(a, b []*ristretto.Scalar) []*ristretto.Scalar {
	if len(a) != len(b) {
		panic(fmt.Sprintf("bulletproofs: addVec length mismatch %d, %d", len(a), len(b)))
	}
	out := make([]*ristretto.Scalar, len(a))
	for i := range a {
		var r ristretto.Scalar
		out[i] = r.Add(a[i], b[i])
	}
	return out
}

func scalarFromUint64(i uint64) *ristretto.Scalar {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:], i)
	var s ristretto.Scalar
	return s.SetBytes(&buf)
}

func multiscalarMul(scalars []*ristretto.Scalar, points []*ristretto.Point) *ristretto.Point {
	var p ristretto.Point
	p.SetZero()
	for i := range scalars {
		var t ristretto.Point
		t.ScalarMult(points[i], scalars[i])
		p.Add(&p, &t)
	}
	return &p
}

func cloneScalar(s *ristretto.Scalar) *ristretto.Scalar {
	var c ristretto.Scalar
	return c.Add(&c, s)
}

func clonePoint(p *ristretto.Point) *ristretto.Point {
	var c ristretto.Point
	c.SetZero()
	return c.Add(&c, p)
}
