package ringct

import (
	"sync"

	"github.com/bwesterb/go-ristretto"
)

// Pedersen generators. G is the group basepoint, H is derived from G
// by hashing to a point, so no discrete log relation between the two
// is known.
var (
	pedersenOnce sync.Once
	pedersenG    ristretto.Point
	pedersenH    ristretto.Point
)

func pedersenGens() (*ristretto.Point, *ristretto.Point) {
	pedersenOnce.Do(func() {
		pedersenG.SetBase()
		pedersenH = *hashPoint(pedersenG.Bytes())
	})
	return &pedersenG, &pedersenH
}

// PedersenG returns the blinding generator G.
func PedersenG() *ristretto.Point {
	g, _ := pedersenGens()
	var p ristretto.Point
	p.Set(g)
	return &p
}

// PedersenH returns the value generator H.
func PedersenH() *ristretto.Point {
	_, h := pedersenGens()
	var p ristretto.Point
	p.Set(h)
	return &p
}

// Commitment is a Pedersen commitment b*G + v*H to a value v under a
// blinding factor b. Commitments are hiding and binding, and
// additively homomorphic.
type Commitment struct {
	point ristretto.Point
}

// Commit commits to value under the given blinding factor.
func Commit(value uint64, blinding *ristretto.Scalar) Commitment {
	g, h := pedersenGens()
	var bg, vh ristretto.Point
	bg.ScalarMult(g, blinding)
	vh.ScalarMult(h, ScalarFromUint64(value))
	var c Commitment
	c.point.Add(&bg, &vh)
	return c
}

// CommitRandom commits to value under a fresh random blinding factor
// and returns both. The caller owns the blinding and must wipe it when
// done.
func CommitRandom(value uint64) (Commitment, *ristretto.Scalar) {
	blinding := RandomScalar()
	return Commit(value, blinding), blinding
}

// CommitmentFromPoint wraps a group element as a commitment.
func CommitmentFromPoint(p *ristretto.Point) Commitment {
	var c Commitment
	c.point.Set(p)
	return c
}

// Point returns the group element representing this commitment.
func (c Commitment) Point() *ristretto.Point {
	var p ristretto.Point
	p.Set(&c.point)
	return &p
}

// Add returns the homomorphic sum: a commitment to the sum of values
// under the sum of blindings.
func (c Commitment) Add(other Commitment) Commitment {
	var sum Commitment
	sum.point.Add(&c.point, &other.point)
	return sum
}

// Equals reports whether two commitments are the same group element.
func (c Commitment) Equals(other Commitment) bool {
	return c.point.Equals(&other.point)
}

// SumCommitments adds a list of commitments.
func SumCommitments(commitments []Commitment) Commitment {
	var sum Commitment
	sum.point.SetZero()
	for i := range commitments {
		sum.point.Add(&sum.point, &commitments[i].point)
	}
	return sum
}

// VerifyOpening reports whether c opens to (value, blinding).
func VerifyOpening(c Commitment, value uint64, blinding *ristretto.Scalar) bool {
	expected := Commit(value, blinding)
	return c.Equals(expected)
}

// IsBalanced checks the transaction balance equation
// sum(in) == sum(out) + extra*H, where extra is the unblinded output
// amount (fees).
func IsBalanced(in, out []Commitment, extra uint64) bool {
	_, h := pedersenGens()
	var extraC Commitment
	extraC.point.ScalarMult(h, ScalarFromUint64(extra))
	return SumCommitments(in).Equals(SumCommitments(out).Add(extraC))
}

// Bytes returns the canonical 32-byte encoding.
func (c Commitment) Bytes() []byte {
	return c.point.Bytes()
}

// CommitmentFromBytes decodes a canonical commitment encoding.
func CommitmentFromBytes(data []byte) (Commitment, error) {
	p, err := PointFromBytes(data)
	if err != nil {
		return Commitment{}, err
	}
	return CommitmentFromPoint(p), nil
}
