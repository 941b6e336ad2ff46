package ringct

import (
	"sync"

	"github.com/bwesterb/go-ristretto"

	"github.com/expiredhotdog/RingCT/bulletproofs"
)

// Bulletproof glue: value commitments use H as the value base and G as
// the blinding base, so engine commitments coincide with Commit.
var (
	bpOnce     sync.Once
	bpGens     *bulletproofs.BulletproofGens
	bpPedersen *bulletproofs.PedersenGens
)

func bulletproofGens() (*bulletproofs.BulletproofGens, *bulletproofs.PedersenGens) {
	bpOnce.Do(func() {
		g, h := pedersenGens()
		bpGens = bulletproofs.NewBulletproofGens(BitRange, MaxAggregationSize)
		bpPedersen = bulletproofs.NewPedersenGens(h, g)
	})
	return bpGens, bpPedersen
}

// BulletPlusRangeProof is an aggregated bulletproof rangeproof. Proof
// size scales logarithmically in the number of committed values, and
// many proofs can be batch-verified in one multiexponentiation.
type BulletPlusRangeProof struct {
	proof *bulletproofs.RangeProof
}

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// padCommitments front-pads a commitment group with commitments to
// zero so the aggregation size is a power of two.
func padCommitments(commitments []Commitment) []*ristretto.Point {
	padLen := nextPowerOfTwo(len(commitments)) - len(commitments)
	padded := make([]*ristretto.Point, 0, padLen+len(commitments))
	for i := 0; i < padLen; i++ {
		var zero ristretto.Point
		zero.SetZero()
		padded = append(padded, &zero)
	}
	for i := range commitments {
		padded = append(padded, commitments[i].Point())
	}
	return padded
}

// ProveBulletPlus creates an aggregated rangeproof for the given
// values and blinding factors, returning the commitments it proves in
// order. At most MaxAggregationSize values may be aggregated.
func ProveBulletPlus(values []uint64, blindings []*ristretto.Scalar) ([]Commitment, *BulletPlusRangeProof, error) {
	if len(values) == 0 || len(values) != len(blindings) {
		return nil, nil, ErrMalformedProof
	}
	if len(values) > MaxAggregationSize {
		return nil, nil, ErrTooManyValues
	}

	// The engine requires a power-of-two aggregation size; pad in
	// front with zero openings.
	padLen := nextPowerOfTwo(len(values)) - len(values)
	paddedValues := make([]uint64, 0, padLen+len(values))
	paddedBlindings := make([]*ristretto.Scalar, 0, padLen+len(values))
	for i := 0; i < padLen; i++ {
		var zero ristretto.Scalar
		paddedValues = append(paddedValues, 0)
		paddedBlindings = append(paddedBlindings, zero.SetZero())
	}
	paddedValues = append(paddedValues, values...)
	paddedBlindings = append(paddedBlindings, blindings...)

	gens, pedersen := bulletproofGens()
	proof, paddedCommitments, err := bulletproofs.Prove(gens, pedersen, bulletproofLabel, paddedValues, paddedBlindings, BitRange)
	if err != nil {
		return nil, nil, ErrMalformedProof
	}

	commitments := make([]Commitment, 0, len(values))
	for _, p := range paddedCommitments[padLen:] {
		commitments = append(commitments, CommitmentFromPoint(p))
	}
	return commitments, &BulletPlusRangeProof{proof: proof}, nil
}

// VerifyBulletPlus checks a rangeproof against the exact ordered
// commitments it was created for.
func VerifyBulletPlus(commitments []Commitment, proof *BulletPlusRangeProof) error {
	return BatchVerifyBulletPlus([][]Commitment{commitments}, []*BulletPlusRangeProof{proof})
}

// BatchVerifyBulletPlus checks many rangeproofs at once with a single
// weighted multiexponentiation. It reports only whether the whole
// batch is valid; use Verify per proof when the failing item matters.
func BatchVerifyBulletPlus(commitments [][]Commitment, proofs []*BulletPlusRangeProof) error {
	if len(commitments) != len(proofs) {
		return ErrMalformedProof
	}
	groups := make([][]*ristretto.Point, len(commitments))
	engineProofs := make([]*bulletproofs.RangeProof, len(proofs))
	for i := range commitments {
		if len(commitments[i]) == 0 || proofs[i] == nil || proofs[i].proof == nil {
			return ErrMalformedProof
		}
		if len(commitments[i]) > MaxAggregationSize {
			return ErrTooManyValues
		}
		groups[i] = padCommitments(commitments[i])
		engineProofs[i] = proofs[i].proof
	}

	gens, pedersen := bulletproofGens()
	switch err := bulletproofs.VerifyBatch(gens, pedersen, bulletproofLabel, engineProofs, groups, BitRange); err {
	case nil:
		return nil
	case bulletproofs.ErrMalformed:
		return ErrMalformedProof
	default:
		return ErrInvalidProof
	}
}

// Bytes returns the proof's canonical encoding.
func (p *BulletPlusRangeProof) Bytes() []byte {
	return p.proof.ToBytes()
}

// BulletPlusRangeProofFromBytes decodes a proof, rejecting
// non-canonical encodings.
func BulletPlusRangeProofFromBytes(data []byte) (*BulletPlusRangeProof, error) {
	proof, err := bulletproofs.RangeProofFromBytes(data)
	if err != nil {
		return nil, ErrDecoding
	}
	return &BulletPlusRangeProof{proof: proof}, nil
}
