package ringct

import (
	"sync"

	"github.com/bwesterb/go-ristretto"
)

// Borromean rangeproofs decompose the value into base-4 digits and
// prove each digit with one ring of a borromean ring signature. They
// are essentially obsolete; bulletproofs are smaller, faster, and
// scale better.

// proofDigits is the number of base-4 digits covering BitRange bits.
const proofDigits = BitRange / 2

var (
	borromeanOnce   sync.Once
	borromeanTable  [proofDigits][4]ristretto.Point
	borromeanTableN [proofDigits][4]ristretto.Point
)

// borromeanHTable holds j*4^i*H for every digit position i and digit
// value j, and the negations.
func borromeanHTable() (positive, negative *[proofDigits][4]ristretto.Point) {
	borromeanOnce.Do(func() {
		_, h := pedersenGens()
		for i := 0; i < proofDigits; i++ {
			step := uint64(1) << (2 * uint(i))
			for j := 0; j < 4; j++ {
				var scaled ristretto.Point
				scaled.ScalarMult(h, ScalarFromUint64(uint64(j)*step))
				borromeanTable[i][j].Set(&scaled)
				borromeanTableN[i][j].Neg(&scaled)
			}
		}
	})
	return &borromeanTable, &borromeanTableN
}

// quaternary decomposes n into base-4 digits, least significant first.
func quaternary(n uint64) [proofDigits]int {
	var digits [proofDigits]int
	for i := 0; n != 0; i++ {
		digits[i] = int(n % 4)
		n /= 4
	}
	return digits
}

// chameleonHash can be re-targeted by anyone knowing the discrete log
// of p.
func chameleonHash(m []byte, e, s *ristretto.Scalar, p *ristretto.Point) *ristretto.Scalar {
	point := multiscalarMul(
		[]*ristretto.Scalar{s, e},
		[]*ristretto.Point{basePoint(), p},
	)
	return hashScalar(m, point.Bytes())
}

type chameleonGroup struct {
	e, s *ristretto.Scalar
	p    *ristretto.Point
}

func multiChameleonHash(m []byte, groups []chameleonGroup) *ristretto.Scalar {
	parts := make([][]byte, 0, len(groups)+1)
	parts = append(parts, m)
	for _, g := range groups {
		point := multiscalarMul(
			[]*ristretto.Scalar{g.s, g.e},
			[]*ristretto.Point{basePoint(), g.p},
		)
		parts = append(parts, point.Bytes())
	}
	return hashScalar(parts...)
}

// borromeanM binds the signed message to every ring member.
func borromeanM(rings *[proofDigits][4]ristretto.Point, msg []byte) []byte {
	parts := make([][]byte, 0, proofDigits*4+1)
	for i := range rings {
		for j := range rings[i] {
			parts = append(parts, rings[i][j].Bytes())
		}
	}
	parts = append(parts, msg)
	m := hashBytes(parts...)
	return m[:]
}

// borromeanSign produces a borromean ring signature over the digit
// rings, holding the secret key sk[i] at index indices[i] of ring i.
func borromeanSign(rings *[proofDigits][4]ristretto.Point, sk []*ristretto.Scalar, indices [proofDigits]int, msg []byte) (ristretto.Scalar, [proofDigits][4]ristretto.Scalar) {
	m := borromeanM(rings, msg)

	var s [proofDigits][4]ristretto.Scalar
	for i := 0; i < proofDigits; i++ {
		for j := 0; j < 4; j++ {
			s[i][j] = *RandomScalar()
		}
	}

	var eStart [proofDigits]ristretto.Scalar
	for i := 0; i < proofDigits; i++ {
		eStart[i] = *RandomScalar()
	}

	// Walk each ring from its secret index to the last member.
	groups := make([]chameleonGroup, 0, proofDigits)
	for i := 0; i < proofDigits; i++ {
		var eIJ ristretto.Scalar
		eIJ.Set(&eStart[i])
		for j := indices[i]; j < 3; j++ {
			eIJ.Set(chameleonHash(m, &eIJ, &s[i][j], &rings[i][j]))
		}
		var e ristretto.Scalar
		e.Set(&eIJ)
		groups = append(groups, chameleonGroup{e: &e, s: &s[i][3], p: &rings[i][3]})
	}
	e0 := multiChameleonHash(m, groups)

	// Finish each ring from e0 back up to the secret index, then tie
	// it with the secret key.
	for i := 0; i < proofDigits; i++ {
		var eIJ ristretto.Scalar
		eIJ.Set(e0)
		for j := 0; j < indices[i]; j++ {
			eIJ.Set(chameleonHash(m, &eIJ, &s[i][j], &rings[i][j]))
		}
		var tie ristretto.Scalar
		tie.Sub(&eStart[i], &eIJ)
		tie.Mul(sk[i], &tie)
		s[i][indices[i]].Add(&s[i][indices[i]], &tie)
		wipeScalar(&tie)
	}

	var out ristretto.Scalar
	out.Set(e0)
	return out, s
}

func borromeanVerify(rings *[proofDigits][4]ristretto.Point, e0 *ristretto.Scalar, s *[proofDigits][4]ristretto.Scalar, msg []byte) error {
	m := borromeanM(rings, msg)

	groups := make([]chameleonGroup, 0, proofDigits)
	for i := 0; i < proofDigits; i++ {
		var eIJ ristretto.Scalar
		eIJ.Set(e0)
		for j := 0; j < 3; j++ {
			eIJ.Set(chameleonHash(m, &eIJ, &s[i][j], &rings[i][j]))
		}
		var e ristretto.Scalar
		e.Set(&eIJ)
		groups = append(groups, chameleonGroup{e: &e, s: &s[i][3], p: &rings[i][3]})
	}
	if !multiChameleonHash(m, groups).Equals(e0) {
		return ErrInvalidProof
	}
	return nil
}

// BorromeanRangeProof proves a committed value lies in [0, 2^BitRange)
// with one digit commitment and one signature ring per base-4 digit.
type BorromeanRangeProof struct {
	CI [proofDigits]Commitment
	E0 ristretto.Scalar
	S  [proofDigits][4]ristretto.Scalar
}

// ProveBorromean creates a borromean rangeproof for value under the
// given blinding factor, returning the commitment it proves.
func ProveBorromean(value uint64, blinding *ristretto.Scalar) (Commitment, *BorromeanRangeProof, error) {
	digits := quaternary(value)
	positive, negative := borromeanHTable()

	var rTotal ristretto.Scalar
	rTotal.SetZero()
	r := make([]*ristretto.Scalar, proofDigits)
	var rings [proofDigits][4]ristretto.Point
	var c [proofDigits]ristretto.Point

	for i := 0; i < proofDigits; i++ {
		var rI ristretto.Scalar
		if i == proofDigits-1 {
			// The blindings of all digit commitments must sum to the
			// full blinding.
			rI.Sub(blinding, &rTotal)
		} else {
			rI.Set(RandomScalar())
			rTotal.Add(&rTotal, &rI)
		}
		r[i] = &rI

		// c0 commits to digit 0, cx to the actual digit.
		var c0, cx ristretto.Point
		c0.ScalarMultBase(&rI)
		cx.Add(&c0, &positive[i][digits[i]])
		c[i].Set(&cx)

		rings[i][0].Set(&cx)
		for j := 1; j < 4; j++ {
			if j == digits[i] {
				rings[i][j].Set(&c0)
			} else {
				rings[i][j].Add(&negative[i][j], &cx)
			}
		}
	}

	var total ristretto.Point
	total.SetZero()
	proof := &BorromeanRangeProof{}
	for i := 0; i < proofDigits; i++ {
		total.Add(&total, &c[i])
		proof.CI[i] = CommitmentFromPoint(&c[i])
	}
	commitment := CommitmentFromPoint(&total)

	var indices [proofDigits]int
	copy(indices[:], digits[:])
	proof.E0, proof.S = borromeanSign(&rings, r, indices, commitment.Bytes())
	for i := range r {
		wipeScalar(r[i])
	}
	wipeScalar(&rTotal)
	return commitment, proof, nil
}

// VerifyBorromean checks a borromean rangeproof against its
// commitment.
func VerifyBorromean(commitment Commitment, proof *BorromeanRangeProof) error {
	// The digit commitments must sum to the full commitment.
	var total ristretto.Point
	total.SetZero()
	for i := range proof.CI {
		total.Add(&total, proof.CI[i].Point())
	}
	if !commitment.Equals(CommitmentFromPoint(&total)) {
		return ErrInvalidProof
	}

	_, negative := borromeanHTable()
	var rings [proofDigits][4]ristretto.Point
	for i := 0; i < proofDigits; i++ {
		cI := proof.CI[i].Point()
		rings[i][0].Set(cI)
		for j := 1; j < 4; j++ {
			rings[i][j].Add(&negative[i][j], cI)
		}
	}
	return borromeanVerify(&rings, &proof.E0, &proof.S, commitment.Bytes())
}
