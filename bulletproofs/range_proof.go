// Package bulletproofs implements the aggregated Bulletproofs range
// proof over the ristretto255 group: a dealer/party prover, the
// recursive inner-product argument, and single and batched
// verification by one multiexponentiation.
package bulletproofs

import (
	"fmt"

	"github.com/bwesterb/go-ristretto"
)

// RangeProof proves that each of m committed values fits in n bits.
// The proof is bound to the commitments, in order, through the
// transcript; verifying against a different set or ordering fails.
type RangeProof struct {
	A, S       *ristretto.Point
	T1, T2     *ristretto.Point
	TX         *ristretto.Scalar
	TXBlinding *ristretto.Scalar
	EBlinding  *ristretto.Scalar
	IPP        *InnerProductProof
}

// Prove creates an aggregated n-bit range proof for the given values
// and blinding factors. len(values) must be a power of two within the
// generators' party capacity. Returns the proof and the value
// commitments in order.
func Prove(bg *BulletproofGens, pg *PedersenGens, label string, values []uint64, blindings []*ristretto.Scalar, n int64) (*RangeProof, []*ristretto.Point, error) {
	if len(values) != len(blindings) {
		return nil, nil, fmt.Errorf("bulletproofs: %d values with %d blindings", len(values), len(blindings))
	}

	transcript := newTranscript(label)
	dealer1 := newDealer(bg, pg, transcript, n, int64(len(values)))

	parties := make([]*partyAwaitingPosition, len(values))
	for i := range values {
		parties[i] = newParty(bg, pg, values[i], blindings[i], n)
	}

	partiesA := make([]*partyAwaitingBitChallenge, len(parties))
	bitCommitments := make([]*bitCommitment, len(parties))
	var err error
	for j := range parties {
		partiesA[j], bitCommitments[j], err = parties[j].assignPosition(j)
		if err != nil {
			return nil, nil, err
		}
	}
	commitments := make([]*ristretto.Point, len(bitCommitments))
	for i := range bitCommitments {
		commitments[i] = bitCommitments[i].vJ
	}

	dealer2, bitCh, err := dealer1.receiveBitCommitments(bitCommitments)
	if err != nil {
		return nil, nil, err
	}

	partiesB := make([]*partyAwaitingPolyChallenge, len(partiesA))
	polyCommitments := make([]*polyCommitment, len(partiesA))
	for i := range partiesA {
		partiesB[i], polyCommitments[i] = partiesA[i].applyChallenge(bitCh)
	}

	dealer3, polyCh := dealer2.receivePolyCommitments(polyCommitments)

	shares := make([]*proofShare, len(partiesB))
	for i := range partiesB {
		shares[i], err = partiesB[i].applyChallenge(polyCh)
		if err != nil {
			return nil, nil, err
		}
	}

	return dealer3.assembleShares(shares), commitments, nil
}

// Verify checks the proof against the ordered commitments.
func (p *RangeProof) Verify(bg *BulletproofGens, pg *PedersenGens, label string, commitments []*ristretto.Point, n int64) error {
	return VerifyBatch(bg, pg, label, []*RangeProof{p}, [][]*ristretto.Point{commitments}, n)
}

// VerifyBatch checks many proofs at once. Each proof's verification
// equation is scaled by a fresh random scalar weight and the weighted
// equations are summed into a single multiexponentiation that must
// equal the group identity. An invalid proof cannot be masked by a
// valid one because its weight is unpredictable; the aggregate check
// cannot, however, say which proof failed.
func VerifyBatch(bg *BulletproofGens, pg *PedersenGens, label string, proofs []*RangeProof, commitments [][]*ristretto.Point, n int64) error {
	if len(proofs) != len(commitments) {
		return ErrMalformed
	}
	if len(proofs) == 0 {
		return nil
	}

	if n <= 0 {
		return ErrMalformed
	}
	maxNM := int64(0)
	for _, group := range commitments {
		nm := n * int64(len(group))
		if nm > maxNM {
			maxNM = nm
		}
	}
	if n > bg.GensCapacity || maxNM/n > bg.PartyCapacity {
		return ErrMalformed
	}

	acc := newMegaCheck(maxNM)
	for i := range proofs {
		var weight ristretto.Scalar
		weight.Rand()
		if err := proofs[i].fold(acc, bg, pg, label, commitments[i], n, &weight); err != nil {
			return err
		}
	}

	// The folded scalars index generators party-major with n per party,
	// matching the layout every proof in the batch was built over.
	gIter := bg.G(n, maxNM/n)
	hIter := bg.H(n, maxNM/n)
	scalars := []*ristretto.Scalar{&acc.bScalar, &acc.bBlindingScalar}
	points := []*ristretto.Point{pg.B, pg.BBlinding}
	for i := int64(0); i < maxNM; i++ {
		scalars = append(scalars, acc.gScalars[i], acc.hScalars[i])
		points = append(points, gIter.next(), hIter.next())
	}
	scalars = append(scalars, acc.dynScalars...)
	points = append(points, acc.dynPoints...)

	var zero ristretto.Point
	zero.SetZero()
	if !multiscalarMul(scalars, points).Equals(&zero) {
		return ErrInvalid
	}
	return nil
}

// megaCheck accumulates the weighted verification equations of a
// batch. Scalars on the shared generators are summed; per-proof points
// carry their own scalar.
type megaCheck struct {
	bScalar         ristretto.Scalar
	bBlindingScalar ristretto.Scalar
	gScalars        []*ristretto.Scalar
	hScalars        []*ristretto.Scalar
	dynScalars      []*ristretto.Scalar
	dynPoints       []*ristretto.Point
}

func newMegaCheck(maxNM int64) *megaCheck {
	acc := &megaCheck{
		gScalars: make([]*ristretto.Scalar, maxNM),
		hScalars: make([]*ristretto.Scalar, maxNM),
	}
	for i := int64(0); i < maxNM; i++ {
		var g, h ristretto.Scalar
		acc.gScalars[i] = g.SetZero()
		acc.hScalars[i] = h.SetZero()
	}
	return acc
}

// fold replays the proof's transcript against the commitments and adds
// its verification equation, scaled by weight, to the accumulator.
func (p *RangeProof) fold(acc *megaCheck, bg *BulletproofGens, pg *PedersenGens, label string, commitments []*ristretto.Point, n int64, weight *ristretto.Scalar) error {
	m := int64(len(commitments))
	if m == 0 || m&(m-1) != 0 {
		return ErrMalformed
	}
	nm := n * m

	transcript := newTranscript(label)
	rangeproofDomainSep(n, m, transcript)
	for _, v := range commitments {
		appendPoint("V", v, transcript)
	}
	appendPoint("A", p.A, transcript)
	appendPoint("S", p.S, transcript)
	y := challengeScalar("y", transcript)
	z := challengeScalar("z", transcript)
	appendPoint("T_1", p.T1, transcript)
	appendPoint("T_2", p.T2, transcript)
	x := challengeScalar("x", transcript)
	appendScalar("t_x", p.TX, transcript)
	appendScalar("t_x_blinding", p.TXBlinding, transcript)
	appendScalar("e_blinding", p.EBlinding, transcript)
	w := challengeScalar("w", transcript)

	// Rejects any proof whose embedded round count does not match the
	// generator count implied by the supplied commitments.
	uSq, uInvSq, s, err := p.IPP.verificationScalars(nm, transcript)
	if err != nil {
		return err
	}

	// c joins the t(x) check and the inner-product check; it only has
	// to be unpredictable to the prover, so it is drawn at random
	// rather than from the transcript.
	var c ristretto.Scalar
	c.Rand()

	var zz ristretto.Scalar
	zz.Mul(z, z)
	var minusZ ristretto.Scalar
	minusZ.Neg(z)

	a, b := p.IPP.A, p.IPP.B

	// G_i: -z - a*s_i
	for i := int64(0); i < nm; i++ {
		var g ristretto.Scalar
		g.Mul(a, s[i])
		g.Sub(&minusZ, &g)
		g.Mul(&g, weight)
		acc.gScalars[i].Add(acc.gScalars[i], &g)
	}

	// H_i: z + y^-i * (zz * z^j * 2^bit - b / s_i)
	var yInv ristretto.Scalar
	yInv.Inverse(y)
	yInvExp := newScalarExp(&yInv)
	zExp := newScalarExp(z)
	var zj ristretto.Scalar
	for i := int64(0); i < nm; i++ {
		bit := i % n
		if bit == 0 {
			zj = *zExp.Next()
		}
		var zAnd2, h ristretto.Scalar
		zAnd2.Mul(&zz, &zj)
		zAnd2.Mul(&zAnd2, scalarExpVartime(scalarFromUint64(2), uint64(bit)))
		h.Mul(b, s[nm-1-i])
		h.Sub(&zAnd2, &h)
		h.Mul(yInvExp.Next(), &h)
		h.Add(z, &h)
		h.Mul(&h, weight)
		acc.hScalars[i].Add(acc.hScalars[i], &h)
	}

	// B: w*(t_x - a*b) + c*(delta(n, m) - t_x)
	var bScalar, tmp ristretto.Scalar
	tmp.Mul(a, b)
	bScalar.Sub(p.TX, &tmp)
	bScalar.Mul(w, &bScalar)
	tmp.Sub(delta(n, m, y, z), p.TX)
	tmp.Mul(&c, &tmp)
	bScalar.Add(&bScalar, &tmp)
	bScalar.Mul(&bScalar, weight)
	acc.bScalar.Add(&acc.bScalar, &bScalar)

	// B_blinding: -e_blinding - c*t_x_blinding
	var bBlind ristretto.Scalar
	bBlind.Mul(&c, p.TXBlinding)
	bBlind.Add(p.EBlinding, &bBlind)
	bBlind.Neg(&bBlind)
	bBlind.Mul(&bBlind, weight)
	acc.bBlindingScalar.Add(&acc.bBlindingScalar, &bBlind)

	addDyn := func(scalar *ristretto.Scalar, point *ristretto.Point) {
		var ws ristretto.Scalar
		ws.Mul(scalar, weight)
		acc.dynScalars = append(acc.dynScalars, &ws)
		acc.dynPoints = append(acc.dynPoints, point)
	}

	var one ristretto.Scalar
	one.SetOne()
	addDyn(&one, p.A)
	addDyn(x, p.S)
	var cx, cxx ristretto.Scalar
	cx.Mul(&c, x)
	cxx.Mul(&cx, x)
	addDyn(&cx, p.T1)
	addDyn(&cxx, p.T2)
	for i := range uSq {
		addDyn(uSq[i], p.IPP.LVec[i])
		addDyn(uInvSq[i], p.IPP.RVec[i])
	}
	vExp := newScalarExp(z)
	for j := int64(0); j < m; j++ {
		var v ristretto.Scalar
		v.Mul(&c, &zz)
		v.Mul(&v, vExp.Next())
		addDyn(&v, commitments[j])
	}

	return nil
}

// delta(n, m) = (z - z^2) * sum(y^i, i < nm) - z^3 * sum(2^i, i < n) * sum(z^j, j < m)
func delta(n, m int64, y, z *ristretto.Scalar) *ristretto.Scalar {
	sumY := sumOfPowers(y, uint64(n*m))
	sumTwo := sumOfPowers(scalarFromUint64(2), uint64(n))
	sumZ := sumOfPowers(z, uint64(m))

	var zz, left, right ristretto.Scalar
	zz.Mul(z, z)
	left.Sub(z, &zz)
	left.Mul(&left, sumY)
	right.Mul(&zz, z)
	right.Mul(&right, sumTwo)
	right.Mul(&right, sumZ)
	return left.Sub(&left, &right)
}

// ToBytes serializes the proof: A, S, T1, T2, t_x, t_x_blinding,
// e_blinding, then the inner-product rounds and final scalars.
func (p *RangeProof) ToBytes() []byte {
	var buf []byte
	buf = append(buf, p.A.Bytes()...)
	buf = append(buf, p.S.Bytes()...)
	buf = append(buf, p.T1.Bytes()...)
	buf = append(buf, p.T2.Bytes()...)
	buf = append(buf, p.TX.Bytes()...)
	buf = append(buf, p.TXBlinding.Bytes()...)
	buf = append(buf, p.EBlinding.Bytes()...)
	buf = append(buf, p.IPP.toBytes()...)
	return buf
}

// RangeProofFromBytes parses a proof produced by ToBytes, rejecting
// non-canonical point and scalar encodings.
func RangeProofFromBytes(data []byte) (*RangeProof, error) {
	const header = 7 * 32
	if len(data) < header+64 {
		return nil, ErrMalformed
	}

	p := &RangeProof{}
	var err error
	if p.A, err = pointFromBytes(data[0:32]); err != nil {
		return nil, err
	}
	if p.S, err = pointFromBytes(data[32:64]); err != nil {
		return nil, err
	}
	if p.T1, err = pointFromBytes(data[64:96]); err != nil {
		return nil, err
	}
	if p.T2, err = pointFromBytes(data[96:128]); err != nil {
		return nil, err
	}
	if p.TX, err = scalarFromBytes(data[128:160]); err != nil {
		return nil, err
	}
	if p.TXBlinding, err = scalarFromBytes(data[160:192]); err != nil {
		return nil, err
	}
	if p.EBlinding, err = scalarFromBytes(data[192:224]); err != nil {
		return nil, err
	}
	if p.IPP, err = innerProductProofFromBytes(data[224:]); err != nil {
		return nil, err
	}
	return p, nil
}
