package bulletproofs

import (
	"fmt"
	"math/bits"

	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"
)

type dealerAwaitingBitCommitments struct {
	bpGens     *BulletproofGens
	pcGens     *PedersenGens
	transcript *merlin.Transcript
	n, m       int64
}

func newDealer(bg *BulletproofGens, pg *PedersenGens, t *merlin.Transcript, n, m int64) *dealerAwaitingBitCommitments {
	switch n {
	case 8, 16, 32, 64:
	default:
		panic(fmt.Errorf("bulletproofs: invalid bitsize %d", n))
	}
	if bits.OnesCount64(uint64(m)) > 1 {
		panic(fmt.Errorf("bulletproofs: aggregation size %d is not a power of two", m))
	}
	if bg.GensCapacity < n {
		panic(fmt.Errorf("bulletproofs: generator capacity %d below bitsize %d", bg.GensCapacity, n))
	}
	if bg.PartyCapacity < m {
		panic(fmt.Errorf("bulletproofs: party capacity %d below aggregation size %d", bg.PartyCapacity, m))
	}

	rangeproofDomainSep(n, m, t)

	return &dealerAwaitingBitCommitments{
		bpGens:     bg,
		pcGens:     pg,
		transcript: t,
		n:          n,
		m:          m,
	}
}

type dealerAwaitingPolyCommitments struct {
	n, m         int64
	transcript   *merlin.Transcript
	bpGens       *BulletproofGens
	pcGens       *PedersenGens
	bitChallenge *bitChallenge
	a            *ristretto.Point
	s            *ristretto.Point
}

func (d *dealerAwaitingBitCommitments) receiveBitCommitments(commitments []*bitCommitment) (*dealerAwaitingPolyCommitments, *bitChallenge, error) {
	if int(d.m) != len(commitments) {
		return nil, nil, fmt.Errorf("bulletproofs: expected %d bit commitments, got %d", d.m, len(commitments))
	}

	var A, S ristretto.Point
	A.SetZero()
	S.SetZero()
	for i := range commitments {
		appendPoint("V", commitments[i].vJ, d.transcript)
		A.Add(&A, commitments[i].aJ)
		S.Add(&S, commitments[i].sJ)
	}
	appendPoint("A", &A, d.transcript)
	appendPoint("S", &S, d.transcript)

	challenge := &bitChallenge{
		y: challengeScalar("y", d.transcript),
		z: challengeScalar("z", d.transcript),
	}

	return &dealerAwaitingPolyCommitments{
		n:            d.n,
		m:            d.m,
		transcript:   d.transcript,
		bpGens:       d.bpGens,
		pcGens:       d.pcGens,
		bitChallenge: challenge,
		a:            &A,
		s:            &S,
	}, challenge, nil
}

type dealerAwaitingProofShares struct {
	n, m          int64
	transcript    *merlin.Transcript
	bpGens        *BulletproofGens
	pcGens        *PedersenGens
	bitChallenge  *bitChallenge
	polyChallenge *polyChallenge
	a, s          *ristretto.Point
	t1, t2        *ristretto.Point
}

func (d *dealerAwaitingPolyCommitments) receivePolyCommitments(commitments []*polyCommitment) (*dealerAwaitingProofShares, *polyChallenge) {
	if int(d.m) != len(commitments) {
		panic(fmt.Sprintf("bulletproofs: expected %d poly commitments, got %d", d.m, len(commitments)))
	}

	var T1, T2 ristretto.Point
	T1.SetZero()
	T2.SetZero()
	for i := range commitments {
		T1.Add(&T1, commitments[i].t1J)
		T2.Add(&T2, commitments[i].t2J)
	}
	appendPoint("T_1", &T1, d.transcript)
	appendPoint("T_2", &T2, d.transcript)

	challenge := &polyChallenge{x: challengeScalar("x", d.transcript)}

	return &dealerAwaitingProofShares{
		n:             d.n,
		m:             d.m,
		transcript:    d.transcript,
		bpGens:        d.bpGens,
		pcGens:        d.pcGens,
		bitChallenge:  d.bitChallenge,
		polyChallenge: challenge,
		a:             d.a,
		s:             d.s,
		t1:            &T1,
		t2:            &T2,
	}, challenge
}

func (ps *proofShare) checkSize(n int64) error {
	if len(ps.lVec) != int(n) || len(ps.rVec) != int(n) {
		return fmt.Errorf("bulletproofs: proof share vectors %d, %d for bitsize %d", len(ps.lVec), len(ps.rVec), n)
	}
	return nil
}

func (d *dealerAwaitingProofShares) assembleShares(shares []*proofShare) *RangeProof {
	if int(d.m) != len(shares) {
		panic(fmt.Sprintf("bulletproofs: expected %d proof shares, got %d", d.m, len(shares)))
	}
	for i, s := range shares {
		if err := s.checkSize(d.n); err != nil {
			panic(fmt.Sprintf("bulletproofs: malformed share %d: %v", i, err))
		}
	}

	var tX, tXBlinding, eBlinding ristretto.Scalar
	tX.SetZero()
	tXBlinding.SetZero()
	eBlinding.SetZero()
	for i := range shares {
		tX.Add(&tX, shares[i].tX)
		tXBlinding.Add(&tXBlinding, shares[i].tXBlinding)
		eBlinding.Add(&eBlinding, shares[i].eBlinding)
	}

	appendScalar("t_x", &tX, d.transcript)
	appendScalar("t_x_blinding", &tXBlinding, d.transcript)
	appendScalar("e_blinding", &eBlinding, d.transcript)

	w := challengeScalar("w", d.transcript)
	var q ristretto.Point
	q.ScalarMult(d.pcGens.B, w)

	gFactors := make([]*ristretto.Scalar, d.n*d.m)
	hFactors := make([]*ristretto.Scalar, d.n*d.m)
	var inverseY ristretto.Scalar
	inverseY.Inverse(d.bitChallenge.y)
	yInvExp := newScalarExp(&inverseY)
	for i := range gFactors {
		var one ristretto.Scalar
		gFactors[i] = one.SetOne()
		hFactors[i] = yInvExp.Next()
	}

	var lVec, rVec []*ristretto.Scalar
	for i := range shares {
		for j := range shares[i].lVec {
			lVec = append(lVec, cloneScalar(shares[i].lVec[j]))
		}
		for j := range shares[i].rVec {
			rVec = append(rVec, cloneScalar(shares[i].rVec[j]))
		}
	}

	gIter := d.bpGens.G(d.n, d.m)
	hIter := d.bpGens.H(d.n, d.m)
	total := len(gFactors)
	gVec := make([]*ristretto.Point, total)
	hVec := make([]*ristretto.Point, total)
	for i := 0; i < total; i++ {
		gVec[i] = clonePoint(gIter.next())
		hVec[i] = clonePoint(hIter.next())
	}

	ipp := createInnerProductProof(d.transcript, &q, gFactors, hFactors, gVec, hVec, lVec, rVec)

	return &RangeProof{
		A:          d.a,
		S:          d.s,
		T1:         d.t1,
		T2:         d.t2,
		TX:         &tX,
		TXBlinding: &tXBlinding,
		EBlinding:  &eBlinding,
		IPP:        ipp,
	}
}
