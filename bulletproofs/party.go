package bulletproofs

import (
	"errors"
	"fmt"

	"github.com/bwesterb/go-ristretto"
)

// The prover is structured as a dealer coordinating one party per
// aggregated value, mirroring the multi-party protocol the scheme was
// designed around. Locally the parties all live in one process, but the
// state-machine shape keeps each proving phase explicit.

type partyAwaitingPosition struct {
	bpGens    *BulletproofGens
	pcGens    *PedersenGens
	n         int64
	value     uint64
	vBlinding *ristretto.Scalar
	v         *ristretto.Point
}

func newParty(bg *BulletproofGens, pg *PedersenGens, value uint64, blinding *ristretto.Scalar, n int64) *partyAwaitingPosition {
	switch n {
	case 8, 16, 32, 64:
	default:
		panic(fmt.Errorf("bulletproofs: invalid bitsize %d", n))
	}
	if bg.GensCapacity < n {
		panic(fmt.Errorf("bulletproofs: generator capacity %d below bitsize %d", bg.GensCapacity, n))
	}

	v := pg.Commit(scalarFromUint64(value), blinding)

	return &partyAwaitingPosition{
		bpGens:    bg,
		pcGens:    pg,
		n:         n,
		value:     value,
		vBlinding: blinding,
		v:         v,
	}
}

type partyAwaitingBitChallenge struct {
	n         int64
	value     uint64
	vBlinding *ristretto.Scalar
	j         int
	pcGens    *PedersenGens
	aBlinding *ristretto.Scalar
	sBlinding *ristretto.Scalar
	sL        []*ristretto.Scalar
	sR        []*ristretto.Scalar
}

type bitCommitment struct {
	vJ *ristretto.Point
	aJ *ristretto.Point
	sJ *ristretto.Point
}

type bitChallenge struct {
	y, z *ristretto.Scalar
}

func (p *partyAwaitingPosition) assignPosition(j int) (*partyAwaitingBitChallenge, *bitCommitment, error) {
	if p.bpGens.PartyCapacity <= int64(j) {
		return nil, nil, fmt.Errorf("bulletproofs: party index %d exceeds capacity %d", j, p.bpGens.PartyCapacity)
	}
	share := p.bpGens.shareOf(j)

	var aBlinding ristretto.Scalar
	aBlinding.Rand()
	var A ristretto.Point
	A.ScalarMult(p.pcGens.BBlinding, &aBlinding)

	// Bit i contributes a_L[i]*G[i] + a_R[i]*H[i], which collapses
	// to G[i] when the bit is set and -H[i] when it is clear.
	gs := share.G(p.n)
	hs := share.H(p.n)
	for i := range gs {
		var point ristretto.Point
		point.Neg(hs[i])
		if (p.value>>i)&1 == 1 {
			point = *gs[i]
		}
		A.Add(&A, &point)
	}

	var sBlinding ristretto.Scalar
	sBlinding.Rand()

	sL := make([]*ristretto.Scalar, p.n)
	sR := make([]*ristretto.Scalar, p.n)
	for i := int64(0); i < p.n; i++ {
		var s1, s2 ristretto.Scalar
		sL[i] = s1.Rand()
		sR[i] = s2.Rand()
	}

	// S = <s_L, G> + <s_R, H> + s_blinding * B_blinding
	scalars := append([]*ristretto.Scalar{&sBlinding}, sL...)
	scalars = append(scalars, sR...)
	points := append([]*ristretto.Point{p.pcGens.BBlinding}, gs...)
	points = append(points, hs...)
	S := multiscalarMul(scalars, points)

	commitment := &bitCommitment{vJ: p.v, aJ: &A, sJ: S}

	next := &partyAwaitingBitChallenge{
		n:         p.n,
		value:     p.value,
		vBlinding: p.vBlinding,
		pcGens:    p.pcGens,
		j:         j,
		aBlinding: &aBlinding,
		sBlinding: &sBlinding,
		sL:        sL,
		sR:        sR,
	}
	return next, commitment, nil
}

type partyAwaitingPolyChallenge struct {
	offsetZZ   *ristretto.Scalar
	lPoly      *vecPoly1
	rPoly      *vecPoly1
	tPoly      *poly2
	vBlinding  *ristretto.Scalar
	aBlinding  *ristretto.Scalar
	sBlinding  *ristretto.Scalar
	t1Blinding *ristretto.Scalar
	t2Blinding *ristretto.Scalar
}

type polyCommitment struct {
	t1J *ristretto.Point
	t2J *ristretto.Point
}

type polyChallenge struct {
	x *ristretto.Scalar
}

func (p *partyAwaitingBitChallenge) applyChallenge(vc *bitChallenge) (*partyAwaitingPolyChallenge, *polyCommitment) {
	offsetY := scalarExpVartime(vc.y, uint64(int64(p.j)*p.n))
	offsetZ := scalarExpVartime(vc.z, uint64(p.j))

	lPoly := zeroVecPoly1(p.n)
	rPoly := zeroVecPoly1(p.n)

	var offsetZZ ristretto.Scalar
	offsetZZ.Mul(vc.z, vc.z)
	offsetZZ.Mul(&offsetZZ, offsetZ)

	expY := offsetY
	var exp2 ristretto.Scalar
	exp2.SetOne()

	for i := int64(0); i < p.n; i++ {
		aLi := scalarFromUint64((p.value >> i) & 1)
		var one, aRi ristretto.Scalar
		one.SetOne()
		aRi.Sub(aLi, &one)

		lPoly.As[i].Sub(aLi, vc.z)
		lPoly.Bs[i] = p.sL[i]

		var tmp1, tmp2 ristretto.Scalar
		tmp1.Add(&aRi, vc.z)
		tmp1.Mul(expY, &tmp1)
		tmp2.Mul(&offsetZZ, &exp2)
		rPoly.As[i].Add(&tmp1, &tmp2)
		rPoly.Bs[i].Mul(expY, p.sR[i])

		expY.Mul(expY, vc.y)
		exp2.Add(&exp2, &exp2)
	}

	tPoly := lPoly.InnerProduct(rPoly)

	var t1Blinding, t2Blinding ristretto.Scalar
	t1Blinding.Rand()
	t2Blinding.Rand()

	commitment := &polyCommitment{
		t1J: p.pcGens.Commit(tPoly.B, &t1Blinding),
		t2J: p.pcGens.Commit(tPoly.C, &t2Blinding),
	}

	next := &partyAwaitingPolyChallenge{
		offsetZZ:   &offsetZZ,
		lPoly:      lPoly,
		rPoly:      rPoly,
		tPoly:      tPoly,
		vBlinding:  p.vBlinding,
		aBlinding:  p.aBlinding,
		sBlinding:  p.sBlinding,
		t1Blinding: &t1Blinding,
		t2Blinding: &t2Blinding,
	}
	return next, commitment
}

type proofShare struct {
	tX         *ristretto.Scalar
	tXBlinding *ristretto.Scalar
	eBlinding  *ristretto.Scalar
	lVec       []*ristretto.Scalar
	rVec       []*ristretto.Scalar
}

func (p *partyAwaitingPolyChallenge) applyChallenge(pc *polyChallenge) (*proofShare, error) {
	var zero ristretto.Scalar
	zero.SetZero()
	if zero.Equals(pc.x) {
		return nil, errors.New("bulletproofs: dealer issued a zero challenge")
	}

	var a ristretto.Scalar
	a.Mul(p.offsetZZ, p.vBlinding)
	tBlindingPoly := poly2{A: &a, B: p.t1Blinding, C: p.t2Blinding}

	var eBlinding ristretto.Scalar
	eBlinding.Mul(p.sBlinding, pc.x)
	eBlinding.Add(p.aBlinding, &eBlinding)

	return &proofShare{
		tX:         p.tPoly.Eval(pc.x),
		tXBlinding: tBlindingPoly.Eval(pc.x),
		eBlinding:  &eBlinding,
		lVec:       p.lPoly.Eval(pc.x),
		rVec:       p.rPoly.Eval(pc.x),
	}, nil
}
