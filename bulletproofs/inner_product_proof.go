package bulletproofs

import (
	"fmt"
	"math/bits"

	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"
)

// InnerProductProof is the recursive argument that <a, b> = c with
// respect to the G and H generator vectors, halving the vectors at
// every round.
type InnerProductProof struct {
	LVec []*ristretto.Point
	RVec []*ristretto.Point
	A, B *ristretto.Scalar
}

func createInnerProductProof(transcript *merlin.Transcript, q *ristretto.Point, gFactors, hFactors []*ristretto.Scalar, gVec, hVec []*ristretto.Point, aVec, bVec []*ristretto.Scalar) *InnerProductProof {
	n := len(gVec)
	if len(hVec) != n || len(aVec) != n || len(bVec) != n || len(gFactors) != n || len(hFactors) != n {
		panic(fmt.Sprintf("bulletproofs: inner product input vectors %d, %d, %d, %d, %d, %d",
			len(gVec), len(hVec), len(aVec), len(bVec), len(gFactors), len(hFactors)))
	}
	if bits.OnesCount64(uint64(n)) > 1 {
		panic(fmt.Sprintf("bulletproofs: inner product size %d is not a power of two", n))
	}

	G, H, a, b := gVec, hVec, aVec, bVec

	innerproductDomainSep(uint64(n), transcript)

	var lVec, rVec []*ristretto.Point

	// The first round folds the g and h factors into the generators,
	// so it is unrolled from the loop below.
	if n != 1 {
		n = n / 2
		aL, aR := a[:n], a[n:]
		bL, bR := b[:n], b[n:]
		gL, gR := G[:n], G[n:]
		hL, hR := H[:n], H[n:]

		cL := innerProduct(aL, bR)
		cR := innerProduct(aR, bL)

		scalarsL := make([]*ristretto.Scalar, 0, 2*n+1)
		for i := range aL {
			var r ristretto.Scalar
			scalarsL = append(scalarsL, r.Mul(aL[i], gFactors[n+i]))
		}
		for i := range bR {
			var r ristretto.Scalar
			scalarsL = append(scalarsL, r.Mul(bR[i], hFactors[i]))
		}
		scalarsL = append(scalarsL, cL)
		pointsL := make([]*ristretto.Point, 0, 2*n+1)
		pointsL = append(pointsL, gR...)
		pointsL = append(pointsL, hL...)
		pointsL = append(pointsL, q)
		L := multiscalarMul(scalarsL, pointsL)

		scalarsR := make([]*ristretto.Scalar, 0, 2*n+1)
		for i := range aR {
			var r ristretto.Scalar
			scalarsR = append(scalarsR, r.Mul(aR[i], gFactors[i]))
		}
		for i := range bL {
			var r ristretto.Scalar
			scalarsR = append(scalarsR, r.Mul(bL[i], hFactors[n+i]))
		}
		scalarsR = append(scalarsR, cR)
		pointsR := make([]*ristretto.Point, 0, 2*n+1)
		pointsR = append(pointsR, gL...)
		pointsR = append(pointsR, hR...)
		pointsR = append(pointsR, q)
		R := multiscalarMul(scalarsR, pointsR)

		lVec = append(lVec, L)
		rVec = append(rVec, R)
		appendPoint("L", L, transcript)
		appendPoint("R", R, transcript)

		u := challengeScalar("u", transcript)
		var uInv ristretto.Scalar
		uInv.Inverse(u)

		for i := 0; i < n; i++ {
			var r1, r2, r3, r4 ristretto.Scalar
			aL[i].Add(r1.Mul(aL[i], u), r2.Mul(&uInv, aR[i]))
			bL[i].Add(r3.Mul(bL[i], &uInv), r4.Mul(u, bR[i]))
			var f1, f2, f3, f4 ristretto.Scalar
			f1.Mul(&uInv, gFactors[i])
			f2.Mul(u, gFactors[n+i])
			gL[i] = multiscalarMul([]*ristretto.Scalar{&f1, &f2}, []*ristretto.Point{gL[i], gR[i]})
			f3.Mul(u, hFactors[i])
			f4.Mul(&uInv, hFactors[n+i])
			hL[i] = multiscalarMul([]*ristretto.Scalar{&f3, &f4}, []*ristretto.Point{hL[i], hR[i]})
		}

		a, b, G, H = aL, bL, gL, hL
	}

	for n != 1 {
		n = n / 2
		aL, aR := a[:n], a[n:]
		bL, bR := b[:n], b[n:]
		gL, gR := G[:n], G[n:]
		hL, hR := H[:n], H[n:]

		cL := innerProduct(aL, bR)
		cR := innerProduct(aR, bL)

		scalarsL := make([]*ristretto.Scalar, 0, 2*n+1)
		scalarsL = append(scalarsL, aL...)
		scalarsL = append(scalarsL, bR...)
		scalarsL = append(scalarsL, cL)
		pointsL := make([]*ristretto.Point, 0, 2*n+1)
		pointsL = append(pointsL, gR...)
		pointsL = append(pointsL, hL...)
		pointsL = append(pointsL, q)
		L := multiscalarMul(scalarsL, pointsL)

		scalarsR := make([]*ristretto.Scalar, 0, 2*n+1)
		scalarsR = append(scalarsR, aR...)
		scalarsR = append(scalarsR, bL...)
		scalarsR = append(scalarsR, cR)
		pointsR := make([]*ristretto.Point, 0, 2*n+1)
		pointsR = append(pointsR, gL...)
		pointsR = append(pointsR, hR...)
		pointsR = append(pointsR, q)
		R := multiscalarMul(scalarsR, pointsR)

		lVec = append(lVec, L)
		rVec = append(rVec, R)
		appendPoint("L", L, transcript)
		appendPoint("R", R, transcript)

		u := challengeScalar("u", transcript)
		var uInv ristretto.Scalar
		uInv.Inverse(u)

		for i := 0; i < n; i++ {
			var r1, r2, r3, r4 ristretto.Scalar
			aL[i].Add(r1.Mul(aL[i], u), r2.Mul(&uInv, aR[i]))
			bL[i].Add(r3.Mul(bL[i], &uInv), r4.Mul(u, bR[i]))
			gL[i] = multiscalarMul([]*ristretto.Scalar{&uInv, u}, []*ristretto.Point{gL[i], gR[i]})
			hL[i] = multiscalarMul([]*ristretto.Scalar{u, &uInv}, []*ristretto.Point{hL[i], hR[i]})
		}

		a, b, G, H = aL, bL, gL, hL
	}

	return &InnerProductProof{
		LVec: lVec,
		RVec: rVec,
		A:    a[0],
		B:    b[0],
	}
}

// verificationScalars replays the proof's challenges against the
// transcript and returns, per round, the squared challenges and their
// inverses, along with the s vector used to unroll the folded
// generators. n must match the proof's embedded round count exactly.
func (p *InnerProductProof) verificationScalars(n int64, transcript *merlin.Transcript) (uSq, uInvSq, s []*ristretto.Scalar, err error) {
	lgN := len(p.LVec)
	if lgN >= 32 || len(p.RVec) != lgN {
		return nil, nil, nil, ErrMalformed
	}
	if n != int64(1)<<lgN {
		return nil, nil, nil, ErrMalformed
	}

	innerproductDomainSep(uint64(n), transcript)

	challenges := make([]*ristretto.Scalar, lgN)
	for i := 0; i < lgN; i++ {
		appendPoint("L", p.LVec[i], transcript)
		appendPoint("R", p.RVec[i], transcript)
		challenges[i] = challengeScalar("u", transcript)
	}

	uSq = make([]*ristretto.Scalar, lgN)
	uInvSq = make([]*ristretto.Scalar, lgN)
	var allInv ristretto.Scalar
	allInv.SetOne()
	for i, u := range challenges {
		var inv, sq, invSq ristretto.Scalar
		inv.Inverse(u)
		sq.Mul(u, u)
		invSq.Mul(&inv, &inv)
		uSq[i] = &sq
		uInvSq[i] = &invSq
		allInv.Mul(&allInv, &inv)
	}

	s = make([]*ristretto.Scalar, n)
	s[0] = cloneScalar(&allInv)
	for i := int64(1); i < n; i++ {
		lgI := 63 - bits.LeadingZeros64(uint64(i))
		k := int64(1) << lgI
		var r ristretto.Scalar
		s[i] = r.Mul(s[i-k], uSq[(lgN-1)-lgI])
	}
	return uSq, uInvSq, s, nil
}

func (p *InnerProductProof) toBytes() []byte {
	var buf []byte
	for i := range p.LVec {
		buf = append(buf, p.LVec[i].Bytes()...)
		buf = append(buf, p.RVec[i].Bytes()...)
	}
	buf = append(buf, p.A.Bytes()...)
	buf = append(buf, p.B.Bytes()...)
	return buf
}

func innerProductProofFromBytes(data []byte) (*InnerProductProof, error) {
	if len(data) < 64 || len(data)%64 != 0 {
		return nil, ErrMalformed
	}
	rounds := len(data)/64 - 1

	p := &InnerProductProof{}
	for i := 0; i < rounds; i++ {
		l, err := pointFromBytes(data[i*64 : i*64+32])
		if err != nil {
			return nil, err
		}
		r, err := pointFromBytes(data[i*64+32 : i*64+64])
		if err != nil {
			return nil, err
		}
		p.LVec = append(p.LVec, l)
		p.RVec = append(p.RVec, r)
	}
	var err error
	p.A, err = scalarFromBytes(data[rounds*64 : rounds*64+32])
	if err != nil {
		return nil, err
	}
	p.B, err = scalarFromBytes(data[rounds*64+32:])
	if err != nil {
		return nil, err
	}
	return p, nil
}
