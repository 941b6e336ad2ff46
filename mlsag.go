package ringct

import (
	"github.com/bwesterb/go-ristretto"
)

// MLSAGSignature is a multilayered linkable spontaneous anonymous
// group signature over a ring of enotes. MLSAG is essentially
// obsolete; CLSAG signatures are smaller and about as fast.
type MLSAGSignature struct {
	KeyImage ristretto.Point
	E0       ristretto.Scalar
	SL       []ristretto.Scalar
	SC       []ristretto.Scalar
}

// mlsagMessage binds the message to the full ring, the pseudo-output,
// and the key image.
func mlsagMessage(ringL, ringC [][]byte, pseudoOut Commitment, keyImage *ristretto.Point, msg []byte) []byte {
	parts := make([][]byte, 0, 2*len(ringL)+3)
	parts = append(parts, msg)
	parts = append(parts, ringL...)
	parts = append(parts, ringC...)
	parts = append(parts, pseudoOut.Bytes(), keyImage.Bytes())
	m := hashBytes(parts...)
	return m[:]
}

func mlsagChallenge(m []byte, left, right, cI *ristretto.Point) *ristretto.Scalar {
	return domainHashScalar(domainMLSAGCommitment, m, left.Bytes(), right.Bytes(), cI.Bytes())
}

// SignMLSAG signs msg with an MLSAG over a sorted ring, spending the
// enote opened by keys. pseudoOutBlinding is the blinding factor of
// the returned pseudo-output commitment. The ring must be sorted;
// use SignMLSAGUnsorted to skip the check.
func SignMLSAG(ring Ring, keys *EnoteKeys, pseudoOutBlinding *ristretto.Scalar, msg []byte) (Commitment, *MLSAGSignature, error) {
	if !ring.IsSorted() {
		return Commitment{}, nil, ErrUnsortedRing
	}
	return signMLSAG(ring, keys, pseudoOutBlinding, msg)
}

// SignMLSAGUnsorted signs without the sorted-ring check. Signatures
// made this way verify only with VerifyMLSAGUnsorted against the ring
// in the exact same order.
func SignMLSAGUnsorted(ring Ring, keys *EnoteKeys, pseudoOutBlinding *ristretto.Scalar, msg []byte) (Commitment, *MLSAGSignature, error) {
	return signMLSAG(ring, keys, pseudoOutBlinding, msg)
}

func signMLSAG(ring Ring, keys *EnoteKeys, pseudoOutBlinding *ristretto.Scalar, msg []byte) (Commitment, *MLSAGSignature, error) {
	n := len(ring)
	if n == 0 {
		panic("ringct: empty ring")
	}

	var commitmentKey ristretto.Scalar
	commitmentKey.Sub(&keys.Blinding, pseudoOutBlinding)
	defer wipeScalar(&commitmentKey)

	pseudoOut := Commit(keys.Value, pseudoOutBlinding)
	ringL, encRingC := ring.encode()
	ringC := shiftCommitments(ring, pseudoOut)

	j, ok := findEnote(ring, keys)
	if !ok {
		return Commitment{}, nil, ErrNotInRing
	}

	kiPoints := keyImagePoints(ringL)
	var keyImage ristretto.Point
	keyImage.ScalarMult(kiPoints[j], &keys.Owner)

	m := mlsagMessage(ringL, encRingC, pseudoOut, &keyImage, msg)

	nonces := newNonceChain(&keys.Owner, pseudoOutBlinding, m)
	defer nonces.wipe()

	sL := make([]ristretto.Scalar, n)
	for i := 0; i < n; i++ {
		sL[i] = *nonces.next()
	}
	sC := make([]ristretto.Scalar, n)
	for i := 0; i < n; i++ {
		sC[i] = *nonces.next()
	}
	cStart := nonces.next()
	defer wipeScalar(cStart)

	var left, right, cI ristretto.Point
	left.ScalarMultBase(&sL[j])
	right.ScalarMult(kiPoints[j], &sL[j])
	var negCStart ristretto.Scalar
	negCStart.Neg(cStart)
	cI.Set(multiscalarMul(
		[]*ristretto.Scalar{&sC[j], &negCStart},
		[]*ristretto.Point{basePoint(), ringC[j]},
	))

	e := make([]ristretto.Scalar, n)
	i := j
	for {
		i = (i + 1) % n
		e[i] = *mlsagChallenge(m, &left, &right, &cI)
		if i == j {
			break
		}

		var negE ristretto.Scalar
		negE.Neg(&e[i])
		left.Set(multiscalarMul(
			[]*ristretto.Scalar{&sL[i], &e[i]},
			[]*ristretto.Point{basePoint(), &ring[i].Owner},
		))
		right.Set(multiscalarMul(
			[]*ristretto.Scalar{&sL[i], &e[i]},
			[]*ristretto.Point{kiPoints[i], &keyImage},
		))
		cI.Set(multiscalarMul(
			[]*ristretto.Scalar{&sC[i], &negE},
			[]*ristretto.Point{basePoint(), ringC[i]},
		))
	}

	// Close the ring at the real index.
	var adjust ristretto.Scalar
	adjust.Mul(&keys.Owner, &e[j])
	sL[j].Sub(&sL[j], &adjust)
	adjust.Sub(cStart, &e[j])
	adjust.Mul(&commitmentKey, &adjust)
	sC[j].Sub(&sC[j], &adjust)
	wipeScalar(&adjust)

	sig := &MLSAGSignature{SL: sL, SC: sC}
	sig.KeyImage.Set(&keyImage)
	sig.E0.Set(&e[0])
	return pseudoOut, sig, nil
}

// VerifyMLSAG checks an MLSAG signature against a sorted ring, the
// pseudo-output it was signed with, and the message.
func VerifyMLSAG(sig *MLSAGSignature, ring Ring, pseudoOut Commitment, msg []byte) error {
	if !ring.IsSorted() {
		return ErrUnsortedRing
	}
	return verifyMLSAG(sig, ring, pseudoOut, msg)
}

// VerifyMLSAGUnsorted checks a signature made over an unsorted ring.
// The ring must be in the exact order it was signed in.
func VerifyMLSAGUnsorted(sig *MLSAGSignature, ring Ring, pseudoOut Commitment, msg []byte) error {
	return verifyMLSAG(sig, ring, pseudoOut, msg)
}

func verifyMLSAG(sig *MLSAGSignature, ring Ring, pseudoOut Commitment, msg []byte) error {
	n := len(ring)
	if n == 0 || len(sig.SL) != n || len(sig.SC) != n {
		return ErrMalformedSignature
	}
	var identity ristretto.Point
	identity.SetZero()
	if sig.KeyImage.Equals(&identity) {
		return ErrMalformedSignature
	}

	ringL, encRingC := ring.encode()
	ringC := shiftCommitments(ring, pseudoOut)
	kiPoints := keyImagePoints(ringL)
	m := mlsagMessage(ringL, encRingC, pseudoOut, &sig.KeyImage, msg)

	var eI ristretto.Scalar
	eI.Set(&sig.E0)
	for i := 0; i < n; i++ {
		var negE ristretto.Scalar
		negE.Neg(&eI)
		left := multiscalarMul(
			[]*ristretto.Scalar{&sig.SL[i], &eI},
			[]*ristretto.Point{basePoint(), &ring[i].Owner},
		)
		right := multiscalarMul(
			[]*ristretto.Scalar{&sig.SL[i], &eI},
			[]*ristretto.Point{kiPoints[i], &sig.KeyImage},
		)
		cI := multiscalarMul(
			[]*ristretto.Scalar{&sig.SC[i], &negE},
			[]*ristretto.Point{basePoint(), ringC[i]},
		)
		eI.Set(mlsagChallenge(m, left, right, cI))
	}
	if !eI.Equals(&sig.E0) {
		return ErrInvalidSignature
	}
	return nil
}
