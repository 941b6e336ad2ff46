package ringct

import (
	"github.com/bwesterb/go-ristretto"
)

// CLSAGSignature is a concise linkable spontaneous anonymous group
// signature. It compresses the MLSAG matrix into a single response
// vector using two aggregation coefficients, producing strictly
// smaller signatures at the same security level.
type CLSAGSignature struct {
	KeyImage  ristretto.Point
	C0        ristretto.Scalar
	S         []ristretto.Scalar
	Auxiliary ristretto.Point
}

// clsagMessage binds the message to the full ring, the pseudo-output,
// the key image, and the auxiliary commitment-key image.
func clsagMessage(ringL, ringC [][]byte, pseudoOut Commitment, keyImage, auxiliary *ristretto.Point, msg []byte) []byte {
	parts := make([][]byte, 0, 2*len(ringL)+4)
	parts = append(parts, msg)
	parts = append(parts, ringL...)
	parts = append(parts, ringC...)
	parts = append(parts, pseudoOut.Bytes(), keyImage.Bytes(), auxiliary.Bytes())
	m := hashBytes(parts...)
	return m[:]
}

func clsagChallenge(m []byte, left, right *ristretto.Point) *ristretto.Scalar {
	return domainHashScalar(domainCLSAGCommitment, m, left.Bytes(), right.Bytes())
}

// clsagAggregate derives the two aggregation coefficients and the
// aggregated ring and right-hand keys.
func clsagAggregate(m []byte, ring Ring, ringC []*ristretto.Point, keyImage, auxiliary *ristretto.Point) (wLeft []*ristretto.Point, wRight *ristretto.Point, linkingAC, auxiliaryAC *ristretto.Scalar) {
	linkingAC = domainHashScalar(domainCLSAGLinking, m)
	auxiliaryAC = domainHashScalar(domainCLSAGAuxiliary, m)

	wLeft = make([]*ristretto.Point, len(ring))
	for i := range ring {
		wLeft[i] = multiscalarMul(
			[]*ristretto.Scalar{linkingAC, auxiliaryAC},
			[]*ristretto.Point{&ring[i].Owner, ringC[i]},
		)
	}
	wRight = multiscalarMul(
		[]*ristretto.Scalar{linkingAC, auxiliaryAC},
		[]*ristretto.Point{keyImage, auxiliary},
	)
	return wLeft, wRight, linkingAC, auxiliaryAC
}

// SignCLSAG signs msg with a CLSAG over a sorted ring, spending the
// enote opened by keys. pseudoOutBlinding is the blinding factor of
// the returned pseudo-output commitment. The ring must be sorted;
// use SignCLSAGUnsorted to skip the check.
func SignCLSAG(ring Ring, keys *EnoteKeys, pseudoOutBlinding *ristretto.Scalar, msg []byte) (Commitment, *CLSAGSignature, error) {
	if !ring.IsSorted() {
		return Commitment{}, nil, ErrUnsortedRing
	}
	return signCLSAG(ring, keys, pseudoOutBlinding, msg)
}

// SignCLSAGUnsorted signs without the sorted-ring check. Signatures
// made this way verify only with VerifyCLSAGUnsorted against the ring
// in the exact same order.
func SignCLSAGUnsorted(ring Ring, keys *EnoteKeys, pseudoOutBlinding *ristretto.Scalar, msg []byte) (Commitment, *CLSAGSignature, error) {
	return signCLSAG(ring, keys, pseudoOutBlinding, msg)
}

func signCLSAG(ring Ring, keys *EnoteKeys, pseudoOutBlinding *ristretto.Scalar, msg []byte) (Commitment, *CLSAGSignature, error) {
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
	var keyImage, auxiliary ristretto.Point
	keyImage.ScalarMult(kiPoints[j], &keys.Owner)
	auxiliary.ScalarMult(kiPoints[j], &commitmentKey)

	m := clsagMessage(ringL, encRingC, pseudoOut, &keyImage, &auxiliary, msg)

	nonces := newNonceChain(&keys.Owner, pseudoOutBlinding, m)
	defer nonces.wipe()

	s := make([]ristretto.Scalar, n)
	for i := 0; i < n; i++ {
		s[i] = *nonces.next()
	}

	wLeft, wRight, linkingAC, auxiliaryAC := clsagAggregate(m, ring, ringC, &keyImage, &auxiliary)

	// Aggregated secret key for the real index.
	var wSecret, t ristretto.Scalar
	wSecret.Mul(linkingAC, &keys.Owner)
	t.Mul(auxiliaryAC, &commitmentKey)
	wSecret.Add(&wSecret, &t)
	defer wipeScalar(&wSecret)

	var left, right ristretto.Point
	left.ScalarMultBase(&s[j])
	right.ScalarMult(kiPoints[j], &s[j])

	var cI, c0 ristretto.Scalar
	cI.SetOne()
	c0.Set(&cI)
	i := j
	for {
		i = (i + 1) % n
		cI.Set(clsagChallenge(m, &left, &right))
		if i == 0 {
			c0.Set(&cI)
		}
		if i == j {
			break
		}

		left.Set(multiscalarMul(
			[]*ristretto.Scalar{&s[i], &cI},
			[]*ristretto.Point{basePoint(), wLeft[i]},
		))
		right.Set(multiscalarMul(
			[]*ristretto.Scalar{&s[i], &cI},
			[]*ristretto.Point{kiPoints[i], wRight},
		))
	}

	// Close the ring at the real index.
	var adjust ristretto.Scalar
	adjust.Mul(&cI, &wSecret)
	s[j].Sub(&s[j], &adjust)
	wipeScalar(&adjust)

	sig := &CLSAGSignature{S: s}
	sig.KeyImage.Set(&keyImage)
	sig.C0.Set(&c0)
	sig.Auxiliary.Set(&auxiliary)
	return pseudoOut, sig, nil
}

// VerifyCLSAG checks a CLSAG signature against a sorted ring, the
// pseudo-output it was signed with, and the message.
func VerifyCLSAG(sig *CLSAGSignature, ring Ring, pseudoOut Commitment, msg []byte) error {
	if !ring.IsSorted() {
		return ErrUnsortedRing
	}
	return verifyCLSAG(sig, ring, pseudoOut, msg)
}

// VerifyCLSAGUnsorted checks a signature made over an unsorted ring.
// The ring must be in the exact order it was signed in.
func VerifyCLSAGUnsorted(sig *CLSAGSignature, ring Ring, pseudoOut Commitment, msg []byte) error {
	return verifyCLSAG(sig, ring, pseudoOut, msg)
}

func verifyCLSAG(sig *CLSAGSignature, ring Ring, pseudoOut Commitment, msg []byte) error {
	n := len(ring)
	if n == 0 || len(sig.S) != n {
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
	m := clsagMessage(ringL, encRingC, pseudoOut, &sig.KeyImage, &sig.Auxiliary, msg)

	wLeft, wRight, _, _ := clsagAggregate(m, ring, ringC, &sig.KeyImage, &sig.Auxiliary)

	var cI ristretto.Scalar
	cI.Set(&sig.C0)
	for i := 0; i < n; i++ {
		left := multiscalarMul(
			[]*ristretto.Scalar{&sig.S[i], &cI},
			[]*ristretto.Point{basePoint(), wLeft[i]},
		)
		right := multiscalarMul(
			[]*ristretto.Scalar{&sig.S[i], &cI},
			[]*ristretto.Point{kiPoints[i], wRight},
		)
		cI.Set(clsagChallenge(m, left, right))
	}
	if !cI.Equals(&sig.C0) {
		return ErrInvalidSignature
	}
	return nil
}
