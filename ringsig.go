package ringct

import (
	"github.com/bwesterb/go-ristretto"
)

// Shared machinery of the MLSAG and CLSAG schemes: key images,
// commitment shifting, and deterministic nonce derivation.

// fillerScalarBytes is the starting link of the deterministic nonce
// chain, the group order in little endian.
var fillerScalarBytes = [32]byte{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// keyImagePoint hashes an encoded public key to the point the key
// image is computed against.
func keyImagePoint(encodedPub []byte) *ristretto.Point {
	return domainHashPoint(domainKeyImage, encodedPub)
}

// keyImagePoints returns the key image points of every ring member's
// owner key.
func keyImagePoints(ringL [][]byte) []*ristretto.Point {
	points := make([]*ristretto.Point, len(ringL))
	for i := range ringL {
		points[i] = keyImagePoint(ringL[i])
	}
	return points
}

// KeyImage returns the key image I = x*Hp(P) of a private key.
func KeyImage(private *ristretto.Scalar) *ristretto.Point {
	var public ristretto.Point
	public.ScalarMultBase(private)
	var img ristretto.Point
	return img.ScalarMult(keyImagePoint(public.Bytes()), private)
}

// shiftCommitments subtracts the pseudo-output from every ring
// commitment, so the true member's shifted commitment commits to zero
// under the commitment key.
func shiftCommitments(ring Ring, pseudoOut Commitment) []*ristretto.Point {
	var neg ristretto.Point
	neg.Neg(pseudoOut.Point())
	shifted := make([]*ristretto.Point, len(ring))
	for i := range ring {
		var p ristretto.Point
		p.Add(ring[i].Commitment.Point(), &neg)
		shifted[i] = &p
	}
	return shifted
}

// findEnote locates the signer's enote in the ring.
func findEnote(ring Ring, keys *EnoteKeys) (int, bool) {
	target := keys.Enote()
	for i := range ring {
		if ring[i].Equals(target) {
			return i, true
		}
	}
	return 0, false
}

// nonceChain derives signature nonces deterministically from the
// signer's secrets and the message, so a broken system RNG at signing
// time cannot leak the private key. Callers must wipe the seed.
type nonceChain struct {
	seed []byte
	last [32]byte
}

func newNonceChain(owner *ristretto.Scalar, pseudoOutBlinding *ristretto.Scalar, m []byte) *nonceChain {
	seed := make([]byte, 0, 64+len(m))
	seed = append(seed, owner.Bytes()...)
	seed = append(seed, pseudoOutBlinding.Bytes()...)
	seed = append(seed, m...)
	return &nonceChain{seed: seed, last: fillerScalarBytes}
}

func (n *nonceChain) next() *ristretto.Scalar {
	s := hashScalar(n.last[:], n.seed)
	copy(n.last[:], s.Bytes())
	return s
}

func (n *nonceChain) wipe() {
	wipeBytes(n.seed)
	wipeBytes(n.last[:])
}
