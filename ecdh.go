package ringct

import (
	"encoding/binary"

	"github.com/bwesterb/go-ristretto"
)

// SharedSecret is the Diffie-Hellman secret between two keys: the
// domain-separated hash of the shared point, not the raw point, so the
// secret carries no algebraic structure. It must not be shared and
// should be wiped after use.
type SharedSecret [32]byte

// NewSharedSecret computes the shared secret between a private key and
// another party's public key. Both directions yield the same secret.
func NewSharedSecret(myPrivate *ristretto.Scalar, otherPublic *ristretto.Point) SharedSecret {
	var p ristretto.Point
	p.ScalarMult(otherPublic, myPrivate)
	return SharedSecret(domainHashBytes(domainECDHSharedSecret, p.Bytes()))
}

// ViewTag returns the 1-byte scan hint of this secret.
func (ss *SharedSecret) ViewTag() ViewTag {
	tag := domainHashBytes(domainECDHViewTag, ss[:])
	return tag[0]
}

// Scalar converts the secret to a scalar for key derivation.
func (ss *SharedSecret) Scalar() *ristretto.Scalar {
	buf := [32]byte(*ss)
	var s ristretto.Scalar
	return s.SetBytes(&buf)
}

// EncryptValue encrypts a value so only the two parties can read it.
func (ss *SharedSecret) EncryptValue(value uint64) uint64 {
	pad := domainHashBytes(domainECDHEncryptionKey, ss[:])
	return value ^ binary.BigEndian.Uint64(pad[:8])
}

// DecryptValue decrypts a value encrypted with EncryptValue.
func (ss *SharedSecret) DecryptValue(encrypted uint64) uint64 {
	return ss.EncryptValue(encrypted)
}

// Blinding derives a commitment blinding factor from the secret, so
// the receiver can reconstruct the commitment opening from the shared
// secret alone.
func (ss *SharedSecret) Blinding() *ristretto.Scalar {
	return domainHashScalar(domainECDHBlinding, ss[:])
}

// Wipe clears the secret.
func (ss *SharedSecret) Wipe() {
	wipeBytes(ss[:])
}

// PublicKey returns the public key of a private key.
func PublicKey(private *ristretto.Scalar) *ristretto.Point {
	var p ristretto.Point
	return p.ScalarMultBase(private)
}

// DerivePublicKey derives the one-time public key base + ss*G. Derived
// keys must never be reused.
func DerivePublicKey(base *ristretto.Point, ss SharedSecret) *ristretto.Point {
	var p ristretto.Point
	p.ScalarMultBase(ss.Scalar())
	return p.Add(base, &p)
}

// DerivePrivateKey derives the one-time private key base + ss,
// matching DerivePublicKey of the corresponding public base.
func DerivePrivateKey(base *ristretto.Scalar, ss SharedSecret) *ristretto.Scalar {
	var s ristretto.Scalar
	return s.Add(base, ss.Scalar())
}

// ScalarFromSeed deterministically converts a 32-byte seed into a
// private key.
func ScalarFromSeed(seed [32]byte) *ristretto.Scalar {
	return domainHashScalar(domainECDHPrivateKey, seed[:])
}
