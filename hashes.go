package ringct

import (
	"github.com/bwesterb/go-ristretto"
	"github.com/dchest/blake2b"
)

// Hash domains. Every protocol hash carries one of these suffixes so
// values derived for one purpose cannot be replayed in another.
const (
	domainKeyImage = "key_img"

	domainMLSAGCommitment = "mlsag_com"

	domainCLSAGLinking    = "clsag_link"
	domainCLSAGAuxiliary  = "clsag_aux"
	domainCLSAGCommitment = "clsag_com"

	domainECDHSharedSecret  = "ecdh_ss"
	domainECDHViewTag       = "ecdh_tag"
	domainECDHEncryptionKey = "ecdh_enc"
	domainECDHPrivateKey    = "ecdh_priv"
	domainECDHBlinding      = "ecdh_blind"

	domainCryptoNotePrivateView  = "cn_view"
	domainCryptoNotePrivateSpend = "cn_spend"

	domainSubaddressMasterView  = "subaddr_mv"
	domainSubaddressMasterSpend = "subaddr_ms"
	domainSubaddressSpend       = "subaddr_ss"
)

// bulletproofLabel seeds the merlin transcript of every bulletproof
// produced by this package.
const bulletproofLabel = "ringct-bulletproof-v1"

// hashBytes hashes to 32 bytes.
func hashBytes(msg ...[]byte) [32]byte {
	h := blake2b.New256()
	for _, m := range msg {
		h.Write(m)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// domainHashBytes hashes to 32 bytes under a domain.
func domainHashBytes(domain string, msg ...[]byte) [32]byte {
	h := blake2b.New256()
	for _, m := range msg {
		h.Write(m)
	}
	h.Write([]byte(domain))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// hashScalar hashes to a scalar.
func hashScalar(msg ...[]byte) *ristretto.Scalar {
	buf := hashBytes(msg...)
	var s ristretto.Scalar
	return s.SetBytes(&buf)
}

// domainHashScalar hashes to a scalar under a domain.
func domainHashScalar(domain string, msg ...[]byte) *ristretto.Scalar {
	buf := domainHashBytes(domain, msg...)
	var s ristretto.Scalar
	return s.SetBytes(&buf)
}

// hashPoint hashes to a group element of unknown discrete log.
func hashPoint(msg ...[]byte) *ristretto.Point {
	h := blake2b.New512()
	for _, m := range msg {
		h.Write(m)
	}
	var wide [64]byte
	copy(wide[:], h.Sum(nil))
	return pointFromUniformBytes(&wide)
}

// domainHashPoint hashes to a group element under a domain.
func domainHashPoint(domain string, msg ...[]byte) *ristretto.Point {
	h := blake2b.New512()
	for _, m := range msg {
		h.Write(m)
	}
	h.Write([]byte(domain))
	var wide [64]byte
	copy(wide[:], h.Sum(nil))
	return pointFromUniformBytes(&wide)
}
