package bulletproofs

import (
	"encoding/binary"

	"github.com/bwesterb/go-ristretto"
	"github.com/gtank/merlin"
)

func newTranscript(label string) *merlin.Transcript {
	return merlin.NewTranscript(label)
}

func rangeproofDomainSep(n, m int64, t *merlin.Transcript) {
	t.AppendMessage([]byte("dom-sep"), []byte("rangeproof v1"))
	appendUint64("n", uint64(n), t)
	appendUint64("m", uint64(m), t)
}

func innerproductDomainSep(n uint64, t *merlin.Transcript) {
	t.AppendMessage([]byte("dom-sep"), []byte("ipp v1"))
	appendUint64("n", n, t)
}

func appendUint64(label string, i uint64, t *merlin.Transcript) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, i)
	t.AppendMessage([]byte(label), buf)
}

func appendScalar(label string, s *ristretto.Scalar, t *merlin.Transcript) {
	t.AppendMessage([]byte(label), s.Bytes())
}

func appendPoint(label string, p *ristretto.Point, t *merlin.Transcript) {
	t.AppendMessage([]byte(label), p.Bytes())
}

func challengeScalar(label string, t *merlin.Transcript) *ristretto.Scalar {
	data := t.ExtractBytes([]byte(label), 64)
	var wide [64]byte
	copy(wide[:], data)

	var s ristretto.Scalar
	return s.SetReduced(&wide)
}
