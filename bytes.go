package ringct

import (
	"encoding/binary"

	"github.com/bwesterb/go-ristretto"
)

// Fixed-width byte encodings for every public artifact. All decoders
// reject non-canonical scalar and point encodings with ErrDecoding.

// Bytes encodes an enote as owner then commitment.
func (e Enote) Bytes() []byte {
	return append(e.Owner.Bytes(), e.Commitment.Bytes()...)
}

// EnoteFromBytes decodes a 64-byte enote encoding.
func EnoteFromBytes(data []byte) (Enote, error) {
	if len(data) != 64 {
		return Enote{}, ErrDecoding
	}
	owner, err := PointFromBytes(data[:32])
	if err != nil {
		return Enote{}, err
	}
	commitment, err := CommitmentFromBytes(data[32:])
	if err != nil {
		return Enote{}, err
	}
	return NewEnote(owner, commitment), nil
}

// Bytes encodes the private enote keys: owner, value, blinding. The
// output is secret material.
func (k *EnoteKeys) Bytes() []byte {
	buf := make([]byte, 0, 72)
	buf = append(buf, k.Owner.Bytes()...)
	var value [8]byte
	binary.LittleEndian.PutUint64(value[:], k.Value)
	buf = append(buf, value[:]...)
	return append(buf, k.Blinding.Bytes()...)
}

// EnoteKeysFromBytes decodes a 72-byte enote keys encoding.
func EnoteKeysFromBytes(data []byte) (*EnoteKeys, error) {
	if len(data) != 72 {
		return nil, ErrDecoding
	}
	owner, err := ScalarFromBytes(data[:32])
	if err != nil {
		return nil, err
	}
	blinding, err := ScalarFromBytes(data[40:])
	if err != nil {
		return nil, err
	}
	return NewEnoteKeys(owner, binary.LittleEndian.Uint64(data[32:40]), blinding), nil
}

func decodeScalars(data []byte, n int) ([]ristretto.Scalar, error) {
	out := make([]ristretto.Scalar, n)
	for i := 0; i < n; i++ {
		s, err := ScalarFromBytes(data[i*32 : (i+1)*32])
		if err != nil {
			return nil, err
		}
		out[i].Set(s)
	}
	return out, nil
}

// Bytes encodes the signature: key image, initial challenge, then the
// two response vectors.
func (sig *MLSAGSignature) Bytes() []byte {
	buf := make([]byte, 0, 64+64*len(sig.SL))
	buf = append(buf, sig.KeyImage.Bytes()...)
	buf = append(buf, sig.E0.Bytes()...)
	for i := range sig.SL {
		buf = append(buf, sig.SL[i].Bytes()...)
	}
	for i := range sig.SC {
		buf = append(buf, sig.SC[i].Bytes()...)
	}
	return buf
}

// MLSAGSignatureFromBytes decodes an MLSAG signature. The ring size is
// implied by the length.
func MLSAGSignatureFromBytes(data []byte) (*MLSAGSignature, error) {
	if len(data) < 128 || (len(data)-64)%64 != 0 {
		return nil, ErrDecoding
	}
	n := (len(data) - 64) / 64

	keyImage, err := PointFromBytes(data[:32])
	if err != nil {
		return nil, err
	}
	e0, err := ScalarFromBytes(data[32:64])
	if err != nil {
		return nil, err
	}
	sL, err := decodeScalars(data[64:64+32*n], n)
	if err != nil {
		return nil, err
	}
	sC, err := decodeScalars(data[64+32*n:], n)
	if err != nil {
		return nil, err
	}

	sig := &MLSAGSignature{SL: sL, SC: sC}
	sig.KeyImage.Set(keyImage)
	sig.E0.Set(e0)
	return sig, nil
}

// Bytes encodes the signature: key image, initial challenge, auxiliary
// point, then the response vector.
func (sig *CLSAGSignature) Bytes() []byte {
	buf := make([]byte, 0, 96+32*len(sig.S))
	buf = append(buf, sig.KeyImage.Bytes()...)
	buf = append(buf, sig.C0.Bytes()...)
	buf = append(buf, sig.Auxiliary.Bytes()...)
	for i := range sig.S {
		buf = append(buf, sig.S[i].Bytes()...)
	}
	return buf
}

// CLSAGSignatureFromBytes decodes a CLSAG signature. The ring size is
// implied by the length.
func CLSAGSignatureFromBytes(data []byte) (*CLSAGSignature, error) {
	if len(data) < 128 || (len(data)-96)%32 != 0 {
		return nil, ErrDecoding
	}
	n := (len(data) - 96) / 32

	keyImage, err := PointFromBytes(data[:32])
	if err != nil {
		return nil, err
	}
	c0, err := ScalarFromBytes(data[32:64])
	if err != nil {
		return nil, err
	}
	auxiliary, err := PointFromBytes(data[64:96])
	if err != nil {
		return nil, err
	}
	s, err := decodeScalars(data[96:], n)
	if err != nil {
		return nil, err
	}

	sig := &CLSAGSignature{S: s}
	sig.KeyImage.Set(keyImage)
	sig.C0.Set(c0)
	sig.Auxiliary.Set(auxiliary)
	return sig, nil
}

// borromeanProofSize is the fixed encoding size: digit commitments,
// e0, and 4 responses per digit ring.
const borromeanProofSize = 32*proofDigits + 32 + 32*4*proofDigits

// Bytes encodes the proof: digit commitments, e0, then the response
// rings.
func (p *BorromeanRangeProof) Bytes() []byte {
	buf := make([]byte, 0, borromeanProofSize)
	for i := range p.CI {
		buf = append(buf, p.CI[i].Bytes()...)
	}
	buf = append(buf, p.E0.Bytes()...)
	for i := range p.S {
		for j := range p.S[i] {
			buf = append(buf, p.S[i][j].Bytes()...)
		}
	}
	return buf
}

// BorromeanRangeProofFromBytes decodes a borromean rangeproof.
func BorromeanRangeProofFromBytes(data []byte) (*BorromeanRangeProof, error) {
	if len(data) != borromeanProofSize {
		return nil, ErrDecoding
	}
	p := &BorromeanRangeProof{}
	off := 0
	for i := 0; i < proofDigits; i++ {
		c, err := CommitmentFromBytes(data[off : off+32])
		if err != nil {
			return nil, err
		}
		p.CI[i] = c
		off += 32
	}
	e0, err := ScalarFromBytes(data[off : off+32])
	if err != nil {
		return nil, err
	}
	p.E0.Set(e0)
	off += 32
	for i := 0; i < proofDigits; i++ {
		for j := 0; j < 4; j++ {
			s, err := ScalarFromBytes(data[off : off+32])
			if err != nil {
				return nil, err
			}
			p.S[i][j].Set(s)
			off += 32
		}
	}
	return p, nil
}

// Bytes encodes the address as view then spend key.
func (pub *CryptoNotePublic) Bytes() []byte {
	return append(pub.View.Bytes(), pub.Spend.Bytes()...)
}

// CryptoNotePublicFromBytes decodes a 64-byte address encoding.
func CryptoNotePublicFromBytes(data []byte) (*CryptoNotePublic, error) {
	if len(data) != 64 {
		return nil, ErrDecoding
	}
	view, err := PointFromBytes(data[:32])
	if err != nil {
		return nil, err
	}
	spend, err := PointFromBytes(data[32:])
	if err != nil {
		return nil, err
	}
	pub := &CryptoNotePublic{}
	pub.View.Set(view)
	pub.Spend.Set(spend)
	return pub, nil
}

// Bytes encodes the private keys as view then spend. The output is
// secret material.
func (k *CryptoNotePrivate) Bytes() []byte {
	return append(k.View.Bytes(), k.Spend.Bytes()...)
}

// CryptoNotePrivateFromBytes decodes a 64-byte private key encoding.
func CryptoNotePrivateFromBytes(data []byte) (*CryptoNotePrivate, error) {
	if len(data) != 64 {
		return nil, ErrDecoding
	}
	view, err := ScalarFromBytes(data[:32])
	if err != nil {
		return nil, err
	}
	spend, err := ScalarFromBytes(data[32:])
	if err != nil {
		return nil, err
	}
	k := &CryptoNotePrivate{}
	k.View.Set(view)
	k.Spend.Set(spend)
	return k, nil
}

// Bytes encodes the view-only keys as view scalar then spend point.
// The output is secret material.
func (k *CryptoNotePrivateView) Bytes() []byte {
	return append(k.View.Bytes(), k.Spend.Bytes()...)
}

// CryptoNotePrivateViewFromBytes decodes a 64-byte view-only key
// encoding.
func CryptoNotePrivateViewFromBytes(data []byte) (*CryptoNotePrivateView, error) {
	if len(data) != 64 {
		return nil, ErrDecoding
	}
	view, err := ScalarFromBytes(data[:32])
	if err != nil {
		return nil, err
	}
	spend, err := PointFromBytes(data[32:])
	if err != nil {
		return nil, err
	}
	k := &CryptoNotePrivateView{}
	k.View.Set(view)
	k.Spend.Set(spend)
	return k, nil
}

// Bytes encodes the subaddress as view then spend key.
func (pub *SubaddressPublic) Bytes() []byte {
	return append(pub.View.Bytes(), pub.Spend.Bytes()...)
}

// SubaddressPublicFromBytes decodes a 64-byte subaddress encoding.
func SubaddressPublicFromBytes(data []byte) (*SubaddressPublic, error) {
	if len(data) != 64 {
		return nil, ErrDecoding
	}
	view, err := PointFromBytes(data[:32])
	if err != nil {
		return nil, err
	}
	spend, err := PointFromBytes(data[32:])
	if err != nil {
		return nil, err
	}
	pub := &SubaddressPublic{}
	pub.View.Set(view)
	pub.Spend.Set(spend)
	return pub, nil
}

// Bytes encodes the recipient: one-time key, transaction key, view
// tag, encrypted value.
func (r *Recipient) Bytes() []byte {
	buf := make([]byte, 0, 73)
	buf = append(buf, r.PublicKey.Bytes()...)
	buf = append(buf, r.TransactionKey.Bytes()...)
	buf = append(buf, r.ViewTag)
	var value [8]byte
	binary.LittleEndian.PutUint64(value[:], r.EncryptedValue)
	return append(buf, value[:]...)
}

// RecipientFromBytes decodes a 73-byte recipient encoding.
func RecipientFromBytes(data []byte) (*Recipient, error) {
	if len(data) != 73 {
		return nil, ErrDecoding
	}
	publicKey, err := PointFromBytes(data[:32])
	if err != nil {
		return nil, err
	}
	txKey, err := PointFromBytes(data[32:64])
	if err != nil {
		return nil, err
	}
	r := &Recipient{
		ViewTag:        data[64],
		EncryptedValue: binary.LittleEndian.Uint64(data[65:]),
	}
	r.PublicKey.Set(publicKey)
	r.TransactionKey.Set(txKey)
	return r, nil
}

// ExportKeys encodes the master view then spend key. The lookup
// tables are not included. The output is secret material.
func (m *MasterPrivate) ExportKeys() []byte {
	return append(m.View.Bytes(), m.Spend.Bytes()...)
}

// MasterPrivateFromKeys decodes a 64-byte master key export. The
// lookup tables start empty.
func MasterPrivateFromKeys(data []byte) (*MasterPrivate, error) {
	if len(data) != 64 {
		return nil, ErrDecoding
	}
	view, err := ScalarFromBytes(data[:32])
	if err != nil {
		return nil, err
	}
	spend, err := ScalarFromBytes(data[32:])
	if err != nil {
		return nil, err
	}
	m := &MasterPrivate{}
	m.View.Set(view)
	m.Spend.Set(spend)
	return m, nil
}

// ExportKeys encodes the view key then the spend point. The lookup
// tables are not included. The output is secret material.
func (m *MasterPrivateView) ExportKeys() []byte {
	return append(m.View.Bytes(), m.Spend.Bytes()...)
}

// MasterPrivateViewFromKeys decodes a 64-byte view-only master key
// export. The lookup tables start empty.
func MasterPrivateViewFromKeys(data []byte) (*MasterPrivateView, error) {
	if len(data) != 64 {
		return nil, ErrDecoding
	}
	view, err := ScalarFromBytes(data[:32])
	if err != nil {
		return nil, err
	}
	spend, err := PointFromBytes(data[32:])
	if err != nil {
		return nil, err
	}
	m := &MasterPrivateView{}
	m.View.Set(view)
	m.Spend.Set(spend)
	return m, nil
}

// ExportCoordinates encodes the initialized lookup table indices.
func (m *MasterPrivate) ExportCoordinates() ([]byte, error) {
	if m.secrets == nil {
		return nil, ErrUninitializedTable
	}
	buf := make([]byte, 0, 8*len(m.secrets))
	for idx := range m.secrets {
		buf = append(buf, idx.bytes()...)
	}
	return buf, nil
}

// ImportCoordinates rebuilds the lookup table from exported indices.
func (m *MasterPrivate) ImportCoordinates(data []byte) error {
	if len(data)%8 != 0 {
		return ErrDecoding
	}
	for off := 0; off < len(data); off += 8 {
		m.InitIndex(SubaddressIndex{
			X: binary.LittleEndian.Uint32(data[off : off+4]),
			Y: binary.LittleEndian.Uint32(data[off+4 : off+8]),
		})
	}
	return nil
}

// ExportCoordinates encodes the initialized lookup table indices.
func (m *MasterPrivateView) ExportCoordinates() ([]byte, error) {
	if m.points == nil {
		return nil, ErrUninitializedTable
	}
	buf := make([]byte, 0, 8*len(m.points))
	for idx := range m.points {
		buf = append(buf, idx.bytes()...)
	}
	return buf, nil
}

// ImportCoordinates rebuilds the lookup table from exported indices.
func (m *MasterPrivateView) ImportCoordinates(data []byte) error {
	if len(data)%8 != 0 {
		return ErrDecoding
	}
	for off := 0; off < len(data); off += 8 {
		m.InitIndex(SubaddressIndex{
			X: binary.LittleEndian.Uint32(data[off : off+4]),
			Y: binary.LittleEndian.Uint32(data[off+4 : off+8]),
		})
	}
	return nil
}
