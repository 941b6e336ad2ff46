package ringct

import (
	"encoding/binary"

	"github.com/bwesterb/go-ristretto"
)

// Subaddresses derive unlimited unlinkable addresses from one master
// (view, spend) pair and a 2-dimensional index. Receiving uses a
// lookup table from one-time spend keys back to indices.

// SubaddressIndex addresses one subaddress under a master pair.
type SubaddressIndex struct {
	X, Y uint32
}

func (idx SubaddressIndex) bytes() []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], idx.X)
	binary.LittleEndian.PutUint32(buf[4:], idx.Y)
	return buf[:]
}

// subSpendScalar is the index-specific offset H(view, x, y) added to
// the master spend key.
func subSpendScalar(view *ristretto.Scalar, idx SubaddressIndex) *ristretto.Scalar {
	return domainHashScalar(domainSubaddressSpend, view.Bytes(), idx.bytes())
}

// MasterPrivate can view and spend funds sent to any subaddress it
// controls.
type MasterPrivate struct {
	View  ristretto.Scalar
	Spend ristretto.Scalar

	coords  map[[32]byte]SubaddressIndex
	secrets map[SubaddressIndex]ristretto.Scalar
}

// GenerateMaster returns fresh random master keys.
func GenerateMaster() *MasterPrivate {
	m := &MasterPrivate{}
	m.View.Rand()
	m.Spend.Rand()
	return m
}

// MasterFromSeed deterministically derives master keys from a seed.
func MasterFromSeed(seed [32]byte) *MasterPrivate {
	m := &MasterPrivate{}
	m.View.Set(domainHashScalar(domainSubaddressMasterView, seed[:]))
	m.Spend.Set(domainHashScalar(domainSubaddressMasterSpend, seed[:]))
	return m
}

// subKey returns the subaddress private spend key b + H(a, x, y).
func (m *MasterPrivate) subKey(idx SubaddressIndex) *ristretto.Scalar {
	offset := subSpendScalar(&m.View, idx)
	var key ristretto.Scalar
	key.Add(&m.Spend, offset)
	wipeScalar(offset)
	return &key
}

// Init fills the lookup table with every index below (x, y),
// exclusive. x*y entries are computed.
func (m *MasterPrivate) Init(x, y uint32) {
	for xc := uint32(0); xc < x; xc++ {
		for yc := uint32(0); yc < y; yc++ {
			m.InitIndex(SubaddressIndex{X: xc, Y: yc})
		}
	}
}

// InitIndex adds one index to the lookup table.
func (m *MasterPrivate) InitIndex(idx SubaddressIndex) {
	if m.coords == nil {
		m.coords = make(map[[32]byte]SubaddressIndex)
		m.secrets = make(map[SubaddressIndex]ristretto.Scalar)
	}
	key := m.subKey(idx)
	var pub ristretto.Point
	pub.ScalarMultBase(key)
	var enc [32]byte
	copy(enc[:], pub.Bytes())
	m.coords[enc] = idx
	m.secrets[idx] = *key
}

// Subaddress returns the public subaddress at idx. The index must be
// initialized in the lookup table first, or receiving would silently
// miss its outputs.
func (m *MasterPrivate) Subaddress(idx SubaddressIndex) (*SubaddressPublic, error) {
	if m.secrets == nil {
		return nil, ErrUninitializedTable
	}
	if _, ok := m.secrets[idx]; !ok {
		return nil, ErrUninitializedCoordinates
	}
	key := m.subKey(idx)
	defer wipeScalar(key)

	pub := &SubaddressPublic{}
	pub.Spend.ScalarMultBase(key)
	pub.View.ScalarMult(&pub.Spend, &m.View)
	return pub, nil
}

// SharedSecret computes the receive-side shared secret for a
// transaction key.
func (m *MasterPrivate) SharedSecret(transactionKey *ristretto.Point) SharedSecret {
	return NewSharedSecret(&m.View, transactionKey)
}

// RecoverCoordinates finds which subaddress a one-time key was derived
// for, by stripping the shared-secret component and looking up the
// remaining spend key.
func (m *MasterPrivate) RecoverCoordinates(publicKey *ristretto.Point, ss SharedSecret) (SubaddressIndex, error) {
	if m.coords == nil {
		return SubaddressIndex{}, ErrUninitializedTable
	}
	var sub ristretto.Point
	sub.ScalarMultBase(ss.Scalar())
	sub.Sub(publicKey, &sub)
	var enc [32]byte
	copy(enc[:], sub.Bytes())
	idx, ok := m.coords[enc]
	if !ok {
		return SubaddressIndex{}, ErrKeyNotFound
	}
	return idx, nil
}

// DeriveKey returns the one-time private key for an output sent to the
// subaddress at idx.
func (m *MasterPrivate) DeriveKey(ss SharedSecret, idx SubaddressIndex) (*ristretto.Scalar, error) {
	if m.secrets == nil {
		return nil, ErrUninitializedTable
	}
	sub, ok := m.secrets[idx]
	if !ok {
		return nil, ErrKeyNotFound
	}
	var key ristretto.Scalar
	key.Add(&sub, ss.Scalar())
	return &key, nil
}

// ViewOnly returns the watch side of the master keys with an empty
// lookup table.
func (m *MasterPrivate) ViewOnly() *MasterPrivateView {
	v := &MasterPrivateView{}
	v.View.Set(&m.View)
	v.Spend.ScalarMultBase(&m.Spend)
	return v
}

// Wipe clears the private keys and the lookup table secrets.
func (m *MasterPrivate) Wipe() {
	wipeScalar(&m.View)
	wipeScalar(&m.Spend)
	for idx, s := range m.secrets {
		wipeScalar(&s)
		m.secrets[idx] = s
	}
	m.secrets = nil
	m.coords = nil
}

// MasterPrivateView can detect and decrypt outputs to any initialized
// subaddress, but not spend them.
type MasterPrivateView struct {
	View  ristretto.Scalar
	Spend ristretto.Point

	coords map[[32]byte]SubaddressIndex
	points map[SubaddressIndex]ristretto.Point
}

// subKeyPoint returns the subaddress public spend key B + H(a, x, y)*G.
func (m *MasterPrivateView) subKeyPoint(idx SubaddressIndex) *ristretto.Point {
	offset := subSpendScalar(&m.View, idx)
	var p ristretto.Point
	p.ScalarMultBase(offset)
	wipeScalar(offset)
	return p.Add(&m.Spend, &p)
}

// Init fills the lookup table with every index below (x, y),
// exclusive.
func (m *MasterPrivateView) Init(x, y uint32) {
	for xc := uint32(0); xc < x; xc++ {
		for yc := uint32(0); yc < y; yc++ {
			m.InitIndex(SubaddressIndex{X: xc, Y: yc})
		}
	}
}

// InitIndex adds one index to the lookup table.
func (m *MasterPrivateView) InitIndex(idx SubaddressIndex) {
	if m.coords == nil {
		m.coords = make(map[[32]byte]SubaddressIndex)
		m.points = make(map[SubaddressIndex]ristretto.Point)
	}
	p := m.subKeyPoint(idx)
	var enc [32]byte
	copy(enc[:], p.Bytes())
	m.coords[enc] = idx
	m.points[idx] = *p
}

// Subaddress returns the public subaddress at idx.
func (m *MasterPrivateView) Subaddress(idx SubaddressIndex) (*SubaddressPublic, error) {
	if m.points == nil {
		return nil, ErrUninitializedTable
	}
	spend, ok := m.points[idx]
	if !ok {
		return nil, ErrUninitializedCoordinates
	}
	pub := &SubaddressPublic{}
	pub.Spend.Set(&spend)
	pub.View.ScalarMult(&spend, &m.View)
	return pub, nil
}

// SharedSecret computes the receive-side shared secret for a
// transaction key.
func (m *MasterPrivateView) SharedSecret(transactionKey *ristretto.Point) SharedSecret {
	return NewSharedSecret(&m.View, transactionKey)
}

// RecoverCoordinates finds which subaddress a one-time key was derived
// for.
func (m *MasterPrivateView) RecoverCoordinates(publicKey *ristretto.Point, ss SharedSecret) (SubaddressIndex, error) {
	if m.coords == nil {
		return SubaddressIndex{}, ErrUninitializedTable
	}
	var sub ristretto.Point
	sub.ScalarMultBase(ss.Scalar())
	sub.Sub(publicKey, &sub)
	var enc [32]byte
	copy(enc[:], sub.Bytes())
	idx, ok := m.coords[enc]
	if !ok {
		return SubaddressIndex{}, ErrKeyNotFound
	}
	return idx, nil
}

// DeriveKey returns the one-time public key for an output sent to the
// subaddress at idx.
func (m *MasterPrivateView) DeriveKey(ss SharedSecret, idx SubaddressIndex) (*ristretto.Point, error) {
	if m.points == nil {
		return nil, ErrUninitializedTable
	}
	sub, ok := m.points[idx]
	if !ok {
		return nil, ErrKeyNotFound
	}
	var p ristretto.Point
	p.ScalarMultBase(ss.Scalar())
	return p.Add(&sub, &p), nil
}

// Wipe clears the private view key and the lookup table.
func (m *MasterPrivateView) Wipe() {
	wipeScalar(&m.View)
	m.coords = nil
	m.points = nil
}

// SubaddressPublic is one published subaddress.
type SubaddressPublic struct {
	View  ristretto.Point
	Spend ristretto.Point
}

// Send builds an output of the given value addressed to the
// subaddress, returning the recipient data and the commitment blinding
// factor. Unlike main-address sends, the transaction key is the
// ephemeral key times the subaddress spend key, so every recipient
// needs its own transaction key.
func (pub *SubaddressPublic) Send(value uint64) (*Recipient, *ristretto.Scalar) {
	txPrivate := RandomScalar()
	defer wipeScalar(txPrivate)

	ss := NewSharedSecret(txPrivate, &pub.View)
	defer ss.Wipe()

	r := &Recipient{
		ViewTag:        ss.ViewTag(),
		EncryptedValue: ss.EncryptValue(value),
	}
	r.PublicKey.Set(DerivePublicKey(&pub.Spend, ss))
	r.TransactionKey.ScalarMult(&pub.Spend, txPrivate)
	return r, ss.Blinding()
}

// SendOutput composes Send with commitment creation and a rangeproof.
func (pub *SubaddressPublic) SendOutput(value uint64) (*Recipient, Commitment, *BulletPlusRangeProof, error) {
	r, blinding := pub.Send(value)
	defer wipeScalar(blinding)
	commitments, proof, err := ProveBulletPlus([]uint64{value}, []*ristretto.Scalar{blinding})
	if err != nil {
		return nil, Commitment{}, nil, err
	}
	return r, commitments[0], proof, nil
}
