package ringct

import (
	"github.com/bwesterb/go-ristretto"
)

// CryptoNote-style stealth addresses: a long-term (view, spend) pair
// from which per-output one-time keys are derived, so outputs on chain
// cannot be linked to the address.

// Recipient is one output of a transaction: the one-time key plus
// everything the receiver needs to claim it.
type Recipient struct {
	// PublicKey is the one-time key owning the enote.
	PublicKey ristretto.Point
	// TransactionKey lets the recipient detect the payment. Some
	// protocols share one transaction key across recipients, others
	// use one per recipient.
	TransactionKey ristretto.Point
	ViewTag        ViewTag
	// EncryptedValue can be decrypted only by sender and receiver.
	EncryptedValue uint64
}

// Enote pairs the recipient's one-time key with its commitment.
func (r *Recipient) Enote(commitment Commitment) Enote {
	return NewEnote(&r.PublicKey, commitment)
}

// CryptoNotePrivate can view and spend funds sent to its address.
type CryptoNotePrivate struct {
	View  ristretto.Scalar
	Spend ristretto.Scalar
}

// GenerateCryptoNote returns a fresh random private address.
func GenerateCryptoNote() *CryptoNotePrivate {
	k := &CryptoNotePrivate{}
	k.View.Rand()
	k.Spend.Rand()
	return k
}

// CryptoNoteFromSeed deterministically derives a private address from
// a seed.
func CryptoNoteFromSeed(seed [32]byte) *CryptoNotePrivate {
	k := &CryptoNotePrivate{}
	k.View.Set(domainHashScalar(domainCryptoNotePrivateView, seed[:]))
	k.Spend.Set(domainHashScalar(domainCryptoNotePrivateSpend, seed[:]))
	return k
}

// Public returns the address these keys control.
func (k *CryptoNotePrivate) Public() *CryptoNotePublic {
	pub := &CryptoNotePublic{}
	pub.View.ScalarMultBase(&k.View)
	pub.Spend.ScalarMultBase(&k.Spend)
	return pub
}

// ViewOnly strips the spend key, leaving keys that can detect and
// decrypt incoming outputs but not spend them.
func (k *CryptoNotePrivate) ViewOnly() *CryptoNotePrivateView {
	v := &CryptoNotePrivateView{}
	v.View.Set(&k.View)
	v.Spend.ScalarMultBase(&k.Spend)
	return v
}

// Wipe clears the private keys.
func (k *CryptoNotePrivate) Wipe() {
	wipeScalar(&k.View)
	wipeScalar(&k.Spend)
}

// ReceivedOutput is an owned output recovered while scanning: the
// output's position and the full enote keys, including the one-time
// private key.
type ReceivedOutput struct {
	Index int
	Keys  *EnoteKeys
}

// Receive scans outputs for ones addressed to k, cheapest check first:
// the view tag eliminates nearly all foreign outputs before any key
// derivation. Only outputs whose derived one-time key matches are
// returned.
func (k *CryptoNotePrivate) Receive(outputs []Recipient) []ReceivedOutput {
	var owned []ReceivedOutput
	var spendPub ristretto.Point
	spendPub.ScalarMultBase(&k.Spend)
	for i := range outputs {
		ss := NewSharedSecret(&k.View, &outputs[i].TransactionKey)
		if ss.ViewTag() != outputs[i].ViewTag {
			ss.Wipe()
			continue
		}
		if !DerivePublicKey(&spendPub, ss).Equals(&outputs[i].PublicKey) {
			ss.Wipe()
			continue
		}
		owner := DerivePrivateKey(&k.Spend, ss)
		blinding := ss.Blinding()
		keys := NewEnoteKeys(owner, ss.DecryptValue(outputs[i].EncryptedValue), blinding)
		wipeScalar(owner)
		wipeScalar(blinding)
		ss.Wipe()
		owned = append(owned, ReceivedOutput{Index: i, Keys: keys})
	}
	return owned
}

// CryptoNotePrivateView can view funds sent to its address but not
// spend them.
type CryptoNotePrivateView struct {
	View  ristretto.Scalar
	Spend ristretto.Point
}

// Public returns the address these keys watch.
func (k *CryptoNotePrivateView) Public() *CryptoNotePublic {
	pub := &CryptoNotePublic{}
	pub.View.ScalarMultBase(&k.View)
	pub.Spend.Set(&k.Spend)
	return pub
}

// Wipe clears the private view key.
func (k *CryptoNotePrivateView) Wipe() {
	wipeScalar(&k.View)
}

// ViewedOutput is an owned output recovered by a view-only wallet: the
// commitment opening without the one-time private key.
type ViewedOutput struct {
	Index    int
	Owner    ristretto.Point
	Value    uint64
	Blinding ristretto.Scalar
}

// Receive scans outputs for ones addressed to the watched address,
// recovering values and blinding factors but no spending keys.
func (k *CryptoNotePrivateView) Receive(outputs []Recipient) []ViewedOutput {
	var owned []ViewedOutput
	for i := range outputs {
		ss := NewSharedSecret(&k.View, &outputs[i].TransactionKey)
		if ss.ViewTag() != outputs[i].ViewTag {
			ss.Wipe()
			continue
		}
		derived := DerivePublicKey(&k.Spend, ss)
		if !derived.Equals(&outputs[i].PublicKey) {
			ss.Wipe()
			continue
		}
		out := ViewedOutput{Index: i, Value: ss.DecryptValue(outputs[i].EncryptedValue)}
		out.Owner.Set(derived)
		out.Blinding.Set(ss.Blinding())
		ss.Wipe()
		owned = append(owned, out)
	}
	return owned
}

// CryptoNotePublic is the published address.
type CryptoNotePublic struct {
	View  ristretto.Point
	Spend ristretto.Point
}

// Send builds an output of the given value addressed to pub, returning
// the recipient data and the commitment blinding factor the sender
// must use. The blinding is derived from the shared secret, so the
// receiver recovers the full opening from the output alone.
func (pub *CryptoNotePublic) Send(value uint64) (*Recipient, *ristretto.Scalar) {
	txPrivate := RandomScalar()
	defer wipeScalar(txPrivate)

	ss := NewSharedSecret(txPrivate, &pub.View)
	defer ss.Wipe()

	r := &Recipient{
		ViewTag:        ss.ViewTag(),
		EncryptedValue: ss.EncryptValue(value),
	}
	r.PublicKey.Set(DerivePublicKey(&pub.Spend, ss))
	r.TransactionKey.ScalarMultBase(txPrivate)
	return r, ss.Blinding()
}

// SendOutput composes Send with commitment creation and a rangeproof,
// the full per-output sender flow.
func (pub *CryptoNotePublic) SendOutput(value uint64) (*Recipient, Commitment, *BulletPlusRangeProof, error) {
	r, blinding := pub.Send(value)
	defer wipeScalar(blinding)
	commitments, proof, err := ProveBulletPlus([]uint64{value}, []*ristretto.Scalar{blinding})
	if err != nil {
		return nil, Commitment{}, nil, err
	}
	return r, commitments[0], proof, nil
}
