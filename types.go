package ringct

import (
	"bytes"
	"sort"

	"github.com/bwesterb/go-ristretto"
)

// ViewTag is a 1-byte public hint derived from an ECDH shared secret.
// A mismatched tag rules an output out immediately; a match still has
// a 1/256 false positive rate and must be confirmed by full key
// derivation. There are no false negatives.
type ViewTag = byte

// Enote is a spendable output: a one-time owner key and the commitment
// to its value.
type Enote struct {
	Owner      ristretto.Point
	Commitment Commitment
}

// NewEnote builds an enote from an owner key and a commitment.
func NewEnote(owner *ristretto.Point, commitment Commitment) Enote {
	var e Enote
	e.Owner.Set(owner)
	e.Commitment = commitment
	return e
}

// Equals reports whether two enotes have the same owner and
// commitment.
func (e Enote) Equals(other Enote) bool {
	return e.Owner.Equals(&other.Owner) && e.Commitment.Equals(other.Commitment)
}

// EnoteKeys is the private side of an enote: the owner private key and
// the commitment opening. Callers must Wipe once the keys are no
// longer needed.
type EnoteKeys struct {
	Owner    ristretto.Scalar
	Value    uint64
	Blinding ristretto.Scalar
}

// NewEnoteKeys builds enote keys from an owner private key, a value,
// and a blinding factor.
func NewEnoteKeys(owner *ristretto.Scalar, value uint64, blinding *ristretto.Scalar) *EnoteKeys {
	keys := &EnoteKeys{Value: value}
	keys.Owner.Set(owner)
	keys.Blinding.Set(blinding)
	return keys
}

// Enote returns the public enote these keys control.
func (k *EnoteKeys) Enote() Enote {
	var owner ristretto.Point
	owner.ScalarMultBase(&k.Owner)
	return NewEnote(&owner, Commit(k.Value, &k.Blinding))
}

// KeyImage returns the key image of the owner key. Two signatures
// sharing a key image spent the same enote.
func (k *EnoteKeys) KeyImage() *ristretto.Point {
	var public ristretto.Point
	public.ScalarMultBase(&k.Owner)
	var img ristretto.Point
	return img.ScalarMult(keyImagePoint(public.Bytes()), &k.Owner)
}

// Wipe clears the secret material.
func (k *EnoteKeys) Wipe() {
	wipeScalar(&k.Owner)
	wipeScalar(&k.Blinding)
	k.Value = 0
}

// Ring is the anonymity set of a ring signature. Sign and Verify
// require the ring to be sorted so that ring order cannot be used as a
// covert channel.
type Ring []Enote

// encodedRing is the per-member encodings of a ring, owner and
// commitment columns.
func (r Ring) encode() (ringL, ringC [][]byte) {
	ringL = make([][]byte, len(r))
	ringC = make([][]byte, len(r))
	for i := range r {
		ringL[i] = r[i].Owner.Bytes()
		ringC[i] = r[i].Commitment.Bytes()
	}
	return ringL, ringC
}

// Sorted returns a copy of the ring in canonical order with duplicate
// members removed.
func (r Ring) Sorted() Ring {
	type entry struct {
		key   []byte
		enote Enote
	}
	entries := make([]entry, 0, len(r))
	ringL, ringC := r.encode()
	for i := range r {
		entries = append(entries, entry{
			key:   append(append([]byte{}, ringL[i]...), ringC[i]...),
			enote: r[i],
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key, entries[j].key) < 0
	})
	sorted := make(Ring, 0, len(entries))
	for i := range entries {
		if i > 0 && bytes.Equal(entries[i].key, entries[i-1].key) {
			continue
		}
		sorted = append(sorted, entries[i].enote)
	}
	return sorted
}

// IsSorted reports whether the ring is in canonical order with no
// duplicates.
func (r Ring) IsSorted() bool {
	ringL, ringC := r.encode()
	return ringSorted(ringL, ringC)
}

func ringSorted(ringL, ringC [][]byte) bool {
	var prev []byte
	for i := range ringL {
		key := append(append([]byte{}, ringL[i]...), ringC[i]...)
		if prev != nil && bytes.Compare(prev, key) >= 0 {
			return false
		}
		prev = key
	}
	return true
}
