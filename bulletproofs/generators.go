package bulletproofs

import (
	"encoding/binary"

	"github.com/bwesterb/go-ristretto"
	"golang.org/x/crypto/sha3"
)

// PedersenGens holds the two bases used for value commitments:
// B for the committed value and BBlinding for the blinding factor.
// The bases are supplied by the caller so that the engine shares them
// with the surrounding commitment scheme.
type PedersenGens struct {
	B         *ristretto.Point
	BBlinding *ristretto.Point
}

func NewPedersenGens(b, bBlinding *ristretto.Point) *PedersenGens {
	return &PedersenGens{B: b, BBlinding: bBlinding}
}

// Commit returns value*B + blinding*BBlinding.
func (pg *PedersenGens) Commit(value, blinding *ristretto.Scalar) *ristretto.Point {
	return multiscalarMul(
		[]*ristretto.Scalar{value, blinding},
		[]*ristretto.Point{pg.B, pg.BBlinding},
	)
}

// BulletproofGens holds per-party generator vectors. Party j proves for
// the j-th aggregated value using its own slice of G and H generators,
// each derived from an independent SHAKE256 chain.
type BulletproofGens struct {
	GensCapacity  int64
	PartyCapacity int64
	GVec          [][]*ristretto.Point
	HVec          [][]*ristretto.Point
}

func NewBulletproofGens(gensCapacity, partyCapacity int64) *BulletproofGens {
	b := &BulletproofGens{
		GensCapacity:  0,
		PartyCapacity: partyCapacity,
		GVec:          make([][]*ristretto.Point, partyCapacity),
		HVec:          make([][]*ristretto.Point, partyCapacity),
	}
	b.increaseCapacity(gensCapacity)
	return b
}

func (b *BulletproofGens) increaseCapacity(capacity int64) {
	if b.GensCapacity >= capacity {
		return
	}
	for i := int64(0); i < b.PartyCapacity; i++ {
		var party [4]byte
		binary.LittleEndian.PutUint32(party[:], uint32(i))

		label := append([]byte("G"), party[:]...)
		chain := newGeneratorsChain(label)
		chain.fastForward(b.GensCapacity)
		gs := make([]*ristretto.Point, capacity-b.GensCapacity)
		for j := range gs {
			gs[j] = chain.next()
		}
		b.GVec[i] = append(b.GVec[i], gs...)

		label[0] = 'H'
		chain = newGeneratorsChain(label)
		chain.fastForward(b.GensCapacity)
		hs := make([]*ristretto.Point, capacity-b.GensCapacity)
		for j := range hs {
			hs[j] = chain.next()
		}
		b.HVec[i] = append(b.HVec[i], hs...)
	}
	b.GensCapacity = capacity
}

// G iterates the first n generators of each of the first m parties,
// in party order.
func (b *BulletproofGens) G(n, m int64) *aggregatedGensIter {
	return &aggregatedGensIter{n: n, m: m, array: b.GVec}
}

func (b *BulletproofGens) H(n, m int64) *aggregatedGensIter {
	return &aggregatedGensIter{n: n, m: m, array: b.HVec}
}

type aggregatedGensIter struct {
	array    [][]*ristretto.Point
	n, m     int64
	partyIdx int64
	genIdx   int64
}

func (a *aggregatedGensIter) next() *ristretto.Point {
	if a.genIdx >= a.n {
		a.genIdx = 0
		a.partyIdx++
	}
	if a.partyIdx >= a.m {
		return nil
	}
	cur := a.genIdx
	a.genIdx++
	return a.array[a.partyIdx][cur]
}

type generatorsChain struct {
	sha3.ShakeHash
}

func newGeneratorsChain(label []byte) *generatorsChain {
	h := sha3.NewShake256()
	h.Write([]byte("GeneratorsChain"))
	h.Write(label)
	return &generatorsChain{h}
}

func (c *generatorsChain) fastForward(n int64) {
	for i := int64(0); i < n; i++ {
		var data [64]byte
		c.Read(data[:])
	}
}

func (c *generatorsChain) next() *ristretto.Point {
	var data [64]byte
	c.Read(data[:])
	return pointFromUniformBytes(data[:])
}

func pointFromUniformBytes(key []byte) *ristretto.Point {
	var b1, b2 [32]byte
	copy(b1[:], key[:32])
	copy(b2[:], key[32:])
	var r, r1, r2 ristretto.Point
	return r.Add(r1.SetElligator(&b1), r2.SetElligator(&b2))
}

type bulletproofGensShare struct {
	gens  *BulletproofGens
	share int
}

func (b *BulletproofGens) shareOf(j int) *bulletproofGensShare {
	return &bulletproofGensShare{gens: b, share: j}
}

func (g *bulletproofGensShare) G(n int64) []*ristretto.Point {
	return g.gens.GVec[g.share][:n]
}

func (g *bulletproofGensShare) H(n int64) []*ristretto.Point {
	return g.gens.HVec[g.share][:n]
}
