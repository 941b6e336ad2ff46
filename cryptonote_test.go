package ringct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCryptoNoteSendReceive(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	receiver := GenerateCryptoNote()
	pub := receiver.Public()

	r, blinding := pub.Send(12345)
	outputs := []Recipient{*r}

	owned := receiver.Receive(outputs)
	require.Len(owned, 1)
	assert.Equal(0, owned[0].Index)
	assert.Equal(uint64(12345), owned[0].Keys.Value)
	assert.True(owned[0].Keys.Blinding.Equals(blinding))

	// The recovered keys open the enote the sender constructed.
	commitment := Commit(12345, blinding)
	assert.True(owned[0].Keys.Enote().Equals(r.Enote(commitment)))
}

func TestCryptoNoteForeignOutputs(t *testing.T) {
	assert := assert.New(t)

	receiver := GenerateCryptoNote()
	stranger := GenerateCryptoNote()

	r, _ := stranger.Public().Send(500)
	assert.Empty(receiver.Receive([]Recipient{*r}))
}

func TestCryptoNoteMultipleOutputs(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	receiver := GenerateCryptoNote()
	stranger := GenerateCryptoNote()

	mine1, _ := receiver.Public().Send(100)
	theirs, _ := stranger.Public().Send(200)
	mine2, _ := receiver.Public().Send(300)
	outputs := []Recipient{*mine1, *theirs, *mine2}

	owned := receiver.Receive(outputs)
	require.Len(owned, 2)
	assert.Equal(0, owned[0].Index)
	assert.Equal(uint64(100), owned[0].Keys.Value)
	assert.Equal(2, owned[1].Index)
	assert.Equal(uint64(300), owned[1].Keys.Value)
}

func TestCryptoNoteViewOnly(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	receiver := GenerateCryptoNote()
	watcher := receiver.ViewOnly()
	assert.True(watcher.Public().View.Equals(&receiver.Public().View))
	assert.True(watcher.Public().Spend.Equals(&receiver.Public().Spend))

	r, blinding := receiver.Public().Send(900)
	viewed := watcher.Receive([]Recipient{*r})
	require.Len(viewed, 1)
	assert.Equal(uint64(900), viewed[0].Value)
	assert.True(viewed[0].Blinding.Equals(blinding))
	assert.True(viewed[0].Owner.Equals(&r.PublicKey))
}

func TestCryptoNoteSendOutput(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	receiver := GenerateCryptoNote()
	r, commitment, proof, err := receiver.Public().SendOutput(4321)
	require.Nil(err)
	assert.Nil(VerifyBulletPlus([]Commitment{commitment}, proof))

	owned := receiver.Receive([]Recipient{*r})
	require.Len(owned, 1)
	assert.True(VerifyOpening(commitment, owned[0].Keys.Value, &owned[0].Keys.Blinding))
}

func TestCryptoNoteSpendReceived(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// Full cycle: receive an output, then sign a ring spend with the
	// recovered keys.
	receiver := GenerateCryptoNote()
	r, commitment, _, err := receiver.Public().SendOutput(64000)
	require.Nil(err)

	owned := receiver.Receive([]Recipient{*r})
	require.Len(owned, 1)
	require.True(owned[0].Keys.Enote().Equals(r.Enote(commitment)))

	ring := testRing(t, owned[0].Keys, 8)
	pseudoOut, sig, err := SignCLSAG(ring, owned[0].Keys, RandomScalar(), []byte("tx"))
	require.Nil(err)
	assert.Nil(VerifyCLSAG(sig, ring, pseudoOut, []byte("tx")))
}

func TestCryptoNoteFromSeed(t *testing.T) {
	assert := assert.New(t)

	var seed [32]byte
	copy(seed[:], "deterministic wallet seed value!")
	k1 := CryptoNoteFromSeed(seed)
	k2 := CryptoNoteFromSeed(seed)
	assert.True(k1.View.Equals(&k2.View))
	assert.True(k1.Spend.Equals(&k2.Spend))

	seed[31] ^= 1
	k3 := CryptoNoteFromSeed(seed)
	assert.False(k1.View.Equals(&k3.View))
}

func TestCryptoNoteViewTagFilters(t *testing.T) {
	assert := assert.New(t)

	// A corrupted view tag makes the scanner skip the output even
	// though the keys would match.
	receiver := GenerateCryptoNote()
	r, _ := receiver.Public().Send(10)
	r.ViewTag ^= 0xff
	assert.Empty(receiver.Receive([]Recipient{*r}))
}
