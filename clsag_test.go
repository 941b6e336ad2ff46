package ringct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLSAGRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	msg := []byte("spend authorization")
	for _, n := range []int{1, 2, 11, 16} {
		keys := NewEnoteKeys(RandomScalar(), 98765, RandomScalar())
		ring := testRing(t, keys, n)

		pseudoOut, sig, err := SignCLSAG(ring, keys, RandomScalar(), msg)
		require.Nil(err)
		assert.Nil(VerifyCLSAG(sig, ring, pseudoOut, msg))
		assert.True(sig.KeyImage.Equals(keys.KeyImage()))
	}
}

func TestCLSAGPseudoOutBalance(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	keys := NewEnoteKeys(RandomScalar(), 321, RandomScalar())
	ring := testRing(t, keys, 8)

	pseudoOutBlinding := RandomScalar()
	pseudoOut, _, err := SignCLSAG(ring, keys, pseudoOutBlinding, []byte("m"))
	require.Nil(err)
	assert.True(VerifyOpening(pseudoOut, 321, pseudoOutBlinding))
}

func TestCLSAGRejectsTampering(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	msg := []byte("original message")
	keys := NewEnoteKeys(RandomScalar(), 5, RandomScalar())
	ring := testRing(t, keys, 8)

	pseudoOut, sig, err := SignCLSAG(ring, keys, RandomScalar(), msg)
	require.Nil(err)

	assert.Equal(ErrInvalidSignature, VerifyCLSAG(sig, ring, pseudoOut, []byte("altered message")))

	otherOut, _ := CommitRandom(5)
	assert.Equal(ErrInvalidSignature, VerifyCLSAG(sig, ring, otherOut, msg))

	mutated := *sig
	mutated.C0.Add(&sig.C0, ScalarFromUint64(1))
	assert.Equal(ErrInvalidSignature, VerifyCLSAG(&mutated, ring, pseudoOut, msg))

	badAux := *sig
	badAux.Auxiliary.Rand()
	assert.Equal(ErrInvalidSignature, VerifyCLSAG(&badAux, ring, pseudoOut, msg))

	badImage := *sig
	badImage.KeyImage.Rand()
	assert.Equal(ErrInvalidSignature, VerifyCLSAG(&badImage, ring, pseudoOut, msg))
}

func TestCLSAGMalformed(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	keys := NewEnoteKeys(RandomScalar(), 5, RandomScalar())
	ring := testRing(t, keys, 4)
	pseudoOut, sig, err := SignCLSAG(ring, keys, RandomScalar(), nil)
	require.Nil(err)

	short := *sig
	short.S = sig.S[:3]
	assert.Equal(ErrMalformedSignature, VerifyCLSAG(&short, ring, pseudoOut, nil))

	identity := *sig
	identity.KeyImage.SetZero()
	assert.Equal(ErrMalformedSignature, VerifyCLSAG(&identity, ring, pseudoOut, nil))
}

func TestCLSAGNotInRing(t *testing.T) {
	assert := assert.New(t)

	keys := NewEnoteKeys(RandomScalar(), 5, RandomScalar())
	outsider := NewEnoteKeys(RandomScalar(), 5, RandomScalar())
	ring := testRing(t, keys, 4)

	_, _, err := SignCLSAG(ring, outsider, RandomScalar(), nil)
	assert.Equal(ErrNotInRing, err)
}

func TestCLSAGUnsortedRing(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	keys := NewEnoteKeys(RandomScalar(), 5, RandomScalar())
	ring := testRing(t, keys, 6)

	unsorted := make(Ring, len(ring))
	copy(unsorted, ring)
	unsorted[0], unsorted[len(unsorted)-1] = unsorted[len(unsorted)-1], unsorted[0]
	require.False(unsorted.IsSorted())

	_, _, err := SignCLSAG(unsorted, keys, RandomScalar(), nil)
	assert.Equal(ErrUnsortedRing, err)

	pseudoOut, sig, err := SignCLSAGUnsorted(unsorted, keys, RandomScalar(), nil)
	require.Nil(err)
	assert.Equal(ErrUnsortedRing, VerifyCLSAG(sig, unsorted, pseudoOut, nil))
	assert.Nil(VerifyCLSAGUnsorted(sig, unsorted, pseudoOut, nil))
}

func TestCLSAGMatchesMLSAGKeyImage(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// The two signature schemes share the key image construction, so
	// spends of one enote link across them.
	keys := NewEnoteKeys(RandomScalar(), 64, RandomScalar())
	ring := testRing(t, keys, 5)

	_, mlsag, err := SignMLSAG(ring, keys, RandomScalar(), []byte("a"))
	require.Nil(err)
	_, clsag, err := SignCLSAG(ring, keys, RandomScalar(), []byte("b"))
	require.Nil(err)
	assert.True(mlsag.KeyImage.Equals(&clsag.KeyImage))
}
