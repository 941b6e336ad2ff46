package ringct

import (
	"testing"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRing builds a sorted ring of n members containing the enote of
// keys, plus n-1 decoys.
func testRing(t *testing.T, keys *EnoteKeys, n int) Ring {
	t.Helper()

	ring := Ring{keys.Enote()}
	for i := 1; i < n; i++ {
		decoy := NewEnoteKeys(RandomScalar(), uint64(i)*1000, RandomScalar())
		ring = append(ring, decoy.Enote())
	}
	return ring.Sorted()
}

func TestMLSAGRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	msg := []byte("spend authorization")
	for _, n := range []int{1, 2, 11, 16} {
		keys := NewEnoteKeys(RandomScalar(), 12345, RandomScalar())
		ring := testRing(t, keys, n)

		pseudoOut, sig, err := SignMLSAG(ring, keys, RandomScalar(), msg)
		require.Nil(err)
		assert.Nil(VerifyMLSAG(sig, ring, pseudoOut, msg))
		assert.True(sig.KeyImage.Equals(keys.KeyImage()))
	}
}

func TestMLSAGPseudoOutBalance(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	keys := NewEnoteKeys(RandomScalar(), 777, RandomScalar())
	ring := testRing(t, keys, 8)

	pseudoOutBlinding := RandomScalar()
	pseudoOut, _, err := SignMLSAG(ring, keys, pseudoOutBlinding, []byte("m"))
	require.Nil(err)
	assert.True(VerifyOpening(pseudoOut, 777, pseudoOutBlinding))
}

func TestMLSAGRejectsTampering(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	msg := []byte("original message")
	keys := NewEnoteKeys(RandomScalar(), 5, RandomScalar())
	ring := testRing(t, keys, 8)

	pseudoOut, sig, err := SignMLSAG(ring, keys, RandomScalar(), msg)
	require.Nil(err)

	assert.Equal(ErrInvalidSignature, VerifyMLSAG(sig, ring, pseudoOut, []byte("altered message")))

	otherOut, _ := CommitRandom(5)
	assert.Equal(ErrInvalidSignature, VerifyMLSAG(sig, ring, otherOut, msg))

	decoy := NewEnoteKeys(RandomScalar(), 5, RandomScalar())
	otherRing := append(Ring{decoy.Enote()}, ring[1:]...).Sorted()
	assert.NotNil(VerifyMLSAG(sig, otherRing, pseudoOut, msg))

	mutated := *sig
	mutated.E0.Add(&sig.E0, ScalarFromUint64(1))
	assert.Equal(ErrInvalidSignature, VerifyMLSAG(&mutated, ring, pseudoOut, msg))

	badImage := *sig
	badImage.KeyImage.Rand()
	assert.Equal(ErrInvalidSignature, VerifyMLSAG(&badImage, ring, pseudoOut, msg))
}

func TestMLSAGMalformed(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	keys := NewEnoteKeys(RandomScalar(), 5, RandomScalar())
	ring := testRing(t, keys, 4)
	pseudoOut, sig, err := SignMLSAG(ring, keys, RandomScalar(), nil)
	require.Nil(err)

	short := *sig
	short.SL = sig.SL[:3]
	assert.Equal(ErrMalformedSignature, VerifyMLSAG(&short, ring, pseudoOut, nil))

	identity := *sig
	identity.KeyImage.SetZero()
	assert.Equal(ErrMalformedSignature, VerifyMLSAG(&identity, ring, pseudoOut, nil))
}

func TestMLSAGNotInRing(t *testing.T) {
	assert := assert.New(t)

	keys := NewEnoteKeys(RandomScalar(), 5, RandomScalar())
	outsider := NewEnoteKeys(RandomScalar(), 5, RandomScalar())
	ring := testRing(t, keys, 4)

	_, _, err := SignMLSAG(ring, outsider, RandomScalar(), nil)
	assert.Equal(ErrNotInRing, err)
}

func TestMLSAGUnsortedRing(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	keys := NewEnoteKeys(RandomScalar(), 5, RandomScalar())
	ring := testRing(t, keys, 6)

	// Force an unsorted ordering.
	unsorted := make(Ring, len(ring))
	copy(unsorted, ring)
	unsorted[0], unsorted[len(unsorted)-1] = unsorted[len(unsorted)-1], unsorted[0]
	require.False(unsorted.IsSorted())

	_, _, err := SignMLSAG(unsorted, keys, RandomScalar(), nil)
	assert.Equal(ErrUnsortedRing, err)

	pseudoOut, sig, err := SignMLSAGUnsorted(unsorted, keys, RandomScalar(), nil)
	require.Nil(err)
	assert.Equal(ErrUnsortedRing, VerifyMLSAG(sig, unsorted, pseudoOut, nil))
	assert.Nil(VerifyMLSAGUnsorted(sig, unsorted, pseudoOut, nil))
}

func TestKeyImageDeterministic(t *testing.T) {
	assert := assert.New(t)

	private := RandomScalar()
	img1 := KeyImage(private)
	img2 := KeyImage(private)
	assert.True(img1.Equals(img2))

	assert.False(img1.Equals(KeyImage(RandomScalar())))

	// The key image is not a scalar multiple of the public key under
	// the standard base.
	var pub ristretto.Point
	pub.ScalarMultBase(private)
	assert.False(img1.Equals(&pub))
}

func TestMLSAGLinkability(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	keys := NewEnoteKeys(RandomScalar(), 9, RandomScalar())
	ringA := testRing(t, keys, 5)
	ringB := testRing(t, keys, 7)

	_, sigA, err := SignMLSAG(ringA, keys, RandomScalar(), []byte("a"))
	require.Nil(err)
	_, sigB, err := SignMLSAG(ringB, keys, RandomScalar(), []byte("b"))
	require.Nil(err)

	// Two spends of the same enote expose the same key image even
	// with different rings and messages.
	assert.True(sigA.KeyImage.Equals(&sigB.KeyImage))
}
