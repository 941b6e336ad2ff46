package ringct

import (
	"testing"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchVerifierAllValid(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var b BatchVerifier
	for i := 0; i < 4; i++ {
		keys := NewEnoteKeys(RandomScalar(), uint64(i)*100, RandomScalar())
		ring := testRing(t, keys, 6)

		if i%2 == 0 {
			pseudoOut, sig, err := SignMLSAG(ring, keys, RandomScalar(), []byte("m"))
			require.Nil(err)
			b.AddMLSAG(sig, ring, pseudoOut, []byte("m"))
		} else {
			pseudoOut, sig, err := SignCLSAG(ring, keys, RandomScalar(), []byte("m"))
			require.Nil(err)
			b.AddCLSAG(sig, ring, pseudoOut, []byte("m"))
		}

		commitments, proof, err := ProveBulletPlus([]uint64{uint64(i) * 100}, []*ristretto.Scalar{RandomScalar()})
		require.Nil(err)
		b.AddRangeProof(commitments, proof)
	}
	assert.Nil(b.Verify())
}

func TestBatchVerifierEmpty(t *testing.T) {
	var b BatchVerifier
	assert.Nil(t, b.Verify())
}

func TestBatchVerifierDiagnosesFailure(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	keys := NewEnoteKeys(RandomScalar(), 50, RandomScalar())
	ring := testRing(t, keys, 5)
	pseudoOut, sig, err := SignCLSAG(ring, keys, RandomScalar(), []byte("m"))
	require.Nil(err)

	commitments, proof, err := ProveBulletPlus([]uint64{50}, []*ristretto.Scalar{RandomScalar()})
	require.Nil(err)

	var b BatchVerifier
	b.AddCLSAG(sig, ring, pseudoOut, []byte("m"))
	b.AddRangeProof(commitments, proof)
	// A signature verified against the wrong message.
	b.AddCLSAG(sig, ring, pseudoOut, []byte("tampered"))

	err = b.Verify()
	require.NotNil(err)

	batchErr, ok := err.(*BatchError)
	require.True(ok)
	require.Len(batchErr.Items, 3)
	assert.Nil(batchErr.Items[0])
	assert.Nil(batchErr.Items[1])
	assert.Equal(ErrInvalidSignature, batchErr.Items[2])
	assert.NotEmpty(batchErr.Error())
}

func TestBatchVerifierBadRangeProof(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	commitments, proof, err := ProveBulletPlus([]uint64{9}, []*ristretto.Scalar{RandomScalar()})
	require.Nil(err)
	bad, _ := CommitRandom(9)

	var b BatchVerifier
	b.AddRangeProof(commitments, proof)
	b.AddRangeProof([]Commitment{bad}, proof)

	err = b.Verify()
	require.NotNil(err)
	batchErr, ok := err.(*BatchError)
	require.True(ok)
	require.Len(batchErr.Items, 2)
	assert.Nil(batchErr.Items[0])
	assert.Equal(ErrInvalidProof, batchErr.Items[1])
}

func TestBatchVerifierManySignatures(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// More signatures than typical core counts, to exercise the
	// worker distribution.
	var b BatchVerifier
	for i := 0; i < 24; i++ {
		keys := NewEnoteKeys(RandomScalar(), 7, RandomScalar())
		ring := testRing(t, keys, 3)
		pseudoOut, sig, err := SignMLSAG(ring, keys, RandomScalar(), []byte("m"))
		require.Nil(err)
		b.AddMLSAG(sig, ring, pseudoOut, []byte("m"))
	}
	assert.Nil(b.Verify())
}
