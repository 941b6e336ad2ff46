package ringct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorromeanRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	for _, value := range []uint64{0, 1, 3, 255, 1 << 32, ^uint64(0)} {
		blinding := RandomScalar()
		commitment, proof, err := ProveBorromean(value, blinding)
		require.Nil(err)

		assert.True(VerifyOpening(commitment, value, blinding))
		assert.Nil(VerifyBorromean(commitment, proof))
	}
}

func TestBorromeanRejectsWrongCommitment(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	commitment, proof, err := ProveBorromean(1000, RandomScalar())
	require.Nil(err)

	other, _ := CommitRandom(1000)
	assert.Equal(ErrInvalidProof, VerifyBorromean(other, proof))

	// Shift the commitment by one unit. The digit sum no longer
	// matches.
	shifted := commitment.Add(Commit(1, ScalarFromUint64(0)))
	assert.Equal(ErrInvalidProof, VerifyBorromean(shifted, proof))
}

func TestBorromeanRejectsTampering(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	commitment, proof, err := ProveBorromean(77, RandomScalar())
	require.Nil(err)

	mutated := *proof
	mutated.E0.Add(&proof.E0, ScalarFromUint64(1))
	assert.Equal(ErrInvalidProof, VerifyBorromean(commitment, &mutated))

	responses := *proof
	responses.S[5][2].Add(&proof.S[5][2], ScalarFromUint64(1))
	assert.Equal(ErrInvalidProof, VerifyBorromean(commitment, &responses))

	digits := *proof
	digits.CI[0] = digits.CI[0].Add(Commit(4, ScalarFromUint64(0)))
	assert.Equal(ErrInvalidProof, VerifyBorromean(commitment, &digits))
}

func TestBorromeanDigitDecomposition(t *testing.T) {
	assert := assert.New(t)

	digits := quaternary(0)
	for i := range digits {
		assert.Equal(0, digits[i])
	}

	digits = quaternary(0x1b) // 123 base 4
	assert.Equal(3, digits[0])
	assert.Equal(2, digits[1])
	assert.Equal(1, digits[2])
	assert.Equal(0, digits[3])

	digits = quaternary(^uint64(0))
	for i := range digits {
		assert.Equal(3, digits[i])
	}
}

func TestBorromeanDigitSum(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// The digit commitments sum to the value commitment.
	blinding := RandomScalar()
	commitment, proof, err := ProveBorromean(123456789, blinding)
	require.Nil(err)

	sum := proof.CI[0]
	for i := 1; i < proofDigits; i++ {
		sum = sum.Add(proof.CI[i])
	}
	assert.True(sum.Equals(commitment))
}
