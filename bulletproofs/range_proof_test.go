package bulletproofs

import (
	"testing"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGens(t *testing.T) (*BulletproofGens, *PedersenGens) {
	t.Helper()

	var b, bBlinding ristretto.Point
	b.SetBase()
	var s ristretto.Scalar
	s.SetOne()
	s.Add(&s, &s)
	bBlinding.ScalarMultBase(&s)
	return NewBulletproofGens(64, 8), NewPedersenGens(&b, &bBlinding)
}

func randomScalars(n int) []*ristretto.Scalar {
	out := make([]*ristretto.Scalar, n)
	for i := range out {
		var s ristretto.Scalar
		out[i] = s.Rand()
	}
	return out
}

func TestRangeProofRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	bg, pg := testGens(t)
	for _, tc := range []struct {
		n      int64
		values []uint64
	}{
		{8, []uint64{0}},
		{8, []uint64{255}},
		{32, []uint64{1, 2, 3, 4}},
		{64, []uint64{0, ^uint64(0)}},
	} {
		blindings := randomScalars(len(tc.values))
		proof, commitments, err := Prove(bg, pg, "test", tc.values, blindings, tc.n)
		require.Nil(err)
		assert.Nil(proof.Verify(bg, pg, "test", commitments, tc.n))
	}
}

func TestRangeProofAggregatedBelowGensCapacity(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// Aggregated proofs lay generators out party-major with n per
	// party, so verification must pair the folded scalars with the
	// same layout even when n is below the generator capacity.
	bg, pg := testGens(t)
	for _, tc := range []struct {
		n      int64
		values []uint64
	}{
		{8, []uint64{7, 200}},
		{16, []uint64{0, 1, 65535, 42}},
		{32, []uint64{1, 2, 3, 4}},
	} {
		blindings := randomScalars(len(tc.values))
		proof, commitments, err := Prove(bg, pg, "test", tc.values, blindings, tc.n)
		require.Nil(err)
		assert.Nil(proof.Verify(bg, pg, "test", commitments, tc.n))
	}

	// Batches with differing aggregation sizes share one accumulator.
	proofA, commitA, err := Prove(bg, pg, "test", []uint64{5, 6}, randomScalars(2), 8)
	require.Nil(err)
	proofB, commitB, err := Prove(bg, pg, "test", []uint64{9, 10, 11, 12}, randomScalars(4), 8)
	require.Nil(err)
	assert.Nil(VerifyBatch(bg, pg, "test",
		[]*RangeProof{proofA, proofB},
		[][]*ristretto.Point{commitA, commitB}, 8))
}

func TestVerifyBatchRejectsOverCapacity(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	bg, pg := testGens(t)
	proof, commitments, err := Prove(bg, pg, "test", []uint64{3}, randomScalars(1), 8)
	require.Nil(err)

	// 16 parties of 8 bits exceeds the 8-party generator table even
	// though the total generator count fits.
	var point ristretto.Point
	point.Rand()
	wide := make([]*ristretto.Point, 16)
	for i := range wide {
		wide[i] = &point
	}
	assert.Equal(ErrMalformed, VerifyBatch(bg, pg, "test",
		[]*RangeProof{proof}, [][]*ristretto.Point{wide}, 8))

	assert.Equal(ErrMalformed, proof.Verify(bg, pg, "test", commitments, 128))
	assert.Equal(ErrMalformed, proof.Verify(bg, pg, "test", commitments, 0))
}

func TestRangeProofRejectsOutOfRange(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	bg, pg := testGens(t)

	// 256 does not fit in 8 bits, so the proof cannot verify.
	proof, commitments, err := Prove(bg, pg, "test", []uint64{256}, randomScalars(1), 8)
	require.Nil(err)
	assert.Equal(ErrInvalid, proof.Verify(bg, pg, "test", commitments, 8))
}

func TestRangeProofRejectsWrongLabel(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	bg, pg := testGens(t)
	proof, commitments, err := Prove(bg, pg, "label one", []uint64{9}, randomScalars(1), 32)
	require.Nil(err)
	assert.Equal(ErrInvalid, proof.Verify(bg, pg, "label two", commitments, 32))
}

func TestRangeProofRejectsWrongCommitment(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	bg, pg := testGens(t)
	proof, commitments, err := Prove(bg, pg, "test", []uint64{9, 10}, randomScalars(2), 32)
	require.Nil(err)

	swapped := []*ristretto.Point{commitments[1], commitments[0]}
	assert.Equal(ErrInvalid, proof.Verify(bg, pg, "test", swapped, 32))
}

func TestRangeProofBatch(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	bg, pg := testGens(t)

	var proofs []*RangeProof
	var groups [][]*ristretto.Point
	for _, values := range [][]uint64{{1}, {2, 3}, {4, 5, 6, 7}} {
		proof, commitments, err := Prove(bg, pg, "test", values, randomScalars(len(values)), 64)
		require.Nil(err)
		proofs = append(proofs, proof)
		groups = append(groups, commitments)
	}
	assert.Nil(VerifyBatch(bg, pg, "test", proofs, groups, 64))

	// Corrupt one commitment: the batch fails.
	var bad ristretto.Point
	bad.Rand()
	groups[1][0] = &bad
	assert.Equal(ErrInvalid, VerifyBatch(bg, pg, "test", proofs, groups, 64))
}

func TestRangeProofBytes(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	bg, pg := testGens(t)
	proof, commitments, err := Prove(bg, pg, "test", []uint64{77, 88}, randomScalars(2), 64)
	require.Nil(err)

	decoded, err := RangeProofFromBytes(proof.ToBytes())
	require.Nil(err)
	assert.Nil(decoded.Verify(bg, pg, "test", commitments, 64))

	_, err = RangeProofFromBytes(proof.ToBytes()[:100])
	assert.Equal(ErrMalformed, err)
}

func TestProveRejectsBadInput(t *testing.T) {
	assert := assert.New(t)

	bg, pg := testGens(t)

	// Aggregation size must be a power of two.
	assert.Panics(func() {
		Prove(bg, pg, "test", []uint64{1, 2, 3}, randomScalars(3), 64)
	})

	// Unsupported bitsize.
	assert.Panics(func() {
		Prove(bg, pg, "test", []uint64{1}, randomScalars(1), 63)
	})

	// Mismatched blinding count.
	_, _, err := Prove(bg, pg, "test", []uint64{1, 2}, randomScalars(1), 64)
	assert.NotNil(err)
}

func TestGeneratorsDeterministic(t *testing.T) {
	assert := assert.New(t)

	b1 := NewBulletproofGens(64, 4)
	b2 := NewBulletproofGens(64, 4)

	i1 := b1.G(64, 4)
	i2 := b2.G(64, 4)
	for k := 0; k < 64*4; k++ {
		assert.True(i1.next().Equals(i2.next()))
	}
}

func TestInnerProductVerificationScalarsLength(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	bg, pg := testGens(t)
	proof, _, err := Prove(bg, pg, "test", []uint64{5}, randomScalars(1), 64)
	require.Nil(err)

	// A generator count inconsistent with the proof's rounds is
	// rejected before any curve work.
	tr := newTranscript("test")
	_, _, _, err = proof.IPP.verificationScalars(32, tr)
	assert.Equal(ErrMalformed, err)
}
