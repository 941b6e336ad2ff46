package ringct

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingSorted(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var ring Ring
	for i := 0; i < 10; i++ {
		keys := NewEnoteKeys(RandomScalar(), uint64(i), RandomScalar())
		ring = append(ring, keys.Enote())
	}

	sorted := ring.Sorted()
	require.Len(sorted, len(ring))
	assert.True(sorted.IsSorted())

	for i := 1; i < len(sorted); i++ {
		prev := sorted[i-1].Bytes()
		cur := sorted[i].Bytes()
		assert.True(bytes.Compare(prev, cur) < 0)
	}
}

func TestRingSortedDeduplicates(t *testing.T) {
	assert := assert.New(t)

	keys := NewEnoteKeys(RandomScalar(), 1, RandomScalar())
	other := NewEnoteKeys(RandomScalar(), 2, RandomScalar())
	ring := Ring{keys.Enote(), other.Enote(), keys.Enote()}

	sorted := ring.Sorted()
	assert.Len(sorted, 2)
	assert.True(sorted.IsSorted())
}

func TestRingIsSorted(t *testing.T) {
	assert := assert.New(t)

	keys1 := NewEnoteKeys(RandomScalar(), 1, RandomScalar())
	keys2 := NewEnoteKeys(RandomScalar(), 2, RandomScalar())
	ring := Ring{keys1.Enote(), keys2.Enote()}.Sorted()
	assert.True(ring.IsSorted())

	reversed := Ring{ring[1], ring[0]}
	assert.False(reversed.IsSorted())

	// Duplicates are unsorted even in order.
	dup := Ring{ring[0], ring[0], ring[1]}
	assert.False(dup.IsSorted())
}

func TestEnoteKeysLifecycle(t *testing.T) {
	assert := assert.New(t)

	owner := RandomScalar()
	blinding := RandomScalar()
	keys := NewEnoteKeys(owner, 55, blinding)

	enote := keys.Enote()
	assert.True(enote.Owner.Equals(PublicKey(owner)))
	assert.True(VerifyOpening(enote.Commitment, 55, blinding))
	assert.True(keys.KeyImage().Equals(KeyImage(owner)))

	keys.Wipe()
	var zero [32]byte
	assert.Equal(zero[:], keys.Owner.Bytes())
	assert.Equal(zero[:], keys.Blinding.Bytes())
}
