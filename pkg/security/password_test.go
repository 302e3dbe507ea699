package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", hash)

	assert.NoError(t, hasher.Compare(hash, "pw123"))
}

func TestCompareMismatchIsNormalError(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("pw123")
	require.NoError(t, err)

	err = hasher.Compare(hash, "wrong")
	assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)
}

func TestHashIsSalted(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	h1, err := hasher.Hash("pw123")
	require.NoError(t, err)
	h2, err := hasher.Hash("pw123")
	require.NoError(t, err)

	// salted hashes are never compared by equality
	assert.NotEqual(t, h1, h2)
}

func TestInvalidCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(99)

	hash, err := hasher.Hash("pw123")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "pw123"))
}
