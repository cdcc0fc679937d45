package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherAndVerifier(t *testing.T) {
	t.Parallel()

	// Minimum cost keeps the test fast; production cost comes from config.
	hasher := NewBcryptHasher(bcrypt.MinCost)
	verifier := NewBcryptVerifier()

	hash, err := hasher.Hash("mypass123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "mypass123", "hash must not embed the plaintext")

	assert.NoError(t, verifier.Compare(hash, "mypass123"))
	assert.Error(t, verifier.Compare(hash, "wrongpass"))
	assert.Error(t, verifier.Compare(hash, ""))
}

func TestBcryptHasherSaltsPerCall(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("mypass123")
	require.NoError(t, err)
	second, err := hasher.Hash("mypass123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each hash must carry a fresh salt")
}

func TestNewBcryptHasherCostClamping(t *testing.T) {
	t.Parallel()

	// Out-of-range costs fall back to the library default
	for _, cost := range []int{-1, 0, 99} {
		h := NewBcryptHasher(cost)
		assert.Equal(t, bcrypt.DefaultCost, h.cost, "cost %d should clamp to default", cost)
	}

	h := NewBcryptHasher(12)
	assert.Equal(t, 12, h.cost)
}

func TestBcryptHasherRejectsOverlongPassword(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(bcrypt.MinCost)
	_, err := hasher.Hash(strings.Repeat("x", 100))
	assert.Error(t, err, "bcrypt rejects passwords longer than 72 bytes")
}
